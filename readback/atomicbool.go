package readback

import "sync/atomic"

// atomicBool is the single-slot pending flag: trySet reports whether it
// transitioned false->true with a compare-and-swap, so only one caller at a
// time holds the slot. It uses sync/atomic, as the gpu package's
// PipelineCache does for its hit/miss counters (which use atomic adds).
type atomicBool struct {
	v atomic.Bool
}

func (b *atomicBool) trySet() bool {
	return b.v.CompareAndSwap(false, true)
}

func (b *atomicBool) clear() {
	b.v.Store(false)
}
