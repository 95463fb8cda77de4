package gpu

import (
	"fmt"
	"hash/fnv"
	"sync"
	"sync/atomic"
)

// PipelineCache caches compiled RenderPipelines indexed by a hash of their
// descriptor, so repeated FragmentStage initialisation (resize, or a second
// FragmentStage using an identical shader) never recompiles a pipeline that
// already exists. It follows the double-checked RWMutex locking and atomic
// hit/miss counters of the teacher's HALPipelineCache, narrowed to this
// pipeline's single pipeline kind (render only — the color pipeline issues
// no compute work).
type PipelineCache struct {
	mu    sync.RWMutex
	cache map[uint64]RenderPipeline

	hits   uint64
	misses uint64
}

// NewPipelineCache returns an empty cache.
func NewPipelineCache() *PipelineCache {
	return &PipelineCache{cache: make(map[uint64]RenderPipeline)}
}

// GetOrCreate returns the cached pipeline for desc's hash, or creates one via
// device.CreateRenderPipeline and stores it.
func (c *PipelineCache) GetOrCreate(device Device, desc RenderPipelineDescriptor) (RenderPipeline, error) {
	key := HashRenderPipelineDescriptor(desc)

	c.mu.RLock()
	if p, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		atomic.AddUint64(&c.hits, 1)
		return p, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.cache[key]; ok {
		atomic.AddUint64(&c.hits, 1)
		return p, nil
	}

	atomic.AddUint64(&c.misses, 1)
	p, err := device.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("gpu: create render pipeline %q: %w", desc.Label, err)
	}
	c.cache[key] = p
	return p, nil
}

// Stats returns the cumulative hit and miss counts.
func (c *PipelineCache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}

// HitRate returns hits/(hits+misses), or 0 if no lookups have happened yet.
func (c *PipelineCache) HitRate() float64 {
	hits, misses := c.Stats()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Size returns the number of cached pipelines.
func (c *PipelineCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// shaderIdentity is implemented by ShaderModule implementations that can
// report a stable content identity for hashing (wgpuhal's shader modules
// do; swref's do not). Other implementations fall back to the module's
// pointer identity, which still separates distinct stages.
type shaderIdentity interface {
	IdentityHash() uint64
}

// HashRenderPipelineDescriptor computes an FNV-1a hash over the fields that
// determine pipeline identity: the shader modules' content hash, the bind
// group layout pointer, and the target color format.
func HashRenderPipelineDescriptor(desc RenderPipelineDescriptor) uint64 {
	h := fnv.New64a()

	writeUint64(h, shaderHash(desc.VertexShader))
	writeUint64(h, shaderHash(desc.FragmentShader))
	_, _ = h.Write([]byte(fmt.Sprintf("%p", desc.BindGroupLayout)))
	_, _ = h.Write([]byte(fmt.Sprintf("%v", desc.ColorFormat)))

	return h.Sum64()
}

func shaderHash(m ShaderModule) uint64 {
	if m == nil {
		return 0
	}
	if id, ok := m.(shaderIdentity); ok {
		return id.IdentityHash()
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%p", m)))
	return h.Sum64()
}

func writeUint64(h interface{ Write([]byte) (int, error) }, v uint64) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * uint(i)))
	}
	_, _ = h.Write(buf[:])
}
