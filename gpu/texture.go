package gpu

import (
	"fmt"
	"sync"
)

// ManagedTexture wraps a backend Texture with lazily-created default view
// creation, following the sync.Once pattern the teacher's HALTexture uses:
// every render target is created once up front, but its TextureView is only
// materialised the first time a render pass or bind group actually needs it.
type ManagedTexture struct {
	inner Texture

	viewOnce sync.Once
	view     TextureView
	viewErr  error

	mu        sync.RWMutex
	destroyed bool
}

// NewManagedTexture wraps an already-created backend texture.
func NewManagedTexture(inner Texture) *ManagedTexture {
	return &ManagedTexture{inner: inner}
}

// Width returns the texture width in pixels.
func (t *ManagedTexture) Width() uint32 { return t.inner.Width() }

// Height returns the texture height in pixels.
func (t *ManagedTexture) Height() uint32 { return t.inner.Height() }

// Format returns the texture's pixel format.
func (t *ManagedTexture) Format() TextureFormat { return t.inner.Format() }

// DefaultView returns the texture's default view, creating it on first use.
// Every later call returns the same view and the same error.
func (t *ManagedTexture) DefaultView() (TextureView, error) {
	t.viewOnce.Do(func() {
		t.mu.RLock()
		destroyed := t.destroyed
		t.mu.RUnlock()
		if destroyed {
			t.viewErr = fmt.Errorf("gpu: texture already destroyed")
			return
		}
		t.view = t.inner.CreateView()
	})
	return t.view, t.viewErr
}

// Destroy releases the default view (if one was created) and the backing
// texture. Safe to call once; a second call is a no-op.
func (t *ManagedTexture) Destroy() {
	t.mu.Lock()
	if t.destroyed {
		t.mu.Unlock()
		return
	}
	t.destroyed = true
	t.mu.Unlock()

	if t.view != nil {
		t.view.Destroy()
	}
	t.inner.Destroy()
}
