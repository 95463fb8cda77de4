// Package renderer implements PipelineRenderer: the ordered six-stage
// fragment chain, the shared uniform buffer, and bypass-aware stage output
// lookup, driven once per frame.
package renderer

import (
	"context"
	"fmt"
	"sync"

	"github.com/hdrscope/pipeline/gpu"
	"github.com/hdrscope/pipeline/readback"
	"github.com/hdrscope/pipeline/stage"
	"github.com/hdrscope/pipeline/uniform"
)

// Renderer owns the ordered stage chain, the shared uniform buffer, and the
// readback reader; it drives every frame. It never creates its own
// gpu.Device or gpu.Queue — those are supplied by the embedding
// application, mirroring the external GPU adapter/device provider this
// module consumes rather than owns.
type Renderer struct {
	mu sync.Mutex

	device gpu.Device
	stages []*stage.FragmentStage

	uniformBuf gpu.Buffer
	reader     *readback.Reader

	width, height uint32
	initialized   bool
}

// New returns a Renderer bound to device. Call SetStages and then SetSize
// before Render.
func New(device gpu.Device) (*Renderer, error) {
	if device == nil {
		return nil, fmt.Errorf("renderer: device is required")
	}
	buf, err := device.CreateBuffer(gpu.BufferDescriptor{
		Label: "pipeline:uniforms",
		Size:  uniform.BufferSize,
		Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: create uniform buffer: %w", err)
	}
	return &Renderer{
		device:     device,
		uniformBuf: buf,
		reader:     readback.NewReader(device),
	}, nil
}

// SetStages replaces the stage array. Call once, before the first SetSize.
func (r *Renderer) SetStages(stages []*stage.FragmentStage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = stages
}

// SetSize initialises every stage at width x height on the first call, and
// resizes every stage's render target (never reallocating pipelines) on
// subsequent calls.
func (r *Renderer) SetSize(width, height uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if width == 0 || height == 0 {
		return fmt.Errorf("renderer: invalid size %dx%d", width, height)
	}

	if !r.initialized {
		for _, s := range r.stages {
			if err := s.Init(width, height); err != nil {
				return fmt.Errorf("renderer: init stage %s: %w", s.Name, err)
			}
		}
		r.initialized = true
	} else {
		for _, s := range r.stages {
			if err := s.Resize(width, height); err != nil {
				return fmt.Errorf("renderer: resize stage %s: %w", s.Name, err)
			}
		}
	}
	r.width, r.height = width, height
	return nil
}

// UpdateUniforms writes packed to the shared uniform buffer. Call only when
// settings change; render observes the new values on the next call since
// both use the same queue.
func (r *Renderer) UpdateUniforms(settings uniform.PipelineSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	packed := uniform.Serialize(settings)
	r.device.Queue().WriteBuffer(r.uniformBuf, 0, packed[:])
}

// Render records a single command buffer encoding every enabled stage in
// order against sourceTexture's view, then submits once. Each stage reads
// the current input (advancing to its own output when enabled, leaving the
// input unchanged when disabled) so getStageOutput's bypass sweep stays
// consistent with what was actually drawn.
func (r *Renderer) Render(sourceView gpu.TextureView) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.stages) == 0 {
		return
	}

	encoder := r.device.CreateCommandEncoder("pipeline:frame")
	input := sourceView
	for _, s := range r.stages {
		if !s.Enabled {
			continue
		}
		s.Encode(encoder, input, r.uniformBuf)
		input = s.OutputView()
	}
	r.device.Queue().Submit(encoder)
}

// GetStageOutput returns the effective texture at position index: its own
// output if enabled, otherwise the last enabled stage's output at or
// before index, otherwise nil.
func (r *Renderer) GetStageOutput(index int) gpu.Texture {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getStageOutputLocked(index)
}

func (r *Renderer) getStageOutputLocked(index int) gpu.Texture {
	if index < 0 || index >= len(r.stages) {
		return nil
	}
	for i := index; i >= 0; i-- {
		if r.stages[i].Enabled {
			return r.stages[i].Output()
		}
	}
	return nil
}

// ReadPixel reads a single texel from tex, delivering the decoded result
// through the returned channel read. It returns false immediately (no
// channel send will follow) if a previous read is still in flight.
func (r *Renderer) ReadPixel(ctx context.Context, tex gpu.Texture, x, y uint32) bool {
	return r.reader.Read(ctx, tex, x, y)
}

// ReadbackResults exposes the channel completed pixel reads arrive on.
func (r *Renderer) ReadbackResults() <-chan readback.PixelResult {
	return r.reader.Results()
}

// Destroy releases the shared uniform buffer and every stage's GPU
// resources. Go has no garbage collector for GPU handles, so every
// resource this renderer or its stages allocated is torn down explicitly.
func (r *Renderer) Destroy() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.stages {
		s.Destroy()
	}
	if r.uniformBuf != nil {
		r.uniformBuf.Destroy()
		r.uniformBuf = nil
	}
}
