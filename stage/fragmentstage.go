// Package stage implements FragmentStage, a single fullscreen-triangle
// render pass that samples a previous stage's output texture and writes to
// its own half-precision RGBA render target.
package stage

import (
	"fmt"

	"github.com/hdrscope/pipeline/gpu"
	"github.com/hdrscope/pipeline/shaderutil"
)

// FragmentStage is one stage in the color pipeline chain: a render target,
// a render pipeline built from the shared fullscreen vertex shader plus a
// per-stage fragment shader, and an enabled flag the renderer's bypass
// logic reads.
type FragmentStage struct {
	Name    string
	Index   int
	Enabled bool

	device   gpu.Device
	kind     gpu.StageKind
	fragment string

	resources  *shaderutil.StageResources
	target     gpu.Texture
	targetView gpu.TextureView

	logOnce onceLogger
}

// New constructs a stage. It does not allocate any GPU resource; call Init
// once the pipeline knows its output size.
func New(device gpu.Device, name string, index int, kind gpu.StageKind, fragmentSource string) *FragmentStage {
	return &FragmentStage{
		Name:     name,
		Index:    index,
		Enabled:  true,
		device:   device,
		kind:     kind,
		fragment: withCommon(fragmentSource),
	}
}

// Init creates the stage's render target at width x height, its bind group
// layout, and its render pipeline. A shader compile or pipeline validation
// failure is logged once at slog.LevelError and leaves the stage's pipeline
// nil; Encode then no-ops for this stage for the lifetime of the stage,
// matching the "pipeline is marked null" contract the stage's construction
// follows. Init starts a new shader generation, so any dedup'd warning or
// error from the previous generation can fire again.
func (s *FragmentStage) Init(width, height uint32) error {
	s.logOnce.reset()

	target, err := s.device.CreateTexture(gpu.TextureDescriptor{
		Label:  s.Name + ":target",
		Width:  width,
		Height: height,
		Format: gpu.FormatRGBA16Float,
		Usage:  gpu.TextureUsageRenderAttachment | gpu.TextureUsageTextureBinding | gpu.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("stage %s: create render target: %w", s.Name, err)
	}
	s.target = target
	s.targetView = target.CreateView()

	res, err := shaderutil.BuildStage(s.device, s.kind, s.fragment, gpu.FormatRGBA16Float)
	if err != nil {
		s.logOnce.logCompileFailure(s.Name, err)
		s.resources = nil
		return nil
	}
	s.resources = res
	return nil
}

// Encode records this stage's render pass into encoder, sampling srcView as
// the stage's input and writing into the stage's own render target. It
// no-ops if the pipeline failed to compile, logging the bypass once per
// shader generation rather than once per frame.
func (s *FragmentStage) Encode(encoder gpu.CommandEncoder, srcView gpu.TextureView, uniforms gpu.Buffer) {
	if s.resources == nil || s.resources.Pipeline == nil {
		s.logOnce.logBypass(s.Name)
		return
	}
	bindGroup, err := s.device.CreateBindGroup(gpu.BindGroupDescriptor{
		Label:  s.Name + ":bindgroup",
		Layout: s.resources.BindGroupLayout,
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, TextureView: srcView},
			{Binding: 1, Buffer: uniforms},
		},
	})
	if err != nil {
		s.logOnce.logEncodeFailure(s.Name, err)
		return
	}
	defer bindGroup.Destroy()

	pass := encoder.BeginRenderPass(gpu.RenderPassDescriptor{
		Label:       s.Name + ":pass",
		ColorTarget: s.targetView,
	})
	pass.SetPipeline(s.resources.Pipeline)
	pass.SetBindGroup(0, bindGroup)
	pass.DrawFullScreenTriangle()
	pass.End()
}

// Output returns the stage's current render target.
func (s *FragmentStage) Output() gpu.Texture { return s.target }

// OutputView returns a view over the stage's current render target.
func (s *FragmentStage) OutputView() gpu.TextureView { return s.targetView }

// Resize destroys the current render target and allocates a new one at
// width x height. The pipeline and bind group layout survive.
func (s *FragmentStage) Resize(width, height uint32) error {
	if s.targetView != nil {
		s.targetView.Destroy()
	}
	if s.target != nil {
		s.target.Destroy()
	}
	target, err := s.device.CreateTexture(gpu.TextureDescriptor{
		Label:  s.Name + ":target",
		Width:  width,
		Height: height,
		Format: gpu.FormatRGBA16Float,
		Usage:  gpu.TextureUsageRenderAttachment | gpu.TextureUsageTextureBinding | gpu.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("stage %s: resize render target: %w", s.Name, err)
	}
	s.target = target
	s.targetView = target.CreateView()
	return nil
}

// Destroy releases every GPU resource the stage owns: the render target,
// and the pipeline/layout/shader modules bundled in resources. Go has no
// GPU-resource garbage collector, so unlike the reference runtime this
// stage destroys its pipeline and layout explicitly rather than leaving
// them for a collector that doesn't exist here.
func (s *FragmentStage) Destroy() {
	if s.targetView != nil {
		s.targetView.Destroy()
		s.targetView = nil
	}
	if s.target != nil {
		s.target.Destroy()
		s.target = nil
	}
	if s.resources != nil {
		s.resources.Destroy()
		s.resources = nil
	}
}
