package swref

import (
	"fmt"

	"github.com/hdrscope/pipeline/gpu"
)

// Device is a pure-Go gpu.Device. It never touches real GPU memory: every
// resource is an in-process Go value, and DrawFullScreenTriangle evaluates
// one of the six fixed stage functions per pixel via the colorscience
// package.
type Device struct {
	queue *Queue
}

// NewDevice returns a software reference Device. It accepts no handle: it
// needs no real adapter, the same way gpucore.HybridPipeline runs entirely
// on CPU when UseCPUFallback is set.
func NewDevice() *Device {
	return &Device{queue: &Queue{}}
}

func (d *Device) CreateTexture(desc gpu.TextureDescriptor) (gpu.Texture, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("swref: invalid texture size %dx%d", desc.Width, desc.Height)
	}
	return &Texture{
		width: desc.Width, height: desc.Height, format: desc.Format,
		pixels: make([]float32, int(desc.Width)*int(desc.Height)*4),
	}, nil
}

func (d *Device) CreateBuffer(desc gpu.BufferDescriptor) (gpu.Buffer, error) {
	return &Buffer{data: make([]byte, desc.Size)}, nil
}

func (d *Device) CreateShaderModule(label, wgslSource string) (gpu.ShaderModule, error) {
	return &ShaderModule{label: label, source: wgslSource}, nil
}

func (d *Device) CreateBindGroupLayout(desc gpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	return &BindGroupLayout{}, nil
}

func (d *Device) CreateBindGroup(desc gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	bg := &BindGroup{}
	for _, e := range desc.Entries {
		if tv, ok := e.TextureView.(*TextureView); ok {
			bg.sourceTexture = tv.texture
		}
		if buf, ok := e.Buffer.(*Buffer); ok {
			bg.uniforms = buf
		}
	}
	return bg, nil
}

func (d *Device) CreateRenderPipeline(desc gpu.RenderPipelineDescriptor) (gpu.RenderPipeline, error) {
	fs, ok := desc.FragmentShader.(*ShaderModule)
	if !ok {
		return nil, fmt.Errorf("swref: fragment shader %q was not created by this device", desc.Label)
	}
	fn, ok := stageFuncs[gpu.StageKind(fs.label)]
	if !ok {
		return nil, fmt.Errorf("swref: no software implementation registered for stage %q", fs.label)
	}
	return &RenderPipeline{label: desc.Label, eval: fn}, nil
}

func (d *Device) CreateCommandEncoder(label string) gpu.CommandEncoder {
	return &CommandEncoder{label: label}
}

func (d *Device) Queue() gpu.Queue { return d.queue }

var _ gpu.Device = (*Device)(nil)
