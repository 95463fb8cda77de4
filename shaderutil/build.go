package shaderutil

import "github.com/hdrscope/pipeline/gpu"

// FixedBindGroupLayout is the two-binding layout every fragment stage uses:
// binding 0 samples the previous stage's output texture, binding 1 reads the
// shared uniform buffer. Every stage in this pipeline shares this shape, so
// BuildStage creates it fresh per stage rather than taking it as a parameter.
func FixedBindGroupLayout(device gpu.Device, label string) (gpu.BindGroupLayout, error) {
	return device.CreateBindGroupLayout(gpu.BindGroupLayoutDescriptor{
		Label: label,
		Entries: []gpu.BindGroupLayoutEntry{
			{Binding: 0, Texture: true},
			{Binding: 1, Buffer: true},
		},
	})
}

// BuildStage compiles the shared fullscreen vertex shader and a stage's
// fragment shader, creates the fixed bind group layout, and links a render
// pipeline targeting colorFormat. On any failure it destroys whatever was
// already created and returns the error, so a caller never has to track
// partial state itself.
//
// fragmentLabel must be the gpu.StageKind string this fragment shader
// implements: gpu/swref keys its software dispatch table on the fragment
// shader's label exactly, so it cannot be decorated with a suffix here.
func BuildStage(device gpu.Device, fragmentLabel gpu.StageKind, fragmentWGSL string, colorFormat gpu.TextureFormat) (*StageResources, error) {
	r := &StageResources{Device: device}

	vs, err := device.CreateShaderModule(gpu.FullscreenVertexLabel, FullscreenVertexWGSL)
	if err != nil {
		return nil, err
	}
	r.VertexShader = vs

	fs, err := device.CreateShaderModule(string(fragmentLabel), fragmentWGSL)
	if err != nil {
		r.Destroy()
		return nil, err
	}
	r.FragmentShader = fs

	layout, err := FixedBindGroupLayout(device, string(fragmentLabel)+":layout")
	if err != nil {
		r.Destroy()
		return nil, err
	}
	r.BindGroupLayout = layout

	pipeline, err := device.CreateRenderPipeline(gpu.RenderPipelineDescriptor{
		Label:           string(fragmentLabel),
		VertexShader:    vs,
		FragmentShader:  fs,
		BindGroupLayout: layout,
		ColorFormat:     colorFormat,
	})
	if err != nil {
		r.Destroy()
		return nil, err
	}
	r.Pipeline = pipeline

	return r, nil
}
