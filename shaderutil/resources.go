package shaderutil

import "github.com/hdrscope/pipeline/gpu"

// StageResources tracks the GPU objects one compiled fragment stage owns:
// its shader modules, bind group layout, and render pipeline. Destroy tears
// them down in dependency order, the same pipelines-before-layouts-before-
// modules order internal/native.GPUResources.Destroy uses.
type StageResources struct {
	Device          gpu.Device
	VertexShader    gpu.ShaderModule
	FragmentShader  gpu.ShaderModule
	BindGroupLayout gpu.BindGroupLayout
	Pipeline        gpu.RenderPipeline
}

// Destroy releases every resource that was successfully created, in the
// order a render pipeline must be torn down: the pipeline first, since it
// references the layout and shader modules, then the layout, then the
// modules themselves. Nil fields are skipped so a partially constructed
// StageResources (a stage whose shader failed to compile) can still be
// destroyed safely.
func (r *StageResources) Destroy() {
	if r == nil {
		return
	}
	if r.Pipeline != nil {
		r.Pipeline.Destroy()
	}
	if r.BindGroupLayout != nil {
		r.BindGroupLayout.Destroy()
	}
	if r.FragmentShader != nil {
		r.FragmentShader.Destroy()
	}
	if r.VertexShader != nil {
		r.VertexShader.Destroy()
	}
}
