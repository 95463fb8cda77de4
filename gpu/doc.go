// Package gpu declares the narrow hardware-abstraction interfaces every
// pipeline component renders through: Device, Queue, Texture, TextureView,
// Buffer, ShaderModule, RenderPipeline, BindGroupLayout, BindGroup,
// CommandEncoder, and RenderPassEncoder.
//
// This is the seam a real github.com/gogpu/wgpu/hal backend (gpu/wgpuhal)
// or the pure-Go software reference backend (gpu/swref) plugs into, mirroring
// the DeviceHandle/Texture/TextureView split in the teacher's render package
// and registered the way backend.Register/backend.Default select among
// rendering backends.
package gpu
