package gpu

import (
	"context"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// DeviceHandle is the external GPU adapter/device provider the pipeline core
// consumes; it never creates its own device. This is a gpu-package-local
// name for gpucontext.DeviceProvider, the same alias the teacher's render
// package exposes as DeviceHandle.
type DeviceHandle = gpucontext.DeviceProvider

// TextureFormat mirrors the WebGPU texture format enum, reusing
// github.com/gogpu/gputypes directly so a real wgpu texture never needs
// translating at the boundary.
type TextureFormat = gputypes.TextureFormat

// Canonical formats the pipeline creates render targets and staging buffers
// in. RGBA16Float is the inter-stage format every FragmentStage writes;
// RGBA32Float backs the intermediate upload texture for UploadFloat32.
const (
	FormatRGBA16Float = gputypes.TextureFormatRGBA16Float
	FormatRGBA32Float = gputypes.TextureFormatRGBA32Float
)

// Compressed formats source.Loader uploads a parsed DDS's raw block bytes
// into, one per dds.DXGIFormat the parser recognises as block-compressed.
// The compressed texture is sampled by a one-shot decompress pass and
// destroyed immediately after (source.UploadDDS), never kept as a
// long-lived stage input.
const (
	FormatBC1UnormSRGB = gputypes.TextureFormatBC1RGBAUnormSRGB
	FormatBC1Unorm     = gputypes.TextureFormatBC1RGBAUnorm
	FormatBC2UnormSRGB = gputypes.TextureFormatBC2RGBAUnormSRGB
	FormatBC2Unorm     = gputypes.TextureFormatBC2RGBAUnorm
	FormatBC3UnormSRGB = gputypes.TextureFormatBC3RGBAUnormSRGB
	FormatBC3Unorm     = gputypes.TextureFormatBC3RGBAUnorm
	FormatBC4Unorm     = gputypes.TextureFormatBC4RUnorm
	FormatBC4SNorm     = gputypes.TextureFormatBC4RSNorm
	FormatBC5Unorm     = gputypes.TextureFormatBC5RGUnorm
	FormatBC5SNorm     = gputypes.TextureFormatBC5RGSNorm
	FormatBC6HUF16     = gputypes.TextureFormatBC6HRGBUFloat
	FormatBC6HSF16     = gputypes.TextureFormatBC6HRGBFloat
	FormatBC7Unorm     = gputypes.TextureFormatBC7RGBAUnorm
	FormatBC7UnormSRGB = gputypes.TextureFormatBC7RGBAUnormSRGB
)

// TextureUsage is a bitmask of how a texture will be bound and accessed,
// matching WebGPU's GPUTextureUsage flags.
type TextureUsage uint32

// Texture usage flags.
const (
	TextureUsageCopySrc TextureUsage = 1 << iota
	TextureUsageCopyDst
	TextureUsageTextureBinding
	TextureUsageStorageBinding
	TextureUsageRenderAttachment
)

// TextureDescriptor describes a 2D texture to create. Depth/array layers and
// mip chains beyond level 0 are out of scope for this pipeline.
type TextureDescriptor struct {
	Label  string
	Width  uint32
	Height uint32
	Format TextureFormat
	Usage  TextureUsage
}

// Texture is a 2D GPU texture resource.
type Texture interface {
	Width() uint32
	Height() uint32
	Format() TextureFormat
	CreateView() TextureView
	Destroy()
}

// TextureView is a view into a Texture, bound to a shader stage or used as a
// render-pass attachment.
type TextureView interface {
	Destroy()
}

// BufferUsage is a bitmask of how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	BufferUsageMapRead BufferUsage = 1 << iota
	BufferUsageMapWrite
	BufferUsageCopySrc
	BufferUsageCopyDst
	BufferUsageUniform
)

// BufferDescriptor describes a buffer to create.
type BufferDescriptor struct {
	Label string
	Size  uint64
	Usage BufferUsage
}

// Buffer is a GPU buffer resource: the shared uniform buffer, or a staging
// buffer for pixel readback.
type Buffer interface {
	Size() uint64
	// MapRead blocks until the buffer's contents are mapped for reading and
	// returns a view over them; the caller must call Unmap when done.
	MapRead(ctx context.Context) ([]byte, error)
	Unmap()
	Destroy()
}

// ShaderModule is a compiled fragment or vertex shader.
type ShaderModule interface {
	Destroy()
}

// BindGroupLayoutEntry describes one binding slot: binding 0 is the sampled
// source texture, binding 1 is the shared uniform buffer, matching every
// FragmentStage's fixed layout.
type BindGroupLayoutEntry struct {
	Binding uint32
	Texture bool
	Buffer  bool
}

// BindGroupLayoutDescriptor describes a bind group layout.
type BindGroupLayoutDescriptor struct {
	Label   string
	Entries []BindGroupLayoutEntry
}

// BindGroupLayout groups the binding slots a RenderPipeline expects.
type BindGroupLayout interface {
	Destroy()
}

// BindGroupEntry binds one resource to a layout slot.
type BindGroupEntry struct {
	Binding     uint32
	TextureView TextureView
	Buffer      Buffer
}

// BindGroupDescriptor describes a bind group: a concrete set of resources
// satisfying a BindGroupLayout.
type BindGroupDescriptor struct {
	Label   string
	Layout  BindGroupLayout
	Entries []BindGroupEntry
}

// BindGroup is a concrete binding of resources to a pipeline's layout.
type BindGroup interface {
	Destroy()
}

// RenderPipelineDescriptor describes a render pipeline: the fullscreen
// vertex shader plus one stage's fragment shader, targeting a single
// float render attachment with blending disabled.
type RenderPipelineDescriptor struct {
	Label           string
	VertexShader    ShaderModule
	FragmentShader  ShaderModule
	BindGroupLayout BindGroupLayout
	ColorFormat     TextureFormat
}

// RenderPipeline is a compiled render pipeline. A nil-valued implementation
// (or a Device.CreateRenderPipeline error) marks the owning stage as failed;
// FragmentStage.Encode skips the draw entirely in that case.
type RenderPipeline interface {
	Destroy()
}

// Device creates and owns GPU resources. It is obtained from a DeviceHandle
// at pipeline initialisation and used for every resource allocation
// thereafter.
type Device interface {
	CreateTexture(desc TextureDescriptor) (Texture, error)
	CreateBuffer(desc BufferDescriptor) (Buffer, error)
	CreateShaderModule(label, wgslSource string) (ShaderModule, error)
	CreateBindGroupLayout(desc BindGroupLayoutDescriptor) (BindGroupLayout, error)
	CreateBindGroup(desc BindGroupDescriptor) (BindGroup, error)
	CreateRenderPipeline(desc RenderPipelineDescriptor) (RenderPipeline, error)
	CreateCommandEncoder(label string) CommandEncoder
	Queue() Queue
}

// Queue submits command buffers and writes buffer/texture contents.
type Queue interface {
	WriteBuffer(buf Buffer, offset uint64, data []byte)
	WriteTexture(tex Texture, data []byte, bytesPerRow uint32)
	Submit(encoder CommandEncoder)
}

// RenderPassDescriptor describes a single render pass: one color attachment,
// cleared to transparent, no depth/stencil.
type RenderPassDescriptor struct {
	Label       string
	ColorTarget TextureView
}

// CommandEncoder records GPU commands into a single command buffer, matching
// the teacher's CommandEncoder/RenderPass split (backend/native/commands.go)
// but trimmed to the fullscreen-triangle-only draws this pipeline issues.
type CommandEncoder interface {
	BeginRenderPass(desc RenderPassDescriptor) RenderPassEncoder
	CopyTextureToBuffer(src Texture, dst Buffer, width, height uint32)
}

// RenderPassEncoder records draw commands within one render pass.
type RenderPassEncoder interface {
	SetPipeline(p RenderPipeline)
	SetBindGroup(index uint32, bg BindGroup)
	// DrawFullScreenTriangle issues the single draw call every FragmentStage
	// makes: 3 vertices, 1 instance, no vertex or index buffer, matching the
	// teacher's CommandEncoder.DrawFullScreenTriangle() = p.Draw(3, 1, 0, 0).
	DrawFullScreenTriangle()
	End()
}
