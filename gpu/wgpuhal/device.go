package wgpuhal

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/types"

	"github.com/hdrscope/pipeline/gpu"
	"github.com/hdrscope/pipeline/shaderutil"
)

// Device adapts a real hal.Device/hal.Queue pair, obtained from the host's
// gpu.DeviceHandle, to the gpu.Device interface. The host application is
// expected to supply a DeviceHandle whose Device()/Queue() values also
// satisfy hal.Device/hal.Queue, the same assumption the teacher's
// HALAdapter makes of its device/queue fields.
type Device struct {
	hal   hal.Device
	queue *Queue
}

// NewDevice builds a Device from a gpu.DeviceHandle. It returns an error if
// the handle's Device() does not also implement hal.Device, which is the
// case for gpu.NullDeviceHandle-style stand-ins used in CPU-only runs; those
// should use gpu/swref instead.
func NewDevice(handle gpu.DeviceHandle) (*Device, error) {
	halDevice, ok := handle.Device().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("wgpuhal: device handle does not provide a hal.Device")
	}
	halQueue, ok := handle.Queue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("wgpuhal: device handle does not provide a hal.Queue")
	}
	return &Device{hal: halDevice, queue: &Queue{hal: halQueue}}, nil
}

// CreateTexture forwards to hal.Device.CreateTexture.
func (d *Device) CreateTexture(desc gpu.TextureDescriptor) (gpu.Texture, error) {
	halDesc := &hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          types.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     types.TextureDimension2D,
		Format:        desc.Format,
		Usage:         toHALTextureUsage(desc.Usage),
	}
	halTex, err := d.hal.CreateTexture(halDesc)
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: create texture %q: %w", desc.Label, err)
	}
	return &Texture{hal: halTex, device: d.hal, width: desc.Width, height: desc.Height, format: desc.Format}, nil
}

// CreateBuffer forwards to hal.Device.CreateBuffer.
func (d *Device) CreateBuffer(desc gpu.BufferDescriptor) (gpu.Buffer, error) {
	halDesc := &hal.BufferDescriptor{
		Label: desc.Label,
		Size:  desc.Size,
		Usage: toHALBufferUsage(desc.Usage),
	}
	halBuf, err := d.hal.CreateBuffer(halDesc)
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: create buffer %q: %w", desc.Label, err)
	}
	return &Buffer{hal: halBuf, device: d.hal, size: desc.Size}, nil
}

// CreateShaderModule compiles wgslSource to SPIR-V via shaderutil and hands
// it to hal.Device.CreateShaderModule, mirroring
// internal/native.CreateShaderModule's compile-then-wrap sequence.
func (d *Device) CreateShaderModule(label, wgslSource string) (gpu.ShaderModule, error) {
	spirv, err := shaderutil.CompileToSPIRV(wgslSource)
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: compile shader %q: %w", label, err)
	}
	halMod, err := d.hal.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: create shader module %q: %w", label, err)
	}
	return &ShaderModule{hal: halMod, device: d.hal, hash: fnvHash(wgslSource)}, nil
}

// CreateBindGroupLayout forwards to hal.Device.CreateBindGroupLayout.
func (d *Device) CreateBindGroupLayout(desc gpu.BindGroupLayoutDescriptor) (gpu.BindGroupLayout, error) {
	entries := make([]types.BindGroupLayoutEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entries[i] = types.BindGroupLayoutEntry{Binding: e.Binding}
	}
	halLayout, err := d.hal.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   desc.Label,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: create bind group layout %q: %w", desc.Label, err)
	}
	return &BindGroupLayout{hal: halLayout, device: d.hal}, nil
}

// CreateBindGroup forwards to hal.Device.CreateBindGroup.
func (d *Device) CreateBindGroup(desc gpu.BindGroupDescriptor) (gpu.BindGroup, error) {
	layout, ok := desc.Layout.(*BindGroupLayout)
	if !ok {
		return nil, fmt.Errorf("wgpuhal: bind group layout %q was not created by this device", desc.Label)
	}
	entries := make([]types.BindGroupEntry, len(desc.Entries))
	for i, e := range desc.Entries {
		entry := types.BindGroupEntry{Binding: e.Binding}
		if view, ok := e.TextureView.(*TextureView); ok && view != nil {
			entry.TextureView = view.hal
		}
		if buf, ok := e.Buffer.(*Buffer); ok && buf != nil {
			entry.Buffer = buf.hal
		}
		entries[i] = entry
	}
	halGroup, err := d.hal.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   desc.Label,
		Layout:  layout.hal,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: create bind group %q: %w", desc.Label, err)
	}
	return &BindGroup{hal: halGroup, device: d.hal}, nil
}

// CreateRenderPipeline builds a single-target, blend-disabled render
// pipeline for a fullscreen-triangle fragment stage. Like the teacher's own
// createRenderPipeline, full hal.RenderPipelineDescriptor wiring (depth,
// multisample, vertex buffer layouts) is left for when those features are
// actually needed; this pipeline uses none of them.
func (d *Device) CreateRenderPipeline(desc gpu.RenderPipelineDescriptor) (gpu.RenderPipeline, error) {
	vs, ok := desc.VertexShader.(*ShaderModule)
	if !ok {
		return nil, fmt.Errorf("wgpuhal: vertex shader %q was not created by this device", desc.Label)
	}
	fs, ok := desc.FragmentShader.(*ShaderModule)
	if !ok {
		return nil, fmt.Errorf("wgpuhal: fragment shader %q was not created by this device", desc.Label)
	}
	layout, ok := desc.BindGroupLayout.(*BindGroupLayout)
	if !ok {
		return nil, fmt.Errorf("wgpuhal: bind group layout for pipeline %q was not created by this device", desc.Label)
	}
	pipelineLayout, err := d.hal.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            desc.Label,
		BindGroupLayouts: []hal.BindGroupLayout{layout.hal},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: create pipeline layout %q: %w", desc.Label, err)
	}
	halDesc := &hal.RenderPipelineDescriptor{
		Label:  desc.Label,
		Layout: pipelineLayout,
		Vertex: hal.VertexState{
			Module:     vs.hal,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     fs.hal,
			EntryPoint: "fs_main",
			Targets: []types.ColorTargetState{{
				Format:    desc.ColorFormat,
				WriteMask: types.ColorWriteMaskAll,
			}},
		},
		Primitive: hal.PrimitiveState{
			Topology: types.PrimitiveTopologyTriangleList,
		},
		Multisample: hal.MultisampleState{Count: 1},
	}
	halPipeline, err := d.hal.CreateRenderPipeline(halDesc)
	if err != nil {
		d.hal.DestroyPipelineLayout(pipelineLayout)
		return nil, fmt.Errorf("wgpuhal: create render pipeline %q: %w", desc.Label, err)
	}
	return &RenderPipeline{hal: halPipeline, layout: pipelineLayout, device: d.hal}, nil
}

// CreateCommandEncoder forwards to hal.Device.CreateCommandEncoder.
func (d *Device) CreateCommandEncoder(label string) gpu.CommandEncoder {
	halEncoder, err := d.hal.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return &CommandEncoder{err: fmt.Errorf("wgpuhal: create command encoder %q: %w", label, err)}
	}
	return &CommandEncoder{hal: halEncoder, device: d.hal}
}

// Queue returns the device's submission queue.
func (d *Device) Queue() gpu.Queue { return d.queue }

func toHALTextureUsage(u gpu.TextureUsage) types.TextureUsage {
	var out types.TextureUsage
	if u&gpu.TextureUsageCopySrc != 0 {
		out |= types.TextureUsageCopySrc
	}
	if u&gpu.TextureUsageCopyDst != 0 {
		out |= types.TextureUsageCopyDst
	}
	if u&gpu.TextureUsageTextureBinding != 0 {
		out |= types.TextureUsageTextureBinding
	}
	if u&gpu.TextureUsageStorageBinding != 0 {
		out |= types.TextureUsageStorageBinding
	}
	if u&gpu.TextureUsageRenderAttachment != 0 {
		out |= types.TextureUsageRenderAttachment
	}
	return out
}

func toHALBufferUsage(u gpu.BufferUsage) types.BufferUsage {
	var out types.BufferUsage
	if u&gpu.BufferUsageMapRead != 0 {
		out |= types.BufferUsageMapRead
	}
	if u&gpu.BufferUsageMapWrite != 0 {
		out |= types.BufferUsageMapWrite
	}
	if u&gpu.BufferUsageCopySrc != 0 {
		out |= types.BufferUsageCopySrc
	}
	if u&gpu.BufferUsageCopyDst != 0 {
		out |= types.BufferUsageCopyDst
	}
	if u&gpu.BufferUsageUniform != 0 {
		out |= types.BufferUsageUniform
	}
	return out
}

var _ gpu.Device = (*Device)(nil)
