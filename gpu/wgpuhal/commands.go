package wgpuhal

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/hdrscope/pipeline/gpu"
)

// Queue wraps hal.Queue. WriteBuffer/WriteTexture/Submit mirror the calls
// backend/native.HALAdapter makes against its queue field.
type Queue struct {
	hal hal.Queue
}

func (q *Queue) WriteBuffer(buf gpu.Buffer, offset uint64, data []byte) {
	b, ok := buf.(*Buffer)
	if !ok {
		return
	}
	q.hal.WriteBuffer(b.hal, offset, data)
}

func (q *Queue) WriteTexture(tex gpu.Texture, data []byte, bytesPerRow uint32) {
	t, ok := tex.(*Texture)
	if !ok {
		return
	}
	q.hal.WriteTexture(t.hal, data, hal.TextureDataLayout{BytesPerRow: bytesPerRow}, hal.Extent3D{Width: t.width, Height: t.height, DepthOrArrayLayers: 1})
}

func (q *Queue) Submit(encoder gpu.CommandEncoder) {
	e, ok := encoder.(*CommandEncoder)
	if !ok || e.err != nil {
		return
	}
	cmdBuffer := e.hal.Finish()
	_ = q.hal.Submit([]hal.CommandBuffer{cmdBuffer}, nil, 0)
}

// CommandEncoder wraps hal.CommandEncoder. A non-nil err means construction
// failed; every method becomes a no-op so callers can defer cleanup
// unconditionally, matching the rest of this package's error-at-creation
// style.
type CommandEncoder struct {
	hal    hal.CommandEncoder
	device hal.Device
	err    error
}

func (e *CommandEncoder) BeginRenderPass(desc gpu.RenderPassDescriptor) gpu.RenderPassEncoder {
	if e.err != nil {
		return &RenderPassEncoder{err: e.err}
	}
	view, ok := desc.ColorTarget.(*TextureView)
	if !ok {
		return &RenderPassEncoder{err: fmt.Errorf("wgpuhal: render pass color target was not created by this device")}
	}
	halPass, err := e.hal.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: desc.Label,
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    view.hal,
			LoadOp:  hal.LoadOpClear,
			StoreOp: hal.StoreOpStore,
		}},
	})
	if err != nil {
		return &RenderPassEncoder{err: fmt.Errorf("wgpuhal: begin render pass %q: %w", desc.Label, err)}
	}
	return &RenderPassEncoder{hal: halPass}
}

func (e *CommandEncoder) CopyTextureToBuffer(src gpu.Texture, dst gpu.Buffer, width, height uint32) {
	if e.err != nil {
		return
	}
	srcTex, ok1 := src.(*Texture)
	dstBuf, ok2 := dst.(*Buffer)
	if !ok1 || !ok2 {
		return
	}
	e.hal.CopyTextureToBuffer(srcTex.hal, dstBuf.hal, hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1})
}

// RenderPassEncoder wraps hal.RenderPassEncoder.
type RenderPassEncoder struct {
	hal hal.RenderPassEncoder
	err error
}

func (p *RenderPassEncoder) SetPipeline(pipeline gpu.RenderPipeline) {
	if p.err != nil {
		return
	}
	rp, ok := pipeline.(*RenderPipeline)
	if !ok {
		return
	}
	p.hal.SetPipeline(rp.hal)
}

func (p *RenderPassEncoder) SetBindGroup(index uint32, bg gpu.BindGroup) {
	if p.err != nil {
		return
	}
	group, ok := bg.(*BindGroup)
	if !ok {
		return
	}
	p.hal.SetBindGroup(index, group.hal, nil)
}

func (p *RenderPassEncoder) DrawFullScreenTriangle() {
	if p.err != nil {
		return
	}
	p.hal.Draw(3, 1, 0, 0)
}

func (p *RenderPassEncoder) End() {
	if p.err != nil {
		return
	}
	p.hal.End()
}

var (
	_ gpu.Queue             = (*Queue)(nil)
	_ gpu.CommandEncoder    = (*CommandEncoder)(nil)
	_ gpu.RenderPassEncoder = (*RenderPassEncoder)(nil)
)
