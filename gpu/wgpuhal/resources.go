package wgpuhal

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/gogpu/wgpu/hal"

	"github.com/hdrscope/pipeline/gpu"
)

// Texture wraps a hal.Texture with the same lazy-default-view pattern the
// teacher's backend/native.Texture uses.
type Texture struct {
	hal    hal.Texture
	device hal.Device

	width, height uint32
	format        gpu.TextureFormat

	viewOnce sync.Once
	view     *TextureView
	viewErr  error
}

func (t *Texture) Width() uint32            { return t.width }
func (t *Texture) Height() uint32           { return t.height }
func (t *Texture) Format() gpu.TextureFormat { return t.format }

func (t *Texture) CreateView() gpu.TextureView {
	halView, err := t.device.CreateTextureView(t.hal, &hal.TextureViewDescriptor{})
	if err != nil {
		return &TextureView{err: fmt.Errorf("wgpuhal: create texture view: %w", err)}
	}
	return &TextureView{hal: halView, device: t.device}
}

func (t *Texture) Destroy() {
	t.device.DestroyTexture(t.hal)
}

// TextureView wraps a hal.TextureView.
type TextureView struct {
	hal    hal.TextureView
	device hal.Device
	err    error
}

func (v *TextureView) Destroy() {
	if v.hal == nil {
		return
	}
	v.device.DestroyTextureView(v.hal)
}

// Buffer wraps a hal.Buffer.
type Buffer struct {
	hal    hal.Buffer
	device hal.Device
	size   uint64
}

func (b *Buffer) Size() uint64 { return b.size }

func (b *Buffer) MapRead(ctx context.Context) ([]byte, error) {
	data, err := b.device.MapBuffer(b.hal, hal.MapModeRead, 0, b.size)
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: map buffer for read: %w", err)
	}
	return data, nil
}

func (b *Buffer) Unmap() {
	b.device.UnmapBuffer(b.hal)
}

func (b *Buffer) Destroy() {
	b.device.DestroyBuffer(b.hal)
}

// ShaderModule wraps a hal.ShaderModule, keeping an FNV-1a hash of its
// source for pipeline cache keys (see gpu.HashRenderPipelineDescriptor).
type ShaderModule struct {
	hal    hal.ShaderModule
	device hal.Device
	hash   uint64
}

func (s *ShaderModule) Destroy() {
	s.device.DestroyShaderModule(s.hal)
}

// IdentityHash satisfies gpu's shaderIdentity interface so the pipeline
// cache can key on shader content rather than pointer identity.
func (s *ShaderModule) IdentityHash() uint64 { return s.hash }

func fnvHash(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

// BindGroupLayout wraps a hal.BindGroupLayout.
type BindGroupLayout struct {
	hal    hal.BindGroupLayout
	device hal.Device
}

func (l *BindGroupLayout) Destroy() {
	l.device.DestroyBindGroupLayout(l.hal)
}

// BindGroup wraps a hal.BindGroup.
type BindGroup struct {
	hal    hal.BindGroup
	device hal.Device
}

func (g *BindGroup) Destroy() {
	g.device.DestroyBindGroup(g.hal)
}

// RenderPipeline wraps a hal.RenderPipeline and the hal.PipelineLayout
// created alongside it.
type RenderPipeline struct {
	hal    hal.RenderPipeline
	layout hal.PipelineLayout
	device hal.Device
}

func (p *RenderPipeline) Destroy() {
	p.device.DestroyRenderPipeline(p.hal)
	if p.layout != nil {
		p.device.DestroyPipelineLayout(p.layout)
	}
}

var (
	_ gpu.Texture         = (*Texture)(nil)
	_ gpu.TextureView     = (*TextureView)(nil)
	_ gpu.Buffer          = (*Buffer)(nil)
	_ gpu.ShaderModule    = (*ShaderModule)(nil)
	_ gpu.BindGroupLayout = (*BindGroupLayout)(nil)
	_ gpu.BindGroup       = (*BindGroup)(nil)
	_ gpu.RenderPipeline  = (*RenderPipeline)(nil)
)
