package swref

import (
	"context"

	"github.com/hdrscope/pipeline/gpu"
)

// Texture is an in-process RGBA32F pixel buffer.
type Texture struct {
	width, height uint32
	format        gpu.TextureFormat
	pixels        []float32 // len = width*height*4, row-major, top-to-bottom
}

func (t *Texture) Width() uint32            { return t.width }
func (t *Texture) Height() uint32           { return t.height }
func (t *Texture) Format() gpu.TextureFormat { return t.format }

func (t *Texture) CreateView() gpu.TextureView {
	return &TextureView{texture: t}
}

func (t *Texture) Destroy() {
	t.pixels = nil
}

func (t *Texture) at(x, y uint32) int {
	return int(y*t.width+x) * 4
}

// PixelAt returns the RGBA value stored at (x, y), letting a test inspect a
// software reference render target directly instead of round-tripping
// through a readback.Reader.
func (t *Texture) PixelAt(x, y uint32) (r, g, b, a float32) {
	i := t.at(x, y)
	return t.pixels[i], t.pixels[i+1], t.pixels[i+2], t.pixels[i+3]
}

// TextureView references its owning Texture; swref has no distinct view
// representation since every access goes through the same pixel slice.
type TextureView struct {
	texture *Texture
}

func (v *TextureView) Destroy() {}

// Buffer is a plain byte slice: the uniform buffer, or a readback staging
// buffer.
type Buffer struct {
	data []byte
}

func (b *Buffer) Size() uint64 { return uint64(len(b.data)) }

func (b *Buffer) MapRead(ctx context.Context) ([]byte, error) {
	return b.data, nil
}

func (b *Buffer) Unmap() {}

func (b *Buffer) Destroy() { b.data = nil }

// ShaderModule carries a WGSL source and the gpu.StageKind label that
// selects which stageFunc it corresponds to; swref never compiles the WGSL.
type ShaderModule struct {
	label  string
	source string
}

func (s *ShaderModule) Destroy() {}

// BindGroupLayout is a zero-value marker; swref has no layout validation of
// its own, only the fixed two-binding layout every stage uses.
type BindGroupLayout struct{}

func (l *BindGroupLayout) Destroy() {}

// BindGroup binds the two resources a FragmentStage reads: the previous
// stage's output texture (binding 0) and the shared uniform buffer
// (binding 1).
type BindGroup struct {
	sourceTexture *Texture
	uniforms      *Buffer
}

func (g *BindGroup) Destroy() {}

// RenderPipeline pairs a compiled stage's software evaluation function with
// its label, mirroring gpu.RenderPipeline's role as the compiled unit a
// RenderPassEncoder draws with.
type RenderPipeline struct {
	label string
	eval  stageFunc
}

func (p *RenderPipeline) Destroy() {}

var (
	_ gpu.Texture         = (*Texture)(nil)
	_ gpu.TextureView     = (*TextureView)(nil)
	_ gpu.Buffer          = (*Buffer)(nil)
	_ gpu.ShaderModule    = (*ShaderModule)(nil)
	_ gpu.BindGroupLayout = (*BindGroupLayout)(nil)
	_ gpu.BindGroup       = (*BindGroup)(nil)
	_ gpu.RenderPipeline  = (*RenderPipeline)(nil)
)
