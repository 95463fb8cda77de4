package swref

import (
	"encoding/binary"
	"math"

	"github.com/hdrscope/pipeline/colorscience"
	"github.com/hdrscope/pipeline/gpu"
	"github.com/hdrscope/pipeline/uniform"
)

// Queue executes work synchronously: WriteBuffer/WriteTexture copy directly
// into the target's backing slice, and Submit is a no-op since every
// RenderPassEncoder draw already ran to completion when recorded.
type Queue struct{}

func (q *Queue) WriteBuffer(buf gpu.Buffer, offset uint64, data []byte) {
	b, ok := buf.(*Buffer)
	if !ok {
		return
	}
	copy(b.data[offset:], data)
}

func (q *Queue) WriteTexture(tex gpu.Texture, data []byte, bytesPerRow uint32) {
	t, ok := tex.(*Texture)
	if !ok {
		return
	}
	n := len(t.pixels)

	// Decode according to the texture's declared format, the same way
	// CopyTextureToBuffer encodes on the way out, so a half-float upload
	// and a half-float readback agree on byte layout.
	if t.format == gpu.FormatRGBA32Float {
		if len(data)/4 < n {
			n = len(data) / 4
		}
		for i := 0; i < n; i++ {
			t.pixels[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
		}
		return
	}

	if len(data)/2 < n {
		n = len(data) / 2
	}
	for i := 0; i < n; i++ {
		t.pixels[i] = half16ToFloat32(binary.LittleEndian.Uint16(data[i*2:]))
	}
}

func (q *Queue) Submit(encoder gpu.CommandEncoder) {}

// CommandEncoder records render passes, executing each one immediately
// since swref has no deferred command buffer of its own.
type CommandEncoder struct {
	label string
}

func (e *CommandEncoder) BeginRenderPass(desc gpu.RenderPassDescriptor) gpu.RenderPassEncoder {
	view, _ := desc.ColorTarget.(*TextureView)
	return &RenderPassEncoder{target: view}
}

func (e *CommandEncoder) CopyTextureToBuffer(src gpu.Texture, dst gpu.Buffer, width, height uint32) {
	srcTex, ok1 := src.(*Texture)
	dstBuf, ok2 := dst.(*Buffer)
	if !ok1 || !ok2 {
		return
	}
	n := int(width) * int(height) * 4
	if n > len(srcTex.pixels) {
		n = len(srcTex.pixels)
	}

	// Encode according to the texture's declared format so a caller
	// decoding the staged bytes (readback.decodePixel) sees the same byte
	// layout a real half-float render target would produce.
	if srcTex.format == gpu.FormatRGBA32Float {
		if len(dstBuf.data) < n*4 {
			dstBuf.data = make([]byte, n*4)
		}
		for i := 0; i < n; i++ {
			binary.LittleEndian.PutUint32(dstBuf.data[i*4:], math.Float32bits(srcTex.pixels[i]))
		}
		return
	}

	if len(dstBuf.data) < n*2 {
		dstBuf.data = make([]byte, n*2)
	}
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint16(dstBuf.data[i*2:], float32ToHalf16(srcTex.pixels[i]))
	}
}

// RenderPassEncoder evaluates a stage's software function over every pixel
// of the bound color target when DrawFullScreenTriangle is called; this is
// the entire "fullscreen triangle" draw in a backend with no rasterizer.
type RenderPassEncoder struct {
	target   *TextureView
	pipeline *RenderPipeline
	source   *Texture
	uniforms *Buffer
}

func (p *RenderPassEncoder) SetPipeline(pipeline gpu.RenderPipeline) {
	rp, ok := pipeline.(*RenderPipeline)
	if !ok {
		return
	}
	p.pipeline = rp
}

func (p *RenderPassEncoder) SetBindGroup(index uint32, bg gpu.BindGroup) {
	group, ok := bg.(*BindGroup)
	if !ok {
		return
	}
	p.source = group.sourceTexture
	p.uniforms = group.uniforms
}

func (p *RenderPassEncoder) DrawFullScreenTriangle() {
	if p.target == nil || p.pipeline == nil || p.source == nil || p.uniforms == nil {
		return
	}
	dst := p.target.texture
	settings := uniform.Deserialize(p.uniforms.data)

	for y := uint32(0); y < dst.height; y++ {
		for x := uint32(0); x < dst.width; x++ {
			si := p.source.at(x, y)
			in := colorscience.RGB{R: p.source.pixels[si], G: p.source.pixels[si+1], B: p.source.pixels[si+2]}
			out := p.pipeline.eval(in, settings)

			di := dst.at(x, y)
			dst.pixels[di] = out.R
			dst.pixels[di+1] = out.G
			dst.pixels[di+2] = out.B
			dst.pixels[di+3] = p.source.pixels[si+3]
		}
	}
}

func (p *RenderPassEncoder) End() {}

var (
	_ gpu.Queue             = (*Queue)(nil)
	_ gpu.CommandEncoder    = (*CommandEncoder)(nil)
	_ gpu.RenderPassEncoder = (*RenderPassEncoder)(nil)
)
