package swref

import (
	"testing"

	"github.com/hdrscope/pipeline/colorscience"
	"github.com/hdrscope/pipeline/gpu"
	"github.com/hdrscope/pipeline/uniform"
)

func setPixel(t *Texture, x, y uint32, c colorscience.RGB, a float32) {
	i := t.at(x, y)
	t.pixels[i], t.pixels[i+1], t.pixels[i+2], t.pixels[i+3] = c.R, c.G, c.B, a
}

func getPixel(t *Texture, x, y uint32) colorscience.RGB {
	i := t.at(x, y)
	return colorscience.RGB{R: t.pixels[i], G: t.pixels[i+1], B: t.pixels[i+2]}
}

// runStage draws one FragmentStage in isolation: src -> dst, reading
// settings from a freshly uploaded uniform buffer.
func runStage(t *testing.T, dev *Device, kind gpu.StageKind, src *Texture, s uniform.PipelineSettings) *Texture {
	t.Helper()

	dst, err := dev.CreateTexture(gpu.TextureDescriptor{Label: string(kind), Width: src.width, Height: src.height, Format: gpu.FormatRGBA16Float})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}

	fragShader, err := dev.CreateShaderModule(string(kind), "/* wgsl not executed by swref */")
	if err != nil {
		t.Fatalf("CreateShaderModule: %v", err)
	}
	pipeline, err := dev.CreateRenderPipeline(gpu.RenderPipelineDescriptor{Label: string(kind), FragmentShader: fragShader})
	if err != nil {
		t.Fatalf("CreateRenderPipeline(%s): %v", kind, err)
	}

	ubuf, err := dev.CreateBuffer(gpu.BufferDescriptor{Label: "uniforms", Size: uniform.BufferSize, Usage: gpu.BufferUsageUniform | gpu.BufferUsageCopyDst})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	buf := uniform.Serialize(s)
	dev.Queue().WriteBuffer(ubuf, 0, buf[:])

	srcView := src.CreateView()
	bg, err := dev.CreateBindGroup(gpu.BindGroupDescriptor{
		Entries: []gpu.BindGroupEntry{
			{Binding: 0, TextureView: srcView},
			{Binding: 1, Buffer: ubuf},
		},
	})
	if err != nil {
		t.Fatalf("CreateBindGroup: %v", err)
	}

	dstView := dst.CreateView()
	encoder := dev.CreateCommandEncoder(string(kind))
	pass := encoder.BeginRenderPass(gpu.RenderPassDescriptor{ColorTarget: dstView})
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bg)
	pass.DrawFullScreenTriangle()
	pass.End()
	dev.Queue().Submit(encoder)

	return dst.(*Texture)
}

func TestSixStagesMatchEvaluate(t *testing.T) {
	dev := NewDevice()
	settings := uniform.DefaultSettings()
	settings.InputSpace = uniform.ColorSpaceACEScg
	settings.TonemapOp = uniform.TonemapACESFit
	settings.OutputSpace = uniform.ColorSpaceSRGB

	src, _ := dev.CreateTexture(gpu.TextureDescriptor{Width: 1, Height: 1, Format: gpu.FormatRGBA32Float})
	input := colorscience.RGB{R: 0.5, G: 0.3, B: 0.1}
	setPixel(src.(*Texture), 0, 0, input, 1)

	stages := []gpu.StageKind{
		gpu.StageInputInterpretation, gpu.StageColorGrade, gpu.StageRRT,
		gpu.StageODT, gpu.StageOutputEncoding, gpu.StageDisplayRemap,
	}

	current := src.(*Texture)
	for _, kind := range stages {
		current = runStage(t, dev, kind, current, settings)
	}

	got := getPixel(current, 0, 0)
	want := colorscience.Evaluate(input, settings)

	const eps = 1e-5
	if abs32(got.R-want.R) > eps || abs32(got.G-want.G) > eps || abs32(got.B-want.B) > eps {
		t.Errorf("six-stage swref result = %+v, want %+v (colorscience.Evaluate)", got, want)
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestCreateRenderPipelineRejectsUnknownStage(t *testing.T) {
	dev := NewDevice()
	fs, _ := dev.CreateShaderModule("not-a-real-stage", "")
	_, err := dev.CreateRenderPipeline(gpu.RenderPipelineDescriptor{FragmentShader: fs})
	if err == nil {
		t.Fatal("CreateRenderPipeline() = nil error, want error for unregistered stage label")
	}
}
