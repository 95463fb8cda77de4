package uniform

import (
	"encoding/binary"
	"math"
)

// FieldKind identifies the wire type of a uniform field for LayoutDescriptor.
type FieldKind int

// Field kinds used in the binary layout.
const (
	FieldI32 FieldKind = iota
	FieldF32
	FieldVec3
	FieldPad
)

func (k FieldKind) String() string {
	switch k {
	case FieldI32:
		return "i32"
	case FieldF32:
		return "f32"
	case FieldVec3:
		return "vec3+pad"
	case FieldPad:
		return "pad"
	default:
		return "unknown"
	}
}

// FieldDescriptor names one field of the serialised layout: its offset and
// size in bytes and its wire kind. Tests diff this against the shader's own
// struct declaration to catch layout drift early.
type FieldDescriptor struct {
	Name   string
	Kind   FieldKind
	Offset int
	Size   int
}

// LayoutDescriptor returns the ordered field table backing Serialize: the
// offsets in SPEC_FULL.md §6 plus the derived isAcesTonemap field at offset
// 232, which that table does not list. It allocates on every call; it is
// meant for tests and diagnostics, not the render hot path.
func LayoutDescriptor() []FieldDescriptor {
	return []FieldDescriptor{
		{"inputSpace", FieldI32, 0, 4},
		{"gradingSpace", FieldI32, 4, 4},
		{"gradeExposure", FieldF32, 8, 4},
		{"contrast", FieldF32, 12, 4},
		{"saturation", FieldF32, 16, 4},
		{"temperature", FieldF32, 20, 4},
		{"tint", FieldF32, 24, 4},
		{"highlights", FieldF32, 28, 4},
		{"shadows", FieldF32, 32, 4},
		{"vibrance", FieldF32, 36, 4},
		{"pad0", FieldPad, 40, 8},
		{"lift", FieldVec3, 48, 16},
		{"gamma", FieldVec3, 64, 16},
		{"gain", FieldVec3, 80, 16},
		{"offset", FieldVec3, 96, 16},
		{"shadowColor", FieldVec3, 112, 16},
		{"midtoneColor", FieldVec3, 128, 16},
		{"highlightColor", FieldVec3, 144, 16},
		{"highlightSoftClip", FieldF32, 160, 4},
		{"shadowSoftClip", FieldF32, 164, 4},
		{"highlightKnee", FieldF32, 168, 4},
		{"shadowKnee", FieldF32, 172, 4},
		{"outputSpace", FieldI32, 176, 4},
		{"tonemapOp", FieldI32, 180, 4},
		{"tonemapExposure", FieldF32, 184, 4},
		{"whitePoint", FieldF32, 188, 4},
		{"paperWhite", FieldF32, 192, 4},
		{"peakBrightness", FieldF32, 196, 4},
		{"blackLevel", FieldF32, 200, 4},
		{"whiteLevel", FieldF32, 204, 4},
		{"bcEnabled", FieldI32, 208, 4},
		{"rrtEnabled", FieldI32, 212, 4},
		{"odtEnabled", FieldI32, 216, 4},
		{"bcFormat", FieldI32, 220, 4},
		{"bcQuality", FieldI32, 224, 4},
		{"viewExposure", FieldF32, 228, 4},
		{"isAcesTonemap", FieldI32, 232, 4},
		{"tail", FieldPad, 236, BufferSize - 236},
	}
}

func putBool32(dst []byte, off int, v bool) {
	if v {
		binary.LittleEndian.PutUint32(dst[off:], 1)
	} else {
		binary.LittleEndian.PutUint32(dst[off:], 0)
	}
}

func putF32(dst []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(v))
}

func putI32(dst []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(dst[off:], uint32(v))
}

func putVec3(dst []byte, off int, v Vec3) {
	putF32(dst, off, v.X)
	putF32(dst, off+4, v.Y)
	putF32(dst, off+8, v.Z)
	binary.LittleEndian.PutUint32(dst[off+12:], 0)
}

// Serialize packs settings into a freshly allocated 512-byte buffer at the
// fixed offsets in SPEC_FULL.md §6. Serialisation never fails: the type
// system constrains every field's shape before it reaches this call.
func Serialize(settings PipelineSettings) [BufferSize]byte {
	var buf [BufferSize]byte
	SerializeInto(buf[:], settings)
	return buf
}

// SerializeInto packs settings into dst, which must be at least BufferSize
// bytes long. It performs no allocation, making it safe to call on every
// UpdateUniforms with a reused buffer.
func SerializeInto(dst []byte, settings PipelineSettings) {
	_ = dst[BufferSize-1] // bounds check once, up front

	putI32(dst, 0, int32(settings.InputSpace))
	putI32(dst, 4, int32(settings.GradingSpace))
	putF32(dst, 8, settings.GradeExposure)
	putF32(dst, 12, settings.Contrast)
	putF32(dst, 16, settings.Saturation)
	putF32(dst, 20, settings.Temperature)
	putF32(dst, 24, settings.Tint)
	putF32(dst, 28, settings.Highlights)
	putF32(dst, 32, settings.Shadows)
	putF32(dst, 36, settings.Vibrance)

	for i := 40; i < 48; i++ {
		dst[i] = 0
	}

	putVec3(dst, 48, settings.Lift)
	putVec3(dst, 64, settings.Gamma)
	putVec3(dst, 80, settings.Gain)
	putVec3(dst, 96, settings.Offset)
	putVec3(dst, 112, settings.ShadowColor)
	putVec3(dst, 128, settings.MidtoneColor)
	putVec3(dst, 144, settings.HighlightColor)

	putF32(dst, 160, settings.HighlightSoftClip)
	putF32(dst, 164, settings.ShadowSoftClip)
	putF32(dst, 168, settings.HighlightKnee)
	putF32(dst, 172, settings.ShadowKnee)

	putI32(dst, 176, int32(settings.OutputSpace))
	putI32(dst, 180, int32(settings.TonemapOp))
	putF32(dst, 184, settings.TonemapExposure)
	putF32(dst, 188, settings.WhitePoint)
	putF32(dst, 192, settings.PaperWhite)
	putF32(dst, 196, settings.PeakBrightness)
	putF32(dst, 200, settings.BlackLevel)
	putF32(dst, 204, settings.WhiteLevel)

	putBool32(dst, 208, settings.BCEnabled)
	putBool32(dst, 212, settings.RRTEnabled)
	putBool32(dst, 216, settings.ODTEnabled)

	putI32(dst, 220, int32(settings.BCFormat))
	putI32(dst, 224, int32(settings.BCQuality))

	putF32(dst, 228, settings.ViewExposure)

	// isAcesTonemap is derived from TonemapOp rather than stored on
	// PipelineSettings: shaders need the ACES-routing decision but must not
	// re-derive it from tonemapOp's numeric value: the two ACES entries (2
	// and 3) sit between non-ACES operators, so no single range check
	// selects them.
	putBool32(dst, 232, settings.TonemapOp.IsACES())

	for i := 236; i < BufferSize; i++ {
		dst[i] = 0
	}
}

func getF32(src []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(src[off:]))
}

func getI32(src []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(src[off:]))
}

func getBool32(src []byte, off int) bool {
	return binary.LittleEndian.Uint32(src[off:]) != 0
}

func getVec3(src []byte, off int) Vec3 {
	return Vec3{X: getF32(src, off), Y: getF32(src, off+4), Z: getF32(src, off+8)}
}

// Deserialize unpacks a PipelineSettings from a buffer previously produced by
// Serialize/SerializeInto. It is the inverse used by a software device
// (gpu/swref) that executes stage math directly against the uniform bytes
// rather than through a compiled shader.
func Deserialize(src []byte) PipelineSettings {
	_ = src[BufferSize-1]

	return PipelineSettings{
		InputSpace:    ColorSpace(getI32(src, 0)),
		GradingSpace:  GradingSpace(getI32(src, 4)),
		GradeExposure: getF32(src, 8),
		Contrast:      getF32(src, 12),
		Saturation:    getF32(src, 16),
		Temperature:   getF32(src, 20),
		Tint:          getF32(src, 24),
		Highlights:    getF32(src, 28),
		Shadows:       getF32(src, 32),
		Vibrance:      getF32(src, 36),

		Lift:           getVec3(src, 48),
		Gamma:          getVec3(src, 64),
		Gain:           getVec3(src, 80),
		Offset:         getVec3(src, 96),
		ShadowColor:    getVec3(src, 112),
		MidtoneColor:   getVec3(src, 128),
		HighlightColor: getVec3(src, 144),

		HighlightSoftClip: getF32(src, 160),
		ShadowSoftClip:    getF32(src, 164),
		HighlightKnee:     getF32(src, 168),
		ShadowKnee:        getF32(src, 172),

		OutputSpace:     ColorSpace(getI32(src, 176)),
		TonemapOp:       TonemapOp(getI32(src, 180)),
		TonemapExposure: getF32(src, 184),
		WhitePoint:      getF32(src, 188),
		PaperWhite:      getF32(src, 192),
		PeakBrightness:  getF32(src, 196),
		BlackLevel:      getF32(src, 200),
		WhiteLevel:      getF32(src, 204),

		BCEnabled:  getBool32(src, 208),
		RRTEnabled: getBool32(src, 212),
		ODTEnabled: getBool32(src, 216),

		BCFormat:  BCFormat(getI32(src, 220)),
		BCQuality: BCQuality(getI32(src, 224)),

		ViewExposure: getF32(src, 228),
	}
}
