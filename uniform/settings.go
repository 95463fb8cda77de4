package uniform

import "fmt"

// BufferSize is the fixed size in bytes of the serialised uniform buffer.
// Every shader's uniform block mirrors this layout exactly.
const BufferSize = 512

// PipelineSettings is the flat record of every scalar, triple, boolean, and
// enum that controls the color pipeline. It is the only configuration
// surface the core exposes; there is no file, environment, or persisted
// state (SPEC_FULL.md §6).
type PipelineSettings struct {
	InputSpace    ColorSpace
	GradingSpace  GradingSpace
	GradeExposure float32
	Contrast      float32
	Saturation    float32
	Temperature   float32
	Tint          float32
	Highlights    float32
	Shadows       float32
	Vibrance      float32

	Lift           Vec3
	Gamma          Vec3
	Gain           Vec3
	Offset         Vec3
	ShadowColor    Vec3
	MidtoneColor   Vec3
	HighlightColor Vec3

	HighlightSoftClip float32
	ShadowSoftClip    float32
	HighlightKnee     float32
	ShadowKnee        float32

	OutputSpace     ColorSpace
	TonemapOp       TonemapOp
	TonemapExposure float32
	WhitePoint      float32
	PaperWhite      float32
	PeakBrightness  float32
	BlackLevel      float32
	WhiteLevel      float32

	BCEnabled  bool
	RRTEnabled bool
	ODTEnabled bool

	BCFormat  BCFormat
	BCQuality BCQuality

	ViewExposure float32
}

// DefaultSettings returns a PipelineSettings with every grading parameter at
// its identity value: no exposure, unity contrast/saturation/gain/gamma,
// zero lift/offset/temperature/tint, tonemap None, black/white level 0/1.
// Feeding this through the Color Grade stage is a passthrough to within
// half-precision rounding (SPEC_FULL.md §8, "Stage-5 passthrough").
func DefaultSettings() PipelineSettings {
	return PipelineSettings{
		InputSpace:   ColorSpaceLinearRec709,
		GradingSpace: GradingSpaceLinear,

		Contrast:   1,
		Saturation: 1,

		Lift:           Vec3{0, 0, 0},
		Gamma:          Vec3{1, 1, 1},
		Gain:           Vec3{1, 1, 1},
		Offset:         Vec3{0, 0, 0},
		ShadowColor:    Vec3{0, 0, 0},
		MidtoneColor:   Vec3{0, 0, 0},
		HighlightColor: Vec3{0, 0, 0},

		OutputSpace:    ColorSpaceLinearRec709,
		TonemapOp:      TonemapNone,
		WhitePoint:     1,
		PaperWhite:     100,
		PeakBrightness: 1000,
		WhiteLevel:     1,

		RRTEnabled: true,
		ODTEnabled: true,
	}
}

// Validate checks the two invariants SPEC_FULL.md/spec.md §3 require beyond
// the type system: blackLevel <= whiteLevel, and both color spaces are
// valid discriminants.
func (s *PipelineSettings) Validate() error {
	if s.BlackLevel > s.WhiteLevel {
		return fmt.Errorf("uniform: blackLevel %g exceeds whiteLevel %g", s.BlackLevel, s.WhiteLevel)
	}
	if !s.InputSpace.Valid() {
		return fmt.Errorf("uniform: invalid inputSpace %d", int32(s.InputSpace))
	}
	if !s.OutputSpace.Valid() {
		return fmt.Errorf("uniform: invalid outputSpace %d", int32(s.OutputSpace))
	}
	if !s.GradingSpace.Valid() {
		return fmt.Errorf("uniform: invalid gradingSpace %d", int32(s.GradingSpace))
	}
	if !s.TonemapOp.Valid() {
		return fmt.Errorf("uniform: invalid tonemapOp %d", int32(s.TonemapOp))
	}
	return nil
}
