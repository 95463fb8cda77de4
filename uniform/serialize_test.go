package uniform

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSerializeLength(t *testing.T) {
	buf := Serialize(DefaultSettings())
	if len(buf) != BufferSize {
		t.Fatalf("Serialize() length = %d, want %d", len(buf), BufferSize)
	}
}

func TestSerializeMatchesLayoutDescriptor(t *testing.T) {
	s := PipelineSettings{
		InputSpace:        ColorSpaceACEScg,
		GradingSpace:      GradingSpaceLog,
		GradeExposure:     1.5,
		Contrast:          1.1,
		Saturation:        0.9,
		Temperature:       0.2,
		Tint:              -0.1,
		Highlights:        0.3,
		Shadows:           -0.3,
		Vibrance:          0.4,
		Lift:              Vec3{0.01, 0.02, 0.03},
		Gamma:             Vec3{1.1, 1.2, 1.3},
		Gain:              Vec3{1.4, 1.5, 1.6},
		Offset:            Vec3{-0.1, -0.2, -0.3},
		ShadowColor:       Vec3{0.1, 0, 0},
		MidtoneColor:      Vec3{0, 0.1, 0},
		HighlightColor:    Vec3{0, 0, 0.1},
		HighlightSoftClip: 0.8,
		ShadowSoftClip:    0.1,
		HighlightKnee:     0.7,
		ShadowKnee:        0.2,
		OutputSpace:       ColorSpaceSRGB,
		TonemapOp:         TonemapACES13,
		TonemapExposure:   0.5,
		WhitePoint:        1.2,
		PaperWhite:        203,
		PeakBrightness:    1000,
		BlackLevel:        0.01,
		WhiteLevel:        0.99,
		BCEnabled:         true,
		RRTEnabled:        true,
		ODTEnabled:        false,
		BCFormat:          BCFormatBC6H,
		BCQuality:         BCQualityHigh,
		ViewExposure:      2,
	}

	buf := Serialize(s)

	want := map[string]func() interface{}{
		"inputSpace":        func() interface{} { return int32(s.InputSpace) },
		"gradingSpace":      func() interface{} { return int32(s.GradingSpace) },
		"gradeExposure":     func() interface{} { return s.GradeExposure },
		"contrast":          func() interface{} { return s.Contrast },
		"saturation":        func() interface{} { return s.Saturation },
		"temperature":       func() interface{} { return s.Temperature },
		"tint":              func() interface{} { return s.Tint },
		"highlights":        func() interface{} { return s.Highlights },
		"shadows":           func() interface{} { return s.Shadows },
		"vibrance":          func() interface{} { return s.Vibrance },
		"highlightSoftClip": func() interface{} { return s.HighlightSoftClip },
		"shadowSoftClip":    func() interface{} { return s.ShadowSoftClip },
		"highlightKnee":     func() interface{} { return s.HighlightKnee },
		"shadowKnee":        func() interface{} { return s.ShadowKnee },
		"outputSpace":       func() interface{} { return int32(s.OutputSpace) },
		"tonemapOp":         func() interface{} { return int32(s.TonemapOp) },
		"tonemapExposure":   func() interface{} { return s.TonemapExposure },
		"whitePoint":        func() interface{} { return s.WhitePoint },
		"paperWhite":        func() interface{} { return s.PaperWhite },
		"peakBrightness":    func() interface{} { return s.PeakBrightness },
		"blackLevel":        func() interface{} { return s.BlackLevel },
		"whiteLevel":        func() interface{} { return s.WhiteLevel },
		"bcEnabled":         func() interface{} { return int32(1) },
		"rrtEnabled":        func() interface{} { return int32(1) },
		"odtEnabled":        func() interface{} { return int32(0) },
		"bcFormat":          func() interface{} { return int32(s.BCFormat) },
		"bcQuality":         func() interface{} { return int32(s.BCQuality) },
		"viewExposure":      func() interface{} { return s.ViewExposure },
		"isAcesTonemap": func() interface{} {
			if s.TonemapOp.IsACES() {
				return int32(1)
			}
			return int32(0)
		},
	}

	for _, f := range LayoutDescriptor() {
		switch f.Kind {
		case FieldPad:
			for i := f.Offset; i < f.Offset+f.Size; i++ {
				if buf[i] != 0 {
					t.Errorf("pad byte %d (%s) = %d, want 0", i, f.Name, buf[i])
				}
			}
		case FieldI32:
			gen, ok := want[f.Name]
			if !ok {
				t.Fatalf("no expected value registered for field %q", f.Name)
			}
			got := int32(binary.LittleEndian.Uint32(buf[f.Offset:]))
			if got != gen().(int32) {
				t.Errorf("field %s at offset %d = %d, want %v", f.Name, f.Offset, got, gen())
			}
		case FieldF32:
			gen, ok := want[f.Name]
			if !ok {
				t.Fatalf("no expected value registered for field %q", f.Name)
			}
			got := math.Float32frombits(binary.LittleEndian.Uint32(buf[f.Offset:]))
			if got != gen().(float32) {
				t.Errorf("field %s at offset %d = %v, want %v", f.Name, f.Offset, got, gen())
			}
		case FieldVec3:
			var v Vec3
			switch f.Name {
			case "lift":
				v = s.Lift
			case "gamma":
				v = s.Gamma
			case "gain":
				v = s.Gain
			case "offset":
				v = s.Offset
			case "shadowColor":
				v = s.ShadowColor
			case "midtoneColor":
				v = s.MidtoneColor
			case "highlightColor":
				v = s.HighlightColor
			default:
				t.Fatalf("unhandled vec3 field %q", f.Name)
			}
			x := math.Float32frombits(binary.LittleEndian.Uint32(buf[f.Offset:]))
			y := math.Float32frombits(binary.LittleEndian.Uint32(buf[f.Offset+4:]))
			z := math.Float32frombits(binary.LittleEndian.Uint32(buf[f.Offset+8:]))
			pad := binary.LittleEndian.Uint32(buf[f.Offset+12:])
			if x != v.X || y != v.Y || z != v.Z {
				t.Errorf("vec3 %s at offset %d = (%v,%v,%v), want %v", f.Name, f.Offset, x, y, z, v)
			}
			if pad != 0 {
				t.Errorf("vec3 %s pad word at offset %d = %d, want 0", f.Name, f.Offset+12, pad)
			}
		}
	}
}

func TestDeserializeRoundTrip(t *testing.T) {
	s := PipelineSettings{
		InputSpace:        ColorSpaceACEScc,
		GradingSpace:      GradingSpaceLog,
		GradeExposure:     0.75,
		Contrast:          1.2,
		Saturation:        0.8,
		Temperature:       0.1,
		Tint:              -0.05,
		Highlights:        0.2,
		Shadows:           -0.2,
		Vibrance:          0.3,
		Lift:              Vec3{0.01, -0.02, 0.03},
		Gamma:             Vec3{1.05, 0.95, 1.1},
		Gain:              Vec3{1.2, 1.1, 0.9},
		Offset:            Vec3{0.01, 0, -0.01},
		ShadowColor:       Vec3{0.1, 0.2, 0.3},
		MidtoneColor:      Vec3{0.4, 0.5, 0.6},
		HighlightColor:    Vec3{0.7, 0.8, 0.9},
		HighlightSoftClip: 0.85,
		ShadowSoftClip:    0.15,
		HighlightKnee:     0.6,
		ShadowKnee:        0.25,
		OutputSpace:       ColorSpacePQRec2020,
		TonemapOp:         TonemapGranTurismo,
		TonemapExposure:   1.1,
		WhitePoint:        1.3,
		PaperWhite:        203,
		PeakBrightness:    4000,
		BlackLevel:        0.02,
		WhiteLevel:        0.98,
		BCEnabled:         true,
		RRTEnabled:        false,
		ODTEnabled:        true,
		BCFormat:          BCFormatBC7,
		BCQuality:         BCQualityNormal,
		ViewExposure:      -0.5,
	}

	buf := Serialize(s)
	got := Deserialize(buf[:])
	if got != s {
		t.Errorf("Deserialize(Serialize(s)) = %+v, want %+v", got, s)
	}
}

func TestLayoutDescriptorCoversWholeBuffer(t *testing.T) {
	layout := LayoutDescriptor()
	next := 0
	for _, f := range layout {
		if f.Offset != next {
			t.Fatalf("field %s starts at %d, expected contiguous offset %d", f.Name, f.Offset, next)
		}
		next += f.Size
	}
	if next != BufferSize {
		t.Fatalf("layout covers %d bytes, want %d", next, BufferSize)
	}
}

func TestSerializeZeroesUnusedTail(t *testing.T) {
	buf := Serialize(DefaultSettings())
	for i := 236; i < BufferSize; i++ {
		if buf[i] != 0 {
			t.Errorf("tail byte %d = %d, want 0", i, buf[i])
		}
	}
}

func TestSerializeWritesIsAcesTonemapFromTonemapOp(t *testing.T) {
	cases := []struct {
		op   TonemapOp
		want int32
	}{
		{TonemapNone, 0},
		{TonemapACESFit, 0},
		{TonemapACES13, 1},
		{TonemapACES20, 1},
		{TonemapReinhardExtended, 0},
		{TonemapHejlBurgess, 0},
	}
	for _, c := range cases {
		s := DefaultSettings()
		s.TonemapOp = c.op
		buf := Serialize(s)
		got := int32(binary.LittleEndian.Uint32(buf[232:]))
		if got != c.want {
			t.Errorf("isAcesTonemap for %s = %d, want %d", c.op, got, c.want)
		}
	}
}

func TestSerializeIntoReusesBuffer(t *testing.T) {
	dst := make([]byte, BufferSize+16)
	for i := range dst {
		dst[i] = 0xff
	}
	SerializeInto(dst, DefaultSettings())

	again := Serialize(DefaultSettings())
	if string(dst[:BufferSize]) != string(again[:]) {
		t.Fatal("SerializeInto produced a different layout than Serialize")
	}
	for i := BufferSize; i < len(dst); i++ {
		if dst[i] != 0xff {
			t.Fatalf("SerializeInto wrote past BufferSize at index %d", i)
		}
	}
}

func TestValidateRejectsBlackAboveWhite(t *testing.T) {
	s := DefaultSettings()
	s.BlackLevel = 0.5
	s.WhiteLevel = 0.2
	if err := s.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for blackLevel > whiteLevel")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	s := DefaultSettings()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsInvalidEnum(t *testing.T) {
	s := DefaultSettings()
	s.InputSpace = ColorSpace(99)
	if err := s.Validate(); err == nil {
		t.Fatal("Validate() = nil, want error for invalid inputSpace")
	}
}
