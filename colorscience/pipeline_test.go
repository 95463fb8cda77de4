package colorscience

import (
	"math"
	"testing"

	"github.com/hdrscope/pipeline/uniform"
)

func approxEqual(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) <= tol
}

func TestMidGrayPassthrough(t *testing.T) {
	s := uniform.DefaultSettings()
	in := RGB{0.18, 0.18, 0.18}
	out := Evaluate(in, s)

	if !approxEqual(out.R, in.R, 1e-3) || !approxEqual(out.G, in.G, 1e-3) || !approxEqual(out.B, in.B, 1e-3) {
		t.Fatalf("Evaluate(%v) = %v, want ~%v within 1e-3", in, out, in)
	}
}

func TestACEScgToRec709(t *testing.T) {
	s := uniform.DefaultSettings()
	s.InputSpace = uniform.ColorSpaceACEScg
	in := RGB{0.18, 0.18, 0.18}

	out := Evaluate(in, s)
	want := AP1ToRec709.Apply(in)

	if !approxEqual(out.R, want.R, 1e-4) || !approxEqual(out.G, want.G, 1e-4) || !approxEqual(out.B, want.B, 1e-4) {
		t.Fatalf("Evaluate(%v) = %v, want %v within 1e-4", in, out, want)
	}
}

func TestACESFitOnWhite(t *testing.T) {
	s := uniform.DefaultSettings()
	s.TonemapOp = uniform.TonemapACESFit
	in := RGB{1, 1, 1}

	out := Evaluate(in, s)
	const want = 0.80

	if !approxEqual(out.R, want, 1e-2) || !approxEqual(out.G, want, 1e-2) || !approxEqual(out.B, want, 1e-2) {
		t.Fatalf("Evaluate(%v) = %v, want ~(%v,%v,%v) within 1e-2", in, out, want, want, want)
	}
}

func TestDisplayRemapScenario(t *testing.T) {
	s := uniform.DefaultSettings()
	s.BlackLevel = 0.05
	s.WhiteLevel = 0.95

	inputs := []RGB{{0, 0, 0}, {0.5, 0.3, 0.7}, {1, 1, 1}}
	for _, in := range inputs {
		out := Evaluate(in, s)
		want := RGB{
			R: 0.05 + in.R*0.90,
			G: 0.05 + in.G*0.90,
			B: 0.05 + in.B*0.90,
		}
		if !approxEqual(out.R, want.R, 1e-4) || !approxEqual(out.G, want.G, 1e-4) || !approxEqual(out.B, want.B, 1e-4) {
			t.Errorf("Evaluate(%v) = %v, want %v within 1e-4", in, out, want)
		}
	}
}

func TestReinhardIdentityOnZero(t *testing.T) {
	s := uniform.DefaultSettings()
	s.TonemapOp = uniform.TonemapReinhard
	in := RGB{0, 0, 0}

	out := Evaluate(in, s)
	if out != (RGB{0, 0, 0}) {
		t.Fatalf("Evaluate(%v) = %v, want exactly (0,0,0)", in, out)
	}
}

func TestStage5PassthroughAtIdentityGrade(t *testing.T) {
	s := uniform.DefaultSettings()
	in := RGB{0.4, 0.6, 0.2}

	out := Grade(DecodeInputSpace(in, s.InputSpace), s)
	if !approxEqual(out.R, in.R, 5e-3) || !approxEqual(out.G, in.G, 5e-3) || !approxEqual(out.B, in.B, 5e-3) {
		t.Fatalf("Grade(decode(%v)) = %v, want ~%v (identity grade)", in, out, in)
	}
}

func TestDisplayRemapIdentityAtDefaultLevels(t *testing.T) {
	in := RGB{0.3, 0.6, 0.9}
	out := DisplayRemap(in, 0, 1)
	if out != in {
		t.Fatalf("DisplayRemap(%v, 0, 1) = %v, want %v", in, out, in)
	}
}

func TestAllTonemapOperatorsMonotonicNearZero(t *testing.T) {
	ops := []uniform.TonemapOp{
		uniform.TonemapNone, uniform.TonemapACESFit, uniform.TonemapAgX,
		uniform.TonemapGranTurismo, uniform.TonemapUncharted2,
		uniform.TonemapKhronosPBRNeutral, uniform.TonemapLottes,
		uniform.TonemapReinhard, uniform.TonemapReinhardExtended,
		uniform.TonemapHejlBurgess,
	}
	for _, op := range ops {
		low := ApplyNonACESTonemap(RGB{0.1, 0.1, 0.1}, op, 4)
		high := ApplyNonACESTonemap(RGB{0.5, 0.5, 0.5}, op, 4)
		if high.R < low.R {
			t.Errorf("tonemap %v not monotonic near zero: f(0.1)=%v f(0.5)=%v", op, low.R, high.R)
		}
	}
}
