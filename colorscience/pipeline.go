package colorscience

import "github.com/hdrscope/pipeline/uniform"

// Evaluate runs the full six-stage color pipeline on a single RGB sample and
// returns the display-ready result, exactly mirroring what the six
// FragmentStages do in sequence across the GPU. gpu/swref runs the same
// computation split into per-stage functions (gpu/swref/stages.go) rather
// than calling Evaluate; Evaluate is what the concrete scenario tests in
// pipeline_test.go check against published tolerances.
//
// Alpha is not part of RGB; callers pass it through unchanged, matching the
// stage contract (only color channels are touched by the shaders).
func Evaluate(input RGB, s uniform.PipelineSettings) RGB {
	working := DecodeInputSpace(input, s.InputSpace)
	working = Grade(working, s)

	// Stage 4 (ODT) has no independent effect here: for ACES operators it is
	// folded into ApplyACESChain below, and it is a no-op for every other
	// operator regardless of ODTEnabled.
	tookACESPath := s.RRTEnabled && s.TonemapOp.IsACES()
	switch {
	case tookACESPath:
		working = ApplyACESChain(Rec709ToAP1.Apply(working), s.TonemapOp, OutputFamilyIsRec2020(s.OutputSpace))
	case s.RRTEnabled:
		working = ApplyNonACESTonemap(working, s.TonemapOp, s.WhitePoint)
	}

	if tookACESPath {
		working = EncodeACESOutput(working, s.OutputSpace)
	} else {
		working = FromLinearRec709(working, s.OutputSpace, s.PaperWhite, s.PeakBrightness)
	}

	return DisplayRemap(working, s.BlackLevel, s.WhiteLevel)
}
