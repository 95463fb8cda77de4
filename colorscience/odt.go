package colorscience

import "github.com/hdrscope/pipeline/uniform"

// odtDesaturation is the ACES ODT's fixed desaturation amount, applied after
// the tone curve to counteract the saturation the RRT curve otherwise adds
// in the highlights.
const odtDesaturation = 0.93

// dimSurroundGamma is the ACES dim-surround viewing adaptation gamma applied
// before the display-gamut matrix.
const dimSurroundGamma = 0.9811

// ApplyACESChain runs the combined RRT+ODT for TonemapACES13 and
// TonemapACES20. c is already ACES AP1 linear (RRT always operates in AP1);
// the result is Linear Rec.709 or Linear Rec.2020, selected by rec2020.
//
// ACES 1.3 additionally applies ODT desaturation and a dim-surround gamma
// before the display-gamut matrix; ACES 2.0 is the RRT curve followed
// directly by the gamut matrix (SPEC_FULL.md §4.D, ODT).
func ApplyACESChain(c RGB, op uniform.TonemapOp, rec2020 bool) RGB {
	toned := mapRGB(c, acesFitCurve)

	if op == uniform.TonemapACES13 {
		l := luma(toned)
		toned = RGB{
			R: lerp(l, toned.R, odtDesaturation),
			G: lerp(l, toned.G, odtDesaturation),
			B: lerp(l, toned.B, odtDesaturation),
		}
		toned = mapRGB(toned, func(v float32) float32 { return powf(v, dimSurroundGamma) })
	}

	if rec2020 {
		return AP1ToRec2020.Apply(toned)
	}
	return AP1ToRec709.Apply(toned)
}

// OutputFamilyIsRec2020 reports whether an output color space's ACES ODT
// display-gamut matrix should target Rec.2020 instead of Rec.709. Exported
// so gpu/swref's per-stage RRT function can make the same gamut decision
// ApplyACESChain's caller makes in colorscience.Evaluate.
func OutputFamilyIsRec2020(space uniform.ColorSpace) bool {
	switch space {
	case uniform.ColorSpaceLinearRec2020, uniform.ColorSpacePQRec2020, uniform.ColorSpaceHLGRec2020:
		return true
	default:
		return false
	}
}
