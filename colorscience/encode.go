package colorscience

import (
	"math"

	"github.com/hdrscope/pipeline/uniform"
)

// referenceWhiteNits is the nit level 1.0 scRGB/linear maps to before PQ/HLG
// scaling, matching the "paper white" convention scRGB and most HDR
// compositors use.
const referenceWhiteNits = 80

// EncodeACESOutput applies only the transfer function appropriate to the
// output space: the ACES paths have already produced a display-referred
// Rec.709 or Rec.2020 color via ApplyACESChain, so no further gamut
// conversion or paper-white scaling is needed (SPEC_FULL.md §4.D, stage 5).
func EncodeACESOutput(c RGB, space uniform.ColorSpace) RGB {
	switch space {
	case uniform.ColorSpaceSRGB:
		return mapRGB(c, srgbOETF)
	case uniform.ColorSpacePQRec2020:
		return mapRGB(c, pqOETF)
	case uniform.ColorSpaceHLGRec2020:
		return mapRGB(c, hlgOETF)
	default:
		return c
	}
}

// FromLinearRec709 is the non-ACES output encoding chain: convert gamut if
// the output space's primaries differ from Rec.709, scale HDR outputs so 1.0
// lands at paperWhite nits (see scaleForHDR), then apply the output transfer
// function.
func FromLinearRec709(c RGB, space uniform.ColorSpace, paperWhite, peakBrightness float32) RGB {
	switch space {
	case uniform.ColorSpaceLinearRec709:
		return c
	case uniform.ColorSpaceLinearRec2020:
		return Rec709ToRec2020.Apply(c)
	case uniform.ColorSpaceACEScg:
		return Rec709ToAP1.Apply(c)
	case uniform.ColorSpaceACEScc:
		return mapRGB(Rec709ToAP1.Apply(c), acesccEncode)
	case uniform.ColorSpaceACEScct:
		return mapRGB(Rec709ToAP1.Apply(c), acescctEncode)
	case uniform.ColorSpaceSRGB:
		return mapRGB(c, srgbOETF)
	case uniform.ColorSpacePQRec2020:
		scaled := scaleForHDR(Rec709ToRec2020.Apply(c), paperWhite, peakBrightness)
		return mapRGB(scaled, pqOETF)
	case uniform.ColorSpaceHLGRec2020:
		scaled := scaleForHDR(Rec709ToRec2020.Apply(c), paperWhite, peakBrightness)
		return mapRGB(scaled, hlgOETF)
	case uniform.ColorSpaceScRGB:
		scale := paperWhite / referenceWhiteNits
		if scale <= 0 {
			scale = 1
		}
		return RGB{c.R * scale, c.G * scale, c.B * scale}
	default:
		return c
	}
}

// scaleForHDR rescales a linear 0-1 SDR color so that 1.0 maps to paperWhite
// nits, expressed as a fraction of the 10000-nit reference the PQ/HLG curves
// are defined against (scale = paperWhite/10000). peakBrightness is
// defaulted but does not change the result.
func scaleForHDR(c RGB, paperWhite, peakBrightness float32) RGB {
	if peakBrightness <= 0 {
		peakBrightness = 1000
	}
	if paperWhite <= 0 {
		paperWhite = 100
	}
	scale := paperWhite / 10000
	return RGB{c.R * scale, c.G * scale, c.B * scale}
}

// acesccEncode is the ACEScc log encode. Unlike ACEScct it has no linear toe:
// values at or below zero clamp to the curve's defined floor, log2(2^-16),
// and values below 2^-15 use the offset toe that acesccDecode inverts.
func acesccEncode(v float32) float32 {
	const floor = 1.52587890625e-05 // 2^-16
	switch {
	case v <= 0:
		return float32((math.Log2(floor) + 9.72) / 17.52)
	case v < 2*floor:
		return float32((math.Log2(floor+float64(v)*0.5) + 9.72) / 17.52)
	default:
		return float32((math.Log2(float64(v)) + 9.72) / 17.52)
	}
}
