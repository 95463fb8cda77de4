package colorscience

import (
	"math"

	"github.com/hdrscope/pipeline/uniform"
)

// sRGB transfer function constants (IEC 61966-2-1).
const (
	srgbAlpha     = 1.055
	srgbBeta      = 0.0031308
	srgbLinSlope  = 12.92
	srgbGammaPow  = 1.0 / 2.4
	srgbDecodePow = 2.4
)

func srgbEOTF(v float32) float32 {
	if v <= 0.04045 {
		return v / srgbLinSlope
	}
	return float32(math.Pow(float64((v+srgbAlpha-1)/srgbAlpha), srgbDecodePow))
}

func srgbOETF(v float32) float32 {
	if v <= srgbBeta {
		return v * srgbLinSlope
	}
	return float32(srgbAlpha*math.Pow(float64(v), srgbGammaPow) - (srgbAlpha - 1))
}

// SMPTE ST 2084 (PQ) constants, normalised so 1.0 linear == 10000 nits.
const (
	pqM1 = 0.1593017578125
	pqM2 = 78.84375
	pqC1 = 0.8359375
	pqC2 = 18.8515625
	pqC3 = 18.6875
)

func pqEOTF(v float32) float32 {
	vm2 := math.Pow(float64(v), 1/pqM2)
	num := vm2 - pqC1
	if num < 0 {
		num = 0
	}
	den := pqC2 - pqC3*vm2
	if den <= 0 {
		return 0
	}
	return float32(math.Pow(num/den, 1/pqM1))
}

func pqOETF(v float32) float32 {
	if v < 0 {
		v = 0
	}
	ym1 := math.Pow(float64(v), pqM1)
	num := pqC1 + pqC2*ym1
	den := 1 + pqC3*ym1
	return float32(math.Pow(num/den, pqM2))
}

// HLG (ARIB STD-B67) constants.
const (
	hlgA = 0.17883277
	hlgB = 0.28466892 // 1 - 4*a
	hlgC = 0.55991073 // 0.5 - a*ln(4a)
)

func hlgOETF(v float32) float32 {
	if v <= 0 {
		return 0
	}
	if v <= 1.0/12.0 {
		return float32(math.Sqrt(float64(3 * v)))
	}
	return float32(hlgA*math.Log(float64(12*v-hlgB)) + hlgC)
}

func hlgEOTF(v float32) float32 {
	if v <= 0 {
		return 0
	}
	if v <= 0.5 {
		return (v * v) / 3
	}
	return float32((math.Exp((float64(v)-hlgC)/hlgA) + hlgB) / 12)
}

// ACEScct constants (the log encoding used by the Log grading workflow).
const (
	acesCCTA = 10.5402377416545
	acesCCTB = 0.0729055341958355
)

func acescctEncode(v float32) float32 {
	switch {
	case v <= 0.0078125:
		return acesCCTA*v + acesCCTB
	default:
		return float32((math.Log2(float64(v))+9.72)/17.52)
	}
}

func acescctDecode(v float32) float32 {
	switch {
	case v < 0.155251141552511:
		return (v - acesCCTB) / acesCCTA
	default:
		return float32(math.Exp2(float64(v)*17.52 - 9.72))
	}
}

// ACEScc decode constant: the encoded value of 2^-15, below which the curve
// uses its offset toe rather than a pure log encoding.
const acesCCLowBreak = -0.3013698630136986

func acesccDecode(v float32) float32 {
	switch {
	case v < acesCCLowBreak:
		return (float32(math.Exp2(float64(v)*17.52-9.72)) - float32(math.Exp2(-16))) * 2
	default:
		return float32(math.Exp2(float64(v)*17.52 - 9.72))
	}
}

// DecodeInputSpace converts a color from the named input space into ACES AP1
// linear, the working space for grading and the RRT/ODT chain.
func DecodeInputSpace(c RGB, space uniform.ColorSpace) RGB {
	switch space {
	case uniform.ColorSpaceLinearRec709:
		return Rec709ToAP1.Apply(c)
	case uniform.ColorSpaceLinearRec2020:
		return Rec2020ToAP1.Apply(c)
	case uniform.ColorSpaceACEScg:
		return c
	case uniform.ColorSpaceACEScc:
		return mapRGB(c, acesccDecode)
	case uniform.ColorSpaceACEScct:
		return mapRGB(c, acescctDecode)
	case uniform.ColorSpaceSRGB:
		return Rec709ToAP1.Apply(mapRGB(c, srgbEOTF))
	case uniform.ColorSpacePQRec2020:
		return Rec2020ToAP1.Apply(mapRGB(c, pqEOTF))
	case uniform.ColorSpaceHLGRec2020:
		return Rec2020ToAP1.Apply(mapRGB(c, hlgEOTF))
	case uniform.ColorSpaceScRGB:
		return Rec709ToAP1.Apply(c)
	default:
		return Rec709ToAP1.Apply(c)
	}
}
