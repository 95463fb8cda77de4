package colorscience

import (
	"math"

	"github.com/hdrscope/pipeline/uniform"
)

// acesFitCurve is the Narkowicz rational approximation of the combined ACES
// RRT+ODT response. It is used directly by TonemapACESFit and reused, in
// AP1 space, as the tone curve inside the full ACES 1.3/2.0 RRT.
func acesFitCurve(x float32) float32 {
	if x < 0 {
		x = 0
	}
	const a, b, c, d, e = 2.51, 0.03, 2.43, 0.59, 0.14
	return clamp(x*(a*x+b)/(x*(c*x+d)+e), 0, 1)
}

func reinhard(x float32) float32 {
	if x < 0 {
		x = 0
	}
	return x / (1 + x)
}

func reinhardExtended(x, whitePoint float32) float32 {
	if x < 0 {
		x = 0
	}
	if whitePoint <= 0 {
		whitePoint = 4
	}
	return x * (1 + x/(whitePoint*whitePoint)) / (1 + x)
}

// hejlBurgess is the Hejl/Burgess-Dawson filmic curve; it bakes in an
// implicit ~2.2 gamma. ApplyNonACESTonemap returns its output as is, and the
// output encoding stage then applies the output transfer function to it as
// it does for every other non-ACES operator.
func hejlBurgess(x float32) float32 {
	if x < 0 {
		x = 0
	}
	v := x - 0.004
	if v < 0 {
		v = 0
	}
	return (v * (6.2*v + 0.5)) / (v*(6.2*v+1.7) + 0.06)
}

// uncharted2Partial is Hable's filmic curve used by Uncharted 2.
func uncharted2Partial(x float32) float32 {
	const a, b, c, d, e, f = 0.15, 0.50, 0.10, 0.20, 0.02, 0.30
	return ((x*(a*x+c*b) + d*e) / (x*(a*x+b) + d*f)) - e/f
}

func uncharted2(x float32) float32 {
	if x < 0 {
		x = 0
	}
	const exposureBias = 2.0
	const whitePoint = 11.2
	curved := uncharted2Partial(x * exposureBias)
	whiteScale := 1 / uncharted2Partial(whitePoint)
	return curved * whiteScale
}

// lottes implements Timothy Lottes' tonemapping operator with its published
// default constants.
func lottes(x float32) float32 {
	if x < 0 {
		x = 0
	}
	const a, d, hdrMax, midIn, midOut = 1.6, 0.977, 8.0, 0.18, 0.267

	b := (-powf(midIn, a) + powf(hdrMax, a)*midOut) /
		((powf(hdrMax, a*d) - powf(midIn, a*d)) * midOut)
	c := (powf(hdrMax, a*d)*powf(midIn, a) - powf(hdrMax, a)*powf(midIn, a*d)*midOut) /
		((powf(hdrMax, a*d) - powf(midIn, a*d)) * midOut)

	return powf(x, a) / (powf(x, a*d)*b + c)
}

func powf(x, p float32) float32 {
	if x <= 0 {
		return 0
	}
	return float32(math.Pow(float64(x), float64(p)))
}

// pbrNeutral is the Khronos glTF sample viewer's PBR Neutral tone mapper: it
// preserves hue, subtracts a small black offset (at most 0.04) from every
// color, and compresses only the highlights above a fixed knee.
func pbrNeutral(c RGB) RGB {
	const startCompression = 0.8 - 0.04
	const desaturation = 0.15

	x := minf(c.R, minf(c.G, c.B))
	var offset float32
	if x < 0.08 {
		offset = x - 6.25*x*x
	} else {
		offset = 0.04
	}
	c = RGB{c.R - offset, c.G - offset, c.B - offset}

	peak := maxf(c.R, maxf(c.G, c.B))
	if peak < startCompression {
		return c
	}
	d := float32(1) - startCompression
	newPeak := float32(1) - d*d/(peak+d-startCompression)
	scale := newPeak / peak
	c = RGB{c.R * scale, c.G * scale, c.B * scale}

	g := float32(1) - 1/(desaturation*(peak-newPeak)+1)
	return RGB{
		R: lerp(c.R, newPeak, g),
		G: lerp(c.G, newPeak, g),
		B: lerp(c.B, newPeak, g),
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// agxApproxContrast is the published minimal-fit polynomial approximation of
// AgX's sigmoid contrast curve.
func agxApproxContrast(x float32) float32 {
	x2 := x * x
	x3 := x2 * x
	x4 := x2 * x2
	x5 := x4 * x
	x6 := x4 * x2
	return 15.5*x6 - 40.14*x5 + 31.96*x4 - 6.868*x3 + 0.4298*x2 + 0.1191*x - 0.00232
}

// agxInsetMatrix and agxOutsetMatrix are AgX's published primaries-rotation
// matrices, applied before and after the log2 encode/contrast/decode chain.
var agxInsetMatrix = Mat3{
	{0.856627153315983, 0.0951212405381588, 0.0482516061458583},
	{0.137318972929847, 0.761241990602591, 0.101439036467562},
	{0.11189821299995, 0.0767994186031903, 0.811302368396859},
}

var agxOutsetMatrix = Mat3{
	{1.1271005818144368, -0.1413297634984383, 0.014062758510647},
	{-0.11060664309660323, 1.157823702216272, -0.047216737640417},
	{-0.016493938717834573, -0.016493938717834257, 1.032987877435668},
}

const agxMinEV = -12.47393
const agxMaxEV = 4.026069

// agx is a minimal-fit rendition of Troy Sobotka's AgX view transform: log2
// encode in a rotated primary space, apply the sigmoid contrast
// approximation, then rotate back.
func agx(c RGB) RGB {
	working := agxInsetMatrix.Apply(c)
	working = mapRGB(working, func(v float32) float32 {
		if v <= 0 {
			v = 1e-10
		}
		logV := float32(math.Log2(float64(v)))
		t := clamp((logV-agxMinEV)/(agxMaxEV-agxMinEV), 0, 1)
		return clamp(agxApproxContrast(t), 0, 1)
	})
	return agxOutsetMatrix.Apply(working)
}

// gtTonemap is Uchimura's 2017 "Gran Turismo" tonemap operator: a piecewise
// blend of a toe power curve, a linear mid-section, and an exponential
// shoulder, with the operator's published default parameters.
func gtTonemap(x float32) float32 {
	if x < 0 {
		x = 0
	}
	const maxBrightness, contrast, linearStart, linearLength, black, pedestal = 1.0, 1.0, 0.22, 0.4, 1.33, 0.0

	l0 := float32((maxBrightness - linearStart) * linearLength / contrast)
	s1 := linearStart + contrast*l0
	c2 := (contrast * maxBrightness) / (maxBrightness - s1)
	cp := -c2 / maxBrightness

	w0 := 1 - smoothstep(0, linearStart, x)
	var w2 float32
	if x >= linearStart+l0 {
		w2 = 1
	}
	w1 := 1 - w0 - w2

	toe := linearStart*powf(x/linearStart, black) + pedestal
	linear := linearStart + contrast*(x-linearStart)
	shoulder := maxBrightness - (maxBrightness-s1)*float32(math.Exp(float64(cp*(x-(linearStart+l0)))))

	return toe*w0 + linear*w1 + shoulder*w2
}

// ApplyNonACESTonemap runs the direct Linear Rec.709 tonemap operators: every
// TonemapOp except None, ACES 1.3, and ACES 2.0. It is applied channelwise to
// the Linear Rec.709 color Color Grade produced.
func ApplyNonACESTonemap(c RGB, op uniform.TonemapOp, whitePoint float32) RGB {
	switch op {
	case uniform.TonemapNone:
		return c
	case uniform.TonemapACESFit:
		return mapRGB(c, acesFitCurve)
	case uniform.TonemapAgX:
		return agx(c)
	case uniform.TonemapGranTurismo:
		return mapRGB(c, gtTonemap)
	case uniform.TonemapUncharted2:
		return mapRGB(c, uncharted2)
	case uniform.TonemapKhronosPBRNeutral:
		return pbrNeutral(c)
	case uniform.TonemapLottes:
		return mapRGB(c, lottes)
	case uniform.TonemapReinhard:
		return mapRGB(c, reinhard)
	case uniform.TonemapReinhardExtended:
		return mapRGB(c, func(v float32) float32 { return reinhardExtended(v, whitePoint) })
	case uniform.TonemapHejlBurgess:
		return mapRGB(c, hejlBurgess)
	default:
		return c
	}
}
