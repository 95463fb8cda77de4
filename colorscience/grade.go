package colorscience

import (
	"math"

	"github.com/hdrscope/pipeline/uniform"
)

// midGray is the pivot contrast rotates around, matching the ACES mid-gray
// convention (18% linear reflectance).
const midGray = 0.18

// lumaWeights are the Rec.709 luma coefficients, used for saturation and
// vibrance's achromatic reference.
var lumaWeights = RGB{0.2126, 0.7152, 0.0722}

func luma(c RGB) float32 {
	return c.R*lumaWeights.R + c.G*lumaWeights.G + c.B*lumaWeights.B
}

func vec3ToRGB(v uniform.Vec3) RGB {
	return RGB{v.X, v.Y, v.Z}
}

// Grade applies the Color Grade stage: decode has already produced c in ACES
// AP1 linear; Grade runs every grading sub-operation in the settings' chosen
// workflow and returns the result converted back to Linear Rec.709, matching
// FragmentStage 2's contract (SPEC_FULL.md §4.D).
func Grade(c RGB, s uniform.PipelineSettings) RGB {
	working := c
	log := s.GradingSpace == uniform.GradingSpaceLog
	if log {
		working = mapRGB(working, acescctEncode)
	}

	working = applyExposure(working, s.GradeExposure)
	working = applyWhiteBalance(working, s.Temperature, s.Tint)
	working = applyContrast(working, s.Contrast)
	working = applyLiftGammaGainOffset(working, vec3ToRGB(s.Lift), vec3ToRGB(s.Gamma), vec3ToRGB(s.Gain), vec3ToRGB(s.Offset))
	working = applyColorWheels(working, vec3ToRGB(s.ShadowColor), vec3ToRGB(s.MidtoneColor), vec3ToRGB(s.HighlightColor))
	working = applyZoneLift(working, s.Highlights, s.Shadows)
	working = applySaturation(working, s.Saturation)
	working = applyVibrance(working, s.Vibrance)
	working = applySoftClip(working, s.HighlightSoftClip, s.ShadowSoftClip, s.HighlightKnee, s.ShadowKnee)

	if log {
		working = mapRGB(working, acescctDecode)
	}

	return AP1ToRec709.Apply(working)
}

func applyExposure(c RGB, stops float32) RGB {
	if stops == 0 {
		return c
	}
	scale := float32(math.Exp2(float64(stops)))
	return RGB{c.R * scale, c.G * scale, c.B * scale}
}

// applyWhiteBalance nudges red/blue for temperature and green/magenta for
// tint. The coefficients are a simplified, perceptually-ordered approximation
// (not a CCT-based von Kries transform); both inputs are in [-1, 1] and zero
// is the identity.
func applyWhiteBalance(c RGB, temperature, tint float32) RGB {
	if temperature == 0 && tint == 0 {
		return c
	}
	return RGB{
		R: c.R * (1 + 0.2*temperature),
		G: c.G * (1 + 0.2*tint),
		B: c.B * (1 - 0.2*temperature),
	}
}

func applyContrast(c RGB, contrast float32) RGB {
	if contrast == 1 {
		return c
	}
	f := func(v float32) float32 { return (v-midGray)*contrast + midGray }
	return mapRGB(c, f)
}

func signedPow(x, p float32) float32 {
	if x == 0 {
		return 0
	}
	sign := float32(1)
	if x < 0 {
		sign = -1
		x = -x
	}
	return sign * float32(math.Pow(float64(x), float64(p)))
}

// applyLiftGammaGainOffset is the ASC CDL-style slope/offset/power control,
// applied per channel: out = (c*gain + lift)^(1/gamma) + offset.
func applyLiftGammaGainOffset(c RGB, lift, gamma, gain, offset RGB) RGB {
	if lift == (RGB{}) && gamma == (RGB{1, 1, 1}) && gain == (RGB{1, 1, 1}) && offset == (RGB{}) {
		return c
	}
	out := RGB{
		R: c.R*gain.R + lift.R,
		G: c.G*gain.G + lift.G,
		B: c.B*gain.B + lift.B,
	}
	if gamma.R != 1 {
		out.R = signedPow(out.R, 1/gamma.R)
	}
	if gamma.G != 1 {
		out.G = signedPow(out.G, 1/gamma.G)
	}
	if gamma.B != 1 {
		out.B = signedPow(out.B, 1/gamma.B)
	}
	out.R += offset.R
	out.G += offset.G
	out.B += offset.B
	return out
}

// zoneWeights returns the (shadow, midtone, highlight) influence of a pixel's
// luma, each in [0, 1] and summing to 1, via two overlapping smoothstep
// ramps centred below and above mid-gray.
func zoneWeights(l float32) (shadow, midtone, highlight float32) {
	shadow = 1 - smoothstep(0, midGray, l)
	highlight = smoothstep(midGray, 1, l)
	midtone = 1 - shadow - highlight
	if midtone < 0 {
		midtone = 0
	}
	return
}

func smoothstep(edge0, edge1 float32, x float32) float32 {
	t := clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// applyColorWheels adds each zone's color wheel offset weighted by how much
// the pixel's luma belongs to that zone, matching a three-way color
// corrector's shadow/midtone/highlight wheels.
func applyColorWheels(c RGB, shadowColor, midtoneColor, highlightColor RGB) RGB {
	if shadowColor == (RGB{}) && midtoneColor == (RGB{}) && highlightColor == (RGB{}) {
		return c
	}
	sw, mw, hw := zoneWeights(luma(c))
	return RGB{
		R: c.R + shadowColor.R*sw + midtoneColor.R*mw + highlightColor.R*hw,
		G: c.G + shadowColor.G*sw + midtoneColor.G*mw + highlightColor.G*hw,
		B: c.B + shadowColor.B*sw + midtoneColor.B*mw + highlightColor.B*hw,
	}
}

// applyZoneLift adds a flat highlight/shadow lift weighted by luma zone,
// distinct from the per-channel color wheels above.
func applyZoneLift(c RGB, highlights, shadows float32) RGB {
	if highlights == 0 && shadows == 0 {
		return c
	}
	l := luma(c)
	shadowWeight := 1 - smoothstep(0, midGray, l)
	highlightWeight := smoothstep(midGray, 1, l)
	delta := shadows*shadowWeight + highlights*highlightWeight
	return RGB{c.R + delta, c.G + delta, c.B + delta}
}

func applySaturation(c RGB, saturation float32) RGB {
	if saturation == 1 {
		return c
	}
	l := luma(c)
	return RGB{
		R: lerp(l, c.R, saturation),
		G: lerp(l, c.G, saturation),
		B: lerp(l, c.B, saturation),
	}
}

// applyVibrance boosts saturation on already-desaturated pixels and protects
// pixels that are already highly saturated, unlike the uniform push of
// applySaturation.
func applyVibrance(c RGB, vibrance float32) RGB {
	if vibrance == 0 {
		return c
	}
	l := luma(c)
	maxChan := c.R
	if c.G > maxChan {
		maxChan = c.G
	}
	if c.B > maxChan {
		maxChan = c.B
	}
	minChan := c.R
	if c.G < minChan {
		minChan = c.G
	}
	if c.B < minChan {
		minChan = c.B
	}
	currentSat := maxChan - minChan
	protect := 1 - clamp(currentSat, 0, 1)
	amount := vibrance * protect
	return RGB{
		R: lerp(c.R, l, -amount),
		G: lerp(c.G, l, -amount),
		B: lerp(c.B, l, -amount),
	}
}

// applySoftClip compresses values above (1-highlightKnee) and below
// shadowKnee using a rational knee, rolling off toward the
// respective clip target rather than hard-clamping. A clip amount of zero
// disables that side entirely.
func applySoftClip(c RGB, highlightClip, shadowClip, highlightKnee, shadowKnee float32) RGB {
	if highlightClip == 0 && shadowClip == 0 {
		return c
	}
	f := func(v float32) float32 {
		if highlightClip > 0 {
			threshold := 1 - highlightKnee
			if v > threshold {
				t := (v - threshold) / (highlightKnee + 1e-6)
				t = clamp(t, 0, 1)
				v = threshold + (1-threshold)*t/(1+t)*(1+highlightClip)
			}
		}
		if shadowClip > 0 {
			if v < shadowKnee {
				t := (shadowKnee - v) / (shadowKnee + 1e-6)
				t = clamp(t, 0, 1)
				v = shadowKnee - shadowKnee*t/(1+t)*(1+shadowClip)
			}
		}
		return v
	}
	return mapRGB(c, f)
}
