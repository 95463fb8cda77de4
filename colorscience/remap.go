package colorscience

// DisplayRemap applies the final per-channel black/white level stretch:
// blackLevel + color * (whiteLevel - blackLevel). It is the last stage of
// the pipeline and runs regardless of input or output color space.
func DisplayRemap(c RGB, blackLevel, whiteLevel float32) RGB {
	span := whiteLevel - blackLevel
	f := func(v float32) float32 { return blackLevel + v*span }
	return mapRGB(c, f)
}
