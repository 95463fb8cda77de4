package swref

import (
	"github.com/hdrscope/pipeline/colorscience"
	"github.com/hdrscope/pipeline/gpu"
	"github.com/hdrscope/pipeline/uniform"
)

// stageFunc evaluates one fixed fragment stage for a single pixel. Composing
// all six in order reproduces colorscience.Evaluate exactly; this is the
// same split the GPU's six FragmentStages apply across separate textures.
type stageFunc func(c colorscience.RGB, s uniform.PipelineSettings) colorscience.RGB

var stageFuncs = map[gpu.StageKind]stageFunc{
	// Input Interpretation is a passthrough, matching
	// input_interpretation.wgsl: the space conversion itself happens in
	// Color Grade, which is the first stage that knows whether it's
	// grading in Log or Linear workflow. Keeping the split here means
	// disabling the Input Interpretation stage behaves identically on this
	// software device and on a real GPU backend.
	gpu.StageInputInterpretation: func(c colorscience.RGB, s uniform.PipelineSettings) colorscience.RGB {
		return c
	},
	gpu.StageColorGrade: func(c colorscience.RGB, s uniform.PipelineSettings) colorscience.RGB {
		return colorscience.Grade(colorscience.DecodeInputSpace(c, s.InputSpace), s)
	},
	gpu.StageRRT: func(c colorscience.RGB, s uniform.PipelineSettings) colorscience.RGB {
		if !s.RRTEnabled {
			return c
		}
		if s.TonemapOp.IsACES() {
			return colorscience.ApplyACESChain(colorscience.Rec709ToAP1.Apply(c), s.TonemapOp, colorscience.OutputFamilyIsRec2020(s.OutputSpace))
		}
		return colorscience.ApplyNonACESTonemap(c, s.TonemapOp, s.WhitePoint)
	},
	// ODT is folded into the RRT stage above for ACES operators and is a
	// no-op for every other operator, so its own shader is always identity.
	gpu.StageODT: func(c colorscience.RGB, s uniform.PipelineSettings) colorscience.RGB {
		return c
	},
	gpu.StageOutputEncoding: func(c colorscience.RGB, s uniform.PipelineSettings) colorscience.RGB {
		if s.RRTEnabled && s.TonemapOp.IsACES() {
			return colorscience.EncodeACESOutput(c, s.OutputSpace)
		}
		return colorscience.FromLinearRec709(c, s.OutputSpace, s.PaperWhite, s.PeakBrightness)
	},
	gpu.StageDisplayRemap: func(c colorscience.RGB, s uniform.PipelineSettings) colorscience.RGB {
		return colorscience.DisplayRemap(c, s.BlackLevel, s.WhiteLevel)
	},
}
