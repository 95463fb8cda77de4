package renderer

import (
	"github.com/hdrscope/pipeline/gpu"
	"github.com/hdrscope/pipeline/stage"
)

// NewDefaultStages constructs the fixed six-stage chain in order, each
// bound to its embedded WGSL fragment shader. The WGSL color math itself
// (matrices, spline coefficients, tonescale constants) is external
// reference data this package does not otherwise depend on: the software
// reference backend executes the equivalent colorscience functions
// directly, and a real GPU backend compiles these shader sources.
func NewDefaultStages(device gpu.Device) []*stage.FragmentStage {
	return []*stage.FragmentStage{
		stage.New(device, "input_interpretation", 0, gpu.StageInputInterpretation, stage.InputInterpretationWGSL),
		stage.New(device, "color_grade", 1, gpu.StageColorGrade, stage.ColorGradeWGSL),
		stage.New(device, "rrt", 2, gpu.StageRRT, stage.RRTWGSL),
		stage.New(device, "odt", 3, gpu.StageODT, stage.ODTWGSL),
		stage.New(device, "output_encoding", 4, gpu.StageOutputEncoding, stage.OutputEncodingWGSL),
		stage.New(device, "display_remap", 5, gpu.StageDisplayRemap, stage.DisplayRemapWGSL),
	}
}
