package stage

import _ "embed"

//go:embed shaders/common.wgsl
var commonWGSL string

// InputInterpretationWGSL, ColorGradeWGSL, RRTWGSL, ODTWGSL,
// OutputEncodingWGSL and DisplayRemapWGSL are the six fixed fragment
// shader sources, exported so renderer.NewDefaultStages can pass them to
// New without this package exposing its common-struct concatenation.
//
//go:embed shaders/input_interpretation.wgsl
var InputInterpretationWGSL string

//go:embed shaders/color_grade.wgsl
var ColorGradeWGSL string

//go:embed shaders/rrt.wgsl
var RRTWGSL string

//go:embed shaders/odt.wgsl
var ODTWGSL string

//go:embed shaders/output_encoding.wgsl
var OutputEncodingWGSL string

//go:embed shaders/display_remap.wgsl
var DisplayRemapWGSL string

// withCommon prepends the shared PipelineSettings struct declaration to a
// stage's fragment source. WGSL has no #include, so the struct is kept in
// its own file and concatenated at compile time instead of duplicated by
// hand into every stage file.
func withCommon(fragmentSource string) string {
	return commonWGSL + "\n" + fragmentSource
}
