package gpu

// StageKind identifies one of the pipeline's six fixed fragment stages.
// Callers label each ShaderModule they create with the matching string so
// that a software backend (gpu/swref) can dispatch to the equivalent Go
// function without interpreting WGSL.
type StageKind string

// The six fixed stages of the color pipeline, in evaluation order.
const (
	StageInputInterpretation StageKind = "input-interpretation"
	StageColorGrade          StageKind = "color-grade"
	StageRRT                 StageKind = "rrt"
	StageODT                 StageKind = "odt"
	StageOutputEncoding      StageKind = "output-encoding"
	StageDisplayRemap        StageKind = "display-remap"
)

// FullscreenVertexLabel is the label every stage's shared vertex shader is
// compiled under.
const FullscreenVertexLabel = "fullscreen-triangle"
