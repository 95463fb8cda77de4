package shaderutil

import _ "embed"

// FullscreenVertexWGSL is the vertex shader every render pipeline in this
// module uses, embedded once here so the stages don't each carry their own
// copy.
//
//go:embed shaders/fullscreen.wgsl
var FullscreenVertexWGSL string
