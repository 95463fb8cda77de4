// Package shaderutil compiles WGSL fragment and vertex sources to SPIR-V and
// tracks the GPU resources a compiled stage owns, the same compile-and-track
// split internal/native/shader_helper.go uses for every rasterizer in the
// teacher.
package shaderutil
