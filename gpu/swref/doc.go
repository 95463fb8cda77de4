// Package swref is a pure-Go gpu.Device that executes each fixed fragment
// stage's math directly through the colorscience package instead of
// compiling WGSL, following the teacher's CPU/GPU duality
// (gpucore.PipelineConfig.UseCPUFallback): the renderer can run its full
// pipeline with no hardware adapter present, for tests and as a fallback
// when gpu.Default finds no registered hardware backend.
package swref
