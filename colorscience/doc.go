// Package colorscience implements the per-pixel math every fragment shader
// in the pipeline performs: input-space decoding, color grading, the RRT/ODT
// tonemap chain, output encoding, and display remap.
//
// It exists so that stage behaviour is testable without a GPU: gpu/swref
// calls straight into this package to execute a shader's equivalent on the
// CPU, and package tests check the concrete numeric scenarios a reviewer
// would otherwise have to eyeball on screen.
package colorscience
