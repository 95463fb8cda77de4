// Package dds parses DirectDraw Surface (.dds) containers into either a
// block-compressed or uncompressed pixel payload, without depending on a GPU
// to do it. It is grounded on the legacy FourCC and DX10 DXGI format tables
// Echo VR's texture tooling uses, generalised to the full format set a color
// pipeline inspector needs to ingest.
package dds
