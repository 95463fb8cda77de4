// Package wgpuhal adapts gpu.Device onto a real github.com/gogpu/wgpu/hal
// device and queue, the way backend/native wraps hal.Device/hal.Texture
// behind Go-idiomatic types in the teacher. The adapter forwards resource
// creation directly to hal.Device; it does not reimplement any GPU logic of
// its own.
package wgpuhal
