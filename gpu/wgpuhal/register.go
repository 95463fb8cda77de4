package wgpuhal

import "github.com/hdrscope/pipeline/gpu"

func init() {
	gpu.Register(gpu.BackendWGPU, func(handle gpu.DeviceHandle) (gpu.Device, error) {
		return NewDevice(handle)
	})
}
