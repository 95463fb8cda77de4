package swref

import "github.com/hdrscope/pipeline/gpu"

func init() {
	gpu.Register(gpu.BackendSoftware, func(handle gpu.DeviceHandle) (gpu.Device, error) {
		return NewDevice(), nil
	})
}
