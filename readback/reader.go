// Package readback implements asynchronous single-pixel texture readback:
// a 256-byte staging buffer copy, a queue submission, and a decode of the
// mapped bytes into four float32 channels.
package readback

import (
	"context"
	"fmt"
	"math"

	"github.com/hdrscope/pipeline/gpu"
)

// stagingBufferSize comfortably covers one RGBA texel at any supported
// format (half float: 8 bytes, float32: 16 bytes) with room for the
// backend's own copy alignment padding.
const stagingBufferSize = 256

// PixelResult is one decoded RGBA readback, delivered through Reader's
// result channel.
type PixelResult struct {
	R, G, B, A float32
}

// Reader drives one pixel readback at a time. A request while one is
// already in flight returns false immediately instead of queuing, matching
// the single-slot debounce the renderer uses to throttle readPixel calls to
// the display refresh rate.
type Reader struct {
	device  gpu.Device
	pending atomicBool

	results chan PixelResult
}

// NewReader returns a Reader bound to device, with a result channel large
// enough to hold exactly one in-flight result.
func NewReader(device gpu.Device) *Reader {
	return &Reader{
		device:  device,
		results: make(chan PixelResult, 1),
	}
}

// Results returns the channel a caller drains for completed reads.
func (r *Reader) Results() <-chan PixelResult { return r.results }

// Read copies the single texel at (x, y) from tex into a staging buffer,
// submits the copy, blocks on the map, decodes it, and delivers the result
// on Results(). It returns false without touching the GPU if a previous
// read is still in flight.
func (r *Reader) Read(ctx context.Context, tex gpu.Texture, x, y uint32) bool {
	if !r.pending.trySet() {
		return false
	}
	defer r.pending.clear()

	if x >= tex.Width() || y >= tex.Height() {
		return false
	}

	staging, err := r.device.CreateBuffer(gpu.BufferDescriptor{
		Label: "readback:staging",
		Size:  stagingBufferSize,
		Usage: gpu.BufferUsageCopyDst | gpu.BufferUsageMapRead,
	})
	if err != nil {
		return false
	}
	defer staging.Destroy()

	encoder := r.device.CreateCommandEncoder("readback:copy")
	encoder.CopyTextureToBuffer(tex, staging, 1, 1)
	r.device.Queue().Submit(encoder)

	data, err := staging.MapRead(ctx)
	if err != nil {
		return false
	}
	defer staging.Unmap()

	px, err := decodePixel(tex.Format(), data)
	if err != nil {
		return false
	}

	select {
	case r.results <- px:
	default:
		// A previous result was never drained; drop it in favor of the
		// newer one rather than blocking the event loop.
		select {
		case <-r.results:
		default:
		}
		r.results <- px
	}
	return true
}

// decodePixel interprets the first texel's worth of bytes in data according
// to format: half-precision formats decode via explicit 16-bit float
// conversion, float32 formats load directly.
func decodePixel(format gpu.TextureFormat, data []byte) (PixelResult, error) {
	switch format {
	case gpu.FormatRGBA16Float:
		if len(data) < 8 {
			return PixelResult{}, fmt.Errorf("readback: short buffer for half-float texel: %d bytes", len(data))
		}
		return PixelResult{
			R: half16ToFloat32(uint16(data[0]) | uint16(data[1])<<8),
			G: half16ToFloat32(uint16(data[2]) | uint16(data[3])<<8),
			B: half16ToFloat32(uint16(data[4]) | uint16(data[5])<<8),
			A: half16ToFloat32(uint16(data[6]) | uint16(data[7])<<8),
		}, nil
	case gpu.FormatRGBA32Float:
		if len(data) < 16 {
			return PixelResult{}, fmt.Errorf("readback: short buffer for float32 texel: %d bytes", len(data))
		}
		return PixelResult{
			R: loadFloat32LE(data[0:4]),
			G: loadFloat32LE(data[4:8]),
			B: loadFloat32LE(data[8:12]),
			A: loadFloat32LE(data[12:16]),
		}, nil
	default:
		return PixelResult{}, fmt.Errorf("readback: unsupported texture format %v", format)
	}
}

func loadFloat32LE(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}

// half16ToFloat32 converts an IEEE 754 binary16 value to float32 by
// widening the sign/exponent/mantissa fields, handling subnormals, infinity
// and NaN explicitly rather than relying on any library half-float type.
func half16ToFloat32(h uint16) float32 {
	sign := uint32(h&0x8000) << 16
	exp := uint32(h&0x7C00) >> 10
	mant := uint32(h & 0x03FF)

	switch {
	case exp == 0 && mant == 0:
		return math.Float32frombits(sign)
	case exp == 0:
		// Subnormal: normalize by shifting the mantissa into place.
		for mant&0x0400 == 0 {
			mant <<= 1
			exp--
		}
		exp++
		mant &= 0x03FF
		bits := sign | ((exp + (127 - 15)) << 23) | (mant << 13)
		return math.Float32frombits(bits)
	case exp == 0x1F:
		// Infinity or NaN.
		bits := sign | 0x7F800000 | (mant << 13)
		return math.Float32frombits(bits)
	default:
		bits := sign | ((exp + (127 - 15)) << 23) | (mant << 13)
		return math.Float32frombits(bits)
	}
}
