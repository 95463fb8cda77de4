// Package source implements SourceLoader's upload half: turning a
// contiguous RGBA float32/float16 buffer, or a parsed DDS payload, into a
// gpu.Texture the renderer's first stage reads as its input.
package source

import (
	"fmt"
	"math"

	"github.com/hdrscope/pipeline/dds"
	"github.com/hdrscope/pipeline/gpu"
)

// Loader uploads source pixel data against a gpu.Device. It holds no state
// of its own beyond the device: every upload is a one-shot create-write
// sequence.
type Loader struct {
	device gpu.Device
}

// NewLoader returns a Loader bound to device.
func NewLoader(device gpu.Device) *Loader {
	return &Loader{device: device}
}

// UploadFloat32 uploads a contiguous RGBA float32 buffer that arrived
// bottom-row-first (the EXR loader's convention) into a top-row-first
// gpu.Texture, flipping rows during upload.
func (l *Loader) UploadFloat32(width, height uint32, pixels []byte) (gpu.Texture, error) {
	const bytesPerPixel = 16
	if err := checkBufferSize(width, height, bytesPerPixel, len(pixels)); err != nil {
		return nil, err
	}
	tex, err := l.device.CreateTexture(gpu.TextureDescriptor{
		Label:  "source:float32",
		Width:  width,
		Height: height,
		Format: gpu.FormatRGBA32Float,
		Usage:  gpu.TextureUsageTextureBinding | gpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("source: create float32 texture: %w", err)
	}
	rowBytes := int(width) * bytesPerPixel
	l.device.Queue().WriteTexture(tex, flipRows(pixels, rowBytes, int(height)), uint32(rowBytes))
	return tex, nil
}

// UploadFloat16 uploads a contiguous RGBA float16 buffer, bottom-row-first,
// into a top-row-first half-precision gpu.Texture.
func (l *Loader) UploadFloat16(width, height uint32, pixels []byte) (gpu.Texture, error) {
	const bytesPerPixel = 8
	if err := checkBufferSize(width, height, bytesPerPixel, len(pixels)); err != nil {
		return nil, err
	}
	tex, err := l.device.CreateTexture(gpu.TextureDescriptor{
		Label:  "source:float16",
		Width:  width,
		Height: height,
		Format: gpu.FormatRGBA16Float,
		Usage:  gpu.TextureUsageTextureBinding | gpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("source: create float16 texture: %w", err)
	}
	rowBytes := int(width) * bytesPerPixel
	l.device.Queue().WriteTexture(tex, flipRows(pixels, rowBytes, int(height)), uint32(rowBytes))
	return tex, nil
}

// UploadDDS uploads a parsed DDS payload. Uncompressed payloads upload
// directly as float32. Compressed payloads upload as a block-compressed
// GPU texture when the device exposes the compressedUploader capability
// (both backends in this module do); a device that doesn't gets an error
// naming the missing capability instead of silently falling back.
func (l *Loader) UploadDDS(parsed *dds.ParsedDDS) (gpu.Texture, error) {
	if parsed == nil {
		return nil, fmt.Errorf("source: nil parsed DDS payload")
	}
	if parsed.Uncompressed != nil {
		u := parsed.Uncompressed
		pixels := make([]byte, len(u.Pixels)*4)
		for i, f := range u.Pixels {
			putFloat32LE(pixels[i*4:], f)
		}
		return l.UploadFloat32(uint32(u.Width), uint32(u.Height), pixels)
	}

	c := parsed.Compressed
	if c == nil {
		return nil, fmt.Errorf("source: parsed DDS payload has neither compressed nor uncompressed data")
	}
	uploader, ok := l.device.(compressedUploader)
	if !ok {
		return nil, fmt.Errorf("source: device %T does not support compressed texture upload", l.device)
	}
	tex, err := uploader.UploadCompressed(c)
	if err != nil {
		return nil, fmt.Errorf("source: upload compressed DDS: %w", err)
	}
	return tex, nil
}

// compressedUploader is an optional capability a gpu.Device implementation
// may satisfy to accept block-compressed DDS payloads directly, without
// gpu depending on the dds package. Both gpu/wgpuhal (real GPU block
// sampling) and gpu/swref (software BC1-BC5 decode via dds.DecompressBC)
// implement it as a plain method, not as part of the gpu.Device interface.
type compressedUploader interface {
	UploadCompressed(c *dds.Compressed) (gpu.Texture, error)
}

func checkBufferSize(width, height uint32, bytesPerPixel, got int) error {
	want := int(width) * int(height) * bytesPerPixel
	if got != want {
		return fmt.Errorf("source: upload: need %d bytes for %dx%d, have %d", want, width, height, got)
	}
	return nil
}

func putFloat32LE(dst []byte, f float32) {
	bits := math.Float32bits(f)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}
