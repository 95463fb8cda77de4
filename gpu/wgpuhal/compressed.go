package wgpuhal

import (
	"fmt"

	"github.com/hdrscope/pipeline/dds"
	"github.com/hdrscope/pipeline/gpu"
)

// UploadCompressed creates a block-compressed texture sized to c and writes
// c's raw block bytes directly, letting the real GPU sample and decode the
// format natively instead of decoding on the CPU. It satisfies source's
// compressedUploader capability.
func (d *Device) UploadCompressed(c *dds.Compressed) (gpu.Texture, error) {
	format, err := compressedFormat(c.Format)
	if err != nil {
		return nil, err
	}
	tex, err := d.CreateTexture(gpu.TextureDescriptor{
		Label:  "source:compressed",
		Width:  uint32(c.Width),
		Height: uint32(c.Height),
		Format: format,
		Usage:  gpu.TextureUsageTextureBinding | gpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpuhal: create compressed texture: %w", err)
	}
	rowBytes := uint32(c.BlocksPerRow * c.BlockSize)
	d.Queue().WriteTexture(tex, c.Blocks, rowBytes)
	return tex, nil
}

// compressedFormat maps a dds.DXGIFormat to the gpu.TextureFormat
// constant a real backend understands. BC6H and BC7 are included here
// (unlike dds.BlockFormatKind, which only names formats this module can
// decode in software) since the real GPU sampler handles every BC
// algorithm natively.
func compressedFormat(f dds.DXGIFormat) (gpu.TextureFormat, error) {
	switch f {
	case dds.DXGIFormatBC1Unorm:
		return gpu.FormatBC1Unorm, nil
	case dds.DXGIFormatBC1UnormSRGB:
		return gpu.FormatBC1UnormSRGB, nil
	case dds.DXGIFormatBC2Unorm:
		return gpu.FormatBC2Unorm, nil
	case dds.DXGIFormatBC2UnormSRGB:
		return gpu.FormatBC2UnormSRGB, nil
	case dds.DXGIFormatBC3Unorm:
		return gpu.FormatBC3Unorm, nil
	case dds.DXGIFormatBC3UnormSRGB:
		return gpu.FormatBC3UnormSRGB, nil
	case dds.DXGIFormatBC4Unorm:
		return gpu.FormatBC4Unorm, nil
	case dds.DXGIFormatBC4SNorm:
		return gpu.FormatBC4SNorm, nil
	case dds.DXGIFormatBC5Unorm:
		return gpu.FormatBC5Unorm, nil
	case dds.DXGIFormatBC5SNorm:
		return gpu.FormatBC5SNorm, nil
	case dds.DXGIFormatBC6HUF16:
		return gpu.FormatBC6HUF16, nil
	case dds.DXGIFormatBC6HSF16:
		return gpu.FormatBC6HSF16, nil
	case dds.DXGIFormatBC7Unorm:
		return gpu.FormatBC7Unorm, nil
	case dds.DXGIFormatBC7UnormSRGB:
		return gpu.FormatBC7UnormSRGB, nil
	default:
		return 0, fmt.Errorf("wgpuhal: %s has no compressed GPU format mapping", f.FormatName())
	}
}
