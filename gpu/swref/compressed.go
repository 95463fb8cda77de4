package swref

import (
	"fmt"

	"github.com/hdrscope/pipeline/dds"
	"github.com/hdrscope/pipeline/gpu"
)

// UploadCompressed decodes c's blocks to RGBA float32 on the CPU via
// dds.DecompressBC and stores the result as an ordinary software texture.
// BC6H and BC7 have no software decoder (dds.BlockFormatKind reports
// false for both), so those formats fail clearly here rather than
// producing wrong pixels; a caller that needs them must use gpu/wgpuhal.
func (d *Device) UploadCompressed(c *dds.Compressed) (gpu.Texture, error) {
	kind, ok := c.BlockFormatKind()
	if !ok {
		return nil, fmt.Errorf("swref: %s has no software block decoder, use a real GPU backend", c.Format.FormatName())
	}
	pixels, err := dds.DecompressBC(kind, c.Blocks, c.Width, c.Height)
	if err != nil {
		return nil, fmt.Errorf("swref: decompress blocks: %w", err)
	}
	return &Texture{
		width: uint32(c.Width), height: uint32(c.Height),
		format: gpu.FormatRGBA32Float,
		pixels: pixels,
	}, nil
}
