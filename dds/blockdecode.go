package dds

import "fmt"

// BlockFormat names the block-compression algorithm a Compressed payload
// uses, independent of which DXGI code or legacy FourCC selected it —
// BC1Unorm and BC1UnormSRGB decode identically, only their sampled
// interpretation on the GPU differs.
type BlockFormat int

// Supported block algorithms. BC6H and BC7 have no software decoder here;
// BlockFormatKind reports them as unsupported so a caller (gpu/swref) can
// fail clearly instead of producing wrong pixels.
const (
	BlockBC1 BlockFormat = iota
	BlockBC2
	BlockBC3
	BlockBC4Unorm
	BlockBC4SNorm
	BlockBC5Unorm
	BlockBC5SNorm
)

// BlockFormatKind reports which software block decoder applies to c, or
// false if none does (BC6H, BC7 — left to real GPU sampling).
func (c *Compressed) BlockFormatKind() (BlockFormat, bool) {
	switch c.Format {
	case DXGIFormatBC1Unorm, DXGIFormatBC1UnormSRGB:
		return BlockBC1, true
	case DXGIFormatBC2Unorm, DXGIFormatBC2UnormSRGB:
		return BlockBC2, true
	case DXGIFormatBC3Unorm, DXGIFormatBC3UnormSRGB:
		return BlockBC3, true
	case DXGIFormatBC4Unorm:
		return BlockBC4Unorm, true
	case DXGIFormatBC4SNorm:
		return BlockBC4SNorm, true
	case DXGIFormatBC5Unorm:
		return BlockBC5Unorm, true
	case DXGIFormatBC5SNorm:
		return BlockBC5SNorm, true
	default:
		return 0, false
	}
}

// DecompressBC decodes a full block-compressed payload to row-major, top-row
// first RGBA float32 pixels. width and height need not be multiples of 4;
// partial edge blocks are cropped to the image bounds.
func DecompressBC(kind BlockFormat, blocks []byte, width, height int) ([]float32, error) {
	blocksPerRow := (width + 3) / 4
	blocksPerCol := (height + 3) / 4
	blockSize := bcBlockSize(kind)
	want := blocksPerRow * blocksPerCol * blockSize
	if len(blocks) < want {
		return nil, fmt.Errorf("dds: decompress: need %d block bytes, have %d", want, len(blocks))
	}

	out := make([]float32, width*height*4)
	for by := 0; by < blocksPerCol; by++ {
		for bx := 0; bx < blocksPerRow; bx++ {
			off := (by*blocksPerRow + bx) * blockSize
			var px [16][4]float32
			decodeOneBlock(kind, blocks[off:off+blockSize], &px)
			for ly := 0; ly < 4; ly++ {
				y := by*4 + ly
				if y >= height {
					continue
				}
				for lx := 0; lx < 4; lx++ {
					x := bx*4 + lx
					if x >= width {
						continue
					}
					p := px[ly*4+lx]
					i := (y*width + x) * 4
					out[i], out[i+1], out[i+2], out[i+3] = p[0], p[1], p[2], p[3]
				}
			}
		}
	}
	return out, nil
}

func bcBlockSize(kind BlockFormat) int {
	switch kind {
	case BlockBC1, BlockBC4Unorm, BlockBC4SNorm:
		return 8
	default:
		return 16
	}
}

func decodeOneBlock(kind BlockFormat, block []byte, px *[16][4]float32) {
	switch kind {
	case BlockBC1:
		decodeBC1Color(block[0:8], px)
		for i := range px {
			px[i][3] = 1
		}
		decodeBC1ColorAlpha(block[0:8], px)
	case BlockBC2:
		decodeBC1Color(block[8:16], px)
		decodeExplicit4BitAlpha(block[0:8], px)
	case BlockBC3:
		decodeBC1Color(block[8:16], px)
		var alpha [16]float32
		decodeInterpolatedAlpha(block[0:8], &alpha, false)
		for i := range px {
			px[i][3] = alpha[i]
		}
	case BlockBC4Unorm:
		var r [16]float32
		decodeInterpolatedAlpha(block[0:8], &r, false)
		for i := range px {
			px[i] = [4]float32{r[i], 0, 0, 1}
		}
	case BlockBC4SNorm:
		var r [16]float32
		decodeInterpolatedAlpha(block[0:8], &r, true)
		for i := range px {
			px[i] = [4]float32{r[i], 0, 0, 1}
		}
	case BlockBC5Unorm:
		var r, g [16]float32
		decodeInterpolatedAlpha(block[0:8], &r, false)
		decodeInterpolatedAlpha(block[8:16], &g, false)
		for i := range px {
			px[i] = [4]float32{r[i], g[i], 0, 1}
		}
	case BlockBC5SNorm:
		var r, g [16]float32
		decodeInterpolatedAlpha(block[0:8], &r, true)
		decodeInterpolatedAlpha(block[8:16], &g, true)
		for i := range px {
			px[i] = [4]float32{r[i], g[i], 0, 1}
		}
	}
}

// decodeBC1Color unpacks the shared BC1/BC2/BC3 color block: two RGB565
// endpoints plus a 2-bit-per-texel index into a 4-entry palette. BC1's
// punch-through-alpha handling of the fourth palette entry is
// applied separately by decodeBC1ColorAlpha, since BC2/BC3 ignore it.
func decodeBC1Color(block []byte, px *[16][4]float32) {
	c0 := uint16(block[0]) | uint16(block[1])<<8
	c1 := uint16(block[2]) | uint16(block[3])<<8
	r0, g0, b0 := unpack565(c0)
	r1, g1, b1 := unpack565(c1)

	var palette [4][3]float32
	palette[0] = [3]float32{r0, g0, b0}
	palette[1] = [3]float32{r1, g1, b1}
	if c0 > c1 {
		palette[2] = lerp3(palette[0], palette[1], 1.0/3)
		palette[3] = lerp3(palette[0], palette[1], 2.0/3)
	} else {
		palette[2] = lerp3(palette[0], palette[1], 0.5)
		palette[3] = [3]float32{0, 0, 0}
	}

	indices := uint32(block[4]) | uint32(block[5])<<8 | uint32(block[6])<<16 | uint32(block[7])<<24
	for i := 0; i < 16; i++ {
		idx := (indices >> (2 * uint(i))) & 0x3
		c := palette[idx]
		px[i][0], px[i][1], px[i][2] = c[0], c[1], c[2]
	}
}

// decodeBC1ColorAlpha applies BC1's punch-through alpha: when c0 <= c1,
// palette entry 3 is transparent black instead of an interpolated color.
func decodeBC1ColorAlpha(block []byte, px *[16][4]float32) {
	c0 := uint16(block[0]) | uint16(block[1])<<8
	c1 := uint16(block[2]) | uint16(block[3])<<8
	if c0 > c1 {
		return
	}
	indices := uint32(block[4]) | uint32(block[5])<<8 | uint32(block[6])<<16 | uint32(block[7])<<24
	for i := 0; i < 16; i++ {
		idx := (indices >> (2 * uint(i))) & 0x3
		if idx == 3 {
			px[i][3] = 0
		}
	}
}

func unpack565(c uint16) (r, g, b float32) {
	r = float32((c>>11)&0x1f) / 31
	g = float32((c>>5)&0x3f) / 63
	b = float32(c&0x1f) / 31
	return
}

func lerp3(a, b [3]float32, t float32) [3]float32 {
	return [3]float32{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// decodeExplicit4BitAlpha unpacks BC2's 16 explicit 4-bit alpha values, one
// nibble per texel in raster order.
func decodeExplicit4BitAlpha(block []byte, px *[16][4]float32) {
	for i := 0; i < 16; i++ {
		byteIdx := i / 2
		var nibble byte
		if i%2 == 0 {
			nibble = block[byteIdx] & 0x0f
		} else {
			nibble = block[byteIdx] >> 4
		}
		px[i][3] = float32(nibble) / 15
	}
}

// decodeInterpolatedAlpha decodes a BC3/BC4/BC5 single-channel block: two
// 8-bit endpoints expanded into an 8-entry palette (six interpolated values,
// or four plus the two fixed extremes, selected by endpoint ordering),
// indexed by a 3-bit-per-texel index. signedChannel
// selects BC4/BC5's SNorm variant, which reinterprets the endpoint bytes as
// signed and divides by 127 instead of 255.
func decodeInterpolatedAlpha(block []byte, out *[16]float32, signedChannel bool) {
	a0 := block[0]
	a1 := block[1]
	indices := uint64(0)
	for i := 0; i < 6; i++ {
		indices |= uint64(block[2+i]) << (8 * uint(i))
	}

	decode := func(v byte) float32 {
		if signedChannel {
			return decodeSNorm8(v)
		}
		return decodeUnorm8(v)
	}
	e0, e1 := decode(a0), decode(a1)

	var palette [8]float32
	palette[0], palette[1] = e0, e1
	if a0 > a1 {
		for i := 1; i <= 6; i++ {
			palette[1+i] = e0 + (e1-e0)*float32(i)/7
		}
	} else {
		for i := 1; i <= 4; i++ {
			palette[1+i] = e0 + (e1-e0)*float32(i)/5
		}
		if signedChannel {
			palette[6] = -1
			palette[7] = 1
		} else {
			palette[6] = 0
			palette[7] = 1
		}
	}

	for i := 0; i < 16; i++ {
		idx := (indices >> (3 * uint(i))) & 0x7
		out[i] = palette[idx]
	}
}
