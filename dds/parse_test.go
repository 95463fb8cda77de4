package dds

import (
	"encoding/binary"
	"math"
	"testing"
)

func buildHeader(width, height, pitchOrLinear uint32, pf pixelFormat) []byte {
	buf := make([]byte, 4+HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], Magic)

	h := buf[4:]
	binary.LittleEndian.PutUint32(h[0:4], HeaderSize)
	binary.LittleEndian.PutUint32(h[4:8], headerFlagsCaps|headerFlagsHeight|headerFlagsWidth|headerFlagsPixelFormat)
	binary.LittleEndian.PutUint32(h[8:12], height)
	binary.LittleEndian.PutUint32(h[12:16], width)
	binary.LittleEndian.PutUint32(h[16:20], pitchOrLinear)

	pfBuf := h[72:104]
	binary.LittleEndian.PutUint32(pfBuf[0:4], PixelFormatSize)
	binary.LittleEndian.PutUint32(pfBuf[4:8], pf.flags)
	binary.LittleEndian.PutUint32(pfBuf[8:12], pf.fourCC)
	binary.LittleEndian.PutUint32(pfBuf[12:16], pf.rgbBitCount)
	binary.LittleEndian.PutUint32(pfBuf[16:20], pf.rBitMask)
	binary.LittleEndian.PutUint32(pfBuf[20:24], pf.gBitMask)
	binary.LittleEndian.PutUint32(pfBuf[24:28], pf.bBitMask)
	binary.LittleEndian.PutUint32(pfBuf[28:32], pf.aBitMask)

	binary.LittleEndian.PutUint32(h[104:108], headerFlagsCaps)
	return buf
}

func buildDX10Body(format DXGIFormat, payload []byte) []byte {
	ext := make([]byte, DX10HeaderSize)
	binary.LittleEndian.PutUint32(ext[0:4], uint32(format))
	binary.LittleEndian.PutUint32(ext[4:8], 3) // TEXTURE2D
	binary.LittleEndian.PutUint32(ext[16:20], 1)
	return append(ext, payload...)
}

func TestParseRGBA32FRoundTrip(t *testing.T) {
	const w, h = 2, 2
	gradient := []float32{
		0, 0, 0, 1,
		0.25, 0.25, 0.25, 1,
		0.5, 0.5, 0.5, 1,
		1, 1, 1, 1,
	}
	payload := make([]byte, len(gradient)*4)
	for i, v := range gradient {
		binary.LittleEndian.PutUint32(payload[i*4:], math.Float32bits(v))
	}

	hdr := buildHeader(w, h, 0, pixelFormat{flags: pixelFlagFourCC, fourCC: fourCCDX10})
	body := buildDX10Body(DXGIFormatR32G32B32A32Float, payload)

	parsed, err := Parse(append(hdr, body...))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if parsed.Uncompressed == nil {
		t.Fatal("expected uncompressed payload")
	}
	for i, want := range gradient {
		if parsed.Uncompressed.Pixels[i] != want {
			t.Errorf("pixel[%d] = %v, want %v", i, parsed.Uncompressed.Pixels[i], want)
		}
	}
}

func TestParseBC1ByteCount(t *testing.T) {
	const w, h = 10, 10
	blocksPerRow := (w + 3) / 4
	blocksPerCol := (h + 3) / 4
	blockBytes := make([]byte, blocksPerRow*blocksPerCol*8)
	for i := range blockBytes {
		blockBytes[i] = byte(i)
	}

	hdr := buildHeader(w, h, 0, pixelFormat{flags: pixelFlagFourCC, fourCC: fourCCDXT1})
	parsed, err := Parse(append(hdr, blockBytes...))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if parsed.Compressed == nil {
		t.Fatal("expected compressed payload")
	}
	c := parsed.Compressed
	if got := c.BlocksPerRow * c.BlocksPerCol * c.BlockSize; got != len(blockBytes) {
		t.Errorf("blocksPerRow*blocksPerCol*blockSize = %d, want %d", got, len(blockBytes))
	}
	if c.BlocksPerRow != (w+3)/4 {
		t.Errorf("BlocksPerRow = %d, want %d", c.BlocksPerRow, (w+3)/4)
	}
	for i, b := range c.Blocks {
		if b != blockBytes[i] {
			t.Fatalf("block byte %d mismatch", i)
		}
	}
}

func TestBytesPerPixelInvariant(t *testing.T) {
	cases := []struct {
		format DXGIFormat
		bpp    int
	}{
		{DXGIFormatR32G32B32A32Float, 16},
		{DXGIFormatR32G32B32Float, 12},
		{DXGIFormatR16G16B16A16Float, 8},
		{DXGIFormatR16G16Float, 4},
		{DXGIFormatR32Float, 4},
		{DXGIFormatR16Float, 2},
		{DXGIFormatR8G8Unorm, 2},
		{DXGIFormatR8Unorm, 1},
	}
	for _, tc := range cases {
		const w, h = 4, 3
		payload := make([]byte, tc.bpp*w*h)
		hdr := buildHeader(w, h, 0, pixelFormat{flags: pixelFlagFourCC, fourCC: fourCCDX10})
		body := buildDX10Body(tc.format, payload)
		parsed, err := Parse(append(hdr, body...))
		if err != nil {
			t.Fatalf("format %s: Parse() error = %v", tc.format.FormatName(), err)
		}
		if got := tc.format.BytesPerPixel() * w * h; got != len(payload) {
			t.Errorf("format %s: bytesPerPixel*w*h = %d, want %d", tc.format.FormatName(), got, len(payload))
		}
		if parsed.Uncompressed == nil {
			t.Errorf("format %s: expected uncompressed payload", tc.format.FormatName())
		}
	}
}

func TestAlphaDefaultInvariant(t *testing.T) {
	noAlphaFormats := []DXGIFormat{
		DXGIFormatR32G32B32Float, DXGIFormatR32G32Float, DXGIFormatR16G16Float,
		DXGIFormatR32Float, DXGIFormatR16Float, DXGIFormatR16G16Unorm,
		DXGIFormatR8G8Unorm, DXGIFormatR16Unorm, DXGIFormatR8Unorm,
	}
	for _, format := range noAlphaFormats {
		bpp := format.BytesPerPixel()
		payload := make([]byte, bpp)
		hdr := buildHeader(1, 1, 0, pixelFormat{flags: pixelFlagFourCC, fourCC: fourCCDX10})
		body := buildDX10Body(format, payload)
		parsed, err := Parse(append(hdr, body...))
		if err != nil {
			t.Fatalf("format %s: Parse() error = %v", format.FormatName(), err)
		}
		if a := parsed.Uncompressed.Pixels[3]; a != 1.0 {
			t.Errorf("format %s: alpha = %v, want 1.0", format.FormatName(), a)
		}
	}

	payload := []byte{128}
	hdr := buildHeader(1, 1, 0, pixelFormat{flags: pixelFlagFourCC, fourCC: fourCCDX10})
	body := buildDX10Body(DXGIFormatA8Unorm, payload)
	parsed, err := Parse(append(hdr, body...))
	if err != nil {
		t.Fatalf("A8Unorm: Parse() error = %v", err)
	}
	px := parsed.Uncompressed.Pixels
	if px[0] != 0 || px[1] != 0 || px[2] != 0 {
		t.Errorf("A8Unorm RGB = (%v,%v,%v), want (0,0,0)", px[0], px[1], px[2])
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	buf := make([]byte, 4+HeaderSize)
	_, err := Parse(buf)
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != InvalidContainer {
		t.Fatalf("Parse() error = %v, want InvalidContainer", err)
	}
}

func TestParseRejectsTruncatedBlocks(t *testing.T) {
	hdr := buildHeader(8, 8, 0, pixelFormat{flags: pixelFlagFourCC, fourCC: fourCCDXT1})
	_, err := Parse(append(hdr, make([]byte, 4)...))
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != Truncated {
		t.Fatalf("Parse() error = %v, want Truncated", err)
	}
}

func TestParseRejectsUnsupportedFourCC(t *testing.T) {
	hdr := buildHeader(4, 4, 0, pixelFormat{flags: pixelFlagFourCC, fourCC: fourCC('Z', 'Z', 'Z', 'Z')})
	_, err := Parse(append(hdr, make([]byte, 64)...))
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != UnsupportedFormat {
		t.Fatalf("Parse() error = %v, want UnsupportedFormat", err)
	}
}

func TestParseRejectsCubemap(t *testing.T) {
	hdr := buildHeader(4, 4, 0, pixelFormat{flags: pixelFlagFourCC, fourCC: fourCCDXT1})
	binary.LittleEndian.PutUint32(hdr[4+108:4+112], caps2Cubemap)
	_, err := Parse(append(hdr, make([]byte, 16)...))
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != UnsupportedFormat {
		t.Fatalf("Parse() error = %v, want UnsupportedFormat for cubemap", err)
	}
}

func TestDecodeSNorm(t *testing.T) {
	if v := decodeSNorm8(128); v != -1 {
		t.Errorf("decodeSNorm8(128) = %v, want -1", v)
	}
	if v := decodeSNorm8(127); v <= 0 {
		t.Errorf("decodeSNorm8(127) = %v, want > 0", v)
	}
	if v := decodeSNorm8(0); v != 0 {
		t.Errorf("decodeSNorm8(0) = %v, want 0", v)
	}
}

func TestDecodeUnsignedFloatZeroAndOne(t *testing.T) {
	if v := decodeUF11(0); v != 0 {
		t.Errorf("decodeUF11(0) = %v, want 0", v)
	}
	// Exponent 15 (bias), mantissa 0 => 1.0
	bits := uint32(15) << 6
	if v := decodeUF11(bits); math.Abs(float64(v-1)) > 1e-6 {
		t.Errorf("decodeUF11(1.0 bit pattern) = %v, want 1.0", v)
	}
}
