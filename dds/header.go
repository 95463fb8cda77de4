package dds

import "encoding/binary"

// pixelFormat mirrors DDS_PIXELFORMAT.
type pixelFormat struct {
	flags       uint32
	fourCC      uint32
	rgbBitCount uint32
	rBitMask    uint32
	gBitMask    uint32
	bBitMask    uint32
	aBitMask    uint32
}

// header mirrors DDS_HEADER (without the leading magic).
type header struct {
	size              uint32
	flags             uint32
	height            uint32
	width             uint32
	pitchOrLinearSize uint32
	depth             uint32
	mipMapCount       uint32
	pixelFormat       pixelFormat
	caps              uint32
	caps2             uint32
}

// dx10Header mirrors the extended header present when pixelFormat.fourCC ==
// "DX10".
type dx10Header struct {
	dxgiFormat        DXGIFormat
	resourceDimension uint32
	miscFlag          uint32
	arraySize         uint32
	miscFlags2        uint32
}

func parseHeader(buf []byte) (header, error) {
	if len(buf) < 4+HeaderSize {
		return header{}, newParseError(InvalidContainer, "buffer too small for magic + header: %d bytes", len(buf))
	}
	if binary.LittleEndian.Uint32(buf[0:4]) != Magic {
		return header{}, newParseError(InvalidContainer, "bad magic")
	}

	h := buf[4 : 4+HeaderSize]
	size := binary.LittleEndian.Uint32(h[0:4])
	if size != HeaderSize {
		return header{}, newParseError(InvalidContainer, "header size = %d, want %d", size, HeaderSize)
	}

	pf := h[72:104]
	pfSize := binary.LittleEndian.Uint32(pf[0:4])
	if pfSize != PixelFormatSize {
		return header{}, newParseError(InvalidContainer, "pixel format size = %d, want %d", pfSize, PixelFormatSize)
	}

	return header{
		size:              size,
		flags:             binary.LittleEndian.Uint32(h[4:8]),
		height:            binary.LittleEndian.Uint32(h[8:12]),
		width:             binary.LittleEndian.Uint32(h[12:16]),
		pitchOrLinearSize: binary.LittleEndian.Uint32(h[16:20]),
		depth:             binary.LittleEndian.Uint32(h[20:24]),
		mipMapCount:       binary.LittleEndian.Uint32(h[24:28]),
		pixelFormat: pixelFormat{
			flags:       binary.LittleEndian.Uint32(pf[4:8]),
			fourCC:      binary.LittleEndian.Uint32(pf[8:12]),
			rgbBitCount: binary.LittleEndian.Uint32(pf[12:16]),
			rBitMask:    binary.LittleEndian.Uint32(pf[16:20]),
			gBitMask:    binary.LittleEndian.Uint32(pf[20:24]),
			bBitMask:    binary.LittleEndian.Uint32(pf[24:28]),
			aBitMask:    binary.LittleEndian.Uint32(pf[28:32]),
		},
		caps:  binary.LittleEndian.Uint32(h[104:108]),
		caps2: binary.LittleEndian.Uint32(h[108:112]),
	}, nil
}

func parseDX10Header(buf []byte) (dx10Header, error) {
	if len(buf) < DX10HeaderSize {
		return dx10Header{}, newParseError(Truncated, "buffer too small for DX10 header: %d bytes", len(buf))
	}
	return dx10Header{
		dxgiFormat:        DXGIFormat(binary.LittleEndian.Uint32(buf[0:4])),
		resourceDimension: binary.LittleEndian.Uint32(buf[4:8]),
		miscFlag:          binary.LittleEndian.Uint32(buf[8:12]),
		arraySize:         binary.LittleEndian.Uint32(buf[12:16]),
		miscFlags2:        binary.LittleEndian.Uint32(buf[16:20]),
	}, nil
}

// legacyFourCCToBC maps the seven legacy FourCC codes spec.md names (five BC
// formats) to their DXGI equivalent, so the rest of the parser only branches
// on DXGIFormat.
func legacyFourCCToBC(code uint32) (DXGIFormat, bool) {
	switch code {
	case fourCCDXT1:
		return DXGIFormatBC1Unorm, true
	case fourCCDXT3:
		return DXGIFormatBC2Unorm, true
	case fourCCDXT5:
		return DXGIFormatBC3Unorm, true
	case fourCCATI1, fourCCBC4U:
		return DXGIFormatBC4Unorm, true
	case fourCCATI2, fourCCBC5U:
		return DXGIFormatBC5Unorm, true
	default:
		return DXGIFormatUnknown, false
	}
}
