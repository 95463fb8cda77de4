package dds

// Magic is the fixed 4-byte DDS file signature, "DDS " little-endian.
const Magic = 0x20534444

// HeaderSize is the fixed size in bytes of the DDS_HEADER structure.
const HeaderSize = 124

// PixelFormatSize is the fixed size in bytes of the DDS_PIXELFORMAT
// structure embedded in the header.
const PixelFormatSize = 32

// DX10HeaderSize is the size of the optional extended header that follows
// the pixel format when dwFourCC == "DX10".
const DX10HeaderSize = 20

// Header flag bits (dwFlags).
const (
	headerFlagsCaps        = 0x1
	headerFlagsHeight      = 0x2
	headerFlagsWidth       = 0x4
	headerFlagsPitch       = 0x8
	headerFlagsPixelFormat = 0x1000
	headerFlagsMipmapCount = 0x20000
	headerFlagsLinearSize  = 0x80000
	headerFlagsDepth       = 0x800000
)

// Surface capability bits (dwCaps2) that mark an unsupported layout.
const (
	caps2Cubemap = 0x200
	caps2Volume  = 0x200000
)

// Pixel format flag bits (DDS_PIXELFORMAT.dwFlags).
const (
	pixelFlagAlphaPixels = 0x1
	pixelFlagFourCC      = 0x4
	pixelFlagRGB         = 0x40
	pixelFlagLuminance   = 0x20000
)

var fourCCDX10 = fourCC('D', 'X', '1', '0')

func fourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// Legacy FourCC codes spec.md's supported format list names explicitly.
var (
	fourCCDXT1 = fourCC('D', 'X', 'T', '1')
	fourCCDXT3 = fourCC('D', 'X', 'T', '3')
	fourCCDXT5 = fourCC('D', 'X', 'T', '5')
	fourCCATI1 = fourCC('A', 'T', 'I', '1')
	fourCCBC4U = fourCC('B', 'C', '4', 'U')
	fourCCATI2 = fourCC('A', 'T', 'I', '2')
	fourCCBC5U = fourCC('B', 'C', '5', 'U')
)

// DXGIFormat is the subset of DXGI_FORMAT values the parser recognises,
// named the way heisthecat31-evrFileTools/pkg/texture's DXGI_FORMAT_*
// constants are.
type DXGIFormat uint32

// Recognised DXGI formats.
const (
	DXGIFormatUnknown           DXGIFormat = 0
	DXGIFormatR32G32B32A32Float DXGIFormat = 2
	DXGIFormatR32G32B32Float    DXGIFormat = 6
	DXGIFormatR16G16B16A16Float DXGIFormat = 10
	DXGIFormatR16G16B16A16Unorm DXGIFormat = 11
	DXGIFormatR16G16B16A16SNorm DXGIFormat = 13
	DXGIFormatR32G32Float       DXGIFormat = 16
	DXGIFormatR10G10B10A2Unorm  DXGIFormat = 24
	DXGIFormatR11G11B10Float    DXGIFormat = 26
	DXGIFormatR8G8B8A8Unorm     DXGIFormat = 28
	DXGIFormatR8G8B8A8UnormSRGB DXGIFormat = 29
	DXGIFormatR8G8B8A8SNorm     DXGIFormat = 31
	DXGIFormatR16G16Float       DXGIFormat = 34
	DXGIFormatR16G16Unorm       DXGIFormat = 35
	DXGIFormatR16G16SNorm       DXGIFormat = 37
	DXGIFormatR32Float          DXGIFormat = 41
	DXGIFormatR8G8Unorm         DXGIFormat = 49
	DXGIFormatR8G8SNorm         DXGIFormat = 51
	DXGIFormatR16Float          DXGIFormat = 54
	DXGIFormatR16Unorm          DXGIFormat = 56
	DXGIFormatR16SNorm          DXGIFormat = 58
	DXGIFormatR8Unorm           DXGIFormat = 61
	DXGIFormatR8SNorm           DXGIFormat = 63
	DXGIFormatA8Unorm           DXGIFormat = 65
	DXGIFormatBC1Unorm          DXGIFormat = 71
	DXGIFormatBC1UnormSRGB      DXGIFormat = 72
	DXGIFormatBC2Unorm          DXGIFormat = 74
	DXGIFormatBC2UnormSRGB      DXGIFormat = 75
	DXGIFormatBC3Unorm          DXGIFormat = 77
	DXGIFormatBC3UnormSRGB      DXGIFormat = 78
	DXGIFormatBC4Unorm          DXGIFormat = 80
	DXGIFormatBC4SNorm          DXGIFormat = 81
	DXGIFormatBC5Unorm          DXGIFormat = 83
	DXGIFormatBC5SNorm          DXGIFormat = 84
	DXGIFormatB8G8R8A8Unorm     DXGIFormat = 87
	DXGIFormatB8G8R8X8Unorm     DXGIFormat = 88
	DXGIFormatB8G8R8A8UnormSRGB DXGIFormat = 91
	DXGIFormatB8G8R8X8UnormSRGB DXGIFormat = 93
	DXGIFormatBC6HUF16          DXGIFormat = 95
	DXGIFormatBC6HSF16          DXGIFormat = 96
	DXGIFormatBC7Unorm          DXGIFormat = 98
	DXGIFormatBC7UnormSRGB      DXGIFormat = 99
)

// FormatName returns a human-readable name for a DXGI format, following
// pkg/texture's FormatName switch idiom.
func (f DXGIFormat) FormatName() string {
	switch f {
	case DXGIFormatR32G32B32A32Float:
		return "R32G32B32A32_FLOAT"
	case DXGIFormatR32G32B32Float:
		return "R32G32B32_FLOAT"
	case DXGIFormatR16G16B16A16Float:
		return "R16G16B16A16_FLOAT"
	case DXGIFormatR16G16B16A16Unorm:
		return "R16G16B16A16_UNORM"
	case DXGIFormatR16G16B16A16SNorm:
		return "R16G16B16A16_SNORM"
	case DXGIFormatR32G32Float:
		return "R32G32_FLOAT"
	case DXGIFormatR10G10B10A2Unorm:
		return "R10G10B10A2_UNORM"
	case DXGIFormatR11G11B10Float:
		return "R11G11B10_FLOAT"
	case DXGIFormatR8G8B8A8Unorm:
		return "R8G8B8A8_UNORM"
	case DXGIFormatR8G8B8A8UnormSRGB:
		return "R8G8B8A8_UNORM_SRGB"
	case DXGIFormatR8G8B8A8SNorm:
		return "R8G8B8A8_SNORM"
	case DXGIFormatR16G16Float:
		return "R16G16_FLOAT"
	case DXGIFormatR16G16Unorm:
		return "R16G16_UNORM"
	case DXGIFormatR16G16SNorm:
		return "R16G16_SNORM"
	case DXGIFormatR32Float:
		return "R32_FLOAT"
	case DXGIFormatR8G8Unorm:
		return "R8G8_UNORM"
	case DXGIFormatR8G8SNorm:
		return "R8G8_SNORM"
	case DXGIFormatR16Float:
		return "R16_FLOAT"
	case DXGIFormatR16Unorm:
		return "R16_UNORM"
	case DXGIFormatR16SNorm:
		return "R16_SNORM"
	case DXGIFormatR8Unorm:
		return "R8_UNORM"
	case DXGIFormatR8SNorm:
		return "R8_SNORM"
	case DXGIFormatA8Unorm:
		return "A8_UNORM"
	case DXGIFormatBC1Unorm:
		return "BC1_UNORM"
	case DXGIFormatBC1UnormSRGB:
		return "BC1_UNORM_SRGB"
	case DXGIFormatBC2Unorm:
		return "BC2_UNORM"
	case DXGIFormatBC2UnormSRGB:
		return "BC2_UNORM_SRGB"
	case DXGIFormatBC3Unorm:
		return "BC3_UNORM"
	case DXGIFormatBC3UnormSRGB:
		return "BC3_UNORM_SRGB"
	case DXGIFormatBC4Unorm:
		return "BC4_UNORM"
	case DXGIFormatBC4SNorm:
		return "BC4_SNORM"
	case DXGIFormatBC5Unorm:
		return "BC5_UNORM"
	case DXGIFormatBC5SNorm:
		return "BC5_SNORM"
	case DXGIFormatB8G8R8A8Unorm:
		return "B8G8R8A8_UNORM"
	case DXGIFormatB8G8R8X8Unorm:
		return "B8G8R8X8_UNORM"
	case DXGIFormatB8G8R8A8UnormSRGB:
		return "B8G8R8A8_UNORM_SRGB"
	case DXGIFormatB8G8R8X8UnormSRGB:
		return "B8G8R8X8_UNORM_SRGB"
	case DXGIFormatBC6HUF16:
		return "BC6H_UF16"
	case DXGIFormatBC6HSF16:
		return "BC6H_SF16"
	case DXGIFormatBC7Unorm:
		return "BC7_UNORM"
	case DXGIFormatBC7UnormSRGB:
		return "BC7_UNORM_SRGB"
	default:
		return "UNKNOWN"
	}
}

// IsBlockCompressed reports whether f is one of the seven BC families.
func (f DXGIFormat) IsBlockCompressed() bool {
	switch f {
	case DXGIFormatBC1Unorm, DXGIFormatBC1UnormSRGB,
		DXGIFormatBC2Unorm, DXGIFormatBC2UnormSRGB,
		DXGIFormatBC3Unorm, DXGIFormatBC3UnormSRGB,
		DXGIFormatBC4Unorm, DXGIFormatBC4SNorm,
		DXGIFormatBC5Unorm, DXGIFormatBC5SNorm,
		DXGIFormatBC6HUF16, DXGIFormatBC6HSF16,
		DXGIFormatBC7Unorm, DXGIFormatBC7UnormSRGB:
		return true
	default:
		return false
	}
}

// BlockSize returns the compressed block size in bytes: 8 for BC1/BC4,
// 16 for every other BC format.
func (f DXGIFormat) BlockSize() int {
	switch f {
	case DXGIFormatBC1Unorm, DXGIFormatBC1UnormSRGB,
		DXGIFormatBC4Unorm, DXGIFormatBC4SNorm:
		return 8
	default:
		return 16
	}
}

// BytesPerPixel returns the per-pixel byte stride of an uncompressed DXGI
// format, or 0 if f is block-compressed or unrecognised.
func (f DXGIFormat) BytesPerPixel() int {
	switch f {
	case DXGIFormatR32G32B32A32Float:
		return 16
	case DXGIFormatR32G32B32Float:
		return 12
	case DXGIFormatR16G16B16A16Float, DXGIFormatR16G16B16A16Unorm, DXGIFormatR16G16B16A16SNorm:
		return 8
	case DXGIFormatR32G32Float:
		return 8
	case DXGIFormatR10G10B10A2Unorm:
		return 4
	case DXGIFormatR11G11B10Float:
		return 4
	case DXGIFormatR8G8B8A8Unorm, DXGIFormatR8G8B8A8UnormSRGB, DXGIFormatR8G8B8A8SNorm:
		return 4
	case DXGIFormatB8G8R8A8Unorm, DXGIFormatB8G8R8A8UnormSRGB:
		return 4
	case DXGIFormatB8G8R8X8Unorm, DXGIFormatB8G8R8X8UnormSRGB:
		return 4
	case DXGIFormatR16G16Float, DXGIFormatR16G16Unorm, DXGIFormatR16G16SNorm:
		return 4
	case DXGIFormatR32Float:
		return 4
	case DXGIFormatR8G8Unorm, DXGIFormatR8G8SNorm:
		return 2
	case DXGIFormatR16Float, DXGIFormatR16Unorm, DXGIFormatR16SNorm:
		return 2
	case DXGIFormatR8Unorm, DXGIFormatR8SNorm, DXGIFormatA8Unorm:
		return 1
	default:
		return 0
	}
}

// HasAlpha reports whether the decoded alpha channel for an uncompressed
// format comes from the file rather than defaulting to 1.0, per the Alpha
// default invariant in spec.md §8. A8 is the special case that defaults
// R, G, B instead.
func (f DXGIFormat) HasAlpha() bool {
	switch f {
	case DXGIFormatR32G32B32A32Float,
		DXGIFormatR16G16B16A16Float, DXGIFormatR16G16B16A16Unorm, DXGIFormatR16G16B16A16SNorm,
		DXGIFormatR10G10B10A2Unorm,
		DXGIFormatR8G8B8A8Unorm, DXGIFormatR8G8B8A8UnormSRGB, DXGIFormatR8G8B8A8SNorm,
		DXGIFormatB8G8R8A8Unorm, DXGIFormatB8G8R8A8UnormSRGB,
		DXGIFormatA8Unorm:
		return true
	default:
		return false
	}
}
