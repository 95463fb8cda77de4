package source

import (
	"bytes"
	"math"
	"testing"

	"github.com/hdrscope/pipeline/dds"
	"github.com/hdrscope/pipeline/gpu"
	"github.com/hdrscope/pipeline/gpu/swref"
)

func f32le(v float32) []byte {
	b := make([]byte, 4)
	bits := math.Float32bits(v)
	b[0], b[1], b[2], b[3] = byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)
	return b
}

func TestFlipRowsIsIdempotentInPairs(t *testing.T) {
	original := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	once := flipRows(original, 4, 3)
	twice := flipRows(once, 4, 3)
	if !bytes.Equal(twice, original) {
		t.Fatalf("flipRows twice = %v, want original %v", twice, original)
	}
	if bytes.Equal(once, original) {
		t.Fatal("flipRows once unexpectedly left the buffer unchanged")
	}
}

func TestUploadFloat32RejectsWrongLength(t *testing.T) {
	l := NewLoader(swref.NewDevice())
	_, err := l.UploadFloat32(2, 2, make([]byte, 10))
	if err == nil {
		t.Fatal("expected an error for a short buffer")
	}
}

func TestUploadFloat32RoundTripsPixelValues(t *testing.T) {
	l := NewLoader(swref.NewDevice())
	// Two rows of one pixel each, bottom-row-first: row0 = red, row1 = green.
	var buf []byte
	buf = append(buf, f32le(1)...)
	buf = append(buf, f32le(0)...)
	buf = append(buf, f32le(0)...)
	buf = append(buf, f32le(1)...)
	buf = append(buf, f32le(0)...)
	buf = append(buf, f32le(1)...)
	buf = append(buf, f32le(0)...)
	buf = append(buf, f32le(1)...)

	tex, err := l.UploadFloat32(1, 2, buf)
	if err != nil {
		t.Fatalf("UploadFloat32: %v", err)
	}
	sw := tex.(*swref.Texture)
	// After the flip, the top row (y=0) must be the buffer's last input
	// row: green.
	r, g, _, _ := sw.PixelAt(0, 0)
	if r != 0 || g != 1 {
		t.Fatalf("top row after upload = (%v,%v), want (0,1) (green)", r, g)
	}
}

func TestUploadDDSRejectsNilPayload(t *testing.T) {
	l := NewLoader(swref.NewDevice())
	if _, err := l.UploadDDS(nil); err == nil {
		t.Fatal("expected an error for a nil payload")
	}
}

func TestUploadDDSUncompressedDelegatesToFloat32(t *testing.T) {
	l := NewLoader(swref.NewDevice())
	parsed := &dds.ParsedDDS{
		Uncompressed: &dds.Uncompressed{
			Width: 1, Height: 1,
			Pixels: []float32{0.5, 0.25, 0.125, 1},
		},
	}
	tex, err := l.UploadDDS(parsed)
	if err != nil {
		t.Fatalf("UploadDDS: %v", err)
	}
	if tex.Width() != 1 || tex.Height() != 1 {
		t.Fatalf("texture size = %dx%d, want 1x1", tex.Width(), tex.Height())
	}
}

func TestUploadDDSCompressedUsesDeviceCapability(t *testing.T) {
	l := NewLoader(swref.NewDevice())
	blocks := make([]byte, 8) // one solid BC1 block, all zero endpoints
	parsed := &dds.ParsedDDS{
		Compressed: &dds.Compressed{
			Width: 4, Height: 4,
			Format:       dds.DXGIFormatBC1Unorm,
			Blocks:       blocks,
			BlockSize:    8,
			BlocksPerRow: 1,
			BlocksPerCol: 1,
		},
	}
	tex, err := l.UploadDDS(parsed)
	if err != nil {
		t.Fatalf("UploadDDS: %v", err)
	}
	if tex.Width() != 4 || tex.Height() != 4 {
		t.Fatalf("decoded texture size = %dx%d, want 4x4", tex.Width(), tex.Height())
	}
}

func TestUploadDDSRejectsCompressedWithoutDeviceCapability(t *testing.T) {
	l := &Loader{device: noCapabilityDevice{swref.NewDevice()}}
	parsed := &dds.ParsedDDS{
		Compressed: &dds.Compressed{
			Width: 4, Height: 4,
			Format: dds.DXGIFormatBC1Unorm, Blocks: make([]byte, 8),
			BlockSize: 8, BlocksPerRow: 1, BlocksPerCol: 1,
		},
	}
	if _, err := l.UploadDDS(parsed); err == nil {
		t.Fatal("expected an error when the device has no compressedUploader capability")
	}
}

// noCapabilityDevice embeds a real gpu.Device but deliberately does not
// forward UploadCompressed, so it fails the compressedUploader type
// assertion in UploadDDS.
type noCapabilityDevice struct {
	gpu.Device
}
