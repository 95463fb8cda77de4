package readback

import (
	"context"
	"math"
	"testing"

	"github.com/hdrscope/pipeline/gpu"
	"github.com/hdrscope/pipeline/gpu/swref"
)

func TestHalf16ToFloat32RoundTripsCommonValues(t *testing.T) {
	cases := []struct {
		name string
		bits uint16
		want float32
	}{
		{"zero", 0x0000, 0},
		{"one", 0x3C00, 1.0},
		{"negative one", 0xBC00, -1.0},
		{"mid gray 0.18", 0x31C3, 0.1799},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := half16ToFloat32(c.bits)
			if diff := math.Abs(float64(got - c.want)); diff > 1e-3 {
				t.Fatalf("half16ToFloat32(%#x) = %v, want ~%v", c.bits, got, c.want)
			}
		})
	}
}

func TestReadReturnsFalseForOutOfBoundsTexel(t *testing.T) {
	device := swref.NewDevice()
	tex, err := device.CreateTexture(gpu.TextureDescriptor{Label: "t", Width: 2, Height: 2, Format: gpu.FormatRGBA16Float})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	r := NewReader(device)
	if r.Read(context.Background(), tex, 5, 5) {
		t.Fatal("Read succeeded for an out-of-bounds texel")
	}
}

func TestReadDebouncesConcurrentRequests(t *testing.T) {
	r := &Reader{}
	if !r.pending.trySet() {
		t.Fatal("first trySet should succeed")
	}
	if r.pending.trySet() {
		t.Fatal("second trySet should fail while pending")
	}
	r.pending.clear()
	if !r.pending.trySet() {
		t.Fatal("trySet should succeed again after clear")
	}
}
