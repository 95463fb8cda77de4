package dds

import "testing"

// solidBC1Block builds a single 8-byte BC1 block whose two endpoints are
// identical and whose indices all select palette entry 0, producing a
// uniform color block for known channel values.
func solidBC1Block(r5, g6, b5 uint16) []byte {
	c := (r5 << 11) | (g6 << 5) | b5
	return []byte{byte(c), byte(c >> 8), byte(c), byte(c >> 8), 0, 0, 0, 0}
}

func TestDecodeBC1SolidColor(t *testing.T) {
	block := solidBC1Block(31, 63, 0) // yellow (full red + full green) at full 565 precision
	pixels, err := DecompressBC(BlockBC1, block, 4, 4)
	if err != nil {
		t.Fatalf("DecompressBC: %v", err)
	}
	for i := 0; i < 16; i++ {
		r, g, b, a := pixels[i*4], pixels[i*4+1], pixels[i*4+2], pixels[i*4+3]
		if r != 1 || g != 1 || b != 0 || a != 1 {
			t.Fatalf("texel %d = (%v,%v,%v,%v), want (1,1,0,1)", i, r, g, b, a)
		}
	}
}

func TestDecodeBC1PunchThroughAlpha(t *testing.T) {
	// c0 < c1 selects the punch-through-alpha variant; every index-3 texel
	// must decode to alpha 0.
	block := []byte{0, 0, 1, 0, 0xff, 0xff, 0xff, 0xff} // c0=0, c1=1, all indices = 3
	pixels, err := DecompressBC(BlockBC1, block, 4, 4)
	if err != nil {
		t.Fatalf("DecompressBC: %v", err)
	}
	for i := 0; i < 16; i++ {
		if pixels[i*4+3] != 0 {
			t.Fatalf("texel %d alpha = %v, want 0", i, pixels[i*4+3])
		}
	}
}

func TestDecodeBC4UnormEndpoints(t *testing.T) {
	// a0 > a1 selects the 8-entry interpolated palette; index 0 must decode
	// to exactly a0's value and index 1 to exactly a1's value.
	block := []byte{255, 0, 0x08, 0, 0, 0, 0, 0} // a0=255, a1=0, texel 1 = index 1, all others = 0
	var out [16]float32
	decodeInterpolatedAlpha(block, &out, false)
	if out[0] != 1 {
		t.Fatalf("index 0 = %v, want 1", out[0])
	}
	if out[1] != 0 {
		t.Fatalf("index 1 = %v, want 0", out[1])
	}
}

func TestDecompressBCRejectsTruncatedInput(t *testing.T) {
	_, err := DecompressBC(BlockBC1, []byte{0, 1, 2, 3}, 8, 8)
	if err == nil {
		t.Fatal("expected an error for a short block buffer")
	}
}

func TestBlockFormatKindRejectsBC7(t *testing.T) {
	c := &Compressed{Format: DXGIFormatBC7Unorm}
	if _, ok := c.BlockFormatKind(); ok {
		t.Fatal("BC7 should report no software block decoder")
	}
}

func TestBlockFormatKindAcceptsBC3(t *testing.T) {
	c := &Compressed{Format: DXGIFormatBC3UnormSRGB}
	kind, ok := c.BlockFormatKind()
	if !ok || kind != BlockBC3 {
		t.Fatalf("BC3 SRGB: got (%v, %v), want (BlockBC3, true)", kind, ok)
	}
}
