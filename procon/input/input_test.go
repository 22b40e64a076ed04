package input

import "testing"

func TestStickEncodeDecodeRoundTrip(t *testing.T) {
	for x := uint16(0); x <= 0xfff; x += 37 {
		for y := uint16(0); y <= 0xfff; y += 53 {
			enc := EncodeStick(Stick{X: x, Y: y})
			dec := DecodeStick(enc)

			if dec.X != x || dec.Y != y {
				t.Fatalf("round-trip (%#x,%#x) -> %v -> (%#x,%#x)", x, y, enc, dec.X, dec.Y)
			}
		}
	}
}

func TestStickEncodeDecodeBoundaries(t *testing.T) {
	cases := []Stick{
		{X: 0, Y: 0},
		{X: 0xfff, Y: 0xfff},
		{X: 0xfff, Y: 0},
		{X: 0, Y: 0xfff},
		{X: 0x800, Y: 0x800},
	}

	for _, s := range cases {
		dec := DecodeStick(EncodeStick(s))
		if dec != s {
			t.Fatalf("round-trip %v -> %v", s, dec)
		}
	}
}

func TestNeutralState(t *testing.T) {
	s := New()
	block := s.StatusBlock()

	if block[0] != neutralInfo {
		t.Fatalf("info = %#x, want %#x", block[0], neutralInfo)
	}

	for i := 1; i <= 3; i++ {
		if block[i] != 0 {
			t.Fatalf("buttons[%d] = %#x, want 0", i-1, block[i])
		}
	}

	left := DecodeStick([3]byte{block[4], block[5], block[6]})
	if left.X != neutralStick || left.Y != neutralStick {
		t.Fatalf("left stick = %v, want centered", left)
	}
}

func TestToggleLR(t *testing.T) {
	s := New()
	before := s.StatusBlock()

	s.ToggleLR()
	after := s.StatusBlock()

	if after[1]^before[1] != 0x80 {
		t.Fatalf("buttons[0] delta = %#x, want 0x80", after[1]^before[1])
	}
	if after[3]^before[3] != 0x80 {
		t.Fatalf("buttons[2] delta = %#x, want 0x80", after[3]^before[3])
	}

	s.ToggleLR()
	restored := s.StatusBlock()
	if restored != before {
		t.Fatal("double ToggleLR did not restore original status block")
	}
}

func TestSetFromFeed(t *testing.T) {
	s := New()
	s.SetFromFeed(0x00010203, 0x100, 0x200, 0x300, 0x400)

	block := s.StatusBlock()
	if block[1] != 0x03 || block[2] != 0x02 || block[3] != 0x01 {
		t.Fatalf("buttons = %x %x %x, want 03 02 01", block[1], block[2], block[3])
	}

	left := DecodeStick([3]byte{block[4], block[5], block[6]})
	if left.X != 0x100 || left.Y != 0x200 {
		t.Fatalf("left stick = %v, want (0x100, 0x200)", left)
	}
}
