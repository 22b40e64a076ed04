package feed

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []Frame{
		{Buttons: 0, LX: 0, LY: 0, RX: 0, RY: 0},
		{Buttons: ButtonSouth | ButtonL1, LX: 0x800, LY: 0x800, RX: 0xfff, RY: 0x001},
		{Buttons: 0xffffffff, LX: 0xfff, LY: 0xfff, RX: 0xfff, RY: 0xfff},
	}

	for _, want := range cases {
		line := Encode(want)
		got, err := Decode(bytes.TrimRight(line, "\n"))
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", line, err)
		}
		if got != want {
			t.Fatalf("round-trip %+v -> %q -> %+v", want, line, got)
		}
	}
}

func TestEncodeFixedWidth(t *testing.T) {
	line := Encode(Frame{Buttons: ButtonUp, LX: 1, LY: 2, RX: 3, RY: 4})
	want := "I 00000001 001 002 003 004\n"

	if string(line) != want {
		t.Fatalf("Encode = %q, want %q", line, want)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		"",
		"X 00000000 000 000 000 000",
		"I not-hex 000 000 000",
	}

	for _, c := range cases {
		if _, err := Decode([]byte(c)); err == nil {
			t.Fatalf("Decode(%q) = nil error, want error", c)
		}
	}
}
