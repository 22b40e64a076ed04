package spiflash

import (
	"testing"

	"github.com/usbarmory/procon-bridge/procon/buffer"
)

func read(t *testing.T, address uint16, size int) []byte {
	t.Helper()

	storage := make([]byte, 5+size)
	buf := buffer.New(storage)
	Read(address, size, buf)

	return buf.Bytes()
}

func TestHeader(t *testing.T) {
	out := read(t, AddressControllerColor, 3)
	want := []byte{0x50, 0x60, 0x00, 0x00, 0x03}

	for i, b := range want {
		if out[i] != b {
			t.Fatalf("header[%d] = %#x, want %#x", i, out[i], b)
		}
	}
}

func TestControllerColor(t *testing.T) {
	out := read(t, AddressControllerColor, 3)
	payload := out[5:]

	want := []byte{0x0A, 0xB9, 0xE6}
	for i, b := range want {
		if payload[i] != b {
			t.Fatalf("payload[%d] = %#x, want %#x", i, payload[i], b)
		}
	}
}

func TestControllerColorTruncatedToSize(t *testing.T) {
	out := read(t, AddressControllerColor, 4)
	payload := out[5:]

	if payload[3] != 0xdd {
		t.Fatalf("payload[3] = %#x, want 0xdd (blob truncated to size)", payload[3])
	}
}

func TestSticksCalibrationMagic(t *testing.T) {
	out := read(t, AddressSticksCalibration, 24)
	payload := out[5:]

	if payload[22] != 0xb2 {
		t.Fatalf("payload[22] = %#x, want 0xb2", payload[22])
	}
	if payload[23] != 0xa1 {
		t.Fatalf("payload[23] = %#x, want 0xa1", payload[23])
	}

	for i := 0; i < 22; i++ {
		if payload[i] != 0xff {
			t.Fatalf("payload[%d] = %#x, want 0xff", i, payload[i])
		}
	}
}

func TestUnknownAddressAllFF(t *testing.T) {
	out := read(t, 0x1234, 8)
	payload := out[5:]

	for i, b := range payload {
		if b != 0xff {
			t.Fatalf("payload[%d] = %#x, want 0xff", i, b)
		}
	}
}
