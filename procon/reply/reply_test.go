package reply

import "testing"

func TestShortIsAlways64Bytes(t *testing.T) {
	r := Short(0x81, 0x01, []byte{0x00, 0x03})

	if len(r.Bytes()) != 64 {
		t.Fatalf("len(Bytes()) = %d, want 64", len(r.Bytes()))
	}

	if r.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", r.Len())
	}

	if r.Bytes()[4] != 0 {
		t.Fatalf("padding byte = %#x, want 0", r.Bytes()[4])
	}
}

func TestShortLayout(t *testing.T) {
	r := Short(0x81, 0x02, nil)
	b := r.Bytes()

	if b[0] != 0x81 || b[1] != 0x02 {
		t.Fatalf("b[0:2] = %x %x, want 81 02", b[0], b[1])
	}

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}

func TestStatusBearingLayout(t *testing.T) {
	var status [11]byte
	for i := range status {
		status[i] = byte(i + 1)
	}

	r := StatusBearing(0xcc, status, 0x30, 0xcc, nil)
	b := r.Bytes()

	if b[0] != 0x21 {
		t.Fatalf("b[0] = %#x, want 0x21", b[0])
	}
	if b[1] != 0xcc {
		t.Fatalf("b[1] = %#x, want 0xcc", b[1])
	}
	for i := 0; i < 11; i++ {
		if b[2+i] != status[i] {
			t.Fatalf("status[%d] = %#x, want %#x", i, b[2+i], status[i])
		}
	}
	if b[13] != 0x30 || b[14] != 0xcc {
		t.Fatalf("b[13:15] = %x %x, want 30 cc", b[13], b[14])
	}

	if len(b) != 64 {
		t.Fatalf("len(Bytes()) = %d, want 64", len(b))
	}
}

func TestStatusBearingWithData(t *testing.T) {
	var status [11]byte
	r := StatusBearing(0x00, status, 0x90, 0x10, []byte{0x50, 0x60, 0x00, 0x00, 0x03, 0x0A, 0xB9, 0xE6})
	b := r.Bytes()

	want := []byte{0x50, 0x60, 0x00, 0x00, 0x03, 0x0A, 0xB9, 0xE6}
	for i, wb := range want {
		if b[15+i] != wb {
			t.Fatalf("data[%d] = %#x, want %#x", i, b[15+i], wb)
		}
	}

	if r.Len() != 15+len(want) {
		t.Fatalf("Len() = %d, want %d", r.Len(), 15+len(want))
	}
}
