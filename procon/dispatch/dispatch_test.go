package dispatch

import (
	"testing"

	"github.com/usbarmory/procon-bridge/procon/input"
)

func newDispatcher() *Dispatcher {
	return New(input.New(), &Counter{})
}

func TestHandshakeLiveness(t *testing.T) {
	d := newDispatcher()

	probe := d.Dispatch([]byte{0x80, 0x01, 0x00, 0x00})
	if probe == nil || probe.Bytes()[0] != 0x81 || probe.Bytes()[1] != 0x01 {
		t.Fatalf("probe reply = %v", probe)
	}

	baud := d.Dispatch([]byte{0x80, 0x02})
	if baud == nil || baud.Bytes()[0] != 0x81 || baud.Bytes()[1] != 0x02 {
		t.Fatalf("baud reply = %v", baud)
	}

	hs2 := d.Dispatch([]byte{0x80, 0x03})
	if hs2 == nil || hs2.Bytes()[0] != 0x81 || hs2.Bytes()[1] != 0x03 {
		t.Fatalf("handshake2 reply = %v", hs2)
	}

	stream := d.Dispatch([]byte{0x80, 0x04})
	if stream == nil || stream.Bytes()[0] != 0x21 {
		t.Fatalf("stream reply = %v", stream)
	}
}

func TestProbeReplyBytes(t *testing.T) {
	d := newDispatcher()
	r := d.Dispatch([]byte{0x80, 0x01, 0x00, 0x00})
	b := r.Bytes()

	want := []byte{0x81, 0x01, 0x00, 0x03, 0x57, 0x30, 0xEA, 0x8A, 0xBB, 0x7C}
	for i, wb := range want {
		if b[i] != wb {
			t.Fatalf("b[%d] = %#x, want %#x", i, b[i], wb)
		}
	}
}

func TestDeviceInfoReplyBytes(t *testing.T) {
	d := newDispatcher()
	req := make([]byte, 17)
	req[0] = 0x01
	req[10] = SubcommandRequestDeviceInfo

	r := d.Dispatch(req)
	b := r.Bytes()

	if b[0] != 0x21 || b[13] != 0x82 || b[14] != SubcommandRequestDeviceInfo {
		t.Fatalf("header = %x %x %x", b[0], b[13], b[14])
	}

	want := []byte{0x03, 0x48, 0x03, 0x02, 0x57, 0x30, 0xEF, 0x8A, 0xBB, 0x7C, 0x03, 0x02}
	for i, wb := range want {
		if b[15+i] != wb {
			t.Fatalf("data[%d] = %#x, want %#x", i, b[15+i], wb)
		}
	}
}

func TestSPIReadControllerColor(t *testing.T) {
	d := newDispatcher()
	req := make([]byte, 17)
	req[0] = 0x01
	req[10] = SubcommandSPIFlashRead
	req[11] = 0x50
	req[12] = 0x60
	req[15] = 3

	r := d.Dispatch(req)
	b := r.Bytes()

	if b[13] != 0x90 {
		t.Fatalf("code = %#x, want 0x90", b[13])
	}

	want := []byte{0x50, 0x60, 0x00, 0x00, 0x03, 0x0A, 0xB9, 0xE6}
	for i, wb := range want {
		if b[15+i] != wb {
			t.Fatalf("data[%d] = %#x, want %#x", i, b[15+i], wb)
		}
	}
}

func TestCounterProgression(t *testing.T) {
	d := newDispatcher()
	req := make([]byte, 17)
	req[0] = 0x01
	req[10] = 0xfe // unknown subcommand, permissive ACK

	var last byte
	for k := 0; k < 5; k++ {
		r := d.Dispatch(req)
		want := byte(3 * k)

		if r.Bytes()[1] != want {
			t.Fatalf("iteration %d: counter = %#x, want %#x", k, r.Bytes()[1], want)
		}

		last = r.Bytes()[1]
	}

	_ = last
}

func TestPermissiveAckIdempotent(t *testing.T) {
	d := newDispatcher()
	req := make([]byte, 17)
	req[0] = 0x01
	req[10] = 0x99

	for i := 0; i < 3; i++ {
		r := d.Dispatch(req)
		b := r.Bytes()

		if b[13] != 0x80 || b[14] != 0x99 {
			t.Fatalf("iteration %d: code/subcommand = %x %x, want 80 99", i, b[13], b[14])
		}
	}
}

func TestShortPacketNoReply(t *testing.T) {
	d := newDispatcher()
	if r := d.Dispatch([]byte{0x01, 0x00}); r != nil {
		t.Fatalf("expected no reply for short 0x01 packet, got %v", r)
	}
}

func TestIdleAdvancesCounter(t *testing.T) {
	d := newDispatcher()

	first := d.Idle()
	second := d.Idle()

	if second.Bytes()[1]-first.Bytes()[1] != 3 {
		t.Fatalf("counter delta = %d, want 3", second.Bytes()[1]-first.Bytes()[1])
	}
}

func TestButtonToggleReflectedInStatusBlock(t *testing.T) {
	d := newDispatcher()

	before := d.Idle().Bytes()
	d.State.ToggleLR()
	after := d.Idle().Bytes()

	if after[3]^before[3] != 0x80 {
		t.Fatalf("status buttons[0] delta = %#x, want 0x80", after[3]^before[3])
	}
	if after[5]^before[5] != 0x80 {
		t.Fatalf("status buttons[2] delta = %#x, want 0x80", after[5]^before[5])
	}
}
