//go:build linux

package serial

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestCfmakerawClearsCanonicalAndEcho(t *testing.T) {
	var t2 unix.Termios
	t2.Lflag = unix.ICANON | unix.ECHO | unix.ISIG
	t2.Iflag = unix.ICRNL | unix.IXON
	t2.Oflag = unix.OPOST

	cfmakeraw(&t2)

	if t2.Lflag&(unix.ICANON|unix.ECHO|unix.ISIG) != 0 {
		t.Fatalf("Lflag = %#x, canonical/echo/signal bits should be clear", t2.Lflag)
	}
	if t2.Oflag&unix.OPOST != 0 {
		t.Fatalf("Oflag = %#x, OPOST should be clear", t2.Oflag)
	}
	if t2.Cflag&unix.CS8 == 0 {
		t.Fatalf("Cflag = %#x, CS8 should be set", t2.Cflag)
	}
}

func TestOpenRejectsUnsupportedBaud(t *testing.T) {
	_, err := Open("/dev/null", 4800)
	if err == nil {
		t.Fatal("expected error for unsupported baud rate")
	}
}
