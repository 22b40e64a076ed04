// Package serial opens and configures a UART device node in raw mode for
// the bridge's input-feed link.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
//
//go:build linux

package serial

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Port is an open, raw-mode serial device.
type Port struct {
	*os.File
}

var baudRates = map[int]uint32{
	9600:    unix.B9600,
	19200:   unix.B19200,
	38400:   unix.B38400,
	57600:   unix.B57600,
	115200:  unix.B115200,
	230400:  unix.B230400,
}

// Open opens path and configures it as an 8N1 raw-mode serial port at the
// given baud rate.
func Open(path string, baud int) (*Port, error) {
	rate, ok := baudRates[baud]
	if !ok {
		return nil, fmt.Errorf("serial: unsupported baud rate %d", baud)
	}

	f, err := os.OpenFile(path, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", path, err)
	}

	fd := int(f.Fd())

	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("serial: get termios: %w", err)
	}

	cfmakeraw(t)
	t.Cflag |= unix.CLOCAL | unix.CREAD
	t.Cflag &^= unix.CSIZE | unix.PARENB | unix.CSTOPB
	t.Cflag |= unix.CS8
	t.Ispeed = rate
	t.Ospeed = rate

	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, unix.TCSETS, t); err != nil {
		f.Close()
		return nil, fmt.Errorf("serial: set termios: %w", err)
	}

	return &Port{File: f}, nil
}

// cfmakeraw mirrors the POSIX cfmakeraw(3) transformation: disables all
// input/output/line processing so reads return raw bytes as they arrive.
func cfmakeraw(t *unix.Termios) {
	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP |
		unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
}
