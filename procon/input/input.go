// Package input holds the Pro Controller's in-memory controller-state
// record and its serialization to the 11-byte on-wire status block.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
package input

import "sync"

// Status block info byte bits: Pro Controller + USB connected, battery
// charging, battery full.
const neutralInfo = 0b0000_0001 | 0b0001_0000 | 0b1000_0000

const neutralStick = 0x800

// Stick holds a pair of 12-bit analog axes, native range 0..=0xFFF.
type Stick struct {
	X uint16
	Y uint16
}

// State is the controller-state record: buttons, both sticks,
// battery/connection info, and vibrator state. The zero value is not a
// valid neutral state; use New. Every field access goes through the
// embedded mutex, since the record is read by the endpoint goroutine and
// written by the button poller and the UART input-feed receiver.
type State struct {
	mu sync.Mutex

	info       uint8
	buttons    [3]uint8
	leftStick  Stick
	rightStick Stick
	vibrator   uint8
}

// New returns a State initialized to the neutral pose: sticks centered, no
// buttons pressed, battery full and charging, USB connected.
func New() *State {
	return &State{
		info:       neutralInfo,
		leftStick:  Stick{X: neutralStick, Y: neutralStick},
		rightStick: Stick{X: neutralStick, Y: neutralStick},
		vibrator:   0x0c,
	}
}

// ToggleLR flips the high bit of the outer button bytes, simulating L and R
// pressed simultaneously. Used to demonstrate end-to-end input propagation
// from the board button.
func (s *State) ToggleLR() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buttons[0] ^= 0x80
	s.buttons[2] ^= 0x80
}

// SetFromFeed replaces the button bitset and all four stick axes with
// values decoded from a UART input-feed frame.
func (s *State) SetFromFeed(buttons uint32, lx, ly, rx, ry uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buttons[0] = uint8(buttons)
	s.buttons[1] = uint8(buttons >> 8)
	s.buttons[2] = uint8(buttons >> 16)
	s.leftStick = Stick{X: lx & 0xfff, Y: ly & 0xfff}
	s.rightStick = Stick{X: rx & 0xfff, Y: ry & 0xfff}
}

// EncodeStick packs a 12-bit (x, y) pair into the Pro Controller's 3-byte
// on-wire stick encoding.
func EncodeStick(s Stick) [3]byte {
	x, y := s.X&0xfff, s.Y&0xfff

	return [3]byte{
		byte(x & 0xff),
		byte(((y & 0x0f) << 4) | ((x >> 8) & 0x0f)),
		byte((y >> 4) & 0xff),
	}
}

// DecodeStick recovers the 12-bit (x, y) pair from its 3-byte on-wire
// encoding, the inverse of EncodeStick.
func DecodeStick(b [3]byte) Stick {
	x := uint16(b[0]) | (uint16(b[1]&0x0f) << 8)
	y := (uint16(b[1]) >> 4) | (uint16(b[2]) << 4)

	return Stick{X: x & 0xfff, Y: y & 0xfff}
}

// StatusBlock serializes the current state to the 11-byte on-wire status
// block: [info, btn0, btn1, btn2, leftStick(3), rightStick(3), vibrator].
func (s *State) StatusBlock() [11]byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	var block [11]byte

	block[0] = s.info
	block[1] = s.buttons[0]
	block[2] = s.buttons[1]
	block[3] = s.buttons[2]

	left := EncodeStick(s.leftStick)
	copy(block[4:7], left[:])

	right := EncodeStick(s.rightStick)
	copy(block[7:10], right[:])

	block[10] = s.vibrator

	return block
}
