// Package reply builds the two 64-byte reply shapes the Pro Controller
// emulation sends back over its interrupt-IN endpoint.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
package reply

// Response is a 64-byte wire packet plus the length of its meaningful
// prefix; trailing bytes up to 64 are always zero.
type Response struct {
	buf [64]byte
	len int
}

// Bytes returns the full 64-byte wire representation.
func (r *Response) Bytes() []byte {
	return r.buf[:]
}

// Len returns the length of the meaningful (non-padding) prefix.
func (r *Response) Len() int {
	return r.len
}

// Short builds the handshake reply shape: [code, command, data...].
func Short(code, command byte, data []byte) *Response {
	r := &Response{}

	r.buf[0] = code
	r.buf[1] = command
	n := copy(r.buf[2:], data)
	r.len = 2 + n

	return r
}

// StatusBearing builds the subcommand-ack / streaming-report reply shape:
// [0x21, counter, status(11), code, subcommand, data...].
func StatusBearing(counter byte, status [11]byte, code, subcommand byte, data []byte) *Response {
	r := &Response{}

	r.buf[0] = 0x21
	r.buf[1] = counter
	copy(r.buf[2:13], status[:])
	r.buf[13] = code
	r.buf[14] = subcommand
	n := copy(r.buf[15:], data)
	r.len = 15 + n

	return r
}
