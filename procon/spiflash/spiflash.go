// Package spiflash simulates the Pro Controller's internal SPI flash
// region, serving the fixed calibration and identity blobs the Switch
// console reads during pairing.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
package spiflash

import "github.com/usbarmory/procon-bridge/procon/buffer"

// Known flash addresses.
const (
	AddressSerialNumber        = 0x6000
	AddressControllerColor     = 0x6050
	AddressFactoryParameters1  = 0x6080
	AddressFactoryParameters2  = 0x6098
	AddressFactoryCalibration1 = 0x6020
	AddressFactoryCalibration2 = 0x603D
	AddressSticksCalibration   = 0x8010
	AddressIMUCalibration      = 0x8028
)

// MaxReadSize bounds a single simulated read: larger than any calibration
// block the console actually requests, small enough to keep the reply
// within the 64-byte packet after the status-bearing header.
const MaxReadSize = 32

var (
	controllerColor = []byte{
		0x0A, 0xB9, 0xE6, 0xDD, 0xDD, 0xDD, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
	}

	factoryParameters1 = []byte{
		0x50, 0xfd, 0x00, 0x00, 0xc6, 0x0f, 0x0f, 0x30, 0x61, 0x96, 0x30, 0xf3,
		0xd4, 0x14, 0x54, 0x41, 0x15, 0x54, 0xc7, 0x79, 0x9c, 0x33, 0x36, 0x63,
	}

	factoryParameters2 = []byte{
		0x0f, 0x30, 0x61, 0x96, 0x30, 0xf3, 0xd4, 0x14, 0x54, 0x41, 0x15, 0x54,
		0xc7, 0x79, 0x9c, 0x33, 0x36, 0x63,
	}

	factoryCalibration1 = []byte{
		0xE6, 0xFF, 0x3A, 0x00, 0x39, 0x00, 0x00, 0x40, 0x00, 0x40, 0x00, 0x40,
		0xF7, 0xFF, 0xFC, 0xFF, 0x00, 0x00, 0xE7, 0x3B, 0xE7, 0x3B, 0xE7, 0x3B,
	}

	factoryCalibration2 = []byte{
		0xba, 0x15, 0x62, 0x11, 0xb8, 0x7f, 0x29, 0x06, 0x5b, 0xff, 0xe7, 0x7e,
		0x0e, 0x36, 0x56, 0x9e, 0x85, 0x60, 0xff, 0x32, 0x32, 0x32, 0xff, 0xff, 0xff,
	}

	imuCalibration = []byte{
		0xbe, 0xff, 0x3e, 0x00, 0xf0, 0x01, 0x00, 0x40, 0x00, 0x40, 0x00, 0x40,
		0xfe, 0xff, 0xfe, 0xff, 0x08, 0x00, 0xe7, 0x3b, 0xe7, 0x3b, 0xe7, 0x3b,
	}
)

// Read simulates a SPI flash read of size bytes at address, appending the
// 5-byte header and payload to out. Known addresses return their fixed
// blob truncated to size. Unknown addresses, and any payload bytes beyond a
// known blob's length, are left as 0xFF. The stick user-calibration address
// instead places the magic bytes 0xB2/0xA1 at payload offsets 22 and 23
// when size is greater than 23.
func Read(address uint16, size int, out *buffer.Buffer) {
	if size > MaxReadSize {
		size = MaxReadSize
	}

	out.Push(byte(address & 0xff))
	out.Push(byte(address >> 8))
	out.Push(0x00)
	out.Push(0x00)
	out.Push(byte(size))

	var scratch [MaxReadSize]byte
	payload := scratch[:size]
	for i := range payload {
		payload[i] = 0xff
	}

	switch address {
	case AddressSerialNumber:
		// all 0xff
	case AddressControllerColor:
		copyTruncated(payload, controllerColor)
	case AddressFactoryParameters1:
		copyTruncated(payload, factoryParameters1)
	case AddressFactoryParameters2:
		copyTruncated(payload, factoryParameters2)
	case AddressFactoryCalibration1:
		copyTruncated(payload, factoryCalibration1)
	case AddressFactoryCalibration2:
		copyTruncated(payload, factoryCalibration2)
	case AddressSticksCalibration:
		if size > 23 {
			payload[22] = 0xb2
			payload[23] = 0xa1
		}
	case AddressIMUCalibration:
		copyTruncated(payload, imuCalibration)
	}

	out.PushSlice(payload)
}

// copyTruncated copies as much of src into dst as fits in either.
func copyTruncated(dst, src []byte) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	copy(dst[:n], src[:n])
}
