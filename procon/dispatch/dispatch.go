// Package dispatch classifies incoming 64-byte host-to-device packets and
// produces the appropriate Pro Controller reply.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
package dispatch

import (
	"github.com/usbarmory/procon-bridge/procon/input"
	"github.com/usbarmory/procon-bridge/procon/reply"
	"github.com/usbarmory/procon-bridge/procon/spiflash"

	"github.com/usbarmory/procon-bridge/procon/buffer"
)

// Subcommand constants for the 0x01 UART-style channel (byte 10 of the
// packet).
const (
	SubcommandStateOnly               = 0x00
	SubcommandBluetoothManualPairing  = 0x01
	SubcommandRequestDeviceInfo       = 0x02
	SubcommandSetInputReportMode      = 0x03
	SubcommandTriggerButtonsElapsed   = 0x04
	SubcommandGetPageListState        = 0x05
	SubcommandSetHCIState             = 0x06
	SubcommandResetPairingInfo        = 0x07
	SubcommandSetShipmentLowPower     = 0x08
	SubcommandSPIFlashRead            = 0x10
	SubcommandSPIFlashWrite           = 0x11
	SubcommandSPISectorErase          = 0x12
	SubcommandResetNFCIRMCU           = 0x20
	SubcommandSetNFCIRMCUConfig       = 0x21
	SubcommandSetNFCIRMCUState        = 0x22
	SubcommandSetPlayerLights         = 0x30
	SubcommandGetPlayerLights         = 0x31
	SubcommandSetHomeLights           = 0x38
	SubcommandEnableIMU               = 0x40
	SubcommandSetIMUSensitivity       = 0x41
	SubcommandWriteIMURegisters       = 0x42
	SubcommandReadIMURegisters        = 0x43
	SubcommandEnableVibration         = 0x48
	SubcommandGetRegulatedVoltage     = 0x50
)

// probeMAC and deviceInfoMAC are deliberately different: the console
// tolerates it, but the distilled byte-level test vectors require each
// reply to use its own fixed value.
var (
	probeMAC      = [6]byte{0x57, 0x30, 0xEA, 0x8A, 0xBB, 0x7C}
	deviceInfoMAC = [6]byte{0x57, 0x30, 0xEF, 0x8A, 0xBB, 0x7C}
)

const (
	firmwareMajor = 0x03
	firmwareMinor = 0x48
)

// Counter is the wrapping 8-bit packet counter advanced by +3 each time a
// status-bearing reply is emitted.
type Counter struct {
	value uint8
}

// Next returns the current counter value and advances it by 3 (mod 256).
func (c *Counter) Next() uint8 {
	v := c.value
	c.value += 3
	return v
}

// Dispatcher classifies host packets and builds replies, consulting the
// shared controller-state record and packet counter. It is not itself
// synchronized; callers (the runtime glue, §4.G) must serialize access to
// a shared Dispatcher the same way they serialize access to State.
type Dispatcher struct {
	State   *input.State
	Counter *Counter
}

// New returns a Dispatcher over the given state and counter.
func New(state *input.State, counter *Counter) *Dispatcher {
	return &Dispatcher{State: state, Counter: counter}
}

func (d *Dispatcher) statusBearing(code, subcommand byte, data []byte) *reply.Response {
	return reply.StatusBearing(d.Counter.Next(), d.State.StatusBlock(), code, subcommand, data)
}

// Dispatch classifies buf and returns the reply to send, or nil if the
// packet warrants no reply.
func (d *Dispatcher) Dispatch(buf []byte) *reply.Response {
	switch {
	case len(buf) >= 2 && buf[0] == 0x80:
		return d.dispatchHandshake(buf[1])
	case len(buf) > 16 && buf[0] == 0x01:
		return d.dispatchSubcommand(buf)
	default:
		return nil
	}
}

func (d *Dispatcher) dispatchHandshake(subtype byte) *reply.Response {
	switch subtype {
	case 0x01:
		data := append([]byte{0x00, 0x03}, probeMAC[:]...)
		return reply.Short(0x81, 0x01, data)
	case 0x02, 0x03:
		return reply.Short(0x81, subtype, nil)
	case 0x04:
		return d.statusBearing(0x30, d.Counter.value, nil)
	default:
		return nil
	}
}

func (d *Dispatcher) dispatchSubcommand(buf []byte) *reply.Response {
	subcommand := buf[10]

	switch subcommand {
	case SubcommandRequestDeviceInfo:
		data := []byte{firmwareMajor, firmwareMinor, 0x03, 0x02}
		data = append(data, deviceInfoMAC[:]...)
		data = append(data, 0x03, 0x02)
		return d.statusBearing(0x82, subcommand, data)
	case SubcommandBluetoothManualPairing:
		return d.statusBearing(0x81, subcommand, []byte{0x03})
	case SubcommandSPIFlashRead:
		address := uint16(buf[11]) | uint16(buf[12])<<8
		size := int(buf[15])
		if size > spiflash.MaxReadSize {
			size = spiflash.MaxReadSize
		}

		var storage [5 + spiflash.MaxReadSize]byte
		out := buffer.New(storage[:5+size])
		spiflash.Read(address, size, out)

		return d.statusBearing(0x90, subcommand, out.Bytes())
	case SubcommandTriggerButtonsElapsed:
		return d.statusBearing(0x83, subcommand, nil)
	case SubcommandSetInputReportMode,
		SubcommandSetShipmentLowPower,
		SubcommandSetPlayerLights,
		SubcommandSetHomeLights,
		SubcommandEnableIMU,
		SubcommandEnableVibration:
		return d.statusBearing(0x80, subcommand, nil)
	default:
		// Permissive default: the console tolerates an ACK for subcommands
		// this emulation does not otherwise implement.
		return d.statusBearing(0x80, subcommand, nil)
	}
}

// Idle builds the periodic status-bearing report emitted when no host
// request is pending but the host expects the 60 Hz input stream.
func (d *Dispatcher) Idle() *reply.Response {
	return d.statusBearing(0x30, d.Counter.value, nil)
}
