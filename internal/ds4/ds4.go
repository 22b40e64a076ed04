// Package ds4 reads and decodes DualShock 4 controller reports from a
// physical USB HID device, for relay over the bridge's input feed.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
package ds4

import (
	"fmt"

	"github.com/google/gousb"

	"github.com/usbarmory/procon-bridge/procon/feed"
)

// VendorID and ProductID identify the Sony DualShock 4 controller.
const (
	VendorID  = 0x054c
	ProductID = 0x09cc
)

const (
	interfaceNumber = 0x03
	reportLength    = 64
)

// Device wraps the open USB interface and interrupt-IN endpoint used to
// poll DualShock 4 reports.
type Device struct {
	dev   *gousb.Device
	cfg   *gousb.Config
	iface *gousb.Interface
	ep    *gousb.InEndpoint
}

// Open claims the interrupt-IN endpoint of the first device in ctx
// matching vid/pid.
func Open(ctx *gousb.Context, vid, pid gousb.ID) (*Device, error) {
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == vid && desc.Product == pid
	})
	if err != nil {
		return nil, fmt.Errorf("ds4: scan: %w", err)
	}
	if len(devs) == 0 {
		return nil, fmt.Errorf("ds4: no device matching %s:%s found", vid, pid)
	}

	for _, extra := range devs[1:] {
		extra.Close()
	}
	dev := devs[0]

	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		return nil, fmt.Errorf("ds4: claim config: %w", err)
	}

	iface, err := cfg.Interface(interfaceNumber, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		return nil, fmt.Errorf("ds4: claim interface: %w", err)
	}

	var ep *gousb.InEndpoint
	for _, e := range iface.Setting.Endpoints {
		if e.Direction == gousb.EndpointDirectionIn && e.TransferType == gousb.TransferTypeInterrupt {
			ep, err = iface.InEndpoint(e.Number)
			if err != nil {
				iface.Close()
				cfg.Close()
				dev.Close()
				return nil, fmt.Errorf("ds4: open endpoint: %w", err)
			}
			break
		}
	}
	if ep == nil {
		iface.Close()
		cfg.Close()
		dev.Close()
		return nil, fmt.Errorf("ds4: no interrupt-IN endpoint found on interface %d", interfaceNumber)
	}

	return &Device{dev: dev, cfg: cfg, iface: iface, ep: ep}, nil
}

// Close releases the interface, configuration and device handle.
func (d *Device) Close() error {
	d.iface.Close()
	d.cfg.Close()
	return d.dev.Close()
}

// Read blocks for the next report and decodes it. It returns (Frame{},
// false, nil) for a short or non-report-1 packet, which the caller should
// treat the same as "nothing new yet".
func (d *Device) Read() (feed.Frame, bool, error) {
	buf := make([]byte, reportLength)

	n, err := d.ep.Read(buf)
	if err != nil {
		return feed.Frame{}, false, fmt.Errorf("ds4: read: %w", err)
	}

	if n < 10 || buf[0] != 0x01 {
		return feed.Frame{}, false, nil
	}

	return decode(buf), true, nil
}

func scale8to12(v uint8) uint16 {
	return uint16(v)<<4 | uint16(v)>>4
}

// decode parses a 64-byte DualShock 4 input report (report ID 1) into a
// feed.Frame using this bridge's shared button bitset.
func decode(buf []byte) feed.Frame {
	var buttons uint32

	switch buf[5] & 0x0f {
	case 0b0000:
		buttons |= feed.ButtonUp
	case 0b0001:
		buttons |= feed.ButtonUp | feed.ButtonRight
	case 0b0010:
		buttons |= feed.ButtonRight
	case 0b0011:
		buttons |= feed.ButtonRight | feed.ButtonDown
	case 0b0100:
		buttons |= feed.ButtonDown
	case 0b0101:
		buttons |= feed.ButtonDown | feed.ButtonLeft
	case 0b0110:
		buttons |= feed.ButtonLeft
	case 0b0111:
		buttons |= feed.ButtonLeft | feed.ButtonUp
	}

	type bit struct {
		byteIdx int
		bitIdx  uint
		button  uint32
	}

	bits := []bit{
		{5, 4, feed.ButtonWest},
		{5, 5, feed.ButtonSouth},
		{5, 6, feed.ButtonEast},
		{5, 7, feed.ButtonNorth},
		{6, 0, feed.ButtonL1},
		{6, 1, feed.ButtonR1},
		{6, 2, feed.ButtonL2},
		{6, 3, feed.ButtonR2},
		{6, 4, feed.ButtonMinus},
		{6, 5, feed.ButtonPlus},
		{6, 6, feed.ButtonL3},
		{6, 7, feed.ButtonR3},
		{7, 0, feed.ButtonHome},
		{7, 1, feed.ButtonCapture},
	}

	for _, b := range bits {
		if buf[b.byteIdx]&(1<<b.bitIdx) != 0 {
			buttons |= b.button
		}
	}

	return feed.Frame{
		Buttons: buttons,
		LX:      scale8to12(buf[1]),
		LY:      scale8to12(buf[2]),
		RX:      scale8to12(buf[3]),
		RY:      scale8to12(buf[4]),
	}
}
