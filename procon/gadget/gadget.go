// Package gadget assembles the USB device descriptors for the Pro
// Controller emulation and wires its single interrupt-IN endpoint to the
// subcommand dispatcher.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
package gadget

import (
	"sync"
	"time"

	"github.com/usbarmory/procon-bridge/imx6/usb"

	"github.com/usbarmory/procon-bridge/procon/dispatch"
	"github.com/usbarmory/procon-bridge/procon/hiddesc"
	"github.com/usbarmory/procon-bridge/procon/input"
)

const (
	vendorID  = 0x057e
	productID = 0x2009
)

// idleInterval is how often a status-bearing report is queued when the
// host has not issued a new subcommand, keeping the interrupt-IN endpoint
// fed at the rate the console expects during streaming.
const idleInterval = 15 * time.Millisecond

// New builds the Device descriptor hierarchy, a Dispatcher over state, and
// wires the endpoint function to feed one from the other. The returned
// Device is ready for hw.DeviceMode() and hw.Start().
func New(state *input.State) *usb.Device {
	d := &dispatch.Dispatcher{
		State:   state,
		Counter: &dispatch.Counter{},
	}

	dev := &usb.Device{}
	dev.Descriptor = &usb.DeviceDescriptor{}
	dev.Descriptor.SetDefaults()
	dev.Descriptor.VendorId = vendorID
	dev.Descriptor.ProductId = productID
	dev.Descriptor.DeviceClass = 0x00
	dev.Descriptor.DeviceSubClass = 0x00
	dev.Descriptor.DeviceProtocol = 0x00

	dev.SetLanguageCodes([]uint16{0x0409})

	iManufacturer, _ := dev.AddString("Nintendo Co., Ltd")
	iProduct, _ := dev.AddString("Pro Controller")
	iSerial, _ := dev.AddString("000000000001")
	dev.Descriptor.Manufacturer = iManufacturer
	dev.Descriptor.Product = iProduct
	dev.Descriptor.SerialNumber = iSerial

	dev.Qualifier = &usb.DeviceQualifierDescriptor{}
	dev.Qualifier.SetDefaults()

	dev.HIDReport = hiddesc.Report

	ep := &usb.EndpointDescriptor{}
	ep.SetDefaults()
	ep.EndpointAddress = 0x81
	ep.Attributes = 3 // interrupt
	ep.MaxPacketSize = 64
	ep.Interval = 8

	poll := newPoller(d)
	ep.Function = poll.fill

	iface := &usb.InterfaceDescriptor{}
	iface.SetDefaults()
	iface.InterfaceClass = 0x03 // HID
	iface.InterfaceSubClass = 0x00
	iface.InterfaceProtocol = 0x00
	iface.Endpoints = []*usb.EndpointDescriptor{ep}
	iface.ClassDescriptors = [][]byte{hiddesc.ClassDescriptor()}

	conf := &usb.ConfigurationDescriptor{}
	conf.SetDefaults()
	conf.Interfaces = []*usb.InterfaceDescriptor{iface}
	conf.TotalLength = uint16(usb.CONFIGURATION_LENGTH + usb.INTERFACE_LENGTH +
		len(hiddesc.ClassDescriptor()) + usb.ENDPOINT_LENGTH)

	dev.Configurations = []*usb.ConfigurationDescriptor{conf}

	return dev
}

// poller serializes access to the dispatcher across the endpoint goroutine
// (fed by host OUT packets) and any idle-tick source, matching the single
// critical section the firmware's interrupt handlers would otherwise need.
type poller struct {
	sync.Mutex

	d        *dispatch.Dispatcher
	lastSent time.Time
}

func newPoller(d *dispatch.Dispatcher) *poller {
	return &poller{d: d}
}

// fill is the EndpointFunction: it classifies whatever the host just sent
// (out may be empty on a pure polling IN transfer) and returns the next
// report to transmit, falling back to an idle status-bearing report when
// no host request is pending but the stream has gone quiet.
func (p *poller) fill(out []byte, lastErr error) ([]byte, error) {
	p.Lock()
	defer p.Unlock()

	if r := p.d.Dispatch(out); r != nil {
		p.lastSent = now()
		return r.Bytes()[:r.Len()], nil
	}

	if now().Sub(p.lastSent) >= idleInterval {
		p.lastSent = now()
		r := p.d.Idle()
		return r.Bytes()[:r.Len()], nil
	}

	return nil, nil
}

// now is a seam so tests can avoid depending on wall-clock scheduling
// jitter; production code always calls time.Now.
var now = time.Now
