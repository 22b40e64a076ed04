// Package hiddesc holds the fixed HID report descriptor the emulation
// presents for its interrupt endpoint. The byte layout is dictated by the
// console's driver and must not be altered.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
package hiddesc

// Report is the HID report descriptor (HID class request 0x22, index 0)
// describing a joystick with a 10+4 button bitmap, a 4-axis hat-switch-free
// stick pair, a hat switch, four further buttons, and six vendor-defined
// 64-byte report channels (input 0x21/0x81, output 0x01/0x10/0x80/0x82)
// used for the subcommand/SPI-flash protocol.
var Report = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop Ctrls)
	0x15, 0x00, // Logical Minimum (0)
	0x09, 0x04, // Usage (Joystick)
	0xA1, 0x01, // Collection (Application)
	0x85, 0x30, //   Report ID (48)
	0x05, 0x01, //   Usage Page (Generic Desktop Ctrls)
	0x05, 0x09, //   Usage Page (Button)
	0x19, 0x01, //   Usage Minimum (0x01)
	0x29, 0x0A, //   Usage Maximum (0x0A)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x0A, //   Report Count (10)
	0x55, 0x00, //   Unit Exponent (0)
	0x65, 0x00, //   Unit (None)
	0x81, 0x02, //   Input (Data,Var,Abs)
	0x05, 0x09, //   Usage Page (Button)
	0x19, 0x0B, //   Usage Minimum (0x0B)
	0x29, 0x0E, //   Usage Maximum (0x0E)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x04, //   Report Count (4)
	0x81, 0x02, //   Input (Data,Var,Abs)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x02, //   Report Count (2)
	0x81, 0x03, //   Input (Const,Var,Abs)
	0x0B, 0x01, 0x00, 0x01, 0x00, //   Usage (0x010001)
	0xA1, 0x00, //   Collection (Physical)
	0x0B, 0x30, 0x00, 0x01, 0x00, //     Usage (0x010030)
	0x0B, 0x31, 0x00, 0x01, 0x00, //     Usage (0x010031)
	0x0B, 0x32, 0x00, 0x01, 0x00, //     Usage (0x010032)
	0x0B, 0x35, 0x00, 0x01, 0x00, //     Usage (0x010035)
	0x15, 0x00, //     Logical Minimum (0)
	0x27, 0xFF, 0xFF, 0x00, 0x00, //     Logical Maximum (65535)
	0x75, 0x10, //     Report Size (16)
	0x95, 0x04, //     Report Count (4)
	0x81, 0x02, //     Input (Data,Var,Abs)
	0xC0,                         //   End Collection
	0x0B, 0x39, 0x00, 0x01, 0x00, //   Usage (0x010039)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x07, //   Logical Maximum (7)
	0x35, 0x00, //   Physical Minimum (0)
	0x46, 0x3B, 0x01, //   Physical Maximum (315)
	0x65, 0x14, //   Unit (Eng Rot: Centimeter)
	0x75, 0x04, //   Report Size (4)
	0x95, 0x01, //   Report Count (1)
	0x81, 0x02, //   Input (Data,Var,Abs)
	0x05, 0x09, //   Usage Page (Button)
	0x19, 0x0F, //   Usage Minimum (0x0F)
	0x29, 0x12, //   Usage Maximum (0x12)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x04, //   Report Count (4)
	0x81, 0x02, //   Input (Data,Var,Abs)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x34, //   Report Count (52)
	0x81, 0x03, //   Input (Const,Var,Abs)
	0x06, 0x00, 0xFF, //   Usage Page (Vendor Defined 0xFF00)
	0x85, 0x21, //   Report ID (33)
	0x09, 0x01, //   Usage (0x01)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x3F, //   Report Count (63)
	0x81, 0x03, //   Input (Const,Var,Abs)
	0x85, 0x81, //   Report ID (129)
	0x09, 0x02, //   Usage (0x02)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x3F, //   Report Count (63)
	0x81, 0x03, //   Input (Const,Var,Abs)
	0x85, 0x01, //   Report ID (1)
	0x09, 0x03, //   Usage (0x03)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x3F, //   Report Count (63)
	0x91, 0x83, //   Output (Const,Var,Abs,Volatile)
	0x85, 0x10, //   Report ID (16)
	0x09, 0x04, //   Usage (0x04)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x3F, //   Report Count (63)
	0x91, 0x83, //   Output (Const,Var,Abs,Volatile)
	0x85, 0x80, //   Report ID (128)
	0x09, 0x05, //   Usage (0x05)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x3F, //   Report Count (63)
	0x91, 0x83, //   Output (Const,Var,Abs,Volatile)
	0x85, 0x82, //   Report ID (130)
	0x09, 0x06, //   Usage (0x06)
	0x75, 0x08, //   Report Size (8)
	0x95, 0x3F, //   Report Count (63)
	0x91, 0x83, //   Output (Const,Var,Abs,Volatile)
	0xC0, // End Collection
}

// ClassDescriptor builds the HID class descriptor (bDescriptorType 0x21)
// that accompanies the interface descriptor in the configuration
// descriptor set, per HID 1.11 §6.2.1.
func ClassDescriptor() []byte {
	n := len(Report)

	return []byte{
		0x09,       // bLength
		0x21,       // bDescriptorType (HID)
		0x11, 0x01, // bcdHID 1.11
		0x00,                    // bCountryCode
		0x01,                    // bNumDescriptors
		0x22,                    // bDescriptorType (Report)
		byte(n), byte(n >> 8), // wDescriptorLength
	}
}
