// NXP i.MX6 GPIO driver
// https://github.com/f-secure-foundry/tamago
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package imx6

import (
	"fmt"

	"github.com/usbarmory/procon-bridge/internal/reg"
)

// GPIO constants
const (
	GPIO_START = 0x0209c000
	GPIO_END   = 0x020affff
)

// GPIO represents a single pad already muxed into GPIO mode by board
// bring-up; this driver only toggles direction and level, it does not own
// pin muxing.
type GPIO struct {
	num  int
	data uint32
	dir  uint32
}

// NewGPIO returns a GPIO instance for a pad data/direction register pair
// already configured for GPIO mode.
func NewGPIO(num int, data uint32, dir uint32) (gpio *GPIO, err error) {
	if num > 31 {
		return nil, fmt.Errorf("invalid GPIO number %d", num)
	}

	for _, r := range []uint32{data, dir} {
		if r < GPIO_START || r > GPIO_END {
			return nil, fmt.Errorf("invalid GPIO register %#x", r)
		}
	}

	gpio = &GPIO{
		num:  num,
		data: data,
		dir:  dir,
	}

	return
}

// Out configures a GPIO as output.
func (gpio *GPIO) Out() {
	reg.Set(gpio.dir, gpio.num)
}

// In configures a GPIO as input.
func (gpio *GPIO) In() {
	reg.Clear(gpio.dir, gpio.num)
}

// High configures a GPIO signal as high.
func (gpio *GPIO) High() {
	reg.Set(gpio.data, gpio.num)
}

// Low configures a GPIO signal as low.
func (gpio *GPIO) Low() {
	reg.Clear(gpio.data, gpio.num)
}

// Value reads the current signal level of a GPIO configured as input.
func (gpio *GPIO) Value() bool {
	return reg.Get(gpio.data, gpio.num, 1) != 0
}
