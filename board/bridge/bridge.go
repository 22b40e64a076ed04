// Package bridge provides the board-level glue around the Pro Controller
// emulation: the diagnostic UART, the DualShock 4 input-feed UART, the
// status LED and the pairing button.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
package bridge

import (
	"bufio"
	"fmt"
	"log"

	"github.com/usbarmory/procon-bridge/imx6"

	"github.com/usbarmory/procon-bridge/procon/feed"
	"github.com/usbarmory/procon-bridge/procon/input"
)

// GPIO pad/direction register pairs for the status LED and pairing
// button, wired on the USB armory Mk II expansion header.
const (
	statusLEDNum  = 22
	statusLEDData = 0x020a8000
	statusLEDDir  = 0x020a8004

	buttonNum  = 23
	buttonData = 0x020a8000
	buttonDir  = 0x020a8004
)

const feedBaudrate = 115200

// Board bundles the peripherals this firmware drives outside of the USB
// gadget itself.
type Board struct {
	diag   *imx6.UART
	feed   *imx6.UART
	status *imx6.GPIO
	button *imx6.GPIO
}

// New initializes the diagnostic UART (UART1) and the DualShock 4
// input-feed UART (UART2), both at 115200 baud, plus the status LED and
// pairing button GPIOs.
func New() (*Board, error) {
	b := &Board{
		diag: &imx6.UART{},
		feed: &imx6.UART{},
	}

	b.diag.Init(imx6.UART1_BASE)
	b.diag.Setup(feedBaudrate)

	b.feed.Init(imx6.UART2_BASE)
	b.feed.Setup(feedBaudrate)

	status, err := imx6.NewGPIO(statusLEDNum, statusLEDData, statusLEDDir)
	if err != nil {
		return nil, fmt.Errorf("bridge: status LED: %w", err)
	}
	status.Out()
	b.status = status

	button, err := imx6.NewGPIO(buttonNum, buttonData, buttonDir)
	if err != nil {
		return nil, fmt.Errorf("bridge: pairing button: %w", err)
	}
	button.In()
	b.button = button

	return b, nil
}

// Logf writes a single formatted diagnostic line to the console UART.
func (b *Board) Logf(format string, args ...interface{}) {
	for _, c := range []byte(fmt.Sprintf(format, args...) + "\r\n") {
		b.diag.Write(c)
	}
}

// StatusOn and StatusOff drive the status LED.
func (b *Board) StatusOn()  { b.status.High() }
func (b *Board) StatusOff() { b.status.Low() }

// ButtonPressed reports the pairing button level (active low) as read at
// the time of the call; it does no debouncing of its own.
func (b *Board) ButtonPressed() bool {
	return !b.button.Value()
}

// uartReader adapts the polling imx6.UART.Read into an io.Reader so
// bufio.Scanner can be used for line framing.
type uartReader struct {
	u *imx6.UART
}

func (r uartReader) Read(p []byte) (int, error) {
	for i := range p {
		for {
			c, ok := r.u.Read()
			if ok {
				p[i] = c
				break
			}
		}
	}
	return len(p), nil
}

// FeedLoop blocks reading newline-terminated input-feed frames from the
// DualShock 4 input-feed UART and applies each to state. It never returns
// under normal operation; malformed lines are logged and skipped.
func (b *Board) FeedLoop(state *input.State) {
	scanner := bufio.NewScanner(uartReader{b.feed})

	for scanner.Scan() {
		f, err := feed.Decode(scanner.Bytes())
		if err != nil {
			log.Printf("bridge: %v\n", err)
			continue
		}

		state.SetFromFeed(f.Buttons, f.LX, f.LY, f.RX, f.RY)
	}
}
