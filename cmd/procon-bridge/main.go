// Command procon-bridge emulates a Nintendo Switch Pro Controller over USB
// device mode, relaying button and stick state received from a DualShock 4
// input feed over UART2.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
//
// +build tamago,arm

package main

import (
	"log"
	"time"

	"github.com/usbarmory/procon-bridge/imx6/usb"

	"github.com/usbarmory/procon-bridge/board/bridge"
	"github.com/usbarmory/procon-bridge/procon/gadget"
	"github.com/usbarmory/procon-bridge/procon/input"
)

const buttonDebounce = 30 * time.Millisecond

func init() {
	log.SetFlags(0)
}

func main() {
	board, err := bridge.New()
	if err != nil {
		log.Fatalf("procon-bridge: board init failed, %v\n", err)
	}

	board.Logf("procon-bridge: starting")

	state := input.New()

	go board.FeedLoop(state)
	go pollButton(board, state)

	dev := gadget.New(state)

	usb.USB1.Init()
	usb.USB1.DeviceMode()

	board.StatusOn()
	board.Logf("procon-bridge: USB device mode active")

	usb.USB1.Start(dev)
}

// pollButton toggles the L/R stand-in bound to the board pairing button,
// used to exercise the emulation without a physical DualShock 4 attached,
// and toggles the status LED on each press.
func pollButton(board *bridge.Board, state *input.State) {
	pressed := false
	lit := true

	for {
		time.Sleep(buttonDebounce)

		now := board.ButtonPressed()
		if now && !pressed {
			state.ToggleLR()

			if lit {
				board.StatusOff()
			} else {
				board.StatusOn()
			}
			lit = !lit
		}
		pressed = now
	}
}
