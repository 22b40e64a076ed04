// Command procon-reader polls a physical DualShock 4 controller over USB
// and relays its state as input-feed frames over a serial link to the
// bridge firmware.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/google/gousb"

	"github.com/usbarmory/procon-bridge/internal/config"
	"github.com/usbarmory/procon-bridge/internal/ds4"
	"github.com/usbarmory/procon-bridge/internal/serial"
	"github.com/usbarmory/procon-bridge/procon/feed"
)

var cli struct {
	Config string `help:"Path to a YAML configuration file." default:""`
	Serial string `help:"Serial device to write input-feed frames to." default:""`
	Baud   int    `help:"Serial baud rate." default:"0"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("procon-reader"),
		kong.Description("Relay a physical DualShock 4 controller to a procon-bridge board over serial."),
	)

	cfg := config.Default()
	if cli.Config != "" {
		loaded, err := config.Load(cli.Config)
		if err != nil {
			log.Fatalf("procon-reader: %v", err)
		}
		cfg = loaded
	}
	if cli.Serial != "" {
		cfg.Serial.Device = cli.Serial
	}
	if cli.Baud != 0 {
		cfg.Serial.Baud = cli.Baud
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	usbCtx := gousb.NewContext()
	defer usbCtx.Close()

	pad, err := ds4.Open(usbCtx, gousb.ID(cfg.DS4.VendorID), gousb.ID(cfg.DS4.ProductID))
	if err != nil {
		log.Fatalf("procon-reader: %v", err)
	}
	defer pad.Close()

	port, err := serial.Open(cfg.Serial.Device, cfg.Serial.Baud)
	if err != nil {
		log.Fatalf("procon-reader: %v", err)
	}
	defer port.Close()

	log.Printf("procon-reader: relaying %s -> %s", "DualShock 4", cfg.Serial.Device)

	if err := run(ctx, pad, port); err != nil {
		log.Fatalf("procon-reader: %v", err)
	}
}

func run(ctx context.Context, pad *ds4.Device, out *serial.Port) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		f, ok, err := pad.Read()
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if _, err := out.Write(feed.Encode(f)); err != nil {
			return err
		}
	}
}
