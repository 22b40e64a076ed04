// Package config loads the host reader's YAML configuration file.
//
// Copyright (c) F-Secure Corporation
// https://foundry.f-secure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the host reader's on-disk configuration.
type Config struct {
	Serial struct {
		Device string `yaml:"device"`
		Baud   int    `yaml:"baud"`
	} `yaml:"serial"`

	DS4 struct {
		VendorID  uint16 `yaml:"vendor_id"`
		ProductID uint16 `yaml:"product_id"`
	} `yaml:"ds4"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	c := &Config{}
	c.Serial.Device = "/dev/ttyUSB0"
	c.Serial.Baud = 115200
	c.DS4.VendorID = 0x054c
	c.DS4.ProductID = 0x09cc
	return c
}

// Load reads and parses path, falling back to Default for any field left
// unset in the file.
func Load(path string) (*Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return c, nil
}
