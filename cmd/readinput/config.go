// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/GermanBionicSystems/expander/pcf857x"
	"github.com/GermanBionicSystems/expander/readinput"
	"gopkg.in/yaml.v3"
)

// config holds the program configuration. The YAML keys match the flag names.
type config struct {
	Bus       string        `yaml:"bus"`
	Variant   string        `yaml:"variant"`
	Addr      uint16        `yaml:"addr"`
	Inputs    uint16        `yaml:"inputs"`
	Shift     int           `yaml:"shift"`
	Delay     time.Duration `yaml:"delay"`
	Simulate  bool          `yaml:"simulate"`
	SimInputs uint16        `yaml:"sim-inputs"`
	View      bool          `yaml:"view"`
}

func defaultConfig() config {
	return config{
		Variant:   string(pcf857x.PCF8574),
		Inputs:    uint16(readinput.DefaultOpts.Inputs),
		Shift:     readinput.DefaultOpts.Shift,
		Delay:     readinput.DefaultOpts.Delay,
		SimInputs: 0xff,
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// address returns the configured address, or the default one of the variant
// when none is set.
func (c *config) address() (uint16, error) {
	if c.Addr != 0 {
		return c.Addr, nil
	}
	return pcf857x.Address(pcf857x.Variant(c.Variant), false, false, false)
}

func (c *config) validate() error {
	switch pcf857x.Variant(c.Variant) {
	case pcf857x.PCF8574, pcf857x.PCF8574A, pcf857x.PCF8575:
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	if c.Inputs == 0 {
		return fmt.Errorf("no input pins selected")
	}
	if c.Shift < 0 || c.Shift > 15 {
		return fmt.Errorf("shift %d out of range", c.Shift)
	}
	if c.Delay < 0 {
		return fmt.Errorf("negative delay %s", c.Delay)
	}
	return nil
}
