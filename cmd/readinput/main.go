// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Command readinput reads the pins P0-P3 of a PCF8574 and outputs their
// values to the LEDs connected to P4-P7.
//
// Usage:
//
//	readinput [flags]
//
// Flags:
//
//	-config string    YAML configuration file; flags given explicitly win
//	-bus string       I²C bus to use (default: first available)
//	-variant string   PCF8574, PCF8574A or PCF8575 (default "PCF8574")
//	-addr value       device address (default: variant default)
//	-inputs uint      mask of the input pins (default 0xf)
//	-shift int        distance from an input pin to its output pin (default 4)
//	-delay duration   pause between polls (default 20ms)
//	-simulate         run against a simulated device
//	-sim-inputs uint  levels applied to the simulated pins (default 0xff)
//	-view             display the pins on the terminal
//
// Any bus error is fatal: it is logged and the program exits with status 1.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/expander/pcf857x"
	"github.com/GermanBionicSystems/expander/pcf857xtest"
	"github.com/GermanBionicSystems/expander/pinview"
	"github.com/GermanBionicSystems/expander/readinput"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

func main() {
	if err := mainImpl(); err != nil {
		log.Fatal(err)
	}
}

func mainImpl() error {
	var (
		configFile string
		addr       i2c.Addr
		flags      = defaultConfig()
		inputs     uint
		simInputs  uint
	)
	flag.StringVar(&configFile, "config", "", "YAML configuration file")
	flag.StringVar(&flags.Bus, "bus", "", "I²C bus to use")
	flag.StringVar(&flags.Variant, "variant", flags.Variant, "PCF8574, PCF8574A or PCF8575")
	flag.Var(&addr, "addr", "device address (default: variant default)")
	flag.UintVar(&inputs, "inputs", uint(flags.Inputs), "mask of the input pins")
	flag.IntVar(&flags.Shift, "shift", flags.Shift, "distance from an input pin to its output pin")
	flag.DurationVar(&flags.Delay, "delay", flags.Delay, "pause between polls")
	flag.BoolVar(&flags.Simulate, "simulate", false, "run against a simulated device")
	flag.UintVar(&simInputs, "sim-inputs", uint(flags.SimInputs), "levels applied to the simulated pins")
	flag.BoolVar(&flags.View, "view", false, "display the pins on the terminal")
	flag.Parse()
	flags.Addr = uint16(addr)
	flags.Inputs = uint16(inputs)
	flags.SimInputs = uint16(simInputs)

	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	flag.Visit(func(f *flag.Flag) { cfg.override(&flags, f.Name) })
	if err := cfg.validate(); err != nil {
		return err
	}
	address, err := cfg.address()
	if err != nil {
		return err
	}

	var bus i2c.Bus
	if cfg.Simulate {
		width := 8
		if pcf857x.Variant(cfg.Variant) == pcf857x.PCF8575 {
			width = 16
		}
		sim := pcf857xtest.New(address, width)
		sim.SetInput(cfg.SimInputs)
		bus = sim
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}
		b, err := i2creg.Open(cfg.Bus)
		if err != nil {
			return err
		}
		defer b.Close()
		bus = b
	}

	dev, err := pcf857x.New(bus, address, pcf857x.Variant(cfg.Variant))
	if err != nil {
		return err
	}
	defer dev.Halt()
	log.Printf("using %s on %s", dev, bus)

	opts := readinput.Opts{
		Inputs: pcf857x.PinFlag(cfg.Inputs),
		Shift:  cfg.Shift,
		Delay:  cfg.Delay,
	}
	if cfg.View {
		view := pinview.New(&pinview.Opts{
			Pins: len(dev.Pins),
			High: pinview.DefaultOpts.High,
			Low:  pinview.DefaultOpts.Low,
		})
		defer view.Halt()
		opts.OnWrite = func(out pcf857x.PinFlag) {
			_ = view.Show(out)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	start := time.Now()
	err = readinput.New(dev, &opts).Run(ctx)
	if errors.Is(err, context.Canceled) {
		log.Printf("stopped after %s", time.Since(start).Round(time.Millisecond))
		return nil
	}
	return err
}

// override copies the value of the named flag from flags into c.
func (c *config) override(flags *config, name string) {
	switch name {
	case "bus":
		c.Bus = flags.Bus
	case "variant":
		c.Variant = flags.Variant
	case "addr":
		c.Addr = flags.Addr
	case "inputs":
		c.Inputs = flags.Inputs
	case "shift":
		c.Shift = flags.Shift
	case "delay":
		c.Delay = flags.Delay
	case "simulate":
		c.Simulate = flags.Simulate
	case "sim-inputs":
		c.SimInputs = flags.SimInputs
	case "view":
		c.View = flags.View
	}
}
