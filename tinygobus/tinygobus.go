// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tinygobus exposes a TinyGo I²C bus as a periph i2c.Bus, so that the
// drivers in this module can run on a microcontroller.
package tinygobus

import (
	"errors"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// ErrSpeed is returned by SetSpeed. On TinyGo the bus frequency is set in
// machine.I2CConfig when the bus is configured.
var ErrSpeed = errors.New("tinygobus: SetSpeed not supported, configure the machine.I2C frequency instead")

type bus struct {
	b drivers.I2C
}

// New returns an i2c.Bus forwarding every transaction to b.
func New(b drivers.I2C) i2c.Bus {
	return &bus{b: b}
}

func (b *bus) String() string {
	return "tinygo"
}

// Tx implements i2c.Bus.
func (b *bus) Tx(addr uint16, w, r []byte) error {
	return b.b.Tx(addr, w, r)
}

// SetSpeed implements i2c.Bus.
func (b *bus) SetSpeed(f physic.Frequency) error {
	return ErrSpeed
}
