// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

type pcfPin struct {
	dev    *Dev
	number int
	name   string
}

func (pin *pcfPin) flag() PinFlag {
	return PinFlag(1) << pin.number
}

func (pin *pcfPin) DefaultPull() gpio.Pull {
	return gpio.PullUp
}

// Function returns "In" while the pin is released high and "Out" while it is
// driven low.
func (pin *pcfPin) Function() string {
	if pin.dev.Shadow().Has(pin.flag()) {
		return "In"
	}
	return "Out"
}

func (pin *pcfPin) Halt() error {
	return nil
}

func (pin *pcfPin) In(pull gpio.Pull, edge gpio.Edge) error {
	// To use a pin for input, you must write a High to that pin, and then
	// perform the read. The weak pull-up is always on, pull is ignored.
	//
	// Refer to the datasheet for more information.
	return pin.dev.Update(pin.flag(), pin.flag())
}

func (pin *pcfPin) Name() string {
	return pin.name
}

func (pin *pcfPin) Number() int {
	return pin.number
}

func (pin *pcfPin) Out(l gpio.Level) error {
	value := PinFlag(0)
	if l {
		value = pin.flag()
	}
	return pin.dev.Update(value, pin.flag())
}

func (pin *pcfPin) Pull() gpio.Pull {
	return gpio.PullUp
}

// Read returns the level of the pin. The pin must have been set for input with
// In() first. Errors are logged and reported as Low.
func (pin *pcfPin) Read() gpio.Level {
	value, err := pin.dev.Get(pin.flag())
	if err != nil {
		log.Println(err)
		return gpio.Low
	}
	return value != 0
}

func (pin *pcfPin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return ErrNotImplemented
}

func (pin *pcfPin) String() string {
	return pin.name
}

// This device has an interrupt pin that can detect a change on the GPIO lines,
// however it doesn't let you detect a change on a specific pin.
func (pin *pcfPin) WaitForEdge(timeout time.Duration) bool {
	return false
}

var _ gpio.PinIO = &pcfPin{}
