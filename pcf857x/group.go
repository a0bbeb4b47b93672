// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"fmt"
	"strings"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/pin"
)

// Group is a set of pins of one device that are written and read together.
// Bit 0 of a group value is the first pin passed to Dev.Group, bit 1 the
// second, and so on.
type Group struct {
	pins []*pcfPin
	dev  *Dev
}

// Pins returns the set of pins that make up this group.
func (gr *Group) Pins() []pin.Pin {
	pins := make([]pin.Pin, len(gr.pins))
	for ix, p := range gr.pins {
		pins[ix] = p
	}
	return pins
}

// toDevice converts a group value into the matching device pins.
func (gr *Group) toDevice(v gpio.GPIOValue) PinFlag {
	f := PinFlag(0)
	for ix, p := range gr.pins {
		if v&(1<<ix) != 0 {
			f |= p.flag()
		}
	}
	return f
}

// fromDevice converts device pins back into a group value.
func (gr *Group) fromDevice(f PinFlag) gpio.GPIOValue {
	v := gpio.GPIOValue(0)
	for ix, p := range gr.pins {
		if f.Has(p.flag()) {
			v |= 1 << ix
		}
	}
	return v
}

func (gr *Group) defaultMask(mask gpio.GPIOValue) gpio.GPIOValue {
	if mask == 0 {
		return (1 << len(gr.pins)) - 1
	}
	return mask
}

// ByOffset returns the GPIO pin by offset within the group.
func (gr *Group) ByOffset(offset int) pin.Pin {
	if offset < 0 || offset >= len(gr.pins) {
		return nil
	}
	return gr.pins[offset]
}

// ByName returns the GPIO pin by name.
func (gr *Group) ByName(name string) pin.Pin {
	for _, p := range gr.pins {
		if p.name == name {
			return p
		}
	}
	return nil
}

// ByNumber returns the GPIO pin by its pin number on the device.
func (gr *Group) ByNumber(number int) pin.Pin {
	for _, p := range gr.pins {
		if p.number == number {
			return p
		}
	}
	return nil
}

// Out writes the specified value to the device. Only pins identified by mask
// are modified; a mask of 0 selects every pin of the group.
func (gr *Group) Out(value, mask gpio.GPIOValue) error {
	mask = gr.defaultMask(mask)
	return gr.dev.Update(gr.toDevice(value), gr.toDevice(mask))
}

// Read returns the current values of the pins within the group identified by
// mask. The pins must have been set high beforehand, e.g. with Out(mask, mask).
func (gr *Group) Read(mask gpio.GPIOValue) (gpio.GPIOValue, error) {
	mask = gr.defaultMask(mask)
	v, err := gr.dev.Get(gr.toDevice(mask))
	if err != nil {
		return 0, err
	}
	return gr.fromDevice(v), nil
}

// This chip does not support waiting for edge on either a pin or a group. There
// is an interrupt pin, but you can't set a mask of pins that will trigger it. To
// do that, you connect a GPIO pin from the host device that supports WaitForEdge
// to monitor the INT pin.
func (gr *Group) WaitForEdge(timeout time.Duration) (number int, edge gpio.Edge, err error) {
	return 0, gpio.NoEdge, gpio.ErrGroupFeatureNotImplemented
}

// Halt stops the pin group. It cannot be used after this call.
func (gr *Group) Halt() error {
	gr.pins = nil
	return nil
}

func (gr *Group) String() string {
	var b strings.Builder
	b.WriteString(gr.dev.String())
	b.WriteString("[ ")
	for _, p := range gr.pins {
		fmt.Fprintf(&b, "%d ", p.number)
	}
	b.WriteString("]")
	return b.String()
}

var _ gpio.Group = &Group{}
