// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
)

// Variant represents the actual chip model.
type Variant string

const (
	PCF8574  Variant = "PCF8574"
	PCF8574A Variant = "PCF8574A"
	PCF8575  Variant = "PCF8575"

	// DefaultAddress is the address of a PCF8574 or PCF8575 with A2..A0 tied
	// low.
	DefaultAddress uint16 = 0x20
	// DefaultAddressA is the address of a PCF8574A with A2..A0 tied low.
	DefaultAddressA uint16 = 0x38
)

var (
	ErrNotImplemented = errors.New("pcf857x: not implemented")
	ErrInvalidAddress = errors.New("pcf857x: address not supported by variant")
	ErrInvalidVariant = errors.New("pcf857x: unknown variant")
)

// BusError is returned when a bus transaction with the device fails. Err is
// the error reported by the bus, unchanged.
type BusError struct {
	Op   string
	Addr uint16
	Err  error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("pcf857x: %s at 0x%02x: %v", e.Op, e.Addr, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// baseAddress returns the address of the variant with all address pins low.
func baseAddress(chip Variant) (uint16, error) {
	switch chip {
	case PCF8574, PCF8575:
		return DefaultAddress, nil
	case PCF8574A:
		return DefaultAddressA, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidVariant, string(chip))
}

// Address returns the bus address of a device of the given variant whose
// address pins A2, A1 and A0 are strapped high (true) or low (false).
func Address(chip Variant, a2, a1, a0 bool) (uint16, error) {
	addr, err := baseAddress(chip)
	if err != nil {
		return 0, err
	}
	if a2 {
		addr |= 4
	}
	if a1 {
		addr |= 2
	}
	if a0 {
		addr |= 1
	}
	return addr, nil
}

// Dev is representation of a PCF857x device.
type Dev struct {
	// The pins exposed by the device. For PCF8574, this will be 8 pins, and
	// 16 pins for the PCF8575
	Pins     []gpio.PinIO
	mask     PinFlag
	width    int
	chipType Variant

	mu     sync.Mutex
	d      i2c.Dev
	shadow PinFlag
	groups []*Group
}

// New creates a new PCF857x io expander and returns it. chip should be one of
// the Variant constants above.
//
// No bus transaction is performed. The shadow register starts with all pins
// high, which is the power-on state of the device.
func New(bus i2c.Bus, address uint16, chip Variant) (*Dev, error) {
	base, err := baseAddress(chip)
	if err != nil {
		return nil, err
	}
	if address&^7 != base {
		return nil, fmt.Errorf("%w: 0x%02x for %s", ErrInvalidAddress, address, chip)
	}
	dev := &Dev{d: i2c.Dev{Bus: bus, Addr: address}, chipType: chip}
	if chip == PCF8575 {
		dev.width = 16
	} else {
		dev.width = 8
	}
	dev.mask = PinFlag((1 << dev.width) - 1)
	dev.shadow = dev.mask
	dev.Pins = make([]gpio.PinIO, dev.width)
	sDev := dev.String()
	for ix := range dev.width {
		name := fmt.Sprintf("%s_GPIO%d", sDev, ix)
		dev.Pins[ix] = &pcfPin{dev: dev, number: ix, name: name}
		// Ignore registration failure, a device at the same address may
		// already have registered these names.
		_ = gpioreg.Register(dev.Pins[ix])
	}
	return dev, nil
}

// Get reads the pin levels from the device and returns the pins of mask that
// are high.
//
// The pins in mask must have been set high beforehand, either with Set,
// Update or Pins[n].In(). A pin that is driven low always reads low.
//
// The shadow register is not modified.
func (dev *Dev) Get(mask PinFlag) (PinFlag, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	r := make([]byte, dev.width/8)
	if err := dev.d.Tx(nil, r); err != nil {
		return 0, &BusError{Op: "read", Addr: dev.d.Addr, Err: err}
	}
	result := PinFlag(r[0])
	if len(r) > 1 {
		result |= PinFlag(r[1]) << 8
	}
	return result & mask & dev.mask, nil
}

// Set writes value to the device as the new state of all the pins. Pins in
// value are released high, all the other pins are driven low.
//
// Set does not merge value with the previous state; use Update to change a
// subset of the pins. The shadow register is only updated if the write
// succeeds.
func (dev *Dev) Set(value PinFlag) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.write(value)
}

// Update writes value to the pins selected by mask and keeps the other pins at
// their shadow state. It performs exactly one bus write.
func (dev *Dev) Update(value, mask PinFlag) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.write((dev.shadow &^ mask) | (value & mask))
}

// Shadow returns the last value successfully written to the device.
func (dev *Dev) Shadow() PinFlag {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.shadow
}

// write performs the low-level write to the device. The caller must hold mu.
func (dev *Dev) write(value PinFlag) error {
	value &= dev.mask
	w := make([]byte, dev.width/8)
	for ix := range w {
		w[ix] = byte(value >> (ix * 8))
	}
	if err := dev.d.Tx(w, nil); err != nil {
		return &BusError{Op: "write", Addr: dev.d.Addr, Err: err}
	}
	dev.shadow = value
	return nil
}

// Group returns a GPIO Group comprised of the specified pin numbers. A
// gpio.Group allows you to perform writes to multiple pins in one operation.
func (dev *Dev) Group(pinNumbers ...int) (gpio.Group, error) {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	gr := &Group{dev: dev, pins: make([]*pcfPin, len(pinNumbers))}
	for ix, number := range pinNumbers {
		if number < 0 || number >= len(dev.Pins) {
			return nil, fmt.Errorf("pcf857x: pin %d out of range on %s", number, dev)
		}
		p, ok := dev.Pins[number].(*pcfPin)
		if !ok {
			return nil, fmt.Errorf("pcf857x: pin %d is not a device pin", number)
		}
		gr.pins[ix] = p
	}
	dev.groups = append(dev.groups, gr)
	return gr, nil
}

// Halt shuts down the device, frees any pin groups and unregisters the pins.
//
// The pins keep their current state.
func (dev *Dev) Halt() error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	for _, gr := range dev.groups {
		_ = gr.Halt()
	}
	dev.groups = nil
	for _, p := range dev.Pins {
		if gpioreg.ByName(p.Name()) == p {
			_ = gpioreg.Unregister(p.Name())
		}
	}
	dev.Pins = nil
	return nil
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s_%x", dev.chipType, dev.d.Addr)
}
