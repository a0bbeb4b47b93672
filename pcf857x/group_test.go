// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"errors"
	"testing"

	"github.com/GermanBionicSystems/expander/pcf857xtest"
	"periph.io/x/conn/v3/gpio"
)

// This tests the group functionality on a PCF8575 with P0..P7 jumpered to
// P10..P17.
func TestGroup(t *testing.T) {
	sim := pcf857xtest.New(DefaultAddress, 16)
	dev, err := New(&jumperBus{Sim: sim}, DefaultAddress, PCF8575)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Halt()

	set1 := make([]int, len(dev.Pins)>>1)
	set2 := make([]int, len(dev.Pins)>>1)
	for ix := range len(set1) {
		set1[ix] = ix
		set2[ix] = ix + len(set1)
	}
	gr1, err := dev.Group(set1...)
	if err != nil {
		t.Fatal(err)
	}
	gr2, err := dev.Group(set2...)
	if err != nil {
		t.Fatal(err)
	}
	// Note that for group1, pinOffset==pin.Number, but for group2,
	// pinOffset!=pin.Number
	for _, grTest := range []gpio.Group{gr1, gr2} {
		for offset, pin := range grTest.Pins() {
			if x := grTest.ByNumber(pin.Number()); x == nil {
				t.Errorf("group.ByNumber() returned nil for pin %d", pin.Number())
			}
			if x := grTest.ByOffset(offset); x == nil || x.Number() != pin.Number() {
				t.Errorf("group.ByOffset(%d) didn't return pin %d", offset, pin.Number())
			}
			if x := grTest.ByName(pin.Name()); x == nil || x.Name() != pin.Name() {
				t.Error("group.ByName() didn't find a pin or returned the wrong pin!")
			}
		}
		if grTest.ByOffset(len(grTest.Pins())) != nil || grTest.ByNumber(99) != nil || grTest.ByName("nope") != nil {
			t.Error("lookup of a pin outside the group must return nil")
		}
	}
	if s := gr1.String(); s != "PCF8575_20[ 0 1 2 3 4 5 6 7 ]" {
		t.Errorf("group.String() = %q", s)
	}
	// Test the read/write functionality.
	limit := 1 << len(set1)
	for range 2 {
		// The read group must be released high to be read.
		if err := gr2.Out(0xff, 0xff); err != nil {
			t.Fatal(err)
		}
		for val := range limit {
			if err := gr1.Out(gpio.GPIOValue(val), 0); err != nil {
				t.Fatal(err)
			}
			read, err := gr2.Read(0)
			if err != nil {
				t.Fatal(err)
			}
			if read != gpio.GPIOValue(val) {
				t.Errorf("Error writing/reading groups. Wrote %d on write group %s, read %d on read group %s", val, gr1, read, gr2)
			}
		}
		if err := gr1.Out(0xff, 0); err != nil {
			t.Fatal(err)
		}
		gr1, gr2 = gr2, gr1
	}
	if _, _, err := gr1.WaitForEdge(0); !errors.Is(err, gpio.ErrGroupFeatureNotImplemented) {
		t.Errorf("WaitForEdge() = %v", err)
	}
	if err := gr1.Halt(); err != nil {
		t.Error(err)
	}
	if len(gr1.Pins()) != 0 {
		t.Error("group still has pins after Halt()")
	}
}

// Group bits are mapped to the device pins in the order given.
func TestGroup_mapping(t *testing.T) {
	dev, sim := getSim(t, PCF8574)
	gr, err := dev.Group(7, 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Only the first two group pins are written: P7 high, P0 low.
	if err := gr.Out(0b101, 0b011); err != nil {
		t.Fatal(err)
	}
	if sim.Latch != 0xfe {
		t.Errorf("latch %#x", sim.Latch)
	}
	sim.SetInput(0x7f)
	v, err := gr.Read(0b111)
	if err != nil {
		t.Fatal(err)
	}
	// P7 pulled low, P0 driven low, P4 high.
	if v != 0b100 {
		t.Errorf("Read() = %#b", v)
	}
	if _, err := dev.Group(8); err == nil {
		t.Error("expected an error for pin 8 on a PCF8574")
	}
	sim.ReadErr = errNack
	if _, err := gr.Read(0); !errors.Is(err, errNack) {
		t.Errorf("expected the bus error, got %v", err)
	}
}
