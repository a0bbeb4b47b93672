// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pcf857x

import (
	"fmt"
	"strings"
)

// PinFlag identifies one or more pins of the expander, one bit per pin.
//
// Flags are combined with | into a mask. The zero value selects no pins.
type PinFlag uint16

const (
	P0 PinFlag = 1 << iota
	P1
	P2
	P3
	P4
	P5
	P6
	P7
	// P10 to P17 only exist on the PCF8575.
	P10
	P11
	P12
	P13
	P14
	P15
	P16
	P17
)

// pinNames follows the datasheet naming: P0..P7 on the 8 bit parts and
// P10..P17 for the upper port of the PCF8575.
var pinNames = [16]string{
	"P0", "P1", "P2", "P3", "P4", "P5", "P6", "P7",
	"P10", "P11", "P12", "P13", "P14", "P15", "P16", "P17",
}

// Pin returns the flag for the pin at the given bit position.
func Pin(number int) PinFlag {
	if number < 0 || number >= len(pinNames) {
		return 0
	}
	return PinFlag(1) << number
}

// Has reports whether every pin in other is also in f.
func (f PinFlag) Has(other PinFlag) bool {
	return f&other == other
}

// String returns the member pins, e.g. "P0|P2".
func (f PinFlag) String() string {
	if f == 0 {
		return "0"
	}
	var names []string
	for ix, name := range pinNames {
		if f&(1<<ix) != 0 {
			names = append(names, name)
		}
	}
	return strings.Join(names, "|")
}

// GoString implements fmt.GoStringer.
func (f PinFlag) GoString() string {
	return fmt.Sprintf("pcf857x.PinFlag(0x%04x)", uint16(f))
}
