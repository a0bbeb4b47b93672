// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf857xtest provides a simulated PCF857x expander on a fake I²C bus.
//
// Unlike i2ctest.Playback, which replays a fixed sequence of transactions, Sim
// models the quasi-bidirectional pins: a read returns the written latch ANDed
// with the levels the external circuit applies to the pins.
package pcf857xtest

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// ErrNoAck is returned for a transaction to an address the Sim doesn't answer.
var ErrNoAck = errors.New("pcf857xtest: address not acknowledged")

// Sim implements i2c.Bus with a single PCF857x device on it.
type Sim struct {
	sync.Mutex
	// Addr is the address the device answers to.
	Addr uint16
	// Width is 8 for a PCF8574/PCF8574A and 16 for a PCF8575.
	Width int
	// Latch is the last value written to the device. A cleared bit drives the
	// pin low.
	Latch uint16
	// Input is what the external circuit does to each pin. A cleared bit pulls
	// the pin low, a set bit leaves it to the weak pull-up.
	Input uint16
	// Writes records every value written, in order.
	Writes []uint16
	// Reads counts the read transactions.
	Reads int
	// ReadErr and WriteErr, when set, fail the next transactions of that kind.
	ReadErr  error
	WriteErr error
}

// New returns a Sim in the power-on state: all pins high, nothing pulling
// them low.
func New(addr uint16, width int) *Sim {
	all := uint16(1<<width - 1)
	return &Sim{Addr: addr, Width: width, Latch: all, Input: all}
}

// Levels returns the electrical level of the pins.
func (s *Sim) Levels() uint16 {
	s.Lock()
	defer s.Unlock()
	return s.levels()
}

// SetInput changes the levels applied by the external circuit.
func (s *Sim) SetInput(v uint16) {
	s.Lock()
	defer s.Unlock()
	s.Input = v
}

func (s *Sim) levels() uint16 {
	return s.Latch & s.Input & uint16(1<<s.Width-1)
}

func (s *Sim) String() string {
	return fmt.Sprintf("pcf857xtest(0x%02x)", s.Addr)
}

// Tx implements i2c.Bus.
func (s *Sim) Tx(addr uint16, w, r []byte) error {
	s.Lock()
	defer s.Unlock()
	if addr != s.Addr {
		return ErrNoAck
	}
	n := s.Width / 8
	if len(w) != 0 {
		if s.WriteErr != nil {
			return s.WriteErr
		}
		if len(w) != n {
			return fmt.Errorf("pcf857xtest: wrote %d bytes, expected %d", len(w), n)
		}
		v := uint16(w[0])
		if n > 1 {
			v |= uint16(w[1]) << 8
		}
		s.Latch = v
		s.Writes = append(s.Writes, v)
	}
	if len(r) != 0 {
		if s.ReadErr != nil {
			return s.ReadErr
		}
		if len(r) != n {
			return fmt.Errorf("pcf857xtest: read %d bytes, expected %d", len(r), n)
		}
		v := s.levels()
		for ix := range r {
			r[ix] = byte(v >> (8 * ix))
		}
		s.Reads++
	}
	return nil
}

// SetSpeed implements i2c.Bus.
func (s *Sim) SetSpeed(f physic.Frequency) error {
	return nil
}

var _ i2c.Bus = &Sim{}
