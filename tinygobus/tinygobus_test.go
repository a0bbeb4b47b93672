// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tinygobus

import (
	"bytes"
	"errors"
	"testing"

	"github.com/GermanBionicSystems/expander/pcf857x"
	"periph.io/x/conn/v3/physic"
)

// fakeI2C records the transactions like machine.I2C would perform them.
type fakeI2C struct {
	addr []uint16
	w    [][]byte
	r    byte
	err  error
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	f.addr = append(f.addr, addr)
	f.w = append(f.w, append([]byte(nil), w...))
	for ix := range r {
		r[ix] = f.r
	}
	return nil
}

func TestBus(t *testing.T) {
	f := &fakeI2C{r: 0x0c}
	b := New(f)
	if b.String() != "tinygo" {
		t.Errorf("String() = %q", b.String())
	}
	if err := b.SetSpeed(400 * physic.KiloHertz); !errors.Is(err, ErrSpeed) {
		t.Errorf("SetSpeed() = %v", err)
	}

	dev, err := pcf857x.New(b, pcf857x.DefaultAddress, pcf857x.PCF8574)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Halt()
	if err := dev.Set(0x0f); err != nil {
		t.Fatal(err)
	}
	v, err := dev.Get(pcf857x.P2 | pcf857x.P3 | pcf857x.P4)
	if err != nil {
		t.Fatal(err)
	}
	if v != pcf857x.P2|pcf857x.P3 {
		t.Errorf("Get() = %s", v)
	}
	if len(f.addr) != 2 || f.addr[0] != 0x20 || f.addr[1] != 0x20 {
		t.Errorf("addresses %v", f.addr)
	}
	if !bytes.Equal(f.w[0], []byte{0x0f}) || len(f.w[1]) != 0 {
		t.Errorf("writes %v", f.w)
	}

	f.err = errors.New("nack")
	if err := dev.Set(0); !errors.Is(err, f.err) {
		t.Errorf("expected the bus error, got %v", err)
	}
}
