// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pinview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/expander/pcf857x"
	"github.com/maruel/ansi256"
)

func TestShow_plain(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOpts
	opts.W = &buf
	d := New(&opts)
	if err := d.Show(pcf857x.P0 | pcf857x.P2 | pcf857x.P7); err != nil {
		t.Fatal(err)
	}
	if s := buf.String(); s != "\r10100001 " {
		t.Errorf("Show() = %q", s)
	}
	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if s := buf.String(); s != "\n" {
		t.Errorf("Halt() = %q", s)
	}
	if d.String() != "PinView" {
		t.Errorf("String() = %q", d.String())
	}
}

func TestShow_color(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOpts
	opts.W = &buf
	opts.Color = true
	opts.Pins = 4
	d := New(&opts)
	if err := d.Show(pcf857x.P1); err != nil {
		t.Fatal(err)
	}
	high := ansi256.Default.Block(DefaultOpts.High)
	low := ansi256.Default.Block(DefaultOpts.Low)
	want := "\r\033[0m" + low + high + low + low + "\033[0m "
	if s := buf.String(); s != want {
		t.Errorf("Show() = %q, expected %q", s, want)
	}
	buf.Reset()
	_ = d.Halt()
	if s := buf.String(); !strings.HasSuffix(s, "\033[0m") {
		t.Errorf("Halt() = %q", s)
	}
}

func TestNew_pins(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: &buf, Pins: 40})
	if err := d.Show(0xffff); err != nil {
		t.Fatal(err)
	}
	if s := buf.String(); s != "\r"+strings.Repeat("1", 16)+" " {
		t.Errorf("Show() = %q", s)
	}
}
