// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pinview displays the state of expander pins on the terminal as a
// row of LEDs, using ANSI color codes.
//
// Useful to watch the pins while running against a simulated device, or when
// no LEDs are wired to the outputs.
package pinview

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/GermanBionicSystems/expander/pcf857x"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Opts represents the options available for this display.
type Opts struct {
	// Pins is the number of pins shown, starting at P0. Defaults to 8.
	Pins    int
	Palette *ansi256.Palette
	// High and Low are the colors of a pin that is high or low.
	High color.NRGBA
	Low  color.NRGBA
	// W is where the row is written. Defaults to stdout. Color is only used
	// when W is nil and stdout is a terminal, or when Color is set.
	W     io.Writer
	Color bool

	_ struct{}
}

// DefaultOpts shows 8 pins, green when high and dark red when low.
var DefaultOpts = Opts{
	Pins: 8,
	High: color.NRGBA{R: 0x00, G: 0xe0, B: 0x00, A: 0xff},
	Low:  color.NRGBA{R: 0x40, G: 0x00, B: 0x00, A: 0xff},
}

// Dev is a row of LEDs displayed on the console.
type Dev struct {
	w       io.Writer
	pins    int
	palette ansi256.Palette
	high    string
	low     string
	color   bool

	buf bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &DefaultOpts
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:       opts.W,
		pins:    opts.Pins,
		palette: *p,
		color:   opts.Color,
	}
	if d.pins <= 0 {
		d.pins = DefaultOpts.Pins
	} else if d.pins > 16 {
		d.pins = 16
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
		d.color = d.color || isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
	d.high = d.palette.Block(opts.High)
	d.low = d.palette.Block(opts.Low)
	return d
}

func (d *Dev) String() string {
	return "PinView"
}

// Halt implements conn.Resource.
//
// It moves to the next line and resets the colors so the terminal is not
// corrupted.
func (d *Dev) Halt() error {
	s := "\n"
	if d.color {
		s = "\n\033[0m"
	}
	_, err := io.WriteString(d.w, s)
	return err
}

// Show redraws the row with the given levels, P0 first.
func (d *Dev) Show(levels pcf857x.PinFlag) error {
	// Reuse the buffer, Show is called at the polling rate.
	d.buf.Reset()
	if d.color {
		_, _ = d.buf.WriteString("\r\033[0m")
	} else {
		_, _ = d.buf.WriteString("\r")
	}
	for ix := range d.pins {
		high := levels.Has(pcf857x.Pin(ix))
		switch {
		case d.color && high:
			_, _ = d.buf.WriteString(d.high)
		case d.color:
			_, _ = d.buf.WriteString(d.low)
		case high:
			_ = d.buf.WriteByte('1')
		default:
			_ = d.buf.WriteByte('0')
		}
	}
	if d.color {
		_, _ = d.buf.WriteString("\033[0m ")
	} else {
		_, _ = d.buf.WriteString(" ")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ fmt.Stringer = &Dev{}
