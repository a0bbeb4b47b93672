// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package readinput mirrors a set of input pins of an I/O expander onto a set
// of output pins by polling.
//
// With the default options the levels of P0..P3 are copied to P4..P7 every
// 20ms, e.g. to light LEDs on P4..P7 from switches on P0..P3.
//
// Instead of polling, one could use the INT output of the PCF857x which
// notifies of changes on the input pins. Loop only depends on the Expander
// interface so such a caller can replace it without touching the driver.
package readinput

import (
	"context"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/expander/pcf857x"
)

// Expander is the part of the driver the loop needs. *pcf857x.Dev
// implements it.
type Expander interface {
	Get(mask pcf857x.PinFlag) (pcf857x.PinFlag, error)
	Set(value pcf857x.PinFlag) error
}

// Opts holds the loop configuration.
type Opts struct {
	// Inputs selects the input pins. They are written high on every
	// iteration so they can be read on the next one.
	Inputs pcf857x.PinFlag
	// Shift is the distance between an input pin and the output pin it
	// drives.
	Shift int
	// Delay is the pause between two iterations.
	Delay time.Duration
	// Sleep blocks for the given duration. Defaults to time.Sleep.
	Sleep func(time.Duration)
	// OnWrite, if set, is called with every value written to the expander.
	OnWrite func(out pcf857x.PinFlag)
}

// DefaultOpts mirrors P0..P3 onto P4..P7 every 20ms.
var DefaultOpts = Opts{
	Inputs: pcf857x.P0 | pcf857x.P1 | pcf857x.P2 | pcf857x.P3,
	Shift:  4,
	Delay:  20 * time.Millisecond,
}

// Mirror returns the value to write after the input pins read levels: the
// levels moved up by shift, with the input pins set high again.
//
// The whole inputs mask is re-asserted, not only the pins that read high, so
// that every input stays readable.
func Mirror(levels, inputs pcf857x.PinFlag, shift int) pcf857x.PinFlag {
	return levels<<shift | inputs
}

// Loop polls an Expander.
type Loop struct {
	e    Expander
	opts Opts
}

// New returns a Loop on e. A nil opts uses DefaultOpts.
func New(e Expander, opts *Opts) *Loop {
	l := &Loop{e: e, opts: DefaultOpts}
	if opts != nil {
		l.opts = *opts
	}
	if l.opts.Sleep == nil {
		l.opts.Sleep = time.Sleep
	}
	return l
}

// Step runs one iteration: read the inputs, write the mirrored value. It
// returns the value written.
//
// If the read fails nothing is written.
func (l *Loop) Step() (pcf857x.PinFlag, error) {
	levels, err := l.e.Get(l.opts.Inputs)
	if err != nil {
		return 0, fmt.Errorf("readinput: %w", err)
	}
	out := Mirror(levels, l.opts.Inputs, l.opts.Shift)
	if err := l.e.Set(out); err != nil {
		return 0, fmt.Errorf("readinput: %w", err)
	}
	if l.opts.OnWrite != nil {
		l.opts.OnWrite(out)
	}
	return out, nil
}

// Run calls Step then sleeps for Delay, forever. It returns the first error
// from Step, or ctx.Err() once ctx is done. ctx is only checked between
// iterations; a bus transaction or a sleep is never interrupted.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := l.Step(); err != nil {
			return err
		}
		l.opts.Sleep(l.opts.Delay)
	}
}
