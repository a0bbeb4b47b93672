// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package expander is a container for the PCF857x I/O expander driver and the
// tools built around it.
//
// See package pcf857x for the driver itself and package readinput for the
// polling loop that mirrors input pins onto output pins.
package expander
