// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pcf857x provides a driver for the TI/NXP PCF857X I²C I/O Expander.
// These devices provide 8 pins (PCF8574, PCF8574A) or 16 pins (PCF8575) of
// "quasi-bidirectional" input/output.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// https://www.ti.com/lit/ds/symlink/pcf8575.pdf
//
// # Notes
//
// This chip doesn't implement normal i2c register architectures. You write 8 or
// 16 bits out, and that sets the corresponding pins, or you read 8/16 bits and
// get the state of the pins. There is no direction register.
//
// Writing a 0 to a pin activates an open drain to ground; the pin is an
// output driven low. Writing a 1 releases the pin to a weak pull-up; the pin
// then reads back whatever the external circuit drives it to. A pin that is
// still driven low always reads low, so a pin must be set high before it can
// be used as an input.
//
// Since the device can't tell which pins are meant to be outputs, Dev keeps a
// shadow copy of the last value written. Set writes its argument verbatim and
// never merges it with the shadow; callers that want to change a subset of
// the pins use Update, or compose the value themselves.
//
// The PCF8575 reads and writes two bytes per transaction, P00..P07 first and
// then P10..P17.
//
// You cannot detect edge change on a specific pin. There is an interrupt pin
// that can be used to detect a change on the GPIO pins, but it doesn't tell you
// which pin changed.
package pcf857x
