// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tca9534 drives the Texas Instruments TCA9534 8-bit I²C I/O
// expander. The TCA9534A and TCA9554 share the register map and work the
// same way at their own addresses.
//
// The chip has four byte-wide registers: InputPort, OutputPort, Polarity and
// Config. Single pin operations are read-modify-write sequences over the
// whole register; the read is issued right before the write and never served
// from a cache.
//
// Two drivers are provided on top of the same algorithms: Dev blocks the
// calling goroutine on every bus transaction, AsyncDev takes a
// context.Context and leaves cancellation to its ContextTransport. Neither
// locks: one owner issues operations on an instance at a time.
//
// Dev also exposes its pins as periph gpio.PinIO, registered in gpioreg as
// TCA9534_<addr>_<n>, and its port as a half-duplex conn.Conn.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/tca9534.pdf
//
// # Partial failures
//
// A transport error during the read half of a read-modify-write aborts the
// call before anything is written. An error during the write half leaves the
// register as it was before the call. No retry or resynchronization is
// attempted; the caller decides what to do with the device.
package tca9534
