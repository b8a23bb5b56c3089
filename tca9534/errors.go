// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9534

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPin is returned for a pin number outside [0, 7]. It is raised
	// before any bus transaction.
	ErrInvalidPin = errors.New("tca9534: invalid pin number (must be 0-7)")
	// ErrInvalidRegister is returned by ParseRegister for an unknown address.
	ErrInvalidRegister = errors.New("tca9534: invalid register address")
)

// BusError wraps an error reported by the transport.
//
// Use errors.As to tell a bus fault apart from ErrInvalidPin; the transport's
// own error stays reachable through errors.Is and errors.As.
type BusError struct {
	Op   string // "read" or "write"
	Reg  Register
	Addr uint16
	Err  error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("tca9534: %s %s at 0x%02x: %v", e.Op, e.Reg, e.Addr, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// IsBusError reports whether err came from the transport.
func IsBusError(err error) bool {
	var b *BusError
	return errors.As(err, &b)
}

func checkPin(pin uint8) error {
	if pin >= NumPins {
		return ErrInvalidPin
	}
	return nil
}
