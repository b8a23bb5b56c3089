// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9534

import (
	"context"

	"periph.io/x/conn/v3/i2c"
)

// BusTransport adapts a periph i2c.Bus to Transport. Each method maps to a
// single bus.Tx call, so WriteRead uses a repeated start.
type BusTransport struct {
	Bus i2c.Bus
}

func (b *BusTransport) Write(addr uint16, w []byte) error {
	return b.Bus.Tx(addr, w, nil)
}

func (b *BusTransport) Read(addr uint16, r []byte) error {
	return b.Bus.Tx(addr, nil, r)
}

func (b *BusTransport) WriteRead(addr uint16, w, r []byte) error {
	return b.Bus.Tx(addr, w, r)
}

// NewI2C returns a Dev talking over a periph I²C bus.
func NewI2C(bus i2c.Bus, addr uint16) (*Dev, error) {
	return New(&BusTransport{Bus: bus}, addr)
}

// NewAsyncI2C returns an AsyncDev talking over a periph I²C bus.
func NewAsyncI2C(ctx context.Context, bus i2c.Bus, addr uint16) (*AsyncDev, error) {
	return NewAsync(ctx, Async(&BusTransport{Bus: bus}), addr)
}

var _ Transport = &BusTransport{}
