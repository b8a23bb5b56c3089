// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package transport

import (
	"errors"
	"fmt"

	"github.com/GermanBionicSystems/tca9534/tca9534"
	"golang.org/x/exp/io/i2c/driver"
)

// Opener adapts a golang.org/x/exp/io/i2c driver.Opener, for example
// &i2c.Devfs{Dev: "/dev/i2c-1"}.
//
// x/exp connections are bound to one device address, so a connection is
// opened the first time an address is used and kept until Close.
type Opener struct {
	o     driver.Opener
	conns map[uint16]driver.Conn
}

// NewOpener returns an Opener transport. Call Close to release the
// connections it opened.
func NewOpener(o driver.Opener) *Opener {
	return &Opener{o: o, conns: map[uint16]driver.Conn{}}
}

func (o *Opener) conn(addr uint16) (driver.Conn, error) {
	if c, ok := o.conns[addr]; ok {
		return c, nil
	}
	c, err := o.o.Open(int(addr), addr > 0x7F)
	if err != nil {
		return nil, fmt.Errorf("transport: open 0x%02x: %w", addr, err)
	}
	o.conns[addr] = c
	return c, nil
}

func (o *Opener) Write(addr uint16, w []byte) error {
	c, err := o.conn(addr)
	if err != nil {
		return err
	}
	return c.Tx(w, nil)
}

func (o *Opener) Read(addr uint16, r []byte) error {
	c, err := o.conn(addr)
	if err != nil {
		return err
	}
	return c.Tx(nil, r)
}

func (o *Opener) WriteRead(addr uint16, w, r []byte) error {
	c, err := o.conn(addr)
	if err != nil {
		return err
	}
	return c.Tx(w, r)
}

// Close closes every connection opened so far.
func (o *Opener) Close() error {
	var errs []error
	for addr, c := range o.conns {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(o.conns, addr)
	}
	return errors.Join(errs...)
}

var _ tca9534.Transport = &Opener{}
