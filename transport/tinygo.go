// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package transport

import (
	"github.com/GermanBionicSystems/tca9534/tca9534"
	"tinygo.org/x/drivers"
)

// TinyGo adapts a TinyGo drivers.I2C bus, such as *machine.I2C.
type TinyGo struct {
	Bus drivers.I2C
}

func (t *TinyGo) Write(addr uint16, w []byte) error {
	return t.Bus.Tx(addr, w, nil)
}

func (t *TinyGo) Read(addr uint16, r []byte) error {
	return t.Bus.Tx(addr, nil, r)
}

func (t *TinyGo) WriteRead(addr uint16, w, r []byte) error {
	return t.Bus.Tx(addr, w, r)
}

var _ tca9534.Transport = &TinyGo{}
