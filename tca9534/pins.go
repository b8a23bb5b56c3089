// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9534

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/pin"
)

// Pin extends gpio.PinIO with pin function selection and the polarity
// inversion of the TCA9534.
type Pin interface {
	gpio.PinIO
	pin.PinFunc
	// SetPolarityInverted inverts the input reading of the pin when true.
	SetPolarityInverted(p bool) error
	// IsPolarityInverted returns true if the input reading is inverted.
	IsPolarityInverted() (bool, error)
}

// Pins returns the 8 pins of the chip, indexed by pin number.
//
// They are registered in gpioreg as TCA9534_<addr>_<n>. SetAddress renames
// and registers them again under the new address.
func (d *Dev) Pins() []Pin {
	return d.pins
}

// Port returns the whole port as a half-duplex connection: written bytes go
// to OutputPort, read bytes come from InputPort.
func (d *Dev) Port() conn.Conn {
	return d.port
}

func (d *Dev) makePins() {
	d.port = &port{dev: d}
	d.pins = make([]Pin, NumPins)
	for i := range d.pins {
		d.pins[i] = &devpin{dev: d, pinbit: uint8(i)}
	}
	d.registerPins()
}

// registerPins names the pins after the current address and registers them.
func (d *Dev) registerPins() {
	name := d.String()
	d.port.name = name
	for _, p := range d.pins {
		dp := p.(*devpin)
		dp.name = name + "_" + strconv.Itoa(int(dp.pinbit))
		// Ignore registration failure.
		_ = gpioreg.Register(dp)
	}
}

func (d *Dev) unregisterPins() error {
	for _, p := range d.pins {
		// Only remove what this Dev registered.
		if gpioreg.ByName(p.Name()) != p {
			continue
		}
		if err := gpioreg.Unregister(p.Name()); err != nil {
			return err
		}
	}
	return nil
}

type port struct {
	dev  *Dev
	name string
}

// Tx takes bytes to either read or write. Only half duplex is supported so it
// is an error to pass 2 buffers at once.
func (p *port) Tx(w, r []byte) error {
	if len(w) > 0 && len(r) > 0 {
		return errors.New("tca9534: only conn.Half duplex is supported")
	}
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	for _, b := range w {
		if err := p.dev.WriteOutputPort(b); err != nil {
			return err
		}
	}
	for i := range r {
		v, err := p.dev.ReadInputPort()
		if err != nil {
			return err
		}
		r[i] = v
	}
	return nil
}

func (p *port) Duplex() conn.Duplex {
	return conn.Half
}

func (p *port) String() string {
	return p.name
}

type devpin struct {
	dev    *Dev
	pinbit uint8
	name   string
}

func (p *devpin) String() string {
	return p.name
}

func (p *devpin) Halt() error {
	return p.In(gpio.Float, gpio.NoEdge)
}

func (p *devpin) Name() string {
	return p.name
}

func (p *devpin) Number() int {
	return int(p.pinbit)
}

func (p *devpin) Function() string {
	return string(p.Func())
}

func (p *devpin) In(pull gpio.Pull, edge gpio.Edge) error {
	switch pull {
	case gpio.PullDown:
		return errors.New("tca9534: PullDown is not supported")
	case gpio.PullUp:
		return errors.New("tca9534: PullUp is not supported")
	case gpio.Float, gpio.PullNoChange:
	}
	// The INT line is not part of the I²C bus.
	if edge != gpio.NoEdge {
		return errors.New("tca9534: edge detection not supported")
	}
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	return p.dev.SetPinConfig(p.pinbit, Input)
}

func (p *devpin) Read() gpio.Level {
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	l, _ := p.dev.ReadPinInput(p.pinbit)
	return gpio.Level(l == High)
}

func (p *devpin) WaitForEdge(timeout time.Duration) bool {
	return false
}

func (p *devpin) Pull() gpio.Pull {
	return gpio.Float
}

func (p *devpin) DefaultPull() gpio.Pull {
	return gpio.Float
}

// Out latches the level first, then turns the pin to output so it never
// glitches to the previous latch value.
func (p *devpin) Out(l gpio.Level) error {
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	level := Low
	if l == gpio.High {
		level = High
	}
	if err := p.dev.SetPinOutput(p.pinbit, level); err != nil {
		return err
	}
	return p.dev.SetPinConfig(p.pinbit, Output)
}

func (p *devpin) PWM(duty gpio.Duty, f physic.Frequency) error {
	return errors.New("tca9534: PWM is not supported")
}

func (p *devpin) Func() pin.Func {
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	v, err := p.dev.ReadPortConfig()
	if err != nil {
		return pin.FuncNone
	}
	if v&(1<<p.pinbit) != 0 {
		return gpio.IN
	}
	return gpio.OUT
}

func (p *devpin) SupportedFuncs() []pin.Func {
	return supportedFuncs[:]
}

func (p *devpin) SetFunc(f pin.Func) error {
	var c PinConfig
	switch f {
	case gpio.IN:
		c = Input
	case gpio.OUT:
		c = Output
	default:
		return fmt.Errorf("tca9534: function not supported: %s", f)
	}
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	return p.dev.SetPinConfig(p.pinbit, c)
}

func (p *devpin) SetPolarityInverted(inv bool) error {
	pol := Normal
	if inv {
		pol = Inverted
	}
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	return p.dev.SetPinPolarity(p.pinbit, pol)
}

func (p *devpin) IsPolarityInverted() (bool, error) {
	p.dev.mu.Lock()
	defer p.dev.mu.Unlock()
	v, err := p.dev.ReadPortPolarity()
	return v&(1<<p.pinbit) != 0, err
}

var supportedFuncs = [...]pin.Func{gpio.IN, gpio.OUT}

var _ Pin = &devpin{}
var _ conn.Conn = &port{}
