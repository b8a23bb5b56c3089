// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package transport

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/tca9534/tca9534"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/exp/io/i2c/driver"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

type record struct {
	Addr uint16
	W, R []byte
}

// tinyBus is a drivers.I2C replying with reply on every read.
type tinyBus struct {
	ops   []record
	reply byte
}

func (b *tinyBus) Tx(addr uint16, w, r []byte) error {
	for i := range r {
		r[i] = b.reply
	}
	b.ops = append(b.ops, record{Addr: addr, W: append([]byte(nil), w...), R: append([]byte(nil), r...)})
	return nil
}

var resetOps = []record{
	{Addr: 0x21, W: []byte{0x03, 0xFF}, R: []byte{}},
	{Addr: 0x21, W: []byte{0x01, 0x00}, R: []byte{}},
	{Addr: 0x21, W: []byte{0x02, 0x00}, R: []byte{}},
}

func TestTinyGo(t *testing.T) {
	bus := &tinyBus{reply: 0x80}
	dev, err := tca9534.New(&TinyGo{Bus: bus}, tca9534.Addr001)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()
	if l, err := dev.ReadPinInput(7); err != nil || l != tca9534.High {
		t.Fatalf("ReadPinInput() = %s, %v", l, err)
	}
	tr := &TinyGo{Bus: bus}
	if err := tr.Read(0x21, make([]byte, 2)); err != nil {
		t.Fatal(err)
	}
	want := append(append([]record{}, resetOps...),
		record{Addr: 0x21, W: []byte{0x00}, R: []byte{0x80}},
		record{Addr: 0x21, W: []byte{}, R: []byte{0x80, 0x80}},
	)
	if diff := cmp.Diff(want, bus.ops, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("transactions (-want +got):\n%s", diff)
	}
}

type expConn struct {
	addr   int
	ops    *[]record
	closed bool
}

func (c *expConn) Tx(w, r []byte) error {
	for i := range r {
		r[i] = 0x42
	}
	*c.ops = append(*c.ops, record{Addr: uint16(c.addr), W: append([]byte{}, w...), R: append([]byte{}, r...)})
	return nil
}

func (c *expConn) Close() error {
	c.closed = true
	return nil
}

type expOpener struct {
	ops    []record
	opened []*expConn
	fail   bool
}

func (o *expOpener) Open(addr int, tenbit bool) (driver.Conn, error) {
	if o.fail {
		return nil, errors.New("no such device")
	}
	c := &expConn{addr: addr, ops: &o.ops}
	o.opened = append(o.opened, c)
	return c, nil
}

func TestOpener(t *testing.T) {
	o := &expOpener{}
	tr := NewOpener(o)
	dev, err := tca9534.New(tr, tca9534.Addr001)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()
	if v, err := dev.ReadOutputPort(); err != nil || v != 0x42 {
		t.Fatalf("ReadOutputPort() = %#x, %v", v, err)
	}
	dev.SetAddress(tca9534.Addr010)
	if err := dev.WriteOutputPort(0x0F); err != nil {
		t.Fatal(err)
	}
	if err := tr.Read(0x22, make([]byte, 1)); err != nil {
		t.Fatal(err)
	}
	want := append(append([]record{}, resetOps...),
		record{Addr: 0x21, W: []byte{0x01}, R: []byte{0x42}},
		record{Addr: 0x22, W: []byte{0x01, 0x0F}, R: []byte{}},
		record{Addr: 0x22, W: []byte{}, R: []byte{0x42}},
	)
	if diff := cmp.Diff(want, o.ops, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("transactions (-want +got):\n%s", diff)
	}
	if len(o.opened) != 2 {
		t.Fatalf("%d connections opened", len(o.opened))
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	for _, c := range o.opened {
		if !c.closed {
			t.Errorf("connection 0x%02x not closed", c.addr)
		}
	}
}

func TestOpener_openFails(t *testing.T) {
	tr := NewOpener(&expOpener{fail: true})
	_, err := tca9534.New(tr, tca9534.Addr000)
	if !tca9534.IsBusError(err) || !strings.Contains(err.Error(), "no such device") {
		t.Fatalf("got %v", err)
	}
}

func TestLogged(t *testing.T) {
	const address uint16 = 0x20
	scenario := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: address, W: []byte{0x03, 0xFF}},
			{Addr: address, W: []byte{0x01, 0x00}},
			{Addr: address, W: []byte{0x02, 0x00}},
			{Addr: address, W: []byte{0x00}, R: []byte{0x5a}},
			{Addr: address, R: []byte{0x01}},
		},
	}
	var buf bytes.Buffer
	tr := NewLogged(&tca9534.BusTransport{Bus: scenario}, log.New(&buf, "", 0))
	dev, err := tca9534.New(tr, address)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()
	if _, err := dev.ReadInputPort(); err != nil {
		t.Fatal(err)
	}
	if err := tr.Read(address, make([]byte, 1)); err != nil {
		t.Fatal(err)
	}
	want := "i2c 0x20 W[03 ff] ok\n" +
		"i2c 0x20 W[01 00] ok\n" +
		"i2c 0x20 W[02 00] ok\n" +
		"i2c 0x20 W[00] R[5a] ok\n" +
		"i2c 0x20 R[01] ok\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("log (-want +got):\n%s", diff)
	}
	if err := scenario.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestLogged_error(t *testing.T) {
	var buf bytes.Buffer
	tr := NewLogged(&failing{}, log.New(&buf, "", 0))
	if err := tr.Write(0x20, []byte{1}); err == nil {
		t.Fatal("expected error")
	}
	if got := buf.String(); got != "i2c 0x20 W[01] err: nack\n" {
		t.Errorf("log = %q", got)
	}
	if NewLogged(tr, nil).Logger != log.Default() {
		t.Error("nil logger should use log.Default()")
	}
}

type failing struct{}

func (failing) Write(addr uint16, w []byte) error        { return errors.New("nack") }
func (failing) Read(addr uint16, r []byte) error         { return errors.New("nack") }
func (failing) WriteRead(addr uint16, w, r []byte) error { return errors.New("nack") }
