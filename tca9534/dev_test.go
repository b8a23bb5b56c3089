// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9534

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func TestNew_reset(t *testing.T) {
	const address uint16 = 0x20
	scenario := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			// all inputs
			{Addr: address, W: []byte{0x03, 0xFF}},
			// outputs low
			{Addr: address, W: []byte{0x01, 0x00}},
			// normal polarity
			{Addr: address, W: []byte{0x02, 0x00}},
		},
	}
	dev, err := NewI2C(scenario, address)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()
	if err := scenario.Close(); err != nil {
		t.Fatal(err)
	}
	if s := dev.String(); s != "TCA9534_20" {
		t.Errorf("String() = %q", s)
	}
}

func TestNewDefault(t *testing.T) {
	f := &fakeChip{t: t, regs: [4]uint8{0x5a, 0xa5, 0x0f, 0x00}}
	dev, err := NewDefault(f)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()
	if dev.Address() != DefaultAddress {
		t.Errorf("Address() = %#x", dev.Address())
	}
	got, err := dev.Dump()
	if err != nil {
		t.Fatal(err)
	}
	want := RegisterDump{InputPort: 0x00, OutputPort: 0x00, Polarity: 0x00, Config: 0xFF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dump() mismatch (-want +got):\n%s", diff)
	}
}

func TestNew_resetFails(t *testing.T) {
	for n := 1; n <= 3; n++ {
		f := &fakeChip{t: t, failAt: n}
		if _, err := New(f, DefaultAddress); !errors.Is(err, errBus) {
			t.Fatalf("write #%d: got %v", n, err)
		}
		// The sequence stops at the first failure.
		if f.count != n {
			t.Errorf("write #%d: %d transactions", n, f.count)
		}
	}
}

func TestDev_resetState(t *testing.T) {
	dev, _ := newFake(t)
	for _, tc := range []struct {
		name string
		read func() (uint8, error)
		want uint8
	}{
		{"config", dev.ReadPortConfig, 0xFF},
		{"output", dev.ReadOutputPort, 0x00},
		{"polarity", dev.ReadPortPolarity, 0x00},
	} {
		got, err := tc.read()
		if err != nil {
			t.Fatal(err)
		}
		if got != tc.want {
			t.Errorf("%s = %#02x, want %#02x", tc.name, got, tc.want)
		}
	}
}

func TestDev_registerIO(t *testing.T) {
	const address uint16 = 0x24
	scenario := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: address, W: []byte{0x03, 0xFF}},
			{Addr: address, W: []byte{0x01, 0x00}},
			{Addr: address, W: []byte{0x02, 0x00}},
			{Addr: address, W: []byte{0x00}, R: []byte{0xc3}},
			{Addr: address, W: []byte{0x01, 0x81}},
			{Addr: address, W: []byte{0x03, 0x7e}},
			{Addr: address, W: []byte{0x02, 0x10}},
			{Addr: address, W: []byte{0x03}, R: []byte{0x7e}},
		},
	}
	dev, err := NewI2C(scenario, address)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()

	if v, err := dev.ReadInputPort(); err != nil || v != 0xc3 {
		t.Fatalf("ReadInputPort() = %#x, %v", v, err)
	}
	if err := dev.WriteOutputPort(0x81); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetPortConfig(0x7e); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetPortPolarity(0x10); err != nil {
		t.Fatal(err)
	}
	if v, err := dev.ReadRegister(Config); err != nil || v != 0x7e {
		t.Fatalf("ReadRegister(Config) = %#x, %v", v, err)
	}
	if err := scenario.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestDev_SetPinOutput_preservesOtherBits(t *testing.T) {
	for _, initial := range []uint8{0x00, 0xFF, 0xa5, 0x5a} {
		for pin := uint8(0); pin < NumPins; pin++ {
			for _, level := range []PinLevel{Low, High} {
				dev, f := newFake(t)
				f.regs[OutputPort] = initial
				if err := dev.SetPinOutput(pin, level); err != nil {
					t.Fatal(err)
				}
				got, err := dev.ReadOutputPort()
				if err != nil {
					t.Fatal(err)
				}
				if (got>>pin)&1 != level.Bits() {
					t.Errorf("%#02x pin %d %s: bit not set, got %#02x", initial, pin, level, got)
				}
				mask := uint8(1) << pin
				if got&^mask != initial&^mask {
					t.Errorf("%#02x pin %d %s: other bits changed, got %#02x", initial, pin, level, got)
				}
				// One read, one write, one read back.
				if f.count != 3 {
					t.Errorf("%d transactions", f.count)
				}
			}
		}
	}
}

func TestDev_TogglePinOutput_twice(t *testing.T) {
	dev, f := newFake(t)
	f.regs[OutputPort] = 0x96
	for pin := uint8(0); pin < NumPins; pin++ {
		if err := dev.TogglePinOutput(pin); err != nil {
			t.Fatal(err)
		}
		if v := f.regs[OutputPort]; v != 0x96^(1<<pin) {
			t.Fatalf("pin %d: after one toggle %#02x", pin, v)
		}
		if err := dev.TogglePinOutput(pin); err != nil {
			t.Fatal(err)
		}
		if v := f.regs[OutputPort]; v != 0x96 {
			t.Fatalf("pin %d: after two toggles %#02x", pin, v)
		}
	}
}

func TestDev_SetPinConfig_roundTrip(t *testing.T) {
	dev, f := newFake(t)
	before, err := dev.ReadPortConfig()
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.SetPinConfig(3, Output); err != nil {
		t.Fatal(err)
	}
	if f.regs[Config] != 0xF7 {
		t.Fatalf("Config = %#02x", f.regs[Config])
	}
	if err := dev.SetPinConfig(3, Input); err != nil {
		t.Fatal(err)
	}
	after, err := dev.ReadPortConfig()
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Errorf("Config %#02x != %#02x", after, before)
	}
}

func TestDev_SetPinPolarity(t *testing.T) {
	dev, f := newFake(t)
	f.regs[Polarity] = 0x01
	if err := dev.SetPinPolarity(7, Inverted); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetPinPolarity(0, Normal); err != nil {
		t.Fatal(err)
	}
	if v, _ := dev.ReadPortPolarity(); v != 0x80 {
		t.Errorf("Polarity = %#02x", v)
	}
}

func TestDev_ReadPinInput(t *testing.T) {
	dev, f := newFake(t)
	f.pins = 0x22
	for pin := uint8(0); pin < NumPins; pin++ {
		want := Low
		if pin == 1 || pin == 5 {
			want = High
		}
		got, err := dev.ReadPinInput(pin)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("pin %d = %s, want %s", pin, got, want)
		}
	}
	if err := dev.SetPinPolarity(1, Inverted); err != nil {
		t.Fatal(err)
	}
	if got, _ := dev.ReadPinInput(1); got != Low {
		t.Errorf("inverted pin 1 = %s", got)
	}
}

func TestDev_invalidPin(t *testing.T) {
	dev, f := newFake(t)
	f.frozen = true
	for _, pin := range []uint8{8, 9, 0x80, 0xFF} {
		ops := map[string]error{
			"SetPinOutput":    dev.SetPinOutput(pin, High),
			"TogglePinOutput": dev.TogglePinOutput(pin),
			"SetPinConfig":    dev.SetPinConfig(pin, Output),
			"SetPinPolarity":  dev.SetPinPolarity(pin, Inverted),
		}
		_, ops["ReadPinInput"] = dev.ReadPinInput(pin)
		for name, err := range ops {
			if !errors.Is(err, ErrInvalidPin) {
				t.Errorf("%s(%d) = %v", name, pin, err)
			}
			if IsBusError(err) {
				t.Errorf("%s(%d) reported a bus error", name, pin)
			}
		}
	}
	if f.count != 0 {
		t.Errorf("%d bus transactions", f.count)
	}
}

func TestDev_mirrorScenario(t *testing.T) {
	f := &fakeChip{t: t, mirror: true}
	dev, err := New(f, 0x20)
	if err != nil {
		t.Fatal(err)
	}
	defer dev.Close()
	if f.regs != [4]uint8{0x00, 0x00, 0x00, 0xFF} {
		t.Fatalf("registers after reset: % x", f.regs)
	}
	if err := dev.SetPinOutput(0, High); err != nil {
		t.Fatal(err)
	}
	// Still an input: the latch is not visible on the pin.
	if l, err := dev.ReadPinInput(0); err != nil || l != Low {
		t.Fatalf("ReadPinInput(0) = %s, %v", l, err)
	}
	if err := dev.SetPinConfig(0, Output); err != nil {
		t.Fatal(err)
	}
	if l, err := dev.ReadPinInput(0); err != nil || l != High {
		t.Fatalf("ReadPinInput(0) = %s, %v", l, err)
	}
}

func TestDev_busErrors(t *testing.T) {
	tests := []struct {
		name   string
		failAt int
		op     func(d *Dev) error
		op2    string
		// count is the number of transactions issued.
		count int
	}{
		{"rmw read fails", 1, func(d *Dev) error { return d.SetPinOutput(2, High) }, "read", 1},
		{"rmw write fails", 2, func(d *Dev) error { return d.SetPinConfig(2, Output) }, "write", 2},
		{"toggle read fails", 1, func(d *Dev) error { return d.TogglePinOutput(0) }, "read", 1},
		{"port write fails", 1, func(d *Dev) error { return d.WriteOutputPort(1) }, "write", 1},
		{"pin read fails", 1, func(d *Dev) error { _, err := d.ReadPinInput(4); return err }, "read", 1},
		{"dump fails", 2, func(d *Dev) error { _, err := d.Dump(); return err }, "read", 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dev, f := newFake(t)
			f.failAt = tc.failAt
			regs := f.regs
			err := tc.op(dev)
			var busErr *BusError
			if !errors.As(err, &busErr) {
				t.Fatalf("got %v", err)
			}
			if busErr.Op != tc.op2 || busErr.Addr != DefaultAddress {
				t.Errorf("got %+v", busErr)
			}
			if !errors.Is(err, errBus) {
				t.Errorf("transport error lost: %v", err)
			}
			if f.count != tc.count {
				t.Errorf("%d transactions, want %d", f.count, tc.count)
			}
			if f.regs != regs {
				t.Errorf("registers changed: % x", f.regs)
			}
		})
	}
}

func TestDev_SetAddress(t *testing.T) {
	dev, f := newFake(t)
	dev.SetAddress(Addr101)
	if f.count != 0 {
		t.Fatal("SetAddress must not touch the bus")
	}
	if dev.Address() != 0x25 {
		t.Fatalf("Address() = %#x", dev.Address())
	}
	if _, err := dev.ReadInputPort(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]uint16{0x25}, f.addrs); diff != "" {
		t.Errorf("addresses (-want +got):\n%s", diff)
	}
}

func TestDev_Halt(t *testing.T) {
	dev, f := newFake(t)
	f.regs[Config] = 0x00
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if f.regs[Config] != AllInputs {
		t.Errorf("Config = %#02x", f.regs[Config])
	}
}

func TestParseRegister(t *testing.T) {
	for _, r := range Registers {
		got, err := ParseRegister(r.Addr())
		if err != nil || got != r {
			t.Errorf("ParseRegister(%d) = %s, %v", r.Addr(), got, err)
		}
	}
	if _, err := ParseRegister(4); !errors.Is(err, ErrInvalidRegister) {
		t.Errorf("ParseRegister(4) = %v", err)
	}
	if s := Register(9).String(); s != "Register(0x9)" {
		t.Errorf("String() = %q", s)
	}
	if InputPort.Writable() || !Config.Writable() {
		t.Error("Writable()")
	}
}
