// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package capi

import (
	"errors"
	"sync/atomic"
	"unsafe"

	"github.com/GermanBionicSystems/tca9534/tca9534"
)

// WriteFunc sends w to addr. It returns 0 on success.
type WriteFunc func(ctx unsafe.Pointer, addr uint8, w []byte) int32

// ReadFunc fills r from addr. It returns 0 on success.
type ReadFunc func(ctx unsafe.Pointer, addr uint8, r []byte) int32

// WriteReadFunc sends w then reads r in one transaction. It returns 0 on
// success.
type WriteReadFunc func(ctx unsafe.Pointer, addr uint8, w, r []byte) int32

// Ops is the callback table supplied by the embedding environment. All three
// callbacks are required.
type Ops struct {
	Write     WriteFunc
	Read      ReadFunc
	WriteRead WriteReadFunc
}

func (o *Ops) valid() bool {
	return o != nil && o.Write != nil && o.Read != nil && o.WriteRead != nil
}

var (
	// ErrNullCallback is returned when the callback table is missing or
	// incomplete. No callback is invoked in that case.
	ErrNullCallback = errors.New("capi: missing I²C callback")
	// ErrWrite is returned when the write callback reports a failure.
	ErrWrite = errors.New("capi: I²C write failed")
	// ErrRead is returned when the read or write-read callback reports a
	// failure.
	ErrRead = errors.New("capi: I²C read failed")
)

// Transport implements tca9534.Transport on top of an Ops table and the
// opaque context pointer handed back to every callback.
type Transport struct {
	ctx unsafe.Pointer
	ops *Ops
	// h, when set, supplies ctx and ops on every call instead.
	h *Handle
}

// NewTransport returns a Transport. It does not validate ops; every call
// does.
func NewTransport(ctx unsafe.Pointer, ops *Ops) *Transport {
	return &Transport{ctx: ctx, ops: ops}
}

// current returns the context and callbacks to use for this call.
func (t *Transport) current() (unsafe.Pointer, *Ops) {
	if t.h != nil {
		return t.h.Ctx, t.h.Ops
	}
	return t.ctx, t.ops
}

func (t *Transport) Write(addr uint16, w []byte) (err error) {
	ctx, ops := t.current()
	if !ops.valid() {
		return ErrNullCallback
	}
	defer recoverAs(&err, ErrWrite)
	if ops.Write(ctx, uint8(addr), w) != 0 {
		return ErrWrite
	}
	return nil
}

func (t *Transport) Read(addr uint16, r []byte) (err error) {
	ctx, ops := t.current()
	if !ops.valid() {
		return ErrNullCallback
	}
	defer recoverAs(&err, ErrRead)
	if ops.Read(ctx, uint8(addr), r) != 0 {
		return ErrRead
	}
	return nil
}

func (t *Transport) WriteRead(addr uint16, w, r []byte) (err error) {
	ctx, ops := t.current()
	if !ops.valid() {
		return ErrNullCallback
	}
	defer recoverAs(&err, ErrRead)
	if ops.WriteRead(ctx, uint8(addr), w, r) != 0 {
		return ErrRead
	}
	return nil
}

var panicHandler atomic.Value

// SetPanicHandler installs the hook called with the value of a panic raised
// inside a callback. The panic is then reported as a failed transaction. A
// nil f restores the default, which discards the value.
func SetPanicHandler(f func(v any)) {
	if f == nil {
		f = func(any) {}
	}
	panicHandler.Store(f)
}

func recoverAs(err *error, as error) {
	if v := recover(); v != nil {
		if f, ok := panicHandler.Load().(func(any)); ok {
			f(v)
		}
		*err = as
	}
}

var _ tca9534.Transport = &Transport{}
