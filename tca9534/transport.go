// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tca9534

import "context"

// Transport is a blocking I²C bus.
//
// Each method is a single bus transaction and returns once the transaction
// completed or failed. Calls are not pipelined.
type Transport interface {
	// Write sends w to the device at addr.
	Write(addr uint16, w []byte) error
	// Read fills r from the device at addr.
	Read(addr uint16, r []byte) error
	// WriteRead sends w then reads into r without releasing the bus in
	// between (repeated start), so the register pointer set by w is the one
	// read from.
	WriteRead(addr uint16, w, r []byte) error
}

// ContextTransport is the suspendable form of Transport. A call may park the
// calling goroutine until the transaction completes.
//
// Cancellation and deadlines carried by ctx are the transport's to honor; a
// cancelled call must return an error and leave the bus usable for the next
// call.
type ContextTransport interface {
	Write(ctx context.Context, addr uint16, w []byte) error
	Read(ctx context.Context, addr uint16, r []byte) error
	WriteRead(ctx context.Context, addr uint16, w, r []byte) error
}

// Async exposes a blocking Transport as a ContextTransport.
//
// The context is checked before each transaction starts. A transaction that
// already started is never abandoned halfway.
func Async(t Transport) ContextTransport {
	if b, ok := t.(*blocking); ok {
		return b.t
	}
	return &async{t: t}
}

// Blocking exposes a ContextTransport as a Transport, using
// context.Background for every call.
func Blocking(t ContextTransport) Transport {
	if a, ok := t.(*async); ok {
		return a.t
	}
	return &blocking{t: t}
}

type async struct {
	t Transport
}

func (a *async) Write(ctx context.Context, addr uint16, w []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.t.Write(addr, w)
}

func (a *async) Read(ctx context.Context, addr uint16, r []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.t.Read(addr, r)
}

func (a *async) WriteRead(ctx context.Context, addr uint16, w, r []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.t.WriteRead(addr, w, r)
}

type blocking struct {
	t ContextTransport
}

func (b *blocking) Write(addr uint16, w []byte) error {
	return b.t.Write(context.Background(), addr, w)
}

func (b *blocking) Read(addr uint16, r []byte) error {
	return b.t.Read(context.Background(), addr, r)
}

func (b *blocking) WriteRead(addr uint16, w, r []byte) error {
	return b.t.WriteRead(context.Background(), addr, w, r)
}
