// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

/*
#include <stdlib.h>
#include <string.h>
#include "tca9534_types.h"

typedef struct {
	uint8_t regs[4];
	uint8_t last_addr;
	int calls;
	int fail;
	uint8_t value;
	tca9534_pin_level_t level;
} fake_chip_t;

static int fake_write(void *ctx, uint8_t addr, const uint8_t *data, size_t len) {
	fake_chip_t *c = ctx;
	c->calls++;
	c->last_addr = addr;
	if (c->fail) {
		return -1;
	}
	if (len == 2 && data[0] > 0 && data[0] < 4) {
		c->regs[data[0]] = data[1];
	}
	return 0;
}

static int fake_read(void *ctx, uint8_t addr, uint8_t *data, size_t len) {
	fake_chip_t *c = ctx;
	c->calls++;
	c->last_addr = addr;
	if (c->fail) {
		return -1;
	}
	memset(data, 0, len);
	return 0;
}

static int fake_write_read(void *ctx, uint8_t addr, const uint8_t *wr, size_t wr_len, uint8_t *rd, size_t rd_len) {
	fake_chip_t *c = ctx;
	c->calls++;
	c->last_addr = addr;
	if (c->fail || wr_len != 1 || rd_len != 1) {
		return -1;
	}
	rd[0] = c->regs[wr[0] & 3];
	return 0;
}

static void fake_ops_fill(tca9534_i2c_ops_t *ops) {
	ops->write = fake_write;
	ops->read = fake_read;
	ops->write_read = fake_write_read;
}
*/
import "C"

import "unsafe"

// fakeBus is a register file in C memory with its callback table and a
// handle, as a C caller would set them up. The tests of the exported
// functions drive it; cgo cannot be used from _test.go files.
type fakeBus struct {
	chip   *C.fake_chip_t
	ops    *C.tca9534_i2c_ops_t
	handle *C.tca9534_handle_t
}

func newFakeBus() *fakeBus {
	b := &fakeBus{
		chip:   (*C.fake_chip_t)(C.calloc(1, C.sizeof_fake_chip_t)),
		ops:    (*C.tca9534_i2c_ops_t)(C.calloc(1, C.sizeof_tca9534_i2c_ops_t)),
		handle: (*C.tca9534_handle_t)(C.calloc(1, C.sizeof_tca9534_handle_t)),
	}
	C.fake_ops_fill(b.ops)
	return b
}

func (b *fakeBus) free() {
	C.free(unsafe.Pointer(b.chip))
	C.free(unsafe.Pointer(b.ops))
	C.free(unsafe.Pointer(b.handle))
}

func (b *fakeBus) ctx() unsafe.Pointer {
	return unsafe.Pointer(b.chip)
}

func (b *fakeBus) reg(r int) uint8 {
	return uint8(b.chip.regs[r])
}

func (b *fakeBus) setReg(r int, v uint8) {
	b.chip.regs[r] = C.uint8_t(v)
}

func (b *fakeBus) calls() int {
	return int(b.chip.calls)
}

func (b *fakeBus) resetCalls() {
	b.chip.calls = 0
}

func (b *fakeBus) lastAddr() uint8 {
	return uint8(b.chip.last_addr)
}

func (b *fakeBus) setFail(fail bool) {
	b.chip.fail = 0
	if fail {
		b.chip.fail = 1
	}
}

// clearWrite sets the write entry of the callback table to NULL.
func (b *fakeBus) clearWrite() {
	b.ops.write = nil
}

// clearOps sets the handle's ops pointer to NULL.
func (b *fakeBus) clearOps() {
	b.handle.ops = nil
}

// scribble fills the handle with garbage, like an uninitialized stack
// variable.
func (b *fakeBus) scribble() {
	C.memset(unsafe.Pointer(b.handle), 0xA5, C.sizeof_tca9534_handle_t)
}

// valuePtr and levelPtr are output arguments in C memory.
func (b *fakeBus) valuePtr() *C.uint8_t {
	return &b.chip.value
}

func (b *fakeBus) value() uint8 {
	return uint8(b.chip.value)
}

func (b *fakeBus) levelPtr() *C.tca9534_pin_level_t {
	return &b.chip.level
}

func (b *fakeBus) level() int {
	return int(b.chip.level)
}

// address reads the address field of the handle.
func (b *fakeBus) address() uint8 {
	return uint8(b.handle.address)
}

// setCtx replaces the handle's transport context.
func (b *fakeBus) setCtx(ctx unsafe.Pointer) {
	b.handle.transport_ctx = ctx
}
