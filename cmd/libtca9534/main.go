// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// libtca9534 exports the TCA9534 driver as a C library.
//
// Build it with:
//
//	go build -buildmode=c-shared -o libtca9534.so ./cmd/libtca9534
//
// which also writes libtca9534.h; the types are in tca9534_types.h. The
// handle struct may start out uninitialized: tca9534_init overwrites it.
// tca9534_deinit releases the driver bound to it.
//
// The driver state lives on the Go side, keyed by the handle's address, so
// the handle must not move between tca9534_init and tca9534_deinit. The
// address, transport context and ops table are read from the handle on every
// call, and a NULL table or callback is reported as TCA9534_ERROR_NULL_PTR
// without calling any of them.
package main

/*
#include "tca9534_types.h"

static inline int tca9534_call_write(void *f, void *ctx, uint8_t addr, const uint8_t *data, size_t len) {
	return ((int (*)(void *, uint8_t, const uint8_t *, size_t))f)(ctx, addr, data, len);
}

static inline int tca9534_call_read(void *f, void *ctx, uint8_t addr, uint8_t *data, size_t len) {
	return ((int (*)(void *, uint8_t, uint8_t *, size_t))f)(ctx, addr, data, len);
}

static inline int tca9534_call_write_read(void *f, void *ctx, uint8_t addr, const uint8_t *wr, size_t wr_len, uint8_t *rd, size_t rd_len) {
	return ((int (*)(void *, uint8_t, const uint8_t *, size_t, uint8_t *, size_t))f)(ctx, addr, wr, wr_len, rd, rd_len);
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/GermanBionicSystems/tca9534/capi"
)

func main() {}

var (
	mu sync.Mutex
	// handles maps each initialized C handle to its driver.
	handles = map[*C.tca9534_handle_t]*capi.Handle{}
)

func bytesPtr(b []byte) *C.uint8_t {
	if len(b) == 0 {
		return nil
	}
	return (*C.uint8_t)(unsafe.Pointer(&b[0]))
}

// opsFrom wraps the C callback table as it is now. A NULL entry stays nil so
// that capi reports it before any bus access.
func opsFrom(c *C.tca9534_i2c_ops_t) *capi.Ops {
	if c == nil {
		return nil
	}
	ops := &capi.Ops{}
	if fn := unsafe.Pointer(c.write); fn != nil {
		ops.Write = func(ctx unsafe.Pointer, addr uint8, w []byte) int32 {
			return int32(C.tca9534_call_write(fn, ctx, C.uint8_t(addr), bytesPtr(w), C.size_t(len(w))))
		}
	}
	if fn := unsafe.Pointer(c.read); fn != nil {
		ops.Read = func(ctx unsafe.Pointer, addr uint8, r []byte) int32 {
			return int32(C.tca9534_call_read(fn, ctx, C.uint8_t(addr), bytesPtr(r), C.size_t(len(r))))
		}
	}
	if fn := unsafe.Pointer(c.write_read); fn != nil {
		ops.WriteRead = func(ctx unsafe.Pointer, addr uint8, w, r []byte) int32 {
			return int32(C.tca9534_call_write_read(fn, ctx, C.uint8_t(addr), bytesPtr(w), C.size_t(len(w)), bytesPtr(r), C.size_t(len(r))))
		}
	}
	return ops
}

// handle returns the driver bound to h, refreshed from the C struct. A handle
// that was never initialized maps to an unbound capi.Handle, which reports
// InitFailed.
func handle(h *C.tca9534_handle_t) *capi.Handle {
	if h == nil {
		return nil
	}
	mu.Lock()
	g := handles[h]
	mu.Unlock()
	if g == nil {
		return &capi.Handle{Address: uint8(h.address)}
	}
	g.Address = uint8(h.address)
	g.Ctx = h.transport_ctx
	g.Ops = opsFrom(h.ops)
	return g
}

// release unbinds h and releases its driver, if any.
func release(h *C.tca9534_handle_t) {
	mu.Lock()
	g := handles[h]
	delete(handles, h)
	mu.Unlock()
	if g != nil {
		capi.Deinit(g)
	}
}

func ret(s capi.Status) C.tca9534_error_t {
	return C.tca9534_error_t(s)
}

//export tca9534_init
func tca9534_init(h *C.tca9534_handle_t, address C.uint8_t, ctx unsafe.Pointer, ops *C.tca9534_i2c_ops_t) C.tca9534_error_t {
	if h == nil || ops == nil {
		return ret(capi.NullPointer)
	}
	release(h)
	h.address = address
	h.transport_ctx = ctx
	h.ops = ops
	g := &capi.Handle{}
	if s := capi.Init(g, uint8(address), ctx, opsFrom(ops)); s != capi.Ok {
		return ret(s)
	}
	mu.Lock()
	handles[h] = g
	mu.Unlock()
	return ret(capi.Ok)
}

//export tca9534_init_default
func tca9534_init_default(h *C.tca9534_handle_t, ctx unsafe.Pointer, ops *C.tca9534_i2c_ops_t) C.tca9534_error_t {
	return tca9534_init(h, C.TCA9534_ADDR_000, ctx, ops)
}

//export tca9534_deinit
func tca9534_deinit(h *C.tca9534_handle_t) C.tca9534_error_t {
	if h == nil {
		return ret(capi.NullPointer)
	}
	release(h)
	return ret(capi.Ok)
}

//export tca9534_read_register
func tca9534_read_register(h *C.tca9534_handle_t, regAddr C.uint8_t, value *C.uint8_t) C.tca9534_error_t {
	return ret(capi.ReadRegister(handle(h), uint8(regAddr), (*uint8)(value)))
}

//export tca9534_write_register
func tca9534_write_register(h *C.tca9534_handle_t, regAddr C.uint8_t, value C.uint8_t) C.tca9534_error_t {
	return ret(capi.WriteRegister(handle(h), uint8(regAddr), uint8(value)))
}

//export tca9534_read_input_port
func tca9534_read_input_port(h *C.tca9534_handle_t, value *C.uint8_t) C.tca9534_error_t {
	return ret(capi.ReadInputPort(handle(h), (*uint8)(value)))
}

//export tca9534_write_output_port
func tca9534_write_output_port(h *C.tca9534_handle_t, value C.uint8_t) C.tca9534_error_t {
	return ret(capi.WriteOutputPort(handle(h), uint8(value)))
}

//export tca9534_read_output_port
func tca9534_read_output_port(h *C.tca9534_handle_t, value *C.uint8_t) C.tca9534_error_t {
	return ret(capi.ReadOutputPort(handle(h), (*uint8)(value)))
}

//export tca9534_read_pin_input
func tca9534_read_pin_input(h *C.tca9534_handle_t, pin C.uint8_t, level *C.tca9534_pin_level_t) C.tca9534_error_t {
	if level == nil {
		return ret(capi.ReadPinInput(handle(h), uint8(pin), nil))
	}
	var l capi.PinLevel
	s := capi.ReadPinInput(handle(h), uint8(pin), &l)
	if s == capi.Ok {
		*level = C.tca9534_pin_level_t(l)
	}
	return ret(s)
}

//export tca9534_set_pin_output
func tca9534_set_pin_output(h *C.tca9534_handle_t, pin C.uint8_t, level C.tca9534_pin_level_t) C.tca9534_error_t {
	return ret(capi.SetPinOutput(handle(h), uint8(pin), capi.PinLevel(level)))
}

//export tca9534_toggle_pin_output
func tca9534_toggle_pin_output(h *C.tca9534_handle_t, pin C.uint8_t) C.tca9534_error_t {
	return ret(capi.TogglePinOutput(handle(h), uint8(pin)))
}

//export tca9534_set_pin_config
func tca9534_set_pin_config(h *C.tca9534_handle_t, pin C.uint8_t, config C.tca9534_pin_config_t) C.tca9534_error_t {
	return ret(capi.SetPinConfig(handle(h), uint8(pin), capi.PinConfig(config)))
}

//export tca9534_set_port_config
func tca9534_set_port_config(h *C.tca9534_handle_t, config C.uint8_t) C.tca9534_error_t {
	return ret(capi.SetPortConfig(handle(h), uint8(config)))
}

//export tca9534_read_port_config
func tca9534_read_port_config(h *C.tca9534_handle_t, config *C.uint8_t) C.tca9534_error_t {
	return ret(capi.ReadPortConfig(handle(h), (*uint8)(config)))
}

//export tca9534_set_pin_polarity
func tca9534_set_pin_polarity(h *C.tca9534_handle_t, pin C.uint8_t, polarity C.tca9534_pin_polarity_t) C.tca9534_error_t {
	return ret(capi.SetPinPolarity(handle(h), uint8(pin), capi.PinPolarity(polarity)))
}

//export tca9534_set_port_polarity
func tca9534_set_port_polarity(h *C.tca9534_handle_t, polarity C.uint8_t) C.tca9534_error_t {
	return ret(capi.SetPortPolarity(handle(h), uint8(polarity)))
}

//export tca9534_read_port_polarity
func tca9534_read_port_polarity(h *C.tca9534_handle_t, polarity *C.uint8_t) C.tca9534_error_t {
	return ret(capi.ReadPortPolarity(handle(h), (*uint8)(polarity)))
}

//export tca9534_set_address
func tca9534_set_address(h *C.tca9534_handle_t, address C.uint8_t) {
	if h != nil {
		h.address = address
	}
}

//export tca9534_get_address
func tca9534_get_address(h *C.tca9534_handle_t) C.uint8_t {
	if h == nil {
		return 0
	}
	return h.address
}
