// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tca9534 is the root of the TCA9534 I/O expander module. It holds no
// code.
//
// The driver lives in the tca9534 subpackage. Package transport adapts other
// I²C stacks to it, package capi exposes it to foreign callers and
// cmd/libtca9534 builds that surface as a C shared library. cmd/tca9534 is a
// command line tool.
package tca9534
