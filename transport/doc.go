// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package transport adapts I²C stacks other than periph to
// tca9534.Transport, and provides a logging wrapper for tracing bus traffic.
//
// The periph.io adapter lives in package tca9534 itself
// (tca9534.BusTransport) since periph is the native bus of the driver.
package transport
