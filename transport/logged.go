// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package transport

import (
	"log"

	"github.com/GermanBionicSystems/tca9534/tca9534"
)

// Logged traces every transaction of T to Logger, after it completed.
type Logged struct {
	T      tca9534.Transport
	Logger *log.Logger
}

// NewLogged wraps t. A nil l logs to the standard logger.
func NewLogged(t tca9534.Transport, l *log.Logger) *Logged {
	if l == nil {
		l = log.Default()
	}
	return &Logged{T: t, Logger: l}
}

func (l *Logged) Write(addr uint16, w []byte) error {
	err := l.T.Write(addr, w)
	l.Logger.Printf("i2c 0x%02x W[% x] %s", addr, w, status(err))
	return err
}

func (l *Logged) Read(addr uint16, r []byte) error {
	err := l.T.Read(addr, r)
	l.Logger.Printf("i2c 0x%02x R[% x] %s", addr, r, status(err))
	return err
}

func (l *Logged) WriteRead(addr uint16, w, r []byte) error {
	err := l.T.WriteRead(addr, w, r)
	l.Logger.Printf("i2c 0x%02x W[% x] R[% x] %s", addr, w, r, status(err))
	return err
}

func status(err error) string {
	if err != nil {
		return "err: " + err.Error()
	}
	return "ok"
}

var _ tca9534.Transport = &Logged{}
