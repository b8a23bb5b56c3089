// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/GermanBionicSystems/tca9534/tca9534"
	"github.com/maruel/ansi256"
)

var (
	colorHigh = color.NRGBA{0, 200, 0, 255}
	colorLow  = color.NRGBA{48, 48, 48, 255}
)

// bitRow formats the 8 bits of v, pin 7 first, using one for set bits and
// zero for cleared ones.
func bitRow(buf *bytes.Buffer, v uint8, one, zero string, colored bool) {
	for pin := tca9534.NumPins - 1; pin >= 0; pin-- {
		set := v&(1<<uint(pin)) != 0
		s, c := zero, colorLow
		if set {
			s, c = one, colorHigh
		}
		if colored {
			buf.WriteString(ansi256.Default.Block(c))
			buf.WriteString("\033[0m")
		}
		buf.WriteString(" ")
		buf.WriteString(s)
	}
	buf.WriteString("\n")
}

// renderDump writes the register map as a table of pins.
func renderDump(w io.Writer, d tca9534.RegisterDump, colored bool) error {
	var buf bytes.Buffer
	buf.WriteString("pin     ")
	for pin := tca9534.NumPins - 1; pin >= 0; pin-- {
		fmt.Fprintf(&buf, " %d", pin)
	}
	buf.WriteString("\n")
	rows := []struct {
		name      string
		v         uint8
		one, zero string
	}{
		{"input   ", d.InputPort, "1", "0"},
		{"output  ", d.OutputPort, "1", "0"},
		{"polarity", d.Polarity, "I", "N"},
		{"config  ", d.Config, "I", "O"},
	}
	for _, r := range rows {
		buf.WriteString(r.name)
		bitRow(&buf, r.v, r.one, r.zero, colored && r.one == "1")
	}
	_, err := buf.WriteTo(w)
	return err
}

// renderInput writes one line with the input port levels.
func renderInput(w io.Writer, v uint8, colored bool) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "0x%02X  ", v)
	bitRow(&buf, v, "1", "0", colored)
	_, err := buf.WriteTo(w)
	return err
}
