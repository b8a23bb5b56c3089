// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/GermanBionicSystems/tca9534/tca9534"
	"github.com/GermanBionicSystems/tca9534/transport"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var (
	// Global flags
	busName   string
	address   uint16
	verbose   bool
	colorMode string
)

var rootCmd = &cobra.Command{
	Use:   "tca9534",
	Short: "TCA9534 I²C I/O expander tool",
	Long: `Read and drive the pins of a TCA9534 (or TCA9534A / TCA9554) I/O expander.

The device is reset when the tool connects to it: all pins become inputs,
output latches low, polarity normal. Each command then applies its own
settings within the same session.

Examples:
  tca9534 dump                          # Show the four registers
  tca9534 read 3                        # Read the level of pin 3
  tca9534 watch --interval 100ms        # Print the input port on change
  tca9534 set --config 0xF0 --output 0x05
  tca9534 blink 0 --count 10            # Toggle pin 0 ten times`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&busName, "bus", "b", "", "I²C bus name (default: first bus)")
	rootCmd.PersistentFlags().Uint16VarP(&address, "addr", "a", tca9534.DefaultAddress, "device address")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every bus transaction")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "colored pin map: auto, always or never")
}

// openDevice connects to the device selected by the global flags. It is a
// variable so tests can substitute the bus.
var openDevice = func() (*tca9534.Dev, func() error, error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open I²C: %w", err)
	}
	var t tca9534.Transport = &tca9534.BusTransport{Bus: bus}
	if verbose {
		t = transport.NewLogged(t, log.New(os.Stderr, "", log.Lmicroseconds))
	}
	dev, err := tca9534.New(t, address)
	if err != nil {
		_ = bus.Close()
		return nil, nil, err
	}
	return dev, func() error {
		err := dev.Close()
		if err2 := bus.Close(); err == nil {
			err = err2
		}
		return err
	}, nil
}

// withDevice runs fn against a freshly connected device.
func withDevice(fn func(dev *tca9534.Dev) error) error {
	dev, closer, err := openDevice()
	if err != nil {
		return err
	}
	err = fn(dev)
	if err2 := closer(); err == nil {
		err = err2
	}
	return err
}

// output returns the writer for cmd and whether it takes ANSI colors.
func output(cmd *cobra.Command) (io.Writer, bool, error) {
	w := cmd.OutOrStdout()
	switch colorMode {
	case "never":
		return w, false, nil
	case "always":
	case "auto":
		f, ok := w.(*os.File)
		if !ok || !isatty.IsTerminal(f.Fd()) {
			return w, false, nil
		}
	default:
		return nil, false, fmt.Errorf("invalid --color %q", colorMode)
	}
	if w == io.Writer(os.Stdout) {
		w = colorable.NewColorableStdout()
	}
	return w, true, nil
}
