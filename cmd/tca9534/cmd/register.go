// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/tca9534/tca9534"
	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write <pin> <high|low>",
	Short: "Drive a pin as output",
	Long: `Latch the level into the output register, then make the pin an
output. The latch is written first so the pin never glitches.`,
	Args: cobra.ExactArgs(2),
	RunE: runWrite,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <pin>",
	Short: "Invert the output latch of a pin and make it an output",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

var configCmd = &cobra.Command{
	Use:   "config <pin> <in|out>",
	Short: "Set the direction of a pin",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfig,
}

var polarityCmd = &cobra.Command{
	Use:   "polarity <pin> <normal|inverted>",
	Short: "Set the input polarity of a pin",
	Args:  cobra.ExactArgs(2),
	RunE:  runPolarity,
}

var portCmd = &cobra.Command{
	Use:   "port <register> [value]",
	Short: "Read or write a whole register",
	Long: `Read a register, or write value to it. The register is given by
name (input, output, polarity, config) or by address (0-3).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPort,
}

func init() {
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(polarityCmd)
	rootCmd.AddCommand(portCmd)
}

func parseLevel(s string) (tca9534.PinLevel, error) {
	switch strings.ToLower(s) {
	case "high", "h", "1":
		return tca9534.High, nil
	case "low", "l", "0":
		return tca9534.Low, nil
	}
	return 0, fmt.Errorf("invalid level %q: must be high or low", s)
}

func parseConfig(s string) (tca9534.PinConfig, error) {
	switch strings.ToLower(s) {
	case "in", "input":
		return tca9534.Input, nil
	case "out", "output":
		return tca9534.Output, nil
	}
	return 0, fmt.Errorf("invalid direction %q: must be in or out", s)
}

func parsePolarity(s string) (tca9534.PinPolarity, error) {
	switch strings.ToLower(s) {
	case "normal":
		return tca9534.Normal, nil
	case "inverted", "invert":
		return tca9534.Inverted, nil
	}
	return 0, fmt.Errorf("invalid polarity %q: must be normal or inverted", s)
}

func parseRegister(s string) (tca9534.Register, error) {
	switch strings.ToLower(s) {
	case "input":
		return tca9534.InputPort, nil
	case "output":
		return tca9534.OutputPort, nil
	case "polarity":
		return tca9534.Polarity, nil
	case "config":
		return tca9534.Config, nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid register %q", s)
	}
	return tca9534.ParseRegister(uint8(n))
}

func runWrite(cmd *cobra.Command, args []string) error {
	pin, err := parsePin(args[0])
	if err != nil {
		return err
	}
	l, err := parseLevel(args[1])
	if err != nil {
		return err
	}
	return withDevice(func(dev *tca9534.Dev) error {
		if err := dev.SetPinOutput(pin, l); err != nil {
			return err
		}
		return dev.SetPinConfig(pin, tca9534.Output)
	})
}

func runToggle(cmd *cobra.Command, args []string) error {
	pin, err := parsePin(args[0])
	if err != nil {
		return err
	}
	return withDevice(func(dev *tca9534.Dev) error {
		if err := dev.TogglePinOutput(pin); err != nil {
			return err
		}
		return dev.SetPinConfig(pin, tca9534.Output)
	})
}

func runConfig(cmd *cobra.Command, args []string) error {
	pin, err := parsePin(args[0])
	if err != nil {
		return err
	}
	c, err := parseConfig(args[1])
	if err != nil {
		return err
	}
	return withDevice(func(dev *tca9534.Dev) error {
		return dev.SetPinConfig(pin, c)
	})
}

func runPolarity(cmd *cobra.Command, args []string) error {
	pin, err := parsePin(args[0])
	if err != nil {
		return err
	}
	p, err := parsePolarity(args[1])
	if err != nil {
		return err
	}
	return withDevice(func(dev *tca9534.Dev) error {
		if err := dev.SetPinPolarity(pin, p); err != nil {
			return err
		}
		l, err := dev.ReadPinInput(pin)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pin %d: %s\n", pin, l)
		return nil
	})
}

func runPort(cmd *cobra.Command, args []string) error {
	reg, err := parseRegister(args[0])
	if err != nil {
		return err
	}
	var value uint8
	if len(args) == 2 {
		if !reg.Writable() {
			return fmt.Errorf("register %s is read-only", reg)
		}
		n, err := strconv.ParseUint(args[1], 0, 8)
		if err != nil {
			return fmt.Errorf("invalid value %q", args[1])
		}
		value = uint8(n)
	}
	return withDevice(func(dev *tca9534.Dev) error {
		if len(args) == 2 {
			if err := dev.WriteRegister(reg, value); err != nil {
				return err
			}
		}
		v, err := dev.ReadRegister(reg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: 0x%02X\n", reg, v)
		return nil
	})
}
