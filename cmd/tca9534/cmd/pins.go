// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/GermanBionicSystems/tca9534/tca9534"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Show all four registers",
	Args:  cobra.NoArgs,
	RunE:  runDump,
}

var readCmd = &cobra.Command{
	Use:   "read [pin]",
	Short: "Read the input port, or the level of one pin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRead,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the input port and print it when it changes",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Write the config, polarity and output registers",
	Long: `Write whole-port values. Registers are written in the order
output, polarity, config so that a pin turned into an output already
drives the requested level.`,
	Args: cobra.NoArgs,
	RunE: runSet,
}

var blinkCmd = &cobra.Command{
	Use:   "blink <pin>",
	Short: "Configure a pin as output and toggle it",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlink,
}

var (
	watchInterval time.Duration
	watchCount    int

	setConfig   uint8
	setOutput   uint8
	setPolarity uint8

	blinkInterval time.Duration
	blinkCount    int
)

func init() {
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(blinkCmd)

	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 50*time.Millisecond, "polling interval")
	watchCmd.Flags().IntVarP(&watchCount, "count", "n", 0, "stop after this many changes (0: until interrupted)")

	setCmd.Flags().Uint8VarP(&setConfig, "config", "c", tca9534.AllInputs, "direction register (1 = input)")
	setCmd.Flags().Uint8VarP(&setOutput, "output", "o", tca9534.AllOutputsLow, "output latches")
	setCmd.Flags().Uint8VarP(&setPolarity, "polarity", "p", tca9534.AllNormalPolarity, "polarity inversion (1 = inverted)")

	blinkCmd.Flags().DurationVarP(&blinkInterval, "interval", "i", 500*time.Millisecond, "time between toggles")
	blinkCmd.Flags().IntVarP(&blinkCount, "count", "n", 10, "number of toggles")
}

func parsePin(s string) (uint8, error) {
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil || n >= tca9534.NumPins {
		return 0, fmt.Errorf("invalid pin %q: must be 0-%d", s, tca9534.NumPins-1)
	}
	return uint8(n), nil
}

func runDump(cmd *cobra.Command, args []string) error {
	w, colored, err := output(cmd)
	if err != nil {
		return err
	}
	return withDevice(func(dev *tca9534.Dev) error {
		d, err := dev.Dump()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", dev)
		return renderDump(w, d, colored)
	})
}

func runRead(cmd *cobra.Command, args []string) error {
	w, colored, err := output(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		pin, err := parsePin(args[0])
		if err != nil {
			return err
		}
		return withDevice(func(dev *tca9534.Dev) error {
			l, err := dev.ReadPinInput(pin)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "pin %d: %s\n", pin, l)
			return nil
		})
	}
	return withDevice(func(dev *tca9534.Dev) error {
		v, err := dev.ReadInputPort()
		if err != nil {
			return err
		}
		return renderInput(w, v, colored)
	})
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchInterval <= 0 {
		return fmt.Errorf("invalid --interval %s", watchInterval)
	}
	w, colored, err := output(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return withDevice(func(dev *tca9534.Dev) error {
		return watch(ctx, dev, watchInterval, watchCount, func(v uint8) error {
			return renderInput(w, v, colored)
		})
	})
}

// watch calls emit with the first input port value and then with every
// value that differs from the previous one. It returns after count emits
// when count is positive, or when ctx is done.
func watch(ctx context.Context, dev *tca9534.Dev, interval time.Duration, count int, emit func(uint8) error) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	last, n := -1, 0
	for {
		v, err := dev.ReadInputPort()
		if err != nil {
			return err
		}
		if int(v) != last {
			last = int(v)
			if err := emit(v); err != nil {
				return err
			}
			if n++; count > 0 && n >= count {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	w, colored, err := output(cmd)
	if err != nil {
		return err
	}
	return withDevice(func(dev *tca9534.Dev) error {
		if err := dev.WriteOutputPort(setOutput); err != nil {
			return err
		}
		if err := dev.SetPortPolarity(setPolarity); err != nil {
			return err
		}
		if err := dev.SetPortConfig(setConfig); err != nil {
			return err
		}
		d, err := dev.Dump()
		if err != nil {
			return err
		}
		return renderDump(w, d, colored)
	})
}

func runBlink(cmd *cobra.Command, args []string) error {
	pin, err := parsePin(args[0])
	if err != nil {
		return err
	}
	if blinkCount < 0 {
		return fmt.Errorf("invalid --count %d", blinkCount)
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return withDevice(func(dev *tca9534.Dev) error {
		return blink(ctx, dev, pin, blinkInterval, blinkCount)
	})
}

// blink drives pin low as an output, then toggles it count times.
func blink(ctx context.Context, dev *tca9534.Dev, pin uint8, interval time.Duration, count int) error {
	if err := dev.SetPinOutput(pin, tca9534.Low); err != nil {
		return err
	}
	if err := dev.SetPinConfig(pin, tca9534.Output); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := dev.TogglePinOutput(pin); err != nil {
			return err
		}
		if i == count-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(interval):
		}
	}
	return nil
}
