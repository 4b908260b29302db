//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"compass/app"
	"compass/hal"
)

func main() {
	var (
		cfg  app.Config
		head hal.HeadlessConfig
		term hal.TerminalConfig
	)
	flag.BoolVar(&head.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&head.Hz, "hz", 25, "Frame rate in headless and terminal mode.")
	flag.Uint64Var(&head.Ticks, "ticks", 0, "Stop after N frames in headless and terminal mode (0 = run forever).")
	flag.BoolVar(&term.Enabled, "terminal", false, "Preview the face in the terminal.")
	flag.BoolVar(&cfg.Round, "round", false, "Emulate the 180x180 round panel.")
	flag.Func("a", "Needle half-width in pixels.", int32Flag(&cfg.A))
	flag.Func("b", "Needle half-length in pixels.", int32Flag(&cfg.B))
	flag.BoolVar(&cfg.Clock24h, "24h", false, "Show a 24 hour clock.")
	flag.DurationVar(&cfg.Budget, "budget", 0, "Needle frame budget (0 = default).")
	flag.Func("filter", "Ignore heading changes below this many degrees.", int32Flag(&cfg.FilterDeg))
	flag.Func("span", "Field span required to finish calibration.", int32Flag(&cfg.MinSpan))
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	disp := hal.DisplayConfig{Round: cfg.Round}
	newApp := func(h hal.HAL) func() error { return app.New(ctx, h, cfg) }

	var err error
	switch {
	case head.Enabled || term.Enabled:
		if term.Enabled {
			term.Hz, term.Ticks = head.Hz, head.Ticks
			err = hal.RunTerminal(ctx, disp, newApp, term)
		} else {
			err = hal.RunHeadless(ctx, disp, newApp, head)
		}
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	default:
		err = hal.RunWindow(disp, newApp)
	}
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func int32Flag(dst *int32) func(string) error {
	return func(s string) error {
		var v int32
		if _, err := fmt.Sscan(s, &v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}
