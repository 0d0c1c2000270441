// Package main runs a CHIP-8 program for a fixed number of cycles without a
// window and optionally saves the final frame as PNG.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/config"
	"github.com/mnafees/chopper/v2/internal/display"
	"github.com/mnafees/chopper/v2/internal/keypad"
	"github.com/mnafees/chopper/v2/pkg/headless"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	ctx := app.Context()

	opts, err := config.ParseFlags("chopper-headless", os.Args[1:], true)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stdout)
		}
		config.CreateLogger(false, false).Error("Invalid arguments", log.Err(err))
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	target := headless.New(display.ScreenWidth, display.ScreenHeight, headless.DefaultPalette)
	vm := internal.NewC8VM(target, opts.VMOptions(logger)...)
	if err := vm.LoadProgram(opts.Program); err != nil {
		logger.Error("Loading program failed", log.Err(err))
		os.Exit(1)
	}

	keys, _ := opts.KeyIndices()
	for _, key := range keys {
		sym, _ := keypad.SymbolFor(key)
		vm.PushKey(sym)
	}

	err = headless.Run(ctx, vm, opts.Cycles)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Operation cancelled")
		return
	case err != nil:
		logger.Error("Emulation stopped", log.Err(err))
	}

	logger.Info("Finished",
		log.Stringer("state", vm.State()),
		log.Uint16("pc", vm.PC()),
		log.Int("frames", target.Frames()))

	if opts.Screenshot != "" {
		if err := target.SaveScreenshot(opts.Screenshot, opts.Scale); err != nil {
			logger.Error("Saving screenshot failed", log.Err(err))
			os.Exit(1)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}
