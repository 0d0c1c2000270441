// Package main runs a CHIP-8 program in an SDL window.
package main

import (
	"errors"
	"os"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/config"
	"github.com/mnafees/chopper/v2/pkg/sdl"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	ctx := app.Context()

	opts, err := config.ParseFlags("chopper", os.Args[1:], false)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stdout)
		}
		config.CreateLogger(false, false).Error("Invalid arguments", log.Err(err))
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	io := sdl.NewIO(logger)
	vm := internal.NewC8VM(io, opts.VMOptions(logger)...)
	if err := vm.LoadProgram(opts.Program); err != nil {
		logger.Error("Loading program failed", log.Err(err))
		os.Exit(1)
	}

	if err := io.SetupWindow("Chopper | CHIP-8 Emulator", opts.Scale); err != nil {
		io.Destroy()
		logger.Error("Creating window failed", log.Err(err))
		os.Exit(1)
	}
	err = io.Loop(ctx, vm, opts.TickInterval())
	io.Destroy()
	if err != nil {
		logger.Error("Emulation stopped", log.Err(err))
		os.Exit(1)
	}
}
