// Package main runs a CHIP-8 program in an ebiten window.
package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/config"
	"github.com/mnafees/chopper/v2/internal/display"
	"github.com/mnafees/chopper/v2/pkg/desktop"
	"github.com/mnafees/chopper/v2/pkg/headless"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	opts, err := config.ParseFlags("chopper-desktop", os.Args[1:], false)
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage(os.Stdout)
		}
		config.CreateLogger(false, false).Error("Invalid arguments", log.Err(err))
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	width, height := display.ScreenWidth*opts.Scale, display.ScreenHeight*opts.Scale
	target := headless.New(width, height, headless.DefaultPalette)
	vm := internal.NewC8VM(target, opts.VMOptions(logger)...)
	if err := vm.LoadProgram(opts.Program); err != nil {
		logger.Error("Loading program failed", log.Err(err))
		os.Exit(1)
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("Chopper | CHIP-8 Emulator")

	game := desktop.NewGame(vm, target, opts.Hz, logger)
	if err := ebiten.RunGame(game); err != nil {
		logger.Error("Emulation stopped", log.Err(err))
		os.Exit(1)
	}
}
