package headless

import (
	"context"
	"errors"
	"testing"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/display"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestRunDrawsDigit(t *testing.T) {
	target := New(display.ScreenWidth, display.ScreenHeight, DefaultPalette)
	vm := internal.NewC8VM(target, internal.WithLogger(log.NewTestLogger(t)))
	// ld V0, $7; ld F, V0; drw V1, V1, 5; jp $206
	assert.NoError(t, vm.Load([]byte{0x60, 0x07, 0xF0, 0x29, 0xD1, 0x15, 0x12, 0x06}))

	assert.NoError(t, Run(context.Background(), vm, 10))

	img := target.Image()
	white := DefaultPalette[display.White]
	black := DefaultPalette[display.Black]
	// glyph 7: F0 10 20 40 40
	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(3, 0))
	assert.Equal(t, black, img.RGBAAt(4, 0))
	assert.Equal(t, white, img.RGBAAt(3, 1))
	assert.Equal(t, white, img.RGBAAt(1, 4))
	assert.Equal(t, 10, target.Frames())
}

func TestRunStopsOnFault(t *testing.T) {
	vm := internal.NewC8VM(New(0, 0, DefaultPalette), internal.WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, vm.Load([]byte{0x00, 0xEE}))

	err := Run(context.Background(), vm, 5)
	assert.True(t, errors.Is(err, internal.ErrStackUnderflow))
	assert.Equal(t, internal.Halted, vm.State())
}

func TestRunHonorsContext(t *testing.T) {
	target := New(0, 0, DefaultPalette)
	vm := internal.NewC8VM(target, internal.WithLogger(log.NewTestLogger(t)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, vm, 5)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, target.Frames())
}
