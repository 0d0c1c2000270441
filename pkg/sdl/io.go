package sdl

import (
	"context"
	"fmt"
	"time"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/display"
	"github.com/mnafees/chopper/v2/internal/keypad"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// IO is the input/output abstraction layer for the VM. It is the render
// target of the VM and feeds SDL keyboard events into it.
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface
	logger  *log.Logger
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(logger *log.Logger) *IO {
	return &IO{
		logger: logger,
	}
}

// SetupWindow initialises and sets up the main SDL window
func (io *IO) SetupWindow(title string, pixelSize int) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(display.ScreenWidth*pixelSize), int32(display.ScreenHeight*pixelSize), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	return io.surface.FillRect(nil, screenColor)
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.window != nil {
		_ = io.window.Destroy()
	}
	sdl.Quit()
}

// Clear fills the window surface with the screen color
func (io *IO) Clear() {
	if io.surface == nil {
		return
	}
	_ = io.surface.FillRect(nil, screenColor)
}

// Size returns the window surface size, zero before SetupWindow
func (io *IO) Size() (int, int) {
	if io.surface == nil {
		return 0, 0
	}
	return int(io.surface.W), int(io.surface.H)
}

// FillRect draws one scaled CHIP-8 pixel
func (io *IO) FillRect(x, y, w, h int, color display.Color) {
	if io.surface == nil || w <= 0 || h <= 0 {
		return
	}
	c := uint32(screenColor)
	if color == display.White {
		c = spriteColor
	}
	rect := &sdl.Rect{X: int32(x), Y: int32(y), W: int32(w), H: int32(h)}
	_ = io.surface.FillRect(rect, c)
}

// Present copies the surface to the window
func (io *IO) Present() {
	if io.window == nil {
		return
	}
	_ = io.window.UpdateSurface()
}

// Loop is the main application loop. It ticks the VM every interval until
// the window is closed, Escape is pressed or ctx is cancelled.
func (io *IO) Loop(ctx context.Context, vm *internal.C8VM, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sound := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch t := event.(type) {
			case *sdl.KeyboardEvent:
				if t.GetType() != sdl.KEYDOWN {
					continue
				}
				if t.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
					return nil
				}
				if sym, ok := keymap(t.Keysym.Scancode); ok {
					vm.PushKey(sym)
				}
			case *sdl.QuitEvent:
				return nil
			}
		}

		if err := vm.Tick(); err != nil {
			return err
		}

		if active := vm.SoundActive(); active != sound {
			sound = active
			io.logger.Debug("Buzzer", log.String("state", onOff(active)))
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Maps SDL scancodes onto the keypad symbols, see keypad for the layout
func keymap(code sdl.Scancode) (keypad.Symbol, bool) {
	switch code {
	case sdl.SCANCODE_1:
		return '1', true
	case sdl.SCANCODE_2:
		return '2', true
	case sdl.SCANCODE_3:
		return '3', true
	case sdl.SCANCODE_4:
		return '4', true
	case sdl.SCANCODE_Q:
		return 'q', true
	case sdl.SCANCODE_W:
		return 'w', true
	case sdl.SCANCODE_E:
		return 'e', true
	case sdl.SCANCODE_R:
		return 'r', true
	case sdl.SCANCODE_A:
		return 'a', true
	case sdl.SCANCODE_S:
		return 's', true
	case sdl.SCANCODE_D:
		return 'd', true
	case sdl.SCANCODE_F:
		return 'f', true
	case sdl.SCANCODE_Z:
		return 'z', true
	case sdl.SCANCODE_X:
		return 'x', true
	case sdl.SCANCODE_C:
		return 'c', true
	case sdl.SCANCODE_V:
		return 'v', true
	default:
		return 0, false
	}
}
