// Package desktop runs the VM in an ebiten window. Frames are rendered into
// an in-memory headless target and uploaded to the screen once per frame.
package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/keypad"
	"github.com/mnafees/chopper/v2/pkg/headless"
	"github.com/retroenv/retrogolib/log"
)

var keymap = map[ebiten.Key]keypad.Symbol{
	ebiten.KeyDigit1: '1', ebiten.KeyDigit2: '2', ebiten.KeyDigit3: '3', ebiten.KeyDigit4: '4',
	ebiten.KeyQ: 'q', ebiten.KeyW: 'w', ebiten.KeyE: 'e', ebiten.KeyR: 'r',
	ebiten.KeyA: 'a', ebiten.KeyS: 's', ebiten.KeyD: 'd', ebiten.KeyF: 'f',
	ebiten.KeyZ: 'z', ebiten.KeyX: 'x', ebiten.KeyC: 'c', ebiten.KeyV: 'v',
}

// Game implements ebiten.Game for a single VM.
type Game struct {
	vm     *internal.C8VM
	target *headless.Target
	logger *log.Logger

	frame         *ebiten.Image // reused upload buffer
	ticksPerFrame int
	sound         bool
}

// NewGame returns a game ticking vm hz times per second. target must be the
// render target vm was created with.
func NewGame(vm *internal.C8VM, target *headless.Target, hz int, logger *log.Logger) *Game {
	ticks := hz / ebiten.DefaultTPS
	if ticks < 1 {
		ticks = 1
	}
	return &Game{
		vm:            vm,
		target:        target,
		logger:        logger,
		ticksPerFrame: ticks,
	}
}

// Update feeds pressed keys into the VM and runs one frame worth of ticks.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	for key, sym := range keymap {
		if inpututil.IsKeyJustPressed(key) {
			g.vm.PushKey(sym)
		}
	}

	for range g.ticksPerFrame {
		if err := g.vm.Tick(); err != nil {
			return err
		}
	}

	if active := g.vm.SoundActive(); active != g.sound {
		g.sound = active
		if active {
			g.logger.Debug("Buzzer on", log.Uint8("sound_timer", g.vm.SoundTimer()))
		} else {
			g.logger.Debug("Buzzer off")
		}
	}
	return nil
}

// Draw uploads the last rendered frame.
func (g *Game) Draw(screen *ebiten.Image) {
	w, h := g.target.Size()
	if w == 0 || h == 0 {
		return
	}
	if g.frame == nil {
		g.frame = ebiten.NewImage(w, h)
	}
	g.frame.WritePixels(g.target.Image().Pix)
	screen.DrawImage(g.frame, &ebiten.DrawImageOptions{})

	if g.vm.State() == internal.AwaitingKey {
		ebitenutil.DebugPrintAt(screen, "waiting for key", 2, 2)
	}
}

// Layout keeps the logical screen at the target size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.target.Size()
}
