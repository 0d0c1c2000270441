// Package display implements the 64x32 monochrome CHIP-8 framebuffer.
package display

// Screen dimensions in CHIP-8 pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Color is the draw color of a single cell.
type Color uint8

// Draw colors.
const (
	Black Color = iota
	White
)

// RenderTarget is a surface the framebuffer can be drawn onto. A target that
// reports a zero size is expected to ignore FillRect calls.
type RenderTarget interface {
	Clear()
	Size() (width, height int)
	FillRect(x, y, w, h int, color Color)
	Present()
}

// Display owns the framebuffer and the target it is rendered to.
type Display struct {
	target RenderTarget
	pixels [ScreenWidth * ScreenHeight]bool // row-major
}

// New returns a blank display rendering onto target.
func New(target RenderTarget) *Display {
	return &Display{target: target}
}

// Blit XORs sprite onto the framebuffer with its top-left corner at (x, y),
// one byte per row with the most significant bit leftmost. It reports
// whether any lit pixel was turned off. Rows that do not fit entirely inside
// the screen are skipped.
func (d *Display) Blit(x, y uint8, sprite []byte) bool {
	collision := false
	for idx, row := range sprite {
		py := int(y) + idx
		if py >= ScreenHeight || int(x)+8 > ScreenWidth {
			continue
		}

		start := py*ScreenWidth + int(x)
		cells := d.pixels[start : start+8]
		existing := pixelsToByte(cells)
		byteToPixels(row^existing, cells)

		if row&existing != 0 {
			collision = true
		}
	}
	return collision
}

// Clear resets all pixels to off.
func (d *Display) Clear() {
	d.pixels = [ScreenWidth * ScreenHeight]bool{}
}

// Pixel reports whether the cell at (x, y) is lit. Out of range cells are off.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || y < 0 || x >= ScreenWidth || y >= ScreenHeight {
		return false
	}
	return d.pixels[y*ScreenWidth+x]
}

// Render redraws every cell onto the target, scaling each cell to the
// target size divided by the screen dimensions.
func (d *Display) Render() {
	d.target.Clear()

	width, height := d.target.Size()
	pixelWidth := width / ScreenWidth
	pixelHeight := height / ScreenHeight

	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			color := Black
			if d.pixels[y*ScreenWidth+x] {
				color = White
			}
			d.target.FillRect(x*pixelWidth, y*pixelHeight, pixelWidth, pixelHeight, color)
		}
	}

	d.target.Present()
}

func pixelsToByte(cells []bool) uint8 {
	var b uint8
	for _, lit := range cells {
		b <<= 1
		if lit {
			b |= 1
		}
	}
	return b
}

func byteToPixels(b uint8, cells []bool) {
	for i := range cells {
		cells[i] = b&(0x80>>i) != 0
	}
}
