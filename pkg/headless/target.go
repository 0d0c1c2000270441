// Package headless provides an in-memory render target backed by an RGBA
// image. It needs no window and is used for tests, screenshots and as the
// pixel source of the ebiten frontend.
package headless

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/mnafees/chopper/v2/internal/display"
	"golang.org/x/image/draw"
)

// Palette maps display colors to RGBA colors.
type Palette [2]color.RGBA

// DefaultPalette renders lit pixels white on black.
var DefaultPalette = Palette{
	display.Black: {0x00, 0x00, 0x00, 0xFF},
	display.White: {0xFF, 0xFF, 0xFF, 0xFF},
}

// Target is a render target drawing into an RGBA image. A zero sized
// target ignores all drawing.
type Target struct {
	img     *image.RGBA
	palette Palette
	frames  int
}

// New returns a target of the given size in output pixels.
func New(width, height int, palette Palette) *Target {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Target{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		palette: palette,
	}
}

// Clear fills the whole image with the background color.
func (t *Target) Clear() {
	t.fill(t.img.Bounds(), display.Black)
}

// Size returns the image size.
func (t *Target) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// FillRect fills a rectangle, clipped to the image bounds.
func (t *Target) FillRect(x, y, w, h int, c display.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	t.fill(image.Rect(x, y, x+w, y+h), c)
}

// Present completes a frame.
func (t *Target) Present() {
	t.frames++
}

// Frames returns the number of presented frames.
func (t *Target) Frames() int {
	return t.frames
}

// Image returns the backing image. It is updated in place by every render.
func (t *Target) Image() *image.RGBA {
	return t.img
}

func (t *Target) fill(r image.Rectangle, c display.Color) {
	r = r.Intersect(t.img.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(t.img, r, image.NewUniform(t.palette[c&1]), image.Point{}, draw.Src)
}

// WritePNG encodes the current image scaled by scale to w.
func (t *Target) WritePNG(w io.Writer, scale int) error {
	if scale < 1 {
		return fmt.Errorf("invalid scale %d", scale)
	}
	src := t.img.Bounds()
	if src.Empty() {
		return fmt.Errorf("cannot encode empty %dx%d image", src.Dx(), src.Dy())
	}

	dst := image.NewRGBA(image.Rect(0, 0, src.Dx()*scale, src.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), t.img, src, draw.Src, nil)
	return png.Encode(w, dst)
}

// SaveScreenshot writes the current image as PNG to filename.
func (t *Target) SaveScreenshot(filename string, scale int) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating screenshot: %w", err)
	}
	if err := t.WritePNG(f, scale); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing screenshot: %w", err)
	}
	return f.Close()
}
