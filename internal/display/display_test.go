package display

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

type fillCall struct {
	x, y, w, h int
	color      Color
}

type recordingTarget struct {
	width, height int
	clears        int
	presents      int
	fills         []fillCall
}

func (r *recordingTarget) Clear()           { r.clears++ }
func (r *recordingTarget) Size() (int, int) { return r.width, r.height }
func (r *recordingTarget) Present()         { r.presents++ }
func (r *recordingTarget) FillRect(x, y, w, h int, color Color) {
	r.fills = append(r.fills, fillCall{x, y, w, h, color})
}

func snapshot(d *Display) [ScreenWidth * ScreenHeight]bool {
	return d.pixels
}

func TestBlitDrawsRowMajorMSBFirst(t *testing.T) {
	d := New(&recordingTarget{})

	collision := d.Blit(2, 3, []byte{0x80, 0x01})
	assert.False(t, collision)

	assert.True(t, d.Pixel(2, 3))
	assert.False(t, d.Pixel(3, 3))
	assert.True(t, d.Pixel(9, 4))
	assert.False(t, d.Pixel(2, 4))
}

func TestBlitTwiceRestoresAndCollides(t *testing.T) {
	sprites := [][]byte{
		{0xF0, 0x90, 0x90, 0x90, 0xF0},
		{0x01},
		{0xFF, 0x00, 0xFF},
	}

	for _, sprite := range sprites {
		d := New(&recordingTarget{})
		d.Blit(0, 0, []byte{0x3C, 0x3C})
		before := snapshot(d)

		d.Blit(10, 1, sprite)
		collision := d.Blit(10, 1, sprite)

		assert.True(t, collision)
		assert.Equal(t, before, snapshot(d))
	}
}

func TestBlitZeroSpriteNeverCollides(t *testing.T) {
	d := New(&recordingTarget{})
	d.Blit(0, 0, []byte{0xFF})
	assert.False(t, d.Blit(0, 0, []byte{0x00}))
	assert.True(t, d.Pixel(0, 0))
}

func TestBlitPartialOverlap(t *testing.T) {
	d := New(&recordingTarget{})
	d.Blit(0, 0, []byte{0x0F})

	collision := d.Blit(0, 0, []byte{0xF0})
	assert.False(t, collision)
	for x := 0; x < 8; x++ {
		assert.True(t, d.Pixel(x, 0))
	}

	collision = d.Blit(0, 0, []byte{0x18})
	assert.True(t, collision)
	assert.False(t, d.Pixel(3, 0))
	assert.False(t, d.Pixel(4, 0))
}

func TestBlitClipsInsteadOfWrapping(t *testing.T) {
	t.Run("rows past the bottom edge", func(t *testing.T) {
		d := New(&recordingTarget{})
		collision := d.Blit(0, 30, []byte{0xFF, 0xFF, 0xFF, 0xFF})
		assert.False(t, collision)
		assert.True(t, d.Pixel(0, 30))
		assert.True(t, d.Pixel(0, 31))
		assert.False(t, d.Pixel(0, 0))
		assert.False(t, d.Pixel(0, 1))
	})

	t.Run("row crossing the right edge", func(t *testing.T) {
		d := New(&recordingTarget{})
		d.Blit(60, 0, []byte{0xFF})
		for x := 0; x < ScreenWidth; x++ {
			assert.False(t, d.Pixel(x, 0))
			assert.False(t, d.Pixel(x, 1))
		}
	})

	t.Run("last column that fits", func(t *testing.T) {
		d := New(&recordingTarget{})
		d.Blit(56, 31, []byte{0x01})
		assert.True(t, d.Pixel(63, 31))
	})

	t.Run("coordinates off screen", func(t *testing.T) {
		d := New(&recordingTarget{})
		assert.False(t, d.Blit(200, 200, []byte{0xFF}))
	})
}

func TestClear(t *testing.T) {
	d := New(&recordingTarget{})
	d.Blit(8, 8, []byte{0xFF, 0xFF})
	d.Clear()
	assert.Equal(t, [ScreenWidth * ScreenHeight]bool{}, snapshot(d))
}

func TestRender(t *testing.T) {
	target := &recordingTarget{width: 640, height: 320}
	d := New(target)
	d.Blit(0, 0, []byte{0x80})

	d.Render()

	assert.Equal(t, 1, target.clears)
	assert.Equal(t, 1, target.presents)
	assert.Len(t, target.fills, ScreenWidth*ScreenHeight)
	assert.Equal(t, fillCall{0, 0, 10, 10, White}, target.fills[0])
	assert.Equal(t, fillCall{10, 0, 10, 10, Black}, target.fills[1])
	assert.Equal(t, fillCall{630, 310, 10, 10, Black}, target.fills[len(target.fills)-1])
}

func TestRenderTruncatesPixelSize(t *testing.T) {
	target := &recordingTarget{width: 130, height: 70}
	d := New(target)

	d.Render()

	assert.Equal(t, fillCall{2, 2, 2, 2, Black}, target.fills[ScreenWidth+1])
}

func TestRenderZeroSizedTarget(t *testing.T) {
	target := &recordingTarget{}
	d := New(target)

	d.Render()

	assert.Equal(t, 1, target.clears)
	assert.Equal(t, 1, target.presents)
	for _, call := range target.fills {
		assert.Equal(t, 0, call.w)
		assert.Equal(t, 0, call.h)
	}
}
