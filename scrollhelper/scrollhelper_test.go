package scrollhelper

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/v3/assert"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestCreateScrollingImageWidths(t *testing.T) {
	h := New(8, 4, clockwork.NewFakeClock(), nil)

	items := []Item{
		{solid(10, 4, red)},
		{solid(6, 4, blue), solid(5, 4, red)},
	}
	h.CreateScrollingImage(items, 3, 2)

	// lead-in 8 + first item 10 + item gap 3 + (6 + element gap 2 + 5)
	assert.Equal(t, h.TotalWidth(), 34)
	assert.Equal(t, h.DisplayWidth(), 8)
	assert.Equal(t, h.Position(), 0.0)
}

func TestStripLayout(t *testing.T) {
	h := New(8, 4, clockwork.NewFakeClock(), nil)

	h.CreateScrollingImage([]Item{
		{solid(10, 4, red)},
		{solid(6, 2, blue)},
	}, 3, 0)

	// first item starts after the lead-in blank
	assert.Equal(t, h.strip.RGBAAt(7, 0), color.RGBA{})
	assert.Equal(t, h.strip.RGBAAt(8, 0), red)
	assert.Equal(t, h.strip.RGBAAt(17, 3), red)
	// item gap
	assert.Equal(t, h.strip.RGBAAt(18, 0), color.RGBA{})
	assert.Equal(t, h.strip.RGBAAt(20, 0), color.RGBA{})
	// shorter element is vertically centered
	assert.Equal(t, h.strip.RGBAAt(21, 0), color.RGBA{})
	assert.Equal(t, h.strip.RGBAAt(21, 1), blue)
	assert.Equal(t, h.strip.RGBAAt(21, 2), blue)
	assert.Equal(t, h.strip.RGBAAt(21, 3), color.RGBA{})
}

func TestFrameBasedStepsIgnoreClock(t *testing.T) {
	h := New(8, 4, clockwork.NewFakeClock(), nil)
	h.SetFrameBasedScrolling(true)
	h.SetScrollSpeed(2)
	h.CreateScrollingImage([]Item{{solid(10, 4, red)}}, 0, 0)

	h.UpdateScrollPosition()
	h.UpdateScrollPosition()

	assert.Equal(t, h.Position(), 4.0)
	assert.Equal(t, h.DistanceScrolled(), 4.0)
}

func TestTimeBasedStepsRespectDelay(t *testing.T) {
	clock := clockwork.NewFakeClock()
	h := New(8, 4, clock, nil)
	h.SetScrollSpeed(1)
	h.SetScrollDelay(50 * time.Millisecond)
	h.CreateScrollingImage([]Item{{solid(10, 4, red)}}, 0, 0)

	h.UpdateScrollPosition()
	assert.Equal(t, h.Position(), 1.0)

	// same instant: gated
	h.UpdateScrollPosition()
	assert.Equal(t, h.Position(), 1.0)

	clock.Advance(50 * time.Millisecond)
	h.UpdateScrollPosition()
	assert.Equal(t, h.Position(), 2.0)
}

func TestWrapLatchesCompleteAndResetDistanceClearsIt(t *testing.T) {
	h := New(8, 4, clockwork.NewFakeClock(), nil)
	h.SetFrameBasedScrolling(true)
	h.SetScrollSpeed(5)
	h.CreateScrollingImage([]Item{{solid(10, 4, red)}}, 0, 0)
	assert.Equal(t, h.TotalWidth(), 18)

	for i := 0; i < 3; i++ {
		h.UpdateScrollPosition()
		assert.Assert(t, !h.Complete())
	}

	// 20 >= 18: the position wraps and the latch trips
	h.UpdateScrollPosition()
	assert.Equal(t, h.Position(), 2.0)
	assert.Assert(t, h.Complete())

	h.ResetDistance()
	assert.Assert(t, !h.Complete())
	assert.Equal(t, h.Position(), 2.0)
	assert.Equal(t, h.DistanceScrolled(), 0.0)
}

func TestVisiblePortionStitchesAcrossSeam(t *testing.T) {
	h := New(8, 4, clockwork.NewFakeClock(), nil)
	h.SetFrameBasedScrolling(true)
	h.SetScrollSpeed(14)
	h.CreateScrollingImage([]Item{{solid(10, 4, red)}}, 0, 0)

	h.UpdateScrollPosition()
	assert.Equal(t, h.Position(), 14.0)

	out := h.VisiblePortion()
	assert.Equal(t, out.Bounds().Dx(), 8)
	// tail of the strip, then the wrap back to the lead-in blank
	assert.Equal(t, out.RGBAAt(0, 0), red)
	assert.Equal(t, out.RGBAAt(3, 3), red)
	assert.Equal(t, out.RGBAAt(4, 0), color.RGBA{})
	assert.Equal(t, out.RGBAAt(7, 3), color.RGBA{})
}

func TestVisiblePortionNilWithoutStrip(t *testing.T) {
	h := New(8, 4, clockwork.NewFakeClock(), nil)
	assert.Assert(t, h.VisiblePortion() == nil)

	// and position updates are no-ops
	h.UpdateScrollPosition()
	assert.Equal(t, h.Position(), 0.0)
}

func TestDynamicDuration(t *testing.T) {
	h := New(8, 4, clockwork.NewFakeClock(), nil)
	assert.Equal(t, h.DynamicDuration(), time.Duration(0))

	// total 16, speed 2: 8 steps per loop
	h.CreateScrollingImage([]Item{{solid(8, 4, red)}}, 0, 0)
	h.SetScrollSpeed(2)

	h.SetFrameBasedScrolling(true)
	h.SetTargetFPS(16)
	assert.Equal(t, h.DynamicDuration(), 500*time.Millisecond)

	h.SetFrameBasedScrolling(false)
	h.SetScrollDelay(250 * time.Millisecond)
	assert.Equal(t, h.DynamicDuration(), 2*time.Second)
}

func TestResetScroll(t *testing.T) {
	h := New(8, 4, clockwork.NewFakeClock(), nil)
	h.SetFrameBasedScrolling(true)
	h.SetScrollSpeed(3)
	h.CreateScrollingImage([]Item{{solid(10, 4, red)}}, 0, 0)

	h.UpdateScrollPosition()
	h.UpdateScrollPosition()
	assert.Equal(t, h.Position(), 6.0)

	h.ResetScroll()
	assert.Equal(t, h.Position(), 0.0)
	assert.Equal(t, h.DistanceScrolled(), 0.0)
	assert.Assert(t, !h.Complete())
}

func TestClearCache(t *testing.T) {
	h := New(8, 4, clockwork.NewFakeClock(), nil)
	h.CreateScrollingImage([]Item{{solid(10, 4, red)}}, 0, 0)
	assert.Assert(t, h.TotalWidth() > 0)

	h.ClearCache()
	assert.Equal(t, h.TotalWidth(), 0)
	assert.Assert(t, h.VisiblePortion() == nil)
	assert.Equal(t, h.DynamicDuration(), time.Duration(0))
}

func TestSettersIgnoreBadValues(t *testing.T) {
	h := New(8, 4, clockwork.NewFakeClock(), nil)
	h.SetScrollSpeed(2)
	h.SetScrollSpeed(0)
	h.SetScrollSpeed(-3)
	assert.Equal(t, h.speed, 2.0)

	h.SetScrollDelay(20 * time.Millisecond)
	h.SetScrollDelay(0)
	assert.Equal(t, h.delay, 20*time.Millisecond)

	h.SetTargetFPS(30)
	h.SetTargetFPS(0)
	assert.Equal(t, h.fps, 30)
}

func TestInfoKeys(t *testing.T) {
	h := New(8, 4, clockwork.NewFakeClock(), nil)
	h.SetFrameBasedScrolling(true)
	h.CreateScrollingImage([]Item{{solid(10, 4, red)}}, 0, 0)
	h.UpdateScrollPosition()

	info := h.Info()
	assert.Equal(t, info["scroll_position"], 1.0)
	assert.Equal(t, info["total_scroll_width"], 18)
	assert.Equal(t, info["display_width"], 8)
	assert.Equal(t, info["scroll_complete"], false)
	assert.Equal(t, info["total_distance_scrolled"], 1.0)
}
