// Package scrollhelper tracks scroll position for wide ticker images shown
// through a narrow display window. Content is composed once into a strip;
// per-frame work is a position update and a window copy, cheap enough for
// high-FPS matrix loops.
package scrollhelper

import (
	"image"
	"image/draw"
	"log"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
)

// Item is one logical entry in the strip. Multi-image items place their
// elements side by side separated by the element gap.
type Item []image.Image

// Helper owns one strip image and a position that wraps modulo the strip
// width. Not safe for concurrent use; display loops are single-goroutine.
type Helper struct {
	displayWidth  int
	displayHeight int
	clock         clockwork.Clock
	logger        *log.Logger

	frameBased bool
	speed      float64
	delay      time.Duration
	fps        int

	strip      *image.RGBA
	totalWidth int

	pos      float64
	distance float64
	complete bool
	lastStep time.Time
}

func New(displayWidth, displayHeight int, clock clockwork.Clock, logger *log.Logger) *Helper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Helper{
		displayWidth:  displayWidth,
		displayHeight: displayHeight,
		clock:         clock,
		logger:        logger,
		speed:         1,
		delay:         50 * time.Millisecond,
		fps:           60,
	}
}

// SetFrameBasedScrolling selects advancing once per UpdateScrollPosition
// call instead of once per elapsed delay. Frame-based mode hands pacing to
// the caller's frame loop.
func (h *Helper) SetFrameBasedScrolling(on bool) { h.frameBased = on }

// SetScrollSpeed sets pixels advanced per step. Non-positive values are
// ignored.
func (h *Helper) SetScrollSpeed(speed float64) {
	if speed > 0 {
		h.speed = speed
	}
}

// SetScrollDelay sets the minimum time between steps in time-based mode.
func (h *Helper) SetScrollDelay(delay time.Duration) {
	if delay > 0 {
		h.delay = delay
	}
}

// SetTargetFPS sets the frame rate assumed when converting frame counts to
// wall time.
func (h *Helper) SetTargetFPS(fps int) {
	if fps > 0 {
		h.fps = fps
	}
}

// CreateScrollingImage composes items into one strip and resets the scroll.
// The strip leads with a display-width blank so content enters from the
// right edge, and the same blank spaces the seam when the position wraps.
func (h *Helper) CreateScrollingImage(items []Item, itemGap, elementGap int) {
	contentWidth := 0
	for i, item := range items {
		if i > 0 {
			contentWidth += itemGap
		}
		contentWidth += itemWidth(item, elementGap)
	}

	h.totalWidth = h.displayWidth + contentWidth
	strip := image.NewRGBA(image.Rect(0, 0, h.totalWidth, h.displayHeight))

	x := h.displayWidth
	for i, item := range items {
		if i > 0 {
			x += itemGap
		}
		for j, el := range item {
			if j > 0 {
				x += elementGap
			}
			b := el.Bounds()
			y := (h.displayHeight - b.Dy()) / 2
			draw.Draw(strip, image.Rect(x, y, x+b.Dx(), y+b.Dy()), el, b.Min, draw.Src)
			x += b.Dx()
		}
	}

	h.strip = strip
	h.ResetScroll()
}

// UpdateScrollPosition advances the scroll by one step when due. Position
// wraps modulo the strip width; distance accumulates until a full strip
// width has passed, which latches Complete.
func (h *Helper) UpdateScrollPosition() {
	if h.strip == nil {
		return
	}

	if !h.frameBased {
		now := h.clock.Now()
		if !h.lastStep.IsZero() && now.Sub(h.lastStep) < h.delay {
			return
		}
		h.lastStep = now
	}

	h.pos = math.Mod(h.pos+h.speed, float64(h.totalWidth))
	h.distance += h.speed
	if h.distance >= float64(h.totalWidth) {
		h.complete = true
	}
}

// VisiblePortion returns the display-sized window at the current position,
// stitched across the wrap seam. Nil until a strip exists.
func (h *Helper) VisiblePortion() *image.RGBA {
	if h.strip == nil {
		return nil
	}

	out := image.NewRGBA(image.Rect(0, 0, h.displayWidth, h.displayHeight))
	p := int(h.pos) % h.totalWidth

	first := h.totalWidth - p
	if first > h.displayWidth {
		first = h.displayWidth
	}
	draw.Draw(out, image.Rect(0, 0, first, h.displayHeight), h.strip, image.Pt(p, 0), draw.Src)
	if first < h.displayWidth {
		draw.Draw(out, image.Rect(first, 0, h.displayWidth, h.displayHeight), h.strip, image.Pt(0, 0), draw.Src)
	}
	return out
}

func (h *Helper) Position() float64 { return h.pos }

func (h *Helper) TotalWidth() int { return h.totalWidth }

func (h *Helper) DisplayWidth() int { return h.displayWidth }

func (h *Helper) Complete() bool { return h.complete }

func (h *Helper) DistanceScrolled() float64 { return h.distance }

// ResetDistance clears the distance tracking and the Complete latch without
// moving the position, so a wrapped scroll keeps looping.
func (h *Helper) ResetDistance() {
	h.distance = 0
	h.complete = false
}

// ResetScroll rewinds to the strip start and clears all tracking.
func (h *Helper) ResetScroll() {
	h.pos = 0
	h.distance = 0
	h.complete = false
	h.lastStep = time.Time{}
}

// ClearCache drops the strip so its memory can be reclaimed.
func (h *Helper) ClearCache() {
	h.strip = nil
	h.totalWidth = 0
}

// DynamicDuration estimates the wall time of one full loop at the current
// speed. Zero when no strip is loaded.
func (h *Helper) DynamicDuration() time.Duration {
	if h.strip == nil || h.speed <= 0 {
		return 0
	}
	frames := float64(h.totalWidth) / h.speed
	var secs float64
	if h.frameBased {
		secs = frames / float64(h.fps)
	} else {
		secs = frames * h.delay.Seconds()
	}
	return time.Duration(secs * float64(time.Second))
}

// Info reports scroll state for diagnostics, keyed to match the status API.
func (h *Helper) Info() map[string]interface{} {
	return map[string]interface{}{
		"scroll_position":         h.pos,
		"total_scroll_width":      h.totalWidth,
		"display_width":           h.displayWidth,
		"scroll_complete":         h.complete,
		"total_distance_scrolled": h.distance,
	}
}

func itemWidth(item Item, elementGap int) int {
	w := 0
	for j, el := range item {
		if j > 0 {
			w += elementGap
		}
		w += el.Bounds().Dx()
	}
	return w
}
