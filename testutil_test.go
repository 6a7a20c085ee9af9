package medalcount

import (
	"image"
	"log"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// testEpoch is an arbitrary fixed instant during the games.
var testEpoch = time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

// fakeDisplay records frames the way the host matrix would.
type fakeDisplay struct {
	width, height int
	buf           *image.RGBA
	flushes       int
	clears        int
	lastFlushed   *image.RGBA
	failFlush     bool
}

func newFakeDisplay(w, h int) *fakeDisplay {
	return &fakeDisplay{width: w, height: h}
}

func (d *fakeDisplay) Size() (int, int) { return d.width, d.height }

func (d *fakeDisplay) Image() *image.RGBA { return d.buf }

func (d *fakeDisplay) SetImage(img *image.RGBA) { d.buf = img }

func (d *fakeDisplay) UpdateDisplay() error {
	if d.failFlush {
		return errors.New("display gone")
	}
	d.flushes++
	if d.buf != nil {
		cp := image.NewRGBA(d.buf.Bounds())
		copy(cp.Pix, d.buf.Pix)
		d.lastFlushed = cp
	}
	return nil
}

func (d *fakeDisplay) Clear() {
	d.clears++
	if d.buf != nil {
		for i := range d.buf.Pix {
			d.buf.Pix[i] = 0
		}
	}
}

type fakeCacheEntry struct {
	stamp time.Time
	data  []byte
}

// fakeCache is an in-memory CacheManager with the host's maxAge semantics.
type fakeCache struct {
	entries map[string]fakeCacheEntry
	clock   clockwork.Clock
	sets    int
	gets    int
}

func newFakeCache(clock clockwork.Clock) *fakeCache {
	return &fakeCache{entries: make(map[string]fakeCacheEntry), clock: clock}
}

func (c *fakeCache) Get(key string, maxAge time.Duration) ([]byte, bool) {
	c.gets++
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if maxAge > 0 && c.clock.Since(e.stamp) > maxAge {
		return nil, false
	}
	return e.data, true
}

func (c *fakeCache) Set(key string, value []byte) {
	c.sets++
	c.entries[key] = fakeCacheEntry{
		stamp: c.clock.Now(),
		data:  append([]byte(nil), value...),
	}
}

// testTicker builds a ticker on fakes, returning the pieces tests poke at.
func testTicker(raw string) (*Ticker, *fakeDisplay, clockwork.FakeClock, *fakeCache) {
	clock := clockwork.NewFakeClockAt(testEpoch)
	disp := newFakeDisplay(128, 64)
	cache := newFakeCache(clock)
	tick := NewTicker(disp, cache, []byte(raw), WithClock(clock))
	return tick, disp, clock, cache
}

func testPaged(raw string) (*Paged, *fakeDisplay, clockwork.FakeClock, *fakeCache) {
	clock := clockwork.NewFakeClockAt(testEpoch)
	disp := newFakeDisplay(128, 64)
	cache := newFakeCache(clock)
	paged := NewPaged(disp, cache, []byte(raw), WithClock(clock))
	return paged, disp, clock, cache
}

// testRenderer draws with the built-in face; no font files in the tree.
func testRenderer(height int) *renderer {
	return &renderer{
		fonts:  loadFonts("testdata/no-such-fonts", log.Default()),
		flags:  newFlagSet(nil, log.Default()),
		height: height,
	}
}

const placeholderTop5 = `{"display_options":{"view_mode":"top5"},"data_settings":{"data_source":"placeholder"}}`

const placeholderUSA = `{"display_options":{"view_mode":"usa_only"},"data_settings":{"data_source":"placeholder"}}`
