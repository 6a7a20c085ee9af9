package medalcount

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/v3/assert"
)

func TestTickerBuildsStripOnUpdate(t *testing.T) {
	tick, _, _, _ := testTicker(placeholderTop5)
	assert.Equal(t, tick.scroll.TotalWidth(), 0)

	tick.Update()

	view := tick.viewCountries()
	assert.Equal(t, len(view), 5)

	// strip = lead-in blank + header + a card per country, with item gaps
	want := 128 + tick.render.headerCard().Bounds().Dx()
	for i, c := range view {
		want += itemGap + tick.render.countryCard(c, i+1).Bounds().Dx()
	}
	assert.Equal(t, tick.scroll.TotalWidth(), want)

	info := tick.Info()
	assert.Equal(t, info.ID, PluginID)
	assert.Equal(t, info.ViewMode, ViewTop5)
	assert.Equal(t, info.CountriesLoaded, 5)
}

func TestTickerDisplayPushesVisibleWindow(t *testing.T) {
	tick, disp, _, _ := testTicker(placeholderTop5)

	// nothing to show before the first update
	tick.Display(false)
	assert.Equal(t, disp.flushes, 0)

	tick.Update()
	tick.Display(false)
	assert.Equal(t, disp.flushes, 1)
	assert.Equal(t, disp.buf.Bounds().Dx(), 128)
	assert.Equal(t, disp.buf.Bounds().Dy(), 64)

	tick.Display(true)
	assert.Equal(t, disp.clears, 1)
	assert.Equal(t, disp.flushes, 2)
}

func TestTickerScrollLoopsForever(t *testing.T) {
	tick, _, _, _ := testTicker(placeholderUSA)
	tick.Update()

	total := float64(tick.scroll.TotalWidth())
	steps := int(3 * total / 2.0)
	for i := 0; i < steps; i++ {
		tick.Display(false)
		// the wrap reset keeps the cycle open and the distance bounded
		assert.Assert(t, !tick.IsCycleComplete())
		assert.Assert(t, tick.scroll.DistanceScrolled() < total)
	}
}

func TestTickerDynamicDuration(t *testing.T) {
	tick, _, _, _ := testTicker(placeholderTop5)
	assert.Equal(t, tick.DisplayDuration(), time.Duration(0))

	tick.Update()

	frames := float64(tick.scroll.TotalWidth()) / 2.0
	want := time.Duration(frames / float64(120) * float64(time.Second))
	assert.Equal(t, tick.DisplayDuration(), want)
	assert.Assert(t, tick.SupportsDynamicDuration())
}

func TestTickerNoDataCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	clock := clockwork.NewFakeClockAt(testEpoch)
	disp := newFakeDisplay(128, 64)
	raw := fmt.Sprintf(`{"data_settings":{"api_url":%q}}`, srv.URL)
	tick := NewTicker(disp, newFakeCache(clock), []byte(raw), WithClock(clock), WithHTTPClient(srv.Client()))

	tick.Update()

	info := tick.Info()
	assert.Equal(t, info.CountriesLoaded, 0)
	assert.Assert(t, info.LastError != "")

	want := 128 + tick.render.headerCard().Bounds().Dx() + itemGap + tick.render.messageCard("NO DATA").Bounds().Dx()
	assert.Equal(t, tick.scroll.TotalWidth(), want)

	tick.Display(false)
	assert.Equal(t, disp.flushes, 1)
}

func TestTickerUpdateCadence(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, medalEnvelope)
	}))
	defer srv.Close()

	clock := clockwork.NewFakeClockAt(testEpoch)
	raw := fmt.Sprintf(`{"data_settings":{"api_url":%q}}`, srv.URL)
	tick := NewTicker(newFakeDisplay(128, 64), newFakeCache(clock), []byte(raw),
		WithClock(clock), WithHTTPClient(srv.Client()))

	tick.Update()
	tick.Update()
	assert.Equal(t, calls, 1)

	clock.Advance(301 * time.Second)
	tick.Update()
	assert.Equal(t, calls, 2)

	// a config change zeroes the fetch timer; the refetch is served from
	// the still-fresh cache without another network call
	tick.OnConfigChange([]byte(raw))
	assert.Equal(t, tick.Info().CountriesLoaded, 0)
	tick.Update()
	assert.Equal(t, tick.Info().CountriesLoaded, 2)
	assert.Equal(t, calls, 2)
}

func TestTickerUpdateRetriesWhileEmpty(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(500)
	}))
	defer srv.Close()

	clock := clockwork.NewFakeClockAt(testEpoch)
	raw := fmt.Sprintf(`{"data_settings":{"api_url":%q}}`, srv.URL)
	tick := NewTicker(newFakeDisplay(128, 64), newFakeCache(clock), []byte(raw),
		WithClock(clock), WithHTTPClient(srv.Client()))

	// with no table at all, every update retries regardless of cadence
	tick.Update()
	tick.Update()
	assert.Equal(t, calls, 2)
}

func TestTickerResetCycleState(t *testing.T) {
	tick, _, _, _ := testTicker(placeholderTop5)
	tick.Update()

	for i := 0; i < 10; i++ {
		tick.Display(false)
	}
	assert.Assert(t, tick.scroll.Position() > 0)

	tick.ResetCycleState()
	assert.Equal(t, tick.scroll.Position(), 0.0)
	assert.Equal(t, tick.scroll.DistanceScrolled(), 0.0)
}

func TestTickerCleanupDropsStrip(t *testing.T) {
	tick, disp, _, _ := testTicker(placeholderTop5)
	tick.Update()
	assert.Assert(t, tick.scroll.TotalWidth() > 0)

	tick.Cleanup()
	assert.Equal(t, tick.scroll.TotalWidth(), 0)

	// nothing left to draw
	tick.Display(false)
	assert.Equal(t, disp.flushes, 0)
}

func TestTickerInfoCarriesScrollState(t *testing.T) {
	tick, _, _, _ := testTicker(placeholderTop5)
	tick.Update()
	tick.Display(false)

	info := tick.Info()
	assert.Equal(t, info.Scroll["total_scroll_width"], tick.scroll.TotalWidth())
	assert.Equal(t, info.Scroll["display_width"], 128)
	assert.Equal(t, info.Scroll["scroll_position"], tick.scroll.Position())
	assert.Equal(t, info.Scroll["scroll_complete"], false)
}
