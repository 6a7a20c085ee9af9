package medalcount

import (
	"time"

	"github.com/ZachSully4/ledmatrix-live-olympic-medal-count/scrollhelper"
)

// Ticker shows the leaderboard as one continuous horizontal scroll: the
// header card first, then a card per country.
type Ticker struct {
	*basePlugin
	scroll *scrollhelper.Helper
}

var _ Plugin = (*Ticker)(nil)

func NewTicker(display DisplayManager, cache CacheManager, rawConfig []byte, opts ...Option) *Ticker {
	b := newBasePlugin(display, cache, rawConfig, opts)
	t := &Ticker{basePlugin: b}
	t.scroll = scrollhelper.New(b.width, b.height, b.clock, b.logger)
	t.scroll.SetFrameBasedScrolling(true)
	t.pushScrollSettings()
	return t
}

func (t *Ticker) pushScrollSettings() {
	t.scroll.SetScrollSpeed(t.cfg.ScrollSpeed)
	t.scroll.SetScrollDelay(t.cfg.ScrollDelay)
	t.scroll.SetTargetFPS(t.cfg.TargetFPS)
}

// Update refreshes the medal table on the configured cadence and rebuilds
// the scroll strip whenever the table was replaced.
func (t *Ticker) Update() {
	if t.refreshData() {
		t.rebuildStrip()
	}
}

func (t *Ticker) rebuildStrip() {
	items := []scrollhelper.Item{{t.render.headerCard()}}

	view := t.viewCountries()
	for i, c := range view {
		items = append(items, scrollhelper.Item{t.render.countryCard(c, i+1)})
	}
	if len(view) == 0 {
		items = append(items, scrollhelper.Item{t.render.messageCard("NO DATA")})
	}

	t.scroll.CreateScrollingImage(items, itemGap, elementGap)
	t.logger.Printf("Scrolling content created: %d items, total width %dpx",
		len(items), t.scroll.TotalWidth())
}

// Display advances the scroll one step and pushes the visible window. A
// position jump bigger than the display width means the scroll wrapped, so
// distance tracking resets and the loop runs forever.
func (t *Ticker) Display(forceClear bool) {
	defer t.guardFrame()

	if forceClear {
		t.display.Clear()
	}

	oldPos := t.scroll.Position()
	t.scroll.UpdateScrollPosition()
	newPos := t.scroll.Position()

	if oldPos-newPos > float64(t.scroll.DisplayWidth()) {
		t.logger.Printf("Scroll wrap detected (%.0f -> %.0f)", oldPos, newPos)
		t.scroll.ResetDistance()
	}

	visible := t.scroll.VisiblePortion()
	if visible == nil {
		// nothing rendered yet, wait for the first Update
		return
	}
	t.pushFrame(visible)
}

func (t *Ticker) OnConfigChange(rawConfig []byte) {
	t.applyConfig(rawConfig)
	t.pushScrollSettings()
}

func (t *Ticker) Info() PluginInfo {
	info := t.baseInfo()
	info.Scroll = t.scroll.Info()
	return info
}

func (t *Ticker) Cleanup() {
	t.scroll.ClearCache()
	t.baseCleanup()
}

func (t *Ticker) SupportsDynamicDuration() bool { return true }

// IsCycleComplete always reports false: the scroll loops continuously and
// the host rotates plugins on DisplayDuration instead.
func (t *Ticker) IsCycleComplete() bool { return false }

func (t *Ticker) DisplayDuration() time.Duration { return t.scroll.DynamicDuration() }

func (t *Ticker) ResetCycleState() { t.scroll.ResetScroll() }
