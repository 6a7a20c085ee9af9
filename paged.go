package medalcount

import (
	"image"
	"time"
)

// Paged shows one country per page, turning the page on a fixed rotation
// interval. Unlike the ticker there is no pre-rendered strip; each page is
// drawn on demand and redraws are throttled to the target frame rate.
type Paged struct {
	*basePlugin

	index      int
	lastSwitch time.Time
	lastDraw   time.Time
	wrapped    bool
	dirty      bool
}

var _ Plugin = (*Paged)(nil)

func NewPaged(display DisplayManager, cache CacheManager, rawConfig []byte, opts ...Option) *Paged {
	b := newBasePlugin(display, cache, rawConfig, opts)
	return &Paged{basePlugin: b, dirty: true}
}

// Update refreshes the medal table on the configured cadence. A replaced
// table marks the page dirty so the next Display redraws immediately.
func (p *Paged) Update() {
	if p.refreshData() {
		p.dirty = true
	}
}

// Display turns the page when the rotation interval has elapsed and redraws
// at most once per frame interval otherwise.
func (p *Paged) Display(forceClear bool) {
	defer p.guardFrame()

	if forceClear {
		p.display.Clear()
	}

	view := p.viewCountries()
	now := p.clock.Now()

	turned := false
	if len(view) > 0 {
		if p.index >= len(view) {
			p.index = 0
			turned = true
		}
		if p.lastSwitch.IsZero() {
			p.lastSwitch = now
		} else if now.Sub(p.lastSwitch) >= p.cfg.RotationInterval {
			p.index++
			if p.index >= len(view) {
				p.index = 0
				p.wrapped = true
			}
			p.lastSwitch = now
			turned = true
		}
	}

	if !turned && !forceClear && !p.dirty && !p.lastDraw.IsZero() {
		minFrame := time.Second / time.Duration(p.cfg.TargetFPS)
		if now.Sub(p.lastDraw) < minFrame {
			return
		}
	}

	var frame *image.RGBA
	if len(view) == 0 {
		frame = p.render.messageFrame("NO DATA", p.width)
	} else {
		frame = p.render.pageFrame(view[p.index], p.index+1, p.width)
	}
	p.pushFrame(frame)
	p.lastDraw = now
	p.dirty = false
}

func (p *Paged) OnConfigChange(rawConfig []byte) {
	p.applyConfig(rawConfig)
	p.ResetCycleState()
}

func (p *Paged) Info() PluginInfo {
	info := p.baseInfo()
	info.PageIndex = p.index
	return info
}

func (p *Paged) Cleanup() {
	p.baseCleanup()
}

func (p *Paged) SupportsDynamicDuration() bool { return true }

// IsCycleComplete reports whether every page has been shown since the last
// reset, so the host can rotate to the next plugin.
func (p *Paged) IsCycleComplete() bool { return p.wrapped }

// DisplayDuration is the rotation interval times the number of pages.
func (p *Paged) DisplayDuration() time.Duration {
	pages := len(p.viewCountries())
	if pages < 1 {
		pages = 1
	}
	return time.Duration(pages) * p.cfg.RotationInterval
}

func (p *Paged) ResetCycleState() {
	p.index = 0
	p.lastSwitch = time.Time{}
	p.lastDraw = time.Time{}
	p.wrapped = false
	p.dirty = true
}
