package medalcount

import (
	"image"
	"image/draw"
	"log"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	xdraw "golang.org/x/image/draw"
)

// PluginID is the identifier both variants report to the host.
const PluginID = "olympic_medal_count"

// Option adjusts plugin construction. The defaults are production values;
// tests swap in fake clocks and stub HTTP clients.
type Option func(*basePlugin)

func WithClock(clock clockwork.Clock) Option {
	return func(b *basePlugin) { b.clock = clock }
}

func WithLogger(logger *log.Logger) Option {
	return func(b *basePlugin) { b.logger = logger }
}

func WithHTTPClient(client *http.Client) Option {
	return func(b *basePlugin) { b.httpClient = client }
}

// basePlugin carries everything the ticker and paged variants share: config,
// data state, the fetcher, the flag cache and the card renderer.
type basePlugin struct {
	id         string
	cfg        Config
	clock      clockwork.Clock
	logger     *log.Logger
	httpClient *http.Client

	display DisplayManager
	fetch   *fetcher
	flags   *flagSet
	render  *renderer

	width  int
	height int

	countries []Country
	lastFetch time.Time
	lastErr   string
}

func newBasePlugin(display DisplayManager, cache CacheManager, rawConfig []byte, opts []Option) *basePlugin {
	b := &basePlugin{
		id:         PluginID,
		cfg:        parseConfig(rawConfig),
		clock:      clockwork.NewRealClock(),
		logger:     log.Default(),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		display:    display,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.width, b.height = display.Size()
	b.fetch = &fetcher{client: b.httpClient, cache: cache, logger: b.logger}
	b.flags = newFlagSet(b.fetch, b.logger)
	b.render = &renderer{
		fonts:  loadFonts(b.cfg.FontsDir, b.logger),
		flags:  b.flags,
		height: b.height,
	}

	b.logger.Printf("Medal count plugin initialized: mode=%s top_n=%d update_interval=%s",
		b.cfg.ViewMode, b.cfg.TopN, b.cfg.UpdateInterval)
	return b
}

// refreshData fetches on the configured cadence and reports whether the
// table was replaced. Calls inside the interval are no-ops unless there is
// no data at all yet.
func (b *basePlugin) refreshData() bool {
	if len(b.countries) > 0 && b.clock.Since(b.lastFetch) < b.cfg.UpdateInterval {
		return false
	}

	list, err := b.fetch.fetchCountries(b.cfg)
	b.countries = list
	b.lastFetch = b.clock.Now()
	if err != nil {
		b.lastErr = err.Error()
	} else {
		b.lastErr = ""
	}
	b.flags.prefetch(list)
	return true
}

// viewCountries filters the table for the active view mode. In usa_only
// mode a truncated in-memory table falls back to the full cached one so USA
// is found at any rank.
func (b *basePlugin) viewCountries() []Country {
	if b.cfg.ViewMode == ViewUSAOnly {
		if c, ok := findCountry(b.countries, "USA"); ok {
			return []Country{c}
		}
		if c, ok := b.fetch.lookupCountry(b.cfg, "USA"); ok {
			return []Country{c}
		}
		return nil
	}
	return topN(b.countries, b.cfg.TopN)
}

// applyConfig replaces the config and zeroes the fetch time so the next
// Update refetches and rerenders.
func (b *basePlugin) applyConfig(rawConfig []byte) {
	b.cfg = parseConfig(rawConfig)
	b.lastFetch = time.Time{}
	b.countries = nil
	b.logger.Printf("Config updated: mode=%s top_n=%d", b.cfg.ViewMode, b.cfg.TopN)
}

func (b *basePlugin) ValidateConfig() error {
	return validateConfig(b.cfg)
}

func (b *basePlugin) baseInfo() PluginInfo {
	return PluginInfo{
		ID:              b.id,
		ViewMode:        b.cfg.ViewMode,
		CountriesLoaded: len(b.countries),
		LastFetchTime:   b.lastFetch,
		LastError:       b.lastErr,
	}
}

func (b *basePlugin) baseCleanup() {
	b.logger.Printf("Cleaning up medal count plugin")
	b.flags.clear()
}

// guardFrame keeps a draw bug in one frame from killing the host loop.
func (b *basePlugin) guardFrame() {
	if r := recover(); r != nil {
		b.logger.Printf("Recovered display panic: %v", r)
	}
}

// pushFrame copies a frame into the display buffer, reallocating on size
// mismatch and rescaling frames that are not display sized, then flushes.
func (b *basePlugin) pushFrame(frame *image.RGBA) {
	buf := b.display.Image()
	if buf == nil || buf.Bounds().Dx() != b.width || buf.Bounds().Dy() != b.height {
		buf = image.NewRGBA(image.Rect(0, 0, b.width, b.height))
		b.display.SetImage(buf)
	}

	if frame.Bounds().Dx() == b.width && frame.Bounds().Dy() == b.height {
		draw.Draw(buf, buf.Bounds(), frame, frame.Bounds().Min, draw.Src)
	} else {
		xdraw.CatmullRom.Scale(buf, buf.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)
	}

	if err := b.display.UpdateDisplay(); err != nil {
		b.logger.Printf("Display update failed: %s", err.Error())
	}
}
