package medalcount

import (
	"fmt"
	"time"

	"github.com/buger/jsonparser"
)

// view modes accepted by validateConfig
const (
	ViewTop5    = "top5"
	ViewUSAOnly = "usa_only"
)

// data sources
const (
	SourceLive        = "live"
	SourcePlaceholder = "placeholder"
)

// DefaultAPIURL is the public medal count endpoint used by the live source.
const DefaultAPIURL = "https://apis.codante.io/olympic-games/countries"

// Config is the plugin section of the host config file. Every field has a
// default; a missing or partial section is always usable.
type Config struct {
	// display_options
	ViewMode         string
	ScrollSpeed      float64 // pixels per frame
	ScrollDelay      time.Duration
	TargetFPS        int
	RotationInterval time.Duration // paged mode: time per country
	FontsDir         string

	// data_settings
	UpdateInterval time.Duration
	CacheTTL       time.Duration
	TopN           int
	DataSource     string
	APIURL         string
}

func defaultConfig() Config {
	return Config{
		ViewMode:         ViewTop5,
		ScrollSpeed:      2.0,
		ScrollDelay:      50 * time.Millisecond,
		TargetFPS:        120,
		RotationInterval: 5 * time.Second,
		FontsDir:         "assets/fonts",
		UpdateInterval:   300 * time.Second,
		CacheTTL:         300 * time.Second,
		TopN:             5,
		DataSource:       SourceLive,
		APIURL:           DefaultAPIURL,
	}
}

// parseConfig fills a Config from a raw JSON section. Missing keys keep
// their defaults; the host passes whatever mapping it has and we cope.
func parseConfig(raw []byte) Config {
	cfg := defaultConfig()
	if len(raw) == 0 {
		return cfg
	}

	if s, err := jsonparser.GetString(raw, "display_options", "view_mode"); err == nil {
		cfg.ViewMode = s
	}
	if f, err := jsonparser.GetFloat(raw, "display_options", "scroll_speed"); err == nil {
		cfg.ScrollSpeed = f
	}
	if f, err := jsonparser.GetFloat(raw, "display_options", "scroll_delay"); err == nil {
		cfg.ScrollDelay = secondsToDuration(f)
	}
	if n, err := jsonparser.GetInt(raw, "display_options", "target_fps"); err == nil {
		cfg.TargetFPS = int(n)
	}
	if f, err := jsonparser.GetFloat(raw, "display_options", "rotation_interval"); err == nil {
		cfg.RotationInterval = secondsToDuration(f)
	}
	if s, err := jsonparser.GetString(raw, "display_options", "fonts_dir"); err == nil {
		cfg.FontsDir = s
	}

	if f, err := jsonparser.GetFloat(raw, "data_settings", "update_interval"); err == nil {
		cfg.UpdateInterval = secondsToDuration(f)
	}
	if f, err := jsonparser.GetFloat(raw, "data_settings", "cache_ttl"); err == nil {
		cfg.CacheTTL = secondsToDuration(f)
	}
	if n, err := jsonparser.GetInt(raw, "data_settings", "top_n_countries"); err == nil {
		cfg.TopN = int(n)
	}
	if s, err := jsonparser.GetString(raw, "data_settings", "data_source"); err == nil {
		cfg.DataSource = s
	}
	if s, err := jsonparser.GetString(raw, "data_settings", "api_url"); err == nil {
		cfg.APIURL = s
	}

	return cfg
}

// secondsToDuration converts the float seconds the config file uses
// (e.g. scroll_delay: 0.05) into a Duration.
func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func validateConfig(cfg Config) error {
	switch cfg.ViewMode {
	case ViewTop5, ViewUSAOnly:
	default:
		return fmt.Errorf("invalid view_mode: %q (must be %q or %q)", cfg.ViewMode, ViewTop5, ViewUSAOnly)
	}
	switch cfg.DataSource {
	case SourceLive, SourcePlaceholder:
	default:
		return fmt.Errorf("invalid data_source: %q (must be %q or %q)", cfg.DataSource, SourceLive, SourcePlaceholder)
	}
	return nil
}
