// Package medalcount renders a live Olympic medal leaderboard on a small LED
// matrix. It plugs into a signage host that owns the display hardware, the
// shared cache, and the scheduling loop; the plugin only fills frames.
package medalcount

import (
	"image"
	"time"
)

// Plugin is the lifecycle contract the signage host drives. Update may block
// on the network; Display must not.
type Plugin interface {
	// Update refreshes plugin data on its configured interval.
	Update()
	// Display renders the current frame and pushes it to the matrix.
	Display(forceClear bool)
	// OnConfigChange swaps in a new raw JSON config section.
	OnConfigChange(raw []byte)
	// ValidateConfig reports whether the current config is usable.
	ValidateConfig() error
	// Info returns a diagnostic snapshot for the host status surface.
	Info() PluginInfo
	// Cleanup releases render state when the host unloads the plugin.
	Cleanup()

	// duration/cycle hooks for the host scheduler
	SupportsDynamicDuration() bool
	IsCycleComplete() bool
	DisplayDuration() time.Duration
	ResetCycleState()
}

// DisplayManager is the host-owned matrix surface.
type DisplayManager interface {
	Size() (w, h int)
	// Image is the current frame buffer; nil until a plugin sets one.
	Image() *image.RGBA
	SetImage(img *image.RGBA)
	// UpdateDisplay pushes the frame buffer to the hardware.
	UpdateDisplay() error
	Clear()
}

// CacheManager is the host-owned TTL cache shared across plugins.
type CacheManager interface {
	// Get returns the stored value if it is younger than maxAge.
	// maxAge <= 0 means any age is acceptable.
	Get(key string, maxAge time.Duration) ([]byte, bool)
	Set(key string, value []byte)
}

// PluginInfo is the get-info snapshot reported to the host.
type PluginInfo struct {
	ID              string                 `json:"id"`
	ViewMode        string                 `json:"view_mode"`
	CountriesLoaded int                    `json:"countries_loaded"`
	LastFetchTime   time.Time              `json:"last_fetch_time"`
	LastError       string                 `json:"last_error,omitempty"`
	Scroll          map[string]interface{} `json:"scroll_info,omitempty"`
	PageIndex       int                    `json:"page_index,omitempty"`
}
