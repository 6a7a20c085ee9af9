package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
)

// cacheEntry is one stamped value; the stamp drives per-read max-age checks.
type cacheEntry struct {
	Stamp time.Time `json:"stamp"`
	Data  []byte    `json:"data"`
}

// fileCache backs the plugin cache contract with an in-memory store
// persisted to a single JSON file, so stale-data fallback works across
// restarts. Entries never expire on their own; freshness is the reader's
// call via maxAge.
type fileCache struct {
	store  *gocache.Cache
	path   string
	clock  clockwork.Clock
	logger flogger

	mu sync.Mutex // serializes file writes
}

func newFileCache(path string, clock clockwork.Clock) *fileCache {
	fc := &fileCache{
		store:  gocache.New(gocache.NoExpiration, 10*time.Minute),
		path:   path,
		clock:  clock,
		logger: &ThreadLogger{name: "Cache"},
	}
	if err := fc.load(); err != nil {
		fc.logger.Printf("No cache restored: %s", err.Error())
	}
	return fc
}

// Get returns the stored value when it is younger than maxAge; maxAge <= 0
// accepts any age.
func (fc *fileCache) Get(key string, maxAge time.Duration) ([]byte, bool) {
	item, ok := fc.store.Get(key)
	if !ok {
		return nil, false
	}
	entry, ok := item.(cacheEntry)
	if !ok {
		return nil, false
	}
	if maxAge > 0 && fc.clock.Since(entry.Stamp) > maxAge {
		return nil, false
	}
	return entry.Data, true
}

func (fc *fileCache) Set(key string, value []byte) {
	data := make([]byte, len(value))
	copy(data, value)
	fc.store.Set(key, cacheEntry{Stamp: fc.clock.Now(), Data: data}, gocache.NoExpiration)
	if err := fc.persist(); err != nil {
		fc.logger.Printf("Cache persist failed: %s", err.Error())
	}
}

func (fc *fileCache) persist() error {
	if fc.path == "" {
		return nil
	}

	entries := make(map[string]cacheEntry)
	for k, item := range fc.store.Items() {
		if entry, ok := item.Object.(cacheEntry); ok {
			entries[k] = entry
		}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return errors.Wrap(err, "encode cache")
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(fc.path), 0755); err != nil {
		return errors.Wrap(err, "cache dir")
	}
	return os.WriteFile(fc.path, data, 0644)
}

func (fc *fileCache) load() error {
	if fc.path == "" {
		return nil
	}

	data, err := os.ReadFile(fc.path)
	if err != nil {
		return err
	}

	var entries map[string]cacheEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return errors.Wrap(err, "decode cache")
	}

	for k, entry := range entries {
		fc.store.Set(k, entry, gocache.NoExpiration)
	}
	fc.logger.Printf("Restored %d cache entries from %s", len(entries), fc.path)
	return nil
}
