package medalcount

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// cacheKey is the host-cache slot shared by both plugin variants, holding
// the full sorted table so either one can serve the other's last good data.
const cacheKey = "olympic_medal_count"

// apiResponse is the envelope the live endpoint wraps the table in.
type apiResponse struct {
	Data []Country `json:"data"`
}

type fetcher struct {
	client *http.Client
	cache  CacheManager
	logger *log.Logger
}

// fetchCountries returns the medal table for the configured source and view
// mode. It never fails outward: a dead network degrades to the cached table
// (any age) or an empty one, with the fetch error returned alongside for
// diagnostics only. The returned list is truncated to top-N except in
// usa_only mode, which keeps the full table so USA is findable at any rank.
func (f *fetcher) fetchCountries(cfg Config) ([]Country, error) {
	list, err := f.fullTable(cfg)
	if cfg.ViewMode == ViewUSAOnly {
		return list, err
	}
	return topN(list, cfg.TopN), err
}

// fullTable produces the complete sorted table, consulting cache before
// network and writing the full list back on a successful fetch.
func (f *fetcher) fullTable(cfg Config) ([]Country, error) {
	if cfg.DataSource == SourcePlaceholder {
		list := placeholderCountries()
		sortCountries(list)
		return list, nil
	}

	// a fresh enough cached table short-circuits the network
	if list, ok := f.fromCache(cfg.CacheTTL); ok {
		f.logger.Printf("Using cached medal data (%d countries)", len(list))
		return list, nil
	}

	list, err := f.fromAPI(cfg.APIURL)
	if err != nil {
		f.logger.Printf("Medal fetch failed: %s", err.Error())
		// try the backup, stale is fine
		if stale, ok := f.fromCache(0); ok {
			f.logger.Printf("Falling back to stale cache (%d countries)", len(stale))
			return stale, err
		}
		return []Country{}, err
	}

	sortCountries(list)
	f.toCache(list)
	return list, nil
}

// lookupCountry finds a country in the full table even when the in-memory
// list was truncated below its rank.
func (f *fetcher) lookupCountry(cfg Config, code string) (Country, bool) {
	if cfg.DataSource == SourcePlaceholder {
		list := placeholderCountries()
		sortCountries(list)
		return findCountry(list, code)
	}
	if list, ok := f.fromCache(0); ok {
		return findCountry(list, code)
	}
	return Country{}, false
}

func (f *fetcher) fromAPI(url string) ([]Country, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, errors.Wrap(err, "medal api request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("medal api returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "medal api read")
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(err, "medal api decode")
	}

	return envelope.Data, nil
}

// fromCache reads the host cache slot; maxAge 0 accepts any age.
func (f *fetcher) fromCache(maxAge time.Duration) ([]Country, bool) {
	if f.cache == nil {
		return nil, false
	}
	data, ok := f.cache.Get(cacheKey, maxAge)
	if !ok {
		return nil, false
	}
	var list []Country
	if err := json.Unmarshal(data, &list); err != nil {
		f.logger.Printf("Discarding unreadable cache entry: %s", err.Error())
		return nil, false
	}
	return list, true
}

func (f *fetcher) toCache(list []Country) {
	if f.cache == nil {
		return
	}
	data, err := json.Marshal(list)
	if err != nil {
		f.logger.Printf("Could not encode medal table for cache: %s", err.Error())
		return
	}
	f.cache.Set(cacheKey, data)
}

// fetchBytes grabs a small http resource whole, for flag images and the
// like. Non-200s are errors here, unlike the medal endpoint's envelope.
func (f *fetcher) fetchBytes(url string) ([]byte, error) {
	resp, err := f.client.Get(url)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", url)
	}
	return body, nil
}
