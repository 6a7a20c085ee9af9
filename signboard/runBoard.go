package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	medalcount "github.com/ZachSully4/ledmatrix-live-olympic-medal-count"
)

// board messages
const (
	msgNextPlugin = iota
	msgRefresh
	msgConfig
)

type boardMsg struct {
	id  int
	val interface{}
}

type configUpdate struct {
	name string
	raw  []byte
}

func configMsg(name string, raw []byte) boardMsg {
	return boardMsg{id: msgConfig, val: configUpdate{name: name, raw: raw}}
}

func toConfigUpdate(val interface{}) (*configUpdate, error) {
	switch v := val.(type) {
	case configUpdate:
		return &v, nil
	default:
		return nil, fmt.Errorf("Bad type: %T", v)
	}
}

// boardStatus is the snapshot served by the status API.
type boardStatus struct {
	Active  string                  `json:"active"`
	Since   time.Time               `json:"since"`
	Plugins []medalcount.PluginInfo `json:"plugins"`
}

type statusStore struct {
	mu  sync.Mutex
	cur boardStatus
}

func newStatusStore() *statusStore {
	return &statusStore{}
}

func (s *statusStore) set(b boardStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = b
}

func (s *statusStore) get() boardStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

type boardEntry struct {
	name   string
	raw    []byte
	plugin medalcount.Plugin
}

func init() {
	// wait group for runBoard
	wg.Add(1)
}

func buildPlugins(rt runtimeConfig, cache medalcount.CacheManager) []boardEntry {
	var entries []boardEntry
	for _, pc := range rt.settings.GetPlugins() {
		var p medalcount.Plugin
		opts := []medalcount.Option{
			medalcount.WithClock(rt.clock),
			medalcount.WithLogger(log.New(log.Writer(), "["+pc.name+"] ", log.LstdFlags)),
		}
		switch pc.name {
		case "ticker":
			p = medalcount.NewTicker(rt.display, cache, pc.raw, opts...)
		case "paged":
			p = medalcount.NewPaged(rt.display, cache, pc.raw, opts...)
		default:
			rt.logger.Printf("Unknown plugin %q, skipping", pc.name)
			continue
		}
		if err := p.ValidateConfig(); err != nil {
			rt.logger.Printf("Bad config for %s: %v", pc.name, err)
			continue
		}
		entries = append(entries, boardEntry{name: pc.name, raw: pc.raw, plugin: p})
	}
	return entries
}

func applyConfigUpdate(rt runtimeConfig, entries []boardEntry, upd *configUpdate) {
	for i := range entries {
		if entries[i].name != upd.name {
			continue
		}
		old := entries[i].raw
		entries[i].plugin.OnConfigChange(upd.raw)
		if err := entries[i].plugin.ValidateConfig(); err != nil {
			rt.logger.Printf("Rejecting config for %s: %v", upd.name, err)
			entries[i].plugin.OnConfigChange(old)
			return
		}
		entries[i].raw = upd.raw
		rt.logger.Printf("Applied new config for %s", upd.name)
		return
	}
	rt.logger.Printf("No plugin named %q", upd.name)
}

func publishStatus(rt runtimeConfig, entries []boardEntry, active int, showStart time.Time) {
	status := boardStatus{
		Active:  entries[active].name,
		Since:   showStart,
		Plugins: make([]medalcount.PluginInfo, 0, len(entries)),
	}
	for _, e := range entries {
		status.Plugins = append(status.Plugins, e.plugin.Info())
	}
	rt.status.set(status)
}

func startBoard(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Board"}
	go runBoard(rt)
}

func runBoard(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runBoard")
	}()

	settings := rt.settings
	comms := rt.comms

	cache := newFileCache(settings.GetString(sCacheFile), rt.clock)
	entries := buildPlugins(rt, cache)
	if len(entries) == 0 {
		rt.logger.Println("no usable plugins")
		close(comms.quit)
		return
	}
	defer func() {
		for _, e := range entries {
			e.plugin.Cleanup()
		}
	}()

	fps := settings.GetInt(sFPS)
	if fps <= 0 {
		fps = 30
	}
	dFrame := time.Second / time.Duration(fps)
	showTime := settings.GetDuration(sShowTime)
	errorPin := settings.GetInt(sLedPin)

	active := 0
	force := true
	ledErr := false
	showStart := rt.clock.Now()
	lastStatus := time.Time{}

	entries[active].plugin.ResetCycleState()

	for {
		select {
		case <-comms.quit:
			rt.logger.Println("got a quit signal in runBoard")
			return
		case msg := <-comms.board:
			switch msg.id {
			case msgNextPlugin:
				rt.logger.Println("switching to next plugin")
				active = (active + 1) % len(entries)
				entries[active].plugin.ResetCycleState()
				showStart = rt.clock.Now()
				force = true
			case msgRefresh:
				rt.logger.Println("forcing a data refresh")
				// reapplying the config zeroes the fetch timer
				entries[active].plugin.OnConfigChange(entries[active].raw)
			case msgConfig:
				upd, err := toConfigUpdate(msg.val)
				if err != nil {
					rt.logger.Printf("%v", err)
					break
				}
				applyConfigUpdate(rt, entries, upd)
			default:
				rt.logger.Printf("Unhandled board message %d", msg.id)
			}
		default:
			rt.clock.Sleep(dFrame)
		}

		e := entries[active]
		e.plugin.Update()
		e.plugin.Display(force)
		force = false

		// error LED tracks the active plugin's last fetch result
		info := e.plugin.Info()
		if hasErr := info.LastError != ""; hasErr != ledErr {
			ledErr = hasErr
			if ledErr {
				comms.leds <- ledMessage(errorPin, modeBlink50, 0)
			} else {
				comms.leds <- ledOff(errorPin)
			}
		}

		// rotate when the plugin reports a finished cycle or its time is up
		show := showTime
		if e.plugin.SupportsDynamicDuration() {
			if d := e.plugin.DisplayDuration(); d > 0 {
				show = d
			}
		}
		if e.plugin.IsCycleComplete() || rt.clock.Since(showStart) >= show {
			active = (active + 1) % len(entries)
			entries[active].plugin.ResetCycleState()
			showStart = rt.clock.Now()
			force = true
		}

		if now := rt.clock.Now(); now.Sub(lastStatus) >= time.Second {
			publishStatus(rt, entries, active, showStart)
			lastStatus = now
		}
	}
}
