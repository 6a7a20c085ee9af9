package main

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/buger/jsonparser"
)

// settings keys
const (
	sDisplay    = "display"
	sButtons    = "buttons"
	sWidth      = "width"
	sHeight     = "height"
	sFPS        = "fps"
	sShowTime   = "showTime"
	sLogFile    = "logFile"
	sDebug      = "debug_dump"
	sCacheFile  = "cacheFile"
	sHTTPAddr   = "httpAddr"
	sAPIUser    = "apiUser"
	sAPISecret  = "apiSecret"
	sLedPin     = "errorLedPin"
	sLedSim     = "led_simulated"
	sMainBtn    = "mainButton"
	sRefreshBtn = "refreshButton"
	sPlugins    = "plugins"
)

// buttonMap ties a logical button to a GPIO pin and a sim-mode key.
type buttonMap struct {
	pin    int
	key    string
	pullup bool
}

// pluginConfig is one named section under "plugins", kept raw so the plugin
// parses its own options.
type pluginConfig struct {
	name string
	raw  []byte
}

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
	plugins  []pluginConfig
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	s[sDisplay] = "termbox"
	s[sButtons] = "key"
	s[sWidth] = 128
	s[sHeight] = 64
	s[sFPS] = 30
	s[sShowTime], _ = time.ParseDuration("30s")
	s[sLogFile] = "/var/log/signboard.log"
	s[sDebug] = false
	s[sCacheFile] = "/var/cache/signboard/data.json"
	s[sHTTPAddr] = ":8080"
	s[sAPIUser] = "signboard"
	s[sAPISecret] = ""
	s[sLedPin] = 23
	s[sMainBtn] = buttonMap{pin: 25, key: "n", pullup: true}
	s[sRefreshBtn] = buttonMap{pin: 24, key: "r", pullup: true}

	// real GPIO only makes sense on the pi
	s[sLedSim] = runtime.GOARCH != "arm"

	return configSettings{settings: s}
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	tmp := defaultSettings()
	for k, initVal := range tmp.settings {
		// ignore missing fields
		if _, _, _, err := jsonparser.Get(data, k); err != nil {
			continue
		}

		var err error
		switch initVal.(type) {
		case int:
			var val int64
			val, err = jsonparser.GetInt(data, k)
			s.settings[k] = int(val)
		case bool:
			var bVal bool
			bVal, err = jsonparser.GetBoolean(data, k)
			if err != nil {
				// try true and false as strings
				sv, _ := jsonparser.GetString(data, k)
				switch strings.ToLower(sv) {
				case "true":
					bVal = true
				case "false":
					bVal = false
				default:
					return err
				}
				err = nil
			}
			s.settings[k] = bVal
		case time.Duration:
			var dur string
			dur, err = jsonparser.GetString(data, k)
			if err == nil {
				var dur2 time.Duration
				dur2, err = time.ParseDuration(dur)
				if err == nil {
					s.settings[k] = dur2
				}
			}
		case string:
			s.settings[k], err = jsonparser.GetString(data, k)
		case buttonMap:
			s.settings[k], err = buttonMapFromJSON(data, k, initVal.(buttonMap))
		default:
			err = fmt.Errorf("bad setting type: %T", initVal)
		}
		if err != nil {
			return err
		}
	}

	// plugin sections stay raw; order in the file is rotation order
	s.plugins = nil
	if raw, dt, _, err := jsonparser.Get(data, sPlugins); err == nil && dt == jsonparser.Object {
		err = jsonparser.ObjectEach(raw, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
			cfg := make([]byte, len(value))
			copy(cfg, value)
			s.plugins = append(s.plugins, pluginConfig{name: string(key), raw: cfg})
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func buttonMapFromJSON(data []byte, key string, def buttonMap) (buttonMap, error) {
	bm := def
	if pin, err := jsonparser.GetInt(data, key, "pin"); err == nil {
		bm.pin = int(pin)
	}
	if k, err := jsonparser.GetString(data, key, "key"); err == nil && k != "" {
		bm.key = k
	}
	if pullup, err := jsonparser.GetBoolean(data, key, "pullup"); err == nil {
		bm.pullup = pullup
	}
	return bm, nil
}

func initSettings(configFile string) configSettings {
	log.Println("initSettings")

	// defaults
	s := defaultSettings()

	// try to open the config file
	data, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatalf("Could not load conf file '%s', terminating", configFile)
	}

	log.Printf("Reading configuration from '%s'", configFile)

	if err := s.settingsFromJSON(data); err != nil {
		log.Fatal(err.Error())
	}

	return s
}

func (s *configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s *configSettings) GetButtonMap(key string) buttonMap {
	switch v := s.settings[key].(type) {
	case buttonMap:
		return v
	default:
		return buttonMap{}
	}
}

func (s *configSettings) GetAllButtonNames() []string {
	names := []string{}
	for k, v := range s.settings {
		if _, ok := v.(buttonMap); ok {
			names = append(names, k)
		}
	}
	return names
}

// GetPlugins returns the raw plugin sections in file order. With no plugins
// section, both variants run with their built-in defaults.
func (s *configSettings) GetPlugins() []pluginConfig {
	if len(s.plugins) == 0 {
		return []pluginConfig{
			{name: "ticker", raw: []byte("{}")},
			{name: "paged", raw: []byte("{}")},
		}
	}
	return s.plugins
}

func (s *configSettings) Dump() {
	for k, v := range s.settings {
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
