// utility types shared by the workers
package main

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// worker loop resolutions
const (
	dButtonSleep = 10 * time.Millisecond
	dLEDSleep    = 10 * time.Millisecond
	dSvcSleep    = 100 * time.Millisecond
)

type commChannels struct {
	quit  chan struct{}
	board chan boardMsg
	leds  chan ledEffect
}

type runtimeConfig struct {
	settings  configSettings
	clock     clockwork.Clock
	comms     commChannels
	display   boardDisplay
	buttons   buttons
	led       led
	status    *statusStore
	statusSvc statusService
	logger    flogger
}

func initCommChannels() commChannels {
	return commChannels{
		quit:  make(chan struct{}, 1),
		board: make(chan boardMsg, 5),
		leds:  make(chan ledEffect, 10),
	}
}

func initRuntime(settings configSettings) runtimeConfig {
	rt := runtimeConfig{
		settings: settings,
		clock:    clockwork.NewRealClock(),
		comms:    initCommChannels(),
		status:   newStatusStore(),
		logger:   &ThreadLogger{name: "Board"},
	}

	var tb *termboxDisplay
	switch settings.GetString(sDisplay) {
	case "window":
		rt.display = newWindowDisplay()
	case "log":
		rt.display = newLogDisplay()
	default:
		tb = &termboxDisplay{}
		rt.display = tb
	}

	switch settings.GetString(sButtons) {
	case "rpio":
		rt.buttons = &rpioButtons{}
	case "none":
		rt.buttons = &noButtons{}
	default:
		if _, ok := rt.display.(*windowDisplay); ok {
			// the window reads its own keys, termbox would fight it
			rt.buttons = &noButtons{}
		} else {
			// key buttons share the termbox session when the display owns one
			rt.buttons = &keyButtons{display: tb}
		}
	}

	if settings.GetBool(sLedSim) {
		rt.led = &logLed{}
	} else {
		rt.led = &rpioLed{}
	}

	rt.statusSvc = &httpStatusService{}
	return rt
}

// initTestRuntime wires fake everything: fake clock, recording display,
// settable buttons, log led, no http.
func initTestRuntime(settings configSettings) runtimeConfig {
	return runtimeConfig{
		settings:  settings,
		clock:     clockwork.NewFakeClock(),
		comms:     initCommChannels(),
		display:   newLogDisplay(),
		buttons:   &noButtons{},
		led:       &logLed{},
		status:    newStatusStore(),
		statusSvc: &testStatusService{},
		logger:    &ThreadLogger{name: "Test"},
	}
}
