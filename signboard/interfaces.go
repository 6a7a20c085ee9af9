package main

import (
	"github.com/stianeikeland/go-rpio/v4"

	medalcount "github.com/ZachSully4/ledmatrix-live-olympic-medal-count"
)

// boardDisplay is a matrix backend. Plugins only ever see the embedded
// DisplayManager half; open/close stay on the board side.
type boardDisplay interface {
	medalcount.DisplayManager
	open(settings configSettings) error
	closeDisplay()
}

type buttons interface {
	readButtons(rt runtimeConfig) (map[string]rpio.State, error)
	setupButtons(pins map[string]buttonMap, rt runtimeConfig) error
	initButtons(settings configSettings) error
	closeButtons()
	getButtons() *map[string]button
}

type led interface {
	init()
	set(pin int, on bool)
	on(pin int)
	off(pin int)
}

type statusService interface {
	launch(handler *apiHandler, addr string)
	stop()
}
