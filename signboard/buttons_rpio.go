package main

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio/v4"
)

// rpioButtons reads real GPIO pins.
type rpioButtons struct {
	buttons map[string]button
}

func (rb *rpioButtons) initButtons(settings configSettings) error {
	return errors.Wrap(rpio.Open(), "gpio open")
}

func (rb *rpioButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	rb.buttons = make(map[string]button, len(pins))

	for name, bm := range pins {
		pin := rpio.Pin(bm.pin)
		pin.Input()
		// bias the pin against its wiring so an open circuit reads idle
		if bm.pullup {
			pin.PullUp()
		} else {
			pin.PullDown()
		}
		rb.buttons[name] = button{button: bm, rpin: pin}
	}
	return nil
}

func (rb *rpioButtons) getButtons() *map[string]button {
	return &rb.buttons
}

func (rb *rpioButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	readings := make(map[string]rpio.State, len(rb.buttons))
	for name, btn := range rb.buttons {
		readings[name] = btn.rpin.Read()
	}
	return readings, nil
}

func (rb *rpioButtons) closeButtons() {
	// leave rpio mapped, the led side may still be using it
}
