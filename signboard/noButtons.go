package main

import (
	"github.com/stianeikeland/go-rpio/v4"
)

// noButtons is the headless backend. Nothing is ever pressed unless a test
// drives it through press and clear.
type noButtons struct {
	buttons map[string]button
	states  map[string]rpio.State
}

func (nb *noButtons) initButtons(settings configSettings) error {
	return nil
}

func (nb *noButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	nb.buttons = make(map[string]button, len(pins))
	nb.states = make(map[string]rpio.State, len(pins))
	for name, bm := range pins {
		nb.buttons[name] = button{button: bm}
		nb.states[name] = electricalState(bm, false)
	}
	return nil
}

func (nb *noButtons) getButtons() *map[string]button {
	return &nb.buttons
}

func (nb *noButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	return nb.states, nil
}

func (nb *noButtons) closeButtons() {
}

// press simulates the named button going down, honoring its wiring.
func (nb *noButtons) press(name string) {
	nb.states[name] = electricalState(nb.buttons[name].button, true)
}

// clear releases every simulated button.
func (nb *noButtons) clear() {
	for name, btn := range nb.buttons {
		nb.states[name] = electricalState(btn.button, false)
	}
}
