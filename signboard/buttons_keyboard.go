package main

import (
	"time"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio/v4"
)

// keyButtons simulates GPIO buttons with terminal keys: each press of a
// button's key toggles it, since terminals have no key-up events. When the
// termbox display is active the same session is shared; otherwise this
// backend owns termbox itself.
type keyButtons struct {
	buttons map[string]button
	display *termboxDisplay
	owns    bool
}

func (kb *keyButtons) getButtons() *map[string]button {
	return &kb.buttons
}

func (kb *keyButtons) initButtons(settings configSettings) error {
	if kb.display != nil && kb.display.opened {
		return nil
	}
	if err := termbox.Init(); err != nil {
		return err
	}
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	termbox.Flush()
	kb.owns = true
	return nil
}

func (kb *keyButtons) closeButtons() {
	if kb.owns {
		termbox.Close()
	}
}

func (kb *keyButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	kb.buttons = make(map[string]button, len(pins))
	for name, bm := range pins {
		kb.buttons[name] = button{button: bm}
	}
	return nil
}

func (kb *keyButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	readings := make(map[string]rpio.State, len(kb.buttons))

	// poll with a quick timeout; no key means "no change"
	go func() {
		rt.clock.Sleep(100 * time.Millisecond)
		termbox.Interrupt()
	}()

	var ev termbox.Event
	for waiting := true; waiting; {
		got := termbox.PollEvent()
		switch got.Type {
		case termbox.EventKey:
			if got.Key == termbox.KeyCtrlC {
				return readings, errors.New("exit termbox loop")
			}
			ev = got
		default:
			// the interrupt fired
			waiting = false
		}
	}

	// a matching char toggles that button; everything else keeps state
	for name, btn := range kb.buttons {
		pressed := btn.state.pressed
		if btn.button.key != "" && btn.button.key[0] == byte(ev.Ch) {
			pressed = !pressed
		}
		readings[name] = electricalState(btn.button, pressed)
	}

	return readings, nil
}

// electricalState translates a logical press into the pin level checkButtons
// expects for this button's pullup config.
func electricalState(bm buttonMap, pressed bool) rpio.State {
	if bm.pullup {
		if pressed {
			return rpio.Low
		}
		return rpio.High
	}
	if pressed {
		return rpio.High
	}
	return rpio.Low
}
