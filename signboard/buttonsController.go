package main

import (
	"time"

	"github.com/stianeikeland/go-rpio/v4"
)

// pressState tracks one button across scans.
type pressState struct {
	pressed bool
	start   time.Time // when the current state began
	count   int       // whole seconds held so far
	changed bool      // true when this scan altered anything
}

// observe folds one electrical reading into the state.
func (p pressState) observe(now time.Time, down bool) pressState {
	switch {
	case down && p.pressed:
		held := int(now.Sub(p.start) / time.Second)
		return pressState{pressed: true, start: p.start, count: held, changed: held != p.count}
	case down:
		return pressState{pressed: true, start: now, changed: true}
	case p.pressed:
		return pressState{start: now, changed: true}
	default:
		// staying unpressed is not a change
		p.changed = false
		return p
	}
}

// pressEdge reports a fresh press, as opposed to a hold crossing another
// whole second.
func pressEdge(st pressState) bool {
	return st.changed && st.pressed && st.count == 0
}

type button struct {
	button buttonMap
	rpin   rpio.Pin
	state  pressState
}

func init() {
	// for runWatchButtons
	wg.Add(1)
}

// checkButtons scans the backend once and folds the readings into its
// button table.
func checkButtons(rt runtimeConfig) (map[string]button, error) {
	readings, err := rt.buttons.readButtons(rt)
	if err != nil {
		return nil, err
	}

	now := rt.clock.Now()
	btns := rt.buttons.getButtons()
	for name, btn := range *btns {
		down := readings[name] == electricalState(btn.button, true)
		btn.state = btn.state.observe(now, down)
		if btn.state.changed {
			rt.logger.Printf("button %s: %+v", name, btn.state)
		}
		(*btns)[name] = btn
	}

	return *btns, nil
}

func startWatchButtons(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Buttons"}
	go runWatchButtons(rt)
}

// buttonActions maps a button name to the board message its press sends.
var buttonActions = map[string]int{
	sMainBtn:    msgNextPlugin,
	sRefreshBtn: msgRefresh,
}

func runWatchButtons(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runWatchButtons")
	}()

	settings := rt.settings
	comms := rt.comms
	if err := rt.buttons.initButtons(settings); err != nil {
		rt.logger.Println(err.Error())
		return
	}
	defer rt.buttons.closeButtons()

	pins := map[string]buttonMap{
		sMainBtn:    settings.GetButtonMap(sMainBtn),
		sRefreshBtn: settings.GetButtonMap(sRefreshBtn),
	}
	if err := rt.buttons.setupButtons(pins, rt); err != nil {
		rt.logger.Println(err.Error())
		return
	}

	for {
		select {
		case <-comms.quit:
			rt.logger.Println("quit from runWatchButtons (surprise)")
			return
		default:
		}

		scanned, err := checkButtons(rt)
		if err != nil {
			// dead GPIO, bring the whole board down
			rt.logger.Println("quit from runWatchButtons")
			close(comms.quit)
			return
		}

		for name, btn := range scanned {
			if !pressEdge(btn.state) {
				continue
			}
			id, ok := buttonActions[name]
			if !ok {
				rt.logger.Printf("unhandled button %s", name)
				continue
			}
			rt.logger.Printf("button %s pressed", name)
			comms.board <- boardMsg{id: id}
		}

		rt.clock.Sleep(dButtonSleep)
	}
}
