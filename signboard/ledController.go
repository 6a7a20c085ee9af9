package main

import (
	"time"
)

const (
	modeOff = iota
	modeOn
	modeBlink10 // dark 10% of each second
	modeBlink25
	modeBlink50
	modeBlink75
	modeBlink90 // dark 90% of each second
)

// ledCycle is the period every blink mode divides.
const ledCycle = time.Second

// litPortion returns how long per cycle the pin conducts.
func litPortion(mode int) time.Duration {
	switch mode {
	case modeBlink10:
		return ledCycle * 9 / 10
	case modeBlink25:
		return ledCycle * 3 / 4
	case modeBlink50:
		return ledCycle / 2
	case modeBlink75:
		return ledCycle / 4
	case modeBlink90:
		return ledCycle / 10
	default:
		return ledCycle
	}
}

// ledEffect is both the message sent to the controller and the state it
// keeps per pin. lit, since and flippedAt belong to the controller.
type ledEffect struct {
	pin      int
	mode     int
	duration time.Duration // 0 = forever, <0 = settled, nothing left to do
	force    bool          // restart the effect even if nothing changed

	lit       bool
	since     time.Time
	flippedAt time.Time
}

func init() {
	// wait group for runLEDController
	wg.Add(1)
}

func ledMessage(pin int, mode int, duration time.Duration) ledEffect {
	return ledEffect{pin: pin, mode: mode, duration: duration}
}

func ledMessageForce(pin int, mode int, duration time.Duration) ledEffect {
	return ledEffect{pin: pin, mode: mode, duration: duration, force: true}
}

func ledOn(pin int) ledEffect {
	return ledMessage(pin, modeOn, 0)
}

func ledOff(pin int) ledEffect {
	return ledMessage(pin, modeOff, 0)
}

// resets reports whether an incoming message should restart the effect
// already running on its pin. Repeating a timed effect restarts its window;
// repeating an untimed one is a no-op.
func (e ledEffect) resets(msg ledEffect) bool {
	if msg.force || msg.mode != e.mode {
		return true
	}
	return e.duration > 0 && msg.duration > 0
}

func (e *ledEffect) initiate(dev led, now time.Time) {
	e.lit = e.mode != modeOff
	if e.lit {
		dev.on(e.pin)
	} else {
		dev.off(e.pin)
		// a plain off never needs another look
		e.duration = -1
	}
	e.since = now
	e.flippedAt = now
}

func (e *ledEffect) expire(dev led) {
	if e.lit {
		dev.off(e.pin)
		e.lit = false
	}
	e.duration = -1
}

// step toggles a blinking pin when its current phase has run out.
func (e *ledEffect) step(dev led, now time.Time) {
	up := litPortion(e.mode)
	if e.lit {
		if up < ledCycle && now.Sub(e.flippedAt) >= up {
			dev.off(e.pin)
			e.lit = false
			e.flippedAt = now
		}
	} else if now.Sub(e.flippedAt) >= ledCycle-up {
		dev.on(e.pin)
		e.lit = true
		e.flippedAt = now
	}
}

func startLEDController(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "LEDs"}
	go runLEDController(rt)
}

func runLEDController(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runLEDController")
	}()

	comms := rt.comms
	active := make(map[int]ledEffect)

	rt.led.init()

	for {
		// drain the queue before touching any pins
		for drained := false; !drained; {
			select {
			case <-comms.quit:
				rt.logger.Println("got a quit signal in runLEDController")
				return
			case msg := <-comms.leds:
				cur, tracked := active[msg.pin]
				switch {
				case tracked && !cur.resets(msg):
					// same effect already running
				case !tracked && msg.mode == modeOff && !msg.force:
					// nothing to switch off
				default:
					rt.logger.Printf("led %d: mode %d for %v", msg.pin, msg.mode, msg.duration)
					msg.force = false
					active[msg.pin] = msg
				}
			default:
				drained = true
			}
		}

		now := rt.clock.Now()
		for pin, eff := range active {
			switch {
			case eff.duration < 0:
				continue
			case eff.since.IsZero():
				eff.initiate(rt.led, now)
			case eff.duration > 0 && now.Sub(eff.since) >= eff.duration:
				eff.expire(rt.led)
			default:
				eff.step(rt.led, now)
			}
			active[pin] = eff
		}

		rt.clock.Sleep(dLEDSleep)
	}
}
