package main

import (
	"fmt"
)

// logLed records pin writes instead of driving GPIO. Tests read the pin
// states and the audit trail. A map means any configured pin number works,
// not just the header's first 32.
type logLed struct {
	leds       map[int]bool
	audit      []string
	disableLog bool
	logger     flogger
}

func (ll *logLed) init() {
	ll.leds = make(map[int]bool)
	ll.audit = nil
	ll.logger = &ThreadLogger{name: "LEDs"}
}

func (ll *logLed) set(pin int, on bool) {
	ll.leds[pin] = on
	entry := fmt.Sprintf("led %d -> %v", pin, on)
	if !ll.disableLog {
		ll.logger.Println(entry)
	}
	ll.audit = append(ll.audit, entry)
}

func (ll *logLed) on(pin int) {
	ll.set(pin, true)
}

func (ll *logLed) off(pin int) {
	ll.set(pin, false)
}
