package main

import (
	"log"

	"github.com/stianeikeland/go-rpio/v4"
)

// rpioLed drives status pins through the pi's GPIO header. The LEDs are
// auxiliary, so a missing chip (dev box, no /dev/gpiomem) downgrades to a
// no-op instead of taking the board down.
type rpioLed struct {
	ready    bool
	asOutput map[int]bool
}

func (r *rpioLed) init() {
	if err := rpio.Open(); err != nil {
		log.Printf("gpio unavailable, led output disabled: %v", err)
		return
	}
	r.ready = true
	r.asOutput = make(map[int]bool)
}

func (r *rpioLed) set(pinNum int, on bool) {
	if !r.ready {
		return
	}
	pin := rpio.Pin(pinNum)
	if !r.asOutput[pinNum] {
		pin.Output()
		r.asOutput[pinNum] = true
	}
	if on {
		pin.High()
	} else {
		pin.Low()
	}
}

func (r *rpioLed) on(pin int) {
	r.set(pin, true)
}

func (r *rpioLed) off(pin int) {
	r.set(pin, false)
}
