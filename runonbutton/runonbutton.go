// runonbutton watches a GPIO pin and runs a command on every press. It sits
// next to the signboard service so a panel button can bounce it:
//
//	BUTTON=17 PULLUP=1 RUNPROG="systemctl restart signboard" runonbutton
package main

import (
	"log"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/stianeikeland/go-rpio/v4"
)

func main() {
	pinS, havePin := os.LookupEnv("BUTTON")
	prog, haveProg := os.LookupEnv("RUNPROG")
	_, pullup := os.LookupEnv("PULLUP")

	if !havePin || !haveProg {
		log.Fatalf("Must provide a BUTTON and RUNPROG in the environment: %q : %q", pinS, prog)
	}
	pinNum, err := strconv.ParseInt(pinS, 0, 64)
	if err != nil {
		log.Fatalf("%s is not a pin number", pinS)
	}

	if err := rpio.Open(); err != nil {
		log.Fatal(err.Error())
	}
	defer rpio.Close()

	pin := rpio.Pin(pinNum)
	pin.Input()
	var pressed rpio.State
	if pullup {
		pin.PullUp() // GND => button press
		pressed = rpio.Low
	} else {
		pin.PullDown() // +V => button press
		pressed = rpio.High
	}

	log.Printf("Watching pin %d (pullup=%v) to run %q", pinNum, pullup, prog)
	for {
		if pin.Read() == pressed {
			log.Printf("Running %s", prog)
			out, err := exec.Command("/bin/sh", "-c", prog).CombinedOutput()
			if err != nil {
				log.Println(err.Error())
			}
			log.Printf("%s", out)

			// wait for the release so a held button runs it once
			for pin.Read() == pressed {
				time.Sleep(30 * time.Millisecond)
			}
		}
		time.Sleep(30 * time.Millisecond)
	}
}
