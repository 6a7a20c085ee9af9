package main

import (
	"flag"
	"log"
	"sync"
)

var wg sync.WaitGroup

// signboard -config={config file}

func main() {
	configFile := flag.String("config", "/etc/default/signboard/signboard.conf", "config file path")
	stderr := flag.Bool("stderr", false, "also log to stderr")
	flag.Parse()

	settings := initSettings(*configFile)
	setupLogging(settings, *stderr)

	if settings.GetBool(sDebug) {
		settings.Dump()
	}

	rt := initRuntime(settings)

	if err := rt.display.open(settings); err != nil {
		log.Fatalf("could not open display: %v", err)
	}
	defer rt.display.closeDisplay()

	startWatchButtons(rt)
	startLEDController(rt)
	startStatusService(rt)
	startBoard(rt)

	// window mode owns the main goroutine until the window closes
	if wd, ok := rt.display.(*windowDisplay); ok {
		if err := wd.runWindow(rt); err != nil {
			log.Printf("window exited: %v", err)
		}
		select {
		case <-rt.comms.quit:
		default:
			close(rt.comms.quit)
		}
	}

	wg.Wait()
}
