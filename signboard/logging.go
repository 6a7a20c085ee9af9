package main

import (
	"io"
	"log"
	"os"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// flogger is the logging surface handed to workers; ThreadLogger tags each
// line with the worker name so interleaved loops stay readable.
type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ThreadLogger - per-worker prefixed logger over the global log
type ThreadLogger struct {
	name string
}

func (t *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Printf("["+t.name+"] "+format, v...)
}

func (t *ThreadLogger) Println(v ...interface{}) {
	log.Println(append([]interface{}{"[" + t.name + "]"}, v...)...)
}

// setupLogging points the global logger at a rotating file. With an empty
// logFile setting everything stays on stderr (useful for sim runs).
func setupLogging(settings configSettings, alsoStderr bool) {
	logFile := settings.GetString(sLogFile)
	if logFile == "" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	if alsoStderr {
		log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	} else {
		log.SetOutput(rotator)
	}
}
