package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type flogger interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// ThreadLogger prefixes every line with the worker name
type ThreadLogger struct {
	name string
}

func (tl *ThreadLogger) Printf(format string, v ...interface{}) {
	log.Printf("[%s] %s", tl.name, fmt.Sprintf(format, v...))
}

func (tl *ThreadLogger) Println(v ...interface{}) {
	log.Printf("[%s] %s", tl.name, strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

// send the standard logger to a rotating file, or stderr if there is no
// logFile setting. The returned logger must be closed on exit.
func setupLogging(settings configSettings) *lumberjack.Logger {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	fname := settings.GetString(sLogFile)
	if fname == "" {
		log.SetOutput(os.Stderr)
		return nil
	}

	lj := &lumberjack.Logger{
		Filename:   fname,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	log.SetOutput(lj)
	return lj
}
