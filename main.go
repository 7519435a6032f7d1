package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jonboulle/clockwork"
)

var wg sync.WaitGroup

// ledsequencer -config={config file} -demo={walk|sos|glow|pulse|lightshow} -board={log|console|rpio}

func main() {
	configFile := flag.String("config", "", "JSON settings file")
	demo := flag.String("demo", "", "demo to run, overrides the config file")
	boardName := flag.String("board", "", "output board, overrides the config file")
	flag.Parse()

	settings, err := initSettings(*configFile)
	if err != nil {
		log.Fatalf("Settings: %v", err)
	}
	if err := applyOverrides(settings, *demo, *boardName); err != nil {
		log.Fatalf("Settings: %v", err)
	}

	if lj := setupLogging(settings); lj != nil {
		defer lj.Close()
	}

	log.Println(">>> Settings <<<")
	settings.Dump()
	log.Println(">>> Settings <<<")

	if !validDemo(settings.GetString(sDemo)) {
		log.Fatalf("Unknown demo %q", settings.GetString(sDemo))
	}

	b, err := newBoard(settings.GetString(sBoard))
	if err != nil {
		log.Fatalf("Board: %v", err)
	}

	rt := initRuntime(settings, clockwork.NewRealClock(), b)
	if err := b.init(rt); err != nil {
		log.Fatalf("Board init: %v", err)
	}
	defer b.close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sig:
			rt.logger.Printf("Got %v, stopping", s)
			rt.comms.stop()
		case <-rt.comms.quit:
		}
	}()

	startDemo(rt)
	wg.Wait()
}
