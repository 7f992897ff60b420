// Command patternplay is a small harness for exercising a Stream end to
// end: it compiles one mini-notation pattern, installs it under "d1", and
// lets the dispatch loop send it to a local target for a fixed duration.
// Modeled on go-sequence's cmd/miditest: a subcommand switch over os.Args
// with no flag package, since the corpus never reaches for one.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go-pattern/config"
	"go-pattern/control"
	"go-pattern/osctarget"
	"go-pattern/stream"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "play":
		play()
	case "hush":
		hush()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("patternplay")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  play <notation> [seconds]  - install the pattern as d1 and run")
	fmt.Println("  hush <seconds>             - run silent for a duration, then exit")
}

func play() {
	if len(os.Args) < 3 {
		usage()
		return
	}
	text := os.Args[2]
	seconds := 8.0
	if len(os.Args) > 3 {
		if v, err := strconv.ParseFloat(os.Args[3], 64); err == nil {
			seconds = v
		}
	}

	p, err := control.ParamPattern("s", text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %q: %v\n", text, err)
		os.Exit(1)
	}

	s := startDefault()
	defer s.Stop()

	if err := s.Replace("d1", p); err != nil {
		fmt.Fprintf(os.Stderr, "replace: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("playing %q for %.1fs at %.3f cps\n", text, seconds, s.CPS())
	time.Sleep(time.Duration(seconds * float64(time.Second)))
}

func hush() {
	seconds := 2.0
	if len(os.Args) > 2 {
		if v, err := strconv.ParseFloat(os.Args[2], 64); err == nil {
			seconds = v
		}
	}
	s := startDefault()
	defer s.Stop()
	s.Hush()
	time.Sleep(time.Duration(seconds * float64(time.Second)))
}

func startDefault() *stream.Stream {
	cfg := config.DefaultConfig()
	cfg.Listener.Enabled = false

	targets := make([]*osctarget.Target, 0, len(cfg.Targets))
	for _, tc := range cfg.Targets {
		targets = append(targets, osctarget.New(tc))
	}
	return stream.Start(*cfg, targets)
}
