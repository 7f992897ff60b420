// Package debug implements the diagnostics sink referenced by §7 of the
// error-handling design: a mutex-guarded, optional file sink that the tick
// loop, play-map, target senders, and control listener write
// pattern-evaluation and send errors to instead of raising them to a
// caller. Modeled on the teacher's debug.Log/LogEvery, generalized from a
// free-form string category to this domain's fixed set of diagnostic
// sources and routed through the config package's directory convention
// instead of a second, hand-rolled path join.
package debug

import (
	"fmt"
	"os"
	"sync"
	"time"

	"go-pattern/config"
)

// Category tags which component produced a log line. Fixed to the sources
// that actually call Log, rather than an open string, so a typo in a call
// site is a compile error instead of a silently uncorrelated log line.
type Category string

const (
	CategoryStream  Category = "stream"
	CategoryPlaymap Category = "playmap"
	CategoryOSC     Category = "osc"
	CategoryCtrlIn  Category = "ctrlin"
)

var (
	file    *os.File
	mu      sync.Mutex
	enabled bool
)

// Enable starts debug logging to <config dir>/debug.log, the same directory
// a host program's config.Save would use.
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(dir+"/debug.log", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	enabled = true

	// Write directly; Log would deadlock reacquiring mu.
	writeLine(CategoryStream, "=== debug logging started ===")

	return nil
}

// Disable stops debug logging and closes the file.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
}

// Log writes one timestamped, categorized line to the debug log. A no-op
// when logging is disabled, so call sites never need to guard on Enabled.
func Log(category Category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	writeLine(category, fmt.Sprintf(format, args...))
}

// writeLine assumes mu is already held.
func writeLine(category Category, msg string) {
	if !enabled || file == nil {
		return
	}
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(file, "[%s] %-10s %s\n", ts, category, msg)
	file.Sync() // flush immediately so a crash doesn't lose the last lines
}

// everyKey identifies one LogEvery call site; a struct key avoids the
// string-concatenation collisions a "category+format" map key risks when a
// format string happens to share a prefix with a category name.
type everyKey struct {
	category Category
	format   string
}

var (
	countersMu sync.Mutex
	counters   = make(map[everyKey]int)
)

// LogEvery logs only every n-th call with a given category/format, for
// tick-loop messages that would otherwise flood the sink.
func LogEvery(n int, category Category, format string, args ...any) {
	key := everyKey{category: category, format: format}
	countersMu.Lock()
	counters[key]++
	count := counters[key]
	countersMu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
