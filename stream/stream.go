// Package stream implements the tick loop / dispatcher (§4.H) and its
// programmatic API (§6 "start(config, targets) -> Stream, replace, mute,
// solo, ..., set_cps/set_cycle/nudge_all, hush, once"): the process that
// owns the tempo anchor, queries the composite live pattern on a fixed
// cadence, and forwards timestamped messages to every configured target.
// Modeled on the teacher's sequencer.Manager: one long-lived dispatch
// goroutine driven by a time.Ticker, mutating shared state only in response
// to actions drained from a channel at each tick boundary.
package stream

import (
	"fmt"
	"sync"
	"time"

	"go-pattern/clock"
	"go-pattern/config"
	"go-pattern/control"
	"go-pattern/ctrlin"
	"go-pattern/debug"
	"go-pattern/osctarget"
	"go-pattern/pattern"
	"go-pattern/playmap"
)

// GlobalTransform is applied to each active key's pattern before it is
// queried each tick; the tick applies it per key rather than to one stacked
// pattern (see queryKey).
type GlobalTransform func(pattern.Pattern[control.ControlMap]) pattern.Pattern[control.ControlMap]

func identityTransform(p pattern.Pattern[control.ControlMap]) pattern.Pattern[control.ControlMap] {
	return p
}

// Stream is a running scheduler instance: its tempo, play-map, live
// controls, and set of downstream targets, plus the dispatch goroutine that
// ties them together. All exported methods are safe to call from any
// goroutine; they submit actions the dispatch goroutine alone applies.
type Stream struct {
	cfg      config.Config
	tempo    *clock.Tempo
	play     *playmap.PlayMap
	controls *ctrlin.Controls
	targets  []*osctarget.Target
	listener *ctrlin.Listener

	actionChan chan action
	stopChan   chan struct{}
	wg         sync.WaitGroup

	// dispatch-goroutine-owned; touched only inside tick/drainActions.
	prevCycle pattern.Time
	globalF   GlobalTransform
	onceQueue []pattern.Pattern[control.ControlMap]
}

// Start builds a Stream from cfg and the already-constructed targets,
// anchors the tempo clock at the current instant, and launches the
// dispatch and (if enabled) control-listener goroutines (§6 "start(config,
// targets) -> Stream").
func Start(cfg config.Config, targets []*osctarget.Target) *Stream {
	now := time.Now()
	s := &Stream{
		cfg:        cfg,
		tempo:      clock.New(pattern.TimeFromFloatApprox(cfg.InitialCPS), now),
		play:       playmap.New(),
		controls:   ctrlin.NewControls(),
		targets:    targets,
		actionChan: make(chan action, 256),
		stopChan:   make(chan struct{}),
		prevCycle:  pattern.TimeFromInt(0),
		globalF:    identityTransform,
	}

	for _, t := range targets {
		tcfg := t.Config()
		if tcfg.Handshake {
			if err := t.Handshake(0); err != nil {
				debug.Log(debug.CategoryStream, "target %s: handshake: %v", tcfg.Name, err)
			}
		}
	}

	if cfg.Listener.Enabled {
		s.listener = ctrlin.New(fmt.Sprintf(":%d", cfg.Listener.Port), s.controls, s)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			if err := s.listener.ListenAndServe(); err != nil {
				debug.Log(debug.CategoryStream, "control listener: %v", err)
			}
		}()
	}

	s.wg.Add(1)
	go s.dispatchLoop()
	return s
}

// Stop closes the control listener and every target, then waits for the
// dispatch and listener goroutines to exit (§5 "on shutdown it finishes the
// current iteration and closes sockets").
func (s *Stream) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			debug.Log(debug.CategoryStream, "close listener: %v", err)
		}
	}
	for _, t := range s.targets {
		if err := t.Close(); err != nil {
			debug.Log(debug.CategoryStream, "close target: %v", err)
		}
	}
	s.wg.Wait()
}

// Controls exposes the live-control snapshot so user code can build cF/cS/cP
// patterns (§4.I) bound to this Stream's listener.
func (s *Stream) Controls() *ctrlin.Controls { return s.controls }

// CPS returns the tempo clock's current cycles-per-second.
func (s *Stream) CPS() float64 { return s.tempo.CPS().Float64() }

// CycleAt returns the cycle position at wall-clock instant now.
func (s *Stream) CycleAt(now time.Time) pattern.Time { return s.tempo.CycleAt(now) }
