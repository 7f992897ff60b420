package stream

import (
	"fmt"
	"sort"
	"time"

	"go-pattern/control"
	"go-pattern/debug"
	"go-pattern/osctarget"
	"go-pattern/pattern"
)

// timedEvent pairs a queried event with the play-map key it came from
// ("once" for Once patterns); emit does not read the key, and rollback
// already happened at query time (step 7 below).
type timedEvent struct {
	id string
	e  pattern.Event[control.ControlMap]
}

// dispatchLoop is the tick task (§5 item 1): a single goroutine, driven by
// a time.Ticker at the configured tick period, that owns the tempo anchor
// and runs the §4.H pipeline every tick. Modeled on the teacher's
// queueManagerLoop/midiOutputLoop pair collapsed into one loop, since here
// a single cadence both drains actions and sends.
func (s *Stream) dispatchLoop() {
	defer s.wg.Done()

	period := time.Duration(s.cfg.TickPeriod * float64(time.Second))
	if period <= 0 {
		period = 50 * time.Millisecond
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			s.tick(now)
		}
	}
}

// tick runs one iteration of the §4.H pipeline.
func (s *Stream) tick(now time.Time) {
	s.drainActions()

	processAhead := time.Duration(s.cfg.ProcessAhead * float64(time.Second))
	cycleEnd := s.tempo.CycleAt(now.Add(processAhead))
	tickArc := pattern.Arc{Begin: s.prevCycle, End: cycleEnd}
	if tickArc.Begin.Greater(tickArc.End) {
		return
	}
	s.prevCycle = cycleEnd

	resolved := control.ResolveState(s.controls.Snapshot(), tickArc.Begin)

	var all []timedEvent
	for _, id := range s.play.ActiveKeys() {
		p, ok := s.play.Get(id)
		if !ok {
			continue
		}
		events, err := s.queryKey(p, tickArc, resolved)
		if err != nil {
			debug.Log(debug.CategoryStream, "tick: key %q query failed, rolling back: %v", id, err)
			s.play.Rollback(id)
			continue
		}
		for _, e := range events {
			all = append(all, timedEvent{id: id, e: e})
		}
	}

	for _, p := range s.drainOnce() {
		events, err := s.queryKey(p, tickArc, resolved)
		if err != nil {
			debug.Log(debug.CategoryStream, "tick: once pattern query failed: %v", err)
			continue
		}
		for _, e := range events {
			all = append(all, timedEvent{id: "once", e: e})
		}
	}

	// Non-decreasing active.begin order (§5); ties keep query order, which
	// is stable enough since the spec allows any order among equal onsets.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].e.Active.Begin.Less(all[j].e.Active.Begin)
	})

	for _, te := range all {
		s.emit(te)
	}
}

// queryKey runs globalF(p) over arc with resolved controls, recovering a
// panic into an error so one misbehaving pattern can be rolled back
// (§4.H step 7) without taking the whole tick down. globalF is applied per
// key rather than to one stack-of-all-keys query so that a panic or error
// in one key's transformed pattern cannot mask or corrupt another key's
// events; this is equivalent to the spec's "P = globalF(stack(active))"
// whenever globalF distributes over Stack, true of every transform named
// in this spec (fast/slow/rotate-style wrappers).
func (s *Stream) queryKey(p pattern.Pattern[control.ControlMap], arc pattern.Arc, resolved map[string]any) (events []pattern.Event[control.ControlMap], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pattern query panicked: %v", r)
		}
	}()
	transformed := s.globalF(p)
	events = transformed.Query(pattern.State{Arc: arc, Controls: resolved})
	return events, nil
}

// drainActions applies every action queued since the previous tick,
// draining the channel until empty (§5 "applied between ticks by draining
// the action queue at the top of each tick").
func (s *Stream) drainActions() {
	for {
		select {
		case act := <-s.actionChan:
			act.apply(s)
		default:
			return
		}
	}
}

// drainOnce removes and returns every pattern queued via Once since the
// last tick.
func (s *Stream) drainOnce() []pattern.Pattern[control.ControlMap] {
	out := s.onceQueue
	s.onceQueue = nil
	return out
}

// emit computes te's wall-clock onset (§4.H step 5a) and hands the
// resulting message(s) to every configured target (step 6).
func (s *Stream) emit(te timedEvent) {
	begin := te.e.WholeOrActive().Begin
	onset := s.tempo.WallTimeOf(begin)
	if nv, ok := te.e.Value["nudge"]; ok {
		if f, err := control.GetF(nv); err == nil {
			onset = onset.Add(time.Duration(f * float64(time.Second)))
		}
	}

	for _, t := range s.targets {
		tcfg := t.Config()
		targetOnset := onset.Add(time.Duration(tcfg.Latency * float64(time.Second)))
		tpl := osctarget.NamedFromMap(tcfg.Path)
		t.Send(tpl, te.e.Value, targetOnset)
	}
}
