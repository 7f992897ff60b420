// Package playmap implements the registry of named active patterns (§4.G):
// mute/solo, hot replacement with eager error surfacing, and a bounded
// per-key history used to roll back a pattern that errors mid-tick.
package playmap

import (
	"fmt"
	"sync"

	"go-pattern/control"
	"go-pattern/pattern"
)

// historyDepth bounds the rollback ring per key (§4.G "History depth is
// fixed (e.g., 8)").
const historyDepth = 8

// PlayState is the per-identifier record: its current pattern, mute/solo
// flags, and a bounded history of previous patterns for rollback.
type PlayState struct {
	Pattern pattern.Pattern[control.ControlMap]
	Muted   bool
	Soloed  bool
	history []pattern.Pattern[control.ControlMap]
}

func (s *PlayState) pushHistory(p pattern.Pattern[control.ControlMap]) {
	s.history = append(s.history, p)
	if len(s.history) > historyDepth {
		s.history = s.history[len(s.history)-historyDepth:]
	}
}

// PlayMap owns every PlayState, keyed by pattern identifier. All methods
// take an internal lock, matching the spec's requirement that it be
// mutated only by the tick task while remaining safe to call from the
// command-submission path the dispatcher drains (§5 "PlayMap: mutated
// only by the tick task").
type PlayMap struct {
	mu     sync.Mutex
	states map[string]*PlayState
}

// New returns an empty play map.
func New() *PlayMap {
	return &PlayMap{states: make(map[string]*PlayState)}
}

// Replace installs p under key k, forcing a zero-width query first so a
// pattern-evaluation error surfaces synchronously to the caller instead of
// during a later tick (§4.G, §7 taxonomy item 2). The previous pattern is
// retained on error and pushed to history on success.
func (pm *PlayMap) Replace(k string, p pattern.Pattern[control.ControlMap]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("playmap: replace %q panicked: %v", k, r)
		}
	}()
	_ = p.QueryArc(pattern.Arc{Begin: pattern.TimeFromInt(0), End: pattern.TimeFromInt(0)})

	pm.mu.Lock()
	defer pm.mu.Unlock()
	st, ok := pm.states[k]
	if !ok {
		pm.states[k] = &PlayState{Pattern: p}
		return nil
	}
	st.pushHistory(st.Pattern)
	st.Pattern = p
	return nil
}

// Rollback restores key k's pattern to its most recent history entry,
// called by the dispatcher when a tick-time query for k fails (§4.H step
// 7, §7 propagation policy).
func (pm *PlayMap) Rollback(k string) bool {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	st, ok := pm.states[k]
	if !ok || len(st.history) == 0 {
		return false
	}
	last := len(st.history) - 1
	st.Pattern = st.history[last]
	st.history = st.history[:last]
	return true
}

// Mute, Unmute, Solo, Unsolo flip the named key's flags; a missing key is
// a no-op (matching the spec's silence on identifier validation — the
// dispatcher never errors on an unknown pattern id).
func (pm *PlayMap) Mute(k string)   { pm.withState(k, func(s *PlayState) { s.Muted = true }) }
func (pm *PlayMap) Unmute(k string) { pm.withState(k, func(s *PlayState) { s.Muted = false }) }
func (pm *PlayMap) Solo(k string)   { pm.withState(k, func(s *PlayState) { s.Soloed = true }) }
func (pm *PlayMap) Unsolo(k string) { pm.withState(k, func(s *PlayState) { s.Soloed = false }) }

func (pm *PlayMap) withState(k string, f func(*PlayState)) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if st, ok := pm.states[k]; ok {
		f(st)
	}
}

// MuteAll mutes every key currently registered.
func (pm *PlayMap) MuteAll() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for _, st := range pm.states {
		st.Muted = true
	}
}

// UnmuteAll unmutes every key.
func (pm *PlayMap) UnmuteAll() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for _, st := range pm.states {
		st.Muted = false
	}
}

// UnsoloAll clears solo on every key.
func (pm *PlayMap) UnsoloAll() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for _, st := range pm.states {
		st.Soloed = false
	}
}

// Silence replaces key k's pattern with silence, keeping its mute/solo
// state and history.
func (pm *PlayMap) Silence(k string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	if st, ok := pm.states[k]; ok {
		st.pushHistory(st.Pattern)
		st.Pattern = pattern.Silence[control.ControlMap]()
	}
}

// Hush replaces every key's pattern with silence (§4.G "replace all with
// silence").
func (pm *PlayMap) Hush() {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	for _, st := range pm.states {
		st.pushHistory(st.Pattern)
		st.Pattern = pattern.Silence[control.ControlMap]()
	}
}

// Active returns the patterns that should sound this tick, honoring the
// play-map invariant: if any key is soloed, only soloed keys sound;
// otherwise every un-muted key sounds.
func (pm *PlayMap) Active() []pattern.Pattern[control.ControlMap] {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	anySolo := false
	for _, st := range pm.states {
		if st.Soloed {
			anySolo = true
			break
		}
	}
	var out []pattern.Pattern[control.ControlMap]
	for _, st := range pm.states {
		switch {
		case anySolo:
			if st.Soloed {
				out = append(out, st.Pattern)
			}
		case !st.Muted:
			out = append(out, st.Pattern)
		}
	}
	return out
}

// Keys returns every registered pattern identifier, for iterating the
// per-key tick query described in §4.H.
func (pm *PlayMap) Keys() []string {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	out := make([]string, 0, len(pm.states))
	for k := range pm.states {
		out = append(out, k)
	}
	return out
}

// ActiveKeys returns the identifiers that should sound this tick under the
// same mute/solo invariant as Active, letting the dispatcher query each
// key's pattern individually so a failing key can be rolled back in
// isolation (§4.H step 7) instead of taking down a single composite query.
func (pm *PlayMap) ActiveKeys() []string {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	anySolo := false
	for _, st := range pm.states {
		if st.Soloed {
			anySolo = true
			break
		}
	}
	var out []string
	for k, st := range pm.states {
		switch {
		case anySolo:
			if st.Soloed {
				out = append(out, k)
			}
		case !st.Muted:
			out = append(out, k)
		}
	}
	return out
}

// Get returns a copy of key k's current pattern and whether it exists.
func (pm *PlayMap) Get(k string) (pattern.Pattern[control.ControlMap], bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	st, ok := pm.states[k]
	if !ok {
		return pattern.Pattern[control.ControlMap]{}, false
	}
	return st.Pattern, true
}
