// Package clock implements the tempo clock (§4.F): the mapping between
// wall-clock seconds and rational cycle time that the dispatcher uses to
// decide which window of the pattern is due next.
package clock

import (
	"sync"
	"time"

	"go-pattern/pattern"
)

// Tempo holds cps, the anchor point relating a wall-clock instant to a
// cycle position, pause state, and a nudge offset applied to outgoing
// timestamps without affecting CycleAt. All fields are guarded by mu;
// every accessor takes a lock, matching the teacher's habit of making
// shared process-wide state (cf. go-sequence's tempo fields on
// sequencer.Manager) safe for concurrent reads from the tick task and
// writes from drained actions.
type Tempo struct {
	mu sync.Mutex

	anchorCycle pattern.Time
	anchorTime  time.Time
	cps         pattern.Time
	paused      bool
	pausedAt    pattern.Time
	nudge       time.Duration
}

// minCPS is the clamp applied to a non-positive cps (§7 "invalid tempo
// (cps <= 0 clamped to a small epsilon)").
var minCPS = pattern.TimeFromFrac(1, 1000)

// New creates a Tempo anchored at the given wall-clock instant with cycle
// 0 and the given cycles-per-second.
func New(cps pattern.Time, now time.Time) *Tempo {
	t := &Tempo{
		anchorCycle: pattern.TimeFromInt(0),
		anchorTime:  now,
		cps:         clampCPS(cps),
	}
	return t
}

func clampCPS(cps pattern.Time) pattern.Time {
	if cps.Sign() <= 0 {
		return minCPS
	}
	return cps
}

// CycleAt returns anchor_cycle + (t - anchor_time)*cps, or the cycle at
// which playback was paused if the clock is currently paused.
func (t *Tempo) CycleAt(now time.Time) pattern.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cycleAtLocked(now)
}

func (t *Tempo) cycleAtLocked(now time.Time) pattern.Time {
	if t.paused {
		return t.pausedAt
	}
	elapsed := now.Sub(t.anchorTime).Seconds()
	delta := pattern.TimeFromFloatApprox(elapsed).Mul(t.cps)
	return t.anchorCycle.Add(delta)
}

// SetCPS rebases the anchor so CycleAt(now) is preserved across the
// tempo change.
func (t *Tempo) SetCPS(now time.Time, cps pattern.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	cur := t.cycleAtLocked(now)
	t.anchorCycle = cur
	t.anchorTime = now
	t.cps = clampCPS(cps)
}

// SetCycle rebases the anchor so CycleAt(now) == c immediately.
func (t *Tempo) SetCycle(now time.Time, c pattern.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.anchorCycle = c
	t.anchorTime = now
	if t.paused {
		t.pausedAt = c
	}
}

// ResetCycles is SetCycle(now, 0).
func (t *Tempo) ResetCycles(now time.Time) {
	t.SetCycle(now, pattern.TimeFromInt(0))
}

// SetNudge adds delta to every outgoing timestamp without altering
// CycleAt.
func (t *Tempo) SetNudge(delta time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nudge = delta
}

// Nudge returns the currently configured nudge offset.
func (t *Tempo) Nudge() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nudge
}

// Pause freezes CycleAt at its current value.
func (t *Tempo) Pause(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.paused {
		return
	}
	t.pausedAt = t.cycleAtLocked(now)
	t.paused = true
}

// Resume unfreezes the clock, rebasing the anchor so playback continues
// from the cycle it was paused at.
func (t *Tempo) Resume(now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.paused {
		return
	}
	t.anchorCycle = t.pausedAt
	t.anchorTime = now
	t.paused = false
}

// CPS returns the current cycles-per-second.
func (t *Tempo) CPS() pattern.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cps
}

// WallTimeOf converts a cycle-time instant to the wall-clock time it
// occurs at, the inverse of CycleAt, used by the dispatcher (§4.H step 5a)
// to turn an event's onset into t_on.
func (t *Tempo) WallTimeOf(cycle pattern.Time) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	deltaCycles := cycle.Sub(t.anchorCycle)
	seconds := deltaCycles.Quo(t.cps).Float64()
	return t.anchorTime.Add(time.Duration(seconds * float64(time.Second))).Add(t.nudge)
}
