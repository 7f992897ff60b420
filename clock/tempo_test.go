package clock

import (
	"testing"
	"time"

	"go-pattern/pattern"
)

func sameTime(a, b pattern.Time) bool {
	diff := a.Sub(b)
	eps := pattern.TimeFromFrac(1, 1000000)
	return diff.Abs().Less(eps) || diff.IsZero()
}

func TestCycleAtAnchor(t *testing.T) {
	now := time.Now()
	c := New(pattern.TimeFromInt(1), now)
	got := c.CycleAt(now)
	if !got.Equal(pattern.TimeFromInt(0)) {
		t.Errorf("CycleAt(anchor) = %v, want 0", got)
	}
}

func TestCycleAtAdvancesWithCPS(t *testing.T) {
	now := time.Now()
	c := New(pattern.TimeFromInt(2), now) // 2 cycles/sec
	later := now.Add(500 * time.Millisecond)
	got := c.CycleAt(later)
	if !sameTime(got, pattern.TimeFromInt(1)) {
		t.Errorf("CycleAt(+0.5s at cps=2) = %v, want ~1", got)
	}
}

func TestSetCPSPreservesCurrentCycle(t *testing.T) {
	now := time.Now()
	c := New(pattern.TimeFromInt(1), now)
	mid := now.Add(time.Second)
	before := c.CycleAt(mid)
	c.SetCPS(mid, pattern.TimeFromInt(4))
	after := c.CycleAt(mid)
	if !sameTime(before, after) {
		t.Errorf("SetCPS discontinuity: before=%v after=%v", before, after)
	}
	later := mid.Add(250 * time.Millisecond)
	got := c.CycleAt(later)
	want := before.Add(pattern.TimeFromInt(1))
	if !sameTime(got, want) {
		t.Errorf("after SetCPS(4) + 0.25s, CycleAt = %v, want %v", got, want)
	}
}

func TestSetCycleRebasesInstantly(t *testing.T) {
	now := time.Now()
	c := New(pattern.TimeFromInt(1), now)
	c.SetCycle(now, pattern.TimeFromInt(16))
	got := c.CycleAt(now)
	if !got.Equal(pattern.TimeFromInt(16)) {
		t.Errorf("SetCycle(16) then CycleAt = %v, want 16", got)
	}
}

func TestResetCycles(t *testing.T) {
	now := time.Now()
	c := New(pattern.TimeFromInt(1), now)
	c.SetCycle(now, pattern.TimeFromInt(5))
	c.ResetCycles(now)
	if !c.CycleAt(now).IsZero() {
		t.Errorf("ResetCycles did not zero the cycle position")
	}
}

func TestPauseFreezesCycleAt(t *testing.T) {
	now := time.Now()
	c := New(pattern.TimeFromInt(1), now)
	pauseAt := now.Add(2 * time.Second)
	c.Pause(pauseAt)
	frozen := c.CycleAt(pauseAt)
	later := c.CycleAt(pauseAt.Add(10 * time.Second))
	if !frozen.Equal(later) {
		t.Errorf("paused clock advanced: %v -> %v", frozen, later)
	}
}

func TestResumeContinuesFromPausedCycle(t *testing.T) {
	now := time.Now()
	c := New(pattern.TimeFromInt(1), now)
	pauseAt := now.Add(2 * time.Second)
	c.Pause(pauseAt)
	frozen := c.CycleAt(pauseAt)
	resumeAt := pauseAt.Add(5 * time.Second) // wall time passes while paused
	c.Resume(resumeAt)
	got := c.CycleAt(resumeAt)
	if !sameTime(got, frozen) {
		t.Errorf("Resume did not continue from paused cycle: got %v, want %v", got, frozen)
	}
	afterResume := c.CycleAt(resumeAt.Add(time.Second))
	if !sameTime(afterResume, frozen.Add(pattern.TimeFromInt(1))) {
		t.Errorf("clock did not advance after resume: got %v", afterResume)
	}
}

func TestSetNudgeShiftsWallTimeNotCycleAt(t *testing.T) {
	now := time.Now()
	c := New(pattern.TimeFromInt(1), now)
	before := c.CycleAt(now)
	c.SetNudge(20 * time.Millisecond)
	after := c.CycleAt(now)
	if !before.Equal(after) {
		t.Errorf("SetNudge affected CycleAt: %v -> %v", before, after)
	}
	wt := c.WallTimeOf(pattern.TimeFromInt(1))
	want := now.Add(time.Second).Add(20 * time.Millisecond)
	if wt.Sub(want) > time.Millisecond || want.Sub(wt) > time.Millisecond {
		t.Errorf("WallTimeOf did not apply nudge: got %v, want ~%v", wt, want)
	}
}

func TestNegativeOrZeroCPSClamped(t *testing.T) {
	now := time.Now()
	c := New(pattern.TimeFromInt(0), now)
	if c.CPS().Sign() <= 0 {
		t.Fatalf("cps not clamped above zero: %v", c.CPS())
	}
	c.SetCPS(now, pattern.TimeFromInt(-3))
	if c.CPS().Sign() <= 0 {
		t.Errorf("SetCPS did not clamp a negative value: %v", c.CPS())
	}
}

func TestWallTimeOfInvertsCycleAt(t *testing.T) {
	now := time.Now()
	c := New(pattern.TimeFromInt(3), now)
	cycle := pattern.TimeFromFrac(7, 2)
	wt := c.WallTimeOf(cycle)
	got := c.CycleAt(wt)
	if !sameTime(got, cycle) {
		t.Errorf("WallTimeOf/CycleAt roundtrip: got %v, want %v", got, cycle)
	}
}
