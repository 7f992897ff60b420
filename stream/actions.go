package stream

import (
	"fmt"
	"time"

	"go-pattern/control"
	"go-pattern/debug"
	"go-pattern/pattern"
)

// action is one typed command drained from actionChan at the top of each
// tick (§5 "command/replace task(s) ... submit actions ... into a ...
// action queue"; §4.H step 2's snapshot happens after this drain, so a
// replace/mute/tempo change submitted mid-tick takes effect on the next
// tick boundary, never mid-tick).
type action interface {
	apply(s *Stream)
}

type replaceAction struct {
	id      string
	pattern pattern.Pattern[control.ControlMap]
}

func (a replaceAction) apply(s *Stream) {
	if err := s.play.Replace(a.id, a.pattern); err != nil {
		debug.Log(debug.CategoryPlaymap, "replace %q: %v", a.id, err)
	}
}

type muteAction struct{ id string }
type unmuteAction struct{ id string }
type soloAction struct{ id string }
type unsoloAction struct{ id string }
type muteAllAction struct{}
type unmuteAllAction struct{}
type unsoloAllAction struct{}
type hushAction struct{}
type silenceAction struct{ id string }

func (a muteAction) apply(s *Stream)      { s.play.Mute(a.id) }
func (a unmuteAction) apply(s *Stream)    { s.play.Unmute(a.id) }
func (a soloAction) apply(s *Stream)      { s.play.Solo(a.id) }
func (a unsoloAction) apply(s *Stream)    { s.play.Unsolo(a.id) }
func (a muteAllAction) apply(s *Stream)   { s.play.MuteAll() }
func (a unmuteAllAction) apply(s *Stream) { s.play.UnmuteAll() }
func (a unsoloAllAction) apply(s *Stream) { s.play.UnsoloAll() }
func (a hushAction) apply(s *Stream)      { s.play.Hush() }
func (a silenceAction) apply(s *Stream)   { s.play.Silence(a.id) }

type setCPSAction struct{ cps pattern.Time }
type setCycleAction struct{ cycle pattern.Time }
type nudgeAction struct{ delta time.Duration }
type pauseAction struct{}
type resumeAction struct{}
type setGlobalFAction struct{ f GlobalTransform }
type onceAction struct{ pattern pattern.Pattern[control.ControlMap] }

func (a setCPSAction) apply(s *Stream)   { s.tempo.SetCPS(time.Now(), a.cps) }
func (a setCycleAction) apply(s *Stream) { s.tempo.SetCycle(time.Now(), a.cycle) }
func (a nudgeAction) apply(s *Stream)    { s.tempo.SetNudge(a.delta) }
func (a pauseAction) apply(s *Stream)    { s.tempo.Pause(time.Now()) }
func (a resumeAction) apply(s *Stream)   { s.tempo.Resume(time.Now()) }
func (a setGlobalFAction) apply(s *Stream) {
	if a.f == nil {
		s.globalF = identityTransform
		return
	}
	s.globalF = a.f
}
func (a onceAction) apply(s *Stream) {
	s.onceQueue = append(s.onceQueue, a.pattern)
}

// submit enqueues act, blocking only if the action queue (256-deep) is
// completely full — in practice never, since actions are drained every
// tick period.
func (s *Stream) submit(act action) {
	select {
	case s.actionChan <- act:
	case <-s.stopChan:
	}
}

// Replace validates p by forcing a zero-width query (§4.G "forces a query
// of the zero-width arc of p to surface parse errors before insertion")
// synchronously, so the error return is meaningful to the caller, then
// queues the actual play-map mutation for the tick task.
func (s *Stream) Replace(id string, p pattern.Pattern[control.ControlMap]) error {
	if err := validatePattern(p); err != nil {
		return err
	}
	s.submit(replaceAction{id: id, pattern: p})
	return nil
}

func validatePattern(p pattern.Pattern[control.ControlMap]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("stream: pattern panicked during validation: %v", r)
		}
	}()
	_ = p.QueryArc(pattern.Arc{Begin: pattern.TimeFromInt(0), End: pattern.TimeFromInt(0)})
	return nil
}

// Mute, Unmute, Solo, Unsolo, MuteAll, UnmuteAll, UnsoloAll, Hush, and
// Silence implement ctrlin.Commands, letting the external control listener
// (§4.I, §6) drive the same action queue a programmatic caller uses.
func (s *Stream) Mute(id string)    { s.submit(muteAction{id: id}) }
func (s *Stream) Unmute(id string)  { s.submit(unmuteAction{id: id}) }
func (s *Stream) Solo(id string)    { s.submit(soloAction{id: id}) }
func (s *Stream) Unsolo(id string)  { s.submit(unsoloAction{id: id}) }
func (s *Stream) MuteAll()          { s.submit(muteAllAction{}) }
func (s *Stream) UnmuteAll()        { s.submit(unmuteAllAction{}) }
func (s *Stream) UnsoloAll()        { s.submit(unsoloAllAction{}) }
func (s *Stream) Hush()             { s.submit(hushAction{}) }
func (s *Stream) Silence(id string) { s.submit(silenceAction{id: id}) }

// SetCPS queues a tempo-rate change, rebasing the anchor so the current
// cycle position is preserved (§4.F).
func (s *Stream) SetCPS(cps float64) {
	s.submit(setCPSAction{cps: pattern.TimeFromFloatApprox(cps)})
}

// SetCycle queues a rebase of the tempo anchor to cycle c.
func (s *Stream) SetCycle(c float64) {
	s.submit(setCycleAction{cycle: pattern.TimeFromFloatApprox(c)})
}

// Nudge queues a change to the clock-wide timestamp offset (§4.F
// "set_nudge(delta): adds delta seconds to all outgoing timestamps without
// changing cycles").
func (s *Stream) Nudge(delta time.Duration) { s.submit(nudgeAction{delta: delta}) }

// Pause and Resume queue a freeze/unfreeze of the tempo clock.
func (s *Stream) Pause()  { s.submit(pauseAction{}) }
func (s *Stream) Resume() { s.submit(resumeAction{}) }

// SetGlobalF queues a replacement of the transform applied to each active
// key's pattern before each tick's query (§4.H step 2); pass nil to restore
// the identity transform.
func (s *Stream) SetGlobalF(f GlobalTransform) { s.submit(setGlobalFAction{f: f}) }

// Once queues p to be queried once, on the very next tick, outside the
// play-map (no identifier, no history, no mute/solo participation) — the
// one-shot escape hatch named in §6 ("once(pattern)").
func (s *Stream) Once(p pattern.Pattern[control.ControlMap]) { s.submit(onceAction{pattern: p}) }
