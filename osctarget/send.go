package osctarget

import (
	"time"

	osc "github.com/chabad360/go-osc/osc"

	"go-pattern/config"
	"go-pattern/control"
	"go-pattern/debug"
)

// Send emits one event's messages to target t: the play-path message built
// from tpl, plus a /c_set bus-control message for every `^`-prefixed
// parameter SplitBusParams finds, all timed per t's configured
// ScheduleMode (§6 "Schedule modes"). onset already has the target's
// latency and the clock's nudge folded in by the caller
// (clock.Tempo.WallTimeOf, §4.H step 5a).
func (t *Target) Send(tpl MessageTemplate, m control.ControlMap, onset time.Time) {
	play, buses := SplitBusParams(m)
	if msg, err := tpl.Build(play); err != nil {
		debug.Log(debug.CategoryOSC, "target %s: build message: %v", t.cfg.Name, err)
	} else {
		t.sendTimed(msg, onset)
	}
	for name, bw := range buses {
		arg, err := valueArg(bw.Value)
		if err != nil {
			debug.Log(debug.CategoryOSC, "target %s: bus %q: %v", t.cfg.Name, name, err)
			continue
		}
		cset := osc.NewMessage("/c_set")
		cset.Append(t.BusID(bw.Index))
		cset.Append(arg)
		t.sendTimed(cset, onset)
	}
}

// SendContext emits a context-form message (§6, used for editor
// highlighting) alongside the play-path message; it is always sent
// live/unstamped since it carries no sounding event of its own.
func (t *Target) SendContext(msg *osc.Message) {
	t.sendPacket(msg)
}

// sendTimed wraps msg per t's configured schedule mode and hands it to the
// client: bundle-stamped wraps msg in a timestamped osc.Bundle so the
// engine schedules it locally; message-stamped packs the timestamp as two
// leading int32 args (seconds, microseconds); live sleeps until onset and
// then sends an unstamped message (§6).
func (t *Target) sendTimed(msg *osc.Message, onset time.Time) {
	switch t.cfg.Schedule {
	case config.ScheduleMessage:
		stamped := osc.NewMessage(msg.Address)
		stamped.Append(int32(onset.Unix()))
		stamped.Append(int32(onset.Nanosecond() / 1000))
		for _, a := range msg.Arguments {
			stamped.Append(a)
		}
		t.sendPacket(stamped)
	case config.ScheduleLive:
		if delay := time.Until(onset); delay > 0 {
			time.AfterFunc(delay, func() { t.sendPacket(msg) })
			return
		}
		t.sendPacket(msg)
	default: // config.ScheduleBundle
		bundle := osc.NewBundle(onset)
		if err := bundle.Append(msg); err != nil {
			debug.Log(debug.CategoryOSC, "target %s: bundle append: %v", t.cfg.Name, err)
			return
		}
		t.sendPacket(bundle)
	}
}

// sendPacket performs the fire-and-forget UDP write (§5 "target-send calls
// are fire-and-forget UDP writes and should never block; an exception on
// send is logged and the tick continues").
func (t *Target) sendPacket(pkt osc.Packet) {
	if err := t.client.Send(pkt); err != nil {
		debug.Log(debug.CategoryOSC, "target %s: send: %v", t.cfg.Name, err)
	}
}
