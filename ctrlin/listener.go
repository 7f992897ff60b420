package ctrlin

import (
	"fmt"

	osc "github.com/chabad360/go-osc/osc"

	"go-pattern/control"
	"go-pattern/debug"
)

// Commands is the subset of dispatcher actions an incoming OSC command can
// trigger (§6 "Additional commands: /mute, /unmute, /solo, /unsolo,
// /muteAll, /unmuteAll, /unsoloAll, /hush, /silence"). It is implemented by
// stream.Stream; kept as an interface here so this package has no
// dependency on the play-map/stream packages, matching the teacher's habit
// of depending on midi.Controller rather than a concrete device type.
type Commands interface {
	Mute(id string)
	Unmute(id string)
	Solo(id string)
	Unsolo(id string)
	MuteAll()
	UnmuteAll()
	UnsoloAll()
	Hush()
	Silence(id string)
}

// Listener is the external control listener (§4.I): a UDP OSC server
// binding the default port 6010 (§6), writing to a Controls snapshot and
// forwarding dispatcher commands to cmds.
type Listener struct {
	controls *Controls
	cmds     Commands
	server   *osc.Server
}

// New builds a Listener bound to addr (e.g. ":6010") that writes live
// values into controls and forwards commands to cmds.
func New(addr string, controls *Controls, cmds Commands) *Listener {
	l := &Listener{controls: controls, cmds: cmds}
	d := osc.NewStandardDispatcher()
	l.register(d)
	l.server = &osc.Server{Addr: addr, Dispatcher: d}
	return l
}

func (l *Listener) register(d *osc.StandardDispatcher) {
	must := func(addr string, h osc.HandlerFunc) {
		if err := d.AddMsgMethod(addr, h); err != nil {
			debug.Log(debug.CategoryCtrlIn, "register %s: %v", addr, err)
		}
	}
	must("/ctrl", l.handleCtrl)
	must("/mute", l.handlePatternCmd(l.cmds.Mute))
	must("/unmute", l.handlePatternCmd(l.cmds.Unmute))
	must("/solo", l.handlePatternCmd(l.cmds.Solo))
	must("/unsolo", l.handlePatternCmd(l.cmds.Unsolo))
	must("/silence", l.handlePatternCmd(l.cmds.Silence))
	must("/muteAll", func(*osc.Message) { l.cmds.MuteAll() })
	must("/unmuteAll", func(*osc.Message) { l.cmds.UnmuteAll() })
	must("/unsoloAll", func(*osc.Message) { l.cmds.UnsoloAll() })
	must("/hush", func(*osc.Message) { l.cmds.Hush() })
}

// handleCtrl ingests "/ctrl name value" (§4.I, §6), tagging value's kind
// from its OSC argument type (int32 -> Int, float32 -> Float, string ->
// String). A malformed message is logged and ignored (§7 taxonomy item 4,
// "Listener error").
func (l *Listener) handleCtrl(msg *osc.Message) {
	if len(msg.Arguments) < 2 {
		debug.Log(debug.CategoryCtrlIn, "malformed /ctrl: %v", msg.Arguments)
		return
	}
	name, ok := msg.Arguments[0].(string)
	if !ok {
		debug.Log(debug.CategoryCtrlIn, "malformed /ctrl: name is not a string: %v", msg.Arguments[0])
		return
	}
	v, err := valueFromArg(msg.Arguments[1])
	if err != nil {
		debug.Log(debug.CategoryCtrlIn, "malformed /ctrl %s: %v", name, err)
		return
	}
	l.controls.Set(name, v)
}

func valueFromArg(a any) (control.Value, error) {
	switch x := a.(type) {
	case int32:
		return control.Int(x), nil
	case int64:
		return control.Int(int32(x)), nil
	case float32:
		return control.Float(float64(x)), nil
	case float64:
		return control.Float(x), nil
	case string:
		return control.Str(x), nil
	case bool:
		return control.Bool(x), nil
	default:
		return control.Value{}, fmt.Errorf("unsupported control value type %T", a)
	}
}

// handlePatternCmd adapts a one-identifier dispatcher command (mute,
// unmute, solo, unsolo, silence) into an OSC handler.
func (l *Listener) handlePatternCmd(fn func(string)) osc.HandlerFunc {
	return func(msg *osc.Message) {
		if len(msg.Arguments) < 1 {
			debug.Log(debug.CategoryCtrlIn, "command missing pattern id: %v", msg.Arguments)
			return
		}
		id, ok := msg.Arguments[0].(string)
		if !ok {
			debug.Log(debug.CategoryCtrlIn, "command pattern id is not a string: %v", msg.Arguments[0])
			return
		}
		fn(id)
	}
}

// ListenAndServe blocks, serving the control socket until it is closed.
// Run it in its own goroutine (§5 "Control listener task — single-threaded;
// only writes to the controls map").
func (l *Listener) ListenAndServe() error {
	return l.server.ListenAndServe()
}

// Close shuts the listener's socket down. Cancellation is via socket close
// (§5 "The listener recv has no timeout — cancellation is via socket
// close").
func (l *Listener) Close() error {
	return l.server.Close()
}
