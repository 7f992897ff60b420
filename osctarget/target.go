// Package osctarget implements the outgoing half of §6: wiring a
// configured downstream recipient (a Target) to github.com/chabad360/go-osc,
// building the wire-format messages the spec describes (positional/named/
// context templates, bus-reference remapping) and honoring each target's
// configured schedule mode (bundle-stamped, message-stamped, or live).
package osctarget

import (
	"fmt"
	"sync"

	osc "github.com/chabad360/go-osc/osc"

	"go-pattern/config"
	"go-pattern/debug"
)

// Target is one configured downstream OSC recipient: a send client plus
// whatever bus-id table its handshake reply installed.
type Target struct {
	cfg    config.TargetConfig
	client *osc.Client

	mu       sync.RWMutex
	busTable []int32 // nil until a handshake reply populates it

	replyServer *osc.Server
}

// New builds a Target from its configuration, defaulting an empty Path to
// "/play" the way the teacher's device constructors fill in a default
// port name.
func New(cfg config.TargetConfig) *Target {
	if cfg.Path == "" {
		cfg.Path = "/play"
	}
	return &Target{cfg: cfg, client: osc.NewClient(cfg.Host, cfg.Port)}
}

// Config returns the target's configuration.
func (t *Target) Config() config.TargetConfig { return t.cfg }

// Handshake sends /dirt/handshake to the target (§6 "Handshake"). When
// replyPort is non-zero the outgoing client is rebound to that local port
// and a small OSC server is started on it to catch the
// /dirt/handshake/reply, installing whatever bus-id table it carries.
// replyPort 0 sends the handshake without waiting for a reply.
func (t *Target) Handshake(replyPort int) error {
	if replyPort > 0 {
		d := osc.NewStandardDispatcher()
		if err := d.AddMsgMethod("/dirt/handshake/reply", t.applyHandshakeReply); err != nil {
			return fmt.Errorf("osctarget: register handshake reply handler: %w", err)
		}
		t.replyServer = &osc.Server{Addr: fmt.Sprintf(":%d", replyPort), Dispatcher: d}
		go func() {
			if err := t.replyServer.ListenAndServe(); err != nil {
				debug.Log(debug.CategoryOSC, "target %s: handshake reply server: %v", t.cfg.Name, err)
			}
		}()
		if err := t.client.SetLocalAddr("0.0.0.0", replyPort); err != nil {
			debug.Log(debug.CategoryOSC, "target %s: bind local handshake port %d: %v", t.cfg.Name, replyPort, err)
		}
	}
	return t.client.Send(osc.NewMessage("/dirt/handshake"))
}

// applyHandshakeReply parses a /dirt/handshake/reply message, whose
// arguments begin with the literal "&controlBusIndices" followed by the
// target's advertised integer bus ids in order (§6).
func (t *Target) applyHandshakeReply(msg *osc.Message) {
	if len(msg.Arguments) == 0 {
		return
	}
	tag, ok := msg.Arguments[0].(string)
	if !ok || tag != "&controlBusIndices" {
		return
	}
	ids := make([]int32, 0, len(msg.Arguments)-1)
	for _, a := range msg.Arguments[1:] {
		if v, ok := a.(int32); ok {
			ids = append(ids, v)
		}
	}
	t.mu.Lock()
	t.busTable = ids
	t.mu.Unlock()
	debug.Log(debug.CategoryOSC, "target %s: handshake reply installed %d bus ids", t.cfg.Name, len(ids))
}

// BusID remaps a raw bus index through the handshake-installed table, if
// one exists and raw is in range; otherwise raw is used directly (§6
// "remapped through that table before sending").
func (t *Target) BusID(raw int32) int32 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if raw >= 0 && int(raw) < len(t.busTable) {
		return t.busTable[raw]
	}
	return raw
}

// Close releases the target's reply listener, if one was started.
func (t *Target) Close() error {
	if t.replyServer == nil {
		return nil
	}
	return t.replyServer.Close()
}
