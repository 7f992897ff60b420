// Package ctrlin implements the external control listener (§4.I): a UDP
// OSC server that ingests live parameter updates and dispatcher commands
// (/ctrl, /mute, /unmute, /solo, /unsolo, /muteAll, /unmuteAll, /unsoloAll,
// /hush, /silence — §6 "Incoming control port"), modeled on the teacher's
// midi.DeviceManager background-goroutine listener but over an OSC socket
// instead of MIDI hot-plug polling.
package ctrlin

import (
	"sync"

	"go-pattern/control"
)

// Controls is the live snapshot written by the listener task and read by
// the tick task (§5 "Controls: written by listener, read by tick task;
// use a ... snapshot taken at the start of each tick"). Reads take a
// copy, never a reference into listener-owned state.
type Controls struct {
	mu     sync.RWMutex
	values map[string]control.Value
}

// NewControls returns an empty control snapshot.
func NewControls() *Controls {
	return &Controls{values: make(map[string]control.Value)}
}

// Set installs or overwrites a named control value; called only from the
// listener task.
func (c *Controls) Set(name string, v control.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[name] = v
}

// Snapshot copies every current control value, the read the tick task
// takes once per tick before resolving signal-valued entries
// (control.ResolveState, §4.E).
func (c *Controls) Snapshot() map[string]control.Value {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]control.Value, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

// Get returns one named control value and whether it has been set.
func (c *Controls) Get(name string) (control.Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[name]
	return v, ok
}
