// Package config holds the Stream configuration (§4.H, §6): tick period,
// process-ahead window, per-target address/latency/schedule-mode, the
// control-listener port, and the initial tempo. Modeled on the teacher's
// config.Config: a JSON-serializable struct with DefaultConfig/Load/Save,
// the core never touching disk on its own — a host program calls Load.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ScheduleMode selects how a Target's messages carry their future onset
// (§6 "Schedule modes, configurable per target").
type ScheduleMode string

const (
	// ScheduleBundle wraps each message in an OSC bundle stamped with its
	// future timestamp; the receiving engine schedules it locally.
	ScheduleBundle ScheduleMode = "bundle"
	// ScheduleMessage packs the timestamp as two leading int args
	// (seconds, microseconds) inside the message itself.
	ScheduleMessage ScheduleMode = "message"
	// ScheduleLive has the dispatcher sleep until the onset, then send a
	// plain, unstamped message.
	ScheduleLive ScheduleMode = "live"
)

// TargetConfig describes one downstream OSC recipient.
type TargetConfig struct {
	Name       string       `json:"name"`
	Host       string       `json:"host"`
	Port       int          `json:"port"`
	Latency    float64      `json:"latency"`              // seconds, added to every onset
	Schedule   ScheduleMode `json:"schedule"`              // bundle | message | live
	Path       string       `json:"path,omitempty"`        // play-path OSC address, default "/play"
	Handshake  bool         `json:"handshake,omitempty"`   // send /dirt/handshake on startup
}

// ListenerConfig configures the external control listener (§4.I).
type ListenerConfig struct {
	Port    int  `json:"port"`
	Enabled bool `json:"enabled"`
}

// Config is the Stream's full configuration.
type Config struct {
	TickPeriod   float64          `json:"tickPeriod"`   // seconds between ticks, e.g. 0.05
	ProcessAhead float64          `json:"processAhead"` // seconds, e.g. 0.3
	InitialCPS   float64          `json:"initialCPS"`
	Targets      []TargetConfig   `json:"targets,omitempty"`
	Listener     ListenerConfig   `json:"listener"`
}

// DefaultConfig returns the configuration a fresh Stream starts with: one
// local SuperDirt-style target on the conventional port, the control
// listener enabled on 6010 (§6 "Incoming control port ... default port
// 6010"), a 50ms tick and a 0.3s process-ahead window (§4.H).
func DefaultConfig() *Config {
	return &Config{
		TickPeriod:   0.05,
		ProcessAhead: 0.3,
		InitialCPS:   0.5625, // 135 BPM at 4 beats/cycle, the library's usual default
		Targets: []TargetConfig{
			{
				Name:     "dirt",
				Host:     "127.0.0.1",
				Port:     57120,
				Latency:  0.2,
				Schedule: ScheduleBundle,
				Path:     "/play",
			},
		},
		Listener: ListenerConfig{Port: 6010, Enabled: true},
	}
}

// ConfigDir returns the directory a host program should store its
// configuration file under.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pattern"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if none exists. The
// core itself never calls Load; it is here for a host program to use
// before constructing a Stream.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config to disk, creating its directory if needed.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// FindTarget looks up a target by name.
func (c *Config) FindTarget(name string) *TargetConfig {
	for i := range c.Targets {
		if c.Targets[i].Name == name {
			return &c.Targets[i]
		}
	}
	return nil
}

// AddTarget inserts or replaces a target by name.
func (c *Config) AddTarget(t TargetConfig) {
	for i := range c.Targets {
		if c.Targets[i].Name == t.Name {
			c.Targets[i] = t
			return
		}
	}
	c.Targets = append(c.Targets, t)
}
