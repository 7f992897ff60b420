package osctarget

import (
	"fmt"
	"sort"
	"strings"

	osc "github.com/chabad360/go-osc/osc"

	"go-pattern/control"
	"go-pattern/pattern"
)

// TemplateKind selects one of §6's three message template shapes.
type TemplateKind int

const (
	TemplatePositional TemplateKind = iota
	TemplateNamed
	TemplateContext
)

// PositionalField is one element of a positional template's argument list:
// a control-map key and the default substituted when an event omits it.
type PositionalField struct {
	Name    string
	Default control.Value
}

// MessageTemplate describes how one event's control map becomes an OSC
// message (§6 "Message templates are one of: Positional list ..., Named
// form ..., Context form ...").
type MessageTemplate struct {
	Kind     TemplateKind
	Address  string
	Fields   []PositionalField // TemplatePositional
	Required []string          // TemplateNamed
}

// Positional builds a positional-form template: arguments emitted in
// field order, substituting the event's value or the field's default.
func Positional(address string, fields ...PositionalField) MessageTemplate {
	return MessageTemplate{Kind: TemplatePositional, Address: address, Fields: fields}
}

// Named builds a named-form template: every key in required must be
// present (after shape defaults are filled); arguments are emitted as
// [name1, v1, name2, v2, ...] in the declared order.
func Named(address string, required ...string) MessageTemplate {
	return MessageTemplate{Kind: TemplateNamed, Address: address, Required: required}
}

// NamedFromMap builds a named-form template with no fixed key list: every
// key present in an event's control map is emitted, sorted for a
// deterministic wire order. This is the shape a downstream engine like
// SuperDirt actually expects on its play path, where the parameter set
// varies per event rather than per synth.
func NamedFromMap(address string) MessageTemplate {
	return MessageTemplate{Kind: TemplateNamed, Address: address}
}

// Context builds a context-form template, used for editor highlighting
// (§6 "emits [patternID, delta, cycle, bx, by, ex, ey]").
func Context(address string) MessageTemplate {
	return MessageTemplate{Kind: TemplateContext, Address: address}
}

// valueArg converts a control.Value to the Go type go-osc expects as a
// message argument. Signals and lists have no OSC wire representation and
// are rejected — a pattern reaching Build with an unresolved VSignal
// indicates resolve_state (§4.E) was skipped.
func valueArg(v control.Value) (any, error) {
	switch v.Kind {
	case control.KInt:
		return v.I, nil
	case control.KFloat:
		return float32(v.F), nil
	case control.KRat:
		f, _ := v.R.Float64()
		return float32(f), nil
	case control.KString:
		return v.S, nil
	case control.KBool:
		return v.B, nil
	case control.KBlob:
		return v.X, nil
	default:
		return nil, fmt.Errorf("osctarget: value of kind %d has no OSC argument form", v.Kind)
	}
}

// Build renders the play-path arguments of m (bus-reference keys already
// removed by SplitBusParams) into one OSC message. Use BuildContext
// instead for a TemplateContext template.
func (tpl MessageTemplate) Build(m control.ControlMap) (*osc.Message, error) {
	msg := osc.NewMessage(tpl.Address)
	switch tpl.Kind {
	case TemplatePositional:
		for _, f := range tpl.Fields {
			v, ok := m[f.Name]
			if !ok {
				v = f.Default
			}
			arg, err := valueArg(v)
			if err != nil {
				return nil, fmt.Errorf("osctarget: field %q: %w", f.Name, err)
			}
			msg.Append(arg)
		}
	case TemplateNamed:
		keys := tpl.Required
		if len(keys) == 0 {
			keys = make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
		} else if missing := tpl.HasRequired(m); len(missing) > 0 {
			return nil, fmt.Errorf("osctarget: named template %q missing keys %v", tpl.Address, missing)
		}
		for _, k := range keys {
			arg, err := valueArg(m[k])
			if err != nil {
				return nil, fmt.Errorf("osctarget: field %q: %w", k, err)
			}
			msg.Append(k)
			msg.Append(arg)
		}
	default:
		return nil, fmt.Errorf("osctarget: Build called on a %v template; use BuildContext", tpl.Kind)
	}
	return msg, nil
}

// BuildContext renders a TemplateContext message for one event.
func (tpl MessageTemplate) BuildContext(patternID string, cycle, delta pattern.Time, e pattern.Event[control.ControlMap]) *osc.Message {
	msg := osc.NewMessage(tpl.Address)
	for _, arg := range contextArgs(patternID, cycle, delta, e) {
		msg.Append(arg)
	}
	return msg
}

// HasRequired reports whether m (after shape defaults) carries every key a
// named template requires, letting a caller validate before emission
// (§6's shape-required-keys note).
func (tpl MessageTemplate) HasRequired(m control.ControlMap) []string {
	var missing []string
	for _, k := range tpl.Required {
		if _, ok := m[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// SplitBusParams separates `^`-prefixed bus-reference parameters from the
// remaining play-path parameters (§6). For each `^name` entry, its own
// coerced integer value is the raw bus index; the value actually written
// to that bus is the plain `name` entry from the same map, if present
// (falling back to the `^name` entry's own value otherwise). Both keys
// are removed from the returned play-path map so they never leak into a
// play-path message.
func SplitBusParams(m control.ControlMap) (play control.ControlMap, buses map[string]BusWrite) {
	play = m.Clone()
	for k, v := range m {
		if !strings.HasPrefix(k, "^") {
			continue
		}
		name := strings.TrimPrefix(k, "^")
		idx, err := control.GetI(v)
		if err != nil {
			continue
		}
		value := v
		if pv, ok := m[name]; ok {
			value = pv
			delete(play, name)
		}
		if buses == nil {
			buses = make(map[string]BusWrite)
		}
		buses[name] = BusWrite{Index: idx, Value: value}
		delete(play, k)
	}
	return play, buses
}

// BusWrite is one resolved /c_set write: the raw bus index named by a
// `^`-prefixed parameter, and the value to set it to.
type BusWrite struct {
	Index int32
	Value control.Value
}

// contextArgs computes the seven positional arguments of a context
// message from an event's source metadata: the pattern identifier, the
// event's duration in cycles, the cycle it falls in, and the begin/end
// (line, column) of the mini-notation text it came from.
func contextArgs(patternID string, cycle, delta pattern.Time, e pattern.Event[control.ControlMap]) []any {
	var bx, by, ex, ey int32
	if n := len(e.Metadata); n > 0 {
		first, last := e.Metadata[0], e.Metadata[n-1]
		bx, by = int32(first.Col), int32(first.Line)
		ex, ey = int32(last.Col), int32(last.Line)
	}
	return []any{patternID, float32(delta.Float64()), float32(cycle.Float64()), bx, by, ex, ey}
}
