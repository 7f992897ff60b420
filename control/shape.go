package control

// Shape declares a named parameter with its default value, the way a synth
// definition advertises its controllable fields. Patterns built from
// positional mini-notation values (e.g. a bare note name with no named
// params) are widened to a full ControlMap by filling every field from its
// Shape's defaults and overwriting only the ones actually supplied.
//
// Modeled on the teacher's GM drum-note table (sequencer/kits.go, since
// adapted out of the tree): that table was a fixed name→note-number map
// for one fixed instrument; a Shape generalizes the same idea to an
// arbitrary named-parameter default table per synth voice.
type Shape struct {
	Name     string
	Params   []string
	Defaults ControlMap
	Required []string
}

// NewShape builds a Shape, defaulting Required to Params when none is
// given explicitly (every declared parameter must be present).
func NewShape(name string, defaults ControlMap, required ...string) Shape {
	params := make([]string, 0, len(defaults))
	for k := range defaults {
		params = append(params, k)
	}
	if len(required) == 0 {
		required = params
	}
	return Shape{Name: name, Params: params, Defaults: defaults, Required: required}
}

// Fill returns a copy of m with every Shape default present that m itself
// does not already supply.
func (s Shape) Fill(m ControlMap) ControlMap {
	out := make(ControlMap, len(s.Defaults)+len(m))
	for k, v := range s.Defaults {
		out[k] = v
	}
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Missing reports which of Shape's Required keys are absent from m itself;
// defaults do not count as supplying a required key — used to validate a
// named-form message template before emission (§6 "Named form — requires a
// given set of keys").
func (s Shape) Missing(m ControlMap) []string {
	var missing []string
	for _, k := range s.Required {
		if _, ok := m[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// FromPositional builds a ControlMap from a positional argument list,
// matching each value against Shape.Params in order and filling any
// remaining params from Defaults — the "positional form" of §6's message
// templates read in reverse, as the shape that supplied the defaults.
func (s Shape) FromPositional(values []Value) ControlMap {
	out := make(ControlMap, len(s.Defaults))
	for k, v := range s.Defaults {
		out[k] = v
	}
	for i, v := range values {
		if i >= len(s.Params) {
			break
		}
		out[s.Params[i]] = v
	}
	return out
}
