package control

import (
	"go-pattern/notation"
	"go-pattern/pattern"
)

// ValueFromAtom converts a parsed mini-notation leaf into a tagged Value:
// numbers become VR (exact rational) so no precision is lost widening e.g.
// "0.25" into a control; barewords become VS. This is the seam between the
// mini-notation parser (§4.D, producing Pattern[Atom]) and the control map
// (§4.E, the canonical event payload) that a caller assembles named
// parameters from.
func ValueFromAtom(a notation.Atom) Value {
	if a.Kind == notation.AtomNumber {
		return Rat(a.Num)
	}
	return Str(a.Word)
}

// FromAtomPattern lifts a parsed Atom pattern into a single-key ControlMap
// pattern, the shape every mini-notation-driven parameter (`s "bd sn"`,
// `n "0 1 2"`, ...) takes before being merged with its neighbors via Union
// (`#`) into one event's full parameter set.
func FromAtomPattern(key string, p pattern.Pattern[notation.Atom]) pattern.Pattern[ControlMap] {
	return pattern.Map(p, func(a notation.Atom) ControlMap {
		return ControlMap{key: ValueFromAtom(a)}
	})
}

// ParamPattern parses mini-notation source and lifts it under key in one
// step, the common case for assembling `s "bd sn" # n "0 1"`-style chains
// from raw text.
func ParamPattern(key, src string) (pattern.Pattern[ControlMap], error) {
	p, err := notation.CompileString(src)
	if err != nil {
		return pattern.Pattern[ControlMap]{}, err
	}
	return FromAtomPattern(key, p), nil
}

// WithShape fills every default from shape onto each event of p that does
// not already supply it. It does not check shape's Required keys and
// reports no error for events that lack them; Shape.Missing does that check.
func WithShape(shape Shape, p pattern.Pattern[ControlMap]) pattern.Pattern[ControlMap] {
	return pattern.Map(p, shape.Fill)
}
