package control

import (
	"testing"

	"go-pattern/notation"
	"go-pattern/pattern"
)

func TestValueFromAtomPreservesNumberAsRational(t *testing.T) {
	atom := notation.Atom{Kind: notation.AtomNumber, Num: pattern.TimeFromInt(1).Rat()}
	v := ValueFromAtom(atom)
	if v.Kind != KRat {
		t.Fatalf("Kind = %v, want KRat", v.Kind)
	}
}

func TestValueFromAtomWordBecomesString(t *testing.T) {
	atom := notation.Atom{Kind: notation.AtomWord, Word: "bd"}
	v := ValueFromAtom(atom)
	s, err := GetS(v)
	if err != nil || s != "bd" {
		t.Errorf("GetS = %v, %v, want bd", s, err)
	}
}

func TestParamPatternLiftsUnderKey(t *testing.T) {
	p, err := ParamPattern("s", "bd sn")
	if err != nil {
		t.Fatalf("ParamPattern: %v", err)
	}
	es := p.QueryArc(pattern.CycleArc(0))
	if len(es) != 2 {
		t.Fatalf("len(es) = %d, want 2", len(es))
	}
	first, err := GetS(es[0].Value["s"])
	if err != nil || first != "bd" {
		t.Errorf("es[0][s] = %v, %v, want bd", first, err)
	}
}

func TestParamPatternPropagatesParseError(t *testing.T) {
	if _, err := ParamPattern("s", "["); err == nil {
		t.Error("expected a parse error for unbalanced notation")
	}
}

func TestWithShapeFillsMissingDefaultsOnly(t *testing.T) {
	shape := NewShape("drum", ControlMap{"n": Int(0), "gain": Float(1)})
	p, err := ParamPattern("s", "bd")
	if err != nil {
		t.Fatalf("ParamPattern: %v", err)
	}
	filled := WithShape(shape, p)
	es := filled.QueryArc(pattern.CycleArc(0))
	if len(es) != 1 {
		t.Fatalf("len(es) = %d, want 1", len(es))
	}
	m := es[0].Value
	if s, _ := GetS(m["s"]); s != "bd" {
		t.Errorf("m[s] = %v, want bd (supplied value must survive fill)", s)
	}
	if n, _ := GetI(m["n"]); n != 0 {
		t.Errorf("m[n] = %v, want 0 (default)", n)
	}
	if g, _ := GetF(m["gain"]); g != 1 {
		t.Errorf("m[gain] = %v, want 1 (default)", g)
	}
}
