package control

import (
	"testing"

	"go-pattern/pattern"
)

func TestGetFCoercions(t *testing.T) {
	cases := []struct {
		v    Value
		want float64
	}{
		{Int(3), 3},
		{Float(1.5), 1.5},
		{Str("2.25"), 2.25},
	}
	for _, c := range cases {
		got, err := GetF(c.v)
		if err != nil {
			t.Fatalf("GetF(%v): %v", c.v, err)
		}
		if got != c.want {
			t.Errorf("GetF(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestGetFRejectsNonNumeric(t *testing.T) {
	if _, err := GetF(Bool(true)); err == nil {
		t.Error("GetF(bool) should error")
	}
}

func TestGetFErrorIsTypedEvalError(t *testing.T) {
	_, err := GetF(Bool(true))
	if _, ok := err.(*EvalError); !ok {
		t.Fatalf("GetF error is %T, want *EvalError", err)
	}
}

func TestUnionRightWinsOnClash(t *testing.T) {
	a := pattern.Pure(ControlMap{"note": Int(1), "pan": Float(0.5)})
	b := pattern.Pure(ControlMap{"note": Int(2)})
	merged := Union(a, b)
	es := merged.QueryArc(pattern.CycleArc(0))
	if len(es) != 1 {
		t.Fatalf("expected 1 event, got %d", len(es))
	}
	m := es[0].Value
	if m["note"].I != 2 {
		t.Errorf("right should win on clash, got note=%v", m["note"])
	}
	if m["pan"].F != 0.5 {
		t.Errorf("pan should survive from left, got %v", m["pan"])
	}
}

func TestAddNumericKeys(t *testing.T) {
	a := pattern.Pure(ControlMap{"gain": Float(1)})
	b := pattern.Pure(ControlMap{"gain": Float(2)})
	summed := Add(a, b)
	es := summed.QueryArc(pattern.CycleArc(0))
	if got := es[0].Value["gain"].F; got != 3 {
		t.Errorf("gain = %v, want 3", got)
	}
}

func TestShapeFillAndMissing(t *testing.T) {
	shape := NewShape("bd", ControlMap{"pan": Float(0.5), "gain": Float(1)}, "pan", "gain")
	filled := shape.Fill(ControlMap{"gain": Float(0.8)})
	if filled["pan"].F != 0.5 {
		t.Errorf("pan default not applied: %v", filled)
	}
	if filled["gain"].F != 0.8 {
		t.Errorf("gain override not applied: %v", filled)
	}
	if missing := shape.Missing(ControlMap{}); len(missing) != 2 {
		t.Errorf("expected 2 missing keys, got %v", missing)
	}
}

func TestResolveStateSubstitutesSignal(t *testing.T) {
	sig := Signal(pattern.Signal(func(pattern.Time) Value { return Float(0.75) }))
	live := map[string]Value{"cutoff": sig, "shape": Str("saw")}
	resolved := ResolveState(live, pattern.TimeFromInt(0))
	cutoff := resolved["cutoff"].(Value)
	if cutoff.F != 0.75 {
		t.Errorf("signal not resolved: %v", cutoff)
	}
	shape := resolved["shape"].(Value)
	if shape.S != "saw" {
		t.Errorf("non-signal value altered: %v", shape)
	}
}
