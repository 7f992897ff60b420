package osctarget

import (
	"testing"

	"go-pattern/control"
	"go-pattern/pattern"
)

func TestSplitBusParamsRemapsAndStrips(t *testing.T) {
	m := control.ControlMap{
		"s":      control.Str("bd"),
		"^pan":   control.Int(3),
		"pan":    control.Float(0.75),
		"^speed": control.Int(1),
	}
	play, buses := SplitBusParams(m)

	if _, ok := play["^pan"]; ok {
		t.Error("play-path map should not contain ^pan")
	}
	if _, ok := play["pan"]; ok {
		t.Error("play-path map should not contain pan once routed to a bus")
	}
	if _, ok := play["s"]; !ok {
		t.Error("non-bus keys must survive in the play-path map")
	}

	bw, ok := buses["pan"]
	if !ok {
		t.Fatal("expected a bus write for pan")
	}
	if bw.Index != 3 {
		t.Errorf("bus index = %d, want 3", bw.Index)
	}
	f, err := control.GetF(bw.Value)
	if err != nil || f != 0.75 {
		t.Errorf("bus value = %v (%v), want 0.75", bw.Value, err)
	}

	speedWrite, ok := buses["speed"]
	if !ok {
		t.Fatal("expected a bus write for speed")
	}
	if speedWrite.Index != 1 {
		t.Errorf("speed bus index = %d, want 1", speedWrite.Index)
	}
}

func TestSplitBusParamsFallsBackToOwnValue(t *testing.T) {
	m := control.ControlMap{"^accelerate": control.Int(2)}
	_, buses := SplitBusParams(m)
	bw, ok := buses["accelerate"]
	if !ok {
		t.Fatal("expected a bus write for accelerate")
	}
	if bw.Index != 2 {
		t.Errorf("index = %d, want 2", bw.Index)
	}
	i, err := control.GetI(bw.Value)
	if err != nil || i != 2 {
		t.Errorf("fallback value = %v (%v), want 2", bw.Value, err)
	}
}

func TestPositionalTemplateUsesDefaults(t *testing.T) {
	tpl := Positional("/play",
		PositionalField{Name: "s", Default: control.Str("bd")},
		PositionalField{Name: "n", Default: control.Int(0)},
	)
	msg, err := tpl.Build(control.ControlMap{"s": control.Str("sn")})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if msg.Address != "/play" {
		t.Errorf("address = %q", msg.Address)
	}
	if len(msg.Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(msg.Arguments))
	}
	if msg.Arguments[0] != "sn" {
		t.Errorf("arg0 = %v, want sn (supplied value wins over default)", msg.Arguments[0])
	}
	if msg.Arguments[1] != int32(0) {
		t.Errorf("arg1 = %v, want 0 (default fills missing key)", msg.Arguments[1])
	}
}

func TestNamedTemplateRequiresKeys(t *testing.T) {
	tpl := Named("/play", "s", "n")
	if _, err := tpl.Build(control.ControlMap{"s": control.Str("bd")}); err == nil {
		t.Error("expected an error for a missing required key")
	}
	msg, err := tpl.Build(control.ControlMap{"s": control.Str("bd"), "n": control.Int(2)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []any{"s", "bd", "n", int32(2)}
	if len(msg.Arguments) != len(want) {
		t.Fatalf("arguments = %v, want %v", msg.Arguments, want)
	}
	for i, w := range want {
		if msg.Arguments[i] != w {
			t.Errorf("arg[%d] = %v, want %v", i, msg.Arguments[i], w)
		}
	}
}

func TestContextArgsCarrySourcePosition(t *testing.T) {
	e := pattern.Discrete(pattern.CycleArc(0), pattern.CycleArc(0), control.ControlMap{})
	e.Metadata = []pattern.Pos{{Line: 1, Col: 1}, {Line: 1, Col: 4}}
	args := contextArgs("d1", pattern.TimeFromInt(0), pattern.TimeFromFrac(1, 2), e)
	if args[0] != "d1" {
		t.Errorf("patternID = %v", args[0])
	}
	if args[3] != int32(1) || args[4] != int32(1) || args[5] != int32(4) || args[6] != int32(1) {
		t.Errorf("source position args = %v", args[3:])
	}
}
