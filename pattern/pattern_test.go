package pattern

import (
	"reflect"
	"testing"
)

func queryCycle(p Pattern[string], n int64) []Event[string] {
	return p.QueryArc(CycleArc(n))
}

func values(events []Event[string]) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Value
	}
	return out
}

func TestPureOneEventPerCycle(t *testing.T) {
	p := Pure("a")
	for cyc := int64(-2); cyc <= 2; cyc++ {
		es := queryCycle(p, cyc)
		if len(es) != 1 {
			t.Fatalf("cycle %d: got %d events, want 1", cyc, len(es))
		}
		if es[0].Value != "a" {
			t.Errorf("cycle %d: got %q", cyc, es[0].Value)
		}
		if !es[0].HasOnset() {
			t.Errorf("cycle %d: expected onset", cyc)
		}
	}
}

func TestQueryLocality(t *testing.T) {
	// Querying the sub-arc [1/4,1/2) must return only the event that falls
	// in it (b), while the full cycle returns all four.
	p := FastFromList([]string{"a", "b", "c", "d"})
	full := p.QueryArc(CycleArc(0))
	sub := p.QueryArc(Arc{Begin: frac(1, 4), End: frac(1, 2)})
	if len(sub) != 1 || sub[0].Value != "b" {
		t.Fatalf("sub-arc query got %v, want single event b", sub)
	}
	if len(full) != 4 {
		t.Fatalf("full cycle query got %d events, want 4", len(full))
	}
}

func TestSplitStability(t *testing.T) {
	p := FastFromList([]string{"a", "b"})
	whole := p.QueryArc(Arc{Begin: t64(0), End: t64(2)})
	var stitched []Event[string]
	stitched = append(stitched, p.QueryArc(Arc{Begin: t64(0), End: t64(1)})...)
	stitched = append(stitched, p.QueryArc(Arc{Begin: t64(1), End: t64(2)})...)
	if !reflect.DeepEqual(values(whole), values(stitched)) {
		t.Errorf("split query mismatch: whole=%v stitched=%v", values(whole), values(stitched))
	}
}

func TestDeterminism(t *testing.T) {
	p := FastFromList([]string{"a", "b", "c"})
	a := p.QueryArc(CycleArc(3))
	b := p.QueryArc(CycleArc(3))
	if !reflect.DeepEqual(values(a), values(b)) {
		t.Error("identical queries must be deterministic")
	}
}

func TestFastComposition(t *testing.T) {
	// fast(r, fast(s, p)) == fast(r*s, p)
	p := FastFromList([]string{"a", "b"})
	lhs := Fast(t64(3), Fast(t64(2), p))
	rhs := Fast(t64(6), p)
	a := lhs.QueryArc(CycleArc(0))
	b := rhs.QueryArc(CycleArc(0))
	if !reflect.DeepEqual(values(a), values(b)) {
		t.Errorf("fast composition mismatch: %v vs %v", values(a), values(b))
	}
}

func TestFastZeroIsSilence(t *testing.T) {
	p := Pure("a")
	if es := Fast(t64(0), p).QueryArc(CycleArc(0)); len(es) != 0 {
		t.Errorf("fast(0, p) should be silent, got %v", es)
	}
}

func TestRevInvolution(t *testing.T) {
	p := FastFromList([]string{"a", "b", "c"})
	rr := Rev(Rev(p))
	a := p.QueryArc(CycleArc(0))
	b := rr.QueryArc(CycleArc(0))
	if !reflect.DeepEqual(values(a), values(b)) {
		t.Errorf("rev(rev(p)) != p: %v vs %v", values(a), values(b))
	}
}

func TestStackWithSilenceIsIdentity(t *testing.T) {
	p := FastFromList([]string{"a", "b"})
	s := Stack(p, Silence[string]())
	a := p.QueryArc(CycleArc(0))
	b := s.QueryArc(CycleArc(0))
	if !reflect.DeepEqual(values(a), values(b)) {
		t.Errorf("stack(p, silence) != p: %v vs %v", values(a), values(b))
	}
}

func TestCatSingleIsIdentity(t *testing.T) {
	p := FastFromList([]string{"a", "b"})
	c := Cat(p)
	for cyc := int64(0); cyc < 3; cyc++ {
		a := p.QueryArc(CycleArc(cyc))
		b := c.QueryArc(CycleArc(cyc))
		if !reflect.DeepEqual(values(a), values(b)) {
			t.Errorf("cycle %d: cat([p]) != p: %v vs %v", cyc, values(a), values(b))
		}
	}
}

func TestCatRoundRobin(t *testing.T) {
	a := Pure("x")
	b := Pure("y")
	c := Cat(a, b)
	if got := values(queryCycle(c, 0)); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("cycle 0: got %v", got)
	}
	if got := values(queryCycle(c, 1)); !reflect.DeepEqual(got, []string{"y"}) {
		t.Errorf("cycle 1: got %v", got)
	}
	if got := values(queryCycle(c, 2)); !reflect.DeepEqual(got, []string{"x"}) {
		t.Errorf("cycle 2: got %v", got)
	}
}

func TestZoomIdentity(t *testing.T) {
	p := FastFromList([]string{"a", "b", "c"})
	z := Zoom(t64(0), t64(1), p)
	a := p.QueryArc(CycleArc(0))
	b := z.QueryArc(CycleArc(0))
	if !reflect.DeepEqual(values(a), values(b)) {
		t.Errorf("zoom(0,1,p) != p: %v vs %v", values(a), values(b))
	}
}

func TestCompressZoomRoundTrip(t *testing.T) {
	p := FastFromList([]string{"a", "b"})
	begin, end := frac(1, 4), frac(3, 4)
	compressed := Compress(begin, end, Zoom(begin, end, p))
	sub := compressed.QueryArc(Arc{Begin: begin, End: end})
	if len(sub) != 2 {
		t.Fatalf("expected 2 events in [1/4,3/4), got %v", sub)
	}
}

func TestEuclidPulseCount(t *testing.T) {
	for _, tc := range []struct{ n, k int }{{3, 8}, {5, 8}, {2, 5}, {0, 4}, {4, 4}} {
		bits := Bjorklund(tc.n, tc.k)
		if len(bits) != tc.k {
			t.Fatalf("Bjorklund(%d,%d): len=%d, want %d", tc.n, tc.k, len(bits), tc.k)
		}
		count := 0
		for _, b := range bits {
			if b {
				count++
			}
		}
		if count != tc.n {
			t.Errorf("Bjorklund(%d,%d): got %d pulses, want %d", tc.n, tc.k, count, tc.n)
		}
	}
}

func TestEuclidStructAppliesToValues(t *testing.T) {
	p := Euclid(3, 8, Pure("bd"))
	es := p.QueryArc(CycleArc(0))
	onsets := 0
	for _, e := range es {
		if e.HasOnset() {
			onsets++
		}
	}
	if onsets != 3 {
		t.Errorf("euclid(3,8) should have 3 onsets in a cycle, got %d", onsets)
	}
}

func TestRandomDeterminism(t *testing.T) {
	r := Rand()
	a := r.QueryArc(Arc{Begin: frac(1, 3), End: frac(1, 3)})
	b := r.QueryArc(Arc{Begin: frac(1, 3), End: frac(1, 3)})
	if a[0].Value != b[0].Value {
		t.Error("Rand must be a pure function of query time")
	}
}

func TestRandomRange(t *testing.T) {
	r := Rand()
	for cyc := int64(0); cyc < 20; cyc++ {
		v := r.QueryArc(CycleArc(cyc))[0].Value
		if v < 0 || v >= 1 {
			t.Errorf("cycle %d: Rand() = %v, out of [0,1)", cyc, v)
		}
	}
}

func TestDegradeByComplementsUnDegradeBy(t *testing.T) {
	p := FastFromList([]int{1, 2, 3, 4, 5, 6, 7, 8})
	dropped := DegradeBy(0.5, p)
	kept := UnDegradeBy(0.5, p)
	total := len(dropped.QueryArc(CycleArc(0))) + len(kept.QueryArc(CycleArc(0)))
	if total != 8 {
		t.Errorf("DegradeBy+UnDegradeBy should partition all 8 events, got %d total", total)
	}
}

func TestEveryModifiesLastCycleOfPeriod(t *testing.T) {
	p := Pure("a")
	f := func(pp Pattern[string]) Pattern[string] { return Pure("b") }
	e := Every(3, f, p)
	got0 := values(queryCycle(e, 0))
	got1 := values(queryCycle(e, 1))
	got2 := values(queryCycle(e, 2))
	if got0[0] != "a" || got1[0] != "a" || got2[0] != "b" {
		t.Errorf("every(3,f,p) cycles 0,1,2 = %v %v %v, want a a b", got0, got1, got2)
	}
}

func TestWhenGatesByBoolPattern(t *testing.T) {
	boolPat := FastFromList([]bool{true, false})
	f := func(p Pattern[string]) Pattern[string] { return Map(p, func(s string) string { return s + "!" }) }
	base := FastFromList([]string{"a", "b"})
	w := When(boolPat, f, base)
	got := values(w.QueryArc(CycleArc(0)))
	if !reflect.DeepEqual(got, []string{"a!", "b"}) {
		t.Errorf("got %v, want [a! b]", got)
	}
}

func TestStructKeepsOnlyTrueSteps(t *testing.T) {
	boolPat := FastFromList([]bool{true, false, true, false})
	p := Struct(boolPat, Pure("x"))
	got := p.QueryArc(CycleArc(0))
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d: %v", len(got), got)
	}
}

func TestMaskKeepsOverlappingRegions(t *testing.T) {
	boolPat := FromList([]bool{true, false})
	p := Mask(boolPat, FastFromList([]string{"a", "b", "c", "d"}))
	got0 := values(queryCycle(p, 0))
	if len(got0) != 4 {
		t.Errorf("cycle 0 (mask=true): want 4 kept, got %v", got0)
	}
	got1 := values(queryCycle(p, 1))
	if len(got1) != 0 {
		t.Errorf("cycle 1 (mask=false): want 0 kept, got %v", got1)
	}
}

func TestSignalContinuousHasNoWhole(t *testing.T) {
	s := Sine()
	es := s.QueryArc(CycleArc(0))
	if len(es) != 1 || es[0].Whole != nil {
		t.Errorf("Signal events must be continuous (nil Whole), got %v", es)
	}
}

func TestBindInnerUsesOuterWhole(t *testing.T) {
	outer := Pure(2)
	inner := func(n int) Pattern[string] { return FastFromList([]string{"a", "b", "c"}) }
	bound := Bind(Inner, outer, inner)
	es := bound.QueryArc(CycleArc(0))
	for _, e := range es {
		if e.Whole == nil || !e.Whole.Begin.Equal(t64(0)) || !e.Whole.End.Equal(t64(1)) {
			t.Errorf("inner join should keep outer's whole [0,1), got %v", e.Whole)
		}
	}
}

func TestApInnerAppliesFunctionsToValues(t *testing.T) {
	fp := FastFromList([]func(int) int{
		func(x int) int { return x + 1 },
		func(x int) int { return x * 2 },
	})
	pa := Pure(10)
	r := Ap(AppInner, fp, pa)
	got := r.QueryArc(CycleArc(0))
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
	if got[0].Value != 11 || got[1].Value != 20 {
		t.Errorf("got values %d, %d; want 11, 20", got[0].Value, got[1].Value)
	}
}
