package pattern

import "testing"

func t64(n int64) Time { return TimeFromInt(n) }
func frac(n, d int64) Time { return TimeFromFrac(n, d) }

func TestIntersectOverlapping(t *testing.T) {
	a := Arc{Begin: t64(0), End: t64(1)}
	b := Arc{Begin: frac(1, 2), End: t64(2)}
	got, ok := Intersect(a, b)
	if !ok {
		t.Fatal("expected overlap")
	}
	want := Arc{Begin: frac(1, 2), End: t64(1)}
	if !got.Begin.Equal(want.Begin) || !got.End.Equal(want.End) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestIntersectTouchingPositiveWidthArcsDontOverlap(t *testing.T) {
	a := Arc{Begin: t64(0), End: t64(1)}
	b := Arc{Begin: t64(1), End: t64(2)}
	if _, ok := Intersect(a, b); ok {
		t.Error("half-open arcs touching only at an endpoint must not overlap")
	}
}

func TestIntersectZeroWidthBothSamePoint(t *testing.T) {
	a := Arc{Begin: t64(1), End: t64(1)}
	b := Arc{Begin: t64(1), End: t64(1)}
	got, ok := Intersect(a, b)
	if !ok {
		t.Fatal("identical instants must intersect")
	}
	if !got.IsZeroWidth() || !got.Begin.Equal(t64(1)) {
		t.Errorf("got %v", got)
	}
}

func TestIntersectZeroWidthDifferentPoints(t *testing.T) {
	a := Arc{Begin: t64(1), End: t64(1)}
	b := Arc{Begin: t64(2), End: t64(2)}
	if _, ok := Intersect(a, b); ok {
		t.Error("distinct instants must not intersect")
	}
}

func TestIntersectZeroWidthInsidePositiveArc(t *testing.T) {
	point := Arc{Begin: frac(1, 2), End: frac(1, 2)}
	span := Arc{Begin: t64(0), End: t64(1)}
	got, ok := Intersect(point, span)
	if !ok {
		t.Fatal("point strictly inside span should intersect")
	}
	if !got.Begin.Equal(frac(1, 2)) {
		t.Errorf("got %v", got)
	}
}

func TestIntersectZeroWidthAtSpanEndExcluded(t *testing.T) {
	point := Arc{Begin: t64(1), End: t64(1)}
	span := Arc{Begin: t64(0), End: t64(1)}
	if _, ok := Intersect(point, span); ok {
		t.Error("point at the half-open end of span must not intersect")
	}
}

func TestIntersectZeroWidthAtSpanBeginIncluded(t *testing.T) {
	point := Arc{Begin: t64(0), End: t64(0)}
	span := Arc{Begin: t64(0), End: t64(1)}
	if _, ok := Intersect(point, span); !ok {
		t.Error("point at span's begin must intersect")
	}
}

func TestSplitCycles(t *testing.T) {
	a := Arc{Begin: frac(1, 2), End: frac(5, 2)}
	parts := a.SplitCycles()
	want := []Arc{
		{Begin: frac(1, 2), End: t64(1)},
		{Begin: t64(1), End: t64(2)},
		{Begin: t64(2), End: frac(5, 2)},
	}
	if len(parts) != len(want) {
		t.Fatalf("got %d parts, want %d: %v", len(parts), len(want), parts)
	}
	for i := range want {
		if !parts[i].Begin.Equal(want[i].Begin) || !parts[i].End.Equal(want[i].End) {
			t.Errorf("part %d: got %v want %v", i, parts[i], want[i])
		}
	}
}

func TestSplitCyclesZeroWidth(t *testing.T) {
	a := Arc{Begin: frac(1, 2), End: frac(1, 2)}
	parts := a.SplitCycles()
	if len(parts) != 1 || !parts[0].Begin.Equal(frac(1, 2)) {
		t.Errorf("zero-width arc should split to itself, got %v", parts)
	}
}

func TestHull(t *testing.T) {
	a := Arc{Begin: t64(0), End: frac(1, 2)}
	b := Arc{Begin: frac(1, 4), End: t64(2)}
	h := Hull(a, b)
	if !h.Begin.Equal(t64(0)) || !h.End.Equal(t64(2)) {
		t.Errorf("got %v", h)
	}
}
