package pattern

// Arc is a half-open interval of cycle-time [Begin, End). A zero-width arc
// (Begin == End) is permitted and represents an instant.
type Arc struct {
	Begin, End Time
}

func NewArc(begin, end Time) Arc { return Arc{Begin: begin, End: end} }

// IsZeroWidth reports whether the arc has no extent.
func (a Arc) IsZeroWidth() bool { return a.Begin.Equal(a.End) }

// Width returns End - Begin.
func (a Arc) Width() Time { return a.End.Sub(a.Begin) }

// WithTime maps both endpoints through f, producing a new arc.
func (a Arc) WithTime(f func(Time) Time) Arc {
	return Arc{Begin: f(a.Begin), End: f(a.End)}
}

// containsPoint reports whether the half-open arc a contains the instant p,
// treating a itself as a single point if it is zero-width.
func (a Arc) containsPoint(p Time) bool {
	if a.IsZeroWidth() {
		return a.Begin.Equal(p)
	}
	return a.Begin.LessEq(p) && p.Less(a.End)
}

// Intersect returns the overlapping arc of a and b, or false if they do not
// overlap. Two arcs that touch only at a shared endpoint intersect only
// when both are themselves zero-width at that point (the "instant" special
// case); a zero-width arc intersects a positive-width arc only when the
// point falls inside the half-open interval.
func Intersect(a, b Arc) (Arc, bool) {
	switch {
	case a.IsZeroWidth() && b.IsZeroWidth():
		if a.Begin.Equal(b.Begin) {
			return a, true
		}
		return Arc{}, false
	case a.IsZeroWidth():
		if b.containsPoint(a.Begin) {
			return a, true
		}
		return Arc{}, false
	case b.IsZeroWidth():
		if a.containsPoint(b.Begin) {
			return b, true
		}
		return Arc{}, false
	}
	begin := a.Begin.Max(b.Begin)
	end := a.End.Min(b.End)
	if begin.Less(end) {
		return Arc{Begin: begin, End: end}, true
	}
	return Arc{}, false
}

// Hull returns the convex union (smallest enclosing arc) of a and b.
func Hull(a, b Arc) Arc {
	return Arc{Begin: a.Begin.Min(b.Begin), End: a.End.Max(b.End)}
}

// SplitCycles cuts arc at every integer cycle boundary, returning the
// resulting list of sub-arcs in order. A zero-width arc is returned as a
// single-element list unchanged.
func (a Arc) SplitCycles() []Arc {
	if a.Begin.Greater(a.End) {
		return nil
	}
	if a.IsZeroWidth() {
		return []Arc{a}
	}
	var out []Arc
	b := a.Begin
	for b.Less(a.End) {
		e := b.NextSam().Min(a.End)
		out = append(out, Arc{Begin: b, End: e})
		b = e
	}
	return out
}

// CycleArc returns the whole-cycle arc [n, n+1).
func CycleArc(n int64) Arc {
	s := TimeFromInt(n)
	return Arc{Begin: s, End: s.Add(TimeFromInt(1))}
}

// Mid returns the midpoint of the arc (Begin for a zero-width arc).
func (a Arc) Mid() Time {
	if a.IsZeroWidth() {
		return a.Begin
	}
	return a.Begin.Add(a.Width().Quo(TimeFromInt(2)))
}

// Cycle returns Sam(Begin): the integer cycle this arc starts in.
func (a Arc) Cycle() Time { return a.Begin.Sam() }

// WithCycle rebases the arc so it occupies the position within cycle `to`
// that it previously occupied within cycle `from`, shifting both endpoints
// by to-from.
func (a Arc) WithCycle(from, to Time) Arc {
	delta := to.Sub(from)
	return Arc{Begin: a.Begin.Add(delta), End: a.End.Add(delta)}
}
