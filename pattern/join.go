package pattern

// JoinStrategy selects how the whole of a bound (nested) pattern is chosen
// when an outer event's value is itself a pattern. Each Pattern carries its
// preferred strategy (see Pattern.strategy); Bind without an explicit
// strategy uses the outer pattern's tag, matching "applying a binary
// operator aligns the two operands by the left one's strategy".
type JoinStrategy int

const (
	Inner JoinStrategy = iota
	Outer
	Mix
	Squeeze
	SqueezeOut
	Trig
	Trig0
)

// Bind queries outer, and for every resulting event applies f to its value
// to get an inner pattern, then combines outer and inner per strategy. This
// is the single dispatch point every named join (InnerJoin, OuterJoin, ...)
// funnels through, matching the design note "a single bind(strategy,
// outer, f) implementation dispatches on the tag".
func Bind[A, B any](strategy JoinStrategy, outer Pattern[A], f func(A) Pattern[B]) Pattern[B] {
	switch strategy {
	case Outer:
		return outerJoin(outer, f)
	case Mix:
		return mixJoin(outer, f)
	case Squeeze:
		return squeezeJoin(outer, f, false)
	case SqueezeOut:
		return squeezeJoin(outer, f, true)
	case Trig:
		return trigJoin(outer, f, true)
	case Trig0:
		return trigJoin(outer, f, false)
	default:
		return innerJoin(outer, f)
	}
}

// DefaultBind dispatches using outer's own tagged strategy.
func DefaultBind[A, B any](outer Pattern[A], f func(A) Pattern[B]) Pattern[B] {
	return Bind(outer.strategy, outer, f)
}

// innerJoin: the outer pattern supplies structure — results keep outer's
// whole. Use when the outer pattern's timing is what matters (e.g. `#`).
func innerJoin[A, B any](outer Pattern[A], f func(A) Pattern[B]) Pattern[B] {
	return New[B](func(s State) []Event[B] {
		var out []Event[B]
		for _, oe := range outer.Query(s) {
			inner := f(oe.Value)
			for _, ie := range inner.Query(s.WithArc(oe.Active)) {
				active, ok := Intersect(oe.Active, ie.Active)
				if !ok {
					continue
				}
				var whole *Arc
				if oe.Whole != nil {
					w := *oe.Whole
					whole = &w
				}
				out = append(out, Event[B]{Metadata: append(oe.Metadata, ie.Metadata...), Whole: whole, Active: active, Value: ie.Value})
			}
		}
		return out
	})
}

// outerJoin: the inner pattern supplies structure — results keep inner's
// whole.
func outerJoin[A, B any](outer Pattern[A], f func(A) Pattern[B]) Pattern[B] {
	return New[B](func(s State) []Event[B] {
		var out []Event[B]
		for _, oe := range outer.Query(s) {
			inner := f(oe.Value)
			for _, ie := range inner.Query(s.WithArc(oe.Active)) {
				active, ok := Intersect(oe.Active, ie.Active)
				if !ok {
					continue
				}
				var whole *Arc
				if ie.Whole != nil {
					w := *ie.Whole
					whole = &w
				}
				out = append(out, Event[B]{Metadata: append(oe.Metadata, ie.Metadata...), Whole: whole, Active: active, Value: ie.Value})
			}
		}
		return out
	})
}

// mixJoin: symmetric merge — whole is the intersection of outer's and
// inner's wholes (absent if either is absent).
func mixJoin[A, B any](outer Pattern[A], f func(A) Pattern[B]) Pattern[B] {
	return New[B](func(s State) []Event[B] {
		var out []Event[B]
		for _, oe := range outer.Query(s) {
			inner := f(oe.Value)
			for _, ie := range inner.Query(s.WithArc(oe.Active)) {
				active, ok := Intersect(oe.Active, ie.Active)
				if !ok {
					continue
				}
				var whole *Arc
				if oe.Whole != nil && ie.Whole != nil {
					w, ok := Intersect(*oe.Whole, *ie.Whole)
					if ok {
						whole = &w
					}
				}
				out = append(out, Event[B]{Metadata: append(oe.Metadata, ie.Metadata...), Whole: whole, Active: active, Value: ie.Value})
			}
		}
		return out
	})
}

// squeezeJoin compresses each whole cycle of the inner pattern into the
// outer event's whole (focus), giving nested rhythms their own sub-divided
// timeline per outer step. When out is true, the inner pattern's own
// structure (post-squeeze) wins the resulting whole (SqueezeOut); otherwise
// the squeezed pattern's whole is still used since squeezing is defined in
// terms of the inner timeline remapped onto the outer slot.
func squeezeJoin[A, B any](outer Pattern[A], f func(A) Pattern[B], out bool) Pattern[B] {
	return New[B](func(s State) []Event[B] {
		var res []Event[B]
		for _, oe := range outer.Query(s) {
			whole := oe.WholeOrActive()
			squeezed := focusArc(whole, f(oe.Value))
			for _, ie := range squeezed.Query(s.WithArc(oe.Active)) {
				active, ok := Intersect(oe.Active, ie.Active)
				if !ok {
					continue
				}
				var w *Arc
				if ie.Whole != nil {
					cp := *ie.Whole
					w = &cp
				} else if oe.Whole != nil {
					cp := *oe.Whole
					w = &cp
				}
				res = append(res, Event[B]{Metadata: append(oe.Metadata, ie.Metadata...), Whole: w, Active: active, Value: ie.Value})
			}
		}
		return res
	})
}

// trigJoin restarts the inner pattern at each outer onset. When cycleAlign
// is true the inner pattern's cycle zero is realigned to the Sam of the
// onset (Trig); otherwise it is realigned to the exact onset time (Trig0).
func trigJoin[A, B any](outer Pattern[A], f func(A) Pattern[B], cycleAlign bool) Pattern[B] {
	return New[B](func(s State) []Event[B] {
		var out []Event[B]
		for _, oe := range outer.Query(s) {
			if !oe.HasOnset() {
				continue
			}
			onset := oe.Active.Begin
			shiftPoint := onset
			if cycleAlign {
				shiftPoint = onset.Sam()
			}
			inner := lateShift(shiftPoint, f(oe.Value))
			for _, ie := range inner.Query(s.WithArc(oe.Active)) {
				active, ok := Intersect(oe.Active, ie.Active)
				if !ok {
					continue
				}
				var whole *Arc
				if ie.Whole != nil {
					cp := *ie.Whole
					whole = &cp
				}
				out = append(out, Event[B]{Metadata: append(oe.Metadata, ie.Metadata...), Whole: whole, Active: active, Value: ie.Value})
			}
		}
		return out
	})
}

// lateShift shifts p forward by t (p's cycle 0 starts playing at time t).
func lateShift[V any](t Time, p Pattern[V]) Pattern[V] {
	return New[V](func(s State) []Event[V] {
		shifted := s.WithArc(s.Arc.WithTime(func(x Time) Time { return x.Sub(t) }))
		events := p.Query(shifted)
		out := make([]Event[V], len(events))
		for i, e := range events {
			out[i] = e.WithArcs(func(a Arc) Arc { return a.WithTime(func(x Time) Time { return x.Add(t) }) })
		}
		return out
	})
}

// AppFlavor selects which operand supplies structure for an applicative
// combination (see §4.C "Applicative alignment").
type AppFlavor int

const (
	AppInner AppFlavor = iota // left (function pattern) supplies structure
	AppOuter                  // right (value pattern) supplies structure
	AppMix                    // intersect both
)

// Ap combines a pattern of functions with a pattern of arguments. Structure
// comes from whichever operand flavor names; AppMix intersects both
// operands' wholes the way mixJoin does.
func Ap[A, B any](flavor AppFlavor, pf Pattern[func(A) B], pa Pattern[A]) Pattern[B] {
	return New[B](func(s State) []Event[B] {
		var out []Event[B]
		switch flavor {
		case AppOuter:
			for _, ae := range pa.Query(s) {
				for _, fe := range pf.Query(s.WithArc(ae.Active)) {
					active, ok := Intersect(ae.Active, fe.Active)
					if !ok {
						continue
					}
					var whole *Arc
					if ae.Whole != nil {
						cp := *ae.Whole
						whole = &cp
					}
					out = append(out, Event[B]{Metadata: append(fe.Metadata, ae.Metadata...), Whole: whole, Active: active, Value: fe.Value(ae.Value)})
				}
			}
		case AppMix:
			for _, fe := range pf.Query(s) {
				for _, ae := range pa.Query(s) {
					active, ok := Intersect(fe.Active, ae.Active)
					if !ok {
						continue
					}
					var whole *Arc
					if fe.Whole != nil && ae.Whole != nil {
						w, ok := Intersect(*fe.Whole, *ae.Whole)
						if ok {
							whole = &w
						}
					}
					out = append(out, Event[B]{Metadata: append(fe.Metadata, ae.Metadata...), Whole: whole, Active: active, Value: fe.Value(ae.Value)})
				}
			}
		default: // AppInner
			for _, fe := range pf.Query(s) {
				for _, ae := range pa.Query(s.WithArc(fe.Active)) {
					active, ok := Intersect(fe.Active, ae.Active)
					if !ok {
						continue
					}
					var whole *Arc
					if fe.Whole != nil {
						cp := *fe.Whole
						whole = &cp
					}
					out = append(out, Event[B]{Metadata: append(fe.Metadata, ae.Metadata...), Whole: whole, Active: active, Value: fe.Value(ae.Value)})
				}
			}
		}
		return out
	})
}
