package pattern

// cycleBool builds a one-event-per-cycle boolean pattern whose value is
// pred applied to the integer cycle number; used internally by Every.
func cycleBool(pred func(cycle int64) bool) Pattern[bool] {
	return New[bool](func(s State) []Event[bool] {
		var out []Event[bool]
		for _, sub := range s.Arc.SplitCycles() {
			cyc := sub.Cycle().Int64Sam()
			whole := CycleArc(cyc)
			active, ok := Intersect(whole, sub)
			if !ok {
				continue
			}
			out = append(out, Discrete(whole, active, pred(cyc)))
		}
		return out
	})
}

// When applies f to p only where boolPat is true; elsewhere p plays
// unmodified. Structure for each region comes from whichever of p / f(p)
// is queried, restricted to boolPat's active windows.
func When[V any](boolPat Pattern[bool], f func(Pattern[V]) Pattern[V], p Pattern[V]) Pattern[V] {
	fp := f(p)
	return New[V](func(s State) []Event[V] {
		var out []Event[V]
		for _, be := range boolPat.Query(s) {
			src := p
			if be.Value {
				src = fp
			}
			out = append(out, src.Query(s.WithArc(be.Active))...)
		}
		return out
	})
}

// Every applies f to p on every nth cycle (the last cycle of each period of
// length n), leaving the other n-1 cycles unmodified. n <= 0 is a no-op.
func Every[V any](n int, f func(Pattern[V]) Pattern[V], p Pattern[V]) Pattern[V] {
	if n <= 0 {
		return p
	}
	nn := int64(n)
	boolPat := cycleBool(func(cyc int64) bool {
		return ((cyc%nn)+nn)%nn == nn-1
	})
	return When(boolPat, f, p)
}

// EveryOffset is Every but the modified cycle is offset within its period
// (offset 0 behaves like Every).
func EveryOffset[V any](n, offset int, f func(Pattern[V]) Pattern[V], p Pattern[V]) Pattern[V] {
	if n <= 0 {
		return p
	}
	nn, off := int64(n), int64(offset)
	boolPat := cycleBool(func(cyc int64) bool {
		return ((cyc-off)%nn+nn)%nn == nn-1
	})
	return When(boolPat, f, p)
}

// DegradeBy drops each event of p whose onset's deterministic random draw
// is greater than x (x in [0,1]).
func DegradeBy[V any](x float64, p Pattern[V]) Pattern[V] {
	return FilterEvents(p, func(e Event[V]) bool {
		return randFloat64(e.WholeOrActive().Begin) <= x
	})
}

// UnDegradeBy keeps exactly the events DegradeBy would drop — the
// complementary selection used by SometimesBy.
func UnDegradeBy[V any](x float64, p Pattern[V]) Pattern[V] {
	return FilterEvents(p, func(e Event[V]) bool {
		return randFloat64(e.WholeOrActive().Begin) > x
	})
}

// Overlay is parallel composition of exactly two patterns (Stack(a, b)).
func Overlay[V any](a, b Pattern[V]) Pattern[V] {
	return Stack(a, b)
}

// SometimesBy applies f to the events UnDegradeBy selects (random draw
// above x, about a fraction 1-x of them) while leaving the rest (DegradeBy's
// selection, about a fraction x) unmodified, then overlays both.
func SometimesBy[V any](x float64, f func(Pattern[V]) Pattern[V], p Pattern[V]) Pattern[V] {
	return Overlay(DegradeBy(x, p), f(UnDegradeBy(x, p)))
}

// Sometimes applies f to roughly half of events.
func Sometimes[V any](f func(Pattern[V]) Pattern[V], p Pattern[V]) Pattern[V] {
	return SometimesBy(0.5, f, p)
}

// Choose is a continuous pattern that, at every query, randomly selects one
// of xs based on the query's midpoint time.
func Choose[V any](xs []V) Pattern[V] {
	return Signal(func(t Time) V {
		idx := int(randFloat64(t) * float64(len(xs)))
		if idx >= len(xs) {
			idx = len(xs) - 1
		}
		return xs[idx]
	})
}

// CycleChoose is like Choose but makes one selection per cycle rather than
// continuously (source keeps `choose` continuous and `cycleChoose`
// one-per-cycle; this implementation preserves that distinction).
func CycleChoose[V any](xs []V) Pattern[V] {
	return Segment(TimeFromInt(1), Choose(xs))
}

// WeightedChoice pairs a value with its relative selection weight.
type WeightedChoice[V any] struct {
	Value  V
	Weight float64
}

// WChoose is a continuous weighted random selection.
func WChoose[V any](choices []WeightedChoice[V]) Pattern[V] {
	total := 0.0
	for _, c := range choices {
		total += c.Weight
	}
	return Signal(func(t Time) V {
		r := randFloat64(t) * total
		acc := 0.0
		for _, c := range choices {
			acc += c.Weight
			if r < acc {
				return c.Value
			}
		}
		return choices[len(choices)-1].Value
	})
}

// Segment resamples a continuous pattern at rate n, making it discrete: n
// slots per cycle, each taking p's value sampled within that slot.
func Segment[V any](n Time, p Pattern[V]) Pattern[V] {
	grid := Fast(n, Pure(func(v V) V { return v }))
	return Ap(AppInner, grid, p)
}

// Struct keeps the parts of p's events that overlap a true event of
// boolPat, cut to that event's active arc; p's own onsets are not checked.
// The resulting whole comes from boolPat (per the source library's
// behavior, preserved here per spec §9's open question).
func Struct[V any](boolPat Pattern[bool], p Pattern[V]) Pattern[V] {
	return New[V](func(s State) []Event[V] {
		var out []Event[V]
		for _, be := range boolPat.Query(s) {
			if !be.Value {
				continue
			}
			for _, ve := range p.Query(s.WithArc(be.Active)) {
				active, ok := Intersect(be.Active, ve.Active)
				if !ok {
					continue
				}
				var whole *Arc
				if be.Whole != nil {
					w := *be.Whole
					whole = &w
				}
				out = append(out, Event[V]{
					Metadata: append(append([]Pos{}, be.Metadata...), ve.Metadata...),
					Whole:    whole,
					Active:   active,
					Value:    ve.Value,
				})
			}
		}
		return out
	})
}

// Mask is Struct's dual: it keeps p's own whole, dropping events that do
// not overlap a true sample of boolPat at all (rather than taking
// boolPat's whole).
func Mask[V any](boolPat Pattern[bool], p Pattern[V]) Pattern[V] {
	return New[V](func(s State) []Event[V] {
		var out []Event[V]
		for _, ve := range p.Query(s) {
			for _, be := range boolPat.Query(s.WithArc(ve.Active)) {
				if !be.Value {
					continue
				}
				active, ok := Intersect(ve.Active, be.Active)
				if !ok {
					continue
				}
				out = append(out, Event[V]{
					Metadata: append(append([]Pos{}, ve.Metadata...), be.Metadata...),
					Whole:    ve.Whole,
					Active:   active,
					Value:    ve.Value,
				})
			}
		}
		return out
	})
}
