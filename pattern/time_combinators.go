package pattern

// withQueryTime maps the arc of an incoming query through f before handing
// it to p.
func withQueryTime[V any](f func(Time) Time, p Pattern[V]) Pattern[V] {
	return New[V](func(s State) []Event[V] {
		return p.Query(s.WithArc(s.Arc.WithTime(f)))
	}).WithStrategy(p.strategy)
}

// withResultTime maps every returned event's arcs through f.
func withResultTime[V any](f func(Time) Time, p Pattern[V]) Pattern[V] {
	return New[V](func(s State) []Event[V] {
		in := p.Query(s)
		out := make([]Event[V], len(in))
		for i, e := range in {
			out[i] = e.WithArcs(func(a Arc) Arc { return a.WithTime(f) })
		}
		return out
	}).WithStrategy(p.strategy)
}

// Fast scales pattern-time by r: r cycles of p play in one outer cycle.
// fast(0, p) = silence; fast(r<0, p) = rev(fast(|r|, p)).
func Fast[V any](r Time, p Pattern[V]) Pattern[V] {
	switch r.Sign() {
	case 0:
		return Silence[V]()
	case -1:
		return Rev(Fast(r.Neg(), p))
	}
	return withResultTime(func(t Time) Time { return t.Quo(r) },
		withQueryTime(func(t Time) Time { return t.Mul(r) }, p))
}

// Slow scales pattern-time by 1/r. slow(0, p) = silence (division by zero
// has no sensible pattern-time meaning).
func Slow[V any](r Time, p Pattern[V]) Pattern[V] {
	if r.IsZero() {
		return Silence[V]()
	}
	return Fast(TimeFromInt(1).Quo(r), p)
}

// Early shifts p earlier by t (rotL): an event that played at time x now
// plays at time x-t.
func Early[V any](t Time, p Pattern[V]) Pattern[V] {
	return withResultTime(func(x Time) Time { return x.Sub(t) },
		withQueryTime(func(x Time) Time { return x.Add(t) }, p))
}

// Late shifts p later by t (rotR).
func Late[V any](t Time, p Pattern[V]) Pattern[V] {
	return Early(t.Neg(), p)
}

// mapCycle applies f to the cycle-local portion of an arc's endpoints,
// keeping the arc anchored to the cycle that its Begin falls in.
func mapCycle(f func(Time) Time, a Arc) Arc {
	cyc := a.Begin.Sam()
	localB := a.Begin.Sub(cyc)
	localE := a.End.Sub(cyc)
	return Arc{Begin: cyc.Add(f(localB)), End: cyc.Add(f(localE))}
}

// Rev reflects each cycle of p: the event at offset x in [0,1) of cycle c
// appears at offset 1-x of the same cycle c.
func Rev[V any](p Pattern[V]) Pattern[V] {
	return New[V](func(s State) []Event[V] {
		var out []Event[V]
		for _, sub := range s.Arc.SplitCycles() {
			cyc := sub.Cycle()
			reflect := func(t Time) Time { return cyc.Add(cyc).Add(TimeFromInt(1)).Sub(t) }
			reflectArc := func(a Arc) Arc { return Arc{Begin: reflect(a.End), End: reflect(a.Begin)} }
			events := p.Query(s.WithArc(reflectArc(sub)))
			for _, e := range events {
				out = append(out, e.WithArcs(reflectArc))
			}
		}
		return out
	})
}

// Zoom plays the slice p[a,b) stretched to fill [0,1), repeating per outer
// cycle the way the source library's zoomArc does (gluing the window from
// each repetition of the cycle).
func Zoom[V any](a, b Time, p Pattern[V]) Pattern[V] {
	d := b.Sub(a)
	if d.Sign() <= 0 {
		return Silence[V]()
	}
	queryMap := func(t Time) Time { return t.Mul(d).Add(a) }
	resultMap := func(t Time) Time { return t.Sub(a).Quo(d) }
	return New[V](func(s State) []Event[V] {
		var out []Event[V]
		for _, sub := range s.Arc.SplitCycles() {
			qArc := mapCycle(queryMap, sub)
			events := p.Query(s.WithArc(qArc))
			for _, e := range events {
				out = append(out, e.WithArcs(func(a Arc) Arc { return mapCycle(resultMap, a) }))
			}
		}
		return out
	})
}

// FastGap plays p r times faster, leaving silence in the remainder of each
// cycle (unlike Fast, which simply repeats).
func FastGap[V any](r Time, p Pattern[V]) Pattern[V] {
	if r.Sign() <= 0 {
		return Silence[V]()
	}
	rr := r
	if rr.Less(TimeFromInt(1)) {
		rr = TimeFromInt(1)
	}
	one := TimeFromInt(1)
	return New[V](func(s State) []Event[V] {
		var out []Event[V]
		for _, sub := range s.Arc.SplitCycles() {
			cyc := sub.Cycle()
			local := func(t Time) Time { return t.Sub(cyc) }
			munge := func(t Time) Time {
				m := local(t).Mul(rr)
				if m.Greater(one) {
					m = one
				}
				return cyc.Add(m)
			}
			qb, qe := munge(sub.Begin), munge(sub.End)
			if qb.Equal(cyc.Add(one)) {
				continue
			}
			events := p.Query(s.WithArc(Arc{Begin: qb, End: qe}))
			for _, e := range events {
				out = append(out, e.WithArcs(func(a Arc) Arc {
					return Arc{Begin: cyc.Add(local(a.Begin).Quo(rr)), End: cyc.Add(local(a.End).Quo(rr))}
				}))
			}
		}
		return out
	})
}

// Compress squashes the whole of p into [a,b) (0 <= a <= b <= 1), leaving
// silence elsewhere in the cycle.
func Compress[V any](a, b Time, p Pattern[V]) Pattern[V] {
	zero, one := TimeFromInt(0), TimeFromInt(1)
	if a.Greater(b) || a.Less(zero) || b.Greater(one) {
		return Silence[V]()
	}
	d := b.Sub(a)
	if d.IsZero() {
		return Silence[V]()
	}
	return Late(a, FastGap(one.Quo(d), p))
}

// Focus is like Compress but for arbitrary, possibly multi-cycle spans: it
// scales without masking the remainder of the cycle to silence.
func Focus[V any](a, b Time, p Pattern[V]) Pattern[V] {
	d := b.Sub(a)
	if d.IsZero() {
		return Silence[V]()
	}
	return Late(a.CyclePos(), Fast(TimeFromInt(1).Quo(d), p))
}

// focusArc is Focus applied to an arc's endpoints, used to squeeze a
// pattern into an arbitrary outer whole (see squeezeJoin).
func focusArc[V any](arc Arc, p Pattern[V]) Pattern[V] {
	return Focus(arc.Begin, arc.End, p)
}
