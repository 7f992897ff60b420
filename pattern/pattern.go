package pattern

// State is the argument to a pattern query: the arc being asked about, plus
// a snapshot of named live control values the pattern may read (via
// signal-valued controls resolved once per tick by the caller). The
// concrete value type of Controls is left as `any` here so that this
// foundation package has no dependency on the control-map package built on
// top of it; callers that need typed access type-assert the entries.
type State struct {
	Arc      Arc
	Controls map[string]any
}

// WithArc returns a copy of the state with a different query arc.
func (s State) WithArc(a Arc) State {
	return State{Arc: a, Controls: s.Controls}
}

// Pattern is a pure function from a query State to the events active in
// that state's arc, plus a join strategy used when binding nested patterns
// (see Bind). This is the query-function representation described as the
// primary representation; sequence-like constructors (FromList, Cat, ...)
// are sugar that builds a Pattern closing over its parameters.
type Pattern[V any] struct {
	query    func(State) []Event[V]
	strategy JoinStrategy
}

// New constructs a pattern from a raw query function, using the default
// Inner join strategy.
func New[V any](query func(State) []Event[V]) Pattern[V] {
	return Pattern[V]{query: query, strategy: Inner}
}

// WithStrategy returns a copy of p tagged with a different default join
// strategy, used when p appears as the outer pattern of a Bind without an
// explicit strategy argument.
func (p Pattern[V]) WithStrategy(s JoinStrategy) Pattern[V] {
	p.strategy = s
	return p
}

func (p Pattern[V]) Strategy() JoinStrategy { return p.strategy }

// Query runs the pattern over the given state. A nil underlying query
// function (the zero Pattern value) behaves as Silence.
func (p Pattern[V]) Query(s State) []Event[V] {
	if p.query == nil {
		return nil
	}
	return p.query(s)
}

// QueryArc is a convenience for querying with no live controls.
func (p Pattern[V]) QueryArc(a Arc) []Event[V] {
	return p.Query(State{Arc: a})
}

// Silence is the pattern with no events, ever.
func Silence[V any]() Pattern[V] {
	return New[V](func(State) []Event[V] { return nil })
}

// filterEvents keeps events for which keep returns true.
func filterEvents[V any](events []Event[V], keep func(Event[V]) bool) []Event[V] {
	out := events[:0:0]
	for _, e := range events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// splitQuery calls p's query once per cycle-bounded sub-arc of s.Arc and
// concatenates the results; this is how most combinators guarantee the
// split-stability invariant without having to reason about multi-cycle
// arcs themselves.
func splitQuery[V any](p Pattern[V], s State) []Event[V] {
	var out []Event[V]
	for _, sub := range s.Arc.SplitCycles() {
		out = append(out, p.Query(s.WithArc(sub))...)
	}
	return out
}

// Pure (a.k.a. Atom) emits one event per integer cycle inside the query
// arc, with Whole = [sam, sam+1) and Active = intersect(Whole, query).
func Pure[V any](v V) Pattern[V] {
	return New[V](func(s State) []Event[V] {
		var out []Event[V]
		for _, sub := range s.Arc.SplitCycles() {
			whole := CycleArc(sub.Cycle().Int64Sam())
			active, ok := Intersect(whole, sub)
			if !ok {
				continue
			}
			out = append(out, Discrete(whole, active, v))
		}
		return out
	})
}

// Atom is an alias for Pure, matching the source library's naming.
func Atom[V any](v V) Pattern[V] { return Pure(v) }

// FromList cycles through xs, one element per cycle (length-periodic).
func FromList[V any](xs []V) Pattern[V] {
	n := len(xs)
	return New[V](func(s State) []Event[V] {
		if n == 0 {
			return nil
		}
		var out []Event[V]
		for _, sub := range s.Arc.SplitCycles() {
			cyc := sub.Cycle().Int64Sam()
			idx := int(((cyc % int64(n)) + int64(n)) % int64(n))
			whole := CycleArc(cyc)
			active, ok := Intersect(whole, sub)
			if !ok {
				continue
			}
			out = append(out, Discrete(whole, active, xs[idx]))
		}
		return out
	})
}

// FastFromList packs all of xs into a single cycle, repeating every cycle.
func FastFromList[V any](xs []V) Pattern[V] {
	return Fast(TimeFromInt(int64(len(xs))), FromList(xs))
}

// Signal builds a continuous pattern: each sub-arc of the query produces a
// single event with no whole, whose value is f evaluated at the sub-arc's
// midpoint. Used for sine/cosine/saw/triangle/rand/perlin.
func Signal[V any](f func(Time) V) Pattern[V] {
	return New[V](func(s State) []Event[V] {
		var out []Event[V]
		for _, sub := range s.Arc.SplitCycles() {
			out = append(out, Continuous(sub, f(sub.Mid())))
		}
		return out
	})
}

// Map transforms every event's value through f.
func Map[A, B any](p Pattern[A], f func(A) B) Pattern[B] {
	return New[B](func(s State) []Event[B] {
		in := p.Query(s)
		out := make([]Event[B], len(in))
		for i, e := range in {
			out[i] = WithValue(e, f(e.Value))
		}
		return out
	}).WithStrategy(p.strategy)
}

// Filter keeps only events whose value satisfies keep.
func Filter[V any](p Pattern[V], keep func(V) bool) Pattern[V] {
	return New[V](func(s State) []Event[V] {
		return filterEvents(p.Query(s), func(e Event[V]) bool { return keep(e.Value) })
	}).WithStrategy(p.strategy)
}

// FilterEvents keeps only events satisfying keep, given the whole event
// (used by combinators that need Whole/Active, not just Value).
func FilterEvents[V any](p Pattern[V], keep func(Event[V]) bool) Pattern[V] {
	return New[V](func(s State) []Event[V] {
		return filterEvents(p.Query(s), keep)
	}).WithStrategy(p.strategy)
}

// FilterOnsets keeps only events that have an onset.
func FilterOnsets[V any](p Pattern[V]) Pattern[V] {
	return FilterEvents(p, Event[V].HasOnset)
}
