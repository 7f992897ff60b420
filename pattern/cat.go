package pattern

// Stack composes patterns in parallel: the concatenation of each pattern's
// query results.
func Stack[V any](ps ...Pattern[V]) Pattern[V] {
	return New[V](func(s State) []Event[V] {
		var out []Event[V]
		for _, p := range ps {
			out = append(out, p.Query(s)...)
		}
		return out
	})
}

// SlowCat (Cat) plays one whole pattern per cycle, round-robining through
// ps. cat([p]) ≡ p; cat(ps ++ [silence]) ≡ cat(ps) modulo one extra cycle.
func SlowCat[V any](ps ...Pattern[V]) Pattern[V] {
	n := len(ps)
	if n == 0 {
		return Silence[V]()
	}
	return New[V](func(s State) []Event[V] {
		var out []Event[V]
		for _, sub := range s.Arc.SplitCycles() {
			cyc := sub.Cycle().Int64Sam()
			idx := int(((cyc % int64(n)) + int64(n)) % int64(n))
			// Each constituent pattern sees its own, compressed cycle
			// count: the number of times it has itself played so far.
			offset := cyc - int64(idx)
			div := offset / int64(n)
			p := ps[idx]
			shift := TimeFromInt(cyc - div)
			shifted := lateShift(shift, p)
			out = append(out, shifted.Query(s.WithArc(sub))...)
		}
		return out
	})
}

// Cat is an alias for SlowCat, matching the source library's naming.
func Cat[V any](ps ...Pattern[V]) Pattern[V] { return SlowCat(ps...) }

// FastCat packs all of ps into a single cycle, in order.
func FastCat[V any](ps ...Pattern[V]) Pattern[V] {
	n := len(ps)
	if n == 0 {
		return Silence[V]()
	}
	return Fast(TimeFromInt(int64(n)), SlowCat(ps...))
}

// WeightedPattern is one element of a TimeCat call: pattern p occupies
// fraction weight/sum(weights) of one cycle.
type WeightedPattern[V any] struct {
	Weight  Time
	Pattern Pattern[V]
}

// TimeCat sequentially concatenates weighted patterns, each occupying
// fraction weight/Σweight of one cycle.
func TimeCat[V any](parts ...WeightedPattern[V]) Pattern[V] {
	if len(parts) == 0 {
		return Silence[V]()
	}
	total := TimeFromInt(0)
	for _, p := range parts {
		total = total.Add(p.Weight)
	}
	if total.Sign() <= 0 {
		return Silence[V]()
	}
	var stacked []Pattern[V]
	pos := TimeFromInt(0)
	for _, p := range parts {
		begin := pos.Quo(total)
		pos = pos.Add(p.Weight)
		end := pos.Quo(total)
		stacked = append(stacked, Compress(begin, end, p.Pattern))
	}
	return Stack(stacked...)
}
