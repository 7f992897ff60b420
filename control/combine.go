package control

import "go-pattern/pattern"

// unionRight merges two control maps, right winning on key clash.
func unionRight(l, r ControlMap) ControlMap {
	out := l.Clone()
	for k, v := range r {
		out[k] = v
	}
	return out
}

// unionLeft merges two control maps, left winning on key clash.
func unionLeft(l, r ControlMap) ControlMap {
	out := r.Clone()
	for k, v := range l {
		out[k] = v
	}
	return out
}

// combineStruct applies merge to every pair of overlapping events from a
// and b, using a's join strategy for structure (the "structure from left"
// rule named for `#` in §4.C).
func combineStruct(a, b pattern.Pattern[ControlMap], merge func(l, r ControlMap) ControlMap) pattern.Pattern[ControlMap] {
	return pattern.DefaultBind(a, func(l ControlMap) pattern.Pattern[ControlMap] {
		return pattern.Map(b, func(r ControlMap) ControlMap { return merge(l, r) })
	})
}

// Union is `#` / `|>|`: merge two ControlMap patterns, right wins on key
// clash, structure from left.
func Union(a, b pattern.Pattern[ControlMap]) pattern.Pattern[ControlMap] {
	return combineStruct(a, b, unionRight)
}

// UnionLeft is `|<|`: merge, left wins on key clash, structure from left.
func UnionLeft(a, b pattern.Pattern[ControlMap]) pattern.Pattern[ControlMap] {
	return combineStruct(a, b, unionLeft)
}

// numericOp applies op to every numeric key present in both maps (keys
// present in only one side pass through unchanged), used by |+|, |-|,
// |*|, |/|.
func numericOp(op func(x, y float64) float64) func(l, r ControlMap) ControlMap {
	return func(l, r ControlMap) ControlMap {
		out := l.Clone()
		for k, rv := range r {
			lv, ok := out[k]
			if !ok {
				out[k] = rv
				continue
			}
			lf, lerr := GetF(lv)
			rf, rerr := GetF(rv)
			if lerr != nil || rerr != nil {
				out[k] = rv
				continue
			}
			out[k] = Float(op(lf, rf))
		}
		return out
	}
}

// Add is `|+|`: numeric addition on shared keys, union elsewhere.
func Add(a, b pattern.Pattern[ControlMap]) pattern.Pattern[ControlMap] {
	return combineStruct(a, b, numericOp(func(x, y float64) float64 { return x + y }))
}

// Sub is `|-|`.
func Sub(a, b pattern.Pattern[ControlMap]) pattern.Pattern[ControlMap] {
	return combineStruct(a, b, numericOp(func(x, y float64) float64 { return x - y }))
}

// Mul is `|*|`.
func Mul(a, b pattern.Pattern[ControlMap]) pattern.Pattern[ControlMap] {
	return combineStruct(a, b, numericOp(func(x, y float64) float64 { return x * y }))
}

// Div is `|/|`.
func Div(a, b pattern.Pattern[ControlMap]) pattern.Pattern[ControlMap] {
	return combineStruct(a, b, numericOp(func(x, y float64) float64 {
		if y == 0 {
			return 0
		}
		return x / y
	}))
}
