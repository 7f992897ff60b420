package ctrlin

import (
	"go-pattern/control"
	"go-pattern/pattern"
)

// CF builds a continuous pattern that reads the named live control as a
// float at query time, falling back to deflt when unset — the "cF" half
// of §4.I's "cF, cS, cP family" that lets a live slider appear inside a
// pattern by name.
func (c *Controls) CF(name string, deflt float64) pattern.Pattern[float64] {
	return pattern.Signal(func(pattern.Time) float64 {
		v, ok := c.Get(name)
		if !ok {
			return deflt
		}
		f, err := control.GetF(v)
		if err != nil {
			return deflt
		}
		return f
	})
}

// CS is CF's string counterpart.
func (c *Controls) CS(name, deflt string) pattern.Pattern[string] {
	return pattern.Signal(func(pattern.Time) string {
		v, ok := c.Get(name)
		if !ok {
			return deflt
		}
		s, err := control.GetS(v)
		if err != nil {
			return deflt
		}
		return s
	})
}

// CP reads the named control as a raw tagged Value, the form a
// control.Signal-kind Value embeds when it needs to resolve through
// arbitrary coercions rather than committing to float or string up front.
func (c *Controls) CP(name string, deflt control.Value) pattern.Pattern[control.Value] {
	return pattern.Signal(func(pattern.Time) control.Value {
		v, ok := c.Get(name)
		if !ok {
			return deflt
		}
		return v
	})
}
