// Package pattern implements the core time-queryable pattern algebra: exact
// rational cycle time, half-open arcs, tagged events, and the combinator set
// patterns are built from.
package pattern

import "math/big"

// Time is an exact rational number of cycles from an arbitrary origin.
// Floating point never appears in pattern semantics; it is only introduced
// at the wall-clock boundary by the tempo clock.
type Time struct {
	r big.Rat
}

// TimeFromInt returns the exact integer cycle time n.
func TimeFromInt(n int64) Time {
	var t Time
	t.r.SetInt64(n)
	return t
}

// TimeFromFrac returns the exact rational time num/den.
func TimeFromFrac(num, den int64) Time {
	var t Time
	t.r.SetFrac64(num, den)
	return t
}

// TimeFromRat copies an existing big.Rat into a Time.
func TimeFromRat(r *big.Rat) Time {
	var t Time
	t.r.Set(r)
	return t
}

// Rat returns a copy of the underlying big.Rat.
func (t Time) Rat() *big.Rat {
	var r big.Rat
	r.Set(&t.r)
	return &r
}

func (t Time) Add(o Time) Time {
	var out Time
	out.r.Add(&t.r, &o.r)
	return out
}

func (t Time) Sub(o Time) Time {
	var out Time
	out.r.Sub(&t.r, &o.r)
	return out
}

func (t Time) Neg() Time {
	var out Time
	out.r.Neg(&t.r)
	return out
}

func (t Time) Mul(o Time) Time {
	var out Time
	out.r.Mul(&t.r, &o.r)
	return out
}

// Quo divides t by o. Division by zero panics, matching big.Rat's own
// behavior; callers in this package always guard against a zero divisor
// before calling it (see fast/slow's zero-rate special case).
func (t Time) Quo(o Time) Time {
	var out Time
	out.r.Quo(&t.r, &o.r)
	return out
}

func (t Time) Cmp(o Time) int {
	return t.r.Cmp(&o.r)
}

func (t Time) Equal(o Time) bool  { return t.Cmp(o) == 0 }
func (t Time) Less(o Time) bool   { return t.Cmp(o) < 0 }
func (t Time) LessEq(o Time) bool { return t.Cmp(o) <= 0 }
func (t Time) Greater(o Time) bool { return t.Cmp(o) > 0 }
func (t Time) Sign() int         { return t.r.Sign() }
func (t Time) IsZero() bool      { return t.r.Sign() == 0 }

// Abs returns the absolute value of t.
func (t Time) Abs() Time {
	if t.Sign() < 0 {
		return t.Neg()
	}
	return t
}

func (t Time) Min(o Time) Time {
	if t.Less(o) {
		return t
	}
	return o
}

func (t Time) Max(o Time) Time {
	if t.Greater(o) {
		return t
	}
	return o
}

// Sam returns the start of the cycle containing t: floor(t).
func (t Time) Sam() Time {
	num := t.r.Num()
	den := t.r.Denom()
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(num, den, m) // Euclidean division: m in [0, den)
	var out Time
	out.r.SetInt(q)
	return out
}

// NextSam returns Sam(t)+1.
func (t Time) NextSam() Time {
	return t.Sam().Add(TimeFromInt(1))
}

// CyclePos returns t - Sam(t), always in [0,1).
func (t Time) CyclePos() Time {
	return t.Sub(t.Sam())
}

// TimeFromFloatApprox converts a float64 number of cycles into an exact
// Time, the one place floating point wall-clock seconds cross into cycle
// time (the tempo clock's CycleAt). Not exact for most floats, but stable
// since big.Rat.SetFloat64 recovers the precise binary fraction.
func TimeFromFloatApprox(f float64) Time {
	var t Time
	if t.r.SetFloat64(f) == nil {
		t.r.SetInt64(0)
	}
	return t
}

// Float64 converts to a float64, used only at the wall-clock boundary.
func (t Time) Float64() float64 {
	f, _ := t.r.Float64()
	return f
}

// Int64Sam returns Sam(t) as an int64 cycle number; used by the per-cycle
// constructors (Pure, FromList, SlowCat) to index cycles. The result is
// undefined if the value overflows int64, which cannot happen for any time
// reachable in a real session.
func (t Time) Int64Sam() int64 {
	s := t.Sam()
	return s.r.Num().Int64()
}

func (t Time) String() string {
	return t.r.RatString()
}
