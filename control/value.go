// Package control implements the tagged control value and the named
// parameter maps that ride inside pattern events as their payload — the
// canonical output shape described for the scheduler (§4.E, §3).
package control

import (
	"fmt"
	"math/big"
	"strconv"

	"go-pattern/pattern"
)

// Kind tags which field of a Value is meaningful.
type Kind int

const (
	KInt Kind = iota
	KFloat
	KRat
	KString
	KBool
	KBlob
	KSignal
	KList
)

// EvalError reports a failed coercion or control-map lookup at query time —
// the "typed results instead of exceptions for control flow" design note,
// mirroring notation.ParseError's shape one layer downstream (parse failures
// are structural; eval failures happen while a pattern is being queried).
type EvalError struct {
	Key     string
	Message string
}

func (e *EvalError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("control: %s", e.Message)
	}
	return fmt.Sprintf("control: %s: %s", e.Key, e.Message)
}

// Value is the tagged variant over {Int32, Double, Rational, String, Bool,
// Blob, Pattern-of-Value, List-of-Value} named in §3/§4.E. Only the field
// matching Kind is populated; the rest are zero.
type Value struct {
	Kind   Kind
	I      int32
	F      float64
	R      *big.Rat
	S      string
	B      bool
	X      []byte
	Signal *pattern.Pattern[Value]
	List   []Value
}

func Int(v int32) Value     { return Value{Kind: KInt, I: v} }
func Float(v float64) Value { return Value{Kind: KFloat, F: v} }
func Rat(v *big.Rat) Value  { return Value{Kind: KRat, R: v} }
func Str(v string) Value    { return Value{Kind: KString, S: v} }
func Bool(v bool) Value     { return Value{Kind: KBool, B: v} }
func Blob(v []byte) Value   { return Value{Kind: KBlob, X: v} }
func Signal(p pattern.Pattern[Value]) Value {
	return Value{Kind: KSignal, Signal: &p}
}
func List(vs []Value) Value { return Value{Kind: KList, List: vs} }

// GetF coerces a Value to float64. Int, Float, Rat, and numeric strings
// coerce; other kinds return an error rather than a zero value, so callers
// can distinguish "is zero" from "not a number".
func GetF(v Value) (float64, error) {
	switch v.Kind {
	case KFloat:
		return v.F, nil
	case KInt:
		return float64(v.I), nil
	case KRat:
		f, _ := v.R.Float64()
		return f, nil
	case KString:
		f, err := strconv.ParseFloat(v.S, 64)
		if err != nil {
			return 0, &EvalError{Message: fmt.Sprintf("%q is not numeric", v.S)}
		}
		return f, nil
	default:
		return 0, &EvalError{Message: fmt.Sprintf("value of kind %d has no float coercion", v.Kind)}
	}
}

// GetI coerces a Value to int32, truncating floats and rationals.
func GetI(v Value) (int32, error) {
	switch v.Kind {
	case KInt:
		return v.I, nil
	case KFloat:
		return int32(v.F), nil
	case KRat:
		f, _ := v.R.Float64()
		return int32(f), nil
	case KString:
		n, err := strconv.ParseInt(v.S, 10, 32)
		if err != nil {
			return 0, &EvalError{Message: fmt.Sprintf("%q is not an integer", v.S)}
		}
		return int32(n), nil
	default:
		return 0, &EvalError{Message: fmt.Sprintf("value of kind %d has no int coercion", v.Kind)}
	}
}

// GetS coerces a Value to its string form for contexts that accept either
// (e.g. sample-name parameters written as either a bareword or a quoted
// string in mini-notation).
func GetS(v Value) (string, error) {
	switch v.Kind {
	case KString:
		return v.S, nil
	case KInt:
		return strconv.Itoa(int(v.I)), nil
	case KFloat:
		return strconv.FormatFloat(v.F, 'g', -1, 64), nil
	default:
		return "", &EvalError{Message: fmt.Sprintf("value of kind %d has no string coercion", v.Kind)}
	}
}

// ControlMap is a named-parameter map carried as an event payload — the
// canonical output shape of the system (§3). Insertion order is
// irrelevant; keys are unique.
type ControlMap map[string]Value

// Clone returns a shallow copy of m, safe to mutate without aliasing m.
func (m ControlMap) Clone() ControlMap {
	out := make(ControlMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
