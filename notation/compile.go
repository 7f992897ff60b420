package notation

import (
	"math/big"

	"go-pattern/pattern"
)

// Compile turns a parsed AST into a queryable pattern of Atoms. Parsing
// and compiling are kept as separate steps (matching the `Parse`/`Show`
// split used for the round-trip property in §8) so a caller can inspect
// or rewrite the AST before committing it to a pattern.
func Compile(n Node) pattern.Pattern[Atom] {
	return compileElem(defaultElem(n))
}

// CompileString parses and compiles in one step, the common case used by
// control.ParamPattern.
func CompileString(src string) (pattern.Pattern[Atom], error) {
	n, err := Parse(src)
	if err != nil {
		return pattern.Pattern[Atom]{}, err
	}
	return Compile(n), nil
}

func compileElem(e Elem) pattern.Pattern[Atom] {
	p := compileNode(e.Node)
	if e.FastMul != nil {
		p = pattern.Fast(ratTime(e.FastMul), p)
	}
	if e.SlowDiv != nil {
		p = pattern.Slow(ratTime(e.SlowDiv), p)
	}
	if e.Euclid != nil {
		p = pattern.EuclidOff(e.Euclid.N, e.Euclid.K, e.Euclid.Rot, p)
	}
	if e.Degrade {
		p = pattern.DegradeBy(e.DegradeAmt, p)
	}
	return p
}

func compileNode(n Node) pattern.Pattern[Atom] {
	switch n.Kind {
	case NRest:
		return pattern.Silence[Atom]()
	case NAtom:
		return pureAtom(atomFromText(n.Text), n.Pos)
	case NSeq:
		return compileTimeCat(n.Children)
	case NStack:
		ps := make([]pattern.Pattern[Atom], len(n.Children))
		for i, c := range n.Children {
			ps[i] = compileElem(c)
		}
		return pattern.Stack(ps...)
	case NAlt:
		ps := make([]pattern.Pattern[Atom], len(n.Children))
		for i, c := range n.Children {
			ps[i] = compileElem(c)
		}
		return pattern.Cat(ps...)
	default:
		return pattern.Silence[Atom]()
	}
}

func compileTimeCat(children []Elem) pattern.Pattern[Atom] {
	if len(children) == 0 {
		return pattern.Silence[Atom]()
	}
	parts := make([]pattern.WeightedPattern[Atom], len(children))
	for i, c := range children {
		w := c.Weight
		if w == nil {
			w = big.NewRat(1, 1)
		}
		parts[i] = pattern.WeightedPattern[Atom]{Weight: ratTime(w), Pattern: compileElem(c)}
	}
	return pattern.TimeCat(parts...)
}

func ratTime(r *big.Rat) pattern.Time { return pattern.TimeFromRat(r) }

// pureAtom attaches a source position to every event Pure(v) produces, so
// downstream OSC context messages can report where in the source text an
// event came from (§4.D, §6 "Context form").
func pureAtom(v Atom, pos Pos) pattern.Pattern[Atom] {
	base := pattern.Pure(v)
	return pattern.New[Atom](func(s pattern.State) []pattern.Event[Atom] {
		events := base.Query(s)
		out := make([]pattern.Event[Atom], len(events))
		for i, e := range events {
			e.Metadata = append(e.Metadata, pattern.Pos{Line: pos.Line, Col: pos.Col})
			out[i] = e
		}
		return out
	})
}

func atomFromText(text string) Atom {
	if r, ok := new(big.Rat).SetString(text); ok && isNumericText(text) {
		return NumberAtom(r)
	}
	return WordAtom(text)
}

// isNumericText rejects bareword samples that happen to parse as a
// big.Rat digit run (big.Rat.SetString also accepts plain words starting
// with a sign, so we restrict numeric atoms to tokens made only of
// digits, an optional leading '-', and at most one '.').
func isNumericText(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[0] == '-' {
		i = 1
	}
	if i == len(s) {
		return false
	}
	seenDot := false
	seenDigit := false
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			seenDigit = true
		case s[i] == '.' && !seenDot:
			seenDot = true
		default:
			return false
		}
	}
	return seenDigit
}
