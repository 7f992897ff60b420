package notation

import (
	"fmt"
	"math/big"
)

// Pos is a source-position marker, reused by compiled patterns as
// pattern.Pos metadata for editor highlighting and error reporting.
type Pos struct {
	Line, Col int
}

// ParseError carries a message and the source position at which parsing
// failed (§4.D "Parse failures return a structured error with source
// position").
type ParseError struct {
	Pos     Pos
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("notation: %d:%d: %s", e.Pos.Line, e.Pos.Col, e.Message)
}

// NodeKind tags the shape of a parsed notation node.
type NodeKind int

const (
	NAtom NodeKind = iota
	NRest
	NSeq   // top-level or bracketed sequence: equal fractions of one cycle
	NStack // brace-delimited polyrhythm: comma groups share one cycle length
	NAlt   // angle-delimited round-robin: one child per outer cycle
)

// Node is one parsed mini-notation term.
type Node struct {
	Kind     NodeKind
	Pos      Pos
	Text     string // raw atom text, for NAtom
	Children []Elem // operands, for NSeq/NStack/NAlt
}

// EuclidSpec is a parsed (n,k[,rot]) suffix.
type EuclidSpec struct {
	N, K, Rot int
}

// Elem is one element of a sequence/stack/alt, with every suffix modifier
// from §4.D's `mods` grammar rule attached.
type Elem struct {
	Node Node

	Weight     *big.Rat // '@w': relative duration in a weighted time_cat
	FastMul    *big.Rat // '*n'
	SlowDiv    *big.Rat // '/n'
	Degrade    bool     // '?'
	DegradeAmt float64
	OuterReps  int // '!n': repeated outside the slot n times (0/1 = no repeat)
	SampleIdx  *int64 // ':n'
	Euclid     *EuclidSpec
}

// defaultElem wraps a bare node with the identity modifiers.
func defaultElem(n Node) Elem {
	return Elem{Node: n, Weight: big.NewRat(1, 1), OuterReps: 1}
}
