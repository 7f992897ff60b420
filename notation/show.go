package notation

import (
	"fmt"
	"strings"
)

// Show renders a restricted subset of the AST back to mini-notation text:
// literal sequences, nested brackets, and the `*`, `/`, `?`, `(n,k[,rot])`
// modifiers — the subset named by §8's round-trip property
// (`parse(show(p))` must query identically to `p`). Polyrhythm and
// round-robin groups round-trip too since they reuse the same element
// renderer; weighted (`@`) and repeat (`!`) modifiers are intentionally
// left out of the restricted subset, matching the property's scope.
func Show(n Node) string {
	switch n.Kind {
	case NRest:
		return "~"
	case NAtom:
		return n.Text
	case NSeq:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = showElem(c)
		}
		return joinPath(parts, " ")
	case NStack:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = showElem(c)
		}
		return "{" + joinPath(parts, ", ") + "}"
	case NAlt:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = showElem(c)
		}
		return "<" + joinPath(parts, " ") + ">"
	default:
		return ""
	}
}

func showElem(e Elem) string {
	var b strings.Builder
	inner := Show(e.Node)
	if e.Node.Kind == NSeq && len(e.Node.Children) > 1 {
		b.WriteByte('[')
		b.WriteString(inner)
		b.WriteByte(']')
	} else {
		b.WriteString(inner)
	}
	if e.FastMul != nil {
		fmt.Fprintf(&b, "*%s", e.FastMul.RatString())
	}
	if e.SlowDiv != nil {
		fmt.Fprintf(&b, "/%s", e.SlowDiv.RatString())
	}
	if e.Euclid != nil {
		if e.Euclid.Rot != 0 {
			fmt.Fprintf(&b, "(%d,%d,%d)", e.Euclid.N, e.Euclid.K, e.Euclid.Rot)
		} else {
			fmt.Fprintf(&b, "(%d,%d)", e.Euclid.N, e.Euclid.K)
		}
	}
	if e.Degrade {
		b.WriteByte('?')
	}
	return b.String()
}
