// Package validate computes the semantic valuation of a straight-line
// or multi-input program — for each defined term, the set of original
// input variables it XORs together — and uses valuation equality to
// check that one program computes (a superset of) another's outputs,
// plus the variable renaming needed to align the two (spec section
// 4.9).
package validate

import (
	"sort"

	"github.com/yuezato/xorslp-ec/graph"
	"github.com/yuezato/xorslp-ec/slp"
)

// TermSet is an unordered set of base terms, representing the XOR of
// all of them.
type TermSet map[slp.Term]bool

func singleton(t slp.Term) TermSet {
	return TermSet{t: true}
}

// XorSet returns the symmetric difference of a and b: the set of terms
// appearing in exactly one of the two inputs.
func XorSet(a, b TermSet) TermSet {
	out := make(TermSet, len(a)+len(b))
	for t := range a {
		if !b[t] {
			out[t] = true
		}
	}
	for t := range b {
		if !a[t] {
			out[t] = true
		}
	}
	return out
}

func xorMany(sets ...TermSet) TermSet {
	acc := TermSet{}
	for _, s := range sets {
		acc = XorSet(acc, s)
	}
	return acc
}

// Equal reports whether a and b contain the same terms.
func (a TermSet) Equal(b TermSet) bool {
	if len(a) != len(b) {
		return false
	}
	for t := range a {
		if !b[t] {
			return false
		}
	}
	return true
}

// Sorted returns a's elements in a deterministic order, for hashing or
// display.
func (a TermSet) Sorted() []slp.Term {
	out := make([]slp.Term, 0, len(a))
	for t := range a {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Valuation maps every term defined by a program to the set of base
// variables (and constants) it is the XOR of.
type Valuation map[slp.Term]TermSet

// GraphToValuation evaluates a binary-XOR graph, folding each triple's
// operands (themselves resolved through the valuation if they were
// previously defined, or taken as base terms otherwise) into the output
// term's entry.
func GraphToValuation(g slp.Graph) Valuation {
	val := make(Valuation, len(g))
	resolve := func(t slp.Term) TermSet {
		if v, ok := val[t]; ok {
			return v
		}
		return singleton(t)
	}

	for _, triple := range g {
		val[triple.Out] = XorSet(resolve(triple.Left), resolve(triple.Right))
	}
	return val
}

// MultiSLPToValuation evaluates a (possibly fused) variadic program the
// same way GraphToValuation does.
func MultiSLPToValuation(m graph.MultiSLP) Valuation {
	val := make(Valuation, len(m))
	resolve := func(t slp.Term) TermSet {
		if v, ok := val[t]; ok {
			return v
		}
		return singleton(t)
	}

	for _, row := range m {
		sets := make([]TermSet, len(row.Inputs))
		for i, in := range row.Inputs {
			sets[i] = resolve(in)
		}
		val[row.Out] = xorMany(sets...)
	}
	return val
}
