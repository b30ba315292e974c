// Package graph implements the SSA/valuation view of a straight-line
// program and the fusion pass that merges chained binary XORs into
// variadic multi-input XOR nodes (spec section 3, 4.7).
package graph

import (
	"github.com/yuezato/xorslp-ec/slp"
)

// Row is one instruction of a MultiSLP: Out is the XOR of all of
// Inputs. GraphToMultiSLP produces rows of exactly 2 inputs;
// repair.RunRepairTargets also produces one-input (alias) rows and rows
// of more than 2 inputs, and fusion widens rows further.
type Row struct {
	Out    slp.Term
	Inputs []slp.Term
}

// MultiSLP is a straight-line program whose instructions may be
// variadic XORs rather than strictly binary ones.
type MultiSLP []Row

// IsSSA reports whether every term in g is assigned as an output at
// most once — the precondition fusion and valuation analysis require.
func IsSSA(g slp.Graph) bool {
	seen := make(map[slp.Term]bool, len(g))
	for _, triple := range g {
		if seen[triple.Out] {
			return false
		}
		seen[triple.Out] = true
	}
	return true
}

// SLPToSSA validates that g is already in SSA form (every fresh
// variable introduced by slp.ToTrivialGraph is unique by construction)
// and returns it unchanged; it exists as an explicit checkpoint between
// the SLP and graph stages of the pipeline.
func SLPToSSA(g slp.Graph) (slp.Graph, error) {
	if !IsSSA(g) {
		return nil, errNotSSA
	}
	return g, nil
}

// GraphToMultiSLP lifts a binary-XOR graph into MultiSLP form with no
// fusion applied: each triple becomes a 2-input row.
func GraphToMultiSLP(g slp.Graph) MultiSLP {
	out := make(MultiSLP, len(g))
	for i, triple := range g {
		out[i] = Row{Out: triple.Out, Inputs: []slp.Term{triple.Left, triple.Right}}
	}
	return out
}

// OutDegree counts, for each term produced within m, how many other
// rows consume it as an input.
func OutDegree(m MultiSLP) map[slp.Term]int {
	deg := make(map[slp.Term]int)
	for _, row := range m {
		for _, in := range row.Inputs {
			deg[in]++
		}
	}
	return deg
}

// Roots returns the outputs of m that are never consumed by another row
// in m — the values the overall program must externally observe.
func Roots(m MultiSLP) []slp.Term {
	deg := OutDegree(m)
	var roots []slp.Term
	for _, row := range m {
		if deg[row.Out] == 0 {
			roots = append(roots, row.Out)
		}
	}
	return roots
}
