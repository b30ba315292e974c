// Package repair implements two grammar-based compressors over a batch
// of XOR rows: classical RePair, which factors out the most frequently
// co-occurring pair of terms across all rows, and XOR-RePair, which
// greedily builds each row from the closest already-computed value
// (spec section 4.5, 4.6).
package repair

import (
	"sort"

	"github.com/yuezato/xorslp-ec/graph"
	"github.com/yuezato/xorslp-ec/slp"
)

// SortOrder breaks ties between equally-frequent candidate pairs.
type SortOrder int

const (
	LexSmall SortOrder = iota
	LexLarge
)

func less(order SortOrder, a, b slp.Term) bool {
	if order == LexSmall {
		return a.Less(b)
	}
	return b.Less(a)
}

// Row is the unordered set of terms XORed to produce one program
// output, before compression.
type Row []slp.Term

type pairKey struct{ a, b slp.Term }

func makePairKey(order SortOrder, a, b slp.Term) pairKey {
	if less(order, a, b) {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// FreshVarFunc hands out a new, never-before-used variable term each
// call.
type FreshVarFunc func() slp.Term

// RunRepair applies classical RePair to rows: while some pair of terms
// co-occurs in two or more rows, it introduces one fresh variable for
// that pair, replaces the pair with it in every co-occurring row, and
// repeats. It returns the pair-definition rows (each arity 2, in
// creation order) followed by the final row definitions (each the
// remaining, possibly singleton-reduced, operand set).
func RunRepair(rows []Row, order SortOrder, fresh FreshVarFunc) graph.MultiSLP {
	defs, _ := RunRepairTargets(rows, order, fresh)
	return defs
}

// RunRepairTargets behaves exactly like RunRepair but additionally
// returns, for each input row, the term that holds its final value —
// the term callers should treat as that row's program output.
func RunRepairTargets(rows []Row, order SortOrder, fresh FreshVarFunc) (graph.MultiSLP, []slp.Term) {
	work := make([]map[slp.Term]bool, len(rows))
	for i, row := range rows {
		work[i] = make(map[slp.Term]bool, len(row))
		for _, t := range row {
			work[i][t] = true
		}
	}

	var defs graph.MultiSLP

	for {
		counts := make(map[pairKey]int)
		for _, row := range work {
			terms := sortedKeys(row)
			for i := 0; i < len(terms); i++ {
				for j := i + 1; j < len(terms); j++ {
					counts[makePairKey(order, terms[i], terms[j])]++
				}
			}
		}

		keys := make([]pairKey, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if counts[keys[i]] != counts[keys[j]] {
				return counts[keys[i]] > counts[keys[j]]
			}
			if keys[i].a != keys[j].a {
				return less(order, keys[i].a, keys[j].a)
			}
			return less(order, keys[i].b, keys[j].b)
		})
		if len(keys) == 0 || counts[keys[0]] < 2 {
			break
		}
		best := keys[0]

		v := fresh()
		defs = append(defs, graph.Row{Out: v, Inputs: []slp.Term{best.a, best.b}})

		for _, row := range work {
			if row[best.a] && row[best.b] {
				delete(row, best.a)
				delete(row, best.b)
				row[v] = true
			}
		}
	}

	targets := make([]slp.Term, len(rows))
	for i, row := range work {
		terms := sortedKeys(row)
		if len(terms) == 0 {
			continue
		}
		out := rowOutputTerm(rows[i], fresh)
		targets[i] = out
		if len(terms) == 1 {
			// A single surviving term is a pure alias (the XOR of one
			// element is that element); do not XOR it against itself.
			defs = append(defs, graph.Row{Out: out, Inputs: []slp.Term{terms[0]}})
			continue
		}
		defs = append(defs, graph.Row{Out: out, Inputs: terms})
	}

	return defs, targets
}

// rowOutputTerm names the final output of a top-level row. Rows are
// named by a caller-supplied fresh variable so the result is a proper
// SSA program; callers that already track per-row output names should
// prefer building their own final wiring from the returned MultiSLP
// instead of relying on this default.
func rowOutputTerm(_ Row, fresh FreshVarFunc) slp.Term {
	return fresh()
}

func sortedKeys(m map[slp.Term]bool) []slp.Term {
	out := make([]slp.Term, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
