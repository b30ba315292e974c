package repair

import (
	"github.com/yuezato/xorslp-ec/graph"
	"github.com/yuezato/xorslp-ec/slp"
	"github.com/yuezato/xorslp-ec/validate"
)

// Direction picks which end of the row list XOR-RePair processes first;
// processing in reverse can surface different shared subexpressions.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

type poolEntry struct {
	term  slp.Term
	value validate.TermSet
}

// RunXORRepair builds a program computing every row in rows by, at each
// step, picking the already-known value (starting from the singleton
// values of the base terms and growing as rows are realized) that
// overlaps the current residual the most, XORing it in, and repeating
// until the residual is empty. Newly synthesized intermediate values
// join the pool so later rows can reuse them.
func RunXORRepair(rows []Row, dir Direction, fresh FreshVarFunc) graph.MultiSLP {
	defs, _ := RunXORRepairTargets(rows, dir, fresh)
	return defs
}

// RunXORRepairTargets behaves like RunXORRepair but additionally returns,
// for each input row, the term holding its final value.
func RunXORRepairTargets(rows []Row, dir Direction, fresh FreshVarFunc) (graph.MultiSLP, []slp.Term) {
	pool := newPool()

	indices := make([]int, len(rows))
	for i := range indices {
		indices[i] = i
	}
	if dir == Reverse {
		for i, j := 0, len(indices)-1; i < j; i, j = i+1, j-1 {
			indices[i], indices[j] = indices[j], indices[i]
		}
	}

	var defs graph.MultiSLP
	targets := make([]slp.Term, len(rows))

	for _, idx := range indices {
		row := rows[idx]
		if len(row) == 0 {
			continue
		}

		residual := make(validate.TermSet, len(row))
		for _, t := range row {
			residual[t] = true
			pool.ensureBase(t)
		}

		acc, hasAcc := slp.Term{}, false

		for len(residual) > 0 {
			next, sym := pool.closest(residual)

			if !hasAcc {
				acc, hasAcc = next.term, true
				residual = sym
				continue
			}

			v := fresh()
			defs = append(defs, graph.Row{Out: v, Inputs: []slp.Term{acc, next.term}})
			pool.add(v, validate.XorSet(pool.valueOf(acc), next.value))
			acc = v
			residual = sym
		}

		pool.ensureBase(acc)
		targets[idx] = acc
	}

	return defs, targets
}

type pool struct {
	entries []poolEntry
	values  map[slp.Term]validate.TermSet
}

func newPool() *pool {
	return &pool{values: make(map[slp.Term]validate.TermSet)}
}

func (p *pool) ensureBase(t slp.Term) {
	if _, ok := p.values[t]; ok {
		return
	}
	p.add(t, validate.TermSet{t: true})
}

func (p *pool) add(t slp.Term, v validate.TermSet) {
	if _, ok := p.values[t]; ok {
		return
	}
	p.values[t] = v
	p.entries = append(p.entries, poolEntry{term: t, value: v})
}

func (p *pool) valueOf(t slp.Term) validate.TermSet {
	return p.values[t]
}

// closest returns the pool entry whose XOR with residual shrinks it the
// most (falling back to peeling off one residual term directly when no
// pool entry makes progress, which always terminates since residual's
// own elements are themselves in the pool as base terms).
func (p *pool) closest(residual validate.TermSet) (poolEntry, validate.TermSet) {
	bestSize := -1
	var best poolEntry
	var bestSym validate.TermSet

	for _, e := range p.entries {
		sym := validate.XorSet(residual, e.value)
		if len(sym) >= len(residual) {
			continue
		}
		if bestSize == -1 || len(sym) < bestSize || (len(sym) == bestSize && e.term.Less(best.term)) {
			best, bestSym, bestSize = e, sym, len(sym)
		}
	}

	if bestSize == -1 {
		t := sortedKeys(residual)[0]
		best = poolEntry{term: t, value: validate.TermSet{t: true}}
		bestSym = validate.XorSet(residual, best.value)
	}

	return best, bestSym
}
