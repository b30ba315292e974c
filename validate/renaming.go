package validate

import (
	"github.com/yuezato/xorslp-ec/graph"
	"github.com/yuezato/xorslp-ec/slp"
)

// Rewriting is a resolved term-renaming table: substituting t wherever
// it occurs in a program should use Rewriting[t] if present, or t
// itself otherwise.
type Rewriting map[slp.Term]slp.Term

// MappingToRewriting closes a list of (From, To) pairs into a single
// substitution table, following From->To chains to their end so that
// a single lookup resolves a term all the way to its final name. A
// cycle (From chases back to a term already on the current path) is
// left as a one-step rotation rather than compressed, since a cycle is
// already a valid simultaneous renaming on its own.
func MappingToRewriting(pairs []Rename) Rewriting {
	direct := make(map[slp.Term]slp.Term, len(pairs))
	for _, p := range pairs {
		direct[p.From] = p.To
	}

	resolved := make(Rewriting, len(pairs))
	for _, p := range pairs {
		if _, done := resolved[p.From]; done {
			continue
		}
		resolveChain(p.From, direct, resolved)
	}
	return resolved
}

func resolveChain(start slp.Term, direct map[slp.Term]slp.Term, resolved Rewriting) {
	path := []slp.Term{start}
	onPath := map[slp.Term]bool{start: true}

	cur := start
	for {
		next, ok := direct[cur]
		if !ok {
			break
		}
		if onPath[next] {
			// Cycle: leave every node on the path mapped one step ahead.
			for _, t := range path {
				resolved[t] = direct[t]
			}
			return
		}
		if final, done := resolved[next]; done {
			for _, t := range path {
				resolved[t] = final
			}
			return
		}
		path = append(path, next)
		onPath[next] = true
		cur = next
	}

	for _, t := range path {
		resolved[t] = cur
	}
}

// RenameBy substitutes t via rw, leaving it unchanged if absent.
func RenameBy(t slp.Term, rw Rewriting) slp.Term {
	if to, ok := rw[t]; ok {
		return to
	}
	return t
}

// RenameProgramBy applies rw to every term in a binary-XOR graph.
func RenameProgramBy(g slp.Graph, rw Rewriting) slp.Graph {
	out := make(slp.Graph, len(g))
	for i, triple := range g {
		out[i] = slp.Triple{
			Out:   RenameBy(triple.Out, rw),
			Left:  RenameBy(triple.Left, rw),
			Right: RenameBy(triple.Right, rw),
		}
	}
	return out
}

// RenameMultiSLPBy applies rw to every term in a MultiSLP.
func RenameMultiSLPBy(m graph.MultiSLP, rw Rewriting) graph.MultiSLP {
	out := make(graph.MultiSLP, len(m))
	for i, row := range m {
		inputs := make([]slp.Term, len(row.Inputs))
		for j, in := range row.Inputs {
			inputs[j] = RenameBy(in, rw)
		}
		out[i] = graph.Row{Out: RenameBy(row.Out, rw), Inputs: inputs}
	}
	return out
}
