package graph

import "github.com/yuezato/xorslp-ec/slp"

// Fusion merges chains of binary XORs into variadic XOR rows. MaxArity
// caps the resulting input count; 0 means unbounded (the runtime driver
// falls back to xorkernel.XorGeneric past its fixed-arity family).
type Fusion struct {
	MaxArity int
}

// expandable reports whether row producer's output is consumed by
// exactly one other row (consumer) in m, and is not one of targets
// (the outputs the caller still needs to observe directly). Fusing a
// targeted output would make it unobservable, so such rows are never
// inlined.
func expandable(producerOut slp.Term, outDeg map[slp.Term]int, targets map[slp.Term]bool) bool {
	if targets[producerOut] {
		return false
	}
	return outDeg[producerOut] == 1
}

func findConsumer(m MultiSLP, producerOut slp.Term) int {
	for i, row := range m {
		for _, in := range row.Inputs {
			if in == producerOut {
				return i
			}
		}
	}
	return -1
}

func inline(consumer Row, producer Row) Row {
	merged := make([]slp.Term, 0, len(consumer.Inputs)-1+len(producer.Inputs))
	for _, in := range consumer.Inputs {
		if in == producer.Out {
			merged = append(merged, producer.Inputs...)
		} else {
			merged = append(merged, in)
		}
	}
	return Row{Out: consumer.Out, Inputs: merged}
}

// step performs at most one fusion and reports whether it changed m.
func (f Fusion) step(m MultiSLP, targets map[slp.Term]bool) (MultiSLP, bool) {
	outDeg := OutDegree(m)

	for i, producer := range m {
		if !expandable(producer.Out, outDeg, targets) {
			continue
		}
		ci := findConsumer(m, producer.Out)
		if ci == -1 || ci == i {
			continue
		}

		newArity := len(m[ci].Inputs) - 1 + len(producer.Inputs)
		if f.MaxArity > 0 && newArity > f.MaxArity {
			continue
		}

		merged := inline(m[ci], producer)

		out := make(MultiSLP, 0, len(m)-1)
		for j, row := range m {
			if j == i {
				continue
			}
			if j == ci {
				out = append(out, merged)
				continue
			}
			out = append(out, row)
		}
		return out, true
	}

	return m, false
}

// Iter runs fusion to a fixpoint: rows whose output is consumed exactly
// once elsewhere, and that are not in targets, are inlined into their
// single consumer until no more such rows exist.
func (f Fusion) Iter(m MultiSLP, targets []slp.Term) MultiSLP {
	targetSet := make(map[slp.Term]bool, len(targets))
	for _, t := range targets {
		targetSet[t] = true
	}

	for {
		next, changed := f.step(m, targetSet)
		m = next
		if !changed {
			return m
		}
	}
}
