package schedule

import (
	"sort"

	"github.com/yuezato/xorslp-ec/graph"
	"github.com/yuezato/xorslp-ec/slp"
)

// Schedule is an execution order for a MultiSLP's rows, named by their
// output terms, together with the pebble slot each was assigned and how
// many forced evictions the run incurred.
type Schedule struct {
	Order     []slp.Term
	Slot      map[slp.Term]int
	Evictions int
}

func producerIndex(m graph.MultiSLP) map[slp.Term]int {
	idx := make(map[slp.Term]int, len(m))
	for i, row := range m {
		idx[row.Out] = i
	}
	return idx
}

// DealMultiSLP schedules m via a depth-first traversal from targets,
// visiting (and so executing) every dependency of a row before the row
// itself, and simulating an Alloc of the given capacity/strategy over
// that order.
func DealMultiSLP(m graph.MultiSLP, targets []slp.Term, capacity int, strategy Strategy) Schedule {
	producer := producerIndex(m)
	alloc := NewAlloc(capacity, strategy)

	visited := make(map[slp.Term]bool)
	var order []slp.Term

	var visit func(t slp.Term)
	visit = func(t slp.Term) {
		if visited[t] {
			return
		}
		rowIdx, isComputed := producer[t]
		if !isComputed {
			visited[t] = true
			return
		}
		visited[t] = true
		row := m[rowIdx]
		for _, in := range row.Inputs {
			visit(in)
		}
		for _, in := range row.Inputs {
			alloc.Assign(in)
		}
		alloc.Assign(row.Out)
		order = append(order, row.Out)
	}

	for _, t := range targets {
		visit(t)
	}

	slots := make(map[slp.Term]int, len(order))
	for _, t := range order {
		if alloc.Resident(t) {
			slots[t] = alloc.mapping[t]
		}
	}

	return Schedule{Order: order, Slot: slots, Evictions: alloc.Evictions()}
}

// DealMultiSLP2 schedules m bottom-up: at each step it picks, among the
// rows whose inputs are all already produced, the one whose inputs are
// most already cache-resident (highest "hot ratio"), breaking ties by
// term order — approximating reorder2.rs's greedy heuristic.
func DealMultiSLP2(m graph.MultiSLP, capacity int, strategy Strategy) Schedule {
	alloc := NewAlloc(capacity, strategy)
	producer := producerIndex(m)

	produced := make(map[slp.Term]bool)
	scheduled := make([]bool, len(m))
	remaining := len(m)

	isReady := func(row graph.Row) bool {
		for _, in := range row.Inputs {
			if _, isComputedElsewhere := producer[in]; isComputedElsewhere && !produced[in] {
				return false
			}
		}
		return true
	}

	var order []slp.Term

	for remaining > 0 {
		bestIdx := -1
		bestRatio := -1.0
		for i, row := range m {
			if scheduled[i] || !isReady(row) {
				continue
			}
			ratio := hotRatio(alloc, row)
			if ratio > bestRatio || (ratio == bestRatio && (bestIdx == -1 || row.Out.Less(m[bestIdx].Out))) {
				bestIdx, bestRatio = i, ratio
			}
		}
		if bestIdx == -1 {
			panic("schedule: no ready row found but rows remain; dependency cycle or missing producer")
		}

		row := m[bestIdx]
		consumedInputs := make([]slp.Term, len(row.Inputs))
		copy(consumedInputs, row.Inputs)
		sort.Slice(consumedInputs, func(i, j int) bool {
			return consumedInputs[i].Less(consumedInputs[j])
		})
		for _, in := range consumedInputs {
			alloc.Assign(in)
		}
		alloc.Assign(row.Out)

		order = append(order, row.Out)
		produced[row.Out] = true
		scheduled[bestIdx] = true
		remaining--
	}

	slots := make(map[slp.Term]int, len(order))
	for _, t := range order {
		if alloc.Resident(t) {
			slots[t] = alloc.mapping[t]
		}
	}

	return Schedule{Order: order, Slot: slots, Evictions: alloc.Evictions()}
}

func hotRatio(alloc *Alloc, row graph.Row) float64 {
	if len(row.Inputs) == 0 {
		return 0
	}
	hot := 0
	for _, in := range row.Inputs {
		if alloc.Resident(in) {
			hot++
		}
	}
	return float64(hot) / float64(len(row.Inputs))
}
