// Package stat computes aggregate execution statistics for a fused,
// scheduled program: instruction and memory-access counts, how many
// cache evictions ("page transfers") a given cache capacity would
// incur, and the minimal capacity that incurs none (spec section
// 4.10).
package stat

import (
	"github.com/yuezato/xorslp-ec/graph"
	"github.com/yuezato/xorslp-ec/schedule"
	"github.com/yuezato/xorslp-ec/slp"
)

// Stat summarizes one (program, schedule) pairing.
type Stat struct {
	NrXors                 int
	NrMemAcc               int
	NrPageTransfer         int
	RequiredCacheCapacity  int
	NrVariables            int
}

// Analyze schedules m with DealMultiSLP at the given capacity/strategy
// and reports the resulting statistics. RequiredCacheCapacity is left
// at 0; call CheckRunnable/RequiredCacheCapacity separately if needed, since
// finding it requires re-scheduling at multiple capacities.
func Analyze(m graph.MultiSLP, targets []slp.Term, capacity int, strategy schedule.Strategy) Stat {
	s := Stat{}

	vars := make(map[slp.Term]bool)
	producer := make(map[slp.Term]bool, len(m))
	for _, row := range m {
		producer[row.Out] = true
	}

	for _, row := range m {
		s.NrXors += len(row.Inputs) - 1
		s.NrMemAcc += len(row.Inputs) + 1
		for _, in := range row.Inputs {
			if !producer[in] && in.IsVar() {
				vars[in] = true
			}
		}
	}
	s.NrVariables = len(vars)

	sched := schedule.DealMultiSLP(m, targets, capacity, strategy)
	s.NrPageTransfer = sched.Evictions

	return s
}

// CheckRunnable reports whether scheduling m at the given capacity
// incurs zero forced evictions, i.e. the cache never has to discard a
// value it will need again.
func CheckRunnable(m graph.MultiSLP, targets []slp.Term, capacity int, strategy schedule.Strategy) bool {
	sched := schedule.DealMultiSLP(m, targets, capacity, strategy)
	return sched.Evictions == 0
}

// RequiredCacheCapacity performs a linear search from 1 up to maxCapacity
// for the smallest capacity at which CheckRunnable holds, returning
// maxCapacity if none below it qualifies.
func RequiredCacheCapacity(m graph.MultiSLP, targets []slp.Term, maxCapacity int, strategy schedule.Strategy) int {
	for capacity := 1; capacity <= maxCapacity; capacity++ {
		if CheckRunnable(m, targets, capacity, strategy) {
			return capacity
		}
	}
	return maxCapacity
}
