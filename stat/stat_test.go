package stat

import (
	"testing"

	"github.com/yuezato/xorslp-ec/graph"
	"github.com/yuezato/xorslp-ec/schedule"
	"github.com/yuezato/xorslp-ec/slp"
)

func sampleMultiSLP() graph.MultiSLP {
	return graph.MultiSLP{
		{Out: slp.Var(10), Inputs: []slp.Term{slp.Var(0), slp.Var(1)}},
		{Out: slp.Var(11), Inputs: []slp.Term{slp.Var(10), slp.Var(2)}},
	}
}

func TestAnalyzeCounts(t *testing.T) {
	m := sampleMultiSLP()
	s := Analyze(m, []slp.Term{slp.Var(11)}, 8, schedule.UseLRU)

	if s.NrXors != 2 {
		t.Errorf("NrXors = %d, want 2", s.NrXors)
	}
	// row0: 2 inputs + 1 output = 3, row1: 2 inputs + 1 output = 3
	if s.NrMemAcc != 6 {
		t.Errorf("NrMemAcc = %d, want 6", s.NrMemAcc)
	}
	if s.NrVariables != 3 {
		t.Errorf("NrVariables = %d, want 3 (v0,v1,v2)", s.NrVariables)
	}
}

func TestCheckRunnableAndRequiredCapacity(t *testing.T) {
	m := sampleMultiSLP()
	targets := []slp.Term{slp.Var(11)}

	if !CheckRunnable(m, targets, 8, schedule.UseLRU) {
		t.Error("a roomy cache should run without evictions")
	}
	if CheckRunnable(m, targets, 1, schedule.UseLRU) {
		t.Error("a 1-slot cache should force evictions on this program")
	}

	cap := RequiredCacheCapacity(m, targets, 8, schedule.UseLRU)
	if !CheckRunnable(m, targets, cap, schedule.UseLRU) {
		t.Errorf("RequiredCacheCapacity returned %d which is not actually runnable", cap)
	}
	if cap > 1 && CheckRunnable(m, targets, cap-1, schedule.UseLRU) {
		t.Errorf("RequiredCacheCapacity returned %d but %d was already runnable", cap, cap-1)
	}
}
