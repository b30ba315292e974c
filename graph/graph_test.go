package graph

import (
	"testing"

	"github.com/yuezato/xorslp-ec/slp"
)

func TestIsSSA(t *testing.T) {
	t.Run("fresh variables are SSA", func(t *testing.T) {
		g := slp.Graph{
			{Out: slp.Var(10), Left: slp.Var(0), Right: slp.Var(1)},
			{Out: slp.Var(11), Left: slp.Var(10), Right: slp.Var(2)},
		}
		if !IsSSA(g) {
			t.Error("expected SSA")
		}
	})

	t.Run("repeated output is not SSA", func(t *testing.T) {
		g := slp.Graph{
			{Out: slp.Var(10), Left: slp.Var(0), Right: slp.Var(1)},
			{Out: slp.Var(10), Left: slp.Var(2), Right: slp.Var(3)},
		}
		if IsSSA(g) {
			t.Error("expected non-SSA")
		}
	})
}

func TestGraphToMultiSLPAndRoots(t *testing.T) {
	g := slp.Graph{
		{Out: slp.Var(10), Left: slp.Var(0), Right: slp.Var(1)},
		{Out: slp.Var(11), Left: slp.Var(10), Right: slp.Var(2)},
	}
	m := GraphToMultiSLP(g)
	if len(m) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(m))
	}

	roots := Roots(m)
	if len(roots) != 1 || roots[0] != slp.Var(11) {
		t.Fatalf("roots = %v, want [v11]", roots)
	}
}

func TestFusionMergesChain(t *testing.T) {
	// v10 = v0 ^ v1
	// v11 = v10 ^ v2
	// v12 = v11 ^ v3
	g := slp.Graph{
		{Out: slp.Var(10), Left: slp.Var(0), Right: slp.Var(1)},
		{Out: slp.Var(11), Left: slp.Var(10), Right: slp.Var(2)},
		{Out: slp.Var(12), Left: slp.Var(11), Right: slp.Var(3)},
	}
	m := GraphToMultiSLP(g)

	f := Fusion{MaxArity: 0}
	fused := f.Iter(m, []slp.Term{slp.Var(12)})

	if len(fused) != 1 {
		t.Fatalf("expected the whole chain fused into one row, got %d rows", len(fused))
	}
	if fused[0].Out != slp.Var(12) {
		t.Fatalf("fused row output = %v, want v12", fused[0].Out)
	}
	if len(fused[0].Inputs) != 4 {
		t.Fatalf("fused row should have 4 inputs, got %d: %v", len(fused[0].Inputs), fused[0].Inputs)
	}
}

func TestFusionRespectsMaxArity(t *testing.T) {
	g := slp.Graph{
		{Out: slp.Var(10), Left: slp.Var(0), Right: slp.Var(1)},
		{Out: slp.Var(11), Left: slp.Var(10), Right: slp.Var(2)},
		{Out: slp.Var(12), Left: slp.Var(11), Right: slp.Var(3)},
	}
	m := GraphToMultiSLP(g)

	f := Fusion{MaxArity: 3}
	fused := f.Iter(m, []slp.Term{slp.Var(12)})

	for _, row := range fused {
		if len(row.Inputs) > 3 {
			t.Fatalf("row %+v exceeds MaxArity 3", row)
		}
	}
	if len(fused) != 2 {
		t.Fatalf("expected one fusion to apply before hitting the cap, got %d rows", len(fused))
	}
}

func TestFusionNeverInlinesATarget(t *testing.T) {
	// v10 is itself a target even though it's only consumed once by v11's row.
	g := slp.Graph{
		{Out: slp.Var(10), Left: slp.Var(0), Right: slp.Var(1)},
		{Out: slp.Var(11), Left: slp.Var(10), Right: slp.Var(2)},
	}
	m := GraphToMultiSLP(g)

	f := Fusion{MaxArity: 0}
	fused := f.Iter(m, []slp.Term{slp.Var(10), slp.Var(11)})

	if len(fused) != 2 {
		t.Fatalf("expected no fusion since v10 is a protected target, got %d rows", len(fused))
	}
}
