package repair

import (
	"testing"

	"github.com/yuezato/xorslp-ec/slp"
	"github.com/yuezato/xorslp-ec/validate"
)

func freshFrom(start int) FreshVarFunc {
	n := start
	return func() slp.Term {
		t := slp.Var(n)
		n++
		return t
	}
}

func TestRunRepairFactorsRepeatedPair(t *testing.T) {
	rows := []Row{
		{slp.Var(0), slp.Var(1), slp.Var(2)},
		{slp.Var(0), slp.Var(1), slp.Var(3)},
		{slp.Var(4)},
	}
	defs := RunRepair(rows, LexSmall, freshFrom(100))

	var sawPairDef bool
	for _, row := range defs {
		if len(row.Inputs) == 2 {
			set := map[slp.Term]bool{row.Inputs[0]: true, row.Inputs[1]: true}
			if set[slp.Var(0)] && set[slp.Var(1)] {
				sawPairDef = true
			}
		}
	}
	if !sawPairDef {
		t.Error("expected a definition factoring out the repeated (v0, v1) pair")
	}
}

func TestRunRepairPreservesSemantics(t *testing.T) {
	rows := []Row{
		{slp.Var(0), slp.Var(1), slp.Var(2)},
		{slp.Var(0), slp.Var(1), slp.Var(3)},
	}
	defs := RunRepair(rows, LexSmall, freshFrom(100))
	val := validate.MultiSLPToValuation(defs)

	var outputs []slp.Term
	for _, row := range defs {
		if row.Out.Index >= 100 {
			outputs = append(outputs, row.Out)
		}
	}

	want0 := validate.TermSet{slp.Var(0): true, slp.Var(1): true, slp.Var(2): true}
	want1 := validate.TermSet{slp.Var(0): true, slp.Var(1): true, slp.Var(3): true}

	foundW0, foundW1 := false, false
	for _, o := range outputs {
		if val[o].Equal(want0) {
			foundW0 = true
		}
		if val[o].Equal(want1) {
			foundW1 = true
		}
	}
	if !foundW0 || !foundW1 {
		t.Errorf("repair output does not preserve both original rows' semantics")
	}
}

func TestRunXORRepairPreservesSemantics(t *testing.T) {
	rows := []Row{
		{slp.Var(0), slp.Var(1), slp.Var(2)},
		{slp.Var(1), slp.Var(2), slp.Var(3)},
		{slp.Var(0), slp.Var(3)},
	}
	defs := RunXORRepair(rows, Forward, freshFrom(100))
	val := validate.MultiSLPToValuation(defs)

	wants := []validate.TermSet{
		{slp.Var(0): true, slp.Var(1): true, slp.Var(2): true},
		{slp.Var(1): true, slp.Var(2): true, slp.Var(3): true},
		{slp.Var(0): true, slp.Var(3): true},
	}

	for _, want := range wants {
		found := false
		for _, v := range val {
			if v.Equal(want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no defined term has value %v", want)
		}
	}
}

func TestRunXORRepairReverseDirection(t *testing.T) {
	rows := []Row{
		{slp.Var(0), slp.Var(1)},
		{slp.Var(1), slp.Var(2)},
	}
	defs := RunXORRepair(rows, Reverse, freshFrom(100))
	if len(defs) == 0 {
		t.Fatal("expected at least one definition")
	}
}
