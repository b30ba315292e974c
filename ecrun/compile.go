package ecrun

import (
	"github.com/yuezato/xorslp-ec/bitexpand"
	"github.com/yuezato/xorslp-ec/graph"
	"github.com/yuezato/xorslp-ec/linalg"
	"github.com/yuezato/xorslp-ec/repair"
	"github.com/yuezato/xorslp-ec/schedule"
	"github.com/yuezato/xorslp-ec/slp"
	"github.com/yuezato/xorslp-ec/xorkernel"
)

// Pos names where a scheduled term's value lives while the program
// runs: BufIdx selects one of the program's pebble-cache slot buffers.
// The reference implementation additionally multiplexes a stride
// coefficient across several in-flight blocks per iteration; this
// runtime instead gives every plane its own full-sized buffer, so
// StrideCoeff is always 0 and kept only to mirror the Pos shape spec
// section 4.11 describes.
type Pos struct {
	BufIdx      int
	StrideCoeff int
}

// Program is a compiled, scheduled GF(2) XOR program ready to run over
// bit-plane buffers: one input column per row of the source generator
// matrix's column space, one target output per requested row.
type Program struct {
	InputCols   int
	Targets     []slp.Term
	TargetOf    map[int]rowResult // original row index -> how to obtain it
	Fused       graph.MultiSLP
	Schedule    schedule.Schedule
	Pos         map[slp.Term]Pos
}

type rowResult struct {
	isZero   bool
	isDirect bool
	direct   slp.Term
	fused    slp.Term
}

// Compile lifts gen (rows x inputCols over GF(2^8)) into a GF(2) bit
// matrix, compresses and fuses the rows named in targetRows, and
// schedules the result over a cache of the given capacity. The working
// SLP is first run through classical RePair (spec section 4.5) to
// collapse shared subexpressions across rows before fusion widens the
// surviving XORs to variadic form.
func Compile(gen *linalg.Matrix, targetRows []int, capacity int, strategy schedule.Strategy) *Program {
	return compile(gen, targetRows, capacity, strategy, true)
}

// CompileNoCompress is Compile with the RePair pass skipped: rows are
// expanded straight into a binary trivial graph before fusion, matching
// the CLI's --no-compress flag (spec section 6).
func CompileNoCompress(gen *linalg.Matrix, targetRows []int, capacity int, strategy schedule.Strategy) *Program {
	return compile(gen, targetRows, capacity, strategy, false)
}

func compile(gen *linalg.Matrix, targetRows []int, capacity int, strategy schedule.Strategy, compress bool) *Program {
	lifted := bitexpand.LiftMatrix(gen)
	inputCols := gen.Cols() * 8

	wrapped := slp.New(lifted, 0, inputCols)
	trivials := slp.TrivialRowResults(wrapped)
	shrunk, mapping := slp.Shrink(wrapped)

	originalToShrunk := make(map[int]int, len(mapping.ShrunkToOriginal))
	for shrunkIdx, origIdx := range mapping.ShrunkToOriginal {
		originalToShrunk[origIdx] = shrunkIdx
	}

	var multi graph.MultiSLP
	var rowOutputs []slp.Term
	if compress {
		rows := make([]repair.Row, shrunk.NumOutputs())
		for r := range rows {
			rows[r] = repair.Row(shrunk.Operands(r))
		}
		fresh := shrunk.NumVariables
		freshFn := func() slp.Term {
			t := slp.Var(fresh)
			fresh++
			return t
		}
		multi, rowOutputs = repair.RunRepairTargets(rows, repair.LexSmall, freshFn)
	} else {
		g, outputs := shrunk.ToTrivialGraphRowOutputs()
		multi = graph.GraphToMultiSLP(g)
		rowOutputs = outputs
	}

	targetOf := make(map[int]rowResult, len(targetRows))
	var fusedTargets []slp.Term

	for _, origRow := range bitRows(targetRows) {
		if tr := trivials[origRow]; tr != nil {
			if tr.IsZero {
				targetOf[origRow] = rowResult{isZero: true}
			} else {
				targetOf[origRow] = rowResult{isDirect: true, direct: tr.Term}
			}
			continue
		}
		shrunkIdx := originalToShrunk[origRow]
		out := rowOutputs[shrunkIdx]
		targetOf[origRow] = rowResult{fused: out}
		fusedTargets = append(fusedTargets, out)
	}

	fusion := graph.Fusion{MaxArity: xorkernel.MaxArity}
	fused := fusion.Iter(multi, fusedTargets)

	sched := schedule.DealMultiSLP(fused, fusedTargets, capacity, strategy)

	pos := make(map[slp.Term]Pos, len(sched.Slot))
	for t, slot := range sched.Slot {
		pos[t] = Pos{BufIdx: slot}
	}

	return &Program{
		InputCols: inputCols,
		Targets:   fusedTargets,
		TargetOf:  targetOf,
		Fused:     fused,
		Schedule:  sched,
		Pos:       pos,
	}
}

// bitRows expands a list of GF(2^8)-level row indices into the 8
// GF(2)-level row indices each one lifts to.
func bitRows(rows []int) []int {
	out := make([]int, 0, len(rows)*8)
	for _, r := range rows {
		for j := 0; j < 8; j++ {
			out = append(out, r*8+j)
		}
	}
	return out
}
