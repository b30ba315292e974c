package ecrun

import (
	"fmt"

	"github.com/yuezato/xorslp-ec/slp"
	"github.com/yuezato/xorslp-ec/xorkernel"
)

// Run executes p's fused program over one bit-plane buffer per input
// column (inputs[i] holds the plane for slp.Var(i)) and returns every
// value the program computed, keyed by term — both the fused
// intermediates and the rows named in p.Targets.
func (p *Program) Run(inputs [][]byte) (map[slp.Term][]byte, error) {
	if len(inputs) != p.InputCols {
		return nil, fmt.Errorf("ecrun: Run expects %d input planes, got %d", p.InputCols, len(inputs))
	}

	rowByOut := make(map[slp.Term]int, len(p.Fused))
	for i, row := range p.Fused {
		rowByOut[row.Out] = i
	}

	values := make(map[slp.Term][]byte, p.InputCols+len(p.Fused))
	for i, plane := range inputs {
		values[slp.Var(i)] = plane
	}

	for _, out := range p.Schedule.Order {
		rowIdx, ok := rowByOut[out]
		if !ok {
			continue
		}
		row := p.Fused[rowIdx]
		srcs := make([][]byte, len(row.Inputs))
		for i, in := range row.Inputs {
			v, ok := values[in]
			if !ok {
				return nil, fmt.Errorf("ecrun: Run: input %s for row %s not computed yet", in, out)
			}
			srcs[i] = v
		}
		n := len(srcs[0])
		dst := make([]byte, n)
		values[out] = xorkernel.Dispatch(dst, srcs...)
	}

	return values, nil
}

// RowPlane resolves the plane for the source matrix row origRow (a
// GF(2)-level row index, i.e. 8 per original GF(2^8) row) out of values
// computed by Run, handling the trivial (zero/direct-copy) rows Compile
// never handed to the fused program.
func (p *Program) RowPlane(origRow int, values map[slp.Term][]byte, blockSize int) ([]byte, error) {
	res, ok := p.TargetOf[origRow]
	if !ok {
		return nil, fmt.Errorf("ecrun: row %d was not compiled as a target", origRow)
	}
	if res.isZero {
		return make([]byte, blockSize), nil
	}
	if res.isDirect {
		v, ok := values[res.direct]
		if !ok {
			return nil, fmt.Errorf("ecrun: row %d: direct term %s missing from values", origRow, res.direct)
		}
		return v, nil
	}
	v, ok := values[res.fused]
	if !ok {
		return nil, fmt.Errorf("ecrun: row %d: fused term %s missing from values", origRow, res.fused)
	}
	return v, nil
}
