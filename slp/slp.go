package slp

import "github.com/yuezato/xorslp-ec/bitmatrix"

// SLP is a straight-line program over GF(2): repr has one column per
// input term (constants, then variables) and one row per output, each
// row's set bits naming the inputs XORed to produce that output.
type SLP struct {
	Repr          *bitmatrix.BitMatrix
	NumVariables  int
	NumConstants  int
}

// New wraps a bit matrix whose column count must equal
// numConstants+numVariables.
func New(repr *bitmatrix.BitMatrix, numConstants, numVariables int) *SLP {
	if repr.Cols() != numConstants+numVariables {
		panic("slp: bit matrix column count does not match constants+variables")
	}
	return &SLP{Repr: repr, NumVariables: numVariables, NumConstants: numConstants}
}

// IndexToTerm maps a column index of Repr back to the Term it names.
func (s *SLP) IndexToTerm(i int) Term {
	if i < s.NumConstants {
		return Cst(i)
	}
	return Var(i - s.NumConstants)
}

// TermToIndex maps a Term to its column index in Repr.
func (s *SLP) TermToIndex(t Term) int {
	if t.IsConst() {
		return t.Index
	}
	return s.NumConstants + t.Index
}

// NumOutputs is the number of rows (program outputs).
func (s *SLP) NumOutputs() int { return s.Repr.Rows() }

// Operands returns the terms XORed together to form output row r.
func (s *SLP) Operands(r int) []Term {
	var out []Term
	for c := 0; c < s.Repr.Cols(); c++ {
		if s.Repr.At(r, c) {
			out = append(out, s.IndexToTerm(c))
		}
	}
	return out
}

// ShrinkMapping records, for each row kept after shrinking, its
// original row index.
type ShrinkMapping struct {
	ShrunkToOriginal []int
}

// Shrink removes rows whose popcount is 0 or 1 — outputs that are
// either identically zero or a direct copy of a single input — since
// neither needs an XOR instruction to compute. It returns the reduced
// SLP together with the mapping from a kept row's new index to its
// original index.
func Shrink(s *SLP) (*SLP, *ShrinkMapping) {
	mapping := &ShrinkMapping{}
	out := bitmatrix.New(0, s.Repr.Cols())
	for r := 0; r < s.Repr.Rows(); r++ {
		if s.Repr.Popcount(r) <= 1 {
			continue
		}
		dst := out.AddRow()
		copyRow(out, dst, s.Repr, r)
		mapping.ShrunkToOriginal = append(mapping.ShrunkToOriginal, r)
	}
	return New(out, s.NumConstants, s.NumVariables), mapping
}

func copyRow(dst *bitmatrix.BitMatrix, dstRow int, src *bitmatrix.BitMatrix, srcRow int) {
	for c := 0; c < src.Cols(); c++ {
		if src.At(srcRow, c) {
			dst.Set(dstRow, c, true)
		}
	}
}

// TrivialResult names what a dropped (popcount <= 1) row reduces to:
// either the term it copies, or the zero constant.
type TrivialResult struct {
	IsZero bool
	Term   Term
}

// TrivialRowResults returns, for every row in s, its TrivialResult if
// the row has popcount <= 1 (nil otherwise) — the per-output value the
// shrink pass needs to resolve any reference to a dropped row.
func TrivialRowResults(s *SLP) []*TrivialResult {
	out := make([]*TrivialResult, s.Repr.Rows())
	for r := 0; r < s.Repr.Rows(); r++ {
		pc := s.Repr.Popcount(r)
		if pc > 1 {
			continue
		}
		if pc == 0 {
			out[r] = &TrivialResult{IsZero: true}
			continue
		}
		for c := 0; c < s.Repr.Cols(); c++ {
			if s.Repr.At(r, c) {
				out[r] = &TrivialResult{Term: s.IndexToTerm(c)}
				break
			}
		}
	}
	return out
}
