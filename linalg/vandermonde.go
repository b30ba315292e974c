package linalg

import (
	"errors"
	"fmt"

	"github.com/yuezato/xorslp-ec/field"
)

// ErrBadInput is returned by Vandermonde when the caller-supplied
// element vector violates spec section 4.2's preconditions.
var ErrBadInput = errors.New("linalg: bad input")

// Vandermonde builds the len(v) x size Vandermonde matrix over
// GF(2^8) from a caller-supplied element vector v: row i, column j is
// v[i]^j. Per spec section 4.2 it rejects v with ErrBadInput if any
// entry equals the field's multiplicative identity (every power of
// such a row is 1) or if two entries coincide (producing duplicate
// rows).
func Vandermonde(size int, v []field.GF256) (*Matrix, error) {
	seen := make(map[field.GF256]bool, len(v))
	for _, x := range v {
		if x.IsOne() {
			return nil, fmt.Errorf("%w: vandermonde element %v must not be 1", ErrBadInput, x)
		}
		if seen[x] {
			return nil, fmt.Errorf("%w: duplicate vandermonde element %v", ErrBadInput, x)
		}
		seen[x] = true
	}

	m := NewMatrix(len(v), size)
	for r, x := range v {
		for c := 0; c < size; c++ {
			m.Set(r, c, x.Exp(uint32(c)))
		}
	}
	return m, nil
}

// classicVandermonde builds the (data+parity) x data matrix V[r][c] =
// r^c directly from row indices 0..rows-1. It is the starting point
// SystematicVandermonde transforms into a systematic generator matrix
// and deliberately bypasses Vandermonde's element-vector validation,
// since row 1 (x=1) is expected here and systematicity only depends on
// the top square block inverting.
func classicVandermonde(dataBlocks, parityBlocks int) *Matrix {
	rows := dataBlocks + parityBlocks
	m := NewMatrix(rows, dataBlocks)
	for r := 0; r < rows; r++ {
		x := field.GF256(r)
		for c := 0; c < dataBlocks; c++ {
			m.Set(r, c, x.Exp(uint32(c)))
		}
	}
	return m
}

// SystematicVandermonde returns a generator matrix whose top dataBlocks
// rows form the identity (systematic) block, derived from
// classicVandermonde by right-multiplying it with the inverse of its
// top square submatrix.
func SystematicVandermonde(dataBlocks, parityBlocks int) (*Matrix, error) {
	v := classicVandermonde(dataBlocks, parityBlocks)
	top := NewMatrix(dataBlocks, dataBlocks)
	for r := 0; r < dataBlocks; r++ {
		copy(top.data[r*dataBlocks:(r+1)*dataBlocks], v.RowVec(r))
	}
	topInv, err := top.Inverse()
	if err != nil {
		return nil, err
	}
	return v.Mul(topInv)
}

// ModifiedSystematicVandermonde is SystematicVandermonde built from
// x=1..rows instead of x=0..rows-1, so that no evaluation point is
// zero (x=0 would give the row [1, 0, ..., 0]).
func ModifiedSystematicVandermonde(dataBlocks, parityBlocks int) (*Matrix, error) {
	rows := dataBlocks + parityBlocks
	v := NewMatrix(rows, dataBlocks)
	for r := 0; r < rows; r++ {
		x := field.GF256(r + 1)
		for c := 0; c < dataBlocks; c++ {
			v.Set(r, c, x.Exp(uint32(c)))
		}
	}
	top := NewMatrix(dataBlocks, dataBlocks)
	for r := 0; r < dataBlocks; r++ {
		copy(top.data[r*dataBlocks:(r+1)*dataBlocks], v.RowVec(r))
	}
	topInv, err := top.Inverse()
	if err != nil {
		return nil, err
	}
	return v.Mul(topInv)
}

// RSV (Reed-Solomon Vandermonde) builds the systematic generator
// matrix from the Vandermonde matrix evaluated at consecutive powers
// of the field's primitive element, alpha^1 .. alpha^(data+parity),
// right-multiplied by the inverse of its top square block so that the
// top dataBlocks rows are the identity. The parity rows are not
// rescaled afterwards: the first parity row is not in general all
// ones, and the later parity rows do not in general start with one.
// This is distinct from ISARSV's isa_rsv form, which stacks an
// identity block on doubling-generator parity rows instead.
func RSV(dataBlocks, parityBlocks int) (*Matrix, error) {
	rows := dataBlocks + parityBlocks
	v := NewMatrix(rows, dataBlocks)
	gen := field.PrimitiveElement
	for r := 0; r < rows; r++ {
		x := gen.Exp(uint32(r + 1))
		for c := 0; c < dataBlocks; c++ {
			v.Set(r, c, x.Exp(uint32(c)))
		}
	}
	top := NewMatrix(dataBlocks, dataBlocks)
	for r := 0; r < dataBlocks; r++ {
		copy(top.data[r*dataBlocks:(r+1)*dataBlocks], v.RowVec(r))
	}
	topInv, err := top.Inverse()
	if err != nil {
		return nil, err
	}
	return v.Mul(topInv)
}

// NonsystematicRSV is the non-systematic counterpart of ISARSV: the parity
// rows only, each row r formed by raising a doubling generator to
// powers 0..dataBlocks-1.
func NonsystematicRSV(dataBlocks, parityBlocks int) *Matrix {
	m := NewMatrix(parityBlocks, dataBlocks)
	gen := field.GF256One
	for r := 0; r < parityBlocks; r++ {
		for c := 0; c < dataBlocks; c++ {
			m.Set(r, c, gen.Exp(uint32(c)))
		}
		gen = gen.Mul(field.GF256(2))
	}
	return m
}

// ISARSV builds the full (data+parity) x data systematic matrix: an
// identity top block stacked on NonsystematicRSV's doubling-generator
// parity rows, matching rsv_bitmatrix.rs's isa_rsv.
func ISARSV(dataBlocks, parityBlocks int) (*Matrix, error) {
	rows := dataBlocks + parityBlocks
	m := NewMatrix(rows, dataBlocks)
	for c := 0; c < dataBlocks; c++ {
		m.Set(c, c, field.GF256One)
	}

	parity := NonsystematicRSV(dataBlocks, parityBlocks)
	for r := 0; r < parityBlocks; r++ {
		copy(m.data[(dataBlocks+r)*dataBlocks:(dataBlocks+r+1)*dataBlocks], parity.RowVec(r))
	}

	return m, nil
}
