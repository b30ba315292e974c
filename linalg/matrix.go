// Package linalg implements dense matrices over field.GF256 and the
// Vandermonde-family generator-matrix constructions the bit-expansion
// stage lifts into GF(2) (spec section 4.2).
package linalg

import (
	"errors"
	"fmt"

	"github.com/yuezato/xorslp-ec/field"
)

// ErrSingular is returned by Inverse when a matrix has no inverse.
var ErrSingular = errors.New("linalg: matrix is singular")

// ErrDimensionMismatch is returned when two matrices cannot be combined
// because their shapes disagree.
var ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

// DimensionError carries the offending shapes for ErrDimensionMismatch.
type DimensionError struct {
	Op          string
	RowsA, ColsA int
	RowsB, ColsB int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("linalg: %s: %dx%d incompatible with %dx%d", e.Op, e.RowsA, e.ColsA, e.RowsB, e.ColsB)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// Matrix is a dense row-major matrix over field.GF256.
type Matrix struct {
	rows, cols int
	data       []field.GF256
}

// NewMatrix allocates a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, data: make([]field.GF256, rows*cols)}
}

// NewMatrixFromRows builds a matrix from row-major data, copying it.
func NewMatrixFromRows(rowsData [][]field.GF256) *Matrix {
	rows := len(rowsData)
	if rows == 0 {
		return &Matrix{}
	}
	cols := len(rowsData[0])
	m := NewMatrix(rows, cols)
	for r, row := range rowsData {
		if len(row) != cols {
			panic("linalg: ragged row data")
		}
		copy(m.data[r*cols:(r+1)*cols], row)
	}
	return m
}

func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, field.GF256One)
	}
	return m
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

func (m *Matrix) At(r, c int) field.GF256 {
	return m.data[r*m.cols+c]
}

func (m *Matrix) Set(r, c int, v field.GF256) {
	m.data[r*m.cols+c] = v
}

// RowVec returns a copy of row r.
func (m *Matrix) RowVec(r int) []field.GF256 {
	out := make([]field.GF256, m.cols)
	copy(out, m.data[r*m.cols:(r+1)*m.cols])
	return out
}

// ColumnVec returns a copy of column c.
func (m *Matrix) ColumnVec(c int) []field.GF256 {
	out := make([]field.GF256, m.rows)
	for r := 0; r < m.rows; r++ {
		out[r] = m.At(r, c)
	}
	return out
}

// SwapRow exchanges rows i and j in place.
func (m *Matrix) SwapRow(i, j int) {
	if i == j {
		return
	}
	for c := 0; c < m.cols; c++ {
		m.data[i*m.cols+c], m.data[j*m.cols+c] = m.data[j*m.cols+c], m.data[i*m.cols+c]
	}
}

// DropRows returns a copy of m with the rows at the given indices removed.
func (m *Matrix) DropRows(idx ...int) *Matrix {
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	out := NewMatrix(0, m.cols)
	for r := 0; r < m.rows; r++ {
		if drop[r] {
			continue
		}
		out.data = append(out.data, m.RowVec(r)...)
		out.rows++
	}
	return out
}

// DropCol returns a copy of m with column c removed.
func (m *Matrix) DropCol(c int) *Matrix {
	out := NewMatrix(m.rows, m.cols-1)
	for r := 0; r < m.rows; r++ {
		dst := 0
		for col := 0; col < m.cols; col++ {
			if col == c {
				continue
			}
			out.Set(r, dst, m.At(r, col))
			dst++
		}
	}
	return out
}

// Mul computes m * other.
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, &DimensionError{Op: "mul", RowsA: m.rows, ColsA: m.cols, RowsB: other.rows, ColsB: other.cols}
	}
	out := NewMatrix(m.rows, other.cols)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < other.cols; c++ {
			var acc field.GF256
			for k := 0; k < m.cols; k++ {
				acc = acc.Add(m.At(r, k).Mul(other.At(k, c)))
			}
			out.Set(r, c, acc)
		}
	}
	return out, nil
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{rows: m.rows, cols: m.cols, data: make([]field.GF256, len(m.data))}
	copy(out.data, m.data)
	return out
}

// Inverse computes the Gauss-Jordan inverse of a square matrix via
// partial pivoting, searching for a nonzero pivot below the diagonal
// and swapping it up when the diagonal entry is zero.
func (m *Matrix) Inverse() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, &DimensionError{Op: "inverse", RowsA: m.rows, ColsA: m.cols, RowsB: m.rows, ColsB: m.cols}
	}
	n := m.rows
	a := m.Clone()
	inv := Identity(n)

	for col := 0; col < n; col++ {
		if a.At(col, col).IsZero() {
			found := false
			for r := col + 1; r < n; r++ {
				if !a.At(r, col).IsZero() {
					a.SwapRow(col, r)
					inv.SwapRow(col, r)
					found = true
					break
				}
			}
			if !found {
				return nil, ErrSingular
			}
		}

		pivot := a.At(col, col)
		pivotInv := pivot.MulInv()
		for c := 0; c < n; c++ {
			a.Set(col, c, a.At(col, c).Mul(pivotInv))
			inv.Set(col, c, inv.At(col, c).Mul(pivotInv))
		}

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := a.At(r, col)
			if factor.IsZero() {
				continue
			}
			for c := 0; c < n; c++ {
				a.Set(r, c, a.At(r, c).Add(factor.Mul(a.At(col, c))))
				inv.Set(r, c, inv.At(r, c).Add(factor.Mul(inv.At(col, c))))
			}
		}
	}

	return inv, nil
}

// Equal reports whether m and other have the same shape and entries.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
