// Package bitexpand implements the ring homomorphism B: GF(2^8) -> M_8(GF(2))
// that represents multiplication-by-a in GF(2^8) as an 8x8 GF(2) matrix,
// and lifts a k x n matrix over GF(2^8) into an 8k x 8n bit matrix (spec
// section 4.3).
package bitexpand

import (
	"sync"

	"github.com/yuezato/xorslp-ec/bitmatrix"
	"github.com/yuezato/xorslp-ec/field"
	"github.com/yuezato/xorslp-ec/linalg"
)

// byteMatrix is the 8x8 GF(2) representation of multiplication by a
// single GF(2^8) element, stored one byte per column: column c is
// a * x^(7-c) mod p(x), to be unpacked MSB-first into that column's
// eight rows (spec section 4.3).
type byteMatrix [8]byte

var (
	tableOnce sync.Once
	table     [256]byteMatrix
)

func buildTable() {
	for v := 0; v < 256; v++ {
		a := field.GF256(v)
		var bm byteMatrix
		for c := 0; c < 8; c++ {
			basis := field.GF256(1 << uint(7-c))
			product := a.Mul(basis)
			bm[c] = byte(product)
		}
		table[v] = bm
	}
}

func ensureTable() {
	tableOnce.Do(buildTable)
}

// Of returns the 8x8 bit matrix representing multiplication by a,
// encoded as a bitmatrix.BitMatrix whose column c is vec(a*x^(7-c)),
// unpacked MSB-first into rows 0..7 (matching ByteToColVec's
// convention that row 0 is the coefficient of x^7).
func Of(a field.GF256) *bitmatrix.BitMatrix {
	ensureTable()
	bm := table[byte(a)]
	m := bitmatrix.New(8, 8)
	for c := 0; c < 8; c++ {
		vec := bitmatrix.ByteToColVec(bm[c])
		for row := 0; row < 8; row++ {
			m.Set(row, c, vec[row])
		}
	}
	return m
}

// MulByte returns a*v computed by plain GF(2^8) multiplication, without
// going through the bit matrix at all. It is the reference value for
// checking that B(a) applied to the column vector of v gives the column
// vector of a*v.
func MulByte(a field.GF256, v byte) byte {
	return byte(a.Mul(field.GF256(v)))
}

// LiftMatrix expands a k x n matrix over GF(2^8) into an 8k x 8n bit
// matrix by tiling Of(m.At(r,c)) at block (r,c).
func LiftMatrix(m *linalg.Matrix) *bitmatrix.BitMatrix {
	ensureTable()
	rows, cols := m.Rows(), m.Cols()
	out := bitmatrix.New(rows*8, cols*8)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			block := Of(m.At(r, c))
			for br := 0; br < 8; br++ {
				for bc := 0; bc < 8; bc++ {
					if block.At(br, bc) {
						out.Set(r*8+br, c*8+bc, true)
					}
				}
			}
		}
	}
	return out
}
