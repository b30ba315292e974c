package field

// Poly is a univariate polynomial over GF(2), represented as the bit
// at index i meaning "coefficient of x^i is 1". It exists for exactly
// one purpose: deriving the GF(2^8) log/antilog tables from the
// primitive polynomial at package init time, the same one-shot role
// univariate_polynomial.rs plays for fin_field.rs in the reference
// implementation this package is modeled on.
type Poly uint32

// Mono builds the single-term polynomial x^degree.
func Mono(degree uint) Poly {
	return Poly(1) << degree
}

// Add is GF(2) polynomial addition (XOR of coefficients).
func (p Poly) Add(q Poly) Poly {
	return p ^ q
}

// Degree returns the degree of p, or -1 for the zero polynomial.
func (p Poly) Degree() int {
	if p == 0 {
		return -1
	}
	d := -1
	for i := 0; i < 32; i++ {
		if p&(1<<uint(i)) != 0 {
			d = i
		}
	}
	return d
}

// Mul is GF(2) polynomial multiplication.
func (p Poly) Mul(q Poly) Poly {
	var r Poly
	for i := 0; i <= 31; i++ {
		if q&(1<<uint(i)) != 0 {
			r ^= p << uint(i)
		}
	}
	return r
}

// DivMod performs GF(2) polynomial long division, returning (quotient,
// remainder) such that p = quotient*d + remainder.
func (p Poly) DivMod(d Poly) (Poly, Poly) {
	if d == 0 {
		panic("field: division by the zero polynomial")
	}

	ddeg := d.Degree()
	rem := p
	var quot Poly

	for {
		rdeg := rem.Degree()
		if rdeg < ddeg {
			break
		}
		shift := uint(rdeg - ddeg)
		quot ^= Poly(1) << shift
		rem ^= d << shift
	}

	return quot, rem
}

// Mod is the remainder of GF(2) polynomial division.
func (p Poly) Mod(d Poly) Poly {
	_, r := p.DivMod(d)
	return r
}

// At returns the coefficient of x^degree as a Bit.
func (p Poly) At(degree uint) Bit {
	return Bit(p&(1<<degree) != 0)
}
