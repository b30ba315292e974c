package field

import "testing"

func TestBitArithmetic(t *testing.T) {
	t.Run("addition is xor", func(t *testing.T) {
		cases := []struct {
			a, b, want Bit
		}{
			{Zero, Zero, Zero},
			{Zero, One, One},
			{One, Zero, One},
			{One, One, Zero},
		}
		for _, c := range cases {
			if got := c.a.Add(c.b); got != c.want {
				t.Errorf("%v + %v = %v, want %v", c.a, c.b, got, c.want)
			}
		}
	})

	t.Run("multiplication is and", func(t *testing.T) {
		if One.Mul(One) != One {
			t.Error("1 * 1 should be 1")
		}
		if One.Mul(Zero) != Zero {
			t.Error("1 * 0 should be 0")
		}
	})

	t.Run("inverse of zero panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		_ = Zero.MulInv()
	})

	t.Run("byte round trip", func(t *testing.T) {
		if BitFromByte(Zero.ToByte()) != Zero {
			t.Error("zero round trip failed")
		}
		if BitFromByte(One.ToByte()) != One {
			t.Error("one round trip failed")
		}
	})

	t.Run("invalid byte panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic on invalid byte")
			}
		}()
		_ = BitFromByte(2)
	})
}

func TestPoly(t *testing.T) {
	t.Run("degree", func(t *testing.T) {
		if Poly(0).Degree() != -1 {
			t.Error("zero polynomial should have degree -1")
		}
		if Mono(0).Degree() != 0 {
			t.Error("x^0 should have degree 0")
		}
		if Mono(5).Degree() != 5 {
			t.Error("x^5 should have degree 5")
		}
	})

	t.Run("add is its own inverse", func(t *testing.T) {
		p := Mono(3).Add(Mono(1))
		if p.Add(p) != 0 {
			t.Error("p + p should be 0 over GF(2)")
		}
	})

	t.Run("primitive polynomial has degree 8", func(t *testing.T) {
		if PrimitivePoly.Degree() != 8 {
			t.Errorf("PrimitivePoly degree = %d, want 8", PrimitivePoly.Degree())
		}
	})

	t.Run("mod reduces below divisor degree", func(t *testing.T) {
		p := Mono(9).Add(Mono(2))
		r := p.Mod(PrimitivePoly)
		if r.Degree() >= PrimitivePoly.Degree() {
			t.Errorf("remainder degree %d not below divisor degree %d", r.Degree(), PrimitivePoly.Degree())
		}
	})

	t.Run("divmod reconstructs dividend", func(t *testing.T) {
		p := Mono(10).Add(Mono(4)).Add(Mono(0))
		d := PrimitivePoly
		q, r := p.DivMod(d)
		if q.Mul(d).Add(r) != p {
			t.Error("q*d + r != p")
		}
	})

	t.Run("division by zero panics", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		_, _ = Mono(0).DivMod(0)
	})
}
