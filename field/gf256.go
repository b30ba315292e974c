package field

import "fmt"

// PrimitivePoly is x^8 + x^4 + x^3 + x^2 + 1, the fixed reduction
// polynomial for GF(2^8) (spec section 4.1 / 4.3).
var PrimitivePoly Poly = Mono(8) | Mono(4) | Mono(3) | Mono(2) | Mono(0)

// PrimitiveElement is alpha = x, i.e. the byte 0b10, matching
// GF_2_8::PRIMITIVE_ELEMENT in the reference implementation.
const PrimitiveElement GF256 = 0b10

// GF256 is an element of GF(2^8): a byte under PrimitivePoly.
type GF256 byte

const (
	GF256Zero GF256 = 0
	GF256One  GF256 = 1
)

// expTable[i] = PrimitiveElement^i, logTable[v] = i s.t. expTable[i] == v.
var (
	expTable [255]GF256
	logTable [256]byte
)

func init() {
	buildTables()
}

// buildTables constructs the log/antilog tables by repeated GF(2)
// polynomial multiplication-by-x, reduced modulo PrimitivePoly — the
// same derivation fin_field.rs's GF_2_8_impl::new performs, expressed
// with this package's Poly type instead of a lazily-rebuilt one.
func buildTables() {
	var p Poly = Mono(0) // x^0 = 1

	for i := 0; i < 255; i++ {
		rep := polyToByte(p)
		expTable[i] = GF256(rep)
		logTable[rep] = byte(i)

		p = p.Mul(Mono(1)).Mod(PrimitivePoly)
	}
	logTable[0] = 0 // unused sentinel; Log(0) must never be read
}

func polyToByte(p Poly) byte {
	var v byte
	for deg := uint(0); deg < 8; deg++ {
		if p.At(deg) == One {
			v |= 1 << deg
		}
	}
	return v
}

func byteToPoly(v byte) Poly {
	var p Poly
	for deg := uint(0); deg < 8; deg++ {
		if v&(1<<deg) != 0 {
			p |= Mono(deg)
		}
	}
	return p
}

func (a GF256) String() string {
	return fmt.Sprintf("0x%02x", byte(a))
}

// Add is GF(2^8) addition, i.e. byte XOR.
func (a GF256) Add(b GF256) GF256 {
	return a ^ b
}

// Sub is identical to Add in characteristic 2.
func (a GF256) Sub(b GF256) GF256 {
	return a.Add(b)
}

// Mul multiplies via the log/antilog tables: a*b = exp[(log[a]+log[b]) mod 255].
func (a GF256) Mul(b GF256) GF256 {
	if a == 0 || b == 0 {
		return 0
	}
	sum := int(logTable[a]) + int(logTable[b])
	return expTable[sum%255]
}

// Neg is the identity in characteristic 2.
func (a GF256) Neg() GF256 {
	return a
}

// MulInv returns a^-1 = exp[(255 - log[a]) mod 255]. Panics on zero.
func (a GF256) MulInv() GF256 {
	if a == 0 {
		panic("field: multiplicative inverse of zero in GF(2^8)")
	}
	return expTable[(255-int(logTable[a]))%255]
}

// Exp computes a^k by repeated squaring.
func (a GF256) Exp(k uint32) GF256 {
	if k == 0 {
		return GF256One
	}
	half := a.Exp(k / 2)
	if k%2 == 0 {
		return half.Mul(half)
	}
	return a.Mul(half).Mul(half)
}

func (a GF256) IsZero() bool { return a == 0 }
func (a GF256) IsOne() bool  { return a == 1 }

// Byte returns the raw byte representation.
func (a GF256) Byte() byte { return byte(a) }

// FromByte wraps a raw byte as a GF256 element.
func FromByte(v byte) GF256 { return GF256(v) }

// Enumerate returns every element of GF(2^8) in byte order.
func Enumerate() []GF256 {
	out := make([]GF256, 256)
	for i := 0; i < 256; i++ {
		out[i] = GF256(i)
	}
	return out
}
