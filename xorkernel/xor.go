// Package xorkernel implements the fixed-arity XOR kernels the runtime
// driver dispatches to for each scheduled pebble computation, plus a
// page-aligned buffer allocator (spec section 4.11). Kernels process 8
// bytes at a time via unsafe 64-bit XOR.
package xorkernel

// MaxArity is the largest input count a fixed-arity kernel supports.
// Anything wider falls back to XorGeneric.
const MaxArity = 15

func xorInto(dst []byte, srcs ...[]byte) {
	n := len(dst)
	for _, s := range srcs {
		if len(s) != n {
			panic("xorkernel: all operands must have equal length")
		}
	}

	i := 0
	for ; i+8 <= n; i += 8 {
		var acc uint64
		for _, s := range srcs {
			acc ^= loadWord(s, i)
		}
		storeWord(dst, i, acc)
	}
	for ; i < n; i++ {
		var acc byte
		for _, s := range srcs {
			acc ^= s[i]
		}
		dst[i] = acc
	}
}

func Xor2(dst, a, b []byte) []byte {
	xorInto(dst, a, b)
	return dst
}

func Xor3(dst, a, b, c []byte) []byte {
	xorInto(dst, a, b, c)
	return dst
}

func Xor4(dst, a, b, c, d []byte) []byte {
	xorInto(dst, a, b, c, d)
	return dst
}

func Xor5(dst, a, b, c, d, e []byte) []byte {
	xorInto(dst, a, b, c, d, e)
	return dst
}

func Xor6(dst, a, b, c, d, e, f []byte) []byte {
	xorInto(dst, a, b, c, d, e, f)
	return dst
}

func Xor7(dst, a, b, c, d, e, f, g []byte) []byte {
	xorInto(dst, a, b, c, d, e, f, g)
	return dst
}

func Xor8(dst, a, b, c, d, e, f, g, h []byte) []byte {
	xorInto(dst, a, b, c, d, e, f, g, h)
	return dst
}

func Xor9(dst []byte, srcs ...[]byte) []byte {
	mustArity(srcs, 9)
	xorInto(dst, srcs...)
	return dst
}

func Xor10(dst []byte, srcs ...[]byte) []byte {
	mustArity(srcs, 10)
	xorInto(dst, srcs...)
	return dst
}

func Xor11(dst []byte, srcs ...[]byte) []byte {
	mustArity(srcs, 11)
	xorInto(dst, srcs...)
	return dst
}

func Xor12(dst []byte, srcs ...[]byte) []byte {
	mustArity(srcs, 12)
	xorInto(dst, srcs...)
	return dst
}

func Xor13(dst []byte, srcs ...[]byte) []byte {
	mustArity(srcs, 13)
	xorInto(dst, srcs...)
	return dst
}

func Xor14(dst []byte, srcs ...[]byte) []byte {
	mustArity(srcs, 14)
	xorInto(dst, srcs...)
	return dst
}

func Xor15(dst []byte, srcs ...[]byte) []byte {
	mustArity(srcs, 15)
	xorInto(dst, srcs...)
	return dst
}

// XorGeneric handles any arity, including beyond MaxArity.
func XorGeneric(dst []byte, srcs ...[]byte) []byte {
	xorInto(dst, srcs...)
	return dst
}

func mustArity(srcs [][]byte, want int) {
	if len(srcs) != want {
		panic("xorkernel: wrong operand count for fixed-arity kernel")
	}
}

// Dispatch picks the fixed-arity kernel matching len(srcs), falling
// back to XorGeneric past MaxArity.
func Dispatch(dst []byte, srcs ...[]byte) []byte {
	switch len(srcs) {
	case 2:
		return Xor2(dst, srcs[0], srcs[1])
	case 3:
		return Xor3(dst, srcs[0], srcs[1], srcs[2])
	case 4:
		return Xor4(dst, srcs[0], srcs[1], srcs[2], srcs[3])
	case 5:
		return Xor5(dst, srcs[0], srcs[1], srcs[2], srcs[3], srcs[4])
	case 6:
		return Xor6(dst, srcs[0], srcs[1], srcs[2], srcs[3], srcs[4], srcs[5])
	case 7:
		return Xor7(dst, srcs[0], srcs[1], srcs[2], srcs[3], srcs[4], srcs[5], srcs[6])
	case 8:
		return Xor8(dst, srcs[0], srcs[1], srcs[2], srcs[3], srcs[4], srcs[5], srcs[6], srcs[7])
	case 9:
		return Xor9(dst, srcs...)
	case 10:
		return Xor10(dst, srcs...)
	case 11:
		return Xor11(dst, srcs...)
	case 12:
		return Xor12(dst, srcs...)
	case 13:
		return Xor13(dst, srcs...)
	case 14:
		return Xor14(dst, srcs...)
	case 15:
		return Xor15(dst, srcs...)
	default:
		return XorGeneric(dst, srcs...)
	}
}
