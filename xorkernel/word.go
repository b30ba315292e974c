package xorkernel

import "unsafe"

func loadWord(b []byte, i int) uint64 {
	return *(*uint64)(unsafe.Pointer(&b[i]))
}

func storeWord(b []byte, i int, v uint64) {
	*(*uint64)(unsafe.Pointer(&b[i])) = v
}
