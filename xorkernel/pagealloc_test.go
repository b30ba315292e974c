package xorkernel

import (
	"os"
	"testing"
)

func TestPageAlignedBufferRoundsUpAndIsWritable(t *testing.T) {
	buf, err := NewPageAlignedBuffer(10)
	if err != nil {
		t.Fatalf("NewPageAlignedBuffer error = %v", err)
	}
	defer buf.Free()

	data := buf.Bytes()
	if len(data) != 10 {
		t.Fatalf("Bytes() length = %d, want 10", len(data))
	}
	if ps := os.Getpagesize(); cap(data) != ps {
		t.Fatalf("Bytes() capacity = %d, want one whole page (%d)", cap(data), ps)
	}

	data[0] = 0xAB
	data[9] = 0xCD
	if data[0] != 0xAB || data[9] != 0xCD {
		t.Error("buffer is not writable")
	}
}

func TestPageAlignedBufferExplicitFree(t *testing.T) {
	buf, err := NewPageAlignedBuffer(4096)
	if err != nil {
		t.Fatalf("NewPageAlignedBuffer error = %v", err)
	}
	buf.Free()
	// A second Free must not panic or double-unmap.
	buf.Free()
}
