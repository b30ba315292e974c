package xorkernel

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// PageAlignedBuffer is a memory-mapped, page-aligned byte buffer. It is
// the Go-idiomatic analogue of the original Rust PageAlignedArray
// (posix_memalign/free): anonymous private mmap in place of
// posix_memalign, and runtime.SetFinalizer releasing the mapping via
// munmap instead of an explicit free call.
type PageAlignedBuffer struct {
	data []byte
}

// NewPageAlignedBuffer allocates size bytes rounded up to a whole
// number of pages.
func NewPageAlignedBuffer(size int) (*PageAlignedBuffer, error) {
	pageSize := unix.Getpagesize()
	pages := (size + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}

	data, err := unix.Mmap(-1, 0, pages*pageSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("xorkernel: mmap %d bytes: %w", pages*pageSize, err)
	}

	buf := &PageAlignedBuffer{data: data[:size]}
	runtime.SetFinalizer(buf, (*PageAlignedBuffer).free)
	return buf, nil
}

func (b *PageAlignedBuffer) free() {
	if b.data == nil {
		return
	}
	ZeroBytes(b.data)
	// Munmap needs the full mapped range, but data was sliced down to
	// the caller's requested size; reslice to capacity before freeing.
	full := b.data[:cap(b.data)]
	_ = unix.Munmap(full)
	b.data = nil
}

// Bytes returns the buffer's backing slice.
func (b *PageAlignedBuffer) Bytes() []byte { return b.data }

// Free releases the mapping immediately instead of waiting for the
// finalizer to run.
func (b *PageAlignedBuffer) Free() {
	runtime.SetFinalizer(b, nil)
	b.free()
}
