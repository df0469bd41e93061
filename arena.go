package zhttp

import "math/bits"

const (
	minSlabSize = 4 * 1024
	maxSlabSize = 1024 * 1024
)

// arena hands out byte slices carved from large slabs.
//
// Slices returned by alloc stay valid until reset. The last slab is kept
// for reuse across resets, so data obtained before reset may be overwritten
// afterwards.
type arena struct {
	slab []byte
	n    int // bytes handed out since the last reset
}

// alloc returns a zero-length slice with capacity n owned by the arena.
func (a *arena) alloc(n int) []byte {
	if n <= 0 {
		return nil
	}
	a.n += n
	if n > maxSlabSize {
		// Oversized requests get their own backing array so the current
		// slab keeps serving small allocations.
		return make([]byte, 0, n)
	}
	if cap(a.slab)-len(a.slab) < n {
		a.slab = make([]byte, 0, slabSize(n))
	}
	start := len(a.slab)
	a.slab = a.slab[:start+n]
	return a.slab[start : start : start+n]
}

// copy returns an arena-owned copy of b.
func (a *arena) copy(b []byte) []byte {
	return append(a.alloc(len(b)), b...)
}

func (a *arena) reset() {
	a.slab = a.slab[:0]
	a.n = 0
}

// slabSize rounds n up to the next power of two, never below minSlabSize.
func slabSize(n int) int {
	if n <= minSlabSize {
		return minSlabSize
	}
	return 1 << bits.Len(uint(n-1))
}
