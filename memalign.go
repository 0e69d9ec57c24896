// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

import (
	"unsafe"

	"code.hybscloud.com/membuf/internal"
)

// PageSize defines the standard memory page size (4 KiB) used for
// alignment. AllocateOffHeap and Arena both allocate against it.
var PageSize uintptr = 4096

// SetPageSize updates the package-level page size used for allocations.
func SetPageSize(size int) {
	PageSize = uintptr(size)
}

// AlignedMem returns a byte slice with the specified size and starting
// address aligned to pageSize. Go has no mmap/cgo-free way to request
// off-heap memory directly; this is how Buffer emulates "off-heap"
// storage in pure Go — the slice is retained as the Buffer's owner so it
// stays reachable for the GC, and its address is read once via
// unsafe.Pointer to serve as the Buffer's native base.
//
// The returned slice shares underlying memory with a larger allocation;
// do not assume len(result) == cap(result).
func AlignedMem(size int, pageSize uintptr) []byte {
	p := make([]byte, uintptr(size)+pageSize-1)
	base := unsafe.Pointer(unsafe.SliceData(p))
	offset := ((uintptr(base)+pageSize-1)/pageSize)*pageSize - uintptr(base)
	return unsafe.Slice((*byte)(unsafe.Add(base, offset)), size)
}

// AlignedMemBlocks returns n page-aligned byte slices, each of length
// pageSize. All returned slices share a single contiguous underlying
// allocation, which is more memory-efficient than calling AlignedMem n
// times.
//
// Panics if n < 1.
func AlignedMemBlocks(n int, pageSize uintptr) (blocks [][]byte) {
	if n < 1 {
		panic("bad block num")
	}
	blocks = make([][]byte, n)
	p := make([]byte, int(pageSize)*(n+1))
	base := unsafe.Pointer(unsafe.SliceData(p))
	offset := ((uintptr(base)+pageSize-1)/pageSize)*pageSize - uintptr(base)
	for i := range n {
		blocks[i] = unsafe.Slice((*byte)(unsafe.Add(base, offset+uintptr(i)*pageSize)), pageSize)
	}
	return
}

// CacheLineSize is the CPU L1 cache line size for the current
// architecture, detected at compile time.
const CacheLineSize = internal.CacheLineSize

// CacheLineAlignedMem returns a byte slice with the specified size and
// starting address aligned to the CPU cache line size. This is useful
// for preventing false sharing in concurrent data structures (see the
// Arena's BoundedPool entry remapping).
func CacheLineAlignedMem(size int) []byte {
	align := uintptr(CacheLineSize)
	p := make([]byte, uintptr(size)+align-1)
	base := unsafe.Pointer(unsafe.SliceData(p))
	offset := ((uintptr(base)+align-1)/align)*align - uintptr(base)
	return unsafe.Slice((*byte)(unsafe.Add(base, offset)), size)
}

// Buffer size tiers follow a power-of-4 progression starting at 64
// bytes. An Arena quantizes requested chunk sizes up to the nearest
// tier so chunk pools stay a small, predictable set of sizes instead of
// one pool per distinct request.
const (
	BufferSizePico   = 1 << 6  // 64 B
	BufferSizeNano   = 1 << 8  // 256 B
	BufferSizeMicro  = 1 << 10 // 1 KiB
	BufferSizeSmall  = 1 << 12 // 4 KiB
	BufferSizeMedium = 1 << 14 // 16 KiB
	BufferSizeLarge  = 1 << 16 // 64 KiB
	BufferSizeHuge   = 1 << 18 // 256 KiB
	BufferSizeGiant  = 1 << 20 // 1 MiB
)

// BufferTier represents a buffer tier index in the 8-tier arena-chunk
// sizing system.
type BufferTier int

const (
	TierPico BufferTier = iota
	TierNano
	TierMicro
	TierSmall
	TierMedium
	TierLarge
	TierHuge
	TierGiant
	tierEnd // sentinel
)

var tierSizes = [tierEnd]int{
	TierPico:   BufferSizePico,
	TierNano:   BufferSizeNano,
	TierMicro:  BufferSizeMicro,
	TierSmall:  BufferSizeSmall,
	TierMedium: BufferSizeMedium,
	TierLarge:  BufferSizeLarge,
	TierHuge:   BufferSizeHuge,
	TierGiant:  BufferSizeGiant,
}

// TierBySize returns the smallest buffer tier that can hold size bytes.
// Returns TierGiant for sizes larger than BufferSizeGiant.
func TierBySize(size int) BufferTier {
	switch {
	case size <= BufferSizePico:
		return TierPico
	case size <= BufferSizeNano:
		return TierNano
	case size <= BufferSizeMicro:
		return TierMicro
	case size <= BufferSizeSmall:
		return TierSmall
	case size <= BufferSizeMedium:
		return TierMedium
	case size <= BufferSizeLarge:
		return TierLarge
	case size <= BufferSizeHuge:
		return TierHuge
	default:
		return TierGiant
	}
}

// Size returns the buffer size for this tier.
func (t BufferTier) Size() int {
	if t < 0 || t >= tierEnd {
		return BufferSizeGiant
	}
	return tierSizes[t]
}

// BufferSizeFor returns the smallest tier size that can hold size bytes.
// Equivalent to TierBySize(size).Size().
func BufferSizeFor(size int) int {
	return TierBySize(size).Size()
}
