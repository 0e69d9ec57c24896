// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

import (
	"math"
	"unsafe"

	"go.uber.org/zap"
)

// noCopy is a sentinel used to let `go vet` flag accidental copies of a
// Buffer value. A Buffer is a single-owner type; copying it by value would
// duplicate cursors and storage state without the semantics either side
// expects.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// MaxAddr is the largest representable native address. Off-heap bases must
// stay well clear of it so that base+size range arithmetic never overflows.
const MaxAddr = ^uintptr(0)

const maxI32 = math.MaxInt32

type storageKind uint8

const (
	storageHeap storageKind = iota
	storageOff
)

// Buffer is a byte-addressable memory buffer unifying on-heap and off-heap
// storage behind one value type. See the package doc for an overview.
//
// Buffer is not safe for concurrent use: it is a mutable, single-owner
// value. The zero Buffer is not usable; construct one with Wrap, Allocate,
// AllocateOffHeap, or FromNative.
type Buffer struct {
	_ noCopy

	kind  storageKind
	array []byte // heap mode backing array; nil in off-heap mode
	owner any    // off-heap foreign owner pinning lifetime; nil when unowned

	// base is a displacement interpreted according to kind: in heap mode
	// it is the byte offset into array; in off-heap mode it is an absolute
	// native address. It is meaningful only in combination with kind — see
	// the design note against modeling this as an interface/inheritance.
	base  uintptr
	size  int
	limit uintptr // cached base + size

	readerIdx int
	writerIdx int

	log *zap.SugaredLogger
}

// FromArray wraps an existing []byte in heap mode starting at offset for
// length bytes. The returned Buffer aliases b; writes through the Buffer
// are visible in b and vice versa.
func FromArray(b []byte, offset, length int) (*Buffer, error) {
	if b == nil {
		return nil, invalidArgument("nil byte array")
	}
	if offset < 0 || length < 0 || offset+length > len(b) {
		return nil, invalidArgument("offset=%d length=%d exceeds array len=%d", offset, length, len(b))
	}
	buf := &Buffer{
		kind:  storageHeap,
		array: b,
		base:  uintptr(offset),
		size:  length,
	}
	buf.limit = buf.base + uintptr(buf.size)
	return buf, nil
}

// Wrap is a convenience constructor over FromArray. With no further
// arguments it wraps the whole slice; Wrap(b, offset) wraps from offset to
// the end; Wrap(b, offset, length) wraps an explicit sub-range.
func Wrap(b []byte, offsetLength ...int) (*Buffer, error) {
	offset, length := 0, len(b)
	switch len(offsetLength) {
	case 0:
	case 1:
		offset = offsetLength[0]
		length = len(b) - offset
	case 2:
		offset, length = offsetLength[0], offsetLength[1]
	default:
		return nil, invalidArgument("too many arguments to Wrap")
	}
	return FromArray(b, offset, length)
}

// FromNative wraps a raw native memory region in off-heap mode. owner, if
// non-nil, is retained for as long as this Buffer (and any slice or clone
// derived from it) references the memory; it is never freed by Buffer.
func FromNative(address uintptr, size int, owner any) (*Buffer, error) {
	if size < 0 {
		return nil, invalidArgument("negative size=%d", size)
	}
	if address == 0 || address >= MaxAddr-maxI32 {
		return nil, invalidArgument("address %#x out of representable range", address)
	}
	buf := &Buffer{
		kind:  storageOff,
		owner: owner,
		base:  address,
		size:  size,
	}
	buf.limit = buf.base + uintptr(buf.size)
	return buf, nil
}

// AllocateHeap allocates a fresh zeroed heap-mode Buffer of initialSize
// bytes.
func AllocateHeap(initialSize int) *Buffer {
	if initialSize < 0 {
		initialSize = 0
	}
	buf := &Buffer{
		kind:  storageHeap,
		array: make([]byte, initialSize),
		size:  initialSize,
	}
	buf.limit = buf.base + uintptr(buf.size)
	return buf
}

// Allocate is an alias for AllocateHeap, matching the external construction
// surface's naming.
func Allocate(n int) *Buffer { return AllocateHeap(n) }

// AllocateOffHeap allocates an off-heap Buffer of initialSize bytes. The
// backing memory is a page-aligned slice (see AlignedMem) pinned by the
// Buffer itself as its own owner; Go has no manual free, so the memory is
// reclaimed by the garbage collector once the Buffer (and any derived
// slice/clone) becomes unreachable, or explicitly via arena-backed
// allocation (AllocateOffHeapFromArena) which recycles chunks instead.
func AllocateOffHeap(initialSize int) (*Buffer, error) {
	if initialSize < 0 {
		return nil, invalidArgument("negative size=%d", initialSize)
	}
	mem := AlignedMem(initialSize, PageSize)
	addr := uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
	buf, err := FromNative(addr, initialSize, mem)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// PointTo reinitializes an existing Buffer in heap mode over b, without
// reallocating the Buffer's own descriptor. It resets both cursors to 0.
// This exists for glue code (e.g. a streaming adapter) that owns its own
// rebind policy across reads of successive frames.
func (buf *Buffer) PointTo(b []byte, offset, length int) error {
	if b == nil {
		return invalidArgument("nil byte array")
	}
	if offset < 0 || length < 0 || offset+length > len(b) {
		return invalidArgument("offset=%d length=%d exceeds array len=%d", offset, length, len(b))
	}
	buf.kind = storageHeap
	buf.array = b
	buf.owner = nil
	buf.base = uintptr(offset)
	buf.size = length
	buf.limit = buf.base + uintptr(buf.size)
	buf.readerIdx = 0
	buf.writerIdx = 0
	return nil
}

// Close releases this Buffer's reference to its off-heap owner. It is a
// no-op in heap mode. Close does not invalidate the Buffer for reading or
// writing. A plain owner becomes collectable by the GC once no other
// slice/clone still holds it. An owner with a Release method (an Arena
// chunk) is released at once: the chunk goes back to the Arena even while
// slices or clones of this Buffer still reference it.
func (buf *Buffer) Close() error {
	if buf.kind != storageOff {
		return nil
	}
	if rel, ok := buf.owner.(interface{ Release() }); ok {
		rel.Release()
	}
	buf.owner = nil
	return nil
}

// Size returns the logical byte length of the buffer.
func (buf *Buffer) Size() int { return buf.size }

// IsOffHeap reports whether this Buffer is in off-heap storage mode.
func (buf *Buffer) IsOffHeap() bool { return buf.kind == storageOff }

// Array returns the backing []byte in heap mode. It fails with
// IllegalStateError in off-heap mode.
func (buf *Buffer) Array() ([]byte, error) {
	if buf.kind != storageHeap {
		return nil, illegalState("Array: buffer is off-heap")
	}
	return buf.array, nil
}

// Address returns the absolute base address in off-heap mode. It fails
// with IllegalStateError in heap mode.
func (buf *Buffer) Address() (uintptr, error) {
	if buf.kind != storageOff {
		return 0, illegalState("Address: buffer is on-heap")
	}
	return buf.base, nil
}

// ptrAt returns an unsafe.Pointer to byte index within the buffer. Callers
// must have already validated 0 <= index <= size - 1 (or the appropriate
// range for multi-byte access); ptrAt itself never bounds-checks.
func (buf *Buffer) ptrAt(index int) unsafe.Pointer {
	if buf.kind == storageHeap {
		return unsafe.Add(unsafe.Pointer(unsafe.SliceData(buf.array)), buf.base+uintptr(index))
	}
	return unsafe.Pointer(buf.base + uintptr(index))
}

// SetLogger attaches a structured logger used for diagnostic events (grow,
// off-heap to heap promotion, arena exhaustion). A nil logger (the
// default) disables diagnostics entirely at zero cost.
func (buf *Buffer) SetLogger(log *zap.SugaredLogger) { buf.log = log }
