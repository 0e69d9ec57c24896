// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

// CopyFromForeign copies n bytes from src, starting at srcIndex, into this
// buffer at dstIndex. src may be heap or off-heap; the transfer always
// goes through a plain byte copy since both sides already share the same
// addressable-buffer abstraction.
func (buf *Buffer) CopyFromForeign(dstIndex int, src *Buffer, srcIndex, n int) error {
	if err := buf.checkBounds(dstIndex, n); err != nil {
		return err
	}
	if err := src.checkBounds(srcIndex, n); err != nil {
		return ErrBufferUnderflow
	}
	copy(buf.unsafeBytesAt(dstIndex, n), src.unsafeBytesAt(srcIndex, n))
	return nil
}

// CopyToForeign copies n bytes from this buffer, starting at srcIndex,
// into dst at dstIndex.
func (buf *Buffer) CopyToForeign(srcIndex int, dst *Buffer, dstIndex, n int) error {
	if err := buf.checkBounds(srcIndex, n); err != nil {
		return err
	}
	if err := dst.checkBounds(dstIndex, n); err != nil {
		return ErrBufferOverflow
	}
	copy(dst.unsafeBytesAt(dstIndex, n), buf.unsafeBytesAt(srcIndex, n))
	return nil
}

// CopyTo copies n bytes from this buffer, starting at srcIndex, into dst
// at dstIndex. Unlike CopyToForeign, it first checks an off-heap dst's
// base address against its cached limit and fails with ErrBufferFreed if
// the base exceeds it. Close and arena chunk recycling leave base and
// limit unchanged, so a dst whose arena chunk was released does not fail
// this check.
func (buf *Buffer) CopyTo(srcIndex int, dst *Buffer, dstIndex, n int) error {
	if dst.kind == storageOff && dst.base > dst.limit {
		return ErrBufferFreed
	}
	return buf.CopyToForeign(srcIndex, dst, dstIndex, n)
}

// Slice returns a new Buffer that is a view over [offset, offset+length)
// of this buffer's storage. The returned Buffer shares the same backing
// memory and, in off-heap mode, the same owner reference — the memory
// stays pinned for as long as either Buffer (or any further slice/clone)
// is reachable. With no length argument the slice runs to the end.
func (buf *Buffer) Slice(offset int, length ...int) (*Buffer, error) {
	l := buf.size - offset
	switch len(length) {
	case 0:
	case 1:
		l = length[0]
	default:
		return nil, invalidArgument("too many arguments to Slice")
	}
	if offset < 0 || l < 0 || offset+l > buf.size {
		return nil, invalidArgument("offset=%d length=%d exceeds size=%d", offset, l, buf.size)
	}
	out := &Buffer{
		kind: buf.kind,
		size: l,
		log:  buf.log,
	}
	switch buf.kind {
	case storageHeap:
		out.array = buf.array
		out.base = buf.base + uintptr(offset)
	case storageOff:
		out.owner = buf.owner
		out.base = buf.base + uintptr(offset)
	}
	out.limit = out.base + uintptr(out.size)
	return out, nil
}

// SliceAsForeignByteBuffer is like Slice, but returns the view as a
// ForeignByteBuffer — a direct/heap duality mirroring the accessor shape
// that interop with a foreign byte-buffer API expects (see foreign.go).
func (buf *Buffer) SliceAsForeignByteBuffer(offset int, length ...int) (*ForeignByteBuffer, error) {
	s, err := buf.Slice(offset, length...)
	if err != nil {
		return nil, err
	}
	return NewForeignByteBuffer(s), nil
}

// CloneReference returns a new Buffer describing the exact same storage
// range as this one — same kind, base, size, and (in off-heap mode) owner
// — but with its own independent reader/writer cursors reset to zero.
// This is equivalent to Slice(0) but documents the common "reset cursors,
// keep the data" use case explicitly.
func (buf *Buffer) CloneReference() *Buffer {
	clone, _ := buf.Slice(0)
	return clone
}

// EqualTo reports whether the length-byte range of this buffer starting at
// off1 is byte-for-byte identical to the length-byte range of other
// starting at off2, short-circuiting on the first mismatch.
func (buf *Buffer) EqualTo(other *Buffer, off1, off2, length int) bool {
	return buf.Compare(other, off1, off2, length) == 0
}

// Compare performs an unsigned, byte-wise lexicographic comparison of this
// buffer's range [off1, off1+length) against other's range
// [off2, off2+length), using 8 bytes at a time via a big-endian
// unsigned-safe comparison trick: for two raw 64-bit lanes a, b compared
// as big-endian bit patterns, ordering is recovered from the signed
// comparison via (a<b) ^ (a<0) ^ (b<0), which corrects for the sign bit
// without a separate unsigned comparison path. Returns a negative number,
// 0, or a positive number, following the standard bytes.Compare
// convention. If either range runs short of length (off+length exceeds
// that buffer's size), the comparison is truncated to what is actually
// available and the buffer with less available data compares as lesser,
// mirroring bytes.Compare's treatment of a truncated slice.
func (buf *Buffer) Compare(other *Buffer, off1, off2, length int) int {
	avail1 := buf.size - off1
	if avail1 < 0 {
		avail1 = 0
	}
	avail2 := other.size - off2
	if avail2 < 0 {
		avail2 = 0
	}
	n := length
	if avail1 < n {
		n = avail1
	}
	if avail2 < n {
		n = avail2
	}
	i := 0
	for ; i+8 <= n; i += 8 {
		a := buf.UnsafeGetInt64Big(off1 + i)
		b := other.UnsafeGetInt64Big(off2 + i)
		if a != b {
			if unsignedLess64(a, b) {
				return -1
			}
			return 1
		}
	}
	for ; i < n; i++ {
		a := buf.UnsafeGetInt8(off1 + i)
		b := other.UnsafeGetInt8(off2 + i)
		if a != b {
			if uint8(a) < uint8(b) {
				return -1
			}
			return 1
		}
	}
	if n == length {
		return 0
	}
	switch {
	case avail1 < avail2:
		return -1
	case avail1 > avail2:
		return 1
	default:
		return 0
	}
}

// unsignedLess64 reports whether a < b when both are interpreted as
// unsigned 64-bit values, given their signed int64 bit patterns.
func unsignedLess64(a, b int64) bool {
	return (a < b) != (a < 0) != (b < 0)
}
