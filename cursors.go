// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

// ReaderIndex returns the current read cursor.
func (buf *Buffer) ReaderIndex() int { return buf.readerIdx }

// WriterIndex returns the current write cursor.
func (buf *Buffer) WriterIndex() int { return buf.writerIdx }

// Remaining returns the number of unread bytes ahead of the read cursor.
func (buf *Buffer) Remaining() int { return buf.size - buf.readerIdx }

// SetReaderIndex moves the read cursor to n, failing with OutOfBoundsError
// if n is outside [0, size].
func (buf *Buffer) SetReaderIndex(n int) error {
	if n < 0 || n > buf.size {
		return outOfBounds(n, 0, buf.size)
	}
	buf.readerIdx = n
	return nil
}

// SetWriterIndex moves the write cursor to n, failing with OutOfBoundsError
// if n is outside [0, size].
func (buf *Buffer) SetWriterIndex(n int) error {
	if n < 0 || n > buf.size {
		return outOfBounds(n, 0, buf.size)
	}
	buf.writerIdx = n
	return nil
}

// IncreaseReaderIndex advances the read cursor by delta, bounds-checked.
func (buf *Buffer) IncreaseReaderIndex(delta int) error {
	return buf.SetReaderIndex(buf.readerIdx + delta)
}

// IncreaseReaderIndexUnsafe advances the read cursor by delta without
// bounds checking. Callers must have just issued a matching read/grow.
func (buf *Buffer) IncreaseReaderIndexUnsafe(delta int) {
	buf.readerIdx += delta
}

// IncreaseWriterIndex advances the write cursor by delta, bounds-checked.
func (buf *Buffer) IncreaseWriterIndex(delta int) error {
	return buf.SetWriterIndex(buf.writerIdx + delta)
}

// IncreaseWriterIndexUnsafe advances the write cursor by delta without
// bounds checking. Callers must have just issued a matching ensure/write.
func (buf *Buffer) IncreaseWriterIndexUnsafe(delta int) {
	buf.writerIdx += delta
}

// ensure guarantees that at least l bytes are addressable (size >= l),
// growing and promoting off-heap storage to heap storage as needed.
// Growth is at least doubling to amortize repeated small writes; bytes in
// [0, old size) are preserved. Off-heap Buffers promote to heap mode
// one-way: ensure never demotes heap storage back to off-heap.
func (buf *Buffer) ensure(l int) {
	if l <= buf.size {
		return
	}
	newSize := l * 2
	newArray := make([]byte, newSize)
	switch buf.kind {
	case storageHeap:
		base := int(buf.base)
		copy(newArray, buf.array[base:base+buf.size])
	case storageOff:
		copy(newArray, buf.unsafeBytesAt(0, buf.size))
	}

	if buf.log != nil && buf.kind == storageOff {
		buf.log.Debugw("off-heap buffer promoted to heap on grow",
			"oldSize", buf.size, "newSize", newSize)
	} else if buf.log != nil {
		buf.log.Debugw("buffer grown", "oldSize", buf.size, "newSize", newSize)
	}

	buf.kind = storageHeap
	buf.array = newArray
	buf.owner = nil
	buf.base = 0
	buf.size = newSize
	buf.limit = uintptr(newSize)
}

// --- sequential writes ----------------------------------------------------

func (buf *Buffer) WriteBool(v bool) {
	buf.ensure(buf.writerIdx + 1)
	buf.UnsafePutBool(buf.writerIdx, v)
	buf.writerIdx++
}

func (buf *Buffer) WriteByte(v byte) {
	buf.ensure(buf.writerIdx + 1)
	buf.UnsafePutInt8(buf.writerIdx, int8(v))
	buf.writerIdx++
}

func (buf *Buffer) WriteInt8(v int8) {
	buf.ensure(buf.writerIdx + 1)
	buf.UnsafePutInt8(buf.writerIdx, v)
	buf.writerIdx++
}

func (buf *Buffer) WriteChar(v uint16) {
	buf.ensure(buf.writerIdx + 2)
	buf.UnsafePutChar(buf.writerIdx, v)
	buf.writerIdx += 2
}

func (buf *Buffer) WriteShort(v int16) {
	buf.ensure(buf.writerIdx + 2)
	buf.UnsafePutInt16(buf.writerIdx, v)
	buf.writerIdx += 2
}

func (buf *Buffer) WriteInt(v int32) {
	buf.ensure(buf.writerIdx + 4)
	buf.UnsafePutInt32(buf.writerIdx, v)
	buf.writerIdx += 4
}

func (buf *Buffer) WriteLong(v int64) {
	buf.ensure(buf.writerIdx + 8)
	buf.UnsafePutInt64(buf.writerIdx, v)
	buf.writerIdx += 8
}

func (buf *Buffer) WriteFloat(v float32) {
	buf.ensure(buf.writerIdx + 4)
	buf.UnsafePutFloat32(buf.writerIdx, v)
	buf.writerIdx += 4
}

func (buf *Buffer) WriteDouble(v float64) {
	buf.ensure(buf.writerIdx + 8)
	buf.UnsafePutFloat64(buf.writerIdx, v)
	buf.writerIdx += 8
}

// WriteBytes appends b (or a sub-range of it) at the write cursor, growing
// the buffer as needed.
func (buf *Buffer) WriteBytes(b []byte, offLen ...int) error {
	off, n := 0, len(b)
	switch len(offLen) {
	case 0:
	case 1:
		off = offLen[0]
		n = len(b) - off
	case 2:
		off, n = offLen[0], offLen[1]
	default:
		return invalidArgument("too many arguments to WriteBytes")
	}
	if off < 0 || n < 0 || off+n > len(b) {
		return invalidArgument("offset=%d length=%d exceeds slice len=%d", off, n, len(b))
	}
	buf.ensure(buf.writerIdx + n)
	copy(buf.unsafeBytesAt(buf.writerIdx, n), b[off:off+n])
	buf.writerIdx += n
	return nil
}

// --- sequential reads -------------------------------------------------

func (buf *Buffer) ReadBool() (bool, error) {
	if err := buf.checkReadable(1); err != nil {
		return false, err
	}
	v := buf.UnsafeGetBool(buf.readerIdx)
	buf.readerIdx++
	return v, nil
}

func (buf *Buffer) ReadByte() (byte, error) {
	if err := buf.checkReadable(1); err != nil {
		return 0, err
	}
	v := byte(buf.UnsafeGetInt8(buf.readerIdx))
	buf.readerIdx++
	return v, nil
}

func (buf *Buffer) ReadInt8() (int8, error) {
	if err := buf.checkReadable(1); err != nil {
		return 0, err
	}
	v := buf.UnsafeGetInt8(buf.readerIdx)
	buf.readerIdx++
	return v, nil
}

func (buf *Buffer) ReadChar() (uint16, error) {
	if err := buf.checkReadable(2); err != nil {
		return 0, err
	}
	v := buf.UnsafeGetChar(buf.readerIdx)
	buf.readerIdx += 2
	return v, nil
}

func (buf *Buffer) ReadShort() (int16, error) {
	if err := buf.checkReadable(2); err != nil {
		return 0, err
	}
	v := buf.UnsafeGetInt16(buf.readerIdx)
	buf.readerIdx += 2
	return v, nil
}

func (buf *Buffer) ReadInt() (int32, error) {
	if err := buf.checkReadable(4); err != nil {
		return 0, err
	}
	v := buf.UnsafeGetInt32(buf.readerIdx)
	buf.readerIdx += 4
	return v, nil
}

func (buf *Buffer) ReadLong() (int64, error) {
	if err := buf.checkReadable(8); err != nil {
		return 0, err
	}
	v := buf.UnsafeGetInt64(buf.readerIdx)
	buf.readerIdx += 8
	return v, nil
}

func (buf *Buffer) ReadFloat() (float32, error) {
	if err := buf.checkReadable(4); err != nil {
		return 0, err
	}
	v := buf.UnsafeGetFloat32(buf.readerIdx)
	buf.readerIdx += 4
	return v, nil
}

func (buf *Buffer) ReadDouble() (float64, error) {
	if err := buf.checkReadable(8); err != nil {
		return 0, err
	}
	v := buf.UnsafeGetFloat64(buf.readerIdx)
	buf.readerIdx += 8
	return v, nil
}

// ReadBytes reads exactly n bytes starting at the read cursor into a
// freshly allocated slice.
func (buf *Buffer) ReadBytes(n int) ([]byte, error) {
	if err := buf.checkReadable(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, buf.unsafeBytesAt(buf.readerIdx, n))
	buf.readerIdx += n
	return out, nil
}

// checkReadable validates that n bytes are available ahead of the read
// cursor, using the same subtraction-form comparison as checkBounds but
// bounded by writerIdx rather than size: size is the buffer's addressable
// capacity and can exceed writerIdx after ensure doubles it on growth, so
// bounding against size would let a Read* walk past written data into
// uninitialized-but-allocated memory.
func (buf *Buffer) checkReadable(n int) error {
	if !BoundsCheckingEnabled {
		return nil
	}
	if n < 0 || buf.readerIdx > buf.writerIdx-n {
		return outOfBounds(buf.readerIdx, n, buf.writerIdx)
	}
	return nil
}
