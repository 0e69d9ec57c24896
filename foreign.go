// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

// ForeignByteBuffer adapts a Buffer to the position/limit/capacity
// interaction style of a foreign byte-buffer API (the duality between a
// direct, off-heap-backed buffer and a heap-backed one). It is a thin
// position-tracking view: all storage and bounds-checking still flows
// through the underlying Buffer.
type ForeignByteBuffer struct {
	buf      *Buffer
	position int
	limit    int
	readOnly bool
}

// NewForeignByteBuffer wraps buf as a ForeignByteBuffer with position 0
// and limit set to the buffer's full size.
func NewForeignByteBuffer(buf *Buffer) *ForeignByteBuffer {
	return &ForeignByteBuffer{buf: buf, position: 0, limit: buf.Size()}
}

// FromForeignByteBuffer constructs a Buffer backed by fb's underlying
// storage over its current [position, limit) range: off-heap if fb is
// direct, pinning fb's owner as the new Buffer's foreign owner; heap mode
// otherwise, sharing fb's backing array at the corresponding offset. This
// is the inverse of NewForeignByteBuffer/SliceAsForeignByteBuffer.
func FromForeignByteBuffer(fb *ForeignByteBuffer) (*Buffer, error) {
	if fb == nil || fb.buf == nil {
		return nil, invalidArgument("FromForeignByteBuffer: nil foreign byte buffer")
	}
	return fb.buf.Slice(fb.position, fb.limit-fb.position)
}

// IsDirect reports whether the underlying storage is off-heap.
func (f *ForeignByteBuffer) IsDirect() bool { return f.buf.IsOffHeap() }

// Capacity returns the underlying buffer's total size.
func (f *ForeignByteBuffer) Capacity() int { return f.buf.Size() }

// Position returns the current read/write cursor.
func (f *ForeignByteBuffer) Position() int { return f.position }

// Limit returns the current limit; reads/writes never cross it.
func (f *ForeignByteBuffer) Limit() int { return f.limit }

// Remaining returns Limit() - Position().
func (f *ForeignByteBuffer) Remaining() int { return f.limit - f.position }

// SetPosition moves the cursor, failing if outside [0, limit].
func (f *ForeignByteBuffer) SetPosition(n int) error {
	if n < 0 || n > f.limit {
		return outOfBounds(n, 0, f.limit)
	}
	f.position = n
	return nil
}

// SetLimit sets a new limit, failing if outside [0, capacity]. If the
// position now exceeds the new limit, it is pulled back to it.
func (f *ForeignByteBuffer) SetLimit(n int) error {
	if n < 0 || n > f.buf.Size() {
		return outOfBounds(n, 0, f.buf.Size())
	}
	f.limit = n
	if f.position > f.limit {
		f.position = f.limit
	}
	return nil
}

// Rewind resets position to 0, keeping the current limit.
func (f *ForeignByteBuffer) Rewind() { f.position = 0 }

// Clear resets position to 0 and limit to capacity.
func (f *ForeignByteBuffer) Clear() {
	f.position = 0
	f.limit = f.buf.Size()
}

// IsReadOnly reports whether Put is rejected on this view.
func (f *ForeignByteBuffer) IsReadOnly() bool { return f.readOnly }

// AsReadOnlyBuffer returns a duplicate of f whose Put always fails with
// ReadOnlyError, mirroring a foreign byte-buffer's read-only view of a
// direct region that the caller does not own write access to.
func (f *ForeignByteBuffer) AsReadOnlyBuffer() *ForeignByteBuffer {
	dup := f.Duplicate()
	dup.readOnly = true
	return dup
}

// Get reads the next byte and advances position.
func (f *ForeignByteBuffer) Get() (byte, error) {
	if f.position >= f.limit {
		return 0, ErrBufferUnderflow
	}
	v, err := f.buf.GetInt8(f.position)
	if err != nil {
		return 0, err
	}
	f.position++
	return byte(v), nil
}

// Put writes a byte at position and advances it. It fails with
// ReadOnlyError on a view obtained from AsReadOnlyBuffer.
func (f *ForeignByteBuffer) Put(v byte) error {
	if f.readOnly {
		return &ReadOnlyError{}
	}
	if f.position >= f.limit {
		return ErrBufferOverflow
	}
	if err := f.buf.PutInt8(f.position, int8(v)); err != nil {
		return err
	}
	f.position++
	return nil
}

// Buffer returns the underlying Buffer.
func (f *ForeignByteBuffer) Buffer() *Buffer { return f.buf }

// Duplicate returns a new ForeignByteBuffer sharing the same underlying
// Buffer and storage, but with independent position, limit, and
// read-only flag.
func (f *ForeignByteBuffer) Duplicate() *ForeignByteBuffer {
	return &ForeignByteBuffer{buf: f.buf, position: f.position, limit: f.limit, readOnly: f.readOnly}
}
