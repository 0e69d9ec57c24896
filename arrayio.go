// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

// Helpers for writing/reading a primitive array prefixed by its own
// element count, encoded as a variable-length integer. The count is what
// "size embedded" refers to throughout this file — it is read back by
// the matching Read*WithSizeEmbedded call, so callers never need to pass
// a separate length out of band.

// WritePrimitiveArrayWithSizeEmbedded writes len(b) as a positive varint
// followed by the raw bytes of b. WriteBytesWithSizeEmbedded is an alias
// for it; the other typed specializations below write their own elements.
func (buf *Buffer) WritePrimitiveArrayWithSizeEmbedded(b []byte) int {
	n := buf.WritePositiveVarInt32(uint32(len(b)))
	if err := buf.WriteBytes(b); err != nil {
		return n
	}
	return n + len(b)
}

// ReadBytesWithSizeEmbedded reads a varint-prefixed byte array previously
// written by WritePrimitiveArrayWithSizeEmbedded or WriteBytesWithSizeEmbedded.
func (buf *Buffer) ReadBytesWithSizeEmbedded() ([]byte, error) {
	n, err := buf.ReadPositiveVarInt32()
	if err != nil {
		return nil, err
	}
	return buf.ReadBytes(int(n))
}

// WriteBytesWithSizeEmbedded is an explicit alias of
// WritePrimitiveArrayWithSizeEmbedded for symmetry with the other typed
// specializations.
func (buf *Buffer) WriteBytesWithSizeEmbedded(b []byte) int {
	return buf.WritePrimitiveArrayWithSizeEmbedded(b)
}

// WriteCharsWithSizeEmbedded writes len(v) as a positive varint followed
// by each element little-endian.
func (buf *Buffer) WriteCharsWithSizeEmbedded(v []uint16) int {
	n := buf.WritePositiveVarInt32(uint32(len(v)))
	buf.ensure(buf.writerIdx + len(v)*2)
	for _, c := range v {
		buf.UnsafePutChar(buf.writerIdx, c)
		buf.writerIdx += 2
	}
	return n + len(v)*2
}

// ReadCharsWithSizeEmbedded reads a varint-prefixed uint16 array.
func (buf *Buffer) ReadCharsWithSizeEmbedded() ([]uint16, error) {
	n, err := buf.ReadPositiveVarInt32()
	if err != nil {
		return nil, err
	}
	if err := buf.checkReadable(int(n) * 2); err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		out[i] = buf.UnsafeGetChar(buf.readerIdx)
		buf.readerIdx += 2
	}
	return out, nil
}

// WriteIntsWithSizeEmbedded writes len(v) as a positive varint followed
// by each element little-endian.
func (buf *Buffer) WriteIntsWithSizeEmbedded(v []int32) int {
	n := buf.WritePositiveVarInt32(uint32(len(v)))
	buf.ensure(buf.writerIdx + len(v)*4)
	for _, x := range v {
		buf.UnsafePutInt32(buf.writerIdx, x)
		buf.writerIdx += 4
	}
	return n + len(v)*4
}

// ReadIntsWithSizeEmbedded reads a varint-prefixed int32 array.
func (buf *Buffer) ReadIntsWithSizeEmbedded() ([]int32, error) {
	n, err := buf.ReadPositiveVarInt32()
	if err != nil {
		return nil, err
	}
	if err := buf.checkReadable(int(n) * 4); err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = buf.UnsafeGetInt32(buf.readerIdx)
		buf.readerIdx += 4
	}
	return out, nil
}

// WriteLongsWithSizeEmbedded writes len(v) as a positive varint followed
// by each element little-endian.
func (buf *Buffer) WriteLongsWithSizeEmbedded(v []int64) int {
	n := buf.WritePositiveVarInt32(uint32(len(v)))
	buf.ensure(buf.writerIdx + len(v)*8)
	for _, x := range v {
		buf.UnsafePutInt64(buf.writerIdx, x)
		buf.writerIdx += 8
	}
	return n + len(v)*8
}

// ReadLongsWithSizeEmbedded reads a varint-prefixed int64 array.
func (buf *Buffer) ReadLongsWithSizeEmbedded() ([]int64, error) {
	n, err := buf.ReadPositiveVarInt32()
	if err != nil {
		return nil, err
	}
	if err := buf.checkReadable(int(n) * 8); err != nil {
		return nil, err
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = buf.UnsafeGetInt64(buf.readerIdx)
		buf.readerIdx += 8
	}
	return out, nil
}

// WriteFloatsWithSizeEmbedded writes len(v) as a positive varint followed
// by each element's raw bit pattern, little-endian.
func (buf *Buffer) WriteFloatsWithSizeEmbedded(v []float32) int {
	n := buf.WritePositiveVarInt32(uint32(len(v)))
	buf.ensure(buf.writerIdx + len(v)*4)
	for _, x := range v {
		buf.UnsafePutFloat32(buf.writerIdx, x)
		buf.writerIdx += 4
	}
	return n + len(v)*4
}

// ReadFloatsWithSizeEmbedded reads a varint-prefixed float32 array.
func (buf *Buffer) ReadFloatsWithSizeEmbedded() ([]float32, error) {
	n, err := buf.ReadPositiveVarInt32()
	if err != nil {
		return nil, err
	}
	if err := buf.checkReadable(int(n) * 4); err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = buf.UnsafeGetFloat32(buf.readerIdx)
		buf.readerIdx += 4
	}
	return out, nil
}

// WriteDoublesWithSizeEmbedded writes len(v) as a positive varint followed
// by each element's raw bit pattern, little-endian.
func (buf *Buffer) WriteDoublesWithSizeEmbedded(v []float64) int {
	n := buf.WritePositiveVarInt32(uint32(len(v)))
	buf.ensure(buf.writerIdx + len(v)*8)
	for _, x := range v {
		buf.UnsafePutFloat64(buf.writerIdx, x)
		buf.writerIdx += 8
	}
	return n + len(v)*8
}

// ReadDoublesWithSizeEmbedded reads a varint-prefixed float64 array.
func (buf *Buffer) ReadDoublesWithSizeEmbedded() ([]float64, error) {
	n, err := buf.ReadPositiveVarInt32()
	if err != nil {
		return nil, err
	}
	if err := buf.checkReadable(int(n) * 8); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = buf.UnsafeGetFloat64(buf.readerIdx)
		buf.readerIdx += 8
	}
	return out, nil
}

// --- aligned-size variants -------------------------------------------------
//
// These use the 4-byte-aligned varint codec for the length prefix instead
// of the plain varint, leaving the payload itself starting on a 4-byte
// boundary — useful when the payload will subsequently be reinterpreted
// in place as a native typed array.

// WriteBytesWithSizeEmbeddedAligned writes len(b) as a 4-byte-aligned
// positive varint followed by the raw bytes of b.
func (buf *Buffer) WriteBytesWithSizeEmbeddedAligned(b []byte) int {
	n := buf.WritePositiveVarInt32Aligned(uint32(len(b)))
	if err := buf.WriteBytes(b); err != nil {
		return n
	}
	return n + len(b)
}

// ReadBytesWithSizeEmbeddedAligned reads a byte array previously written
// by WriteBytesWithSizeEmbeddedAligned.
func (buf *Buffer) ReadBytesWithSizeEmbeddedAligned() ([]byte, error) {
	n, err := buf.ReadPositiveVarInt32Aligned()
	if err != nil {
		return nil, err
	}
	return buf.ReadBytes(int(n))
}

// WriteIntsWithSizeEmbeddedAligned writes len(v) as a 4-byte-aligned
// positive varint followed by each element little-endian.
func (buf *Buffer) WriteIntsWithSizeEmbeddedAligned(v []int32) int {
	n := buf.WritePositiveVarInt32Aligned(uint32(len(v)))
	buf.ensure(buf.writerIdx + len(v)*4)
	for _, x := range v {
		buf.UnsafePutInt32(buf.writerIdx, x)
		buf.writerIdx += 4
	}
	return n + len(v)*4
}

// ReadIntsWithSizeEmbeddedAligned reads an int32 array previously written
// by WriteIntsWithSizeEmbeddedAligned.
func (buf *Buffer) ReadIntsWithSizeEmbeddedAligned() ([]int32, error) {
	n, err := buf.ReadPositiveVarInt32Aligned()
	if err != nil {
		return nil, err
	}
	if err := buf.checkReadable(int(n) * 4); err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = buf.UnsafeGetInt32(buf.readerIdx)
		buf.readerIdx += 4
	}
	return out, nil
}
