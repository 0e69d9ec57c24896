// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

import "math"

// Variable-length integer codecs tuned for the serialization wire format.
// All six encodings below must interoperate bit-exactly with other
// language implementations of the same wire protocol.

// --- positive varint (1-5 bytes, u32) ------------------------------------

// WritePositiveVarInt32 writes v as a little-endian stream of 7-bit groups
// (LSB group first); a byte's high bit set means another byte follows. The
// fifth byte, if needed, carries the top 4 bits and always has its high
// bit clear. Returns the number of bytes written.
func (buf *Buffer) WritePositiveVarInt32(v uint32) int {
	buf.ensure(buf.writerIdx + 8)
	n := 0
	for {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			buf.UnsafePutInt8(buf.writerIdx+n, int8(b|0x80))
			n++
			continue
		}
		buf.UnsafePutInt8(buf.writerIdx+n, int8(b))
		n++
		break
	}
	buf.writerIdx += n
	return n
}

// ReadPositiveVarInt32 decodes a value written by WritePositiveVarInt32.
func (buf *Buffer) ReadPositiveVarInt32() (uint32, error) {
	var v uint32
	for i := 0; i < 5; i++ {
		if err := buf.checkReadable(1); err != nil {
			return 0, err
		}
		b := byte(buf.UnsafeGetInt8(buf.readerIdx))
		buf.readerIdx++
		v |= uint32(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	return 0, invalidArgument("positive varint32 exceeds 5 bytes")
}

// --- zig-zag varint (1-5 bytes, i32) --------------------------------------

// WriteVarInt32 zig-zag encodes v — (v<<1) ^ (v>>31), arithmetic shift —
// then writes it as a positive varint, keeping small-magnitude negatives
// short.
func (buf *Buffer) WriteVarInt32(v int32) int {
	zig := uint32(v<<1) ^ uint32(v>>31)
	return buf.WritePositiveVarInt32(zig)
}

// ReadVarInt32 decodes a value written by WriteVarInt32.
func (buf *Buffer) ReadVarInt32() (int32, error) {
	r, err := buf.ReadPositiveVarInt32()
	if err != nil {
		return 0, err
	}
	return int32(r>>1) ^ -int32(r&1), nil
}

// --- positive var-long (1-9 bytes, u64) -----------------------------------

// WritePositiveVarInt64 extends the 7-bit-group scheme to 64 bits. The 9th
// byte, if needed, stores the final 8 bits verbatim with no continuation
// flag — it is known to be the last by position alone.
func (buf *Buffer) WritePositiveVarInt64(v uint64) int {
	buf.ensure(buf.writerIdx + 9)
	n := 0
	for n < 8 {
		b := byte(v & 0x7F)
		v >>= 7
		if v != 0 {
			buf.UnsafePutInt8(buf.writerIdx+n, int8(b|0x80))
			n++
			continue
		}
		buf.UnsafePutInt8(buf.writerIdx+n, int8(b))
		n++
		buf.writerIdx += n
		return n
	}
	buf.UnsafePutInt8(buf.writerIdx+n, int8(v&0xFF))
	n++
	buf.writerIdx += n
	return n
}

// ReadPositiveVarInt64 decodes a value written by WritePositiveVarInt64.
func (buf *Buffer) ReadPositiveVarInt64() (uint64, error) {
	var v uint64
	for i := 0; i < 8; i++ {
		if err := buf.checkReadable(1); err != nil {
			return 0, err
		}
		b := byte(buf.UnsafeGetInt8(buf.readerIdx))
		buf.readerIdx++
		v |= uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			return v, nil
		}
	}
	if err := buf.checkReadable(1); err != nil {
		return 0, err
	}
	b := byte(buf.UnsafeGetInt8(buf.readerIdx))
	buf.readerIdx++
	v |= uint64(b) << 56
	return v, nil
}

// --- zig-zag var-long (1-9 bytes, i64) ------------------------------------

// WriteVarInt64 zig-zag encodes v — (v<<1) ^ (v>>63) — then writes it as a
// positive var-long.
func (buf *Buffer) WriteVarInt64(v int64) int {
	zig := uint64(v<<1) ^ uint64(v>>63)
	return buf.WritePositiveVarInt64(zig)
}

// ReadVarInt64 decodes a value written by WriteVarInt64.
func (buf *Buffer) ReadVarInt64() (int64, error) {
	r, err := buf.ReadPositiveVarInt64()
	if err != nil {
		return 0, err
	}
	return int64(r>>1) ^ -int64(r&1), nil
}

// --- SLI (small long as int) long ----------------------------------------

const (
	sliMin = math.MinInt32 / 2
	sliMax = math.MaxInt32 / 2
)

// WriteSliInt64 writes v in its compact "small long as int" form: if v is
// within [MinInt32/2, MaxInt32/2], it emits 4 little-endian bytes of
// int32(v)<<1 (low bit 0 marks the int form); otherwise it emits a 1-byte
// flag (low bit 1) followed by 8 little-endian bytes of the full int64.
// Returns the number of bytes written (4 or 9).
func (buf *Buffer) WriteSliInt64(v int64) int {
	if v >= sliMin && v <= sliMax {
		buf.ensure(buf.writerIdx + 4)
		buf.UnsafePutInt32(buf.writerIdx, int32(v)<<1)
		buf.writerIdx += 4
		return 4
	}
	buf.ensure(buf.writerIdx + 9)
	buf.UnsafePutInt8(buf.writerIdx, 1)
	buf.UnsafePutInt64(buf.writerIdx+1, v)
	buf.writerIdx += 9
	return 9
}

// ReadSliInt64 decodes a value written by WriteSliInt64 by peeking the
// first byte's low bit: 0 selects the 4-byte int form (sign-extending
// arithmetic right shift by 1 of the little-endian int32), 1 selects the
// 9-byte long form.
func (buf *Buffer) ReadSliInt64() (int64, error) {
	if err := buf.checkReadable(1); err != nil {
		return 0, err
	}
	flag := byte(buf.UnsafeGetInt8(buf.readerIdx))
	if flag&1 == 0 {
		if err := buf.checkReadable(4); err != nil {
			return 0, err
		}
		iv := buf.UnsafeGetInt32(buf.readerIdx)
		buf.readerIdx += 4
		return int64(iv >> 1), nil
	}
	if err := buf.checkReadable(9); err != nil {
		return 0, err
	}
	buf.readerIdx++
	v := buf.UnsafeGetInt64(buf.readerIdx)
	buf.readerIdx += 8
	return v, nil
}

// --- aligned positive varint (1-9 bytes, u32) -----------------------------
//
// Encodes v using at most 6 payload bytes of 6 bits each, then pads so the
// writer index ends at a 4-byte boundary. Per byte:
//
//	bit 7 set                  -> another DATA byte follows
//	bit 7 clear, bit 6 clear   -> another PADDING byte follows
//	bit 7 clear, bit 6 set     -> terminator
//
// The last data byte has bit 7 clear. When the data bytes already end on a
// 4-byte boundary, it also has bit 6 set and is itself the terminator.
// Otherwise trailing = 4 - ((writer_index + data_bytes) mod 4) bytes follow
// it (1-3, writer_index being the position of the first data byte): zero
// padding bytes and a final 0x40 terminator. The decoder accepts at most 3
// consecutive padding bytes before the terminator; a 4th is rejected as
// InvalidArgument.
func (buf *Buffer) WritePositiveVarInt32Aligned(v uint32) int {
	var chunks [6]byte
	n := 0
	tmp := v
	for {
		chunks[n] = byte(tmp & 0x3F)
		tmp >>= 6
		n++
		if tmp == 0 || n == 6 {
			break
		}
	}
	dataBytes := n

	trailing := (4 - (buf.writerIdx+dataBytes)%4) % 4
	total := dataBytes + trailing
	buf.ensure(buf.writerIdx + total)

	for i := 0; i < dataBytes-1; i++ {
		buf.UnsafePutInt8(buf.writerIdx+i, int8(chunks[i]|0x80))
	}
	if trailing == 0 {
		buf.UnsafePutInt8(buf.writerIdx+dataBytes-1, int8(chunks[dataBytes-1]|0x40))
	} else {
		buf.UnsafePutInt8(buf.writerIdx+dataBytes-1, int8(chunks[dataBytes-1]))
		for i := 0; i < trailing-1; i++ {
			buf.UnsafePutInt8(buf.writerIdx+dataBytes+i, 0x00)
		}
		buf.UnsafePutInt8(buf.writerIdx+total-1, 0x40)
	}

	buf.writerIdx += total
	return total
}

// ReadPositiveVarInt32Aligned decodes a value written by
// WritePositiveVarInt32Aligned, advancing the reader by exactly the
// number of bytes that were written.
func (buf *Buffer) ReadPositiveVarInt32Aligned() (uint32, error) {
	var v uint32
	shift := 0
	for {
		if err := buf.checkReadable(1); err != nil {
			return 0, err
		}
		b := byte(buf.UnsafeGetInt8(buf.readerIdx))
		buf.readerIdx++
		if b&0x80 != 0 {
			v |= uint32(b&0x3F) << shift
			shift += 6
			continue
		}
		// Last data byte.
		v |= uint32(b&0x3F) << shift
		if b&0x40 != 0 {
			return v, nil
		}
		break
	}
	// Skip padding bytes, then consume the terminator.
	for padCount := 0; ; padCount++ {
		if err := buf.checkReadable(1); err != nil {
			return 0, err
		}
		b := byte(buf.UnsafeGetInt8(buf.readerIdx))
		buf.readerIdx++
		if b&0x40 != 0 {
			return v, nil
		}
		if padCount >= 3 {
			return 0, invalidArgument("aligned varint32: 4th consecutive padding byte")
		}
	}
}
