// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

import (
	"math"
	"unsafe"
)

// checkBounds validates that [index, index+need) lies within [0, size).
// The comparison is formulated as a subtraction (index > size - need)
// rather than (index+need > size) to avoid signed-overflow false negatives
// when index and need are both near MaxInt.
func (buf *Buffer) checkBounds(index, need int) error {
	if index < 0 || need < 0 || index > buf.size-need {
		return outOfBounds(index, need, buf.size)
	}
	return nil
}

// --- bool -------------------------------------------------------------

// UnsafeGetBool reads a bool at index without bounds checking.
func (buf *Buffer) UnsafeGetBool(index int) bool {
	return *(*byte)(buf.ptrAt(index)) != 0
}

// UnsafePutBool writes a bool at index without bounds checking.
func (buf *Buffer) UnsafePutBool(index int, v bool) {
	var b byte
	if v {
		b = 1
	}
	*(*byte)(buf.ptrAt(index)) = b
}

// GetBool reads a bool at index, bounds-checked when BoundsCheckingEnabled.
func (buf *Buffer) GetBool(index int) (bool, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 1); err != nil {
			return false, err
		}
	}
	return buf.UnsafeGetBool(index), nil
}

// PutBool writes a bool at index, bounds-checked when BoundsCheckingEnabled.
func (buf *Buffer) PutBool(index int, v bool) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 1); err != nil {
			return err
		}
	}
	buf.UnsafePutBool(index, v)
	return nil
}

// --- int8/byte ----------------------------------------------------------

func (buf *Buffer) UnsafeGetInt8(index int) int8 {
	return *(*int8)(buf.ptrAt(index))
}

func (buf *Buffer) UnsafePutInt8(index int, v int8) {
	*(*int8)(buf.ptrAt(index)) = v
}

func (buf *Buffer) GetInt8(index int) (int8, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 1); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetInt8(index), nil
}

func (buf *Buffer) PutInt8(index int, v int8) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 1); err != nil {
			return err
		}
	}
	buf.UnsafePutInt8(index, v)
	return nil
}

// --- int16 / uint16 (char) ----------------------------------------------

func (buf *Buffer) UnsafeGetInt16(index int) int16 {
	raw := *(*uint16)(buf.ptrAt(index))
	return int16(toLE16(raw))
}

func (buf *Buffer) UnsafePutInt16(index int, v int16) {
	*(*uint16)(buf.ptrAt(index)) = toLE16(uint16(v))
}

func (buf *Buffer) UnsafeGetInt16Native(index int) int16 {
	return *(*int16)(buf.ptrAt(index))
}

func (buf *Buffer) UnsafePutInt16Native(index int, v int16) {
	*(*int16)(buf.ptrAt(index)) = v
}

func (buf *Buffer) GetInt16(index int) (int16, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 2); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetInt16(index), nil
}

func (buf *Buffer) PutInt16(index int, v int16) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 2); err != nil {
			return err
		}
	}
	buf.UnsafePutInt16(index, v)
	return nil
}

func (buf *Buffer) GetInt16Native(index int) (int16, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 2); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetInt16Native(index), nil
}

func (buf *Buffer) PutInt16Native(index int, v int16) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 2); err != nil {
			return err
		}
	}
	buf.UnsafePutInt16Native(index, v)
	return nil
}

// UnsafeGetChar reads a uint16 ("char") little-endian at index without
// bounds checking.
func (buf *Buffer) UnsafeGetChar(index int) uint16 {
	return toLE16(*(*uint16)(buf.ptrAt(index)))
}

func (buf *Buffer) UnsafePutChar(index int, v uint16) {
	*(*uint16)(buf.ptrAt(index)) = toLE16(v)
}

func (buf *Buffer) GetChar(index int) (uint16, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 2); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetChar(index), nil
}

func (buf *Buffer) PutChar(index int, v uint16) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 2); err != nil {
			return err
		}
	}
	buf.UnsafePutChar(index, v)
	return nil
}

// --- int32 ----------------------------------------------------------------

func (buf *Buffer) UnsafeGetInt32(index int) int32 {
	raw := *(*uint32)(buf.ptrAt(index))
	return int32(toLE32(raw))
}

func (buf *Buffer) UnsafePutInt32(index int, v int32) {
	*(*uint32)(buf.ptrAt(index)) = toLE32(uint32(v))
}

func (buf *Buffer) UnsafeGetInt32Native(index int) int32 {
	return *(*int32)(buf.ptrAt(index))
}

func (buf *Buffer) UnsafePutInt32Native(index int, v int32) {
	*(*int32)(buf.ptrAt(index)) = v
}

func (buf *Buffer) GetInt32(index int) (int32, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 4); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetInt32(index), nil
}

func (buf *Buffer) PutInt32(index int, v int32) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 4); err != nil {
			return err
		}
	}
	buf.UnsafePutInt32(index, v)
	return nil
}

func (buf *Buffer) GetInt32Native(index int) (int32, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 4); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetInt32Native(index), nil
}

func (buf *Buffer) PutInt32Native(index int, v int32) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 4); err != nil {
			return err
		}
	}
	buf.UnsafePutInt32Native(index, v)
	return nil
}

// --- int64 ------------------------------------------------------------

func (buf *Buffer) UnsafeGetInt64(index int) int64 {
	raw := *(*uint64)(buf.ptrAt(index))
	return int64(toLE64(raw))
}

func (buf *Buffer) UnsafePutInt64(index int, v int64) {
	*(*uint64)(buf.ptrAt(index)) = toLE64(uint64(v))
}

func (buf *Buffer) UnsafeGetInt64Native(index int) int64 {
	return *(*int64)(buf.ptrAt(index))
}

func (buf *Buffer) UnsafePutInt64Native(index int, v int64) {
	*(*int64)(buf.ptrAt(index)) = v
}

func (buf *Buffer) GetInt64(index int) (int64, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 8); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetInt64(index), nil
}

func (buf *Buffer) PutInt64(index int, v int64) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 8); err != nil {
			return err
		}
	}
	buf.UnsafePutInt64(index, v)
	return nil
}

func (buf *Buffer) GetInt64Native(index int) (int64, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 8); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetInt64Native(index), nil
}

func (buf *Buffer) PutInt64Native(index int, v int64) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 8); err != nil {
			return err
		}
	}
	buf.UnsafePutInt64Native(index, v)
	return nil
}

// --- float32 / float64 --------------------------------------------------
//
// Floats are serialized as the bit pattern of their integer counterpart:
// raw IEEE 754, never NaN-canonicalized.

func (buf *Buffer) UnsafeGetFloat32(index int) float32 {
	return math.Float32frombits(uint32(buf.UnsafeGetInt32(index)))
}

func (buf *Buffer) UnsafePutFloat32(index int, v float32) {
	buf.UnsafePutInt32(index, int32(math.Float32bits(v)))
}

func (buf *Buffer) UnsafeGetFloat32Native(index int) float32 {
	return *(*float32)(buf.ptrAt(index))
}

func (buf *Buffer) UnsafePutFloat32Native(index int, v float32) {
	*(*float32)(buf.ptrAt(index)) = v
}

func (buf *Buffer) GetFloat32(index int) (float32, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 4); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetFloat32(index), nil
}

func (buf *Buffer) PutFloat32(index int, v float32) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 4); err != nil {
			return err
		}
	}
	buf.UnsafePutFloat32(index, v)
	return nil
}

func (buf *Buffer) GetFloat32Native(index int) (float32, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 4); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetFloat32Native(index), nil
}

func (buf *Buffer) PutFloat32Native(index int, v float32) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 4); err != nil {
			return err
		}
	}
	buf.UnsafePutFloat32Native(index, v)
	return nil
}

func (buf *Buffer) UnsafeGetFloat64(index int) float64 {
	return math.Float64frombits(uint64(buf.UnsafeGetInt64(index)))
}

func (buf *Buffer) UnsafePutFloat64(index int, v float64) {
	buf.UnsafePutInt64(index, int64(math.Float64bits(v)))
}

func (buf *Buffer) UnsafeGetFloat64Native(index int) float64 {
	return *(*float64)(buf.ptrAt(index))
}

func (buf *Buffer) UnsafePutFloat64Native(index int, v float64) {
	*(*float64)(buf.ptrAt(index)) = v
}

func (buf *Buffer) GetFloat64(index int) (float64, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 8); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetFloat64(index), nil
}

func (buf *Buffer) PutFloat64(index int, v float64) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 8); err != nil {
			return err
		}
	}
	buf.UnsafePutFloat64(index, v)
	return nil
}

func (buf *Buffer) GetFloat64Native(index int) (float64, error) {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 8); err != nil {
			return 0, err
		}
	}
	return buf.UnsafeGetFloat64Native(index), nil
}

func (buf *Buffer) PutFloat64Native(index int, v float64) error {
	if BoundsCheckingEnabled {
		if err := buf.checkBounds(index, 8); err != nil {
			return err
		}
	}
	buf.UnsafePutFloat64Native(index, v)
	return nil
}

// --- big-endian forms ----------------------------------------------------
//
// *Big accessors are provided for cases where byte-wise comparison of
// encoded data requires big-endian ordering (see Compare in bulk.go).

func (buf *Buffer) UnsafeGetInt32Big(index int) int32 {
	raw := *(*uint32)(buf.ptrAt(index))
	return int32(toBE32(raw))
}

func (buf *Buffer) UnsafePutInt32Big(index int, v int32) {
	*(*uint32)(buf.ptrAt(index)) = toBE32(uint32(v))
}

func (buf *Buffer) UnsafeGetInt64Big(index int) int64 {
	raw := *(*uint64)(buf.ptrAt(index))
	return int64(toBE64(raw))
}

func (buf *Buffer) UnsafePutInt64Big(index int, v int64) {
	*(*uint64)(buf.ptrAt(index)) = toBE64(uint64(v))
}

// unsafeBytesAt returns a []byte view of length n starting at index,
// sharing the buffer's backing memory. Callers must have already
// validated bounds.
func (buf *Buffer) unsafeBytesAt(index, n int) []byte {
	return unsafe.Slice((*byte)(buf.ptrAt(index)), n)
}
