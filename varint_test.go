// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf_test

import (
	"math"
	"testing"

	"code.hybscloud.com/membuf"
)

func TestPositiveVarInt32Lengths(t *testing.T) {
	cases := []struct {
		v    uint32
		want int
	}{
		{0, 1},
		{1<<7 - 1, 1},
		{1 << 7, 2},
		{1<<14 - 1, 2},
		{1 << 14, 3},
		{1<<21 - 1, 3},
		{1 << 21, 4},
		{1<<28 - 1, 4},
		{1 << 28, 5},
		{math.MaxUint32, 5},
	}
	for _, c := range cases {
		buf := membuf.Allocate(0)
		n := buf.WritePositiveVarInt32(c.v)
		if n != c.want {
			t.Errorf("WritePositiveVarInt32(%d) wrote %d bytes, want %d", c.v, n, c.want)
		}
		_ = buf.SetReaderIndex(0)
		got, err := buf.ReadPositiveVarInt32()
		if err != nil {
			t.Fatalf("ReadPositiveVarInt32() error = %v", err)
		}
		if got != c.v {
			t.Errorf("ReadPositiveVarInt32() = %d, want %d", got, c.v)
		}
	}
}

func TestVarInt32ZigZagRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 63, -64, 1000, -1000, math.MinInt32, math.MaxInt32}
	for _, v := range values {
		buf := membuf.Allocate(0)
		buf.WriteVarInt32(v)
		_ = buf.SetReaderIndex(0)
		got, err := buf.ReadVarInt32()
		if err != nil {
			t.Fatalf("ReadVarInt32() error = %v", err)
		}
		if got != v {
			t.Errorf("ReadVarInt32() = %d, want %d", got, v)
		}
	}
}

func TestPositiveVarInt64Lengths(t *testing.T) {
	cases := []struct {
		v    uint64
		want int
	}{
		{0, 1},
		{1<<7 - 1, 1},
		{1 << 7, 2},
		{1<<49 - 1, 7},
		{1 << 49, 8},
		{1<<56 - 1, 8},
		{1 << 56, 9},
		{math.MaxUint64, 9},
	}
	for _, c := range cases {
		buf := membuf.Allocate(0)
		n := buf.WritePositiveVarInt64(c.v)
		if n != c.want {
			t.Errorf("WritePositiveVarInt64(%d) wrote %d bytes, want %d", c.v, n, c.want)
		}
		_ = buf.SetReaderIndex(0)
		got, err := buf.ReadPositiveVarInt64()
		if err != nil {
			t.Fatalf("ReadPositiveVarInt64() error = %v", err)
		}
		if got != c.v {
			t.Errorf("ReadPositiveVarInt64() = %d, want %d", got, c.v)
		}
	}
}

func TestVarInt64ZigZagRoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 1000000, -1000000, math.MinInt64, math.MaxInt64}
	for _, v := range values {
		buf := membuf.Allocate(0)
		buf.WriteVarInt64(v)
		_ = buf.SetReaderIndex(0)
		got, err := buf.ReadVarInt64()
		if err != nil {
			t.Fatalf("ReadVarInt64() error = %v", err)
		}
		if got != v {
			t.Errorf("ReadVarInt64() = %d, want %d", got, v)
		}
	}
}

func TestSliInt64Boundary(t *testing.T) {
	const (
		sliMin = math.MinInt32 / 2
		sliMax = math.MaxInt32 / 2
	)
	cases := []struct {
		v    int64
		want int
	}{
		{0, 4},
		{sliMin, 4},
		{sliMax, 4},
		{sliMax + 1, 9},
		{sliMin - 1, 9},
		{math.MaxInt64, 9},
		{math.MinInt64, 9},
	}
	for _, c := range cases {
		buf := membuf.Allocate(0)
		n := buf.WriteSliInt64(c.v)
		if n != c.want {
			t.Errorf("WriteSliInt64(%d) wrote %d bytes, want %d", c.v, n, c.want)
		}
		_ = buf.SetReaderIndex(0)
		got, err := buf.ReadSliInt64()
		if err != nil {
			t.Fatalf("ReadSliInt64() error = %v", err)
		}
		if got != c.v {
			t.Errorf("ReadSliInt64() = %d, want %d", got, c.v)
		}
	}
}

func TestPositiveVarInt32AlignedRoundTrip(t *testing.T) {
	values := []uint32{0, 1, 5, 63, 64, 1000, 1 << 20, 1<<30 - 1, math.MaxUint32}
	for _, v := range values {
		buf := membuf.Allocate(0)
		n := buf.WritePositiveVarInt32Aligned(v)
		if buf.WriterIndex()%4 != 0 {
			t.Errorf("WritePositiveVarInt32Aligned(%d) left writer index %d, not 4-byte aligned", v, buf.WriterIndex())
		}
		_ = buf.SetReaderIndex(0)
		got, err := buf.ReadPositiveVarInt32Aligned()
		if err != nil {
			t.Fatalf("ReadPositiveVarInt32Aligned() error = %v", err)
		}
		if got != v {
			t.Errorf("ReadPositiveVarInt32Aligned() = %d, want %d", got, v)
		}
		if buf.ReaderIndex() != n {
			t.Errorf("ReaderIndex() = %d, want %d (bytes written)", buf.ReaderIndex(), n)
		}
	}
}

// TestPositiveVarInt32AlignedLayout pins the exact byte layout for
// writer_index=1, value=5: bytes occupy positions 1,2,3; byte 3 has bit 6
// set, the others have both bit 7 and bit 6 clear; writer index ends at 4.
func TestPositiveVarInt32AlignedLayout(t *testing.T) {
	buf := membuf.Allocate(0)
	buf.WriteByte(0xFF) // occupy position 0 so writer index starts at 1
	n := buf.WritePositiveVarInt32Aligned(5)
	if n != 3 {
		t.Fatalf("WritePositiveVarInt32Aligned(5) wrote %d bytes, want 3", n)
	}
	if buf.WriterIndex() != 4 {
		t.Fatalf("WriterIndex() = %d, want 4", buf.WriterIndex())
	}
	arr, err := buf.Array()
	if err != nil {
		t.Fatalf("Array() error = %v", err)
	}
	if arr[1]&0xC0 != 0 {
		t.Errorf("byte[1] = %#x, want bits 7,6 clear", arr[1])
	}
	if arr[2]&0xC0 != 0 {
		t.Errorf("byte[2] = %#x, want bits 7,6 clear", arr[2])
	}
	if arr[3]&0x40 == 0 {
		t.Errorf("byte[3] = %#x, want bit 6 set", arr[3])
	}

	_ = buf.SetReaderIndex(1)
	got, err := buf.ReadPositiveVarInt32Aligned()
	if err != nil {
		t.Fatalf("ReadPositiveVarInt32Aligned() error = %v", err)
	}
	if got != 5 {
		t.Errorf("ReadPositiveVarInt32Aligned() = %d, want 5", got)
	}
	if buf.ReaderIndex() != 4 {
		t.Errorf("ReaderIndex() = %d, want 4", buf.ReaderIndex())
	}
}
