// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf_test

import (
	"testing"

	"code.hybscloud.com/membuf"
)

func TestWrap(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5}
	buf, err := membuf.Wrap(b)
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	if buf.Size() != 5 {
		t.Errorf("Size() = %d, want 5", buf.Size())
	}
	if buf.IsOffHeap() {
		t.Error("Wrap() produced off-heap buffer")
	}
	got, err := buf.Array()
	if err != nil {
		t.Fatalf("Array() error = %v", err)
	}
	if &got[0] != &b[0] {
		t.Error("Wrap() did not alias the original array")
	}
}

func TestWrap_OffsetLength(t *testing.T) {
	b := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	buf, err := membuf.Wrap(b, 2, 3)
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	if buf.Size() != 3 {
		t.Errorf("Size() = %d, want 3", buf.Size())
	}
	v, err := buf.GetInt8(0)
	if err != nil {
		t.Fatalf("GetInt8() error = %v", err)
	}
	if v != 3 {
		t.Errorf("GetInt8(0) = %d, want 3", v)
	}
}

func TestWrap_OutOfRange(t *testing.T) {
	b := []byte{1, 2, 3}
	if _, err := membuf.Wrap(b, 0, 10); err == nil {
		t.Error("Wrap() with out-of-range length did not fail")
	}
}

func TestAllocate(t *testing.T) {
	buf := membuf.Allocate(16)
	if buf.Size() != 16 {
		t.Errorf("Size() = %d, want 16", buf.Size())
	}
	arr, err := buf.Array()
	if err != nil {
		t.Fatalf("Array() error = %v", err)
	}
	for i, b := range arr {
		if b != 0 {
			t.Errorf("Allocate() byte %d = %d, want 0", i, b)
		}
	}
}

func TestFromNative_InvalidAddress(t *testing.T) {
	if _, err := membuf.FromNative(0, 16, nil); err == nil {
		t.Error("FromNative(0, ...) did not fail")
	}
}

func TestAllocateOffHeap(t *testing.T) {
	buf, err := membuf.AllocateOffHeap(64)
	if err != nil {
		t.Fatalf("AllocateOffHeap() error = %v", err)
	}
	if !buf.IsOffHeap() {
		t.Error("AllocateOffHeap() did not produce an off-heap buffer")
	}
	if buf.Size() != 64 {
		t.Errorf("Size() = %d, want 64", buf.Size())
	}
	if _, err := buf.Array(); err == nil {
		t.Error("Array() on off-heap buffer did not fail")
	}
	addr, err := buf.Address()
	if err != nil {
		t.Fatalf("Address() error = %v", err)
	}
	if addr == 0 {
		t.Error("Address() returned 0")
	}
}

func TestBuffer_Address_HeapFails(t *testing.T) {
	buf := membuf.Allocate(8)
	if _, err := buf.Address(); err == nil {
		t.Error("Address() on heap buffer did not fail")
	}
}

func TestBuffer_Close_OffHeapNoop(t *testing.T) {
	buf, err := membuf.AllocateOffHeap(8)
	if err != nil {
		t.Fatalf("AllocateOffHeap() error = %v", err)
	}
	if err := buf.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestPointTo(t *testing.T) {
	buf := membuf.Allocate(8)
	buf.WriteInt(42)

	b2 := []byte{9, 9, 9, 9}
	if err := buf.PointTo(b2, 0, 4); err != nil {
		t.Fatalf("PointTo() error = %v", err)
	}
	if buf.Size() != 4 {
		t.Errorf("Size() after PointTo = %d, want 4", buf.Size())
	}
	if buf.WriterIndex() != 0 || buf.ReaderIndex() != 0 {
		t.Error("PointTo() did not reset cursors")
	}
}

func TestBuffer_String(t *testing.T) {
	buf := membuf.Allocate(4)
	if s := buf.String(); s == "" {
		t.Error("String() returned empty string")
	}

	off, err := membuf.AllocateOffHeap(4)
	if err != nil {
		t.Fatalf("AllocateOffHeap() error = %v", err)
	}
	if s := off.String(); s == "" {
		t.Error("String() returned empty string for off-heap buffer")
	}
}
