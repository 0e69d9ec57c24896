// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf_test

import (
	"testing"

	"code.hybscloud.com/membuf"
	"golang.org/x/xerrors"
)

func TestCopyFromForeign(t *testing.T) {
	src := membuf.Allocate(8)
	for i := 0; i < 8; i++ {
		_ = src.PutInt8(i, int8(i+1))
	}
	dst := membuf.Allocate(8)
	if err := dst.CopyFromForeign(2, src, 0, 4); err != nil {
		t.Fatalf("CopyFromForeign() error = %v", err)
	}
	for i := 0; i < 4; i++ {
		got, _ := dst.GetInt8(2 + i)
		if got != int8(i+1) {
			t.Errorf("dst[%d] = %d, want %d", 2+i, got, i+1)
		}
	}
}

func TestCopyFromForeign_SrcUnderflow(t *testing.T) {
	src := membuf.Allocate(4)
	dst := membuf.Allocate(16)
	if err := dst.CopyFromForeign(0, src, 0, 10); !xerrors.Is(err, membuf.ErrBufferUnderflow) {
		t.Errorf("CopyFromForeign() error = %v, want ErrBufferUnderflow", err)
	}
}

func TestCopyToForeign_DstOverflow(t *testing.T) {
	src := membuf.Allocate(8)
	dst := membuf.Allocate(4)
	if err := src.CopyToForeign(0, dst, 0, 8); !xerrors.Is(err, membuf.ErrBufferOverflow) {
		t.Errorf("CopyToForeign() error = %v, want ErrBufferOverflow", err)
	}
}

func TestSlice(t *testing.T) {
	buf := membuf.Allocate(8)
	for i := 0; i < 8; i++ {
		_ = buf.PutInt8(i, int8(i))
	}
	s, err := buf.Slice(2, 4)
	if err != nil {
		t.Fatalf("Slice() error = %v", err)
	}
	if s.Size() != 4 {
		t.Errorf("Size() = %d, want 4", s.Size())
	}
	v, _ := s.GetInt8(0)
	if v != 2 {
		t.Errorf("Slice()[0] = %d, want 2", v)
	}

	if err := s.PutInt8(0, 99); err != nil {
		t.Fatalf("PutInt8() error = %v", err)
	}
	got, _ := buf.GetInt8(2)
	if got != 99 {
		t.Errorf("writing through slice did not alias original buffer: got %d, want 99", got)
	}
}

// TestSliceGrowthDoesNotPropagate confirms growing one view (via ensure)
// does not retroactively resize a sibling view taken with Slice/CloneReference.
func TestSliceGrowthDoesNotPropagate(t *testing.T) {
	buf := membuf.Allocate(4)
	clone := buf.CloneReference()
	buf.WriteBytes([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	if clone.Size() != 4 {
		t.Errorf("CloneReference().Size() = %d after sibling grew, want unchanged 4", clone.Size())
	}
}

func TestCloneReference(t *testing.T) {
	buf := membuf.Allocate(4)
	_ = buf.PutInt8(0, 7)
	buf.SetWriterIndex(2)
	buf.SetReaderIndex(1)

	clone := buf.CloneReference()
	if clone.Size() != buf.Size() {
		t.Errorf("CloneReference().Size() = %d, want %d", clone.Size(), buf.Size())
	}
	if clone.ReaderIndex() != 0 || clone.WriterIndex() != 0 {
		t.Error("CloneReference() did not reset cursors")
	}
	got, _ := clone.GetInt8(0)
	if got != 7 {
		t.Errorf("CloneReference() did not share storage: got %d, want 7", got)
	}
}

func TestEqualTo(t *testing.T) {
	a := membuf.Allocate(4)
	b := membuf.Allocate(4)
	for i := 0; i < 4; i++ {
		_ = a.PutInt8(i, int8(i))
		_ = b.PutInt8(i, int8(i))
	}
	if !a.EqualTo(b, 0, 0, 4) {
		t.Error("EqualTo() = false for identical buffers")
	}
	_ = b.PutInt8(3, 99)
	if a.EqualTo(b, 0, 0, 4) {
		t.Error("EqualTo() = true for differing buffers")
	}
}

// TestEqualToSubRange confirms EqualTo compares independent offsets into
// each buffer rather than always starting at 0.
func TestEqualToSubRange(t *testing.T) {
	a, err := membuf.Wrap([]byte{0xAA, 1, 2, 3, 0xBB})
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	b, err := membuf.Wrap([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Wrap() error = %v", err)
	}
	if !a.EqualTo(b, 1, 0, 3) {
		t.Error("EqualTo() = false for matching sub-ranges at independent offsets")
	}
	if a.EqualTo(b, 0, 0, 3) {
		t.Error("EqualTo() = true for mismatching sub-ranges")
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		name   string
		a, b   []byte
		expect int
	}{
		{"equal", []byte{1, 2, 3, 4, 5, 6, 7, 8}, []byte{1, 2, 3, 4, 5, 6, 7, 8}, 0},
		{"less-in-first-8", []byte{1, 2, 3, 4, 5, 6, 7, 8}, []byte{1, 2, 3, 4, 5, 6, 7, 9}, -1},
		{"greater-in-first-8", []byte{1, 2, 3, 4, 5, 6, 7, 9}, []byte{1, 2, 3, 4, 5, 6, 7, 8}, 1},
		{"unsigned-high-bit", []byte{0xFF, 0, 0, 0, 0, 0, 0, 0}, []byte{0x01, 0, 0, 0, 0, 0, 0, 0}, 1},
		{"tail-remainder", []byte{1, 2, 3, 4, 5, 6, 7, 8, 1}, []byte{1, 2, 3, 4, 5, 6, 7, 8, 2}, -1},
		{"shorter-prefix", []byte{1, 2, 3}, []byte{1, 2, 3, 4}, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := membuf.Wrap(c.a)
			if err != nil {
				t.Fatalf("Wrap() error = %v", err)
			}
			b, err := membuf.Wrap(c.b)
			if err != nil {
				t.Fatalf("Wrap() error = %v", err)
			}
			length := len(c.a)
			if len(c.b) > length {
				length = len(c.b)
			}
			got := a.Compare(b, 0, 0, length)
			switch {
			case c.expect < 0 && got >= 0:
				t.Errorf("Compare() = %d, want negative", got)
			case c.expect > 0 && got <= 0:
				t.Errorf("Compare() = %d, want positive", got)
			case c.expect == 0 && got != 0:
				t.Errorf("Compare() = %d, want 0", got)
			}
		})
	}
}

func TestCopyTo_IntoArenaChunk(t *testing.T) {
	arena := membuf.NewArena(membuf.TierPico, 1)
	chunk, err := arena.Acquire()
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	src := membuf.Allocate(4)
	src.WriteInt(7)
	if err := src.CopyTo(0, chunk, 0, 4); err != nil {
		t.Fatalf("CopyTo() error = %v", err)
	}
	got, err := chunk.GetInt32(0)
	if err != nil {
		t.Fatalf("GetInt32() error = %v", err)
	}
	if got != 7 {
		t.Errorf("GetInt32(0) = %d, want 7", got)
	}
	if err := chunk.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
