// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

import (
	"fmt"

	"golang.org/x/xerrors"
)

// OutOfBoundsError reports an index/length combination that would read or
// write outside a buffer's [0, size) range. It is returned directly, never
// wrapped, so the checked hot path never pays for a captured stack trace.
type OutOfBoundsError struct {
	Index int
	Need  int
	Size  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("membuf: out of bounds: index=%d need=%d size=%d", e.Index, e.Need, e.Size)
}

func outOfBounds(index, need, size int) error {
	return &OutOfBoundsError{Index: index, Need: need, Size: size}
}

// IllegalStateError reports an operation attempted against a storage mode
// that does not support it. Copies into a freed buffer report
// ErrBufferFreed instead.
type IllegalStateError struct {
	Op string
}

func (e *IllegalStateError) Error() string {
	return "membuf: illegal state: " + e.Op
}

// ReadOnlyError reports a write attempted against a read-only foreign
// direct target.
type ReadOnlyError struct{}

func (e *ReadOnlyError) Error() string { return "membuf: target is read-only" }

var (
	// ErrBufferOverflow is returned when a foreign byte-buffer transfer has
	// insufficient space in the target.
	ErrBufferOverflow = xerrors.New("membuf: buffer overflow")
	// ErrBufferUnderflow is returned when a foreign byte-buffer transfer has
	// insufficient data in the source.
	ErrBufferUnderflow = xerrors.New("membuf: buffer underflow")
	// ErrBufferFreed is returned by copy operations that target a buffer
	// whose address has moved past its cached limit (see Buffer.CopyTo).
	ErrBufferFreed = xerrors.New("membuf: buffer freed")
)

func invalidArgument(format string, args ...any) error {
	return xerrors.Errorf("membuf: invalid argument: "+format, args...)
}

func illegalState(op string) error {
	return &IllegalStateError{Op: op}
}
