// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package membuf provides a byte-addressable memory buffer that forms the
// I/O substrate of a cross-language serialization runtime.
//
// A Buffer unifies access to on-heap (managed []byte) and off-heap (raw
// native memory) storage behind a single value type. It exposes
// random-access primitive reads/writes, sequential streaming reads/writes
// with independent cursors, bulk copies to/from foreign byte regions, and
// a family of variable-length integer encodings tuned for wire-format
// compactness.
//
// # Storage modes
//
// A Buffer is constructed in one of two modes and may be transparently
// promoted from off-heap to on-heap at grow time (never the reverse):
//
//	Wrap(b)                  heap mode over an existing []byte
//	Allocate(n)               heap mode, fresh zeroed array
//	FromNative(addr, n, own)  off-heap mode over raw native memory
//	AllocateOffHeap(n)        off-heap mode over page-aligned memory (AlignedMem)
//
// # Wire format
//
// All multi-byte primitives are little-endian on the wire regardless of
// host byte order; Native-suffixed accessors use host order directly.
// Six variable-length integer encodings are provided for compact framing:
// positive varint, zig-zag varint, 4-byte-aligned varint, positive
// var-long, zig-zag var-long, and SLI (small-long-as-int) long.
//
// # Bounds checking
//
// Checked accessors (Get*/Put*/Read*) consult the package-level
// BoundsCheckingEnabled flag and fail with an *OutOfBoundsError when it is
// set. Sequential Write* calls never fail on bounds: they grow the buffer
// instead and do not consult the flag. Unsafe* accessors never consult the flag and never fail; they exist
// for code-generated hot paths that have already proven the precondition.
//
// # Concurrency
//
// A Buffer is a single-owner value: concurrent use of one instance from
// multiple goroutines is undefined behavior. Slices and clones may alias
// the same backing memory; growing one instance never affects slices or
// clones taken from it earlier (see Buffer.Slice and Buffer.CloneReference).
package membuf
