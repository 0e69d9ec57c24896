// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

import "unsafe"

// hostLittleEndian is computed once at package initialization so every
// little-endian accessor reduces to a predictable, trivially-eliminated
// branch instead of repeatedly probing the host.
var hostLittleEndian bool

func init() {
	var x uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&x))
	hostLittleEndian = b[0] == 1
}

// HostLittleEndian reports whether the running process is little-endian.
// It is fixed once at startup; callers observe consistent behavior
// thereafter.
func HostLittleEndian() bool { return hostLittleEndian }

// BoundsCheckingEnabled gates every checked Get/Put/Read accessor.
// Unsafe* accessors and the growing Write* calls never consult this flag. It is intended to be set once
// during process startup (e.g. disabled in a release build) and never
// mutated concurrently with buffer use.
var BoundsCheckingEnabled = true

func swap16(v uint16) uint16 {
	return v<<8 | v>>8
}

func swap32(v uint32) uint32 {
	return v<<24 | (v&0xFF00)<<8 | (v>>8)&0xFF00 | v>>24
}

func swap64(v uint64) uint64 {
	return v<<56 | (v&0xFF00)<<40 | (v&0xFF0000)<<24 | (v&0xFF000000)<<8 |
		(v>>8)&0xFF000000 | (v>>24)&0xFF0000 | (v>>40)&0xFF00 | v>>56
}

// toLE16 converts a host-native uint16 to or from its little-endian wire
// representation (the byte swap is its own inverse). On a little-endian host these are no-ops that the
// compiler removes entirely.
func toLE16(v uint16) uint16 {
	if hostLittleEndian {
		return v
	}
	return swap16(v)
}

func toLE32(v uint32) uint32 {
	if hostLittleEndian {
		return v
	}
	return swap32(v)
}

func toLE64(v uint64) uint64 {
	if hostLittleEndian {
		return v
	}
	return swap64(v)
}

func toBE16(v uint16) uint16 {
	if hostLittleEndian {
		return swap16(v)
	}
	return v
}

func toBE32(v uint32) uint32 {
	if hostLittleEndian {
		return swap32(v)
	}
	return v
}

func toBE64(v uint64) uint64 {
	if hostLittleEndian {
		return swap64(v)
	}
	return v
}
