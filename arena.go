// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package membuf

import (
	"math"
	"sync/atomic"
	"unsafe"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/membuf/internal"
	"code.hybscloud.com/spin"
	"go.uber.org/zap"
)

// BoundedPoolItem is a type constraint for values stored in a BoundedPool.
type BoundedPoolItem interface{}

// Pool is a generic object pool interface with configurable blocking
// semantics. Implementations may operate in blocking or non-blocking
// mode: in blocking mode Get blocks until an item is available and Put
// blocks until space is available; in non-blocking mode both return
// iox.ErrWouldBlock instead of blocking. All implementations must be
// safe for concurrent use.
type Pool[T any] interface {
	Put(item T) error
	Get() (item T, err error)
}

// NewBoundedPool creates a BoundedPool with the given capacity, rounded
// up to the next power of two. capacity must be between 1 and
// math.MaxUint32.
func NewBoundedPool[ItemType BoundedPoolItem](capacity int) *BoundedPool[ItemType] {
	if capacity < 1 || capacity > math.MaxUint32 {
		panic("capacity must be between 1 and MaxUint32")
	}
	capacity--
	capacity |= capacity >> 1
	capacity |= capacity >> 2
	capacity |= capacity >> 4
	capacity |= capacity >> 8
	capacity |= capacity >> 16
	capacity++

	items := make([]ItemType, 0, capacity)

	remapM := min(internal.CacheLineSize/unsafe.Sizeof(atomic.Uint64{}), uintptr(capacity))
	remapN := max(1, uintptr(capacity)/remapM)
	remapMask := remapN - 1

	ret := BoundedPool[ItemType]{
		items:     items,
		capacity:  uint32(capacity),
		mask:      uint32(capacity - 1),
		remapM:    uint32(remapM),
		remapN:    uint32(remapN),
		remapMask: uint32(remapMask),
	}
	return &ret
}

// BoundedPool is a generic bounded MPMC pool of fixed capacity. Get
// blocks (with adaptive backoff) while the pool is empty and Put blocks
// while the pool is full, unless SetNonblock(true) is set, in which case
// both return iox.ErrWouldBlock immediately instead. BoundedPool is safe
// for concurrent use. The implementation follows the algorithm in
// Nikolaev & Koval, "Bounded MPMC Queues" (PPoPP'20):
// https://nikitakoval.org/publications/ppopp20-queues.pdf
type BoundedPool[T BoundedPoolItem] struct {
	_ noCopy

	items      []T
	capacity   uint32
	mask       uint32
	entries    []atomic.Uint64
	remapM     uint32
	remapN     uint32
	remapMask  uint32
	head, tail atomic.Uint32

	nonblocking bool
}

// Fill initializes the pool's backing storage by calling newFunc once
// per slot and marking every slot available.
func (pool *BoundedPool[T]) Fill(newFunc func() T) {
	for range pool.capacity {
		pool.items = append(pool.items, newFunc())
	}
	pool.entries = make([]atomic.Uint64, pool.capacity)
	for i := range pool.capacity {
		pool.entries[i].Store(uint64(i))
	}
	pool.tail.Store(pool.capacity)
}

// SetNonblock enables or disables non-blocking mode.
func (pool *BoundedPool[T]) SetNonblock(nonblocking bool) {
	pool.nonblocking = nonblocking
}

// Value returns the item at the given indirect index, acquired via Get.
func (pool *BoundedPool[T]) Value(indirect int) T {
	if len(pool.items) != int(pool.capacity) {
		panic("must Fill the pool before using it")
	}
	if indirect&boundedPoolEntryEmpty == boundedPoolEntryEmpty {
		panic("invalid bounded pool indirect")
	}
	if indirect < 0 || indirect >= int(pool.capacity) {
		panic("invalid bounded pool indirect")
	}
	return pool.items[indirect]
}

// SetValue updates the item at the given indirect index, acquired via Get.
func (pool *BoundedPool[T]) SetValue(indirect int, value T) {
	if len(pool.items) != int(pool.capacity) {
		panic("must Fill the pool before using it")
	}
	if indirect&boundedPoolEntryEmpty == boundedPoolEntryEmpty {
		panic("invalid bounded pool indirect")
	}
	if indirect < 0 || indirect >= int(pool.capacity) {
		panic("invalid bounded pool indirect")
	}
	pool.items[indirect] = value
}

// Get retrieves an item from the pool and returns its indirect index.
// In blocking mode it uses adaptive waiting (iox.Backoff) while the pool
// is empty, treating exhaustion as an external event (some other
// goroutine finishing with a chunk) rather than something worth a tight
// spin.
func (pool *BoundedPool[T]) Get() (indirect int, err error) {
	if len(pool.items) != int(pool.capacity) {
		panic("must Fill the pool before using it")
	}
	var aw iox.Backoff
	for {
		entry, err := pool.tryGet()
		if err == nil {
			return int(entry & uint64(pool.mask)), nil
		}
		if err == iox.ErrWouldBlock {
			if pool.nonblocking {
				return boundedPoolEntryEmpty, err
			}
			aw.Wait()
			continue
		}
		return boundedPoolEntryEmpty, err
	}
}

// Put returns the indirect index of an item to the pool. In blocking
// mode it uses adaptive waiting while the pool is full.
func (pool *BoundedPool[T]) Put(indirect int) error {
	if len(pool.items) != int(pool.capacity) {
		panic("must Fill the pool before using it")
	}
	entry := uint64(indirect)
	var aw iox.Backoff
	for {
		err := pool.tryPut(entry)
		if err == nil {
			return nil
		}
		if err == iox.ErrWouldBlock {
			if pool.nonblocking {
				return err
			}
			aw.Wait()
			continue
		}
		return err
	}
}

// Cap returns the pool's capacity.
func (pool *BoundedPool[T]) Cap() int {
	return int(pool.capacity)
}

const (
	boundedPoolEntryEmpty    = 1 << 62
	boundedPoolEntryTurnMask = boundedPoolEntryEmpty>>32 - 1
)

func (pool *BoundedPool[T]) tryGet() (entry uint64, err error) {
	sw := spin.Wait{}
	for {
		h, t := pool.head.Load(), pool.tail.Load()
		hi := pool.remap(h & pool.mask)
		e := pool.entries[hi].Load()

		if h != pool.head.Load() {
			sw.Once()
			continue
		}

		if h == t {
			return boundedPoolEntryEmpty, iox.ErrWouldBlock
		}

		nextTurn := (h/pool.capacity + 1) & boundedPoolEntryTurnMask
		if e == pool.empty(nextTurn) {
			pool.head.CompareAndSwap(h, h+1)
			sw.Once()
			continue
		}
		ok := pool.entries[hi].CompareAndSwap(e, pool.empty(nextTurn))
		pool.head.CompareAndSwap(h, h+1)
		if ok {
			return e, nil
		}
		sw.Once()
	}
}

func (pool *BoundedPool[T]) tryPut(e uint64) error {
	sw := spin.Wait{}
	for {
		h, t := pool.head.Load(), pool.tail.Load()
		if t != pool.tail.Load() {
			sw.Once()
			continue
		}
		if t == h+pool.capacity {
			return iox.ErrWouldBlock
		}
		turn, ti := (t/pool.capacity)&boundedPoolEntryTurnMask, pool.remap(t)
		ok := pool.entries[ti].CompareAndSwap(pool.empty(turn), e)
		pool.tail.CompareAndSwap(t, t+1)
		if ok {
			return nil
		}
		sw.Once()
	}
}

func (pool *BoundedPool[T]) remap(cursor uint32) int {
	p, q := cursor/pool.remapN, cursor&pool.remapMask
	return int(q*pool.remapM + p%pool.remapM)
}

func (pool *BoundedPool[T]) empty(turn uint32) uint64 {
	return boundedPoolEntryEmpty | uint64(turn&boundedPoolEntryTurnMask)
}

// --- Arena: an allocator of off-heap storage chunks ------------------------
//
// Arena pools fixed-size off-heap memory chunks, not Buffer instances —
// every Acquire returns a freshly constructed *Buffer wrapping a chunk
// recycled from a BoundedPool[int] of chunk indices. This is deliberate:
// pooling Buffer values themselves (cursors, storage kind, logger) is out
// of scope for this package, but the underlying off-heap memory backing a
// Buffer is expensive enough to allocate (page alignment, GC pinning) that
// an arena-backed recycling pool for just the memory is worth providing.

// Arena manages a fixed set of equally sized off-heap chunks, backed by a
// single contiguous page-aligned allocation and handed out via a
// BoundedPool of chunk indices.
type Arena struct {
	tier      BufferTier
	chunkSize int
	mem       []byte
	base      uintptr
	pool      *BoundedPool[int]
	log       *zap.SugaredLogger
}

// NewArena creates an Arena of capacity chunks (rounded up to the next
// power of two by the underlying pool), each sized to tier's byte size.
func NewArena(tier BufferTier, capacity int) *Arena {
	chunkSize := tier.Size()
	pool := NewBoundedPool[int](capacity)
	actualCap := pool.Cap()

	mem := AlignedMem(chunkSize*actualCap, PageSize)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(mem)))

	next := 0
	pool.Fill(func() int {
		idx := next
		next++
		return idx
	})

	return &Arena{
		tier:      tier,
		chunkSize: chunkSize,
		mem:       mem,
		base:      base,
		pool:      pool,
	}
}

// NewArenaForSize creates an Arena whose chunk tier is the smallest one
// that can hold chunkSizeHint bytes.
func NewArenaForSize(chunkSizeHint, capacity int) *Arena {
	return NewArena(TierBySize(chunkSizeHint), capacity)
}

// SetLogger attaches a structured logger for exhaustion diagnostics (logged
// when Acquire fails, i.e. in non-blocking mode).
func (a *Arena) SetLogger(log *zap.SugaredLogger) { a.log = log }

// SetNonblock enables or disables non-blocking mode on the underlying
// chunk pool.
func (a *Arena) SetNonblock(nonblocking bool) { a.pool.SetNonblock(nonblocking) }

// Cap returns the number of chunks this Arena manages.
func (a *Arena) Cap() int { return a.pool.Cap() }

// ChunkSize returns the byte size of every chunk this Arena hands out.
func (a *Arena) ChunkSize() int { return a.chunkSize }

// Tier returns this Arena's buffer tier.
func (a *Arena) Tier() BufferTier { return a.tier }

// Acquire hands out one off-heap chunk as a freshly constructed *Buffer.
// Calling Close on the returned Buffer (or letting its arenaChunkOwner be
// collected without Close — no, the chunk is only recycled via an
// explicit Close/Release) returns the chunk to the Arena for reuse.
func (a *Arena) Acquire() (*Buffer, error) {
	idx, err := a.pool.Get()
	if err != nil {
		if a.log != nil {
			a.log.Debugw("arena exhausted", "tier", a.tier, "capacity", a.Cap())
		}
		return nil, err
	}
	addr := a.base + uintptr(idx)*uintptr(a.chunkSize)
	owner := &arenaChunkOwner{arena: a, index: idx}
	buf, err := FromNative(addr, a.chunkSize, owner)
	if err != nil {
		_ = a.pool.Put(idx)
		return nil, err
	}
	return buf, nil
}

func (a *Arena) release(index int) error {
	return a.pool.Put(index)
}

// arenaChunkOwner is the owner value stashed on every Buffer returned by
// Arena.Acquire. Buffer.Close duck-types against its Release method to
// hand the chunk back to the arena instead of leaving it for the GC.
type arenaChunkOwner struct {
	arena *Arena
	index int
}

func (o *arenaChunkOwner) Release() { _ = o.arena.release(o.index) }

// AllocateOffHeapFromArena is a convenience wrapper equivalent to
// arena.Acquire(), matching the naming of the package's other
// AllocateOffHeap constructors.
func AllocateOffHeapFromArena(arena *Arena) (*Buffer, error) {
	return arena.Acquire()
}
