package bitset

import (
	"fmt"
	"math/bits"
	"sync/atomic"
	"unsafe"
)

const (
	// WordBits is the number of bits per backing word.
	WordBits = 64

	wordShift = 6
	wordMask  = WordBits - 1
)

// Ordering is the memory-ordering strength requested for an atomic bit
// operation. Go's sync/atomic package provides sequentially consistent
// semantics for every operation, so all orderings are satisfied; the
// parameter records the minimum the caller relies on and keeps callers
// honest about their cross-goroutine visibility assumptions.
type Ordering int

const (
	// Relaxed requires atomicity only, no cross-word ordering.
	Relaxed Ordering = iota
	// Acquire pairs with Release stores on the same word.
	Acquire
	// Release pairs with Acquire loads on the same word.
	Release
	// AcqRel combines Acquire and Release for read-modify-write operations.
	AcqRel
	// SeqCst requires a single total order over all SeqCst operations.
	SeqCst
)

// String implements fmt.Stringer.
func (o Ordering) String() string {
	switch o {
	case Relaxed:
		return "Relaxed"
	case Acquire:
		return "Acquire"
	case Release:
		return "Release"
	case AcqRel:
		return "AcqRel"
	case SeqCst:
		return "SeqCst"
	default:
		return fmt.Sprintf("Ordering(%d)", int(o))
	}
}

// IndexOutOfRangeError reports a bit index outside the current bit length.
type IndexOutOfRangeError struct {
	Index uint64
	Len   uint64
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("bitset: index %d out of range [0, %d)", e.Index, e.Len)
}

// BitSet is a growable bit collection over 64-bit atomic words.
//
// The bit length is always a multiple of 64: allocation and resizing happen
// in whole words. Bits are addressed as word = index/64,
// mask = 1 << (index % 64).
type BitSet struct {
	words []uint64
}

// nextMul64 rounds v up to the next multiple of 64.
func nextMul64(v uint64) uint64 {
	return (v + WordBits) &^ uint64(wordMask)
}

// New creates an empty BitSet.
//
// This does not allocate; call ResizeBits or ResizeBlocks to size the
// backing store before setting bits.
func New() *BitSet {
	return &BitSet{}
}

// WithBitCapacity creates an empty BitSet with capacity for at least bits
// bits, rounded up to a whole number of words. The length stays 0 until a
// resize call initializes the words.
func WithBitCapacity(bits uint64) *BitSet {
	return WithBlockCapacity(int(nextMul64(bits) / WordBits))
}

// WithBlockCapacity creates an empty BitSet with capacity for blocks words.
func WithBlockCapacity(blocks int) *BitSet {
	return &BitSet{words: make([]uint64, 0, blocks)}
}

// ResizeBits grows or truncates the BitSet to hold at least n bits, rounded
// up to a whole number of words. Newly added words are produced by fill.
//
// Single-owner: must not run concurrently with any other operation on b.
func (b *BitSet) ResizeBits(n uint64, fill func() uint64) {
	b.ResizeBlocks(int(nextMul64(n)/WordBits), fill)
}

// ResizeBlocks grows or truncates the BitSet to exactly n words. Newly added
// words are produced by fill; truncation drops trailing words.
//
// Single-owner: must not run concurrently with any other operation on b.
func (b *BitSet) ResizeBlocks(n int, fill func() uint64) {
	if n <= len(b.words) {
		b.words = b.words[:n]
		return
	}
	for len(b.words) < n {
		b.words = append(b.words, fill())
	}
}

// Len returns the bit length. Always a multiple of 64.
func (b *BitSet) Len() uint64 {
	return uint64(len(b.words)) * WordBits
}

// Blocks returns the number of backing words.
func (b *BitSet) Blocks() int {
	return len(b.words)
}

// SizeInMem returns the in-memory footprint of the BitSet in bytes, based on
// the current length of the backing store.
func (b *BitSet) SizeInMem() uintptr {
	return unsafe.Sizeof(*b) + uintptr(len(b.words))*unsafe.Sizeof(uint64(0))
}

func locAndMask(i uint64) (int, uint64) {
	return int(i >> wordShift), uint64(1) << (i & wordMask)
}

// Get returns the bit at index i.
//
// ord is the minimum ordering the caller requires for the load.
func (b *BitSet) Get(i uint64, ord Ordering) (bool, error) {
	if i >= b.Len() {
		return false, &IndexOutOfRangeError{Index: i, Len: b.Len()}
	}
	loc, mask := locAndMask(i)
	return atomic.LoadUint64(&b.words[loc])&mask != 0, nil
}

// Set atomically sets the bit at index i to value and returns the previous
// bit. Setting true is a fetch-OR, setting false a fetch-AND-NOT; either way
// concurrent writers on the same word never lose each other's updates.
//
// ord is the minimum ordering the caller requires for the read-modify-write.
func (b *BitSet) Set(i uint64, value bool, ord Ordering) (bool, error) {
	if i >= b.Len() {
		return false, &IndexOutOfRangeError{Index: i, Len: b.Len()}
	}
	loc, mask := locAndMask(i)
	var prev uint64
	if value {
		prev = atomic.OrUint64(&b.words[loc], mask)
	} else {
		prev = atomic.AndUint64(&b.words[loc], ^mask)
	}
	return prev&mask != 0, nil
}

// CountOnes returns the number of set bits.
//
// Under concurrent mutation the result is a best-effort snapshot: each word
// is read atomically, but the words are not read at a single instant.
func (b *BitSet) CountOnes(ord Ordering) uint64 {
	var count uint64
	for i := range b.words {
		count += uint64(bits.OnesCount64(atomic.LoadUint64(&b.words[i])))
	}
	return count
}
