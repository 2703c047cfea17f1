package bitset

import "iter"

// Cursor is a bidirectional iterator over the bits of a BitSet.
//
// A Cursor walks index-ascending via Next and index-descending via Prev; the
// two ends advance toward each other and the cursor is exhausted once they
// meet. Each Get goes through the BitSet's atomic loads, so iteration under
// concurrent mutation observes a best-effort interleaving rather than one
// consistent snapshot.
type Cursor struct {
	src  *BitSet
	ord  Ordering
	idx  uint64
	back uint64
}

// Cursor returns a fresh cursor over all bits of b.
func (b *BitSet) Cursor(ord Ordering) *Cursor {
	return &Cursor{src: b, ord: ord, idx: 0, back: b.Len()}
}

// Next returns the bit at the front of the cursor and advances it.
// ok is false once the cursor is exhausted.
func (c *Cursor) Next() (value, ok bool) {
	if c.idx >= c.back {
		return false, false
	}
	v, err := c.src.Get(c.idx, c.ord)
	if err != nil {
		return false, false
	}
	c.idx++
	return v, true
}

// Prev returns the bit at the back of the cursor and retreats it.
// ok is false once the cursor is exhausted.
func (c *Cursor) Prev() (value, ok bool) {
	if c.idx >= c.back {
		return false, false
	}
	v, err := c.src.Get(c.back-1, c.ord)
	if err != nil {
		return false, false
	}
	c.back--
	return v, true
}

// Remaining returns the number of bits the cursor has not yet yielded.
func (c *Cursor) Remaining() uint64 {
	return c.back - c.idx
}

// All returns an index-ascending sequence over the bits of b.
// Each call starts a fresh cursor.
func (b *BitSet) All(ord Ordering) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		c := b.Cursor(ord)
		for v, ok := c.Next(); ok; v, ok = c.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Backward returns an index-descending sequence over the bits of b.
// Each call starts a fresh cursor.
func (b *BitSet) Backward(ord Ordering) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		c := b.Cursor(ord)
		for v, ok := c.Prev(); ok; v, ok = c.Prev() {
			if !yield(v) {
				return
			}
		}
	}
}
