// Package bitset provides a growable bit collection backed by 64-bit atomic words.
//
// Architecture:
//   - Flat word array: one atomic uint64 per 64 bits, no segmenting
//   - Lock-free mutation: Set is an atomic fetch-OR / fetch-AND-NOT
//   - Explicit ordering: every read and write takes an Ordering parameter;
//     the type itself enforces nothing beyond per-word atomicity
//
// Resizing is single-owner: it must not run concurrently with any other
// operation on the same BitSet. Get, Set, CountOnes and iteration are safe
// for uncoordinated multi-goroutine use.
package bitset
