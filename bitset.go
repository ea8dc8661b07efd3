package phasor

import "math/bits"

// Bitset is a fixed-domain set of haplotype indices, backed by a
// []uint64 word slice.
type Bitset struct {
	words []uint64
	n     int // domain size
}

// NewBitset returns an empty bitset over [0,n).
func NewBitset(n int) *Bitset {
	return &Bitset{words: make([]uint64, (n+63)/64), n: n}
}

// Singleton returns a bitset over [0,n) with only i set.
func Singleton(n, i int) *Bitset {
	b := NewBitset(n)
	b.Set(i)
	return b
}

func (b *Bitset) Set(i int) { b.words[i/64] |= 1 << uint(i%64) }

func (b *Bitset) Test(i int) bool { return b.words[i/64]&(1<<uint(i%64)) != 0 }

// IsEmpty reports whether no bit is set.
func (b *Bitset) IsEmpty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// FirstSet returns the lowest-index set bit, or -1 if empty.
func (b *Bitset) FirstSet() int {
	for i, w := range b.words {
		if w != 0 {
			return i*64 + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// And returns a new bitset containing the intersection of b and other.
func (b *Bitset) And(other *Bitset) *Bitset {
	out := NewBitset(b.n)
	for i := range b.words {
		out.words[i] = b.words[i] & other.words[i]
	}
	return out
}

// AndCount returns the population count of the intersection of b and
// other, without allocating.
func (b *Bitset) AndCount(other *Bitset) int {
	count := 0
	for i := range b.words {
		count += bits.OnesCount64(b.words[i] & other.words[i])
	}
	return count
}

// Clone returns a copy of b.
func (b *Bitset) Clone() *Bitset {
	out := &Bitset{words: append([]uint64(nil), b.words...), n: b.n}
	return out
}
