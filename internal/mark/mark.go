// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package mark defines a fixed-size bit set used to mark
// visited elements while traversing graphs.
package mark

const nbit = 64

// Set is a set of indices in the range [0, n).
// The zero value is an empty set with n = 0.
type Set struct {
	s []uint64
	n int
}

// New creates a set able to hold indices in [0, n).
func New(n int) *Set {
	if n < 0 {
		n = 0
	}
	return &Set{s: make([]uint64, (n+nbit-1)/nbit), n: n}
}

// Mark marks index and returns whether it was
// already marked.
// It panics if index is out of range.
func (m *Set) Mark(index int) (was bool) {
	m.check(index)
	i, b := index/nbit, uint64(1)<<(index&(nbit-1))
	was = m.s[i]&b != 0
	m.s[i] |= b
	return
}

// Unmarked calls f for each unmarked index in
// increasing order.
func (m *Set) Unmarked(f func(index int)) {
	for i := 0; i < m.n; i++ {
		if m.s[i/nbit]&(uint64(1)<<(i&(nbit-1))) == 0 {
			f(i)
		}
	}
}

func (m *Set) check(index int) {
	if index < 0 || index >= m.n {
		panic("mark: index out of range")
	}
}
