// Package ints implements a compact set of non-negative integers.
// Sets are used for position sets (firstpos, followpos) and for item sets.
package ints

import (
	"encoding/binary"
	"math/bits"
)

const IntSizeShift = 5 + (^uint(0) >> 32 & 1)
const IntSize = 1 << IntSizeShift

// Set is a bit set of non-negative integers. Zero value is an empty set.
type Set struct {
	chunks []uint
}

func NewSet(items ...int) *Set {
	result := &Set{}
	if len(items) > 0 {
		result.Add(items...)
	}
	return result
}

func chunkIndex(item int) int {
	return item >> IntSizeShift
}

func bitMask(item int) uint {
	return 1 << (uint(item) & (IntSize - 1))
}

func (s *Set) allocate(item int) {
	index := chunkIndex(item)
	if index < len(s.chunks) {
		return
	}

	chunks := make([]uint, index+1)
	copy(chunks, s.chunks)
	s.chunks = chunks
}

// Add panics on negative items.
func (s *Set) Add(items ...int) *Set {
	for _, item := range items {
		if item < 0 {
			panic("ints: negative set item")
		}

		s.allocate(item)
		s.chunks[chunkIndex(item)] |= bitMask(item)
	}
	return s
}

func (s *Set) Contains(item int) bool {
	if item < 0 || chunkIndex(item) >= len(s.chunks) {
		return false
	}

	return s.chunks[chunkIndex(item)]&bitMask(item) != 0
}

func (s *Set) Len() int {
	result := 0
	for _, chunk := range s.chunks {
		result += bits.OnesCount(chunk)
	}
	return result
}

func (s *Set) IsEmpty() bool {
	for _, chunk := range s.chunks {
		if chunk != 0 {
			return false
		}
	}
	return true
}

// ToSlice returns items in ascending order.
func (s *Set) ToSlice() []int {
	result := make([]int, 0, s.Len())
	s.Each(func(item int) {
		result = append(result, item)
	})
	return result
}

// Each calls f for every item in ascending order.
func (s *Set) Each(f func(item int)) {
	for i, chunk := range s.chunks {
		base := i << IntSizeShift
		for chunk != 0 {
			bit := bits.TrailingZeros(chunk)
			f(base + bit)
			chunk &= chunk - 1
		}
	}
}

func (s *Set) Copy() *Set {
	chunks := make([]uint, len(s.chunks))
	copy(chunks, s.chunks)
	return &Set{chunks}
}

// Union adds all items of t to s.
func (s *Set) Union(t *Set) *Set {
	if len(t.chunks) > len(s.chunks) {
		chunks := make([]uint, len(t.chunks))
		copy(chunks, s.chunks)
		s.chunks = chunks
	}
	for i, chunk := range t.chunks {
		s.chunks[i] |= chunk
	}
	return s
}

// Union returns a new set, arguments are not changed.
func Union(s, t *Set) *Set {
	return s.Copy().Union(t)
}

// Key returns canonical byte representation of the set: equal sets always have equal keys.
func (s *Set) Key() []byte {
	chunks := s.chunks
	for len(chunks) > 0 && chunks[len(chunks)-1] == 0 {
		chunks = chunks[:len(chunks)-1]
	}

	result := make([]byte, 0, len(chunks)*8)
	for _, chunk := range chunks {
		result = binary.LittleEndian.AppendUint64(result, uint64(chunk))
	}
	return result
}
