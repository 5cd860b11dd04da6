// Package bmap implements basic map with []byte key type.
package bmap

import (
	"unsafe"
)

// BMap implements generic hashmap with []byte key type.
// Keys cannot be deleted.
// Added keys are copied into internal storage, so callers may reuse key buffers.
type BMap[T any] struct {
	keys [][]byte
	smap map[string]T
}

// New creates bytes map. size is a capacity hint.
func New[T any](size int) *BMap[T] {
	return &BMap[T]{
		smap: make(map[string]T, size),
	}
}

func lookupKey(key []byte) string {
	if len(key) == 0 {
		return ""
	}
	return unsafe.String(&key[0], len(key))
}

// Get returns stored value by key and a flag telling whether this key is stored in the map.
// Returns zero value if the key is not present.
func (m *BMap[T]) Get(key []byte) (T, bool) {
	result, has := m.smap[lookupKey(key)]
	return result, has
}

// Set adds or rewrites value for given key.
func (m *BMap[T]) Set(key []byte, value T) {
	skey := lookupKey(key)
	if _, has := m.smap[skey]; !has && len(key) != 0 {
		stored := append([]byte(nil), key...)
		m.keys = append(m.keys, stored)
		skey = lookupKey(stored)
	}
	m.smap[skey] = value
}

// Intern returns value stored for the key, creating it with create if the key is new.
// The flag is true if the value was created.
func (m *BMap[T]) Intern(key []byte, create func() T) (T, bool) {
	if value, has := m.Get(key); has {
		return value, false
	}

	value := create()
	m.Set(key, value)
	return value, true
}
