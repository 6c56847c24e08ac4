// Package memo caches a computed value against the identity of a dependency.
//
// It is the dependency-keyed cache the store uses to keep its dispatcher
// stable across renders: the cached value is recomputed only when the key
// passed to Get is not the same value as the key it was computed from.
package memo

import "reflect"

// Memo holds at most one cached value. The zero value is empty and ready to use.
// A Memo is not safe for concurrent use.
type Memo[K, V any] struct {
	key      K
	val      V
	ok       bool
	computes int
}

// Get returns the cached value when key is the same as the cached key,
// otherwise it calls compute, caches the result against key and returns it.
func (m *Memo[K, V]) Get(key K, compute func(K) V) V {
	if m.ok && Same(m.key, key) {
		return m.val
	}
	m.key = key
	m.val = compute(key)
	m.ok = true
	m.computes++
	return m.val
}

// Peek returns the cached value and whether one is present.
func (m *Memo[K, V]) Peek() (V, bool) {
	return m.val, m.ok
}

// Computes reports how many times the value has been computed.
func (m *Memo[K, V]) Computes() int {
	return m.computes
}

// Reset drops the cached value.
func (m *Memo[K, V]) Reset() {
	var zeroK K
	var zeroV V
	m.key, m.val, m.ok = zeroK, zeroV, false
}

// Same reports whether a and b are the same value under ==.
// Values of different dynamic types are never the same. Values that are not
// comparable at runtime (funcs, maps, slices, or structs holding them) are never
// the same either, even as themselves, so the caller recomputes instead of panicking.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if !va.Comparable() || !vb.Comparable() {
		return false
	}
	return a == b
}
