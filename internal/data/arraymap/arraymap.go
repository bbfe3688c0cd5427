// Package arraymap provides a small insertion-ordered map backed by a single
// growable buffer of key/value pairs.
//
// Keyed lookups are linear scans. Records bound through this package hold a
// handful of entries, where a flat buffer beats hashing.
package arraymap

import (
	"fmt"
	"iter"
	"reflect"
	"strings"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Map is an insertion-ordered map with positional access.
// The zero value is an empty map ready to use.
type Map[K comparable, V any] struct {
	entries []entry[K, V]
	size    int
}

// New creates an empty map with room for capacity entries.
func New[K comparable, V any](capacity int) *Map[K, V] {
	m := &Map[K, V]{}
	m.EnsureCapacity(capacity)
	return m
}

// Of builds a map from alternating keys and values.
func Of[K comparable, V any](pairs ...any) (*Map[K, V], error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("arraymap: odd number of arguments: %d", len(pairs))
	}
	m := New[K, V](len(pairs) / 2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := asType[K](pairs[i])
		if !ok {
			return nil, fmt.Errorf("arraymap: key %d has type %T", i/2, pairs[i])
		}
		v, ok := asType[V](pairs[i+1])
		if !ok {
			return nil, fmt.Errorf("arraymap: value %d has type %T", i/2, pairs[i+1])
		}
		m.Add(k, v)
	}
	return m, nil
}

func asType[T any](x any) (T, bool) {
	var zero T
	if x == nil {
		switch reflect.TypeFor[T]().Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return zero, true
		}
		return zero, false
	}
	t, ok := x.(T)
	return t, ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.size
}

// Cap returns the number of entries the buffer can hold without growing.
func (m *Map[K, V]) Cap() int {
	return len(m.entries)
}

// Get returns the value for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	if i := m.IndexOf(key); i >= 0 {
		return m.entries[i].value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	return m.IndexOf(key) >= 0
}

// IndexOf returns the position of key or -1.
func (m *Map[K, V]) IndexOf(key K) int {
	for i := 0; i < m.size; i++ {
		if m.entries[i].key == key {
			return i
		}
	}
	return -1
}

// Put stores value under key, replacing and returning any previous value.
// New keys are appended.
func (m *Map[K, V]) Put(key K, value V) (V, bool) {
	if i := m.IndexOf(key); i >= 0 {
		prev := m.entries[i].value
		m.entries[i].value = value
		return prev, true
	}
	m.Add(key, value)
	var zero V
	return zero, false
}

// Add appends an entry without checking for an existing key.
func (m *Map[K, V]) Add(key K, value V) {
	m.Set(m.size, key, value)
}

// Remove deletes key and returns its value.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	return m.RemoveAt(m.IndexOf(key))
}

// At returns the entry at index.
func (m *Map[K, V]) At(index int) (K, V, bool) {
	if index < 0 || index >= m.size {
		var k K
		var v V
		return k, v, false
	}
	e := m.entries[index]
	return e.key, e.value, true
}

// Key returns the key at index.
func (m *Map[K, V]) Key(index int) (K, bool) {
	k, _, ok := m.At(index)
	return k, ok
}

// Value returns the value at index.
func (m *Map[K, V]) Value(index int) (V, bool) {
	_, v, ok := m.At(index)
	return v, ok
}

// Set overwrites the entry at index and returns the previous value. An index
// at or past Len grows the map to index+1 entries, leaving any gap zeroed.
// Duplicate keys are not checked. Set panics on a negative index.
func (m *Map[K, V]) Set(index int, key K, value V) V {
	if index < 0 {
		panic(fmt.Sprintf("arraymap: negative index %d", index))
	}
	minSize := index + 1
	m.EnsureCapacity(minSize)
	prev := m.entries[index].value
	m.entries[index] = entry[K, V]{key: key, value: value}
	if minSize > m.size {
		m.size = minSize
	}
	return prev
}

// SetValue replaces the value at index, returning the previous one.
func (m *Map[K, V]) SetValue(index int, value V) (V, bool) {
	if index < 0 || index >= m.size {
		var zero V
		return zero, false
	}
	prev := m.entries[index].value
	m.entries[index].value = value
	return prev, true
}

// RemoveAt deletes the entry at index, shifting later entries down.
func (m *Map[K, V]) RemoveAt(index int) (V, bool) {
	if index < 0 || index >= m.size {
		var zero V
		return zero, false
	}
	prev := m.entries[index].value
	copy(m.entries[index:m.size], m.entries[index+1:m.size])
	m.size--
	m.entries[m.size] = entry[K, V]{}
	return prev, true
}

// Clear removes all entries and releases the buffer.
func (m *Map[K, V]) Clear() {
	m.entries = nil
	m.size = 0
}

// EnsureCapacity grows the buffer to hold at least n entries.
func (m *Map[K, V]) EnsureCapacity(n int) {
	if n <= len(m.entries) {
		return
	}
	newCap := len(m.entries)/2*3 + 1
	if newCap < n {
		newCap = n
	}
	m.resize(newCap)
}

// Trim shrinks the buffer to Len.
func (m *Map[K, V]) Trim() {
	m.resize(m.size)
}

func (m *Map[K, V]) resize(n int) {
	if n == 0 {
		m.entries = nil
		return
	}
	buf := make([]entry[K, V], n)
	copy(buf, m.entries[:m.size])
	m.entries = buf
}

// Clone returns a copy with its own buffer. Values are copied shallowly.
func (m *Map[K, V]) Clone() *Map[K, V] {
	c := &Map[K, V]{size: m.size}
	if m.entries != nil {
		c.entries = make([]entry[K, V], len(m.entries))
		copy(c.entries, m.entries)
	}
	return c
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, m.size)
	for i := 0; i < m.size; i++ {
		keys[i] = m.entries[i].key
	}
	return keys
}

// All yields entries in insertion order. The map must not be modified during
// iteration; use Iterator for removal.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := 0; i < m.size; i++ {
			if !yield(m.entries[i].key, m.entries[i].value) {
				return
			}
		}
	}
}

// Iterator walks the map and supports removing the current entry.
type Iterator[K comparable, V any] struct {
	m         *Map[K, V]
	next      int
	current   int
	removable bool
}

// Iterator returns an iterator positioned before the first entry.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{m: m, current: -1}
}

// Next advances to the next entry.
func (it *Iterator[K, V]) Next() bool {
	if it.next >= it.m.size {
		it.removable = false
		return false
	}
	it.current = it.next
	it.next++
	it.removable = true
	return true
}

// Key returns the key of the current entry.
func (it *Iterator[K, V]) Key() K {
	k, _ := it.m.Key(it.current)
	return k
}

// Value returns the value of the current entry.
func (it *Iterator[K, V]) Value() V {
	v, _ := it.m.Value(it.current)
	return v
}

// SetValue replaces the value of the current entry.
func (it *Iterator[K, V]) SetValue(v V) V {
	if !it.removable {
		panic("arraymap: SetValue without current entry")
	}
	prev, _ := it.m.SetValue(it.current, v)
	return prev
}

// Remove deletes the current entry. It panics when called before Next or
// twice for the same entry.
func (it *Iterator[K, V]) Remove() {
	if !it.removable {
		panic("arraymap: Remove without current entry")
	}
	it.m.RemoveAt(it.current)
	it.next = it.current
	it.removable = false
}

// String renders the map as {k=v, ...}.
func (m *Map[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i := 0; i < m.size; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v=%v", m.entries[i].key, m.entries[i].value)
	}
	b.WriteByte('}')
	return b.String()
}
