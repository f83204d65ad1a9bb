package ranking

import (
	"iter"
	"slices"

	"github.com/google/btree"
)

const treeDegree = 16

type bucket[V comparable] struct {
	key    FloatKey
	values []V
}

// SortedMultiMap is an ordered multimap from FloatKey to values.
// Values under the same key keep their insertion order. It is not safe for
// concurrent use and must not be mutated while an iteration is running.
type SortedMultiMap[V comparable] struct {
	tree *btree.BTreeG[*bucket[V]]
	size int
}

// NewSortedMultiMap creates an empty map
func NewSortedMultiMap[V comparable]() *SortedMultiMap[V] {
	return &SortedMultiMap[V]{
		tree: btree.NewG(treeDegree, func(a, b *bucket[V]) bool {
			return a.key.Less(b.key)
		}),
	}
}

// Insert appends value to the bucket for key, creating the bucket if needed
func (m *SortedMultiMap[V]) Insert(key FloatKey, value V) {
	m.size++
	if b, ok := m.tree.Get(&bucket[V]{key: key}); ok {
		b.values = append(b.values, value)
		return
	}
	m.tree.ReplaceOrInsert(&bucket[V]{key: key, values: []V{value}})
}

// Delete removes the first value equal to value under key. An emptied bucket
// is removed. It reports whether anything was removed.
func (m *SortedMultiMap[V]) Delete(key FloatKey, value V) bool {
	b, ok := m.tree.Get(&bucket[V]{key: key})
	if !ok {
		return false
	}
	pos := slices.Index(b.values, value)
	if pos < 0 {
		return false
	}
	b.values = slices.Delete(b.values, pos, pos+1)
	if len(b.values) == 0 {
		m.tree.Delete(b)
	}
	m.size--
	return true
}

// All yields every (key, value) pair in ascending key order, then insertion order
func (m *SortedMultiMap[V]) All() iter.Seq2[FloatKey, V] {
	return func(yield func(FloatKey, V) bool) {
		m.tree.Ascend(func(b *bucket[V]) bool {
			for _, v := range b.values {
				if !yield(b.key, v) {
					return false
				}
			}
			return true
		})
	}
}

// Values yields the values in the same order as All
func (m *SortedMultiMap[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Take returns up to n values from the front of the order
func (m *SortedMultiMap[V]) Take(n int) []V {
	if n <= 0 {
		return nil
	}
	out := make([]V, 0, min(n, m.size))
	for v := range m.Values() {
		if len(out) == n {
			break
		}
		out = append(out, v)
	}
	return out
}

// First returns the entry with the lowest key
func (m *SortedMultiMap[V]) First() (FloatKey, V, bool) {
	b, ok := m.tree.Min()
	if !ok {
		var zero V
		return 0, zero, false
	}
	return b.key, b.values[0], true
}

// Last returns the most recently inserted entry with the highest key
func (m *SortedMultiMap[V]) Last() (FloatKey, V, bool) {
	b, ok := m.tree.Max()
	if !ok {
		var zero V
		return 0, zero, false
	}
	return b.key, b.values[len(b.values)-1], true
}

// Len returns the number of stored values
func (m *SortedMultiMap[V]) Len() int {
	return m.size
}

// KeyCount returns the number of distinct keys
func (m *SortedMultiMap[V]) KeyCount() int {
	return m.tree.Len()
}
