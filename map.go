// Copyright 2026 The ordhash Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ordhash

// OrderedMap is an insertion-ordered map from keys to values: Put, Get,
// Delete, and All, with iteration in first-insertion order (spec §4.4
// Map). It has two payload slots per entry (key, value); setting an
// existing key's value overwrites in place without changing its
// position.
//
// An OrderedMap is NOT goroutine-safe (spec §5 Non-goals).
type OrderedMap[K comparable, V any] struct {
	h *handler[K, V]
}

// NewMap constructs an OrderedMap. If initialCapacity is 0 the map starts
// in the small form and grows on first insert.
func NewMap[K comparable, V any](initialCapacity int, opts ...option[K, V]) (*OrderedMap[K, V], error) {
	h, err := newHandler[K, V](initialCapacity, opts...)
	if err != nil {
		return nil, err
	}
	return &OrderedMap[K, V]{h: h}, nil
}

// Put inserts or overwrites the value for key. Overwriting an existing
// key does not change its iteration position (spec §4.4 Map.set_entry).
func (m *OrderedMap[K, V]) Put(key K, value V) error {
	entry, created, err := m.h.Add(key, value)
	if err != nil {
		return err
	}
	if !created {
		m.h.SetValueAt(entry, value)
	}
	return nil
}

// Get retrieves the value for key, returning ok=false if absent.
func (m *OrderedMap[K, V]) Get(key K) (value V, ok bool) {
	entry, found := m.h.Find(key)
	if !found {
		return value, false
	}
	return m.h.ValueAt(entry), true
}

// Has reports whether key is present.
func (m *OrderedMap[K, V]) Has(key K) bool { return m.h.HasKey(key) }

// GetHash returns the stored hash for rawKey, or -1 if rawKey isn't of
// this map's key type or isn't present (spec §6 get_hash). rawKey is
// typed any rather than K because the host-facing contract this mirrors
// hands back whatever key a caller supplies without knowing its static
// type up front.
func (m *OrderedMap[K, V]) GetHash(rawKey any) int64 {
	key, ok := rawKey.(K)
	if !ok {
		return -1
	}
	if !m.h.HasKey(key) {
		return -1
	}
	return int64(m.h.ops.Hash(key))
}

// Delete removes key if present, returning whether it was.
func (m *OrderedMap[K, V]) Delete(key K) bool { return m.h.Delete(key) }

// Len returns the number of live entries.
func (m *OrderedMap[K, V]) Len() int { return m.h.NumElements() }

// Clear empties the map. Any live Iterator created before Clear restarts
// at the beginning of the emptied map, so it sees none of the pre-Clear
// entries it had not yet visited and only entries added after Clear.
func (m *OrderedMap[K, V]) Clear() error { return m.h.Clear() }

// Shrink compacts the backing table if live elements have fallen below a
// quarter of capacity; otherwise a no-op.
func (m *OrderedMap[K, V]) Shrink() error { return m.h.Shrink() }

// Stats reports the active table's form, capacity, and occupancy.
func (m *OrderedMap[K, V]) Stats() Stats { return m.h.StatsSnapshot() }

// Iterator returns a cursor over the map in insertion order, valid across
// any subsequent structural mutation of the map.
func (m *OrderedMap[K, V]) Iterator() *Iterator[K, V] { return newIterator[K, V](m.h.current()) }

// All calls yield for each key/value pair in insertion order. If yield
// returns false, All stops early — mirrors the teacher's range-over-
// function All method.
func (m *OrderedMap[K, V]) All(yield func(key K, value V) bool) {
	it := m.Iterator()
	for it.HasMore() {
		if !yield(it.CurrentKey(), it.CurrentValue()) {
			return
		}
		it.MoveNext()
	}
}
