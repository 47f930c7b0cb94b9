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

import "fmt"

// largeTable is the unbounded form (spec §4.3): capacity is always a
// power of two, and bucket heads and chain links are plain int32 indices
// rather than the small form's bytes.
type largeTable[K comparable, V any] struct {
	buckets   []int32
	chainNext []int32
	keys      []K
	values    []V
	tomb      []bool

	numBuckets  int
	capacity    int
	numElements int
	numDeleted  int

	nextTable *largeTable[K, V]
	cleared   bool
	removed   removedLog

	ownHash int64
}

func newLargeTable[K comparable, V any](capacity int, alloc Allocator[V]) (*largeTable[K, V], error) {
	if capacity < kInitialCapacityLarge {
		capacity = kInitialCapacityLarge
	}
	if !isPowerOfTwo(capacity) {
		capacity = nextPowerOfTwo(capacity)
	}
	values, err := alloc.AllocValues(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	numBuckets := numBucketsForCapacityLarge(capacity)
	t := &largeTable[K, V]{
		buckets:    make([]int32, numBuckets),
		chainNext:  make([]int32, capacity),
		keys:       make([]K, capacity),
		values:     values,
		tomb:       make([]bool, capacity),
		numBuckets: numBuckets,
		capacity:   capacity,
		ownHash:    -1,
	}
	for i := range t.buckets {
		t.buckets[i] = notFoundLarge
	}
	for i := range t.chainNext {
		t.chainNext[i] = notFoundLarge
	}
	return t, nil
}

func (t *largeTable[K, V]) Capacity() int       { return t.capacity }
func (t *largeTable[K, V]) UsedCapacity() int   { return t.numElements + t.numDeleted }
func (t *largeTable[K, V]) NumElements() int    { return t.numElements }
func (t *largeTable[K, V]) KeyAt(idx int) K      { return t.keys[idx] }
func (t *largeTable[K, V]) ValueAt(idx int) V    { return t.values[idx] }
func (t *largeTable[K, V]) IsHole(idx int) bool  { return t.tomb[idx] }

func (t *largeTable[K, V]) Successor() (tableView[K, V], bool) {
	if t.nextTable == nil {
		return nil, false
	}
	return t.nextTable, true
}

func (t *largeTable[K, V]) WasCleared() bool          { return t.cleared }
func (t *largeTable[K, V]) RemovedBefore(idx int) int { return t.removed.before(idx) }

func (t *largeTable[K, V]) Hash() int64     { return t.ownHash }
func (t *largeTable[K, V]) SetHash(h int64) { t.ownHash = h }

func (t *largeTable[K, V]) bucketFor(ops KeyOps[K], key K) int {
	return hashToBucketLarge(ops.Hash(key), t.numBuckets)
}

func (t *largeTable[K, V]) findEntry(ops KeyOps[K], key K) (int, bool) {
	b := t.bucketFor(ops, key)
	for e := t.buckets[b]; e != notFoundLarge; e = t.chainNext[e] {
		i := int(e)
		if !t.tomb[i] && ops.Equal(t.keys[i], key) {
			return i, true
		}
	}
	return 0, false
}

// tryInsert mirrors smallTable.tryInsert. The large form's capacity
// management (needsRehashForAdding) is handled by the caller before
// tryInsert is reached, so tryInsert here only fails if the caller didn't
// check needsRehashForAdding first — which would be a contract
// violation in this package's own code, not a user-facing error.
func (t *largeTable[K, V]) tryInsert(ops KeyOps[K], key K, value V) (int, bool, error) {
	if i, ok := t.findEntry(ops, key); ok {
		return i, false, nil
	}
	if t.UsedCapacity() == t.capacity {
		return 0, false, errSmallFormFull // reused: "no room", caller must check needsRehashForAdding first
	}
	b := t.bucketFor(ops, key)
	e := t.UsedCapacity()
	t.keys[e] = key
	t.values[e] = value
	t.tomb[e] = false
	t.chainNext[e] = t.buckets[b]
	t.buckets[b] = int32(e)
	t.numElements++
	t.checkInvariantsOk()
	return e, true, nil
}

func (t *largeTable[K, V]) setValue(entry int, value V) { t.values[entry] = value }

func (t *largeTable[K, V]) delete(ops KeyOps[K], key K) bool {
	i, ok := t.findEntry(ops, key)
	if !ok {
		return false
	}
	var zeroK K
	var zeroV V
	t.keys[i] = zeroK
	t.values[i] = zeroV
	t.tomb[i] = true
	t.numElements--
	t.numDeleted++
	t.checkInvariantsOk()
	return true
}

// needsRehashForAdding implements spec §4.3 ensure_capacity_for_adding: if
// there's still room in the data region, no rehash is needed. Otherwise
// compact at the same capacity if at least half of it is tombstoned,
// else double (an empty table steps up to kInitialCapacityLarge, handled
// by newLargeTable's own floor).
func (t *largeTable[K, V]) needsRehashForAdding() (newCapacity int, compaction, needed bool) {
	if t.UsedCapacity() < t.capacity {
		return 0, false, false
	}
	if t.numDeleted >= t.capacity/2 {
		return t.capacity, true, true
	}
	return t.capacity * 2, false, true
}

// needsShrink implements spec §4.3 shrink: rehash at half capacity when
// live elements drop below a quarter of capacity.
func (t *largeTable[K, V]) needsShrink() (newCapacity int, needed bool) {
	if t.numElements >= t.capacity/4 {
		return 0, false
	}
	newCapacity = t.capacity / 2
	if newCapacity < kInitialCapacityLarge {
		return 0, false
	}
	return newCapacity, true
}

// rehashInto mirrors smallTable.rehashInto: builds a fresh large table at
// newCapacity, walks source entries in ascending slot order, re-inserts
// live ones in that order, and logs the ascending indices of holes it
// skips. Never mutates t.
func (t *largeTable[K, V]) rehashInto(ops KeyOps[K], newCapacity int, alloc Allocator[V]) (*largeTable[K, V], removedLog, error) {
	fresh, err := newLargeTable[K, V](newCapacity, alloc)
	if err != nil {
		return nil, removedLog{}, err
	}
	var log removedLog
	used := t.UsedCapacity()
	for i := 0; i < used; i++ {
		if t.tomb[i] {
			log.record(i)
			continue
		}
		b := fresh.bucketFor(ops, t.keys[i])
		e := fresh.numElements
		fresh.keys[e] = t.keys[i]
		fresh.values[e] = t.values[i]
		fresh.chainNext[e] = fresh.buckets[b]
		fresh.buckets[b] = int32(e)
		fresh.numElements++
	}
	fresh.ownHash = t.ownHash
	return fresh, log, nil
}

func (t *largeTable[K, V]) checkInvariantsOk() {
	if !checkInvariants {
		return
	}
	if t.numElements+t.numDeleted > t.capacity {
		panic(fmt.Sprintf("ordhash: large table invariant violated: elements=%d deleted=%d capacity=%d",
			t.numElements, t.numDeleted, t.capacity))
	}
}
