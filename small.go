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

// smallTable is the bounded inline form (spec §4.2): byte-sized bucket
// heads and chain links, capacity clamped to kMaxCapacitySmall. It is
// cheap to allocate and to scan linearly, which is the common case for
// the handful of entries most Sets/Maps/NameDictionaries ever hold.
//
// Mutation that changes a table's identity (grow, shrink, promotion) is
// never done in place: it builds a fresh table and leaves the old one
// retrievable through Successor, so that a live Iterator holding a
// pointer to the old table can still migrate (spec §5: "obsolete chains";
// see iterator.go transition). The handler facade, not smallTable itself,
// is responsible for swapping its own "current table" pointer over to the
// fresh one; see handler.go.
type smallTable[K comparable, V any] struct {
	buckets   []uint8
	chainNext []uint8
	keys      []K
	values    []V
	tomb      []bool

	numBuckets  int
	capacity    int
	numElements int
	numDeleted  int

	successor tableView[K, V]
	cleared   bool
	removed   removedLog

	// ownHash is the NameDictionary-variant's table-level hash word
	// (spec §3 NameDictionary: "table additionally carries a single hash
	// word for the owning object"). -1 means unset. Set/Map tables never
	// set it but carry the field uniformly so rehash/grow/shrink copy it
	// without a variant-specific code path.
	ownHash int64
}

func newSmallTable[K comparable, V any](capacity int, alloc Allocator[V]) (*smallTable[K, V], error) {
	if capacity > kMaxCapacitySmall {
		return nil, ErrCapacityExceeded
	}
	if capacity < kInitialCapacitySmall {
		// A zero-bucket table has nowhere for bucketFor to point; floor to
		// the smallest real capacity so findEntry/tryInsert never index an
		// empty buckets slice.
		capacity = kInitialCapacitySmall
	}
	values, err := alloc.AllocValues(capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAllocation, err)
	}
	t := &smallTable[K, V]{
		buckets:    make([]uint8, capacity),
		chainNext:  make([]uint8, capacity),
		keys:       make([]K, capacity),
		values:     values,
		tomb:       make([]bool, capacity),
		numBuckets: capacity,
		capacity:   capacity,
		ownHash:    -1,
	}
	for i := range t.buckets {
		t.buckets[i] = notFoundSmall
	}
	for i := range t.chainNext {
		t.chainNext[i] = notFoundSmall
	}
	return t, nil
}

func (t *smallTable[K, V]) Capacity() int       { return t.capacity }
func (t *smallTable[K, V]) UsedCapacity() int   { return t.numElements + t.numDeleted }
func (t *smallTable[K, V]) NumElements() int    { return t.numElements }
func (t *smallTable[K, V]) KeyAt(idx int) K      { return t.keys[idx] }
func (t *smallTable[K, V]) ValueAt(idx int) V    { return t.values[idx] }
func (t *smallTable[K, V]) IsHole(idx int) bool  { return t.tomb[idx] }

func (t *smallTable[K, V]) Successor() (tableView[K, V], bool) {
	if t.successor == nil {
		return nil, false
	}
	return t.successor, true
}

func (t *smallTable[K, V]) WasCleared() bool          { return t.cleared }
func (t *smallTable[K, V]) RemovedBefore(idx int) int { return t.removed.before(idx) }

func (t *smallTable[K, V]) Hash() int64     { return t.ownHash }
func (t *smallTable[K, V]) SetHash(h int64) { t.ownHash = h }

func (t *smallTable[K, V]) bucketFor(ops KeyOps[K], key K) int {
	return hashToBucketSmall(ops.Hash(key), t.numBuckets)
}

// findEntry walks the bucket chain, matching live entries by ops.Equal
// (spec §4.2 find_entry). An undefined/absent key yields NotFound.
func (t *smallTable[K, V]) findEntry(ops KeyOps[K], key K) (int, bool) {
	b := t.bucketFor(ops, key)
	for e := t.buckets[b]; e != notFoundSmall; e = t.chainNext[e] {
		i := int(e)
		if !t.tomb[i] && ops.Equal(t.keys[i], key) {
			return i, true
		}
	}
	return 0, false
}

// tryInsert inserts key/value if key is absent and there is room in the
// data region. Returns (entry, true, nil) on a fresh insertion,
// (entry, false, nil) if key was already present, or
// (0, false, errSmallFormFull) if the table has no free slot left — the
// caller must grow or promote and retry.
func (t *smallTable[K, V]) tryInsert(ops KeyOps[K], key K, value V) (int, bool, error) {
	if i, ok := t.findEntry(ops, key); ok {
		return i, false, nil
	}
	if t.UsedCapacity() == t.capacity {
		return 0, false, errSmallFormFull
	}
	b := t.bucketFor(ops, key)
	e := t.UsedCapacity()
	t.keys[e] = key
	t.values[e] = value
	t.tomb[e] = false
	t.chainNext[e] = t.buckets[b]
	t.buckets[b] = uint8(e)
	t.numElements++
	t.checkInvariantsOk()
	return e, true, nil
}

// setValue overwrites the value at a live entry without touching order
// (spec §4.4 Map.set_entry).
func (t *smallTable[K, V]) setValue(entry int, value V) { t.values[entry] = value }

func (t *smallTable[K, V]) delete(ops KeyOps[K], key K) bool {
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

// nextGrowthCapacity implements spec §4.2 grow's capacity-selection rule:
// compact at the same capacity once at least half the capacity is
// tombstoned, otherwise double, with the kGrowthHack special case that
// jumps straight to kMaxCapacitySmall when doubling would overshoot it.
// ok=false means the small form cannot grow any further.
func (t *smallTable[K, V]) nextGrowthCapacity() (capacity int, compaction bool, ok bool) {
	if t.numDeleted >= t.capacity/2 {
		return t.capacity, true, true
	}
	if t.capacity >= kMaxCapacitySmall {
		return 0, false, false
	}
	doubled := t.capacity * 2
	if doubled > kMaxCapacitySmall {
		doubled = kMaxCapacitySmall
	}
	return doubled, false, true
}

// nextShrinkCapacity implements spec §4.2 shrink: rehash at half capacity
// once live elements drop below a quarter of capacity (testable property
// 7: otherwise a no-op).
func (t *smallTable[K, V]) nextShrinkCapacity() (capacity int, ok bool) {
	if t.numElements >= t.capacity/4 {
		return 0, false
	}
	newCapacity := t.capacity / 2
	if newCapacity < kInitialCapacitySmall {
		return 0, false
	}
	return newCapacity, true
}

// rehashInto builds a fresh small table at newCapacity, walking source
// entries in ascending slot order and re-inserting live ones in that same
// order (preserving insertion order, spec invariant 5), recording the
// ascending indices of every hole it skips along the way so a migrating
// iterator can recompute its index (spec §4.6 transition). It never
// mutates t.
func (t *smallTable[K, V]) rehashInto(ops KeyOps[K], newCapacity int, alloc Allocator[V]) (*smallTable[K, V], removedLog, error) {
	fresh, err := newSmallTable[K, V](newCapacity, alloc)
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
		fresh.buckets[b] = uint8(e)
		fresh.numElements++
	}
	fresh.ownHash = t.ownHash
	return fresh, log, nil
}

func (t *smallTable[K, V]) checkInvariantsOk() {
	if !checkInvariants {
		return
	}
	if t.numElements+t.numDeleted > t.capacity {
		panic(fmt.Sprintf("ordhash: small table invariant violated: elements=%d deleted=%d capacity=%d",
			t.numElements, t.numDeleted, t.capacity))
	}
}
