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

// handler is the uniform facade over the small/large forms (spec §4.5).
// It routes reads directly to whichever form is active, and on writes
// attempts the small form first, promoting to a large table on capacity
// exhaustion. Promotion is one-way: once isLarge flips true it never
// flips back, even if deletions later shrink the element count back down
// to a handful.
//
// handler never mutates a table object that an Iterator might be
// referencing in place; every structural change (grow, shrink, rehash,
// promotion, clear) builds a fresh table object and retires the old one
// onto its successor link, then repoints handler's own small/large field
// at the fresh one. See small.go/large.go/table.go.
type handler[K comparable, V any] struct {
	ops   KeyOps[K]
	alloc Allocator[V]

	isLarge bool
	small   *smallTable[K, V]
	large   *largeTable[K, V]
}

// newHandler allocates per spec §4.5 allocate(capacity): small form below
// the small-form ceiling, large form at or above it.
func newHandler[K comparable, V any](capacity int, opts ...option[K, V]) (*handler[K, V], error) {
	h := &handler[K, V]{
		ops:   defaultKeyOps[K](),
		alloc: defaultAllocator[V]{},
	}
	for _, o := range opts {
		o.apply(h)
	}

	if capacity < kMaxCapacitySmall {
		small, err := newSmallTable[K, V](capacity, h.alloc)
		if err != nil {
			return nil, err
		}
		h.small = small
		return h, nil
	}
	large, err := newLargeTable[K, V](capacity, h.alloc)
	if err != nil {
		return nil, err
	}
	h.isLarge = true
	h.large = large
	return h, nil
}

// current returns the table an Iterator should start walking.
func (h *handler[K, V]) current() tableView[K, V] {
	if h.isLarge {
		return h.large
	}
	return h.small
}

func (h *handler[K, V]) NumElements() int {
	if h.isLarge {
		return h.large.NumElements()
	}
	return h.small.NumElements()
}

func (h *handler[K, V]) NumDeleted() int {
	if h.isLarge {
		return h.large.numDeleted
	}
	return h.small.numDeleted
}

func (h *handler[K, V]) Capacity() int {
	if h.isLarge {
		return h.large.Capacity()
	}
	return h.small.Capacity()
}

func (h *handler[K, V]) NumBuckets() int {
	if h.isLarge {
		return h.large.numBuckets
	}
	return h.small.numBuckets
}

func (h *handler[K, V]) IsLarge() bool { return h.isLarge }

func (h *handler[K, V]) KeyAt(entry int) K {
	if h.isLarge {
		return h.large.KeyAt(entry)
	}
	return h.small.KeyAt(entry)
}

func (h *handler[K, V]) ValueAt(entry int) V {
	if h.isLarge {
		return h.large.ValueAt(entry)
	}
	return h.small.ValueAt(entry)
}

func (h *handler[K, V]) SetValueAt(entry int, value V) {
	if h.isLarge {
		h.large.setValue(entry, value)
		return
	}
	h.small.setValue(entry, value)
}

func (h *handler[K, V]) Find(key K) (int, bool) {
	if h.isLarge {
		return h.large.findEntry(h.ops, key)
	}
	return h.small.findEntry(h.ops, key)
}

func (h *handler[K, V]) HasKey(key K) bool {
	_, ok := h.Find(key)
	return ok
}

func (h *handler[K, V]) Hash() int64 {
	if h.isLarge {
		return h.large.Hash()
	}
	return h.small.Hash()
}

func (h *handler[K, V]) SetHash(v int64) {
	if h.isLarge {
		h.large.SetHash(v)
		return
	}
	h.small.SetHash(v)
}

// Add implements spec §4.5 add: try the small form; on small-form
// capacity exhaustion either grow the small form in place or, once it's
// already at the hard ceiling, promote to a large table via
// adjustRepresentation and retry there.
func (h *handler[K, V]) Add(key K, value V) (int, bool, error) {
	if !h.isLarge {
		entry, created, err := h.small.tryInsert(h.ops, key, value)
		if err == nil {
			return entry, created, nil
		}
		if err != errSmallFormFull {
			return 0, false, err
		}
		if _, _, ok := h.small.nextGrowthCapacity(); ok {
			if err := h.growSmall(); err != nil {
				return 0, false, err
			}
			return h.small.tryInsert(h.ops, key, value)
		}
		if err := h.adjustRepresentation(); err != nil {
			return 0, false, err
		}
		// falls through to the large-form path below
	}

	if newCapacity, _, needed := h.large.needsRehashForAdding(); needed {
		if err := h.growLarge(newCapacity); err != nil {
			return 0, false, err
		}
	}
	return h.large.tryInsert(h.ops, key, value)
}

// Delete implements spec §4.2/§4.3 delete: find, then tombstone. It never
// rewires the bucket chain and never triggers a shrink on its own —
// NameDictionary's delete_entry (dict.go) layers the shrink-after-delete
// behavior spec §4.4 calls for on top of this.
func (h *handler[K, V]) Delete(key K) bool {
	if h.isLarge {
		return h.large.delete(h.ops, key)
	}
	return h.small.delete(h.ops, key)
}

// growSmall implements the non-promoting half of small-table grow (spec
// §4.2): compact in place if deletions dominate, else double (with the
// kGrowthHack ceiling jump), producing a fresh table and retiring the
// current one onto its successor link for iterator migration.
func (h *handler[K, V]) growSmall() error {
	newCapacity, _, ok := h.small.nextGrowthCapacity()
	if !ok {
		return errSmallFormFull
	}
	fresh, log, err := h.small.rehashInto(h.ops, newCapacity, h.alloc)
	if err != nil {
		// Per spec §9 open question: a failed rehash allocation must not
		// obsolete the source. Iterators referencing it stay valid.
		return err
	}
	h.small.successor = fresh
	h.small.removed = log
	h.small = fresh
	return nil
}

// growLarge implements large-table ensure_capacity_for_adding /
// grow-on-full (spec §4.3).
func (h *handler[K, V]) growLarge(newCapacity int) error {
	fresh, log, err := h.large.rehashInto(h.ops, newCapacity, h.alloc)
	if err != nil {
		return err
	}
	h.large.nextTable = fresh
	h.large.removed = log
	h.large = fresh
	return nil
}

// adjustRepresentation implements spec §4.5's one-way promotion: build a
// fresh large table at the minimum large-form size and re-insert every
// live small-table entry in source (ascending slot) order, so the large
// table's iteration order exactly matches the small table's (testable
// property 9). The small table's holes are logged exactly as in a normal
// rehash so migrating iterators see a consistent obsolete-chain step.
func (h *handler[K, V]) adjustRepresentation() error {
	large, err := newLargeTable[K, V](kInitialCapacityLarge, h.alloc)
	if err != nil {
		return err
	}

	var log removedLog
	used := h.small.UsedCapacity()
	for i := 0; i < used; i++ {
		if h.small.tomb[i] {
			log.record(i)
			continue
		}
		if newCapacity, _, needed := large.needsRehashForAdding(); needed {
			fresh, _, rerr := large.rehashInto(h.ops, newCapacity, h.alloc)
			if rerr != nil {
				return rerr
			}
			large = fresh
		}
		if _, _, iErr := large.tryInsert(h.ops, h.small.keys[i], h.small.values[i]); iErr != nil {
			return iErr
		}
	}
	large.ownHash = h.small.ownHash

	h.small.successor = large
	h.small.removed = log
	h.isLarge = true
	h.large = large
	return nil
}

// Shrink implements spec's shrink dispatch (§4.2/§4.3), a no-op unless
// live elements have dropped below a quarter of capacity.
func (h *handler[K, V]) Shrink() error {
	if h.isLarge {
		newCapacity, ok := h.large.needsShrink()
		if !ok {
			return nil
		}
		fresh, log, err := h.large.rehashInto(h.ops, newCapacity, h.alloc)
		if err != nil {
			return err
		}
		h.large.nextTable = fresh
		h.large.removed = log
		h.large = fresh
		return nil
	}
	newCapacity, ok := h.small.nextShrinkCapacity()
	if !ok {
		return nil
	}
	fresh, log, err := h.small.rehashInto(h.ops, newCapacity, h.alloc)
	if err != nil {
		return err
	}
	h.small.successor = fresh
	h.small.removed = log
	h.small = fresh
	return nil
}

// Clear implements spec §4.3 clear, generalized to both forms (the
// distilled spec only spells it out for the large table; DESIGN.md's
// "Clear generalized to both forms" decision extends the same "fresh empty successor, stamp
// clearedTableSentinel" behavior to the small form uniformly, since
// Testable Property 8 requires iterator stability "for all variants and
// both forms", and a Set/Map/NameDictionary caller can clear a table that
// never grew past the small form). It never promotes: a cleared small
// table stays small.
func (h *handler[K, V]) Clear() error {
	if h.isLarge {
		fresh, err := newLargeTable[K, V](kInitialCapacityLarge, h.alloc)
		if err != nil {
			return err
		}
		h.large.nextTable = fresh
		h.large.cleared = true
		h.large.numDeleted = clearedTableSentinel
		h.large = fresh
		return nil
	}
	fresh, err := newSmallTable[K, V](kInitialCapacitySmall, h.alloc)
	if err != nil {
		return err
	}
	h.small.successor = fresh
	h.small.cleared = true
	h.small.numDeleted = clearedTableSentinel
	h.small = fresh
	return nil
}

// Stats is a diagnostic snapshot of the active table, consumed by
// cmd/ordhashctl and useful in tests that want to assert on form/capacity
// without reaching into package-private fields (spec §9 supplemented
// feature, grounded on the teacher's debugString).
type Stats struct {
	Large        bool
	Capacity     int
	NumBuckets   int
	NumElements  int
	NumDeleted   int
	UsedCapacity int
}

func (h *handler[K, V]) StatsSnapshot() Stats {
	return Stats{
		Large:        h.isLarge,
		Capacity:     h.Capacity(),
		NumBuckets:   h.NumBuckets(),
		NumElements:  h.NumElements(),
		NumDeleted:   h.NumDeleted(),
		UsedCapacity: h.NumElements() + h.NumDeleted(),
	}
}
