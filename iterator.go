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

// Iterator walks a container in insertion order (spec §4.6). It remains
// valid across structural mutation of the container it was created from
// (grows, shrinks, rehashes, promotion, Clear) by following the obsolete
// table's successor link and re-mapping its index across whatever slots
// were dropped along the way. It is not safe for concurrent use, matching
// this package's single-threaded design (spec §5).
type Iterator[K comparable, V any] struct {
	table tableView[K, V]
	index int
}

func newIterator[K comparable, V any](t tableView[K, V]) *Iterator[K, V] {
	return &Iterator[K, V]{table: t, index: 0}
}

// transition follows the obsolete-table chain until it or reaches a
// current (non-obsolete) table, adjusting index at every hop per spec
// §4.6: a Clear resets the index to 0 (the successor is fresh and empty);
// otherwise every recorded removed index less than the current index
// shifts the index down by one, and the search stops as soon as a
// recorded index is >= the current index, since removed indices are
// logged in ascending order during a single rehash pass.
func (it *Iterator[K, V]) transition() {
	for {
		succ, obsolete := it.table.Successor()
		if !obsolete {
			return
		}
		if it.table.WasCleared() {
			it.index = 0
		} else {
			it.index -= it.table.RemovedBefore(it.index)
		}
		it.table = succ
	}
}

// HasMore transitions to the current table if needed, then advances past
// any tombstoned slots. It reports whether a live entry remains to visit.
// Once exhausted, the iterator repoints itself at the canonical empty
// table so it releases its reference to whatever table it was walking
// (spec §4.6).
func (it *Iterator[K, V]) HasMore() bool {
	it.transition()
	used := it.table.UsedCapacity()
	for it.index < used && it.table.IsHole(it.index) {
		it.index++
	}
	if it.index >= used {
		it.table = sharedEmpty[K, V]()
		it.index = 0
		return false
	}
	return true
}

// MoveNext advances past the current entry. Call HasMore again before
// reading CurrentKey/CurrentValue.
func (it *Iterator[K, V]) MoveNext() {
	it.index++
}

// CurrentKey returns the key at the iterator's current position. Only
// valid immediately after HasMore returned true.
func (it *Iterator[K, V]) CurrentKey() K {
	return it.table.KeyAt(it.index)
}

// CurrentValue returns the value at the iterator's current position. Only
// valid immediately after HasMore returned true.
func (it *Iterator[K, V]) CurrentValue() V {
	return it.table.ValueAt(it.index)
}
