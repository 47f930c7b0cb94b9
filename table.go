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

// tableView is the interface an Iterator walks. Both *smallTable[K,V] and
// *largeTable[K,V] implement it, which is what lets an iterator migrate
// across a small-to-large promotion using exactly the same machinery it
// uses to migrate across an in-form rehash: both are just "this table
// became obsolete, here is its successor and the slots it dropped along
// the way."
//
// Go has no universal "hole" value for an arbitrary comparable key type
// (unlike a tagged-pointer runtime, which reserves a sentinel object), so
// tombstones are tracked with an explicit per-slot boolean rather than by
// writing a hole sentinel into the key slot.
type tableView[K comparable, V any] interface {
	Capacity() int
	UsedCapacity() int
	NumElements() int
	KeyAt(idx int) K
	ValueAt(idx int) V
	IsHole(idx int) bool

	// Successor returns the table this one was superseded by, and true,
	// if this table is obsolete. Returns (nil, false) otherwise.
	Successor() (tableView[K, V], bool)

	// WasCleared reports whether this table became obsolete via Clear
	// (clearedTableSentinel), as opposed to a rehash/grow/promotion.
	WasCleared() bool

	// RemovedBefore returns how many of this (obsolete) table's dropped
	// slot indices are strictly less than idx. Only meaningful when this
	// table is obsolete and not WasCleared.
	RemovedBefore(idx int) int
}

// emptyTable is the canonical, immutable, shared empty table per variant
// (spec invariant 6): zero buckets, never mutated, used as the terminal
// state an exhausted iterator is repointed at so it releases its
// reference to whatever table it was walking (spec §4.6 has_more).
type emptyTable[K comparable, V any] struct{}

func (emptyTable[K, V]) Capacity() int                          { return 0 }
func (emptyTable[K, V]) UsedCapacity() int                      { return 0 }
func (emptyTable[K, V]) NumElements() int                       { return 0 }
func (emptyTable[K, V]) KeyAt(int) K                            { var z K; return z }
func (emptyTable[K, V]) ValueAt(int) V                          { var z V; return z }
func (emptyTable[K, V]) IsHole(int) bool                        { return false }
func (emptyTable[K, V]) Successor() (tableView[K, V], bool)     { return nil, false }
func (emptyTable[K, V]) WasCleared() bool                       { return false }
func (emptyTable[K, V]) RemovedBefore(int) int                  { return 0 }

// sharedEmpty returns the canonical empty table for K,V. It is allocated
// fresh per call site only because Go generics can't hold one true
// process-wide singleton per instantiation without reflection tricks; the
// struct itself carries no state, so every instance behaves identically
// and "canonical" simply means "never mutated", which emptyTable enforces
// by having no mutating methods at all.
func sharedEmpty[K comparable, V any]() tableView[K, V] {
	return emptyTable[K, V]{}
}

// removedLog accumulates the ascending slot indices dropped (because they
// were tombstoned) while a table is rehashed, grown, or promoted into a
// successor. Iterator.transition consumes this, per spec §4.6: subtract
// one from the iterator's index for every recorded removed index less
// than the current index, stopping early once a recorded index is >= the
// current index (since the log is ascending).
type removedLog struct {
	indices []int32
}

func (l *removedLog) record(idx int) { l.indices = append(l.indices, int32(idx)) }

func (l *removedLog) before(idx int) int {
	n := 0
	for _, r := range l.indices {
		if int(r) >= idx {
			break
		}
		n++
	}
	return n
}
