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

// dictEntry bundles a NameDictionary's value and opaque packed-details
// scalar into the Map engine's single "value" payload slot, so
// NameDictionary reuses the Map engine's three-effective-payload-slot
// table mechanics (key, value, details) instead of a third hand-rolled
// table implementation (spec design note §9: "three instantiations of a
// generic table parameterized by entry size and payload accessors").
type dictEntry[V any] struct {
	value   V
	details uint32
}

// NameDictionary is the property-dictionary variant (spec §3/§4.4): keys
// are unique interned names, compared by identity in the host runtime.
// Names in this Go rendering are plain strings; since Go strings carry no
// exposed object identity distinct from value equality, identity
// comparison and same-value-zero equality collapse to the same thing
// here.
//
// Unlike OrderedMap.Put, AddUnique is a fatal assertion on a duplicate
// key rather than a silent upsert: spec §9's open question ("the source
// asserts that the NameDictionary add path rejects duplicates... leave as
// an assertion to match observed behavior") is resolved in favor of
// keeping it an assertion.
type NameDictionary[V any] struct {
	m *OrderedMap[string, dictEntry[V]]
}

// NewNameDictionary constructs a NameDictionary.
func NewNameDictionary[V any](initialCapacity int, opts ...option[string, dictEntry[V]]) (*NameDictionary[V], error) {
	m, err := NewMap[string, dictEntry[V]](initialCapacity, opts...)
	if err != nil {
		return nil, err
	}
	return &NameDictionary[V]{m: m}, nil
}

// AddUnique inserts (name, value, details). It panics if name is already
// present — the caller is expected to check FindEntry first, matching the
// source behavior this core imitates (spec §7 ObsoleteTableUse-style
// contract violation / §9 open question).
func (d *NameDictionary[V]) AddUnique(name string, value V, details uint32) error {
	if d.m.Has(name) {
		panic(fmt.Sprintf("ordhash: NameDictionary.AddUnique: duplicate name %q", name))
	}
	return d.m.Put(name, dictEntry[V]{value: value, details: details})
}

// FindEntry reports whether name is present (spec §4.2 find_entry).
func (d *NameDictionary[V]) FindEntry(name string) bool { return d.m.Has(name) }

// ValueAt returns the stored value for name, or the zero value and
// false if absent.
func (d *NameDictionary[V]) ValueAt(name string) (V, bool) {
	e, ok := d.m.Get(name)
	return e.value, ok
}

// DetailsAt returns the packed property-details scalar for name, or 0 and
// false if absent. Property-details packing itself is opaque to this
// core (spec §1 Out of scope); callers pack/unpack the uint32 themselves.
func (d *NameDictionary[V]) DetailsAt(name string) (uint32, bool) {
	e, ok := d.m.Get(name)
	return e.details, ok
}

// DeleteEntry removes name, writing holes for its key/value/details and
// then shrinking the backing table (spec §4.4: "delete_entry writes hole
// for key and value, empty details, then shrink"), unlike OrderedMap's
// plain Delete which never auto-shrinks.
func (d *NameDictionary[V]) DeleteEntry(name string) (bool, error) {
	if !d.m.Delete(name) {
		return false, nil
	}
	if err := d.m.Shrink(); err != nil {
		return true, err
	}
	return true, nil
}

// Len returns the number of live entries.
func (d *NameDictionary[V]) Len() int { return d.m.Len() }

// Hash returns the dictionary's table-level hash word for the owning
// object, or -1 if unset (spec §3: "table additionally carries a single
// hash word for the owning object").
func (d *NameDictionary[V]) Hash() int64 { return d.m.h.Hash() }

// SetHash sets the dictionary's table-level hash word. It survives
// rehash/grow/shrink because rehashInto always copies ownHash across
// (spec testable scenario S7: "stored hash of the dictionary survives the
// deletion and subsequent shrink").
func (d *NameDictionary[V]) SetHash(h int64) { d.m.h.SetHash(h) }

// Clear empties the dictionary.
func (d *NameDictionary[V]) Clear() error { return d.m.Clear() }

// Stats reports the active table's form, capacity, and occupancy.
func (d *NameDictionary[V]) Stats() Stats { return d.m.Stats() }

// dictIterator adapts an Iterator[string, dictEntry[V]] to yield the
// name/value/details triple NameDictionary callers want, instead of
// exposing the internal dictEntry wrapper type.
type dictIterator[V any] struct {
	it *Iterator[string, dictEntry[V]]
}

// Iterator returns a cursor over the dictionary in insertion order.
func (d *NameDictionary[V]) Iterator() *dictIterator[V] {
	return &dictIterator[V]{it: d.m.Iterator()}
}

func (it *dictIterator[V]) HasMore() bool { return it.it.HasMore() }
func (it *dictIterator[V]) MoveNext()     { it.it.MoveNext() }
func (it *dictIterator[V]) CurrentName() string { return it.it.CurrentKey() }
func (it *dictIterator[V]) CurrentValue() V {
	return it.it.CurrentValue().value
}
func (it *dictIterator[V]) CurrentDetails() uint32 {
	return it.it.CurrentValue().details
}

// All calls yield for each (name, value, details) triple in insertion
// order. If yield returns false, All stops early.
func (d *NameDictionary[V]) All(yield func(name string, value V, details uint32) bool) {
	it := d.Iterator()
	for it.HasMore() {
		if !yield(it.CurrentName(), it.CurrentValue(), it.CurrentDetails()) {
			return
		}
		it.MoveNext()
	}
}
