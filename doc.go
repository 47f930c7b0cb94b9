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

// Package ordhash implements an insertion-ordered hash container family:
// OrderedSet, OrderedMap, and NameDictionary. All three are backed by the
// same two-tier table design rather than Go's builtin map, because the
// builtin map makes no iteration-order guarantee and supports no live
// iterator migration across a resize.
//
// # Design
//
// Every container is a thin facade (handler.go) over one of two table
// forms:
//
//   - a small table (small.go): an inline form bounded to 254 entries,
//     using byte-sized bucket heads and chain links. Cheap to allocate and
//     to scan for the common case of a handful of entries.
//   - a large table (large.go): an unbounded form whose capacity is always
//     a power of two, using int32 bucket heads and chain links.
//
// Both forms share the same conceptual layout: a bucket array of chain
// heads, and a data region of entries carrying a payload plus a
// "chain_next" link to the next entry hashing to the same bucket.
// Insertion order is the ascending order of data-region slot indices;
// deletions punch a hole (tombstone) in a slot without touching the bucket
// chain, since a chain walk must keep visiting later live entries that
// hash to the same bucket. Compaction happens only during an explicit
// rehash.
//
// Promotion from small to large is one-way: once a handler's facade has
// built a large table it never goes back, even if entries are later
// deleted down to a handful.
//
// # Iterators
//
// An Iterator holds a reference to a table and an index into its data
// region. When the table a live iterator points at is superseded by a
// rehash, grow, promotion, or clear, the superseded table is kept around
// (via a successor link) purely so that referencing iterators can still
// walk it to the new table and recompute their index — see transition in
// iterator.go. This is the same "obsolete table chain" trick used by
// ordered hash tables in managed-runtime implementations: it keeps
// iterators valid without ever copying them.
package ordhash
