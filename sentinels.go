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

import "errors"

const (
	debugTrace      = false
	checkInvariants = false
)

// Sentinel bucket/chain values. The small table packs these into a single
// byte (hence the 254-entry ceiling: one value is reserved for NOT_FOUND
// and the data region never uses slot 0xFF), the large table packs them
// into an int32.
const (
	notFoundSmall uint8 = 0xFF
	notFoundLarge int32 = -1

	kMaxCapacitySmall = 254
	kInitialCapacitySmall = 4

	kInitialCapacityLarge = 4
	loadFactor            = 2

	// clearedTableSentinel is stamped into a table's deleted-entry count
	// when Clear allocates a fresh successor, telling a migrating
	// iterator to restart at index 0 of the successor rather than try to
	// subtract removed indices.
	clearedTableSentinel = -1
)

var (
	// ErrCapacityExceeded is returned when a requested capacity would
	// exceed the table's maximum representable capacity.
	ErrCapacityExceeded = errors.New("ordhash: requested capacity exceeds maximum capacity")

	// ErrAllocation is returned when the configured Allocator fails to
	// produce a backing buffer.
	ErrAllocation = errors.New("ordhash: backing allocation failed")
)

// errSmallFormFull is an internal sentinel: the small table cannot grow any
// further (it is already at kMaxCapacitySmall). It never escapes the
// public API; the handler facade catches it and promotes to a large table.
var errSmallFormFull = errors.New("ordhash: small form is full")

// KeyOps supplies the hash/equality primitives the host runtime would
// otherwise provide (spec §6: hash_or_create, get_hash, same_value_zero).
// The zero value is not usable; build one with ComparableKeyOps (or a
// literal) and pass it via WithKeyOps, or let containers use the default
// KeyOps for their key type.
type KeyOps[K any] struct {
	// Hash returns an integer hash for key. It must be stable: equal keys
	// (per Equal) must hash identically for the lifetime of the key.
	Hash func(key K) uint64

	// Equal implements same-value-zero equality for Set/Map keys, or
	// identity equality for NameDictionary's interned-name keys.
	Equal func(a, b K) bool
}

// ComparableKeyOps builds a KeyOps for any comparable key type using Go's
// built-in == and the caller-supplied hash function as-is.
// Most callers should use NewSet/NewMap's default, which wires this up
// automatically for comparable key types via defaultKeyOps (hash.go).
func ComparableKeyOps[K comparable](hash func(K) uint64) KeyOps[K] {
	return KeyOps[K]{
		Hash:  hash,
		Equal: func(a, b K) bool { return a == b },
	}
}
