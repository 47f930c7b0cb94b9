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

import (
	"fmt"
	"hash/maphash"
)

// defaultSeed is process-wide so that two containers constructed with the
// default hasher agree on hashes of equal keys, the same way maphash.Seed
// must be shared across hashes that are meant to be compared.
var defaultSeed = maphash.MakeSeed()

// defaultHash derives a KeyOps.Hash function for common key kinds using
// hash/maphash, the same primitive used by the string/int keyed maps in
// wdamron/amt. It falls back to hashing fmt.Sprint(key) for kinds it
// doesn't special-case, which is correct but slow; callers with
// performance-sensitive non-builtin key types should supply their own
// KeyOps.
func defaultHash[K comparable]() func(K) uint64 {
	var zero K
	switch any(zero).(type) {
	case string:
		return func(k K) uint64 {
			var h maphash.Hash
			h.SetSeed(defaultSeed)
			h.WriteString(any(k).(string))
			return h.Sum64()
		}
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr:
		return func(k K) uint64 {
			var h maphash.Hash
			h.SetSeed(defaultSeed)
			fmt.Fprintf(&h, "%v", k)
			return h.Sum64()
		}
	default:
		return func(k K) uint64 {
			var h maphash.Hash
			h.SetSeed(defaultSeed)
			fmt.Fprintf(&h, "%v", k)
			return h.Sum64()
		}
	}
}

// defaultKeyOps returns the KeyOps used by NewSet/NewMap when the caller
// doesn't supply one explicitly.
func defaultKeyOps[K comparable]() KeyOps[K] {
	return ComparableKeyOps(defaultHash[K]())
}
