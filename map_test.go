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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// toBuiltinMap mirrors the teacher's test helper of the same name, used to
// cross-check against Go's own map.
func (m *OrderedMap[K, V]) toBuiltinMap() map[K]V {
	r := make(map[K]V)
	m.All(func(k K, v V) bool {
		r[k] = v
		return true
	})
	return r
}

func (m *OrderedMap[K, V]) orderedKeys() []K {
	var keys []K
	m.All(func(k K, v V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

func TestMapBasic(t *testing.T) {
	m, err := NewMap[int, int](0)
	require.NoError(t, err)

	e := make(map[int]int)
	const count = 200

	for i := 0; i < count; i++ {
		_, ok := m.Get(i)
		require.False(t, ok)
	}

	for i := 0; i < count; i++ {
		require.NoError(t, m.Put(i, i+count))
		e[i] = i + count
		v, ok := m.Get(i)
		require.True(t, ok)
		require.EqualValues(t, i+count, v)
		require.EqualValues(t, i+1, m.Len())
	}
	require.Equal(t, e, m.toBuiltinMap())

	// Overwriting an existing key doesn't change its position.
	order := m.orderedKeys()
	require.NoError(t, m.Put(5, 999999))
	require.Equal(t, order, m.orderedKeys())
	v, ok := m.Get(5)
	require.True(t, ok)
	require.EqualValues(t, 999999, v)

	for i := 0; i < count; i++ {
		require.True(t, m.Delete(i))
		delete(e, i)
		require.EqualValues(t, count-i-1, m.Len())
		_, ok := m.Get(i)
		require.False(t, ok)
	}
	require.Equal(t, e, m.toBuiltinMap())
}

func TestMapGetHash(t *testing.T) {
	m, err := NewMap[int, string](0)
	require.NoError(t, err)
	require.NoError(t, m.Put(7, "seven"))

	require.EqualValues(t, m.h.ops.Hash(7), m.GetHash(7))
	require.EqualValues(t, -1, m.GetHash(8))    // absent key
	require.EqualValues(t, -1, m.GetHash("7"))  // wrong type
}

// TestMapCompactionRehash is scenario S3.
func TestMapCompactionRehash(t *testing.T) {
	m, err := NewMap[string, int](4)
	require.NoError(t, err)

	for i, k := range []string{"k1", "k2", "k3", "k4"} {
		require.NoError(t, m.Put(k, i))
	}
	capBefore := m.Stats().Capacity

	require.True(t, m.Delete("k1"))
	require.True(t, m.Delete("k2"))
	require.NoError(t, m.Put("k5", 4))

	require.Equal(t, capBefore, m.Stats().Capacity)
	require.EqualValues(t, 0, m.Stats().NumDeleted)
	require.Equal(t, []string{"k3", "k4", "k5"}, m.orderedKeys())
}

func TestMapClear(t *testing.T) {
	m, err := NewMap[int, int](0)
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		require.NoError(t, m.Put(i, i))
	}
	require.NoError(t, m.Clear())
	require.EqualValues(t, 0, m.Len())
	m.All(func(k, v int) bool {
		require.Fail(t, "should not iterate after Clear")
		return true
	})
}

func TestMapRandom(t *testing.T) {
	m, err := NewMap[int, int](0)
	require.NoError(t, err)
	e := make(map[int]int)
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 10000; i++ {
		switch x := r.Float64(); {
		case x < 0.5:
			k, v := r.Intn(1000), r.Int()
			require.NoError(t, m.Put(k, v))
			e[k] = v
		case x < 0.8:
			k := r.Intn(1000)
			ok := m.Delete(k)
			_, existed := e[k]
			require.Equal(t, existed, ok)
			delete(e, k)
		default:
			k := r.Intn(1000)
			v, ok := m.Get(k)
			ev, eok := e[k]
			require.Equal(t, eok, ok)
			if ok {
				require.Equal(t, ev, v)
			}
		}
		require.EqualValues(t, len(e), m.Len())
	}
	require.Equal(t, e, m.toBuiltinMap())
}
