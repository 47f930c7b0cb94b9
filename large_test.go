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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLargeTableCapacityIsPowerOfTwo(t *testing.T) {
	tbl, err := newLargeTable[int, int](100, defaultAllocator[int]{})
	require.NoError(t, err)
	require.True(t, isPowerOfTwo(tbl.Capacity()))
	require.GreaterOrEqual(t, tbl.Capacity(), 100)
}

func TestLargeTableBelowFloorRoundsUp(t *testing.T) {
	tbl, err := newLargeTable[int, int](1, defaultAllocator[int]{})
	require.NoError(t, err)
	require.Equal(t, kInitialCapacityLarge, tbl.Capacity())
}

func TestLargeTableInsertFindDelete(t *testing.T) {
	ops := intOps()
	tbl, err := newLargeTable[int, string](16, defaultAllocator[string]{})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, created, err := tbl.tryInsert(ops, i, "v")
		require.NoError(t, err)
		require.True(t, created)
	}
	idx, ok := tbl.findEntry(ops, 5)
	require.True(t, ok)
	require.Equal(t, "v", tbl.values[idx])

	require.True(t, tbl.delete(ops, 5))
	_, ok = tbl.findEntry(ops, 5)
	require.False(t, ok)
}

func TestLargeTableNeedsRehashForAdding(t *testing.T) {
	ops := intOps()
	tbl, err := newLargeTable[int, int](4, defaultAllocator[int]{})
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, _, err := tbl.tryInsert(ops, i, i)
		require.NoError(t, err)
	}
	newCap, compaction, needed := tbl.needsRehashForAdding()
	require.True(t, needed)
	require.False(t, compaction)
	require.Equal(t, 8, newCap)

	require.True(t, tbl.delete(ops, 0))
	require.True(t, tbl.delete(ops, 1))
	newCap, compaction, needed = tbl.needsRehashForAdding()
	require.True(t, needed)
	require.True(t, compaction)
	require.Equal(t, 4, newCap)
}

func TestLargeTableNeedsShrink(t *testing.T) {
	ops := intOps()
	tbl, err := newLargeTable[int, int](64, defaultAllocator[int]{})
	require.NoError(t, err)
	for i := 0; i < 64; i++ {
		_, _, err := tbl.tryInsert(ops, i, i)
		require.NoError(t, err)
	}
	for i := 0; i < 60; i++ {
		require.True(t, tbl.delete(ops, i))
	}
	newCap, needed := tbl.needsShrink()
	require.True(t, needed)
	require.Equal(t, 32, newCap)
}

func TestLargeTableRehashPreservesOrderAndLogsHoles(t *testing.T) {
	ops := intOps()
	tbl, err := newLargeTable[int, int](16, defaultAllocator[int]{})
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		_, _, err := tbl.tryInsert(ops, i, i)
		require.NoError(t, err)
	}
	require.True(t, tbl.delete(ops, 2))
	require.True(t, tbl.delete(ops, 5))

	fresh, log, err := tbl.rehashInto(ops, 16, defaultAllocator[int]{})
	require.NoError(t, err)
	require.Equal(t, []int32{2, 5}, log.indices)

	var got []int
	for i := 0; i < fresh.UsedCapacity(); i++ {
		got = append(got, fresh.keys[i])
	}
	require.Equal(t, []int{0, 1, 3, 4, 6, 7}, got)
}
