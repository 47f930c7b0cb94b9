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
	"strconv"
	"testing"
)

func benchSizes(f func(b *testing.B, n int)) func(*testing.B) {
	cases := []int{8, 64, 256, 1024, 8192}
	return func(b *testing.B) {
		for _, n := range cases {
			b.Run("len="+strconv.Itoa(n), func(b *testing.B) { f(b, n) })
		}
	}
}

func BenchmarkMapPutGrow(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(benchmarkRuntimeMapPutGrow))
	b.Run("impl=ordhashMap", benchSizes(benchmarkOrdhashMapPutGrow))
}

func benchmarkRuntimeMapPutGrow(b *testing.B, n int) {
	for i := 0; i < b.N; i++ {
		m := make(map[int]int)
		for k := 0; k < n; k++ {
			m[k] = k
		}
	}
}

func benchmarkOrdhashMapPutGrow(b *testing.B, n int) {
	for i := 0; i < b.N; i++ {
		m, err := NewMap[int, int](0)
		if err != nil {
			b.Fatal(err)
		}
		for k := 0; k < n; k++ {
			if err := m.Put(k, k); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkMapGetHit(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(benchmarkRuntimeMapGetHit))
	b.Run("impl=ordhashMap", benchSizes(benchmarkOrdhashMapGetHit))
}

func benchmarkRuntimeMapGetHit(b *testing.B, n int) {
	m := make(map[int]int, n)
	for k := 0; k < n; k++ {
		m[k] = k
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[i%n]
	}
}

func benchmarkOrdhashMapGetHit(b *testing.B, n int) {
	m, err := NewMap[int, int](n)
	if err != nil {
		b.Fatal(err)
	}
	for k := 0; k < n; k++ {
		if err := m.Put(k, k); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.Get(i % n)
	}
}

func BenchmarkMapIter(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(benchmarkRuntimeMapIter))
	b.Run("impl=ordhashMap", benchSizes(benchmarkOrdhashMapIter))
}

func benchmarkRuntimeMapIter(b *testing.B, n int) {
	m := make(map[int]int, n)
	for k := 0; k < n; k++ {
		m[k] = k
	}
	b.ResetTimer()
	var tmp int
	for i := 0; i < b.N; i++ {
		for k, v := range m {
			tmp += k + v
		}
	}
}

func benchmarkOrdhashMapIter(b *testing.B, n int) {
	m, err := NewMap[int, int](n)
	if err != nil {
		b.Fatal(err)
	}
	for k := 0; k < n; k++ {
		if err := m.Put(k, k); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()
	var tmp int
	for i := 0; i < b.N; i++ {
		m.All(func(k, v int) bool {
			tmp += k + v
			return true
		})
	}
}

func BenchmarkSetAdd(b *testing.B) {
	b.Run("impl=ordhashSet", benchSizes(func(b *testing.B, n int) {
		for i := 0; i < b.N; i++ {
			s, err := NewSet[int](0)
			if err != nil {
				b.Fatal(err)
			}
			for k := 0; k < n; k++ {
				if err := s.Add(k); err != nil {
					b.Fatal(err)
				}
			}
		}
	}))
}
