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

// This file isolates the arithmetic that, in a raw-buffer rendering of
// this design, would compute byte offsets between the bucket array, the
// chain links, and the data region of one contiguous allocation. Here the
// three regions are separate Go slices (buckets, chainNext, and the
// payload slices) rather than one buffer sliced by offset, so there is no
// header-size or entry-stride arithmetic left to do — indexing a slice by
// entry index already lands on the right payload. What's left of the
// "layout" concern is exactly the bucket-selection function, which still
// differs between the two forms per spec §4.1.

// numBucketsForCapacityLarge returns the bucket-array length for a large
// table of the given power-of-two capacity: capacity/LOAD_FACTOR.
func numBucketsForCapacityLarge(capacity int) int {
	n := capacity / loadFactor
	if n < 1 {
		n = 1
	}
	return n
}

// hashToBucketLarge masks the hash down to a bucket index. Valid only when
// numBuckets is a power of two, which it always is for the large form.
func hashToBucketLarge(h uint64, numBuckets int) int {
	return int(h & uint64(numBuckets-1))
}

// hashToBucketSmall reduces the hash modulo the bucket count. The small
// form's bucket count is not constrained to be a power of two (it tracks
// capacity, which grows by doubling but is clamped to kMaxCapacitySmall),
// so a mask trick isn't available and a true modulo is used instead.
func hashToBucketSmall(h uint64, numBuckets int) int {
	if numBuckets == 0 {
		return 0
	}
	return int(h % uint64(numBuckets))
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
