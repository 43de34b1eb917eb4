// Copyright 2026 The Verse Authors
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

package pattern

// FNV-1a 64-bit constants, used inline so the hot lookup path hashes a
// method and path without allocating a hash.Hash or concatenating strings.
// FNV is a streaming hash, so hashing the parts sequentially is identical to
// hashing their concatenation.
const (
	fnvOffsetBasis = 14695981039346656037
	fnvPrime       = 1099511628211
)

// Hash returns the FNV-1a hash of the given string parts, hashed in
// sequence. Registries key their static route tables by Hash(method, path).
func Hash(parts ...string) uint64 {
	h := uint64(fnvOffsetBasis)
	for _, part := range parts {
		for i := 0; i < len(part); i++ {
			h ^= uint64(part[i])
			h *= fnvPrime
		}
	}
	return h
}

// BloomFilter answers "definitely not present" for static route lookups so
// that unmatched paths skip the route table entirely. A positive answer may
// be a false positive and the caller checks the table; a negative answer is
// always accurate.
//
// Built once while the registry freezes, read-only afterwards, so it is safe
// for concurrent Test calls without locking.
type BloomFilter struct {
	bits   []uint64
	size   uint64
	hashes int
}

// NewBloomFilter creates a bloom filter with size bits and the given number
// of hash functions. The functions are derived from the single base hash by
// double hashing, which avoids rehashing the input per function.
func NewBloomFilter(size uint64, hashes int) *BloomFilter {
	if size < 64 {
		size = 64
	}
	if hashes < 1 {
		hashes = 1
	}
	return &BloomFilter{
		bits:   make([]uint64, (size+63)/64),
		size:   size,
		hashes: hashes,
	}
}

// step derives the second hash for double hashing. Forced odd so successive
// positions do not collapse.
func step(baseHash uint64) uint64 {
	return (baseHash>>33 | baseHash<<31) | 1
}

// Add records a pre-computed base hash in the filter.
func (bf *BloomFilter) Add(baseHash uint64) {
	h2 := step(baseHash)
	for i := 0; i < bf.hashes; i++ {
		pos := (baseHash + uint64(i)*h2) % bf.size
		bf.bits[pos/64] |= 1 << (pos % 64)
	}
}

// Test reports whether a base hash might be present. False means definitely
// absent; the check exits on the first clear bit since misses dominate in
// route lookup.
func (bf *BloomFilter) Test(baseHash uint64) bool {
	h2 := step(baseHash)
	for i := 0; i < bf.hashes; i++ {
		pos := (baseHash + uint64(i)*h2) % bf.size
		if bf.bits[pos/64]&(1<<(pos%64)) == 0 {
			return false
		}
	}
	return true
}
