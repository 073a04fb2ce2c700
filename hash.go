// Copyright 2025 The strmap Authors
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

package strmap

// Hasher computes the 64-bit hash of a key. A Map stores the hash alongside
// each entry and reuses it verbatim during optimization, so a Hasher must be
// a pure function of the key bytes. There is no constraint on the range of
// the result; a different Hasher can be installed with WithHash.
type Hasher func(key string) int64

const (
	fnvBasis uint64 = 0xCBF29CE484222325
	fnvPrime uint64 = 0x100000001B3
)

// Hash is the default Hasher. It is a variant of FNV-1 that XORs each byte
// into the state before multiplying by the FNV prime (canonical FNV-1
// multiplies first) and then forces the sign bit, so the result is always
// negative and in particular never zero. The swapped XOR/multiply order is
// kept for compatibility with hashes produced by prior versions of this
// table; do not "correct" it.
func Hash(key string) int64 {
	h := fnvBasis
	for i := 0; i < len(key); i++ {
		h ^= uint64(key[i])
		h *= fnvPrime
	}
	return int64(h | 1<<63)
}
