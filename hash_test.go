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

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashVectors(t *testing.T) {
	// Pin the exact XOR-then-multiply ordering and the forced sign bit.
	// Canonical FNV-1 (multiply-then-XOR) produces different values for
	// every non-empty input.
	testCases := []struct {
		key      string
		expected int64
	}{
		{"", -3750763034362895579},
		{"a", -5808556873153909620},
		{"b", -5808553574619024987},
		{"c", -5808554674130653198},
		{"abc", -1792535898324117685},
		{"key", -4771200858075754260},
		{"tester", -8243094900904782474},
		{"hello world", -605059157078519065},
	}
	for _, c := range testCases {
		t.Run(c.key, func(t *testing.T) {
			require.Equal(t, c.expected, Hash(c.key))
		})
	}
}

func TestHashAlwaysNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	for i := 0; i < 10000; i++ {
		b := make([]byte, rng.Intn(64))
		for j := range b {
			b[j] = byte(rng.Intn(256))
		}
		h := Hash(string(b))
		require.Negative(t, h)
		require.NotZero(t, h)
	}
}

func TestHashDeterminism(t *testing.T) {
	// Equal byte sequences hash identically regardless of how the string
	// was built.
	a := "collision-test-key"
	b := string([]byte{'c', 'o', 'l', 'l', 'i', 's', 'i', 'o', 'n', '-', 't', 'e', 's', 't', '-', 'k', 'e', 'y'})
	require.Equal(t, Hash(a), Hash(b))
}
