/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package filters

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(i uint32) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint32(b, i)
	binary.LittleEndian.PutUint32(b[4:], i+1)
	return b
}

func TestInvalidConstructorArguments(t *testing.T) {
	_, err := NewBloomFilterBySize(0, 3)
	assert.Error(t, err)
	_, err = NewBloomFilterBySize(64, 0)
	assert.Error(t, err)
	_, err = NewBloomFilterBySize(1<<60, 3)
	assert.Error(t, err)

	_, err = NewBloomFilterByAccuracy(1000, 0.0)
	assert.Error(t, err)
	_, err = NewBloomFilterByAccuracy(1000, 1.0)
	assert.Error(t, err)
	_, err = NewBloomFilterByAccuracy(0, 0.01)
	assert.Error(t, err)
}

func TestConstructors(t *testing.T) {
	bf1, err := NewBloomFilterByAccuracy(5000, 0.01)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), bf1.Capacity()%64)
	assert.Equal(t, DefaultSeed, bf1.Seed())
	assert.True(t, bf1.IsEmpty())

	numBits := SuggestNumFilterBits(5000, 0.01)
	bf2, err := NewBloomFilterBySize(numBits, SuggestNumHashesFromSize(5000, numBits), WithSeed(7))
	require.NoError(t, err)
	assert.Equal(t, bf1.Capacity(), bf2.Capacity())
	assert.Equal(t, bf1.NumHashes(), bf2.NumHashes())
	assert.Equal(t, uint64(7), bf2.Seed())

	assert.Equal(t, uint16(1), SuggestNumHashesFromSize(0, 64))
	assert.Equal(t, uint16(1), SuggestNumHashesFromSize(1000, 1))
	assert.Greater(t, SuggestNumFilterBits(1000, 0.01), SuggestNumFilterBits(1000, 0.1))
}

func TestNoFalseNegativesAndBoundedFpp(t *testing.T) {
	n := uint32(5000)
	bf, err := NewBloomFilterByAccuracy(uint64(n), 0.01)
	require.NoError(t, err)
	for i := uint32(0); i < n; i++ {
		bf.Update(key(i))
	}
	for i := uint32(0); i < n; i++ {
		assert.True(t, bf.Query(key(i)), "key %d", i)
	}

	utilization := float64(bf.BitsUsed()) / float64(bf.Capacity())
	assert.Greater(t, utilization, 0.3)
	assert.Less(t, utilization, 0.7)

	falsePositives := 0
	for i := n; i < n+10000; i++ {
		if bf.Query(key(i)) {
			falsePositives++
		}
	}
	assert.Less(t, float64(falsePositives)/10000, 0.03)
}

func TestPartsHashAsConcatenation(t *testing.T) {
	bf, err := NewBloomFilterBySize(4096, 4)
	require.NoError(t, err)
	bf.Update([]byte("abcdef"))
	bitsAfterFirst := bf.BitsUsed()
	assert.LessOrEqual(t, bitsAfterFirst, uint64(4))

	assert.True(t, bf.Query([]byte("abc"), []byte("def")))
	assert.True(t, bf.Query(nil, []byte("abcdef"), nil))
	assert.True(t, bf.Query([]byte("a"), []byte("bcde"), []byte("f")))

	// Re-adding the same key in parts sets no new bit.
	bf.Update([]byte("ab"), []byte("cdef"))
	assert.Equal(t, bitsAfterFirst, bf.BitsUsed())
}

func TestEmptyKeys(t *testing.T) {
	bf, err := NewBloomFilterBySize(256, 3)
	require.NoError(t, err)
	assert.False(t, bf.Query([]byte("x")))

	bf.Update()
	bf.Update(nil, []byte{})
	assert.True(t, bf.IsEmpty())

	bf.Update([]byte("x"))
	assert.False(t, bf.Query())
	assert.False(t, bf.Query(nil))
	assert.True(t, bf.Query([]byte("x")))
}
