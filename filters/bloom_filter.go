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

// Package filters provides a Bloom filter over byte keys.
//
// A key may be given in several parts; the filter hashes their concatenation
// with a streaming XXHash64 digest, so a caller can query a key it never
// materializes. Bit positions follow Kirsch-Mitzenmacher double hashing over
// the two halves of the digest.
package filters

import (
	"errors"
	"math"
	"math/bits"

	"github.com/cespare/xxhash/v2"
	"github.com/freqmine/apriori-go/internal"
)

// DefaultSeed seeds the digest unless WithSeed overrides it.
const DefaultSeed = internal.DEFAULT_UPDATE_SEED

const maxWords = math.MaxInt32 - 4

// BloomFilter answers "definitely absent" or "possibly present" for keys
// added with Update. It is not safe for concurrent writers; once filled it
// may be queried from many goroutines.
type BloomFilter struct {
	seed      uint64
	numHashes uint16
	numBits   uint64
	bitsSet   uint64
	words     []uint64
}

type Option func(*BloomFilter)

func WithSeed(seed uint64) Option {
	return func(bf *BloomFilter) {
		bf.seed = seed
	}
}

// NewBloomFilterBySize returns a filter of numBits bits, rounded up to a
// multiple of 64, probed numHashes times per key.
func NewBloomFilterBySize(numBits uint64, numHashes uint16, opts ...Option) (*BloomFilter, error) {
	switch {
	case numBits == 0:
		return nil, errors.New("bloom filter needs at least one bit")
	case numHashes == 0:
		return nil, errors.New("bloom filter needs at least one hash")
	case numBits > maxWords*64:
		return nil, errors.New("bloom filter size exceeds the maximum")
	}
	words := (numBits + 63) / 64
	bf := &BloomFilter{
		seed:      DefaultSeed,
		numHashes: numHashes,
		numBits:   words * 64,
		words:     make([]uint64, words),
	}
	for _, opt := range opts {
		opt(bf)
	}
	return bf, nil
}

// NewBloomFilterByAccuracy sizes a filter so that holding expectedKeys keys
// gives a false positive rate close to targetFpp.
func NewBloomFilterByAccuracy(expectedKeys uint64, targetFpp float64, opts ...Option) (*BloomFilter, error) {
	if expectedKeys == 0 {
		return nil, errors.New("expected key count must be positive")
	}
	if !(targetFpp > 0 && targetFpp < 1) {
		return nil, errors.New("target false positive rate must be in (0, 1)")
	}
	numBits := SuggestNumFilterBits(expectedKeys, targetFpp)
	return NewBloomFilterBySize(numBits, SuggestNumHashesFromSize(expectedKeys, numBits), opts...)
}

// SuggestNumFilterBits returns ceil(-n ln(p) / ln(2)^2).
func SuggestNumFilterBits(expectedKeys uint64, targetFpp float64) uint64 {
	return uint64(math.Ceil(-float64(expectedKeys) * math.Log(targetFpp) / (math.Ln2 * math.Ln2)))
}

// SuggestNumHashesFromSize returns ceil(m/n ln(2)), at least 1.
func SuggestNumHashesFromSize(expectedKeys, numBits uint64) uint16 {
	if expectedKeys == 0 {
		return 1
	}
	k := math.Ceil(float64(numBits) / float64(expectedKeys) * math.Ln2)
	return uint16(max(1, min(k, math.MaxUint16)))
}

// digest hashes the concatenation of parts. Empty keys report false.
func (bf *BloomFilter) digest(parts [][]byte) (h0, h1 uint64, ok bool) {
	var d xxhash.Digest
	d.ResetWithSeed(bf.seed)
	n := 0
	for _, p := range parts {
		d.Write(p)
		n += len(p)
	}
	if n == 0 {
		return 0, 0, false
	}
	h0 = d.Sum64()
	// An odd stride visits distinct positions for every power of 2 modulus.
	h1 = bits.RotateLeft64(h0, 32) | 1
	return h0, h1, true
}

func (bf *BloomFilter) position(h0, h1 uint64, i uint16) (word uint64, mask uint64) {
	pos := (h0 + uint64(i)*h1) % bf.numBits
	return pos >> 6, 1 << (pos & 63)
}

// Update adds the key formed by concatenating parts. Empty keys are ignored.
func (bf *BloomFilter) Update(parts ...[]byte) {
	h0, h1, ok := bf.digest(parts)
	if !ok {
		return
	}
	for i := uint16(0); i < bf.numHashes; i++ {
		w, m := bf.position(h0, h1, i)
		if bf.words[w]&m == 0 {
			bf.words[w] |= m
			bf.bitsSet++
		}
	}
}

// Query reports whether the key formed by concatenating parts may have been
// added. A false answer is exact.
func (bf *BloomFilter) Query(parts ...[]byte) bool {
	if bf.bitsSet == 0 {
		return false
	}
	h0, h1, ok := bf.digest(parts)
	if !ok {
		return false
	}
	for i := uint16(0); i < bf.numHashes; i++ {
		w, m := bf.position(h0, h1, i)
		if bf.words[w]&m == 0 {
			return false
		}
	}
	return true
}

func (bf *BloomFilter) IsEmpty() bool     { return bf.bitsSet == 0 }
func (bf *BloomFilter) BitsUsed() uint64  { return bf.bitsSet }
func (bf *BloomFilter) Capacity() uint64  { return bf.numBits }
func (bf *BloomFilter) NumHashes() uint16 { return bf.numHashes }
func (bf *BloomFilter) Seed() uint64      { return bf.seed }
