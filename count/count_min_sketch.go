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

// Package count provides a count-min sketch: a fixed size frequency table
// whose estimates never fall below the true count of an item.
package count

import (
	"encoding/binary"
	"errors"
	"math"
	"math/rand"

	"github.com/twmb/murmur3"
)

type CountMinSketch struct {
	numBuckets   int32 // counter array for each of the hashing function
	numHashes    int8  // number of hashing functions
	sketchSlice  []int64
	seed         int64
	totalWeights int64
	hashSeeds    []uint64
}

func NewCountMinSketch(numHashes int8, numBuckets int32, seed int64) (*CountMinSketch, error) {
	if numHashes < 1 {
		return nil, errors.New("at least one hash function is required")
	}
	if numBuckets < 3 {
		return nil, errors.New("using fewer than 3 buckets incurs relative error greater than 1.0")
	}

	if int64(numBuckets)*int64(numHashes) >= 1<<30 {
		return nil, errors.New("these parameters generate a sketch that exceeds 2^30 elements")
	}

	rng := rand.New(rand.NewSource(seed))
	hashSeeds := make([]uint64, numHashes)
	for i := 0; i < int(numHashes); i++ {
		hashSeeds[i] = rng.Uint64() + uint64(seed)
	}

	sketchSize := int(numBuckets) * int(numHashes)
	sketchSlice := make([]int64, sketchSize)

	return &CountMinSketch{
		numBuckets:  numBuckets,
		numHashes:   numHashes,
		sketchSlice: sketchSlice,
		seed:        seed,
		hashSeeds:   hashSeeds,
	}, nil
}

func (c *CountMinSketch) NumBuckets() int32 {
	return c.numBuckets
}

func (c *CountMinSketch) NumHashes() int8 {
	return c.numHashes
}

func (c *CountMinSketch) TotalWeights() int64 {
	return c.totalWeights
}

func (c *CountMinSketch) Seed() int64 {
	return c.seed
}

// RelativeError is the bound, as a fraction of TotalWeights, on how far an
// estimate may exceed the true count with the configured confidence.
func (c *CountMinSketch) RelativeError() float64 {
	return math.Exp(1.0) / float64(c.numBuckets)
}

func (c *CountMinSketch) IsEmpty() bool {
	return c.totalWeights == 0
}

// location returns the counter index of item in row.
func (c *CountMinSketch) location(row int, item []byte) int {
	h := murmur3.SeedSum64(c.hashSeeds[row], item)
	return row*int(c.numBuckets) + int(h%uint64(c.numBuckets))
}

func (c *CountMinSketch) Update(item []byte, weight int64) error {
	if len(item) == 0 {
		return nil
	}

	if weight < 0 {
		c.totalWeights += -weight
	} else {
		c.totalWeights += weight
	}

	for row := range c.hashSeeds {
		c.sketchSlice[c.location(row, item)] += weight
	}
	return nil
}

func (c *CountMinSketch) UpdateUint64(item uint64, weight int64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], item)
	return c.Update(b[:], weight)
}

func (c *CountMinSketch) UpdateString(item string, weight int64) error {
	if len(item) == 0 {
		return nil
	}

	return c.Update([]byte(item), weight)
}

// GetEstimate returns the smallest counter item maps to. With non-negative
// weights it is never below the true count.
func (c *CountMinSketch) GetEstimate(item []byte) int64 {
	if len(item) == 0 {
		return 0
	}

	estimate := int64(math.MaxInt64)
	for row := range c.hashSeeds {
		estimate = Min(estimate, c.sketchSlice[c.location(row, item)])
	}
	return estimate
}

func (c *CountMinSketch) GetEstimateUint64(item uint64) int64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], item)
	return c.GetEstimate(b[:])
}

func (c *CountMinSketch) GetEstimateString(item string) int64 {
	if len(item) == 0 {
		return 0
	}
	return c.GetEstimate([]byte(item))
}

func (c *CountMinSketch) GetUpperBound(item []byte) int64 {
	return c.GetEstimate(item) + int64(c.RelativeError()*float64(c.TotalWeights()))
}

func (c *CountMinSketch) GetUpperBoundUint64(item uint64) int64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], item)
	return c.GetUpperBound(b[:])
}

func (c *CountMinSketch) GetLowerBound(item []byte) int64 {
	return c.GetEstimate(item)
}

// Merge adds the counters of otherSketch into c. Both sketches must share
// their shape and seed.
func (c *CountMinSketch) Merge(otherSketch *CountMinSketch) error {
	if c == otherSketch {
		return errors.New("cannot merge sketch with itself")
	}

	canMerge := c.NumHashes() == otherSketch.NumHashes() &&
		c.NumBuckets() == otherSketch.NumBuckets() &&
		c.Seed() == otherSketch.Seed()

	if !canMerge {
		return errors.New("sketches are incompatible")
	}

	for i := range c.sketchSlice {
		c.sketchSlice[i] += otherSketch.sketchSlice[i]
	}
	c.totalWeights += otherSketch.totalWeights

	return nil
}
