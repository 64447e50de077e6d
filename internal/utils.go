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

package internal

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	DEFAULT_UPDATE_SEED = uint64(9001)
)

// supportEpsilon is the relative distance under which fraction*n is treated as
// the integer it was meant to be (0.1*30 is 3.0000000000000004 in binary).
const supportEpsilon = 1e-9

// CeilPowerOf2 returns the smallest power of 2 greater than or equal to n.
func CeilPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	topIntPwrOf2 := 1 << 30
	if n >= topIntPwrOf2 {
		return topIntPwrOf2
	}
	return 1 << bits.Len(uint(n-1))
}

func ExactLog2(powerOf2 int) (int, error) {
	if !IsPowerOf2(powerOf2) {
		return 0, fmt.Errorf("argument 'powerOf2' must be a positive power of 2")
	}
	return bits.TrailingZeros64(uint64(powerOf2)), nil
}

// IsPowerOf2 returns true if the given number is a power of 2.
func IsPowerOf2(powerOf2 int) bool {
	return powerOf2 > 0 && (powerOf2&(powerOf2-1)) == 0
}

// MinSupportCount returns ceil(fraction * numTransactions), the absolute support
// floor of a mining run. An empty collection or a non-positive fraction gives 0.
// A product within a relative 1e-9 of an integer is taken as that integer, and
// a floor above numTransactions is reported as numTransactions+1.
func MinSupportCount(fraction float64, numTransactions int) int64 {
	if numTransactions <= 0 || fraction <= 0 || math.IsNaN(fraction) {
		return 0
	}
	x := fraction * float64(numTransactions)
	if x > float64(numTransactions) {
		return int64(numTransactions) + 1
	}
	if r := math.Round(x); math.Abs(x-r) <= supportEpsilon*math.Max(1, x) {
		x = r
	}
	return int64(math.Ceil(x))
}

// ChunkBounds splits [0, n) into at most parts contiguous ranges of near equal
// size and returns their [start, end) bounds. Empty ranges are never returned.
func ChunkBounds(n int, parts int) [][2]int {
	if n <= 0 {
		return nil
	}
	if parts < 1 {
		parts = 1
	}
	if parts > n {
		parts = n
	}
	size := (n + parts - 1) / parts
	bounds := make([][2]int, 0, parts)
	for start := 0; start < n; start += size {
		bounds = append(bounds, [2]int{start, min(start+size, n)})
	}
	return bounds
}
