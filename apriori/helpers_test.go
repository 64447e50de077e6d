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

package apriori

import (
	"fmt"
	"math/bits"
	"math/rand"
	"slices"
	"strings"

	"github.com/freqmine/apriori-go/internal"
)

// randomTransactions draws n transactions over numItems labels, each with at
// most maxLen labels. The same seed always gives the same collection.
func randomTransactions(seed int64, n, numItems, maxLen int) []RawTransaction {
	rng := rand.New(rand.NewSource(seed))
	raw := make([]RawTransaction, n)
	for i := range raw {
		size := rng.Intn(maxLen + 1)
		tx := make(RawTransaction, 0, size)
		for j := 0; j < size; j++ {
			tx = append(tx, fmt.Sprintf("i%02d", rng.Intn(numItems)))
		}
		raw[i] = tx
	}
	return raw
}

func dedupe(labels []string) []string {
	out := slices.Clone(labels)
	slices.Sort(out)
	return slices.Compact(out)
}

func labelKey(labels []string) string {
	sorted := slices.Clone(labels)
	slices.Sort(sorted)
	return strings.Join(sorted, ",")
}

// labeled flattens levels into label keys for comparisons that do not depend
// on identifier assignment.
func labeled(levels Levels, inventory Inventory) map[int]map[string]int64 {
	out := make(map[int]map[string]int64, len(levels))
	for k, counts := range levels {
		m := make(map[string]int64, counts.Len())
		iter := counts.Iterator()
		for iter.Next() {
			m[labelKey(inventory.Labels(iter.Itemset()))] = iter.Support()
		}
		out[k] = m
	}
	return out
}

// bruteForce enumerates every combination of the labels of raw up to
// maxLevel items and keeps those meeting the support floor. The floor is
// assumed to be at least 1, and raw to hold at most 16 distinct labels.
func bruteForce(raw []RawTransaction, minSupport float64, maxLevel int) map[int]map[string]int64 {
	floor := internal.MinSupportCount(minSupport, len(raw))
	var universe []string
	for _, tx := range raw {
		universe = append(universe, tx...)
	}
	universe = dedupe(universe)

	masks := make([]uint32, len(raw))
	for i, tx := range raw {
		for _, label := range tx {
			pos, _ := slices.BinarySearch(universe, label)
			masks[i] |= 1 << pos
		}
	}

	out := make(map[int]map[string]int64)
	for k := 1; k <= maxLevel; k++ {
		out[k] = make(map[string]int64)
	}
	for combo := uint32(1); combo < 1<<len(universe); combo++ {
		k := bits.OnesCount32(combo)
		if k > maxLevel {
			continue
		}
		var support int64
		for _, m := range masks {
			if m&combo == combo {
				support++
			}
		}
		if support < floor {
			continue
		}
		var labels []string
		for pos := range universe {
			if combo&(1<<pos) != 0 {
				labels = append(labels, universe[pos])
			}
		}
		out[k][labelKey(labels)] = support
	}
	return out
}
