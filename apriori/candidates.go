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
	"github.com/freqmine/apriori-go/filters"
	"github.com/freqmine/apriori-go/itemset"
)

const subsetFilterFpp = 0.01

// singletonLevel wraps the frequent items as the level 1 result.
func singletonLevel(counts ItemCounts) *itemset.Counts {
	level := itemset.NewCounts(len(counts), nil)
	for id, n := range counts {
		level.Put(itemset.Itemset{id}, n)
	}
	return level
}

// pairCandidates returns every 2-combination of items, which must be sorted.
func pairCandidates(items []itemset.ItemID) []itemset.Itemset {
	if len(items) < 2 {
		return nil
	}
	candidates := make([]itemset.Itemset, 0, len(items)*(len(items)-1)/2)
	for i := 0; i < len(items)-1; i++ {
		for j := i + 1; j < len(items); j++ {
			candidates = append(candidates, itemset.Itemset{items[i], items[j]})
		}
	}
	return candidates
}

// joinCandidates builds the k-itemsets obtained by joining pairs of frequent
// (k-1)-itemsets that share their first k-2 items. With prune set, candidates
// having a (k-1)-subset absent from prev are dropped, and their number is
// returned as the second value.
func joinCandidates(prev *itemset.Counts, prune bool) ([]itemset.Itemset, int, error) {
	frequent := prev.Itemsets()
	if len(frequent) < 2 {
		return nil, 0, nil
	}

	var subsets *filters.BloomFilter
	if prune && len(frequent[0]) >= 2 {
		bf, err := filters.NewBloomFilterByAccuracy(uint64(len(frequent)), subsetFilterFpp)
		if err != nil {
			return nil, 0, err
		}
		for _, s := range frequent {
			bf.Update(s.Bytes())
		}
		subsets = bf
	}

	var (
		candidates []itemset.Itemset
		pruned     int
	)
	for i := 0; i < len(frequent)-1; i++ {
		a := frequent[i]
		prefix := a[:len(a)-1]
		// Itemsets sharing a prefix are adjacent in sorted order.
		for j := i + 1; j < len(frequent) && frequent[j].HasPrefix(prefix); j++ {
			b := frequent[j]
			candidate := make(itemset.Itemset, len(a)+1)
			copy(candidate, a)
			candidate[len(a)] = b[len(b)-1]
			if subsets != nil && !allSubsetsFrequent(candidate, prev, subsets) {
				pruned++
				continue
			}
			candidates = append(candidates, candidate)
		}
	}
	return candidates, pruned, nil
}

// allSubsetsFrequent checks the subsets of candidate obtained by removing one
// of its first k-2 items. Removing either of the last two yields a join parent.
// The filter is queried with the two halves around the removed item, so a
// subset is only built when the filter cannot rule it out.
func allSubsetsFrequent(candidate itemset.Itemset, prev *itemset.Counts, subsets *filters.BloomFilter) bool {
	for i := 0; i < len(candidate)-2; i++ {
		if !subsets.Query(candidate[:i].Bytes(), candidate[i+1:].Bytes()) {
			return false
		}
		if !prev.Contains(candidate.Without(i)) {
			return false
		}
	}
	return true
}
