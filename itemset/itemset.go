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

// Package itemset holds the value types shared by the mining engine: dense item
// identifiers, sorted itemsets and transactions, and the per-level table that maps
// an itemset to its support count.
//
// Itemsets and transactions are plain sorted slices of ItemID. Both are kept sorted
// ascending and free of duplicates, which lets containment run as a single merge
// pass instead of a set lookup per item.
package itemset

import (
	"slices"
	"strconv"
	"strings"
)

// ItemID is a dense identifier assigned to a raw item label on first sight.
type ItemID uint32

// Itemset is a sorted, duplicate free sequence of item identifiers.
type Itemset []ItemID

// New returns a sorted, deduplicated copy of ids as an Itemset.
func New(ids ...ItemID) Itemset {
	s := make(Itemset, len(ids))
	copy(s, ids)
	slices.Sort(s)
	return slices.Compact(s)
}

// Len returns the level of the itemset.
func (s Itemset) Len() int {
	return len(s)
}

// Equal reports whether both itemsets hold the same identifiers.
func (s Itemset) Equal(other Itemset) bool {
	return slices.Equal(s, other)
}

// Compare orders itemsets lexicographically by identifier.
func (s Itemset) Compare(other Itemset) int {
	return slices.Compare(s, other)
}

// Contains reports whether id is a member of the itemset.
func (s Itemset) Contains(id ItemID) bool {
	_, ok := slices.BinarySearch(s, id)
	return ok
}

// Without returns a new itemset with the element at index i removed.
func (s Itemset) Without(i int) Itemset {
	out := make(Itemset, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// HasPrefix reports whether the first len(prefix) identifiers of s equal prefix.
func (s Itemset) HasPrefix(prefix Itemset) bool {
	return len(s) >= len(prefix) && slices.Equal(s[:len(prefix)], prefix)
}

// Clone returns a copy that does not share storage with s.
func (s Itemset) Clone() Itemset {
	return slices.Clone(s)
}

func (s Itemset) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, id := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Transaction is a normalized transaction: the identifiers of its items, sorted
// ascending with no duplicates.
type Transaction []ItemID

// NewTransaction sorts and deduplicates ids in place and returns them as a Transaction.
func NewTransaction(ids ...ItemID) Transaction {
	slices.Sort(ids)
	return Transaction(slices.Compact(ids))
}

// Len returns the number of items in the transaction.
func (t Transaction) Len() int {
	return len(t)
}

// ContainsAll reports whether every identifier of s occurs in t. Both sides are
// sorted, so this is one merge pass that stops at the first missing identifier.
func (t Transaction) ContainsAll(s Itemset) bool {
	if len(s) > len(t) {
		return false
	}
	j := 0
	for _, id := range s {
		for j < len(t) && t[j] < id {
			j++
		}
		if j == len(t) || t[j] != id {
			return false
		}
		j++
	}
	return true
}
