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
	"slices"

	"github.com/freqmine/apriori-go/internal"
	"github.com/freqmine/apriori-go/itemset"
)

// RawTransaction is one transaction as a set of item labels. A label listed
// twice is counted once.
type RawTransaction []string

// Inventory maps an item identifier, used as index, back to its label.
type Inventory []string

// ItemCounts maps an item identifier to the number of transactions holding it.
type ItemCounts map[itemset.ItemID]int64

// Label returns the label of id.
func (inv Inventory) Label(id itemset.ItemID) string {
	return inv[id]
}

// Labels decodes the identifiers of s into their labels.
func (inv Inventory) Labels(s itemset.Itemset) []string {
	labels := make([]string, len(s))
	for i, id := range s {
		labels[i] = inv[id]
	}
	return labels
}

// Lookup builds the label to identifier mapping.
func (inv Inventory) Lookup() map[string]itemset.ItemID {
	lookup := make(map[string]itemset.ItemID, len(inv))
	for i, label := range inv {
		lookup[label] = itemset.ItemID(i)
	}
	return lookup
}

// Itemset encodes labels into an itemset. It returns false if any label is
// unknown.
func (inv Inventory) Itemset(labels ...string) (itemset.Itemset, bool) {
	lookup := inv.Lookup()
	ids := make([]itemset.ItemID, len(labels))
	for i, label := range labels {
		id, ok := lookup[label]
		if !ok {
			return nil, false
		}
		ids[i] = id
	}
	return itemset.New(ids...), true
}

// SortedIDs returns the identifiers of counts in ascending order.
func (c ItemCounts) SortedIDs() []itemset.ItemID {
	ids := make([]itemset.ItemID, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// GenerateFrequentItemCounts indexes and normalizes raw, then drops from the
// returned counts every item held by fewer than ceil(minSupport * len(raw))
// transactions. The inventory and the transactions keep all items.
func GenerateFrequentItemCounts(raw []RawTransaction, minSupport float64) (ItemCounts, Inventory, []itemset.Transaction) {
	counts, inventory, transactions := indexTransactions(raw)
	pruneItemCounts(counts, internal.MinSupportCount(minSupport, len(raw)))
	return counts, inventory, transactions
}

// indexTransactions assigns identifiers in first seen order and converts every
// transaction in a single pass. The reverse lookup does not outlive the call.
func indexTransactions(raw []RawTransaction) (ItemCounts, Inventory, []itemset.Transaction) {
	var (
		counts       = make(ItemCounts)
		inventory    = make(Inventory, 0)
		lookup       = make(map[string]itemset.ItemID)
		transactions = make([]itemset.Transaction, len(raw))
		nextID       itemset.ItemID
	)
	for i, labels := range raw {
		ids := make([]itemset.ItemID, 0, len(labels))
		for _, label := range labels {
			id, ok := lookup[label]
			if !ok {
				id = nextID
				nextID++
				lookup[label] = id
				inventory = append(inventory, label)
			}
			ids = append(ids, id)
		}
		tx := itemset.NewTransaction(ids...)
		for _, id := range tx {
			counts[id]++
		}
		transactions[i] = tx
	}
	return counts, inventory, transactions
}

func pruneItemCounts(counts ItemCounts, minSupportCount int64) {
	for id, n := range counts {
		if n < minSupportCount {
			delete(counts, id)
		}
	}
}
