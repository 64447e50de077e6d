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
	"testing"

	"github.com/freqmine/apriori-go/itemset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexAssignsIdentifiersInFirstSeenOrder(t *testing.T) {
	raw := []RawTransaction{{"A", "B", "D"}, {"A"}}
	counts, inventory, transactions := GenerateFrequentItemCounts(raw, 0.0)

	assert.Equal(t, Inventory{"A", "B", "D"}, inventory)
	lookup := inventory.Lookup()
	assert.Len(t, counts, 3)
	assert.Equal(t, int64(2), counts[lookup["A"]])
	assert.Equal(t, int64(1), counts[lookup["B"]])
	assert.Equal(t, int64(1), counts[lookup["D"]])
	assert.Equal(t, []itemset.Transaction{{0, 1, 2}, {0}}, transactions)
}

func TestTransactionsAreSorted(t *testing.T) {
	raw := []RawTransaction{{"C", "A"}, {"B", "C", "A"}}
	_, inventory, transactions := GenerateFrequentItemCounts(raw, 0.0)

	assert.Equal(t, Inventory{"C", "A", "B"}, inventory)
	assert.Equal(t, []itemset.Transaction{{0, 1}, {0, 1, 2}}, transactions)
}

func TestItemCountsWithFullSupport(t *testing.T) {
	raw := []RawTransaction{{"A", "B", "D"}, {"A"}}
	counts, inventory, transactions := GenerateFrequentItemCounts(raw, 1.0)

	require.Len(t, counts, 1)
	assert.Equal(t, int64(2), counts[inventory.Lookup()["A"]])
	// Pruning never touches the inventory or the transactions.
	assert.Len(t, inventory, 3)
	assert.Equal(t, itemset.Transaction{0, 1, 2}, transactions[0])
}

func TestItemCountsWithHalfSupport(t *testing.T) {
	raw := []RawTransaction{{"A", "B", "C"}, {"A"}, {"B"}, {"A", "C"}}
	counts, inventory, _ := GenerateFrequentItemCounts(raw, 0.5)
	lookup := inventory.Lookup()

	assert.Equal(t, ItemCounts{
		lookup["A"]: 3,
		lookup["B"]: 2,
		lookup["C"]: 2,
	}, counts)
}

func TestItemCountsEmptyInput(t *testing.T) {
	counts, inventory, transactions := GenerateFrequentItemCounts(nil, 0.5)
	assert.Empty(t, counts)
	assert.Empty(t, inventory)
	assert.Empty(t, transactions)
}

func TestEmptyTransactionNormalizesToEmptySequence(t *testing.T) {
	raw := []RawTransaction{{}, {"A"}}
	counts, _, transactions := GenerateFrequentItemCounts(raw, 0.0)
	assert.Len(t, transactions, 2)
	assert.Empty(t, transactions[0])
	assert.Equal(t, int64(1), counts[0])
}

func TestDuplicateLabelsCountOnce(t *testing.T) {
	raw := []RawTransaction{{"A", "A", "B"}, {"B", "B"}}
	counts, inventory, transactions := GenerateFrequentItemCounts(raw, 0.0)

	assert.Equal(t, Inventory{"A", "B"}, inventory)
	assert.Equal(t, ItemCounts{0: 1, 1: 2}, counts)
	assert.Equal(t, []itemset.Transaction{{0, 1}, {1}}, transactions)
}

func TestIndexingIsIdempotent(t *testing.T) {
	raw := randomTransactions(7, 50, 10, 6)
	c1, inv1, tx1 := GenerateFrequentItemCounts(raw, 0.2)
	c2, inv2, tx2 := GenerateFrequentItemCounts(raw, 0.2)
	assert.Equal(t, c1, c2)
	assert.Equal(t, inv1, inv2)
	assert.Equal(t, tx1, tx2)
}

func TestInventoryRoundTrip(t *testing.T) {
	raw := randomTransactions(3, 40, 12, 5)
	_, inventory, transactions := GenerateFrequentItemCounts(raw, 0.0)
	lookup := inventory.Lookup()

	assert.Len(t, lookup, len(inventory))
	for i, label := range inventory {
		assert.Equal(t, itemset.ItemID(i), lookup[label])
		assert.Equal(t, label, inventory.Label(itemset.ItemID(i)))
	}
	for i, tx := range transactions {
		labels := inventory.Labels(itemset.Itemset(tx))
		s, ok := inventory.Itemset(labels...)
		require.True(t, ok)
		assert.Equal(t, itemset.Itemset(tx), s)
		assert.ElementsMatch(t, dedupe(raw[i]), labels)
	}

	_, ok := inventory.Itemset("missing")
	assert.False(t, ok)
}

func TestSortedIDs(t *testing.T) {
	assert.Equal(t, []itemset.ItemID{1, 4, 9}, ItemCounts{9: 1, 1: 1, 4: 1}.SortedIDs())
	assert.Empty(t, ItemCounts{}.SortedIDs())
}
