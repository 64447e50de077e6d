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

package itemset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// constantHasher sends every key to the same slot to exercise probing.
type constantHasher struct{}

func (constantHasher) Hash(Itemset) uint64 { return 42 }

func TestCountsEmpty(t *testing.T) {
	c := NewCounts(0, nil)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(Itemset{1})
	assert.False(t, ok)
	assert.Empty(t, c.Rows())
	assert.Empty(t, c.Itemsets())
	assert.Empty(t, c.ToMap())
}

func TestCountsPutGet(t *testing.T) {
	c := NewCounts(4, nil)
	c.Put(Itemset{10}, 5)
	c.Put(Itemset{10, 13}, 3)
	c.Put(Itemset{12}, 4)

	v, ok := c.Get(Itemset{10})
	assert.True(t, ok)
	assert.Equal(t, int64(5), v)
	v, ok = c.Get(Itemset{10, 13})
	assert.True(t, ok)
	assert.Equal(t, int64(3), v)
	assert.False(t, c.Contains(Itemset{13, 10}))
	assert.False(t, c.Contains(Itemset{13}))
	assert.Equal(t, 3, c.Len())

	c.Put(Itemset{10}, 6)
	v, _ = c.Get(Itemset{10})
	assert.Equal(t, int64(6), v)
	assert.Equal(t, 3, c.Len())
}

func TestCountsCollisionsAndGrowth(t *testing.T) {
	for _, hasher := range []Hasher{constantHasher{}, DefaultHasher} {
		c := NewCounts(1, hasher)
		n := 500
		for i := 0; i < n; i++ {
			c.Put(Itemset{ItemID(i), ItemID(i + 1)}, int64(i))
		}
		assert.Equal(t, n, c.Len())
		for i := 0; i < n; i++ {
			v, ok := c.Get(Itemset{ItemID(i), ItemID(i + 1)})
			assert.True(t, ok)
			assert.Equal(t, int64(i), v)
		}
		assert.False(t, c.Contains(Itemset{ItemID(n + 5)}))
	}
}

func TestCountsRowsAreOrdered(t *testing.T) {
	c := NewCounts(8, nil)
	c.Put(Itemset{2}, 2)
	c.Put(Itemset{0}, 3)
	c.Put(Itemset{1}, 3)
	c.Put(Itemset{3}, 1)

	rows := c.Rows()
	assert.Len(t, rows, 4)
	assert.Equal(t, Itemset{0}, rows[0].GetItemset())
	assert.Equal(t, Itemset{1}, rows[1].GetItemset())
	assert.Equal(t, Itemset{2}, rows[2].GetItemset())
	assert.Equal(t, Itemset{3}, rows[3].GetItemset())
	assert.Equal(t, int64(3), rows[0].GetSupport())
	assert.Equal(t, int64(1), rows[3].GetSupport())

	assert.Equal(t, []Itemset{{0}, {1}, {2}, {3}}, c.Itemsets())
	assert.Equal(t, map[string]int64{"[0]": 3, "[1]": 3, "[2]": 2, "[3]": 1}, c.ToMap())
	assert.Contains(t, c.String(), "active=4")
}

func TestCountsEqual(t *testing.T) {
	a := NewCounts(2, nil)
	b := NewCounts(64, MurmurHasher{Seed: 7})
	a.Put(Itemset{1, 2}, 2)
	b.Put(Itemset{1, 2}, 2)
	assert.True(t, a.Equal(b))

	b.Put(Itemset{1, 2}, 3)
	assert.False(t, a.Equal(b))
	b.Put(Itemset{1, 2}, 2)
	b.Put(Itemset{1, 3}, 2)
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
}
