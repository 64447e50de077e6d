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
	"fmt"
	"slices"
	"strings"

	"github.com/freqmine/apriori-go/internal"
)

const (
	countsLoadFactor  = float64(0.75)
	lgMinCountsLength = 3
)

// Counts maps itemsets of one level to their support counts. It is an open
// addressing table with linear probing over power of 2 arrays, keyed by the
// itemset hash and confirmed by comparing identifiers.
//
// A Counts is filled once by the goroutine that owns it and is read-only
// afterwards; concurrent readers need no locking.
type Counts struct {
	lgLength      int
	loadThreshold int
	keys          []Itemset
	hashes        []uint64
	values        []int64
	// states holds 1 + the probe distance of an occupied slot, 0 when empty.
	states    []int16
	numActive int
	hasher    Hasher
}

// NewCounts returns an empty table sized to hold expected entries without
// growing. A nil hasher selects DefaultHasher.
func NewCounts(expected int, hasher Hasher) *Counts {
	if hasher == nil {
		hasher = DefaultHasher
	}
	mapSize := internal.CeilPowerOf2(int(float64(max(expected, 1))/countsLoadFactor) + 1)
	mapSize = max(mapSize, 1<<lgMinCountsLength)
	c := &Counts{hasher: hasher}
	c.allocate(mapSize)
	return c
}

func (c *Counts) allocate(mapSize int) {
	lgLength, _ := internal.ExactLog2(mapSize)
	c.lgLength = lgLength
	c.loadThreshold = int(float64(mapSize) * countsLoadFactor)
	c.keys = make([]Itemset, mapSize)
	c.hashes = make([]uint64, mapSize)
	c.values = make([]int64, mapSize)
	c.states = make([]int16, mapSize)
	c.numActive = 0
}

// Len returns the number of itemsets in the table.
func (c *Counts) Len() int {
	return c.numActive
}

// IsEmpty returns true if the table holds no itemset.
func (c *Counts) IsEmpty() bool {
	return c.numActive == 0
}

// Get returns the support stored for s.
func (c *Counts) Get(s Itemset) (int64, bool) {
	probe, found := c.hashProbe(s, c.hasher.Hash(s))
	if !found {
		return 0, false
	}
	return c.values[probe], true
}

// Contains reports whether s is present in the table.
func (c *Counts) Contains(s Itemset) bool {
	_, found := c.Get(s)
	return found
}

// Put stores support for s, replacing any previous value. The table keeps s
// itself, so callers must not modify it afterwards.
func (c *Counts) Put(s Itemset, support int64) {
	h := c.hasher.Hash(s)
	probe, found := c.hashProbe(s, h)
	if found {
		c.values[probe] = support
		return
	}
	c.insert(probe, s, h, support)
	if c.numActive > c.loadThreshold {
		c.resize(2 * len(c.keys))
	}
}

func (c *Counts) insert(probe int, s Itemset, h uint64, support int64) {
	arrayMask := len(c.keys) - 1
	drift := (probe - int(h&uint64(arrayMask))) & arrayMask
	c.keys[probe] = s
	c.hashes[probe] = h
	c.values[probe] = support
	c.states[probe] = int16(drift + 1)
	c.numActive++
}

// hashProbe returns the slot holding s, or the first empty slot of its probe
// sequence when s is absent.
func (c *Counts) hashProbe(s Itemset, h uint64) (int, bool) {
	arrayMask := uint64(len(c.keys) - 1)
	probe := h & arrayMask
	for c.states[probe] > 0 {
		if c.hashes[probe] == h && c.keys[probe].Equal(s) {
			return int(probe), true
		}
		probe = (probe + 1) & arrayMask
	}
	return int(probe), false
}

func (c *Counts) resize(newSize int) {
	oldKeys, oldHashes, oldValues, oldStates := c.keys, c.hashes, c.values, c.states
	c.allocate(newSize)
	for i := range oldKeys {
		if oldStates[i] > 0 {
			probe, _ := c.hashProbe(oldKeys[i], oldHashes[i])
			c.insert(probe, oldKeys[i], oldHashes[i], oldValues[i])
		}
	}
}

// Iterator walks the occupied slots of the table in storage order.
func (c *Counts) Iterator() *CountsIterator {
	return &CountsIterator{counts: c, index: -1}
}

// Itemsets returns every stored itemset in lexicographic order.
func (c *Counts) Itemsets() []Itemset {
	out := make([]Itemset, 0, c.numActive)
	iter := c.Iterator()
	for iter.Next() {
		out = append(out, iter.Itemset())
	}
	slices.SortFunc(out, Itemset.Compare)
	return out
}

// Rows returns the table content as rows, highest support first.
func (c *Counts) Rows() []*Row {
	rows := make([]*Row, 0, c.numActive)
	iter := c.Iterator()
	for iter.Next() {
		rows = append(rows, newRow(iter.Itemset(), iter.Support()))
	}
	SortRows(rows)
	return rows
}

// ToMap returns the table keyed by the itemset String form.
func (c *Counts) ToMap() map[string]int64 {
	out := make(map[string]int64, c.numActive)
	iter := c.Iterator()
	for iter.Next() {
		out[iter.Itemset().String()] = iter.Support()
	}
	return out
}

// Equal reports whether both tables hold the same itemsets with the same supports.
func (c *Counts) Equal(other *Counts) bool {
	if other == nil || c.numActive != other.numActive {
		return false
	}
	iter := c.Iterator()
	for iter.Next() {
		v, ok := other.Get(iter.Itemset())
		if !ok || v != iter.Support() {
			return false
		}
	}
	return true
}

func (c *Counts) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Counts: active=%d length=%d\n", c.numActive, len(c.keys))
	for _, row := range c.Rows() {
		sb.WriteString(row.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

type CountsIterator struct {
	counts *Counts
	index  int
}

// Next advances to the next occupied slot and reports whether there is one.
func (i *CountsIterator) Next() bool {
	for i.index++; i.index < len(i.counts.keys); i.index++ {
		if i.counts.states[i.index] > 0 {
			return true
		}
	}
	return false
}

func (i *CountsIterator) Itemset() Itemset {
	return i.counts.keys[i.index]
}

func (i *CountsIterator) Support() int64 {
	return i.counts.values[i.index]
}
