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
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/freqmine/apriori-go/internal"
	"github.com/freqmine/apriori-go/itemset"
	"github.com/freqmine/apriori-go/metrics"
	"github.com/sirupsen/logrus"
)

// Levels maps an itemset size to the frequent itemsets of that size.
type Levels map[int]*itemset.Counts

// Sizes returns the itemset sizes present in l in ascending order.
func (l Levels) Sizes() []int {
	sizes := make([]int, 0, len(l))
	for k := range l {
		sizes = append(sizes, k)
	}
	slices.Sort(sizes)
	return sizes
}

// Result is the outcome of a mining run.
type Result struct {
	Levels          Levels
	Inventory       Inventory
	MinSupportCount int64
	NumTransactions int
}

// LabeledItemset is a frequent itemset decoded back into labels.
type LabeledItemset struct {
	Level   int      `json:"level" yaml:"level"`
	Items   []string `json:"items" yaml:"items"`
	Support int64    `json:"support" yaml:"support"`
}

// Labeled returns every frequent itemset with its labels, ordered by level,
// then by support (highest first), then by identifiers.
func (r *Result) Labeled() []LabeledItemset {
	var out []LabeledItemset
	for _, k := range r.Levels.Sizes() {
		for _, row := range r.Levels[k].Rows() {
			out = append(out, LabeledItemset{
				Level:   k,
				Items:   r.Inventory.Labels(row.GetItemset()),
				Support: row.GetSupport(),
			})
		}
	}
	return out
}

// Miner runs Apriori with a fixed configuration. It is safe for concurrent use.
type Miner struct {
	workers       int
	strategy      CountStrategy
	subsetPruning bool
	sketchBuckets int32
	sketchHashes  int8
	log           logrus.FieldLogger
	metrics       *metrics.Metrics
}

func NewMiner(opts ...Option) (*Miner, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return &Miner{
		workers:       o.workers,
		strategy:      o.strategy,
		subsetPruning: o.subsetPruning,
		sketchBuckets: o.sketchBuckets,
		sketchHashes:  o.sketchHashes,
		log:           o.logger,
		metrics:       o.metrics,
	}, nil
}

// GenerateFrequentItemsets mines raw up to itemsets of maxLevel items with the
// default settings.
func GenerateFrequentItemsets(raw []RawTransaction, minSupport float64, maxLevel int) (Levels, Inventory) {
	m, _ := NewMiner()
	// A background context never cancels, and Mine fails on nothing else.
	res, _ := m.Mine(context.Background(), raw, minSupport, maxLevel)
	return res.Levels, res.Inventory
}

// Mine returns, for every size from 1 to maxLevel, the itemsets contained in
// at least ceil(minSupport * len(raw)) transactions. A product within a
// relative 1e-9 of an integer counts as that integer, so 0.1 * 30 gives 3
// rather than 4. A minSupport above 1, +Inf included, admits nothing. Levels
// past the last non-empty one are reported empty. A maxLevel below 1 yields an empty result
// without reading raw. The only error is the cancellation of ctx.
func (m *Miner) Mine(ctx context.Context, raw []RawTransaction, minSupport float64, maxLevel int) (*Result, error) {
	res := &Result{Levels: make(Levels), Inventory: make(Inventory, 0)}
	if maxLevel < 1 {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("mining cancelled before indexing: %w", err)
	}

	start := time.Now()
	counts, inventory, transactions := indexTransactions(raw)
	floor := internal.MinSupportCount(minSupport, len(raw))
	numItems := len(counts)
	pruneItemCounts(counts, floor)

	res.Inventory = inventory
	res.NumTransactions = len(raw)
	res.MinSupportCount = floor
	res.Levels[1] = singletonLevel(counts)

	m.log.WithFields(logrus.Fields{
		"transactions":    len(raw),
		"items":           len(inventory),
		"minSupportCount": floor,
		"frequent":        len(counts),
	}).Debug("indexed transactions")
	m.metrics.ObserveLevel(1, numItems, len(counts), len(transactions), time.Since(start))
	m.metrics.ObservePruned(1, metrics.ReasonSupport, numItems-len(counts))

	if maxLevel == 1 {
		return res, nil
	}

	run := &levelRun{
		miner:    m,
		floor:    floor,
		items:    counts.SortedIDs(),
		numItems: len(inventory),
		working:  transactions,
	}
	prev := res.Levels[1]
	for k := 2; k <= maxLevel; k++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("mining cancelled before level %d: %w", k, err)
		}
		if prev.IsEmpty() {
			res.Levels[k] = itemset.NewCounts(0, nil)
			continue
		}
		level, err := run.mineLevel(ctx, k, prev)
		if err != nil {
			return nil, fmt.Errorf("mining level %d: %w", k, err)
		}
		res.Levels[k] = level
		prev = level
	}
	return res, nil
}

// levelRun carries the state shared by the levels of one run.
type levelRun struct {
	miner    *Miner
	floor    int64
	items    []itemset.ItemID
	numItems int
	// working only ever shrinks; transactions are never edited.
	working []itemset.Transaction
	tids    tidIndex
}

func (r *levelRun) mineLevel(ctx context.Context, k int, prev *itemset.Counts) (*itemset.Counts, error) {
	m := r.miner
	start := time.Now()
	r.working = slices.DeleteFunc(r.working, func(tx itemset.Transaction) bool {
		return len(tx) < k
	})

	var (
		candidates []itemset.Itemset
		err        error
	)
	if k == 2 {
		candidates, err = r.pairCandidates(ctx)
	} else {
		var pruned int
		candidates, pruned, err = joinCandidates(prev, m.subsetPruning)
		m.metrics.ObservePruned(k, metrics.ReasonSubset, pruned)
	}
	if err != nil {
		return nil, err
	}

	supports, err := countSupports(ctx, candidates, m.workers, r.supportFunc())
	if err != nil {
		return nil, err
	}

	level := itemset.NewCounts(len(candidates), nil)
	for i, c := range candidates {
		if supports[i] >= r.floor {
			level.Put(c, supports[i])
		}
	}

	elapsed := time.Since(start)
	m.metrics.ObserveLevel(k, len(candidates), level.Len(), len(r.working), elapsed)
	m.metrics.ObservePruned(k, metrics.ReasonSupport, len(candidates)-level.Len())
	m.log.WithFields(logrus.Fields{
		"level":        k,
		"candidates":   len(candidates),
		"frequent":     level.Len(),
		"transactions": len(r.working),
		"elapsed":      elapsed,
	}).Debug("mined level")
	return level, nil
}

func (r *levelRun) pairCandidates(ctx context.Context) ([]itemset.Itemset, error) {
	m := r.miner
	pairs := pairCandidates(r.items)
	if m.sketchBuckets == 0 || r.floor <= 0 || len(pairs) == 0 {
		return pairs, nil
	}

	frequent := make([]bool, r.numItems)
	for _, id := range r.items {
		frequent[id] = true
	}
	sketch, err := buildPairSketch(ctx, r.working, frequent, m.sketchBuckets, m.sketchHashes, m.workers)
	if err != nil {
		return nil, err
	}
	kept, dropped := filterPairs(pairs, sketch, r.floor)
	m.metrics.ObservePruned(2, metrics.ReasonSketch, dropped)
	m.log.WithFields(logrus.Fields{
		"pairs":   len(pairs),
		"dropped": dropped,
	}).Debug("applied pair sketch")
	return kept, nil
}

func (r *levelRun) supportFunc() supportFunc {
	if r.miner.strategy != CountStrategyEnum.Bitmap {
		return scanSupport(r.working)
	}
	// Positions refer to the level 2 working set. Later narrowing only drops
	// transactions too short to hold a candidate, so the bitmaps stay exact.
	if r.tids == nil {
		r.tids = newTIDIndex(r.working, r.items, r.numItems)
	}
	return r.tids.bitmapSupport
}
