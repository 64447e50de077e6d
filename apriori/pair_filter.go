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

	"github.com/freqmine/apriori-go/count"
	"github.com/freqmine/apriori-go/internal"
	"github.com/freqmine/apriori-go/itemset"
	"golang.org/x/sync/errgroup"
)

func pairKey(a, b itemset.ItemID) uint64 {
	return uint64(a)<<32 | uint64(b)
}

// buildPairSketch counts every pair of frequent items co-occurring in a
// transaction into a count-min sketch. Each goroutine fills the sketch of its
// own partition of transactions; partitions are merged once all are done.
func buildPairSketch(ctx context.Context, transactions []itemset.Transaction, frequent []bool,
	numBuckets int32, numHashes int8, workers int) (*count.CountMinSketch, error) {
	bounds := internal.ChunkBounds(len(transactions), workers)
	partials := make([]*count.CountMinSketch, len(bounds))
	for i := range partials {
		cms, err := count.NewCountMinSketch(numHashes, numBuckets, int64(internal.DEFAULT_UPDATE_SEED))
		if err != nil {
			return nil, err
		}
		partials[i] = cms
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, b := range bounds {
		cms, part := partials[i], transactions[b[0]:b[1]]
		g.Go(func() error {
			items := make([]itemset.ItemID, 0)
			for n, tx := range part {
				if n%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				items = items[:0]
				for _, id := range tx {
					if frequent[id] {
						items = append(items, id)
					}
				}
				for x := 0; x < len(items)-1; x++ {
					for y := x + 1; y < len(items); y++ {
						if err := cms.UpdateUint64(pairKey(items[x], items[y]), 1); err != nil {
							return err
						}
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(partials) == 0 {
		return count.NewCountMinSketch(numHashes, numBuckets, int64(internal.DEFAULT_UPDATE_SEED))
	}
	for _, other := range partials[1:] {
		if err := partials[0].Merge(other); err != nil {
			return nil, err
		}
	}
	return partials[0], nil
}

// filterPairs keeps the pairs whose sketch estimate reaches minSupportCount.
// The estimate never falls below the true support, so no frequent pair is lost.
func filterPairs(pairs []itemset.Itemset, sketch *count.CountMinSketch, minSupportCount int64) ([]itemset.Itemset, int) {
	kept := make([]itemset.Itemset, 0, len(pairs))
	for _, p := range pairs {
		if sketch.GetEstimateUint64(pairKey(p[0], p[1])) >= minSupportCount {
			kept = append(kept, p)
		}
	}
	return kept, len(pairs) - len(kept)
}
