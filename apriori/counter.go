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

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/freqmine/apriori-go/internal"
	"github.com/freqmine/apriori-go/itemset"
	"golang.org/x/sync/errgroup"
)

const (
	// chunksPerWorker splits candidates finer than the worker count so that
	// uneven candidates still balance across goroutines.
	chunksPerWorker = 4
	// cancelCheckInterval is how many candidates a worker counts between two
	// looks at its context.
	cancelCheckInterval = 64
)

// supportFunc returns the exact number of transactions containing s. It must
// be safe for concurrent use.
type supportFunc func(s itemset.Itemset) int64

// countSupports computes the support of every candidate on at most workers
// goroutines. Each goroutine writes only its own range of the result.
func countSupports(ctx context.Context, candidates []itemset.Itemset, workers int, support supportFunc) ([]int64, error) {
	supports := make([]int64, len(candidates))
	if len(candidates) == 0 {
		return supports, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, bounds := range internal.ChunkBounds(len(candidates), workers*chunksPerWorker) {
		lo, hi := bounds[0], bounds[1]
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if (i-lo)%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				supports[i] = support(candidates[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return supports, nil
}

// scanSupport counts the transactions holding s by testing each of them.
func scanSupport(transactions []itemset.Transaction) supportFunc {
	return func(s itemset.Itemset) int64 {
		var n int64
		for _, tx := range transactions {
			if tx.ContainsAll(s) {
				n++
			}
		}
		return n
	}
}

// tidIndex is the vertical layout of a transaction collection: for each item,
// the bitmap of the positions of the transactions holding it.
type tidIndex []*roaring.Bitmap

// newTIDIndex indexes the given items of transactions. Items outside the list
// get no bitmap and must not be queried.
func newTIDIndex(transactions []itemset.Transaction, items []itemset.ItemID, numItems int) tidIndex {
	index := make(tidIndex, numItems)
	for _, id := range items {
		index[id] = roaring.New()
	}
	for pos, tx := range transactions {
		for _, id := range tx {
			if bm := index[id]; bm != nil {
				bm.Add(uint32(pos))
			}
		}
	}
	for _, bm := range index {
		if bm != nil {
			bm.RunOptimize()
		}
	}
	return index
}

// bitmapSupport intersects the bitmaps of the items of s. Bitmaps are only
// read, so concurrent callers share them.
func (index tidIndex) bitmapSupport(s itemset.Itemset) int64 {
	switch len(s) {
	case 0:
		return 0
	case 1:
		return int64(index[s[0]].GetCardinality())
	case 2:
		return int64(index[s[0]].AndCardinality(index[s[1]]))
	}
	acc := roaring.And(index[s[0]], index[s[1]])
	for _, id := range s[2 : len(s)-1] {
		if acc.IsEmpty() {
			return 0
		}
		acc.And(index[id])
	}
	return int64(acc.AndCardinality(index[s[len(s)-1]]))
}
