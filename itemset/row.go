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
	"cmp"
	"fmt"
	"slices"
)

type Row struct {
	itemset Itemset
	support int64
}

func newRow(s Itemset, support int64) *Row {
	return &Row{
		itemset: s,
		support: support,
	}
}

func (r *Row) String() string {
	return fmt.Sprintf("  %20d %v", r.support, r.itemset)
}

func (r *Row) GetItemset() Itemset {
	return r.itemset
}

func (r *Row) GetSupport() int64 {
	return r.support
}

// SortRows orders rows by support, highest first. Ties are broken by the
// itemset order so the result is deterministic.
func SortRows(rows []*Row) {
	slices.SortFunc(rows, func(a, b *Row) int {
		if c := cmp.Compare(b.support, a.support); c != 0 {
			return c
		}
		return a.itemset.Compare(b.itemset)
	})
}
