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
	"unsafe"

	"github.com/freqmine/apriori-go/internal"
	"github.com/twmb/murmur3"
)

type Hasher interface {
	Hash(s Itemset) uint64
}

// MurmurHasher hashes the raw identifier bytes of an itemset with MurmurHash3.
// The hash only lives in process memory, so native byte order is fine.
type MurmurHasher struct {
	Seed uint64
}

var DefaultHasher Hasher = MurmurHasher{Seed: internal.DEFAULT_UPDATE_SEED}

func (h MurmurHasher) Hash(s Itemset) uint64 {
	return murmur3.SeedSum64(h.Seed, s.Bytes())
}

// Bytes returns the identifiers of s as raw bytes in native byte order. The
// result aliases s and is nil for an empty itemset.
func (s Itemset) Bytes() []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*int(unsafe.Sizeof(ItemID(0))))
}
