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

// Package apriori mines frequent itemsets from a collection of transactions
// with the level-wise Apriori algorithm.
//
// A run assigns a dense identifier to every distinct item label, normalizes
// each transaction into a sorted identifier sequence, keeps the single items
// whose occurrence count reaches ceil(minSupport * N), and then, for every
// size k up to a maximum level, generates candidate k-itemsets from the
// frequent (k-1)-itemsets and keeps those contained in at least that many
// transactions. Support counting is spread over a bounded pool of goroutines.
//
// GenerateFrequentItemsets runs with default settings. A Miner exposes the
// tuning knobs: worker count, counting strategy, subset pruning, an optional
// count-min pair prefilter, logging and metrics.
package apriori
