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
	"fmt"
	"runtime"

	"github.com/freqmine/apriori-go/metrics"
	"github.com/sirupsen/logrus"
)

type minerOptions struct {
	workers       int
	strategy      CountStrategy
	subsetPruning bool
	sketchBuckets int32
	sketchHashes  int8
	logger        logrus.FieldLogger
	metrics       *metrics.Metrics
}

type Option func(*minerOptions) error

func defaultOptions() *minerOptions {
	return &minerOptions{
		workers:       runtime.GOMAXPROCS(0),
		strategy:      CountStrategyEnum.Scan,
		subsetPruning: true,
		logger:        logrus.StandardLogger(),
	}
}

// WithWorkers bounds the number of goroutines counting support at once.
func WithWorkers(n int) Option {
	return func(o *minerOptions) error {
		if n < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidWorkers, n)
		}
		o.workers = n
		return nil
	}
}

func WithCountStrategy(s CountStrategy) Option {
	return func(o *minerOptions) error {
		if s != CountStrategyEnum.Scan && s != CountStrategyEnum.Bitmap {
			return fmt.Errorf("unknown count strategy %q", s.Name)
		}
		o.strategy = s
		return nil
	}
}

// WithSubsetPruning toggles the removal of joined candidates that have an
// infrequent (k-1)-subset. It is on by default.
func WithSubsetPruning(enabled bool) Option {
	return func(o *minerOptions) error {
		o.subsetPruning = enabled
		return nil
	}
}

// WithPairSketch enables a count-min sketch of item pairs, built while
// scanning the transactions, that discards level 2 candidates whose estimate
// is already below the minimum support count.
func WithPairSketch(numBuckets int32, numHashes int8) Option {
	return func(o *minerOptions) error {
		if numBuckets < 3 || numHashes < 1 {
			return fmt.Errorf("%w: buckets=%d hashes=%d", ErrInvalidSketch, numBuckets, numHashes)
		}
		o.sketchBuckets = numBuckets
		o.sketchHashes = numHashes
		return nil
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *minerOptions) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// WithMetrics records per level counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *minerOptions) error {
		o.metrics = m
		return nil
	}
}
