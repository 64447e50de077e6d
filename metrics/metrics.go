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

// Package metrics defines the Prometheus collectors recorded by a mining run.
package metrics

import (
	"io"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "apriori"

// Pruning reasons used as the reason label of PrunedCandidatesTotal.
const (
	ReasonSubset  = "subset"
	ReasonSketch  = "sketch"
	ReasonSupport = "support"
)

// Metrics holds all Prometheus collectors for the miner.
type Metrics struct {
	CandidatesTotal       *prometheus.CounterVec
	FrequentItemsetsTotal *prometheus.CounterVec
	PrunedCandidatesTotal *prometheus.CounterVec
	LevelDuration         *prometheus.HistogramVec
	WorkingTransactions   *prometheus.GaugeVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		CandidatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "candidates_total",
				Help:      "Candidate itemsets whose support was counted, by level.",
			},
			[]string{"level"},
		),
		FrequentItemsetsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "frequent_itemsets_total",
				Help:      "Itemsets meeting the minimum support, by level.",
			},
			[]string{"level"},
		),
		PrunedCandidatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pruned_candidates_total",
				Help:      "Candidates discarded by level and reason (subset, sketch, support).",
			},
			[]string{"level", "reason"},
		),
		LevelDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "level_duration_seconds",
				Help:      "Wall time spent mining one level.",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"level"},
		),
		WorkingTransactions: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "working_transactions",
				Help:      "Transactions long enough to hold an itemset of the level.",
			},
			[]string{"level"},
		),
	}

	for _, c := range []prometheus.Collector{
		m.CandidatesTotal,
		m.FrequentItemsetsTotal,
		m.PrunedCandidatesTotal,
		m.LevelDuration,
		m.WorkingTransactions,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveLevel records the outcome of one level. A nil receiver is a no-op.
func (m *Metrics) ObserveLevel(level, candidates, frequent, working int, elapsed time.Duration) {
	if m == nil {
		return
	}
	l := strconv.Itoa(level)
	m.CandidatesTotal.WithLabelValues(l).Add(float64(candidates))
	m.FrequentItemsetsTotal.WithLabelValues(l).Add(float64(frequent))
	m.WorkingTransactions.WithLabelValues(l).Set(float64(working))
	m.LevelDuration.WithLabelValues(l).Observe(elapsed.Seconds())
}

// ObservePruned adds n candidates dropped at level for reason.
func (m *Metrics) ObservePruned(level int, reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.PrunedCandidatesTotal.WithLabelValues(strconv.Itoa(level), reason).Add(float64(n))
}

// WriteText gathers g and writes it in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
