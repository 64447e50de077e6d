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

// Command apriori mines frequent itemsets from transactions given as JSON
// lines, one array of item labels per line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/freqmine/apriori-go/apriori"
	"github.com/freqmine/apriori-go/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML configuration file",
	}
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Value: "-",
		Usage: "JSON lines transaction file, - for stdin",
	}
	minSupportFlag = &cli.Float64Flag{
		Name:  "min-support",
		Usage: "minimum support as a fraction of the transactions",
	}
	maxLevelFlag = &cli.IntFlag{
		Name:  "max-level",
		Usage: "largest itemset size to mine",
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "goroutines counting support (0 uses every CPU)",
	}
	strategyFlag = &cli.StringFlag{
		Name:  "strategy",
		Usage: "support counting strategy: scan or bitmap",
	}
	subsetPruningFlag = &cli.BoolFlag{
		Name:  "subset-pruning",
		Usage: "drop joined candidates with an infrequent subset",
	}
	pairSketchFlag = &cli.BoolFlag{
		Name:  "pair-sketch",
		Usage: "prefilter level 2 candidates with a count-min sketch",
	}
	timeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "abort mining after this long (0 disables)",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "output format: json or table",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "logging level (debug, info, warn, error)",
	}
	metricsPathFlag = &cli.StringFlag{
		Name:  "metrics-path",
		Usage: "write Prometheus text metrics to this file after the run",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "apriori",
		Usage: "mine frequent itemsets with the Apriori algorithm",
		Flags: []cli.Flag{
			configFlag,
			inputFlag,
			minSupportFlag,
			maxLevelFlag,
			workersFlag,
			strategyFlag,
			subsetPruningFlag,
			pairSketchFlag,
			timeoutFlag,
			formatFlag,
			logLevelFlag,
			metricsPathFlag,
		},
		Action: run,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(c *cli.Context, cfg *Config) {
	if c.IsSet(minSupportFlag.Name) {
		cfg.Mining.MinSupport = c.Float64(minSupportFlag.Name)
	}
	if c.IsSet(maxLevelFlag.Name) {
		cfg.Mining.MaxLevel = c.Int(maxLevelFlag.Name)
	}
	if c.IsSet(workersFlag.Name) {
		cfg.Mining.Workers = c.Int(workersFlag.Name)
	}
	if c.IsSet(strategyFlag.Name) {
		cfg.Mining.Strategy = c.String(strategyFlag.Name)
	}
	if c.IsSet(subsetPruningFlag.Name) {
		cfg.Mining.SubsetPruning = c.Bool(subsetPruningFlag.Name)
	}
	if c.IsSet(pairSketchFlag.Name) {
		cfg.Mining.PairSketch.Enabled = c.Bool(pairSketchFlag.Name)
	}
	if c.IsSet(timeoutFlag.Name) {
		cfg.Mining.Timeout = c.Duration(timeoutFlag.Name)
	}
	if c.IsSet(formatFlag.Name) {
		cfg.Output.Format = c.String(formatFlag.Name)
	}
	if c.IsSet(logLevelFlag.Name) {
		cfg.Logging.Level = c.String(logLevelFlag.Name)
	}
	if c.IsSet(metricsPathFlag.Name) {
		cfg.Metrics.Path = c.String(metricsPathFlag.Name)
	}
}

func run(c *cli.Context) error {
	cfg, err := Load(c.String(configFlag.Name))
	if err != nil {
		return err
	}
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg.Logging, c.App.ErrWriter)
	if err != nil {
		return err
	}

	in, err := openInput(c.String(inputFlag.Name), c.App.Reader)
	if err != nil {
		return err
	}
	transactions, err := readTransactions(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("reading transactions: %w", err)
	}

	reg := prometheus.NewRegistry()
	mtr, err := metrics.New(reg)
	if err != nil {
		return err
	}
	opts, err := cfg.minerOptions(logger, mtr)
	if err != nil {
		return err
	}
	miner, err := apriori.NewMiner(opts...)
	if err != nil {
		return err
	}

	ctx := c.Context
	if cfg.Mining.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Mining.Timeout)
		defer cancel()
	}
	res, err := miner.Mine(ctx, transactions, cfg.Mining.MinSupport, cfg.Mining.MaxLevel)
	if err != nil {
		return err
	}

	found := 0
	for _, counts := range res.Levels {
		found += counts.Len()
	}
	logger.WithFields(logrus.Fields{
		"transactions":    res.NumTransactions,
		"items":           len(res.Inventory),
		"minSupportCount": res.MinSupportCount,
		"itemsets":        found,
	}).Info("mining finished")

	switch cfg.Output.Format {
	case "table":
		writeTable(c.App.Writer, res)
	default:
		if err := writeJSONLines(c.App.Writer, res.Labeled()); err != nil {
			return err
		}
	}

	if cfg.Metrics.Path != "" {
		f, err := os.Create(cfg.Metrics.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := metrics.WriteText(f, reg); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
	}
	return nil
}
