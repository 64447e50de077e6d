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

package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/freqmine/apriori-go/apriori"
	"github.com/freqmine/apriori-go/metrics"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of one mining run.
type Config struct {
	Mining  MiningConfig  `yaml:"mining"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// MiningConfig holds the parameters handed to the miner.
type MiningConfig struct {
	MinSupport    float64          `yaml:"minSupport"`
	MaxLevel      int              `yaml:"maxLevel"`
	Workers       int              `yaml:"workers"`
	Strategy      string           `yaml:"strategy"`
	SubsetPruning bool             `yaml:"subsetPruning"`
	Timeout       time.Duration    `yaml:"timeout"`
	PairSketch    PairSketchConfig `yaml:"pairSketch"`
}

// PairSketchConfig sizes the count-min prefilter of level 2.
type PairSketchConfig struct {
	Enabled bool  `yaml:"enabled"`
	Buckets int32 `yaml:"buckets"`
	Hashes  int8  `yaml:"hashes"`
}

type OutputConfig struct {
	// Format is json (one itemset per line) or table.
	Format string `yaml:"format"`
}

// LoggingConfig controls the logrus level and formatter (text or json).
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	// Path receives the collected metrics in the Prometheus text format
	// once the run is over. Empty disables it.
	Path string `yaml:"path"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Mining: MiningConfig{
			MinSupport:    0.01,
			MaxLevel:      3,
			Strategy:      apriori.CountStrategyEnum.Scan.Name,
			SubsetPruning: true,
			PairSketch: PairSketchConfig{
				Buckets: 4096,
				Hashes:  4,
			},
		},
		Output: OutputConfig{
			Format: "json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnvOverrides reads APRIORI_* environment variables and overrides the
// corresponding config fields. Malformed numbers are ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("APRIORI_MIN_SUPPORT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Mining.MinSupport = f
		}
	}
	if v := os.Getenv("APRIORI_MAX_LEVEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Mining.MaxLevel = n
		}
	}
	if v := os.Getenv("APRIORI_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Mining.Workers = n
		}
	}
	if v := os.Getenv("APRIORI_STRATEGY"); v != "" {
		cfg.Mining.Strategy = v
	}
	if v := os.Getenv("APRIORI_SUBSET_PRUNING"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Mining.SubsetPruning = b
		}
	}
	if v := os.Getenv("APRIORI_PAIR_SKETCH_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Mining.PairSketch.Enabled = b
		}
	}
	if v := os.Getenv("APRIORI_PAIR_SKETCH_BUCKETS"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			cfg.Mining.PairSketch.Buckets = int32(n)
		}
	}
	if v := os.Getenv("APRIORI_PAIR_SKETCH_HASHES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 8); err == nil {
			cfg.Mining.PairSketch.Hashes = int8(n)
		}
	}
	if v := os.Getenv("APRIORI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Mining.Timeout = d
		}
	}
	if v := os.Getenv("APRIORI_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("APRIORI_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("APRIORI_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("APRIORI_METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if err := apriori.ValidateSupport(c.Mining.MinSupport); err != nil {
		return err
	}
	if err := apriori.ValidateMaxLevel(c.Mining.MaxLevel); err != nil {
		return err
	}
	if c.Mining.Workers < 0 {
		return fmt.Errorf("%w: got %d", apriori.ErrInvalidWorkers, c.Mining.Workers)
	}
	if _, err := apriori.ParseCountStrategy(c.Mining.Strategy); err != nil {
		return err
	}
	if c.Mining.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: got %s", c.Mining.Timeout)
	}
	switch c.Output.Format {
	case "json", "table":
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logging format %q", c.Logging.Format)
	}
	return nil
}

// minerOptions translates the mining settings into miner options. Workers
// left at 0 keep the miner default.
func (c *Config) minerOptions(logger logrus.FieldLogger, m *metrics.Metrics) ([]apriori.Option, error) {
	strategy, err := apriori.ParseCountStrategy(c.Mining.Strategy)
	if err != nil {
		return nil, err
	}
	opts := []apriori.Option{
		apriori.WithCountStrategy(strategy),
		apriori.WithSubsetPruning(c.Mining.SubsetPruning),
		apriori.WithLogger(logger),
		apriori.WithMetrics(m),
	}
	if c.Mining.Workers > 0 {
		opts = append(opts, apriori.WithWorkers(c.Mining.Workers))
	}
	if c.Mining.PairSketch.Enabled {
		opts = append(opts, apriori.WithPairSketch(c.Mining.PairSketch.Buckets, c.Mining.PairSketch.Hashes))
	}
	return opts, nil
}
