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
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidSupport  = errors.New("minimum support must be a fraction in [0, 1]")
	ErrInvalidMaxLevel = errors.New("max level must be a positive integer")
	ErrInvalidWorkers  = errors.New("number of workers must be at least 1")
	ErrInvalidSketch   = errors.New("pair sketch needs at least 3 buckets and 1 hash")
)

// ValidateSupport checks that minSupport is a fraction in [0, 1]. The engine
// itself accepts any value, so callers validate before mining.
func ValidateSupport(minSupport float64) error {
	if math.IsNaN(minSupport) || minSupport < 0 || minSupport > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidSupport, minSupport)
	}
	return nil
}

// ValidateMaxLevel checks that maxLevel is positive. A level of 0 is not an
// error for the engine, it just mines nothing.
func ValidateMaxLevel(maxLevel int) error {
	if maxLevel < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxLevel, maxLevel)
	}
	return nil
}
