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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSupport(t *testing.T) {
	for _, ok := range []float64{0, 0.01, 0.5, 1} {
		assert.NoError(t, ValidateSupport(ok), "%v", ok)
	}
	for _, bad := range []float64{-0.1, 1.01, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, ValidateSupport(bad), ErrInvalidSupport, "%v", bad)
	}
}

func TestValidateMaxLevel(t *testing.T) {
	assert.NoError(t, ValidateMaxLevel(1))
	assert.ErrorIs(t, ValidateMaxLevel(0), ErrInvalidMaxLevel)
	assert.ErrorIs(t, ValidateMaxLevel(-3), ErrInvalidMaxLevel)
}

func TestParseCountStrategy(t *testing.T) {
	s, err := ParseCountStrategy("scan")
	require.NoError(t, err)
	assert.Equal(t, CountStrategyEnum.Scan, s)

	s, err = ParseCountStrategy("bitmap")
	require.NoError(t, err)
	assert.Equal(t, CountStrategyEnum.Bitmap, s)
	assert.Equal(t, "bitmap", s.String())

	_, err = ParseCountStrategy("vertical")
	assert.Error(t, err)
}
