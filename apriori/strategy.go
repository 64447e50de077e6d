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

import "fmt"

// CountStrategy selects how the support of candidates is counted.
type CountStrategy struct {
	id   int
	Name string
}

type CountStrategies struct {
	// Scan tests every candidate against each working transaction.
	Scan CountStrategy
	// Bitmap intersects per item bitmaps of transaction positions.
	Bitmap CountStrategy
}

var CountStrategyEnum = &CountStrategies{
	Scan: CountStrategy{
		id:   1,
		Name: "scan",
	},
	Bitmap: CountStrategy{
		id:   2,
		Name: "bitmap",
	},
}

func (s CountStrategy) String() string {
	return s.Name
}

// ParseCountStrategy returns the strategy with the given name.
func ParseCountStrategy(name string) (CountStrategy, error) {
	switch name {
	case CountStrategyEnum.Scan.Name:
		return CountStrategyEnum.Scan, nil
	case CountStrategyEnum.Bitmap.Name:
		return CountStrategyEnum.Bitmap, nil
	}
	return CountStrategy{}, fmt.Errorf("unknown count strategy %q", name)
}
