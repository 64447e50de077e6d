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
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/freqmine/apriori-go/apriori"
	"github.com/olekukonko/tablewriter"
)

const maxLineBytes = 16 * 1024 * 1024

// readTransactions parses one JSON array of labels per line. Blank lines are
// skipped; an empty array is an empty transaction.
func readTransactions(r io.Reader) ([]apriori.RawTransaction, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var transactions []apriori.RawTransaction
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var tx apriori.RawTransaction
		if err := json.Unmarshal([]byte(line), &tx); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if tx == nil {
			tx = apriori.RawTransaction{}
		}
		transactions = append(transactions, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

// openInput returns stdin for "-" and the named file otherwise.
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}
	return os.Open(path)
}

// writeJSONLines writes one itemset per line.
func writeJSONLines(w io.Writer, itemsets []apriori.LabeledItemset) error {
	enc := json.NewEncoder(w)
	for _, s := range itemsets {
		if err := enc.Encode(s); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, res *apriori.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Level", "Itemset", "Support", "Fraction"})
	table.SetAutoWrapText(false)
	for _, s := range res.Labeled() {
		fraction := 0.0
		if res.NumTransactions > 0 {
			fraction = float64(s.Support) / float64(res.NumTransactions)
		}
		table.Append([]string{
			strconv.Itoa(s.Level),
			strings.Join(s.Items, ", "),
			strconv.FormatInt(s.Support, 10),
			strconv.FormatFloat(fraction, 'f', 4, 64),
		})
	}
	table.SetFooter([]string{"", "", "min support", strconv.FormatInt(res.MinSupportCount, 10)})
	table.Render()
}
