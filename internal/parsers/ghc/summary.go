// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ghc

import (
	"fmt"

	"github.com/google/ghcprof/internal"
)

func parseSummaryRow(line string) (row internal.SummaryRow, err error) {
	// Row looks like,
	// encryptBlock                  Crypto.RNCryptor.V3.Encrypt  25.4    0.0
	f := &fields{s: line}
	f.indent()
	if row.CostCentre, err = f.token("cost centre"); err != nil {
		return row, err
	}
	if err = f.space("module"); err != nil {
		return row, err
	}
	if row.Module, err = f.token("module"); err != nil {
		return row, err
	}
	f.indent()
	if row.TimePercent, err = f.decimal("%time"); err != nil {
		return row, err
	}
	f.indent()
	if row.AllocPercent, err = f.decimal("%alloc"); err != nil {
		return row, err
	}
	return row, f.end()
}

// parseFlatSummary reads summary rows up to and including the blank line
// that ends the section.
func parseFlatSummary(c *cursor) (internal.FlatSummary, error) {
	rows := internal.FlatSummary{}
	for {
		n := c.line
		line, err := c.rawLine()
		if err != nil {
			return nil, fmt.Errorf("flat summary: %w", err)
		}
		if isBlank(line) {
			return rows, nil
		}
		row, err := parseSummaryRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: flat summary: %w", n, err)
		}
		rows = append(rows, row)
	}
}

// parseSummariesSeparator reads the blank line, the two line column header
// of the extended summary and the blank line after it.
func parseSummariesSeparator(c *cursor) error {
	if err := c.blankLine(); err != nil {
		return fmt.Errorf("extended summary: %w", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := c.nonBlankLine(); err != nil {
			return fmt.Errorf("extended summary column header: %w", err)
		}
	}
	if err := c.blankLine(); err != nil {
		return fmt.Errorf("extended summary: %w", err)
	}
	return nil
}
