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

func parseExtendedRow(line string) (item internal.Leveled[internal.ExtendedSummaryRow], err error) {
	// Each row is
	// 1. Depth as leading spaces
	// 2. Cost centre and module
	// 3. Sequence number and entries
	// 4. Individual %time %alloc, then inherited %time %alloc
	f := &fields{s: line}
	item.Depth = f.indent()
	row := &item.Value
	if row.CostCentre, err = f.token("cost centre"); err != nil {
		return item, err
	}
	if err = f.space("module"); err != nil {
		return item, err
	}
	if row.Module, err = f.token("module"); err != nil {
		return item, err
	}
	f.indent()
	no, err := f.unsigned("no.", 32)
	if err != nil {
		return item, err
	}
	f.indent()
	entries, err := f.unsigned("entries", 32)
	if err != nil {
		return item, err
	}
	row.SequenceNumber = uint32(no)
	row.Entries = uint32(entries)

	percents := []struct {
		name string
		dst  *float32
	}{
		{"individual %time", &row.IndividualTimePercent},
		{"individual %alloc", &row.IndividualAllocPercent},
		{"inherited %time", &row.InheritedTimePercent},
		{"inherited %alloc", &row.InheritedAllocPercent},
	}
	for _, p := range percents {
		f.indent()
		if *p.dst, err = f.decimal(p.name); err != nil {
			return item, err
		}
	}
	return item, f.end()
}

// lexExtendedRows reads the rest of the input as extended summary rows.
// Blank lines are only allowed after the last row.
func lexExtendedRows(c *cursor) ([]internal.Leveled[internal.ExtendedSummaryRow], error) {
	var items []internal.Leveled[internal.ExtendedSummaryRow]
	for !c.onlyBlankLeft() {
		n := c.line
		line, err := c.rawLine()
		if err != nil {
			return nil, fmt.Errorf("extended summary: %w", err)
		}
		if isBlank(line) {
			return nil, fmt.Errorf("line %d: extended summary: unexpected blank line: %w", n, ErrMalformedSection)
		}
		item, err := parseExtendedRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: extended summary: %w", n, err)
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("line %d: extended summary has no rows: %w", c.line, ErrMalformedSection)
	}
	return items, nil
}

func parseExtendedSummary(c *cursor, opts internal.ForestOptions) (internal.ExtendedSummary, error) {
	items, err := lexExtendedRows(c)
	if err != nil {
		return nil, err
	}
	return internal.ExtendedSummary(internal.BuildForest(items, opts)), nil
}
