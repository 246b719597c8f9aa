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
	"bytes"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/google/ghcprof/internal"
)

const (
	costCentreTitle = "COST CENTRE"
	moduleTitle     = "MODULE"
)

// FormatFloat prints a percentage or a number of seconds the way the
// report does, always with a fractional part.
func FormatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatBytes prints a byte count with thousands separators.
func FormatBytes(n uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(n))
}

// Format writes r in the report layout. Spacing differs from what the
// profiler writes but Parse reads the result back to an equal Report.
func Format(w io.Writer, r *internal.Report) error {
	var b bytes.Buffer
	formatHeader(&b, r.Header)
	formatFlatSummary(&b, r.FlatSummary)
	formatExtendedSummary(&b, r.ExtendedSummary)
	_, err := w.Write(b.Bytes())
	return err
}

func formatHeader(b *bytes.Buffer, h internal.Header) {
	tt := h.TotalTime
	procs := "processor"
	if tt.ProcessorCount != 1 {
		procs += "s"
	}
	fmt.Fprintf(b, "\t%s\n\n\t   %s\n\n", h.Title, h.Program)
	fmt.Fprintf(b, "\ttotal time  =       %s secs   (%d ticks @ %d us, %d %s)\n",
		FormatFloat(tt.Seconds), tt.Ticks, tt.FrequencyHz, tt.ProcessorCount, procs)
	fmt.Fprintf(b, "\ttotal alloc = %s bytes  (excludes profiling overheads)\n\n",
		FormatBytes(h.TotalAlloc.Bytes))
}

func formatFlatSummary(b *bytes.Buffer, rows internal.FlatSummary) {
	ccWidth, modWidth := len(costCentreTitle), len(moduleTitle)
	for _, row := range rows {
		ccWidth = max(ccWidth, len(row.CostCentre))
		modWidth = max(modWidth, len(row.Module))
	}
	fmt.Fprintf(b, "%-*s %-*s %6s %6s\n\n", ccWidth, costCentreTitle, modWidth, moduleTitle, "%time", "%alloc")
	for _, row := range rows {
		fmt.Fprintf(b, "%-*s %-*s %6s %6s\n", ccWidth, row.CostCentre, modWidth, row.Module,
			FormatFloat(row.TimePercent), FormatFloat(row.AllocPercent))
	}
	b.WriteString("\n")
}

func formatExtendedSummary(b *bytes.Buffer, forest internal.ExtendedSummary) {
	ccWidth, modWidth := len(costCentreTitle), len(moduleTitle)
	for _, t := range forest {
		t.Walk(func(node *internal.Tree[internal.ExtendedSummaryRow], _ []*internal.Tree[internal.ExtendedSummaryRow]) bool {
			ccWidth = max(ccWidth, node.Depth+len(node.Value.CostCentre))
			modWidth = max(modWidth, len(node.Value.Module))
			return true
		})
	}
	lead := ccWidth + modWidth + len(" no.     entries  ") + 1
	fmt.Fprintf(b, "\n%*s%s\n", lead, "", "individual     inherited")
	fmt.Fprintf(b, "%-*s %-*s %6s %11s  %6s %6s  %6s %6s\n\n", ccWidth, costCentreTitle, modWidth, moduleTitle,
		"no.", "entries", "%time", "%alloc", "%time", "%alloc")
	for _, t := range forest {
		t.Walk(func(node *internal.Tree[internal.ExtendedSummaryRow], _ []*internal.Tree[internal.ExtendedSummaryRow]) bool {
			row := node.Value
			cc := strings.Repeat(" ", node.Depth) + row.CostCentre
			fmt.Fprintf(b, "%-*s %-*s %6d %11d  %6s %6s  %6s %6s\n", ccWidth, cc, modWidth, row.Module,
				row.SequenceNumber, row.Entries,
				FormatFloat(row.IndividualTimePercent), FormatFloat(row.IndividualAllocPercent),
				FormatFloat(row.InheritedTimePercent), FormatFloat(row.InheritedAllocPercent))
			return true
		})
	}
}
