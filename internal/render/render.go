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

// Package render prints a static, human readable view of a Report.
package render

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/google/ghcprof/internal"
)

// Heat buckets a percentage of the run.
type Heat int

const (
	Cold Heat = iota
	Warm
	Hot
)

const (
	coldLimit = 10
	warmLimit = 50
)

func (h Heat) String() string {
	switch h {
	case Cold:
		return "cold"
	case Warm:
		return "warm"
	default:
		return "hot"
	}
}

func HeatOf(percent float32) Heat {
	switch {
	case percent <= coldLimit:
		return Cold
	case percent <= warmLimit:
		return Warm
	default:
		return Hot
	}
}

// CombinedHeat is the hotter of the time and allocation heats.
func CombinedHeat(timePercent, allocPercent float32) Heat {
	return max(HeatOf(timePercent), HeatOf(allocPercent))
}

type Options struct {
	Color bool
	// MaxDepth limits the call tree to this many levels. Zero means no limit.
	MaxDepth int
	// MinInheritedTime hides subtrees whose inherited time is below it.
	MinInheritedTime float32
}

type renderer struct {
	opts  Options
	hot   *color.Color
	warm  *color.Color
	title *color.Color
}

func newRenderer(opts Options) *renderer {
	r := &renderer{
		opts:  opts,
		hot:   color.New(color.FgRed, color.Bold),
		warm:  color.New(color.FgYellow),
		title: color.New(color.Bold),
	}
	for _, c := range []*color.Color{r.hot, r.warm, r.title} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

func (r *renderer) paint(h Heat, s string) string {
	switch h {
	case Hot:
		return r.hot.Sprint(s)
	case Warm:
		return r.warm.Sprint(s)
	default:
		return s
	}
}

func percent(p float32) string {
	return fmt.Sprintf("%.1f", p)
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false
	tbl.Style().Format.Header = text.FormatDefault
	return tbl
}

func (r *renderer) header(h internal.Header) string {
	tt := h.TotalTime
	processors := "processor"
	if tt.ProcessorCount != 1 {
		processors += "s"
	}
	lines := []string{
		r.title.Sprint(h.Title),
		"",
		"  " + h.Program,
		"",
		fmt.Sprintf("  total time  = %v secs (%s ticks @ %s us, %d %s)",
			tt.Seconds, humanize.Comma(int64(tt.Ticks)), humanize.Comma(int64(tt.FrequencyHz)), tt.ProcessorCount, processors),
		fmt.Sprintf("  total alloc = %s bytes (%s)",
			humanize.BigComma(new(big.Int).SetUint64(h.TotalAlloc.Bytes)), humanize.Bytes(h.TotalAlloc.Bytes)),
	}
	return strings.Join(lines, "\n")
}

func (r *renderer) flatSummary(rows internal.FlatSummary) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"COST CENTRE", "MODULE", "%time", "%alloc"})
	for _, row := range rows {
		heat := CombinedHeat(row.TimePercent, row.AllocPercent)
		tbl.AppendRow(table.Row{
			r.paint(heat, row.CostCentre),
			row.Module,
			r.paint(HeatOf(row.TimePercent), percent(row.TimePercent)),
			r.paint(HeatOf(row.AllocPercent), percent(row.AllocPercent)),
		})
	}
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return tbl.Render()
}

func (r *renderer) extendedSummary(forest internal.ExtendedSummary) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"COST CENTRE", "MODULE", "no.", "entries", "%time", "%alloc", "%time", "%alloc"})
	for _, root := range forest {
		root.Walk(func(node *internal.Tree[internal.ExtendedSummaryRow], path []*internal.Tree[internal.ExtendedSummaryRow]) bool {
			row := node.Value
			if row.InheritedTimePercent < r.opts.MinInheritedTime {
				return false
			}
			level := len(path)
			heat := CombinedHeat(row.InheritedTimePercent, row.InheritedAllocPercent)
			tbl.AppendRow(table.Row{
				strings.Repeat(" ", level) + r.paint(heat, row.CostCentre),
				row.Module,
				row.SequenceNumber,
				humanize.Comma(int64(row.Entries)),
				r.paint(HeatOf(row.IndividualTimePercent), percent(row.IndividualTimePercent)),
				r.paint(HeatOf(row.IndividualAllocPercent), percent(row.IndividualAllocPercent)),
				r.paint(HeatOf(row.InheritedTimePercent), percent(row.InheritedTimePercent)),
				r.paint(HeatOf(row.InheritedAllocPercent), percent(row.InheritedAllocPercent)),
			})
			return r.opts.MaxDepth == 0 || level+1 < r.opts.MaxDepth
		})
	}
	configs := []table.ColumnConfig{}
	for n := 3; n <= 8; n++ {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	tbl.SetColumnConfigs(configs)
	return tbl.Render()
}

// Render writes the header, the flat summary and the call tree of report.
func Render(w io.Writer, report *internal.Report, opts Options) error {
	r := newRenderer(opts)
	sections := []string{
		r.header(report.Header),
		r.flatSummary(report.FlatSummary),
		r.extendedSummary(report.ExtendedSummary),
	}
	_, err := fmt.Fprintln(w, strings.Join(sections, "\n\n"))
	return err
}
