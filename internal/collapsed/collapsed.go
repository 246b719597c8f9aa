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

// Package collapsed writes a report's call tree as collapsed stacks, one
// "frame;frame;frame value" line per cost centre, the input format of
// flame graph tools.
package collapsed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/ghcprof/internal"
)

// Metric selects the value written for each stack.
type Metric string

const (
	// MetricTime is the individual time in ticks.
	MetricTime Metric = "time"
	// MetricAlloc is the individual allocation in bytes.
	MetricAlloc Metric = "alloc"
	// MetricEntries is the number of entries.
	MetricEntries Metric = "entries"
)

var ErrUnknownMetric = errors.New("unknown metric")

func ParseMetric(s string) (Metric, error) {
	switch m := Metric(s); m {
	case MetricTime, MetricAlloc, MetricEntries:
		return m, nil
	}
	return "", fmt.Errorf("%w %q, want one of time, alloc, entries", ErrUnknownMetric, s)
}

type Sample struct {
	Stack []string
	Value int64
}

type Profile struct {
	Samples []Sample
}

// Options controls FromReport.
type Options struct {
	Metric Metric
	// Qualify prefixes each frame with its module.
	Qualify bool
}

func frameName(row internal.ExtendedSummaryRow, qualify bool) string {
	if qualify {
		return row.Module + "." + row.CostCentre
	}
	return row.CostCentre
}

func value(h internal.Header, row internal.ExtendedSummaryRow, metric Metric) int64 {
	switch metric {
	case MetricAlloc:
		return int64(math.Round(float64(row.IndividualAllocPercent) / 100 * float64(h.TotalAlloc.Bytes)))
	case MetricEntries:
		return int64(row.Entries)
	default:
		return int64(math.Round(float64(row.IndividualTimePercent) / 100 * float64(h.TotalTime.Ticks)))
	}
}

// FromReport builds one sample per cost centre with a non-zero value, in
// call tree order.
func FromReport(r *internal.Report, opts Options) *Profile {
	p := &Profile{Samples: make([]Sample, 0)}
	for _, root := range r.ExtendedSummary {
		root.Walk(func(node *internal.Tree[internal.ExtendedSummaryRow], path []*internal.Tree[internal.ExtendedSummaryRow]) bool {
			v := value(r.Header, node.Value, opts.Metric)
			if v == 0 {
				return true
			}
			stack := make([]string, 0, len(path)+1)
			for _, frame := range path {
				stack = append(stack, frameName(frame.Value, opts.Qualify))
			}
			stack = append(stack, frameName(node.Value, opts.Qualify))
			p.Samples = append(p.Samples, Sample{Stack: stack, Value: v})
			return true
		})
	}
	return p
}

func Encode(p *Profile, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, sample := range p.Samples {
		if _, err := fmt.Fprintf(bw, "%s %d\n", strings.Join(sample.Stack, ";"), sample.Value); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func Decode(r io.Reader) (*Profile, error) {
	p := &Profile{Samples: make([]Sample, 0)}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		sample, err := parseCallLine(line)
		if err != nil {
			return nil, err
		}
		p.Samples = append(p.Samples, sample)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

func parseCallLine(line string) (Sample, error) {
	sep := strings.LastIndex(line, " ")
	if sep == -1 {
		return Sample{}, fmt.Errorf("collapsed: malformed line %q", line)
	}
	value, err := strconv.ParseInt(line[sep+1:], 10, 64)
	if err != nil {
		return Sample{}, fmt.Errorf("collapsed: malformed line %q: %w", line, err)
	}
	return Sample{
		Stack: strings.Split(line[:sep], ";"),
		Value: value,
	}, nil
}
