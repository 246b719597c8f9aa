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

package collapsed

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/ghcprof/internal"
)

func row(cc string, no, entries uint32, time, alloc float32) internal.ExtendedSummaryRow {
	return internal.ExtendedSummaryRow{
		CostCentre:             cc,
		Module:                 "Main",
		SequenceNumber:         no,
		Entries:                entries,
		IndividualTimePercent:  time,
		IndividualAllocPercent: alloc,
	}
}

func makeReport() *internal.Report {
	fib := &internal.Tree[internal.ExtendedSummaryRow]{Depth: 2, Value: row("fib", 3, 21, 75, 50)}
	show := &internal.Tree[internal.ExtendedSummaryRow]{Depth: 2, Value: row("show", 4, 1, 0, 25)}
	mainNode := &internal.Tree[internal.ExtendedSummaryRow]{
		Depth:    1,
		Value:    row("main", 2, 1, 25, 25),
		Children: []*internal.Tree[internal.ExtendedSummaryRow]{fib, show},
	}
	root := &internal.Tree[internal.ExtendedSummaryRow]{
		Value:    row("MAIN", 1, 0, 0, 0),
		Children: []*internal.Tree[internal.ExtendedSummaryRow]{mainNode},
	}
	return &internal.Report{
		Header: internal.Header{
			TotalTime:  internal.TotalTime{Seconds: 0.2, Ticks: 200, FrequencyHz: 1000, ProcessorCount: 1},
			TotalAlloc: internal.TotalAlloc{Bytes: 4000},
		},
		ExtendedSummary: internal.ExtendedSummary{root},
	}
}

func encode(t *testing.T, p *Profile) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(p, &buf))
	return buf.String()
}

func TestFromReportTime(t *testing.T) {
	got := encode(t, FromReport(makeReport(), Options{Metric: MetricTime}))
	assert.Equal(t, "MAIN;main 50\nMAIN;main;fib 150\n", got)
}

func TestFromReportAlloc(t *testing.T) {
	got := encode(t, FromReport(makeReport(), Options{Metric: MetricAlloc}))
	assert.Equal(t, "MAIN;main 1000\nMAIN;main;fib 2000\nMAIN;main;show 1000\n", got)
}

func TestFromReportEntriesQualified(t *testing.T) {
	got := encode(t, FromReport(makeReport(), Options{Metric: MetricEntries, Qualify: true}))
	assert.Equal(t, "Main.MAIN;Main.main 1\nMain.MAIN;Main.main;Main.fib 21\nMain.MAIN;Main.main;Main.show 1\n", got)
}

func TestDecodeRoundTrip(t *testing.T) {
	want := FromReport(makeReport(), Options{Metric: MetricAlloc})
	got, err := Decode(strings.NewReader(encode(t, want)))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeMalformed(t *testing.T) {
	for _, line := range []string{"MAIN;main", "MAIN;main ten"} {
		_, err := Decode(strings.NewReader(line + "\n"))
		assert.Error(t, err, line)
	}
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("alloc")
	require.NoError(t, err)
	assert.Equal(t, MetricAlloc, m)

	_, err = ParseMetric("heap")
	assert.ErrorIs(t, err, ErrUnknownMetric)
}
