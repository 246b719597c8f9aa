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

package internal

import (
	"fmt"
	"strings"
)

// TotalTime is the "total time" line of the report header.
type TotalTime struct {
	Seconds float32 `json:"seconds" yaml:"seconds"`
	Ticks   uint32  `json:"ticks" yaml:"ticks"`
	// FrequencyHz is the number printed after '@' on the total time line.
	FrequencyHz    uint16 `json:"frequency_hz" yaml:"frequency_hz"`
	ProcessorCount uint8  `json:"processor_count" yaml:"processor_count"`
}

// TotalAlloc is the "total alloc" line of the report header.
type TotalAlloc struct {
	Bytes uint64 `json:"bytes" yaml:"bytes"`
}

// Header is the run header at the top of a report.
type Header struct {
	Title      string     `json:"title" yaml:"title"`
	Program    string     `json:"program" yaml:"program"`
	TotalTime  TotalTime  `json:"total_time" yaml:"total_time"`
	TotalAlloc TotalAlloc `json:"total_alloc" yaml:"total_alloc"`
}

// SummaryRow is one row of the flat cost centre summary.
type SummaryRow struct {
	CostCentre   string  `json:"cost_centre" yaml:"cost_centre"`
	Module       string  `json:"module" yaml:"module"`
	TimePercent  float32 `json:"time_percent" yaml:"time_percent"`
	AllocPercent float32 `json:"alloc_percent" yaml:"alloc_percent"`
}

// FlatSummary holds the flat summary rows in source order.
type FlatSummary []SummaryRow

// ExtendedSummaryRow is one row of the hierarchical summary.
type ExtendedSummaryRow struct {
	CostCentre             string  `json:"cost_centre" yaml:"cost_centre"`
	Module                 string  `json:"module" yaml:"module"`
	SequenceNumber         uint32  `json:"no" yaml:"no"`
	Entries                uint32  `json:"entries" yaml:"entries"`
	IndividualTimePercent  float32 `json:"individual_time_percent" yaml:"individual_time_percent"`
	IndividualAllocPercent float32 `json:"individual_alloc_percent" yaml:"individual_alloc_percent"`
	InheritedTimePercent   float32 `json:"inherited_time_percent" yaml:"inherited_time_percent"`
	InheritedAllocPercent  float32 `json:"inherited_alloc_percent" yaml:"inherited_alloc_percent"`
}

func (r ExtendedSummaryRow) String() string {
	return fmt.Sprintf("%s %s %d %d %v %v %v %v", r.CostCentre, r.Module, r.SequenceNumber, r.Entries,
		r.IndividualTimePercent, r.IndividualAllocPercent, r.InheritedTimePercent, r.InheritedAllocPercent)
}

// ExtendedSummary is the call tree forest, one tree per top level row.
type ExtendedSummary []*Tree[ExtendedSummaryRow]

// Len returns the number of rows in the forest.
func (s ExtendedSummary) Len() int {
	n := 0
	for _, t := range s {
		n += t.Len()
	}
	return n
}

// Report is a parsed profiling report. It is not modified after parsing.
type Report struct {
	Header          Header          `json:"header" yaml:"header"`
	FlatSummary     FlatSummary     `json:"flat_summary" yaml:"flat_summary"`
	ExtendedSummary ExtendedSummary `json:"extended_summary" yaml:"extended_summary"`
}

func (r *Report) String() string {
	return fmt.Sprintf("report {title: %s program: %s flat: %d extended: %d}",
		r.Header.Title, r.Header.Program, len(r.FlatSummary), r.ExtendedSummary.Len())
}

// Tree is a node of an indentation tree. Depth is the indentation the node
// was built at.
type Tree[T any] struct {
	Depth    int        `json:"depth" yaml:"depth"`
	Value    T          `json:"value" yaml:"value"`
	Children []*Tree[T] `json:"children,omitempty" yaml:"children,omitempty"`
}

// Len returns the number of nodes in the tree, including t.
func (t *Tree[T]) Len() int {
	n := 1
	for _, child := range t.Children {
		n += child.Len()
	}
	return n
}

// Walk visits t and its descendants in pre-order. path holds the ancestors
// of the visited node, root first, and must not be retained. Returning false
// from fn skips the node's children.
func (t *Tree[T]) Walk(fn func(node *Tree[T], path []*Tree[T]) bool) {
	t.walk(fn, nil)
}

func (t *Tree[T]) walk(fn func(*Tree[T], []*Tree[T]) bool, path []*Tree[T]) {
	if !fn(t, path) {
		return
	}
	path = append(path, t)
	for _, child := range t.Children {
		child.walk(fn, path)
	}
}

func (t *Tree[T]) String() string {
	space := strings.Repeat("  ", t.Depth)
	childrenStr := "{"
	for _, child := range t.Children {
		childrenStr += fmt.Sprintf("\n%s%s,", space, child)
	}
	childrenStr += "\n}"
	return fmt.Sprintf("{Value: %v Depth:%d Children:%s}", t.Value, t.Depth, childrenStr)
}
