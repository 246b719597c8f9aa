// Copyright 2020 Google LLC
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
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/pprof/profile"
)

// MainCostCentre is the cost centre GHC roots the call tree at.
const MainCostCentre = "MAIN"

// ModuleAnnotationMap used for tagging the cost centres of a module.
type ModuleAnnotationMap map[string](string)

func (m *ModuleAnnotationMap) String() string {
	return fmt.Sprintf("%v", *m)
}

func (m *ModuleAnnotationMap) Set(value string) error {
	// Format of string is <module>:<annotation>
	sp := strings.SplitN(value, ":", 2)
	if len(sp) != 2 || sp[0] == "" || sp[1] == "" {
		return fmt.Errorf("annotation %q is not in the form <module>:<annotation>", value)
	}
	module, annotation := sp[0], sp[1]
	if *m == nil {
		*m = make(ModuleAnnotationMap)
	}
	old, ok := (*m)[module]
	if ok {
		return fmt.Errorf("Duplicate annotation found on module %s: %s", module, old)
	}
	(*m)[module] = annotation
	return nil
}

func (m *ModuleAnnotationMap) Type() string {
	return "module:tag"
}

// PprofOptions controls the shape of the converted profile.
type PprofOptions struct {
	// ExcludeMain drops the MAIN root from stacks that have other frames.
	ExcludeMain bool
	// QualifyNames prefixes function names with their module.
	QualifyNames bool
	Annotations  ModuleAnnotationMap
}

type location struct {
	module     string
	costCentre string
}

type reportToPprofConverter struct {
	report *Report
	// Settings
	opts                PprofOptions
	consumedAnnotations ModuleAnnotationMap

	// Scales from a percentage of the run to a sample value.
	nanosPerPercent float64
	bytesPerPercent float64

	// functions by name
	functions    map[string]*profile.Function
	functionList []*profile.Function
	locations    map[location]*profile.Location
	locationList []*profile.Location
	samples      []*profile.Sample
}

func newPprofConverter(report *Report, opts PprofOptions) *reportToPprofConverter {
	tt := report.Header.TotalTime
	return &reportToPprofConverter{
		report:              report,
		opts:                opts,
		consumedAnnotations: make(ModuleAnnotationMap),
		nanosPerPercent:     float64(tt.Seconds) * 1e9 / 100,
		bytesPerPercent:     float64(report.Header.TotalAlloc.Bytes) / 100,
		functions:           make(map[string]*profile.Function),
		locations:           make(map[location]*profile.Location),
		samples:             make([]*profile.Sample, 0),
	}
}

func (toPprof *reportToPprofConverter) functionName(row ExtendedSummaryRow) string {
	name := row.CostCentre
	if toPprof.opts.QualifyNames {
		name = row.Module + "." + name
	}
	annotation, ok := toPprof.opts.Annotations[row.Module]
	if ok {
		toPprof.consumedAnnotations[row.Module] = annotation
		name = fmt.Sprintf("%s [%s]", name, annotation)
	}
	return name
}

func (toPprof *reportToPprofConverter) getFunction(row ExtendedSummaryRow) *profile.Function {
	name := toPprof.functionName(row)
	f, ok := toPprof.functions[name]
	if !ok {
		f = &profile.Function{
			ID:         uint64(len(toPprof.functionList) + 1),
			Name:       name,
			SystemName: row.Module + "." + row.CostCentre,
			Filename:   row.Module,
		}
		toPprof.functions[name] = f
		toPprof.functionList = append(toPprof.functionList, f)
	}
	return f
}

func (toPprof *reportToPprofConverter) getLocation(row ExtendedSummaryRow) *profile.Location {
	id := location{module: row.Module, costCentre: row.CostCentre}
	loc, ok := toPprof.locations[id]
	if !ok {
		loc = &profile.Location{
			ID:   uint64(len(toPprof.locationList) + 1),
			Line: []profile.Line{{Function: toPprof.getFunction(row)}},
		}
		toPprof.locations[id] = loc
		toPprof.locationList = append(toPprof.locationList, loc)
	}
	return loc
}

func (toPprof *reportToPprofConverter) sampleValues(row ExtendedSummaryRow) []int64 {
	return []int64{
		int64(row.Entries),
		int64(math.Round(float64(row.IndividualTimePercent) * toPprof.nanosPerPercent)),
		int64(math.Round(float64(row.IndividualAllocPercent) * toPprof.bytesPerPercent)),
	}
}

func (toPprof *reportToPprofConverter) convertSample(node *Tree[ExtendedSummaryRow], path []*Tree[ExtendedSummaryRow], values []int64) *profile.Sample {
	// Leaf first, as pprof expects.
	stackTrace := []*profile.Location{toPprof.getLocation(node.Value)}
	for i := len(path) - 1; i >= 0; i-- {
		frame := path[i]
		if i == 0 && toPprof.opts.ExcludeMain && frame.Value.CostCentre == MainCostCentre {
			continue
		}
		stackTrace = append(stackTrace, toPprof.getLocation(frame.Value))
	}
	return &profile.Sample{
		Location: stackTrace,
		Value:    values,
		Label: map[string][]string{
			"module": {node.Value.Module},
			"no":     {strconv.FormatUint(uint64(node.Value.SequenceNumber), 10)},
		},
	}
}

func (toPprof *reportToPprofConverter) findSamples(root *Tree[ExtendedSummaryRow]) {
	root.Walk(func(node *Tree[ExtendedSummaryRow], path []*Tree[ExtendedSummaryRow]) bool {
		values := toPprof.sampleValues(node.Value)
		if values[0] != 0 || values[1] != 0 || values[2] != 0 {
			toPprof.samples = append(toPprof.samples, toPprof.convertSample(node, path, values))
		}
		return true
	})
}

func (toPprof *reportToPprofConverter) convertToPprof() *profile.Profile {
	for _, root := range toPprof.report.ExtendedSummary {
		toPprof.findSamples(root)
	}

	if len(toPprof.consumedAnnotations) < len(toPprof.opts.Annotations) {
		var missing []string
		for module := range toPprof.opts.Annotations {
			if _, ok := toPprof.consumedAnnotations[module]; !ok {
				missing = append(missing, module)
			}
		}
		sort.Strings(missing)
		slog.Warn("Not all annotations were used", "modules", missing)
	}
	header := toPprof.report.Header
	return &profile.Profile{
		SampleType: []*profile.ValueType{
			{Type: "entries", Unit: "count"},
			{Type: "cpu", Unit: "nanoseconds"},
			{Type: "alloc_space", Unit: "bytes"},
		},
		DefaultSampleType: "cpu",
		PeriodType:        &profile.ValueType{Type: "cpu", Unit: "nanoseconds"},
		Period:            int64(header.TotalTime.FrequencyHz) * 1000,
		DurationNanos:     int64(math.Round(float64(header.TotalTime.Seconds) * 1e9)),
		Comments:          []string{header.Title, header.Program},
		Sample:            toPprof.samples,
		Location:          toPprof.locationList,
		Function:          toPprof.functionList,
	}
}

// ReportToPprof converts the call tree of a Report to a pprof Profile. Each
// cost centre with individual time, allocation or entries becomes a sample
// whose stack is its path from the root.
func ReportToPprof(report *Report, opts PprofOptions) *profile.Profile {
	return newPprofConverter(report, opts).convertToPprof()
}
