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

func parseTotalTime(line string) (tt internal.TotalTime, err error) {
	// Line looks like,
	//   total time  =       53.62 secs   (53615 ticks @ 1000 us, 1 processor)
	f := &fields{s: line}
	if err = f.skipToDigit("total time"); err != nil {
		return tt, err
	}
	if tt.Seconds, err = f.decimal("seconds"); err != nil {
		return tt, err
	}
	if err = f.skipPast('('); err != nil {
		return tt, err
	}
	ticks, err := f.unsigned("ticks", 32)
	if err != nil {
		return tt, err
	}
	if err = f.skipToDigit("tick frequency"); err != nil {
		return tt, err
	}
	freq, err := f.unsigned("tick frequency", 16)
	if err != nil {
		return tt, err
	}
	if err = f.skipToDigit("processor count"); err != nil {
		return tt, err
	}
	procs, err := f.unsigned("processor count", 8)
	if err != nil {
		return tt, err
	}
	tt.Ticks = uint32(ticks)
	tt.FrequencyHz = uint16(freq)
	tt.ProcessorCount = uint8(procs)
	return tt, nil
}

func parseTotalAlloc(line string) (internal.TotalAlloc, error) {
	// Line looks like,
	//   total alloc = 60,261,923,248 bytes  (excludes profiling overheads)
	f := &fields{s: line}
	if err := f.skipToDigit("total alloc"); err != nil {
		return internal.TotalAlloc{}, err
	}
	bytes, err := f.unsigned("bytes", 64)
	if err != nil {
		return internal.TotalAlloc{}, err
	}
	return internal.TotalAlloc{Bytes: bytes}, nil
}

// parseHeader reads the title, the program invocation and the two totals.
// No part of the header is returned on failure.
func parseHeader(c *cursor) (internal.Header, error) {
	h, err := readHeader(c)
	if err != nil {
		return internal.Header{}, fmt.Errorf("header: %w", err)
	}
	return h, nil
}

func readHeader(c *cursor) (h internal.Header, err error) {
	if h.Title, err = c.nonBlankLine(); err != nil {
		return h, fmt.Errorf("report title: %w", err)
	}
	if err = c.blankLine(); err != nil {
		return h, err
	}
	if h.Program, err = c.nonBlankLine(); err != nil {
		return h, fmt.Errorf("program line: %w", err)
	}
	if err = c.blankLine(); err != nil {
		return h, err
	}

	n := c.line
	line, err := c.rawLine()
	if err != nil {
		return h, fmt.Errorf("total time: %w", err)
	}
	if h.TotalTime, err = parseTotalTime(line); err != nil {
		return h, fmt.Errorf("line %d: total time: %w", n, err)
	}

	n = c.line
	line, err = c.rawLine()
	if err != nil {
		return h, fmt.Errorf("total alloc: %w", err)
	}
	if h.TotalAlloc, err = parseTotalAlloc(line); err != nil {
		return h, fmt.Errorf("line %d: total alloc: %w", n, err)
	}
	return h, nil
}
