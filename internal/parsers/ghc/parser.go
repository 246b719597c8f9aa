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

// Package ghc parses the time and allocation reports written by GHC's
// cost centre profiler (+RTS -p).
package ghc

import (
	"fmt"
	"io"

	"github.com/google/ghcprof/internal"
)

// Option configures Parse.
type Option func(*options)

type options struct {
	forest internal.ForestOptions
}

// WithEqualDepthSiblings makes rows at equal indentation siblings instead of
// nesting each under the one before it.
func WithEqualDepthSiblings(enabled bool) Option {
	return func(o *options) {
		o.forest.EqualDepthSiblings = enabled
	}
}

// Parse parses a whole report held in buf. Any error wraps ErrParseFailure
// together with ErrMalformedNumber or ErrMalformedSection.
func Parse(buf []byte, opts ...Option) (*internal.Report, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	r, err := parseReport(newCursor(buf), o)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}
	return r, nil
}

func parseReport(c *cursor, o options) (*internal.Report, error) {
	header, err := parseHeader(c)
	if err != nil {
		return nil, err
	}
	// Column header of the flat summary, between two blank lines.
	if err := c.blankLine(); err != nil {
		return nil, fmt.Errorf("flat summary: %w", err)
	}
	if _, err := c.nonBlankLine(); err != nil {
		return nil, fmt.Errorf("flat summary column header: %w", err)
	}
	if err := c.blankLine(); err != nil {
		return nil, fmt.Errorf("flat summary: %w", err)
	}
	flat, err := parseFlatSummary(c)
	if err != nil {
		return nil, err
	}
	if err := parseSummariesSeparator(c); err != nil {
		return nil, err
	}
	extended, err := parseExtendedSummary(c, o.forest)
	if err != nil {
		return nil, err
	}
	return &internal.Report{
		Header:          header,
		FlatSummary:     flat,
		ExtendedSummary: extended,
	}, nil
}

// ReportParser parses a report read from an io.Reader.
type ReportParser struct {
	buf  []byte
	opts []Option
}

// MakeReportParser reads all of file into memory.
func MakeReportParser(file io.Reader, opts ...Option) (ReportParser, error) {
	buf, err := io.ReadAll(file)
	if err != nil {
		return ReportParser{}, err
	}
	return ReportParser{buf: buf, opts: opts}, nil
}

func (p ReportParser) ParseReport() (*internal.Report, error) {
	return Parse(p.buf, p.opts...)
}
