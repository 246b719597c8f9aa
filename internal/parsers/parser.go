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

package parsers

import (
	"fmt"
	"io"

	"github.com/google/ghcprof/internal"
	"github.com/google/ghcprof/internal/parsers/ghc"
)

// Format names accepted by MakeParser.
const (
	FormatGHC = "ghc"
)

type Parser interface {
	ParseReport() (r *internal.Report, err error)
}

// Options apply to every input format.
type Options struct {
	EqualDepthSiblings bool
}

func MakeGHCParser(file io.Reader, opts Options) (Parser, error) {
	p, err := ghc.MakeReportParser(file, ghc.WithEqualDepthSiblings(opts.EqualDepthSiblings))
	if err != nil {
		return nil, err
	}
	return p, nil
}

// MakeParser returns the parser for format.
func MakeParser(format string, file io.Reader, opts Options) (Parser, error) {
	switch format {
	case FormatGHC, "":
		return MakeGHCParser(file, opts)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}
