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

import "errors"

var (
	// ErrMalformedNumber is returned when a numeric field does not parse as
	// its expected type.
	ErrMalformedNumber = errors.New("malformed number")
	// ErrMalformedSection is returned when the layout of a section is wrong:
	// a missing blank line, an unterminated line or a missing section.
	ErrMalformedSection = errors.New("malformed section")
	// ErrParseFailure wraps every error returned by Parse.
	ErrParseFailure = errors.New("could not parse profiling report")
)
