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
	"strconv"
	"strings"
)

// cursor walks the report buffer one line at a time.
type cursor struct {
	buf []byte
	pos int
	// line is the 1-based number of the next line to be read.
	line int
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf, line: 1}
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.buf)
}

// rawLine returns the next line without its terminator, keeping leading
// whitespace.
func (c *cursor) rawLine() (string, error) {
	if c.eof() {
		return "", fmt.Errorf("line %d: unexpected end of input: %w", c.line, ErrMalformedSection)
	}
	i := bytes.IndexByte(c.buf[c.pos:], '\n')
	if i < 0 {
		return "", fmt.Errorf("line %d: missing line terminator: %w", c.line, ErrMalformedSection)
	}
	line := string(c.buf[c.pos : c.pos+i])
	c.pos += i + 1
	c.line++
	return strings.TrimSuffix(line, "\r"), nil
}

// textLine returns the next line with surrounding whitespace removed.
func (c *cursor) textLine() (string, error) {
	line, err := c.rawLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// nonBlankLine is textLine for lines that must carry text.
func (c *cursor) nonBlankLine() (string, error) {
	line, err := c.textLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return "", fmt.Errorf("line %d: unexpected blank line: %w", c.line-1, ErrMalformedSection)
	}
	return line, nil
}

func (c *cursor) blankLine() error {
	line, err := c.rawLine()
	if err != nil {
		return err
	}
	if !isBlank(line) {
		return fmt.Errorf("line %d: expected a blank line, got %q: %w", c.line-1, line, ErrMalformedSection)
	}
	return nil
}

// onlyBlankLeft reports whether the rest of the input is whitespace.
func (c *cursor) onlyBlankLeft() bool {
	return len(bytes.TrimSpace(c.buf[c.pos:])) == 0
}

func isBlank(line string) bool {
	return strings.TrimLeft(line, " \t\r") == ""
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isNumlike(b byte) bool {
	return isDigit(b) || b == '.' || b == ','
}

// fields scans the inside of a single line.
type fields struct {
	s   string
	pos int
}

func (f *fields) done() bool {
	return f.pos >= len(f.s)
}

// indent consumes leading spaces and tabs and returns how many there were.
func (f *fields) indent() int {
	start := f.pos
	for !f.done() && isSpace(f.s[f.pos]) {
		f.pos++
	}
	return f.pos - start
}

// space consumes a run of whitespace that must not be empty.
func (f *fields) space(what string) error {
	if f.indent() == 0 {
		return fmt.Errorf("expected whitespace before %s at column %d: %w", what, f.pos+1, ErrMalformedSection)
	}
	return nil
}

// token returns the run of non-whitespace characters at the cursor.
func (f *fields) token(what string) (string, error) {
	start := f.pos
	for !f.done() && !isSpace(f.s[f.pos]) {
		f.pos++
	}
	if start == f.pos {
		return "", fmt.Errorf("missing %s at column %d: %w", what, start+1, ErrMalformedSection)
	}
	return f.s[start:f.pos], nil
}

// skipToDigit moves to the next digit on the line.
func (f *fields) skipToDigit(what string) error {
	for !f.done() && !isDigit(f.s[f.pos]) {
		f.pos++
	}
	if f.done() {
		return fmt.Errorf("no %s on line: %w", what, ErrMalformedNumber)
	}
	return nil
}

// skipPast moves just after the next occurrence of b.
func (f *fields) skipPast(b byte) error {
	i := strings.IndexByte(f.s[f.pos:], b)
	if i < 0 {
		return fmt.Errorf("expected %q: %w", b, ErrMalformedSection)
	}
	f.pos += i + 1
	return nil
}

// end checks that only whitespace is left on the line.
func (f *fields) end() error {
	f.indent()
	if !f.done() {
		return fmt.Errorf("unexpected %q at column %d: %w", f.s[f.pos:], f.pos+1, ErrMalformedSection)
	}
	return nil
}

// numlike returns the maximal run of digits, '.' and ',' with the thousands
// separators removed.
func (f *fields) numlike() string {
	start := f.pos
	for !f.done() && isNumlike(f.s[f.pos]) {
		f.pos++
	}
	return strings.ReplaceAll(f.s[start:f.pos], ",", "")
}

// unsigned lexes an unsigned integer that must fit in bits.
func (f *fields) unsigned(what string, bits int) (uint64, error) {
	start := f.pos
	n := f.numlike()
	v, err := strconv.ParseUint(n, 10, bits)
	if err != nil {
		return 0, fmt.Errorf("%s: %q at column %d is not a uint%d: %w", what, f.s[start:f.pos], start+1, bits, ErrMalformedNumber)
	}
	return v, nil
}

// decimal lexes a decimal number.
func (f *fields) decimal(what string) (float32, error) {
	start := f.pos
	n := f.numlike()
	v, err := strconv.ParseFloat(n, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %q at column %d is not a number: %w", what, f.s[start:f.pos], start+1, ErrMalformedNumber)
	}
	return float32(v), nil
}
