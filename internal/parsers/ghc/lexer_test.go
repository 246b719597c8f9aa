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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsignedNumbers(t *testing.T) {
	cases := []struct {
		in   string
		bits int
		want uint64
		rest string
	}{
		{"60,261,923,248", 64, 60261923248, ""},
		{"53615 ticks", 32, 53615, " ticks"},
		{"1000 us", 16, 1000, " us"},
		{"1 processor)", 8, 1, " processor)"},
	}
	for _, tc := range cases {
		f := &fields{s: tc.in}
		got, err := f.unsigned("n", tc.bits)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.rest, f.s[f.pos:], tc.in)
	}
}

func TestDecimalNumbers(t *testing.T) {
	f := &fields{s: "53.62 secs"}
	got, err := f.decimal("seconds")
	require.NoError(t, err)
	assert.Equal(t, float32(53.62), got)
	assert.Equal(t, " secs", f.s[f.pos:])

	f = &fields{s: "100.0"}
	got, err = f.decimal("%time")
	require.NoError(t, err)
	assert.Equal(t, float32(100), got)
}

func TestMalformedNumbers(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		parse func(f *fields) error
	}{
		{"empty run", "abc", func(f *fields) error { _, err := f.decimal("x"); return err }},
		{"two points", "1.2.3", func(f *fields) error { _, err := f.decimal("x"); return err }},
		{"fraction as integer", "53.62", func(f *fields) error { _, err := f.unsigned("x", 32); return err }},
		{"too big for uint8", "300", func(f *fields) error { _, err := f.unsigned("x", 8); return err }},
		{"too big for uint64", "99,999,999,999,999,999,999", func(f *fields) error { _, err := f.unsigned("x", 64); return err }},
		{"only separators", ",,,", func(f *fields) error { _, err := f.unsigned("x", 64); return err }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.parse(&fields{s: tc.in})
			require.ErrorIs(t, err, ErrMalformedNumber)
			assert.NotErrorIs(t, err, ErrMalformedSection)
		})
	}
}

func TestLines(t *testing.T) {
	c := newCursor([]byte("  Thu Dec 29 13:55 2016 Time and Allocation Profiling Report  (Final)\r\n\n   indented\nrest"))

	line, err := c.textLine()
	require.NoError(t, err)
	assert.Equal(t, "Thu Dec 29 13:55 2016 Time and Allocation Profiling Report  (Final)", line)

	require.NoError(t, c.blankLine())

	line, err = c.rawLine()
	require.NoError(t, err)
	assert.Equal(t, "   indented", line)
	assert.Equal(t, 4, c.line)

	// No terminator on the last line.
	_, err = c.rawLine()
	require.ErrorIs(t, err, ErrMalformedSection)
	assert.Contains(t, err.Error(), "line 4")
}

func TestBlankLineRejectsText(t *testing.T) {
	c := newCursor([]byte("not blank\n"))
	err := c.blankLine()
	require.ErrorIs(t, err, ErrMalformedSection)

	c = newCursor([]byte(" \t \n"))
	require.NoError(t, c.blankLine())
	assert.True(t, c.eof())

	require.ErrorIs(t, c.blankLine(), ErrMalformedSection)
}

func TestOnlyBlankLeft(t *testing.T) {
	assert.True(t, newCursor([]byte("\n \n\t\n")).onlyBlankLeft())
	assert.True(t, newCursor(nil).onlyBlankLeft())
	assert.False(t, newCursor([]byte("\n x\n")).onlyBlankLeft())
}
