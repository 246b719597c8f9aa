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

	"github.com/google/ghcprof/internal"
)

func TestParseSummaryRow(t *testing.T) {
	got, err := parseSummaryRow("encryptBlock                                      Crypto.RNCryptor.V3.Encrypt  25.4    0.0")
	require.NoError(t, err)
	assert.Equal(t, internal.SummaryRow{
		CostCentre:   "encryptBlock",
		Module:       "Crypto.RNCryptor.V3.Encrypt",
		TimePercent:  25.4,
		AllocPercent: 0,
	}, got)
}

func TestParseSummaryRowErrors(t *testing.T) {
	_, err := parseSummaryRow("encryptBlock Crypto.RNCryptor.V3.Encrypt  n/a    0.0")
	require.ErrorIs(t, err, ErrMalformedNumber)

	_, err = parseSummaryRow("encryptBlock Crypto.RNCryptor.V3.Encrypt  25.4")
	require.ErrorIs(t, err, ErrMalformedNumber)

	_, err = parseSummaryRow("encryptBlock Crypto.RNCryptor.V3.Encrypt  25.4  0.0  7")
	require.ErrorIs(t, err, ErrMalformedSection)

	_, err = parseSummaryRow("encryptBlock")
	require.ErrorIs(t, err, ErrMalformedSection)
}

func TestParseFlatSummary(t *testing.T) {
	const summary = `encryptBlock                                      Crypto.RNCryptor.V3.Encrypt  25.4    0.0
decryptBlock                                      Crypto.RNCryptor.V3.Decrypt  25.1    0.0
fastpbkdf2_fn.\.\.\                               Crypto.KDF.PBKDF2            15.2    0.0
encryptBytes                                      Crypto.RNCryptor.V3.Encrypt  12.3   16.5
fastRandBs.hashes                                 Data.ByteString.Arbitrary    10.9   16.6
encryptStreamWithContext.finaliseEncryption.(...) Crypto.RNCryptor.V3.Encrypt   2.7   16.5
streamingRoundTrip                                Tests                         2.7   16.5
fastRandBs                                        Data.ByteString.Arbitrary     2.7   16.5
decryptBytes                                      Crypto.RNCryptor.V3.Decrypt   2.2   16.5

`
	c := newCursor([]byte(summary))
	rows, err := parseFlatSummary(c)
	require.NoError(t, err)
	assert.True(t, c.eof())

	require.Len(t, rows, 9)
	assert.Equal(t, "encryptBlock", rows[0].CostCentre)
	assert.Equal(t, `fastpbkdf2_fn.\.\.\`, rows[2].CostCentre)
	assert.Equal(t, "decryptBytes", rows[8].CostCentre)
	assert.Equal(t, float32(16.5), rows[8].AllocPercent)
}

func TestParseFlatSummaryEmpty(t *testing.T) {
	rows, err := parseFlatSummary(newCursor([]byte("\n")))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseFlatSummaryUnterminated(t *testing.T) {
	_, err := parseFlatSummary(newCursor([]byte("encryptBlock Crypto.RNCryptor.V3.Encrypt  25.4    0.0\n")))
	require.ErrorIs(t, err, ErrMalformedSection)

	_, err = parseFlatSummary(newCursor(nil))
	require.ErrorIs(t, err, ErrMalformedSection)
}

func TestParseFlatSummaryReportsLine(t *testing.T) {
	_, err := parseFlatSummary(newCursor([]byte("a M 1.0 2.0\nb M x 2.0\n\n")))
	require.ErrorIs(t, err, ErrMalformedNumber)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseSummariesSeparator(t *testing.T) {
	c := newCursor([]byte(validSeparator))
	require.NoError(t, parseSummariesSeparator(c))
	assert.True(t, c.eof())

	// One header line only.
	err := parseSummariesSeparator(newCursor([]byte("\nCOST CENTRE MODULE\n\nMAIN MAIN 1 0 0.0 0.0 0.0 0.0\n")))
	require.ErrorIs(t, err, ErrMalformedSection)

	// End of input after the flat summary.
	require.ErrorIs(t, parseSummariesSeparator(newCursor(nil)), ErrMalformedSection)
}
