/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithControlBitsAutoSetsEnableBits(t *testing.T) {
	m := CIFBitmap{CIF1: 0x8000}
	got := m.WithControlBits()
	require.True(t, got.HasCIF1())
	require.False(t, got.HasCIF2())
	require.False(t, got.HasCIF3())
}

func TestValidateSupportedRejectsReservedBit(t *testing.T) {
	// Scenario F: CIF3-enable set, CIF3 bit 28 (reserved) set.
	m := CIFBitmap{CIF0: 1 << cif0ControlCIF3Bit, CIF3: 1 << 28}
	err := m.ValidateSupported()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, KindUnsupportedField, verr.Kind)
}

func TestCalculateContextSizeCTScenarioC(t *testing.T) {
	// Scenario C: CIF0 bit 29 only (bandwidth, 2 words). Total = CIF0 word + 2.
	m := CIFBitmap{CIF0: 1 << 29}
	size, err := CalculateContextSizeCT(m)
	require.NoError(t, err)
	require.Equal(t, 3, size)
}

func TestCalculateContextSizeCTRejectsVariableBit(t *testing.T) {
	m := CIFBitmap{CIF0: 1 << BitGPSASCII}
	_, err := CalculateContextSizeCT(m)
	require.Error(t, err)
}

func TestGPSASCIISizeScenarioE(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x0C} // char_count = 12
	n, err := GPSASCIISize(buf, 0)
	require.NoError(t, err)
	require.Equal(t, 1+3, n) // count word + ceil(12/4) = 3 words
}

func TestGPSASCIISizeZeroChars(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x00}
	n, err := GPSASCIISize(buf, 0)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestContextAssociationListsSizeZeroCounts(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x00}
	n, err := ContextAssociationListsSize(buf, 0)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestFieldOffsetScenarioD(t *testing.T) {
	// CIF0 bit1 (CIF1-enable), CIF1 bit 15 (aux_frequency).
	m := CIFBitmap{CIF0: 1 << cif0ControlCIF1Bit, CIF1: 1 << 15}
	// Region starts right after CIF0+CIF1 words; no CIF0 data fields precede.
	off, err := FieldOffset(m, FieldTag{CIF1, 15}, nil, 0, 0)
	require.NoError(t, err)
	require.Equal(t, 0, off)
}

func TestFieldOffsetRejectsUnsupportedBit(t *testing.T) {
	m := CIFBitmap{CIF0: 1 << 18} // bit 18 reserved in CIF0
	_, err := FieldOffset(m, FieldTag{CIF0, 18}, nil, 0, 0)
	require.Error(t, err)
}

func TestCalculateContextFieldsSizeRuntimeScenarioC(t *testing.T) {
	buf := make([]byte, 8) // bandwidth's 2 words
	WriteU64(buf, 0, 0x0000001312D00000)
	m := CIFBitmap{CIF0: 1 << 29}
	words, err := CalculateContextFieldsSizeRuntime(m, buf, 0, len(buf))
	require.NoError(t, err)
	require.Equal(t, 2, words)
}
