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

func TestPrologueLayoutScenarioA(t *testing.T) {
	l := NewPrologueLayout(PacketTypeSignalDataNoID, false, TSINone, TSFNone)
	require.False(t, l.HasStreamID)
	require.False(t, l.HasTimestamp)
	require.Equal(t, 1, l.PrologueWords)
}

func TestPrologueLayoutScenarioB(t *testing.T) {
	l := NewPrologueLayout(PacketTypeSignalData, false, TSIUTC, TSFRealTime)
	require.True(t, l.HasStreamID)
	require.True(t, l.HasTimestamp)
	require.Equal(t, 4, l.StreamIDOffset)
	require.Equal(t, 8, l.TSIOffset)
	require.Equal(t, 12, l.TSFOffset)
	require.Equal(t, 5, l.PrologueWords)
}

func TestPrologueLayoutContextAlwaysHasStreamID(t *testing.T) {
	l := NewPrologueLayout(PacketTypeContext, false, TSINone, TSFNone)
	require.True(t, l.HasStreamID)
}

func TestPrologueLayoutClassIDOffset(t *testing.T) {
	l := NewPrologueLayout(PacketTypeContext, true, TSINone, TSFNone)
	require.Equal(t, 4, l.StreamIDOffset)
	require.Equal(t, 8, l.ClassIDOffset)
	require.Equal(t, 4, l.PrologueWords) // header + streamid + 2 classid words
}

func TestPrologueLayoutStreamIDRoundTrip(t *testing.T) {
	l := NewPrologueLayout(PacketTypeContext, false, TSINone, TSFNone)
	buf := make([]byte, WordsToBytes(l.PrologueWords))
	require.True(t, l.SetStreamID(buf, 0x12345678))
	got, ok := l.StreamID(buf)
	require.True(t, ok)
	require.Equal(t, uint32(0x12345678), got)
}

func TestPrologueLayoutClassIDRoundTrip(t *testing.T) {
	l := NewPrologueLayout(PacketTypeContext, true, TSINone, TSFNone)
	buf := make([]byte, WordsToBytes(l.PrologueWords))
	c, err := NewClassID(0x00AABBCC, 0xDD, 0x11223344)
	require.NoError(t, err)
	require.True(t, l.SetClassID(buf, c))
	got, ok := l.ClassID(buf)
	require.True(t, ok)
	require.Equal(t, c, got)
}

func TestPrologueLayoutTimestampPartialPresence(t *testing.T) {
	l := NewPrologueLayout(PacketTypeSignalData, false, TSIUTC, TSFNone)
	buf := make([]byte, WordsToBytes(l.PrologueWords))
	require.True(t, l.SetTimestamp(buf, Timestamp{Seconds: 99, Fractional: 1234}))
	ts, ok := l.Timestamp(buf)
	require.True(t, ok)
	require.Equal(t, uint32(99), ts.Seconds)
	require.Equal(t, uint64(0), ts.Fractional) // TSF absent, reads back zero
}
