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

func TestDecodeHeaderScenarioA(t *testing.T) {
	// 00 00 00 02: type=0 (SignalDataNoId), size=2 words.
	h := DecodeHeader(0x00000002)
	require.Equal(t, PacketTypeSignalDataNoID, h.Type)
	require.Equal(t, uint16(2), h.SizeWords)
	require.False(t, h.HasClassID)
	require.False(t, h.HasStreamID())
}

func TestDecodeHeaderScenarioB(t *testing.T) {
	// 1C 60 00 07: type=1, trailer=1, TSI=1, TSF=2, count=0, size=7. The
	// 0x1C byte also sets bit 27 (class ID), which this test does not check.
	h := DecodeHeader(0x1C600007)
	require.Equal(t, PacketTypeSignalData, h.Type)
	require.True(t, h.TrailerIncluded)
	require.Equal(t, TSIUTC, h.TSI)
	require.Equal(t, TSFRealTime, h.TSF)
	require.Equal(t, uint8(0), h.PacketCount)
	require.Equal(t, uint16(7), h.SizeWords)
	require.True(t, h.HasStreamID())
}

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	words := []uint32{0x00000002, 0x1C600007, 0x40000005, 0x40000006, 0x40000007, 0x40000004}
	for _, w := range words {
		h := DecodeHeader(w)
		require.Equal(t, w, h.Encode())
	}
}

func TestIsValidPacketType(t *testing.T) {
	require.True(t, IsValidPacketType(PacketTypeExtCommand))
	require.False(t, IsValidPacketType(PacketType(8)))
	require.False(t, IsValidPacketType(PacketType(15)))
}

func TestPacketTypeIsOdd(t *testing.T) {
	require.False(t, PacketTypeSignalDataNoID.IsOdd())
	require.True(t, PacketTypeSignalData.IsOdd())
	require.False(t, PacketTypeExtDataNoID.IsOdd())
	require.True(t, PacketTypeExtData.IsOdd())
}

func TestHasStreamIDContextAlwaysTrue(t *testing.T) {
	for _, typ := range []PacketType{PacketTypeContext, PacketTypeExtContext} {
		h := DecodeHeader(BuildHeader(typ, false, false, false, false, TSINone, TSFNone, 0, 1))
		require.True(t, h.HasStreamID())
	}
}
