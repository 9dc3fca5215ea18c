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

package packet

import (
	"testing"

	"github.com/stretchr/testify/require"

	protocol "github.com/vrtcodec/vrt/vrt/protocol"
)

func TestParseContextPacketScenarioC(t *testing.T) {
	buf := []byte{
		0x40, 0x00, 0x00, 0x05, // header: type=4, size=5
		0xAA, 0xBB, 0xCC, 0xDD, // stream id
		0x20, 0x00, 0x00, 0x00, // CIF0: bit 29 (bandwidth)
		0x00, 0x00, 0x00, 0x13, 0x12, 0xD0, 0x00, 0x00, // bandwidth, Q52.12
	}

	p, err := ParseContextPacket(buf)
	require.NoError(t, err)

	streamID, ok := p.StreamID()
	require.True(t, ok)
	require.Equal(t, uint32(0xAABBCCDD), streamID)

	field, err := p.Field(protocol.FieldTag{Word: protocol.CIF0, Bit: 29})
	require.NoError(t, err)
	require.True(t, field.HasValue())
	v, ok := field.Value()
	require.True(t, ok)
	require.Equal(t, 20_000_000.0, v)
}

func TestParseContextPacketScenarioD(t *testing.T) {
	buf := []byte{
		0x40, 0x00, 0x00, 0x06, // header: type=4, size=6
		0x12, 0x34, 0x56, 0x78, // stream id
		0x00, 0x00, 0x00, 0x02, // CIF0: CIF1-enable
		0x00, 0x00, 0x80, 0x00, // CIF1: bit 15 (aux_frequency)
		0x00, 0x00, 0x00, 0x00, 0x00, 0x98, 0x96, 0x80, // aux_frequency = 10_000_000
	}

	p, err := ParseContextPacket(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0x2), p.Bitmap.CIF0)
	require.Equal(t, uint32(0x8000), p.Bitmap.CIF1)

	field, err := p.Field(protocol.FieldTag{Word: protocol.CIF1, Bit: 15})
	require.NoError(t, err)
	require.Equal(t, uint64(10_000_000), field.Encoded64())
}

func TestParseContextPacketScenarioE(t *testing.T) {
	buf := []byte{
		0x40, 0x00, 0x00, 0x07, // header: type=4, size=7
		0x12, 0x34, 0x56, 0x78, // stream id
		0x00, 0x00, 0x04, 0x00, // CIF0: bit 10 (GPS ASCII)
		0x00, 0x00, 0x00, 0x0C, // char count = 12
		'H', 'e', 'l', 'l', 'o', ' ', 'W', 'o', 'r', 'l', 'd', '!',
	}

	p, err := ParseContextPacket(buf)
	require.NoError(t, err)

	field, err := p.Field(protocol.FieldTag{Word: protocol.CIF0, Bit: protocol.BitGPSASCII})
	require.NoError(t, err)
	require.True(t, field.HasValue())
	require.Equal(t, buf[12:], field.Bytes())
}

func TestParseContextPacketScenarioF(t *testing.T) {
	buf := []byte{
		0x40, 0x00, 0x00, 0x04, // header: type=4, size=4
		0x00, 0x00, 0x00, 0x00, // stream id (arbitrary)
		0x00, 0x00, 0x00, 0x08, // CIF0: CIF3-enable
		0x10, 0x00, 0x00, 0x00, // CIF3: bit 28 (reserved, unsupported)
	}

	_, err := ParseContextPacket(buf)
	require.Error(t, err)
	var verr *protocol.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, protocol.KindUnsupportedField, verr.Kind)
}

func TestParseContextPacketRejectsDataType(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00}
	_, err := ParseContextPacket(buf)
	require.Error(t, err)
}
