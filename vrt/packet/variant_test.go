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
)

func TestParsePacketDispatchesDataType(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x02, 0xAA, 0xBB, 0xCC, 0xDD}
	v, err := ParsePacket(buf)
	require.NoError(t, err)
	require.Equal(t, KindData, v.Kind)
	require.NotNil(t, v.Data)
	require.Nil(t, v.Context)
}

func TestParsePacketDispatchesContextType(t *testing.T) {
	buf := []byte{
		0x40, 0x00, 0x00, 0x05,
		0xAA, 0xBB, 0xCC, 0xDD,
		0x20, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x13, 0x12, 0xD0, 0x00, 0x00,
	}
	v, err := ParsePacket(buf)
	require.NoError(t, err)
	require.Equal(t, KindContext, v.Kind)
	require.NotNil(t, v.Context)
	require.Nil(t, v.Data)
}

func TestParsePacketRejectsCommandType(t *testing.T) {
	// type=6 (Command), size=1.
	buf := []byte{0x60, 0x00, 0x00, 0x01}
	_, err := ParsePacket(buf)
	require.Error(t, err)
}

func TestParsePacketRejectsUnassignedType(t *testing.T) {
	// type=9 (unassigned).
	buf := []byte{0x90, 0x00, 0x00, 0x01}
	_, err := ParsePacket(buf)
	require.Error(t, err)
}

func TestParsePacketRejectsShortBuffer(t *testing.T) {
	_, err := ParsePacket([]byte{0x00, 0x00})
	require.Error(t, err)
}
