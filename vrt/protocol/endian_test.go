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

func TestReadWriteU32RoundTrip(t *testing.T) {
	buf := make([]byte, 4)
	WriteU32(buf, 0, 0xDEADBEEF)
	require.Equal(t, uint32(0xDEADBEEF), ReadU32(buf, 0))
	require.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, buf)
}

func TestReadWriteU64RoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	WriteU64(buf, 0, 0x0000001312D00000)
	require.Equal(t, uint64(0x0000001312D00000), ReadU64(buf, 0))
}

func TestReadWriteU16RoundTrip(t *testing.T) {
	buf := make([]byte, 2)
	WriteU16(buf, 0, 0xBEEF)
	require.Equal(t, uint16(0xBEEF), ReadU16(buf, 0))
}

func TestWordsToBytes(t *testing.T) {
	require.Equal(t, 12, WordsToBytes(3))
}

func TestBytesFit(t *testing.T) {
	require.True(t, BytesFit(0, 4, 4))
	require.False(t, BytesFit(0, 5, 4))
	require.False(t, BytesFit(-1, 4, 4))
}
