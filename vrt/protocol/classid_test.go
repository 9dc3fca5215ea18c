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

func TestNewClassIDRejectsOversizedOUI(t *testing.T) {
	_, err := NewClassID(0x01000000, 0, 0)
	require.Error(t, err)
}

func TestClassIDEncodeDecodeRoundTrip(t *testing.T) {
	c, err := NewClassID(0x00AABBCC, 0xDD, 0x11223344)
	require.NoError(t, err)

	w0, w1 := c.EncodeWords()
	got := DecodeClassID(w0, w1)
	require.Equal(t, c, got)
}

func TestClassIDString(t *testing.T) {
	c, err := NewClassID(0x1, 0x2, 0x3)
	require.NoError(t, err)
	require.Contains(t, c.String(), "ClassID")
}
