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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationErrorIsMatchesKind(t *testing.T) {
	err := NewValidationError(KindBufferTooSmall, "need %d more bytes", 4)
	require.True(t, errors.Is(err, ErrBufferTooSmall))
	require.False(t, errors.Is(err, ErrUnsupportedField))
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError(KindSizeFieldMismatch, "got 3 want 5")
	require.Equal(t, "size_field_mismatch: got 3 want 5", err.Error())
}

func TestValidationErrorNoDetail(t *testing.T) {
	require.Equal(t, "buffer_too_small", ErrBufferTooSmall.Error())
}

func TestErrorKindStringFallback(t *testing.T) {
	require.Contains(t, ErrorKind(200).String(), "ErrorKind(200)")
}
