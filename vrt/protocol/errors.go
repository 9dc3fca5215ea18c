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

import "fmt"

// ErrorKind is the validation error taxonomy (spec §7). The zero value
// is KindNone, meaning success, mirroring how the teacher's
// ManagementErrorID reserves a value for "no error" style checks.
type ErrorKind uint8

// Validation error kinds.
const (
	KindNone ErrorKind = iota
	KindBufferTooSmall
	KindPacketTypeMismatch
	KindTSIMismatch
	KindTSFMismatch
	KindTrailerBitMismatch
	KindClassIDBitMismatch
	KindSizeFieldMismatch
	KindInvalidPacketType
	KindUnsupportedField
)

var errorKindNames = map[ErrorKind]string{
	KindNone:               "none",
	KindBufferTooSmall:     "buffer_too_small",
	KindPacketTypeMismatch: "packet_type_mismatch",
	KindTSIMismatch:        "tsi_mismatch",
	KindTSFMismatch:        "tsf_mismatch",
	KindTrailerBitMismatch: "trailer_bit_mismatch",
	KindClassIDBitMismatch: "class_id_bit_mismatch",
	KindSizeFieldMismatch:  "size_field_mismatch",
	KindInvalidPacketType:  "invalid_packet_type",
	KindUnsupportedField:   "unsupported_field",
}

// String renders the error kind's canonical taxonomy name.
func (k ErrorKind) String() string {
	if s, ok := errorKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// ValidationError is the error type every validation step and runtime
// view constructor returns. It carries the taxonomy code plus a short
// human-readable detail, the same shape as the teacher's
// ManagementErrorID.Error() paired with a descriptive wrapper.
type ValidationError struct {
	Kind   ErrorKind
	Detail string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Is supports errors.Is comparisons against any other *ValidationError
// with an equal Kind, such as the Err* sentinels below.
func (e *ValidationError) Is(target error) bool {
	if other, ok := target.(*ValidationError); ok {
		return other.Kind == e.Kind
	}
	return false
}

// NewValidationError constructs a ValidationError with a formatted detail.
func NewValidationError(kind ErrorKind, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// Kind-only sentinel errors for errors.Is comparisons where no detail
// is needed.
var (
	ErrBufferTooSmall     = &ValidationError{Kind: KindBufferTooSmall}
	ErrPacketTypeMismatch = &ValidationError{Kind: KindPacketTypeMismatch}
	ErrTSIMismatch        = &ValidationError{Kind: KindTSIMismatch}
	ErrTSFMismatch        = &ValidationError{Kind: KindTSFMismatch}
	ErrTrailerBitMismatch = &ValidationError{Kind: KindTrailerBitMismatch}
	ErrClassIDBitMismatch = &ValidationError{Kind: KindClassIDBitMismatch}
	ErrSizeFieldMismatch  = &ValidationError{Kind: KindSizeFieldMismatch}
	ErrInvalidPacketType  = &ValidationError{Kind: KindInvalidPacketType}
	ErrUnsupportedField   = &ValidationError{Kind: KindUnsupportedField}
)
