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

/*
Package protocol implements the VITA 49.2 VRT wire codec: header,
trailer, timestamp, class-ID and Context Indicator Field (CIF) models,
the CIF offset engine, and the field proxy/traits layer. It performs no
I/O and allocates nothing; every operation is a pure transform over a
caller-owned byte slice.
*/
package protocol

import "encoding/binary"

// Every multi-byte VRT field is big-endian on the wire, independent of
// host byte order (unlike protocols that mix host-endian control data
// with big-endian payload, e.g. PTP's socket timestamping path).

// ReadU32 loads a big-endian uint32 at byte offset off. The caller is
// responsible for ensuring off+4 <= len(b); ReadU32 does not bounds-check.
func ReadU32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off : off+4])
}

// ReadU64 loads a big-endian uint64 at byte offset off.
func ReadU64(b []byte, off int) uint64 {
	return binary.BigEndian.Uint64(b[off : off+8])
}

// WriteU32 stores v as big-endian at byte offset off.
func WriteU32(b []byte, off int, v uint32) {
	binary.BigEndian.PutUint32(b[off:off+4], v)
}

// WriteU64 stores v as big-endian at byte offset off.
func WriteU64(b []byte, off int, v uint64) {
	binary.BigEndian.PutUint64(b[off:off+8], v)
}

// ReadU16 loads a big-endian uint16 at byte offset off. Used for the
// sub-word counts inside variable-length CIF fields (the Context
// Association List stream/context counts).
func ReadU16(b []byte, off int) uint16 {
	return binary.BigEndian.Uint16(b[off : off+2])
}

// WriteU16 stores v as big-endian at byte offset off.
func WriteU16(b []byte, off int, v uint16) {
	binary.BigEndian.PutUint16(b[off:off+2], v)
}

// WordBytes is the size in bytes of one 32-bit VRT word.
const WordBytes = 4

// WordsToBytes converts a word count to a byte count.
func WordsToBytes(words int) int { return words * WordBytes }

// BytesFit reports whether off+n is within the first size bytes of a
// buffer, the bounds check every offset-engine and validation step
// performs before touching the buffer.
func BytesFit(off, n, size int) bool {
	return off >= 0 && n >= 0 && off+n <= size
}
