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

// PrologueLayout computes every optional section's presence and byte
// offset for a packet of the given type/class-ID/timestamp shape
// (spec §4.6). It is the single source of offsets consumed by both
// the compile-time and runtime packet views, mirroring how the
// teacher's Header+Body struct embedding gives every packet variant
// one shared, unambiguous field layout.
type PrologueLayout struct {
	Type       PacketType
	HasClassID bool
	TSI        TSIType
	TSF        TSFType

	HasStreamID bool
	HasTimestamp bool

	// Byte offsets of each section, relative to the start of the
	// packet (byte 0 is always the header word).
	StreamIDOffset int
	ClassIDOffset  int
	TSIOffset      int
	TSFOffset      int

	// PrologueWords is the total prologue length in 32-bit words,
	// i.e. where the payload/CIF0 region begins.
	PrologueWords int
}

// NewPrologueLayout computes offsets purely from presence flags, per
// spec §3.1's "offset invariant": each optional field adds its words
// to all successor offsets exactly once.
func NewPrologueLayout(typ PacketType, hasClassID bool, tsi TSIType, tsf TSFType) PrologueLayout {
	l := PrologueLayout{
		Type:         typ,
		HasClassID:   hasClassID,
		TSI:          tsi,
		TSF:          tsf,
		HasStreamID:  typ.IsContextType() || typ.IsOdd(),
		HasTimestamp: tsi != TSINone || tsf != TSFNone,
	}

	words := 1 // header
	if l.HasStreamID {
		l.StreamIDOffset = WordsToBytes(words)
		words++
	}
	if hasClassID {
		l.ClassIDOffset = WordsToBytes(words)
		words += 2
	}
	if tsi != TSINone {
		l.TSIOffset = WordsToBytes(words)
		words++
	}
	if tsf != TSFNone {
		l.TSFOffset = WordsToBytes(words)
		words += 2
	}
	l.PrologueWords = words
	return l
}

// InitHeader composes the header word for this layout via BuildHeader,
// selecting the correct bit26/25/24 interpretation for the packet
// type (spec §4.6 init_header).
func (l PrologueLayout) InitHeader(sizeWords uint16, packetCount uint8, bit26, bit25, bit24 bool) uint32 {
	return BuildHeader(l.Type, l.HasClassID, bit26, bit25, bit24, l.TSI, l.TSF, packetCount, sizeWords)
}

// ZeroOptionalFields writes zero to every optional prologue section
// present in this layout (spec §4.6 init_stream_id/init_class_id/
// init_timestamps). buf must be at least WordsToBytes(l.PrologueWords)
// long.
func (l PrologueLayout) ZeroOptionalFields(buf []byte) {
	if l.HasStreamID {
		WriteU32(buf, l.StreamIDOffset, 0)
	}
	if l.HasClassID {
		WriteU32(buf, l.ClassIDOffset, 0)
		WriteU32(buf, l.ClassIDOffset+WordBytes, 0)
	}
	if l.TSI != TSINone {
		WriteU32(buf, l.TSIOffset, 0)
	}
	if l.TSF != TSFNone {
		WriteU64(buf, l.TSFOffset, 0)
	}
}

// StreamID reads the stream-ID word, if present.
func (l PrologueLayout) StreamID(buf []byte) (uint32, bool) {
	if !l.HasStreamID {
		return 0, false
	}
	return ReadU32(buf, l.StreamIDOffset), true
}

// SetStreamID writes the stream-ID word, if present in this layout.
func (l PrologueLayout) SetStreamID(buf []byte, v uint32) bool {
	if !l.HasStreamID {
		return false
	}
	WriteU32(buf, l.StreamIDOffset, v)
	return true
}

// ClassID reads the class-ID fields, if present.
func (l PrologueLayout) ClassID(buf []byte) (ClassID, bool) {
	if !l.HasClassID {
		return ClassID{}, false
	}
	w0 := ReadU32(buf, l.ClassIDOffset)
	w1 := ReadU32(buf, l.ClassIDOffset+WordBytes)
	return DecodeClassID(w0, w1), true
}

// SetClassID writes the class-ID fields, if present in this layout.
func (l PrologueLayout) SetClassID(buf []byte, c ClassID) bool {
	if !l.HasClassID {
		return false
	}
	w0, w1 := c.EncodeWords()
	WriteU32(buf, l.ClassIDOffset, w0)
	WriteU32(buf, l.ClassIDOffset+WordBytes, w1)
	return true
}

// Timestamp reads the (TSI, TSF) timestamp fields, if either is
// present. Missing halves (e.g. TSI set but TSF none) read back as 0
// in that component.
func (l PrologueLayout) Timestamp(buf []byte) (Timestamp, bool) {
	if !l.HasTimestamp {
		return Timestamp{}, false
	}
	var ts Timestamp
	if l.TSI != TSINone {
		ts.Seconds = ReadU32(buf, l.TSIOffset)
	}
	if l.TSF != TSFNone {
		ts.Fractional = ReadU64(buf, l.TSFOffset)
	}
	return ts, true
}

// SetTimestamp writes whichever of (seconds, fractional) this layout's
// (TSI, TSF) declares present.
func (l PrologueLayout) SetTimestamp(buf []byte, ts Timestamp) bool {
	if !l.HasTimestamp {
		return false
	}
	if l.TSI != TSINone {
		WriteU32(buf, l.TSIOffset, ts.Seconds)
	}
	if l.TSF != TSFNone {
		WriteU64(buf, l.TSFOffset, ts.Fractional)
	}
	return true
}
