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
Package packet builds on vrt/protocol to provide the compile-time Data/
Context packet schemas, their runtime counterparts, and the packet
variant dispatcher (spec §4.7-§4.9, §6.2).
*/
package packet

import (
	"fmt"

	protocol "github.com/vrtcodec/vrt/vrt/protocol"
)

// DataPacketSchema is a validated, immutable description of one data
// packet shape: its type, optional-section presence, and payload size.
// Building one is the Go equivalent of the spec's compile-time
// DataPacket<Type, HasClassId, Tsi, Tsf, HasTrailer> template
// instantiation (spec §4.7) — validation happens once, here, rather
// than at every encode/decode.
type DataPacketSchema struct {
	Type         protocol.PacketType
	HasClassID   bool
	TSI          protocol.TSIType
	TSF          protocol.TSFType
	HasTrailer   bool
	PayloadWords int

	layout protocol.PrologueLayout
}

// NewDataPacketSchema validates typ as a data packet type and computes
// the schema's prologue layout.
func NewDataPacketSchema(typ protocol.PacketType, hasClassID bool, tsi protocol.TSIType, tsf protocol.TSFType, hasTrailer bool, payloadWords int) (DataPacketSchema, error) {
	if !typ.IsDataType() {
		return DataPacketSchema{}, protocol.NewValidationError(protocol.KindPacketTypeMismatch, "type %s is not a data packet type", typ)
	}
	if payloadWords < 0 {
		return DataPacketSchema{}, fmt.Errorf("vrt: payload word count must be non-negative, got %d", payloadWords)
	}
	return DataPacketSchema{
		Type:         typ,
		HasClassID:   hasClassID,
		TSI:          tsi,
		TSF:          tsf,
		HasTrailer:   hasTrailer,
		PayloadWords: payloadWords,
		layout:       protocol.NewPrologueLayout(typ, hasClassID, tsi, tsf),
	}, nil
}

// SizeWords returns the packet's total word count: prologue + payload
// + trailer (spec §4.7 calculate_total_size_ct).
func (s DataPacketSchema) SizeWords() int {
	n := s.layout.PrologueWords + s.PayloadWords
	if s.HasTrailer {
		n++
	}
	return n
}

func (s DataPacketSchema) payloadOffset() int {
	return protocol.WordsToBytes(s.layout.PrologueWords)
}

func (s DataPacketSchema) payloadBytes() int {
	return protocol.WordsToBytes(s.PayloadWords)
}

func (s DataPacketSchema) trailerOffset() int {
	return s.payloadOffset() + s.payloadBytes()
}

// Init lays out a zeroed packet of this schema's shape into buf,
// whose length must equal WordsToBytes(s.SizeWords()). packetCount is
// the header's modulo-16 packet count.
func (s DataPacketSchema) Init(buf []byte, packetCount uint8) error {
	want := protocol.WordsToBytes(s.SizeWords())
	if len(buf) != want {
		return protocol.NewValidationError(protocol.KindSizeFieldMismatch, "buffer length %d does not match schema size %d", len(buf), want)
	}
	word := s.layout.InitHeader(uint16(s.SizeWords()), packetCount, s.HasTrailer, false, false)
	protocol.WriteU32(buf, 0, word)
	s.layout.ZeroOptionalFields(buf)
	if s.HasTrailer {
		protocol.WriteU32(buf, s.trailerOffset(), 0)
	}
	return nil
}

// View wraps buf as a DataPacketView under this schema, checking that
// buf is exactly the schema's declared size.
func (s DataPacketSchema) View(buf []byte) (DataPacketView, error) {
	want := protocol.WordsToBytes(s.SizeWords())
	if len(buf) != want {
		return DataPacketView{}, protocol.NewValidationError(protocol.KindSizeFieldMismatch, "buffer length %d does not match schema size %d", len(buf), want)
	}
	return DataPacketView{schema: s, buf: buf}, nil
}

// DataPacketView is a schema bound to a concrete buffer: the
// compile-time packet's read/write accessors (spec §4.7).
type DataPacketView struct {
	schema DataPacketSchema
	buf    []byte
}

// Schema returns the view's underlying schema.
func (v DataPacketView) Schema() DataPacketSchema { return v.schema }

// PacketCount returns the header's modulo-16 packet count.
func (v DataPacketView) PacketCount() uint8 {
	return protocol.DecodeHeader(protocol.ReadU32(v.buf, 0)).PacketCount
}

// SetPacketCount overwrites the header's packet count in place.
func (v DataPacketView) SetPacketCount(count uint8) {
	h := protocol.DecodeHeader(protocol.ReadU32(v.buf, 0))
	h.PacketCount = count
	protocol.WriteU32(v.buf, 0, h.Encode())
}

// StreamID returns the stream-ID word, if this schema's type carries one.
func (v DataPacketView) StreamID() (uint32, bool) { return v.schema.layout.StreamID(v.buf) }

// SetStreamID writes the stream-ID word, if present in this schema.
func (v DataPacketView) SetStreamID(id uint32) bool { return v.schema.layout.SetStreamID(v.buf, id) }

// ClassID returns the class-ID fields, if present.
func (v DataPacketView) ClassID() (protocol.ClassID, bool) { return v.schema.layout.ClassID(v.buf) }

// SetClassID writes the class-ID fields, if present in this schema.
func (v DataPacketView) SetClassID(c protocol.ClassID) bool { return v.schema.layout.SetClassID(v.buf, c) }

// Timestamp returns the (TSI, TSF) timestamp, if present.
func (v DataPacketView) Timestamp() (protocol.Timestamp, bool) { return v.schema.layout.Timestamp(v.buf) }

// SetTimestamp writes the timestamp fields this schema declares present.
func (v DataPacketView) SetTimestamp(ts protocol.Timestamp) bool {
	return v.schema.layout.SetTimestamp(v.buf, ts)
}

// Payload returns the packet's payload region.
func (v DataPacketView) Payload() []byte {
	off := v.schema.payloadOffset()
	return v.buf[off : off+v.schema.payloadBytes()]
}

// Trailer returns the packet's trailer, if this schema carries one.
func (v DataPacketView) Trailer() (protocol.Trailer, bool) {
	if !v.schema.HasTrailer {
		return protocol.Trailer{}, false
	}
	return protocol.NewTrailer(protocol.ReadU32(v.buf, v.schema.trailerOffset())), true
}

// SetTrailer overwrites the packet's trailer word, if present.
func (v DataPacketView) SetTrailer(t protocol.Trailer) bool {
	if !v.schema.HasTrailer {
		return false
	}
	protocol.WriteU32(v.buf, v.schema.trailerOffset(), t.Word())
	return true
}
