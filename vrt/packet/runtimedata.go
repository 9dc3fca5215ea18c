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

import protocol "github.com/vrtcodec/vrt/vrt/protocol"

// RuntimeDataPacket is a validated view over a byte slice of unknown
// shape whose header names it a data packet (spec §4.9): every
// optional-section presence and size comes from the header itself
// rather than from a caller-supplied schema, so construction is where
// all the bounds/size-field checks happen once.
type RuntimeDataPacket struct {
	Header protocol.DecodedHeader
	Layout protocol.PrologueLayout

	buf          []byte
	hasTrailer   bool
	payloadOff   int
	payloadBytes int
	trailerOff   int
}

// ParseDataPacket validates buf as a data packet: header decodes to a
// data packet type, the header's declared size fits within buf, and
// prologue + payload + trailer account for exactly that size (spec §4.9
// steps 1-5, specialized to data packets).
func ParseDataPacket(buf []byte) (*RuntimeDataPacket, error) {
	if !protocol.BytesFit(0, protocol.WordBytes, len(buf)) {
		return nil, protocol.ErrBufferTooSmall
	}
	h := protocol.DecodeHeader(protocol.ReadU32(buf, 0))
	if !protocol.IsValidPacketType(h.Type) {
		return nil, protocol.NewValidationError(protocol.KindInvalidPacketType, "packet type %d is unassigned", uint8(h.Type))
	}
	if !h.Type.IsDataType() {
		return nil, protocol.NewValidationError(protocol.KindPacketTypeMismatch, "type %s is not a data packet type", h.Type)
	}

	totalBytes := protocol.WordsToBytes(int(h.SizeWords))
	if !protocol.BytesFit(0, totalBytes, len(buf)) {
		return nil, protocol.NewValidationError(protocol.KindBufferTooSmall, "header declares %d words, buffer has only %d bytes", h.SizeWords, len(buf))
	}

	layout := protocol.NewPrologueLayout(h.Type, h.HasClassID, h.TSI, h.TSF)
	payloadOff := protocol.WordsToBytes(layout.PrologueWords)
	trailerWords := 0
	if h.TrailerIncluded {
		trailerWords = 1
	}
	payloadWords := int(h.SizeWords) - layout.PrologueWords - trailerWords
	if payloadWords < 0 {
		return nil, protocol.NewValidationError(protocol.KindSizeFieldMismatch, "declared size %d words too small for prologue+trailer", h.SizeWords)
	}

	p := &RuntimeDataPacket{
		Header:       h,
		Layout:       layout,
		buf:          buf[:totalBytes],
		hasTrailer:   h.TrailerIncluded,
		payloadOff:   payloadOff,
		payloadBytes: protocol.WordsToBytes(payloadWords),
	}
	if h.TrailerIncluded {
		p.trailerOff = payloadOff + p.payloadBytes
	}
	return p, nil
}

// SizeWords returns the packet's declared total word count.
func (p *RuntimeDataPacket) SizeWords() int { return int(p.Header.SizeWords) }

// StreamID returns the stream-ID word, if this packet's type carries one.
func (p *RuntimeDataPacket) StreamID() (uint32, bool) { return p.Layout.StreamID(p.buf) }

// ClassID returns the class-ID fields, if present.
func (p *RuntimeDataPacket) ClassID() (protocol.ClassID, bool) { return p.Layout.ClassID(p.buf) }

// Timestamp returns the (TSI, TSF) timestamp, if present.
func (p *RuntimeDataPacket) Timestamp() (protocol.Timestamp, bool) { return p.Layout.Timestamp(p.buf) }

// Payload returns the packet's payload region.
func (p *RuntimeDataPacket) Payload() []byte {
	return p.buf[p.payloadOff : p.payloadOff+p.payloadBytes]
}

// Trailer returns the packet's trailer, if the header's bit26
// ("trailer included") marked one present.
func (p *RuntimeDataPacket) Trailer() (protocol.Trailer, bool) {
	if !p.hasTrailer {
		return protocol.Trailer{}, false
	}
	return protocol.NewTrailer(protocol.ReadU32(p.buf, p.trailerOff)), true
}

// Bytes returns the full packet buffer, trimmed to the header's
// declared size.
func (p *RuntimeDataPacket) Bytes() []byte { return p.buf }
