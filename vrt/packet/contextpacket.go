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

// ContextPacketSchema is a validated, immutable description of one
// context packet shape: its optional-section presence and the fixed
// set of CIF fields it carries. Building one is the Go equivalent of
// the spec's compile-time ContextPacket<FieldTags...> template
// instantiation (spec §4.8) — the variadic FieldTag pack becomes a
// plain Go variadic argument, validated once at construction rather
// than via static_assert.
type ContextPacketSchema struct {
	Type       protocol.PacketType
	HasClassID bool
	TSI        protocol.TSIType
	TSF        protocol.TSFType
	Bitmap     protocol.CIFBitmap

	layout       protocol.PrologueLayout
	cifSizeWords int // CIF word(s) + fixed field words, excluding prologue
}

// NewContextPacketSchema validates typ as a context packet type,
// builds a CIF bitmap from tags, and rejects any tag that names an
// unsupported or variable-length field (spec §3.2 invariant 6: a
// compile-time context schema cannot contain a variable-length field).
func NewContextPacketSchema(typ protocol.PacketType, hasClassID bool, tsi protocol.TSIType, tsf protocol.TSFType, tags ...protocol.FieldTag) (ContextPacketSchema, error) {
	if !typ.IsContextType() {
		return ContextPacketSchema{}, protocol.NewValidationError(protocol.KindPacketTypeMismatch, "type %s is not a context packet type", typ)
	}

	bitmap := bitmapFromTags(tags).WithControlBits()
	cifWords, err := protocol.CalculateContextSizeCT(bitmap)
	if err != nil {
		return ContextPacketSchema{}, err
	}

	return ContextPacketSchema{
		Type:         typ,
		HasClassID:   hasClassID,
		TSI:          tsi,
		TSF:          tsf,
		Bitmap:       bitmap,
		layout:       protocol.NewPrologueLayout(typ, hasClassID, tsi, tsf),
		cifSizeWords: cifWords,
	}, nil
}

func bitmapFromTags(tags []protocol.FieldTag) protocol.CIFBitmap {
	var m protocol.CIFBitmap
	for _, t := range tags {
		bit := uint32(1) << uint(t.Bit)
		switch t.Word {
		case protocol.CIF0:
			m.CIF0 |= bit
		case protocol.CIF1:
			m.CIF1 |= bit
		case protocol.CIF2:
			m.CIF2 |= bit
		case protocol.CIF3:
			m.CIF3 |= bit
		}
	}
	return m
}

// SizeWords returns the packet's total word count: prologue + CIF
// words + fixed fields (spec §4.8 calculate_total_size_ct).
func (s ContextPacketSchema) SizeWords() int {
	return s.layout.PrologueWords + s.cifSizeWords
}

func (s ContextPacketSchema) cifRegionOffset() int {
	return protocol.WordsToBytes(s.layout.PrologueWords)
}

// fieldsRegionOffset is the byte offset of the first context field,
// immediately after CIF0 and whichever of CIF1/CIF2/CIF3 are enabled.
func (s ContextPacketSchema) fieldsRegionOffset() int {
	off := s.cifRegionOffset() + protocol.WordBytes
	if s.Bitmap.HasCIF1() {
		off += protocol.WordBytes
	}
	if s.Bitmap.HasCIF2() {
		off += protocol.WordBytes
	}
	if s.Bitmap.HasCIF3() {
		off += protocol.WordBytes
	}
	return off
}

// Init lays out a zeroed packet of this schema's shape into buf,
// whose length must equal WordsToBytes(s.SizeWords()): header, zeroed
// optional prologue sections, and the CIF words pre-set from the
// schema's bitmap (every context field is present and starts zeroed
// within its region; a builder fills them in afterward via Field).
func (s ContextPacketSchema) Init(buf []byte, packetCount uint8) error {
	want := protocol.WordsToBytes(s.SizeWords())
	if len(buf) != want {
		return protocol.NewValidationError(protocol.KindSizeFieldMismatch, "buffer length %d does not match schema size %d", len(buf), want)
	}
	word := s.layout.InitHeader(uint16(s.SizeWords()), packetCount, false, false, false)
	protocol.WriteU32(buf, 0, word)
	s.layout.ZeroOptionalFields(buf)

	off := s.cifRegionOffset()
	protocol.WriteU32(buf, off, s.Bitmap.CIF0)
	off += protocol.WordBytes
	if s.Bitmap.HasCIF1() {
		protocol.WriteU32(buf, off, s.Bitmap.CIF1)
		off += protocol.WordBytes
	}
	if s.Bitmap.HasCIF2() {
		protocol.WriteU32(buf, off, s.Bitmap.CIF2)
		off += protocol.WordBytes
	}
	if s.Bitmap.HasCIF3() {
		protocol.WriteU32(buf, off, s.Bitmap.CIF3)
	}
	return nil
}

// View wraps buf as a ContextPacketView under this schema.
func (s ContextPacketSchema) View(buf []byte) (ContextPacketView, error) {
	want := protocol.WordsToBytes(s.SizeWords())
	if len(buf) != want {
		return ContextPacketView{}, protocol.NewValidationError(protocol.KindSizeFieldMismatch, "buffer length %d does not match schema size %d", len(buf), want)
	}
	return ContextPacketView{schema: s, buf: buf}, nil
}

// ContextPacketView is a schema bound to a concrete buffer.
type ContextPacketView struct {
	schema ContextPacketSchema
	buf    []byte
}

// Schema returns the view's underlying schema.
func (v ContextPacketView) Schema() ContextPacketSchema { return v.schema }

// StreamID returns the stream-ID word; always present for context packets.
func (v ContextPacketView) StreamID() (uint32, bool) { return v.schema.layout.StreamID(v.buf) }

// SetStreamID writes the stream-ID word.
func (v ContextPacketView) SetStreamID(id uint32) bool { return v.schema.layout.SetStreamID(v.buf, id) }

// ClassID returns the class-ID fields, if present.
func (v ContextPacketView) ClassID() (protocol.ClassID, bool) { return v.schema.layout.ClassID(v.buf) }

// SetClassID writes the class-ID fields, if present in this schema.
func (v ContextPacketView) SetClassID(c protocol.ClassID) bool { return v.schema.layout.SetClassID(v.buf, c) }

// Timestamp returns the (TSI, TSF) timestamp, if present.
func (v ContextPacketView) Timestamp() (protocol.Timestamp, bool) { return v.schema.layout.Timestamp(v.buf) }

// SetTimestamp writes the timestamp fields this schema declares present.
func (v ContextPacketView) SetTimestamp(ts protocol.Timestamp) bool {
	return v.schema.layout.SetTimestamp(v.buf, ts)
}

// Field returns a FieldProxy for tag within this packet, or an error
// if tag is not one of the schema's fields (spec §4.8/§4.10).
func (v ContextPacketView) Field(tag protocol.FieldTag) (protocol.FieldProxy, error) {
	return protocol.NewFieldProxy(v.buf, v.schema.Bitmap, tag, v.schema.fieldsRegionOffset(), len(v.buf))
}
