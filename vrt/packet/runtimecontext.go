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

// RuntimeContextPacket is a validated view over a byte slice of
// unknown shape whose header names it a context packet (spec §4.9):
// the CIF bitmap chain, every variable field's size, and the declared
// total size are all resolved and cross-checked once at construction —
// the heaviest validation path in the codec, since a context packet's
// shape is only fully known after reading its own CIF words.
type RuntimeContextPacket struct {
	Header protocol.DecodedHeader
	Layout protocol.PrologueLayout
	Bitmap protocol.CIFBitmap

	buf         []byte
	fieldsStart int
}

// ParseContextPacket validates buf as a context packet: header decodes
// to a context packet type, the CIF0 word (and any of CIF1/CIF2/CIF3 it
// enables) are read and checked against the supported-bit tables, every
// variable-length field's size is resolved from the buffer, and the
// sum of prologue + CIF words + field words matches the header's
// declared size exactly (spec §4.9 steps 1-7).
func ParseContextPacket(buf []byte) (*RuntimeContextPacket, error) {
	if !protocol.BytesFit(0, protocol.WordBytes, len(buf)) {
		return nil, protocol.ErrBufferTooSmall
	}
	h := protocol.DecodeHeader(protocol.ReadU32(buf, 0))
	if !protocol.IsValidPacketType(h.Type) {
		return nil, protocol.NewValidationError(protocol.KindInvalidPacketType, "packet type %d is unassigned", uint8(h.Type))
	}
	if !h.Type.IsContextType() {
		return nil, protocol.NewValidationError(protocol.KindPacketTypeMismatch, "type %s is not a context packet type", h.Type)
	}

	totalBytes := protocol.WordsToBytes(int(h.SizeWords))
	if !protocol.BytesFit(0, totalBytes, len(buf)) {
		return nil, protocol.NewValidationError(protocol.KindBufferTooSmall, "header declares %d words, buffer has only %d bytes", h.SizeWords, len(buf))
	}

	layout := protocol.NewPrologueLayout(h.Type, h.HasClassID, h.TSI, h.TSF)
	cifOff := protocol.WordsToBytes(layout.PrologueWords)
	if !protocol.BytesFit(cifOff, protocol.WordBytes, totalBytes) {
		return nil, protocol.NewValidationError(protocol.KindBufferTooSmall, "no room for CIF0 word at byte %d", cifOff)
	}

	bitmap := protocol.CIFBitmap{CIF0: protocol.ReadU32(buf, cifOff)}
	cifWords := 1
	off := cifOff + protocol.WordBytes
	if bitmap.HasCIF1() {
		if !protocol.BytesFit(off, protocol.WordBytes, totalBytes) {
			return nil, protocol.NewValidationError(protocol.KindBufferTooSmall, "no room for CIF1 word at byte %d", off)
		}
		bitmap.CIF1 = protocol.ReadU32(buf, off)
		off += protocol.WordBytes
		cifWords++
	}
	if bitmap.HasCIF2() {
		if !protocol.BytesFit(off, protocol.WordBytes, totalBytes) {
			return nil, protocol.NewValidationError(protocol.KindBufferTooSmall, "no room for CIF2 word at byte %d", off)
		}
		bitmap.CIF2 = protocol.ReadU32(buf, off)
		off += protocol.WordBytes
		cifWords++
	}
	if bitmap.HasCIF3() {
		if !protocol.BytesFit(off, protocol.WordBytes, totalBytes) {
			return nil, protocol.NewValidationError(protocol.KindBufferTooSmall, "no room for CIF3 word at byte %d", off)
		}
		bitmap.CIF3 = protocol.ReadU32(buf, off)
		off += protocol.WordBytes
		cifWords++
	}

	if err := bitmap.ValidateSupported(); err != nil {
		return nil, err
	}

	fieldWords, err := protocol.CalculateContextFieldsSizeRuntime(bitmap, buf, off, totalBytes)
	if err != nil {
		return nil, err
	}

	computedWords := layout.PrologueWords + cifWords + fieldWords
	if computedWords != int(h.SizeWords) {
		return nil, protocol.NewValidationError(protocol.KindSizeFieldMismatch, "computed %d words from prologue+CIF+fields, header declares %d", computedWords, h.SizeWords)
	}

	return &RuntimeContextPacket{
		Header:      h,
		Layout:      layout,
		Bitmap:      bitmap,
		buf:         buf[:totalBytes],
		fieldsStart: off,
	}, nil
}

// SizeWords returns the packet's declared total word count.
func (p *RuntimeContextPacket) SizeWords() int { return int(p.Header.SizeWords) }

// StreamID returns the stream-ID word; always present for context packets.
func (p *RuntimeContextPacket) StreamID() (uint32, bool) { return p.Layout.StreamID(p.buf) }

// ClassID returns the class-ID fields, if present.
func (p *RuntimeContextPacket) ClassID() (protocol.ClassID, bool) { return p.Layout.ClassID(p.buf) }

// Timestamp returns the (TSI, TSF) timestamp, if present.
func (p *RuntimeContextPacket) Timestamp() (protocol.Timestamp, bool) { return p.Layout.Timestamp(p.buf) }

// Field returns a FieldProxy for tag within this packet.
func (p *RuntimeContextPacket) Field(tag protocol.FieldTag) (protocol.FieldProxy, error) {
	return protocol.NewFieldProxy(p.buf, p.Bitmap, tag, p.fieldsStart, len(p.buf))
}

// Bytes returns the full packet buffer, trimmed to the header's
// declared size.
func (p *RuntimeContextPacket) Bytes() []byte { return p.buf }
