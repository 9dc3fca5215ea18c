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

// FieldProxy is the three-layer accessor the spec describes in §4.10:
// bytes() for the raw wire slice, encoded()/set_encoded() for the
// fixed-width integer the slice holds, and value()/set_value() for the
// interpreted unit when a FieldTrait is registered for the tag. A zero
// FieldProxy (present == false) is what NewFieldProxy returns for a bit
// that is not set in the packet's CIF bitmap — has_value() on it is
// false and every accessor is a programmer error to call.
type FieldProxy struct {
	tag       FieldTag
	buf       []byte
	offset    int // byte offset of the field's first byte within buf
	sizeWords int // resolved size, including runtime-resolved variable fields
	present   bool
}

// NewFieldProxy locates the field named by tag within buf, given the
// packet's CIF bitmap and the byte offset where the context-fields
// region begins. It returns a !HasValue() proxy, not an error, when
// the bit simply is not set (spec §4.10: "a field proxy for an unset
// bit reports has_value() == false rather than erroring").
func NewFieldProxy(buf []byte, m CIFBitmap, tag FieldTag, regionStart, bufSize int) (FieldProxy, error) {
	if m.Word(tag.Word)&(1<<uint(tag.Bit)) == 0 {
		return FieldProxy{tag: tag}, nil
	}

	offset, err := FieldOffset(m, tag, buf, regionStart, bufSize)
	if err != nil {
		return FieldProxy{}, err
	}

	entry := Entry(tag.Word, tag.Bit)
	sizeWords := int(entry.SizeWords)
	if entry.IsVariable {
		sizeWords, err = resolveVariableSize(tag, buf, offset)
		if err != nil {
			return FieldProxy{}, err
		}
	}
	if !BytesFit(offset, WordsToBytes(sizeWords), bufSize) {
		return FieldProxy{}, NewValidationError(KindBufferTooSmall, "field %s bit %d at byte %d needs %d words beyond buffer size %d", tag.Word, tag.Bit, offset, sizeWords, bufSize)
	}

	return FieldProxy{tag: tag, buf: buf, offset: offset, sizeWords: sizeWords, present: true}, nil
}

func resolveVariableSize(tag FieldTag, buf []byte, offset int) (int, error) {
	switch {
	case tag.Word == CIF0 && tag.Bit == BitGPSASCII:
		return GPSASCIISize(buf, offset)
	case tag.Word == CIF0 && tag.Bit == BitContextAssociationLists:
		return ContextAssociationListsSize(buf, offset)
	default:
		return 0, NewValidationError(KindUnsupportedField, "no variable-size reader for %s bit %d", tag.Word, tag.Bit)
	}
}

// HasValue reports whether this field's bit was set in the packet's
// CIF bitmap (spec §4.10 has_value()).
func (p FieldProxy) HasValue() bool { return p.present }

// Tag returns the (CIF word, bit) this proxy was built for.
func (p FieldProxy) Tag() FieldTag { return p.tag }

// SizeWords returns the field's resolved size in 32-bit words.
func (p FieldProxy) SizeWords() int { return p.sizeWords }

// Bytes returns the field's raw wire bytes (spec §4.10 bytes()). The
// returned slice aliases the packet buffer; mutating it mutates the
// packet.
func (p FieldProxy) Bytes() []byte {
	if !p.present {
		panic(fmt.Sprintf("vrt: Bytes() called on absent field %s bit %d", p.tag.Word, p.tag.Bit))
	}
	return p.buf[p.offset : p.offset+WordsToBytes(p.sizeWords)]
}

// SetBytes overwrites the field's raw wire bytes. len(v) must equal
// len(p.Bytes()).
func (p FieldProxy) SetBytes(v []byte) {
	dst := p.Bytes()
	if len(v) != len(dst) {
		panic(fmt.Sprintf("vrt: SetBytes length mismatch: got %d want %d", len(v), len(dst)))
	}
	copy(dst, v)
}

// Encoded32 returns the field's raw bytes as a single big-endian u32
// (spec §4.10 encoded()), valid only for one-word fields.
func (p FieldProxy) Encoded32() uint32 {
	if p.sizeWords != 1 {
		panic(fmt.Sprintf("vrt: Encoded32 called on %d-word field %s bit %d", p.sizeWords, p.tag.Word, p.tag.Bit))
	}
	return ReadU32(p.buf, p.offset)
}

// SetEncoded32 writes v as this one-word field's raw bytes.
func (p FieldProxy) SetEncoded32(v uint32) {
	if p.sizeWords != 1 {
		panic(fmt.Sprintf("vrt: SetEncoded32 called on %d-word field %s bit %d", p.sizeWords, p.tag.Word, p.tag.Bit))
	}
	WriteU32(p.buf, p.offset, v)
}

// Encoded64 returns the field's raw bytes as a single big-endian u64,
// valid only for two-word fields.
func (p FieldProxy) Encoded64() uint64 {
	if p.sizeWords != 2 {
		panic(fmt.Sprintf("vrt: Encoded64 called on %d-word field %s bit %d", p.sizeWords, p.tag.Word, p.tag.Bit))
	}
	return ReadU64(p.buf, p.offset)
}

// SetEncoded64 writes v as this two-word field's raw bytes.
func (p FieldProxy) SetEncoded64(v uint64) {
	if p.sizeWords != 2 {
		panic(fmt.Sprintf("vrt: SetEncoded64 called on %d-word field %s bit %d", p.sizeWords, p.tag.Word, p.tag.Bit))
	}
	WriteU64(p.buf, p.offset, v)
}

// Value returns the field's interpreted-unit value and true if a
// FieldTrait is registered for this tag (spec §4.10 value()); it
// returns (0, false) for fields without an interpreted form, such as
// unscaled counters or multi-word structures.
func (p FieldProxy) Value() (float64, bool) {
	t, ok := Trait(p.tag)
	if !ok {
		return 0, false
	}
	return t.ToInterpreted(p.Bytes()), true
}

// SetValue writes v through this field's registered FieldTrait,
// reporting false if no trait is registered.
func (p FieldProxy) SetValue(v float64) bool {
	t, ok := Trait(p.tag)
	if !ok {
		return false
	}
	t.FromInterpreted(v, p.Bytes())
	return true
}
