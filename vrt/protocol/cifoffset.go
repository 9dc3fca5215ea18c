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

// CIFBitmap is the (CIF0, CIF1, CIF2, CIF3) presence bitmap of a
// context packet (spec §3.1). CIF1/CIF2/CIF3 only matter when CIF0's
// matching control bit is set.
type CIFBitmap struct {
	CIF0, CIF1, CIF2, CIF3 uint32
}

// Word returns the raw bitmap for the given CIF word.
func (m CIFBitmap) Word(word CIFWord) uint32 {
	switch word {
	case CIF0:
		return m.CIF0
	case CIF1:
		return m.CIF1
	case CIF2:
		return m.CIF2
	default:
		return m.CIF3
	}
}

// HasCIF1 reports whether CIF0's CIF1-enable control bit is set.
func (m CIFBitmap) HasCIF1() bool { return m.CIF0&(1<<cif0ControlCIF1Bit) != 0 }

// HasCIF2 reports whether CIF0's CIF2-enable control bit is set.
func (m CIFBitmap) HasCIF2() bool { return m.CIF0&(1<<cif0ControlCIF2Bit) != 0 }

// HasCIF3 reports whether CIF0's CIF3-enable control bit is set.
func (m CIFBitmap) HasCIF3() bool { return m.CIF0&(1<<cif0ControlCIF3Bit) != 0 }

// WithControlBits returns a copy of m with CIF0's CIF1/CIF2/CIF3
// enable bits derived from which of CIF1/CIF2/CIF3 are non-zero (spec
// §3.1 invariant 7, §4.8 item: "CIF0's control bits... are auto-set
// when CIF1/CIF2/CIF3 is nonempty"). Callers never set these bits
// directly; schema/builder constructors call this instead.
func (m CIFBitmap) WithControlBits() CIFBitmap {
	out := m
	out.CIF0 &^= (1 << cif0ControlCIF1Bit) | (1 << cif0ControlCIF2Bit) | (1 << cif0ControlCIF3Bit)
	if out.CIF1 != 0 {
		out.CIF0 |= 1 << cif0ControlCIF1Bit
	}
	if out.CIF2 != 0 {
		out.CIF0 |= 1 << cif0ControlCIF2Bit
	}
	if out.CIF3 != 0 {
		out.CIF0 |= 1 << cif0ControlCIF3Bit
	}
	return out
}

// ValidateSupported checks every set bit in every enabled CIF word
// against its word's supported mask, returning ErrUnsupportedField
// (spec §4.9 step 6) on the first unsupported or out-of-range bit.
func (m CIFBitmap) ValidateSupported() error {
	if unsupported := m.CIF0 &^ supportedMasks[CIF0]; unsupported != 0 {
		return NewValidationError(KindUnsupportedField, "CIF0 has unsupported bits %#08x", unsupported)
	}
	if m.HasCIF1() {
		if unsupported := m.CIF1 &^ supportedMasks[CIF1]; unsupported != 0 {
			return NewValidationError(KindUnsupportedField, "CIF1 has unsupported bits %#08x", unsupported)
		}
	}
	if m.HasCIF2() {
		if unsupported := m.CIF2 &^ supportedMasks[CIF2]; unsupported != 0 {
			return NewValidationError(KindUnsupportedField, "CIF2 has unsupported bits %#08x", unsupported)
		}
	}
	if m.HasCIF3() {
		if unsupported := m.CIF3 &^ supportedMasks[CIF3]; unsupported != 0 {
			return NewValidationError(KindUnsupportedField, "CIF3 has unsupported bits %#08x", unsupported)
		}
	}
	return nil
}

// HasVariableBits reports whether any set bit across the enabled CIF
// words is a variable-length field. Compile-time schemas reject these
// outright (spec §3.2 invariant 6); only the runtime view may resolve
// them from buffer content.
func (m CIFBitmap) HasVariableBits() bool {
	enabled := [cifWordCount]bool{true, m.HasCIF1(), m.HasCIF2(), m.HasCIF3()}
	for w := CIF0; w < cifWordCount; w++ {
		if !enabled[w] {
			continue
		}
		bitmap := m.Word(w)
		for bit := uint(0); bit < 32; bit++ {
			if bitmap&(1<<bit) != 0 && cifTables[w][bit].IsVariable {
				return true
			}
		}
	}
	return false
}

// CalculateContextSizeCT computes the total word count of a context
// packet's CIF section + data fields purely from the bitmap, summing
// each table's fixed SizeWords over set bits and skipping CIF0's
// control bits (spec §4.3 calculate_context_size_ct). It returns an
// error if any set bit names a variable-length field — compile-time
// schemas cannot contain one (spec §3.2 invariant 6).
func CalculateContextSizeCT(m CIFBitmap) (sizeWords int, err error) {
	if err := m.ValidateSupported(); err != nil {
		return 0, err
	}
	if m.HasVariableBits() {
		return 0, fmt.Errorf("vrt: compile-time context schema cannot contain a variable-length field")
	}

	total := 1 // CIF0 word itself
	total += sumFixedBits(CIF0, m.CIF0)
	if m.HasCIF1() {
		total++
		total += sumFixedBits(CIF1, m.CIF1)
	}
	if m.HasCIF2() {
		total++
		total += sumFixedBits(CIF2, m.CIF2)
	}
	if m.HasCIF3() {
		total++
		total += sumFixedBits(CIF3, m.CIF3)
	}
	return total, nil
}

func sumFixedBits(word CIFWord, bitmap uint32) int {
	total := 0
	for bit := 31; bit >= 0; bit-- {
		if bitmap&(1<<uint(bit)) == 0 {
			continue
		}
		if word == CIF0 && isCIF0ControlBit(uint8(bit)) {
			continue
		}
		total += int(cifTables[word][bit].SizeWords)
	}
	return total
}

// VariableFieldSizeReader reads the word-size of a variable-length
// field whose first word begins at byte offset off within buf.
type VariableFieldSizeReader func(buf []byte, off int) (sizeWords int, err error)

// GPSASCIISize implements VariableFieldSizeReader for CIF0 bit 10: the
// first word is a character count n; total size is 1 + ceil(n/4)
// words (spec §3.1).
func GPSASCIISize(buf []byte, off int) (int, error) {
	if !BytesFit(off, WordBytes, len(buf)) {
		return 0, ErrBufferTooSmall
	}
	n := ReadU32(buf, off)
	return 1 + int((n+3)/4), nil
}

// ContextAssociationListsSize implements VariableFieldSizeReader for
// CIF0 bit 9: the first word holds (stream_count:u16, context_count:
// u16); total size is 1 + stream_count + context_count words.
func ContextAssociationListsSize(buf []byte, off int) (int, error) {
	if !BytesFit(off, WordBytes, len(buf)) {
		return 0, ErrBufferTooSmall
	}
	streamCount := ReadU16(buf, off)
	contextCount := ReadU16(buf, off+2)
	return 1 + int(streamCount) + int(contextCount), nil
}

func variableSizeReader(bit uint8) VariableFieldSizeReader {
	switch bit {
	case BitGPSASCII:
		return GPSASCIISize
	case BitContextAssociationLists:
		return ContextAssociationListsSize
	default:
		return nil
	}
}

// FieldOffset locates a target (word, bit) field, returning its byte
// offset measured from the start of the context-fields region (the
// first byte after the last enabled CIF word). It walks CIF0 from bit
// 31 down to (but not including) the target when the target is in
// CIF0, summing fixed sizes and resolving variable sizes from buf as
// it goes (spec §4.3 calculate_field_offset_runtime); then, if the
// target is in a later CIF word, adds all of CIF0's data fields
// followed by whichever of CIF1/CIF2 precede the target word.
//
// regionStart is the byte offset, within buf, of the first byte of
// the context-fields region (i.e. base_offset_bytes in spec §4.3).
// bufSize bounds how far a variable-length size read may reach.
func FieldOffset(m CIFBitmap, target FieldTag, buf []byte, regionStart, bufSize int) (offsetBytes int, err error) {
	if !IsDataBit(target.Word, target.Bit) {
		return 0, NewValidationError(KindUnsupportedField, "field (%s, bit %d) is not a supported data bit", target.Word, target.Bit)
	}

	words := 0

	// CIF0 is always walked (its fields precede CIF1/CIF2/CIF3 data
	// per spec §3.1's ordering rule), from bit 31 down to the target
	// (exclusive) if the target lives in CIF0, else down to bit 0.
	startBit := 31
	stopBit := 0
	if target.Word == CIF0 {
		stopBit = int(target.Bit) + 1
	}
	for bit := startBit; bit >= stopBit; bit-- {
		n, err := fieldWords(CIF0, uint8(bit), m.CIF0, buf, regionStart, words, bufSize)
		if err != nil {
			return 0, err
		}
		words += n
	}
	if target.Word == CIF0 {
		return regionStart + WordsToBytes(words), nil
	}

	if m.HasCIF1() {
		stop := 0
		if target.Word == CIF1 {
			stop = int(target.Bit) + 1
		}
		for bit := 31; bit >= stop; bit-- {
			n, err := fieldWords(CIF1, uint8(bit), m.CIF1, buf, regionStart, words, bufSize)
			if err != nil {
				return 0, err
			}
			words += n
		}
		if target.Word == CIF1 {
			return regionStart + WordsToBytes(words), nil
		}
	}

	if m.HasCIF2() {
		stop := 0
		if target.Word == CIF2 {
			stop = int(target.Bit) + 1
		}
		for bit := 31; bit >= stop; bit-- {
			n, err := fieldWords(CIF2, uint8(bit), m.CIF2, buf, regionStart, words, bufSize)
			if err != nil {
				return 0, err
			}
			words += n
		}
		if target.Word == CIF2 {
			return regionStart + WordsToBytes(words), nil
		}
	}

	if m.HasCIF3() {
		stop := int(target.Bit) + 1
		for bit := 31; bit >= stop; bit-- {
			n, err := fieldWords(CIF3, uint8(bit), m.CIF3, buf, regionStart, words, bufSize)
			if err != nil {
				return 0, err
			}
			words += n
		}
		return regionStart + WordsToBytes(words), nil
	}

	return 0, fmt.Errorf("vrt: target CIF word %s is not enabled", target.Word)
}

// fieldWords returns the word size that bit contributes to the
// context-fields region if set in bitmap, reading a variable field's
// size from buf when needed. wordsBefore is the count of whole words
// already walked, used to compute the byte offset of a variable
// field's length prefix.
func fieldWords(word CIFWord, bit uint8, bitmap uint32, buf []byte, regionStart, wordsBefore, bufSize int) (int, error) {
	if bitmap&(1<<uint(bit)) == 0 {
		return 0, nil
	}
	if word == CIF0 && isCIF0ControlBit(bit) {
		return 0, nil
	}
	entry := cifTables[word][bit]
	if !entry.IsVariable {
		return int(entry.SizeWords), nil
	}
	reader := variableSizeReader(bit)
	if reader == nil {
		return 0, NewValidationError(KindUnsupportedField, "no variable-size reader for %s bit %d", word, bit)
	}
	off := regionStart + WordsToBytes(wordsBefore)
	n, err := reader(buf, off)
	if err != nil {
		return 0, err
	}
	if !BytesFit(off, WordsToBytes(n), bufSize) {
		return 0, NewValidationError(KindBufferTooSmall, "variable field at byte %d needs %d words beyond buffer size %d", off, n, bufSize)
	}
	return n, nil
}

// CalculateContextFieldsSizeRuntime sums the full context-fields
// region (CIF0 data fields, then CIF1, then CIF2, then CIF3 — spec
// §4.9 step 7), resolving variable fields from buf as it walks CIF0
// in MSB->LSB order so that GPS ASCII (bit 10) is read before Context
// Association Lists (bit 9), per spec §4.3's ordering note.
func CalculateContextFieldsSizeRuntime(m CIFBitmap, buf []byte, regionStart, bufSize int) (sizeWords int, err error) {
	words := 0
	for bit := 31; bit >= 0; bit-- {
		n, err := fieldWords(CIF0, uint8(bit), m.CIF0, buf, regionStart, words, bufSize)
		if err != nil {
			return 0, err
		}
		words += n
	}
	if m.HasCIF1() {
		for bit := 31; bit >= 0; bit-- {
			n, err := fieldWords(CIF1, uint8(bit), m.CIF1, buf, regionStart, words, bufSize)
			if err != nil {
				return 0, err
			}
			words += n
		}
	}
	if m.HasCIF2() {
		for bit := 31; bit >= 0; bit-- {
			n, err := fieldWords(CIF2, uint8(bit), m.CIF2, buf, regionStart, words, bufSize)
			if err != nil {
				return 0, err
			}
			words += n
		}
	}
	if m.HasCIF3() {
		for bit := 31; bit >= 0; bit-- {
			n, err := fieldWords(CIF3, uint8(bit), m.CIF3, buf, regionStart, words, bufSize)
			if err != nil {
				return 0, err
			}
			words += n
		}
	}
	return words, nil
}
