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

// PacketType is the 4-bit VRT packet type field, Table 5.1.1.1-1 of
// VITA 49.2.
type PacketType uint8

// Packet types.
const (
	PacketTypeSignalDataNoID PacketType = 0
	PacketTypeSignalData     PacketType = 1
	PacketTypeExtDataNoID    PacketType = 2
	PacketTypeExtData        PacketType = 3
	PacketTypeContext        PacketType = 4
	PacketTypeExtContext     PacketType = 5
	PacketTypeCommand        PacketType = 6
	PacketTypeExtCommand     PacketType = 7
)

var packetTypeNames = map[PacketType]string{
	PacketTypeSignalDataNoID: "SignalDataNoId",
	PacketTypeSignalData:     "SignalData",
	PacketTypeExtDataNoID:    "ExtDataNoId",
	PacketTypeExtData:        "ExtData",
	PacketTypeContext:        "Context",
	PacketTypeExtContext:     "ExtContext",
	PacketTypeCommand:        "Command",
	PacketTypeExtCommand:     "ExtCommand",
}

// String renders the packet type's canonical name, or a numeric
// fallback for the unassigned 8..15 range.
func (t PacketType) String() string {
	if s, ok := packetTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("PacketType(%d)", uint8(t))
}

// IsValidPacketType reports whether t is one of the eight assigned
// packet types (0..7); 8..15 are unassigned and always invalid.
func IsValidPacketType(t PacketType) bool {
	return t <= PacketTypeExtCommand
}

// IsDataType reports whether t is a signal/extension data packet type.
func (t PacketType) IsDataType() bool {
	return t <= PacketTypeExtData
}

// IsContextType reports whether t is a context or extension-context
// packet type.
func (t PacketType) IsContextType() bool {
	return t == PacketTypeContext || t == PacketTypeExtContext
}

// IsCommandType reports whether t is a command or extension-command
// packet type.
func (t PacketType) IsCommandType() bool {
	return t == PacketTypeCommand || t == PacketTypeExtCommand
}

// IsOdd reports whether t is numerically odd. Per spec §3.1, stream-ID
// presence in data packets is a function of this, not of any header
// bit. This is the "newer" interpretation of stream-ID presence called
// out as canonical in spec §9 (superseding an older tree that treated
// bit 25 as a stream-ID indicator).
func (t PacketType) IsOdd() bool {
	return t&1 == 1
}

// TSIType is the 2-bit timestamp-integer format field.
type TSIType uint8

// TSI formats.
const (
	TSINone TSIType = 0
	TSIUTC  TSIType = 1
	TSIGPS  TSIType = 2
	TSIOther TSIType = 3
)

var tsiNames = map[TSIType]string{
	TSINone: "None", TSIUTC: "UTC", TSIGPS: "GPS", TSIOther: "Other",
}

// String renders the TSI type's canonical name.
func (t TSIType) String() string { return tsiNames[t] }

// TSFType is the 2-bit timestamp-fractional format field.
type TSFType uint8

// TSF formats.
const (
	TSFNone        TSFType = 0
	TSFSampleCount TSFType = 1
	TSFRealTime    TSFType = 2
	TSFFreeRunning TSFType = 3
)

var tsfNames = map[TSFType]string{
	TSFNone: "None", TSFSampleCount: "SampleCount", TSFRealTime: "RealTime", TSFFreeRunning: "FreeRunning",
}

// String renders the TSF type's canonical name.
func (t TSFType) String() string { return tsfNames[t] }

// Header bit positions within the single 32-bit header word (MSB = bit
// 31). These mirror Table 5.1.1.1-1's layout exactly; see spec §6.1's
// ASCII diagram.
const (
	headerTypeShift    = 28
	headerTypeMask     = 0xF
	headerClassIDBit   = 27
	headerInd26Bit     = 26
	headerInd25Bit     = 25
	headerInd24Bit     = 24
	headerTSIShift     = 22
	headerTSIMask      = 0x3
	headerTSFShift     = 20
	headerTSFMask      = 0x3
	headerCountShift   = 16
	headerCountMask    = 0xF
	headerSizeMask     = 0xFFFF
)

// DecodedHeader is the fully-extracted content of one 32-bit VRT
// header word, including the type-dependent interpretation of
// indicator bits 26/25/24 (spec §4.2).
type DecodedHeader struct {
	Type        PacketType
	HasClassID  bool
	TSI         TSIType
	TSF         TSFType
	PacketCount uint8 // modulo-16
	SizeWords   uint16

	// Data-packet (type 0..3) interpretation of bits 26/25/24.
	TrailerIncluded bool
	NotV49_0        bool
	SignalSpectrum  bool

	// Context-packet (type 4/5) interpretation.
	ContextReserved1 bool
	ContextReserved2 bool
	TimestampMode    bool

	// Command-packet (type 6/7) interpretation.
	Acknowledge    bool
	CommandReserved bool
	Cancel         bool
}

// BuildHeader packs the given fields into a single big-endian 32-bit
// header word, per spec §4.2 and the wire layout in §6.1. bit26/25/24
// carry whatever type-specific semantics the caller's packet type
// assigns them; BuildHeader itself is agnostic to that meaning, the
// same way the teacher's headerMarshalBinaryTo packs FlagField without
// interpreting individual flag bits.
func BuildHeader(typ PacketType, hasClassID, bit26, bit25, bit24 bool, tsi TSIType, tsf TSFType, packetCount uint8, sizeWords uint16) uint32 {
	var w uint32
	w |= uint32(typ&headerTypeMask) << headerTypeShift
	if hasClassID {
		w |= 1 << headerClassIDBit
	}
	if bit26 {
		w |= 1 << headerInd26Bit
	}
	if bit25 {
		w |= 1 << headerInd25Bit
	}
	if bit24 {
		w |= 1 << headerInd24Bit
	}
	w |= uint32(tsi&headerTSIMask) << headerTSIShift
	w |= uint32(tsf&headerTSFMask) << headerTSFShift
	w |= uint32(packetCount&headerCountMask) << headerCountShift
	w |= uint32(sizeWords) & headerSizeMask
	return w
}

// DecodeHeader extracts every universal field from a 32-bit header
// word, plus the type-dependent interpretation of bits 26/25/24. It is
// total: there is no invalid bit pattern it cannot decode, matching
// spec §4.2's requirement that decode never fails — validity of the
// resulting PacketType is a separate concern (IsValidPacketType).
func DecodeHeader(word uint32) DecodedHeader {
	typ := PacketType((word >> headerTypeShift) & headerTypeMask)
	bit26 := word&(1<<headerInd26Bit) != 0
	bit25 := word&(1<<headerInd25Bit) != 0
	bit24 := word&(1<<headerInd24Bit) != 0

	h := DecodedHeader{
		Type:        typ,
		HasClassID:  word&(1<<headerClassIDBit) != 0,
		TSI:         TSIType((word >> headerTSIShift) & headerTSIMask),
		TSF:         TSFType((word >> headerTSFShift) & headerTSFMask),
		PacketCount: uint8((word >> headerCountShift) & headerCountMask),
		SizeWords:   uint16(word & headerSizeMask),
	}

	switch {
	case typ.IsDataType():
		h.TrailerIncluded = bit26
		h.NotV49_0 = bit25
		h.SignalSpectrum = bit24
	case typ.IsContextType():
		h.ContextReserved1 = bit26
		h.ContextReserved2 = bit25
		h.TimestampMode = bit24
	case typ.IsCommandType():
		h.Acknowledge = bit26
		h.CommandReserved = bit25
		h.Cancel = bit24
	// typ in 8..15: all type-specific fields left false, per spec §4.2.
	}
	return h
}

// Encode re-packs a DecodedHeader into its wire word, selecting the
// correct bit26/25/24 triple for the header's packet type. Round-
// tripping Encode(DecodeHeader(w)) == w holds for any w whose
// type-specific bits were produced by DecodeHeader (spec §8 property 2).
func (h DecodedHeader) Encode() uint32 {
	var bit26, bit25, bit24 bool
	switch {
	case h.Type.IsDataType():
		bit26, bit25, bit24 = h.TrailerIncluded, h.NotV49_0, h.SignalSpectrum
	case h.Type.IsContextType():
		bit26, bit25, bit24 = h.ContextReserved1, h.ContextReserved2, h.TimestampMode
	case h.Type.IsCommandType():
		bit26, bit25, bit24 = h.Acknowledge, h.CommandReserved, h.Cancel
	}
	return BuildHeader(h.Type, h.HasClassID, bit26, bit25, bit24, h.TSI, h.TSF, h.PacketCount, h.SizeWords)
}

// HasStreamID reports whether a packet of this header's type carries a
// stream-ID word in its prologue: odd data-packet types, or any
// context-packet type (spec §3.1, §9 canonical interpretation).
func (h DecodedHeader) HasStreamID() bool {
	return h.Type.IsContextType() || h.Type.IsOdd()
}
