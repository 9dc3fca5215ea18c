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

// FieldTrait is the per-(CIF,bit) dispatch record the spec calls for
// in §4.10: a small record of conversion functions and sizes, the Go
// rendering of what the C++ side expresses as a trait specialization.
// Every context field has the raw/encoded layers for free (they are
// just the field's byte slice, word-order decoded); only fields with
// a registered FieldTrait additionally support the interpreted
// (`value()`) layer.
type FieldTrait struct {
	// ToInterpreted converts a field's raw wire bytes to its
	// interpreted unit (e.g. fixed-point Hz to float64 Hz).
	ToInterpreted func(raw []byte) float64
	// FromInterpreted writes v into dst in this field's wire
	// encoding. len(dst) equals the field's fixed byte size.
	FromInterpreted func(v float64, dst []byte)
}

// q52Dot12ToFloat decodes a 2-word (64-bit) Q52.12 signed fixed-point
// value — VITA 49.2's standard encoding for frequency/bandwidth fields
// in Hz (spec scenario C: 20 MHz encodes as 0x0000001312D00000).
func q52Dot12ToFloat(raw []byte) float64 {
	bits := ReadU64(raw, 0)
	return float64(int64(bits)) / 4096.0
}

func floatToQ52Dot12(v float64, dst []byte) {
	WriteU64(dst, 0, uint64(int64(v*4096.0)))
}

// q7Dot9ToFloat decodes a 1-word Q7.9 signed fixed-point value (the
// upper 16 bits of the word), VITA 49.2's standard encoding for
// gain/level fields in dB/dBm.
func q7Dot9ToFloat(raw []byte) float64 {
	word := ReadU32(raw, 0)
	upper := int16(word >> 16)
	return float64(upper) / 512.0
}

func floatToQ7Dot9(v float64, dst []byte) {
	upper := uint32(uint16(int16(v * 512.0)))
	word := ReadU32(dst, 0)
	word = (word &^ 0xFFFF0000) | (upper << 16)
	WriteU32(dst, 0, word)
}

// fieldTraitTable registers interpreted-unit support per (CIF, bit).
// Fields absent from this table still support Bytes()/Encoded(); only
// Value()/SetValue() are gated on membership here (spec §4.10: "`value
// ()`... available only if trait declares interpreted support").
var fieldTraitTable = map[FieldTag]FieldTrait{
	{CIF0, 29}: {ToInterpreted: q52Dot12ToFloat, FromInterpreted: floatToQ52Dot12}, // bandwidth
	{CIF0, 28}: {ToInterpreted: q52Dot12ToFloat, FromInterpreted: floatToQ52Dot12}, // if_reference_frequency
	{CIF0, 27}: {ToInterpreted: q52Dot12ToFloat, FromInterpreted: floatToQ52Dot12}, // rf_reference_frequency
	{CIF0, 26}: {ToInterpreted: q52Dot12ToFloat, FromInterpreted: floatToQ52Dot12}, // rf_reference_frequency_offset
	{CIF0, 25}: {ToInterpreted: q52Dot12ToFloat, FromInterpreted: floatToQ52Dot12}, // if_band_offset
	{CIF0, 24}: {ToInterpreted: q7Dot9ToFloat, FromInterpreted: floatToQ7Dot9},     // reference_level (dBm)
	{CIF0, 23}: {ToInterpreted: q7Dot9ToFloat, FromInterpreted: floatToQ7Dot9},     // gain (dB)
	{CIF0, 21}: {ToInterpreted: q52Dot12ToFloat, FromInterpreted: floatToQ52Dot12}, // sample_rate
}

// Trait returns the registered interpreted-unit trait for tag, and
// whether one exists.
func Trait(tag FieldTag) (FieldTrait, bool) {
	t, ok := fieldTraitTable[tag]
	return t, ok
}
