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

import "golang.org/x/exp/slices"

// CIFWord names one of the four 32-bit Context Indicator Field words.
type CIFWord uint8

// CIF word identifiers.
const (
	CIF0 CIFWord = iota
	CIF1
	CIF2
	CIF3
	cifWordCount
)

func (w CIFWord) String() string {
	return [...]string{"CIF0", "CIF1", "CIF2", "CIF3"}[w]
}

// FieldTag identifies one context field by its CIF word and bit
// position. This is the Go rendering of the spec's compile-time
// "field tag" (spec glossary): a plain value carrying (CIFWord, Bit),
// the real contract behind the C++ variadic field-tag pack (spec §9
// DESIGN NOTES).
type FieldTag struct {
	Word CIFWord
	Bit  uint8
}

// CIFFieldEntry describes one bit position of a CIF word: its fixed
// wire size, whether its size must be read from the buffer at
// runtime, whether this library implements it, and its canonical name.
// One static table per CIF word is the Go equivalent of the spec's
// per-(CIF,bit) static descriptor table (spec §4.3).
type CIFFieldEntry struct {
	SizeWords   uint8
	IsVariable  bool
	IsSupported bool
	Name        string
}

// cifControlBits are the three bits in CIF0 that enable CIF1/CIF2/CIF3
// rather than describing a data field (spec §3.1 invariant 7): they
// are auto-derived from which other CIF words are in use, never set
// directly by a caller.
const (
	cif0ControlCIF1Bit = 1
	cif0ControlCIF2Bit = 2
	cif0ControlCIF3Bit = 3
)

// Variable-length field bit positions, both in CIF0 (spec §3.1).
const (
	BitGPSASCII                = 10
	BitContextAssociationLists = 9
)

// cifTables holds the four 32-entry descriptor tables, indexed
// [CIFWord][bit]. Entries not listed default to the zero value
// (IsSupported: false), matching spec §9's note that CIF3 (and parts
// of CIF1/CIF2) are only partially implemented by this profile.
var cifTables = [cifWordCount][32]CIFFieldEntry{
	CIF0: buildCIF0Table(),
	CIF1: buildCIF1Table(),
	CIF2: buildCIF2Table(),
	CIF3: buildCIF3Table(),
}

func buildCIF0Table() [32]CIFFieldEntry {
	var t [32]CIFFieldEntry
	t[31] = CIFFieldEntry{SizeWords: 0, IsSupported: true, Name: "change_indicator"}
	t[30] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "reference_point_id"}
	t[29] = CIFFieldEntry{SizeWords: 2, IsSupported: true, Name: "bandwidth"}
	t[28] = CIFFieldEntry{SizeWords: 2, IsSupported: true, Name: "if_reference_frequency"}
	t[27] = CIFFieldEntry{SizeWords: 2, IsSupported: true, Name: "rf_reference_frequency"}
	t[26] = CIFFieldEntry{SizeWords: 2, IsSupported: true, Name: "rf_reference_frequency_offset"}
	t[25] = CIFFieldEntry{SizeWords: 2, IsSupported: true, Name: "if_band_offset"}
	t[24] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "reference_level"}
	t[23] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "gain"}
	t[22] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "over_range_count"}
	t[21] = CIFFieldEntry{SizeWords: 2, IsSupported: true, Name: "sample_rate"}
	t[20] = CIFFieldEntry{SizeWords: 2, IsSupported: true, Name: "timestamp_adjustment"}
	t[19] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "timestamp_calibration_time"}
	// bit 18 reserved: unsupported.
	t[17] = CIFFieldEntry{SizeWords: 2, IsSupported: true, Name: "device_id"}
	t[16] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "state_event_indicators"}
	t[15] = CIFFieldEntry{SizeWords: 2, IsSupported: true, Name: "data_payload_format"}
	t[14] = CIFFieldEntry{SizeWords: 11, IsSupported: true, Name: "formatted_gps_ins"}
	t[13] = CIFFieldEntry{SizeWords: 13, IsSupported: true, Name: "ecef_ephemeris"}
	t[12] = CIFFieldEntry{SizeWords: 13, IsSupported: true, Name: "relative_ephemeris"}
	t[11] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "ephemeris_ref_id"}
	t[BitGPSASCII] = CIFFieldEntry{IsVariable: true, IsSupported: true, Name: "gps_ascii"}
	t[BitContextAssociationLists] = CIFFieldEntry{IsVariable: true, IsSupported: true, Name: "context_association_lists"}
	// bits 8..4 reserved: unsupported.
	t[cif0ControlCIF3Bit] = CIFFieldEntry{SizeWords: 0, IsSupported: true, Name: "cif3_enable"}
	t[cif0ControlCIF2Bit] = CIFFieldEntry{SizeWords: 0, IsSupported: true, Name: "cif2_enable"}
	t[cif0ControlCIF1Bit] = CIFFieldEntry{SizeWords: 0, IsSupported: true, Name: "cif1_enable"}
	// bit 0 reserved: unsupported.
	return t
}

func buildCIF1Table() [32]CIFFieldEntry {
	var t [32]CIFFieldEntry
	t[31] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "phase_offset"}
	t[30] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "polarization"}
	t[29] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "pointing_vector"}
	t[28] = CIFFieldEntry{IsVariable: true, IsSupported: false, Name: "3d_pointing_structure"}
	t[27] = CIFFieldEntry{IsVariable: true, IsSupported: false, Name: "sector_scan"}
	t[26] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "spatial_reference_type"}
	t[25] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "beam_width"}
	t[24] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "range"}
	// bits 23, 22 reserved: unsupported.
	t[21] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "eb_no_ber"}
	t[20] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "threshold"}
	t[19] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "compression_point"}
	t[18] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "intercept_points"}
	t[17] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "snr_noise_figure"}
	// bit 16 reserved: unsupported.
	t[15] = CIFFieldEntry{SizeWords: 2, IsSupported: true, Name: "aux_frequency"}
	t[14] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "aux_gain"}
	t[13] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "aux_bandwidth"}
	// bits 12..10 reserved: unsupported.
	t[9] = CIFFieldEntry{IsVariable: true, IsSupported: false, Name: "array_of_cifs"}
	t[8] = CIFFieldEntry{SizeWords: 13, IsSupported: true, Name: "spectrum"}
	t[7] = CIFFieldEntry{IsVariable: true, IsSupported: false, Name: "index_list"}
	// bits 6, 5 reserved: unsupported.
	t[4] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "discrete_io_32"}
	t[3] = CIFFieldEntry{SizeWords: 2, IsSupported: true, Name: "discrete_io_64"}
	t[2] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "health_status"}
	t[1] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "version_and_build_code"}
	t[0] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "buffer_size"}
	return t
}

func buildCIF2Table() [32]CIFFieldEntry {
	var t [32]CIFFieldEntry
	t[31] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "function_id"}
	t[30] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "mode_id"}
	t[29] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "event_id"}
	t[28] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "function_priority_id"}
	t[27] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "function_protocol_id"}
	// bits 26, 25 reserved: unsupported.
	t[24] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "hardware_id"}
	t[23] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "hardware_version"}
	t[22] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "platform_instance"}
	t[21] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "platform_class"}
	t[20] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "operator_id"}
	t[19] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "controller_id"}
	t[18] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "controllee_id"}
	t[17] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "cited_message_id"}
	t[16] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "application_id"}
	// bits 15..0 reserved: unsupported.
	return t
}

func buildCIF3Table() [32]CIFFieldEntry {
	var t [32]CIFFieldEntry
	t[31] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "network_id"}
	// bits 30, 29 reserved: unsupported.
	t[28] = CIFFieldEntry{SizeWords: 1, IsSupported: false, Name: "reserved_28"}
	t[27] = CIFFieldEntry{SizeWords: 1, IsSupported: true, Name: "timestamp_details"}
	// bits 26..0 reserved: unsupported (CIF3 table is deliberately
	// partial, per spec §9).
	return t
}

// Entry returns the descriptor for (word, bit).
func Entry(word CIFWord, bit uint8) CIFFieldEntry {
	return cifTables[word][bit]
}

// supportedMasks[w] is the bitwise OR of (1<<bit) for every supported
// entry in cifTables[w], including CIF0's CIFn-enable control bits
// (spec §4.3).
var supportedMasks = computeSupportedMasks()

func computeSupportedMasks() [cifWordCount]uint32 {
	var masks [cifWordCount]uint32
	for w := CIFWord(0); w < cifWordCount; w++ {
		for bit, entry := range cifTables[w] {
			if entry.IsSupported {
				masks[w] |= 1 << uint(bit)
			}
		}
	}
	return masks
}

// SupportedMask returns the bitwise-OR of supported bit positions for
// a CIF word.
func SupportedMask(word CIFWord) uint32 { return supportedMasks[word] }

// IsSupportedBit reports whether bit is a supported (possibly
// control) bit of word.
func IsSupportedBit(word CIFWord, bit uint8) bool {
	return supportedMasks[word]&(1<<uint(bit)) != 0
}

// supportedBitList caches, per CIF word, the sorted list of supported
// data-bit positions (excluding CIF0's control bits), which IsDataBit
// searches via slices.Contains.
var supportedBitList = computeSupportedBitLists()

func computeSupportedBitLists() [cifWordCount][]uint8 {
	var lists [cifWordCount][]uint8
	for w := CIFWord(0); w < cifWordCount; w++ {
		for bit, entry := range cifTables[w] {
			if !entry.IsSupported {
				continue
			}
			if w == CIF0 && isCIF0ControlBit(uint8(bit)) {
				continue
			}
			lists[w] = append(lists[w], uint8(bit))
		}
	}
	return lists
}

func isCIF0ControlBit(bit uint8) bool {
	return bit == cif0ControlCIF1Bit || bit == cif0ControlCIF2Bit || bit == cif0ControlCIF3Bit
}

// IsDataBit reports whether bit is a data-carrying bit of word (i.e.
// supported and, for CIF0, not one of the three CIFn-enable control
// bits).
func IsDataBit(word CIFWord, bit uint8) bool {
	if word == CIF0 && isCIF0ControlBit(bit) {
		return false
	}
	return slices.Contains(supportedBitList[word], bit)
}
