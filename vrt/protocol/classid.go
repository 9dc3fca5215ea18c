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

// ClassID is the 24-bit OUI + 8-bit ICC + 32-bit PCC identifier
// encoded into two prologue words (spec §4.5), modeled on the
// teacher's ClockIdentity/PortIdentity split of a wire identifier
// across fixed bit ranges.
type ClassID struct {
	OUI uint32 // low 24 bits significant
	ICC uint8
	PCC uint32
}

const ouiMask = 0x00FFFFFF

// NewClassID constructs a ClassID, returning an error if oui does not
// fit in 24 bits — enforced at construction time per spec §4.5.
func NewClassID(oui uint32, icc uint8, pcc uint32) (ClassID, error) {
	if oui&^uint32(ouiMask) != 0 {
		return ClassID{}, fmt.Errorf("vrt: OUI %#x does not fit in 24 bits", oui)
	}
	return ClassID{OUI: oui, ICC: icc, PCC: pcc}, nil
}

// EncodeWords returns the two big-endian wire words for this ClassID:
// word0 = (oui << 8) | icc, word1 = pcc (spec §4.5).
func (c ClassID) EncodeWords() (word0, word1 uint32) {
	word0 = (c.OUI&ouiMask)<<8 | uint32(c.ICC)
	word1 = c.PCC
	return word0, word1
}

// DecodeClassID splits the two wire words of a present class-ID field
// back into a ClassID.
func DecodeClassID(word0, word1 uint32) ClassID {
	return ClassID{
		OUI: (word0 >> 8) & ouiMask,
		ICC: uint8(word0 & 0xFF),
		PCC: word1,
	}
}

// String renders the class ID for diagnostics.
func (c ClassID) String() string {
	return fmt.Sprintf("ClassID(oui=%#06x, icc=%#02x, pcc=%#08x)", c.OUI, c.ICC, c.PCC)
}
