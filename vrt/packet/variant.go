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

// Kind discriminates a PacketVariant's payload, the Go rendering of
// the spec's compile-time "packet variant" sum type (spec §4.11).
type Kind int

// Packet variant kinds this profile dispatches to a concrete runtime
// view. Command packets decode their header but are not otherwise
// supported (spec §9: command-packet field tables are out of scope).
const (
	KindData Kind = iota
	KindContext
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "Data"
	case KindContext:
		return "Context"
	default:
		return "Unknown"
	}
}

// PacketVariant is ParsePacket's return type: exactly one of Data or
// Context is non-nil, selected by Kind, mirroring the teacher's
// decodeMgmtPacket switch that dispatches a management TLV's ID to its
// concrete decoded type (protocol/management.go).
type PacketVariant struct {
	Kind    Kind
	Data    *RuntimeDataPacket
	Context *RuntimeContextPacket
}

// ParsePacket reads buf's header and dispatches to ParseDataPacket or
// ParseContextPacket by packet type, the single entry point spec §4.11
// calls the packet variant dispatcher. It returns an error for command
// packet types (unsupported by this profile) and for unassigned types.
func ParsePacket(buf []byte) (PacketVariant, error) {
	if !protocol.BytesFit(0, protocol.WordBytes, len(buf)) {
		return PacketVariant{}, protocol.ErrBufferTooSmall
	}
	h := protocol.DecodeHeader(protocol.ReadU32(buf, 0))

	switch {
	case h.Type.IsDataType():
		d, err := ParseDataPacket(buf)
		if err != nil {
			return PacketVariant{}, err
		}
		return PacketVariant{Kind: KindData, Data: d}, nil

	case h.Type.IsContextType():
		c, err := ParseContextPacket(buf)
		if err != nil {
			return PacketVariant{}, err
		}
		return PacketVariant{Kind: KindContext, Context: c}, nil

	case h.Type.IsCommandType():
		return PacketVariant{}, protocol.NewValidationError(protocol.KindPacketTypeMismatch, "command packet type %s is not supported by this profile", h.Type)

	default:
		return PacketVariant{}, protocol.NewValidationError(protocol.KindInvalidPacketType, "packet type %d is unassigned", uint8(h.Type))
	}
}
