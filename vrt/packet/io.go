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

// Reader abstracts anything capable of producing successive VRT
// packets, the collaborator interface spec §6.2 describes in place of
// naming any one transport (UDP multicast, pcap replay, a ring buffer).
// Implementations own framing (VRT carries no length prefix outside
// the header's own size field): ParsePacket reads only the
// header-declared size from the bytes it is handed, so a reader may
// pass the rest of a stream and advance by that size.
type Reader interface {
	ReadPacket() (PacketVariant, error)
}

// Writer abstracts anything capable of consuming successive VRT
// packets for transmission or storage (spec §6.2). This package
// defines only the contract; no type in this module implements it.
type Writer interface {
	WritePacket(PacketVariant) error
}
