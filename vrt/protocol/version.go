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

import (
	"fmt"

	"github.com/hashicorp/go-version"
)

// Profile names the VITA 49 revision a stream conforms to. A data
// packet's header signals this directly (bit25, "NotV49_0"); nothing
// on the wire distinguishes 49.1 from 49.2, so Profile treats them as
// one tier above 49.0. Comparisons use hashicorp/go-version the same
// way the teacher's calnex package version-gates device firmware
// behavior, rather than hand-rolled integer comparisons.
type Profile struct {
	v *version.Version
}

var (
	profileV49_0 = must(version.NewVersion("49.0.0"))
	profileV49_2 = must(version.NewVersion("49.2.0"))
)

func must(v *version.Version, err error) *version.Version {
	if err != nil {
		panic(err)
	}
	return v
}

// ProfileV49_0 is the baseline VITA 49.0 profile.
var ProfileV49_0 = Profile{v: profileV49_0}

// ProfileV49_2 is the VITA 49.2 profile this codec targets, the only
// one with CIF1/CIF2/CIF3 context fields and Class ID.
var ProfileV49_2 = Profile{v: profileV49_2}

// NewProfile parses a semantic-version string (e.g. "49.2.0") into a Profile.
func NewProfile(s string) (Profile, error) {
	v, err := version.NewVersion(s)
	if err != nil {
		return Profile{}, fmt.Errorf("vrt: invalid profile version %q: %w", s, err)
	}
	return Profile{v: v}, nil
}

// String renders the profile's version string.
func (p Profile) String() string { return p.v.String() }

// SupportsExtendedContext reports whether this profile is new enough
// to carry CIF1/CIF2/CIF3 context fields and a Class ID (i.e. >= 49.2).
func (p Profile) SupportsExtendedContext() bool {
	return p.v.Compare(profileV49_2) >= 0
}

// DetectProfile infers the profile a decoded data-packet header
// claims via its NotV49_0 indicator bit (spec §4.2): clear means plain
// 49.0 framing, set means an extension beyond it, reported as 49.2 —
// the only extension tier this codec implements.
func DetectProfile(h DecodedHeader) Profile {
	if h.Type.IsDataType() && h.NotV49_0 {
		return ProfileV49_2
	}
	return ProfileV49_0
}
