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
	"math"
	"math/bits"
	"time"
)

// Timestamp carries the (seconds, fractional) pair common to every
// (TSI, TSF) combination. Only the (UTC, RealTime) combination gets an
// arithmetic contract (spec §4.4); other combinations store the two
// components verbatim, mirroring the teacher's plain (Seconds,
// Nanoseconds) Timestamp struct in ptp/protocol/types.go, generalized
// to VRT's wider picosecond fractional field.
type Timestamp struct {
	Seconds    uint32
	Fractional uint64
}

// Timestamp arithmetic constants for the (UTC, RealTime) contract.
const (
	PicosecondsPerSecond  = 1_000_000_000_000
	NanosecondsPerSecond  = 1_000_000_000
	MaxFractionalPicosecs = PicosecondsPerSecond - 1
)

// Empty reports whether the timestamp is the zero value.
func (t Timestamp) Empty() bool {
	return t.Seconds == 0 && t.Fractional == 0
}

// String renders the timestamp for diagnostics.
func (t Timestamp) String() string {
	return fmt.Sprintf("Timestamp(seconds=%d, fractional=%d)", t.Seconds, t.Fractional)
}

// Normalize enforces 0 <= Fractional < 10^12 by carrying any excess
// into Seconds, clamping to (MaxUint32, MaxFractionalPicosecs) rather
// than overflowing Seconds (spec §4.4, edge case: fractional == 10^12
// at construction normalizes to seconds+=1, fractional=0).
func (t Timestamp) Normalize() Timestamp {
	if t.Fractional < PicosecondsPerSecond {
		return t
	}
	extra := t.Fractional / PicosecondsPerSecond
	rem := t.Fractional % PicosecondsPerSecond
	if extra > uint64(math.MaxUint32)-uint64(t.Seconds) {
		return Timestamp{Seconds: math.MaxUint32, Fractional: MaxFractionalPicosecs}
	}
	return Timestamp{Seconds: t.Seconds + uint32(extra), Fractional: rem}
}

// TotalPicoseconds returns seconds*10^12 + fractional, saturating at
// math.MaxUint64 on overflow, which happens for seconds > ~1.84e7
// (spec §8).
func (t Timestamp) TotalPicoseconds() uint64 {
	hi, lo := bits.Mul64(uint64(t.Seconds), PicosecondsPerSecond)
	if hi != 0 {
		return math.MaxUint64
	}
	sum, carry := bits.Add64(lo, t.Fractional, 0)
	if carry != 0 {
		return math.MaxUint64
	}
	return sum
}

// NewTimestampFromTime builds a (UTC, RealTime) Timestamp from a Go
// time.Time, clamping out-of-range values per spec §4.4: negative
// epoch seconds clamp to (0,0); epoch seconds beyond MaxUint32 clamp
// to (MaxUint32, MaxFractionalPicosecs).
func NewTimestampFromTime(t time.Time) Timestamp {
	sec := t.Unix()
	if sec < 0 {
		return Timestamp{}
	}
	if sec > math.MaxUint32 {
		return Timestamp{Seconds: math.MaxUint32, Fractional: MaxFractionalPicosecs}
	}
	return Timestamp{
		Seconds:    uint32(sec),
		Fractional: uint64(t.Nanosecond()) * 1000, // ns -> ps
	}
}

// Time converts a (UTC, RealTime) Timestamp back to a Go time.Time.
// Sub-nanosecond precision (picoseconds below the 1000s place) is
// lost, per spec §4.4.
func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t.Seconds), int64(t.Fractional/1000)).UTC()
}

// AddDuration adds a signed nanosecond duration to a (UTC, RealTime)
// Timestamp, saturating on overflow/underflow (spec §4.4). It
// decomposes d into whole seconds and a remainder in picoseconds so
// that carries and borrows across the second boundary are exact.
func (t Timestamp) AddDuration(d time.Duration) Timestamp {
	deltaSec := int64(d) / int64(time.Second)
	deltaNsec := int64(d) % int64(time.Second)
	deltaPs := deltaNsec * 1000

	sec := int64(t.Seconds)
	frac := int64(t.Fractional)

	sec += deltaSec
	frac += deltaPs

	for frac < 0 {
		frac += PicosecondsPerSecond
		sec--
	}
	for frac >= PicosecondsPerSecond {
		frac -= PicosecondsPerSecond
		sec++
	}

	if sec < 0 {
		return Timestamp{}
	}
	if sec > math.MaxUint32 {
		return Timestamp{Seconds: math.MaxUint32, Fractional: MaxFractionalPicosecs}
	}
	return Timestamp{Seconds: uint32(sec), Fractional: uint64(frac)}
}

// SubDuration subtracts d, equivalent to AddDuration(-d) except at the
// math.MinInt64 boundary where negation itself would overflow; that
// case is split into AddDuration(math.MaxInt64) followed by
// AddDuration(1).
func (t Timestamp) SubDuration(d time.Duration) Timestamp {
	if d == math.MinInt64 {
		return t.AddDuration(math.MaxInt64).AddDuration(1)
	}
	return t.AddDuration(-d)
}

// Diff returns b-a as a signed nanosecond duration, correct for
// differences up to roughly 292 years (spec §4.4, §8 property 6). Both
// timestamps are assumed to carry (UTC, RealTime) semantics.
func (a Timestamp) Diff(b Timestamp) time.Duration {
	secDiff := int64(b.Seconds) - int64(a.Seconds)
	fracDiffPs := int64(b.Fractional) - int64(a.Fractional)
	return time.Duration(secDiff*NanosecondsPerSecond + fracDiffPs/1000)
}
