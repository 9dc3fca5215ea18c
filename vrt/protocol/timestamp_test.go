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
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestampScenarioB(t *testing.T) {
	// TSI: 00 00 04 D2 (1234s), TSF: 00 00 00 00 00 00 01 F4 (500ps).
	ts := Timestamp{Seconds: 1234, Fractional: 500}
	require.Equal(t, uint32(1234), ts.Seconds)
	require.Equal(t, uint64(500), ts.Fractional)
}

func TestTimestampNormalizeCarriesExcessFractional(t *testing.T) {
	ts := Timestamp{Seconds: 5, Fractional: PicosecondsPerSecond}
	got := ts.Normalize()
	require.Equal(t, Timestamp{Seconds: 6, Fractional: 0}, got)
}

func TestTimestampNormalizeSaturatesOnSecondsOverflow(t *testing.T) {
	ts := Timestamp{Seconds: math.MaxUint32, Fractional: PicosecondsPerSecond}
	got := ts.Normalize()
	require.Equal(t, Timestamp{Seconds: math.MaxUint32, Fractional: MaxFractionalPicosecs}, got)
}

func TestTotalPicosecondsSaturates(t *testing.T) {
	ts := Timestamp{Seconds: math.MaxUint32, Fractional: MaxFractionalPicosecs}
	require.Equal(t, uint64(math.MaxUint64), ts.TotalPicoseconds())
}

func TestTotalPicosecondsExact(t *testing.T) {
	ts := Timestamp{Seconds: 2, Fractional: 500}
	require.Equal(t, uint64(2)*PicosecondsPerSecond+500, ts.TotalPicoseconds())
}

func TestAddDurationHandlesMinInt64(t *testing.T) {
	ts := Timestamp{Seconds: math.MaxUint32, Fractional: 0}
	require.NotPanics(t, func() {
		_ = ts.AddDuration(math.MinInt64)
	})
}

func TestAddDurationSaturatesBelowZero(t *testing.T) {
	ts := Timestamp{Seconds: 0, Fractional: 0}
	got := ts.AddDuration(-time.Second)
	require.Equal(t, Timestamp{}, got)
}

func TestSubDurationRoundTrips(t *testing.T) {
	ts := Timestamp{Seconds: 100, Fractional: 0}
	got := ts.AddDuration(5 * time.Second).SubDuration(5 * time.Second)
	require.Equal(t, ts, got)
}

func TestTimestampDiff(t *testing.T) {
	a := Timestamp{Seconds: 10, Fractional: 0}
	b := Timestamp{Seconds: 11, Fractional: 500_000_000_000}
	require.Equal(t, 1500*time.Millisecond, a.Diff(b))
}

func TestNewTimestampFromTimeClampsNegative(t *testing.T) {
	got := NewTimestampFromTime(time.Unix(-5, 0))
	require.Equal(t, Timestamp{}, got)
}
