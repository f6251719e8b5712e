// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package statistics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatistics_RankOrdersByFrequencyThenToken(t *testing.T) {
	freq := map[string]float64{"B": 0.25, "A": 0.25, "C": 0.5}
	assert.Equal(t, []TokenFrequency{{"C", 0.5}, {"A", 0.25}, {"B", 0.25}}, Rank(freq))
}

func TestStatistics_TopN(t *testing.T) {
	freq := map[string]float64{"A": 0.1, "B": 0.6, "C": 0.3}
	tests := []struct {
		n    int
		want []string
	}{
		{n: 0, want: []string{}},
		{n: 2, want: []string{"B", "C"}},
		{n: 5, want: []string{"B", "C", "A"}},
		{n: -1, want: []string{"B", "C", "A"}},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("n=%d", test.n), func(t *testing.T) {
			got := []string{}
			for _, tf := range TopN(freq, test.n) {
				got = append(got, tf.Token)
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestStatistics_Summarize(t *testing.T) {
	s := Summarize(map[string]float64{"A": 0.5, "B": 0.25, "C": 0.25})
	assert.Equal(t, 3, s.Tokens)
	assert.InDelta(t, 1.0, s.Mass, 1e-12)
	assert.InDelta(t, 1.5, s.Entropy, 1e-12)
	assert.Equal(t, 0.5, s.Top)

	// entropy is computed on the renormalized table
	s = Summarize(map[string]float64{"A": 0.25, "B": 0.25})
	assert.InDelta(t, 0.5, s.Mass, 1e-12)
	assert.InDelta(t, 1.0, s.Entropy, 1e-12)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestStatistics_RankECDFSingleToken(t *testing.T) {
	ecdf, err := RankECDF(map[string]float64{"A": 1}, NumECDFPoints)
	require.NoError(t, err)
	assert.Equal(t, [][2]float64{{0, 0}, {0.5, 1}, {1, 1}}, ecdf)
}

func TestStatistics_RankECDFIsValidAndCompressed(t *testing.T) {
	// Zipf-like table with many more tokens than ECDF points
	freq := map[string]float64{}
	total := 0.0
	for i := 1; i <= 5000; i++ {
		f := 1.0 / float64(i)
		freq[fmt.Sprintf("token-%d", i)] = f
		total += f
	}
	for token := range freq {
		freq[token] /= total
	}

	ecdf, err := RankECDF(freq, NumECDFPoints)
	require.NoError(t, err)
	assert.NoError(t, Check(ecdf))
	assert.LessOrEqual(t, len(ecdf), NumECDFPoints)
	// the head dominates a Zipf distribution
	assert.Greater(t, Coverage(ecdf, 0.1), 0.6)
}

func TestStatistics_RankECDFRenormalizes(t *testing.T) {
	ecdf, err := RankECDF(map[string]float64{"A": 0.3, "B": 0.1}, NumECDFPoints)
	require.NoError(t, err)
	require.Len(t, ecdf, 4)
	assert.InDelta(t, 0.75, ecdf[1][1], 1e-12)
	assert.Equal(t, [2]float64{1, 1}, ecdf[3])
}

func TestStatistics_RankECDFErrors(t *testing.T) {
	_, err := RankECDF(nil, NumECDFPoints)
	assert.Error(t, err)
	_, err = RankECDF(map[string]float64{"A": 0}, NumECDFPoints)
	assert.Error(t, err)
}

func TestStatistics_Check(t *testing.T) {
	tests := []struct {
		name string
		ecdf [][2]float64
		ok   bool
	}{
		{name: "valid", ecdf: [][2]float64{{0, 0}, {0.5, 0.8}, {1, 1}}, ok: true},
		{name: "too short", ecdf: [][2]float64{{0, 0}}},
		{name: "bad start", ecdf: [][2]float64{{0.1, 0}, {1, 1}}},
		{name: "bad end", ecdf: [][2]float64{{0, 0}, {1, 0.9}}},
		{name: "decreasing", ecdf: [][2]float64{{0, 0}, {0.5, 0.8}, {0.6, 0.7}, {1, 1}}},
		{name: "repeated x", ecdf: [][2]float64{{0, 0}, {0.5, 0.5}, {0.5, 0.6}, {1, 1}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := Check(test.ecdf)
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStatistics_Coverage(t *testing.T) {
	ecdf := [][2]float64{{0, 0}, {0.5, 0.8}, {1, 1}}
	assert.Equal(t, 0.0, Coverage(ecdf, -1))
	assert.InDelta(t, 0.4, Coverage(ecdf, 0.25), 1e-12)
	assert.InDelta(t, 0.9, Coverage(ecdf, 0.75), 1e-12)
	assert.Equal(t, 1.0, Coverage(ecdf, 2))
}
