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

// Package statistics derives rank-frequency statistics from a word frequency
// table.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// NumECDFPoints is the number of points kept in a compressed ECDF.
const NumECDFPoints = 300

// TokenFrequency is a token with its relative frequency.
type TokenFrequency struct {
	Token     string
	Frequency float64
}

// Rank sorts the tokens by decreasing frequency. Ties are ordered by token.
func Rank(freq map[string]float64) []TokenFrequency {
	ranked := make([]TokenFrequency, 0, len(freq))
	for token, f := range freq {
		ranked = append(ranked, TokenFrequency{token, f})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Frequency != ranked[j].Frequency {
			return ranked[i].Frequency > ranked[j].Frequency
		}
		return ranked[i].Token < ranked[j].Token
	})
	return ranked
}

// TopN returns the n most frequent tokens.
func TopN(freq map[string]float64, n int) []TokenFrequency {
	ranked := Rank(freq)
	if n >= 0 && n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// Summary describes the shape of a frequency table.
type Summary struct {
	Tokens  int
	Mass    float64 // sum of all frequencies
	Entropy float64 // Shannon entropy in bits of the renormalized table
	Top     float64 // frequency of the most frequent token
}

// Summarize computes the summary of a frequency table.
func Summarize(freq map[string]float64) Summary {
	if len(freq) == 0 {
		return Summary{}
	}
	p := make([]float64, 0, len(freq))
	for _, f := range freq {
		p = append(p, f)
	}
	mass := floats.Sum(p)
	top := floats.Max(p)
	if mass > 0 {
		floats.Scale(1/mass, p)
	}
	return Summary{
		Tokens:  len(freq),
		Mass:    mass,
		Entropy: stat.Entropy(p) / math.Ln2,
		Top:     top,
	}
}

// RankECDF computes the cumulative share of clients over the token ranks.
// The rank axis is scaled to [0,1]; rank i of n tokens is at (i+0.5)/n. The
// frequencies are renormalized so the curve ends at (1,1), and the curve is
// compressed to at most numPoints points with the Visvalingam-Whyatt algorithm.
func RankECDF(freq map[string]float64, numPoints int) ([][2]float64, error) {
	ranked := Rank(freq)
	n := len(ranked)
	if n == 0 {
		return nil, fmt.Errorf("cannot compute ECDF of an empty frequency table")
	}
	mass := 0.0
	for _, tf := range ranked {
		mass += tf.Frequency
	}
	if mass <= 0 {
		return nil, fmt.Errorf("cannot compute ECDF; total frequency is %v", mass)
	}

	ls := orb.LineString{orb.Point{0.0, 0.0}}
	sum, c := 0.0, 0.0
	for i, tf := range ranked {
		// Kahan summation; the tail consists of many tiny frequencies
		y := tf.Frequency/mass - c
		t := sum + y
		c = (t - sum) - y
		sum = t
		ls = append(ls, orb.Point{(float64(i) + 0.5) / float64(n), math.Min(sum, 1.0)})
	}
	ls = append(ls, orb.Point{1.0, 1.0})

	compressed := simplify.VisvalingamKeep(numPoints).Simplify(ls).(orb.LineString)
	ecdf := make([][2]float64, len(compressed))
	for i := range compressed {
		ecdf[i] = [2]float64(compressed[i])
	}
	if err := Check(ecdf); err != nil {
		return nil, fmt.Errorf("cannot create valid ECDF; %w", err)
	}
	return ecdf, nil
}

// Check whether the piecewise linear function is valid as a CDF.
// The function must start at (0,0) and end at (1,1).
// The points of the function must be monotonically increasing.
func Check(f [][2]float64) error {
	if len(f) < 2 {
		return fmt.Errorf("CDF must have at least start and end point")
	}
	if f[0] != [2]float64{0.0, 0.0} {
		return fmt.Errorf("CDF must start at (0,0), but starts at (%v,%v)", f[0][0], f[0][1])
	}
	last := len(f) - 1
	if f[last] != [2]float64{1.0, 1.0} {
		return fmt.Errorf("CDF must end at (1,1), but ends at (%v,%v)", f[last][0], f[last][1])
	}
	for i := 0; i < last; i++ {
		if f[i][0] >= f[i+1][0] || f[i][1] > f[i+1][1] {
			return fmt.Errorf("CDF points must be monotonically increasing, but point %v (%v,%v) is not smaller than point %v (%v,%v)", i, f[i][0], f[i][1], i+1, f[i+1][0], f[i+1][1])
		}
	}
	return nil
}

// Coverage returns the share of clients covered by the top fraction x of the
// ranked tokens, interpolated on a piecewise linear ECDF.
func Coverage(ecdf [][2]float64, x float64) float64 {
	if x <= 0 {
		return 0.0
	}
	for i := 0; i < len(ecdf)-1; i++ {
		if ecdf[i+1][0] >= x {
			scale := (x - ecdf[i][0]) / (ecdf[i+1][0] - ecdf[i][0])
			return ecdf[i][1] + scale*(ecdf[i+1][1]-ecdf[i][1])
		}
	}
	return 1.0
}
