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

package recorder

import (
	"strings"
	"testing"

	"github.com/0xsoniclabs/clickstream/clickstream/encoder"
	"github.com/0xsoniclabs/clickstream/clickstream/sampler"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClients(t *testing.T, cap uint64, seed int64) *Clients {
	t.Helper()
	s, err := sampler.New(sampler.Exact, cap, seed)
	require.NoError(t, err)
	e, err := encoder.New(4, '$', '$')
	require.NoError(t, err)
	return NewClients(s, e)
}

func TestClients_UncappedScenario(t *testing.T) {
	// given
	c := newTestClients(t, 0, 0)

	// when
	c.Add("A", 3)
	c.Add("B", 1)

	// then
	assert.Equal(t, []string{"A$", "A$", "A$", "B$"}, c.TrieHH())
	assert.Equal(t, []string{"A$$$", "A$$$", "A$$$", "B$$$"}, c.SFP())
	for _, base := range []Normalization{NormalizeByCounter, NormalizeByClients} {
		freq, err := c.Frequencies(base)
		require.NoError(t, err)
		assert.Equal(t, map[string]float64{"A": 0.75, "B": 0.25}, freq)
	}
	assert.Equal(t, uint64(3), c.Emitted("A"))
	assert.Equal(t, uint64(1), c.Emitted("B"))
	assert.Equal(t, uint64(0), c.Emitted("C"))
}

func TestClients_ZeroCountIsNoOp(t *testing.T) {
	c := newTestClients(t, 10, 0)

	c.Add("A", 0)

	assert.Equal(t, 0, c.Len())
	assert.Equal(t, ClientStats{}, c.Stats())
	_, err := c.Frequencies(NormalizeByCounter)
	assert.True(t, errors.Is(err, ErrNoClients))
}

func TestClients_NoClientsIsAnError(t *testing.T) {
	c := newTestClients(t, 0, 0)

	for _, base := range []Normalization{NormalizeByCounter, NormalizeByClients} {
		_, err := c.Frequencies(base)
		assert.True(t, errors.Is(err, ErrNoClients))
	}
}

func TestClients_UnknownNormalization(t *testing.T) {
	c := newTestClients(t, 0, 0)
	c.Add("A", 1)

	_, err := c.Frequencies("median")
	assert.Error(t, err)
}

func TestClients_SequencesStayAligned(t *testing.T) {
	c := newTestClients(t, 3, 11)
	tokens := []string{"Apollo", "Io", "Moon", "Apollo", "Europa", "Io", "Apollo"}
	for i := 0; i < 200; i++ {
		c.Add(tokens[i%len(tokens)], uint64(i%4))
	}

	require.Equal(t, len(c.TrieHH()), len(c.SFP()))
	require.Equal(t, c.Len(), len(c.SFP()))
	e, err := encoder.New(4, '$', '$')
	require.NoError(t, err)
	for i, client := range c.TrieHH() {
		token := strings.TrimSuffix(client, "$")
		assert.Equal(t, e.FixedWidth(token), c.SFP()[i])
	}
}

func TestClients_CapBoundsCounterAndFrequencies(t *testing.T) {
	const k = 10
	c := newTestClients(t, k, 5)

	// rows arrive clamped to the cap
	for i := 0; i < 100_000; i++ {
		c.Add("Main_Page", k)
	}
	c.Add("Rare", 2)

	stats := c.Stats()
	assert.Equal(t, uint64(k), c.Emitted("Main_Page"))
	assert.Equal(t, uint64(2), c.Emitted("Rare"))
	assert.Greater(t, c.Len(), 100*k)
	assert.Equal(t, uint64(k+2), stats.Counted)
	assert.Equal(t, uint64(c.Len()), stats.Clients)
	assert.Equal(t, uint64(100_000*k+2), stats.Clients+stats.Thinned)
	assert.Equal(t, stats.Thinned, c.Thinned("Main_Page"))

	freq, err := c.Frequencies(NormalizeByCounter)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, freq["Main_Page"]+freq["Rare"], 1e-12)
	assert.InDelta(t, float64(k)/float64(k+2), freq["Main_Page"], 1e-12)

	legacy, err := c.Frequencies(NormalizeByClients)
	require.NoError(t, err)
	assert.InDelta(t, float64(k)/float64(c.Len()), legacy["Main_Page"], 1e-12)
	assert.Less(t, legacy["Main_Page"]+legacy["Rare"], 1.0)
}

func TestClients_CountsAmbiguousTokensOnce(t *testing.T) {
	c := newTestClients(t, 0, 0)

	c.Add("US$", 2)
	c.Add("US$", 1)
	c.Add("Dollar", 1)

	assert.Equal(t, uint64(1), c.Stats().Ambiguous)
	assert.Equal(t, uint64(2), c.Stats().Tokens)
}
