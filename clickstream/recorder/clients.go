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
	"github.com/0xsoniclabs/clickstream/clickstream/encoder"
	"github.com/0xsoniclabs/clickstream/clickstream/sampler"
	"github.com/cockroachdb/errors"
)

// ErrNoClients is returned when a pass emitted no client, leaving relative
// frequencies undefined.
var ErrNoClients = errors.New("no clients emitted; input matched no rows")

// Normalization selects the denominator of relative frequencies.
type Normalization string

const (
	// NormalizeByCounter divides by the sum of all emission counters, so
	// frequencies always sum to one.
	NormalizeByCounter Normalization = "counter"
	// NormalizeByClients divides by the number of emitted clients. Thinned
	// tokens make these frequencies sum to less than one.
	NormalizeByClients Normalization = "clients"
)

// tokenState is the per-token state of a pass.
type tokenState struct {
	emitted uint64 // emission counter, bounded by the cap
	triehh  string // cached encodings shared by all clients of the token
	sfp     string
	thinned uint64 // rejected occurrences
}

// ClientStats summarizes a pass.
type ClientStats struct {
	Clients   uint64 // emitted clients
	Tokens    uint64 // distinct tokens
	Counted   uint64 // sum of emission counters
	Thinned   uint64 // rejected occurrences
	Ambiguous uint64 // distinct tokens containing the terminator
}

// Clients is the state of a single preprocessing pass: the emission counters
// and the two aligned client sequences.
type Clients struct {
	sampler sampler.Sampler
	encoder *encoder.Encoder
	tokens  map[string]*tokenState
	triehh  []string
	sfp     []string
	stats   ClientStats
}

// NewClients creates an empty pass state.
func NewClients(s sampler.Sampler, e *encoder.Encoder) *Clients {
	return &Clients{
		sampler: s,
		encoder: e,
		tokens:  map[string]*tokenState{},
	}
}

// Add offers count occurrences of token to the sampler and appends a client
// to both sequences for every emitted occurrence.
func (c *Clients) Add(token string, count uint64) {
	if count == 0 {
		return
	}
	state, ok := c.tokens[token]
	if !ok {
		triehh, sfp := c.encoder.Encode(token)
		state = &tokenState{triehh: triehh, sfp: sfp}
		c.tokens[token] = state
		c.stats.Tokens++
		if c.encoder.Ambiguous(token) {
			c.stats.Ambiguous++
		}
	}
	before := state.emitted
	emitted := c.sampler.OfferN(&state.emitted, count)
	for i := uint64(0); i < emitted; i++ {
		c.triehh = append(c.triehh, state.triehh)
		c.sfp = append(c.sfp, state.sfp)
	}
	c.stats.Counted = c.stats.Counted - before + state.emitted
	c.stats.Clients += emitted
	state.thinned += count - emitted
	c.stats.Thinned += count - emitted
}

// TrieHH returns the terminator-suffixed clients in emission order.
func (c *Clients) TrieHH() []string {
	return c.triehh
}

// SFP returns the fixed-width clients, aligned with TrieHH.
func (c *Clients) SFP() []string {
	return c.sfp
}

// Len returns the number of emitted clients.
func (c *Clients) Len() int {
	return len(c.triehh)
}

// Emitted returns the emission counter of a token.
func (c *Clients) Emitted(token string) uint64 {
	if state, ok := c.tokens[token]; ok {
		return state.emitted
	}
	return 0
}

// Thinned returns the number of rejected occurrences of a token.
func (c *Clients) Thinned(token string) uint64 {
	if state, ok := c.tokens[token]; ok {
		return state.thinned
	}
	return 0
}

// Stats returns the pass summary.
func (c *Clients) Stats() ClientStats {
	return c.stats
}

// Frequencies computes the relative frequency of every token from its
// emission counter.
func (c *Clients) Frequencies(base Normalization) (map[string]float64, error) {
	var total uint64
	switch base {
	case NormalizeByCounter:
		total = c.stats.Counted
	case NormalizeByClients:
		total = uint64(len(c.triehh))
	default:
		return nil, errors.Newf("unknown normalization %q", base)
	}
	if total == 0 {
		return nil, ErrNoClients
	}
	freq := make(map[string]float64, len(c.tokens))
	for token, state := range c.tokens {
		freq[token] = float64(state.emitted) / float64(total)
	}
	return freq, nil
}
