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

// Package sampler decides which occurrences of a token become clients.
//
// A capped sampler keeps one counter per token. Below the cap k every
// occurrence is emitted and counted. Once the counter reaches k, an occurrence
// is rejected with probability k/(k+1); otherwise the counter is decremented
// and the check repeats, so the occurrence is emitted and the counter returns
// to k. Emitted clients are never withdrawn: the cap bounds the counter, and
// with it the reported frequency of a token, while the number of clients of a
// frequent token keeps growing at rate 1/(k+1). This is a thinning rule, not
// reservoir sampling; no sample buffer is kept.
package sampler

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

var ErrInvalidCap = errors.New("sampler: cap must be greater than zero")

// Sampler decides whether occurrences of a token are emitted. The counter is
// the emission counter of the token and is updated in place.
type Sampler interface {
	// Offer decides a single occurrence.
	Offer(counter *uint64) bool
	// OfferN decides n occurrences and returns how many are emitted.
	OfferN(counter *uint64, n uint64) uint64
}

// Unlimited emits every occurrence.
type Unlimited struct{}

func (Unlimited) Offer(counter *uint64) bool {
	*counter++
	return true
}

func (Unlimited) OfferN(counter *uint64, n uint64) uint64 {
	*counter += n
	return n
}

// Thinner is the capped sampler deciding occurrence by occurrence.
type Thinner struct {
	k      uint64
	reject float64 // k/(k+1)
	src    rand.Source
	rng    *rand.Rand
}

// NewThinner creates a capped sampler seeded for reproducible runs.
func NewThinner(k uint64, seed int64) (*Thinner, error) {
	if k == 0 {
		return nil, ErrInvalidCap
	}
	src := rand.NewSource(uint64(seed))
	return &Thinner{
		k:      k,
		reject: float64(k) / float64(k+1),
		src:    src,
		rng:    rand.New(src),
	}, nil
}

// Cap returns the ceiling of the emission counter.
func (t *Thinner) Cap() uint64 {
	return t.k
}

func (t *Thinner) Offer(counter *uint64) bool {
	for *counter >= t.k {
		if t.rng.Float64() < t.reject {
			return false
		}
		*counter--
	}
	*counter++
	return true
}

func (t *Thinner) OfferN(counter *uint64, n uint64) uint64 {
	var emitted uint64
	for i := uint64(0); i < n; i++ {
		if t.Offer(counter) {
			emitted++
		}
	}
	return emitted
}

// BinomialThinner makes the same decisions as Thinner in closed form: the
// occurrences filling the counter up to the cap are emitted, and the number
// of emitted occurrences among the remaining ones is drawn from
// Binomial(remaining, 1/(k+1)). Draws differ from Thinner for the same seed;
// the distribution of emitted clients and counters does not.
type BinomialThinner struct {
	*Thinner
}

// NewBinomialThinner creates a capped sampler drawing whole rows at once.
func NewBinomialThinner(k uint64, seed int64) (*BinomialThinner, error) {
	t, err := NewThinner(k, seed)
	if err != nil {
		return nil, err
	}
	return &BinomialThinner{t}, nil
}

func (t *BinomialThinner) OfferN(counter *uint64, n uint64) uint64 {
	var emitted uint64
	if *counter < t.k {
		emitted = min(n, t.k-*counter)
		*counter += emitted
		n -= emitted
	}
	if n == 0 {
		return emitted
	}
	b := distuv.Binomial{
		N:   float64(n),
		P:   1 / float64(t.k+1),
		Src: t.src,
	}
	return emitted + uint64(b.Rand())
}

// New creates the sampler for a run. A zero cap disables capping.
func New(mode Mode, cap uint64, seed int64) (Sampler, error) {
	if cap == 0 {
		return Unlimited{}, nil
	}
	switch mode {
	case Exact:
		t, err := NewThinner(cap, seed)
		if err != nil {
			return nil, err
		}
		return t, nil
	case Binomial:
		t, err := NewBinomialThinner(cap, seed)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, errors.Newf("sampler: unknown mode %q", mode)
	}
}

// Mode selects how capped tokens are thinned.
type Mode string

const (
	Exact    Mode = "exact"
	Binomial Mode = "binomial"
)
