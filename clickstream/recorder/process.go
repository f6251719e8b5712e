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
	"time"

	"github.com/0xsoniclabs/clickstream/clickstream/encoder"
	"github.com/0xsoniclabs/clickstream/clickstream/sampler"
	"github.com/0xsoniclabs/clickstream/clickstream/source"
	"github.com/0xsoniclabs/clickstream/config"
	"github.com/0xsoniclabs/clickstream/logger"
	"github.com/cockroachdb/errors"
)

// Result is the outcome of a preprocessing pass.
type Result struct {
	Input       string
	Clients     *Clients
	Frequencies map[string]float64
	Rows        source.FilterStats
	Elapsed     time.Duration
	Terminator  rune
	Filler      rune
}

const symbolCollisionWarning = "Terminator and filler are both %q; padded SFP clients cannot be told apart from tokens ending in it"

// Process runs a single pass over the reader, feeding every matching row into
// the clients.
func Process(r source.Reader, filter *source.Filter, clients *Clients, progress *Progress) error {
	for r.Next() {
		progress.Report(r.Line())
		record, ok := filter.Accept(r.Fields())
		if !ok {
			continue
		}
		clients.Add(record.Current, record.Count)
	}
	return r.Err()
}

// Preprocess converts the configured clickstream dump into clients and
// relative frequencies. Nothing is written; see the artifact package.
func Preprocess(cfg *config.Config, log logger.Logger) (result *Result, err error) {
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := sampler.New(sampler.Mode(cfg.Thinning), cfg.EffectiveCap(), cfg.RandomSeed)
	if err != nil {
		return nil, err
	}
	e, err := encoder.New(cfg.MaxLen, cfg.TerminatorRune(), cfg.FillerRune())
	if err != nil {
		return nil, err
	}

	path := cfg.InputPath()
	r, err := source.NewFileReader(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, r.Close())
	}()

	log.Noticef("Read clickstream %v", path)
	start := time.Now()
	filter := source.NewFilter(cfg.Kind, cfg.EffectiveCap())
	clients := NewClients(s, e)
	if err = Process(r, filter, clients, NewProgress(log, cfg.ProgressInterval)); err != nil {
		return nil, errors.Wrapf(err, "cannot process %v", path)
	}

	rows := filter.Stats()
	freq, err := clients.Frequencies(Normalization(cfg.Normalize))
	if err != nil {
		return nil, errors.Wrapf(err, "%v: %d rows read, %d malformed, %d of other kind than %q",
			path, rows.Rows, rows.Malformed, rows.Skipped, cfg.Kind)
	}
	return &Result{
		Input:       path,
		Clients:     clients,
		Frequencies: freq,
		Rows:        rows,
		Elapsed:     time.Since(start),
		Terminator:  cfg.TerminatorRune(),
		Filler:      cfg.FillerRune(),
	}, nil
}

// LogSummary reports the size of the generated client population.
func LogSummary(log logger.Logger, result *Result) {
	p := newNumberPrinter()
	stats := result.Clients.Stats()
	hours, minutes, seconds := logger.ParseTime(result.Elapsed)
	log.Noticef("Processed %s rows (%s matched, %s malformed) in %vh %vm %vs",
		p.Sprintf("%d", result.Rows.Rows), p.Sprintf("%d", result.Rows.Matched), p.Sprintf("%d", result.Rows.Malformed),
		hours, minutes, seconds)
	log.Noticef("Synthetic clients: %s", p.Sprintf("%d", stats.Clients))
	log.Noticef("Unique tokens    : %s", p.Sprintf("%d", stats.Tokens))
	if stats.Thinned > 0 {
		log.Infof("Thinned occurrences: %s", p.Sprintf("%d", stats.Thinned))
	}
	if stats.Ambiguous > 0 {
		log.Warningf("%s tokens contain the terminator symbol; their TrieHH clients are ambiguous", p.Sprintf("%d", stats.Ambiguous))
	}
	if result.Terminator != 0 && result.Terminator == result.Filler {
		log.Warningf(symbolCollisionWarning, string(result.Terminator))
	}
}
