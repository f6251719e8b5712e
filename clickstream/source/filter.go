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

package source

import (
	"math"
	"unicode/utf8"

	"github.com/holiman/uint256"
)

// NumFields is the number of fields of a clickstream row.
const NumFields = 4

// Record is a well-formed clickstream row.
type Record struct {
	Prior   string
	Current string
	Kind    string
	Count   uint64 // clamped to the cap if capping is enabled
}

// FilterStats counts the fate of the rows seen by a filter.
type FilterStats struct {
	Rows      uint64 // rows inspected
	Malformed uint64 // wrong field count, invalid UTF-8 or unparsable count
	Skipped   uint64 // kind does not match
	Matched   uint64 // rows forwarded
	Clamped   uint64 // matched rows whose count exceeded the cap
}

// Filter keeps rows with four fields and a matching kind, and clamps their
// count to the cap.
type Filter struct {
	kind  string // empty matches every kind
	cap   uint64 // zero disables clamping
	stats FilterStats
}

// NewFilter creates a row filter. An empty kind keeps every row; a zero cap
// disables clamping.
func NewFilter(kind string, cap uint64) *Filter {
	return &Filter{kind: kind, cap: cap}
}

// Accept converts raw fields into a record, reporting false if the row is
// malformed or of another kind.
func (f *Filter) Accept(fields []string) (Record, bool) {
	f.stats.Rows++
	if len(fields) != NumFields {
		f.stats.Malformed++
		return Record{}, false
	}
	for _, field := range fields {
		if !utf8.ValidString(field) {
			f.stats.Malformed++
			return Record{}, false
		}
	}
	if f.kind != "" && fields[2] != f.kind {
		f.stats.Skipped++
		return Record{}, false
	}
	count, ok := parseCount(fields[3])
	if !ok {
		f.stats.Malformed++
		return Record{}, false
	}
	if f.cap > 0 && count > f.cap {
		count = f.cap
		f.stats.Clamped++
	}
	f.stats.Matched++
	return Record{
		Prior:   fields[0],
		Current: fields[1],
		Kind:    fields[2],
		Count:   count,
	}, true
}

// Stats returns the row counters collected so far.
func (f *Filter) Stats() FilterStats {
	return f.stats
}

// parseCount reads a non-negative decimal count. Counts beyond 64 bits
// saturate, since they are clamped or unmaterializable anyway.
func parseCount(s string) (uint64, bool) {
	if s == "" || s[0] == '-' {
		return 0, false
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return 0, false
	}
	if !v.IsUint64() {
		return math.MaxUint64, true
	}
	return v.Uint64(), true
}
