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

package encoder

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

var ErrInvalidWidth = errors.New("encoder: width must be greater than zero")

// Encoder produces the two client encodings of a token: the TrieHH form with
// a terminator appended and the fixed-width SFP form.
type Encoder struct {
	width      int
	terminator string
	filler     string
}

// New creates an encoder for fixed-width clients of the given width.
func New(width int, terminator, filler rune) (*Encoder, error) {
	if width <= 0 {
		return nil, errors.Wrapf(ErrInvalidWidth, "got %d", width)
	}
	return &Encoder{
		width:      width,
		terminator: string(terminator),
		filler:     string(filler),
	}, nil
}

// Terminated appends the terminator to the token.
func (e *Encoder) Terminated(token string) string {
	return token + e.terminator
}

// FixedWidth cuts the token to the encoder width or pads it with the filler.
// Width is measured in characters, not bytes.
func (e *Encoder) FixedWidth(token string) string {
	n := 0
	for i := range token {
		if n == e.width {
			return token[:i]
		}
		n++
	}
	if n == e.width {
		return token
	}
	return token + strings.Repeat(e.filler, e.width-n)
}

// Encode returns both encodings of the token.
func (e *Encoder) Encode(token string) (terminated string, fixed string) {
	return e.Terminated(token), e.FixedWidth(token)
}

// Ambiguous reports whether the token contains the terminator, in which case
// its TrieHH client cannot be told apart from a shorter token.
func (e *Encoder) Ambiguous(token string) bool {
	return strings.Contains(token, e.terminator)
}

// Width returns the length of fixed-width clients in characters.
func (e *Encoder) Width() int {
	return e.width
}

// CharLen returns the length of s in characters.
func CharLen(s string) int {
	return utf8.RuneCountInString(s)
}
