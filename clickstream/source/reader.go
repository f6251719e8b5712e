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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/0xsoniclabs/clickstream/utils"
	"github.com/cockroachdb/errors"
)

// maxLineSize bounds a single dump line; page titles are far shorter.
const maxLineSize = 1 << 20

var (
	ErrInputMissing  = errors.New("clickstream input does not exist")
	ErrInputIsFolder = errors.New("clickstream input is a directory")
)

// Reader iterates over the raw TAB-separated rows of a clickstream dump.
// Rows are not validated; see Filter.
type Reader interface {
	// Next advances to the following line and reports whether one exists.
	Next() bool
	// Fields returns the TAB-separated fields of the current line.
	// The slice is only valid until the next call of Next.
	Fields() []string
	// Line returns the number of lines read so far.
	Line() uint64
	// Err returns the first error encountered while reading.
	Err() error
	Close() error
}

// NewFileReader opens a clickstream dump. Gzip and zstd compressed files are
// decompressed transparently.
func NewFileReader(filename string) (Reader, error) {
	stat, err := os.Stat(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrInputMissing, "%s", filename)
		}
		return nil, fmt.Errorf("could not stat file: %s; %w", filename, err)
	}
	if stat.IsDir() {
		return nil, errors.Wrapf(ErrInputIsFolder, "%s", filename)
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open clickstream file: %s; %w", filename, err)
	}
	r, err := NewReader(file)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("could not read clickstream file: %s; %w", filename, err), file.Close())
	}
	return r, nil
}

// NewReader reads a clickstream from an arbitrary stream. Closing the reader
// closes rc.
func NewReader(rc io.ReadCloser) (Reader, error) {
	stream, _, err := utils.Decompress(rc)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &lineReader{
		scanner: scanner,
		stream:  stream,
		closer:  rc,
	}, nil
}

type lineReader struct {
	scanner *bufio.Scanner
	stream  io.Closer
	closer  io.Closer
	fields  []string
	line    uint64
}

func (r *lineReader) Next() bool {
	if !r.scanner.Scan() {
		r.fields = nil
		return false
	}
	r.line++
	text := strings.TrimSuffix(r.scanner.Text(), "\r")
	r.fields = strings.Split(text, "\t")
	return true
}

func (r *lineReader) Fields() []string {
	return r.fields
}

func (r *lineReader) Line() uint64 {
	return r.line
}

func (r *lineReader) Err() error {
	if err := r.scanner.Err(); err != nil {
		return fmt.Errorf("failed reading line %d; %w", r.line+1, err)
	}
	return nil
}

func (r *lineReader) Close() error {
	return errors.Join(r.stream.Close(), r.closer.Close())
}
