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

package utils

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies the encoding of a byte stream.
type Compression int

const (
	NoCompression Compression = iota
	GzipCompression
	ZstdCompression
)

func (c Compression) String() string {
	switch c {
	case GzipCompression:
		return "gzip"
	case ZstdCompression:
		return "zstd"
	default:
		return "none"
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

const readBufferSize = 1 << 16

// Decompress wraps r with a gzip or zstd decoder if the stream starts with
// the corresponding magic number; other streams are passed through.
func Decompress(r io.Reader) (io.ReadCloser, Compression, error) {
	br := bufio.NewReaderSize(r, readBufferSize)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, NoCompression, fmt.Errorf("cannot inspect stream header; %w", err)
	}
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, GzipCompression, fmt.Errorf("cannot create gzip reader; %w", err)
		}
		return zr, GzipCompression, nil
	case bytes.HasPrefix(head, zstdMagic):
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, ZstdCompression, fmt.Errorf("cannot create zstd reader; %w", err)
		}
		return zr.IOReadCloser(), ZstdCompression, nil
	default:
		return io.NopCloser(br), NoCompression, nil
	}
}
