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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

// Must is a helper function that takes a value of any type and an error.
// If the error is nil, it returns the value; if the error is non-nil, it panics.
func Must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

// Row is a clickstream row (prior, current, type, count) used in tests.
type Row [4]string

// MakeRow builds a well-formed clickstream row.
func MakeRow(prior, current, kind string, count int) Row {
	return Row{prior, current, kind, strconv.Itoa(count)}
}

// FormatRows renders rows as TAB-separated lines.
func FormatRows(rows ...Row) string {
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row[:], "\t"))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CreateTestClickstream writes content into a temporary dump file with the
// given compression and returns its path.
func CreateTestClickstream(t *testing.T, content string, compression Compression) string {
	t.Helper()
	name := "clickstream.tsv"
	switch compression {
	case GzipCompression:
		name += ".gz"
	case ZstdCompression:
		name += ".zst"
	}
	path := filepath.Join(t.TempDir(), name)
	file, err := os.Create(path)
	require.NoError(t, err)

	var w io.WriteCloser
	switch compression {
	case GzipCompression:
		w = gzip.NewWriter(file)
	case ZstdCompression:
		w, err = zstd.NewWriter(file)
		require.NoError(t, err)
	default:
		w = file
	}
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	if w != io.WriteCloser(file) {
		require.NoError(t, file.Close())
	}
	return path
}

// ArgsBuilder helps create []string for CLI testing in a type-safe way
type ArgsBuilder struct {
	args []string
}

func NewArgs(cmd string) *ArgsBuilder {
	return &ArgsBuilder{args: []string{cmd}}
}

func (b *ArgsBuilder) Flag(name string, value interface{}) *ArgsBuilder {
	switch v := value.(type) {
	case string:
		b.args = append(b.args, "--"+name, v)
	case int:
		b.args = append(b.args, "--"+name, strconv.Itoa(v))
	case int64:
		b.args = append(b.args, "--"+name, strconv.FormatInt(v, 10))
	case uint64:
		b.args = append(b.args, "--"+name, strconv.FormatUint(v, 10))
	case bool:
		if v {
			b.args = append(b.args, "--"+name)
		}
	default:
		panic(fmt.Sprintf("unsupported flag type %T", v))
	}
	return b
}

func (b *ArgsBuilder) Arg(value interface{}) *ArgsBuilder {
	switch v := value.(type) {
	case string:
		b.args = append(b.args, v)
	case int:
		b.args = append(b.args, strconv.Itoa(v))
	case bool:
		b.args = append(b.args, strconv.FormatBool(v))
	default:
		panic(fmt.Sprintf("unsupported arg type %T", v))
	}
	return b
}

func (b *ArgsBuilder) Build() []string {
	return b.args
}
