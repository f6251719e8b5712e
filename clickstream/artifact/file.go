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

package artifact

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// filePermissions of written artifacts; temporary files start as 0600.
const filePermissions os.FileMode = 0o644

// atomicFile buffers writes into a hidden temporary file next to its
// destination, optionally gzip compressed. The destination only appears on
// Commit.
type atomicFile struct {
	dest   string
	tmp    *os.File
	buffer *bufio.Writer
	gzip   *gzip.Writer
}

func createAtomic(dest string, compress bool) (*atomicFile, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create temporary file for %v; %w", dest, err)
	}
	f := &atomicFile{dest: dest, tmp: tmp}
	if compress {
		f.gzip = gzip.NewWriter(tmp)
		f.buffer = bufio.NewWriter(f.gzip)
	} else {
		f.buffer = bufio.NewWriter(tmp)
	}
	return f, nil
}

func (f *atomicFile) Write(p []byte) (int, error) {
	return f.buffer.Write(p)
}

func (f *atomicFile) WriteString(s string) (int, error) {
	return f.buffer.WriteString(s)
}

// Commit flushes all layers and moves the temporary file into place.
func (f *atomicFile) Commit() error {
	err := f.buffer.Flush()
	if f.gzip != nil {
		err = errors.Join(err, f.gzip.Close())
	}
	if err == nil {
		err = f.tmp.Chmod(filePermissions)
	}
	if err == nil {
		err = f.tmp.Sync()
	}
	err = errors.Join(err, f.tmp.Close())
	if err == nil {
		err = os.Rename(f.tmp.Name(), f.dest)
	}
	if err != nil {
		_ = os.Remove(f.tmp.Name())
		return fmt.Errorf("cannot write %v; %w", f.dest, err)
	}
	return nil
}

// Abort discards the temporary file.
func (f *atomicFile) Abort() {
	_ = f.tmp.Close()
	_ = os.Remove(f.tmp.Name())
}

var _ io.StringWriter = (*atomicFile)(nil)
