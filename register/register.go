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

// Package register records preprocessing runs in a sqlite3 database: the run
// settings, the host, the pass statistics and a digest of every artifact.
package register

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/0xsoniclabs/clickstream/utils"
	"golang.org/x/crypto/blake2b"
)

const (
	createArtifactsTbl = `
CREATE TABLE IF NOT EXISTS artifacts (
	runId TEXT NOT NULL,
	name TEXT NOT NULL,
	path TEXT NOT NULL,
	size INTEGER NOT NULL,
	digest TEXT NOT NULL
)`
	insertArtifact = `INSERT INTO artifacts (runId, name, path, size, digest) VALUES (?, ?, ?, ?, ?)`
)

// Artifact is a file produced by a run.
type Artifact struct {
	Name   string
	Path   string
	Size   int64
	Digest string // hex encoded BLAKE2b-256
}

// DigestFile computes the BLAKE2b-256 digest of a file.
func DigestFile(path string) (artifact Artifact, err error) {
	file, err := os.Open(path)
	if err != nil {
		return Artifact{}, fmt.Errorf("cannot open artifact %v; %w", path, err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	h, err := blake2b.New256(nil)
	if err != nil {
		return Artifact{}, err
	}
	size, err := io.Copy(h, file)
	if err != nil {
		return Artifact{}, fmt.Errorf("cannot read artifact %v; %w", path, err)
	}
	return Artifact{
		Name:   filepath.Base(path),
		Path:   path,
		Size:   size,
		Digest: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// Register stores a run with its statistics and artifacts in the sqlite3
// database at connection. It returns the id of the run.
func Register(connection string, id *RunIdentity, stats map[string]string, paths []string) (runId string, err error) {
	artifacts := make([]Artifact, 0, len(paths))
	for _, path := range paths {
		a, err := DigestFile(path)
		if err != nil {
			return "", err
		}
		artifacts = append(artifacts, a)
	}

	rm, err := MakeRunMetadata(connection, id, FetchHostInfo)
	if err != nil {
		return "", err
	}
	defer func() {
		err = errors.Join(err, rm.Close())
	}()
	rm.Add(stats)
	if _, err = rm.Ps.AddPrinterToSqlite3(connection, createArtifactsTbl, insertArtifact, func() [][]any {
		values := make([][]any, 0, len(artifacts))
		for _, a := range artifacts {
			values = append(values, []any{rm.RunId, a.Name, a.Path, a.Size, a.Digest})
		}
		return values
	}); err != nil {
		return "", err
	}
	if err = rm.Print(); err != nil {
		return "", fmt.Errorf("cannot register run in %v; %w", connection, err)
	}
	return rm.RunId, nil
}

var _ utils.Printer = (*RunMetadata)(nil)
