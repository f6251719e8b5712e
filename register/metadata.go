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

package register

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
	"sort"
	"strconv"

	"github.com/0xsoniclabs/clickstream/utils"
)

const (
	createMetadataTbl = `
CREATE TABLE IF NOT EXISTS metadata (
	runId TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT
)`
	insertMetadata = `INSERT INTO metadata (runId, key, value) VALUES (?, ?, ?)`
)

// RunMetadata is the key-value description of a run stored in the registry.
type RunMetadata struct {
	RunId string
	Meta  map[string]string
	Ps    *utils.Printers
}

// MakeRunMetadata collects the settings of a run and the environment
// reported by fetchEnv, and prepares their insertion into the sqlite3
// database at connection.
func MakeRunMetadata(connection string, id *RunIdentity, fetchEnv func() (map[string]string, error)) (*RunMetadata, error) {
	runId, err := id.GetId()
	if err != nil {
		return nil, err
	}
	meta, err := id.fetchConfigInfo()
	if err != nil {
		return nil, err
	}
	env, err := fetchEnv()
	if err != nil {
		return nil, fmt.Errorf("cannot fetch environment; %w", err)
	}
	for k, v := range env {
		meta[k] = v
	}

	rm := &RunMetadata{
		RunId: runId,
		Meta:  meta,
		Ps:    utils.NewPrinters(),
	}
	if _, err = rm.Ps.AddPrinterToSqlite3(rm.sqlite3(connection)); err != nil {
		return nil, err
	}
	return rm, nil
}

// Add records further entries, e.g. the statistics of a finished pass.
func (rm *RunMetadata) Add(entries map[string]string) {
	for k, v := range entries {
		rm.Meta[k] = v
	}
}

func (rm *RunMetadata) Print() error {
	return rm.Ps.Print()
}

func (rm *RunMetadata) Close() error {
	return rm.Ps.Close()
}

func (rm *RunMetadata) sqlite3(conn string) (string, string, string, func() [][]any) {
	return conn, createMetadataTbl, insertMetadata,
		func() [][]any {
			keys := make([]string, 0, len(rm.Meta))
			for k := range rm.Meta {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			values := make([][]any, 0, len(keys))
			for _, k := range keys {
				values = append(values, []any{rm.RunId, k, rm.Meta[k]})
			}
			return values
		}
}

// FetchHostInfo describes the machine executing the run.
func FetchHostInfo() (map[string]string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("cannot read hostname; %w", err)
	}
	username := ""
	if u, err := user.Current(); err == nil {
		username = u.Username
	}
	return map[string]string{
		"Hostname":  hostname,
		"User":      username,
		"Os":        runtime.GOOS,
		"Arch":      runtime.GOARCH,
		"NumCpus":   strconv.Itoa(runtime.NumCPU()),
		"GoVersion": runtime.Version(),
	}, nil
}
