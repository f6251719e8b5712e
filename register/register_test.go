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
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/clickstream/config"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_DigestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	a, err := DigestFile(path)
	require.NoError(t, err)
	assert.Equal(t, "empty.json", a.Name)
	assert.Equal(t, int64(0), a.Size)
	assert.Equal(t, "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8", a.Digest)

	_, err = DigestFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRegister_StoresRunAndArtifacts(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "clients_triehh.json")
	second := filepath.Join(dir, "word_frequencies.json")
	require.NoError(t, os.WriteFile(first, []byte("[\"A$\"]"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("{\"A\":1}"), 0o644))
	conn := filepath.Join(dir, "runs.db")

	cfg := config.DefaultConfig()
	cfg.AppName = "clickstream-clients"
	runId, err := Register(conn, MakeRunIdentity(1700000000, cfg), map[string]string{"Clients": "1"}, []string{first, second})
	require.NoError(t, err)
	assert.NotEmpty(t, runId)

	db, err := sqlx.Open("sqlite3", conn)
	require.NoError(t, err)
	defer db.Close()

	var value string
	require.NoError(t, db.Get(&value, "SELECT value FROM metadata WHERE runId = ? AND key = ?", runId, "Clients"))
	assert.Equal(t, "1", value)
	require.NoError(t, db.Get(&value, "SELECT value FROM metadata WHERE runId = ? AND key = ?", runId, "AppName"))
	assert.Equal(t, "clickstream-clients", value)

	type row struct {
		Name   string `db:"name"`
		Size   int64  `db:"size"`
		Digest string `db:"digest"`
	}
	var rows []row
	require.NoError(t, db.Select(&rows, "SELECT name, size, digest FROM artifacts WHERE runId = ? ORDER BY name", runId))
	require.Len(t, rows, 2)
	assert.Equal(t, "clients_triehh.json", rows[0].Name)
	assert.Equal(t, int64(6), rows[0].Size)
	assert.Len(t, rows[0].Digest, 64)
	assert.Equal(t, "word_frequencies.json", rows[1].Name)

	// a second run is appended
	_, err = Register(conn, MakeRunIdentity(1700000001, cfg), nil, []string{first})
	require.NoError(t, err)
	var count int
	require.NoError(t, db.Get(&count, "SELECT COUNT(*) FROM artifacts"))
	assert.Equal(t, 3, count)
}

func TestRegister_FailsOnMissingArtifact(t *testing.T) {
	conn := filepath.Join(t.TempDir(), "runs.db")
	_, err := Register(conn, MakeRunIdentity(1, config.DefaultConfig()), nil, []string{"/does/not/exist"})
	assert.Error(t, err)
	assert.NoFileExists(t, conn)
}
