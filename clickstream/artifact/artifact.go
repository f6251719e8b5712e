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

// Package artifact stores the outputs of a preprocessing pass: the two client
// sequences and the word frequency table. Every artifact is a JSON document
// tagged with a FileId, optionally gzip compressed.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xsoniclabs/clickstream/utils"
	"github.com/cockroachdb/errors"
)

const (
	TrieHHFile      = "clients_triehh"
	SFPFile         = "clients_sfp"
	FrequenciesFile = "word_frequencies"

	clientsFileID     = "clients"
	frequenciesFileID = "word_frequencies"
)

// Encodings of the client sequences.
const (
	TrieHHEncoding = "triehh"
	SFPEncoding    = "sfp"
)

// ErrWrongFileId is returned when a file holds another kind of artifact.
var ErrWrongFileId = errors.New("unexpected FileId")

// ClientsJSON is a client sequence.
type ClientsJSON struct {
	FileId   string   `json:"FileId"`
	Encoding string   `json:"encoding"`
	Clients  []string `json:"clients"`
}

// UnmarshalJSON validates the FileId while deserialising.
func (c *ClientsJSON) UnmarshalJSON(data []byte) error {
	type alias ClientsJSON
	var tmp alias
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.FileId != clientsFileID {
		return errors.Wrapf(ErrWrongFileId, "clients: got %q", tmp.FileId)
	}
	*c = ClientsJSON(tmp)
	return nil
}

// FrequenciesJSON is the relative frequency table of the tokens.
type FrequenciesJSON struct {
	FileId        string             `json:"FileId"`
	Normalization string             `json:"normalization"`
	Clients       int                `json:"numClients"` // number of emitted clients
	Frequencies   map[string]float64 `json:"frequencies"`
}

// MarshalJSON ensures the FileId is populated before serialising.
func (f FrequenciesJSON) MarshalJSON() ([]byte, error) {
	if f.FileId == "" {
		f.FileId = frequenciesFileID
	}
	type alias FrequenciesJSON
	return json.Marshal(alias(f))
}

// UnmarshalJSON validates the FileId while deserialising.
func (f *FrequenciesJSON) UnmarshalJSON(data []byte) error {
	type alias FrequenciesJSON
	var tmp alias
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	if tmp.FileId != frequenciesFileID {
		return errors.Wrapf(ErrWrongFileId, "word frequencies: got %q", tmp.FileId)
	}
	*f = FrequenciesJSON(tmp)
	return nil
}

// FileName returns the file name of an artifact.
func FileName(base string, compress bool) string {
	if compress {
		return base + ".json.gz"
	}
	return base + ".json"
}

// Paths lists the files written by WriteAll.
type Paths struct {
	TrieHH      string
	SFP         string
	Frequencies string
}

// All returns the paths in writing order.
func (p Paths) All() []string {
	return []string{p.TrieHH, p.SFP, p.Frequencies}
}

// WriteClients streams a client sequence into a file. Clients are written
// element by element so that the document is never held in memory.
func WriteClients(path string, encoding string, clients []string, compress bool) error {
	f, err := createAtomic(path, compress)
	if err != nil {
		return err
	}
	header, err := json.Marshal(encoding)
	if err != nil {
		f.Abort()
		return err
	}
	if _, err = fmt.Fprintf(f, "{\"FileId\":%q,\"encoding\":%s,\"clients\":[", clientsFileID, header); err != nil {
		f.Abort()
		return err
	}
	for i, client := range clients {
		if i > 0 {
			if _, err = f.WriteString(","); err != nil {
				f.Abort()
				return err
			}
		}
		entry, err := json.Marshal(client)
		if err != nil {
			f.Abort()
			return fmt.Errorf("cannot encode client %d; %w", i, err)
		}
		if _, err = f.Write(entry); err != nil {
			f.Abort()
			return err
		}
	}
	if _, err = f.WriteString("]}\n"); err != nil {
		f.Abort()
		return err
	}
	return f.Commit()
}

// WriteFrequencies writes the frequency table into a file.
func WriteFrequencies(path string, freq FrequenciesJSON, compress bool) error {
	f, err := createAtomic(path, compress)
	if err != nil {
		return err
	}
	jOut, err := json.MarshalIndent(freq, "", "    ")
	if err != nil {
		f.Abort()
		return fmt.Errorf("failed to convert JSON; %w", err)
	}
	if _, err = fmt.Fprintln(f, string(jOut)); err != nil {
		f.Abort()
		return err
	}
	return f.Commit()
}

// WriteAll writes the three artifacts of a pass into dir. Each file is
// replaced atomically; a failure may leave earlier files of the set written.
func WriteAll(dir string, compress bool, triehh, sfp []string, freq FrequenciesJSON) (Paths, error) {
	if len(triehh) != len(sfp) {
		return Paths{}, errors.Newf("client sequences are not aligned: %d vs %d", len(triehh), len(sfp))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Paths{}, errors.Wrapf(err, "cannot create output directory %v", dir)
	}
	paths := Paths{
		TrieHH:      filepath.Join(dir, FileName(TrieHHFile, compress)),
		SFP:         filepath.Join(dir, FileName(SFPFile, compress)),
		Frequencies: filepath.Join(dir, FileName(FrequenciesFile, compress)),
	}
	if err := WriteClients(paths.TrieHH, TrieHHEncoding, triehh, compress); err != nil {
		return paths, err
	}
	if err := WriteClients(paths.SFP, SFPEncoding, sfp, compress); err != nil {
		return paths, err
	}
	if err := WriteFrequencies(paths.Frequencies, freq, compress); err != nil {
		return paths, err
	}
	return paths, nil
}

// ReadClients reads a client sequence, compressed or not.
func ReadClients(path string) (*ClientsJSON, error) {
	var clients ClientsJSON
	if err := decodeFile(path, &clients); err != nil {
		return nil, err
	}
	return &clients, nil
}

// ReadFrequencies reads a frequency table, compressed or not.
func ReadFrequencies(path string) (*FrequenciesJSON, error) {
	var freq FrequenciesJSON
	if err := decodeFile(path, &freq); err != nil {
		return nil, err
	}
	return &freq, nil
}

func decodeFile(path string, v any) (err error) {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed opening %v", path)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()
	r, _, err := utils.Decompress(file)
	if err != nil {
		return errors.Wrapf(err, "failed reading %v", path)
	}
	defer func() {
		err = errors.Join(err, r.Close())
	}()
	if err = json.NewDecoder(r).Decode(v); err != nil {
		return errors.Wrapf(err, "cannot decode %v", path)
	}
	return nil
}
