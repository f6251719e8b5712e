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
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/0xsoniclabs/clickstream/config"
	"golang.org/x/crypto/blake2b"
)

// RunIdentity identifies a preprocessing run by its start time and settings.
type RunIdentity struct {
	Timestamp int64
	Cfg       *config.Config
}

func MakeRunIdentity(t int64, cfg *config.Config) *RunIdentity {
	return &RunIdentity{
		Timestamp: t,
		Cfg:       cfg,
	}
}

// GetId returns a digest of the run settings and timestamp. Runs with equal
// settings started at the same second share an id.
func (id *RunIdentity) GetId() (string, error) {
	info, err := id.fetchConfigInfo()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("cannot encode run identity; %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func (id *RunIdentity) fetchConfigInfo() (map[string]string, error) {
	if id.Cfg == nil {
		return nil, fmt.Errorf("run identity has no configuration")
	}
	cfg := id.Cfg
	return map[string]string{
		"AppName":     cfg.AppName,
		"CommandName": cfg.CommandName,
		"RegisterRun": cfg.RegisterRun,
		"Input":       cfg.InputPath(),
		"Kind":        cfg.Kind,
		"MaxLen":      strconv.Itoa(cfg.MaxLen),
		"Cap":         strconv.FormatUint(cfg.EffectiveCap(), 10),
		"Seed":        strconv.FormatInt(cfg.RandomSeed, 10),
		"Thinning":    cfg.Thinning,
		"Terminator":  cfg.Terminator,
		"Filler":      cfg.Filler,
		"Normalize":   cfg.Normalize,
		"OutputDir":   cfg.OutputDir,
		"Compress":    strconv.FormatBool(cfg.Compress),
		"Timestamp":   strconv.FormatInt(id.Timestamp, 10),
	}, nil
}
