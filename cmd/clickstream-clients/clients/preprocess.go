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

package clients

import (
	"strconv"
	"time"

	"github.com/0xsoniclabs/clickstream/clickstream/artifact"
	"github.com/0xsoniclabs/clickstream/clickstream/recorder"
	"github.com/0xsoniclabs/clickstream/config"
	"github.com/0xsoniclabs/clickstream/logger"
	"github.com/0xsoniclabs/clickstream/register"
	"github.com/urfave/cli/v2"
)

// PreprocessCommand converts a clickstream dump into client artifacts.
var PreprocessCommand = cli.Command{
	Action:    preprocessAction,
	Name:      "preprocess",
	Usage:     "convert a clickstream dump into TrieHH/SFP clients and word frequencies",
	ArgsUsage: "",
	Flags: []cli.Flag{
		// input
		&config.PathFlag,
		&config.DumpDirFlag,
		&config.MonthFlag,
		&config.LangFlag,
		&config.KindFlag,

		// sampling and encoding
		&config.MaxLenFlag,
		&config.CapFlag,
		&config.NoCapFlag,
		&config.RandomSeedFlag,
		&config.ThinningFlag,
		&config.TerminatorFlag,
		&config.FillerFlag,
		&config.NormalizeFlag,

		// output
		&config.OutputDirFlag,
		&config.CompressFlag,
		&config.RegisterRunFlag,

		// utils
		&config.ProgressIntervalFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The preprocess command reads <dump-dir>/<month>/clickstream-<lang>wiki-<month>.tsv.gz,
or the file given by --path, in a single pass. Every occurrence of a matching row
becomes a client unless its token already reached --cap emissions; such tokens
are thinned. The command writes clients_triehh, clients_sfp and word_frequencies
into --output-dir.`,
}

func preprocessAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.NoArgs)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Preprocess")
	timestamp := time.Now().Unix()

	result, err := recorder.Preprocess(cfg, log)
	if err != nil {
		return err
	}
	recorder.LogSummary(log, result)

	paths, err := artifact.WriteAll(cfg.OutputDir, cfg.Compress, result.Clients.TrieHH(), result.Clients.SFP(), artifact.FrequenciesJSON{
		Normalization: cfg.Normalize,
		Clients:       result.Clients.Len(),
		Frequencies:   result.Frequencies,
	})
	if err != nil {
		return err
	}
	for _, path := range paths.All() {
		log.Noticef("Wrote %v", path)
	}

	if cfg.RegisterRun == "" {
		return nil
	}
	runId, err := register.Register(cfg.RegisterRun, register.MakeRunIdentity(timestamp, cfg), runStats(result), paths.All())
	if err != nil {
		return err
	}
	log.Noticef("Registered run %v in %v", runId, cfg.RegisterRun)
	return nil
}

// runStats lists the pass statistics stored with a registered run.
func runStats(result *recorder.Result) map[string]string {
	stats := result.Clients.Stats()
	format := func(v uint64) string {
		return strconv.FormatUint(v, 10)
	}
	return map[string]string{
		"Rows":           format(result.Rows.Rows),
		"MalformedRows":  format(result.Rows.Malformed),
		"SkippedRows":    format(result.Rows.Skipped),
		"MatchedRows":    format(result.Rows.Matched),
		"ClampedRows":    format(result.Rows.Clamped),
		"Clients":        format(stats.Clients),
		"Tokens":         format(stats.Tokens),
		"Thinned":        format(stats.Thinned),
		"Ambiguous":      format(stats.Ambiguous),
		"ElapsedSeconds": strconv.FormatFloat(result.Elapsed.Seconds(), 'f', 3, 64),
	}
}
