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

package config

import (
	"github.com/urfave/cli/v2"
)

// input
var (
	PathFlag = cli.StringFlag{
		Name:  "path",
		Usage: "explicit clickstream TSV path (plain, .gz or .zst); overrides --month/--lang",
	}
	DumpDirFlag = cli.StringFlag{
		Name:  "dump-dir",
		Usage: "directory holding clickstream dumps in <month> sub-folders",
		Value: DefaultDumpDir,
	}
	MonthFlag = cli.StringFlag{
		Name:  "month",
		Usage: "dump month folder, e.g. 2025-03",
		Value: DefaultMonth,
	}
	LangFlag = cli.StringFlag{
		Name:  "lang",
		Usage: "language code of the dump, e.g. en, de",
		Value: DefaultLang,
	}
	KindFlag = cli.StringFlag{
		Name:  "kind",
		Usage: "keep only rows whose type field equals this value; empty keeps all rows",
		Value: DefaultKind,
	}
)

// sampling and encoding
var (
	MaxLenFlag = cli.IntFlag{
		Name:    "max-len",
		Aliases: []string{"max_len"},
		Usage:   "pad/cut length for fixed-width (SFP) tokens",
		Value:   DefaultMaxLen,
	}
	CapFlag = cli.IntFlag{
		Name:  "cap",
		Usage: "per-token emission ceiling; row counts are clamped to it",
		Value: DefaultCap,
	}
	NoCapFlag = cli.BoolFlag{
		Name:  "no-cap",
		Usage: "disable capping; every occurrence becomes a client",
	}
	RandomSeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the pseudo-random generator used for thinning",
		Value: 0,
	}
	ThinningFlag = cli.StringFlag{
		Name:  "thinning",
		Usage: "thinning of capped tokens: \"exact\" decides per occurrence, \"binomial\" samples per row",
		Value: ExactThinning,
	}
	TerminatorFlag = cli.StringFlag{
		Name:  "terminator",
		Usage: "end symbol appended to TrieHH clients",
		Value: DefaultTerminator,
	}
	FillerFlag = cli.StringFlag{
		Name:  "filler",
		Usage: "padding symbol of fixed-width SFP clients",
		Value: DefaultFiller,
	}
	NormalizeFlag = cli.StringFlag{
		Name:  "normalize",
		Usage: "base of relative frequencies: \"counter\" (sum of capped counts) or \"clients\" (number of clients)",
		Value: CounterNormalization,
	}
)

// output
var (
	OutputDirFlag = cli.StringFlag{
		Name:  "output-dir",
		Usage: "directory receiving clients_triehh, clients_sfp and word_frequencies",
		Value: ".",
	}
	CompressFlag = cli.BoolFlag{
		Name:  "compress",
		Usage: "gzip-compress the written artifacts",
	}
	OutputFlag = cli.StringFlag{
		Name:  "output",
		Usage: "output file",
	}
	TopNFlag = cli.IntFlag{
		Name:  "top",
		Usage: "number of most frequent tokens to show",
		Value: DefaultTopN,
	}
	ProgressIntervalFlag = cli.Uint64Flag{
		Name:  "progress-interval",
		Usage: "report progress every N input lines; 0 disables reports",
		Value: DefaultProgressInterval,
	}
	RegisterRunFlag = cli.StringFlag{
		Name:  "register-run",
		Usage: "sqlite3 file recording run metadata and artifact digests",
	}
)
