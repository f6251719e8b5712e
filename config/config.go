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
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/0xsoniclabs/clickstream/logger"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ArgumentMode determines the positional arguments of a command.
type ArgumentMode int

const (
	NoArgs     ArgumentMode = iota // no positional arguments
	OneFileArg                     // exactly one file argument
)

const (
	DefaultDumpDir          = "clickstream"
	DefaultMonth            = "2025-03"
	DefaultLang             = "en"
	DefaultKind             = "link"
	DefaultMaxLen           = 16
	DefaultCap              = 5000
	DefaultTerminator       = "$"
	DefaultFiller           = "$"
	DefaultProgressInterval = 2_000_000
	DefaultTopN             = 20

	ExactThinning    = "exact"
	BinomialThinning = "binomial"

	CounterNormalization = "counter"
	ClientsNormalization = "clients"
)

var (
	ErrInvalidCap       = errors.New("cap must be greater than zero when capping is enabled")
	ErrInvalidMaxLen    = errors.New("max-len must be greater than zero")
	ErrInvalidSymbol    = errors.New("terminator and filler must be single characters")
	ErrInvalidThinning  = errors.New("unknown thinning mode")
	ErrInvalidNormalize = errors.New("unknown normalization")
	ErrMissingArgument  = errors.New("missing file argument")
)

// Config holds the settings of a run collected from the command line.
type Config struct {
	AppName     string
	CommandName string

	Path    string // explicit input path
	DumpDir string
	Month   string
	Lang    string
	Kind    string // empty keeps all rows

	MaxLen     int
	Cap        int
	NoCap      bool
	RandomSeed int64
	Thinning   string
	Terminator string
	Filler     string
	Normalize  string

	OutputDir        string
	Compress         bool
	Output           string
	TopN             int
	ProgressInterval uint64
	RegisterRun      string
	LogLevel         string

	InputFile string // positional file argument
}

// NewConfig creates a configuration from the flags and arguments of a command.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	switch mode {
	case OneFileArg:
		if ctx.Args().Len() != 1 {
			return nil, errors.Wrapf(ErrMissingArgument, "command %v expects one file, got %d arguments", cfg.CommandName, ctx.Args().Len())
		}
		cfg.InputFile = ctx.Args().First()
	case NoArgs:
		if ctx.Args().Len() != 0 {
			return nil, fmt.Errorf("command %v takes no arguments, got %d", cfg.CommandName, ctx.Args().Len())
		}
	}
	return cfg, nil
}

func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:          ctx.App.HelpName,
		Path:             ctx.String(PathFlag.Name),
		DumpDir:          ctx.String(DumpDirFlag.Name),
		Month:            ctx.String(MonthFlag.Name),
		Lang:             ctx.String(LangFlag.Name),
		Kind:             ctx.String(KindFlag.Name),
		MaxLen:           ctx.Int(MaxLenFlag.Name),
		Cap:              ctx.Int(CapFlag.Name),
		NoCap:            ctx.Bool(NoCapFlag.Name),
		RandomSeed:       ctx.Int64(RandomSeedFlag.Name),
		Thinning:         ctx.String(ThinningFlag.Name),
		Terminator:       ctx.String(TerminatorFlag.Name),
		Filler:           ctx.String(FillerFlag.Name),
		Normalize:        ctx.String(NormalizeFlag.Name),
		OutputDir:        ctx.String(OutputDirFlag.Name),
		Compress:         ctx.Bool(CompressFlag.Name),
		Output:           ctx.String(OutputFlag.Name),
		TopN:             ctx.Int(TopNFlag.Name),
		ProgressInterval: ctx.Uint64(ProgressIntervalFlag.Name),
		RegisterRun:      ctx.String(RegisterRunFlag.Name),
		LogLevel:         ctx.String(logger.LogLevelFlag.Name),
	}
	if ctx.Command != nil {
		cfg.CommandName = ctx.Command.Name
	}
	return cfg
}

// DefaultConfig returns the preprocessing defaults.
func DefaultConfig() *Config {
	return &Config{
		DumpDir:          DefaultDumpDir,
		Month:            DefaultMonth,
		Lang:             DefaultLang,
		Kind:             DefaultKind,
		MaxLen:           DefaultMaxLen,
		Cap:              DefaultCap,
		Thinning:         ExactThinning,
		Terminator:       DefaultTerminator,
		Filler:           DefaultFiller,
		Normalize:        CounterNormalization,
		OutputDir:        ".",
		TopN:             DefaultTopN,
		ProgressInterval: DefaultProgressInterval,
		LogLevel:         "info",
	}
}

// Validate checks the preprocessing settings before any input is read.
func (cfg *Config) Validate() error {
	if cfg.MaxLen <= 0 {
		return errors.Wrapf(ErrInvalidMaxLen, "got %d", cfg.MaxLen)
	}
	if !cfg.NoCap && cfg.Cap <= 0 {
		return errors.Wrapf(ErrInvalidCap, "got %d", cfg.Cap)
	}
	if utf8.RuneCountInString(cfg.Terminator) != 1 || utf8.RuneCountInString(cfg.Filler) != 1 {
		return errors.Wrapf(ErrInvalidSymbol, "terminator %q, filler %q", cfg.Terminator, cfg.Filler)
	}
	switch cfg.Thinning {
	case ExactThinning, BinomialThinning:
	default:
		return errors.Wrapf(ErrInvalidThinning, "%q", cfg.Thinning)
	}
	switch cfg.Normalize {
	case CounterNormalization, ClientsNormalization:
	default:
		return errors.Wrapf(ErrInvalidNormalize, "%q", cfg.Normalize)
	}
	return nil
}

// InputPath resolves the clickstream dump to read.
func (cfg *Config) InputPath() string {
	if cfg.Path != "" {
		return cfg.Path
	}
	name := fmt.Sprintf("clickstream-%vwiki-%v.tsv.gz", cfg.Lang, cfg.Month)
	return filepath.Join(cfg.DumpDir, cfg.Month, name)
}

// EffectiveCap returns the per-token ceiling, or zero if capping is disabled.
func (cfg *Config) EffectiveCap() uint64 {
	if cfg.NoCap || cfg.Cap <= 0 {
		return 0
	}
	return uint64(cfg.Cap)
}

// TerminatorRune returns the end symbol of TrieHH clients.
func (cfg *Config) TerminatorRune() rune {
	r, _ := utf8.DecodeRuneInString(cfg.Terminator)
	return r
}

// FillerRune returns the padding symbol of SFP clients.
func (cfg *Config) FillerRune() rune {
	r, _ := utf8.DecodeRuneInString(cfg.Filler)
	return r
}
