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
	"github.com/0xsoniclabs/clickstream/clickstream/artifact"
	"github.com/0xsoniclabs/clickstream/clickstream/visualizer"
	"github.com/0xsoniclabs/clickstream/config"
	"github.com/0xsoniclabs/clickstream/logger"
	"github.com/urfave/cli/v2"
)

// VisualizeCommand renders a word frequency file as an HTML page.
var VisualizeCommand = cli.Command{
	Action:    visualizeAction,
	Name:      "visualize",
	Usage:     "render the rank-frequency chart of a word_frequencies file",
	ArgsUsage: "<word_frequencies>",
	Flags: []cli.Flag{
		&config.OutputFlag,
		&config.TopNFlag,
		&logger.LogLevelFlag,
	},
}

func visualizeAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx, config.OneFileArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Visualize")
	if cfg.Output == "" {
		cfg.Output = "./word_frequencies.html"
	}

	freq, err := artifact.ReadFrequencies(cfg.InputFile)
	if err != nil {
		return err
	}
	log.Noticef("Render %d tokens into %v", len(freq.Frequencies), cfg.Output)
	return visualizer.RenderFile(cfg.Output, freq.Frequencies, cfg.TopN)
}
