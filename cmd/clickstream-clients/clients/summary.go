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
	"errors"
	"fmt"

	"github.com/0xsoniclabs/clickstream/clickstream/artifact"
	"github.com/0xsoniclabs/clickstream/clickstream/statistics"
	"github.com/0xsoniclabs/clickstream/config"
	"github.com/0xsoniclabs/clickstream/logger"
	"github.com/0xsoniclabs/clickstream/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v2"
)

// SummaryCommand prints the most frequent tokens of a word frequency file.
var SummaryCommand = cli.Command{
	Action:    summaryAction,
	Name:      "summary",
	Usage:     "print the most frequent tokens of a word_frequencies file",
	ArgsUsage: "<word_frequencies>",
	Flags: []cli.Flag{
		&config.TopNFlag,
		&config.OutputFlag,
		&logger.LogLevelFlag,
	},
	Description: `
The summary command prints an overview of a word_frequencies file and its --top
most frequent tokens. With --output the tables are also appended to a file.`,
}

func summaryAction(ctx *cli.Context) (err error) {
	cfg, err := config.NewConfig(ctx, config.OneFileArg)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "Summary")

	log.Infof("Read word frequencies %v", cfg.InputFile)
	freq, err := artifact.ReadFrequencies(cfg.InputFile)
	if err != nil {
		return err
	}
	ecdf, err := statistics.RankECDF(freq.Frequencies, statistics.NumECDFPoints)
	if err != nil {
		return err
	}
	summary := statistics.Summarize(freq.Frequencies)

	overview := table.NewWriter()
	overview.SetStyle(table.StyleLight)
	overview.AppendRows([]table.Row{
		{"clients", freq.Clients},
		{"tokens", summary.Tokens},
		{"normalization", freq.Normalization},
		{"total frequency", fmt.Sprintf("%.6f", summary.Mass)},
		{"entropy [bits]", fmt.Sprintf("%.3f", summary.Entropy)},
		{"top 1% tokens cover", fmt.Sprintf("%.2f%%", 100*statistics.Coverage(ecdf, 0.01))},
		{"ECDF points", len(ecdf)},
	})

	top := table.NewWriter()
	top.SetStyle(table.StyleLight)
	top.AppendHeader(table.Row{"#", "token", "frequency"})
	for i, tf := range statistics.TopN(freq.Frequencies, cfg.TopN) {
		top.AppendRow(table.Row{i + 1, tf.Token, fmt.Sprintf("%.6f", tf.Frequency)})
	}
	top.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	report := overview.Render() + "\n" + top.Render() + "\n"
	ps := utils.NewPrinters().
		AddPrinterToWriter(ctx.App.Writer, func() string { return report }).
		AddPrinterToFile(cfg.Output, func() string { return report })
	defer func() {
		err = errors.Join(err, ps.Close())
	}()
	return ps.Print()
}
