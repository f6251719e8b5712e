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

package main

import (
	"fmt"
	"os"

	"github.com/0xsoniclabs/clickstream/cmd/clickstream-clients/clients"
	"github.com/urfave/cli/v2"
)

// ClickstreamClientsApp data structure
var ClickstreamClientsApp = cli.App{
	Name:      "Clickstream Client Generator",
	HelpName:  "clickstream-clients",
	Copyright: "(c) 2025 Sonic Labs",
	Usage:     "turn Wikipedia clickstream dumps into synthetic clients for TrieHH and SFP",
	Commands: []*cli.Command{
		&clients.PreprocessCommand,
		&clients.SummaryCommand,
		&clients.VisualizeCommand,
	},
	Description: `
The clickstream-clients preprocess command reads a clickstream dump and writes
clients_triehh, clients_sfp and word_frequencies. The summary and visualize
commands inspect a written word_frequencies file.`,
}

// main implements the clickstream-clients cli.
func main() {
	if err := ClickstreamClientsApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
