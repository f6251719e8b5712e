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

// Package visualizer renders word frequency tables as HTML charts.
package visualizer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/0xsoniclabs/clickstream/clickstream/statistics"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const pageTitle = "Clickstream: Word Frequencies"

// toolbox is shared by all charts of the page.
var toolbox = opts.Toolbox{
	Show: true,
	Feature: &opts.ToolBoxFeature{
		SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
			Show:  true,
			Title: "Save",
		},
		DataZoom: &opts.ToolBoxFeatureDataZoom{
			Show: true,
		},
	},
}

// convertECDFData converts ECDF points to chart points.
func convertECDFData(data [][2]float64) []opts.LineData {
	items := []opts.LineData{}
	for _, pair := range data {
		items = append(items, opts.LineData{Value: pair})
	}
	return items
}

// convertTokenData produces the bar series of ranked tokens.
func convertTokenData(data []statistics.TokenFrequency) []opts.BarData {
	items := []opts.BarData{}
	for _, tf := range data {
		items = append(items, opts.BarData{Value: tf.Frequency})
	}
	return items
}

// convertTokenLabel produces the labels of ranked tokens.
func convertTokenLabel(data []statistics.TokenFrequency) []string {
	items := []string{}
	for _, tf := range data {
		items = append(items, tf.Token)
	}
	return items
}

// newECDFChart creates a line chart of the cumulative client share over the
// token ranks.
func newECDFChart(ecdf [][2]float64) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: pageTitle,
	}),
		charts.WithToolboxOpts(toolbox),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Rank-Frequency ECDF",
			Subtitle: "share of clients covered by the most frequent tokens",
		}))
	chart.AddSeries("Clients", convertECDFData(ecdf))
	return chart
}

// newTopTokensChart creates a bar chart of the most frequent tokens.
func newTopTokensChart(top []statistics.TokenFrequency) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: pageTitle,
		Height:    fmt.Sprintf("%dpx", 200+25*len(top)),
	}),
		charts.WithToolboxOpts(toolbox),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Top %d Tokens", len(top)),
		}))
	bar.SetXAxis(convertTokenLabel(top)).AddSeries("Relative Frequency", convertTokenData(top))
	bar.XYReversal()
	return bar
}

// Render writes an HTML page with the rank-frequency ECDF and the top-n tokens
// of a frequency table.
func Render(w io.Writer, freq map[string]float64, topN int) error {
	ecdf, err := statistics.RankECDF(freq, statistics.NumECDFPoints)
	if err != nil {
		return err
	}
	page := components.NewPage()
	page.PageTitle = pageTitle
	page.AddCharts(newECDFChart(ecdf), newTopTokensChart(statistics.TopN(freq, topN)))
	return page.Render(w)
}

// RenderFile writes the page of Render into a file.
func RenderFile(filename string, freq map[string]float64, topN int) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create %v; %w", filename, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return Render(f, freq, topN)
}
