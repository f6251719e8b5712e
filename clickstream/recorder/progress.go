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

package recorder

import (
	"time"

	"github.com/0xsoniclabs/clickstream/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const progressReportFormat = "Parsed %s lines, elapsed %.0f s"

// Progress logs the number of parsed lines at a fixed line interval.
type Progress struct {
	log      logger.Logger
	interval uint64 // zero disables reports
	printer  *message.Printer
	start    time.Time
}

// NewProgress creates a progress reporter; a zero interval disables it.
func NewProgress(log logger.Logger, interval uint64) *Progress {
	return &Progress{
		log:      log,
		interval: interval,
		printer:  newNumberPrinter(),
		start:    time.Now(),
	}
}

// Report logs a progress line if line is a multiple of the interval.
func (p *Progress) Report(line uint64) {
	if p.interval == 0 || line == 0 || line%p.interval != 0 {
		return
	}
	p.log.Infof(progressReportFormat, p.printer.Sprintf("%d", line), time.Since(p.start).Seconds())
}

// newNumberPrinter formats numbers with thousands separators.
func newNumberPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}
