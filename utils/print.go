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

package utils

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Printer is a utility class to output data from the system
//
//go:generate mockgen -source print.go -destination print_mock.go -package utils
type Printer interface {
	Print() error
	Close() error
}

// Printers fans a print request out to several printers.
type Printers struct {
	printers []Printer
}

func NewPrinters() *Printers {
	return &Printers{[]Printer{}}
}

func NewCustomPrinters(printers []Printer) *Printers {
	return &Printers{printers}
}

// Print runs every printer, even if an earlier one fails.
func (ps *Printers) Print() error {
	var errs []error
	for _, p := range ps.printers {
		if err := p.Print(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (ps *Printers) Close() error {
	var errs []error
	for _, p := range ps.printers {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (ps *Printers) AddPrinter(p Printer) *Printers {
	ps.printers = append(ps.printers, p)
	return ps
}

// PrinterToWriter writes to any io.Writer
// Wrap f, returns a string to be printed
type PrinterToWriter struct {
	w io.Writer
	f func() string
}

func (p *PrinterToWriter) Print() error {
	_, err := fmt.Fprintln(p.w, p.f())
	return err
}

func (p *PrinterToWriter) Close() error {
	return nil
}

func NewPrinterToWriter(w io.Writer, f func() string) *PrinterToWriter {
	return &PrinterToWriter{w, f}
}

func (ps *Printers) AddPrinterToWriter(w io.Writer, f func() string) *Printers {
	return ps.AddPrinter(NewPrinterToWriter(w, f))
}

// PrinterToFile writes to a File
// Wrap f, returns a string to be printed
type PrinterToFile struct {
	filepath string
	f        func() string
}

func (p *PrinterToFile) Print() (err error) {
	file, err := os.OpenFile(p.filepath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("unable to print to file %s; %w", p.filepath, err)
	}
	defer func(file *os.File) {
		err = errors.Join(err, file.Close())
	}(file)
	_, err = file.WriteString(p.f())
	return err
}

func (p *PrinterToFile) Close() error {
	return nil
}

func NewPrinterToFile(filepath string, f func() string) *PrinterToFile {
	return &PrinterToFile{filepath, f}
}

func (ps *Printers) AddPrinterToFile(filepath string, f func() string) *Printers {
	if filepath != "" {
		ps.AddPrinter(NewPrinterToFile(filepath, f))
	}
	return ps
}

// PrinterToDb writes by inserting rows into DB
// Wrap f, returns an array of values to be inserted
type PrinterToDb struct {
	db     *sqlx.DB
	insert string
	f      func() [][]any
}

func NewPrinterToDb(db *sqlx.DB, insert string, f func() [][]any) *PrinterToDb {
	return &PrinterToDb{db, insert, f}
}

func (p *PrinterToDb) Print() (err error) {
	// a single transaction keeps bulk inserts cheap
	tx, err := p.db.Beginx()
	if err != nil {
		return fmt.Errorf("unable to begin a transaction; %w", err)
	}
	stmt, err := tx.Preparex(p.insert)
	if err != nil {
		return errors.Join(fmt.Errorf("unable to prepare statement %s; %w", p.insert, err), tx.Rollback())
	}
	for _, values := range p.f() {
		if _, err = stmt.Exec(values...); err != nil {
			return errors.Join(err, stmt.Close(), tx.Rollback())
		}
	}
	if err = stmt.Close(); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	return tx.Commit()
}

func (p *PrinterToDb) Close() error {
	return p.db.Close()
}

// NewPrinterToSqlite3 opens (or creates) a sqlite3 database and ensures its table exists.
func NewPrinterToSqlite3(conn string, create string, insert string, f func() [][]any) (*PrinterToDb, error) {
	db, err := sqlx.Open("sqlite3", conn)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection to sqlite3 %s; %w", conn, err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(create); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to create table on %s; %w", conn, err), db.Close())
	}
	return NewPrinterToDb(db, insert, f), nil
}

func (ps *Printers) AddPrinterToSqlite3(conn string, create string, insert string, f func() [][]any) (*Printers, error) {
	if conn == "" {
		return ps, nil
	}
	p, err := NewPrinterToSqlite3(conn, create, insert, f)
	if err != nil {
		return ps, err
	}
	return ps.AddPrinter(p), nil
}
