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
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPrinter_NewPrinter(t *testing.T) {
	p := NewPrinters()
	assert.NotNil(t, p)
}

func TestPrinter_AddPrinter(t *testing.T) {
	p := &Printers{[]Printer{}}
	p.AddPrinter(&PrinterToWriter{})
	p.AddPrinter(&PrinterToWriter{})

	assert.Equal(t, 2, len(p.printers))
}

func TestPrinter_Print(t *testing.T) {
	ctrl := gomock.NewController(t)

	first := NewMockPrinter(ctrl)
	second := NewMockPrinter(ctrl)
	p := NewCustomPrinters([]Printer{first, second})

	mockErr := errors.New("mock error")
	first.EXPECT().Print().Return(mockErr)
	second.EXPECT().Print().Return(nil)

	err := p.Print()
	assert.ErrorIs(t, err, mockErr)
}

func TestPrinter_Close(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockPrinter := NewMockPrinter(ctrl)
	p := NewCustomPrinters([]Printer{mockPrinter})
	mockPrinter.EXPECT().Close().Return(nil)
	assert.NoError(t, p.Close())
}

func TestPrinters_AddPrinterToWriter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinters().AddPrinterToWriter(&buf, func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 1, len(p.printers))
	require.NoError(t, p.Print())
	assert.Equal(t, "Hello, World!\n", buf.String())
}

func TestPrinters_AddPrinterToFile(t *testing.T) {
	p := &Printers{}
	p.AddPrinterToFile("test.txt", func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 1, len(p.printers))

	p = &Printers{}
	p.AddPrinterToFile("", func() string {
		return "Hello, World!"
	})
	assert.Equal(t, 0, len(p.printers))
}

func TestPrinters_AddPrinterToSqlite3(t *testing.T) {
	p := &Printers{}
	_, err := p.AddPrinterToSqlite3(":memory:", "CREATE TABLE t (v TEXT)", "INSERT INTO t VALUES (?)", func() [][]any {
		return [][]any{{"a"}}
	})
	require.NoError(t, err)
	assert.Equal(t, 1, len(p.printers))
	assert.NoError(t, p.Print())
	assert.NoError(t, p.Close())

	p = &Printers{}
	_, err = p.AddPrinterToSqlite3("", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, len(p.printers))
}

func TestPrinterToWriter_Print(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterToWriter(&buf, func() string {
		return "Hello, World!"
	})
	require.NoError(t, p.Print())
	assert.Equal(t, "Hello, World!\n", buf.String())
	assert.NoError(t, p.Close())
}

func TestPrinterToFile_PrintAppends(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "test.txt")
	p := NewPrinterToFile(filePath, func() string {
		return "Hello\n"
	})
	require.NoError(t, p.Print())
	require.NoError(t, p.Print())
	assert.NoError(t, p.Close())

	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, "Hello\nHello\n", string(data))
}

func TestPrinterToFile_PrintFailsInMissingDirectory(t *testing.T) {
	p := NewPrinterToFile(filepath.Join(t.TempDir(), "missing", "test.txt"), func() string {
		return "Hello"
	})
	assert.Error(t, p.Print())
}

func TestPrinterToDb_Print(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	insert := "INSERT INTO metadata"
	p := NewPrinterToDb(sqlx.NewDb(db, "sqlmock"), insert, func() [][]any {
		return [][]any{{"run", "key", "value"}}
	})

	// case success
	mockDb.ExpectBegin()
	prep := mockDb.ExpectPrepare(insert)
	prep.ExpectExec().WithArgs("run", "key", "value").WillReturnResult(sqlmock.NewResult(1, 1))
	prep.WillBeClosed()
	mockDb.ExpectCommit()
	assert.NoError(t, p.Print())

	// case Begin error
	mockErr := errors.New("mock error")
	mockDb.ExpectBegin().WillReturnError(mockErr)
	assert.Error(t, p.Print())

	// case Prepare error
	mockDb.ExpectBegin()
	mockDb.ExpectPrepare(insert).WillReturnError(mockErr)
	mockDb.ExpectRollback()
	assert.Error(t, p.Print())

	// case Exec error
	mockDb.ExpectBegin()
	prep = mockDb.ExpectPrepare(insert)
	prep.ExpectExec().WillReturnError(mockErr)
	prep.WillBeClosed()
	mockDb.ExpectRollback()
	assert.ErrorIs(t, p.Print(), mockErr)

	// case Commit error
	mockDb.ExpectBegin()
	prep = mockDb.ExpectPrepare(insert)
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	prep.WillBeClosed()
	mockDb.ExpectCommit().WillReturnError(mockErr)
	assert.Error(t, p.Print())

	if err = mockDb.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestPrinterToDb_Close(t *testing.T) {
	db, mockDb, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}

	p := NewPrinterToDb(sqlx.NewDb(db, "sqlmock"), "", nil)
	mockDb.ExpectClose()
	assert.NoError(t, p.Close())
	if err = mockDb.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestPrinterToDb_NewPrinterToSqlite3(t *testing.T) {
	// case success
	p, err := NewPrinterToSqlite3(":memory:", "CREATE TABLE t (v TEXT)", "", func() [][]any {
		return [][]any{}
	})
	require.NoError(t, err)
	assert.NotNil(t, p)
	assert.NoError(t, p.Close())

	// case error
	p, err = NewPrinterToSqlite3(":memory:", "asfd;asdf", "", func() [][]any {
		return [][]any{}
	})
	assert.Error(t, err)
	assert.Nil(t, p)
}
