// Package orders reads order sheets uploaded by planners.
//
// A sheet has one header row with the columns "order", "size", "entry time" and
// "agreed lead time", in any order and any letter case. Every following
// non-blank row is one order.
package orders

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"shopfloor-sim/internal/simulation"
)

const (
	ColumnOrder          = "order"
	ColumnSize           = "size"
	ColumnEntryTime      = "entry time"
	ColumnAgreedLeadTime = "agreed lead time"
)

var requiredColumns = []string{ColumnOrder, ColumnSize, ColumnEntryTime, ColumnAgreedLeadTime}

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumn     = errors.New("missing column")
	ErrEmptyValue        = errors.New("empty value")
	ErrNoHeader          = errors.New("no header row")
)

// InputError points at the cell an order could not be read from. Row is the
// 1-based sheet row, 0 for header problems.
type InputError struct {
	Row    int
	Column string
	Err    error
}

func (e *InputError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("column %q: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// Read picks the reader by the file extension of name.
func Read(name string, r io.Reader) ([]simulation.OrderRequest, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
		return ReadCSV(r)
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

func ReadCSV(r io.Reader) ([]simulation.OrderRequest, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("orders.ReadCSV: %w", err)
	}

	return fromRows(rows)
}

// ReadXLSX reads the first sheet of a workbook.
func ReadXLSX(r io.Reader) ([]simulation.OrderRequest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("orders.ReadXLSX: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("orders.ReadXLSX: %w", err)
	}

	return fromRows(rows)
}

func fromRows(rows [][]string) ([]simulation.OrderRequest, error) {
	if len(rows) == 0 {
		return nil, &InputError{Column: ColumnOrder, Err: ErrNoHeader}
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.TrimPrefix(name, "\ufeff")
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, &InputError{Column: col, Err: ErrMissingColumn}
		}
	}

	orders := make([]simulation.OrderRequest, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}

		rowNum := i + 2
		cell := func(col string) (string, error) {
			j := index[col]
			if j >= len(row) || strings.TrimSpace(row[j]) == "" {
				return "", &InputError{Row: rowNum, Column: col, Err: ErrEmptyValue}
			}
			return strings.TrimSpace(row[j]), nil
		}

		var (
			order simulation.OrderRequest
			raw   string
			err   error
		)

		if raw, err = cell(ColumnOrder); err != nil {
			return nil, err
		}
		if order.ID, err = parseInt(raw); err != nil {
			return nil, &InputError{Row: rowNum, Column: ColumnOrder, Err: err}
		}

		if raw, err = cell(ColumnSize); err != nil {
			return nil, err
		}
		if order.Size, err = parseInt(raw); err != nil {
			return nil, &InputError{Row: rowNum, Column: ColumnSize, Err: err}
		}

		if order.EntryTime, err = cell(ColumnEntryTime); err != nil {
			return nil, err
		}

		if raw, err = cell(ColumnAgreedLeadTime); err != nil {
			return nil, err
		}
		if order.AgreedLeadTime, err = strconv.ParseFloat(raw, 64); err != nil {
			return nil, &InputError{Row: rowNum, Column: ColumnAgreedLeadTime, Err: err}
		}

		orders = append(orders, order)
	}

	return orders, nil
}

// parseInt also accepts integral floats such as "12.0", which spreadsheet
// exports produce for numeric columns.
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
