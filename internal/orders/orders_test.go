package orders

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shopfloor-sim/internal/simulation"
)

func TestReadCSV(t *testing.T) {
	data := "order,size,entry time,agreed lead time\n" +
		"1,32,2024-01-01 00:00:00,10\n" +
		"\n" +
		"2, 16.0 ,2024-01-01T08:30,2.5\n"

	got, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []simulation.OrderRequest{
		{ID: 1, Size: 32, EntryTime: "2024-01-01 00:00:00", AgreedLeadTime: 10},
		{ID: 2, Size: 16, EntryTime: "2024-01-01T08:30", AgreedLeadTime: 2.5},
	}, got)
}

func TestReadCSV_ColumnsInAnyOrderAndCase(t *testing.T) {
	data := "\ufeffAgreed Lead Time, Entry Time ,SIZE,Order,comment\n" +
		"4,2024-02-01 10:00,8,17,rush\n"

	got, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, simulation.OrderRequest{ID: 17, Size: 8, EntryTime: "2024-02-01 10:00", AgreedLeadTime: 4}, got[0])
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		row    int
		column string
		target error
	}{
		{
			name:   "missing column",
			data:   "order,size,entry time\n1,2,2024-01-01 00:00\n",
			column: ColumnAgreedLeadTime,
			target: ErrMissingColumn,
		},
		{
			name:   "empty file",
			data:   "",
			column: ColumnOrder,
			target: ErrNoHeader,
		},
		{
			name:   "empty size",
			data:   "order,size,entry time,agreed lead time\n1,,2024-01-01 00:00,1\n",
			row:    2,
			column: ColumnSize,
			target: ErrEmptyValue,
		},
		{
			name:   "short row",
			data:   "order,size,entry time,agreed lead time\n1,2,2024-01-01 00:00,1\n2,3\n",
			row:    3,
			column: ColumnEntryTime,
			target: ErrEmptyValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data))
			require.Error(t, err)

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr), err.Error())
			assert.Equal(t, tt.row, inputErr.Row)
			assert.Equal(t, tt.column, inputErr.Column)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestReadCSV_BadNumbers(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		column string
	}{
		{name: "order id", data: "order,size,entry time,agreed lead time\nA-1,2,2024-01-01 00:00,1\n", column: ColumnOrder},
		{name: "fractional size", data: "order,size,entry time,agreed lead time\n1,2.5,2024-01-01 00:00,1\n", column: ColumnSize},
		{name: "lead time", data: "order,size,entry time,agreed lead time\n1,2,2024-01-01 00:00,soon\n", column: ColumnAgreedLeadTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data))

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, 2, inputErr.Row)
			assert.Equal(t, tt.column, inputErr.Column)
		})
	}
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"order", "size", "entry time", "agreed lead time"},
		{1, 32, "2024-01-01 00:00:00", 10},
		{2, 48, "2024-01-02 07:15", 6.5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := Read("orders.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, []simulation.OrderRequest{
		{ID: 1, Size: 32, EntryTime: "2024-01-01 00:00:00", AgreedLeadTime: 10},
		{ID: 2, Size: 48, EntryTime: "2024-01-02 07:15", AgreedLeadTime: 6.5},
	}, got)
}

func TestRead_UnsupportedFormat(t *testing.T) {
	_, err := Read("orders.pdf", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRead_DispatchesCSV(t *testing.T) {
	got, err := Read("ORDERS.CSV", strings.NewReader("order,size,entry time,agreed lead time\n3,4,2024-01-01 00:00,1\n"))
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
