package report

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"shopfloor-sim/internal/storage"
)

const (
	SheetOrders  = "Orders"
	SheetDaily   = "Daily metrics"
	SheetSummary = "Summary"

	timestampLayout = "2006-01-02 15:04:05"
)

type RunReader interface {
	GetRun(ctx context.Context, id string) (*storage.Run, error)
	GetRunOrders(ctx context.Context, id string) ([]storage.RunOrder, error)
	GetRunDaily(ctx context.Context, id string) ([]storage.RunDay, error)
}

type Service struct {
	storage RunReader
	loc     *time.Location
}

type Option func(*Service)

// WithLocation sets the calendar report timestamps are written in. Stored
// instants come back from the database in UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

func NewService(storage RunReader, opts ...Option) *Service {
	s := &Service{storage: storage, loc: time.UTC}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) timestamp(t time.Time) string {
	return t.In(s.loc).Format(timestampLayout)
}

// RunDetails loads the run header, its orders and its days in parallel.
func (s *Service) RunDetails(ctx context.Context, id string) (*storage.RunDetails, error) {
	const op = "service.report.RunDetails"

	var (
		run    *storage.Run
		orders []storage.RunOrder
		daily  []storage.RunDay
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		run, err = s.storage.GetRun(gCtx, id)
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		orders, err = s.storage.GetRunOrders(gCtx, id)
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		daily, err = s.storage.GetRunDaily(gCtx, id)
		if err != nil {
			return fmt.Errorf("daily: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &storage.RunDetails{Run: *run, Orders: orders, Daily: daily}, nil
}

func (s *Service) GenerateExcel(ctx context.Context, id string) ([]byte, error) {
	const op = "service.report.GenerateExcel"

	details, err := s.RunDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: header style: %w", op, err)
	}

	if err := f.SetSheetName("Sheet1", SheetOrders); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	for _, sheet := range []string{SheetDaily, SheetSummary} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	orderRows := make([][]any, 0, len(details.Orders))
	for _, o := range details.Orders {
		onTime := "no"
		if o.OnTime {
			onTime = "yes"
		}
		orderRows = append(orderRows, []any{
			o.OrderID,
			o.CompletionTime,
			o.LeadTime,
			onTime,
			s.timestamp(o.StartedAt),
			s.timestamp(o.CompletedAt),
		})
	}
	err = writeTable(f, SheetOrders, headerStyle,
		[]string{"Order", "Completion time", "Lead time, h", "On time", "Started at", "Completed at"}, orderRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	dayRows := make([][]any, 0, len(details.Daily))
	for _, d := range details.Daily {
		dayRows = append(dayRows, []any{d.Date, d.Production, d.Downtime, d.Scrap})
	}
	err = writeTable(f, SheetDaily, headerStyle,
		[]string{"Date", "Production", "Downtime, h", "Scrap, h"}, dayRows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r := details.Run
	err = writeTable(f, SheetSummary, headerStyle, []string{"Parameter", "Value"}, [][]any{
		{"Run", r.ID},
		{"Created at", s.timestamp(r.CreatedAt)},
		{"Start date", s.timestamp(r.StartDate)},
		{"Shifts", r.Shifts},
		{"Hours per shift", r.HoursPerShift},
		{"Operators per shift", r.OperatorsPerShift},
		{"Scrap rate", r.ScrapRate},
		{"Downtime rate", r.DowntimeRate},
		{"Orders", r.OrderCount},
		{"Total production", r.TotalProduction},
		{"Average lead time, h", r.AverageLeadTime},
		{"On-time delivery", r.OnTimeCount},
		{"On-time delivery, %", r.OnTimePercentage},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

// writeTable writes a styled header row and freezes it above rows.
func writeTable(f *excelize.File, sheet string, headerStyle int, headers []string, rows [][]any) error {
	for i, name := range headers {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), name); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		if err := f.SetSheetRow(sheet, cellName(1, i+2), &row); err != nil {
			return err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", lastCol, 18)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
