package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"shopfloor-sim/internal/storage"
)

const mysqlErrDuplicateEntry = 1062

const runColumns = `id, created_at, start_date, shifts, hours_per_shift, operators_per_shift, scrap_rate, downtime_rate,
	order_count, on_time_count, total_production, total_lead_time, average_lead_time, on_time_percentage`

// SaveRun stores the run header with its orders and daily metrics in one transaction.
func (s *Storage) SaveRun(ctx context.Context, run storage.RunDetails) error {
	const op = "storage.mysql.SaveRun"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO sim_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, run.StartDate, run.Shifts, run.HoursPerShift, run.OperatorsPerShift,
		run.ScrapRate, run.DowntimeRate, run.OrderCount, run.OnTimeCount, run.TotalProduction,
		run.TotalLeadTime, run.AverageLeadTime, run.OnTimePercentage)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return fmt.Errorf("%s: id=%s: %w", op, run.ID, storage.ErrRunExists)
		}
		return fmt.Errorf("%s: insert run id=%s: %w", op, run.ID, err)
	}

	orderStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sim_run_orders (run_id, seq, order_id, completion_time, started_at, completed_at, lead_time, on_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%s: prepare orders: %w", op, err)
	}
	defer orderStmt.Close()

	for _, o := range run.Orders {
		_, err := orderStmt.ExecContext(ctx, run.ID, o.Seq, o.OrderID, o.CompletionTime, o.StartedAt, o.CompletedAt, o.LeadTime, o.OnTime)
		if err != nil {
			return fmt.Errorf("%s: insert order %d: %w", op, o.OrderID, err)
		}
	}

	dayStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sim_run_daily (run_id, seq, date, production, downtime, scrap)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%s: prepare daily: %w", op, err)
	}
	defer dayStmt.Close()

	for _, d := range run.Daily {
		_, err := dayStmt.ExecContext(ctx, run.ID, d.Seq, d.Date, d.Production, d.Downtime, d.Scrap)
		if err != nil {
			return fmt.Errorf("%s: insert day %s: %w", op, d.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (storage.Run, error) {
	var r storage.Run
	err := row.Scan(&r.ID, &r.CreatedAt, &r.StartDate, &r.Shifts, &r.HoursPerShift, &r.OperatorsPerShift,
		&r.ScrapRate, &r.DowntimeRate, &r.OrderCount, &r.OnTimeCount, &r.TotalProduction,
		&r.TotalLeadTime, &r.AverageLeadTime, &r.OnTimePercentage)
	return r, err
}

func (s *Storage) GetRun(ctx context.Context, id string) (*storage.Run, error) {
	const op = "storage.mysql.GetRun"

	run, err := scanRun(s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM sim_runs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrRunNotFound)
		}
		return nil, fmt.Errorf("%s: id=%s: %w", op, id, err)
	}

	return &run, nil
}

func (s *Storage) ListRuns(ctx context.Context, limit int) ([]storage.Run, error) {
	const op = "storage.mysql.ListRuns"

	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM sim_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	runs := []storage.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *Storage) GetRunOrders(ctx context.Context, id string) ([]storage.RunOrder, error) {
	const op = "storage.mysql.GetRunOrders"

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, order_id, completion_time, started_at, completed_at, lead_time, on_time
		FROM sim_run_orders WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: id=%s: %w", op, id, err)
	}
	defer rows.Close()

	orders := []storage.RunOrder{}
	for rows.Next() {
		var o storage.RunOrder
		if err := rows.Scan(&o.Seq, &o.OrderID, &o.CompletionTime, &o.StartedAt, &o.CompletedAt, &o.LeadTime, &o.OnTime); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (s *Storage) GetRunDaily(ctx context.Context, id string) ([]storage.RunDay, error) {
	const op = "storage.mysql.GetRunDaily"

	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, date, production, downtime, scrap
		FROM sim_run_daily WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: id=%s: %w", op, id, err)
	}
	defer rows.Close()

	days := []storage.RunDay{}
	for rows.Next() {
		var d storage.RunDay
		if err := rows.Scan(&d.Seq, &d.Date, &d.Production, &d.Downtime, &d.Scrap); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// DeleteRun removes a run, its orders and days go with it through ON DELETE CASCADE.
func (s *Storage) DeleteRun(ctx context.Context, id string) error {
	const op = "storage.mysql.DeleteRun"

	res, err := s.db.ExecContext(ctx, `DELETE FROM sim_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: id=%s: %w", op, id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: id=%s: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: id=%s: %w", op, id, storage.ErrRunNotFound)
	}

	return nil
}
