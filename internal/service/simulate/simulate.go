package simulate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"shopfloor-sim/internal/metrics"
	"shopfloor-sim/internal/simulation"
	"shopfloor-sim/internal/storage"
	"shopfloor-sim/internal/timeparse"
)

type RunSaver interface {
	SaveRun(ctx context.Context, run storage.RunDetails) error
}

type Parameters struct {
	StartDate         string  `json:"start_date"`
	Shifts            int     `json:"shifts"`
	HoursPerShift     int     `json:"hours_per_shift"`
	OperatorsPerShift int     `json:"operators_per_shift"`
	ScrapRate         float64 `json:"scrap_rate"`
	DowntimeRate      float64 `json:"downtime_rate"`
}

type Request struct {
	Parameters Parameters                `json:"parameters"`
	Orders     []simulation.OrderRequest `json:"orders"`
}

type Summary struct {
	TotalProduction          int     `json:"total_production"`
	AverageLeadTime          float64 `json:"average_lead_time"`
	OnTimeDelivery           int     `json:"on_time_delivery"`
	OnTimeDeliveryPercentage float64 `json:"on_time_delivery_percentage"`
}

type Response struct {
	RunID           string                      `json:"run_id"`
	Parameters      Parameters                  `json:"parameters"`
	CompletedOrders []simulation.CompletedOrder `json:"completed_orders"`
	DailyMetrics    *simulation.DailyMetrics    `json:"daily_metrics"`
	TotalLeadTime   float64                     `json:"total_lead_time"`
	Metrics         Summary                     `json:"metrics"`
}

// ValidationError rejects a request before it reaches the simulator.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type Service struct {
	storage   RunSaver
	metrics   *metrics.Metrics
	log       *slog.Logger
	loc       *time.Location
	maxOrders int

	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithLocation sets the calendar start dates and entry times are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithMaxOrders caps the number of orders in one request, 0 disables the cap.
func WithMaxOrders(n int) Option {
	return func(s *Service) { s.maxOrders = n }
}

func NewService(storage RunSaver, m *metrics.Metrics, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		metrics: m,
		log:     log,
		loc:     time.UTC,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Simulate(ctx context.Context, req Request) (*Response, error) {
	const op = "service.simulate.Simulate"

	started := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.validate(req); err != nil {
		s.metrics.ObserveRun(metrics.OutcomeInvalid, started)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p := req.Parameters
	start, err := timeparse.ParseInLocation(p.StartDate, s.loc)
	if err != nil {
		s.metrics.ObserveRun(metrics.OutcomeParseError, started)
		return nil, fmt.Errorf("%s: start date: %w", op, err)
	}

	sim, err := simulation.New(simulation.ShopParameters{
		Start:             start,
		Shifts:            p.Shifts,
		HoursPerShift:     p.HoursPerShift,
		OperatorsPerShift: p.OperatorsPerShift,
		ScrapRate:         p.ScrapRate,
		DowntimeRate:      p.DowntimeRate,
	})
	if err != nil {
		s.metrics.ObserveRun(metrics.OutcomeDomainError, started)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	res, err := sim.Run(req.Orders)
	if err != nil {
		var rangeErr *simulation.RangeError
		if errors.As(err, &rangeErr) {
			s.metrics.ObserveRun(metrics.OutcomeInvalid, started)
		} else {
			s.metrics.ObserveRun(metrics.OutcomeParseError, started)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summary := Summarize(res, len(req.Orders))
	runID := s.newID()

	if err := s.storage.SaveRun(ctx, s.toRunDetails(runID, sim.Parameters(), res, summary)); err != nil {
		s.metrics.ObserveRun(metrics.OutcomeStoreError, started)
		return nil, fmt.Errorf("%s: save run: %w", op, err)
	}

	s.metrics.ObserveRun(metrics.OutcomeOK, started)
	s.metrics.ObserveCompleted(len(res.CompletedOrders), res.Totals.TotalProduction)

	s.log.Info("simulation run completed",
		slog.String("run_id", runID),
		slog.Int("orders", len(req.Orders)),
		slog.Int("days", res.DailyMetrics.Len()),
		slog.Int("on_time", summary.OnTimeDelivery),
		slog.Duration("took", time.Since(started)),
	)

	return &Response{
		RunID:           runID,
		Parameters:      p,
		CompletedOrders: res.CompletedOrders,
		DailyMetrics:    res.DailyMetrics,
		TotalLeadTime:   res.Totals.TotalLeadTime,
		Metrics:         summary,
	}, nil
}

func (s *Service) validate(req Request) error {
	p := req.Parameters

	if p.Shifts < 1 {
		return &ValidationError{Field: "shifts", Reason: "must be at least 1"}
	}
	if err := checkRate("scrap_rate", p.ScrapRate); err != nil {
		return err
	}
	if err := checkRate("downtime_rate", p.DowntimeRate); err != nil {
		return err
	}
	if s.maxOrders > 0 && len(req.Orders) > s.maxOrders {
		return &ValidationError{Field: "orders", Reason: fmt.Sprintf("at most %d orders per run", s.maxOrders)}
	}

	seen := make(map[int]struct{}, len(req.Orders))
	for _, o := range req.Orders {
		if _, dup := seen[o.ID]; dup {
			return &ValidationError{Field: "orders", Reason: fmt.Sprintf("duplicate order id %d", o.ID)}
		}
		seen[o.ID] = struct{}{}

		if o.Size <= 0 {
			return &ValidationError{Field: "size", Reason: fmt.Sprintf("order %d: must be positive", o.ID)}
		}
		if !isFinite(o.AgreedLeadTime) {
			return &ValidationError{Field: "agreed_lead_time", Reason: fmt.Sprintf("order %d: must be a finite number", o.ID)}
		}
		if o.AgreedLeadTime < 0 {
			return &ValidationError{Field: "agreed_lead_time", Reason: fmt.Sprintf("order %d: must not be negative", o.ID)}
		}
	}

	return nil
}

func checkRate(field string, v float64) error {
	if !isFinite(v) {
		return &ValidationError{Field: field, Reason: "must be a finite number"}
	}
	if v < 0 {
		return &ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Summarize derives the report figures. An empty run has zero averages
// instead of a division by zero.
func Summarize(res *simulation.Result, orderCount int) Summary {
	sum := Summary{TotalProduction: res.Totals.TotalProduction}

	for _, c := range res.CompletedOrders {
		if c.OnTime {
			sum.OnTimeDelivery++
		}
	}

	if orderCount > 0 {
		sum.AverageLeadTime = simulation.Round2(res.Totals.TotalLeadTime / float64(orderCount))
		sum.OnTimeDeliveryPercentage = float64(sum.OnTimeDelivery) / float64(orderCount) * 100
	}

	return sum
}

func (s *Service) toRunDetails(id string, params simulation.ShopParameters, res *simulation.Result, sum Summary) storage.RunDetails {
	run := storage.RunDetails{
		Run: storage.Run{
			ID:                id,
			CreatedAt:         s.now().UTC(),
			StartDate:         params.Start,
			Shifts:            params.Shifts,
			HoursPerShift:     params.HoursPerShift,
			OperatorsPerShift: params.OperatorsPerShift,
			ScrapRate:         params.ScrapRate,
			DowntimeRate:      params.DowntimeRate,
			OrderCount:        len(res.CompletedOrders),
			OnTimeCount:       sum.OnTimeDelivery,
			TotalProduction:   res.Totals.TotalProduction,
			TotalLeadTime:     res.Totals.TotalLeadTime,
			AverageLeadTime:   sum.AverageLeadTime,
			OnTimePercentage:  sum.OnTimeDeliveryPercentage,
		},
		Orders: make([]storage.RunOrder, 0, len(res.CompletedOrders)),
		Daily:  make([]storage.RunDay, 0, res.DailyMetrics.Len()),
	}

	for i, c := range res.CompletedOrders {
		run.Orders = append(run.Orders, storage.RunOrder{
			Seq:            i,
			OrderID:        c.OrderID,
			CompletionTime: c.CompletionTime,
			StartedAt:      c.StartedAt,
			CompletedAt:    c.CompletedAt,
			LeadTime:       c.LeadTime,
			OnTime:         c.OnTime,
		})
	}

	for i, date := range res.DailyMetrics.Dates() {
		day, _ := res.DailyMetrics.Get(date)
		run.Daily = append(run.Daily, storage.RunDay{
			Seq:        i,
			Date:       date,
			Production: day.Production,
			Downtime:   day.Downtime,
			Scrap:      day.Scrap,
		})
	}

	return run
}

// IsInputError reports whether err was caused by the request itself rather
// than by the service.
func IsInputError(err error) bool {
	var (
		parseErr      *timeparse.ParseError
		domainErr     *simulation.DomainError
		rangeErr      *simulation.RangeError
		validationErr *ValidationError
	)
	return errors.As(err, &parseErr) || errors.As(err, &domainErr) ||
		errors.As(err, &rangeErr) || errors.As(err, &validationErr)
}
