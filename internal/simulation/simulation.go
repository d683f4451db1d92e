// Package simulation estimates when orders complete on a shop floor with fixed
// shift capacity.
//
// Every order is an independent process: it is released at max(entry, run start)
// and completes after its production, scrap and downtime hours. Orders do not
// compete for operators. Completions are folded into the run totals and the
// per-day metrics in simulated time order.
package simulation

import (
	"fmt"
	"math"
	"time"

	"shopfloor-sim/internal/timeparse"
)

type Simulator struct {
	params ShopParameters
}

// New fails with a *DomainError when the shop has no capacity to work with.
func New(params ShopParameters) (*Simulator, error) {
	if params.HoursPerShift <= 0 || params.OperatorsPerShift <= 0 {
		return nil, &DomainError{HoursPerShift: params.HoursPerShift, OperatorsPerShift: params.OperatorsPerShift}
	}

	return &Simulator{params: params}, nil
}

func (s *Simulator) Parameters() ShopParameters {
	return s.params
}

type process struct {
	order OrderRequest

	entry      time.Time
	start      time.Time
	completion time.Time

	duration time.Duration

	wait       float64
	production float64
	scrap      float64
	downtime   float64
}

// maxHours is the longest span hoursToDuration converts without overflow.
const maxHours = float64(math.MaxInt64 / int64(time.Hour))

func inRange(hours float64) bool {
	return hours >= 0 && hours <= maxHours
}

func (p *process) plan(params ShopParameters) error {
	p.production = float64(p.order.Size) / float64(params.Capacity())
	p.scrap = p.production * params.ScrapRate
	p.downtime = p.production * params.DowntimeRate

	total := p.production + p.scrap + p.downtime
	if !inRange(total) {
		return &RangeError{OrderID: p.order.ID, Field: "processing time", Hours: total}
	}
	p.duration = hoursToDuration(total)
	return nil
}

func (p *process) release() {
	p.completion = p.start.Add(p.duration)
}

// Run simulates orders and returns their completions. The run is all or
// nothing: an entry time that cannot be parsed fails the whole run with a
// *timeparse.ParseError, and hours that do not fit the timeline fail it with
// a *RangeError. Neither leaves a partial result.
func (s *Simulator) Run(orders []OrderRequest) (*Result, error) {
	runStart := s.params.Start
	loc := runStart.Location()

	q := make(eventQueue, 0, len(orders))
	for i, order := range orders {
		entry, err := timeparse.ParseInLocation(order.EntryTime, loc)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", order.ID, err)
		}

		start := entry
		if start.Before(runStart) {
			start = runStart
		}

		p := &process{
			order: order,
			entry: entry,
			start: start,
			wait:  hoursBetween(runStart, start),
		}
		if !inRange(order.AgreedLeadTime) {
			return nil, &RangeError{OrderID: order.ID, Field: "agreed lead time", Hours: order.AgreedLeadTime}
		}
		if err := p.plan(s.params); err != nil {
			return nil, err
		}
		q.schedule(&event{at: start, index: i, stage: stageRelease, proc: p})
	}

	res := &Result{
		CompletedOrders: make([]CompletedOrder, 0, len(orders)),
		DailyMetrics:    NewDailyMetrics(),
	}

	for q.Len() > 0 {
		ev := q.next()

		switch ev.stage {
		case stageRelease:
			ev.proc.release()
			q.schedule(&event{at: ev.proc.completion, index: ev.index, stage: stageComplete, proc: ev.proc})
		case stageComplete:
			res.complete(ev.proc)
		}
	}

	return res, nil
}

func (r *Result) complete(p *process) {
	completion := p.completion
	leadTime := hoursBetween(p.entry, completion)
	promised := p.entry.Add(hoursToDuration(p.order.AgreedLeadTime))

	r.DailyMetrics.Add(completion.Format(DateLayout), p.order.Size, p.downtime, p.scrap)

	r.Totals.TotalProduction += p.order.Size
	r.Totals.TotalLeadTime += leadTime

	r.CompletedOrders = append(r.CompletedOrders, CompletedOrder{
		OrderID:        p.order.ID,
		CompletionTime: completion.Format(CompletionLayout),
		LeadTime:       Round2(leadTime),
		OnTime:         !completion.After(promised),
		WaitHours:      p.wait,
		StartedAt:      p.start,
		CompletedAt:    completion,
	})
}

// hoursToDuration converts fractional hours, rounded to the microsecond.
func hoursToDuration(hours float64) time.Duration {
	return time.Duration(math.Round(hours*float64(time.Hour/time.Microsecond))) * time.Microsecond
}

// hoursBetween is to minus from in hours. Spans past the time.Duration range
// are computed from Unix seconds instead of saturating.
func hoursBetween(from, to time.Time) float64 {
	d := to.Sub(from)
	if d > math.MinInt64 && d < math.MaxInt64 {
		return d.Hours()
	}
	sec := to.Unix() - from.Unix()
	nsec := to.Nanosecond() - from.Nanosecond()
	return float64(sec)/3600 + float64(nsec)/float64(time.Hour)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
