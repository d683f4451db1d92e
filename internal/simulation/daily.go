package simulation

import (
	"bytes"
	"encoding/json"
)

type DayMetrics struct {
	Production int     `json:"production"`
	Downtime   float64 `json:"downtime"`
	Scrap      float64 `json:"scrap"`
}

// DailyMetrics accumulates production per completion date and remembers the
// order in which dates were first seen.
type DailyMetrics struct {
	dates  []string
	byDate map[string]*DayMetrics
}

func NewDailyMetrics() *DailyMetrics {
	return &DailyMetrics{byDate: make(map[string]*DayMetrics)}
}

func (d *DailyMetrics) Add(date string, production int, downtime, scrap float64) {
	day, ok := d.byDate[date]
	if !ok {
		day = &DayMetrics{}
		d.byDate[date] = day
		d.dates = append(d.dates, date)
	}

	day.Production += production
	day.Downtime += downtime
	day.Scrap += scrap
}

func (d *DailyMetrics) Get(date string) (DayMetrics, bool) {
	day, ok := d.byDate[date]
	if !ok {
		return DayMetrics{}, false
	}
	return *day, true
}

// Dates returns the dates in first-seen order.
func (d *DailyMetrics) Dates() []string {
	out := make([]string, len(d.dates))
	copy(out, d.dates)
	return out
}

func (d *DailyMetrics) Len() int {
	return len(d.dates)
}

// MarshalJSON writes the dates as an object keyed by date, in first-seen order.
func (d *DailyMetrics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, date := range d.dates {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(date)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(d.byDate[date])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
