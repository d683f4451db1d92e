package storage

import (
	"errors"
	"time"
)

var (
	ErrRunNotFound = errors.New("simulation run not found")
	ErrRunExists   = errors.New("simulation run already exists")
)

// Run is the header of a stored simulation run: its parameters and totals.
type Run struct {
	ID                string    `json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	StartDate         time.Time `json:"start_date"`
	Shifts            int       `json:"shifts"`
	HoursPerShift     int       `json:"hours_per_shift"`
	OperatorsPerShift int       `json:"operators_per_shift"`
	ScrapRate         float64   `json:"scrap_rate"`
	DowntimeRate      float64   `json:"downtime_rate"`
	OrderCount        int       `json:"order_count"`
	OnTimeCount       int       `json:"on_time_count"`
	TotalProduction   int       `json:"total_production"`
	TotalLeadTime     float64   `json:"total_lead_time"`
	AverageLeadTime   float64   `json:"average_lead_time"`
	OnTimePercentage  float64   `json:"on_time_percentage"`
}

// RunOrder is one completed order, Seq is its position in completion order.
type RunOrder struct {
	Seq            int       `json:"seq"`
	OrderID        int       `json:"order_id"`
	CompletionTime string    `json:"completion_time"`
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
	LeadTime       float64   `json:"lead_time"`
	OnTime         bool      `json:"on_time"`
}

type RunDay struct {
	Seq        int     `json:"seq"`
	Date       string  `json:"date"`
	Production int     `json:"production"`
	Downtime   float64 `json:"downtime"`
	Scrap      float64 `json:"scrap"`
}

type RunDetails struct {
	Run
	Orders []RunOrder `json:"orders"`
	Daily  []RunDay   `json:"daily"`
}
