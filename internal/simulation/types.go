package simulation

import "time"

const (
	DateLayout       = "01/02/2006"
	CompletionLayout = "01/02/2006 03:04"
)

// ShopParameters describe the shop floor for one run.
type ShopParameters struct {
	Start             time.Time `json:"start"`
	Shifts            int       `json:"shifts"` // carried, not used in duration math
	HoursPerShift     int       `json:"hours_per_shift"`
	OperatorsPerShift int       `json:"operators_per_shift"`
	ScrapRate         float64   `json:"scrap_rate"`
	DowntimeRate      float64   `json:"downtime_rate"`
}

// Capacity is the number of units the shop produces per hour.
func (p ShopParameters) Capacity() int {
	return p.OperatorsPerShift * p.HoursPerShift
}

type OrderRequest struct {
	ID             int     `json:"id"`
	Size           int     `json:"size"`
	EntryTime      string  `json:"entry_time"`
	AgreedLeadTime float64 `json:"agreed_lead_time"`
}

type CompletedOrder struct {
	OrderID        int       `json:"order_id"`
	CompletionTime string    `json:"completion_time"`
	LeadTime       float64   `json:"lead_time"`
	OnTime         bool      `json:"on_time"`
	WaitHours      float64   `json:"wait_hours"` // start offset from the run start
	StartedAt      time.Time `json:"started_at"`
	CompletedAt    time.Time `json:"completed_at"`
}

type RunTotals struct {
	TotalProduction int     `json:"total_production"`
	TotalLeadTime   float64 `json:"total_lead_time"`
}

type Result struct {
	CompletedOrders []CompletedOrder `json:"completed_orders"`
	DailyMetrics    *DailyMetrics    `json:"daily_metrics"`
	Totals          RunTotals        `json:"totals"`
}
