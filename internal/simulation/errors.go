package simulation

import "fmt"

// DomainError reports shop parameters no run can be computed with.
type DomainError struct {
	HoursPerShift     int
	OperatorsPerShift int
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("shift capacity must be positive: %d operators x %d hours", e.OperatorsPerShift, e.HoursPerShift)
}

// RangeError reports an order whose hours cannot be placed on the timeline:
// NaN, negative, or longer than a time.Duration can hold.
type RangeError struct {
	OrderID int
	Field   string
	Hours   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("order %d: %s of %g hours is out of range", e.OrderID, e.Field, e.Hours)
}
