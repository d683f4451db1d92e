package timeparse

import (
	"fmt"
	"time"
)

// Layouts are tried in this order, the first one that matches wins.
var Layouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("time data '%s' does not match any known format", e.Value)
}

// Parse reads value as a UTC instant.
func Parse(value string) (time.Time, error) {
	return ParseInLocation(value, time.UTC)
}

// ParseInLocation reads value as wall clock time in loc. A nil loc means UTC.
func ParseInLocation(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range Layouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, &ParseError{Value: value}
}
