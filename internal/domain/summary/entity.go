package summary

import (
	"fmt"
	"time"
)

// Status values for a classified day.
const (
	StatusLate   = "Late"
	StatusOnTime = "On Time"
)

// EarlyCheckout values. Kept as Yes/No strings because they surface directly
// in the detail table and the spreadsheet export.
const (
	EarlyYes = "Yes"
	EarlyNo  = "No"
)

// DailyRecord is one user's attendance on one calendar date: the first and
// last punch by full timestamp comparison. With a single punch in the day
// both fields hold that punch.
type DailyRecord struct {
	UserID    string
	Name      string
	NumericID int
	Date      time.Time
	CheckIn   time.Time
	CheckOut  time.Time
}

// Clock is a time of day used as a check-in or check-out threshold.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// ParseClock parses "HH:MM:SS" or "HH:MM".
func ParseClock(s string) (Clock, error) {
	var c Clock
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &c.Hour, &c.Minute, &c.Second); err != nil {
		c.Second = 0
		if _, err := fmt.Sscanf(s, "%d:%d", &c.Hour, &c.Minute); err != nil {
			return Clock{}, fmt.Errorf("invalid clock value %q: %w", s, err)
		}
	}
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 || c.Second < 0 || c.Second > 59 {
		return Clock{}, fmt.Errorf("clock value %q out of range", s)
	}
	return c, nil
}

// Seconds returns the clock as seconds since midnight.
func (c Clock) Seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}
