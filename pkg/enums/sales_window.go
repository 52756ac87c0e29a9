package enums

import (
	"fmt"
	"time"
)

// SalesWindow names a trailing time window for ledger rollups.
type SalesWindow string

const (
	SalesWindowDay   SalesWindow = "day"
	SalesWindowWeek  SalesWindow = "week"
	SalesWindowMonth SalesWindow = "month"
	SalesWindowYear  SalesWindow = "year"
)

var validSalesWindows = []SalesWindow{
	SalesWindowDay,
	SalesWindowWeek,
	SalesWindowMonth,
	SalesWindowYear,
}

// String implements fmt.Stringer.
func (w SalesWindow) String() string {
	return string(w)
}

// IsValid reports whether the value is a known SalesWindow.
func (w SalesWindow) IsValid() bool {
	for _, candidate := range validSalesWindows {
		if candidate == w {
			return true
		}
	}
	return false
}

// Duration returns the trailing duration covered by the window.
func (w SalesWindow) Duration() time.Duration {
	switch w {
	case SalesWindowDay:
		return 24 * time.Hour
	case SalesWindowWeek:
		return 7 * 24 * time.Hour
	case SalesWindowMonth:
		return 30 * 24 * time.Hour
	case SalesWindowYear:
		return 365 * 24 * time.Hour
	}
	return 0
}

// ParseSalesWindow converts raw input into a SalesWindow.
func ParseSalesWindow(value string) (SalesWindow, error) {
	for _, candidate := range validSalesWindows {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sales window %q", value)
}
