package utils

import (
	"fmt"
	"os"
	"time"
)

// DateLocation is the application's timezone
var DateLocation = time.UTC

// InitializeDateLocation sets up the application's timezone
func InitializeDateLocation() error {
	timezone := os.Getenv("DB_TIMEZONE")
	if timezone == "" {
		timezone = "Africa/Harare" // fallback default
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return err
	}
	DateLocation = loc
	return nil
}

// NormalizeDate converts a time.Time to a normalized date at midnight in the application timezone
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.In(DateLocation).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, DateLocation)
}

// Today returns today's date normalized at midnight in the application timezone
func Today() time.Time {
	return NormalizeDate(time.Now())
}

// Date layouts accepted in uploaded files, tried in order. Spreadsheet
// exports from the tools operators actually use cover all of these.
var flexibleDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006/01/02",
	"01-02-06", // excelize renders date cells this way by default
}

// ParseFlexibleDate parses a date cell in any accepted layout.
func ParseFlexibleDate(raw string) (time.Time, error) {
	for _, layout := range flexibleDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", raw)
}
