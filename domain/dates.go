package domain

import (
	"fmt"
	"time"
)

// BeginningOfDay returns the first instant of the day of the given time
func BeginningOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FiscalYear returns the fiscal year containing the given date. Fiscal years are named by the
// calendar year in which they end, so with a July start, 2019-07-01 is in FY2020.
func FiscalYear(date time.Time) int {
	if Env.FiscalStartMonth == 1 || int(date.Month()) < Env.FiscalStartMonth {
		return date.Year()
	}
	return date.Year() + 1
}

// FiscalYearRange returns the first and last day of the given fiscal year
func FiscalYearRange(fiscalYear int) (time.Time, time.Time) {
	startYear := fiscalYear
	if Env.FiscalStartMonth != 1 {
		startYear--
	}
	start := time.Date(startYear, time.Month(Env.FiscalStartMonth), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)
	return start, end
}

// ParseDateRange parses optional start and end dates in DateFormat. A missing start or end
// defaults to the boundary of the fiscal year containing `now`.
func ParseDateRange(startParam, endParam string, now time.Time) (time.Time, time.Time, error) {
	start, end := FiscalYearRange(FiscalYear(now))

	if startParam != "" {
		s, err := time.Parse(DateFormat, startParam)
		if err != nil {
			return start, end, fmt.Errorf("invalid start date %q: %w", startParam, err)
		}
		start = s
	}

	if endParam != "" {
		e, err := time.Parse(DateFormat, endParam)
		if err != nil {
			return start, end, fmt.Errorf("invalid end date %q: %w", endParam, err)
		}
		end = e
	}

	if end.Before(start) {
		return start, end, fmt.Errorf("end date %s is before start date %s",
			end.Format(DateFormat), start.Format(DateFormat))
	}

	return start, end, nil
}
