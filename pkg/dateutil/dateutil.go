package dateutil

import (
	"time"
)

// MaturityDate returns the date an investment started on start matures after tenureYears
func MaturityDate(start time.Time, tenureYears int) time.Time {
	return AddYears(start, tenureYears)
}

// IsMatured reports whether maturity has been reached at atDate
func IsMatured(maturity, atDate time.Time) bool {
	return !atDate.Before(maturity)
}

// MonthsElapsed counts whole calendar months between two dates.
// Returns 0 when to is before from.
func MonthsElapsed(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// InstallmentsPaid returns how many monthly installments of a scheme started on
// start have fallen due by atDate, the first one being due on the start date.
func InstallmentsPaid(start, atDate time.Time, totalInstallments int) int {
	if atDate.Before(start) {
		return 0
	}
	paid := MonthsElapsed(start, atDate) + 1
	if paid > totalInstallments {
		return totalInstallments
	}
	return paid
}

// YearsUntilDate calculates the number of years between two dates
func YearsUntilDate(fromDate, toDate time.Time) float64 {
	duration := toDate.Sub(fromDate)
	return duration.Hours() / 24 / 365.25
}

// AddYears adds a specified number of years to a date
func AddYears(date time.Time, years int) time.Time {
	return date.AddDate(years, 0, 0)
}

// AddMonths adds a specified number of months to a date
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}

// BeginningOfDay truncates a date to midnight in its own location
func BeginningOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}
