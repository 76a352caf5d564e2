package types

import (
	"fmt"
	"time"
)

// NextBillingDate calculates the next billing date based on the given start time,
// billing period, and billing period unit (the frequency multiplier).
// For example:
// - If billing period is MONTHLY and unit is 2, we add two months.
// - If billing period is ANNUAL and unit is 1, we add one year.
// This function uses calendar-aware arithmetic which properly handles leap
// years and month-boundary issues, never fixed day-count approximations.
func NextBillingDate(start time.Time, unit int, period BillingPeriod) (time.Time, error) {
	if unit <= 0 {
		return start, fmt.Errorf("billing period unit must be a positive integer, got %d", unit)
	}

	switch period {
	case BILLING_PERIOD_DAILY:
		return AddClampedDate(start, 0, 0, unit), nil
	case BILLING_PERIOD_WEEKLY:
		return AddClampedDate(start, 0, 0, 7*unit), nil
	case BILLING_PERIOD_MONTHLY:
		return AddClampedDate(start, 0, unit, 0), nil
	case BILLING_PERIOD_ANNUAL:
		return AddClampedDate(start, unit, 0, 0), nil
	default:
		return start, fmt.Errorf("invalid billing period type: %s", period)
	}
}

// PreviousBillingDate shifts end backwards by unit billing-period units.
// Month and year arithmetic is calendar-aware: 3 months back from May 31
// lands on the clamped Feb 28/29, never on a fixed 90-day offset.
func PreviousBillingDate(end time.Time, unit int, period BillingPeriod) (time.Time, error) {
	if unit <= 0 {
		return end, fmt.Errorf("billing period unit must be a positive integer, got %d", unit)
	}

	switch period {
	case BILLING_PERIOD_DAILY:
		return end.AddDate(0, 0, -unit), nil
	case BILLING_PERIOD_WEEKLY:
		return end.AddDate(0, 0, -7*unit), nil
	case BILLING_PERIOD_MONTHLY:
		return AddClampedDate(end, 0, -unit, 0), nil
	case BILLING_PERIOD_ANNUAL:
		return AddClampedDate(end, -unit, 0, 0), nil
	default:
		return end, fmt.Errorf("invalid billing period type: %s", period)
	}
}

// TruncateToPeriodBoundary truncates t down to the most recent calendar
// boundary for the given billing period, in t's location:
// - DAILY: midnight of the same day
// - WEEKLY: midnight of the Monday of the same ISO week
// - MONTHLY: midnight of the first of the month
// - ANNUAL: midnight of January 1st
func TruncateToPeriodBoundary(t time.Time, period BillingPeriod) (time.Time, error) {
	y, m, d := t.Date()

	switch period {
	case BILLING_PERIOD_DAILY:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location()), nil
	case BILLING_PERIOD_WEEKLY:
		// ISO weeks start on Monday; Go's Weekday has Sunday == 0
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location()), nil
	case BILLING_PERIOD_MONTHLY:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location()), nil
	case BILLING_PERIOD_ANNUAL:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, t.Location()), nil
	default:
		return t, fmt.Errorf("invalid billing period type: %s", period)
	}
}

// AddClampedDate adds years, months and days to t, clamping the day of
// month to the last valid day of the target month. Unlike time.AddDate,
// adding one month to January 31st yields February 28th (or 29th), not
// March 2nd/3rd. Negative years and months are supported.
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()
	h, min, sec := t.Clock()

	newY := y + years
	newM := time.Month(int(m) + months)

	// Normalise the month into [1, 12], carrying into the year in either
	// direction, e.g. adding 2 months to November lands on January of the
	// next year and subtracting 2 months from January lands on November
	// of the previous year.
	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	// Find the last valid day of the new month
	firstOfNextMonth := time.Date(newY, newM+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNextMonth.Add(-24 * time.Hour).Day()

	newD := d
	if newD > lastDay {
		newD = lastDay
	}

	result := time.Date(newY, newM, newD, h, min, sec, t.Nanosecond(), t.Location())
	if days != 0 {
		result = result.AddDate(0, 0, days)
	}
	return result
}
