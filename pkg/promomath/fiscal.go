package promomath

import "time"

// FiscalYear buckets a date into a tenant's fiscal year given the configured
// start month (0 = January, matching the stored tenant setting).
//
// The formula intentionally reproduces the reference behavior: once the
// calendar month reaches the start month the fiscal year is calendar year + 1,
// so with a January start every date maps to calendar year + 1. Do not
// "correct" this without a confirmed business decision; tests pin it.
func FiscalYear(t time.Time, fiscalStartMonth int) int {
	year := t.Year()
	month := int(t.Month()) - 1
	if month >= fiscalStartMonth {
		return year + 1
	}
	return year
}

// Quarter returns the calendar quarter (1..4), independent of fiscal start.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// FiscalElapsed returns the fraction of the fiscal year elapsed at t, used for
// goal pacing. Always in [0, 1).
func FiscalElapsed(t time.Time, fiscalStartMonth int) float64 {
	month := int(t.Month()) - 1
	offset := month - fiscalStartMonth
	if offset < 0 {
		offset += 12
	}
	return float64(offset) / 12
}
