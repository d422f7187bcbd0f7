// Package schedule holds the milestone date arithmetic shared by every
// due/overdue decision in the system. The 0-day and window boundaries are
// defined here exactly once.
package schedule

import (
	"math"
	"time"
)

// Milestone cycles mandated for civil servants.
const (
	// KGBCycleYears is the interval between periodic salary-step increases.
	KGBCycleYears = 2
	// PangkatCycleYears is the interval between rank promotions.
	PangkatCycleYears = 4
)

// DefaultWindowDays is the due-soon horizon used when no override is configured.
const DefaultWindowDays = 90

// Status classifies a milestone date relative to now.
type Status string

const (
	StatusOverdue Status = "overdue"
	StatusDueSoon Status = "due_soon"
	StatusOK      Status = "ok"
)

// AddYears advances a calendar date by n years. February 29 clamps to
// February 28 when the target year is not a leap year; time.AddDate would
// normalize to March 1 instead, which shifts every schedule derived from a
// leap-day anniversary. An absent date stays absent.
func AddYears(d Date, n int) Date {
	if d.IsZero() {
		return Date{}
	}
	year, month, day := d.Date()
	target := NewDate(year+n, month, day)
	if target.Month() != month {
		// Day overflowed the target month, clamp to its last day.
		target = NewDate(year+n, month+1, 0)
	}
	return target
}

// NextKGB computes the next salary-step date from the last one.
func NextKGB(last Date) Date {
	return AddYears(last, KGBCycleYears)
}

// NextPangkat computes the next promotion date from the last one.
func NextPangkat(last Date) Date {
	return AddYears(last, PangkatCycleYears)
}

// DaysUntil returns the number of days from now until d, using ceiling
// division: a date exactly now is 0, one day in the past is -1. A due date
// earlier today therefore still counts as 0 until midnight passes.
func DaysUntil(d Date, now time.Time) int {
	return int(math.Ceil(d.Sub(now.UTC()).Hours() / 24))
}

// Classify buckets a date into overdue / due_soon / ok against the given
// window. Callers must skip absent dates; they carry no status.
func Classify(d Date, now time.Time, windowDays int) Status {
	days := DaysUntil(d, now)
	switch {
	case days < 0:
		return StatusOverdue
	case days <= windowDays:
		return StatusDueSoon
	default:
		return StatusOK
	}
}

// WithinNextDays reports whether d falls between now and n days from now,
// inclusive on both ends. Absent dates are never within any window.
func WithinNextDays(d Date, now time.Time, n int) bool {
	if d.IsZero() {
		return false
	}
	days := DaysUntil(d, now)
	return days >= 0 && days <= n
}
