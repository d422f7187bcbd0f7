package schedule

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Layout is the wire format for calendar dates.
const Layout = "2006-01-02"

// Date is a calendar date with day granularity. The zero value means absent.
// All dates are normalized to midnight UTC so comparisons never depend on
// the process timezone.
type Date struct {
	time.Time
}

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an instant to its UTC calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d)
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(raw string) (Date, error) {
	t, err := time.Parse(Layout, strings.TrimSpace(raw))
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return DateOf(t), nil
}

// String renders the date in wire format, or "" when absent.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(Layout)
}

// MarshalJSON renders the date as "YYYY-MM-DD", or null when absent.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(Layout) + `"`), nil
}

// UnmarshalJSON parses "YYYY-MM-DD" strictly. Malformed input from a request
// body is a client error, unlike stored values read via Scan.
func (d *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner. Values the database hands back in an
// unexpected or unparsable shape degrade to absent instead of failing the
// whole row, so one bad record cannot break a collection scan.
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = DateOf(v)
	case []byte:
		d.scanString(string(v))
	case string:
		d.scanString(v)
	default:
		*d = Date{}
	}
	return nil
}

func (d *Date) scanString(raw string) {
	parsed, err := ParseDate(raw)
	if err != nil {
		*d = Date{}
		return
	}
	*d = parsed
}

// Value implements driver.Valuer. Absent dates persist as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}
