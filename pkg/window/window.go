// Package window builds the create_ts filter parameters for incremental
// extraction windows.
package window

import (
	"fmt"
	"time"
)

const filterLayout = "2006-01-02T15:04:05"

// Kind selects how a window is computed relative to "now".
type Kind int

const (
	// Today covers local midnight to the following midnight.
	Today Kind = iota

	// LastDays covers the trailing Days*24h up to now.
	LastDays

	// ThisMonth filters by the current calendar month.
	ThisMonth

	// PrevMonth filters by the previous calendar month.
	PrevMonth

	// All applies no time filter.
	All
)

// Spec is one concrete window.
type Spec struct {
	Kind Kind

	// Days only applies to LastDays.
	Days int
}

// Policy pairs a primary window with an optional wider fallback used when the
// primary returns no records.
type Policy struct {
	Primary  Spec
	Fallback *Spec
}

// Params renders the WMS query parameters for the window at the given time.
// Range windows use create_ts__gte/create_ts__lt in the API's naive local
// layout; month windows use create_ts__month; All renders empty.
func (s Spec) Params(now time.Time) map[string]string {
	switch s.Kind {
	case Today:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return rangeParams(start, start.AddDate(0, 0, 1))
	case LastDays:
		days := s.Days
		if days < 1 {
			days = 1
		}
		return rangeParams(now.AddDate(0, 0, -days), now)
	case ThisMonth:
		return map[string]string{"create_ts__month": fmt.Sprintf("%d", int(now.Month()))}
	case PrevMonth:
		prev := int(now.Month()) - 1
		if prev < 1 {
			prev = 12
		}
		return map[string]string{"create_ts__month": fmt.Sprintf("%d", prev)}
	default:
		return map[string]string{}
	}
}

// Day renders the parameters for one explicit day, used by backlog replays.
func Day(date time.Time) map[string]string {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return rangeParams(start, start.AddDate(0, 0, 1))
}

func rangeParams(from, to time.Time) map[string]string {
	return map[string]string{
		"create_ts__gte": from.Format(filterLayout),
		"create_ts__lt":  to.Format(filterLayout),
	}
}

// String names the window for logs.
func (s Spec) String() string {
	switch s.Kind {
	case Today:
		return "today"
	case LastDays:
		return fmt.Sprintf("last_%d_days", s.Days)
	case ThisMonth:
		return "this_month"
	case PrevMonth:
		return "prev_month"
	default:
		return "all"
	}
}
