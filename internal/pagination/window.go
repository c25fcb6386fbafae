// Package pagination maps page indices to date windows for incremental
// loading, and keeps the page counter from running ahead of loaded data.
package pagination

import (
	"time"

	"github.com/jinzhu/now"

	"agendacal/internal/model"
)

// Window is the half-open interval [From, To) to request for a page.
type Window struct {
	From time.Time `json:"fromDate"`
	To   time.Time `json:"toDate"`
}

// Range converts w to a model.DateRange.
func (w Window) Range() model.DateRange {
	return model.DateRange{Start: w.From, End: w.To}
}

// MonthWindow maps page p to [at+(2p-1) months, at+(2p+1) months). Page 0
// is centred on at; each step shifts by two months. Negative and large
// pages are computed the same way.
func MonthWindow(page int, at time.Time) Window {
	return Window{
		From: addMonths(at, 2*page-1),
		To:   addMonths(at, 2*page+1),
	}
}

// WeekWindow maps week offset k to the Monday-first week k weeks away from
// the week containing at.
func WeekWindow(offset int, at time.Time, loc *time.Location) Window {
	if loc == nil {
		panic("pagination: reference time zone is nil")
	}
	cfg := &now.Config{WeekStartDay: time.Monday, TimeLocation: loc}
	start := cfg.With(at.In(loc)).BeginningOfWeek().AddDate(0, 0, 7*offset)
	return Window{From: start, To: start.AddDate(0, 0, 7)}
}

// addMonths shifts t by n calendar months, clamping the day to the end of
// the target month (Jan 31 + 1 month = Feb 29 in a leap year).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()

	first := time.Date(y, m+time.Month(n), 1, hh, mm, ss, t.Nanosecond(), t.Location())
	lastDay := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(first.Year(), first.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}
