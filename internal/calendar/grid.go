// Package calendar computes month-view grid geometry. It knows nothing about
// agenda content.
package calendar

import (
	"time"

	"github.com/jinzhu/now"

	"agendacal/internal/model"
)

// MonthGrid returns the Monday-first week rows covering year/month. Leading
// and trailing days from neighbouring months are tagged OtherMonth, so the
// first row starts on a Monday and the last row ends on a Sunday.
// DaysFromToday is measured from the date of at in loc.
func MonthGrid(year int, month time.Month, at time.Time, loc *time.Location) []model.CalendarWeek {
	if loc == nil {
		panic("calendar: reference time zone is nil")
	}

	cfg := &now.Config{WeekStartDay: time.Monday, TimeLocation: loc}
	month1 := cfg.With(time.Date(year, month, 1, 12, 0, 0, 0, loc))

	first := model.DateOf(month1.BeginningOfMonth(), loc)
	last := model.DateOf(month1.EndOfMonth(), loc)
	today := model.DateOf(at, loc)

	lead := first.ISOWeekday() - 1
	trail := 7 - last.ISOWeekday()
	total := lead + first.DaysUntil(last) + 1 + trail

	weeks := make([]model.CalendarWeek, total/7)
	d := first.AddDays(-lead)
	for i := 0; i < total; i++ {
		weeks[i/7][i%7] = model.CalendarDay{
			Date:          d,
			Weekday:       d.ISOWeekday(),
			MonthDay:      d.Day,
			OtherMonth:    d.Month != month || d.Year != year,
			DaysFromToday: today.DaysUntil(d),
		}
		d = d.AddDays(1)
	}
	return weeks
}

// Days flattens the grid rows into a single slice.
func Days(weeks []model.CalendarWeek) []model.CalendarDay {
	out := make([]model.CalendarDay, 0, len(weeks)*7)
	for _, w := range weeks {
		out = append(out, w[:]...)
	}
	return out
}
