package agenda

import (
	"slices"
	"time"

	"github.com/jinzhu/now"

	"agendacal/internal/model"
)

// Options carries the caller-owned clock and reference zone.
type Options struct {
	Now      time.Time
	Location *time.Location
}

// GroupByDay buckets items by Date and returns the days in ascending date
// order, each with its items sorted by Start. Dates without items are not
// emitted; use Week for a dense window.
func GroupByDay(items []model.AgendaItem, loc *time.Location, at time.Time) []model.AgendaDay {
	mustLocation(loc)

	buckets := make(map[model.Date][]model.AgendaItem)
	for _, item := range items {
		buckets[item.Date] = append(buckets[item.Date], item)
	}

	dates := make([]model.Date, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	slices.SortFunc(dates, model.Date.Compare)

	today := model.DateOf(at, loc)
	days := make([]model.AgendaDay, 0, len(dates))
	for _, d := range dates {
		days = append(days, newDay(d, today, buckets[d]))
	}
	return days
}

// StartOfWeek returns Monday 00:00 of the week containing t, in loc.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	mustLocation(loc)
	cfg := &now.Config{WeekStartDay: time.Monday, TimeLocation: loc}
	return cfg.With(t.In(loc)).BeginningOfWeek()
}

// WeekRange returns [StartOfWeek(anchor), +7 days).
func WeekRange(anchor time.Time, loc *time.Location) model.DateRange {
	start := StartOfWeek(anchor, loc)
	return model.DateRange{Start: start, End: start.AddDate(0, 0, 7)}
}

// Week returns the Monday..Sunday window containing anchor. All seven days
// are present even when empty; items dated outside the window are ignored.
func Week(items []model.AgendaItem, anchor time.Time, loc *time.Location, at time.Time) model.AgendaWeek {
	rng := WeekRange(anchor, loc)
	first := model.DateOf(rng.Start, loc)
	last := first.AddDays(6)

	buckets := make(map[model.Date][]model.AgendaItem, 7)
	for _, item := range items {
		if item.Date.Before(first) || item.Date.After(last) {
			continue
		}
		buckets[item.Date] = append(buckets[item.Date], item)
	}

	today := model.DateOf(at, loc)
	week := model.AgendaWeek{DateRange: rng}
	for i := range week.Days {
		d := first.AddDays(i)
		week.Days[i] = newDay(d, today, buckets[d])
	}
	return week
}

// Flatten concatenates the items of days in order.
func Flatten(days []model.AgendaDay) []model.AgendaItem {
	var n int
	for _, d := range days {
		n += len(d.Items)
	}
	out := make([]model.AgendaItem, 0, n)
	for _, d := range days {
		out = append(out, d.Items...)
	}
	return out
}

// InRange keeps the items whose Start falls in rng. Items without a start
// are dropped.
func InRange(items []model.AgendaItem, rng model.DateRange) []model.AgendaItem {
	out := make([]model.AgendaItem, 0, len(items))
	for _, it := range items {
		if !it.Start.IsZero() && rng.Contains(it.Start) {
			out = append(out, it)
		}
	}
	return out
}

// Build runs normalize, filter and group over one snapshot.
func Build(src model.Sources, prefs model.CoursePreferencesMap, opts Options) []model.AgendaDay {
	items := Filter(Normalize(src, opts.Location), prefs, opts.Location)
	return GroupByDay(items, opts.Location, opts.Now)
}

// BuildWeek is Build restricted to the week containing anchor.
func BuildWeek(src model.Sources, prefs model.CoursePreferencesMap, anchor time.Time, opts Options) model.AgendaWeek {
	items := Filter(Normalize(src, opts.Location), prefs, opts.Location)
	return Week(items, anchor, opts.Location, opts.Now)
}

func newDay(d, today model.Date, items []model.AgendaItem) model.AgendaDay {
	sorted := make([]model.AgendaItem, len(items))
	copy(sorted, items)
	slices.SortStableFunc(sorted, func(a, b model.AgendaItem) int {
		return a.Start.Compare(b.Start)
	})
	return model.AgendaDay{
		Date:    d,
		IsToday: d == today,
		Items:   sorted,
	}
}
