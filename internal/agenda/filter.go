package agenda

import (
	"time"

	"agendacal/internal/model"
)

const clockLayout = "15:04"

// Filter drops lectures hidden by the user's course preferences and keeps
// everything else in its original order. Rules are matched by value on the
// (weekday|date, start, end, room) tuple; there is no partial matching.
func Filter(items []model.AgendaItem, prefs model.CoursePreferencesMap, loc *time.Location) []model.AgendaItem {
	mustLocation(loc)

	out := make([]model.AgendaItem, 0, len(items))
	for _, item := range items {
		if hidden(item, prefs, loc) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func hidden(item model.AgendaItem, prefs model.CoursePreferencesMap, loc *time.Location) bool {
	if item.Type != model.TypeLecture || item.Lecture == nil || item.Lecture.CourseShortcode == "" {
		return false
	}
	pref, ok := prefs.Lookup(item.Lecture.CourseShortcode)
	if !ok {
		return false
	}
	if pref.IsHidden || pref.IsHiddenInAgenda {
		return true
	}

	if rec, ok := RecurrenceOf(item, loc); ok && pref.HidesRecurrence(rec) {
		return true
	}
	if single, ok := SingleEventOf(item, loc); ok && pref.HidesSingleEvent(single) {
		return true
	}
	return false
}

// RecurrenceOf returns the weekly slot tuple of a lecture, suitable for a
// "hide this recurring slot" action. ok is false for non-lectures.
func RecurrenceOf(item model.AgendaItem, loc *time.Location) (model.HiddenRecurrence, bool) {
	if item.Type != model.TypeLecture || item.Lecture == nil {
		return model.HiddenRecurrence{}, false
	}
	start := item.Start.In(loc)
	return model.HiddenRecurrence{
		Weekday:   model.ISOWeekday(start.Weekday()),
		StartTime: start.Format(clockLayout),
		EndTime:   item.End.In(loc).Format(clockLayout),
		Room:      item.Lecture.Place.RoomKey(),
	}, true
}

// SingleEventOf returns the dated slot tuple of a lecture, suitable for a
// "hide this occurrence" action.
func SingleEventOf(item model.AgendaItem, loc *time.Location) (model.HiddenSingleEvent, bool) {
	if item.Type != model.TypeLecture || item.Lecture == nil {
		return model.HiddenSingleEvent{}, false
	}
	return model.HiddenSingleEvent{
		Date:      item.Date,
		StartTime: item.Start.In(loc).Format(clockLayout),
		EndTime:   item.End.In(loc).Format(clockLayout),
		Room:      item.Lecture.Place.RoomKey(),
	}, true
}
