package ics

import (
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"agendacal/internal/model"
)

const productID = "-//agendacal//agenda export//EN"

// Export writes the items of days as an iCalendar feed. Items without a
// start are skipped since a VEVENT needs DTSTART. stamp is used as DTSTAMP
// so repeated exports of the same data are byte-identical. Each VEVENT
// carries the item key as UID and the item kind in CATEGORIES, which is
// what ParseTimetable uses to restore both.
func Export(w io.Writer, days []model.AgendaDay, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, day := range days {
		for _, item := range day.Items {
			if item.Start.IsZero() {
				continue
			}
			addItem(cal, item, stamp)
		}
	}
	return cal.SerializeTo(w)
}

func addItem(cal *ical.Calendar, item model.AgendaItem, stamp time.Time) {
	ev := cal.AddEvent(item.Key)
	ev.SetDtStampTime(stamp)
	ev.SetSummary(item.Title)
	ev.SetStartAt(item.Start)
	end := item.End
	if end.IsZero() || end.Before(item.Start) {
		end = item.Start
	}
	ev.SetEndAt(end)
	ev.AddProperty(ical.ComponentPropertyCategories, strings.ToUpper(string(item.Type)))

	switch item.Type {
	case model.TypeLecture:
		if d := item.Lecture; d != nil {
			if d.CourseShortcode != "" {
				ev.AddProperty(propCourseCode, d.CourseShortcode)
			}
			if loc := placeLabel(d.Place); loc != "" {
				ev.SetLocation(loc)
			}
			if d.Description != "" && d.Description != "-" {
				ev.SetDescription(d.Description)
			}
		}
	case model.TypeExam:
		if d := item.Exam; d != nil {
			if d.CourseShortcode != "" {
				ev.AddProperty(propCourseCode, d.CourseShortcode)
			}
			if len(d.Places) > 0 {
				ev.SetLocation(placeLabel(&d.Places[0]))
			}
		}
	case model.TypeBooking:
		if d := item.Booking; d != nil {
			if loc := placeLabel(d.Place); loc != "" {
				ev.SetLocation(loc)
			}
		}
	case model.TypeDeadline:
		if d := item.Deadline; d != nil && d.URL != "" {
			ev.SetURL(d.URL)
		}
	}
}

func placeLabel(p *model.Place) string {
	if key := p.RoomKey(); key != "" {
		return key
	}
	if p != nil {
		return p.Name
	}
	return ""
}
