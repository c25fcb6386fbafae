// Package agenda merges raw scheduled records into a filtered, day-grouped
// chronological view. Every function here is pure: the reference time zone
// and the current instant are always supplied by the caller.
package agenda

import (
	"time"

	"agendacal/internal/model"
)

// placeholder is shown for optional text the upstream record did not carry.
const placeholder = "-"

// Normalize projects a whole snapshot into agenda items, in source order:
// lectures, exams, bookings, deadlines. Malformed records are still emitted.
func Normalize(src model.Sources, loc *time.Location) []model.AgendaItem {
	mustLocation(loc)

	items := make([]model.AgendaItem, 0, src.Len())
	for _, l := range src.Lectures {
		items = append(items, NormalizeLecture(l, loc))
	}
	for _, e := range src.Exams {
		items = append(items, NormalizeExam(e, loc))
	}
	for _, b := range src.Bookings {
		items = append(items, NormalizeBooking(b, loc))
	}
	for _, d := range src.Deadlines {
		items = append(items, NormalizeDeadline(d, loc))
	}
	return items
}

func NormalizeLecture(r model.RawLecture, loc *time.Location) model.AgendaItem {
	mustLocation(loc)

	place := r.Place
	if place == nil && r.RoomName != "" {
		place = &model.Place{Name: r.RoomName}
	}
	classrooms := r.VirtualClassrooms
	if classrooms == nil {
		classrooms = []model.VirtualClassroom{}
	}

	item := base(model.TypeLecture, r.ID, r.CourseName, r.StartsAt, r.EndsAt, loc)
	item.Lecture = &model.LectureDetails{
		CourseID:          r.CourseID,
		CourseShortcode:   r.CourseShortcode,
		TeacherID:         orPlaceholder(r.TeacherID),
		Description:       orPlaceholder(r.Description),
		Place:             place,
		VirtualClassrooms: classrooms,
	}
	return item
}

// NormalizeExam projects an exam. Exams carry no end, so End equals Start.
func NormalizeExam(r model.RawExam, loc *time.Location) model.AgendaItem {
	mustLocation(loc)

	places := r.Places
	if places == nil {
		places = []model.Place{}
	}

	item := base(model.TypeExam, r.ID, r.CourseName, r.StartsAt, r.StartsAt, loc)
	item.Exam = &model.ExamDetails{
		CourseShortcode:   r.CourseShortcode,
		TeacherID:         orPlaceholder(r.TeacherID),
		Type:              orPlaceholder(r.Type),
		IsTimeToBeDefined: r.IsTimeToBeDefined,
		Places:            places,
	}
	return item
}

func NormalizeBooking(r model.RawBooking, loc *time.Location) model.AgendaItem {
	mustLocation(loc)

	item := base(model.TypeBooking, r.ID, r.Topic, r.StartsAt, r.EndsAt, loc)
	item.Booking = &model.BookingDetails{
		Topic: orPlaceholder(r.Topic),
		Place: r.Place,
	}
	return item
}

// NormalizeDeadline projects a deadline as a point in time at EndsAt.
func NormalizeDeadline(r model.RawDeadline, loc *time.Location) model.AgendaItem {
	mustLocation(loc)

	item := base(model.TypeDeadline, r.ID, r.Title, r.EndsAt, r.EndsAt, loc)
	item.Deadline = &model.DeadlineDetails{URL: r.URL}
	return item
}

func base(typ model.ItemType, id, title string, start, end time.Time, loc *time.Location) model.AgendaItem {
	item := model.AgendaItem{
		Type:  typ,
		Key:   string(typ) + "-" + id,
		Title: orPlaceholder(title),
		Start: inLocation(start, loc),
		End:   inLocation(end, loc),
	}
	switch {
	case !start.IsZero():
		item.Date = model.DateOf(start, loc)
	case !end.IsZero():
		item.Date = model.DateOf(end, loc)
	}
	return item
}

func inLocation(t time.Time, loc *time.Location) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(loc)
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func mustLocation(loc *time.Location) {
	if loc == nil {
		panic("agenda: reference time zone is nil")
	}
}
