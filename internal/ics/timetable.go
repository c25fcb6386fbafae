package ics

import (
	"strings"
	"time"

	"agendacal/internal/model"
)

// ParseTimetable turns a timetable feed into raw agenda records for the
// configured window.
//
// An event whose CATEGORIES names an item kind (LECTURE, EXAM, BOOKING,
// DEADLINE) becomes a record of that kind, and a leading "<kind>-" is
// stripped from its UID so feeds written by Export read back with their
// original IDs. Untagged all-day and zero-length events become deadlines;
// everything else is a lecture.
func ParseTimetable(body []byte, cfg ExpandConfig) (model.Sources, error) {
	var src model.Sources

	events, err := ParseICS(body, cfg.Location)
	if err != nil {
		return src, err
	}
	res, err := ExpandOccurrences(events, cfg)
	if err != nil {
		return src, err
	}

	for _, occ := range res.Occurrences {
		ev := occ.Event
		kind, tagged := ev.Kind()
		if !tagged {
			kind = model.TypeLecture
			if ev.AllDay || occ.End.Equal(occ.Start) {
				kind = model.TypeDeadline
			}
		}
		id := occ.InstanceKey
		if tagged {
			id = strings.TrimPrefix(id, string(kind)+"-")
		}

		switch kind {
		case model.TypeDeadline:
			due := occ.End
			if ev.AllDay {
				// Due at the last minute of the day.
				due = occ.Start.AddDate(0, 0, 1).Add(-time.Minute)
			}
			src.Deadlines = append(src.Deadlines, model.RawDeadline{
				ID:     id,
				Title:  ev.Summary,
				EndsAt: due,
				URL:    ev.URL,
			})
		case model.TypeExam:
			exam := model.RawExam{
				ID:              id,
				CourseName:      ev.Summary,
				CourseShortcode: ev.CourseCode,
				StartsAt:        occ.Start,
			}
			if place := locationPlace(ev.Location); place != nil {
				exam.Places = []model.Place{*place}
			}
			src.Exams = append(src.Exams, exam)
		case model.TypeBooking:
			src.Bookings = append(src.Bookings, model.RawBooking{
				ID:       id,
				Topic:    ev.Summary,
				StartsAt: occ.Start,
				EndsAt:   occ.End,
				Place:    locationPlace(ev.Location),
			})
		default:
			lec := model.RawLecture{
				ID:              id,
				CourseID:        ev.UID,
				CourseName:      ev.Summary,
				CourseShortcode: ev.CourseCode,
				StartsAt:        occ.Start,
				EndsAt:          occ.End,
				Description:     ev.Description,
			}
			if place := parsePlace(ev.Location); place != nil {
				lec.Place = place
			} else {
				lec.RoomName = ev.Location
			}
			src.Lectures = append(src.Lectures, lec)
		}
	}
	return src, nil
}

// parsePlace reads a "building-floor-room" location. Anything else is kept
// as a plain room name by the caller.
func parsePlace(s string) *model.Place {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return nil
	}
	for _, p := range parts {
		if p == "" {
			return nil
		}
	}
	return &model.Place{BuildingID: parts[0], FloorID: parts[1], RoomID: parts[2], Name: s}
}

// locationPlace is parsePlace with a name-only fallback.
func locationPlace(s string) *model.Place {
	if place := parsePlace(s); place != nil {
		return place
	}
	if s = strings.TrimSpace(s); s != "" {
		return &model.Place{Name: s}
	}
	return nil
}
