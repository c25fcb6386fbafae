package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendacal/internal/model"
)

func lecture(id, course string, start time.Time, dur time.Duration, place *model.Place) model.RawLecture {
	return model.RawLecture{
		ID:              id,
		CourseShortcode: course,
		StartsAt:        start,
		EndsAt:          start.Add(dur),
		Place:           place,
	}
}

func keys(items []model.AgendaItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Key)
	}
	return out
}

func TestFilterHiddenRecurrence(t *testing.T) {
	loc := rome(t)
	room := &model.Place{BuildingID: "B1", FloorID: "F2", RoomID: "R3"}
	other := &model.Place{BuildingID: "B1", FloorID: "F2", RoomID: "R4"}

	src := model.Sources{Lectures: []model.RawLecture{
		lecture("mon", "ABC", at(loc, 2024, time.June, 17, 9, 0), 2*time.Hour, room),
		lecture("mon-other-room", "ABC", at(loc, 2024, time.June, 17, 9, 0), 2*time.Hour, other),
		lecture("tue", "ABC", at(loc, 2024, time.June, 18, 9, 0), 2*time.Hour, room),
		lecture("next-mon", "ABC", at(loc, 2024, time.June, 24, 9, 0), 2*time.Hour, room),
	}}
	prefs := model.CoursePreferencesMap{
		"ABC": {HiddenRecurrences: []model.HiddenRecurrence{
			{Weekday: 1, StartTime: "09:00", EndTime: "11:00", Room: "B1-F2-R3"},
		}},
	}

	got := Filter(Normalize(src, loc), prefs, loc)

	assert.Equal(t, []string{"lecture-mon-other-room", "lecture-tue"}, keys(got))
}

func TestFilterHiddenSingleEvent(t *testing.T) {
	loc := rome(t)
	room := &model.Place{BuildingID: "B1", FloorID: "F2", RoomID: "R3"}

	src := model.Sources{Lectures: []model.RawLecture{
		lecture("a", "ABC", at(loc, 2024, time.June, 17, 9, 0), 2*time.Hour, room),
		lecture("b", "ABC", at(loc, 2024, time.June, 24, 9, 0), 2*time.Hour, room),
		lecture("c", "ABC", at(loc, 2024, time.June, 17, 14, 0), 2*time.Hour, nil),
	}}
	prefs := model.CoursePreferencesMap{
		"ABC": {HiddenSingleEvents: []model.HiddenSingleEvent{
			{Date: model.Date{Year: 2024, Month: time.June, Day: 17}, StartTime: "09:00", EndTime: "11:00", Room: "B1-F2-R3"},
			{Date: model.Date{Year: 2024, Month: time.June, Day: 17}, StartTime: "14:00", EndTime: "16:00", Room: ""},
		}},
	}

	got := Filter(Normalize(src, loc), prefs, loc)

	assert.Equal(t, []string{"lecture-b"}, keys(got))
}

func TestFilterCourseLevelHide(t *testing.T) {
	loc := rome(t)
	start := at(loc, 2024, time.June, 17, 9, 0)

	src := model.Sources{
		Lectures: []model.RawLecture{
			lecture("x1", "XYZ", start, time.Hour, nil),
			lecture("x2", "XYZ", start.AddDate(0, 0, 1), time.Hour, nil),
			lecture("k", "KEEP", start, time.Hour, nil),
		},
		Exams: []model.RawExam{{ID: "e", CourseShortcode: "XYZ", StartsAt: start}},
	}

	for name, pref := range map[string]model.CoursePreference{
		"hidden in agenda": {IsHiddenInAgenda: true},
		"hidden":           {IsHidden: true},
		"with unrelated rules": {
			IsHiddenInAgenda:  true,
			HiddenRecurrences: []model.HiddenRecurrence{{Weekday: 5, StartTime: "08:00", EndTime: "09:00"}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			days := Build(src, model.CoursePreferencesMap{"XYZ": pref}, Options{Now: start, Location: loc})

			for _, d := range days {
				for _, it := range d.Items {
					if it.Type == model.TypeLecture {
						assert.NotEqual(t, "XYZ", it.Lecture.CourseShortcode)
					}
				}
			}
			// Exams of a hidden course are not lectures and pass through.
			assert.Contains(t, keys(Flatten(days)), "exam-e")
			assert.Contains(t, keys(Flatten(days)), "lecture-k")
		})
	}
}

func TestFilterPassThrough(t *testing.T) {
	loc := rome(t)
	start := at(loc, 2024, time.June, 17, 9, 0)

	src := model.Sources{
		Lectures:  []model.RawLecture{lecture("no-course", "", start, time.Hour, nil), lecture("unknown", "ZZZ", start, time.Hour, nil)},
		Bookings:  []model.RawBooking{{ID: "b", StartsAt: start, EndsAt: start.Add(time.Hour)}},
		Deadlines: []model.RawDeadline{{ID: "d", EndsAt: start}},
	}
	prefs := model.CoursePreferencesMap{"": {IsHidden: true}}

	got := Filter(Normalize(src, loc), prefs, loc)

	assert.Equal(t, []string{"lecture-no-course", "lecture-unknown", "booking-b", "deadline-d"}, keys(got))
}

func TestFilterIdempotent(t *testing.T) {
	loc := rome(t)
	room := &model.Place{BuildingID: "B1", FloorID: "F2", RoomID: "R3"}
	var lectures []model.RawLecture
	for i := 0; i < 14; i++ {
		lectures = append(lectures, lecture(string(rune('a'+i)), "ABC", at(loc, 2024, time.June, 10+i, 9, 0), 2*time.Hour, room))
	}
	prefs := model.CoursePreferencesMap{"ABC": {
		HiddenRecurrences:  []model.HiddenRecurrence{{Weekday: 3, StartTime: "09:00", EndTime: "11:00", Room: "B1-F2-R3"}},
		HiddenSingleEvents: []model.HiddenSingleEvent{{Date: model.Date{Year: 2024, Month: time.June, Day: 14}, StartTime: "09:00", EndTime: "11:00", Room: "B1-F2-R3"}},
	}}

	once := Filter(Normalize(model.Sources{Lectures: lectures}, loc), prefs, loc)
	twice := Filter(once, prefs, loc)

	require.Len(t, once, 11)
	assert.Equal(t, once, twice)
}

func TestRecurrenceOfRoundTrip(t *testing.T) {
	loc := rome(t)
	item := NormalizeLecture(lecture("s", "ABC", at(loc, 2024, time.June, 23, 18, 30), 90*time.Minute, nil), loc)

	rec, ok := RecurrenceOf(item, loc)
	require.True(t, ok)
	assert.Equal(t, model.HiddenRecurrence{Weekday: 7, StartTime: "18:30", EndTime: "20:00", Room: ""}, rec)

	var pref model.CoursePreference
	pref.HideRecurrence(rec)
	got := Filter([]model.AgendaItem{item}, model.CoursePreferencesMap{"ABC": pref}, loc)
	assert.Empty(t, got)

	_, ok = RecurrenceOf(NormalizeDeadline(model.RawDeadline{ID: "d"}, loc), loc)
	assert.False(t, ok)
}
