package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendacal/internal/model"
)

func rome(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)
	return loc
}

func at(loc *time.Location, y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, loc)
}

func TestNormalizeLecture(t *testing.T) {
	loc := rome(t)

	t.Run("Full record", func(t *testing.T) {
		raw := model.RawLecture{
			ID:              "42",
			CourseID:        "c1",
			CourseName:      "Algorithms",
			CourseShortcode: "ABC",
			StartsAt:        at(loc, 2024, time.June, 17, 9, 0),
			EndsAt:          at(loc, 2024, time.June, 17, 11, 0),
			Place:           &model.Place{BuildingID: "B1", FloorID: "F2", RoomID: "R3", Name: "Aula 3"},
			TeacherID:       "t7",
		}

		item := NormalizeLecture(raw, loc)

		assert.Equal(t, model.TypeLecture, item.Type)
		assert.Equal(t, "lecture-42", item.Key)
		assert.Equal(t, "Algorithms", item.Title)
		assert.Equal(t, model.Date{Year: 2024, Month: time.June, Day: 17}, item.Date)
		require.NotNil(t, item.Lecture)
		assert.Nil(t, item.Exam)
		assert.Equal(t, "B1-F2-R3", item.Lecture.Place.RoomKey())
		assert.Equal(t, "-", item.Lecture.Description)
		assert.NotNil(t, item.Lecture.VirtualClassrooms)
		assert.Empty(t, item.Lecture.VirtualClassrooms)
	})

	t.Run("Room name only", func(t *testing.T) {
		item := NormalizeLecture(model.RawLecture{ID: "1", RoomName: "Aula Magna"}, loc)

		require.NotNil(t, item.Lecture.Place)
		assert.Equal(t, "Aula Magna", item.Lecture.Place.Name)
		assert.Equal(t, "", item.Lecture.Place.RoomKey())
		assert.Equal(t, "-", item.Title)
		assert.Equal(t, "-", item.Lecture.TeacherID)
	})

	t.Run("Date uses reference zone", func(t *testing.T) {
		// 23:30 UTC on the 16th is already the 17th in Rome (UTC+2 in June).
		raw := model.RawLecture{
			ID:       "late",
			StartsAt: time.Date(2024, time.June, 16, 23, 30, 0, 0, time.UTC),
			EndsAt:   time.Date(2024, time.June, 17, 0, 30, 0, 0, time.UTC),
		}

		item := NormalizeLecture(raw, loc)

		assert.Equal(t, "2024-06-17", item.Date.String())
		assert.Equal(t, loc, item.Start.Location())
	})
}

func TestNormalizeMalformed(t *testing.T) {
	loc := rome(t)

	t.Run("End before start is kept", func(t *testing.T) {
		raw := model.RawBooking{
			ID:       "b1",
			StartsAt: at(loc, 2024, time.June, 17, 11, 0),
			EndsAt:   at(loc, 2024, time.June, 17, 9, 0),
		}
		item := NormalizeBooking(raw, loc)
		assert.Equal(t, "booking-b1", item.Key)
		assert.True(t, item.End.Before(item.Start))
	})

	t.Run("Missing start falls back to end for date", func(t *testing.T) {
		item := NormalizeLecture(model.RawLecture{ID: "x", EndsAt: at(loc, 2024, time.June, 18, 10, 0)}, loc)
		assert.True(t, item.Start.IsZero())
		assert.Equal(t, "2024-06-18", item.Date.String())
	})

	t.Run("No temporal fields at all", func(t *testing.T) {
		item := NormalizeDeadline(model.RawDeadline{ID: "d"}, loc)
		assert.True(t, item.Date.IsZero())
		assert.Equal(t, "-", item.Title)
	})

	t.Run("Batch keeps every record", func(t *testing.T) {
		src := model.Sources{
			Lectures:  []model.RawLecture{{ID: "1"}, {ID: "2", StartsAt: at(loc, 2024, time.June, 17, 9, 0)}},
			Exams:     []model.RawExam{{ID: "3"}},
			Bookings:  []model.RawBooking{{ID: "4"}},
			Deadlines: []model.RawDeadline{{ID: "5"}},
		}
		items := Normalize(src, loc)
		require.Len(t, items, 5)
		assert.Equal(t, "lecture-1", items[0].Key)
		assert.Equal(t, "exam-3", items[2].Key)
		assert.Equal(t, "deadline-5", items[4].Key)
	})
}

func TestNormalizeExamAndDeadline(t *testing.T) {
	loc := rome(t)
	start := at(loc, 2024, time.July, 1, 14, 0)

	exam := NormalizeExam(model.RawExam{ID: "e", CourseName: "Physics", StartsAt: start, IsTimeToBeDefined: true}, loc)
	assert.Equal(t, model.TypeExam, exam.Type)
	assert.True(t, exam.End.Equal(exam.Start))
	assert.True(t, exam.Exam.IsTimeToBeDefined)
	assert.NotNil(t, exam.Exam.Places)

	dl := NormalizeDeadline(model.RawDeadline{ID: "d", Title: "Report", EndsAt: start, URL: "https://x"}, loc)
	assert.Equal(t, "Report", dl.Title)
	assert.True(t, dl.Start.Equal(start))
	assert.Equal(t, "https://x", dl.Deadline.URL)
}

func TestNormalizeNilLocationPanics(t *testing.T) {
	assert.Panics(t, func() {
		Normalize(model.Sources{}, nil)
	})
}
