package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agendacal/internal/model"
)

const yamlSnapshot = `
sources:
  lectures:
    - id: "1"
      course_id: "c1"
      course_name: Algorithms
      course_shortcode: ABC
      starts_at: 2024-06-17T09:00:00+02:00
      ends_at: 2024-06-17T11:00:00+02:00
      place:
        building_id: B1
        floor_id: F2
        room_id: R3
  deadlines:
    - id: "d1"
      title: Report
      ends_at: 2024-06-20T23:59:00+02:00
preferences:
  ABC:
    color: "#ff0000"
    is_hidden: false
    is_hidden_in_agenda: false
    hidden_recurrences:
      - weekday: 1
        start_time: "09:00"
        end_time: "11:00"
        room: B1-F2-R3
    hidden_single_events:
      - date: 2024-06-18
        start_time: "09:00"
        end_time: "11:00"
        room: ""
`

const jsonSnapshot = `{
  "sources": {
    "lectures": [{"id": "1", "courseId": "c1", "courseShortcode": "ABC",
      "startsAt": "2024-06-17T09:00:00+02:00", "endsAt": "2024-06-17T11:00:00+02:00"}],
    "exams": [{"id": "e", "startsAt": "2024-07-01T09:00:00+02:00", "isTimeToBeDefined": true}]
  },
  "preferences": {
    "ABC": {"isHiddenInAgenda": true,
      "hiddenSingleEvents": [{"date": "2024-06-18", "startTime": "09:00", "endTime": "11:00", "room": ""}]}
  }
}`

func TestDecodeYAML(t *testing.T) {
	snap, err := Decode(".yaml", []byte(yamlSnapshot))
	require.NoError(t, err)

	require.Len(t, snap.Sources.Lectures, 1)
	lec := snap.Sources.Lectures[0]
	assert.Equal(t, "ABC", lec.CourseShortcode)
	assert.Equal(t, "B1-F2-R3", lec.Place.RoomKey())
	assert.Equal(t, 2*time.Hour, lec.EndsAt.Sub(lec.StartsAt))
	require.Len(t, snap.Sources.Deadlines, 1)

	pref := snap.Preferences["ABC"]
	assert.Equal(t, "#ff0000", pref.Color)
	assert.True(t, pref.HidesRecurrence(model.HiddenRecurrence{Weekday: 1, StartTime: "09:00", EndTime: "11:00", Room: "B1-F2-R3"}))
	require.Len(t, pref.HiddenSingleEvents, 1)
	assert.Equal(t, "2024-06-18", pref.HiddenSingleEvents[0].Date.String())
}

func TestDecodeJSON(t *testing.T) {
	snap, err := Decode(".json", []byte(jsonSnapshot))
	require.NoError(t, err)

	assert.Len(t, snap.Sources.Lectures, 1)
	require.Len(t, snap.Sources.Exams, 1)
	assert.True(t, snap.Sources.Exams[0].IsTimeToBeDefined)
	assert.True(t, snap.Preferences["ABC"].IsHiddenInAgenda)
	assert.Equal(t, model.Date{Year: 2024, Month: time.June, Day: 18}, snap.Preferences["ABC"].HiddenSingleEvents[0].Date)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(".toml", []byte("x"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Decode(".json", []byte("{"))
	assert.Error(t, err)

	snap, err := Decode(".yml", []byte("{}"))
	require.NoError(t, err)
	assert.NotNil(t, snap.Preferences)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	orig, err := Decode(".yaml", []byte(yamlSnapshot))
	require.NoError(t, err)

	for _, name := range []string{"snap.yaml", "snap.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, orig))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

			back, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, orig.Preferences, back.Preferences)
			assert.Equal(t, len(orig.Sources.Lectures), len(back.Sources.Lectures))
			assert.True(t, orig.Sources.Lectures[0].StartsAt.Equal(back.Sources.Lectures[0].StartsAt))
		})
	}

	assert.ErrorIs(t, Save(filepath.Join(dir, "snap.txt"), orig), ErrUnknownFormat)
}
