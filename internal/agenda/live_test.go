package agenda

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agendacal/internal/model"
)

func TestIsLive(t *testing.T) {
	t0 := time.Date(2024, time.June, 17, 9, 0, 0, 0, time.UTC)
	t1 := t0.Add(60 * time.Minute)

	cases := []struct {
		name       string
		start, end time.Time
		now        time.Time
		want       bool
	}{
		{"Inside", t0, t1, t0.Add(30 * time.Minute), true},
		{"Before start", t0, t1, t0.Add(-time.Minute), false},
		{"After end", t0, t1, t0.Add(61 * time.Minute), false},
		{"At start", t0, t1, t0, true},
		{"At end", t0, t1, t1, true},
		{"Missing end", t0, time.Time{}, t0.Add(30 * time.Minute), false},
		{"Missing start", time.Time{}, t1, t0.Add(30 * time.Minute), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsLive(tc.start, tc.end, tc.now))
		})
	}
}

func TestLiveItems(t *testing.T) {
	loc := rome(t)
	t0 := at(loc, 2024, time.June, 17, 9, 0)

	days := []model.AgendaDay{{Items: []model.AgendaItem{
		{Key: "live", Start: t0, End: t0.Add(time.Hour)},
		{Key: "later", Start: t0.Add(2 * time.Hour), End: t0.Add(3 * time.Hour)},
		{Key: "deadline", Start: t0.Add(10 * time.Minute), End: t0.Add(10 * time.Minute)},
	}}}

	assert.Equal(t, []string{"live"}, keys(LiveItems(days, t0.Add(5*time.Minute))))
	assert.Equal(t, []string{"live", "deadline"}, keys(LiveItems(days, t0.Add(10*time.Minute))))
	assert.True(t, IsItemLive(days[0].Items[0], t0))
}
