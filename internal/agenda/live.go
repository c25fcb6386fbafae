package agenda

import (
	"time"

	"agendacal/internal/model"
)

// IsLive reports whether at lies in [start, end], bounds included. A zero
// bound means unknown and yields false.
func IsLive(start, end, at time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !at.Before(start) && !at.After(end)
}

func IsItemLive(item model.AgendaItem, at time.Time) bool {
	return IsLive(item.Start, item.End, at)
}

// LiveItems returns the items of days that are live at the given instant.
func LiveItems(days []model.AgendaDay, at time.Time) []model.AgendaItem {
	var out []model.AgendaItem
	for _, d := range days {
		for _, item := range d.Items {
			if IsItemLive(item, at) {
				out = append(out, item)
			}
		}
	}
	return out
}
