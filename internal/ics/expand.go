package ics

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	appLog "agendacal/internal/log"
)

const (
	defaultMaxOccurrencesPerEvent = 5000
)

// ExpandConfig controls how recurrence expansion is performed.
type ExpandConfig struct {
	// Location is the reference zone occurrences are converted to. It is
	// also used for floating times. Required.
	Location *time.Location

	// RangeStart / RangeEnd define the inclusive time window for occurrences.
	RangeStart time.Time
	RangeEnd   time.Time

	// MaxOccurrencesPerEvent is a safety cap to avoid infinite or extremely
	// large expansions. If zero, defaultMaxOccurrencesPerEvent is used.
	MaxOccurrencesPerEvent int
}

// Occurrence is a single concrete instance of a ParsedEvent.
type Occurrence struct {
	Event ParsedEvent
	Start time.Time
	End   time.Time
	// InstanceKey identifies one occurrence of a recurring event.
	InstanceKey string
}

// ExpandResult wraps the list of expanded occurrences and optionally
// information about truncation.
type ExpandResult struct {
	Occurrences []Occurrence
	// TruncatedEvents records UIDs that hit the MaxOccurrencesPerEvent cap.
	TruncatedEvents []string
}

// ExpandOccurrences expands events into concrete occurrences within the
// configured range. It handles:
//
//   - Single non-recurring events
//   - RRULE-based recurrence
//   - EXDATE for exception removal
//   - RECURRENCE-ID overrides
func ExpandOccurrences(events []ParsedEvent, cfg ExpandConfig) (ExpandResult, error) {
	var result ExpandResult

	if cfg.Location == nil {
		return result, errors.New("expand: Location is nil")
	}
	if cfg.RangeEnd.Before(cfg.RangeStart) {
		return result, errors.New("expand: RangeEnd is before RangeStart")
	}
	if cfg.MaxOccurrencesPerEvent <= 0 {
		cfg.MaxOccurrencesPerEvent = defaultMaxOccurrencesPerEvent
	}

	// Group base events and overrides by UID, keeping first-seen UID order.
	baseByUID := make(map[string][]ParsedEvent)
	overridesByUID := make(map[string][]ParsedEvent)
	var order []string

	for _, ev := range events {
		if ev.IsOverride && ev.Recurrence != nil {
			overridesByUID[ev.UID] = append(overridesByUID[ev.UID], ev)
			continue
		}
		if _, seen := baseByUID[ev.UID]; !seen {
			order = append(order, ev.UID)
		}
		baseByUID[ev.UID] = append(baseByUID[ev.UID], ev)
	}

	for _, uid := range order {
		ov := overridesByUID[uid]
		truncated := false

		for _, ev := range baseByUID[uid] {
			occ, hitCap := expandEvent(ev, ov, cfg)
			if hitCap {
				truncated = true
			}
			result.Occurrences = append(result.Occurrences, occ...)
		}

		if truncated {
			result.TruncatedEvents = append(result.TruncatedEvents, uid)
			appLog.Error("expand: truncated occurrences for UID due to cap",
				errors.New("max occurrences reached"),
				"uid", uid,
				"cap", cfg.MaxOccurrencesPerEvent,
			)
		}
	}

	return result, nil
}

func expandEvent(ev ParsedEvent, overrides []ParsedEvent, cfg ExpandConfig) ([]Occurrence, bool) {
	if ev.RawRRule == "" {
		return expandSingleEvent(ev, overrides, cfg), false
	}
	return expandRecurringEvent(ev, overrides, cfg)
}

func expandSingleEvent(ev ParsedEvent, overrides []ParsedEvent, cfg ExpandConfig) []Occurrence {
	if !timeRangesOverlap(ev.Start, ev.End, cfg.RangeStart, cfg.RangeEnd) {
		return nil
	}

	base, start, end := ev, ev.Start, ev.End
	if o, ok := findOverrideForStart(overrides, start); ok {
		base, start, end = o, o.Start, o.End
	}
	return []Occurrence{makeOccurrence(base, start, end, cfg.Location, false)}
}

func expandRecurringEvent(ev ParsedEvent, overrides []ParsedEvent, cfg ExpandConfig) ([]Occurrence, bool) {
	out := make([]Occurrence, 0)
	hitCap := false

	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		appLog.Error("expand: failed to parse RRULE", err, "uid", ev.UID, "rrule", ev.RawRRule)
		return out, false
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		// Best effort: align EXDATE location with event's start.
		set.ExDate(ex.In(ev.Start.Location()))
	}

	rangeStart := cfg.RangeStart.In(ev.Start.Location())
	rangeEnd := cfg.RangeEnd.In(ev.Start.Location())

	occTimes := set.Between(rangeStart, rangeEnd, true)
	if len(occTimes) > cfg.MaxOccurrencesPerEvent {
		occTimes = occTimes[:cfg.MaxOccurrencesPerEvent]
		hitCap = true
	}

	dur := ev.End.Sub(ev.Start)
	for _, occStart := range occTimes {
		base, start, end := ev, occStart, occStart.Add(dur)
		if o, ok := findOverrideForStart(overrides, occStart); ok {
			base, start, end = o, o.Start, o.End
		}
		out = append(out, makeOccurrence(base, start, end, cfg.Location, true))
	}

	return out, hitCap
}

// findOverrideForStart finds an override whose RECURRENCE-ID equals start.
func findOverrideForStart(overrides []ParsedEvent, start time.Time) (ParsedEvent, bool) {
	for _, ov := range overrides {
		if ov.Recurrence != nil && ov.Recurrence.Equal(start) {
			return ov, true
		}
	}
	return ParsedEvent{}, false
}

func makeOccurrence(ev ParsedEvent, start, end time.Time, loc *time.Location, recurring bool) Occurrence {
	occ := Occurrence{
		Event:       ev,
		Start:       start.In(loc),
		End:         end.In(loc),
		InstanceKey: ev.UID,
	}
	if recurring {
		occ.InstanceKey = ev.UID + "@" + occ.Start.Format("20060102T1504")
	}
	return occ
}

func timeRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	if aEnd.Before(bStart) {
		return false
	}
	if bEnd.Before(aStart) {
		return false
	}
	return true
}
