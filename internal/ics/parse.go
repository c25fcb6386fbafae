package ics

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "agendacal/internal/log"
	"agendacal/internal/model"
)

// propCourseCode carries the course shortcode of a lecture event.
const propCourseCode = ical.ComponentProperty("X-COURSE-CODE")

// ParsedEvent is the normalized representation of a VEVENT as produced
// by the ICS parser. Recurrence expansion operates on this type.
type ParsedEvent struct {
	UID string
	Seq int

	Summary     string
	Description string
	Location    string
	URL         string
	CourseCode  string
	Categories  []string

	Start  time.Time
	End    time.Time
	AllDay bool

	RawRRule   string
	ExDates    []time.Time
	Recurrence *time.Time // RECURRENCE-ID (if present)
	IsOverride bool       // true if this VEVENT overrides one recurring instance
}

// Kind returns the agenda item kind named in CATEGORIES, if any.
func (e ParsedEvent) Kind() (model.ItemType, bool) {
	for _, c := range e.Categories {
		switch k := model.ItemType(strings.ToLower(c)); k {
		case model.TypeLecture, model.TypeExam, model.TypeBooking, model.TypeDeadline:
			return k, true
		}
	}
	return "", false
}

// IsDeadline reports whether the event is tagged as a deadline.
func (e ParsedEvent) IsDeadline() bool {
	k, ok := e.Kind()
	return ok && k == model.TypeDeadline
}

// ParseICS parses a single ICS payload into a list of ParsedEvent.
//
//   - It relies on the underlying library's VTIMEZONE/TZID handling to
//     construct proper time.Time values.
//   - Floating times (no TZID, no Z) are read in loc.
//   - It records RRULE/EXDATE/RECURRENCE-ID but does not expand recurrences;
//     expansion is done in expand.go.
func ParseICS(body []byte, loc *time.Location) ([]ParsedEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		appLog.Error("ics parse failed", err)
		return nil, err
	}

	events := make([]ParsedEvent, 0)
	for _, comp := range cal.Events() {
		ev, perr := parseVEvent(comp, loc)
		if perr != nil {
			// Log and skip this event, but keep parsing others.
			appLog.Error("ics vevent parse failed", perr)
			continue
		}
		events = append(events, ev)
	}

	appLog.Debug("ics parse completed", "event_count", len(events))
	return events, nil
}

func parseVEvent(ve *ical.VEvent, loc *time.Location) (ParsedEvent, error) {
	var out ParsedEvent

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uidProp.Value

	// SEQUENCE (optional, used for overrides/versioning)
	if seqProp := ve.GetProperty(ical.ComponentPropertySequence); seqProp != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(seqProp.Value)); err == nil {
			out.Seq = n
		}
	}

	out.Summary = propValue(ve, ical.ComponentPropertySummary)
	out.Description = propValue(ve, ical.ComponentPropertyDescription)
	out.Location = propValue(ve, ical.ComponentPropertyLocation)
	out.URL = propValue(ve, ical.ComponentPropertyUrl)
	out.CourseCode = propValue(ve, propCourseCode)
	for _, p := range ve.GetProperties(ical.ComponentPropertyCategories) {
		for _, c := range strings.Split(p.Value, ",") {
			if c = strings.TrimSpace(c); c != "" {
				out.Categories = append(out.Categories, c)
			}
		}
	}

	// A malformed DTSTART/DTEND leaves a zero time; the normalizer copes.
	if dt := ve.GetProperty(ical.ComponentPropertyDtStart); dt != nil {
		out.Start, _ = parseICSTime(dt.Value, tzid(dt, loc))
		out.AllDay = !strings.Contains(dt.Value, "T") || valueIsDate(dt)
	}
	if dt := ve.GetProperty(ical.ComponentPropertyDtEnd); dt != nil {
		out.End, _ = parseICSTime(dt.Value, tzid(dt, loc))
	} else {
		out.End = out.Start
	}

	if rruleProp := ve.GetProperty(ical.ComponentPropertyRrule); rruleProp != nil {
		out.RawRRule = rruleProp.Value
	}

	// EXDATE can appear multiple times, each with a comma-separated list.
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part, tzid(p, loc)); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	if ridProp := ve.GetProperty("RECURRENCE-ID"); ridProp != nil {
		if t, err := parseICSTime(ridProp.Value, tzid(ridProp, loc)); err == nil {
			out.Recurrence = &t
			out.IsOverride = true
		}
	}

	return out, nil
}

func propValue(ve *ical.VEvent, p ical.ComponentProperty) string {
	if prop := ve.GetProperty(p); prop != nil {
		return prop.Value
	}
	return ""
}

// tzid resolves the TZID parameter of p, falling back to def.
func tzid(p *ical.IANAProperty, def *time.Location) *time.Location {
	if p == nil || p.ICalParameters == nil {
		return def
	}
	if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
		if l, err := time.LoadLocation(tzs[0]); err == nil {
			return l
		}
	}
	return def
}

func valueIsDate(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 {
		return strings.EqualFold(vs[0], "DATE")
	}
	return false
}

// parseICSTime parses the basic ICS DATE / DATE-TIME / UTC forms.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, errors.New("empty time value")
	}

	// UTC form, e.g., 20250101T090000Z
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}

	// Local date-time, e.g., 20250101T090000
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, loc)
	}

	// Date-only (all-day), e.g., 20250101
	return time.ParseInLocation("20060102", v, loc)
}
