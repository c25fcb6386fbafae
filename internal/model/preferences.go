package model

import "slices"

// HiddenRecurrence suppresses every weekly occurrence of a lecture slot.
// Times are "HH:MM" in the reference time zone; Weekday is 1=Mon..7=Sun.
type HiddenRecurrence struct {
	Weekday   int    `yaml:"weekday" json:"weekday"`
	StartTime string `yaml:"start_time" json:"startTime"`
	EndTime   string `yaml:"end_time" json:"endTime"`
	Room      string `yaml:"room" json:"room"`
}

// HiddenSingleEvent suppresses one dated occurrence of a lecture slot.
type HiddenSingleEvent struct {
	Date      Date   `yaml:"date" json:"date"`
	StartTime string `yaml:"start_time" json:"startTime"`
	EndTime   string `yaml:"end_time" json:"endTime"`
	Room      string `yaml:"room" json:"room"`
}

// CoursePreference holds the per-course display overrides chosen by the
// user. Persistence belongs to the caller.
type CoursePreference struct {
	Color              string              `yaml:"color,omitempty" json:"color,omitempty"`
	Icon               string              `yaml:"icon,omitempty" json:"icon,omitempty"`
	IsHidden           bool                `yaml:"is_hidden" json:"isHidden"`
	IsHiddenInAgenda   bool                `yaml:"is_hidden_in_agenda" json:"isHiddenInAgenda"`
	HiddenRecurrences  []HiddenRecurrence  `yaml:"hidden_recurrences,omitempty" json:"hiddenRecurrences,omitempty"`
	HiddenSingleEvents []HiddenSingleEvent `yaml:"hidden_single_events,omitempty" json:"hiddenSingleEvents,omitempty"`
}

// HidesRecurrence reports whether r matches one of the hidden recurrences.
func (p CoursePreference) HidesRecurrence(r HiddenRecurrence) bool {
	return slices.Contains(p.HiddenRecurrences, r)
}

// HidesSingleEvent reports whether e matches one of the hidden single events.
func (p CoursePreference) HidesSingleEvent(e HiddenSingleEvent) bool {
	return slices.Contains(p.HiddenSingleEvents, e)
}

// HideRecurrence adds r unless an equal rule already exists. It reports
// whether the preference changed.
func (p *CoursePreference) HideRecurrence(r HiddenRecurrence) bool {
	if p.HidesRecurrence(r) {
		return false
	}
	p.HiddenRecurrences = append(p.HiddenRecurrences, r)
	return true
}

// RestoreRecurrence removes every rule equal to r.
func (p *CoursePreference) RestoreRecurrence(r HiddenRecurrence) bool {
	before := len(p.HiddenRecurrences)
	p.HiddenRecurrences = slices.DeleteFunc(p.HiddenRecurrences, func(x HiddenRecurrence) bool { return x == r })
	return len(p.HiddenRecurrences) != before
}

// HideSingleEvent adds e unless an equal rule already exists.
func (p *CoursePreference) HideSingleEvent(e HiddenSingleEvent) bool {
	if p.HidesSingleEvent(e) {
		return false
	}
	p.HiddenSingleEvents = append(p.HiddenSingleEvents, e)
	return true
}

// RestoreSingleEvent removes every rule equal to e.
func (p *CoursePreference) RestoreSingleEvent(e HiddenSingleEvent) bool {
	before := len(p.HiddenSingleEvents)
	p.HiddenSingleEvents = slices.DeleteFunc(p.HiddenSingleEvents, func(x HiddenSingleEvent) bool { return x == e })
	return len(p.HiddenSingleEvents) != before
}

// CoursePreferencesMap maps a course shortcode to its preference.
type CoursePreferencesMap map[string]CoursePreference

// Lookup returns the preference for shortcode. Unknown shortcodes yield the
// zero preference: nothing hidden and no color override.
func (m CoursePreferencesMap) Lookup(shortcode string) (CoursePreference, bool) {
	p, ok := m[shortcode]
	return p, ok
}

// ColorFor returns the course color, or fallback if none is set.
func (m CoursePreferencesMap) ColorFor(shortcode, fallback string) string {
	if p, ok := m[shortcode]; ok && p.Color != "" {
		return p.Color
	}
	return fallback
}
