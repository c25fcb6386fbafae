package model

import (
	"strings"
	"time"
)

// ItemType discriminates the AgendaItem variants.
type ItemType string

const (
	TypeLecture  ItemType = "lecture"
	TypeExam     ItemType = "exam"
	TypeBooking  ItemType = "booking"
	TypeDeadline ItemType = "deadline"
)

// AgendaItem is the common shape every scheduled entity is projected into
// before filtering and grouping. Exactly one of the detail pointers is set,
// the one matching Type; consumers switch on Type.
type AgendaItem struct {
	Type  ItemType `json:"type"`
	Key   string   `json:"key"`
	Title string   `json:"title"`

	// Start / End are in the reference time zone. A zero value means the
	// upstream record did not carry the field.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	// Date is the calendar date of Start in the reference time zone.
	Date Date `json:"date"`

	Lecture  *LectureDetails  `json:"lecture,omitempty"`
	Exam     *ExamDetails     `json:"exam,omitempty"`
	Booking  *BookingDetails  `json:"booking,omitempty"`
	Deadline *DeadlineDetails `json:"deadline,omitempty"`
}

type LectureDetails struct {
	CourseID          string             `json:"courseId"`
	CourseShortcode   string             `json:"courseShortcode,omitempty"`
	TeacherID         string             `json:"teacherId"`
	Description       string             `json:"description"`
	Place             *Place             `json:"place"`
	VirtualClassrooms []VirtualClassroom `json:"virtualClassrooms"`
}

type ExamDetails struct {
	CourseShortcode   string  `json:"courseShortcode,omitempty"`
	TeacherID         string  `json:"teacherId"`
	Type              string  `json:"type"`
	IsTimeToBeDefined bool    `json:"isTimeToBeDefined"`
	Places            []Place `json:"places"`
}

type BookingDetails struct {
	Topic string `json:"topic"`
	Place *Place `json:"place"`
}

type DeadlineDetails struct {
	URL string `json:"url,omitempty"`
}

// Place identifies a room. BuildingID/FloorID/RoomID form the room key
// used by hide rules; Name is display only.
type Place struct {
	BuildingID string `yaml:"building_id" json:"buildingId"`
	FloorID    string `yaml:"floor_id" json:"floorId"`
	RoomID     string `yaml:"room_id" json:"roomId"`
	Name       string `yaml:"name,omitempty" json:"name,omitempty"`
}

// RoomKey returns "building-floor-room", or "" when no room is known.
func (p *Place) RoomKey() string {
	if p == nil || (p.BuildingID == "" && p.FloorID == "" && p.RoomID == "") {
		return ""
	}
	return strings.Join([]string{p.BuildingID, p.FloorID, p.RoomID}, "-")
}

type VirtualClassroom struct {
	ID    string `yaml:"id" json:"id"`
	Title string `yaml:"title" json:"title"`
	URL   string `yaml:"url" json:"url"`
}

// AgendaDay holds the items of one calendar date, ordered by Start.
type AgendaDay struct {
	Date    Date         `json:"date"`
	IsToday bool         `json:"isToday"`
	Items   []AgendaItem `json:"items"`
}

// DateRange is the half-open interval [Start, End).
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls in [Start, End).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

// AgendaWeek is a Monday..Sunday window. Days always has seven entries.
type AgendaWeek struct {
	DateRange DateRange    `json:"dateRange"`
	Days      [7]AgendaDay `json:"days"`
}

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Date          Date `json:"date"`
	Weekday       int  `json:"weekday"` // 1=Mon, 7=Sun
	MonthDay      int  `json:"monthDay"`
	OtherMonth    bool `json:"otherMonth"`
	DaysFromToday int  `json:"daysFromToday"`
}

// CalendarWeek is one row of a month grid.
type CalendarWeek [7]CalendarDay
