package model

import (
	"slices"
	"time"
)

// Raw records as delivered by the upstream API collaborators. They are
// already decoded snapshots; a zero time.Time means the field was absent.

type RawLecture struct {
	ID                string             `yaml:"id" json:"id"`
	CourseID          string             `yaml:"course_id" json:"courseId"`
	CourseName        string             `yaml:"course_name,omitempty" json:"courseName,omitempty"`
	CourseShortcode   string             `yaml:"course_shortcode,omitempty" json:"courseShortcode,omitempty"`
	StartsAt          time.Time          `yaml:"starts_at" json:"startsAt"`
	EndsAt            time.Time          `yaml:"ends_at" json:"endsAt"`
	Place             *Place             `yaml:"place,omitempty" json:"place,omitempty"`
	RoomName          string             `yaml:"room_name,omitempty" json:"roomName,omitempty"`
	TeacherID         string             `yaml:"teacher_id,omitempty" json:"teacherId,omitempty"`
	Description       string             `yaml:"description,omitempty" json:"description,omitempty"`
	VirtualClassrooms []VirtualClassroom `yaml:"virtual_classrooms,omitempty" json:"virtualClassrooms,omitempty"`
}

type RawExam struct {
	ID                string    `yaml:"id" json:"id"`
	CourseName        string    `yaml:"course_name,omitempty" json:"courseName,omitempty"`
	CourseShortcode   string    `yaml:"course_shortcode,omitempty" json:"courseShortcode,omitempty"`
	TeacherID         string    `yaml:"teacher_id,omitempty" json:"teacherId,omitempty"`
	Type              string    `yaml:"type,omitempty" json:"type,omitempty"`
	StartsAt          time.Time `yaml:"starts_at" json:"startsAt"`
	IsTimeToBeDefined bool      `yaml:"is_time_to_be_defined" json:"isTimeToBeDefined"`
	Places            []Place   `yaml:"places,omitempty" json:"places,omitempty"`
}

type RawBooking struct {
	ID       string    `yaml:"id" json:"id"`
	Topic    string    `yaml:"topic,omitempty" json:"topic,omitempty"`
	StartsAt time.Time `yaml:"starts_at" json:"startsAt"`
	EndsAt   time.Time `yaml:"ends_at" json:"endsAt"`
	Place    *Place    `yaml:"place,omitempty" json:"place,omitempty"`
}

type RawDeadline struct {
	ID     string    `yaml:"id" json:"id"`
	Title  string    `yaml:"title" json:"title"`
	EndsAt time.Time `yaml:"ends_at" json:"endsAt"`
	URL    string    `yaml:"url,omitempty" json:"url,omitempty"`
}

// Sources is one resolved snapshot of all raw record kinds.
type Sources struct {
	Lectures  []RawLecture  `yaml:"lectures" json:"lectures"`
	Exams     []RawExam     `yaml:"exams" json:"exams"`
	Bookings  []RawBooking  `yaml:"bookings" json:"bookings"`
	Deadlines []RawDeadline `yaml:"deadlines" json:"deadlines"`
}

// Len returns the total number of raw records.
func (s Sources) Len() int {
	return len(s.Lectures) + len(s.Exams) + len(s.Bookings) + len(s.Deadlines)
}

// Merge returns s with the records of o appended, kind by kind.
func (s Sources) Merge(o Sources) Sources {
	return Sources{
		Lectures:  append(slices.Clone(s.Lectures), o.Lectures...),
		Exams:     append(slices.Clone(s.Exams), o.Exams...),
		Bookings:  append(slices.Clone(s.Bookings), o.Bookings...),
		Deadlines: append(slices.Clone(s.Deadlines), o.Deadlines...),
	}
}
