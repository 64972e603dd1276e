package model

import (
	"time"

	"github.com/AungS8430/schooler/internals/helpers/clock"
)

// Slot is one column of the day schedule. Slots arrive in chronological order.
type Slot struct {
	ID    string    `json:"id"`
	Start clock.Tod `json:"start"`
	End   clock.Tod `json:"end"`
}

// Subject occupies a contiguous run of slots on one weekday.
type Subject struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	SlotIDs       []string `json:"slotIds"`
	Location      string   `json:"location,omitempty"`
	Teacher       string   `json:"teacher,omitempty"`
	Classroom     string   `json:"classroom,omitempty"`
	EndsEarly     bool     `json:"endsEarly,omitempty"`
	OverlapsBreak bool     `json:"overlapsBreak,omitempty"`
	IsBreak       bool     `json:"isBreak,omitempty"`
	IsLunch       bool     `json:"isLunch,omitempty"`
}

// Timetable maps a weekday (0=Sunday..6=Saturday) to that day's subjects.
type Timetable map[time.Weekday][]Subject

// Days lists the weekdays in display order.
var Days = []time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

// IsEmpty reports whether no day carries a subject.
func (t Timetable) IsEmpty() bool {
	for _, subjects := range t {
		if len(subjects) > 0 {
			return false
		}
	}
	return true
}
