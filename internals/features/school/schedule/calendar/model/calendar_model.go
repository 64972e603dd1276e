package model

import (
	"fmt"
	"time"
)

// EventType classifies a calendar entry.
type EventType string

const (
	EventClass   EventType = "class"
	EventHoliday EventType = "holiday"
	EventExam    EventType = "exam"
	EventEvent   EventType = "event"
	EventOther   EventType = "other"
	EventBreak   EventType = "break"
)

// Date is a calendar day encoded as "YYYY-MM-DD".
type Date struct{ time.Time }

const dateLayout = "2006-01-02"

func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("calendar date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(dateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || s == `""` {
		*d = Date{}
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("calendar date: not a string: %s", s)
	}
	v, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = v
	return nil
}

type Event struct {
	ID          int       `json:"id"`
	Type        EventType `json:"type"`
	Title       string    `json:"title"`
	Start       Date      `json:"start"`
	End         Date      `json:"end"`
	Description string    `json:"description,omitempty"`
}

// Covers reports whether day falls inside [Start, End], both inclusive.
func (e Event) Covers(day Date) bool {
	return !day.Before(e.Start.Time) && !day.After(e.End.Time)
}

// Calendar is one academic range with its events.
type Calendar struct {
	Events []Event `json:"events"`
	Start  Date    `json:"start"`
	End    Date    `json:"end"`
}
