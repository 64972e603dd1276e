package dto

// Grid is the render-ready timetable handed to the views and to /api/timetable.
type Grid struct {
	Columns       int      `json:"columns"` // slot columns, the day label column excluded
	Headers       []Header `json:"headers"`
	Rows          []Row    `json:"rows"`
	Dynamic       bool     `json:"dynamic"`
	Progress      *float64 `json:"progress,omitempty"`
	CurrentSlotID string   `json:"current_slot_id,omitempty"`
	Today         int      `json:"today"`
}

type Header struct {
	SlotID string `json:"slot_id"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

type Row struct {
	Day     int    `json:"day"`
	DayName string `json:"day_name"`
	Cells   []Cell `json:"cells"`
}

// Cell tones mirror the design-system classes used by the stylesheet.
const (
	ToneCurrent   = "current"
	ToneToday     = "today"
	ToneMuted     = "muted"
	ToneSecondary = "secondary"
)

// LiveTone is the tone of a live-grid subject occupying slotIDs on day, given
// the viewer's weekday and current slot. static/live.js applies the same rule
// to every progress event.
func LiveTone(slotIDs []string, day, today int, currentSlotID string) string {
	if day != today {
		return ToneMuted
	}
	if currentSlotID != "" {
		for _, id := range slotIDs {
			if id == currentSlotID {
				return ToneCurrent
			}
		}
	}
	return ToneToday
}

type Cell struct {
	Empty     bool     `json:"empty"`
	Span      int      `json:"span"`
	SubjectID string   `json:"subject_id,omitempty"`
	SlotIDs   []string `json:"slot_ids,omitempty"`
	Title     string   `json:"title,omitempty"`
	Tone      string   `json:"tone,omitempty"`
	Times     []string `json:"times,omitempty"`
	Notes     []string `json:"notes,omitempty"`
}

// ProgressEvent is one tick of the live progress stream.
type ProgressEvent struct {
	Time          string   `json:"time"`
	Day           int      `json:"day"`
	Progress      *float64 `json:"progress"`
	CurrentSlotID string   `json:"current_slot_id,omitempty"`
}
