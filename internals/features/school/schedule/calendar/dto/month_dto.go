package dto

const (
	ToneBackground  = "background"
	ToneMuted       = "muted"
	ToneSecondary   = "secondary"
	ToneDestructive = "destructive"
	ToneAccent      = "accent"
)

// Weekdays heads the seven grid columns.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type Event struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
}

// Day is one grid cell.
type Day struct {
	Date       string  `json:"date"`
	Day        int     `json:"day"`
	MonthLabel string  `json:"monthLabel,omitempty"`
	LongLabel  string  `json:"longLabel"`
	Outside    bool    `json:"outside"`
	Weekend    bool    `json:"weekend"`
	Today      bool    `json:"today"`
	Tone       string  `json:"tone"`
	Primary    *Event  `json:"primary,omitempty"`
	Events     []Event `json:"events"`
}

type Month struct {
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Weekdays []string `json:"weekdays"`
	Weeks    [][]Day  `json:"weeks"`
}

// Days flattens the weeks.
func (m Month) Days() []Day {
	out := make([]Day, 0, len(m.Weeks)*7)
	for _, w := range m.Weeks {
		out = append(out, w...)
	}
	return out
}
