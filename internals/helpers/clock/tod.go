// file: internals/helpers/clock/tod.go
package clock

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Tod is a time of day ("HH:MM[:SS]") with the date and zone stripped.
type Tod struct{ time.Time }

// From keeps only HH:mm:ss of t, in the zone t already carries.
func From(t time.Time) Tod {
	return Tod{
		Time: time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC),
	}
}

// Parse builds a Tod from "HH:MM" or "HH:MM:SS".
func Parse(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Tod {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	if strings.Count(s, ":") == 1 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return fmt.Errorf("tod: invalid time of day %q: %w", s, err)
	}
	t.Time = tt
	return nil
}

// Minutes is the number of whole minutes since midnight.
func (t Tod) Minutes() int {
	return t.Hour()*60 + t.Minute()
}

func (t Tod) String() string {
	return t.Format("15:04")
}

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}
