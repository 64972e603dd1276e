package model

import "strings"

// Person is a directory entry (student, teacher or admin).
type Person struct {
	ID          string `json:"id"`
	Email       string `json:"email,omitempty"`
	PersonnelID string `json:"personnelID,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Role        string `json:"role,omitempty"`
	Year        int    `json:"year,omitempty"`
	Department  string `json:"department,omitempty"`
	Class       string `json:"class_,omitempty"`
	Name        string `json:"name,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
	Image       string `json:"image,omitempty"`
}

// DisplayName falls back to the email local part when the name is unset.
func (p Person) DisplayName() string {
	if n := strings.TrimSpace(p.Name); n != "" {
		return n
	}
	if at := strings.IndexByte(p.Email, '@'); at > 0 {
		return p.Email[:at]
	}
	return p.ID
}

// Initials for the avatar fallback.
func (p Person) Initials() string {
	var b strings.Builder
	for _, f := range strings.Fields(p.DisplayName()) {
		b.WriteString(strings.ToUpper(string([]rune(f)[:1])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

// Grade is a selectable grade level, e.g. {"2", "2nd Year"}.
type Grade struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Filter narrows GET /people.
type Filter struct {
	Grade      string
	Department string
	Class      string
	Search     string
}
