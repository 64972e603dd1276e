// internals/features/school/announcements/announcement/model/announcement_model.go
package model

import (
	"strings"
	"time"
)

/* ===================== PRIORITY ===================== */

const (
	PriorityImportant   = 1
	PriorityMedium      = 2
	PriorityInformation = 3
)

// PriorityLabel: 1 Important, 2 Medium, anything else Information.
func PriorityLabel(p int) string {
	switch p {
	case PriorityImportant:
		return "Important"
	case PriorityMedium:
		return "Medium"
	default:
		return "Information"
	}
}

// PriorityTone maps a priority to the badge variant used by the views.
func PriorityTone(p int) string {
	switch p {
	case PriorityImportant:
		return "destructive"
	case PriorityMedium:
		return "default"
	default:
		return "secondary"
	}
}

/* ===================== ANNOUNCEMENT ===================== */

type Announcement struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	AuthorID    string `json:"author_id"`
	AuthorName  string `json:"authorName,omitempty"`
	AuthorImage string `json:"authorImage,omitempty"`
	Date        string `json:"date"`
	Priority    int    `json:"priority"`
}

func (a Announcement) PriorityLabel() string { return PriorityLabel(a.Priority) }
func (a Announcement) PriorityTone() string  { return PriorityTone(a.Priority) }

// Published parses Date (RFC3339 or YYYY-MM-DD); zero on failure.
func (a Announcement) Published() time.Time {
	s := strings.TrimSpace(a.Date)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// AuthoredBy reports whether userID wrote the announcement.
func (a Announcement) AuthoredBy(userID string) bool {
	return userID != "" && a.AuthorID == userID
}

// AnnouncementCreate is the body of POST /announcements.
type AnnouncementCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Priority    int    `json:"priority"`
}
