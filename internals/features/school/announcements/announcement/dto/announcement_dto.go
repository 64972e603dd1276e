// internals/features/school/announcements/announcement/dto/announcement_dto.go
package dto

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	model "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/model"
	"github.com/AungS8430/schooler/internals/features/school/announcements/announcement/service"
)

/* ===================== REQUESTS ===================== */

// CreateAnnouncementRequest is the create form. Content is markdown or an
// editor JSON document.
type CreateAnnouncementRequest struct {
	Title       string `form:"title" json:"title" validate:"required,max=200"`
	Description string `form:"description" json:"description" validate:"required,max=500"`
	Content     string `form:"content" json:"content"`
	Thumbnail   string `form:"thumbnail" json:"thumbnail" validate:"omitempty,url"`
	Priority    int    `form:"priority" json:"priority" validate:"min=1,max=3"`
}

// Normalize trims input and defaults priority to Information.
func (r *CreateAnnouncementRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Content = strings.TrimSpace(r.Content)
	r.Thumbnail = strings.TrimSpace(r.Thumbnail)
	if r.Priority == 0 {
		r.Priority = model.PriorityInformation
	}
}

func (r CreateAnnouncementRequest) ToModel() model.AnnouncementCreate {
	return model.AnnouncementCreate{
		Title:       r.Title,
		Description: r.Description,
		Content:     r.Content,
		Thumbnail:   r.Thumbnail,
		Priority:    r.Priority,
	}
}

/* ===================== VIEWS ===================== */

// Card is one announcement in a list.
type Card struct {
	ID            int
	URL           string
	Title         string
	Description   string
	Thumbnail     string
	AuthorName    string
	AuthorImage   string
	DateLabel     string
	PriorityLabel string
	PriorityTone  string
}

// Detail is the full announcement page.
type Detail struct {
	Card
	Content   template.HTML
	CanDelete bool
}

func dateLabel(a model.Announcement, loc *time.Location) string {
	t := a.Published()
	if t.IsZero() {
		return a.Date
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("January 2, 2006")
}

func FromModel(a model.Announcement, loc *time.Location) Card {
	author := strings.TrimSpace(a.AuthorName)
	if author == "" {
		author = "Unknown"
	}
	return Card{
		ID:            a.ID,
		URL:           "/app/announcements/" + strconv.Itoa(a.ID),
		Title:         a.Title,
		Description:   a.Description,
		Thumbnail:     a.Thumbnail,
		AuthorName:    author,
		AuthorImage:   a.AuthorImage,
		DateLabel:     dateLabel(a, loc),
		PriorityLabel: a.PriorityLabel(),
		PriorityTone:  a.PriorityTone(),
	}
}

func FromModels(list []model.Announcement, loc *time.Location) []Card {
	out := make([]Card, 0, len(list))
	for _, a := range list {
		out = append(out, FromModel(a, loc))
	}
	return out
}

// NewDetail renders the content; only the author gets the delete action.
func NewDetail(a model.Announcement, viewerID string, loc *time.Location) Detail {
	return Detail{
		Card:      FromModel(a, loc),
		Content:   service.RenderContent(a.Content),
		CanDelete: a.AuthoredBy(viewerID),
	}
}

// PriorityOption feeds the create form's select.
type PriorityOption struct {
	Value    int
	Label    string
	Selected bool
}

func PriorityOptions(selected int) []PriorityOption {
	if selected == 0 {
		selected = model.PriorityInformation
	}
	out := make([]PriorityOption, 0, 3)
	for _, p := range []int{model.PriorityImportant, model.PriorityMedium, model.PriorityInformation} {
		out = append(out, PriorityOption{Value: p, Label: model.PriorityLabel(p), Selected: p == selected})
	}
	return out
}
