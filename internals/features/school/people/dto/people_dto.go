package dto

import (
	"strings"

	"github.com/AungS8430/schooler/internals/features/school/people/model"
)

// PersonCard is one row of the people directory.
type PersonCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Nickname    string `json:"nickname,omitempty"`
	PersonnelID string `json:"personnel_id,omitempty"`
	Subtitle    string `json:"subtitle"`
	Email       string `json:"email,omitempty"`
	Image       string `json:"image,omitempty"`
	Initials    string `json:"initials"`
	Department  string `json:"department,omitempty"`
	Class       string `json:"class,omitempty"`
	Role        string `json:"role,omitempty"`
}

// subtitle: "teacher | Science Department | C2R1"
func subtitle(p model.Person) string {
	parts := make([]string, 0, 3)
	if r := strings.TrimSpace(p.Role); r != "" {
		parts = append(parts, r)
	}
	if d := strings.TrimSpace(p.Department); d != "" {
		parts = append(parts, d+" Department")
	}
	if c := strings.TrimSpace(p.Class); c != "" {
		parts = append(parts, c)
	}
	return strings.Join(parts, " | ")
}

func FromPerson(p model.Person) PersonCard {
	return PersonCard{
		ID:          p.ID,
		Name:        p.DisplayName(),
		Nickname:    p.Nickname,
		PersonnelID: p.PersonnelID,
		Subtitle:    subtitle(p),
		Email:       strings.TrimSpace(p.Email),
		Image:       p.Image,
		Initials:    p.Initials(),
		Department:  p.Department,
		Class:       p.Class,
		Role:        p.Role,
	}
}

func FromPeople(list []model.Person) []PersonCard {
	out := make([]PersonCard, 0, len(list))
	for _, p := range list {
		out = append(out, FromPerson(p))
	}
	return out
}

// GradeLabel finds the display value for a grade key.
func GradeLabel(grades []model.Grade, key string) string {
	for _, g := range grades {
		if g.Key == key {
			return g.Value
		}
	}
	return ""
}
