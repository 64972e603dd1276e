package model

import "strings"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// Permissions is what the API reports for the signed-in user.
type Permissions struct {
	Role       string `json:"role,omitempty"`
	Class      string `json:"class,omitempty"`
	Department string `json:"department,omitempty"`
}

func (p Permissions) role() string { return strings.ToLower(strings.TrimSpace(p.Role)) }

func (p Permissions) IsAdmin() bool   { return p.role() == RoleAdmin }
func (p Permissions) IsTeacher() bool { return p.role() == RoleTeacher }

// CanPublish: teachers and admins may create announcements.
func (p Permissions) CanPublish() bool { return p.IsTeacher() || p.IsAdmin() }

// OAuthUpsert is the body of POST /auth/oauth/upsert.
type OAuthUpsert struct {
	Provider          string            `json:"provider"`
	ProviderAccountID string            `json:"provider_account_id"`
	Email             string            `json:"email"`
	Name              string            `json:"name,omitempty"`
	Image             string            `json:"image,omitempty"`
	Tokens            map[string]string `json:"tokens,omitempty"`
}

// AccountRef is the API's answer to an upsert.
type AccountRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
