package schoolapi

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	annModel "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/model"
	peopleModel "github.com/AungS8430/schooler/internals/features/school/people/model"
	resModel "github.com/AungS8430/schooler/internals/features/school/resources/model"
	calModel "github.com/AungS8430/schooler/internals/features/school/schedule/calendar/model"
	ttModel "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
)

/* ===================== AUTH ===================== */

// Permissions fetches the signed-in user's role/class, cached per subject.
func (c *Client) Permissions(ctx context.Context, cred Credentials) (authModel.Permissions, error) {
	if cred.Subject != "" {
		if p, ok := c.permissions.Get(cred.Subject); ok {
			return p, nil
		}
	}
	var env permissionsEnvelope
	if err := c.do(ctx, call{method: fiber.MethodGet, path: "/auth/permissions", cred: cred}, &env); err != nil {
		return authModel.Permissions{}, err
	}
	if cred.Subject != "" {
		c.permissions.Set(cred.Subject, env.Permissions)
	}
	return env.Permissions, nil
}

// UpsertOAuthAccount links a Google account to a user record.
// 409 (errors.Is ErrConflict) means the account belongs to someone else.
func (c *Client) UpsertOAuthAccount(ctx context.Context, in authModel.OAuthUpsert) (authModel.AccountRef, error) {
	var out authModel.AccountRef
	err := c.do(ctx, call{method: fiber.MethodPost, path: "/auth/oauth/upsert", body: in, internal: true}, &out)
	return out, err
}

/* ===================== SCHEDULE ===================== */

// Slots are school wide and change rarely, so they are cached once.
func (c *Client) Slots(ctx context.Context, cred Credentials) ([]ttModel.Slot, error) {
	if s, ok := c.slots.Get("all"); ok {
		return s, nil
	}
	var env slotsEnvelope
	if err := c.do(ctx, call{method: fiber.MethodGet, path: "/schedule/slots", cred: cred}, &env); err != nil {
		return nil, err
	}
	c.slots.Set("all", env.Slots)
	return env.Slots, nil
}

// Timetable for class; an empty class lets the API pick the user's own.
func (c *Client) Timetable(ctx context.Context, cred Credentials, class string) (ttModel.Timetable, error) {
	q := url.Values{}
	if class = strings.TrimSpace(class); class != "" {
		q.Set("class_", class)
	}
	var env timetableEnvelope
	if err := c.do(ctx, call{method: fiber.MethodGet, path: "/schedule/timetable", query: q, cred: cred}, &env); err != nil {
		return nil, err
	}
	return decodeTimetable(env.Timetable)
}

/* ===================== CALENDAR ===================== */

func (c *Client) AcademicCalendar(ctx context.Context, cred Credentials) (calModel.Calendar, error) {
	var out calModel.Calendar
	err := c.do(ctx, call{method: fiber.MethodGet, path: "/calendar/academic", cred: cred}, &out)
	return out, err
}

func (c *Client) PersonalCalendar(ctx context.Context, cred Credentials, class string) (calModel.Calendar, error) {
	q := url.Values{}
	if class = strings.TrimSpace(class); class != "" {
		q.Set("class_", class)
	}
	var out calModel.Calendar
	err := c.do(ctx, call{method: fiber.MethodGet, path: "/calendar/personal", query: q, cred: cred}, &out)
	return out, err
}

/* ===================== ANNOUNCEMENTS ===================== */

func (c *Client) AnnouncementIDs(ctx context.Context, cred Credentials, query string) ([]int, error) {
	q := url.Values{}
	if query = strings.TrimSpace(query); query != "" {
		q.Set("query", query)
	}
	var env announcementIDsEnvelope
	if err := c.do(ctx, call{method: fiber.MethodGet, path: "/announcements", query: q, cred: cred}, &env); err != nil {
		return nil, err
	}
	return env.IDs, nil
}

// Announcement is read through the detail cache.
func (c *Client) Announcement(ctx context.Context, cred Credentials, id int) (annModel.Announcement, error) {
	key := strconv.Itoa(id)
	if a, ok := c.announcements.Get(key); ok {
		return a, nil
	}
	var env announcementEnvelope
	if err := c.do(ctx, call{method: fiber.MethodGet, path: "/announcements/" + key, cred: cred}, &env); err != nil {
		return annModel.Announcement{}, err
	}
	c.announcements.Set(key, env.Announcement)
	return env.Announcement, nil
}

func (c *Client) CreateAnnouncement(ctx context.Context, cred Credentials, in annModel.AnnouncementCreate) (annModel.Announcement, error) {
	var env announcementEnvelope
	if err := c.do(ctx, call{method: fiber.MethodPost, path: "/announcements", body: in, cred: cred}, &env); err != nil {
		return annModel.Announcement{}, err
	}
	if env.Announcement.ID != 0 {
		c.announcements.Set(strconv.Itoa(env.Announcement.ID), env.Announcement)
	}
	return env.Announcement, nil
}

// DeleteAnnouncement drops the cached copy even when the API call fails,
// so the next read sees the API's answer.
func (c *Client) DeleteAnnouncement(ctx context.Context, cred Credentials, id int) error {
	key := strconv.Itoa(id)
	defer c.announcements.Delete(key)
	return c.do(ctx, call{method: fiber.MethodDelete, path: "/announcements/" + key, cred: cred}, nil)
}

/* ===================== PEOPLE ===================== */

func (c *Client) People(ctx context.Context, cred Credentials, f peopleModel.Filter) ([]peopleModel.Person, error) {
	q := url.Values{}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}
	set("grade", f.Grade)
	set("department", f.Department)
	set("class_", f.Class)
	set("search", f.Search)

	var env usersEnvelope
	if err := c.do(ctx, call{method: fiber.MethodGet, path: "/people", query: q, cred: cred}, &env); err != nil {
		return nil, err
	}
	return env.Users, nil
}

func (c *Client) Grades(ctx context.Context, cred Credentials) ([]peopleModel.Grade, error) {
	var env gradesEnvelope
	if err := c.do(ctx, call{method: fiber.MethodGet, path: "/people/grades", cred: cred}, &env); err != nil {
		return nil, err
	}
	return sortedGrades(env.Grades), nil
}

func (c *Client) Classes(ctx context.Context, cred Credentials, grade, department string) ([]string, error) {
	q := url.Values{}
	if grade = strings.TrimSpace(grade); grade != "" {
		q.Set("grade", grade)
	}
	if department = strings.TrimSpace(department); department != "" {
		q.Set("department", department)
	}
	var env classesEnvelope
	if err := c.do(ctx, call{method: fiber.MethodGet, path: "/people/classes", query: q, cred: cred}, &env); err != nil {
		return nil, err
	}
	return env.Classes, nil
}

/* ===================== RESOURCES ===================== */

func (c *Client) Resources(ctx context.Context, cred Credentials) ([]resModel.Resource, error) {
	var raw rawBody
	if err := c.do(ctx, call{method: fiber.MethodGet, path: "/resources", cred: cred}, &raw); err != nil {
		return nil, err
	}
	return decodeResources(raw)
}

// rawBody keeps the undecoded payload for shape-tolerant decoders.
type rawBody []byte

func (r *rawBody) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}
