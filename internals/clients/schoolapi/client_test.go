package schoolapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	annModel "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/model"
	peopleModel "github.com/AungS8430/schooler/internals/features/school/people/model"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/api/v1/", Timeout: 2 * time.Second, InternalSecret: "s3cret"})
}

var alice = Credentials{Token: "tok-alice", Subject: "u-alice"}

func TestBearerTokenForwarded(t *testing.T) {
	var gotAuth, gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_, _ = io.WriteString(w, `{"permissions":{"role":"Teacher","class":"C2R1"}}`)
	})

	p, err := c.Permissions(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-alice", gotAuth)
	assert.Equal(t, "/api/v1/auth/permissions", gotPath)
	assert.True(t, p.CanPublish())
	assert.Equal(t, "C2R1", p.Class)
}

func TestStatusErrorsMatchSentinels(t *testing.T) {
	codes := map[int]error{401: ErrUnauthorized, 403: ErrForbidden, 404: ErrNotFound, 409: ErrConflict}
	for code, want := range codes {
		code, want := code, want
		t.Run(want.Error(), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(code)
				_, _ = io.WriteString(w, `{"detail":"nope"}`)
			})
			_, err := c.Announcement(context.Background(), alice, 7)
			require.Error(t, err)
			assert.ErrorIs(t, err, want)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, code, se.Code)
			assert.Contains(t, se.Body, "nope")
		})
	}
}

func TestCancelledContextSkipsCall(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { atomic.AddInt32(&hits, 1) })
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Slots(ctx, alice)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestUpsertSendsInternalSecret(t *testing.T) {
	var secret, body string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		secret = r.Header.Get("X-Internal-Secret")
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		_, _ = io.WriteString(w, `{"id":"u1","email":"a@example.com"}`)
	})

	ref, err := c.UpsertOAuthAccount(context.Background(), authModel.OAuthUpsert{
		Provider: "google", ProviderAccountID: "sub-1", Email: "a@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret)
	assert.Contains(t, body, `"provider_account_id":"sub-1"`)
	assert.Equal(t, "u1", ref.ID)
}

func TestTimetableUsesFirstElement(t *testing.T) {
	var class string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		class = r.URL.Query().Get("class_")
		_, _ = io.WriteString(w, `{"timetable":[{"1":[{"id":"math","title":"Math","slotIds":["s1","s2"]}],"Friday":[{"id":"pe","title":"PE","slotIds":["s3"]}],"9":[]},{"2":[]}]}`)
	})

	tt, err := c.Timetable(context.Background(), alice, "C2R2")
	require.NoError(t, err)
	assert.Equal(t, "C2R2", class)
	require.Len(t, tt[time.Monday], 1)
	assert.Equal(t, []string{"s1", "s2"}, tt[time.Monday][0].SlotIDs)
	require.Len(t, tt[time.Friday], 1)
	assert.NotContains(t, tt, time.Tuesday)
}

func TestTimetableEmptyList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"timetable":[]}`)
	})
	tt, err := c.Timetable(context.Background(), alice, "")
	require.NoError(t, err)
	assert.True(t, tt.IsEmpty())
}

func TestAnnouncementDetailIsCached(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = io.WriteString(w, `{"announcement":{"id":3,"title":"Sports day","description":"d","author_id":"u-alice","date":"2025-06-01","priority":1}}`)
	})
	ctx := context.Background()

	a, err := c.Announcement(ctx, alice, 3)
	require.NoError(t, err)
	assert.Equal(t, "Important", a.PriorityLabel())
	_, err = c.Announcement(ctx, alice, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))

	require.NoError(t, c.DeleteAnnouncement(ctx, alice, 3))
	_, err = c.Announcement(ctx, alice, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestCreateAnnouncementPostsBody(t *testing.T) {
	var body string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		_, _ = io.WriteString(w, `{"announcement":{"id":11,"title":"Exam week","priority":2}}`)
	})
	a, err := c.CreateAnnouncement(context.Background(), alice, annModel.AnnouncementCreate{
		Title: "Exam week", Description: "bring pencils", Priority: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 11, a.ID)
	assert.Contains(t, body, `"title":"Exam week"`)
	assert.Equal(t, 1, c.announcements.Len())
}

func TestPeopleQueryAndGrades(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/people":
			query = r.URL.RawQuery
			_, _ = io.WriteString(w, `{"users":[{"id":"u1","name":"Ann Lee","class_":"C2R1","personnelID":"65001"}]}`)
		case "/api/v1/people/grades":
			_, _ = io.WriteString(w, `{"grades":{"10":"10th Year","2":"2nd Year","3":"3rd Year"}}`)
		}
	})
	ctx := context.Background()

	people, err := c.People(ctx, alice, peopleModel.Filter{Class: "C2R1", Search: " ann "})
	require.NoError(t, err)
	assert.Equal(t, "class_=C2R1&search=ann", query)
	require.Len(t, people, 1)
	assert.Equal(t, "AL", people[0].Initials())

	grades, err := c.Grades(ctx, alice)
	require.NoError(t, err)
	keys := []string{}
	for _, g := range grades {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"2", "3", "10"}, keys)
}

func TestResourcesShapes(t *testing.T) {
	cases := map[string]int{
		`[{"id":1,"title":"A","url":"u"},{"id":2,"title":"B","url":"v"}]`:                         2,
		`{"resources":[{"id":1,"title":"A","url":"u"}]}`:                                          1,
		`{"id":1,"title":"Go tour","author":"x","url":"https://go.dev/tour","categories":["cs"]}`: 1,
		`{}`:   0,
		`null`: 0,
	}
	for payload, want := range cases {
		payload, want := payload, want
		t.Run(payload, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) { _, _ = io.WriteString(w, payload) })
			got, err := c.Resources(context.Background(), alice)
			require.NoError(t, err)
			assert.Len(t, got, want)
		})
	}
}

func TestTransportErrorIsWrapped(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1/api/v1", Timeout: 500 * time.Millisecond})
	_, err := c.Slots(context.Background(), alice)
	require.Error(t, err)
	var se *StatusError
	assert.False(t, errors.As(err, &se))
}

func TestStatusErrorTruncatesOnRuneBoundary(t *testing.T) {
	// 199 ASCII bytes, then a 3-byte rune straddling the cut
	body := strings.Repeat("a", maxErrorBody-1) + "ก" + "tail"
	msg := (&StatusError{Method: "GET", Path: "/x", Code: 500, Body: body}).Error()

	assert.True(t, utf8.ValidString(msg))
	assert.True(t, strings.HasSuffix(msg, strings.Repeat("a", maxErrorBody-1)+"…"))
	assert.NotContains(t, msg, "tail")

	short := (&StatusError{Code: 500, Body: " ok "}).Error()
	assert.True(t, strings.HasSuffix(short, ": ok"))
}
