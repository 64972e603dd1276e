package middlewares_test

import (
	"bufio"
	"context"
	"io"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/configs"
	ttCtl "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/controller"
	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
	routes "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/route"
	"github.com/AungS8430/schooler/internals/features/school/schedule/timetable/service"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
	"github.com/AungS8430/schooler/internals/helpers/clock"
	"github.com/AungS8430/schooler/internals/middlewares"
)

type scheduleAPI struct{}

func (scheduleAPI) Slots(context.Context, schoolapi.Credentials) ([]model.Slot, error) {
	return []model.Slot{{ID: "s1", Start: clock.MustParse("07:00"), End: clock.MustParse("08:00")}}, nil
}

func (scheduleAPI) Timetable(context.Context, schoolapi.Credentials, string) (model.Timetable, error) {
	return model.Timetable{time.Monday: {{ID: "m", Title: "Math", SlotIDs: []string{"s1"}}}}, nil
}

func (scheduleAPI) Permissions(context.Context, schoolapi.Credentials) (authModel.Permissions, error) {
	return authModel.Permissions{Role: "student"}, nil
}

func (scheduleAPI) Classes(context.Context, schoolapi.Credentials, string, string) ([]string, error) {
	return nil, nil
}

// serve starts app on a loopback port and returns its address.
func serve(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.ShutdownWithTimeout(time.Second) })
	return ln.Addr().String()
}

func TestProgressStreamPassesGlobalChain(t *testing.T) {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	middlewares.SetupMiddlewares(app, configs.Settings{AppTimezone: "UTC"})

	api := scheduleAPI{}
	ctl := ttCtl.NewTimetableController(api, service.NewSelectionStore(api), nil, time.UTC)
	ctl.Now = func() time.Time { return time.Date(2025, 3, 3, 7, 1, 0, 0, time.UTC) }
	ctl.Interval = 20 * time.Millisecond
	done := make(chan struct{})
	defer close(done)
	ctl.Done = done
	routes.TimetablePageRoutes(app.Group("/app"), ctl)

	conn, err := net.Dial("tcp", serve(t, app))
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetDeadline(time.Now().Add(3*time.Second)))

	_, err = io.WriteString(conn, "GET /app/schedule/progress?class=C1R1 HTTP/1.1\r\n"+
		"Host: localhost\r\nAccept: text/event-stream\r\nAccept-Encoding: gzip, br\r\n\r\n")
	require.NoError(t, err)

	var head strings.Builder
	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err, "read so far: %q", head.String())
		head.WriteString(line)
		if strings.HasPrefix(line, "data: ") {
			break
		}
	}
	got := head.String()
	assert.Contains(t, got, "HTTP/1.1 200")
	assert.Contains(t, got, "text/event-stream")
	assert.NotContains(t, strings.ToLower(got), "content-encoding")
	assert.Contains(t, got, "event: progress\n")
	assert.Contains(t, got, `"current_slot_id":"s1"`)
}

func TestEventStreamDetection(t *testing.T) {
	app := fiber.New()
	app.Get("/*", func(c *fiber.Ctx) error {
		if middlewares.IsEventStream(c) {
			return c.SendString("stream")
		}
		return c.SendString("page")
	})

	cases := []struct {
		path, accept, want string
	}{
		{"/app/schedule/progress", "", "stream"},
		{"/anything", "text/event-stream", "stream"},
		{"/app/schedule", "text/html", "page"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", tc.path, nil)
		req.Header.Set("Accept", tc.accept)
		resp, err := app.Test(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, tc.want, string(body), tc.path)
	}
}

func TestPagesStillGetETag(t *testing.T) {
	app := fiber.New()
	middlewares.SetupMiddlewares(app, configs.Settings{AppTimezone: "UTC"})
	app.Get("/page", func(c *fiber.Ctx) error { return c.SendString("hello") })

	resp, err := app.Test(httptest.NewRequest("GET", "/page", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get("ETag"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
