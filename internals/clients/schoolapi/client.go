package schoolapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"

	annModel "github.com/AungS8430/schooler/internals/features/school/announcements/announcement/model"
	timetableModel "github.com/AungS8430/schooler/internals/features/school/schedule/timetable/model"
	authModel "github.com/AungS8430/schooler/internals/features/users/auth/model"
	"github.com/AungS8430/schooler/internals/helpers/cache"
	"github.com/AungS8430/schooler/internals/helpers/metrics"
)

// Config configures a Client.
type Config struct {
	BaseURL        string        // e.g. http://localhost:8000/api/v1
	Timeout        time.Duration // per request; 0 = fasthttp default
	InternalSecret string        // X-Internal-Secret for server-to-server calls
	CacheTTL       time.Duration // detail/permission cache lifetime
}

// Credentials identify the signed-in user to the API.
type Credentials struct {
	Token   string // forwarded as Bearer
	Subject string // cache partition for per-user data
}

// Client is the typed data-access layer over the school REST API.
type Client struct {
	baseURL        string
	timeout        time.Duration
	internalSecret string

	announcements *cache.Cache[annModel.Announcement]
	permissions   *cache.Cache[authModel.Permissions]
	slots         *cache.Cache[[]timetableModel.Slot]
}

func New(cfg Config) *Client {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		timeout:        cfg.Timeout,
		internalSecret: cfg.InternalSecret,
		announcements:  cache.New[annModel.Announcement]("announcements", ttl),
		permissions:    cache.New[authModel.Permissions]("permissions", ttl),
		slots:          cache.New[[]timetableModel.Slot]("slots", ttl),
	}
}

// Purgers exposes the caches to the janitor.
func (c *Client) Purgers() []cache.Purger {
	return []cache.Purger{c.announcements, c.permissions, c.slots}
}

type call struct {
	method   string
	path     string
	query    url.Values
	cred     Credentials
	body     any
	internal bool
}

func newAgent(method, uri string) *fiber.Agent {
	switch method {
	case fiber.MethodPost:
		return fiber.Post(uri)
	case fiber.MethodPatch:
		return fiber.Patch(uri)
	case fiber.MethodDelete:
		return fiber.Delete(uri)
	default:
		return fiber.Get(uri)
	}
}

// do runs one request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, r call, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	uri := c.baseURL + r.path
	if len(r.query) > 0 {
		uri += "?" + r.query.Encode()
	}

	a := newAgent(r.method, uri)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if r.cred.Token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+r.cred.Token)
	}
	if r.internal && c.internalSecret != "" {
		a.Set("X-Internal-Secret", c.internalSecret)
	}
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	if r.body != nil {
		a.JSONEncoder(sonic.Marshal).JSON(r.body)
	}

	endpoint := r.method + " " + r.path
	code, raw, errs := a.Bytes()
	if len(errs) > 0 {
		metrics.APICalls.WithLabelValues(endpoint, "transport_error").Inc()
		return fmt.Errorf("schoolapi: %s: %w", endpoint, errors.Join(errs...))
	}
	if code < 200 || code >= 300 {
		metrics.APICalls.WithLabelValues(endpoint, fmt.Sprintf("status_%d", code)).Inc()
		return &StatusError{Method: r.method, Path: r.path, Code: code, Body: string(raw)}
	}
	metrics.APICalls.WithLabelValues(endpoint, "ok").Inc()

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("schoolapi: %s: decode: %w", endpoint, err)
	}
	return nil
}

// Degrade logs a failed fetch the way pages treat them: the section stays empty.
func Degrade(what string, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	log.Printf("[WARN] fetching %s: %v", what, err)
}
