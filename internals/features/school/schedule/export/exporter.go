package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AungS8430/schooler/internals/helpers/cache"
	"github.com/AungS8430/schooler/internals/helpers/metrics"
)

// State is one step of an export.
type State string

const (
	StateIdle             State = "idle"
	StateStylesOverridden State = "styles_overridden"
	StateRasterizing      State = "rasterizing"
	StateRetrying         State = "retrying"
	StateDownloaded       State = "downloaded"
	StateFailed           State = "failed"
	StateStylesRestored   State = "styles_restored"
)

var ErrExportFailed = errors.New("export failed")

// FailedError is returned when both attempts failed.
type FailedError struct {
	Kind  Kind
	First error
	Retry error
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("export %s: first attempt: %v; retry: %v", e.Kind, e.First, e.Retry)
}

func (e *FailedError) Unwrap() []error { return []error{ErrExportFailed, e.First, e.Retry} }

// Alert is the message shown to the user.
func (e *FailedError) Alert() string { return AlertMessage(e.Kind) }

func AlertMessage(k Kind) string {
	return fmt.Sprintf("Failed to save %s as PNG. Please try again.", k)
}

type Request struct {
	Kind    Kind
	Subject string    // class code for schedules
	Day     time.Time // date stamped into the filename
	Format  Format
	Target  Styleable
	Scene   Scene
}

type Result struct {
	Data        []byte
	ContentType string
	Filename    string
	Fidelity    Fidelity
	FromCache   bool
	Trace       []State
}

// Exporter runs the override → rasterize → (retry) → restore sequence.
type Exporter struct {
	raster Rasterizer
	cache  *cache.Cache[[]byte]
}

func NewExporter(r Rasterizer, ttl time.Duration) *Exporter {
	if r == nil {
		r = Painter{}
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Exporter{raster: r, cache: cache.New[[]byte]("exports", ttl)}
}

// Purger exposes the image cache to the janitor.
func (e *Exporter) Purger() cache.Purger { return e.cache }

// Export rasterizes req.Target at high fidelity and retries once at reduced
// fidelity. The target's class and inline style are restored before return.
func (e *Exporter) Export(ctx context.Context, req Request) (Result, error) {
	if req.Target == nil {
		req.Target = NewElement("div", "", "")
	}
	res := Result{
		ContentType: req.Format.ContentType(),
		Filename:    Filename(req.Kind, req.Subject, req.Day, req.Format),
		Trace:       []State{StateIdle},
	}

	scope := Scope{Target: req.Target, Overrides: SnapshotConfig(req.Kind, HighFidelity)}
	err := scope.Run(func(target Styleable) error {
		res.Trace = append(res.Trace, StateStylesOverridden, StateRasterizing)

		data, cached, firstErr := e.attempt(ctx, req, target, HighFidelity)
		if firstErr == nil {
			res.Data, res.FromCache, res.Fidelity = data, cached, HighFidelity
			res.Trace = append(res.Trace, StateDownloaded)
			return nil
		}
		log.Printf("[EXPORT] %s %q: first attempt failed: %v", req.Kind, req.Subject, firstErr)

		res.Trace = append(res.Trace, StateRetrying)
		data, _, retryErr := e.attempt(ctx, req, target, ReducedFidelity)
		if retryErr != nil {
			log.Printf("[EXPORT] %s %q: retry failed: %v", req.Kind, req.Subject, retryErr)
			res.Trace = append(res.Trace, StateFailed)
			return &FailedError{Kind: req.Kind, First: firstErr, Retry: retryErr}
		}
		res.Data, res.Fidelity = data, ReducedFidelity
		res.Trace = append(res.Trace, StateDownloaded)
		return nil
	})
	res.Trace = append(res.Trace, StateStylesRestored)

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "failed"
	case res.Fidelity == ReducedFidelity:
		outcome = "retried"
	case res.FromCache:
		outcome = "cached"
	}
	metrics.Exports.WithLabelValues(string(req.Kind), outcome).Inc()
	return res, err
}

func (e *Exporter) attempt(ctx context.Context, req Request, target Styleable, fid Fidelity) ([]byte, bool, error) {
	key := cacheKey(req, fid)
	if !fid.CacheBust {
		if data, ok := e.cache.Get(key); ok {
			return data, true, nil
		}
	}

	img, err := e.raster.Rasterize(ctx, target, req.Scene, fid.PixelRatio)
	if err != nil {
		return nil, false, err
	}
	data, err := Encode(img, req.Format)
	if err != nil {
		return nil, false, err
	}
	if !fid.CacheBust {
		e.cache.Set(key, data)
	}
	return data, false, nil
}

func cacheKey(req Request, fid Fidelity) string {
	fp := ""
	if req.Scene != nil {
		fp = req.Scene.Fingerprint()
	}
	return strings.Join([]string{
		string(req.Kind), req.Subject, req.Day.Format("2006-01-02"),
		strconv.Itoa(fid.PixelRatio), string(req.Format), fp,
	}, "|")
}

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Filename is schedule-<class>-<YYYY-MM-DD>.png or calendar-<YYYY-MM-DD>.png.
func Filename(kind Kind, subject string, day time.Time, f Format) string {
	date := day.Format("2006-01-02")
	if kind == KindSchedule {
		subject = unsafeName.ReplaceAllString(strings.TrimSpace(subject), "_")
		if subject == "" {
			subject = "class"
		}
		return fmt.Sprintf("schedule-%s-%s%s", subject, date, f.Ext())
	}
	return fmt.Sprintf("%s-%s%s", kind, date, f.Ext())
}
