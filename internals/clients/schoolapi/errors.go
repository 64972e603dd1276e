package schoolapi

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxErrorBody caps how many bytes of an error body end up in messages.
const maxErrorBody = 200

var (
	ErrUnauthorized = errors.New("schoolapi: unauthorized")
	ErrForbidden    = errors.New("schoolapi: forbidden")
	ErrNotFound     = errors.New("schoolapi: not found")
	ErrConflict     = errors.New("schoolapi: conflict")
)

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > maxErrorBody {
		n := maxErrorBody
		for n > 0 && !utf8.RuneStart(body[n]) {
			n--
		}
		body = body[:n] + "…"
	}
	return fmt.Sprintf("schoolapi: %s %s: status %d: %s", e.Method, e.Path, e.Code, body)
}

// Is lets errors.Is match the sentinel errors by status code.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Code == 401
	case ErrForbidden:
		return e.Code == 403
	case ErrNotFound:
		return e.Code == 404
	case ErrConflict:
		return e.Code == 409
	}
	return false
}

// StatusCode reports the upstream status to error handlers.
func (e *StatusError) StatusCode() int { return e.Code }
