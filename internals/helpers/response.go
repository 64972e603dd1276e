package helper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors flattens validator errors into field → messages, keyed by
// the form/json name when the struct declares one.
func FieldErrors(err error) map[string][]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		if err == nil {
			return nil
		}
		return map[string][]string{"_": {err.Error()}}
	}

	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		name := strings.ToLower(fe.Field())
		out[name] = append(out[name], fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
