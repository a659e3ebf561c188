package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Error is the single failure kind produced when a value does not match its
// declared shape. Field is the JSON path of the offending value, for example
// "data[0].price.grandTotal"; it is empty when the whole document is at fault.
type Error struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Param      string `json:"param,omitempty"`
	Message    string `json:"message"`
}

func NewError(field, constraint, param, message string) *Error {
	return &Error{Field: field, Constraint: constraint, Param: param, Message: message}
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

// Join merges validation failures into one error. Nil inputs are skipped and
// only the first failure per field is kept, so a coercion error is not
// repeated by the structural check that runs after it.
func Join(errs ...error) error {
	seen := make(map[string]bool)
	var kept []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		list := Errors(err)
		if len(list) == 0 {
			kept = append(kept, err)
			continue
		}
		for _, ve := range list {
			if seen[ve.Field] {
				continue
			}
			seen[ve.Field] = true
			kept = append(kept, ve)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return &multierror.Error{Errors: kept, ErrorFormat: formatList}
}

// Errors lists every validation failure carried by err.
func Errors(err error) []*Error {
	if err == nil {
		return nil
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		out := make([]*Error, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			var ve *Error
			if errors.As(e, &ve) {
				out = append(out, ve)
			}
		}
		return out
	}

	var ve *Error
	if errors.As(err, &ve) {
		return []*Error{ve}
	}
	return nil
}

// IsValidation reports whether err carries at least one validation failure.
func IsValidation(err error) bool {
	return len(Errors(err)) > 0
}

// Details renders failures as field -> message for API error bodies.
func Details(err error) map[string]string {
	list := Errors(err)
	if len(list) == 0 {
		return nil
	}
	details := make(map[string]string, len(list))
	for _, ve := range list {
		key := ve.Field
		if key == "" {
			key = "body"
		}
		if _, ok := details[key]; !ok {
			details[key] = ve.Message
		}
	}
	return details
}

func formatList(errs []error) string {
	if len(errs) == 1 {
		return "validation failed: " + errs[0].Error()
	}
	parts := make([]string, len(errs))
	for i, err := range errs {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("validation failed (%d errors): %s", len(errs), strings.Join(parts, "; "))
}
