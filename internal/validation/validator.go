package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks `validate` struct tags and reports failures as *Error
// values keyed by JSON path. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names instead of Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerRules(v)

	return &Validator{validate: v}
}

// Struct validates s and returns nil or an error listing every violation.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating %T: %w", s, err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, fromFieldError(fe))
	}
	return Join(errs...)
}

func fromFieldError(fe validator.FieldError) *Error {
	return &Error{
		Field:      fieldPath(fe.Namespace()),
		Constraint: fe.Tag(),
		Param:      fe.Param(),
		Message:    message(fe),
	}
}

// fieldPath drops the root type name from a validator namespace:
// "SearchResponse.data[0].id" becomes "data[0].id".
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(fe validator.FieldError) string {
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be exactly %s characters long", param)
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain exactly %s items", param)
		default:
			return fmt.Sprintf("must equal %s", param)
		}
	case "min", "gte":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at least %s characters long", param)
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at least %s items", param)
		default:
			return fmt.Sprintf("must be at least %s", param)
		}
	case "max", "lte":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("must be at most %s characters long", param)
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("must contain at most %s items", param)
		default:
			return fmt.Sprintf("must be at most %s", param)
		}
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "url":
		return "must be a valid URL"
	case "datetime":
		if param == "2006-01-02" {
			return "must be a date in YYYY-MM-DD format"
		}
		return "must match the layout " + param
	case "airline_codes":
		return "must be a comma-separated list of two-character airline codes"
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}
