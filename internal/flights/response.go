package flights

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/hugh/skychat/internal/validation"
)

var searchResponseType = reflect.TypeOf(SearchResponse{})

// ParseSearchResponse decodes and validates an upstream search payload. Every
// structural violation is reported with its JSON path, including values of
// the wrong JSON type.
func ParseSearchResponse(data []byte) (*SearchResponse, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, validation.NewError("", "json", "", "body is empty")
	}

	// Decode generically first so type mismatches can be reported with
	// array indices, which json.UnmarshalTypeError does not carry.
	var tree interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, decodeError(err)
	}
	if err := validation.Join(typeErrors("", tree, searchResponseType)...); err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, decodeError(err)
	}

	if err := validate.Struct(resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DecodeSearchResponse is ParseSearchResponse over a stream. Errors from r
// itself are returned wrapped and are not validation errors.
func DecodeSearchResponse(r io.Reader) (*SearchResponse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}
	return ParseSearchResponse(data)
}

func decodeError(err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &typeErr):
		return validation.NewError(typeErr.Field, "type", typeErr.Value,
			fmt.Sprintf("must be %s", jsonKind(typeErr.Type)))
	case errors.As(err, &syntaxErr):
		return validation.NewError("", "json", "", fmt.Sprintf("invalid JSON at offset %d: %s", syntaxErr.Offset, syntaxErr.Error()))
	default:
		return fmt.Errorf("decoding search response: %w", err)
	}
}

// typeErrors walks a generically decoded JSON value alongside the Go type it
// will be decoded into and reports every value of the wrong JSON kind. Nulls
// and unknown keys are left to the decoder and the validator.
func typeErrors(path string, v interface{}, t reflect.Type) []error {
	if v == nil {
		return nil
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	mismatch := func() []error {
		got := valueKind(v)
		return []error{validation.NewError(path, "type", got,
			fmt.Sprintf("must be %s, got %s", jsonKind(t), got))}
	}

	switch t.Kind() {
	case reflect.String:
		if _, ok := v.(string); !ok {
			return mismatch()
		}
	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			return mismatch()
		}
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		if _, ok := v.(float64); !ok {
			return mismatch()
		}
	case reflect.Slice:
		items, ok := v.([]interface{})
		if !ok {
			return mismatch()
		}
		var errs []error
		for i, item := range items {
			errs = append(errs, typeErrors(path+"["+strconv.Itoa(i)+"]", item, t.Elem())...)
		}
		return errs
	case reflect.Map:
		obj, ok := v.(map[string]interface{})
		if !ok {
			return mismatch()
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var errs []error
		for _, k := range keys {
			errs = append(errs, typeErrors(path+"["+k+"]", obj[k], t.Elem())...)
		}
		return errs
	case reflect.Struct:
		obj, ok := v.(map[string]interface{})
		if !ok {
			return mismatch()
		}
		var errs []error
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			if name == "" {
				continue
			}
			child, present := obj[name]
			if !present {
				continue
			}
			errs = append(errs, typeErrors(joinPath(path, name), child, f.Type)...)
		}
		return errs
	}
	return nil
}

func jsonName(f reflect.StructField) string {
	if f.PkgPath != "" {
		return ""
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// jsonKind names a Go destination type the way a JSON producer would see it.
func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	}
	return "an object"
}

func valueKind(v interface{}) string {
	switch v.(type) {
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case []interface{}:
		return "an array"
	}
	return "an object"
}
