package validation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLeg struct {
	Code  *string `json:"code" validate:"required,len=3"`
	Stops *int    `json:"stops" validate:"required,min=0"`
}

type testTrip struct {
	Name     string    `json:"name" validate:"required"`
	Class    string    `json:"class" validate:"omitempty,oneof=ECONOMY BUSINESS"`
	Airlines string    `json:"airlines" validate:"omitempty,airline_codes"`
	Link     string    `json:"link" validate:"omitempty,url"`
	Date     string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Legs     []testLeg `json:"legs" validate:"required,dive"`
	Internal string    `json:"-" validate:"omitempty,max=2"`
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestValidator_Struct_Valid(t *testing.T) {
	v := NewValidator()

	trip := testTrip{
		Name:     "outbound",
		Class:    "ECONOMY",
		Airlines: "BA,AF",
		Link:     "https://example.com/trip",
		Date:     "2025-03-01",
		Legs:     []testLeg{{Code: strPtr("LHR"), Stops: intPtr(0)}},
	}

	assert.NoError(t, v.Struct(trip))
}

func TestValidator_Struct_ReportsJSONPaths(t *testing.T) {
	v := NewValidator()

	trip := testTrip{
		Class:    "COACH",
		Airlines: "BA,",
		Link:     "not a url",
		Date:     "01/03/2025",
		Legs: []testLeg{
			{Code: strPtr("LHR"), Stops: intPtr(0)},
			{Code: strPtr("LONDON")},
		},
	}

	err := v.Struct(trip)
	require.Error(t, err)

	details := Details(err)
	assert.Equal(t, "is required", details["name"])
	assert.Equal(t, "must be one of: ECONOMY, BUSINESS", details["class"])
	assert.Contains(t, details["airlines"], "airline codes")
	assert.Equal(t, "must be a valid URL", details["link"])
	assert.Equal(t, "must be a date in YYYY-MM-DD format", details["date"])
	assert.Equal(t, "must be exactly 3 characters long", details["legs[1].code"])
	assert.Equal(t, "is required", details["legs[1].stops"])
	assert.NotContains(t, details, "legs[0].code")
}

func TestValidator_Struct_NilSliceIsMissing(t *testing.T) {
	v := NewValidator()

	err := v.Struct(testTrip{Name: "x"})
	require.Error(t, err)

	list := Errors(err)
	require.Len(t, list, 1)
	assert.Equal(t, "legs", list[0].Field)
	assert.Equal(t, "required", list[0].Constraint)

	// An empty but present list is fine
	assert.NoError(t, v.Struct(testTrip{Name: "x", Legs: []testLeg{}}))
}

func TestValidator_Struct_PointerZeroIsPresent(t *testing.T) {
	v := NewValidator()

	trip := testTrip{Name: "x", Legs: []testLeg{{Code: strPtr("JFK"), Stops: intPtr(0)}}}
	assert.NoError(t, v.Struct(trip))
}

func TestValidator_Struct_NonStruct(t *testing.T) {
	v := NewValidator()

	err := v.Struct("not a struct")
	require.Error(t, err)
	assert.False(t, IsValidation(err))
}

func TestJoin(t *testing.T) {
	t.Run("nil inputs", func(t *testing.T) {
		assert.NoError(t, Join(nil, nil))
	})

	t.Run("first error per field wins", func(t *testing.T) {
		coerce := NewError("adults", "number", "", "must be a number")
		structural := Join(
			NewError("adults", "required", "", "is required"),
			NewError("max", "max", "250", "must be at most 250"),
		)

		err := Join(coerce, structural)
		list := Errors(err)
		require.Len(t, list, 2)
		assert.Equal(t, "number", list[0].Constraint)
		assert.Equal(t, "max", list[1].Field)
	})

	t.Run("foreign errors are kept", func(t *testing.T) {
		err := Join(errors.New("boom"), NewError("a", "required", "", "is required"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
		assert.Len(t, Errors(err), 1)
	})
}

func TestErrors_FirstViaErrorsAs(t *testing.T) {
	err := Join(
		NewError("origin", "len", "3", "must be exactly 3 characters long"),
		NewError("adults", "min", "1", "must be at least 1"),
	)

	var first *Error
	require.True(t, errors.As(err, &first))
	assert.Equal(t, "origin", first.Field)

	wrapped := fmt.Errorf("parsing request: %w", err)
	assert.Len(t, Errors(wrapped), 2)
	assert.True(t, IsValidation(wrapped))
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"with_field", NewError("max", "max", "250", "must be at most 250"), "max must be at most 250"},
		{"without_field", NewError("", "json", "", "unexpected end of JSON input"), "unexpected end of JSON input"},
		{"joined_single", Join(NewError("a", "required", "", "is required")), "validation failed: a is required"},
		{
			"joined_many",
			Join(NewError("a", "required", "", "is required"), NewError("b", "required", "", "is required")),
			"validation failed (2 errors): a is required; b is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDetails_EmptyFieldBecomesBody(t *testing.T) {
	details := Details(NewError("", "json", "", "invalid character"))
	assert.Equal(t, map[string]string{"body": "invalid character"}, details)
	assert.Nil(t, Details(nil))
}
