package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// airlineCodeRegex matches a two-character IATA airline designator
	airlineCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{2}$`)
)

// IsValidAirlineCode checks a single IATA airline designator such as "BA" or "U2"
func IsValidAirlineCode(code string) bool {
	return airlineCodeRegex.MatchString(code)
}

// IsValidAirlineCodeList checks a comma-separated list like "BA,AF,KL".
// Whitespace around items is tolerated, empty items are not.
func IsValidAirlineCodeList(list string) bool {
	if strings.TrimSpace(list) == "" {
		return false
	}
	for _, code := range strings.Split(list, ",") {
		if !IsValidAirlineCode(strings.TrimSpace(code)) {
			return false
		}
	}
	return true
}

// SplitCodeList splits a comma-separated code list, trimming and upper-casing
// each item and dropping empties.
func SplitCodeList(list string) []string {
	var codes []string
	for _, code := range strings.Split(list, ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

func registerRules(v *validator.Validate) {
	_ = v.RegisterValidation("airline_codes", func(fl validator.FieldLevel) bool {
		return IsValidAirlineCodeList(fl.Field().String())
	})
}
