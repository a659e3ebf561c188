// Package flights holds the contract of the flight-offer search API: the
// search parameters a caller may send and the offer payload the upstream
// returns. Everything here is a pure transformation of an input value into a
// validated value or a validation error.
package flights

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/hugh/skychat/internal/validation"
	"github.com/spf13/cast"
)

type TravelClass string

const (
	TravelClassEconomy        TravelClass = "ECONOMY"
	TravelClassPremiumEconomy TravelClass = "PREMIUM_ECONOMY"
	TravelClassBusiness       TravelClass = "BUSINESS"
	TravelClassFirst          TravelClass = "FIRST"
)

// Defaults applied when the optional parameters are absent.
const (
	DefaultCurrencyCode = "USD"
	DefaultNonStop      = false
	DefaultMax          = 5
	MaxResults          = 250
)

// SearchParams is a validated flight search request with defaults applied.
type SearchParams struct {
	OriginLocationCode      string       `json:"originLocationCode"`
	DestinationLocationCode string       `json:"destinationLocationCode"`
	DepartureDate           string       `json:"departureDate"`
	ReturnDate              *string      `json:"returnDate,omitempty"`
	Adults                  int          `json:"adults"`
	Children                *int         `json:"children,omitempty"`
	Infants                 *int         `json:"infants,omitempty"`
	TravelClass             *TravelClass `json:"travelClass,omitempty"`
	MaxPrice                *float64     `json:"maxPrice,omitempty"`
	CurrencyCode            string       `json:"currencyCode"`
	NonStop                 bool         `json:"nonStop"`
	Max                     int          `json:"max"`
	IncludedAirlineCodes    *string      `json:"includedAirlineCodes,omitempty"`
	ExcludedAirlineCodes    *string      `json:"excludedAirlineCodes,omitempty"`
}

// searchInput is the coerced but not yet validated request. Pointers tell
// "absent" apart from zero so that required fields can be enforced.
type searchInput struct {
	OriginLocationCode      *string  `json:"originLocationCode" validate:"required,len=3"`
	DestinationLocationCode *string  `json:"destinationLocationCode" validate:"required,len=3"`
	DepartureDate           *string  `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ReturnDate              *string  `json:"returnDate" validate:"omitempty,datetime=2006-01-02"`
	Adults                  *int     `json:"adults" validate:"required,min=1"`
	Children                *int     `json:"children" validate:"omitempty,min=0"`
	Infants                 *int     `json:"infants" validate:"omitempty,min=0"`
	TravelClass             *string  `json:"travelClass" validate:"omitempty,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
	MaxPrice                *float64 `json:"maxPrice"`
	CurrencyCode            *string  `json:"currencyCode" validate:"omitempty,len=3"`
	NonStop                 *bool    `json:"nonStop"`
	Max                     *int     `json:"max" validate:"omitempty,min=1,max=250"`
	IncludedAirlineCodes    *string  `json:"includedAirlineCodes" validate:"omitempty,airline_codes"`
	ExcludedAirlineCodes    *string  `json:"excludedAirlineCodes" validate:"omitempty,airline_codes"`
}

var validate = validation.NewValidator()

// ParseSearchParams validates query-string parameters. Only the first value
// of a repeated key is considered and empty values count as absent.
func ParseSearchParams(query url.Values) (*SearchParams, error) {
	raw := make(map[string]interface{}, len(query))
	for key, values := range query {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}
	return ParseSearchParamsMap(raw)
}

// ParseSearchParamsMap validates parameters decoded from a JSON object.
// Numbers may arrive as JSON numbers or numeric strings; null means absent.
func ParseSearchParamsMap(raw map[string]interface{}) (*SearchParams, error) {
	var (
		in   searchInput
		errs []error
	)

	str := func(key string) *string {
		s, err := coerceString(key, raw[key])
		if err != nil {
			errs = append(errs, err)
		}
		return s
	}
	integer := func(key string) *int {
		n, err := coerceInt(key, raw[key])
		if err != nil {
			errs = append(errs, err)
		}
		return n
	}

	in.OriginLocationCode = str("originLocationCode")
	in.DestinationLocationCode = str("destinationLocationCode")
	in.DepartureDate = str("departureDate")
	in.ReturnDate = str("returnDate")
	in.Adults = integer("adults")
	in.Children = integer("children")
	in.Infants = integer("infants")
	in.TravelClass = str("travelClass")
	in.CurrencyCode = str("currencyCode")
	in.Max = integer("max")
	in.IncludedAirlineCodes = str("includedAirlineCodes")
	in.ExcludedAirlineCodes = str("excludedAirlineCodes")

	maxPrice, err := coerceFloat("maxPrice", raw["maxPrice"])
	if err != nil {
		errs = append(errs, err)
	}
	in.MaxPrice = maxPrice

	nonStop, err := coerceBool("nonStop", raw["nonStop"])
	if err != nil {
		errs = append(errs, err)
	}
	in.NonStop = nonStop

	errs = append(errs, validate.Struct(in))
	if err := validation.Join(errs...); err != nil {
		return nil, err
	}

	return in.params(), nil
}

func (in searchInput) params() *SearchParams {
	p := &SearchParams{
		OriginLocationCode:      *in.OriginLocationCode,
		DestinationLocationCode: *in.DestinationLocationCode,
		DepartureDate:           *in.DepartureDate,
		ReturnDate:              in.ReturnDate,
		Adults:                  *in.Adults,
		Children:                in.Children,
		Infants:                 in.Infants,
		MaxPrice:                in.MaxPrice,
		CurrencyCode:            DefaultCurrencyCode,
		NonStop:                 DefaultNonStop,
		Max:                     DefaultMax,
		IncludedAirlineCodes:    in.IncludedAirlineCodes,
		ExcludedAirlineCodes:    in.ExcludedAirlineCodes,
	}
	if in.TravelClass != nil {
		class := TravelClass(*in.TravelClass)
		p.TravelClass = &class
	}
	if in.CurrencyCode != nil {
		p.CurrencyCode = *in.CurrencyCode
	}
	if in.NonStop != nil {
		p.NonStop = *in.NonStop
	}
	if in.Max != nil {
		p.Max = *in.Max
	}
	return p
}

// IncludedAirlines splits IncludedAirlineCodes into individual codes.
func (p *SearchParams) IncludedAirlines() []string {
	if p.IncludedAirlineCodes == nil {
		return nil
	}
	return validation.SplitCodeList(*p.IncludedAirlineCodes)
}

// ExcludedAirlines splits ExcludedAirlineCodes into individual codes.
func (p *SearchParams) ExcludedAirlines() []string {
	if p.ExcludedAirlineCodes == nil {
		return nil
	}
	return validation.SplitCodeList(*p.ExcludedAirlineCodes)
}

// Query encodes the parameters the way the upstream search endpoint expects
// them. ParseSearchParams(p.Query()) yields p again.
func (p *SearchParams) Query() url.Values {
	q := url.Values{}
	q.Set("originLocationCode", p.OriginLocationCode)
	q.Set("destinationLocationCode", p.DestinationLocationCode)
	q.Set("departureDate", p.DepartureDate)
	if p.ReturnDate != nil {
		q.Set("returnDate", *p.ReturnDate)
	}
	q.Set("adults", strconv.Itoa(p.Adults))
	if p.Children != nil {
		q.Set("children", strconv.Itoa(*p.Children))
	}
	if p.Infants != nil {
		q.Set("infants", strconv.Itoa(*p.Infants))
	}
	if p.TravelClass != nil {
		q.Set("travelClass", string(*p.TravelClass))
	}
	if p.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	q.Set("currencyCode", p.CurrencyCode)
	q.Set("nonStop", strconv.FormatBool(p.NonStop))
	q.Set("max", strconv.Itoa(p.Max))
	if p.IncludedAirlineCodes != nil {
		q.Set("includedAirlineCodes", *p.IncludedAirlineCodes)
	}
	if p.ExcludedAirlineCodes != nil {
		q.Set("excludedAirlineCodes", *p.ExcludedAirlineCodes)
	}
	return q
}

func coerceString(field string, raw interface{}) (*string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		if v == "" {
			return nil, nil
		}
		return &v, nil
	default:
		return nil, validation.NewError(field, "string", "", "must be a string")
	}
}

// coerceFloat turns numeric strings and JSON numbers into a float64.
func coerceFloat(field string, raw interface{}) (*float64, error) {
	var (
		f   float64
		err error
	)

	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		f, err = strconv.ParseFloat(s, 64)
	case bool:
		err = fmt.Errorf("boolean %v is not a number", v)
	default:
		f, err = cast.ToFloat64E(v)
	}

	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, validation.NewError(field, "number", "", "must be a number")
	}
	return &f, nil
}

func coerceInt(field string, raw interface{}) (*int, error) {
	f, err := coerceFloat(field, raw)
	if err != nil || f == nil {
		return nil, err
	}
	if *f != math.Trunc(*f) || math.Abs(*f) > math.MaxInt32 {
		return nil, validation.NewError(field, "integer", "", fmt.Sprintf("must be a whole number, got %v", *f))
	}
	n := int(*f)
	return &n, nil
}

func coerceBool(field string, raw interface{}) (*bool, error) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok && strings.TrimSpace(s) == "" {
		return nil, nil
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return nil, validation.NewError(field, "boolean", "", "must be true or false")
	}
	return &b, nil
}
