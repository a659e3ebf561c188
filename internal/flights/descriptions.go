package flights

// ParamDescription documents one search parameter for clients that build
// requests from a tool or form definition.
type ParamDescription struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
	Description string      `json:"description"`
}

// SearchParamDescriptions lists the search parameters in request order.
func SearchParamDescriptions() []ParamDescription {
	return []ParamDescription{
		{Name: "originLocationCode", Type: "string", Required: true, Description: "IATA code of the departure airport"},
		{Name: "destinationLocationCode", Type: "string", Required: true, Description: "IATA code of the arrival airport"},
		{Name: "departureDate", Type: "string", Required: true, Description: "Date of departure in YYYY-MM-DD format"},
		{Name: "returnDate", Type: "string", Description: "Optional date of return in YYYY-MM-DD format"},
		{Name: "adults", Type: "integer", Required: true, Description: "Number of adult passengers (12+ years)"},
		{Name: "children", Type: "integer", Description: "Number of child passengers (2-11 years)"},
		{Name: "infants", Type: "integer", Description: "Number of infant passengers (0-2 years)"},
		{
			Name:        "travelClass",
			Type:        "string",
			Enum:        []string{string(TravelClassEconomy), string(TravelClassPremiumEconomy), string(TravelClassBusiness), string(TravelClassFirst)},
			Description: "Preferred cabin class for the flight",
		},
		{Name: "maxPrice", Type: "number", Description: "Maximum price for the flight"},
		{Name: "currencyCode", Type: "string", Default: DefaultCurrencyCode, Description: "Three-letter currency code"},
		{Name: "nonStop", Type: "boolean", Default: DefaultNonStop, Description: "Filter for direct flights only"},
		{Name: "max", Type: "integer", Default: DefaultMax, Description: "Maximum number of results to return"},
		{Name: "includedAirlineCodes", Type: "string", Description: "Comma-separated list of preferred airline IATA codes"},
		{Name: "excludedAirlineCodes", Type: "string", Description: "Comma-separated list of airline IATA codes to exclude"},
	}
}
