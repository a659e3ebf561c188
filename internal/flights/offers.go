package flights

// SearchResponse is the payload returned by the upstream flight-offer search.
// Every field the upstream always sends is a pointer, so `required` checks
// presence only: an empty string or a zero count is still a value. See
// ParseSearchResponse.
type SearchResponse struct {
	Meta         *Meta         `json:"meta" validate:"required"`
	Data         []FlightOffer `json:"data" validate:"required,dive"`
	Dictionaries *Dictionaries `json:"dictionaries" validate:"required"`
}

type Meta struct {
	Count *float64 `json:"count" validate:"required"`
	Links *Links   `json:"links" validate:"required"`
}

type Links struct {
	Self *string `json:"self" validate:"required,url"`
}

type FlightOffer struct {
	Type                     *string           `json:"type" validate:"required"`
	ID                       *string           `json:"id" validate:"required"`
	Source                   *string           `json:"source" validate:"required"`
	InstantTicketingRequired *bool             `json:"instantTicketingRequired" validate:"required"`
	NonHomogeneous           *bool             `json:"nonHomogeneous" validate:"required"`
	OneWay                   *bool             `json:"oneWay" validate:"required"`
	LastTicketingDate        *string           `json:"lastTicketingDate" validate:"required"`
	NumberOfBookableSeats    *float64          `json:"numberOfBookableSeats" validate:"required"`
	Itineraries              []Itinerary       `json:"itineraries" validate:"required,dive"`
	Price                    *OfferPrice       `json:"price" validate:"required"`
	PricingOptions           *PricingOptions   `json:"pricingOptions" validate:"required"`
	ValidatingAirlineCodes   []string          `json:"validatingAirlineCodes" validate:"required"`
	TravelerPricings         []TravelerPricing `json:"travelerPricings" validate:"required,dive"`
}

type Itinerary struct {
	Duration *string   `json:"duration" validate:"required"`
	Segments []Segment `json:"segments" validate:"required,dive"`
}

type Segment struct {
	Departure       *Endpoint  `json:"departure" validate:"required"`
	Arrival         *Endpoint  `json:"arrival" validate:"required"`
	CarrierCode     *string    `json:"carrierCode" validate:"required"`
	Number          *string    `json:"number" validate:"required"`
	Aircraft        *Aircraft  `json:"aircraft" validate:"required"`
	Operating       *Operating `json:"operating" validate:"required"`
	Duration        *string    `json:"duration" validate:"required"`
	ID              *string    `json:"id" validate:"required"`
	NumberOfStops   *float64   `json:"numberOfStops" validate:"required"`
	BlacklistedInEU *bool      `json:"blacklistedInEU" validate:"required"`
}

// Endpoint is the departure or arrival side of a segment.
type Endpoint struct {
	IATACode *string `json:"iataCode" validate:"required"`
	Terminal *string `json:"terminal,omitempty"`
	At       *string `json:"at" validate:"required"`
}

type Aircraft struct {
	Code *string `json:"code" validate:"required"`
}

type Operating struct {
	CarrierCode *string `json:"carrierCode" validate:"required"`
}

// Price amounts are decimal strings as sent by the upstream.
type Price struct {
	Currency *string `json:"currency" validate:"required"`
	Total    *string `json:"total" validate:"required"`
	Base     *string `json:"base" validate:"required"`
}

type OfferPrice struct {
	Currency   *string `json:"currency" validate:"required"`
	Total      *string `json:"total" validate:"required"`
	Base       *string `json:"base" validate:"required"`
	Fees       []Fee   `json:"fees" validate:"required,dive"`
	GrandTotal *string `json:"grandTotal" validate:"required"`
}

type Fee struct {
	Amount *string `json:"amount" validate:"required"`
	Type   *string `json:"type" validate:"required"`
}

type PricingOptions struct {
	FareType                []string `json:"fareType" validate:"required"`
	IncludedCheckedBagsOnly *bool    `json:"includedCheckedBagsOnly" validate:"required"`
}

type TravelerPricing struct {
	TravelerID           *string      `json:"travelerId" validate:"required"`
	FareOption           *string      `json:"fareOption" validate:"required"`
	TravelerType         *string      `json:"travelerType" validate:"required"`
	Price                *Price       `json:"price" validate:"required"`
	FareDetailsBySegment []FareDetail `json:"fareDetailsBySegment" validate:"required,dive"`
}

type FareDetail struct {
	SegmentID           *string              `json:"segmentId" validate:"required"`
	Cabin               *string              `json:"cabin" validate:"required"`
	FareBasis           *string              `json:"fareBasis" validate:"required"`
	Class               *string              `json:"class" validate:"required"`
	IncludedCheckedBags *IncludedCheckedBags `json:"includedCheckedBags" validate:"required"`
}

type IncludedCheckedBags struct {
	Weight     *float64 `json:"weight" validate:"required"`
	WeightUnit *string  `json:"weightUnit" validate:"required"`
}

// Dictionaries resolve the codes used in offers to display values.
type Dictionaries struct {
	Locations  map[string]Location `json:"locations" validate:"required,dive"`
	Aircraft   map[string]string   `json:"aircraft" validate:"required"`
	Currencies map[string]string   `json:"currencies" validate:"required"`
	Carriers   map[string]string   `json:"carriers" validate:"required"`
}

type Location struct {
	CityCode    *string `json:"cityCode" validate:"required"`
	CountryCode *string `json:"countryCode" validate:"required"`
}

// Value dereferences an optional string field, yielding "" when it is unset.
func Value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Carriers returns the marketing carrier codes flown by the offer, in the
// order they first appear.
func (o *FlightOffer) Carriers() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, it := range o.Itineraries {
		for _, seg := range it.Segments {
			code := Value(seg.CarrierCode)
			if code == "" || seen[code] {
				continue
			}
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes
}

// Stops counts the intermediate landings across all itineraries: one per
// connection plus the technical stops reported on each segment. Fractional
// stop counts are truncated.
func (o *FlightOffer) Stops() int {
	stops := 0
	for _, it := range o.Itineraries {
		if n := len(it.Segments); n > 1 {
			stops += n - 1
		}
		for _, seg := range it.Segments {
			if seg.NumberOfStops != nil {
				stops += int(*seg.NumberOfStops)
			}
		}
	}
	return stops
}

// CarrierName resolves a carrier code through the dictionaries, falling back
// to the code itself.
func (r *SearchResponse) CarrierName(code string) string {
	if r.Dictionaries != nil {
		if name, ok := r.Dictionaries.Carriers[code]; ok && name != "" {
			return name
		}
	}
	return code
}
