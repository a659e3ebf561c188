package dto

import "github.com/hugh/skychat/internal/flights"

// SearchParamsResponse echoes a search request after validation, with
// defaults filled in and the encoded upstream query string.
type SearchParamsResponse struct {
	Params *flights.SearchParams `json:"params"`
	Query  string                `json:"query"`
}

type SearchSchemaResponse struct {
	Params []flights.ParamDescription `json:"params"`
}

// OfferValidationResponse summarizes an upstream payload that passed
// validation.
type OfferValidationResponse struct {
	Count    float64           `json:"count"`
	Offers   []OfferSummary    `json:"offers"`
	Carriers map[string]string `json:"carriers"`
}

type OfferSummary struct {
	ID         string   `json:"id"`
	GrandTotal string   `json:"grandTotal"`
	Currency   string   `json:"currency"`
	Carriers   []string `json:"carriers"`
	Stops      int      `json:"stops"`
	Seats      float64  `json:"seats"`
}

// NewOfferValidationResponse builds the summary for a parsed response.
func NewOfferValidationResponse(resp *flights.SearchResponse) OfferValidationResponse {
	out := OfferValidationResponse{
		Count:    *resp.Meta.Count,
		Offers:   make([]OfferSummary, 0, len(resp.Data)),
		Carriers: make(map[string]string),
	}

	for i := range resp.Data {
		offer := &resp.Data[i]
		carriers := offer.Carriers()
		for _, code := range carriers {
			out.Carriers[code] = resp.CarrierName(code)
		}
		out.Offers = append(out.Offers, OfferSummary{
			ID:         flights.Value(offer.ID),
			GrandTotal: flights.Value(offer.Price.GrandTotal),
			Currency:   flights.Value(offer.Price.Currency),
			Carriers:   carriers,
			Stops:      offer.Stops(),
			Seats:      *offer.NumberOfBookableSeats,
		})
	}

	return out
}
