package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hugh/skychat/internal/api/dto"
	"github.com/hugh/skychat/internal/flights"
	"github.com/hugh/skychat/internal/validation"
)

// DefaultMaxBodyBytes caps upstream payloads posted for validation. A search
// with max=250 offers stays well below it.
const DefaultMaxBodyBytes = 4 << 20

type FlightHandler struct {
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewFlightHandler(maxBodyBytes int64, logger *slog.Logger) *FlightHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FlightHandler{maxBodyBytes: maxBodyBytes, logger: logger}
}

// SearchParams validates search parameters sent as a query string.
func (h *FlightHandler) SearchParams(w http.ResponseWriter, r *http.Request) {
	params, err := flights.ParseSearchParams(r.URL.Query())
	h.respondParams(w, params, err)
}

// SearchParamsJSON validates search parameters sent as a JSON object.
func (h *FlightHandler) SearchParamsJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var raw map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request body"})
		return
	}

	params, err := flights.ParseSearchParamsMap(raw)
	h.respondParams(w, params, err)
}

func (h *FlightHandler) respondParams(w http.ResponseWriter, params *flights.SearchParams, err error) {
	if err != nil {
		if validation.IsValidation(err) {
			writeValidation(w, http.StatusBadRequest, err)
			return
		}
		h.logger.Error("parsing search params", "error", err)
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to parse search params"})
		return
	}

	writeJSON(w, http.StatusOK, dto.SearchParamsResponse{
		Params: params,
		Query:  params.Query().Encode(),
	})
}

// Schema lists every search parameter with its description.
func (h *FlightHandler) Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.SearchSchemaResponse{Params: flights.SearchParamDescriptions()})
}

// ValidateOffers checks an upstream flight-offer payload and summarizes it.
func (h *FlightHandler) ValidateOffers(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	resp, err := flights.DecodeSearchResponse(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "Request body too large"})
		case validation.IsValidation(err):
			h.logger.Debug("offer payload rejected", "error", err)
			writeValidation(w, http.StatusUnprocessableEntity, err)
		default:
			h.logger.Warn("reading offer payload", "error", err)
			writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "Failed to read request body"})
		}
		return
	}

	writeJSON(w, http.StatusOK, dto.NewOfferValidationResponse(resp))
}
