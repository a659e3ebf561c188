package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hugh/skychat/internal/api/dto"
	"github.com/hugh/skychat/internal/validation"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeValidation renders a validation failure with per-field details.
func writeValidation(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   "Validation failed",
		Details: validation.Details(err),
	})
}
