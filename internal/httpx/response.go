// Package httpx holds the JSON response shapes every handler shares: plain
// payloads, the error envelope, and the items/total listing the catalog,
// customer and history endpoints all return.
package httpx

import (
	"encoding/json"
	"net/http"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// Listing is the collection envelope for list and search endpoints. Total is
// the number of items, not a monetary amount.
type Listing struct {
	Items any `json:"items"`
	Total int `json:"total"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	// marshal before writing the status so an encode failure can still
	// report a 500 instead of a truncated success body
	body, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		body = []byte(`{"error":"encode_error"}`)
	} else {
		w.WriteHeader(status)
	}
	_, _ = w.Write(body)
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// JSONList writes a 200 listing envelope around a result slice.
func JSONList(w http.ResponseWriter, items any, total int) {
	JSON(w, http.StatusOK, Listing{Items: items, Total: total})
}
