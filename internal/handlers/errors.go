package handlers

import (
	"errors"
	"net/http"

	"github.com/jjbarja/ferreteria/internal/httpx"
	"github.com/jjbarja/ferreteria/internal/services"
	"github.com/jjbarja/ferreteria/internal/validation"
)

// writeServiceError maps service errors onto the response taxonomy: bad
// input is 400 with the violations map, a vanished row is 404, anything
// else is a store fault reported as 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "store_error", nil)
	}
}
