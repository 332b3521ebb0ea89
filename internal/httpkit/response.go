// Package httpkit provides JSON response helpers for net/http handlers.
package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Vovarama1992/quote-agent/internal/apperr"
)

// ErrorResponse is the standard error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func OK(w http.ResponseWriter, payload any) {
	JSON(w, http.StatusOK, payload)
}

// HandleError maps err to a response. Typed errors use their kind; anything
// else is a 500 with a generic message.
func HandleError(w http.ResponseWriter, err error) {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		msg := domainErr.Message
		if domainErr.Kind == apperr.KindInternal {
			msg = "internal error"
		}
		JSON(w, domainErr.HTTPStatus(), ErrorResponse{Error: msg, Details: domainErr.Details})
		return
	}
	JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
