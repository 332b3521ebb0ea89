package chat

import (
	"encoding/json"
	"net/http"

	"github.com/Vovarama1992/quote-agent/internal/apperr"
	"github.com/Vovarama1992/quote-agent/internal/httpkit"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// HandleChat answers one chat message with a structured response.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req Request

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		httpkit.HandleError(w, apperr.Validation("invalid json"))
		return
	}

	resp, err := h.svc.HandleIncoming(r.Context(), req)
	if err != nil {
		httpkit.HandleError(w, err)
		return
	}

	httpkit.OK(w, resp)
}
