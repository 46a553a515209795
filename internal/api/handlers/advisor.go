package handlers

import (
	"net/http"
	"time"

	"github.com/ddanilov/homeledger/internal/advisor"
	"github.com/ddanilov/homeledger/internal/api/middleware"
	"github.com/ddanilov/homeledger/internal/store"
	"github.com/rs/zerolog"
)

// AdvisorHandler serves model-generated financial advice.
type AdvisorHandler struct {
	store   *store.Store
	advisor *advisor.Advisor
	log     zerolog.Logger
}

// NewAdvisorHandler creates the handler. adv may be nil when no model is
// configured; the endpoint then reports 503.
func NewAdvisorHandler(st *store.Store, adv *advisor.Advisor, log zerolog.Logger) *AdvisorHandler {
	return &AdvisorHandler{store: st, advisor: adv, log: log}
}

// Advise handles POST /api/advisor
func (h *AdvisorHandler) Advise(w http.ResponseWriter, r *http.Request) {
	if h.advisor == nil {
		middleware.WriteError(w, http.StatusServiceUnavailable, "Advisor is not configured")
		return
	}

	advice, err := h.advisor.Advise(r.Context(), h.store.Snapshot(), time.Now().UTC())
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to generate advice")
		middleware.WriteError(w, http.StatusBadGateway, "Failed to generate advice")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, advice)
}
