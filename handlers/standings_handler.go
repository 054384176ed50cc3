package handlers

import (
	"net/http"

	"github.com/tercas-fc/league-system/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(standingsService services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// TableHandler handles GET /table
func (h *StandingsHandler) TableHandler(w http.ResponseWriter, r *http.Request) {
	table, err := h.standingsService.ComputeTable(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"table": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
