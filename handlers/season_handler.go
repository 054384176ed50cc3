package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tercas-fc/league-system/services"
)

type SeasonHandler struct {
	seasonService services.SeasonService
}

func NewSeasonHandler(seasonService services.SeasonService) *SeasonHandler {
	return &SeasonHandler{seasonService: seasonService}
}

// CloseHandler handles POST /seasons/close
func (h *SeasonHandler) CloseHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ChampionName string `json:"champion_name"`
		SeasonLabel  string `json:"season_label"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	archive, err := h.seasonService.CloseSeason(r.Context(), input.ChampionName, input.SeasonLabel)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"archive": archive}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetHandler handles POST /seasons/reset — the danger-zone wipe without an
// archive.
func (h *SeasonHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.seasonService.ManualReset(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "season reset success"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// HistoryHandler handles GET /seasons/history
func (h *SeasonHandler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	archives, err := h.seasonService.ListHistory(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"history": archives}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListChampionsHandler handles GET /champions
func (h *SeasonHandler) ListChampionsHandler(w http.ResponseWriter, r *http.Request) {
	champions, err := h.seasonService.ListChampions(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"champions": champions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemoveChampionTitleHandler handles DELETE /champions/{name}
func (h *SeasonHandler) RemoveChampionTitleHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		badRequestResponse(w, r, errors.New("champion name is required"))
		return
	}

	if err := h.seasonService.RemoveChampionTitle(r.Context(), name); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"message": "title removed"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
