package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/tercas-fc/league-system/models"
	"github.com/tercas-fc/league-system/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(matchService services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// CreateHandler handles POST /matches
func (h *MatchHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Date           string `json:"date"`
		Result         string `json:"result"`
		TeamAPlayers   []int  `json:"team_a_players"`
		TeamBPlayers   []int  `json:"team_b_players"`
		IsDoublePoints bool   `json:"is_double_points"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var date time.Time
	if input.Date != "" {
		var err error
		date, err = time.Parse("2006-01-02", input.Date)
		if err != nil {
			badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
			return
		}
	}

	match, err := h.matchService.RecordMatch(r.Context(), services.RecordMatchInput{
		Date:           date,
		Result:         models.MatchResult(input.Result),
		TeamAPlayerIDs: input.TeamAPlayers,
		TeamBPlayerIDs: input.TeamBPlayers,
		DoublePoints:   input.IsDoublePoints,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
