package models

import "time"

// MatchResult mirrors the match_result ENUM in the database.
type MatchResult string

const (
	ResultTeamA MatchResult = "TEAM_A"
	ResultTeamB MatchResult = "TEAM_B"
	ResultDraw  MatchResult = "DRAW"
)

// Valid reports whether r is one of the three enumerated results.
func (r MatchResult) Valid() bool {
	switch r {
	case ResultTeamA, ResultTeamB, ResultDraw:
		return true
	}
	return false
}

type Match struct {
	ID           int         `json:"id"`
	Date         time.Time   `json:"date"`
	Result       MatchResult `json:"result"`
	DoublePoints bool        `json:"double_points"`
	CreatedAt    time.Time   `json:"created_at"`

	// Optional linked data, populated by the service, not mapped directly.
	Participations []MatchParticipation `json:"participations,omitempty"`
}

// MatchParticipation links a player to a match with the team they played on.
// Composite key (match_id, player_id); a player appears in a match at most
// once, on exactly one team.
type MatchParticipation struct {
	MatchID  int    `json:"match_id"`
	PlayerID int    `json:"player_id"`
	Team     string `json:"team"` // "A" or "B"
}
