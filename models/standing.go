package models

// PlayerStanding is one row of the live table. It is always derived from
// matches and participations, never stored (archives keep a serialized copy).
type PlayerStanding struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Draws       int    `json:"draws"`
	Losses      int    `json:"losses"`
	Points      int    `json:"points"`
}
