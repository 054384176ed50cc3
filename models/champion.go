package models

// Champion records accumulated season titles for a player name.
// Titles is always >= 1 while the row exists: removing the last title
// removes the record instead of storing zero.
type Champion struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Titles int    `json:"titles"`
}
