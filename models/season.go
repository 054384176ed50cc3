package models

import (
	"encoding/json"
	"time"
)

// SeasonArchive is an append-only record created at season close. Snapshot
// holds the standings table serialized at closure time; it is never mutated.
type SeasonArchive struct {
	ID          int             `json:"id"`
	SeasonLabel string          `json:"season_label"`
	ArchivedAt  time.Time       `json:"archived_at"`
	Snapshot    json.RawMessage `json:"snapshot"`
}

// Standings decodes the archived table back into the shape it was taken in.
func (a *SeasonArchive) Standings() ([]PlayerStanding, error) {
	var table []PlayerStanding
	if err := json.Unmarshal(a.Snapshot, &table); err != nil {
		return nil, err
	}
	return table, nil
}
