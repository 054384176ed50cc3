package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Player is a league member. Players are never hard-deleted: deactivation
// removes them from the live table while their match history and balance
// survive.
type Player struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Active    bool            `json:"active"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}
