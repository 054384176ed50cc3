package services

import "errors"

// Shared errors surfaced by the service layer and mapped to HTTP statuses in
// the handlers.
var (
	// Not found
	ErrNotFound         = errors.New("requested resource not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrChampionNotFound = errors.New("champion not found")

	// Validation and business rules
	ErrValidationFailed     = errors.New("validation failed")
	ErrPlayerNameRequired   = errors.New("player name is required")
	ErrInvalidMatchResult   = errors.New("match result must be TEAM_A, TEAM_B or DRAW")
	ErrMatchRosterEmpty     = errors.New("match requires at least one participant")
	ErrPaymentAmountInvalid = errors.New("payment amount must be positive")
	ErrChampionNameRequired = errors.New("champion name is required")
	ErrSeasonLabelRequired  = errors.New("season label is required")

	// Conflicts
	ErrPlayerNameConflict = errors.New("player name is already in use")
	ErrTeamRosterConflict = errors.New("player cannot appear on both teams or twice in one match")

	// Authentication
	ErrAuthInvalidPassword = errors.New("invalid admin password")
)
