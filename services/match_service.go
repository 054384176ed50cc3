package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tercas-fc/league-system/models"
	"github.com/tercas-fc/league-system/repositories"
)

// Notifier pushes an event to connected clients after a successful mutation.
// The live hub implements it; a nil Notifier disables pushes.
type Notifier interface {
	Notify(event string, payload interface{})
}

const (
	EventTableUpdated = "TABLE_UPDATED"
	EventSeasonClosed = "SEASON_CLOSED"
	EventSeasonReset  = "SEASON_RESET"
)

type RecordMatchInput struct {
	Date           time.Time
	Result         models.MatchResult
	TeamAPlayerIDs []int
	TeamBPlayerIDs []int
	DoublePoints   bool
}

type MatchService interface {
	RecordMatch(ctx context.Context, input RecordMatchInput) (*models.Match, error)
}

type matchService struct {
	txRunner          repositories.TxRunner
	matchRepo         repositories.MatchRepository
	participationRepo repositories.ParticipationRepository
	playerRepo        repositories.PlayerRepository
	notifier          Notifier
}

func NewMatchService(
	txRunner repositories.TxRunner,
	matchRepo repositories.MatchRepository,
	participationRepo repositories.ParticipationRepository,
	playerRepo repositories.PlayerRepository,
	notifier Notifier,
) MatchService {
	return &matchService{
		txRunner:          txRunner,
		matchRepo:         matchRepo,
		participationRepo: participationRepo,
		playerRepo:        playerRepo,
		notifier:          notifier,
	}
}

// RecordMatch validates the rosters, then persists the match, its
// participations and the per-game fee debits as one transaction. Clients are
// expected to re-fetch the table and balances afterwards.
func (s *matchService) RecordMatch(ctx context.Context, input RecordMatchInput) (*models.Match, error) {
	if !input.Result.Valid() {
		return nil, ErrInvalidMatchResult
	}
	if len(input.TeamAPlayerIDs) == 0 && len(input.TeamBPlayerIDs) == 0 {
		return nil, ErrMatchRosterEmpty
	}

	// A player id may appear once across both lists; anything else would
	// violate the (match_id, player_id) key.
	seen := make(map[int]struct{}, len(input.TeamAPlayerIDs)+len(input.TeamBPlayerIDs))
	for _, id := range input.TeamAPlayerIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrTeamRosterConflict
		}
		seen[id] = struct{}{}
	}
	for _, id := range input.TeamBPlayerIDs {
		if _, dup := seen[id]; dup {
			return nil, ErrTeamRosterConflict
		}
		seen[id] = struct{}{}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	match := &models.Match{
		Date:         date,
		Result:       input.Result,
		DoublePoints: input.DoublePoints,
	}

	err := s.txRunner.InTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.Create(ctx, exec, match); err != nil {
			return fmt.Errorf("failed to create match: %w", err)
		}

		addTeam := func(playerIDs []int, team string) error {
			for _, playerID := range playerIDs {
				link := &models.MatchParticipation{
					MatchID:  match.ID,
					PlayerID: playerID,
					Team:     team,
				}
				if err := s.participationRepo.Create(ctx, exec, link); err != nil {
					return mapParticipationError(err, playerID)
				}
				// Standard per-game cost, charged win or lose.
				if err := s.playerRepo.AdjustBalance(ctx, exec, playerID, GameFee.Neg()); err != nil {
					if errors.Is(err, repositories.ErrPlayerNotFound) {
						return fmt.Errorf("%w: id %d", ErrPlayerNotFound, playerID)
					}
					return fmt.Errorf("failed to charge game fee to player %d: %w", playerID, err)
				}
				match.Participations = append(match.Participations, *link)
			}
			return nil
		}

		if err := addTeam(input.TeamAPlayerIDs, "A"); err != nil {
			return err
		}
		return addTeam(input.TeamBPlayerIDs, "B")
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Notify(EventTableUpdated, map[string]int{"match_id": match.ID})
	}
	return match, nil
}

func mapParticipationError(err error, playerID int) error {
	switch {
	case errors.Is(err, repositories.ErrParticipationPlayerInvalid):
		return fmt.Errorf("%w: id %d", ErrPlayerNotFound, playerID)
	case errors.Is(err, repositories.ErrParticipationConflict):
		return ErrTeamRosterConflict
	default:
		return fmt.Errorf("failed to create participation for player %d: %w", playerID, err)
	}
}
