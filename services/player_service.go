package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tercas-fc/league-system/models"
	"github.com/tercas-fc/league-system/repositories"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, name string) (*models.Player, error)
	ListPlayers(ctx context.Context, activeOnly bool) ([]models.Player, error)
	RegisterPayment(ctx context.Context, playerID int, amount decimal.Decimal) (*models.Player, error)
	DeactivatePlayer(ctx context.Context, playerID int) error
}

type playerService struct {
	txRunner   repositories.TxRunner
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(txRunner repositories.TxRunner, playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{
		txRunner:   txRunner,
		playerRepo: playerRepo,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	player := &models.Player{Name: name}
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerNameConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context, activeOnly bool) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx, nil, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// RegisterPayment credits a member payment against the player's balance and
// returns the updated player.
func (s *playerService) RegisterPayment(ctx context.Context, playerID int, amount decimal.Decimal) (*models.Player, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrPaymentAmountInvalid
	}

	var player *models.Player
	err := s.txRunner.InTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.playerRepo.AdjustBalance(ctx, exec, playerID, amount); err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return ErrPlayerNotFound
			}
			return fmt.Errorf("failed to register payment: %w", err)
		}
		var err error
		player, err = s.playerRepo.GetByID(ctx, exec, playerID)
		if err != nil {
			return fmt.Errorf("failed to reload player %d: %w", playerID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// DeactivatePlayer soft-deletes: the player drops out of the live table while
// balance and match history remain.
func (s *playerService) DeactivatePlayer(ctx context.Context, playerID int) error {
	if err := s.playerRepo.Deactivate(ctx, nil, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to deactivate player %d: %w", playerID, err)
	}
	return nil
}
