package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tercas-fc/league-system/models"
	"github.com/tercas-fc/league-system/repositories"
)

func TestCreatePlayer_TrimsNameBeforeSaving(t *testing.T) {
	playerRepo := new(MockPlayerRepository)
	playerRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(p *models.Player) bool {
		return p.Name == "Ana"
	})).Return(nil)

	service := NewPlayerService(&stubTxRunner{}, playerRepo)
	player, err := service.CreatePlayer(context.Background(), "  Ana  ")

	require.NoError(t, err)
	assert.Equal(t, "Ana", player.Name)
	playerRepo.AssertExpectations(t)
}

func TestCreatePlayer_RejectsBlankName(t *testing.T) {
	service := NewPlayerService(&stubTxRunner{}, new(MockPlayerRepository))

	player, err := service.CreatePlayer(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrPlayerNameRequired)
	assert.Nil(t, player)
}

func TestCreatePlayer_DuplicateNameMapsToConflict(t *testing.T) {
	playerRepo := new(MockPlayerRepository)
	playerRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(repositories.ErrPlayerNameConflict)

	service := NewPlayerService(&stubTxRunner{}, playerRepo)
	player, err := service.CreatePlayer(context.Background(), "Ana")

	assert.ErrorIs(t, err, ErrPlayerNameConflict)
	assert.Nil(t, player)
}

func TestRegisterPayment_RejectsNonPositiveAmounts(t *testing.T) {
	service := NewPlayerService(&stubTxRunner{}, new(MockPlayerRepository))

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-10)} {
		player, err := service.RegisterPayment(context.Background(), 1, amount)
		assert.ErrorIs(t, err, ErrPaymentAmountInvalid)
		assert.Nil(t, player)
	}
}

func TestRegisterPayment_CreditsBalanceAndReturnsUpdatedPlayer(t *testing.T) {
	playerRepo := new(MockPlayerRepository)
	amount := decimal.NewFromFloat(25.50)
	updated := &models.Player{ID: 1, Name: "Ana", Active: true, Balance: decimal.NewFromFloat(22.50)}

	playerRepo.On("AdjustBalance", mock.Anything, mock.Anything, 1, mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(amount)
	})).Return(nil)
	playerRepo.On("GetByID", mock.Anything, mock.Anything, 1).Return(updated, nil)

	service := NewPlayerService(&stubTxRunner{}, playerRepo)
	player, err := service.RegisterPayment(context.Background(), 1, amount)

	require.NoError(t, err)
	assert.Equal(t, updated, player)
	playerRepo.AssertExpectations(t)
}

func TestRegisterPayment_UnknownPlayer(t *testing.T) {
	playerRepo := new(MockPlayerRepository)
	playerRepo.On("AdjustBalance", mock.Anything, mock.Anything, 99, mock.Anything).Return(repositories.ErrPlayerNotFound)

	service := NewPlayerService(&stubTxRunner{}, playerRepo)
	player, err := service.RegisterPayment(context.Background(), 99, decimal.NewFromFloat(10))

	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Nil(t, player)
}

func TestDeactivatePlayer_UnknownPlayer(t *testing.T) {
	playerRepo := new(MockPlayerRepository)
	playerRepo.On("Deactivate", mock.Anything, mock.Anything, 99).Return(repositories.ErrPlayerNotFound)

	service := NewPlayerService(&stubTxRunner{}, playerRepo)
	err := service.DeactivatePlayer(context.Background(), 99)

	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestDeactivatePlayer_Succeeds(t *testing.T) {
	playerRepo := new(MockPlayerRepository)
	playerRepo.On("Deactivate", mock.Anything, mock.Anything, 1).Return(nil)

	service := NewPlayerService(&stubTxRunner{}, playerRepo)

	require.NoError(t, service.DeactivatePlayer(context.Background(), 1))
	playerRepo.AssertExpectations(t)
}

func TestListPlayers_PassesActiveOnlyFilter(t *testing.T) {
	playerRepo := new(MockPlayerRepository)
	roster := []models.Player{{ID: 1, Name: "Ana", Active: true}}
	playerRepo.On("List", mock.Anything, mock.Anything, true).Return(roster, nil)

	service := NewPlayerService(&stubTxRunner{}, playerRepo)
	players, err := service.ListPlayers(context.Background(), true)

	require.NoError(t, err)
	assert.Equal(t, roster, players)
	playerRepo.AssertExpectations(t)
}
