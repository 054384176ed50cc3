package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tercas-fc/league-system/models"
	"github.com/tercas-fc/league-system/repositories"
)

func gameFeeDebit() interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(GameFee.Neg())
	})
}

func TestRecordMatch_RejectsInvalidResult(t *testing.T) {
	service := NewMatchService(&stubTxRunner{}, new(MockMatchRepository), new(MockParticipationRepository), new(MockPlayerRepository), nil)

	match, err := service.RecordMatch(context.Background(), RecordMatchInput{
		Result:         models.MatchResult("TEAM_C"),
		TeamAPlayerIDs: []int{1},
		TeamBPlayerIDs: []int{2},
	})

	assert.ErrorIs(t, err, ErrInvalidMatchResult)
	assert.Nil(t, match)
}

func TestRecordMatch_RejectsEmptyRosters(t *testing.T) {
	service := NewMatchService(&stubTxRunner{}, new(MockMatchRepository), new(MockParticipationRepository), new(MockPlayerRepository), nil)

	match, err := service.RecordMatch(context.Background(), RecordMatchInput{
		Result: models.ResultDraw,
	})

	assert.ErrorIs(t, err, ErrMatchRosterEmpty)
	assert.Nil(t, match)
}

func TestRecordMatch_RejectsPlayerOnBothTeams(t *testing.T) {
	service := NewMatchService(&stubTxRunner{}, new(MockMatchRepository), new(MockParticipationRepository), new(MockPlayerRepository), nil)

	match, err := service.RecordMatch(context.Background(), RecordMatchInput{
		Result:         models.ResultTeamA,
		TeamAPlayerIDs: []int{1, 2},
		TeamBPlayerIDs: []int{2, 3},
	})

	assert.ErrorIs(t, err, ErrTeamRosterConflict)
	assert.Nil(t, match)
}

func TestRecordMatch_RejectsDuplicateWithinOneTeam(t *testing.T) {
	service := NewMatchService(&stubTxRunner{}, new(MockMatchRepository), new(MockParticipationRepository), new(MockPlayerRepository), nil)

	match, err := service.RecordMatch(context.Background(), RecordMatchInput{
		Result:         models.ResultTeamA,
		TeamAPlayerIDs: []int{1, 1},
		TeamBPlayerIDs: []int{2},
	})

	assert.ErrorIs(t, err, ErrTeamRosterConflict)
	assert.Nil(t, match)
}

func TestRecordMatch_PersistsMatchAndChargesEveryParticipant(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	participationRepo := new(MockParticipationRepository)
	playerRepo := new(MockPlayerRepository)
	notifier := new(MockNotifier)

	matchRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.Match")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*models.Match).ID = 42
		}).
		Return(nil)
	participationRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.MatchParticipation")).Return(nil).Times(3)
	playerRepo.On("AdjustBalance", mock.Anything, mock.Anything, mock.AnythingOfType("int"), gameFeeDebit()).Return(nil).Times(3)
	notifier.On("Notify", EventTableUpdated, map[string]int{"match_id": 42}).Return()

	service := NewMatchService(&stubTxRunner{}, matchRepo, participationRepo, playerRepo, notifier)
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	match, err := service.RecordMatch(context.Background(), RecordMatchInput{
		Date:           date,
		Result:         models.ResultTeamA,
		TeamAPlayerIDs: []int{1, 2},
		TeamBPlayerIDs: []int{3},
	})

	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, 42, match.ID)
	assert.Equal(t, date, match.Date)
	require.Len(t, match.Participations, 3)
	assert.Equal(t, "A", match.Participations[0].Team)
	assert.Equal(t, "A", match.Participations[1].Team)
	assert.Equal(t, "B", match.Participations[2].Team)
	for _, link := range match.Participations {
		assert.Equal(t, 42, link.MatchID)
	}

	matchRepo.AssertExpectations(t)
	participationRepo.AssertExpectations(t)
	playerRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRecordMatch_DefaultsDateToNow(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	participationRepo := new(MockParticipationRepository)
	playerRepo := new(MockPlayerRepository)

	matchRepo.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.Match")).Return(nil)
	participationRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	playerRepo.On("AdjustBalance", mock.Anything, mock.Anything, 1, gameFeeDebit()).Return(nil)

	service := NewMatchService(&stubTxRunner{}, matchRepo, participationRepo, playerRepo, nil)

	match, err := service.RecordMatch(context.Background(), RecordMatchInput{
		Result:         models.ResultDraw,
		TeamAPlayerIDs: []int{1},
	})

	require.NoError(t, err)
	assert.False(t, match.Date.IsZero())
}

func TestRecordMatch_UnknownParticipantFailsWholeTransaction(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	participationRepo := new(MockParticipationRepository)
	playerRepo := new(MockPlayerRepository)
	notifier := new(MockNotifier)

	matchRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	participationRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(repositories.ErrParticipationPlayerInvalid).Once()

	service := NewMatchService(&stubTxRunner{}, matchRepo, participationRepo, playerRepo, notifier)

	match, err := service.RecordMatch(context.Background(), RecordMatchInput{
		Result:         models.ResultTeamB,
		TeamAPlayerIDs: []int{99},
		TeamBPlayerIDs: []int{2},
	})

	assert.ErrorIs(t, err, ErrPlayerNotFound)
	assert.Nil(t, match)
	playerRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestRecordMatch_DuplicateParticipationFromStoreMapsToRosterConflict(t *testing.T) {
	matchRepo := new(MockMatchRepository)
	participationRepo := new(MockParticipationRepository)
	playerRepo := new(MockPlayerRepository)

	matchRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	participationRepo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(repositories.ErrParticipationConflict).Once()

	service := NewMatchService(&stubTxRunner{}, matchRepo, participationRepo, playerRepo, nil)

	match, err := service.RecordMatch(context.Background(), RecordMatchInput{
		Result:         models.ResultTeamA,
		TeamAPlayerIDs: []int{1},
	})

	assert.ErrorIs(t, err, ErrTeamRosterConflict)
	assert.Nil(t, match)
}

func TestRecordMatch_TransactionBeginFailureIsReturned(t *testing.T) {
	runner := &stubTxRunner{beginErr: assert.AnError}
	notifier := new(MockNotifier)

	service := NewMatchService(runner, new(MockMatchRepository), new(MockParticipationRepository), new(MockPlayerRepository), notifier)

	match, err := service.RecordMatch(context.Background(), RecordMatchInput{
		Result:         models.ResultDraw,
		TeamAPlayerIDs: []int{1},
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, match)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}
