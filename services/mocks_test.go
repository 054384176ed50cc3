package services

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/tercas-fc/league-system/models"
	"github.com/tercas-fc/league-system/repositories"
	"github.com/tercas-fc/league-system/storage"
)

// stubTxRunner executes the transactional closure directly. A failing
// closure means the real runner would roll back, so tests assert on the
// returned error instead of a transaction handle.
type stubTxRunner struct {
	beginErr error
}

func (s *stubTxRunner) InTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	if s.beginErr != nil {
		return s.beginErr
	}
	return fn(nil)
}

type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Create(ctx context.Context, exec repositories.SQLExecutor, player *models.Player) error {
	args := m.Called(ctx, exec, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Player, error) {
	args := m.Called(ctx, exec, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Player), args.Error(1)
}

func (m *MockPlayerRepository) List(ctx context.Context, exec repositories.SQLExecutor, activeOnly bool) ([]models.Player, error) {
	args := m.Called(ctx, exec, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Player), args.Error(1)
}

func (m *MockPlayerRepository) AdjustBalance(ctx context.Context, exec repositories.SQLExecutor, id int, delta decimal.Decimal) error {
	args := m.Called(ctx, exec, id, delta)
	return args.Error(0)
}

func (m *MockPlayerRepository) Deactivate(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, exec repositories.SQLExecutor, match *models.Match) error {
	args := m.Called(ctx, exec, match)
	return args.Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, error) {
	args := m.Called(ctx, exec, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) List(ctx context.Context, exec repositories.SQLExecutor) ([]models.Match, error) {
	args := m.Called(ctx, exec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Match), args.Error(1)
}

func (m *MockMatchRepository) DeleteAll(ctx context.Context, exec repositories.SQLExecutor) error {
	args := m.Called(ctx, exec)
	return args.Error(0)
}

type MockParticipationRepository struct {
	mock.Mock
}

func (m *MockParticipationRepository) Create(ctx context.Context, exec repositories.SQLExecutor, link *models.MatchParticipation) error {
	args := m.Called(ctx, exec, link)
	return args.Error(0)
}

func (m *MockParticipationRepository) ListAll(ctx context.Context, exec repositories.SQLExecutor) ([]models.MatchParticipation, error) {
	args := m.Called(ctx, exec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MatchParticipation), args.Error(1)
}

func (m *MockParticipationRepository) ListByMatch(ctx context.Context, exec repositories.SQLExecutor, matchID int) ([]models.MatchParticipation, error) {
	args := m.Called(ctx, exec, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MatchParticipation), args.Error(1)
}

func (m *MockParticipationRepository) DeleteAll(ctx context.Context, exec repositories.SQLExecutor) error {
	args := m.Called(ctx, exec)
	return args.Error(0)
}

type MockChampionRepository struct {
	mock.Mock
}

func (m *MockChampionRepository) Create(ctx context.Context, exec repositories.SQLExecutor, champion *models.Champion) error {
	args := m.Called(ctx, exec, champion)
	return args.Error(0)
}

func (m *MockChampionRepository) GetByName(ctx context.Context, exec repositories.SQLExecutor, name string) (*models.Champion, error) {
	args := m.Called(ctx, exec, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Champion), args.Error(1)
}

func (m *MockChampionRepository) List(ctx context.Context, exec repositories.SQLExecutor) ([]models.Champion, error) {
	args := m.Called(ctx, exec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Champion), args.Error(1)
}

func (m *MockChampionRepository) IncrementTitles(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

func (m *MockChampionRepository) DecrementTitles(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

func (m *MockChampionRepository) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	args := m.Called(ctx, exec, id)
	return args.Error(0)
}

type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) Create(ctx context.Context, exec repositories.SQLExecutor, archive *models.SeasonArchive) error {
	args := m.Called(ctx, exec, archive)
	return args.Error(0)
}

func (m *MockArchiveRepository) List(ctx context.Context, exec repositories.SQLExecutor) ([]models.SeasonArchive, error) {
	args := m.Called(ctx, exec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SeasonArchive), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(event string, payload interface{}) {
	m.Called(event, payload)
}

type MockFileUploader struct {
	mock.Mock
}

func (m *MockFileUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	args := m.Called(ctx, key, contentType, reader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}

func (m *MockFileUploader) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockFileUploader) GetPublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
