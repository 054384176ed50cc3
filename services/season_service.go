package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tercas-fc/league-system/models"
	"github.com/tercas-fc/league-system/repositories"
	"github.com/tercas-fc/league-system/storage"
)

type SeasonService interface {
	CloseSeason(ctx context.Context, championName, seasonLabel string) (*models.SeasonArchive, error)
	ManualReset(ctx context.Context) error
	ListChampions(ctx context.Context) ([]models.Champion, error)
	RemoveChampionTitle(ctx context.Context, name string) error
	ListHistory(ctx context.Context) ([]models.SeasonArchive, error)
}

type seasonService struct {
	txRunner          repositories.TxRunner
	playerRepo        repositories.PlayerRepository
	matchRepo         repositories.MatchRepository
	participationRepo repositories.ParticipationRepository
	championRepo      repositories.ChampionRepository
	archiveRepo       repositories.ArchiveRepository
	exporter          storage.FileUploader
	notifier          Notifier
	logger            *slog.Logger
}

func NewSeasonService(
	txRunner repositories.TxRunner,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	participationRepo repositories.ParticipationRepository,
	championRepo repositories.ChampionRepository,
	archiveRepo repositories.ArchiveRepository,
	exporter storage.FileUploader,
	notifier Notifier,
	logger *slog.Logger,
) SeasonService {
	if logger == nil {
		logger = slog.Default()
	}
	return &seasonService{
		txRunner:          txRunner,
		playerRepo:        playerRepo,
		matchRepo:         matchRepo,
		participationRepo: participationRepo,
		championRepo:      championRepo,
		archiveRepo:       archiveRepo,
		exporter:          exporter,
		notifier:          notifier,
		logger:            logger,
	}
}

// CloseSeason crowns the champion, archives the current table and wipes the
// season's matches — all inside one transaction, so a failure at any step
// leaves the store untouched. Player balances survive the close.
func (s *seasonService) CloseSeason(ctx context.Context, championName, seasonLabel string) (*models.SeasonArchive, error) {
	championName = strings.TrimSpace(championName)
	if championName == "" {
		return nil, ErrChampionNameRequired
	}
	seasonLabel = strings.TrimSpace(seasonLabel)
	if seasonLabel == "" {
		return nil, ErrSeasonLabelRequired
	}

	archive := &models.SeasonArchive{
		SeasonLabel: seasonLabel,
		ArchivedAt:  time.Now(),
	}

	err := s.txRunner.InTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.upsertChampion(ctx, exec, championName); err != nil {
			return err
		}

		// Snapshot the table from state read through this same transaction.
		players, err := s.playerRepo.List(ctx, exec, true)
		if err != nil {
			return fmt.Errorf("failed to load players for snapshot: %w", err)
		}
		matches, err := s.matchRepo.List(ctx, exec)
		if err != nil {
			return fmt.Errorf("failed to load matches for snapshot: %w", err)
		}
		links, err := s.participationRepo.ListAll(ctx, exec)
		if err != nil {
			return fmt.Errorf("failed to load participations for snapshot: %w", err)
		}

		snapshot, err := json.Marshal(BuildTable(players, matches, links))
		if err != nil {
			return fmt.Errorf("failed to serialize standings snapshot: %w", err)
		}
		archive.Snapshot = snapshot

		if err := s.archiveRepo.Create(ctx, exec, archive); err != nil {
			return fmt.Errorf("failed to write season archive: %w", err)
		}

		if err := s.participationRepo.DeleteAll(ctx, exec); err != nil {
			return fmt.Errorf("failed to delete participations: %w", err)
		}
		if err := s.matchRepo.DeleteAll(ctx, exec); err != nil {
			return fmt.Errorf("failed to delete matches: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.exportArchive(ctx, archive)

	if s.notifier != nil {
		s.notifier.Notify(EventSeasonClosed, map[string]string{
			"champion":     championName,
			"season_label": seasonLabel,
		})
	}
	return archive, nil
}

func (s *seasonService) upsertChampion(ctx context.Context, exec repositories.SQLExecutor, name string) error {
	champion, err := s.championRepo.GetByName(ctx, exec, name)
	switch {
	case err == nil:
		if err := s.championRepo.IncrementTitles(ctx, exec, champion.ID); err != nil {
			return fmt.Errorf("failed to increment titles for %q: %w", name, err)
		}
	case errors.Is(err, repositories.ErrChampionNotFound):
		if err := s.championRepo.Create(ctx, exec, &models.Champion{Name: name, Titles: 1}); err != nil {
			return fmt.Errorf("failed to create champion %q: %w", name, err)
		}
	default:
		return fmt.Errorf("failed to look up champion %q: %w", name, err)
	}
	return nil
}

// exportArchive pushes the snapshot JSON to the configured bucket. The
// archive row is already committed; an export failure is logged, not fatal.
func (s *seasonService) exportArchive(ctx context.Context, archive *models.SeasonArchive) {
	if s.exporter == nil {
		return
	}
	key := fmt.Sprintf("archives/%s-%d.json", archive.SeasonLabel, archive.ArchivedAt.Unix())
	if _, err := s.exporter.Upload(ctx, key, "application/json", bytes.NewReader(archive.Snapshot)); err != nil {
		s.logger.ErrorContext(ctx, "failed to export season archive",
			slog.String("season_label", archive.SeasonLabel),
			slog.Any("error", err))
		return
	}
	s.logger.InfoContext(ctx, "season archive exported", slog.String("key", key))
}

// ManualReset wipes the match history without archiving anything and without
// touching champions. Irreversible; exposed behind the admin gate only.
func (s *seasonService) ManualReset(ctx context.Context) error {
	err := s.txRunner.InTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.participationRepo.DeleteAll(ctx, exec); err != nil {
			return fmt.Errorf("failed to delete participations: %w", err)
		}
		if err := s.matchRepo.DeleteAll(ctx, exec); err != nil {
			return fmt.Errorf("failed to delete matches: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.Notify(EventSeasonReset, nil)
	}
	return nil
}

func (s *seasonService) ListChampions(ctx context.Context) ([]models.Champion, error) {
	champions, err := s.championRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list champions: %w", err)
	}
	return champions, nil
}

// RemoveChampionTitle takes one title away. Removing the last title deletes
// the record: a champion row never holds zero titles.
func (s *seasonService) RemoveChampionTitle(ctx context.Context, name string) error {
	return s.txRunner.InTx(ctx, func(exec repositories.SQLExecutor) error {
		champion, err := s.championRepo.GetByName(ctx, exec, name)
		if err != nil {
			if errors.Is(err, repositories.ErrChampionNotFound) {
				return ErrChampionNotFound
			}
			return fmt.Errorf("failed to look up champion %q: %w", name, err)
		}

		if champion.Titles <= 1 {
			if err := s.championRepo.Delete(ctx, exec, champion.ID); err != nil {
				return fmt.Errorf("failed to delete champion %q: %w", name, err)
			}
			return nil
		}
		if err := s.championRepo.DecrementTitles(ctx, exec, champion.ID); err != nil {
			return fmt.Errorf("failed to decrement titles for %q: %w", name, err)
		}
		return nil
	})
}

func (s *seasonService) ListHistory(ctx context.Context) ([]models.SeasonArchive, error) {
	archives, err := s.archiveRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list season history: %w", err)
	}
	return archives, nil
}
