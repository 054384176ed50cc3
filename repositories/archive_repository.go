package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/tercas-fc/league-system/models"
)

type ArchiveRepository interface {
	Create(ctx context.Context, exec SQLExecutor, archive *models.SeasonArchive) error
	List(ctx context.Context, exec SQLExecutor) ([]models.SeasonArchive, error)
}

type postgresArchiveRepository struct {
	db *sql.DB
}

func NewPostgresArchiveRepository(db *sql.DB) ArchiveRepository {
	return &postgresArchiveRepository{db: db}
}

func (r *postgresArchiveRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresArchiveRepository) Create(ctx context.Context, exec SQLExecutor, archive *models.SeasonArchive) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO season_archives (season_label, archived_at, snapshot)
		VALUES ($1, $2, $3)
		RETURNING id`

	if archive.ArchivedAt.IsZero() {
		archive.ArchivedAt = time.Now()
	}
	return executor.QueryRowContext(ctx, query,
		archive.SeasonLabel,
		archive.ArchivedAt,
		[]byte(archive.Snapshot),
	).Scan(&archive.ID)
}

// List returns archives most recent first.
func (r *postgresArchiveRepository) List(ctx context.Context, exec SQLExecutor) ([]models.SeasonArchive, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, season_label, archived_at, snapshot
		FROM season_archives
		ORDER BY archived_at DESC, id DESC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	archives := make([]models.SeasonArchive, 0)
	for rows.Next() {
		var a models.SeasonArchive
		var snapshot []byte
		if err := rows.Scan(&a.ID, &a.SeasonLabel, &a.ArchivedAt, &snapshot); err != nil {
			return nil, err
		}
		a.Snapshot = snapshot
		archives = append(archives, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return archives, nil
}
