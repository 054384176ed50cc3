package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tercas-fc/league-system/models"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	List(ctx context.Context, exec SQLExecutor) ([]models.Match, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO matches (date, result, double_points)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return executor.QueryRowContext(ctx, query,
		match.Date,
		match.Result,
		match.DoublePoints,
	).Scan(&match.ID, &match.CreatedAt)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, date, result, double_points, created_at
		FROM matches
		WHERE id = $1`

	match := &models.Match{}
	err := executor.QueryRowContext(ctx, query, id).
		Scan(&match.ID, &match.Date, &match.Result, &match.DoublePoints, &match.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Match, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, date, result, double_points, created_at
		FROM matches
		ORDER BY date ASC, id ASC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		var m models.Match
		if err := rows.Scan(&m.ID, &m.Date, &m.Result, &m.DoublePoints, &m.CreatedAt); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

// DeleteAll wipes the season's match history. Participations cascade with
// their match rows, but season close and reset delete them explicitly first
// so the intent survives a schema without the cascade.
func (r *postgresMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM matches`)
	return err
}
