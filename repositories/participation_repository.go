package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/tercas-fc/league-system/models"
)

var (
	ErrParticipationConflict      = errors.New("player already participates in this match")
	ErrParticipationPlayerInvalid = errors.New("participation references unknown player")
	ErrParticipationMatchInvalid  = errors.New("participation references unknown match")
)

type ParticipationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, link *models.MatchParticipation) error
	ListAll(ctx context.Context, exec SQLExecutor) ([]models.MatchParticipation, error)
	ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]models.MatchParticipation, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresParticipationRepository struct {
	db *sql.DB
}

func NewPostgresParticipationRepository(db *sql.DB) ParticipationRepository {
	return &postgresParticipationRepository{db: db}
}

func (r *postgresParticipationRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresParticipationRepository) Create(ctx context.Context, exec SQLExecutor, link *models.MatchParticipation) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO match_participations (match_id, player_id, team)
		VALUES ($1, $2, $3)`

	_, err := executor.ExecContext(ctx, query, link.MatchID, link.PlayerID, link.Team)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrParticipationConflict
			case "23503": // foreign_key_violation
				if pqErr.Constraint == "match_participations_player_id_fkey" {
					return ErrParticipationPlayerInvalid
				}
				return ErrParticipationMatchInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresParticipationRepository) ListAll(ctx context.Context, exec SQLExecutor) ([]models.MatchParticipation, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT match_id, player_id, team
		FROM match_participations`
	return r.queryLinks(ctx, executor, query)
}

func (r *postgresParticipationRepository) ListByMatch(ctx context.Context, exec SQLExecutor, matchID int) ([]models.MatchParticipation, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT match_id, player_id, team
		FROM match_participations
		WHERE match_id = $1`
	return r.queryLinks(ctx, executor, query, matchID)
}

func (r *postgresParticipationRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM match_participations`)
	return err
}

func (r *postgresParticipationRepository) queryLinks(ctx context.Context, executor SQLExecutor, query string, args ...interface{}) ([]models.MatchParticipation, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := make([]models.MatchParticipation, 0)
	for rows.Next() {
		var l models.MatchParticipation
		if err := rows.Scan(&l.MatchID, &l.PlayerID, &l.Team); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return links, nil
}
