package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/tercas-fc/league-system/models"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, exec SQLExecutor, player *models.Player) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error)
	List(ctx context.Context, exec SQLExecutor, activeOnly bool) ([]models.Player, error)
	AdjustBalance(ctx context.Context, exec SQLExecutor, id int, delta decimal.Decimal) error
	Deactivate(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresPlayerRepository) Create(ctx context.Context, exec SQLExecutor, player *models.Player) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO players (name)
		VALUES ($1)
		RETURNING id, active, balance, created_at`

	err := executor.QueryRowContext(ctx, query, player.Name).
		Scan(&player.ID, &player.Active, &player.Balance, &player.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			if pqErr.Constraint == "players_name_key" {
				return ErrPlayerNameConflict
			}
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Player, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, active, balance, created_at
		FROM players
		WHERE id = $1`

	player := &models.Player{}
	err := executor.QueryRowContext(ctx, query, id).
		Scan(&player.ID, &player.Name, &player.Active, &player.Balance, &player.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}

func (r *postgresPlayerRepository) List(ctx context.Context, exec SQLExecutor, activeOnly bool) ([]models.Player, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, active, balance, created_at
		FROM players`
	if activeOnly {
		query += `
		WHERE active`
	}
	query += `
		ORDER BY name ASC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Active, &p.Balance, &p.CreatedAt); err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}

// AdjustBalance applies a signed delta to the player's balance. Fees pass a
// negative delta, payments a positive one.
func (r *postgresPlayerRepository) AdjustBalance(ctx context.Context, exec SQLExecutor, id int, delta decimal.Decimal) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players
		SET balance = balance + $1
		WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, delta, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) Deactivate(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE players
		SET active = FALSE
		WHERE id = $1 AND active`

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}
