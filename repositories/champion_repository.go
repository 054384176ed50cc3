package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/tercas-fc/league-system/models"
)

var (
	ErrChampionNotFound     = errors.New("champion not found")
	ErrChampionNameConflict = errors.New("champion name conflict")
)

type ChampionRepository interface {
	Create(ctx context.Context, exec SQLExecutor, champion *models.Champion) error
	GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Champion, error)
	List(ctx context.Context, exec SQLExecutor) ([]models.Champion, error)
	IncrementTitles(ctx context.Context, exec SQLExecutor, id int) error
	DecrementTitles(ctx context.Context, exec SQLExecutor, id int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresChampionRepository struct {
	db *sql.DB
}

func NewPostgresChampionRepository(db *sql.DB) ChampionRepository {
	return &postgresChampionRepository{db: db}
}

func (r *postgresChampionRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresChampionRepository) Create(ctx context.Context, exec SQLExecutor, champion *models.Champion) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO champions (name, titles)
		VALUES ($1, $2)
		RETURNING id`

	if champion.Titles == 0 {
		champion.Titles = 1
	}
	err := executor.QueryRowContext(ctx, query, champion.Name, champion.Titles).Scan(&champion.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrChampionNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresChampionRepository) GetByName(ctx context.Context, exec SQLExecutor, name string) (*models.Champion, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, titles
		FROM champions
		WHERE name = $1`

	champion := &models.Champion{}
	err := executor.QueryRowContext(ctx, query, name).
		Scan(&champion.ID, &champion.Name, &champion.Titles)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChampionNotFound
		}
		return nil, err
	}
	return champion, nil
}

func (r *postgresChampionRepository) List(ctx context.Context, exec SQLExecutor) ([]models.Champion, error) {
	executor := r.getExecutor(exec)
	query := `
		SELECT id, name, titles
		FROM champions
		ORDER BY titles DESC, name ASC`

	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	champions := make([]models.Champion, 0)
	for rows.Next() {
		var c models.Champion
		if err := rows.Scan(&c.ID, &c.Name, &c.Titles); err != nil {
			return nil, err
		}
		champions = append(champions, c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return champions, nil
}

func (r *postgresChampionRepository) IncrementTitles(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE champions SET titles = titles + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionNotFound)
}

// DecrementTitles lowers the title count by one. The caller must delete the
// row instead when the count would drop below 1; the CHECK constraint backs
// that rule up at the schema level.
func (r *postgresChampionRepository) DecrementTitles(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE champions SET titles = titles - 1 WHERE id = $1 AND titles > 1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionNotFound)
}

func (r *postgresChampionRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `DELETE FROM champions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionNotFound)
}
