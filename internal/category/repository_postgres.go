package category

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCatalog struct {
	db *pgxpool.Pool
}

func NewPostgresCatalog(db *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{db: db}
}

func (r *PostgresCatalog) FindByID(ctx context.Context, id string) (*Category, error) {
	return r.findOne(ctx, `
		SELECT id, code, name, active, created_at
		FROM categories
		WHERE id = $1
	`, id)
}

func (r *PostgresCatalog) FindByCode(ctx context.Context, code string) (*Category, error) {
	return r.findOne(ctx, `
		SELECT id, code, name, active, created_at
		FROM categories
		WHERE code = $1
	`, code)
}

func (r *PostgresCatalog) findOne(ctx context.Context, query string, arg string) (*Category, error) {
	var c Category

	err := r.db.QueryRow(ctx, query, arg).Scan(
		&c.ID,
		&c.Code,
		&c.Name,
		&c.Active,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &c, nil
}

func (r *PostgresCatalog) ListActive(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, code, name, active, created_at
		FROM categories
		WHERE active = TRUE
		ORDER BY code
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category

	for rows.Next() {
		var c Category
		if err := rows.Scan(
			&c.ID,
			&c.Code,
			&c.Name,
			&c.Active,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}

	return categories, rows.Err()
}
