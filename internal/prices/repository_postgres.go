package prices

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (r *PostgresStore) QueryByCategoryAndWindow(
	ctx context.Context,
	categoryID string,
	start, end time.Time,
	region string,
) ([]ContractPrice, error) {

	query := `
		SELECT id, category_id, price, unit, region, contract_date
		FROM contract_prices
		WHERE category_id = $1
		  AND price > 0
		  AND contract_date BETWEEN $2 AND $3
	`
	args := []any{categoryID, start, end}

	if region != "" {
		query += ` AND region = $4`
		args = append(args, region)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []ContractPrice

	for rows.Next() {
		var s ContractPrice
		if err := rows.Scan(
			&s.ID,
			&s.CategoryID,
			&s.Price,
			&s.Unit,
			&s.Region,
			&s.ContractDate,
		); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

func (r *PostgresStore) Insert(ctx context.Context, sample *ContractPrice) error {
	if sample.ID == "" {
		sample.ID = uuid.New().String()
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO contract_prices (
			id,
			category_id,
			price,
			unit,
			region,
			contract_date
		)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		sample.ID,
		sample.CategoryID,
		sample.Price,
		sample.Unit,
		sample.Region,
		sample.ContractDate,
	)

	return err
}
