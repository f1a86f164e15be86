package benchmark

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const benchmarkColumns = `
	id,
	category_id,
	region,
	org_size,
	avg_price,
	median_price,
	min_price,
	max_price,
	p25_price,
	p75_price,
	std_dev,
	sample_count,
	dominant_unit,
	period_start,
	period_end,
	calculated_at
`

// --------------------------------------------------
// Upsert (atomic, unique key on category/region/org_size)
// --------------------------------------------------
func (r *PostgresRepository) Upsert(ctx context.Context, b *Benchmark) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO price_benchmarks (
			category_id,
			region,
			org_size,
			avg_price,
			median_price,
			min_price,
			max_price,
			p25_price,
			p75_price,
			std_dev,
			sample_count,
			dominant_unit,
			period_start,
			period_end,
			calculated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT (category_id, region, org_size)
		DO UPDATE SET
			avg_price = EXCLUDED.avg_price,
			median_price = EXCLUDED.median_price,
			min_price = EXCLUDED.min_price,
			max_price = EXCLUDED.max_price,
			p25_price = EXCLUDED.p25_price,
			p75_price = EXCLUDED.p75_price,
			std_dev = EXCLUDED.std_dev,
			sample_count = EXCLUDED.sample_count,
			dominant_unit = EXCLUDED.dominant_unit,
			period_start = EXCLUDED.period_start,
			period_end = EXCLUDED.period_end,
			calculated_at = EXCLUDED.calculated_at
		RETURNING id
	`,
		b.CategoryID,
		b.Region,
		b.OrgSize,
		b.AvgPrice,
		b.MedianPrice,
		b.MinPrice,
		b.MaxPrice,
		b.P25Price,
		b.P75Price,
		b.StdDev,
		b.SampleCount,
		b.DominantUnit,
		b.PeriodStart,
		b.PeriodEnd,
		b.CalculatedAt,
	).Scan(&b.ID)
}

// --------------------------------------------------
// Find by key
// --------------------------------------------------
func (r *PostgresRepository) Find(
	ctx context.Context,
	categoryID, region, orgSize string,
) (*Benchmark, error) {

	row := r.db.QueryRow(ctx, `
		SELECT `+benchmarkColumns+`
		FROM price_benchmarks
		WHERE category_id = $1 AND region = $2 AND org_size = $3
	`, categoryID, region, orgSize)

	b, err := scanBenchmark(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return b, nil
}

// --------------------------------------------------
// Paginated query (ordered by sample_count DESC)
// --------------------------------------------------
func (r *PostgresRepository) Query(ctx context.Context, f Filter) ([]*Benchmark, int, error) {
	var (
		conditions []string
		args       []any
	)

	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	addFilter("category_id", f.CategoryID)
	addFilter("region", f.Region)
	addFilter("org_size", f.OrgSize)

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM price_benchmarks`+where,
		args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	args = append(args, f.Limit, offset)

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s
		FROM price_benchmarks
		%s
		ORDER BY sample_count DESC, id
		LIMIT $%d OFFSET $%d
	`, benchmarkColumns, where, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	benchmarks, err := scanBenchmarks(rows)
	if err != nil {
		return nil, 0, err
	}

	return benchmarks, total, nil
}

// --------------------------------------------------
// Regional rows for one category (excludes BR)
// --------------------------------------------------
func (r *PostgresRepository) ListRegional(
	ctx context.Context,
	categoryID string,
) ([]*Benchmark, error) {

	rows, err := r.db.Query(ctx, `
		SELECT `+benchmarkColumns+`
		FROM price_benchmarks
		WHERE category_id = $1
		  AND region <> $2
		  AND org_size = $3
		ORDER BY sample_count DESC, id
	`, categoryID, RegionNational, OrgSizeAll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBenchmarks(rows)
}

// --------------------------------------------------
// Table-wide summary
// --------------------------------------------------
func (r *PostgresRepository) Summary(ctx context.Context) (*SummaryStatistics, error) {
	var s SummaryStatistics

	err := r.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(DISTINCT category_id),
			COUNT(DISTINCT region),
			COALESCE(SUM(sample_count), 0),
			COALESCE(AVG(sample_count), 0),
			MAX(calculated_at)
		FROM price_benchmarks
	`).Scan(
		&s.TotalBenchmarks,
		&s.DistinctCategories,
		&s.DistinctRegions,
		&s.TotalSamples,
		&s.AvgSamplesPerBenchmark,
		&s.LastCalculatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// --------------------------------------------------
// Scan helpers
// --------------------------------------------------

func scanBenchmark(row pgx.Row) (*Benchmark, error) {
	var b Benchmark
	err := row.Scan(
		&b.ID,
		&b.CategoryID,
		&b.Region,
		&b.OrgSize,
		&b.AvgPrice,
		&b.MedianPrice,
		&b.MinPrice,
		&b.MaxPrice,
		&b.P25Price,
		&b.P75Price,
		&b.StdDev,
		&b.SampleCount,
		&b.DominantUnit,
		&b.PeriodStart,
		&b.PeriodEnd,
		&b.CalculatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBenchmarks(rows pgx.Rows) ([]*Benchmark, error) {
	var benchmarks []*Benchmark

	for rows.Next() {
		b, err := scanBenchmark(rows)
		if err != nil {
			return nil, err
		}
		benchmarks = append(benchmarks, b)
	}

	return benchmarks, rows.Err()
}
