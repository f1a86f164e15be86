package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize schema
	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// CATEGORIES
	// -------------------------------
	categoriesSQL := `
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			code VARCHAR(50) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, categoriesSQL); err != nil {
		return err
	}

	// -------------------------------
	// CONTRACT PRICES (raw samples, owned by the ingestion pipeline)
	// -------------------------------
	contractPricesSQL := `
		CREATE TABLE IF NOT EXISTS contract_prices (
			id UUID PRIMARY KEY,
			category_id UUID NOT NULL REFERENCES categories(id),
			price NUMERIC(14,2) NOT NULL,
			unit VARCHAR(50) NOT NULL,
			region VARCHAR(2) NOT NULL,
			contract_date DATE NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, contractPricesSQL); err != nil {
		return err
	}

	priceIndexSQL := `
		CREATE INDEX IF NOT EXISTS idx_contract_prices_lookup
		ON contract_prices (category_id, contract_date, region)
	`
	if _, err := db.Exec(ctx, priceIndexSQL); err != nil {
		return err
	}

	// -------------------------------
	// PRICE BENCHMARKS
	// The UNIQUE key keeps the upsert atomic even when more than one
	// writer process runs the same schedule.
	// -------------------------------
	benchmarksSQL := `
		CREATE TABLE IF NOT EXISTS price_benchmarks (
			id SERIAL PRIMARY KEY,
			category_id UUID NOT NULL REFERENCES categories(id),
			region VARCHAR(2) NOT NULL,
			org_size VARCHAR(10) NOT NULL DEFAULT 'ALL',
			avg_price NUMERIC(14,2) NOT NULL,
			median_price NUMERIC(14,2) NOT NULL,
			min_price NUMERIC(14,2) NOT NULL,
			max_price NUMERIC(14,2) NOT NULL,
			p25_price NUMERIC(14,2) NOT NULL,
			p75_price NUMERIC(14,2) NOT NULL,
			std_dev NUMERIC(14,4) NOT NULL,
			sample_count INT NOT NULL,
			dominant_unit VARCHAR(50) NOT NULL,
			period_start DATE NOT NULL,
			period_end DATE NOT NULL,
			calculated_at TIMESTAMP NOT NULL,
			UNIQUE (category_id, region, org_size)
		)
	`
	if _, err := db.Exec(ctx, benchmarksSQL); err != nil {
		return err
	}

	log.Println("✅ Schema initialized successfully")
	return nil
}
