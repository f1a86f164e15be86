package db

import (
	"context"
	"os"
	"testing"
)

// TestConnectPostgres exercises the pool + schema bootstrap against a
// real database. Runs only when DATABASE_URL points somewhere.
func TestConnectPostgres(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool := ConnectPostgres()
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}

	// Schema init must be idempotent.
	if err := initSchema(pool); err != nil {
		t.Fatalf("second initSchema run failed: %v", err)
	}

	// The unique key backing the atomic upsert must exist.
	var count int
	err := pool.QueryRow(context.Background(), `
		SELECT COUNT(*)
		FROM pg_indexes
		WHERE tablename = 'price_benchmarks'
	`).Scan(&count)
	if err != nil {
		t.Fatalf("index lookup failed: %v", err)
	}
	if count == 0 {
		t.Error("expected at least one index on price_benchmarks")
	}
}
