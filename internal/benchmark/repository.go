package benchmark

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("benchmark not found")

// Filter narrows a paginated benchmark query. Zero values mean "any".
type Filter struct {
	CategoryID string
	Region     string
	OrgSize    string
	Page       int
	Limit      int
}

// Repository defines the data-access contract for benchmark rows.
// The aggregator is the only writer; everything else reads.
type Repository interface {
	// Upsert inserts or replaces the row keyed by
	// (category_id, region, org_size) in one atomic statement.
	Upsert(ctx context.Context, b *Benchmark) error

	Find(ctx context.Context, categoryID, region, orgSize string) (*Benchmark, error)

	// Query returns one page ordered by sample_count descending, plus
	// the unpaginated total.
	Query(ctx context.Context, f Filter) ([]*Benchmark, int, error)

	// ListRegional returns the non-national ALL rows for one category,
	// ordered by sample_count descending.
	ListRegional(ctx context.Context, categoryID string) ([]*Benchmark, error)

	Summary(ctx context.Context) (*SummaryStatistics, error)
}
