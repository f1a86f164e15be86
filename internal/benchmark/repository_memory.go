package benchmark

import (
	"context"
	"sort"
)

type key struct {
	categoryID string
	region     string
	orgSize    string
}

type InMemoryRepository struct {
	rows   map[key]*Benchmark
	nextID int

	// UpsertErr, when set, is returned by every upsert. Used by tests
	// to exercise aggregation failure paths.
	UpsertErr error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		rows:   make(map[key]*Benchmark),
		nextID: 1,
	}
}

func (r *InMemoryRepository) Upsert(ctx context.Context, b *Benchmark) error {
	if r.UpsertErr != nil {
		return r.UpsertErr
	}

	k := key{b.CategoryID, b.Region, b.OrgSize}
	if existing, ok := r.rows[k]; ok {
		b.ID = existing.ID
	} else {
		b.ID = r.nextID
		r.nextID++
	}

	copied := *b
	r.rows[k] = &copied
	return nil
}

func (r *InMemoryRepository) Find(
	ctx context.Context,
	categoryID, region, orgSize string,
) (*Benchmark, error) {

	b, ok := r.rows[key{categoryID, region, orgSize}]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *b
	return &copied, nil
}

func (r *InMemoryRepository) Query(ctx context.Context, f Filter) ([]*Benchmark, int, error) {
	var matched []*Benchmark
	for _, b := range r.rows {
		if f.CategoryID != "" && b.CategoryID != f.CategoryID {
			continue
		}
		if f.Region != "" && b.Region != f.Region {
			continue
		}
		if f.OrgSize != "" && b.OrgSize != f.OrgSize {
			continue
		}
		copied := *b
		matched = append(matched, &copied)
	}

	sortBySampleCount(matched)

	total := len(matched)
	start := (f.Page - 1) * f.Limit
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func (r *InMemoryRepository) ListRegional(
	ctx context.Context,
	categoryID string,
) ([]*Benchmark, error) {

	var matched []*Benchmark
	for _, b := range r.rows {
		if b.CategoryID != categoryID || b.Region == RegionNational || b.OrgSize != OrgSizeAll {
			continue
		}
		copied := *b
		matched = append(matched, &copied)
	}

	sortBySampleCount(matched)
	return matched, nil
}

func (r *InMemoryRepository) Summary(ctx context.Context) (*SummaryStatistics, error) {
	s := &SummaryStatistics{}

	categories := map[string]bool{}
	regions := map[string]bool{}

	for _, b := range r.rows {
		s.TotalBenchmarks++
		s.TotalSamples += b.SampleCount
		categories[b.CategoryID] = true
		regions[b.Region] = true

		if s.LastCalculatedAt == nil || b.CalculatedAt.After(*s.LastCalculatedAt) {
			calculatedAt := b.CalculatedAt
			s.LastCalculatedAt = &calculatedAt
		}
	}

	s.DistinctCategories = len(categories)
	s.DistinctRegions = len(regions)
	if s.TotalBenchmarks > 0 {
		s.AvgSamplesPerBenchmark = float64(s.TotalSamples) / float64(s.TotalBenchmarks)
	}

	return s, nil
}

func sortBySampleCount(benchmarks []*Benchmark) {
	sort.SliceStable(benchmarks, func(i, j int) bool {
		if benchmarks[i].SampleCount != benchmarks[j].SampleCount {
			return benchmarks[i].SampleCount > benchmarks[j].SampleCount
		}
		return benchmarks[i].ID < benchmarks[j].ID
	})
}
