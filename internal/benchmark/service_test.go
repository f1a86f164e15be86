package benchmark

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/CONFENGE/etp-express-sub002/internal/category"
)

func newTestService(t *testing.T) (*Service, *category.Category, *InMemoryRepository) {
	t.Helper()

	catalog := category.NewInMemoryCatalog()
	cat := catalog.Add(&category.Category{Code: "CATMAT-123", Name: "Notebook", Active: true})
	repo := NewInMemoryRepository()

	return NewService(catalog, repo), cat, repo
}

func storeBenchmark(t *testing.T, repo *InMemoryRepository, b *Benchmark) {
	t.Helper()
	if err := repo.Upsert(context.Background(), b); err != nil {
		t.Fatalf("storing benchmark: %v", err)
	}
}

func TestGetByCategoryResolvesCode(t *testing.T) {
	service, cat, repo := newTestService(t)

	storeBenchmark(t, repo, &Benchmark{
		CategoryID:   cat.ID,
		Region:       RegionNational,
		OrgSize:      OrgSizeAll,
		MedianPrice:  3500,
		SampleCount:  7,
		CalculatedAt: time.Now(),
	})

	// By code
	b, err := service.GetByCategory(context.Background(), "CATMAT-123")
	if err != nil {
		t.Fatalf("by code: %v", err)
	}
	if b.MedianPrice != 3500 {
		t.Errorf("expected median 3500, got %v", b.MedianPrice)
	}

	// By ID
	if _, err := service.GetByCategory(context.Background(), cat.ID); err != nil {
		t.Fatalf("by id: %v", err)
	}
}

func TestGetByCategoryNotFound(t *testing.T) {
	service, cat, _ := newTestService(t)

	if _, err := service.GetByCategory(context.Background(), "UNKNOWN-CODE"); !errors.Is(err, category.ErrNotFound) {
		t.Errorf("expected category not found, got %v", err)
	}

	// Category exists but has no national benchmark yet.
	if _, err := service.GetByCategory(context.Background(), cat.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected benchmark not found, got %v", err)
	}
}

func TestGetRegionalBreakdownEmptyRegions(t *testing.T) {
	service, cat, repo := newTestService(t)

	storeBenchmark(t, repo, &Benchmark{
		CategoryID:  cat.ID,
		Region:      RegionNational,
		OrgSize:     OrgSizeAll,
		MedianPrice: 100,
		SampleCount: 10,
	})

	breakdown, err := service.GetRegionalBreakdown(context.Background(), cat.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if breakdown.National == nil {
		t.Fatal("national benchmark missing")
	}
	if breakdown.Regions == nil || len(breakdown.Regions) != 0 {
		t.Errorf("expected empty regions list, got %v", breakdown.Regions)
	}
}

func TestGetRegionalBreakdownDeviation(t *testing.T) {
	service, cat, repo := newTestService(t)

	storeBenchmark(t, repo, &Benchmark{
		CategoryID: cat.ID, Region: RegionNational, OrgSize: OrgSizeAll,
		MedianPrice: 100, SampleCount: 30,
	})
	storeBenchmark(t, repo, &Benchmark{
		CategoryID: cat.ID, Region: "SP", OrgSize: OrgSizeAll,
		MedianPrice: 110, SampleCount: 20,
	})
	storeBenchmark(t, repo, &Benchmark{
		CategoryID: cat.ID, Region: "RJ", OrgSize: OrgSizeAll,
		MedianPrice: 90, SampleCount: 25,
	})

	breakdown, err := service.GetRegionalBreakdown(context.Background(), cat.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(breakdown.Regions) != 2 {
		t.Fatalf("expected 2 regional entries, got %d", len(breakdown.Regions))
	}

	// Ordered by sample_count descending: RJ (25) before SP (20).
	if breakdown.Regions[0].Region != "RJ" || breakdown.Regions[1].Region != "SP" {
		t.Errorf("unexpected order: %s, %s", breakdown.Regions[0].Region, breakdown.Regions[1].Region)
	}

	if math.Abs(breakdown.Regions[0].DeviationFromNational-(-10)) > 1e-9 {
		t.Errorf("RJ deviation: expected -10, got %v", breakdown.Regions[0].DeviationFromNational)
	}
	if math.Abs(breakdown.Regions[1].DeviationFromNational-10) > 1e-9 {
		t.Errorf("SP deviation: expected 10, got %v", breakdown.Regions[1].DeviationFromNational)
	}
}

func TestQueryPagination(t *testing.T) {
	service, cat, repo := newTestService(t)

	for i, region := range []string{"SP", "RJ", "MG"} {
		storeBenchmark(t, repo, &Benchmark{
			CategoryID: cat.ID, Region: region, OrgSize: OrgSizeAll,
			SampleCount: 10 + i,
		})
	}

	result, err := service.Query(context.Background(), Filter{Page: 1, Limit: 2}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Total != 3 || result.TotalPages != 2 || len(result.Data) != 2 {
		t.Errorf("expected total=3 pages=2 data=2, got total=%d pages=%d data=%d",
			result.Total, result.TotalPages, len(result.Data))
	}

	// Highest sample count first.
	if result.Data[0].Region != "MG" {
		t.Errorf("expected MG first, got %s", result.Data[0].Region)
	}
}

func TestQueryLimitCappedAt100(t *testing.T) {
	service, _, _ := newTestService(t)

	result, err := service.Query(context.Background(), Filter{Limit: 500}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Limit != MaxPageSize {
		t.Errorf("expected limit %d, got %d", MaxPageSize, result.Limit)
	}
	if result.Page != 1 {
		t.Errorf("expected default page 1, got %d", result.Page)
	}
}

func TestQueryUnknownCategoryCode(t *testing.T) {
	service, _, _ := newTestService(t)

	if _, err := service.Query(context.Background(), Filter{}, "NOPE"); !errors.Is(err, category.ErrNotFound) {
		t.Errorf("expected category not found, got %v", err)
	}
}

func TestSummaryStatistics(t *testing.T) {
	service, cat, repo := newTestService(t)

	now := time.Now()
	storeBenchmark(t, repo, &Benchmark{
		CategoryID: cat.ID, Region: RegionNational, OrgSize: OrgSizeAll,
		SampleCount: 30, CalculatedAt: now,
	})
	storeBenchmark(t, repo, &Benchmark{
		CategoryID: cat.ID, Region: "SP", OrgSize: OrgSizeAll,
		SampleCount: 10, CalculatedAt: now.Add(-time.Hour),
	})

	s, err := service.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.TotalBenchmarks != 2 || s.TotalSamples != 40 || s.DistinctRegions != 2 {
		t.Errorf("unexpected summary: %+v", s)
	}
	if s.AvgSamplesPerBenchmark != 20 {
		t.Errorf("expected avg 20, got %v", s.AvgSamplesPerBenchmark)
	}
	if s.LastCalculatedAt == nil || !s.LastCalculatedAt.Equal(now) {
		t.Errorf("expected last_calculated_at %v, got %v", now, s.LastCalculatedAt)
	}
}
