package benchmark

import (
	"context"
	"errors"
	"math"

	"github.com/CONFENGE/etp-express-sub002/internal/category"

	"github.com/google/uuid"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// QueryResult is the pagination envelope returned to the API layer.
type QueryResult struct {
	Data       []*Benchmark `json:"data"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"total_pages"`
}

// Service is the read side: filtered queries, national lookups,
// regional breakdowns and table-wide statistics.
type Service struct {
	catalog category.Catalog
	repo    Repository
}

func NewService(catalog category.Catalog, repo Repository) *Service {
	return &Service{
		catalog: catalog,
		repo:    repo,
	}
}

// Query returns one page of benchmarks. categoryCode, when set, is
// resolved through the catalog before filtering.
func (s *Service) Query(ctx context.Context, f Filter, categoryCode string) (*QueryResult, error) {
	if f.CategoryID == "" && categoryCode != "" {
		cat, err := s.catalog.FindByCode(ctx, categoryCode)
		if err != nil {
			return nil, err
		}
		f.CategoryID = cat.ID
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	data, total, err := s.repo.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []*Benchmark{}
	}

	return &QueryResult{
		Data:       data,
		Total:      total,
		Page:       f.Page,
		Limit:      f.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(f.Limit))),
	}, nil
}

// GetByCategory resolves the national (BR / ALL) benchmark for a
// category given by ID or, as a fallback, by code.
func (s *Service) GetByCategory(ctx context.Context, idOrCode string) (*Benchmark, error) {
	cat, err := s.resolveCategory(ctx, idOrCode)
	if err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, cat.ID, RegionNational, OrgSizeAll)
}

// GetRegionalBreakdown pairs the national benchmark with every state
// row and each state's median deviation from the national median. A
// category with a national row but no state rows yet yields an empty
// regions list, not an error.
func (s *Service) GetRegionalBreakdown(ctx context.Context, idOrCode string) (*RegionalBreakdown, error) {
	cat, err := s.resolveCategory(ctx, idOrCode)
	if err != nil {
		return nil, err
	}

	national, err := s.repo.Find(ctx, cat.ID, RegionNational, OrgSizeAll)
	if err != nil {
		return nil, err
	}

	regional, err := s.repo.ListRegional(ctx, cat.ID)
	if err != nil {
		return nil, err
	}

	entries := make([]RegionalEntry, 0, len(regional))
	for _, b := range regional {
		deviation := 0.0
		if national.MedianPrice != 0 {
			deviation = (b.MedianPrice - national.MedianPrice) / national.MedianPrice * 100
		}
		entries = append(entries, RegionalEntry{
			Benchmark:             *b,
			DeviationFromNational: deviation,
		})
	}

	return &RegionalBreakdown{
		National: national,
		Regions:  entries,
	}, nil
}

func (s *Service) GetSummary(ctx context.Context) (*SummaryStatistics, error) {
	return s.repo.Summary(ctx)
}

// ResolveCategory finds a category by ID first, then by code.
func (s *Service) ResolveCategory(ctx context.Context, idOrCode string) (*category.Category, error) {
	return s.resolveCategory(ctx, idOrCode)
}

func (s *Service) resolveCategory(ctx context.Context, idOrCode string) (*category.Category, error) {
	// Only UUID-shaped values can be IDs; everything else is a code.
	if _, err := uuid.Parse(idOrCode); err == nil {
		cat, err := s.catalog.FindByID(ctx, idOrCode)
		if err == nil {
			return cat, nil
		}
		if !errors.Is(err, category.ErrNotFound) {
			return nil, err
		}
	}
	return s.catalog.FindByCode(ctx, idOrCode)
}
