package benchmark

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/CONFENGE/etp-express-sub002/internal/category"
	"github.com/CONFENGE/etp-express-sub002/internal/prices"
	"github.com/CONFENGE/etp-express-sub002/internal/stats"
)

const (
	DefaultPeriodMonths  = 12
	DefaultMinSampleSize = 5
)

// CalcOptions scopes one recalculation pass. Zero values fall back to
// the defaults (all active categories, all regions, 12 months, 5 samples).
type CalcOptions struct {
	CategoryID    string
	Region        string
	PeriodMonths  int
	MinSampleSize int
}

// Aggregator recomputes benchmark rows from raw contract prices.
type Aggregator struct {
	catalog category.Catalog
	prices  prices.Store
	repo    Repository
	guard   *Guard
}

func NewAggregator(
	catalog category.Catalog,
	priceStore prices.Store,
	repo Repository,
	guard *Guard,
) *Aggregator {
	return &Aggregator{
		catalog: catalog,
		prices:  priceStore,
		repo:    repo,
		guard:   guard,
	}
}

// Calculate runs one pass over categories × regions and upserts one
// benchmark per pair that meets the minimum sample size. It returns the
// count of rows written. If a pass is already in flight it returns 0
// immediately without queuing. A query or persistence error aborts the
// pass; rows upserted earlier in the same pass are not rolled back.
func (a *Aggregator) Calculate(ctx context.Context, opts CalcOptions) (int, error) {
	if !a.guard.TryAcquire() {
		log.Println("[BENCHMARK] Calculation already in progress, skipping")
		return 0, nil
	}
	defer a.guard.Release()

	if opts.PeriodMonths <= 0 {
		opts.PeriodMonths = DefaultPeriodMonths
	}
	if opts.MinSampleSize <= 0 {
		opts.MinSampleSize = DefaultMinSampleSize
	}

	started := time.Now()
	periodEnd := started
	periodStart := started.AddDate(0, -opts.PeriodMonths, 0)

	categories, err := a.resolveCategories(ctx, opts.CategoryID)
	if err != nil {
		return 0, err
	}

	regions := Regions
	if opts.Region != "" {
		regions = []string{opts.Region}
	}

	written := 0

	for _, cat := range categories {
		// National aggregate first: one BR row over every region's samples.
		n, err := a.calculatePair(ctx, cat.ID, RegionNational, periodStart, periodEnd, opts.MinSampleSize)
		if err != nil {
			log.Printf("[BENCHMARK] Aborting after %s: %v", time.Since(started), err)
			return written, err
		}
		written += n

		for _, region := range regions {
			n, err := a.calculatePair(ctx, cat.ID, region, periodStart, periodEnd, opts.MinSampleSize)
			if err != nil {
				log.Printf("[BENCHMARK] Aborting after %s: %v", time.Since(started), err)
				return written, err
			}
			written += n
		}
	}

	log.Printf(
		"[BENCHMARK] Pass complete: categories=%d written=%d elapsed=%s",
		len(categories), written, time.Since(started),
	)

	return written, nil
}

func (a *Aggregator) resolveCategories(ctx context.Context, categoryID string) ([]*category.Category, error) {
	if categoryID != "" {
		cat, err := a.catalog.FindByID(ctx, categoryID)
		if err != nil {
			return nil, fmt.Errorf("resolve category %s: %w", categoryID, err)
		}
		return []*category.Category{cat}, nil
	}
	return a.catalog.ListActive(ctx)
}

// calculatePair computes and upserts one (category, region) benchmark.
// Returns 1 when a row was written, 0 when the pair was skipped for
// insufficient samples.
func (a *Aggregator) calculatePair(
	ctx context.Context,
	categoryID, region string,
	periodStart, periodEnd time.Time,
	minSampleSize int,
) (int, error) {

	// The national row aggregates every region.
	queryRegion := region
	if region == RegionNational {
		queryRegion = ""
	}

	samples, err := a.prices.QueryByCategoryAndWindow(ctx, categoryID, periodStart, periodEnd, queryRegion)
	if err != nil {
		return 0, err
	}

	if len(samples) < minSampleSize {
		log.Printf(
			"[BENCHMARK] Skipping %s / %s (samples=%d, min=%d)",
			categoryID, region, len(samples), minSampleSize,
		)
		return 0, nil
	}

	values := make([]float64, len(samples))
	units := make([]string, len(samples))
	for i, s := range samples {
		values[i] = s.Price
		units[i] = s.Unit
	}
	sort.Float64s(values)

	summary := stats.ComputeStats(values)

	b := &Benchmark{
		CategoryID:   categoryID,
		Region:       region,
		OrgSize:      OrgSizeAll,
		AvgPrice:     summary.Mean,
		MedianPrice:  summary.Median,
		MinPrice:     summary.Min,
		MaxPrice:     summary.Max,
		P25Price:     summary.P25,
		P75Price:     summary.P75,
		StdDev:       summary.StdDev,
		SampleCount:  len(samples),
		DominantUnit: stats.DominantUnit(units),
		PeriodStart:  periodStart,
		PeriodEnd:    periodEnd,
		CalculatedAt: time.Now(),
	}

	if err := a.repo.Upsert(ctx, b); err != nil {
		return 0, err
	}

	log.Printf(
		"[BENCHMARK] %s / %s -> median=%.2f avg=%.2f samples=%d",
		categoryID, region, b.MedianPrice, b.AvgPrice, b.SampleCount,
	)

	return 1, nil
}
