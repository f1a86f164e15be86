package comparison

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/CONFENGE/etp-express-sub002/internal/benchmark"
	"github.com/CONFENGE/etp-express-sub002/internal/category"

	"github.com/google/uuid"
)

// Engine is the stateless read-side comparison algorithm. Every call is
// an independent, idempotent read.
type Engine struct {
	catalog    category.Catalog
	benchmarks benchmark.Repository
}

func NewEngine(catalog category.Catalog, benchmarks benchmark.Repository) *Engine {
	return &Engine{
		catalog:    catalog,
		benchmarks: benchmarks,
	}
}

// Compare locates inputPrice within the benchmark for the requested
// key, falling back to the national (BR) row when no regional row
// exists. orgSize defaults to ALL.
func (e *Engine) Compare(
	ctx context.Context,
	inputPrice float64,
	categoryIDOrCode string,
	region string,
	orgSize string,
) (*Result, error) {

	if orgSize == "" {
		orgSize = benchmark.OrgSizeAll
	}

	cat, err := e.resolveCategory(ctx, categoryIDOrCode)
	if err != nil {
		return nil, err
	}

	b, err := e.benchmarks.Find(ctx, cat.ID, region, orgSize)
	if errors.Is(err, benchmark.ErrNotFound) && region != benchmark.RegionNational {
		b, err = e.benchmarks.Find(ctx, cat.ID, benchmark.RegionNational, orgSize)
	}
	if err != nil {
		return nil, err
	}

	deviation := round2((inputPrice - b.MedianPrice) / b.MedianPrice * 100)
	percentile := percentileEstimate(inputPrice, b.AvgPrice, b.StdDev)
	tier := riskTier(deviation)

	return &Result{
		InputPrice:         inputPrice,
		Benchmark:          b,
		DeviationPct:       deviation,
		PercentileEstimate: percentile,
		RiskTier:           tier,
		Suggestion:         suggestion(inputPrice, deviation, tier, b),
	}, nil
}

func (e *Engine) resolveCategory(ctx context.Context, idOrCode string) (*category.Category, error) {
	// Only UUID-shaped values can be IDs; everything else is a code.
	if _, err := uuid.Parse(idOrCode); err == nil {
		cat, err := e.catalog.FindByID(ctx, idOrCode)
		if err == nil {
			return cat, nil
		}
		if !errors.Is(err, category.ErrNotFound) {
			return nil, err
		}
	}
	return e.catalog.FindByCode(ctx, idOrCode)
}

// percentileEstimate converts the price's z-score to a percentile with
// the Abramowitz-Stegun 26.2.17 normal-CDF approximation. The
// coefficients are fixed; swapping in a different erf routine shifts
// the estimates.
func percentileEstimate(price, mean, stdDev float64) float64 {
	if stdDev == 0 {
		if price >= mean {
			return 100
		}
		return 0
	}

	z := (price - mean) / stdDev
	az := math.Abs(z)

	t := 1 / (1 + 0.2316419*az)
	d := math.Exp(-az*az/2) / math.Sqrt(2*math.Pi)
	p := d * t * (0.3193815 + t*(-0.3565638+t*(1.781478+t*(-1.821256+t*1.330274))))

	sign := 1.0
	if z < 0 {
		sign = -1.0
	}

	percentile := 100 * (0.5 + sign*(0.5-p))
	return math.Min(100, math.Max(0, percentile))
}

func riskTier(deviationPct float64) string {
	switch {
	case deviationPct <= 20:
		return RiskLow
	case deviationPct <= 40:
		return RiskMedium
	case deviationPct <= 60:
		return RiskHigh
	default:
		return RiskCritical
	}
}

func suggestion(price, deviationPct float64, tier string, b *benchmark.Benchmark) string {
	if deviationPct <= 0 {
		return fmt.Sprintf(
			"The price of R$ %.2f is at or below the market median of R$ %.2f. No overprice indication.",
			price, b.MedianPrice,
		)
	}

	switch tier {
	case RiskLow:
		return fmt.Sprintf(
			"The price of R$ %.2f is %.2f%% above the market median of R$ %.2f, within the expected range.",
			price, deviationPct, b.MedianPrice,
		)
	case RiskMedium:
		return fmt.Sprintf(
			"The price of R$ %.2f is %.2f%% above the market median of R$ %.2f. Consider negotiating towards R$ %.2f to R$ %.2f (p25-p75 range).",
			price, deviationPct, b.MedianPrice, b.P25Price, b.P75Price,
		)
	case RiskHigh:
		return fmt.Sprintf(
			"The price of R$ %.2f is %.2f%% above the market median of R$ %.2f. A justification is advisable; the usual range is R$ %.2f to R$ %.2f (p25-p75 range).",
			price, deviationPct, b.MedianPrice, b.P25Price, b.P75Price,
		)
	default:
		return fmt.Sprintf(
			"The price of R$ %.2f is %.2f%% above the market median of R$ %.2f, a critical overprice indication. The usual range is R$ %.2f to R$ %.2f (p25-p75 range).",
			price, deviationPct, b.MedianPrice, b.P25Price, b.P75Price,
		)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
