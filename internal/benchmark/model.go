package benchmark

import "time"

// Org-size segments. The aggregator currently only writes ALL; the
// other segments exist in the schema and query paths as an extension
// point for size-segmented benchmarks.
const (
	OrgSizeSmall  = "SMALL"
	OrgSizeMedium = "MEDIUM"
	OrgSizeLarge  = "LARGE"
	OrgSizeAll    = "ALL"
)

// RegionNational is the separately stored national aggregate. It is a
// real row, not a query-time union of the state rows.
const RegionNational = "BR"

// Regions holds the 27 Brazilian state codes.
var Regions = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO",
	"MA", "MT", "MS", "MG", "PA", "PB", "PR", "PE", "PI",
	"RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

var validRegions = func() map[string]bool {
	m := map[string]bool{RegionNational: true}
	for _, r := range Regions {
		m[r] = true
	}
	return m
}()

func IsValidRegion(code string) bool {
	return validRegions[code]
}

func IsValidOrgSize(size string) bool {
	switch size {
	case OrgSizeSmall, OrgSizeMedium, OrgSizeLarge, OrgSizeAll:
		return true
	}
	return false
}

// Benchmark is the persisted statistical summary for one
// (category, region, org_size) key over a rolling window.
type Benchmark struct {
	ID           int       `json:"id"`
	CategoryID   string    `json:"category_id"`
	Region       string    `json:"region"`
	OrgSize      string    `json:"org_size"`
	AvgPrice     float64   `json:"avg_price"`
	MedianPrice  float64   `json:"median_price"`
	MinPrice     float64   `json:"min_price"`
	MaxPrice     float64   `json:"max_price"`
	P25Price     float64   `json:"p25_price"`
	P75Price     float64   `json:"p75_price"`
	StdDev       float64   `json:"std_dev"`
	SampleCount  int       `json:"sample_count"`
	DominantUnit string    `json:"dominant_unit"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
	CalculatedAt time.Time `json:"calculated_at"`
}

// RegionalEntry is one state row inside a regional breakdown, with its
// median deviation from the national median.
type RegionalEntry struct {
	Benchmark
	DeviationFromNational float64 `json:"deviation_from_national"`
}

// RegionalBreakdown pairs the national benchmark with all state rows.
type RegionalBreakdown struct {
	National *Benchmark      `json:"national"`
	Regions  []RegionalEntry `json:"regions"`
}

// SummaryStatistics describes the whole benchmark table.
type SummaryStatistics struct {
	TotalBenchmarks        int        `json:"total_benchmarks"`
	DistinctCategories     int        `json:"distinct_categories"`
	DistinctRegions        int        `json:"distinct_regions"`
	TotalSamples           int        `json:"total_samples"`
	AvgSamplesPerBenchmark float64    `json:"avg_samples_per_benchmark"`
	LastCalculatedAt       *time.Time `json:"last_calculated_at"`
}
