package comparison

import "github.com/CONFENGE/etp-express-sub002/internal/benchmark"

// Risk tiers, escalating with the deviation above the median.
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// Result locates one input price inside a benchmark distribution. It is
// built fresh on every call and never persisted.
type Result struct {
	InputPrice         float64              `json:"input_price"`
	Benchmark          *benchmark.Benchmark `json:"benchmark"`
	DeviationPct       float64              `json:"deviation_pct"`
	PercentileEstimate float64              `json:"percentile_estimate"`
	RiskTier           string               `json:"risk_tier"`
	Suggestion         string               `json:"suggestion"`
}
