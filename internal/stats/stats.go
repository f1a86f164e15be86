// Package stats holds the pure numeric kernel used by the benchmark
// aggregator. All standard deviation figures are population stddev
// (divide by n, not n-1).
package stats

import "math"

// Summary is the full statistical profile of one sorted price series.
type Summary struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	P25    float64
	P75    float64
	StdDev float64
}

// ComputeStats profiles a price series. The caller must pass the series
// sorted ascending. An empty series yields an all-zero Summary instead
// of dividing by zero (callers guard the minimum sample size upstream).
func ComputeStats(sorted []float64) Summary {
	n := len(sorted)
	if n == 0 {
		return Summary{}
	}

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(n)

	var sumSq float64
	for _, v := range sorted {
		diff := v - mean
		sumSq += diff * diff
	}

	return Summary{
		Mean:   mean,
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[n-1],
		P25:    Percentile(sorted, 25),
		P75:    Percentile(sorted, 75),
		StdDev: math.Sqrt(sumSq / float64(n)),
	}
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 0 {
		mid := n / 2
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the p-th percentile (p in [0,100]) of a sorted
// series using linear interpolation between the two nearest ranks.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	index := p / 100 * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if upper >= n {
		return sorted[n-1]
	}
	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// DominantUnit returns the most frequent unit in the series. Ties keep
// the unit seen first in a single left-to-right scan.
func DominantUnit(units []string) string {
	if len(units) == 0 {
		return ""
	}

	counts := make(map[string]int, len(units))
	var order []string

	for _, u := range units {
		if counts[u] == 0 {
			order = append(order, u)
		}
		counts[u]++
	}

	dominant := order[0]
	for _, u := range order[1:] {
		if counts[u] > counts[dominant] {
			dominant = u
		}
	}

	return dominant
}
