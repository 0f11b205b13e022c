package analysis

import (
	"math"
	"sort"

	"genoscope/domain/enrich"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// TableSummary describes the distribution of a result table for chart
// scaling and the run detail view.
type TableSummary struct {
	Rows             int     `json:"rows"`
	MinPValue        float64 `json:"min_p_value"`
	MedianPValue     float64 `json:"median_p_value"`
	P25PValue        float64 `json:"p25_p_value"`
	P75PValue        float64 `json:"p75_p_value"`
	MaxNegLog10P     float64 `json:"max_neg_log10_p"`
	MeanIntersection float64 `json:"mean_intersection"`
	MaxIntersection  int     `json:"max_intersection"`
}

// Summarize computes the distribution summary for a table. An empty table
// yields the zero summary.
func Summarize(table enrich.Table) TableSummary {
	summary := TableSummary{Rows: len(table)}
	if len(table) == 0 {
		return summary
	}

	pValues := make([]float64, 0, len(table))
	intersections := make([]float64, 0, len(table))
	maxIntersection := 0
	for _, row := range table {
		pValues = append(pValues, row.PValue)
		intersections = append(intersections, float64(row.IntersectionSize))
		if row.IntersectionSize > maxIntersection {
			maxIntersection = row.IntersectionSize
		}
	}

	summary.MinPValue, _ = stats.Min(pValues)
	summary.MedianPValue, _ = stats.Median(pValues)
	summary.P25PValue, _ = stats.Percentile(pValues, 25)
	summary.P75PValue, _ = stats.Percentile(pValues, 75)
	summary.MeanIntersection, _ = stats.Mean(intersections)
	summary.MaxIntersection = maxIntersection
	summary.MaxNegLog10P = NegLog10(summary.MinPValue)

	return summary
}

// NegLog10 transforms a p-value for plotting. Non-positive inputs clamp to
// 0 rather than produce infinities in chart payloads.
func NegLog10(p float64) float64 {
	if p <= 0 {
		return 0
	}
	if v := -math.Log10(p); v > 0 {
		return v
	}
	return 0
}

// BubbleSizes maps intersection sizes onto marker sizes between minSize
// and maxSize, scaling against the table's intersection-size quantiles so
// a single outlier does not flatten every other bubble.
func BubbleSizes(table enrich.Table, minSize, maxSize float64) []float64 {
	sizes := make([]float64, len(table))
	if len(table) == 0 {
		return sizes
	}

	values := make([]float64, len(table))
	for i, row := range table {
		values[i] = float64(row.IntersectionSize)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	lo := stat.Quantile(0.05, stat.Empirical, sorted, nil)
	hi := stat.Quantile(0.95, stat.Empirical, sorted, nil)

	for i, v := range values {
		if hi <= lo {
			sizes[i] = (minSize + maxSize) / 2
			continue
		}
		frac := (v - lo) / (hi - lo)
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		sizes[i] = minSize + frac*(maxSize-minSize)
	}
	return sizes
}
