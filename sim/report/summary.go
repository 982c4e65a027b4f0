// Package report post-processes AggregateResults for external reporting:
// histogram binning of per-run MOICs and a quantile summary. Everything
// here is a pure function over the result value.
package report

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bin is one equal-width histogram bucket. Low is inclusive; High is
// exclusive except for the last bin, which absorbs values at or above the
// top edge.
type Bin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// Histogram distributes values into `bins` equal-width buckets spanning
// the observed min/max. Returns nil for empty input or a non-positive bin
// count. All-equal inputs collapse into a single fully-populated bucket.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}

	lo := floats.Min(values)
	hi := floats.Max(values)
	if lo == hi {
		return []Bin{{Low: lo, High: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// Summary aggregates the distribution of per-run MOICs.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	P5     float64 `json:"p5"`
	P25    float64 `json:"p25"`
	P75    float64 `json:"p75"`
	P95    float64 `json:"p95"`
}

// Summarize computes distribution statistics over per-run MOICs.
// Safe for empty input (returns zero-value fields).
func Summarize(moics []float64) *Summary {
	s := &Summary{Count: len(moics)}
	if len(moics) == 0 {
		return s
	}

	sorted := make([]float64, len(moics))
	copy(sorted, moics)
	sort.Float64s(sorted)

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Mean = stat.Mean(sorted, nil)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.P5 = stat.Quantile(0.05, stat.Empirical, sorted, nil)
	s.P25 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	s.P75 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	s.P95 = stat.Quantile(0.95, stat.Empirical, sorted, nil)
	return s
}
