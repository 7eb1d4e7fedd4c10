// Package stats summarises sample sequences and checks them against
// reference distributions.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"text/tabwriter"

	errors2 "github.com/strata-av/variates/kit/platform/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultQuantiles are reported when Summarize is called without quantiles.
var DefaultQuantiles = []float64{0.01, 0.25, 0.5, 0.75, 0.99}

// Quantile is an empirical quantile of a sample.
type Quantile struct {
	P     float64
	Value float64
}

// Summary describes a sample.
type Summary struct {
	Count      int
	Mean       float64
	StdDev     float64
	Variance   float64
	Skewness   float64
	ExKurtosis float64
	Min        float64
	Max        float64
	Quantiles  []Quantile
}

// Summarize computes moments and empirical quantiles of xs. Quantile
// probabilities must lie in [0, 1].
func Summarize(xs []float64, qs ...float64) (*Summary, error) {
	const op = "stats.Summarize"
	if len(xs) == 0 {
		return nil, &errors2.Error{Code: errors2.EEmptyValue, Op: op, Msg: "cannot summarize an empty sample"}
	}
	if len(qs) == 0 {
		qs = DefaultQuantiles
	}
	for _, p := range qs {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return nil, errors2.Invalidf(op, "quantile %v outside [0, 1]", p)
		}
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mean, variance := stat.MeanVariance(sorted, nil)
	s := &Summary{
		Count:    len(xs),
		Mean:     mean,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
		Min:      floats.Min(sorted),
		Max:      floats.Max(sorted),
	}
	if len(xs) > 3 {
		s.Skewness = stat.Skew(sorted, nil)
		s.ExKurtosis = stat.ExKurtosis(sorted, nil)
	}
	for _, p := range qs {
		s.Quantiles = append(s.Quantiles, Quantile{P: p, Value: stat.Quantile(p, stat.Empirical, sorted, nil)})
	}
	return s, nil
}

// PrintSummary writes s as an aligned table.
func (s *Summary) PrintSummary(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 20, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Count\t%d\n", s.Count)
	fmt.Fprintf(tw, "Mean\t%.6g\n", s.Mean)
	fmt.Fprintf(tw, "Std dev\t%.6g\n", s.StdDev)
	fmt.Fprintf(tw, "Skewness\t%.6g\n", s.Skewness)
	fmt.Fprintf(tw, "Excess kurtosis\t%.6g\n", s.ExKurtosis)
	fmt.Fprintf(tw, "Min\t%.6g\n", s.Min)
	fmt.Fprintf(tw, "Max\t%.6g\n", s.Max)
	for _, q := range s.Quantiles {
		fmt.Fprintf(tw, "p%g\t%.6g\n", q.P*100, q.Value)
	}
	return tw.Flush()
}

// Log returns the natural logarithm of every element of xs.
func Log(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Log(x)
	}
	return out
}
