package stats

import (
	"math"
	"sort"

	errors2 "github.com/strata-av/variates/kit/platform/errors"
)

// KSResult is the outcome of a one-sample Kolmogorov-Smirnov test.
type KSResult struct {
	// D is the largest distance between the empirical and reference CDFs.
	D float64
	// P is the asymptotic probability of a distance at least D when the
	// sample was drawn from the reference distribution.
	P float64
}

// Reject reports whether the test rejects the reference distribution at
// significance level alpha.
func (r KSResult) Reject(alpha float64) bool {
	return r.P < alpha
}

// KolmogorovSmirnov tests xs against the continuous distribution cdf.
func KolmogorovSmirnov(xs []float64, cdf func(float64) float64) (KSResult, error) {
	n := len(xs)
	if n == 0 {
		return KSResult{}, &errors2.Error{Code: errors2.EEmptyValue, Op: "stats.KolmogorovSmirnov", Msg: "cannot test an empty sample"}
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	var d float64
	fn := float64(n)
	for i, x := range sorted {
		f := cdf(x)
		if lo := f - float64(i)/fn; lo > d {
			d = lo
		}
		if hi := float64(i+1)/fn - f; hi > d {
			d = hi
		}
	}

	sn := math.Sqrt(fn)
	return KSResult{D: d, P: kolmogorovQ((sn + 0.12 + 0.11/sn) * d)}, nil
}

// kolmogorovQ is the survival function of the Kolmogorov distribution.
func kolmogorovQ(lambda float64) float64 {
	if lambda < 1e-3 {
		return 1
	}
	var (
		sum  float64
		sign = 1.0
		a2   = -2 * lambda * lambda
	)
	for j := 1; j <= 100; j++ {
		term := sign * math.Exp(a2*float64(j*j))
		sum += term
		if math.Abs(term) < 1e-12 {
			break
		}
		sign = -sign
	}
	q := 2 * sum
	switch {
	case q < 0:
		return 0
	case q > 1:
		return 1
	}
	return q
}
