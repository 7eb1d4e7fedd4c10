package distribution

import (
	"math"
)

// Beta returns cfg.Count values from Beta(cfg.Alpha, cfg.Beta) as x/(x+y)
// with x ~ Gamma(alpha, 1) and y ~ Gamma(beta, 1). Values lie in the open
// interval (0, 1).
func (s *Sampler) Beta(cfg BetaConfig) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return s.done("beta", nil, err)
	}

	out := make([]float64, cfg.Count)
	for i := range out {
		x, lnX := s.gammaLog(cfg.Alpha, 1)
		y, lnY := s.gammaLog(cfg.Beta, 1)
		out[i] = s.betaRatio(x, lnX, y, lnY, cfg.Alpha, cfg.Beta)
	}
	return s.done("beta", out, nil)
}

// betaRatio returns x/(x+y). When a draw underflowed the ratio is taken
// from the logarithms instead.
func (s *Sampler) betaRatio(x, lnX, y, lnY, alpha, beta float64) float64 {
	if x > 0 && y > 0 {
		return openUnit(x / (x + y))
	}

	d := lnY - lnX
	if math.IsNaN(d) {
		// Both logarithms are -Inf, which only happens for shapes so small
		// that Beta(alpha, beta) is a coin toss between the bounds.
		if s.src.Float64() < alpha/(alpha+beta) {
			return openUnit(1)
		}
		return openUnit(0)
	}
	return openUnit(1 / (1 + math.Exp(d)))
}

// openUnit pulls v into (0, 1) when a very lopsided gamma pair rounds the
// ratio onto a bound.
func openUnit(v float64) float64 {
	switch {
	case v <= 0:
		return math.SmallestNonzeroFloat64
	case v >= 1:
		return math.Nextafter(1, 0)
	}
	return v
}
