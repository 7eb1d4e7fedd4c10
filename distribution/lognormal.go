package distribution

import (
	"math"
)

// LogNormal returns cfg.Count values whose logarithms are N(cfg.Mu, cfg.Sigma²).
// Every value is strictly positive.
func (s *Sampler) LogNormal(cfg LogNormalConfig) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return s.done("lognormal", nil, err)
	}

	out := make([]float64, cfg.Count)
	fillNormal(s.src, out, cfg.Mu, cfg.Sigma)
	for i, z := range out {
		v := math.Exp(z)
		if v == 0 {
			// underflow for very negative z
			v = math.SmallestNonzeroFloat64
		}
		out[i] = v
	}
	return s.done("lognormal", out, nil)
}
