package distribution

import (
	"math"
)

// epsilon is the difference between 1 and the next float64. Uniform draws are
// clamped to it before taking a logarithm.
const epsilon = 0x1p-52

// Exponential returns cfg.Count values with rate cfg.Lambda using the inverse CDF.
func (s *Sampler) Exponential(cfg ExponentialConfig) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return s.done("exponential", nil, err)
	}

	out := make([]float64, cfg.Count)
	for i := range out {
		u := math.Max(epsilon, s.src.Float64())
		out[i] = -math.Log(u) / cfg.Lambda
	}
	return s.done("exponential", out, nil)
}
