package distribution

import (
	"math"
)

// Uniform returns cfg.Count values drawn uniformly from [Min, Max).
// A degenerate range, Min >= Max, yields Min for every value.
func (s *Sampler) Uniform(cfg UniformConfig) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return s.done("uniform", nil, err)
	}

	out := make([]float64, cfg.Count)
	if cfg.Min >= cfg.Max {
		for i := range out {
			out[i] = cfg.Min
		}
		return s.done("uniform", out, nil)
	}

	var (
		a = cfg.Max - cfg.Min
		b = cfg.Min
	)
	for i := range out {
		v := a*s.src.Float64() + b // ax + b
		if v >= cfg.Max {
			// rounding can land on the open bound
			v = math.Nextafter(cfg.Max, cfg.Min)
		}
		out[i] = v
	}
	return s.done("uniform", out, nil)
}
