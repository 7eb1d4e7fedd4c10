package distribution

import (
	"math"
)

// MixtureCounts splits count between the two components. A receives
// count*weight rounded half up, B receives the rest.
func MixtureCounts(count int, weight float64) (aCount, bCount int) {
	// count*weight is never negative, so math.Round only ever rounds ties up.
	aCount = int(math.Round(float64(count) * weight))
	if aCount > count {
		aCount = count
	}
	return aCount, count - aCount
}

// Mixture returns cfg.Count values from a two component normal mixture.
// The first aCount values come from component A and the remaining values
// from component B; the components are not interleaved.
func (s *Sampler) Mixture(cfg MixtureConfig) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return s.done("mixture", nil, err)
	}

	aCount, _ := MixtureCounts(cfg.Count, cfg.Weight)
	out := make([]float64, cfg.Count)
	fillNormal(s.src, out[:aCount], cfg.A.Mean, cfg.A.Std)
	fillNormal(s.src, out[aCount:], cfg.B.Mean, cfg.B.Std)
	return s.done("mixture", out, nil)
}
