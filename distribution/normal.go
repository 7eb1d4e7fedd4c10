package distribution

import (
	"math"
)

// boxMuller turns two uniform draws into two independent standard normal variates.
func boxMuller(src Source) (z0, z1 float64) {
	u1 := math.Max(epsilon, src.Float64())
	u2 := src.Float64()
	r := math.Sqrt(-2 * math.Log(u1))
	sin, cos := math.Sincos(2 * math.Pi * u2)
	return r * cos, r * sin
}

// fillNormal writes mean + std*z into every element of out, generating z in
// pairs. The second value of the final pair is dropped for odd lengths.
func fillNormal(src Source, out []float64, mean, std float64) {
	for i := 0; i < len(out); i += 2 {
		z0, z1 := boxMuller(src)
		out[i] = mean + std*z0
		if i+1 < len(out) {
			out[i+1] = mean + std*z1
		}
	}
}

// Normal returns cfg.Count values from N(cfg.Mean, cfg.Std²).
func (s *Sampler) Normal(cfg NormalConfig) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return s.done("normal", nil, err)
	}

	out := make([]float64, cfg.Count)
	fillNormal(s.src, out, cfg.Mean, cfg.Std)
	return s.done("normal", out, nil)
}
