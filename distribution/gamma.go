package distribution

import (
	"math"

	"go.uber.org/zap"
)

// Gamma returns cfg.Count values from Gamma(cfg.Shape, cfg.Scale).
//
// Shapes below one use d = shape + 1/3 unless GammaCorrection is set; that
// variant has mean (shape + 2/3) * scale rather than shape * scale.
func (s *Sampler) Gamma(cfg GammaConfig) ([]float64, error) {
	if err := cfg.Validate(); err != nil {
		return s.done("gamma", nil, err)
	}

	out := make([]float64, cfg.Count)
	for i := range out {
		out[i] = s.gamma(cfg.Shape, cfg.Scale)
	}
	return s.done("gamma", out, nil)
}

// gamma draws a single variate using Marsaglia and Tsang's rejection method.
// shape and scale must be positive.
func (s *Sampler) gamma(shape, scale float64) float64 {
	v, _ := s.gammaLog(shape, scale)
	return v
}

// gammaLog is gamma that also returns the logarithm of the draw. With the
// small shape correction the logarithm stays finite after the draw itself
// has underflowed to zero.
func (s *Sampler) gammaLog(shape, scale float64) (float64, float64) {
	if shape < 1 && s.GammaCorrection {
		// Gamma(shape) = Gamma(shape+1) * u^(1/shape)
		u := math.Max(epsilon, s.src.Float64())
		g, lnG := s.gammaLog(shape+1, scale)
		return g * math.Pow(u, 1/shape), lnG + math.Log(u)/shape
	}
	v := s.marsagliaTsang(shape, scale)
	return v, math.Log(v)
}

func (s *Sampler) marsagliaTsang(shape, scale float64) float64 {
	d := shape - 1.0/3
	if shape < 1 {
		d = shape + 1.0/3
	}
	c := 1 / math.Sqrt(9*d)

	limit := s.MaxGammaIterations
	if limit <= 0 {
		limit = DefaultMaxGammaIterations
	}
	for i := 1; i <= limit; i++ {
		x, _ := boxMuller(s.src)
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v

		u := s.src.Float64()
		x2 := x * x
		if u < 1-0.0331*x2*x2 || math.Log(u) < 0.5*x2+d*(1-v+math.Log(v)) {
			s.metrics.observeGamma(i, false)
			return d * v * scale
		}
	}

	s.metrics.observeGamma(limit, true)
	s.logger.Warn("Gamma rejection loop exhausted, returning the mean",
		zap.Float64("shape", shape),
		zap.Float64("scale", scale),
		zap.Int("iterations", limit))
	return shape * scale
}
