package distribution

import (
	"math"

	errors2 "github.com/strata-av/variates/kit/platform/errors"
	"go.uber.org/zap"
)

// DefaultMaxGammaIterations bounds the gamma rejection loop.
const DefaultMaxGammaIterations = 10000

// Sampler draws variates from a single Source.
//
// A Sampler is safe for concurrent use only if its Source is.
type Sampler struct {
	src     Source
	logger  *zap.Logger
	metrics *Metrics

	// GammaCorrection applies the u^(1/shape) boost for gamma shapes below one.
	// It is off by default, which keeps d = shape + 1/3 for small shapes.
	GammaCorrection bool

	// MaxGammaIterations caps the rejection loop of a single gamma draw.
	// When the cap is reached the draw falls back to the distribution mean.
	MaxGammaIterations int
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithLogger sets the logger used by the sampler.
func WithLogger(log *zap.Logger) SamplerOption {
	return func(s *Sampler) {
		s.logger = log
	}
}

// WithMetrics records sampler activity in m.
func WithMetrics(m *Metrics) SamplerOption {
	return func(s *Sampler) {
		s.metrics = m
	}
}

// WithGammaCorrection toggles the small shape gamma correction.
func WithGammaCorrection(enabled bool) SamplerOption {
	return func(s *Sampler) {
		s.GammaCorrection = enabled
	}
}

// WithMaxGammaIterations sets the gamma rejection loop cap.
func WithMaxGammaIterations(n int) SamplerOption {
	return func(s *Sampler) {
		s.MaxGammaIterations = n
	}
}

// NewSampler returns a sampler drawing from src. A nil src uses GlobalSource.
func NewSampler(src Source, opts ...SamplerOption) *Sampler {
	if src == nil {
		src = GlobalSource
	}
	s := &Sampler{
		src:                src,
		logger:             zap.NewNop(),
		MaxGammaIterations: DefaultMaxGammaIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

var ops = map[string]string{
	"uniform":     "distribution.Uniform",
	"exponential": "distribution.Exponential",
	"normal":      "distribution.Normal",
	"lognormal":   "distribution.LogNormal",
	"gamma":       "distribution.Gamma",
	"beta":        "distribution.Beta",
	"mixture":     "distribution.Mixture",
}

// done records the call and rejects output that left the float64 range,
// which validation cannot rule out for every gamma scale.
func (s *Sampler) done(name string, out []float64, err error) ([]float64, error) {
	if err == nil {
		for i, v := range out {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				err = invalidParameter(ops[name], "parameters produce a non-finite value %v at index %d", v, i)
				out = nil
				break
			}
		}
	}
	s.metrics.observeCall(name, len(out), err)
	if err != nil {
		s.logger.Debug("Invalid sampling parameters",
			zap.String("distribution", name),
			zap.String("op", errors2.ErrorOp(err)),
			zap.Error(err))
		return nil, err
	}
	s.logger.Debug("Sampled", zap.String("distribution", name), zap.Int("count", len(out)))
	return out, nil
}

var defaultSampler = NewSampler(GlobalSource)

// Uniform draws cfg.Count values from GlobalSource. See Sampler.Uniform.
func Uniform(cfg UniformConfig) ([]float64, error) { return defaultSampler.Uniform(cfg) }

// Exponential draws cfg.Count values from GlobalSource. See Sampler.Exponential.
func Exponential(cfg ExponentialConfig) ([]float64, error) { return defaultSampler.Exponential(cfg) }

// Normal draws cfg.Count values from GlobalSource. See Sampler.Normal.
func Normal(cfg NormalConfig) ([]float64, error) { return defaultSampler.Normal(cfg) }

// LogNormal draws cfg.Count values from GlobalSource. See Sampler.LogNormal.
func LogNormal(cfg LogNormalConfig) ([]float64, error) { return defaultSampler.LogNormal(cfg) }

// Beta draws cfg.Count values from GlobalSource. See Sampler.Beta.
func Beta(cfg BetaConfig) ([]float64, error) { return defaultSampler.Beta(cfg) }

// Mixture draws cfg.Count values from GlobalSource. See Sampler.Mixture.
func Mixture(cfg MixtureConfig) ([]float64, error) { return defaultSampler.Mixture(cfg) }

// Gamma draws cfg.Count values from GlobalSource. See Sampler.Gamma.
func Gamma(cfg GammaConfig) ([]float64, error) { return defaultSampler.Gamma(cfg) }
