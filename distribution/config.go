package distribution

import (
	"math"
)

// UniformConfig parameterises Uniform.
type UniformConfig struct {
	Count int
	Min   float64
	Max   float64
}

// DefaultUniformConfig returns 100 draws on [-1, 1).
func DefaultUniformConfig() UniformConfig {
	return UniformConfig{Count: 100, Min: -1, Max: 1}
}

// Validate reports whether the configuration can be sampled.
// Min >= Max is accepted and yields Min for every value.
func (c UniformConfig) Validate() error {
	const op = "distribution.Uniform"
	if err := checkCount(op, c.Count); err != nil {
		return err
	}
	if err := checkFinite(op, "min", c.Min); err != nil {
		return err
	}
	if err := checkFinite(op, "max", c.Max); err != nil {
		return err
	}
	if c.Max > c.Min && math.IsInf(c.Max-c.Min, 0) {
		return invalidParameter(op, "range [%v, %v) is too wide", c.Min, c.Max)
	}
	return nil
}

// ExponentialConfig parameterises Exponential.
type ExponentialConfig struct {
	Count  int
	Lambda float64
}

// DefaultExponentialConfig returns 100 draws with rate 1.
func DefaultExponentialConfig() ExponentialConfig {
	return ExponentialConfig{Count: 100, Lambda: 1.0}
}

// Validate reports whether the configuration can be sampled.
func (c ExponentialConfig) Validate() error {
	const op = "distribution.Exponential"
	if err := checkCount(op, c.Count); err != nil {
		return err
	}
	if err := checkPositive(op, "lambda", c.Lambda); err != nil {
		return err
	}
	if math.IsInf(maxExponentialDraw/c.Lambda, 0) {
		return invalidParameter(op, "lambda %v is too small, values would overflow", c.Lambda)
	}
	return nil
}

// NormalConfig parameterises Normal.
type NormalConfig struct {
	Count int
	Mean  float64
	Std   float64
}

// DefaultNormalConfig returns 100 standard normal draws.
func DefaultNormalConfig() NormalConfig {
	return NormalConfig{Count: 100, Mean: 0, Std: 1}
}

// Validate reports whether the configuration can be sampled.
func (c NormalConfig) Validate() error {
	return validateNormal("distribution.Normal", c.Count, c.Mean, c.Std, "mean", "std")
}

// LogNormalConfig parameterises LogNormal. Mu and Sigma describe the
// underlying normal distribution.
type LogNormalConfig struct {
	Count int
	Mu    float64
	Sigma float64
}

// DefaultLogNormalConfig returns 100 draws with mu 0 and sigma 0.5.
func DefaultLogNormalConfig() LogNormalConfig {
	return LogNormalConfig{Count: 100, Mu: 0, Sigma: 0.5}
}

// Validate reports whether the configuration can be sampled.
func (c LogNormalConfig) Validate() error {
	const op = "distribution.LogNormal"
	if err := validateNormal(op, c.Count, c.Mu, c.Sigma, "mu", "sigma"); err != nil {
		return err
	}
	if c.Mu+maxNormalDraw*c.Sigma > maxLog {
		return invalidParameter(op, "mu %v and sigma %v produce values beyond the float64 range", c.Mu, c.Sigma)
	}
	return nil
}

// BetaConfig parameterises Beta.
type BetaConfig struct {
	Count int
	Alpha float64
	Beta  float64
}

// DefaultBetaConfig returns 100 draws from Beta(2, 5).
func DefaultBetaConfig() BetaConfig {
	return BetaConfig{Count: 100, Alpha: 2, Beta: 5}
}

// Validate reports whether the configuration can be sampled.
func (c BetaConfig) Validate() error {
	const op = "distribution.Beta"
	if err := checkCount(op, c.Count); err != nil {
		return err
	}
	if err := checkPositive(op, "alpha", c.Alpha); err != nil {
		return err
	}
	return checkPositive(op, "beta", c.Beta)
}

// GammaConfig parameterises Gamma.
type GammaConfig struct {
	Count int
	Shape float64
	Scale float64
}

// DefaultGammaConfig returns 100 draws from Gamma(2, 1).
func DefaultGammaConfig() GammaConfig {
	return GammaConfig{Count: 100, Shape: 2, Scale: 1}
}

// Validate reports whether the configuration can be sampled.
func (c GammaConfig) Validate() error {
	const op = "distribution.Gamma"
	if err := checkCount(op, c.Count); err != nil {
		return err
	}
	if err := checkPositive(op, "shape", c.Shape); err != nil {
		return err
	}
	return checkPositive(op, "scale", c.Scale)
}

// Component is one normal component of a mixture.
type Component struct {
	Mean float64
	Std  float64
}

// MixtureConfig parameterises Mixture. Weight is the share of Count drawn
// from component A.
type MixtureConfig struct {
	Count  int
	Weight float64
	A      Component
	B      Component
}

// DefaultMixtureConfig returns 100 draws split evenly between N(-1, 0.5) and N(1, 0.5).
func DefaultMixtureConfig() MixtureConfig {
	return MixtureConfig{
		Count:  100,
		Weight: 0.5,
		A:      Component{Mean: -1, Std: 0.5},
		B:      Component{Mean: 1, Std: 0.5},
	}
}

// Validate reports whether the configuration can be sampled.
func (c MixtureConfig) Validate() error {
	const op = "distribution.Mixture"
	if err := checkCount(op, c.Count); err != nil {
		return err
	}
	if err := checkFinite(op, "weight", c.Weight); err != nil {
		return err
	}
	if c.Weight < 0 || c.Weight > 1 {
		return invalidParameter(op, "weight must be within [0, 1], got %v", c.Weight)
	}
	if err := validateNormal(op, 0, c.A.Mean, c.A.Std, "a.mean", "a.std"); err != nil {
		return err
	}
	return validateNormal(op, 0, c.B.Mean, c.B.Std, "b.mean", "b.std")
}

func validateNormal(op string, count int, mean, std float64, meanName, stdName string) error {
	if err := checkCount(op, count); err != nil {
		return err
	}
	if err := checkFinite(op, meanName, mean); err != nil {
		return err
	}
	if err := checkPositive(op, stdName, std); err != nil {
		return err
	}
	if math.IsInf(math.Abs(mean)+maxNormalDraw*std, 0) {
		return invalidParameter(op, "%s %v and %s %v produce values beyond the float64 range", meanName, mean, stdName, std)
	}
	return nil
}

// Bounds on a single draw. Uniform draws are clamped to at least epsilon, so
// a standard normal never exceeds sqrt(-2 ln epsilon) in magnitude and an
// exponential with rate one never exceeds -ln epsilon.
var (
	maxNormalDraw      = math.Sqrt(-2 * math.Log(epsilon))
	maxExponentialDraw = -math.Log(epsilon)
	maxLog             = math.Log(math.MaxFloat64)
)

func checkCount(op string, n int) error {
	if n < 0 {
		return invalidParameter(op, "count must not be negative, got %d", n)
	}
	return nil
}

func checkFinite(op, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidParameter(op, "%s must be finite, got %v", name, v)
	}
	return nil
}

func checkPositive(op, name string, v float64) error {
	if err := checkFinite(op, name, v); err != nil {
		return err
	}
	if v <= 0 {
		return invalidParameter(op, "%s must be greater than zero, got %v", name, v)
	}
	return nil
}
