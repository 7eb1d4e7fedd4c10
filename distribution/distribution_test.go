package distribution_test

import (
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/strata-av/variates/distribution"
	errors2 "github.com/strata-av/variates/kit/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

const largeN = 100000

// sequenceSource replays vals in a loop.
type sequenceSource struct {
	vals []float64
	i    int
}

func (s *sequenceSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func newSampler(seed uint64, opts ...distribution.SamplerOption) *distribution.Sampler {
	return distribution.NewSampler(distribution.NewSource(seed), opts...)
}

// within asserts |got-want| <= k standard errors.
func within(t *testing.T, want, got, se, k float64, msg string) {
	t.Helper()
	assert.InDelta(t, want, got, k*se, "%s: want %v ± %v, got %v", msg, want, k*se, got)
}

func TestSampler_Count(t *testing.T) {
	s := newSampler(1)
	for _, name := range distribution.Names() {
		for _, n := range []int{0, 1, 2, 7, 100} {
			xs, err := s.Sample(name, n, nil)
			require.NoError(t, err, "%s count=%d", name, n)
			require.NotNil(t, xs, "%s count=%d", name, n)
			require.Len(t, xs, n, "%s count=%d", name, n)
		}
	}
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, distribution.UniformConfig{Count: 100, Min: -1, Max: 1}, distribution.DefaultUniformConfig())
	assert.Equal(t, distribution.ExponentialConfig{Count: 100, Lambda: 1}, distribution.DefaultExponentialConfig())
	assert.Equal(t, distribution.NormalConfig{Count: 100, Mean: 0, Std: 1}, distribution.DefaultNormalConfig())
	assert.Equal(t, distribution.LogNormalConfig{Count: 100, Mu: 0, Sigma: 0.5}, distribution.DefaultLogNormalConfig())
	assert.Equal(t, distribution.BetaConfig{Count: 100, Alpha: 2, Beta: 5}, distribution.DefaultBetaConfig())
	assert.Equal(t, distribution.MixtureConfig{
		Count:  100,
		Weight: 0.5,
		A:      distribution.Component{Mean: -1, Std: 0.5},
		B:      distribution.Component{Mean: 1, Std: 0.5},
	}, distribution.DefaultMixtureConfig())
}

func TestUniform(t *testing.T) {
	s := newSampler(2)
	cfg := distribution.UniformConfig{Count: largeN, Min: 3, Max: 7}
	xs, err := s.Uniform(cfg)
	require.NoError(t, err)

	for _, x := range xs {
		require.True(t, x >= cfg.Min && x < cfg.Max, "value %v outside [%v, %v)", x, cfg.Min, cfg.Max)
	}
	se := (cfg.Max - cfg.Min) / math.Sqrt(12*largeN)
	within(t, 5, stat.Mean(xs, nil), se, 5, "mean")
}

func TestUniform_OpenUpperBound(t *testing.T) {
	s := distribution.NewSampler(&sequenceSource{vals: []float64{math.Nextafter(1, 0)}})
	xs, err := s.Uniform(distribution.UniformConfig{Count: 3, Min: 0.1, Max: 0.3})
	require.NoError(t, err)
	for _, x := range xs {
		assert.Less(t, x, 0.3)
	}
}

func TestUniform_Degenerate(t *testing.T) {
	s := newSampler(3)
	xs, err := s.Uniform(distribution.UniformConfig{Count: 4, Min: 2, Max: 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2, 2}, xs)

	xs, err = s.Uniform(distribution.UniformConfig{Count: 2, Min: 5, Max: 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5}, xs)
}

func TestExponential(t *testing.T) {
	s := newSampler(4)
	const lambda = 2.5
	xs, err := s.Exponential(distribution.ExponentialConfig{Count: largeN, Lambda: lambda})
	require.NoError(t, err)

	for _, x := range xs {
		require.True(t, x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x), "bad value %v", x)
	}
	within(t, 1/lambda, stat.Mean(xs, nil), 1/(lambda*math.Sqrt(largeN)), 5, "mean")
}

func TestExponential_ZeroDraw(t *testing.T) {
	s := distribution.NewSampler(&sequenceSource{vals: []float64{0}})
	xs, err := s.Exponential(distribution.ExponentialConfig{Count: 1, Lambda: 1})
	require.NoError(t, err)
	assert.InDelta(t, 52*math.Ln2, xs[0], 1e-9)
}

func TestNormal(t *testing.T) {
	s := newSampler(5)
	const mean, std = -3.0, 2.0
	xs, err := s.Normal(distribution.NormalConfig{Count: largeN, Mean: mean, Std: std})
	require.NoError(t, err)

	m, sd := stat.MeanStdDev(xs, nil)
	within(t, mean, m, std/math.Sqrt(largeN), 5, "mean")
	within(t, std, sd, std/math.Sqrt(2*largeN), 5, "std")
	within(t, 0, stat.Skew(xs, nil), math.Sqrt(6.0/largeN), 5, "skewness")
	within(t, 0, stat.ExKurtosis(xs, nil), math.Sqrt(24.0/largeN), 5, "excess kurtosis")
}

func TestNormal_Pairs(t *testing.T) {
	// u1 = 0.5, u2 = 0.25 puts theta at pi/2.
	r := math.Sqrt(-2 * math.Log(0.5))

	s := distribution.NewSampler(&sequenceSource{vals: []float64{0.5, 0.25}})
	xs, err := s.Normal(distribution.NormalConfig{Count: 3, Mean: 1, Std: 2})
	require.NoError(t, err)
	require.Len(t, xs, 3)
	assert.InDelta(t, 1, xs[0], 1e-12)
	assert.InDelta(t, 1+2*r, xs[1], 1e-12)
	// odd count: the third value is the cosine half of a fresh pair
	assert.InDelta(t, 1, xs[2], 1e-12)
}

func TestLogNormal(t *testing.T) {
	s := newSampler(6)
	const mu, sigma = 0.3, 0.5
	xs, err := s.LogNormal(distribution.LogNormalConfig{Count: largeN, Mu: mu, Sigma: sigma})
	require.NoError(t, err)

	logs := make([]float64, len(xs))
	for i, x := range xs {
		require.Greater(t, x, 0.0)
		logs[i] = math.Log(x)
	}
	m, sd := stat.MeanStdDev(logs, nil)
	within(t, mu, m, sigma/math.Sqrt(largeN), 5, "mean of logs")
	within(t, sigma, sd, sigma/math.Sqrt(2*largeN), 5, "std of logs")
	within(t, 0, stat.Skew(logs, nil), math.Sqrt(6.0/largeN), 5, "skewness of logs")
}

func TestGamma(t *testing.T) {
	tests := []struct {
		name       string
		shape      float64
		scale      float64
		correction bool
		mean       float64
		variance   float64
	}{
		{name: "shape 2", shape: 2, scale: 1, mean: 2, variance: 2},
		{name: "shape 5 scale 2", shape: 5, scale: 2, mean: 10, variance: 20},
		{name: "shape 1", shape: 1, scale: 3, mean: 3, variance: 9},
		// without the correction a shape below one behaves like shape + 2/3
		{name: "small shape uncorrected", shape: 0.5, scale: 1, mean: 0.5 + 2.0/3, variance: 0.5 + 2.0/3},
		{name: "small shape corrected", shape: 0.5, scale: 1, correction: true, mean: 0.5, variance: 0.5},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSampler(uint64(100+i), distribution.WithGammaCorrection(tt.correction))
			xs, err := s.Gamma(distribution.GammaConfig{Count: largeN, Shape: tt.shape, Scale: tt.scale})
			require.NoError(t, err)
			for _, x := range xs {
				require.Greater(t, x, 0.0)
			}
			within(t, tt.mean, stat.Mean(xs, nil), math.Sqrt(tt.variance/largeN), 5, "mean")
		})
	}
}

func TestGamma_IterationCap(t *testing.T) {
	// u1 = 0 is clamped and u2 = 0.5 gives the most negative normal, so
	// every candidate is rejected before a uniform is drawn.
	m := distribution.NewMetrics()
	s := distribution.NewSampler(&sequenceSource{vals: []float64{0, 0.5}},
		distribution.WithMaxGammaIterations(5),
		distribution.WithMetrics(m))

	xs, err := s.Gamma(distribution.GammaConfig{Count: 2, Shape: 2, Scale: 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 6}, xs)
}

func TestBeta(t *testing.T) {
	s := newSampler(7)
	const alpha, beta = 2.0, 5.0
	xs, err := s.Beta(distribution.BetaConfig{Count: largeN, Alpha: alpha, Beta: beta})
	require.NoError(t, err)

	for _, x := range xs {
		require.True(t, x > 0 && x < 1, "value %v outside (0, 1)", x)
	}
	variance := alpha * beta / ((alpha + beta) * (alpha + beta) * (alpha + beta + 1))
	within(t, alpha/(alpha+beta), stat.Mean(xs, nil), math.Sqrt(variance/largeN), 5, "mean")
}

func TestBeta_Lopsided(t *testing.T) {
	s := newSampler(8)
	xs, err := s.Beta(distribution.BetaConfig{Count: 1000, Alpha: 1e6, Beta: 1e-3})
	require.NoError(t, err)
	for _, x := range xs {
		require.True(t, x > 0 && x < 1, "value %v outside (0, 1)", x)
	}
}

func TestBeta_TinyShapes(t *testing.T) {
	// Both corrected gamma draws underflow for most pairs; the ratio must
	// still come from Beta(0.001, 0.001), which piles up at the bounds.
	s := newSampler(1, distribution.WithGammaCorrection(true))
	xs, err := s.Beta(distribution.BetaConfig{Count: largeN, Alpha: 0.001, Beta: 0.001})
	require.NoError(t, err)

	var above int
	for _, x := range xs {
		require.True(t, x > 0 && x < 1, "value %v outside (0, 1)", x)
		require.NotEqual(t, 0.5, x)
		if x > 0.5 {
			above++
		}
	}
	assert.InDelta(t, 0.5, float64(above)/largeN, 0.02)
}

func TestSampler_NonFiniteOutput(t *testing.T) {
	m := distribution.NewMetrics()
	s := newSampler(12, distribution.WithMetrics(m))
	tests := []struct {
		name string
		op   string
		fn   func() ([]float64, error)
	}{
		{"lognormal overflow", "distribution.LogNormal", func() ([]float64, error) {
			return s.LogNormal(distribution.LogNormalConfig{Count: 4, Mu: 800, Sigma: 0.5})
		}},
		{"lognormal wide sigma", "distribution.LogNormal", func() ([]float64, error) {
			return s.LogNormal(distribution.LogNormalConfig{Count: 4, Mu: 0, Sigma: 100})
		}},
		{"normal overflow", "distribution.Normal", func() ([]float64, error) {
			return s.Normal(distribution.NormalConfig{Count: 4, Mean: 1e308, Std: 1e308})
		}},
		{"mixture component overflow", "distribution.Mixture", func() ([]float64, error) {
			cfg := distribution.DefaultMixtureConfig()
			cfg.A = distribution.Component{Mean: -1e308, Std: 1e308}
			return s.Mixture(cfg)
		}},
		{"exponential tiny lambda", "distribution.Exponential", func() ([]float64, error) {
			return s.Exponential(distribution.ExponentialConfig{Count: 4, Lambda: 1e-310})
		}},
		// gamma values are unbounded, so a huge scale is caught after sampling
		{"gamma huge scale", "distribution.Gamma", func() ([]float64, error) {
			return s.Gamma(distribution.GammaConfig{Count: 10, Shape: 2, Scale: math.MaxFloat64})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs, err := tt.fn()
			require.Error(t, err)
			assert.Nil(t, xs)
			assert.True(t, distribution.IsInvalidParameter(err), "got %v", err)
			assert.Equal(t, tt.op, errors2.ErrorOp(err))
		})
	}

	// Parameters close to the limits still sample.
	xs, err := s.LogNormal(distribution.LogNormalConfig{Count: 1000, Mu: 690, Sigma: 1})
	require.NoError(t, err)
	for _, x := range xs {
		require.False(t, math.IsInf(x, 0), "value %v", x)
	}
}

func TestMixtureCounts(t *testing.T) {
	tests := []struct {
		count  int
		weight float64
		a, b   int
	}{
		{count: 100, weight: 0.3, a: 30, b: 70},
		{count: 1, weight: 0.5, a: 1, b: 0}, // ties round up
		{count: 3, weight: 0.5, a: 2, b: 1},
		{count: 5, weight: 0.5, a: 3, b: 2},
		{count: 0, weight: 0.7, a: 0, b: 0},
		{count: 7, weight: 1, a: 7, b: 0},
		{count: 7, weight: 0, a: 0, b: 7},
		// the largest float64 below one half must not round up
		{count: 1, weight: 0.49999999999999994, a: 0, b: 1},
	}
	for _, tt := range tests {
		a, b := distribution.MixtureCounts(tt.count, tt.weight)
		assert.Equal(t, tt.a, a, "count=%d weight=%v", tt.count, tt.weight)
		assert.Equal(t, tt.b, b, "count=%d weight=%v", tt.count, tt.weight)
	}
}

func TestMixture_Grouping(t *testing.T) {
	s := newSampler(9)
	xs, err := s.Mixture(distribution.MixtureConfig{
		Count:  100,
		Weight: 0.3,
		A:      distribution.Component{Mean: -1, Std: 0.5},
		B:      distribution.Component{Mean: 1, Std: 0.5},
	})
	require.NoError(t, err)
	require.Len(t, xs, 100)
	for i, x := range xs[:30] {
		assert.InDelta(t, -1, x, 2.5, "index %d", i)
	}
	for i, x := range xs[30:] {
		assert.InDelta(t, 1, x, 2.5, "index %d", 30+i)
	}

	// Far apart components make the boundary exact.
	xs, err = s.Mixture(distribution.MixtureConfig{
		Count:  51,
		Weight: 0.5,
		A:      distribution.Component{Mean: -100, Std: 1},
		B:      distribution.Component{Mean: 100, Std: 1},
	})
	require.NoError(t, err)
	for i, x := range xs {
		if i < 26 {
			assert.Less(t, x, 0.0, "index %d", i)
		} else {
			assert.Greater(t, x, 0.0, "index %d", i)
		}
	}
}

func TestSampler_InvalidParameters(t *testing.T) {
	s := newSampler(10)
	tests := []struct {
		name string
		op   string
		fn   func() ([]float64, error)
	}{
		{"negative count", "distribution.Normal", func() ([]float64, error) {
			return s.Normal(distribution.NormalConfig{Count: -1, Std: 1})
		}},
		{"zero std", "distribution.Normal", func() ([]float64, error) {
			return s.Normal(distribution.NormalConfig{Count: 1, Std: 0})
		}},
		{"nan mean", "distribution.Normal", func() ([]float64, error) {
			return s.Normal(distribution.NormalConfig{Count: 1, Mean: math.NaN(), Std: 1})
		}},
		{"negative sigma", "distribution.LogNormal", func() ([]float64, error) {
			return s.LogNormal(distribution.LogNormalConfig{Count: 1, Sigma: -0.5})
		}},
		{"zero lambda", "distribution.Exponential", func() ([]float64, error) {
			return s.Exponential(distribution.ExponentialConfig{Count: 1})
		}},
		{"infinite lambda", "distribution.Exponential", func() ([]float64, error) {
			return s.Exponential(distribution.ExponentialConfig{Count: 1, Lambda: math.Inf(1)})
		}},
		{"infinite min", "distribution.Uniform", func() ([]float64, error) {
			return s.Uniform(distribution.UniformConfig{Count: 1, Min: math.Inf(-1), Max: 1})
		}},
		{"overflowing range", "distribution.Uniform", func() ([]float64, error) {
			return s.Uniform(distribution.UniformConfig{Count: 1, Min: -math.MaxFloat64, Max: math.MaxFloat64})
		}},
		{"zero alpha", "distribution.Beta", func() ([]float64, error) {
			return s.Beta(distribution.BetaConfig{Count: 1, Alpha: 0, Beta: 1})
		}},
		{"negative beta", "distribution.Beta", func() ([]float64, error) {
			return s.Beta(distribution.BetaConfig{Count: 1, Alpha: 1, Beta: -2})
		}},
		{"zero shape", "distribution.Gamma", func() ([]float64, error) {
			return s.Gamma(distribution.GammaConfig{Count: 1, Shape: 0, Scale: 1})
		}},
		{"zero scale", "distribution.Gamma", func() ([]float64, error) {
			return s.Gamma(distribution.GammaConfig{Count: 1, Shape: 1, Scale: 0})
		}},
		{"weight above one", "distribution.Mixture", func() ([]float64, error) {
			cfg := distribution.DefaultMixtureConfig()
			cfg.Weight = 1.5
			return s.Mixture(cfg)
		}},
		{"component std", "distribution.Mixture", func() ([]float64, error) {
			cfg := distribution.DefaultMixtureConfig()
			cfg.B.Std = 0
			return s.Mixture(cfg)
		}},
		{"unknown parameter", "distribution.Sample", func() ([]float64, error) {
			return s.Sample("normal", 1, map[string]float64{"stddev": 1})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs, err := tt.fn()
			require.Error(t, err)
			assert.Nil(t, xs)
			assert.True(t, distribution.IsInvalidParameter(err), "got %v", err)
			assert.Equal(t, tt.op, errors2.ErrorOp(err))
		})
	}
}

func TestSample_ByName(t *testing.T) {
	s := newSampler(11)

	xs, err := s.Sample("uniform", 1000, nil)
	require.NoError(t, err)
	for _, x := range xs {
		require.True(t, x >= -1 && x < 1)
	}

	xs, err = s.Sample("Uniform", 10, map[string]float64{"min": 10, "max": 11})
	require.NoError(t, err)
	for _, x := range xs {
		require.True(t, x >= 10 && x < 11)
	}

	_, err = s.Sample("cauchy", 10, nil)
	require.Error(t, err)
	assert.Equal(t, errors2.ENotFound, errors2.ErrorCode(err))
	assert.False(t, distribution.IsInvalidParameter(err))
}

func TestDescriptor_Resolve(t *testing.T) {
	d, err := distribution.Lookup("mixture")
	require.NoError(t, err)

	got, err := d.Resolve(map[string]float64{"weight": 0.3})
	require.NoError(t, err)
	want := map[string]float64{
		"weight": 0.3,
		"a-mean": -1,
		"a-std":  0.5,
		"b-mean": 1,
		"b-std":  0.5,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected params -want/+got:\n%s", diff)
	}

	require.NoError(t, d.Validate(10, nil))
	require.Error(t, d.Validate(10, map[string]float64{"weight": -1}))
}

func TestSampler_Reproducible(t *testing.T) {
	a, err := newSampler(42).Normal(distribution.DefaultNormalConfig())
	require.NoError(t, err)
	b, err := newSampler(42).Normal(distribution.DefaultNormalConfig())
	require.NoError(t, err)
	c, err := newSampler(43).Normal(distribution.DefaultNormalConfig())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGlobalSource(t *testing.T) {
	a, err := distribution.Beta(distribution.DefaultBetaConfig())
	require.NoError(t, err)
	b, err := distribution.Beta(distribution.DefaultBetaConfig())
	require.NoError(t, err)

	require.Len(t, a, 100)
	require.Len(t, b, 100)
	assert.NotEqual(t, a, b)

	for _, fn := range []func() ([]float64, error){
		func() ([]float64, error) { return distribution.Uniform(distribution.DefaultUniformConfig()) },
		func() ([]float64, error) { return distribution.Exponential(distribution.DefaultExponentialConfig()) },
		func() ([]float64, error) { return distribution.Normal(distribution.DefaultNormalConfig()) },
		func() ([]float64, error) { return distribution.LogNormal(distribution.DefaultLogNormalConfig()) },
		func() ([]float64, error) { return distribution.Mixture(distribution.DefaultMixtureConfig()) },
		func() ([]float64, error) { return distribution.Sample("gamma", 100, nil) },
	} {
		xs, err := fn()
		require.NoError(t, err)
		require.Len(t, xs, 100)
	}
}

func TestLockedSource(t *testing.T) {
	src := distribution.NewLockedSource(distribution.NewSource(12))
	s := distribution.NewSampler(src)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			xs, err := s.Uniform(distribution.UniformConfig{Count: 1000, Min: 0, Max: 1})
			if err != nil {
				errs <- err
				return
			}
			for _, x := range xs {
				if x < 0 || x >= 1 {
					errs <- assert.AnError
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
