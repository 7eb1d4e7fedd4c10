package gen_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/go-cmp/cmp"
	"github.com/strata-av/variates/distribution"
	errors2 "github.com/strata-av/variates/kit/platform/errors"
	"github.com/strata-av/variates/kit/prom/promtest"
	"github.com/strata-av/variates/logger"
	"github.com/strata-av/variates/pkg/data/gen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func uint64p(v uint64) *uint64 { return &v }

func TestNewSpecFromToml_Default(t *testing.T) {
	spec, err := gen.NewSpecFromToml(gen.DefaultSpecTOML)
	require.NoError(t, err)

	assert.Equal(t, "Documented sample spec", spec.Title)
	require.NotNil(t, spec.Seed)
	assert.Equal(t, uint64(42), *spec.Seed)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), spec.Time.Start.UTC())
	assert.Equal(t, time.Second, spec.Time.Interval.Duration)
	require.Len(t, spec.Sets, 5)

	layers := spec.Sets[4]
	want := gen.Set{
		Name:         "layers",
		Distribution: "mixture",
		Count:        100,
		Params: map[string]float64{
			"weight": 0.3,
			"a-mean": -1,
			"a-std":  0.5,
			"b-mean": 1,
			"b-std":  0.5,
		},
	}
	if diff := cmp.Diff(want, layers); diff != "" {
		t.Fatalf("unexpected set -want/+got:\n%s", diff)
	}

	require.NotNil(t, spec.Sets[3].Seed)
	assert.Equal(t, uint64(7), *spec.Sets[3].Seed)
	assert.Equal(t, 3100, spec.TotalCount())
}

func TestNewSpecFromToml_Invalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
		code string
		msgs []string
	}{
		{
			name: "no sets",
			toml: `title = "empty"`,
			code: errors2.EEmptyValue,
		},
		{
			name: "syntax",
			toml: `title = `,
			code: errors2.EInvalid,
		},
		{
			name: "unknown key",
			toml: `
[[sets]]
name = "a"
distribution = "normal"
count = 1
colour = "red"
`,
			code: errors2.EInvalid,
			msgs: []string{"sets.colour"},
		},
		{
			name: "every problem is reported",
			toml: `
[time]
interval = "-1s"

[[sets]]
name = "a"
distribution = "normal"
count = -1

[[sets]]
name = "a"
distribution = "cauchy"
count = 1

[[sets]]
distribution = "beta"
count = 1
[sets.params]
alpha = 0

[[sets]]
name = "d"
distribution = "uniform"
count = 1
[sets.params]
low = 0
`,
			code: errors2.EInvalid,
			msgs: []string{
				"time.interval must not be negative",
				`set "a": count must not be negative`,
				`duplicate name "a"`,
				"unknown distribution cauchy",
				"set 2: name is required",
				"alpha must be greater than zero",
				`unknown parameter "low"`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.NewSpecFromToml(tt.toml)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors2.ErrorCode(err))
			for _, msg := range tt.msgs {
				assert.Contains(t, err.Error(), msg)
			}
		})
	}
}

func TestNewSpecFromPath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "spec.toml")
	require.NoError(t, os.WriteFile(p, []byte(gen.DefaultSpecTOML), 0600))

	spec, err := gen.NewSpecFromPath(p)
	require.NoError(t, err)
	require.Len(t, spec.Sets, 5)

	_, err = gen.NewSpecFromPath(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.Equal(t, errors2.ENotFound, errors2.ErrorCode(err))
}

func TestSpec_SeedFor(t *testing.T) {
	spec := &gen.Spec{
		Sets: []gen.Set{{Name: "a"}, {Name: "b", Seed: uint64p(99)}, {Name: "c"}},
	}
	assert.Equal(t, uint64(1000), spec.SeedFor(0, 1000))
	assert.Equal(t, uint64(99), spec.SeedFor(1, 1000))
	assert.Equal(t, uint64(1002), spec.SeedFor(2, 1000))

	spec.Seed = uint64p(5)
	assert.Equal(t, uint64(5), spec.SeedFor(0, 1000))
	assert.Equal(t, uint64(99), spec.SeedFor(1, 1000))
	assert.Equal(t, uint64(7), spec.SeedFor(2, 1000))
}

func TestGenerator_Run(t *testing.T) {
	spec, err := gen.NewSpecFromToml(gen.DefaultSpecTOML)
	require.NoError(t, err)

	m := distribution.NewMetrics()
	reg := promtest.NewRegistry(t, m.PrometheusCollectors()...)

	g := &gen.Generator{Concurrency: 2, Logger: zaptest.NewLogger(t), Metrics: m}
	results, err := g.Run(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, results, len(spec.Sets))

	for i, r := range results {
		assert.Equal(t, spec.Sets[i].Name, r.Set.Name)
		assert.Len(t, r.Values, spec.Sets[i].Count)
		assert.Equal(t, spec.SeedFor(i, 0), r.Seed)
	}

	// the density set carries its own seed
	s := distribution.NewSampler(distribution.NewSource(7))
	want, err := s.Beta(distribution.BetaConfig{Count: 500, Alpha: 2, Beta: 5})
	require.NoError(t, err)
	assert.Equal(t, want, results[3].Values)

	assert.Equal(t, 1000.0, promtest.CounterValue(t, reg, "variates_sampler_samples_total", map[string]string{"distribution": "normal"}))
}

func TestGenerator_Reproducible(t *testing.T) {
	spec, err := gen.NewSpecFromToml(gen.DefaultSpecTOML)
	require.NoError(t, err)

	serial, err := (&gen.Generator{Concurrency: 1}).Run(context.Background(), spec)
	require.NoError(t, err)
	parallel, err := (&gen.Generator{Concurrency: 8}).Run(context.Background(), spec)
	require.NoError(t, err)

	if diff := cmp.Diff(serial, parallel); diff != "" {
		t.Fatalf("results differ -serial/+parallel:\n%s", diff)
	}
}

func TestGenerator_DerivedSeeds(t *testing.T) {
	spec := &gen.Spec{Sets: []gen.Set{
		{Name: "a", Distribution: "normal", Count: 3},
		{Name: "b", Distribution: "normal", Count: 3},
	}}
	clk := clock.NewMock()
	clk.Add(500 * time.Nanosecond)
	g := &gen.Generator{Clock: clk}

	results, err := g.Run(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), results[0].Seed)
	assert.Equal(t, uint64(501), results[1].Seed)
	assert.NotEqual(t, results[0].Values, results[1].Values)
}

func TestGenerator_ContextLoggerAndClock(t *testing.T) {
	spec := &gen.Spec{Sets: []gen.Set{
		{Name: "a", Distribution: "uniform", Count: 5, Seed: uint64p(1)},
		{Name: "b", Distribution: "beta", Count: 5, Seed: uint64p(2)},
	}}
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.NewContextWithLogger(context.Background(), zap.New(core))

	// The mock clock never advances, so every set takes no time.
	g := &gen.Generator{Clock: clock.NewMock()}
	_, err := g.Run(ctx, spec)
	require.NoError(t, err)

	entries := logs.FilterMessage("Generated set").All()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, time.Duration(0), e.ContextMap()["elapsed"])
	}
}

func TestGenerator_Cancelled(t *testing.T) {
	spec, err := gen.NewSpecFromToml(gen.DefaultSpecTOML)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = (&gen.Generator{Concurrency: 1}).Run(ctx, spec)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPlan(t *testing.T) {
	spec, err := gen.NewSpecFromToml(gen.DefaultSpecTOML)
	require.NoError(t, err)

	out := (&gen.Plan{Spec: spec}).String()
	for _, want := range []string{
		"Documented sample spec",
		"Total values",
		"3,100",
		"layers",
		"mixture, a-mean=-1, a-std=0.5, b-mean=1, b-std=0.5, weight=0.3",
	} {
		assert.True(t, strings.Contains(out, want), "plan missing %q:\n%s", want, out)
	}
}

func TestTimeSpec_Sequence(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC)

	ts := gen.TimeSpec{}.Sequence(now)
	assert.Equal(t, time.Second, ts.Delta)
	assert.Equal(t, now.Truncate(time.Second), ts.Start)
	assert.Equal(t, ts.Start.Add(3*time.Second), ts.Timestamp(3))

	tr := ts.TimeRange(4)
	assert.Equal(t, ts.Start, tr.Start)
	assert.Equal(t, ts.Start.Add(3*time.Second), tr.End)
}
