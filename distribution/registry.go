package distribution

import (
	"sort"
	"strings"

	errors2 "github.com/strata-av/variates/kit/platform/errors"
)

// Param describes a named distribution parameter.
type Param struct {
	Name    string
	Default float64
	Desc    string
}

// Descriptor describes a distribution that can be sampled by name.
type Descriptor struct {
	Name   string
	Desc   string
	Params []Param

	sample func(s *Sampler, count int, p map[string]float64) ([]float64, error)
}

// Resolve returns params with every missing parameter set to its default.
// Unknown parameter names are rejected.
func (d *Descriptor) Resolve(params map[string]float64) (map[string]float64, error) {
	resolved := make(map[string]float64, len(d.Params))
	for _, p := range d.Params {
		resolved[p.Name] = p.Default
	}
	for k, v := range params {
		if _, ok := resolved[k]; !ok {
			return nil, invalidParameter("distribution.Sample", "unknown parameter %q for %s; expected one of %s",
				k, d.Name, strings.Join(d.paramNames(), ", "))
		}
		resolved[k] = v
	}
	return resolved, nil
}

// Validate reports whether count and params can be sampled.
func (d *Descriptor) Validate(count int, params map[string]float64) error {
	p, err := d.Resolve(params)
	if err != nil {
		return err
	}
	return d.config(count, p).Validate()
}

func (d *Descriptor) paramNames() []string {
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Name
	}
	return names
}

func (d *Descriptor) config(count int, p map[string]float64) interface{ Validate() error } {
	switch d.Name {
	case "uniform":
		return UniformConfig{Count: count, Min: p["min"], Max: p["max"]}
	case "exponential":
		return ExponentialConfig{Count: count, Lambda: p["lambda"]}
	case "normal":
		return NormalConfig{Count: count, Mean: p["mean"], Std: p["std"]}
	case "lognormal":
		return LogNormalConfig{Count: count, Mu: p["mu"], Sigma: p["sigma"]}
	case "beta":
		return BetaConfig{Count: count, Alpha: p["alpha"], Beta: p["beta"]}
	case "gamma":
		return GammaConfig{Count: count, Shape: p["shape"], Scale: p["scale"]}
	case "mixture":
		return mixtureConfig(count, p)
	}
	panic("distribution: unhandled descriptor " + d.Name)
}

func mixtureConfig(count int, p map[string]float64) MixtureConfig {
	return MixtureConfig{
		Count:  count,
		Weight: p["weight"],
		A:      Component{Mean: p["a-mean"], Std: p["a-std"]},
		B:      Component{Mean: p["b-mean"], Std: p["b-std"]},
	}
}

var descriptors = map[string]*Descriptor{
	"uniform": {
		Name: "uniform",
		Desc: "continuous uniform on [min, max)",
		Params: []Param{
			{Name: "min", Default: -1, Desc: "inclusive lower bound"},
			{Name: "max", Default: 1, Desc: "exclusive upper bound"},
		},
		sample: func(s *Sampler, count int, p map[string]float64) ([]float64, error) {
			return s.Uniform(UniformConfig{Count: count, Min: p["min"], Max: p["max"]})
		},
	},
	"exponential": {
		Name: "exponential",
		Desc: "exponential with rate lambda",
		Params: []Param{
			{Name: "lambda", Default: 1.0, Desc: "rate, greater than zero"},
		},
		sample: func(s *Sampler, count int, p map[string]float64) ([]float64, error) {
			return s.Exponential(ExponentialConfig{Count: count, Lambda: p["lambda"]})
		},
	},
	"normal": {
		Name: "normal",
		Desc: "normal (Box-Muller)",
		Params: []Param{
			{Name: "mean", Default: 0, Desc: "mean"},
			{Name: "std", Default: 1, Desc: "standard deviation, greater than zero"},
		},
		sample: func(s *Sampler, count int, p map[string]float64) ([]float64, error) {
			return s.Normal(NormalConfig{Count: count, Mean: p["mean"], Std: p["std"]})
		},
	},
	"lognormal": {
		Name: "lognormal",
		Desc: "log-normal, exp of a normal draw",
		Params: []Param{
			{Name: "mu", Default: 0, Desc: "mean of the underlying normal"},
			{Name: "sigma", Default: 0.5, Desc: "standard deviation of the underlying normal"},
		},
		sample: func(s *Sampler, count int, p map[string]float64) ([]float64, error) {
			return s.LogNormal(LogNormalConfig{Count: count, Mu: p["mu"], Sigma: p["sigma"]})
		},
	},
	"beta": {
		Name: "beta",
		Desc: "beta from two gamma draws",
		Params: []Param{
			{Name: "alpha", Default: 2, Desc: "first shape, greater than zero"},
			{Name: "beta", Default: 5, Desc: "second shape, greater than zero"},
		},
		sample: func(s *Sampler, count int, p map[string]float64) ([]float64, error) {
			return s.Beta(BetaConfig{Count: count, Alpha: p["alpha"], Beta: p["beta"]})
		},
	},
	"gamma": {
		Name: "gamma",
		Desc: "gamma (Marsaglia-Tsang)",
		Params: []Param{
			{Name: "shape", Default: 2, Desc: "shape, greater than zero"},
			{Name: "scale", Default: 1, Desc: "scale, greater than zero"},
		},
		sample: func(s *Sampler, count int, p map[string]float64) ([]float64, error) {
			return s.Gamma(GammaConfig{Count: count, Shape: p["shape"], Scale: p["scale"]})
		},
	},
	"mixture": {
		Name: "mixture",
		Desc: "two component normal mixture, A's draws first",
		Params: []Param{
			{Name: "weight", Default: 0.5, Desc: "share of draws from component A, within [0, 1]"},
			{Name: "a-mean", Default: -1, Desc: "mean of component A"},
			{Name: "a-std", Default: 0.5, Desc: "standard deviation of component A"},
			{Name: "b-mean", Default: 1, Desc: "mean of component B"},
			{Name: "b-std", Default: 0.5, Desc: "standard deviation of component B"},
		},
		sample: func(s *Sampler, count int, p map[string]float64) ([]float64, error) {
			return s.Mixture(mixtureConfig(count, p))
		},
	},
}

// Names returns the names accepted by Sample, sorted.
func Names() []string {
	names := make([]string, 0, len(descriptors))
	for name := range descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the descriptor for name.
func Lookup(name string) (*Descriptor, error) {
	d, ok := descriptors[strings.ToLower(name)]
	if !ok {
		return nil, &errors2.Error{
			Code: errors2.ENotFound,
			Op:   "distribution.Lookup",
			Msg:  "unknown distribution " + name + "; expected one of " + strings.Join(Names(), ", "),
		}
	}
	return d, nil
}

// Sample draws count values from the distribution called name. Parameters
// missing from params take their documented defaults.
func (s *Sampler) Sample(name string, count int, params map[string]float64) ([]float64, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	p, err := d.Resolve(params)
	if err != nil {
		return s.done(d.Name, nil, err)
	}
	return d.sample(s, count, p)
}

// Sample draws from GlobalSource. See Sampler.Sample.
func Sample(name string, count int, params map[string]float64) ([]float64, error) {
	return defaultSampler.Sample(name, count, params)
}
