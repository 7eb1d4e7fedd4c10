package stats

import (
	"math"

	"github.com/strata-av/variates/distribution"
	"gonum.org/v1/gonum/stat/distuv"
)

// Distribution is a reference distribution a sample can be compared with.
type Distribution interface {
	CDF(x float64) float64
	Mean() float64
	StdDev() float64
}

// Reference returns the distribution that distribution.Sample(name, count,
// params) draws from, with defaults applied to missing params.
//
// Gamma shapes below one are only matched when correction is set; the
// uncorrected sampler draws from Gamma(shape + 2/3).
func Reference(name string, count int, params map[string]float64, correction bool) (Distribution, error) {
	d, err := distribution.Lookup(name)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(count, params); err != nil {
		return nil, err
	}
	p, err := d.Resolve(params)
	if err != nil {
		return nil, err
	}

	switch d.Name {
	case "uniform":
		if p["min"] >= p["max"] {
			return pointMass(p["min"]), nil
		}
		return distuv.Uniform{Min: p["min"], Max: p["max"]}, nil
	case "exponential":
		return distuv.Exponential{Rate: p["lambda"]}, nil
	case "normal":
		return distuv.Normal{Mu: p["mean"], Sigma: p["std"]}, nil
	case "lognormal":
		return distuv.LogNormal{Mu: p["mu"], Sigma: p["sigma"]}, nil
	case "beta":
		return distuv.Beta{
			Alpha: effectiveShape(p["alpha"], correction),
			Beta:  effectiveShape(p["beta"], correction),
		}, nil
	case "gamma":
		return distuv.Gamma{Alpha: effectiveShape(p["shape"], correction), Beta: 1 / p["scale"]}, nil
	case "mixture":
		a, _ := distribution.MixtureCounts(count, p["weight"])
		w := p["weight"]
		if count > 0 {
			w = float64(a) / float64(count)
		}
		return &Mixture{
			Weight: w,
			A:      distuv.Normal{Mu: p["a-mean"], Sigma: p["a-std"]},
			B:      distuv.Normal{Mu: p["b-mean"], Sigma: p["b-std"]},
		}, nil
	}
	panic("stats: no reference for " + d.Name)
}

func effectiveShape(shape float64, correction bool) float64 {
	if shape < 1 && !correction {
		return shape + 2.0/3
	}
	return shape
}

// Mixture is a two component normal mixture.
type Mixture struct {
	Weight float64
	A, B   distuv.Normal
}

// CDF returns the cumulative distribution at x.
func (m *Mixture) CDF(x float64) float64 {
	return m.Weight*m.A.CDF(x) + (1-m.Weight)*m.B.CDF(x)
}

// Mean returns the mixture mean.
func (m *Mixture) Mean() float64 {
	return m.Weight*m.A.Mu + (1-m.Weight)*m.B.Mu
}

// StdDev returns the mixture standard deviation.
func (m *Mixture) StdDev() float64 {
	mean := m.Mean()
	second := m.Weight*(m.A.Sigma*m.A.Sigma+m.A.Mu*m.A.Mu) +
		(1-m.Weight)*(m.B.Sigma*m.B.Sigma+m.B.Mu*m.B.Mu)
	return math.Sqrt(second - mean*mean)
}

type pointMass float64

func (p pointMass) CDF(x float64) float64 {
	if x < float64(p) {
		return 0
	}
	return 1
}

func (p pointMass) Mean() float64   { return float64(p) }
func (p pointMass) StdDev() float64 { return 0 }
