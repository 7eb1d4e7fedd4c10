/*
Package distribution draws random variates from a small set of named
probability distributions.

Every generator takes a parameter struct whose Default constructor carries the
documented defaults and returns a freshly allocated slice of exactly Count
values:

	Uniform      min + u*(max-min)
	Exponential  inverse CDF, -ln(u)/lambda
	Normal       Box-Muller, generated in pairs
	LogNormal    exp of a Box-Muller normal
	Beta         x/(x+y) from two Marsaglia-Tsang gamma draws
	Mixture      two normal components, A's draws followed by B's

The package level functions draw from GlobalSource. A Sampler binds the same
generators to a caller supplied Source, which is how reproducible sequences are
produced:

	s := distribution.NewSampler(distribution.NewSource(42))
	xs, err := s.Normal(distribution.DefaultNormalConfig())

Invalid parameters are reported as *errors.Error values with code EInvalid;
IsInvalidParameter tests for them.
*/
package distribution
