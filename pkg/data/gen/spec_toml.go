package gen

// DefaultSpecTOML is a documented example spec, printed by `variates help-spec`.
const DefaultSpecTOML = `
title = "Documented sample spec"

# seed is optional. When present, set i is seeded with seed + i unless the set
# declares its own seed, and the output is reproducible. When absent, seeds are
# derived from the current time and reported in debug logs.
seed = 42

# time assigns timestamps to values for line protocol output. Value i of every
# set is stamped start + i * interval.
[time]
start = 2026-01-01T00:00:00Z
interval = "1s"

# Each [[sets]] table describes one named sample set.
#
#   name              unique name of the set
#   distribution      one of beta, exponential, gamma, lognormal, mixture,
#                     normal, uniform
#   count             number of values to draw
#   seed              optional explicit seed for this set
#   gamma-correction  apply the u^(1/shape) correction for gamma shapes below
#                     one; affects beta and gamma sets only
#   [sets.params]     distribution parameters; missing ones take defaults
#
# Parameters and defaults:
#
#   uniform      min = -1, max = 1
#   exponential  lambda = 1
#   normal       mean = 0, std = 1
#   lognormal    mu = 0, sigma = 0.5
#   beta         alpha = 2, beta = 5
#   gamma        shape = 2, scale = 1
#   mixture      weight = 0.5, a-mean = -1, a-std = 0.5, b-mean = 1, b-std = 0.5

[[sets]]
name = "altitude"
distribution = "normal"
count = 1000
[sets.params]
mean = 0
std = 1

[[sets]]
name = "drift"
distribution = "uniform"
count = 1000
[sets.params]
min = -1
max = 1

[[sets]]
name = "gaps"
distribution = "exponential"
count = 500
[sets.params]
lambda = 2.0

[[sets]]
name = "density"
distribution = "beta"
count = 500
seed = 7
[sets.params]
alpha = 2
beta = 5

[[sets]]
name = "layers"
distribution = "mixture"
count = 100
[sets.params]
weight = 0.3
a-mean = -1
a-std = 0.5
b-mean = 1
b-std = 0.5
`
