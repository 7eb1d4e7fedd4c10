package gen

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/strata-av/variates/distribution"
	errors2 "github.com/strata-av/variates/kit/platform/errors"
	"go.uber.org/multierr"
)

// Spec describes a collection of named sample sets.
type Spec struct {
	Title string   `toml:"title"`
	Seed  *uint64  `toml:"seed"`
	Time  TimeSpec `toml:"time"`
	Sets  []Set    `toml:"sets"`
}

// TimeSpec assigns timestamps to generated values for time series output.
type TimeSpec struct {
	Start    time.Time `toml:"start"`
	Interval duration  `toml:"interval"`
}

// Sequence returns the timestamp sequence described by t. A zero start
// time uses now truncated to the interval.
func (t TimeSpec) Sequence(now time.Time) TimeSequenceSpec {
	ts := TimeSequenceSpec{Start: t.Start, Delta: t.Interval.Duration}
	if ts.Delta <= 0 {
		ts.Delta = time.Second
	}
	if ts.Start.IsZero() {
		ts.Start = now.Truncate(ts.Delta)
	}
	return ts
}

// Set is a single named sample set.
type Set struct {
	Name            string             `toml:"name"`
	Distribution    string             `toml:"distribution"`
	Count           int                `toml:"count"`
	Seed            *uint64            `toml:"seed"`
	GammaCorrection bool               `toml:"gamma-correction"`
	Params          map[string]float64 `toml:"params"`
}

func (s *Set) String() string {
	keys := make([]string, 0, len(s.Params))
	for k := range s.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(strings.ToLower(s.Distribution))
	for _, k := range keys {
		fmt.Fprintf(&b, ", %s=%g", k, s.Params[k])
	}
	return b.String()
}

// NewSpecFromToml decodes a spec from TOML source and validates it.
func NewSpecFromToml(s string) (*Spec, error) {
	var spec Spec
	md, err := toml.Decode(s, &spec)
	if err != nil {
		return nil, &errors2.Error{Code: errors2.EInvalid, Op: "gen.NewSpecFromToml", Msg: "decoding spec", Err: err}
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors2.Invalidf("gen.NewSpecFromToml", "unknown keys in spec: %s", strings.Join(keys, ", "))
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// NewSpecFromPath reads and decodes the spec stored at p.
func NewSpecFromPath(p string) (*Spec, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, errors2.NewError(
			errors2.WithErrorCode(errors2.ENotFound),
			errors2.WithErrorOp("gen.NewSpecFromPath"),
			errors2.WithErrorMsg("reading spec"),
			errors2.WithErrorErr(err))
	}
	return NewSpecFromToml(string(data))
}

// Validate reports every problem found in the spec.
func (s *Spec) Validate() error {
	if len(s.Sets) == 0 {
		return &errors2.Error{Code: errors2.EEmptyValue, Op: "gen.Spec.Validate", Msg: "spec defines no sets"}
	}

	var err error
	if s.Time.Interval.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("time.interval must not be negative, got %s", s.Time.Interval.Duration))
	}

	seen := make(map[string]bool, len(s.Sets))
	for i := range s.Sets {
		set := &s.Sets[i]
		if set.Name == "" {
			err = multierr.Append(err, fmt.Errorf("set %d: name is required", i))
		} else if seen[set.Name] {
			err = multierr.Append(err, fmt.Errorf("set %d: duplicate name %q", i, set.Name))
		}
		seen[set.Name] = true

		d, lerr := distribution.Lookup(set.Distribution)
		if lerr != nil {
			err = multierr.Append(err, fmt.Errorf("set %q: %w", set.Name, lerr))
			continue
		}
		if verr := d.Validate(set.Count, set.Params); verr != nil {
			err = multierr.Append(err, fmt.Errorf("set %q: %w", set.Name, verr))
		}
	}

	if err != nil {
		return &errors2.Error{Code: errors2.EInvalid, Op: "gen.Spec.Validate", Msg: "invalid spec", Err: err}
	}
	return nil
}

// SeedFor returns the seed for the i'th set. An explicit set seed wins, then
// the spec seed offset by i, then base offset by i.
func (s *Spec) SeedFor(i int, base uint64) uint64 {
	if seed := s.Sets[i].Seed; seed != nil {
		return *seed
	}
	if s.Seed != nil {
		return *s.Seed + uint64(i)
	}
	return base + uint64(i)
}

// TotalCount returns the number of values the spec generates.
func (s *Spec) TotalCount() int {
	var n int
	for _, set := range s.Sets {
		n += set.Count
	}
	return n
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	s := string(text)

	var err error
	d.Duration, err = time.ParseDuration(s)
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
