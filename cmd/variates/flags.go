package main

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	errors2 "github.com/strata-av/variates/kit/platform/errors"
)

// seedFlag is an optional uint64 seed. When unset a seed is derived from
// the current time.
type seedFlag struct {
	set   bool
	value uint64
}

var _ pflag.Value = (*seedFlag)(nil)

func (s *seedFlag) String() string {
	if !s.set {
		return ""
	}
	return strconv.FormatUint(s.value, 10)
}

func (s *seedFlag) Set(v string) error {
	n, err := strconv.ParseUint(v, 0, 64)
	if err != nil {
		return errors2.Invalidf("seed", "seed must be an unsigned integer, got %q", v)
	}
	s.value, s.set = n, true
	return nil
}

func (s *seedFlag) Type() string { return "uint64" }

// Seed returns the configured seed, or fallback when none was given.
func (s *seedFlag) Seed(fallback func() uint64) uint64 {
	if s.set {
		return s.value
	}
	return fallback()
}

// parseParams converts key=value pairs into distribution parameters.
func parseParams(pairs []string) (map[string]float64, error) {
	const op = "parseParams"
	params := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errors2.Invalidf(op, "parameter %q must have the form name=value", pair)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, errors2.Invalidf(op, "parameter %s: %q is not a number", k, v)
		}
		if _, dup := params[k]; dup {
			return nil, errors2.Invalidf(op, "parameter %s given more than once", k)
		}
		params[k] = f
	}
	return params, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout when path is empty or "-", otherwise it creates
// the file at path.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors2.NewError(
			errors2.WithErrorCode(errors2.EInternal),
			errors2.WithErrorOp("openOutput"),
			errors2.WithErrorMsg("creating output file"),
			errors2.WithErrorErr(err))
	}
	return f, nil
}
