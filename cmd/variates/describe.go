package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/strata-av/variates/distribution"
	"github.com/strata-av/variates/kit/cli"
	errors2 "github.com/strata-av/variates/kit/platform/errors"
	"github.com/strata-av/variates/stats"
	"go.uber.org/zap"
)

type describeFlags struct {
	count           int
	params          []string
	seed            seedFlag
	gammaCorrection bool
	alpha           float64
}

func newDescribeCommand(_ context.Context, v *viper.Viper, rt *runtime) (*cobra.Command, error) {
	var flags describeFlags

	cmd := &cobra.Command{
		Use:   "describe [distribution]",
		Short: "Summarise a sample and test it against its reference distribution",
		Long: `
Without arguments, list the distributions and their parameters.

With a distribution, draw --count values, print their moments and quantiles,
and compare the sample with the reference distribution using a one sample
Kolmogorov-Smirnov test.
`,
		ValidArgs: distribution.Names(),
		Args:      cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return printDistributions(rt.stdout)
			}
			return runDescribe(rt, args[0], &flags)
		},
	}

	opts := []cli.Opt{
		{
			DestP:   &flags.count,
			Flag:    "count",
			Short:   'n',
			Default: 10000,
			Desc:    "number of values to draw",
		},
		{
			DestP: &flags.params,
			Flag:  "param",
			Short: 'p',
			Desc:  "distribution parameter as name=value; may be repeated",
		},
		{
			DestP: &flags.seed,
			Flag:  "seed",
			Desc:  "seed for reproducible output; derived from the clock when unset",
		},
		{
			DestP: &flags.gammaCorrection,
			Flag:  "gamma-correction",
			Desc:  "apply the small shape correction to gamma and beta draws",
		},
		{
			DestP:   &flags.alpha,
			Flag:    "alpha",
			Default: 0.01,
			Desc:    "significance level of the goodness of fit test",
		},
	}
	if err := cli.BindOptions(v, cmd, opts); err != nil {
		return nil, err
	}
	return cmd, nil
}

func printDistributions(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DISTRIBUTION\tPARAMETER\tDEFAULT\tDESCRIPTION")
	for _, name := range distribution.Names() {
		d, err := distribution.Lookup(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t\t\t%s\n", d.Name, d.Desc)
		for _, p := range d.Params {
			fmt.Fprintf(tw, "\t%s\t%g\t%s\n", p.Name, p.Default, p.Desc)
		}
	}
	return tw.Flush()
}

func runDescribe(rt *runtime, name string, flags *describeFlags) error {
	if flags.alpha <= 0 || flags.alpha >= 1 {
		return errors2.Invalidf("describe", "alpha must be within (0, 1), got %v", flags.alpha)
	}
	params, err := parseParams(flags.params)
	if err != nil {
		return err
	}
	ref, err := stats.Reference(name, flags.count, params, flags.gammaCorrection)
	if err != nil {
		return err
	}

	seed := flags.seed.Seed(func() uint64 { return uint64(rt.clock.Now().UnixNano()) })
	s := distribution.NewSampler(distribution.NewSource(seed),
		distribution.WithLogger(rt.log.With(zap.String("distribution", name), zap.Uint64("seed", seed))),
		distribution.WithMetrics(rt.metrics),
		distribution.WithGammaCorrection(flags.gammaCorrection))
	values, err := s.Sample(name, flags.count, params)
	if err != nil {
		return err
	}

	summary, err := stats.Summarize(values)
	if err != nil {
		return err
	}
	ks, err := stats.KolmogorovSmirnov(values, ref.CDF)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(rt.stdout, 20, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Distribution\t%s\n", name)
	fmt.Fprintf(tw, "Seed\t%d\n", seed)
	fmt.Fprintf(tw, "Expected mean\t%.6g\n", ref.Mean())
	fmt.Fprintf(tw, "Expected std dev\t%.6g\n", ref.StdDev())
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(rt.stdout)
	if err := summary.PrintSummary(rt.stdout); err != nil {
		return err
	}
	fmt.Fprintln(rt.stdout)

	verdict := "consistent with reference"
	if ks.Reject(flags.alpha) {
		verdict = "differs from reference"
	}
	tw = tabwriter.NewWriter(rt.stdout, 20, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "KS statistic\t%.6g\n", ks.D)
	fmt.Fprintf(tw, "KS p-value\t%.6g\n", ks.P)
	fmt.Fprintf(tw, "Verdict\t%s at alpha=%g\n", verdict, flags.alpha)
	return tw.Flush()
}
