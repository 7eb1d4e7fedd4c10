package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/strata-av/variates/kit/cli"
	"github.com/strata-av/variates/logger"
	"github.com/strata-av/variates/pkg/data/encode"
	"github.com/strata-av/variates/pkg/data/gen"
	"go.uber.org/zap"
)

type generateFlags struct {
	printOnly   bool
	concurrency int
	format      string
	out         string
}

func newGenerateCommand(ctx context.Context, v *viper.Viper, rt *runtime) (*cobra.Command, error) {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate <spec.toml>",
		Short: "Generate named sample sets described by a TOML spec",
		Long: `
This command generates every sample set defined in a TOML spec file. Use the
help-spec subcommand to produce a TOML file to STDOUT, which includes
documentation describing the available options.

The plan is written to STDERR before generating, or to STDOUT with --print,
which exits without generating.
`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(ctx, rt, args[0], &flags)
		},
	}

	opts := []cli.Opt{
		{
			DestP: &flags.printOnly,
			Flag:  "print",
			Desc:  "print the plan and exit",
		},
		{
			DestP: &flags.concurrency,
			Flag:  "concurrency",
			Desc:  "number of sets generated at once; 0 uses GOMAXPROCS",
		},
		{
			DestP:   &flags.format,
			Flag:    "format",
			Short:   'f',
			Default: encode.FormatPlain,
			Desc:    "output format: " + strings.Join(encode.Formats(), ", "),
		},
		{
			DestP: &flags.out,
			Flag:  "out",
			Short: 'o',
			Desc:  "write values to this file instead of stdout",
		},
	}
	if err := cli.BindOptions(v, cmd, opts); err != nil {
		return nil, err
	}
	return cmd, nil
}

func runGenerate(ctx context.Context, rt *runtime, path string, flags *generateFlags) error {
	spec, err := gen.NewSpecFromPath(path)
	if err != nil {
		return err
	}

	plan := &gen.Plan{Spec: spec}
	if flags.printOnly {
		plan.PrintPlan(rt.stdout)
		return nil
	}
	plan.PrintPlan(rt.stderr)

	enc, err := encode.NewEncoder(flags.format, spec.Time.Sequence(rt.clock.Now()))
	if err != nil {
		return err
	}

	g := &gen.Generator{
		Concurrency: flags.concurrency,
		Metrics:     rt.metrics,
		Clock:       rt.clock,
	}
	start := rt.clock.Now()
	results, err := g.Run(logger.NewContextWithLogger(ctx, rt.log), spec)
	if err != nil {
		return err
	}
	rt.log.Info("Generated spec",
		zap.String("spec", path),
		zap.Int("sets", len(results)),
		zap.Int("values", spec.TotalCount()),
		zap.Duration("elapsed", rt.clock.Now().Sub(start)))

	w, err := openOutput(flags.out, rt.stdout)
	if err != nil {
		return err
	}
	if err := enc.Encode(w, results); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
