package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/strata-av/variates/distribution"
	"github.com/strata-av/variates/kit/cli"
	errors2 "github.com/strata-av/variates/kit/platform/errors"
	"github.com/strata-av/variates/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	rt := newRuntime(os.Stdout, os.Stderr)
	cmd, err := newRootCommand(ctx, viper.New(), rt)
	if err != nil {
		handleExecuteError(err)
	}
	if err := cmd.Execute(); err != nil {
		handleExecuteError(err)
	}
}

func handleExecuteError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(exitCode(err))
}

// exitCode is 2 for errors caused by the arguments and 1 otherwise.
func exitCode(err error) int {
	switch errors2.ErrorCode(err) {
	case "":
		return 0
	case errors2.EInvalid, errors2.EEmptyValue, errors2.ENotFound:
		return 2
	default:
		return 1
	}
}

// runtime carries the state shared by every subcommand.
type runtime struct {
	stdout io.Writer
	stderr io.Writer
	clock  clock.Clock

	logLevel     zapcore.Level
	logFormat    string
	printMetrics bool

	log     *zap.Logger
	reg     *prometheus.Registry
	metrics *distribution.Metrics
}

func newRuntime(stdout, stderr io.Writer) *runtime {
	m := distribution.NewMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(m.PrometheusCollectors()...)
	return &runtime{
		stdout:  stdout,
		stderr:  stderr,
		clock:   clock.New(),
		log:     zap.NewNop(),
		reg:     reg,
		metrics: m,
	}
}

func (rt *runtime) initLogger() error {
	conf := logger.NewConfig()
	conf.Level = rt.logLevel
	if rt.logFormat != "" {
		conf.Format = rt.logFormat
	}
	log, err := conf.New(rt.stderr)
	if err != nil {
		return err
	}
	rt.log = log
	return nil
}

// writeMetrics dumps the gathered metrics in the prometheus text format.
func (rt *runtime) writeMetrics(w io.Writer) error {
	mfs, err := rt.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func newRootCommand(ctx context.Context, v *viper.Viper, rt *runtime) (*cobra.Command, error) {
	prog := &cli.Program{
		Name: "variates",
		Run:  func() error { return nil },
		Opts: []cli.Opt{
			{
				DestP:      &rt.logLevel,
				Flag:       "log-level",
				Default:    zapcore.WarnLevel,
				Desc:       "supported log levels are debug, info, warn and error",
				Persistent: true,
			},
			{
				DestP:      &rt.logFormat,
				Flag:       "log-format",
				Default:    "auto",
				Desc:       "log output format: auto, console, logfmt or json",
				Persistent: true,
			},
			{
				DestP:      &rt.printMetrics,
				Flag:       "print-metrics",
				Desc:       "print sampler metrics to stderr before exiting",
				Persistent: true,
			},
		},
	}
	cmd, err := cli.NewCommand(v, prog)
	if err != nil {
		return nil, err
	}
	cmd.Short = "Draw random variates from common distributions"
	cmd.Long = `
Draw random variates from uniform, exponential, normal, log-normal, gamma,
beta and two component normal mixture distributions.

Configuration is read from flags, VARIATES_* environment variables and the
file named by VARIATES_CONFIG_PATH, in that order of precedence.
`
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetOut(rt.stdout)
	cmd.SetErr(rt.stderr)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	}
	cmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		return rt.initLogger()
	}
	cmd.PersistentPostRunE = func(*cobra.Command, []string) error {
		_ = rt.log.Sync()
		if !rt.printMetrics {
			return nil
		}
		return rt.writeMetrics(rt.stderr)
	}

	for _, newCmd := range []func(context.Context, *viper.Viper, *runtime) (*cobra.Command, error){
		newSampleCommand,
		newGenerateCommand,
		newDescribeCommand,
		newHelpSpecCommand,
	} {
		sub, err := newCmd(ctx, v, rt)
		if err != nil {
			return nil, err
		}
		cmd.AddCommand(sub)
	}

	return cmd, nil
}
