package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/strata-av/variates/pkg/data/gen"
)

func newHelpSpecCommand(_ context.Context, _ *viper.Viper, rt *runtime) (*cobra.Command, error) {
	return &cobra.Command{
		Use:   "help-spec",
		Short: "Print a documented TOML spec to STDOUT",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprint(rt.stdout, gen.DefaultSpecTOML)
			return err
		},
	}, nil
}
