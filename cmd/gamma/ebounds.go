package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fjhzwl/gammapy/energy"
	"github.com/fjhzwl/gammapy/quantity"
)

func eboundsCmd() *cobra.Command {
	var emin, emax float64
	var bins int
	var perDecade bool
	cmd := &cobra.Command{
		Use:   "ebounds",
		Short: "print log spaced energy bin edges in TeV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			edges, err := energy.Logspace(
				quantity.TeV(emin), quantity.TeV(emax), bins, perDecade)
			if err != nil {
				return err
			}
			for _, e := range edges {
				fmt.Fprintf(cmd.OutOrStdout(), "%g\n", e.TeV())
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&emin, "emin", 0.1, "lower edge in TeV")
	cmd.Flags().Float64Var(&emax, "emax", 100, "upper edge in TeV")
	cmd.Flags().IntVar(&bins, "bins", 10, "number of edges")
	cmd.Flags().BoolVar(&perDecade, "per-decade", false,
		"interpret --bins as edges per decade")
	return cmd
}
