package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fjhzwl/gammapy/catalog"
	"github.com/fjhzwl/gammapy/modeling/models"
)

// spectralModeler is satisfied by catalogs that can build a spectral
// model from a row.
type spectralModeler interface {
	SpectralModel(*catalog.Source) (models.SpectralModel, error)
}

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "browse source catalogs",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "list the known catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, tag := range catalog.Tags() {
				desc, err := catalog.Describe(tag)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", tag, desc)
			}
			return nil
		},
	}

	info := &cobra.Command{
		Use:   "info <tag>",
		Short: "describe one catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			b := c.Base()
			logger.Debug("catalog loaded", zap.String("tag", b.Tag),
				zap.Int("rows", b.Len()))
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%d sources\n", b.Name, b.Len())
			return nil
		},
	}

	get := &cobra.Command{
		Use:   "get <tag> <source>",
		Short: "show one source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := catalog.Load(args[0])
			if err != nil {
				return err
			}
			s, err := c.Base().Source(args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, s.Info())
			if sm, ok := c.(spectralModeler); ok {
				m, err := sm.SpectralModel(s)
				if err != nil {
					logger.Debug("no spectral model", zap.Error(err))
					return nil
				}
				fmt.Fprintf(out, "spectral model: %s\n", m.Tag())
				pars := m.Parameters()
				for i := 0; i < pars.Len(); i++ {
					fmt.Fprintf(out, "  %v\n", pars.At(i))
				}
			}
			return nil
		},
	}

	cmd.AddCommand(list, info, get)
	return cmd
}
