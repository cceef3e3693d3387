package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fjhzwl/gammapy/data"
)

// selectionSpec is the YAML form of an observation selection.
type selectionSpec struct {
	Type     string  `yaml:"type"` // sky_circle, time_box or par_box
	Inverted bool    `yaml:"inverted"`
	Frame    string  `yaml:"frame"`
	Lon      float64 `yaml:"lon"`
	Lat      float64 `yaml:"lat"`
	Radius   float64 `yaml:"radius"`
	Border   float64 `yaml:"border"`
	Start    string  `yaml:"start"`
	Stop     string  `yaml:"stop"`
	Variable string  `yaml:"variable"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Unit     string  `yaml:"unit"`
}

func (s selectionSpec) selection() (data.Selection, error) {
	switch s.Type {
	case "sky_circle":
		return data.SkyCircle{
			Frame:     s.Frame,
			LonDeg:    s.Lon,
			LatDeg:    s.Lat,
			RadiusDeg: s.Radius,
			BorderDeg: s.Border,
			Inverted:  s.Inverted,
		}, nil
	case "time_box":
		start, err := time.Parse(time.RFC3339, s.Start)
		if err != nil {
			return nil, fmt.Errorf("selection start: %w", err)
		}
		stop, err := time.Parse(time.RFC3339, s.Stop)
		if err != nil {
			return nil, fmt.Errorf("selection stop: %w", err)
		}
		return data.TimeBox{Start: start, Stop: stop, Inverted: s.Inverted}, nil
	case "par_box":
		return data.ParBox{
			Variable: s.Variable,
			Min:      s.Min,
			Max:      s.Max,
			Unit:     s.Unit,
			Inverted: s.Inverted,
		}, nil
	}
	return nil, fmt.Errorf("unknown selection type %q", s.Type)
}

func readSelection(path string) (data.Selection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec selectionSpec
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec.selection()
}

func obsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "obs",
		Short: "work with observation index tables",
	}

	var selFile, outFile string
	sel := &cobra.Command{
		Use:   "select <obs.ecsv>",
		Short: "select observations with a YAML selection file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := data.ReadObservationTable(args[0])
			if err != nil {
				return err
			}
			selection, err := readSelection(selFile)
			if err != nil {
				return err
			}
			out, err := obs.SelectObservations(selection)
			if err != nil {
				return err
			}
			logger.Debug("selection applied",
				zap.Int("in", obs.Len()), zap.Int("out", out.Len()))
			if outFile == "" {
				fmt.Fprint(cmd.OutOrStdout(), out.Summary())
				return nil
			}
			f, err := os.Create(outFile)
			if err != nil {
				return err
			}
			defer f.Close()
			return out.WriteECSV(f)
		},
	}
	sel.Flags().StringVarP(&selFile, "selection", "s", "",
		"YAML selection file")
	sel.Flags().StringVarP(&outFile, "out", "o", "",
		"write the selected table here instead of a summary")
	_ = sel.MarkFlagRequired("selection")

	check := &cobra.Command{
		Use:   "check <obs.ecsv>",
		Short: "validate an observation index table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			obs, err := data.ReadObservationTable(args[0])
			if err != nil {
				return err
			}
			recs := obs.Check()
			for _, r := range recs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", r.Level, r.HDU, r.Msg)
			}
			if len(recs) > 0 {
				return fmt.Errorf("%d findings", len(recs))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.AddCommand(sel, check)
	return cmd
}
