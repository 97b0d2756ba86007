package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/mensura/dataset"
	"github.com/arloliu/mensura/errs"
	"github.com/arloliu/mensura/regression"
	"github.com/arloliu/mensura/report"
)

var (
	regressYVariance float64
	regressModels    []string
)

var regressCmd = &cobra.Command{
	Use:   "regress <file>",
	Short: "Fit a line to two-column data",
	Long: `Fit y = intercept + slope*x by least squares and print the coefficients with
their uncertainties. With --models, also fit the named curve models
(linear, hyperbolic, logarithmic, power, exponential, or "all") and rank them
by R².`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, y, err := dataset.ReadPairsFile(args[0])
		if err != nil {
			return err
		}
		if len(x) < 3 {
			return fmt.Errorf("%w: %s has %d points, need at least 3", errs.ErrInsufficientSamples, args[0], len(x))
		}

		var opts []regression.Option[float64]
		if cmd.Flags().Changed("y-variance") {
			if regressYVariance < 0 || math.IsNaN(regressYVariance) {
				return fmt.Errorf("%w: --y-variance %v", errs.ErrNegativeVariance, regressYVariance)
			}
			opts = append(opts, regression.WithKnownVariance(regressYVariance))
		}

		types, err := parseModelTypes(regressModels)
		if err != nil {
			return err
		}

		w, err := report.NewWriter(cmd.OutOrStdout(), report.WithPrecision(cfg.Precision))
		if err != nil {
			return err
		}

		w.Header("regression of " + seriesName(args[0]))
		w.Fit(regression.FitSlices(x, y, opts...))

		if len(types) > 0 {
			sel, err := regression.SelectModel(x, y, types...)
			if err != nil {
				return err
			}
			w.Section("models")
			w.Selection(sel)
			log.Info("Best model for %s: %s", args[0], sel.BestFit.Type)
		}

		return w.Err()
	},
}

func init() {
	regressCmd.Flags().Float64Var(&regressYVariance, "y-variance", 0, "known variance of the y measurements (default: residual variance)")
	regressCmd.Flags().StringSliceVar(&regressModels, "models", nil, "curve models to compare (comma separated, or \"all\")")
}

func parseModelTypes(names []string) ([]regression.ModelType, error) {
	var types []regression.ModelType
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			return regression.AllModelTypes, nil
		}

		mt := regression.ModelTypeFromString(name)
		if mt < 0 {
			return nil, fmt.Errorf("unknown model %q", name)
		}
		types = append(types, mt)
	}

	return types, nil
}
