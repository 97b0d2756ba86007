package main

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/mensura/report"
	"github.com/arloliu/mensura/sample"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <files...>",
	Short: "Print descriptive statistics of measurement series",
	Long: `Print count, mean, standard deviation, standard error of the mean, range,
skewness and kurtosis of every series. Text files hold one series of
whitespace-separated numbers; .msr files may hold many.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		series, err := loadAllSeries(args)
		if err != nil {
			return err
		}

		w, err := report.NewWriter(cmd.OutOrStdout(), report.WithPrecision(cfg.Precision))
		if err != nil {
			return err
		}

		rows := make([]report.NamedSummary, 0, len(series))
		for _, s := range series {
			rows = append(rows, report.NamedSummary{Name: s.Name, Summary: sample.AnalyzeSlice(s.Values)})
		}

		w.Header("summary")
		w.Summaries(rows)
		log.Info("Summarized %d series (run %s)", len(rows), w.RunID())

		return w.Err()
	},
}
