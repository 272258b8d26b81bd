package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"StockSandbox/internal/collector"
	"StockSandbox/internal/model"
	"StockSandbox/internal/notifier"
	"StockSandbox/internal/recorder"
	"StockSandbox/internal/strategy"
)

var (
	genPeriod string
	genSeed   int64
	genJSON   bool
	genPoints bool
)

var generateCmd = &cobra.Command{
	Use:   "generate SYMBOL",
	Short: "Generate one series and print its summary",
	Example: `  sandbox generate AAPL --period 3months
  sandbox generate TSLA --period 1year --seed 42 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&genPeriod, "period", "p", "", "window: 1week, 1month, 3months, 1year (default from config)")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "fixed random seed for a repeatable series")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "print the full result as JSON")
	generateCmd.Flags().BoolVar(&genPoints, "points", false, "also print every point with its moving averages")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	period := genPeriod
	if period == "" {
		period = a.cfg.Generator.DefaultPeriod
	}
	window, err := model.ParseWindow(period)
	if err != nil {
		return err
	}

	src := a.source
	if genSeed != 0 {
		src = src.Seeded(genSeed)
	}
	res, err := collector.NewCollector(src, a.logger).Collect(cmd.Context(), model.SeriesRequest{Symbol: args[0], Window: window})
	if err != nil {
		return fmt.Errorf("generate %s: %w", args[0], err)
	}
	if err := a.recorder.RecordRun(recorder.NewSeriesRun(recorder.TriggerCLI, res)); err != nil {
		a.logger.Error().Err(err).Msg("record run")
	}

	out := cmd.OutOrStdout()
	trend := strategy.Classify(res.Stats)
	if genJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			*model.SeriesResult
			Trend model.TrendSignal `json:"trend"`
		}{res, trend})
	}

	fmt.Fprint(out, notifier.FormatSummary(res, trend))
	if genPoints {
		fmt.Fprintln(out)
		fmt.Fprint(out, notifier.FormatPoints(res))
	}
	return nil
}
