package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"budget-control/internal/config"
	"budget-control/internal/forecast"
	"budget-control/internal/model"
	"budget-control/internal/report"
)

var (
	historyValues string
	historyFile   string
	horizon       int
	cycle         int
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Fit a linear sales trend and forecast the next periods",
	Example: `  budget trend --values 120,135,115,150,160,155 --horizon 2
  budget trend --series data/sales.csv`,
	RunE: runTrend,
}

var seasonalityCmd = &cobra.Command{
	Use:     "seasonality",
	Short:   "Compute seasonal coefficients of a history",
	Example: `  budget seasonality --values 100,130,90,110,120,150,105,125 --cycle 4`,
	RunE:    runSeasonality,
}

var budgetCmd = &cobra.Command{
	Use:     "budget",
	Short:   "Build a seasonally adjusted sales budget",
	Example: `  budget budget --values 100,130,90,110,120,150,105,125 --cycle 4 --horizon 4`,
	RunE:    runBudget,
}

func init() {
	for _, c := range []*cobra.Command{trendCmd, seasonalityCmd, budgetCmd} {
		c.Flags().StringVar(&historyValues, "values", "", "comma-separated history, one value per period")
		c.Flags().StringVar(&historyFile, "series", "", "series file (.json or .csv)")
		rootCmd.AddCommand(c)
	}
	trendCmd.Flags().IntVar(&horizon, "horizon", 0, "periods to forecast (default: scenario horizon)")
	budgetCmd.Flags().IntVar(&horizon, "horizon", 0, "periods to budget (default: scenario horizon, else cycle)")
	seasonalityCmd.Flags().IntVar(&cycle, "cycle", 0, "seasons per cycle (default: scenario cycle, else 4)")
	budgetCmd.Flags().IntVar(&cycle, "cycle", 0, "seasons per cycle (default: scenario cycle, else 4)")
}

// planning returns cycle and horizon with scenario and built-in fallbacks.
// A budget with no horizon covers one full cycle.
func planning(cfg *config.Config, budget bool) (int, int) {
	c, h := cycle, horizon
	if cfg != nil {
		if c == 0 {
			c = cfg.Seasonality.Cycle
		}
		if h == 0 {
			h = cfg.Trend.Horizon
		}
	}
	if c == 0 {
		c = 4
	}
	if h == 0 && budget {
		h = c
	}
	return c, h
}

func runTrend(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}
	series, err := historyFrom(historyValues, historyFile, cfg)
	if err != nil {
		return err
	}
	_, h := planning(cfg, false)
	if h < 0 {
		return fmt.Errorf("--horizon must be >= 0, got %d", h)
	}

	trend, err := forecast.FitTrend(series)
	if err != nil {
		return err
	}
	return emit(cmd, "Sales trend", report.TrendMarkdown(trend, trend.ForecastNext(series.Last().Period, h)))
}

func runSeasonality(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}

	var profile model.SeasonalProfile
	if historyValues == "" && historyFile == "" && cfg != nil && len(cfg.Seasonality.Seasons) > 0 {
		profile, err = forecast.ComputeSeasonalCoefficients(cfg.Seasonality.Seasons)
	} else {
		var series model.TimeSeries
		if series, err = historyFrom(historyValues, historyFile, cfg); err != nil {
			return err
		}
		c, _ := planning(cfg, false)
		profile, err = forecast.ComputeSeasonalCoefficientsFromSeries(series, c)
	}
	if err != nil {
		return err
	}
	return emit(cmd, "Seasonal coefficients", report.SeasonalityMarkdown(profile))
}

func runBudget(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}
	series, err := historyFrom(historyValues, historyFile, cfg)
	if err != nil {
		return err
	}
	c, h := planning(cfg, true)
	b, err := forecast.BuildSalesBudget(series, c, h)
	if err != nil {
		return err
	}
	return emit(cmd, "Sales budget", report.BudgetMarkdown(b))
}
