package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"budget-control/internal/config"
	"budget-control/internal/model"
	"budget-control/internal/report"
)

var rootCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget control and financial planning calculators",
	Long: `budget runs the planning calculators of a budget-control scenario:

  - sales trend, seasonal coefficients and seasonal budgets
  - economic order quantity and ABC classification
  - investment appraisal (NPV, IRR, payback) and project ranking
  - cash-flow projection with collection delays and a credit line
  - production mix, capacity cost and daily stock schedule

Inputs come from flags or from a scenario file (--config). Results are
printed as markdown tables, or as HTML with --format html.`,
	SilenceUsage: true,
}

var (
	scenarioPath string
	outputFormat string
	reportPath   string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&scenarioPath, "config", "c", "", "scenario YAML file")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "md", "output format: md or html")
	rootCmd.PersistentFlags().StringVar(&reportPath, "report", "", "write the report to this file instead of stdout")
}

// loadScenario loads --config; it returns nil when no file was given.
func loadScenario() (*config.Config, error) {
	if scenarioPath == "" {
		return nil, nil
	}
	cfg, err := config.Load(scenarioPath)
	if err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", scenarioPath, err)
	}
	return cfg, nil
}

// emit writes a markdown report in the requested format.
func emit(cmd *cobra.Command, title, md string) error {
	var out string
	switch outputFormat {
	case "md", "markdown":
		out = md
	case "html":
		body, err := report.RenderHTML(md)
		if err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		out = report.Page(title, body)
	default:
		return fmt.Errorf("unsupported --format %q (want md or html)", outputFormat)
	}

	if reportPath == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(reportPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(reportPath, []byte(out), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote report to %s\n", reportPath)
	return nil
}

// parseFloats reads a comma-separated list such as "120, 135,115".
func parseFloats(s string) ([]float64, error) {
	var out []float64
	for i, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d (%q): %w", i+1, part, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// historyFrom resolves the sales history: --values, then --series, then the scenario.
func historyFrom(values, seriesFile string, cfg *config.Config) (model.TimeSeries, error) {
	switch {
	case values != "":
		vs, err := parseFloats(values)
		if err != nil {
			return model.TimeSeries{}, err
		}
		return model.NewTimeSeries(vs...), nil
	case seriesFile != "":
		return loadSeriesFile(seriesFile)
	case cfg != nil && cfg.Series.Len() > 0:
		return cfg.Series, nil
	}
	return model.TimeSeries{}, fmt.Errorf("no history: pass --values, --series or a scenario with a trend section")
}
