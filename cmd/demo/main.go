package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"budget-control/internal/analysis"
	"budget-control/internal/config"
	"budget-control/internal/forecast"
	"budget-control/internal/inventory"
	"budget-control/internal/investment"
	"budget-control/internal/model"
	"budget-control/internal/production"
	"budget-control/internal/report"
	"budget-control/internal/treasury"
)

// Demo:
// - Load a scenario (the built-in sample plan by default)
// - Run every calculator over it
// - Print the markdown reports, optionally writing the treasury ledger as CSV
func main() {
	cfgPath := flag.String("config", "", "Path to YAML scenario (optional, defaults to the sample plan)")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/ledger.csv)")
	flag.Parse()

	cfg := config.Default()
	cfg.Series = model.NewTimeSeries(cfg.Trend.History...)
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
	}

	var sections []string

	if cfg.Series.Len() > 0 {
		t, err := forecast.FitTrend(cfg.Series)
		if err != nil {
			panic(err)
		}
		sections = append(sections, report.TrendMarkdown(t, t.ForecastNext(cfg.Series.Last().Period, cfg.Trend.Horizon)))

		if cycle := cfg.Seasonality.Cycle; cycle > 1 && cfg.Series.Len() >= 2*cycle {
			profile, err := forecast.ComputeSeasonalCoefficientsFromSeries(cfg.Series, cycle)
			if err != nil {
				panic(err)
			}
			sections = append(sections, report.SeasonalityMarkdown(profile))

			bud, err := forecast.BuildSalesBudget(cfg.Series, cycle, cycle)
			if err != nil {
				panic(err)
			}
			sections = append(sections, report.BudgetMarkdown(bud))
		}
	}

	if cfg.EOQ != nil {
		res, err := inventory.SolveEOQ(*cfg.EOQ)
		if err != nil {
			panic(err)
		}
		sections = append(sections, report.EOQMarkdown(*cfg.EOQ, res))
	}

	if len(cfg.ABC.Items) > 0 {
		classified, err := inventory.ClassifyABC(cfg.ABC.Items, cfg.ABC.Thresholds)
		if err != nil {
			panic(err)
		}
		sections = append(sections, report.ABCMarkdown(classified))
	}

	if len(cfg.Investment.Projects) > 0 {
		opts := cfg.Investment.Options()
		for _, p := range cfg.Investment.Projects {
			a, err := investment.Appraise(p, opts)
			if err != nil {
				panic(err)
			}
			sections = append(sections, report.AppraisalMarkdown(a))
		}
		ranked, err := analysis.RankByNPV(cfg.Investment.Projects, opts)
		if err != nil {
			panic(err)
		}
		sections = append(sections, report.RankingMarkdown(ranked))
	}

	if cfg.HasTreasury() {
		res, err := treasury.New().Project(cfg.Treasury)
		if err != nil {
			panic(err)
		}
		sections = append(sections, report.TreasuryMarkdown(res))

		if *outCSV != "" {
			if err := treasury.WriteLedgerCSV(*outCSV, res.Ledger); err != nil {
				panic(err)
			}
			fmt.Fprintf(os.Stderr, "Wrote ledger CSV: %s\n", *outCSV)
		}
	}

	if m := cfg.Production.Mix; m != nil {
		res, err := production.OptimizeMix(*m)
		if err != nil {
			panic(err)
		}
		sections = append(sections, report.MixMarkdown(res))
	}
	if cp := cfg.Production.Capacity; cp != nil {
		res, err := production.SimulateCapacity(*cp)
		if err != nil {
			panic(err)
		}
		sections = append(sections, report.CapacityMarkdown(res))
	}
	if sc := cfg.Production.Schedule; sc != nil {
		res, err := production.SimulateSchedule(*sc)
		if err != nil {
			panic(err)
		}
		sections = append(sections, report.ScheduleMarkdown(res))
	}

	fmt.Printf("Scenario: %s\n\n", cfg.Name)
	fmt.Println(strings.Join(sections, "\n"))
}
