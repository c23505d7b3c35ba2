package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"budget-control/internal/report"
	"budget-control/internal/treasury"
)

var ledgerOut string

var treasuryCmd = &cobra.Command{
	Use:   "treasury",
	Short: "Project the cash balance of the scenario's treasury plan",
	Example: `  budget treasury --config plan.yaml
  budget treasury --config plan.yaml --out results/ledger.csv --format html --report results/treasury.html`,
	RunE: runTreasury,
}

func init() {
	rootCmd.AddCommand(treasuryCmd)
	treasuryCmd.Flags().StringVar(&ledgerOut, "out", "", "write the ledger as CSV to this path")
}

func runTreasury(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}
	if cfg == nil || !cfg.HasTreasury() {
		return fmt.Errorf("treasury needs a scenario with a treasury section or treasury_file (--config)")
	}

	res, err := treasury.New().Project(cfg.Treasury)
	if err != nil {
		return err
	}

	if ledgerOut != "" {
		// ensure output dir exists
		if err := os.MkdirAll(filepath.Dir(ledgerOut), 0o755); err != nil {
			return err
		}
		if err := treasury.WriteLedgerCSV(ledgerOut, res.Ledger); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d rows to %s\n", len(res.Ledger), ledgerOut)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: period %d %s (shortfall %s)\n", w.Period, w.Kind, report.Money(w.Shortfall))
	}
	return emit(cmd, "Cash-flow projection", report.TreasuryMarkdown(res))
}
