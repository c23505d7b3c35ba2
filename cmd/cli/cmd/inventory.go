package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"budget-control/internal/inventory"
	"budget-control/internal/model"
	"budget-control/internal/report"
)

var (
	eoqDemand    float64
	eoqOrderCost float64
	eoqHolding   float64
	eoqBackorder float64

	abcItems []string
	abcA     float64
	abcB     float64
)

var eoqCmd = &cobra.Command{
	Use:   "eoq",
	Short: "Compute the economic order quantity",
	Example: `  budget eoq --demand 320000 --order-cost 560 --holding 10.8
  budget eoq --demand 320000 --order-cost 560 --holding 10.8 --backorder 20`,
	RunE: runEOQ,
}

var abcCmd = &cobra.Command{
	Use:     "abc",
	Short:   "Classify items A/B/C by annual consumption value",
	Example: `  budget abc --item steel=500000 --item motors=300000 --item screws=60000`,
	RunE:    runABC,
}

func init() {
	rootCmd.AddCommand(eoqCmd, abcCmd)

	eoqCmd.Flags().Float64Var(&eoqDemand, "demand", 0, "annual demand in units")
	eoqCmd.Flags().Float64Var(&eoqOrderCost, "order-cost", 0, "fixed cost per order")
	eoqCmd.Flags().Float64Var(&eoqHolding, "holding", 0, "annual holding cost per unit")
	eoqCmd.Flags().Float64Var(&eoqBackorder, "backorder", 0, "annual shortage cost per unit (enables planned backorders)")

	abcCmd.Flags().StringArrayVar(&abcItems, "item", nil, "item as name=annual_value (repeatable)")
	abcCmd.Flags().Float64Var(&abcA, "a", 0, "cumulative % bound of class A (default 80)")
	abcCmd.Flags().Float64Var(&abcB, "b", 0, "cumulative % bound of class B (default 95)")
}

func runEOQ(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}

	var in model.OrderPolicyInput
	if cfg != nil && cfg.EOQ != nil {
		in = *cfg.EOQ
	}
	if cmd.Flags().Changed("demand") {
		in.AnnualDemand = eoqDemand
	}
	if cmd.Flags().Changed("order-cost") {
		in.OrderCost = eoqOrderCost
	}
	if cmd.Flags().Changed("holding") {
		in.HoldingCostPerUnit = eoqHolding
	}
	if cmd.Flags().Changed("backorder") {
		in.BackorderCost = &eoqBackorder
	}

	res, err := inventory.SolveEOQ(in)
	if err != nil {
		return err
	}
	return emit(cmd, "Economic order quantity", report.EOQMarkdown(in, res))
}

// parseNamed reads name=value.
func parseNamed(s string) (string, float64, error) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return "", 0, fmt.Errorf("%q: want name=value", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, fmt.Errorf("%q: %w", s, err)
	}
	return strings.TrimSpace(name), v, nil
}

func parseItem(s string) (inventory.Item, error) {
	name, v, err := parseNamed(s)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("item %w", err)
	}
	return inventory.Item{Name: name, AnnualValue: v}, nil
}

func runABC(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}

	th := inventory.DefaultThresholds()
	var items []inventory.Item
	if cfg != nil {
		items = cfg.ABC.Items
		if cfg.ABC.Thresholds != (inventory.Thresholds{}) {
			th = cfg.ABC.Thresholds
		}
	}
	if len(abcItems) > 0 {
		items = items[:0:0]
		for _, s := range abcItems {
			it, err := parseItem(s)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
	}
	if abcA > 0 {
		th.A = abcA
	}
	if abcB > 0 {
		th.B = abcB
	}

	classified, err := inventory.ClassifyABC(items, th)
	if err != nil {
		return err
	}
	return emit(cmd, "ABC analysis", report.ABCMarkdown(classified))
}
