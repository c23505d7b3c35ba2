package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"budget-control/internal/production"
	"budget-control/internal/report"
)

var (
	mixCapacities []string
	mixDemands    []string

	capPlanned    float64
	capPrice      float64
	capEfficiency float64
	capSales      float64
	capOpening    float64
	capTarget     float64

	schedSafety float64
	schedDays   int
)

var productionCmd = &cobra.Command{
	Use:   "production",
	Short: "Plan production: product mix, capacity cost and stock schedule",
	Long: `Plan production from a scenario's production section, or from the
built-in two-product workshop when no scenario is given.

Subcommands:
  mix      - Margin-maximizing product mix under resource limits
  capacity - Monthly capacity and cost of the workshop
  schedule - Daily stock simulation`,
}

var productionMixCmd = &cobra.Command{
	Use:   "mix",
	Short: "Optimize the product mix",
	Example: `  budget production mix
  budget production mix --capacity machining=15000 --demand B=6000`,
	RunE: runProductionMix,
}

var productionCapacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Cost a month of production",
	Example: `  budget production capacity --planned 12000 --price 240
  budget production capacity --sales 9900 --opening 100 --target 200`,
	RunE: runProductionCapacity,
}

var productionScheduleCmd = &cobra.Command{
	Use:     "schedule",
	Short:   "Simulate daily stock",
	Example: `  budget production schedule --safety 900 --days 60`,
	RunE:    runProductionSchedule,
}

func init() {
	rootCmd.AddCommand(productionCmd)
	productionCmd.AddCommand(productionMixCmd, productionCapacityCmd, productionScheduleCmd)

	productionMixCmd.Flags().StringArrayVar(&mixCapacities, "capacity", nil, "resource capacity as name=value (repeatable)")
	productionMixCmd.Flags().StringArrayVar(&mixDemands, "demand", nil, "product demand cap as name=value (repeatable)")

	productionCapacityCmd.Flags().Float64Var(&capPlanned, "planned", 0, "planned units for the month")
	productionCapacityCmd.Flags().Float64Var(&capPrice, "price", 0, "unit selling price")
	productionCapacityCmd.Flags().Float64Var(&capEfficiency, "efficiency", 0, "machine yield in percent")
	productionCapacityCmd.Flags().Float64Var(&capSales, "sales", 0, "budgeted sales; sizes the planned units with --opening and --target")
	productionCapacityCmd.Flags().Float64Var(&capOpening, "opening", 0, "opening finished-goods stock")
	productionCapacityCmd.Flags().Float64Var(&capTarget, "target", 0, "target closing stock")

	productionScheduleCmd.Flags().Float64Var(&schedSafety, "safety", 0, "safety stock")
	productionScheduleCmd.Flags().IntVar(&schedDays, "days", 0, "days to simulate (default 30)")
}

func runProductionMix(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}
	in := production.DefaultMix()
	if cfg != nil && cfg.Production.Mix != nil {
		in = *cfg.Production.Mix
	}

	for _, s := range mixCapacities {
		name, v, err := parseNamed(s)
		if err != nil {
			return fmt.Errorf("capacity %w", err)
		}
		found := false
		for i := range in.Resources {
			if in.Resources[i].Name == name {
				in.Resources[i].Capacity = v
				found = true
			}
		}
		if !found {
			return fmt.Errorf("capacity: unknown resource %q", name)
		}
	}
	for _, s := range mixDemands {
		name, v, err := parseNamed(s)
		if err != nil {
			return fmt.Errorf("demand %w", err)
		}
		found := false
		for i := range in.Products {
			if in.Products[i].Name == name {
				d := v
				in.Products[i].MaxDemand = &d
				found = true
			}
		}
		if !found {
			return fmt.Errorf("demand: unknown product %q", name)
		}
	}

	res, err := production.OptimizeMix(in)
	if err != nil {
		return err
	}
	return emit(cmd, "Production mix", report.MixMarkdown(res))
}

func runProductionCapacity(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}
	in := production.DefaultCapacity()
	if cfg != nil && cfg.Production.Capacity != nil {
		in = *cfg.Production.Capacity
	}
	flags := cmd.Flags()
	if flags.Changed("sales") {
		need, err := production.Requirement{Sales: capSales, OpeningStock: capOpening, TargetStock: capTarget}.Solve()
		if err != nil {
			return err
		}
		in.PlannedUnits = need.Units
	}
	if flags.Changed("planned") {
		in.PlannedUnits = capPlanned
	}
	if flags.Changed("price") {
		in.UnitPrice = capPrice
	}
	if flags.Changed("efficiency") {
		in.Efficiency = capEfficiency
	}

	res, err := production.SimulateCapacity(in)
	if err != nil {
		return err
	}
	return emit(cmd, "Production capacity", report.CapacityMarkdown(res))
}

func runProductionSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}
	in := production.DefaultSchedule()
	if cfg != nil && cfg.Production.Schedule != nil {
		in = *cfg.Production.Schedule
	}
	if cmd.Flags().Changed("safety") {
		in.SafetyStock = schedSafety
	}
	if cmd.Flags().Changed("days") {
		in.Days = schedDays
	}

	res, err := production.SimulateSchedule(in)
	if err != nil {
		return err
	}
	return emit(cmd, "Production schedule", report.ScheduleMarkdown(res))
}
