package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"budget-control/internal/analysis"
	"budget-control/internal/investment"
	"budget-control/internal/model"
	"budget-control/internal/report"
)

var (
	projectName   string
	projectOutlay float64
	projectFlows  string
	projectRate   float64
	irrTolerance  float64
)

var appraiseCmd = &cobra.Command{
	Use:   "appraise",
	Short: "Appraise an investment project (NPV, IRR, payback, PI)",
	Example: `  budget appraise --name machine --outlay 150000 --flows 50000,50000,50000,50000,50000 --rate 0.15
  budget appraise --config plan.yaml`,
	RunE: runAppraise,
}

var rankCmd = &cobra.Command{
	Use:     "rank",
	Short:   "Rank the scenario's projects by NPV",
	Example: `  budget rank --config plan.yaml`,
	RunE:    runRank,
}

func init() {
	rootCmd.AddCommand(appraiseCmd, rankCmd)

	appraiseCmd.Flags().StringVar(&projectName, "name", "project", "project name")
	appraiseCmd.Flags().Float64Var(&projectOutlay, "outlay", 0, "initial outlay at period 0")
	appraiseCmd.Flags().StringVar(&projectFlows, "flows", "", "comma-separated cash flows for periods 1..n")
	appraiseCmd.Flags().Float64Var(&projectRate, "rate", 0, "discount rate as a fraction (0.15 for 15%)")
	for _, c := range []*cobra.Command{appraiseCmd, rankCmd} {
		c.Flags().Float64Var(&irrTolerance, "tolerance", investment.DefaultTolerance, "IRR tolerance")
	}
}

func runAppraise(cmd *cobra.Command, args []string) error {
	var projects []model.InvestmentProject
	opts := investment.Options{Tolerance: irrTolerance}

	if projectFlows != "" {
		flows, err := parseFloats(projectFlows)
		if err != nil {
			return err
		}
		projects = append(projects, model.InvestmentProject{
			Name:          projectName,
			InitialOutlay: projectOutlay,
			CashFlows:     flows,
			DiscountRate:  projectRate,
		})
	} else {
		cfg, err := loadScenario()
		if err != nil {
			return err
		}
		if cfg == nil || len(cfg.Investment.Projects) == 0 {
			return fmt.Errorf("no project: pass --flows or a scenario with investment projects")
		}
		projects = cfg.Investment.Projects
		opts = cfg.Investment.Options()
		if cmd.Flags().Changed("tolerance") {
			opts.Tolerance = irrTolerance
		}
	}

	md := ""
	for _, p := range projects {
		a, err := investment.Appraise(p, opts)
		if err != nil {
			return fmt.Errorf("project %s: %w", p.Name, err)
		}
		md += report.AppraisalMarkdown(a) + "\n"
	}
	return emit(cmd, "Investment appraisal", md)
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario()
	if err != nil {
		return err
	}
	if cfg == nil || len(cfg.Investment.Projects) == 0 {
		return fmt.Errorf("rank needs a scenario with investment projects (--config)")
	}
	opts := cfg.Investment.Options()
	if cmd.Flags().Changed("tolerance") {
		opts.Tolerance = irrTolerance
	}
	ranked, err := analysis.RankByNPV(cfg.Investment.Projects, opts)
	if err != nil {
		return err
	}
	return emit(cmd, "Project ranking", report.RankingMarkdown(ranked))
}
