package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"budget-control/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate scenario files",
	Long: `Manage scenario files.

Subcommands:
  init     - Generate a sample scenario
  validate - Validate an existing scenario

Examples:
  budget config init --output plan.yaml
  budget config validate --file plan.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a sample scenario file",
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scenario file",
	RunE:  runConfigValidate,
}

var (
	configInitOutput   string
	configValidatePath string
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "plan.yaml", "output scenario path (.yaml or .json)")
	configValidateCmd.Flags().StringVarP(&configValidatePath, "file", "f", "", "path to scenario file (required)")
	_ = configValidateCmd.MarkFlagRequired("file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if err := config.Default().SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created sample scenario: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run e.g.:")
	fmt.Fprintf(out, "  budget treasury --config %s\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configValidatePath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var sections []string
	if cfg.Series.Len() > 0 {
		sections = append(sections, fmt.Sprintf("trend (%d periods)", cfg.Series.Len()))
	}
	if cfg.EOQ != nil {
		sections = append(sections, "eoq")
	}
	if n := len(cfg.Investment.Projects); n > 0 {
		sections = append(sections, fmt.Sprintf("investment (%d projects)", n))
	}
	if cfg.HasTreasury() {
		sections = append(sections, fmt.Sprintf("treasury (%d periods)", cfg.Treasury.Periods))
	}
	if n := len(cfg.ABC.Items); n > 0 {
		sections = append(sections, fmt.Sprintf("abc (%d items)", n))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scenario valid: %s\n", configValidatePath)
	fmt.Fprintf(out, "  Sections: %s\n", strings.Join(sections, ", "))
	return nil
}
