package main

import (
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/vcpgo/internal/calculation"
	"github.com/rgehrsitz/vcpgo/internal/output"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate [profile-file]",
	Short: "Project the pension of the profile's strategy",
	Long: `Project the monthly pension of the strategy in the profile.

Examples:
  vcpgo calculate profile.yaml
  vcpgo calculate profile.yaml --ages --format csv
  vcpgo calculate profile.yaml --schedule --format json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		cfg, err := loadProfile(engine, args[0])
		if err != nil {
			return err
		}
		strategy, err := strategyOf(cfg, engine.Tables)
		if err != nil {
			return err
		}

		withSchedule, _ := cmd.Flags().GetBool("schedule")
		withAges, _ := cmd.Flags().GetBool("ages")

		params := calculation.ProjectionParams{Profile: cfg.Profile, Strategy: strategy, IncludeSchedule: withSchedule}
		result, err := engine.ComputeSingleStrategy(params)
		if err != nil {
			return err
		}
		result.StrategyType = cfg.Strategy.Type
		result.WageLevel = int(cfg.Strategy.WageLevel.IntPart())

		report := &output.Report{
			Title:         "Single strategy projection",
			TablesVersion: engine.Tables.Metadata.Version,
			Profile:       &cfg.Profile,
			Projection:    result,
			Schedule:      result.Schedule,
		}
		if withAges {
			if report.AgeSensitivity, err = engine.AgeSensitivity(params); err != nil {
				return err
			}
		}
		return render(cmd, report)
	},
}

func init() {
	calculateCmd.Flags().Bool("ages", false, "Also project the strategy at every permitted retirement age")
	calculateCmd.Flags().Bool("schedule", false, "Include the month-by-month contribution schedule")
}
