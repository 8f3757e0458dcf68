package main

import (
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/vcpgo/internal/output"
	"github.com/rgehrsitz/vcpgo/internal/reconstruct"
)

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct [profile-file]",
	Short: "Rebuild the schedule from a payment history and project it",
	Long: `Rebuild the contribution schedule from the profile's payments (or its
strategy when no payments are listed), back-fill a re-entry gap, append a
planned continuation and project the result.`,
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
		req, err := cfg.ReconstructRequest(engine.Tables)
		if err != nil {
			return err
		}

		rec, err := reconstruct.NewReconstructor(engine).Reconstruct(req)
		if err != nil {
			return err
		}

		return render(cmd, &output.Report{
			Title:          "Reconstructed contribution history",
			TablesVersion:  engine.Tables.Metadata.Version,
			Profile:        &cfg.Profile,
			Reconstruction: rec,
		})
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [profile-file]",
	Short: "Generate the monthly contribution schedule of the profile's strategy",
	Args:  cobra.ExactArgs(1),
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

		months, err := engine.BuildContributionSchedule(strategy)
		if err != nil {
			return err
		}
		engine.Logger.Debugf("generated %d months for %s", len(months), strategy)

		return render(cmd, &output.Report{
			Title:         "Contribution schedule",
			TablesVersion: engine.Tables.Metadata.Version,
			Schedule:      months,
		})
	},
}
