package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/optimize"
	"github.com/rgehrsitz/vcpgo/internal/output"
	"github.com/rgehrsitz/vcpgo/pkg/dateutil"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [profile-file]",
	Short: "Rank every contribution strategy the profile allows",
	Long: `Enumerate every (months, type, wage level) strategy between the earliest
start and retirement and rank the eligible ones by return ratio.

Flags override the profile's search section.

Examples:
  vcpgo optimize profile.yaml --limit 10
  vcpgo optimize profile.yaml --min-level 5 --max-level 15 --as-of 2025-06
  vcpgo optimize profile.yaml --format csv --save`,
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

		req := cfg.SearchRequest(dateutil.FirstOfMonth(time.Now()))
		opts := optimize.DefaultSolverOptions()
		if cfg.Search != nil {
			opts.Limit = cfg.Search.Limit
		}

		flags := cmd.Flags()
		if flags.Changed("as-of") {
			s, _ := flags.GetString("as-of")
			var ym domain.YearMonth
			if err := ym.UnmarshalText([]byte(s)); err != nil {
				return domain.NewValidationError("as-of", "invalid month %q (use YYYY-MM)", s)
			}
			req.AsOf = ym
		}
		if flags.Changed("min-level") {
			req.MinWageLevel, _ = flags.GetInt("min-level")
		}
		if flags.Changed("max-level") {
			req.MaxWageLevel, _ = flags.GetInt("max-level")
		}
		if flags.Changed("limit") {
			opts.Limit, _ = flags.GetInt("limit")
		}
		opts.IncludeSchedule, _ = flags.GetBool("schedule")

		result, err := optimize.NewSolver(engine, opts).Enumerate(cmd.Context(), req)
		if err != nil {
			return err
		}

		return render(cmd, &output.Report{
			Title:         "Strategy search",
			TablesVersion: engine.Tables.Metadata.Version,
			Profile:       &cfg.Profile,
			Search:        result,
		})
	},
}

func init() {
	optimizeCmd.Flags().Int("limit", 0, "Keep only the best N strategies (0 keeps all)")
	optimizeCmd.Flags().Int("min-level", 0, "Lowest wage level to try")
	optimizeCmd.Flags().Int("max-level", 0, "Highest wage level to try")
	optimizeCmd.Flags().String("as-of", "", "Month the search runs from, YYYY-MM (default: current month)")
	optimizeCmd.Flags().Bool("schedule", false, "Attach each strategy's contribution schedule")
}
