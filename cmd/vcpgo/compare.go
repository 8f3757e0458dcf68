package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/vcpgo/internal/compare"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/transform"
)

var compareCmd = &cobra.Command{
	Use:   "compare [profile-file]",
	Short: "Compare the profile's strategy with what-if alternatives",
	Long: `Project the profile's strategy alongside alternatives built from named
templates or ad-hoc transforms, and show the differences from the base.

Transforms use the form name:key=value,key=value.

Examples:
  vcpgo compare profile.yaml --with level_up_2,progressive,retire_62
  vcpgo compare profile.yaml --transform adjust_months:delta=-6 --transform set_level:level=15
  vcpgo compare --list-templates`,
	Args: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Available templates:")
			for _, t := range transform.NewTemplateRegistry().List() {
				fmt.Fprintf(out, "  %-14s %s\n", t.Name, t.Description)
			}
			fmt.Fprintf(out, "\nAvailable transforms: %s\n", strings.Join(transform.NewTransformRegistry().List(), ", "))
			return nil
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		cfg, err := loadProfile(engine, args[0])
		if err != nil {
			return err
		}
		if cfg.Strategy == nil {
			return domain.NewValidationError("strategy", "the profile has no strategy section")
		}

		templates, _ := cmd.Flags().GetStringSlice("with")
		transforms, _ := cmd.Flags().GetStringArray("transform")

		base := transform.NewPlan("base", cfg.Profile, cfg.Strategy)
		set, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), base, compare.CompareOptions{
			Templates:  templates,
			Transforms: transforms,
		})
		if err != nil {
			return err
		}
		set.ProfilePath = args[0]

		f := compare.GetFormatter(formatFlag)
		if f == nil {
			return fmt.Errorf("unknown format %q (available: csv, json, table, yaml)", formatFlag)
		}
		text, err := f.Format(set)
		if err != nil {
			return err
		}

		if saveFlag {
			ext := strings.ToLower(strings.TrimSpace(formatFlag))
			switch ext {
			case "table", "text", "console":
				ext = "txt"
			case "yml":
				ext = "yaml"
			}
			filename := fmt.Sprintf("vcpgo_compare_%s.%s", time.Now().Format("20060102_150405"), ext)
			if err := os.WriteFile(filename, []byte(text), 0644); err != nil {
				return fmt.Errorf("failed to write comparison: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Comparison written to %s\n", filename)
			return nil
		}

		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	},
}

func init() {
	compareCmd.Flags().StringSlice("with", nil, "Comma-separated templates to compare against (see --list-templates)")
	compareCmd.Flags().StringArray("transform", nil, "Ad-hoc transform name:key=value,... (repeatable)")
	compareCmd.Flags().Bool("list-templates", false, "List the available templates and transforms")
}
