package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/vcpgo/internal/calculation"
	"github.com/rgehrsitz/vcpgo/internal/config"
	"github.com/rgehrsitz/vcpgo/internal/domain"
	"github.com/rgehrsitz/vcpgo/internal/output"
)

// zerologAdapter implements calculation.Logger on top of zerolog
type zerologAdapter struct {
	log zerolog.Logger
}

func (z zerologAdapter) Debugf(format string, args ...any) { z.log.Debug().Msgf(format, args...) }
func (z zerologAdapter) Infof(format string, args ...any)  { z.log.Info().Msgf(format, args...) }
func (z zerologAdapter) Warnf(format string, args ...any)  { z.log.Warn().Msgf(format, args...) }
func (z zerologAdapter) Errorf(format string, args ...any) { z.log.Error().Msgf(format, args...) }

func newLogger(w io.Writer, debugMode bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debugMode {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().
		Logger()
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	formatFlag string
	tablesFlag string
	saveFlag   bool
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "vcpgo",
	Short: "Voluntary continuation pension calculator",
	Long: `Project the old-age pension of a worker who keeps contributing to the
social security scheme voluntarily after leaving formal employment.

Profiles are YAML files holding the worker's facts and, depending on the
command, a strategy, search bounds or a payment history.`,
	SilenceUsage: true,
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vcpgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

// newEngine builds the engine from --tables (or VCPGO_TABLES) and wires the
// command's logger into it.
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	path := tablesFlag
	if path == "" {
		path = os.Getenv(config.EnvTables)
	}

	engine := calculation.NewCalculationEngine()
	if path != "" {
		tables, err := config.NewInputParser().LoadTables(path)
		if err != nil {
			return nil, err
		}
		engine = calculation.NewCalculationEngineWithTables(tables)
	}
	engine.SetLogger(zerologAdapter{log: newLogger(cmd.ErrOrStderr(), debugFlag)})
	return engine, nil
}

// loadProfile parses a profile file against the engine's tables
func loadProfile(engine *calculation.CalculationEngine, path string) (*config.ProfileConfig, error) {
	return config.NewInputParser().LoadProfile(path, engine.Tables)
}

// render prints the report in the chosen format, or writes it to a
// timestamped file with --save.
func render(cmd *cobra.Command, report *output.Report) error {
	f := output.GetFormatterByName(formatFlag)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", formatFlag,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}

	if saveFlag {
		ext := f.Name()
		if ext == "table" {
			ext = "txt"
		}
		filename, err := output.WriteFormatted(f, report, ext)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}

	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// strategyOf returns the profile's strategy, which some commands require
func strategyOf(cfg *config.ProfileConfig, tables *domain.StatutoryTables) (domain.Strategy, error) {
	if cfg.Strategy == nil {
		return domain.Strategy{}, domain.NewValidationError("strategy", "the profile has no strategy section")
	}
	return cfg.Strategy.ToStrategy(tables)
}

var validateCmd = &cobra.Command{
	Use:   "validate [profile-file]",
	Short: "Validate a profile file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		if _, err := loadProfile(engine, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Profile %s is valid (law version %s)\n", args[0], engine.Tables.Metadata.Version)
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the statutory tables in force",
	Long: `Print the statutory tables the engine uses. With --format yaml the output
is a complete tables file that --tables accepts back.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		return render(cmd, &output.Report{
			Title:         "Statutory tables",
			TablesVersion: engine.Tables.Metadata.Version,
			Tables:        engine.Tables,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "table", "Output format (table, csv, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&tablesFlag, "tables", "", "Statutory tables YAML overriding the built-in law (default $"+config.EnvTables+")")
	rootCmd.PersistentFlags().BoolVar(&saveFlag, "save", false, "Write the report to a timestamped file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging of the calculations")

	rootCmd.AddCommand(calculateCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(reconstructCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
