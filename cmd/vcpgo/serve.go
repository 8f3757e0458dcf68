package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/vcpgo/internal/api"
	"github.com/rgehrsitz/vcpgo/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator over HTTP",
	Long: `Serve the calculator as a JSON API. Settings come from the environment
(` + config.EnvAddr + `, ` + config.EnvTables + `, ` + config.EnvOrigins + `), optionally loaded from
a .env file in the working directory; flags win over both.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		envFile, _ := cmd.Flags().GetString("env-file")
		cfg, err := config.LoadServerConfig(envFile)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if tablesFlag == "" {
			tablesFlag = cfg.TablesPath
		}

		engine, err := newEngine(cmd)
		if err != nil {
			return err
		}
		log := newLogger(cmd.ErrOrStderr(), debugFlag)

		server := api.NewServer(cfg.Addr, api.NewRouter(api.NewHandler(engine), cfg.AllowedOrigins))

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info().Str("addr", cfg.Addr).Str("tables", engine.Tables.Metadata.Version).Msg("server starting")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		log.Info().Msg("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default $"+config.EnvAddr+" or "+config.DefaultAddr+")")
	serveCmd.Flags().String("env-file", ".env", "Dotenv file to load before reading the environment")
}
