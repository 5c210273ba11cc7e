package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wishwall-server/internal/app"
	"github.com/vovakirdan/wishwall-server/internal/config"
	"github.com/vovakirdan/wishwall-server/internal/log"
)

func main() {
	var (
		cfgPath   string
		addr      string
		dbPath    string
		staticDir string
		logLevel  string
	)

	rootCmd := &cobra.Command{
		Use:          "wishwall-server",
		Short:        "Real-time guestbook server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bootLog := log.New(logLevel)

			cfg, path, err := config.Load(bootLog, cfgPath)
			if err != nil {
				return err
			}

			// Flags override config file and environment.
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			if cmd.Flags().Changed("db") {
				cfg.DatabasePath = dbPath
			}
			if cmd.Flags().Changed("static-dir") {
				cfg.StaticDir = staticDir
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}

			logger := log.New(cfg.LogLevel)
			logger.Info().Str("config", path).Msg("configuration loaded")

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info().Str("addr", cfg.Addr).Msg("starting wishwall server")
			if err := application.Run(ctx); err != nil {
				return err
			}
			logger.Info().Msg("server stopped")
			return nil
		},
	}

	rootCmd.Flags().StringVar(&cfgPath, "config", "", "path to configuration file")
	rootCmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path")
	rootCmd.Flags().StringVar(&staticDir, "static-dir", "", "directory with front-end assets")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
