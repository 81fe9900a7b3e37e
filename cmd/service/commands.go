package main

import (
	"fmt"
	"os"

	"meisterverbund/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// withEnv 載入設定與 logger 後執行 fn
func withEnv(fn func(cfg config.Config, log *zap.Logger) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("無效的 LOG_LEVEL: %w", err)
		}
		defer func() { _ = log.Sync() }()
		return fn(cfg, log)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "meisterverbund",
		Short:         "Meisterverbund directory and review service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          withEnv(runServe),
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run migrations, seed the admin account and start the HTTP server",
		RunE:  withEnv(runServe),
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrateCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all embedded migrations",
			RunE: withEnv(func(cfg config.Config, log *zap.Logger) error {
				if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
					return fmt.Errorf("Migration 執行失敗: %w", err)
				}
				log.Info("migrations applied")
				return nil
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			RunE: withEnv(func(cfg config.Config, log *zap.Logger) error {
				if err := rollbackFn(cfg.DatabaseURL); err != nil {
					return fmt.Errorf("Rollback 執行失敗: %w", err)
				}
				log.Info("migrations rolled back")
				return nil
			}),
		},
	)

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and sample content when missing",
		RunE:  withEnv(runSeed),
	}

	root.AddCommand(serveCmd, migrateCmd, seedCmd)
	return root
}

// execute 執行 CLI 並回傳 exit code
func execute(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
