package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/job-matcher/internal/config"
	"github.com/jonathan/job-matcher/internal/db"
	"github.com/spf13/cobra"
)

var migrateConfig string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  "Creates the users, jobs, skills, resumes and applications tables if they do not exist. Safe to run repeatedly.",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().StringVarP(&migrateConfig, "config", "c", "", "Path to a JSON config file")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(migrateConfig)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}
	newLogger(cfg.Verbose).Info("schema applied")
	return nil
}
