package cmd

import (
	"context"
	"fmt"
	"os"

	"stockflow/internal/core/logger"
	"stockflow/internal/database"
	"stockflow/internal/database/migration"
	"stockflow/internal/database/seed"

	"github.com/spf13/cobra"
)

var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations manually.",
	Long:  `Applies pending schema migrations. Meant for development and deploy hooks.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbURL := os.Getenv("DATABASE_URL")
		migrationDir, _ := cmd.Flags().GetString("dir")

		err := migration.Migrate(
			dbURL,
			fmt.Sprintf("file://%s", migrationDir),
			logger.NewLogger(),
		)
		if err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		return nil
	},
}

var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with a demo dataset.",
	Long:  `Inserts demo users, locations, items and replays stock movements. No-op when users already exist.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.NewLogger()

		db, err := database.NewPostgresConnection(os.Getenv("DATABASE_URL"))
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		password, _ := cmd.Flags().GetString("password")
		if err := seed.Run(db, password, log); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}

		return nil
	},
}

func Execute(ctx context.Context) {
	rootCmd := &cobra.Command{
		Use:   "stockflow",
		Short: "Stockflow inventory service",
		Run:   func(*cobra.Command, []string) {},
	}
	MigrateCmd.Flags().String("dir", "migrations", "Directory containing the migration files")
	SeedCmd.Flags().String("password", "changeme", "Password assigned to seeded demo users")
	rootCmd.AddCommand(MigrateCmd, SeedCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
