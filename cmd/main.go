package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"see-a-doctor/cmd/bootstrap"
	"see-a-doctor/config"
	"see-a-doctor/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "see-a-doctor",
		Short: "Doctor appointment booking API",
		// Running the binary without a subcommand starts the server
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		logrus.Errorf("%v", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	app, err := bootstrap.New()
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Migrate(); err != nil {
		app.Close()
		return err
	}

	app.Build()
	return app.Run()
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				return m.Up()
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations, all of them when steps is omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("steps must be a positive number, got %q", args[0])
				}
				steps = n
			}
			return withMigrator(func(m *database.Migrator) error {
				return m.Down(steps)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(func(m *database.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(fn func(m *database.Migrator) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	migrator, err := database.NewMigrator(cfg.DB, bootstrap.NewLogger(cfg.App))
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(migrator)
}

func seedCmd() *cobra.Command {
	var opts bootstrap.SeedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fake hospitals, doctors and chambers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Close()

			return app.Seed(context.Background(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.Hospitals, "hospitals", 5, "number of hospitals to create")
	cmd.Flags().IntVar(&opts.Doctors, "doctors", 20, "number of doctors to create")

	return cmd
}
