package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"presupuesto/internal/storage"
	"presupuesto/internal/storage/memory"
)

func (a *app) newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the SQLite schema",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back applied migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.config().SQLiteDBPath
			if err := storage.RollbackMigrations(path, steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s) on %s\n", steps, path)
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path := a.config().SQLiteDBPath
				if err := storage.RunMigrations(path); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied on %s\n", path)
				return nil
			},
		},
		down,
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				version, dirty, err := storage.MigrationVersion(a.config().SQLiteDBPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d", version)
				if dirty {
					fmt.Fprint(cmd.OutOrStdout(), " (dirty)")
				}
				fmt.Fprintln(cmd.OutOrStdout())
				return nil
			},
		},
	)
	return cmd
}

func (a *app) newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file.json>",
		Short: "Load categories, expenses and income from a JSON file into SQLite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading seed: %w", err)
			}
			var seed memory.Seed
			if err := json.Unmarshal(b, &seed); err != nil {
				return fmt.Errorf("decoding seed: %w", err)
			}

			repo, err := storage.NewSQLiteRepository(a.config().SQLiteDBPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.Seed(cmd.Context(), seed.Categories, seed.Expenses, seed.Income); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d categories, %d expenses, %d income records\n",
				len(seed.Categories), len(seed.Expenses), len(seed.Income))
			return nil
		},
	}
}
