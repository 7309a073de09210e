// Package service holds the blogapi command line: serving the API and
// maintaining its record store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"blogapi/app/fixtures"
	"blogapi/app/server"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags.
var Version = "1.0.0"

// DefaultBackupDir is where backup writes when --out is not given.
const DefaultBackupDir = "data/backups"

// NewRootCommand builds the blogapi command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "blogapi",
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Short:             "Blog posts REST API",
		Long:              "blogapi serves create, list, update and delete operations on blog posts over HTTP",
		SilenceUsage:      true,
		Version:           Version,
	}

	rootCmd.AddCommand(
		newServeCommand(),
		newSeedCommand(),
		newCleanCommand(),
		newBackupCommand(),
		newRestoreCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	cfg := env.config

	env.logger.Info("Configuration loaded",
		slog.String("ENVIRONMENT", cfg.Environment),
		slog.String("HOST", cfg.Host),
		slog.Int("PORT", cfg.Port),
		slog.String("LOG_LEVEL", cfg.LogLevel),
		slog.String("STORE_TYPE", cfg.StoreType),
	)

	repo, err := env.openStore(ctx)
	if err != nil {
		env.logger.Error("Failed to open store", slog.String("error", err.Error()))
		return err
	}

	srv := server.NewServer(repo, cfg, env.logger)
	defer srv.StoreShutdown()

	env.logger.Info("Starting server", slog.String("version", Version))
	if err := srv.Start(ctx); err != nil {
		env.logger.Error("Server error", slog.String("error", err.Error()))
		return err
	}

	env.logger.Info("server shutdown complete")
	return nil
}

func newSeedCommand() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert random posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("count") {
				count = env.config.SeedCount
			}
			if count < 0 {
				return fmt.Errorf("--count must be 0 or greater")
			}

			repo, err := env.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			posts, err := fixtures.Seed(cmd.Context(), repo, count)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d posts\n", len(posts))
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of posts to create (default: SEED_COUNT)")
	return cmd
}

func newCleanCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove every post from the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				"Are you sure you want to clean the database? This cannot be undone.") {
				fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
				return nil
			}

			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			repo, err := env.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := fixtures.TearDown(cmd.Context(), repo); err != nil {
				return fmt.Errorf("failed to clean database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database cleaned successfully")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newBackupCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a full backup of the badger store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			repo, err := env.openBadger(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			if out == "" {
				out = filepath.Join(DefaultBackupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
			}
			if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if err := repo.Backup(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database backed up successfully to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Backup file (default: data/backups/backup_<unix time>.db)")
	return cmd
}

func newRestoreCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "restore FILE",
		Short: "Replace the badger store contents with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backupFile := args[0]

			f, err := os.Open(backupFile)
			if err != nil {
				return fmt.Errorf("failed to open backup file: %w", err)
			}
			defer f.Close()

			fi, err := f.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat backup file: %w", err)
			}
			if fi.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", backupFile)
			}

			env, err := loadEnvironment()
			if err != nil {
				return err
			}
			repo, err := env.openBadger(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			existing, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
					"Existing posts found. Do you want to replace them?") {
					fmt.Fprintln(cmd.OutOrStdout(), "Operation cancelled")
					return nil
				}
				if err := repo.Clear(cmd.Context()); err != nil {
					return err
				}
			}

			if err := repo.Restore(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database restored successfully from %s\n", backupFile)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace existing posts without asking")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blogapi version %s\n", Version)
		},
	}
}
