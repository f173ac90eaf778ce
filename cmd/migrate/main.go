package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/lawai/backend/internal/infrastructure/config"
	"github.com/lawai/backend/internal/infrastructure/logger"
	"github.com/lawai/backend/internal/infrastructure/migration"
	"github.com/lawai/backend/migrations"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

// globalFlags holds the flags shared by every subcommand
type globalFlags struct {
	path     string
	logLevel string
}

func main() {
	var flags globalFlags
	var log *zap.Logger

	root := &cobra.Command{
		Use:   "migrate",
		Short: "LawAI database migration tool",
		Long: `Applies the SQL schema migrations of the LawAI backend.

Migrations are read from the binary unless --path points at a directory.
Database settings come from config.toml and LAWAI_DATABASE_* or DATABASE_URL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			log, err = logger.New(&logger.Config{
				Level:  flags.logLevel,
				Format: "console",
				Output: "stdout",
			})
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if log != nil {
				_ = log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&flags.path, "path", "", "Migrations directory (default: embedded migrations)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	withMigrator := func(fn func(m *migration.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			m, closeFn, err := openMigrator(flags.path, log)
			if err != nil {
				return err
			}
			defer closeFn()
			return fn(m)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  withMigrator(func(m *migration.Migrator) error { return m.Up() }),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			Args:  cobra.NoArgs,
			RunE:  withMigrator(func(m *migration.Migrator) error { return m.Down() }),
		},
		&cobra.Command{
			Use:     "step <n>",
			Short:   "Apply n migrations (positive=up, negative=down)",
			Example: "  migrate step -1",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := strconv.Atoi(args[0])
				if err != nil || n == 0 {
					return fmt.Errorf("invalid step count %q", args[0])
				}
				return withMigrator(func(m *migration.Migrator) error { return m.Steps(n) })(cmd, args)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show the applied migration version",
			Args:  cobra.NoArgs,
			RunE: withMigrator(func(m *migration.Migrator) error {
				version, dirty, err := m.Version()
				if err != nil {
					return err
				}
				if version == 0 {
					log.Info("No migrations applied")
					return nil
				}
				log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
				return nil
			}),
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Mark a version as applied to recover from a dirty state",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				version, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid version %q", args[0])
				}
				return withMigrator(func(m *migration.Migrator) error { return m.Force(version) })(cmd, args)
			},
		},
		&cobra.Command{
			Use:     "create <name> [description]",
			Short:   "Create an empty up/down migration pair",
			Example: `  migrate create add_case_court "Add court column to cases"`,
			Args:    cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				dir := flags.path
				if dir == "" {
					dir = defaultMigrationsPath
				}
				description := ""
				if len(args) > 1 {
					description = args[1]
				}
				f, err := migration.CreateMigration(dir, args[0], description, time.Now())
				if err != nil {
					return err
				}
				log.Info("Migration created",
					zap.String("version", f.Version),
					zap.String("up_file", f.UpPath),
					zap.String("down_file", f.DownPath),
				)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List available migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				entries, err := migration.ListMigrations(sourceFS(flags.path))
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					log.Info("No migrations found")
					return nil
				}
				for _, e := range entries {
					fmt.Fprintln(cmd.OutOrStdout(), "  -", e)
				}
				return nil
			},
		},
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func sourceFS(dir string) fs.FS {
	if dir == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

func openMigrator(dir string, log *zap.Logger) (*migration.Migrator, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	m, err := migration.NewFromFS(db, sourceFS(dir), log)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	log.Debug("Migrator ready", zap.String("source", sourceName(dir)))

	return m, func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}, nil
}

func sourceName(dir string) string {
	if dir == "" {
		return "embedded"
	}
	return dir
}
