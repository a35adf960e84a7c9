package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"kisanmandi/internal/config"
	"kisanmandi/internal/db"
	"kisanmandi/internal/logger"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	cliApp := &cli.App{
		Name:  "migrate",
		Usage: "apply or roll back the Postgres store schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Value: "./migrations",
				Usage: "directory of *.sql migration files",
			},
		},
		Commands: []*cli.Command{
			{Name: "up", Usage: "apply pending migrations", Action: withMigrator((*migrator).up)},
			{Name: "down", Usage: "roll back the latest migration", Action: withMigrator((*migrator).down)},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withMigrator(fn func(*migrator, context.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg := config.LoadConfig()
		logger.Init(cfg.AppEnv)
		defer logger.Sync()

		conn := db.InitDB(cfg)
		defer conn.Close()

		m, err := newMigrator(conn, c.String("dir"), c.App.Writer)
		if err != nil {
			return err
		}
		if err := fn(m, c.Context); err != nil {
			logger.L().Error("migration failed", zap.Error(err))
			return err
		}
		return nil
	}
}

type migrator struct {
	db    *sql.DB
	files []string
	out   io.Writer
}

func newMigrator(conn *sql.DB, dir string, out io.Writer) (*migrator, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}
	sort.Strings(files)
	return &migrator{db: conn, files: files, out: out}, nil
}

func (m *migrator) ensureVersionTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}
	return nil
}

// up applies every migration not yet recorded, each in its own
// transaction together with its version row.
func (m *migrator) up(ctx context.Context) error {
	if err := m.ensureVersionTable(ctx); err != nil {
		return err
	}

	applied := 0
	for _, file := range m.files {
		version := filepath.Base(file)

		var exists bool
		err := m.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			continue
		}

		upSQL, err := readSection(file, "Up")
		if err != nil {
			return err
		}

		fmt.Fprintf(m.out, "applying %s\n", version)
		err = m.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, upSQL); err != nil {
				return fmt.Errorf("migration %s failed: %w", version, err)
			}
			if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
				return fmt.Errorf("failed to record migration version: %w", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		applied++
	}

	fmt.Fprintf(m.out, "%d migration(s) applied\n", applied)
	return nil
}

func (m *migrator) down(ctx context.Context) error {
	if err := m.ensureVersionTable(ctx); err != nil {
		return err
	}

	var version string
	err := m.db.QueryRowContext(ctx,
		`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		fmt.Fprintln(m.out, "nothing to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get last applied migration: %w", err)
	}

	file := ""
	for _, f := range m.files {
		if filepath.Base(f) == version {
			file = f
			break
		}
	}
	if file == "" {
		return fmt.Errorf("migration file not found for version: %s", version)
	}

	downSQL, err := readSection(file, "Down")
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "rolling back %s\n", version)
	return m.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, downSQL); err != nil {
			return fmt.Errorf("rollback of %s failed: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, version); err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
}

func (m *migrator) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func readSection(file, section string) (string, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	part := extractMigrationPart(string(content), section)
	if strings.TrimSpace(part) == "" {
		return "", fmt.Errorf("%s has no %q section", filepath.Base(file), section)
	}
	return part, nil
}

// extractMigrationPart returns the lines between "-- +migrate <section>"
// and the next marker.
func extractMigrationPart(content string, section string) string {
	var part strings.Builder
	inPart := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-- +migrate") {
			if inPart {
				break
			}
			inPart = trimmed == "-- +migrate "+section
			continue
		}
		if inPart {
			part.WriteString(line + "\n")
		}
	}
	return part.String()
}
