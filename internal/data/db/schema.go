package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
)

// Schema files are named NNNN_name.sql and numbered from 0001 without gaps.
// The applied version is kept in SQLite's user_version header field, so
// upgrades are forward only.
//
//go:embed schema/*.sql
var schemaFS embed.FS

type schemaStep struct {
	version int
	name    string
	sql     string
}

func loadSchema() ([]schemaStep, error) {
	names, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return nil, fmt.Errorf("list schema files: %w", err)
	}

	// fs.Glob returns names in lexical order, which is version order for
	// zero-padded prefixes.
	steps := make([]schemaStep, 0, len(names))
	for i, p := range names {
		version, name, err := parseSchemaName(path.Base(p))
		if err != nil {
			return nil, err
		}
		if version != i+1 {
			return nil, fmt.Errorf("schema file %s: expected version %04d", path.Base(p), i+1)
		}

		body, err := fs.ReadFile(schemaFS, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		steps = append(steps, schemaStep{version: version, name: name, sql: string(body)})
	}
	return steps, nil
}

// parseSchemaName splits "0001_notifications.sql" into 1 and "notifications".
func parseSchemaName(file string) (int, string, error) {
	base, ok := strings.CutSuffix(file, ".sql")
	if !ok {
		return 0, "", fmt.Errorf("schema file %q: missing .sql suffix", file)
	}

	num, name, ok := strings.Cut(base, "_")
	if !ok || name == "" || len(num) != 4 {
		return 0, "", fmt.Errorf("schema file %q: expected NNNN_name.sql", file)
	}

	version, err := strconv.Atoi(num)
	if err != nil || version <= 0 {
		return 0, "", fmt.Errorf("schema file %q: invalid version %q", file, num)
	}
	return version, name, nil
}

func schemaVersion(ctx context.Context, conn *sql.DB) (int, error) {
	var v int
	if err := conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return v, nil
}

// upgradeSchema applies every schema file newer than the stored version.
// Each step and its version bump commit together.
func (db *DB) upgradeSchema(ctx context.Context) error {
	steps, err := loadSchema()
	if err != nil {
		return err
	}

	current, err := schemaVersion(ctx, db.conn)
	if err != nil {
		return err
	}
	if current > len(steps) {
		return fmt.Errorf("database schema version %d is newer than supported version %d", current, len(steps))
	}

	for _, step := range steps[current:] {
		db.log.Info().Int("version", step.version).Str("name", step.name).Msg("upgrading schema")

		err := db.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, step.sql); err != nil {
				return err
			}
			// PRAGMA does not accept bound parameters.
			_, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", step.version))
			return err
		})
		if err != nil {
			return fmt.Errorf("schema %04d (%s): %w", step.version, step.name, err)
		}
	}
	return nil
}
