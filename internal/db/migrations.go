package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/terraincognita07/habitflow/internal/logger"
	embeddedmigrations "github.com/terraincognita07/habitflow/migrations"
	"gorm.io/gorm"
)

var (
	migrationFileNamePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
	addColumnPattern         = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)
)

type schemaMigration struct {
	Version    string
	Sequence   int
	FileName   string
	Statements []string
}

// MigrationStatus describes one embedded migration and whether the database
// has recorded it.
type MigrationStatus struct {
	Version string
	Name    string
	Applied bool
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	pending, err := pendingMigrations(database)
	if err != nil {
		return err
	}
	for _, migration := range pending {
		if err := runMigration(database, migration); err != nil {
			return err
		}
		logger.Info("applied migration", "version", migration.Version, "file", migration.FileName)
	}
	return nil
}

// Migrations lists every embedded migration in apply order.
func Migrations(database *gorm.DB) ([]MigrationStatus, error) {
	all, err := readEmbeddedMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := appliedVersions(database)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(all))
	for _, migration := range all {
		_, done := applied[migration.Version]
		statuses = append(statuses, MigrationStatus{
			Version: migration.Version,
			Name:    migration.FileName,
			Applied: done,
		})
	}
	return statuses, nil
}

func pendingMigrations(database *gorm.DB) ([]schemaMigration, error) {
	all, err := readEmbeddedMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := appliedVersions(database)
	if err != nil {
		return nil, err
	}

	pending := make([]schemaMigration, 0, len(all))
	for _, migration := range all {
		if _, done := applied[migration.Version]; !done {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

func readEmbeddedMigrations() ([]schemaMigration, error) {
	entries, err := fs.ReadDir(embeddedmigrations.Files, ".")
	if err != nil {
		return nil, fmt.Errorf("read embedded migrations: %w", err)
	}

	byVersion := make(map[string]string, len(entries))
	result := make([]schemaMigration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		matches := migrationFileNamePattern.FindStringSubmatch(name)
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		if previous, duplicate := byVersion[version]; duplicate {
			return nil, fmt.Errorf("migration version %s used by %s and %s", version, previous, name)
		}
		byVersion[version] = name

		sequence, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version %s: %w", name, err)
		}
		body, err := fs.ReadFile(embeddedmigrations.Files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		statements := splitStatements(string(body))
		if len(statements) == 0 {
			return nil, fmt.Errorf("migration %s: %w", name, errors.New("no SQL statements"))
		}

		result = append(result, schemaMigration{
			Version:    version,
			Sequence:   sequence,
			FileName:   name,
			Statements: statements,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Sequence != result[j].Sequence {
			return result[i].Sequence < result[j].Sequence
		}
		return result[i].FileName < result[j].FileName
	})
	return result, nil
}

func appliedVersions(database *gorm.DB) (map[string]struct{}, error) {
	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return nil, fmt.Errorf("create schema_migrations table: %w", err)
	}

	var versions []string
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}
	applied := make(map[string]struct{}, len(versions))
	for _, version := range versions {
		applied[version] = struct{}{}
	}
	return applied, nil
}

func runMigration(database *gorm.DB, migration schemaMigration) error {
	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range migration.Statements {
			exists, err := columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", migration.FileName, err)
			}
			if exists {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s statement %q: %w", migration.FileName, statement, err)
			}
		}
		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.Version,
			migration.FileName,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.FileName, err)
		}
		return nil
	})
}

func splitStatements(sqlText string) []string {
	statements := make([]string, 0)
	for _, part := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// columnAlreadyAdded makes "ALTER TABLE ... ADD COLUMN" re-runnable on sqlite,
// which has no ADD COLUMN IF NOT EXISTS.
func columnAlreadyAdded(database *gorm.DB, statement string) (bool, error) {
	matches := addColumnPattern.FindStringSubmatch(statement)
	if len(matches) != 3 {
		return false, nil
	}
	table := unquoteIdentifier(matches[1])
	column := unquoteIdentifier(matches[2])

	var columns []struct {
		Name string `gorm:"column:name"`
	}
	query := fmt.Sprintf(`PRAGMA table_info("%s")`, strings.ReplaceAll(table, `"`, `""`))
	if err := database.Raw(query).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("table_info %s: %w", table, err)
	}
	for _, existing := range columns {
		if strings.EqualFold(strings.TrimSpace(existing.Name), column) {
			return true, nil
		}
	}
	return false, nil
}

func unquoteIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
