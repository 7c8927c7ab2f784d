package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/terraincognita07/habitflow/internal/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const DefaultBusyTimeout = 5 * time.Second

// Options tune the habitflow database connection.
type Options struct {
	// BusyTimeout is how long a writer waits on a locked database. Check-ins
	// from the API and the CLI can contend on the same file.
	BusyTimeout time.Duration
	// LogQueries logs every statement at debug level.
	LogQueries bool
}

// OpenSQLite opens the database with default options.
func OpenSQLite(dbPath string) (*gorm.DB, error) {
	return Open(dbPath, Options{})
}

// Open opens (creating when needed) the habitflow database file and brings
// the schema up to date.
func Open(dbPath string, options Options) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	database, err := gorm.Open(sqlite.Open(sqliteDSN(dbPath, options.BusyTimeout)), &gorm.Config{
		Logger: gormlogger.New(logger.GormWriter(), gormlogger.Config{
			SlowThreshold:             250 * time.Millisecond,
			LogLevel:                  queryLogLevel(options.LogQueries),
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	if err := applyEmbeddedMigrations(database); err != nil {
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	return database, nil
}

func sqliteDSN(dbPath string, busyTimeout time.Duration) string {
	if busyTimeout <= 0 {
		busyTimeout = DefaultBusyTimeout
	}
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", dbPath, busyTimeout.Milliseconds())
}

func queryLogLevel(logQueries bool) gormlogger.LogLevel {
	if logQueries {
		return gormlogger.Info
	}
	return gormlogger.Warn
}
