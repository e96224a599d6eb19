// Package database provides the usage ledger: database setup, migrations and
// the Store used to record request metadata. Message text is never stored.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	errs "github.com/edgard/aibridge/internal/errors"
	"github.com/edgard/aibridge/migrations"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

// BusyTimeout is how long a ledger write waits on a locked database before
// failing. Handlers record requests concurrently with the maintenance tasks.
const BusyTimeout = 5 * time.Second

// ledgerPragmas are applied to every connection opened on the ledger.
var ledgerPragmas = []string{
	"journal_mode(WAL)",
	fmt.Sprintf("busy_timeout(%d)", BusyTimeout.Milliseconds()),
	"foreign_keys(1)",
}

// NewDB opens the usage ledger at dbPath, creating its parent directory when
// needed, and applies pending migrations.
func NewDB(ctx context.Context, log *slog.Logger, dbPath string) (*sqlx.DB, error) {
	log = log.With("component", "database")
	dbName := ExtractDBNameFromPath(dbPath)

	if dir := filepath.Dir(dbName); !isMemory(dbName) && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errs.NewDatabaseError("failed to create database directory", err)
		}
	}

	db, err := sqlx.Open("sqlite", ledgerDSN(dbPath))
	if err != nil {
		return nil, errs.NewDatabaseError("failed to open database", err)
	}

	// SQLite doesn't support concurrent writes, so max open conns = 1
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(log, db)
		return nil, errs.NewDatabaseError("failed to connect to database", err)
	}

	if err := ApplyMigrations(log, db.DB, dbName); err != nil {
		closeQuietly(log, db)
		return nil, errs.NewDatabaseError("failed to apply migrations", err)
	}

	log.Info("Usage ledger ready", "path", dbName)
	return db, nil
}

// CloseDB closes the database connection pool.
func CloseDB(log *slog.Logger, db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database connection", "error", err)
		return
	}
	log.Info("Database connection closed")
}

func closeQuietly(log *slog.Logger, db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Error("Error closing database after setup failure", "error", err)
	}
}

// ApplyMigrations runs database migrations using embedded files.
func ApplyMigrations(log *slog.Logger, db *sql.DB, dbName string) error {
	if db == nil {
		return errors.New("database connection is nil, cannot apply migrations")
	}
	if dbName == "" {
		return errors.New("database name/path for migration driver is empty")
	}

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create embed source driver instance: %w", err)
	}

	dbDriver, err := sqlite.WithInstance(db, &sqlite.Config{DatabaseName: dbName})
	if err != nil {
		return fmt.Errorf("failed to create sqlite database driver: %w", err)
	}
	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug("Ledger schema up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, _ := migrator.Version()
	log.Info("Ledger migrations applied", "version", version)
	return nil
}

// ledgerDSN turns a configured path into a driver DSN carrying the ledger
// pragmas. Pragmas already present in the path are kept and take precedence.
func ledgerDSN(path string) string {
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	var b strings.Builder
	b.WriteString(path)
	for _, p := range ledgerPragmas {
		name := p[:strings.Index(p, "(")]
		if strings.Contains(path, "_pragma="+name) {
			continue
		}
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(p)
		sep = "&"
	}
	return b.String()
}

func isMemory(name string) bool {
	return name == "" || strings.HasPrefix(name, ":memory:")
}

// ExtractDBNameFromPath extracts the database file path from a possibly URL-formatted path.
// This handles both simple file paths and paths with URL-style encoding.
func ExtractDBNameFromPath(path string) string {
	path = strings.TrimPrefix(path, "file:")

	if idx := strings.Index(path, "?"); idx != -1 {
		path = path[:idx]
	}

	if decoded, err := url.PathUnescape(path); err == nil {
		return decoded
	}

	return path
}
