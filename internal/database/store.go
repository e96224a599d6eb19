package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	errs "github.com/edgard/aibridge/internal/errors"
)

// Store defines the usage ledger operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// RecordRequest inserts one request record. CreatedAt defaults to now.
	RecordRequest(ctx context.Context, rec *RequestRecord) error

	// UsageSince summarises requests created at or after since, grouped by
	// command and status.
	UsageSince(ctx context.Context, since time.Time) ([]UsageSummary, error)

	// PruneRequests deletes records created before cutoff and returns how many
	// were removed.
	PruneRequests(ctx context.Context, cutoff time.Time) (int64, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) RecordRequest(ctx context.Context, rec *RequestRecord) error {
	if rec == nil {
		return errs.NewDatabaseError("cannot record nil request", nil)
	}
	if rec.Command == "" {
		return errs.NewDatabaseError("request record must have a command", nil)
	}
	if rec.Status == "" {
		return errs.NewDatabaseError("request record must have a status", nil)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	res, err := s.db.NamedExecContext(ctx, `
		INSERT INTO request_log (created_at, user_id, command, model, status, parts, latency_ms)
		VALUES (:created_at, :user_id, :command, :model, :status, :parts, :latency_ms)`, rec)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to record request", "command", rec.Command, "error", err)
		return errs.NewDatabaseError("failed to insert request record", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	return nil
}

func (s *sqlxStore) UsageSince(ctx context.Context, since time.Time) ([]UsageSummary, error) {
	var rows []UsageSummary
	err := s.db.SelectContext(ctx, &rows, `
		SELECT command, status, COUNT(*) AS count, COALESCE(AVG(latency_ms), 0) AS avg_latency_ms
		FROM request_log
		WHERE created_at >= ?
		GROUP BY command, status
		ORDER BY command, status`, since.UTC())
	if err != nil {
		return nil, errs.NewDatabaseError("failed to query usage", err)
	}
	return rows, nil
}

func (s *sqlxStore) PruneRequests(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM request_log WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, errs.NewDatabaseError("failed to prune request records", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, errs.NewDatabaseError("failed to read pruned row count", err)
	}
	return n, nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting VACUUM", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite.
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Failed to execute VACUUM", "error", err)
		return errs.NewDatabaseError("failed to execute VACUUM", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully.")
	return nil
}
