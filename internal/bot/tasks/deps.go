// Package tasks implements the housekeeping jobs run by the scheduler:
// database maintenance, pruning of old usage records and a daily usage report.
package tasks

import (
	"log/slog"

	"github.com/edgard/aibridge/internal/config"
	"github.com/edgard/aibridge/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
