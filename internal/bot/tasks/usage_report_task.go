package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

const reportWindow = 24 * time.Hour

// newUsageReportTask creates the task that logs a summary of the requests
// handled during the last day.
func newUsageReportTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "usage_report")

	return func(ctx context.Context) error {
		since := time.Now().Add(-reportWindow)

		summary, err := deps.Store.UsageSince(ctx, since)
		if err != nil {
			log.ErrorContext(ctx, "Failed to load usage summary", "error", err)
			return fmt.Errorf("usage report failed: %w", err)
		}

		total := 0
		for _, s := range summary {
			total += s.Count
			log.InfoContext(ctx, "Usage",
				"command", s.Command,
				"status", s.Status,
				"count", humanize.Comma(int64(s.Count)),
				"avg_latency_ms", int64(s.AvgLatencyMS))
		}

		log.InfoContext(ctx, "Usage report completed", "requests", humanize.Comma(int64(total)), "since", since.UTC().Format(time.RFC3339))
		return nil
	}
}
