package database

import (
	"time"
)

// Request outcomes stored in the ledger.
const (
	StatusOK            = "ok"
	StatusRejected      = "rejected"
	StatusGatewayError  = "gateway_error"
	StatusDeliveryError = "delivery_error"
)

// RequestRecord is one handled command. It holds who asked, what ran and how
// it ended, but never the message or response text.
type RequestRecord struct {
	ID        int64     `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	UserID    string `db:"user_id"`
	Command   string `db:"command"`
	Model     string `db:"model"`
	Status    string `db:"status"`
	Parts     int    `db:"parts"`
	LatencyMS int64  `db:"latency_ms"`
}

// UsageSummary aggregates requests sharing a command and status.
type UsageSummary struct {
	Command      string  `db:"command"`
	Status       string  `db:"status"`
	Count        int     `db:"count"`
	AvgLatencyMS float64 `db:"avg_latency_ms"`
}
