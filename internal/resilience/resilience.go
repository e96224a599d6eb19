// Package resilience wraps outbound calls in circuit breakers so a failing
// AI provider is skipped quickly instead of being hammered on every message.
// Breakers fail fast; they never retry.
package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrCircuitOpen indicates the circuit breaker is open.
var ErrCircuitOpen = gobreaker.ErrOpenState

// ErrTooManyRequests indicates a half-open breaker is already running its
// single probe call.
var ErrTooManyRequests = gobreaker.ErrTooManyRequests

// CircuitState represents the state of a circuit breaker
type CircuitState int

const (
	StateClosed CircuitState = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of CircuitState
func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateHalfOpen:
		return "HALF-OPEN"
	case StateOpen:
		return "OPEN"
	default:
		return "UNKNOWN"
	}
}

// CircuitBreaker implements the circuit breaker pattern using gobreaker
type CircuitBreaker struct {
	name string
	cb   *gobreaker.CircuitBreaker
}

// CircuitBreakerConfig holds configuration for circuit breakers
type CircuitBreakerConfig struct {
	Name string
	// MaxFailures is the number of consecutive failures that opens the breaker.
	MaxFailures int
	// ResetInterval is how long the breaker stays open before probing again.
	ResetInterval time.Duration
	// IsExcluded reports errors that belong to a single request, such as an
	// unknown model. They are returned to the caller but never count as a
	// failure of the protected service.
	IsExcluded func(err error) bool
	Logger     *slog.Logger
}

// mapState converts gobreaker state to our CircuitState
func mapState(state gobreaker.State) CircuitState {
	switch state {
	case gobreaker.StateClosed:
		return StateClosed
	case gobreaker.StateHalfOpen:
		return StateHalfOpen
	case gobreaker.StateOpen:
		return StateOpen
	default:
		return StateClosed
	}
}

// NewCircuitBreaker creates a new circuit breaker
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.ResetInterval <= 0 {
		cfg.ResetInterval = 60 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.ResetInterval,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(cfg.MaxFailures)
		},
		// A caller giving up is not a provider failure.
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			return cfg.IsExcluded != nil && cfg.IsExcluded(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("Circuit breaker state changed",
				"name", name,
				"from", mapState(from),
				"to", mapState(to),
			)
		},
	}

	return &CircuitBreaker{
		name: cfg.Name,
		cb:   gobreaker.NewCircuitBreaker(settings),
	}
}

// Name returns the breaker name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() CircuitState {
	return mapState(cb.cb.State())
}

// Execute runs an operation through the circuit breaker. While the breaker is
// open it returns ErrCircuitOpen without calling operation.
func (cb *CircuitBreaker) Execute(ctx context.Context, operation func(context.Context) error) error {
	_, err := cb.cb.Execute(func() (interface{}, error) {
		return nil, operation(ctx)
	})
	return err
}

// Call runs an operation returning a value through the circuit breaker.
func Call[T any](ctx context.Context, cb *CircuitBreaker, operation func(context.Context) (T, error)) (T, error) {
	var out T
	err := cb.Execute(ctx, func(ctx context.Context) error {
		v, err := operation(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	return out, err
}
