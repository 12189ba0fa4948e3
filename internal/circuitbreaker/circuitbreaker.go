// Package circuitbreaker lets the client fail fast while the BinSolver service
// is failing, instead of waiting out the full timeout on every call.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned when the breaker rejects a call.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the state of the circuit breaker.
type State int

const (
	// StateClosed means calls pass through normally.
	StateClosed State = iota
	// StateOpen means calls are rejected until the cooldown elapses.
	StateOpen
	// StateHalfOpen means a single trial call is allowed through.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config holds circuit breaker configuration.
type Config struct {
	// Name identifies the breaker in logs.
	Name string
	// FailureThreshold is the number of consecutive tripping failures that opens the circuit.
	FailureThreshold int
	// SuccessThreshold is the number of successful trials that closes a half-open circuit.
	SuccessThreshold int
	// Cooldown is how long the circuit stays open before a trial is allowed.
	Cooldown time.Duration
	// ShouldTrip reports whether an error counts as a failure. Errors it
	// rejects pass through without affecting the state. Nil counts every error.
	ShouldTrip func(error) bool
	// Logger receives state transitions. Nil uses the global logger.
	Logger *zerolog.Logger
	// Now is the clock; nil uses time.Now.
	Now func() time.Time
}

// DefaultConfig returns a default circuit breaker configuration.
func DefaultConfig() Config {
	return Config{
		Name:             "binsolver",
		FailureThreshold: 5,
		SuccessThreshold: 1,
		Cooldown:         30 * time.Second,
	}
}

// CircuitBreaker implements the circuit breaker pattern.
type CircuitBreaker struct {
	config   Config
	logger   zerolog.Logger
	mu       sync.Mutex
	state    State
	failures int
	trials   int
	inFlight bool
	openedAt time.Time
	rejected int
	// generation changes on every transition; results of calls admitted
	// in an earlier generation are ignored.
	generation uint64
}

// ticket records how a call was admitted.
type ticket struct {
	trial      bool
	generation uint64
}

// New creates a circuit breaker. Non-positive thresholds are raised to 1.
func New(config Config) *CircuitBreaker {
	if config.FailureThreshold < 1 {
		config.FailureThreshold = 1
	}
	if config.SuccessThreshold < 1 {
		config.SuccessThreshold = 1
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	logger := log.Logger
	if config.Logger != nil {
		logger = *config.Logger
	}
	return &CircuitBreaker{
		config: config,
		logger: logger.With().Str("circuit_breaker", config.Name).Logger(),
	}
}

// Execute runs fn unless the circuit is open. It returns ErrCircuitOpen
// without calling fn when the call is rejected, and ctx.Err() when ctx is
// already done.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t, err := cb.acquire()
	if err != nil {
		return err
	}

	err = fn(ctx)
	cb.release(t, err)
	return err
}

func (cb *CircuitBreaker) acquire() (ticket, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if cb.config.Now().Sub(cb.openedAt) < cb.config.Cooldown {
			cb.rejected++
			return ticket{}, ErrCircuitOpen
		}
		cb.transition(StateHalfOpen)
		cb.trials = 0
		fallthrough
	case StateHalfOpen:
		if cb.inFlight {
			cb.rejected++
			return ticket{}, ErrCircuitOpen
		}
		cb.inFlight = true
		return ticket{trial: true, generation: cb.generation}, nil
	default:
		return ticket{generation: cb.generation}, nil
	}
}

func (cb *CircuitBreaker) release(t ticket, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if t.trial {
		cb.inFlight = false
	}
	if t.generation != cb.generation {
		return
	}
	if err != nil && cb.trips(err) {
		cb.onFailure()
		return
	}
	cb.onSuccess()
}

func (cb *CircuitBreaker) trips(err error) bool {
	if cb.config.ShouldTrip == nil {
		return true
	}
	return cb.config.ShouldTrip(err)
}

func (cb *CircuitBreaker) onFailure() {
	cb.failures++
	switch cb.state {
	case StateClosed:
		if cb.failures >= cb.config.FailureThreshold {
			cb.open()
		}
	case StateHalfOpen:
		cb.open()
	}
}

func (cb *CircuitBreaker) onSuccess() {
	cb.failures = 0
	if cb.state != StateHalfOpen {
		return
	}
	cb.trials++
	if cb.trials >= cb.config.SuccessThreshold {
		cb.transition(StateClosed)
		cb.trials = 0
	}
}

func (cb *CircuitBreaker) open() {
	cb.openedAt = cb.config.Now()
	cb.transition(StateOpen)
}

func (cb *CircuitBreaker) transition(to State) {
	from := cb.state
	cb.state = to
	cb.generation++
	event := cb.logger.Info()
	if to == StateOpen {
		event = cb.logger.Warn().Int("failure_count", cb.failures)
	}
	event.Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Stats is a snapshot of the breaker counters.
type Stats struct {
	State        string
	FailureCount int
	Rejected     int
	OpenedAt     time.Time
	IsHealthy    bool
}

// GetStats returns current circuit breaker statistics.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return Stats{
		State:        cb.state.String(),
		FailureCount: cb.failures,
		Rejected:     cb.rejected,
		OpenedAt:     cb.openedAt,
		IsHealthy:    cb.state == StateClosed,
	}
}
