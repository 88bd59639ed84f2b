package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/thqlabel/thqlabel/internal/pkg/logger"
)

// State represents the circuit breaker state
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
	ErrTooManyRequests    = errors.New("too many requests in half-open state")
)

// Config holds circuit breaker configuration
type Config struct {
	Name             string
	MaxRequests      uint32        // Max requests allowed in half-open state
	Interval         time.Duration // Interval to clear counters in closed state
	Timeout          time.Duration // Time spent open before probing again
	FailureThreshold uint32        // Consecutive failures that open the circuit
	IsFailure        func(err error) bool
}

// DefaultConfig returns the breaker settings used for payment providers
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		IsFailure: func(err error) bool {
			return err != nil
		},
	}
}

// Counts holds the counters for circuit breaker
type Counts struct {
	Requests             uint32
	TotalFailures        uint32
	ConsecutiveFailures  uint32
	ConsecutiveSuccesses uint32
}

// CircuitBreaker stops calling a provider after repeated failures
type CircuitBreaker struct {
	config Config
	logger *logger.ZapLogger

	mutex  sync.Mutex
	state  State
	counts Counts
	expiry time.Time
	now    func() time.Time
}

// New creates a new circuit breaker
func New(config Config, l *logger.ZapLogger) *CircuitBreaker {
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}
	cb := &CircuitBreaker{config: config, logger: l, now: time.Now}
	cb.expiry = cb.now().Add(config.Interval)
	return cb
}

// Execute executes fn unless the circuit is open
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}
	err := fn(ctx)
	cb.afterRequest(err)
	return err
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	now := cb.now()
	switch cb.state {
	case StateClosed:
		if cb.expiry.Before(now) {
			cb.counts = Counts{}
			cb.expiry = now.Add(cb.config.Interval)
		}
	case StateOpen:
		if !cb.expiry.Before(now) {
			return ErrCircuitBreakerOpen
		}
		cb.setState(StateHalfOpen)
		cb.counts = Counts{}
	case StateHalfOpen:
		if cb.counts.Requests >= cb.config.MaxRequests {
			return ErrTooManyRequests
		}
	}

	cb.counts.Requests++
	return nil
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()

	if cb.config.IsFailure(err) {
		cb.counts.TotalFailures++
		cb.counts.ConsecutiveFailures++
		cb.counts.ConsecutiveSuccesses = 0
		if cb.state == StateHalfOpen ||
			(cb.state == StateClosed && cb.counts.ConsecutiveFailures >= cb.config.FailureThreshold) {
			cb.setState(StateOpen)
			cb.expiry = cb.now().Add(cb.config.Timeout)
		}
		return
	}

	cb.counts.ConsecutiveSuccesses++
	cb.counts.ConsecutiveFailures = 0
	if cb.state == StateHalfOpen {
		cb.setState(StateClosed)
		cb.expiry = cb.now().Add(cb.config.Interval)
	}
}

func (cb *CircuitBreaker) setState(state State) {
	if cb.state == state {
		return
	}
	prev := cb.state
	cb.state = state

	cb.logger.Info("Circuit breaker state changed",
		logger.String("name", cb.config.Name),
		logger.String("from", prev.String()),
		logger.String("to", state.String()),
		logger.Int64("consecutive_failures", int64(cb.counts.ConsecutiveFailures)))
}

// State returns the current state of the circuit breaker
func (cb *CircuitBreaker) State() State {
	cb.mutex.Lock()
	defer cb.mutex.Unlock()
	return cb.state
}

// Manager keeps one breaker per remote host
type Manager struct {
	breakers  map[string]*CircuitBreaker
	mutex     sync.Mutex
	logger    *logger.ZapLogger
	configFor func(name string) Config
}

// NewManager creates a manager building breakers from configFor.
// A nil configFor uses DefaultConfig.
func NewManager(l *logger.ZapLogger, configFor func(name string) Config) *Manager {
	if configFor == nil {
		configFor = DefaultConfig
	}
	return &Manager{
		breakers:  make(map[string]*CircuitBreaker),
		logger:    l,
		configFor: configFor,
	}
}

// Get returns the breaker for name, creating it on first use
func (m *Manager) Get(name string) *CircuitBreaker {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if cb, ok := m.breakers[name]; ok {
		return cb
	}
	config := m.configFor(name)
	config.Name = name
	cb := New(config, m.logger)
	m.breakers[name] = cb
	return cb
}

// Execute executes fn with the named circuit breaker
func (m *Manager) Execute(ctx context.Context, name string, fn func(context.Context) error) error {
	return m.Get(name).Execute(ctx, fn)
}

// States returns the state of every known breaker
func (m *Manager) States() map[string]string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	out := make(map[string]string, len(m.breakers))
	for name, cb := range m.breakers {
		out[name] = cb.State().String()
	}
	return out
}
