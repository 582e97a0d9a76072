// Package sim injects the artificial latency and write failures that make
// the engine behave like a flaky network service.
package sim

import (
	"math/rand"
	"sync"
	"time"
)

const (
	// DefaultLatencyMin and DefaultLatencyMax bound the uniform delay
	// applied to every simulated request.
	DefaultLatencyMin = 200 * time.Millisecond
	DefaultLatencyMax = 1200 * time.Millisecond

	// DefaultErrorRate is the probability that a write is rejected with a
	// transient error instead of running.
	DefaultErrorRate = 0.08
)

// Config holds simulator tuning. Zero latencies fall back to the defaults
// above; ErrorRate 0 means writes never fail (config.Load supplies
// DefaultErrorRate when the variable is unset); Seed 0 seeds from the clock.
type Config struct {
	LatencyMin time.Duration
	LatencyMax time.Duration
	ErrorRate  float64
	Seed       int64
}

// Simulator draws request latencies and write-failure outcomes from a
// seedable random source. Reads are delayed but never failed; writes are
// delayed and then failed with independent probability ErrorRate, always
// before the underlying operation runs.
type Simulator struct {
	mu         sync.Mutex
	rng        *rand.Rand
	latencyMin time.Duration
	latencyMax time.Duration
	errorRate  float64
	sleep      func(time.Duration)
}

// Option configures the simulator
type Option func(*Simulator)

// WithSleeper replaces the real sleep, letting tests record drawn latencies
// without waiting them out
func WithSleeper(sleep func(time.Duration)) Option {
	return func(s *Simulator) {
		s.sleep = sleep
	}
}

// New creates a simulator from config
func New(cfg Config, opts ...Option) *Simulator {
	s := &Simulator{
		latencyMin: cfg.LatencyMin,
		latencyMax: cfg.LatencyMax,
		errorRate:  cfg.ErrorRate,
		sleep:      time.Sleep,
	}
	if s.latencyMin <= 0 {
		s.latencyMin = DefaultLatencyMin
	}
	if s.latencyMax <= s.latencyMin {
		s.latencyMax = DefaultLatencyMax
	}
	if s.errorRate < 0 {
		s.errorRate = 0
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(seed))

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Delay blocks for a latency drawn uniformly from [LatencyMin, LatencyMax)
// and returns the drawn value
func (s *Simulator) Delay() time.Duration {
	s.mu.Lock()
	d := s.latencyMin + time.Duration(s.rng.Int63n(int64(s.latencyMax-s.latencyMin)))
	s.mu.Unlock()

	s.sleep(d)
	return d
}

// FailWrite reports whether the next write should be rejected with a
// simulated transient error. Each call is an independent draw.
func (s *Simulator) FailWrite() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < s.errorRate
}
