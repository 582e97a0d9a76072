package sim

import (
	"math"
	"testing"
	"time"
)

func TestDelayBounds(t *testing.T) {
	var slept []time.Duration
	s := New(Config{Seed: 1}, WithSleeper(func(d time.Duration) {
		slept = append(slept, d)
	}))

	for i := 0; i < 1000; i++ {
		d := s.Delay()
		if d < DefaultLatencyMin || d >= DefaultLatencyMax {
			t.Fatalf("draw %d: latency %v outside [%v, %v)", i, d, DefaultLatencyMin, DefaultLatencyMax)
		}
	}
	if len(slept) != 1000 {
		t.Fatalf("expected 1000 sleeps recorded, got %d", len(slept))
	}
	// The drawn value is the slept value
	if slept[0] < DefaultLatencyMin || slept[0] >= DefaultLatencyMax {
		t.Errorf("slept duration %v outside bounds", slept[0])
	}
}

func TestFailWriteRate(t *testing.T) {
	s := New(Config{ErrorRate: DefaultErrorRate, Seed: 42}, WithSleeper(func(time.Duration) {}))

	const draws = 10000
	failures := 0
	for i := 0; i < draws; i++ {
		if s.FailWrite() {
			failures++
		}
	}

	rate := float64(failures) / draws
	if math.Abs(rate-DefaultErrorRate) > 0.02 {
		t.Errorf("observed failure rate %.4f, want about %.2f", rate, DefaultErrorRate)
	}
}

func TestSeedDeterminism(t *testing.T) {
	a := New(Config{Seed: 7}, WithSleeper(func(time.Duration) {}))
	b := New(Config{Seed: 7}, WithSleeper(func(time.Duration) {}))

	for i := 0; i < 100; i++ {
		if a.Delay() != b.Delay() {
			t.Fatal("same seed must draw the same latencies")
		}
		if a.FailWrite() != b.FailWrite() {
			t.Fatal("same seed must draw the same failure outcomes")
		}
	}
}

func TestZeroErrorRateNeverFails(t *testing.T) {
	s := New(Config{Seed: 3}, WithSleeper(func(time.Duration) {}))
	for i := 0; i < 1000; i++ {
		if s.FailWrite() {
			t.Fatal("zero error rate must never fail a write")
		}
	}
}

func TestNegativeErrorRateClampsToZero(t *testing.T) {
	s := New(Config{ErrorRate: -1, Seed: 3}, WithSleeper(func(time.Duration) {}))
	for i := 0; i < 1000; i++ {
		if s.FailWrite() {
			t.Fatal("negative error rate must clamp to never failing")
		}
	}
}
