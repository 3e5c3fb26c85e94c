// Copyright 2026 AgentFlow Authors
// Use of this source code is governed by the project license.

// Package retry provides the bounded exponential-backoff invoker that wraps
// completion calls. The loop is an explicit state machine (attempting →
// waiting → attempting … → succeeded | failed) with an injectable sleep, so
// the same logic runs unchanged under real timers, test clocks, or other
// schedulers.
package retry

import (
	"context"
	"time"
)

// Policy configures the backoff loop.
//
// Every failure is retried identically: network errors, rate limits, and
// malformed transport responses all consume one attempt. When the budget is
// exhausted the last failure is returned unchanged, so callers can inspect
// the original upstream cause.
type Policy struct {
	// MaxAttempts bounds the number of attempts, not wall-clock time.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// InitialDelay is the wait after the first failed attempt.
	InitialDelay time.Duration

	// Multiplier scales the delay after each failed attempt. Values at or
	// below 0 are treated as 1.
	Multiplier float64

	// MaxDelay caps the delay when positive; 0 leaves it uncapped.
	MaxDelay time.Duration

	// OnRetry, when set, observes each scheduled retry: the 1-based attempt
	// that failed, the wait before the next attempt, and the failure.
	OnRetry func(attempt int, delay time.Duration, err error)

	// Sleep waits between attempts. Nil selects a context-aware timer
	// sleep. Tests inject a recorder here to assert the delay sequence
	// without waiting.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns the standard budget: 10 attempts, 500ms initial
// delay, doubling after each failure, no jitter, no cap.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:  10,
		InitialDelay: 500 * time.Millisecond,
		Multiplier:   2,
	}
}

func (p Policy) normalized() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.Multiplier <= 0 {
		p.Multiplier = 1
	}
	if p.InitialDelay < 0 {
		p.InitialDelay = 0
	}
	return p
}

type phase int

const (
	phaseAttempting phase = iota
	phaseWaiting
	phaseSucceeded
	phaseFailed
)

// machine holds the retry state between attempts. It performs no waiting
// itself; Do drives it and honors the delays it hands out.
type machine struct {
	policy  Policy
	phase   phase
	attempt int // 1-based
	delay   time.Duration
	lastErr error
}

func newMachine(p Policy) *machine {
	return &machine{
		policy:  p,
		phase:   phaseAttempting,
		attempt: 1,
		delay:   p.InitialDelay,
	}
}

// observe feeds the outcome of the current attempt into the machine.
func (m *machine) observe(err error) {
	if err == nil {
		m.phase = phaseSucceeded
		return
	}
	m.lastErr = err
	if m.attempt >= m.policy.MaxAttempts {
		m.phase = phaseFailed
		return
	}
	m.phase = phaseWaiting
}

// advance moves a waiting machine to its next attempt. It returns the delay
// to honor first and scales the one after it.
func (m *machine) advance() time.Duration {
	d := m.delay
	next := time.Duration(float64(m.delay) * m.policy.Multiplier)
	if m.policy.MaxDelay > 0 && next > m.policy.MaxDelay {
		next = m.policy.MaxDelay
	}
	m.delay = next
	m.attempt++
	m.phase = phaseAttempting
	return d
}

// Do runs op under the policy, returning its first success or the final
// attempt's error unchanged. Context cancellation during a wait returns
// ctx.Err().
func Do[T any](ctx context.Context, p Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T
	p = p.normalized()
	sleep := p.Sleep
	if sleep == nil {
		sleep = timerSleep
	}

	m := newMachine(p)
	for {
		result, err := op(ctx)
		m.observe(err)
		switch m.phase {
		case phaseSucceeded:
			return result, nil
		case phaseFailed:
			return zero, m.lastErr
		}

		failed := m.attempt
		d := m.advance()
		if p.OnRetry != nil {
			p.OnRetry(failed, d, m.lastErr)
		}
		if err := sleep(ctx, d); err != nil {
			return zero, err
		}
	}
}

// Run is Do for operations without a result.
func Run(ctx context.Context, p Policy, op func(context.Context) error) error {
	_, err := Do(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

func timerSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
