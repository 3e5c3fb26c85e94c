package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestProperty_AttemptCountMatchesPolicy(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("an always-failing operation is invoked exactly MaxAttempts times", prop.ForAll(
		func(maxAttempts int) bool {
			calls := 0
			failure := errors.New("still failing")

			p := Policy{
				MaxAttempts:  maxAttempts,
				InitialDelay: time.Millisecond,
				Multiplier:   2,
				Sleep:        func(ctx context.Context, d time.Duration) error { return nil },
			}

			_, err := Do(context.Background(), p, func(ctx context.Context) (int, error) {
				calls++
				return 0, failure
			})

			return calls == maxAttempts && errors.Is(err, failure)
		},
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}

func TestProperty_DelaysFollowGeometricSchedule(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("waits between attempts double from the initial delay", prop.ForAll(
		func(maxAttempts int, initialMillis int) bool {
			var waits []time.Duration

			p := Policy{
				MaxAttempts:  maxAttempts,
				InitialDelay: time.Duration(initialMillis) * time.Millisecond,
				Multiplier:   2,
				Sleep: func(ctx context.Context, d time.Duration) error {
					waits = append(waits, d)
					return nil
				},
			}

			_, _ = Do(context.Background(), p, func(ctx context.Context) (int, error) {
				return 0, errors.New("nope")
			})

			if len(waits) != maxAttempts-1 {
				return false
			}

			expected := p.InitialDelay
			for _, w := range waits {
				if w != expected {
					return false
				}
				expected *= 2
			}
			return true
		},
		gen.IntRange(1, 8),
		gen.IntRange(1, 1000),
	))

	properties.TestingRun(t)
}
