package retry

import (
	"context"
	"time"
)

// Classifier reports whether an error is temporary and the operation may
// succeed if attempted again.
type Classifier interface {
	IsTransient(err error) bool
}

// Strategy controls how many retries are made and how long to wait before each.
type Strategy interface {
	// NextDelay returns the wait before retry attempt (0-based).
	NextDelay(attempt int) time.Duration
	// MaxAttempts returns the number of retries after the first try; negative
	// means unlimited.
	MaxAttempts() int
}

// Executor runs operations with retry logic.
type Executor struct {
	classifier Classifier
	strategy   Strategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a new retry executor.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier Classifier, strategy Strategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// WithOnRetry returns a copy of e that calls callback before each wait.
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs operation until it succeeds, fails with a non-transient error,
// the retries are exhausted or ctx is done. The last error is returned.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	err := operation(ctx)
	if err == nil || !e.classifier.IsTransient(err) {
		return err
	}

	limit := e.strategy.MaxAttempts()
	for attempt := 0; limit < 0 || attempt < limit; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = operation(ctx)
		if err == nil || !e.classifier.IsTransient(err) {
			return err
		}
	}
	return err
}
