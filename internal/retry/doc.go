// Package retry re-runs operations that fail with transient errors, waiting
// with exponential backoff between attempts.
//
// # Example Usage
//
//	executor := retry.NewExecutor(retry.NewSQLiteClassifier(), retry.NewExponentialBackoff(3))
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return store.write(ctx, rec)
//	})
//
// A Classifier decides which errors are worth another attempt; a Strategy
// decides how long to wait and how often to try. Executor instances are safe
// for concurrent use. WithOnRetry returns an independent copy.
package retry
