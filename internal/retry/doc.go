// Package retry retries connection attempts that fail for transient reasons.
//
//	exec := retry.NewExecutor(retry.NewClassifier(), retry.NewExponentialBackoff(3))
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return db.PingContext(ctx)
//	})
//
// Classifier recognizes transient failures of every supported engine:
// PostgreSQL SQLSTATE classes, MySQL and SQL Server error numbers, SQLite
// busy/locked codes, and network errors common to all of them.
package retry
