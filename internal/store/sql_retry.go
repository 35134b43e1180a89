package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const (
	maxExecAttempts  = 3
	execRetryBackoff = 50 * time.Millisecond
)

// execContext runs a DML statement, repeating it while the dialect's
// classifier calls the failure [Retryable]. The wait grows linearly with the
// attempt number and is cut short by ctx.
func (db *DB) execContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var lastErr error

	for attempt := 1; attempt <= maxExecAttempts; attempt++ {
		res, err := db.ExecContext(ctx, query, args...)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if db.errorClassificator == nil || db.errorClassificator.Classify(err) != Retryable {
			return nil, err
		}
		if attempt == maxExecAttempts {
			break
		}

		db.logger.Debug().
			Err(err).
			Str("func", "DB.execContext").
			Int("attempt", attempt).
			Msg("retryable database error, repeating statement")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * execRetryBackoff):
		}
	}

	return nil, fmt.Errorf("retry limit exceeded after %d attempts: %w", maxExecAttempts, lastErr)
}
